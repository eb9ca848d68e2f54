package runs

import (
	"fmt"
	"time"
)

type Window string

const (
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
	WindowYear  Window = "year"
	WindowAll   Window = "all"
)

// ParseWindow defaults to the week window when s is empty.
func ParseWindow(s string) (Window, error) {
	switch Window(s) {
	case "":
		return WindowWeek, nil
	case WindowWeek, WindowMonth, WindowYear, WindowAll:
		return Window(s), nil
	}
	return "", fmt.Errorf("unknown window [%s]", s)
}

// Start returns the beginning of the rolling window ending at now, nil for all time.
func (w Window) Start(now time.Time) *time.Time {
	var start time.Time
	switch w {
	case WindowWeek:
		start = now.Add(-7 * 24 * time.Hour)
	case WindowMonth:
		start = now.AddDate(0, -1, 0)
	case WindowYear:
		start = now.AddDate(-1, 0, 0)
	default:
		return nil
	}
	return &start
}
