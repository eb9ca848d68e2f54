package regimen

import (
	"time"
)

type Status string

const (
	StatusActive           Status = "active"
	StatusCompletionPrompt Status = "completion_prompt"
	StatusMaintenance      Status = "maintenance"
	StatusBeginner         Status = "beginner"
)

type ResolveParams struct {
	Regimen     Regimen
	CurrentWeek int
	Maintenance bool
	Date        time.Time
}

type Resolution struct {
	Status     Status  `json:"status"`
	WeekNumber int     `json:"weekNumber,omitempty"`
	Variant    Variant `json:"variant,omitempty"`
}

// Resolve maps the user's regimen position to the week whose goals apply.
// A completion prompt never carries a week, the caller must ask the user
// to choose maintenance or switch regimens.
func Resolve(params ResolveParams) (Resolution, error) {
	if params.Regimen.Length < 1 || params.CurrentWeek < 1 {
		return Resolution{}, ErrInvalidWeek
	}

	variant := VariantNormal
	if params.Regimen.MonthlyCycle {
		variant = ClassifyWeek(params.Date)
	}

	switch {
	case params.Maintenance:
		// maintenance repeats the final week as is, the monthly cycle no longer applies
		return Resolution{
			Status:     StatusMaintenance,
			WeekNumber: params.Regimen.Length,
			Variant:    VariantNormal,
		}, nil
	case params.CurrentWeek > params.Regimen.Length:
		return Resolution{Status: StatusCompletionPrompt}, nil
	default:
		return Resolution{
			Status:     StatusActive,
			WeekNumber: params.CurrentWeek,
			Variant:    variant,
		}, nil
	}
}

// ClassifyWeek picks the week variant for monthly cycle regimens:
// the first 7 days of a month are a long week, the last 7 days a short and fast one.
func ClassifyWeek(date time.Time) Variant {
	day := date.Day()
	if day <= 7 {
		return VariantLong
	}

	// day 0 of the next month is the last day of this one
	lastDay := time.Date(date.Year(), date.Month()+1, 0, 0, 0, 0, 0, date.Location()).Day()
	if day > lastDay-7 {
		return VariantShortFast
	}

	return VariantNormal
}
