package regimen

import (
	"errors"
	"fmt"
)

type Variant string

const (
	VariantNormal    Variant = "normal"
	VariantLong      Variant = "long"
	VariantShortFast Variant = "short_fast"
)

func (v Variant) Valid() bool {
	switch v {
	case VariantNormal, VariantLong, VariantShortFast:
		return true
	}
	return false
}

var (
	ErrRegimenNotFound  = errors.New("regimen not found")
	ErrWeekNotFound     = errors.New("regimen week not found")
	ErrOverrideNotFound = errors.New("goal override not found")
	ErrUserNotFound     = errors.New("user not found")

	ErrInvalidWeek   = errors.New("invalid week number")
	ErrInvalidGoals  = errors.New("invalid goals")
	ErrWeekIntegrity = errors.New("regimen week missing from store")

	ErrNoRegimen         = errors.New("no regimen selected")
	ErrCompletionPending = errors.New("regimen completed, choose maintenance or a new regimen")
	ErrInMaintenance     = errors.New("regimen is in maintenance mode")
	ErrNotCompleted      = errors.New("regimen not completed yet")
)

type Regimen struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	MonthlyCycle bool   `json:"monthlyCycle"`
	Length       int    `json:"length"`
}

// GoalSet holds the weekly targets. Distances are in miles, stamina time per rep in minutes.
type GoalSet struct {
	EnduranceDistance   float64 `json:"enduranceDistance"`
	StaminaReps         int     `json:"staminaReps"`
	StaminaTimePerRep   float64 `json:"staminaTimePerRep"`
	SpeedReps           int     `json:"speedReps"`
	SpeedDistancePerRep float64 `json:"speedDistancePerRep"`
}

func (g GoalSet) Validate() error {
	if g.EnduranceDistance <= 0 {
		return fmt.Errorf("%w: endurance distance must be positive", ErrInvalidGoals)
	}
	if g.StaminaReps < 1 || g.StaminaTimePerRep <= 0 {
		return fmt.Errorf("%w: stamina reps and time per rep must be positive", ErrInvalidGoals)
	}
	if g.SpeedReps < 1 || g.SpeedDistancePerRep <= 0 {
		return fmt.Errorf("%w: speed reps and distance per rep must be positive", ErrInvalidGoals)
	}
	return nil
}

type Week struct {
	RegimenID  int     `json:"regimenId"`
	WeekNumber int     `json:"weekNumber"`
	Variant    Variant `json:"variant"`
	Goals      GoalSet `json:"goals"`
}

// Definition is a regimen together with all of its week rows.
type Definition struct {
	Regimen Regimen
	Weeks   []Week
}

func (d Definition) Validate() error {
	if d.Regimen.Length < 1 {
		return fmt.Errorf("regimen %d: %w", d.Regimen.ID, ErrInvalidWeek)
	}

	normalWeeks := make(map[int]bool)
	for _, w := range d.Weeks {
		if w.WeekNumber < 1 || w.WeekNumber > d.Regimen.Length {
			return fmt.Errorf("regimen %d week %d: %w", d.Regimen.ID, w.WeekNumber, ErrInvalidWeek)
		}
		if !w.Variant.Valid() {
			return fmt.Errorf("regimen %d week %d: unknown variant [%s]", d.Regimen.ID, w.WeekNumber, w.Variant)
		}
		if err := w.Goals.Validate(); err != nil {
			return fmt.Errorf("regimen %d week %d: %w", d.Regimen.ID, w.WeekNumber, err)
		}
		if w.Variant == VariantNormal {
			normalWeeks[w.WeekNumber] = true
		}
	}

	for wn := 1; wn <= d.Regimen.Length; wn++ {
		if !normalWeeks[wn] {
			return fmt.Errorf("regimen %d week %d: %w", d.Regimen.ID, wn, ErrWeekIntegrity)
		}
	}

	return nil
}

// Settings is the regimen state persisted on the user row.
type Settings struct {
	UserID      int  `json:"userId"`
	RegimenID   *int `json:"regimenId"`
	CurrentWeek int  `json:"currentWeek"`
	Maintenance bool `json:"maintenance"`
}

// BeginnerGoals are shown to users who have not selected a regimen yet.
// They are never used in place of a missing regimen week.
// Stamina is a single 16 minute block, speed is 5 intervals of about 2 minutes.
var BeginnerGoals = GoalSet{
	EnduranceDistance:   3.0,
	StaminaReps:         1,
	StaminaTimePerRep:   16,
	SpeedReps:           5,
	SpeedDistancePerRep: 0.25,
}
