package scorecard

import (
	"github.com/2beens/runanalysis/internal/regimen"
	"github.com/2beens/runanalysis/internal/runs"
)

// Target is either a goal or the performance measured against it.
// Distances are in miles, time per rep in minutes.
type Target struct {
	Distance   float64 `json:"distance,omitempty"`
	Reps       float64 `json:"reps,omitempty"`
	TimePerRep float64 `json:"timePerRep,omitempty"`
}

type Score struct {
	Goal        Target `json:"goal"`
	Performance Target `json:"performance"`
	Runs        int    `json:"runs"`
	Met         bool   `json:"met"`
}

type Scorecard struct {
	Regimen        *regimen.Regimen                `json:"regimen"`
	Resolution     regimen.Resolution              `json:"resolution"`
	Source         regimen.GoalSource              `json:"source"`
	Scores         map[runs.RunType]Score          `json:"scores"`
	Aggregates     map[runs.RunType]runs.Aggregate `json:"aggregates"`
	ReadyToAdvance bool                            `json:"readyToAdvance"`
}

// Evaluate compares the goals with this week's aggregates. Without goals
// (completion prompt) there is nothing to score.
func Evaluate(current *regimen.CurrentGoals, aggregates map[runs.RunType]runs.Aggregate) *Scorecard {
	card := &Scorecard{
		Regimen:    current.Regimen,
		Resolution: current.Resolution,
		Source:     current.Source,
		Scores:     make(map[runs.RunType]Score),
		Aggregates: aggregates,
	}
	if current.Goals == nil {
		return card
	}

	goals := current.Goals
	endurance := aggregates[runs.RunTypeEndurance]
	card.Scores[runs.RunTypeEndurance] = Score{
		Goal:        Target{Distance: goals.EnduranceDistance},
		Performance: Target{Distance: endurance.MaxDistance},
		Runs:        endurance.Runs,
		Met:         endurance.Runs > 0 && endurance.MaxDistance >= goals.EnduranceDistance,
	}

	stamina := aggregates[runs.RunTypeStamina]
	staminaMinutesPerRep := stamina.AvgRepTime / 60
	card.Scores[runs.RunTypeStamina] = Score{
		Goal:        Target{Reps: float64(goals.StaminaReps), TimePerRep: goals.StaminaTimePerRep},
		Performance: Target{Reps: stamina.AvgReps, TimePerRep: staminaMinutesPerRep},
		Runs:        stamina.Runs,
		Met: stamina.Runs > 0 &&
			stamina.AvgReps >= float64(goals.StaminaReps) &&
			staminaMinutesPerRep >= goals.StaminaTimePerRep,
	}

	speed := aggregates[runs.RunTypeSpeed]
	card.Scores[runs.RunTypeSpeed] = Score{
		Goal:        Target{Reps: float64(goals.SpeedReps), Distance: goals.SpeedDistancePerRep},
		Performance: Target{Reps: speed.AvgReps, Distance: speed.AvgRepDistance},
		Runs:        speed.Runs,
		Met: speed.Runs > 0 &&
			speed.AvgReps >= float64(goals.SpeedReps) &&
			speed.AvgRepDistance >= goals.SpeedDistancePerRep,
	}

	allMet := true
	for _, score := range card.Scores {
		allMet = allMet && score.Met
	}
	card.ReadyToAdvance = current.Resolution.Status == regimen.StatusActive && allMet

	return card
}
