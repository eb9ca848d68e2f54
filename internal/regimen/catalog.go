package regimen

import "math"

const (
	NSWCandidateID     = 101
	MarathonTrainerID  = 102
	nswCandidateLength = 34
	marathonLength     = 16
)

// nswStamina lists the stamina block per week as reps x minutes.
var nswStamina = [nswCandidateLength][2]int{
	{1, 15}, {1, 15}, {1, 16}, {1, 16}, {1, 17}, {1, 17}, {1, 18}, {1, 18}, {1, 19}, {1, 19},
	{1, 20}, {2, 12}, {2, 12}, {2, 14}, {2, 14}, {2, 14}, {2, 16}, {2, 16}, {2, 16}, {2, 18},
	{2, 18}, {2, 18}, {2, 20}, {2, 20}, {2, 20}, {3, 14}, {3, 14}, {3, 14}, {3, 17}, {3, 17},
	{3, 17}, {3, 20}, {3, 20}, {3, 20},
}

var nswSpeedReps = [...]int{4, 4, 5, 5, 6, 6, 7, 7, 8, 8, 9, 9}

// BuiltIn returns the regimens shipped with the app, used by the seed command.
func BuiltIn() []Definition {
	return []Definition{
		nswCandidate(),
		marathonTrainer(),
	}
}

func nswCandidate() Definition {
	def := Definition{
		Regimen: Regimen{
			ID:          NSWCandidateID,
			Name:        "NSW Candidate Run Regimen",
			Description: "34 week progression towards the NSW candidate run standards.",
			Length:      nswCandidateLength,
		},
	}

	for w := 1; w <= nswCandidateLength; w++ {
		speedReps := 10
		if w <= len(nswSpeedReps) {
			speedReps = nswSpeedReps[w-1]
		}
		def.Weeks = append(def.Weeks, Week{
			RegimenID:  NSWCandidateID,
			WeekNumber: w,
			Variant:    VariantNormal,
			Goals: GoalSet{
				EnduranceDistance:   math.Min(3.0+0.25*float64(w-1), 10),
				StaminaReps:         nswStamina[w-1][0],
				StaminaTimePerRep:   float64(nswStamina[w-1][1]),
				SpeedReps:           speedReps,
				SpeedDistancePerRep: 0.25,
			},
		})
	}

	return def
}

// marathonTrainer has a normal, a long and a short/fast row for every week,
// the variant used depends on where in the month the user is.
func marathonTrainer() Definition {
	def := Definition{
		Regimen: Regimen{
			ID:           MarathonTrainerID,
			Name:         "Marathon Trainer Regimen",
			Description:  "16 week marathon build up with a long week at the start and a short, fast week at the end of every month.",
			MonthlyCycle: true,
			Length:       marathonLength,
		},
	}

	for w := 1; w <= marathonLength; w++ {
		base := 6.0 + 0.75*float64(w-1)
		staminaMinutes := float64(15 + w)
		speedReps := 4 + w/2

		def.Weeks = append(def.Weeks,
			Week{
				RegimenID:  MarathonTrainerID,
				WeekNumber: w,
				Variant:    VariantNormal,
				Goals: GoalSet{
					EnduranceDistance:   base,
					StaminaReps:         2,
					StaminaTimePerRep:   staminaMinutes,
					SpeedReps:           speedReps,
					SpeedDistancePerRep: 0.5,
				},
			},
			Week{
				RegimenID:  MarathonTrainerID,
				WeekNumber: w,
				Variant:    VariantLong,
				Goals: GoalSet{
					EnduranceDistance:   math.Min(base*1.5, 26.2),
					StaminaReps:         1,
					StaminaTimePerRep:   staminaMinutes * 1.5,
					SpeedReps:           speedReps / 2,
					SpeedDistancePerRep: 0.5,
				},
			},
			Week{
				RegimenID:  MarathonTrainerID,
				WeekNumber: w,
				Variant:    VariantShortFast,
				Goals: GoalSet{
					EnduranceDistance:   base / 2,
					StaminaReps:         3,
					StaminaTimePerRep:   staminaMinutes / 2,
					SpeedReps:           speedReps + 2,
					SpeedDistancePerRep: 0.25,
				},
			},
		)
	}

	return def
}
