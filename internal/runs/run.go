package runs

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"time"
)

type RunType string

const (
	RunTypeEndurance RunType = "endurance"
	RunTypeStamina   RunType = "stamina"
	RunTypeSpeed     RunType = "speed"
)

var AllRunTypes = []RunType{RunTypeEndurance, RunTypeStamina, RunTypeSpeed}

func (t RunType) Valid() bool {
	switch t {
	case RunTypeEndurance, RunTypeStamina, RunTypeSpeed:
		return true
	}
	return false
}

type Location string

const (
	LocationStreet Location = "street"
	LocationTrack  Location = "track"
	LocationTrail  Location = "trail"
)

const (
	MinEffort    = 1.0
	MaxEffort    = 10.0
	MaxMusicBPM  = 200
	MaxCadence   = 300
	musicBPMStep = 5
)

var (
	ErrRunNotFound = errors.New("run not found")

	breathingTempoRegex = regexp.MustCompile(`^\d{1,2}:\d{1,2}$`)
)

// Run is a single logged run. Distances are in miles, durations and rep times in seconds.
// Zero values of optional fields mean not recorded.
type Run struct {
	ID             int               `json:"id"`
	UserID         int               `json:"userId"`
	Type           RunType           `json:"type"`
	Distance       float64           `json:"distance"`
	Duration       int               `json:"duration"`
	Cadence        int               `json:"cadence"`
	Effort         float64           `json:"effort"`
	Location       Location          `json:"location"`
	MusicBPM       int               `json:"musicBpm"`
	BreathingTempo string            `json:"breathingTempo"`
	Reps           int               `json:"reps"`
	RepDistance    float64           `json:"repDistance"`
	RepTime        int               `json:"repTime"`
	Metadata       map[string]string `json:"metadata"`
	CreatedAt      time.Time         `json:"createdAt"`
}

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid run field [%s]: %s", e.Field, e.Reason)
}

func (r Run) Validate() error {
	if !r.Type.Valid() {
		return &ValidationError{Field: "type", Reason: "must be one of endurance, stamina, speed"}
	}
	if r.Distance < 0 || math.IsNaN(r.Distance) || math.IsInf(r.Distance, 0) {
		return &ValidationError{Field: "distance", Reason: "must be a non negative number"}
	}
	if r.Duration < 0 {
		return &ValidationError{Field: "duration", Reason: "must not be negative"}
	}
	if r.Distance == 0 && r.Duration == 0 && r.Reps == 0 {
		return &ValidationError{Field: "distance", Reason: "a run needs a distance, a duration or reps"}
	}
	if r.Cadence < 0 || r.Cadence > MaxCadence {
		return &ValidationError{Field: "cadence", Reason: fmt.Sprintf("must be between 0 and %d", MaxCadence)}
	}
	// effort is rated in half points
	if r.Effort != 0 && (r.Effort < MinEffort || r.Effort > MaxEffort || math.Mod(r.Effort*2, 1) != 0) {
		return &ValidationError{Field: "effort", Reason: "must be between 1.0 and 10.0 in steps of 0.5"}
	}
	switch r.Location {
	case "", LocationStreet, LocationTrack, LocationTrail:
	default:
		return &ValidationError{Field: "location", Reason: "must be one of street, track, trail"}
	}
	if r.MusicBPM < 0 || r.MusicBPM > MaxMusicBPM || r.MusicBPM%musicBPMStep != 0 {
		return &ValidationError{Field: "musicBpm", Reason: "must be between 0 and 200 in steps of 5"}
	}
	if r.BreathingTempo != "" && !breathingTempoRegex.MatchString(r.BreathingTempo) {
		return &ValidationError{Field: "breathingTempo", Reason: "must look like 3:2"}
	}
	if r.Reps < 0 || r.RepDistance < 0 || r.RepTime < 0 {
		return &ValidationError{Field: "reps", Reason: "rep values must not be negative"}
	}
	return nil
}

// Pace returns seconds per mile. False when distance or duration is missing.
func (r Run) Pace() (float64, bool) {
	if r.Distance <= 0 || r.Duration <= 0 {
		return 0, false
	}
	return float64(r.Duration) / r.Distance, true
}

// RepStats treats a run logged without reps as one rep over the whole run.
func (r Run) RepStats() (reps int, repDistance float64, repTime int) {
	if r.Reps > 0 {
		return r.Reps, r.RepDistance, r.RepTime
	}
	return 1, r.Distance, r.Duration
}
