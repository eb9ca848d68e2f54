package runs_test

import (
	"errors"
	"testing"
	"time"

	"github.com/2beens/runanalysis/internal/runs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRun() runs.Run {
	return runs.Run{
		UserID:         1,
		Type:           runs.RunTypeEndurance,
		Distance:       3.1,
		Duration:       1860,
		Cadence:        170,
		Effort:         6.5,
		Location:       runs.LocationTrail,
		MusicBPM:       165,
		BreathingTempo: "3:2",
		CreatedAt:      time.Date(2024, 5, 10, 7, 0, 0, 0, time.UTC),
	}
}

func TestRun_Validate(t *testing.T) {
	require.NoError(t, validRun().Validate())

	testCases := []struct {
		name          string
		modify        func(r *runs.Run)
		expectedField string
	}{
		{"unknown type", func(r *runs.Run) { r.Type = "jog" }, "type"},
		{"negative distance", func(r *runs.Run) { r.Distance = -1 }, "distance"},
		{"negative duration", func(r *runs.Run) { r.Duration = -10 }, "duration"},
		{"empty run", func(r *runs.Run) { r.Distance, r.Duration, r.Reps = 0, 0, 0 }, "distance"},
		{"effort too low", func(r *runs.Run) { r.Effort = 0.5 }, "effort"},
		{"effort too high", func(r *runs.Run) { r.Effort = 10.5 }, "effort"},
		{"effort not half step", func(r *runs.Run) { r.Effort = 7.3 }, "effort"},
		{"cadence too high", func(r *runs.Run) { r.Cadence = 301 }, "cadence"},
		{"unknown location", func(r *runs.Run) { r.Location = "treadmill" }, "location"},
		{"music bpm not multiple of 5", func(r *runs.Run) { r.MusicBPM = 167 }, "musicBpm"},
		{"music bpm too high", func(r *runs.Run) { r.MusicBPM = 205 }, "musicBpm"},
		{"bad breathing tempo", func(r *runs.Run) { r.BreathingTempo = "three-two" }, "breathingTempo"},
		{"negative reps", func(r *runs.Run) { r.Reps = -2 }, "reps"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := validRun()
			tc.modify(&r)

			err := r.Validate()
			var validationErr *runs.ValidationError
			require.True(t, errors.As(err, &validationErr), "expected validation error, got: %v", err)
			assert.Equal(t, tc.expectedField, validationErr.Field)
		})
	}
}

func TestRun_Validate_OptionalFieldsOmitted(t *testing.T) {
	r := runs.Run{
		Type:        runs.RunTypeSpeed,
		Reps:        6,
		RepDistance: 0.25,
		RepTime:     95,
	}
	assert.NoError(t, r.Validate())

	r.Effort = 10
	r.MusicBPM = 200
	r.BreathingTempo = "12:10"
	assert.NoError(t, r.Validate())
}

func TestRun_Pace(t *testing.T) {
	pace, ok := runs.Run{Distance: 2, Duration: 1200}.Pace()
	assert.True(t, ok)
	assert.Equal(t, 600.0, pace)

	_, ok = runs.Run{Distance: 0, Duration: 1200}.Pace()
	assert.False(t, ok)

	_, ok = runs.Run{Distance: 2, Duration: 0}.Pace()
	assert.False(t, ok)
}

func TestRun_RepStats(t *testing.T) {
	reps, repDistance, repTime := runs.Run{Distance: 1, Duration: 900, Reps: 4, RepDistance: 0.25, RepTime: 100}.RepStats()
	assert.Equal(t, 4, reps)
	assert.Equal(t, 0.25, repDistance)
	assert.Equal(t, 100, repTime)

	reps, repDistance, repTime = runs.Run{Distance: 1.5, Duration: 900}.RepStats()
	assert.Equal(t, 1, reps)
	assert.Equal(t, 1.5, repDistance)
	assert.Equal(t, 900, repTime)
}

func TestParseWindow(t *testing.T) {
	w, err := runs.ParseWindow("")
	require.NoError(t, err)
	assert.Equal(t, runs.WindowWeek, w)

	for _, s := range []string{"week", "month", "year", "all"} {
		w, err := runs.ParseWindow(s)
		require.NoError(t, err)
		assert.Equal(t, runs.Window(s), w)
	}

	_, err = runs.ParseWindow("decade")
	assert.Error(t, err)
}

func TestWindow_Start(t *testing.T) {
	now := time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 3, 24, 12, 0, 0, 0, time.UTC), *runs.WindowWeek.Start(now))
	// AddDate normalizes february 31st to march 2nd
	assert.Equal(t, time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC), *runs.WindowMonth.Start(now))
	assert.Equal(t, time.Date(2023, 3, 31, 12, 0, 0, 0, time.UTC), *runs.WindowYear.Start(now))
	assert.Nil(t, runs.WindowAll.Start(now))
}
