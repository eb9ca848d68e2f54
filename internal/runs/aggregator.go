package runs

import (
	"context"
	"time"

	"github.com/2beens/runanalysis/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

// Aggregate holds the statistics for one run type over a window.
// Pace is in seconds per mile, rep time in seconds.
type Aggregate struct {
	Runs           int     `json:"runs"`
	TotalDistance  float64 `json:"totalDistance"`
	AvgDistance    float64 `json:"avgDistance"`
	MaxDistance    float64 `json:"maxDistance"`
	AvgPace        float64 `json:"avgPace"`
	AvgCadence     float64 `json:"avgCadence"`
	AvgEffort      float64 `json:"avgEffort"`
	AvgReps        float64 `json:"avgReps"`
	AvgRepDistance float64 `json:"avgRepDistance"`
	AvgRepTime     float64 `json:"avgRepTime"`
}

type DayStats struct {
	Runs          int     `json:"runs"`
	TotalDistance float64 `json:"totalDistance"`
	AvgPace       float64 `json:"avgPace"`
}

// History is the per day chart data for one run type.
type History struct {
	Type   RunType                `json:"type"`
	Window Window                 `json:"window"`
	Days   map[time.Time]DayStats `json:"days"`
}

type Aggregator struct {
	repo runsRepo
}

func NewAggregator(repo runsRepo) *Aggregator {
	return &Aggregator{
		repo: repo,
	}
}

// Aggregate recomputes the statistics of every run type from the raw runs in the window.
func (a *Aggregator) Aggregate(
	ctx context.Context,
	userID int,
	window Window,
	now time.Time,
) (_ map[RunType]Aggregate, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "aggregator.runs.aggregate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))
	span.SetAttributes(attribute.String("window", string(window)))

	runs, err := a.repo.ListAll(ctx, RunParams{
		UserID: userID,
		From:   window.Start(now),
	})
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("runs", len(runs)))
	return Summarize(runs), nil
}

func (a *Aggregator) History(
	ctx context.Context,
	userID int,
	runType RunType,
	window Window,
	now time.Time,
) (_ *History, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "aggregator.runs.history")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))
	span.SetAttributes(attribute.String("run_type", string(runType)))
	span.SetAttributes(attribute.String("window", string(window)))

	runs, err := a.repo.ListAll(ctx, RunParams{
		UserID: userID,
		Type:   runType,
		From:   window.Start(now),
	})
	if err != nil {
		return nil, err
	}

	history := &History{
		Type:   runType,
		Window: window,
		Days:   make(map[time.Time]DayStats),
	}

	// days are calendar days in the location of now, not UTC boundaries
	day2runs := make(map[time.Time][]Run)
	for _, run := range runs {
		day := startOfDay(run.CreatedAt, now.Location())
		day2runs[day] = append(day2runs[day], run)
	}

	for day, dayRuns := range day2runs {
		summary := summarizeType(dayRuns)
		history.Days[day] = DayStats{
			Runs:          summary.Runs,
			TotalDistance: summary.TotalDistance,
			AvgPace:       summary.AvgPace,
		}
	}

	return history, nil
}

// Summarize groups the runs by type. Every run type is present in the result,
// types without runs have zero values.
func Summarize(runs []Run) map[RunType]Aggregate {
	type2runs := make(map[RunType][]Run)
	for _, run := range runs {
		type2runs[run.Type] = append(type2runs[run.Type], run)
	}

	aggregates := make(map[RunType]Aggregate, len(AllRunTypes))
	for _, runType := range AllRunTypes {
		aggregates[runType] = summarizeType(type2runs[runType])
	}
	return aggregates
}

// mean averages only the values that were recorded.
type mean struct {
	sum   float64
	count int
}

func (m *mean) add(v float64) {
	m.sum += v
	m.count++
}

func (m *mean) value() float64 {
	if m.count == 0 {
		return 0
	}
	return m.sum / float64(m.count)
}

func summarizeType(runs []Run) Aggregate {
	var agg Aggregate
	if len(runs) == 0 {
		return agg
	}

	var pace, cadence, effort, reps, repDistance, repTime mean
	for _, run := range runs {
		agg.Runs++
		agg.TotalDistance += run.Distance
		if run.Distance > agg.MaxDistance {
			agg.MaxDistance = run.Distance
		}

		if p, ok := run.Pace(); ok {
			pace.add(p)
		}
		if run.Cadence > 0 {
			cadence.add(float64(run.Cadence))
		}
		if run.Effort > 0 {
			effort.add(run.Effort)
		}

		runReps, runRepDistance, runRepTime := run.RepStats()
		reps.add(float64(runReps))
		if runRepDistance > 0 {
			repDistance.add(runRepDistance)
		}
		if runRepTime > 0 {
			repTime.add(float64(runRepTime))
		}
	}

	agg.AvgDistance = agg.TotalDistance / float64(agg.Runs)
	agg.AvgPace = pace.value()
	agg.AvgCadence = cadence.value()
	agg.AvgEffort = effort.value()
	agg.AvgReps = reps.value()
	agg.AvgRepDistance = repDistance.value()
	agg.AvgRepTime = repTime.value()

	return agg
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
