package runs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/runanalysis/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

const runColumns = `id, user_id, run_type, distance, duration, cadence, effort, location, music_bpm,
	breathing_tempo, reps, rep_distance, rep_time, metadata, created_at`

// RunParams filter the runs of a single user. Empty Type means all types, nil From means all time.
type RunParams struct {
	UserID int
	Type   RunType
	From   *time.Time
}

type ListParams struct {
	RunParams
	Page int
	Size int
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, run Run) (_ *Run, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.runs.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", run.UserID))
	span.SetAttributes(attribute.String("run_type", string(run.Type)))

	if run.Metadata == nil {
		run.Metadata = make(map[string]string)
	}
	metadataJson, err := json.Marshal(run.Metadata)
	if err != nil {
		return nil, fmt.Errorf("marshal metadata: %w", err)
	}

	var id int
	err = r.db.QueryRow(
		ctx,
		`INSERT INTO run
				(user_id, run_type, distance, duration, cadence, effort, location, music_bpm,
				 breathing_tempo, reps, rep_distance, rep_time, metadata, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			RETURNING id;`,
		run.UserID, string(run.Type), run.Distance, run.Duration, run.Cadence, run.Effort, string(run.Location), run.MusicBPM,
		run.BreathingTempo, run.Reps, run.RepDistance, run.RepTime, metadataJson, run.CreatedAt,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}

	span.SetAttributes(attribute.Int("run.id", id))

	run.ID = id
	return &run, nil
}

// Get returns the run only if it belongs to the given user.
func (r *Repo) Get(ctx context.Context, userID, id int) (_ *Run, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.runs.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))
	span.SetAttributes(attribute.Int("run.id", id))

	rows, err := r.db.Query(
		ctx,
		`SELECT `+runColumns+` FROM run WHERE id = $1 AND user_id = $2;`,
		id, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs, err := rows2runs(rows)
	if err != nil {
		return nil, err
	}

	if len(runs) != 1 {
		return nil, ErrRunNotFound
	}

	return &runs[0], nil
}

// ListAll returns all runs matching the params, newest first.
func (r *Repo) ListAll(ctx context.Context, params RunParams) (_ []Run, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.runs.listall")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", params.UserID))
	span.SetAttributes(attribute.String("run_type", string(params.Type)))
	if params.From != nil {
		span.SetAttributes(attribute.String("from", params.From.String()))
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT `+runColumns+` FROM run
			WHERE user_id = $1
			AND ($2::text = '' OR run_type = $2)
			AND ($3::timestamptz IS NULL OR created_at >= $3)
		ORDER BY created_at DESC;`,
		params.UserID, string(params.Type), params.From,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	runs, err := rows2runs(rows)
	if err != nil {
		return nil, fmt.Errorf("rows2runs: %w", err)
	}
	return runs, nil
}

// List is like ListAll, but returns a single page and the total count.
func (r *Repo) List(ctx context.Context, params ListParams) (_ []Run, total int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.runs.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("page", params.Page))
	span.SetAttributes(attribute.Int("size", params.Size))
	span.SetAttributes(attribute.Int("user.id", params.UserID))
	span.SetAttributes(attribute.String("run_type", string(params.Type)))

	if params.Page < 1 {
		return nil, -1, errors.New("page must be greater than 0")
	}
	if params.Size < 1 {
		return nil, -1, errors.New("size must be greater than 0")
	}

	countAll, err := r.Count(ctx, params.RunParams)
	if err != nil {
		return nil, -1, err
	}

	limit := params.Size
	offset := (params.Page - 1) * params.Size
	if countAll <= limit {
		limit = countAll
		offset = 0
	}
	if countAll-offset < limit {
		offset = countAll - limit
	}

	span.SetAttributes(attribute.Int("count_all", countAll))
	span.SetAttributes(attribute.Int("limit", limit))
	span.SetAttributes(attribute.Int("offset", offset))

	rows, err := r.db.Query(
		ctx,
		`SELECT `+runColumns+` FROM run
			WHERE user_id = $1
			AND ($2::text = '' OR run_type = $2)
			AND ($3::timestamptz IS NULL OR created_at >= $3)
		ORDER BY created_at DESC
		LIMIT $4
		OFFSET $5;`,
		params.UserID, string(params.Type), params.From,
		limit, offset,
	)
	if err != nil {
		return nil, -1, err
	}
	defer rows.Close()

	runs, err := rows2runs(rows)
	if err != nil {
		return nil, -1, err
	}
	return runs, countAll, nil
}

func (r *Repo) Count(ctx context.Context, params RunParams) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.runs.count")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var count int
	err = r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM run
			WHERE user_id = $1
			AND ($2::text = '' OR run_type = $2)
			AND ($3::timestamptz IS NULL OR created_at >= $3);
	`,
		params.UserID, string(params.Type), params.From,
	).Scan(&count)
	if err != nil {
		return -1, fmt.Errorf("count runs: %w", err)
	}

	return count, nil
}

func rows2runs(rows pgx.Rows) ([]Run, error) {
	runs := make([]Run, 0)
	for rows.Next() {
		var run Run
		var runType, location string
		var metadataBytes []byte
		if err := rows.Scan(
			&run.ID, &run.UserID, &runType, &run.Distance, &run.Duration, &run.Cadence, &run.Effort, &location, &run.MusicBPM,
			&run.BreathingTempo, &run.Reps, &run.RepDistance, &run.RepTime, &metadataBytes, &run.CreatedAt,
		); err != nil {
			return nil, err
		}
		run.Type = RunType(runType)
		run.Location = Location(location)

		run.Metadata = make(map[string]string)
		if len(metadataBytes) > 0 {
			if err := json.Unmarshal(metadataBytes, &run.Metadata); err != nil {
				return nil, fmt.Errorf("unmarshal metadata for run %d: %w", run.ID, err)
			}
		}

		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return runs, nil
}
