package regimen

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/runanalysis/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

const goalColumns = `endurance_distance, stamina_reps, stamina_time_per_rep, speed_reps, speed_distance_per_rep`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) ListRegimens(ctx context.Context) (_ []Regimen, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.regimen.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT id, name, description, monthly_cycle, length FROM regimen ORDER BY id;`,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	regimens := make([]Regimen, 0)
	for rows.Next() {
		var reg Regimen
		if err := rows.Scan(&reg.ID, &reg.Name, &reg.Description, &reg.MonthlyCycle, &reg.Length); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		regimens = append(regimens, reg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return regimens, nil
}

func (r *Repo) GetRegimen(ctx context.Context, id int) (_ *Regimen, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.regimen.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("regimen.id", id))

	var reg Regimen
	err = r.db.QueryRow(
		ctx,
		`SELECT id, name, description, monthly_cycle, length FROM regimen WHERE id = $1;`,
		id,
	).Scan(&reg.ID, &reg.Name, &reg.Description, &reg.MonthlyCycle, &reg.Length)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRegimenNotFound
	} else if err != nil {
		return nil, fmt.Errorf("get regimen %d: %w", id, err)
	}

	return &reg, nil
}

func (r *Repo) GetWeek(ctx context.Context, regimenID, weekNumber int, variant Variant) (_ *Week, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.regimen.week.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("regimen.id", regimenID))
	span.SetAttributes(attribute.Int("week", weekNumber))
	span.SetAttributes(attribute.String("variant", string(variant)))

	week := Week{
		RegimenID:  regimenID,
		WeekNumber: weekNumber,
		Variant:    variant,
	}
	err = r.db.QueryRow(
		ctx,
		`SELECT `+goalColumns+` FROM regimen_week
			WHERE regimen_id = $1 AND week_number = $2 AND variant = $3;`,
		regimenID, weekNumber, string(variant),
	).Scan(
		&week.Goals.EnduranceDistance,
		&week.Goals.StaminaReps, &week.Goals.StaminaTimePerRep,
		&week.Goals.SpeedReps, &week.Goals.SpeedDistancePerRep,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrWeekNotFound
	} else if err != nil {
		return nil, fmt.Errorf("get week: %w", err)
	}

	return &week, nil
}

// ListWeeks returns all weeks of a regimen for the given variant, ordered by week number.
func (r *Repo) ListWeeks(ctx context.Context, regimenID int, variant Variant) (_ []Week, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.regimen.week.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("regimen.id", regimenID))
	span.SetAttributes(attribute.String("variant", string(variant)))

	rows, err := r.db.Query(
		ctx,
		`SELECT week_number, `+goalColumns+` FROM regimen_week
			WHERE regimen_id = $1 AND variant = $2
		ORDER BY week_number;`,
		regimenID, string(variant),
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	weeks := make([]Week, 0)
	for rows.Next() {
		week := Week{
			RegimenID: regimenID,
			Variant:   variant,
		}
		if err := rows.Scan(
			&week.WeekNumber,
			&week.Goals.EnduranceDistance,
			&week.Goals.StaminaReps, &week.Goals.StaminaTimePerRep,
			&week.Goals.SpeedReps, &week.Goals.SpeedDistancePerRep,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		weeks = append(weeks, week)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return weeks, nil
}

func (r *Repo) GetSettings(ctx context.Context, userID int) (_ *Settings, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.regimen.settings.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	settings := Settings{UserID: userID}
	err = r.db.QueryRow(
		ctx,
		`SELECT regimen_id, current_week, maintenance FROM app_user WHERE id = $1;`,
		userID,
	).Scan(&settings.RegimenID, &settings.CurrentWeek, &settings.Maintenance)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	} else if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}

	return &settings, nil
}

// SwitchRegimen moves the user to week 1 of the given regimen. Maintenance is
// cleared and goal overrides of the previous regimen are dropped in the same transaction.
func (r *Repo) SwitchRegimen(ctx context.Context, userID, regimenID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.regimen.switch")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))
	span.SetAttributes(attribute.Int("regimen.id", regimenID))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				err = fmt.Errorf("%w (rollback: %s)", err, rbErr)
			}
		}
	}()

	tag, err := tx.Exec(
		ctx,
		`UPDATE app_user SET regimen_id = $1, current_week = 1, maintenance = FALSE WHERE id = $2;`,
		regimenID, userID,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	if _, err = tx.Exec(ctx, `DELETE FROM goal_override WHERE user_id = $1;`, userID); err != nil {
		return fmt.Errorf("delete overrides: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}

func (r *Repo) SetCurrentWeek(ctx context.Context, userID, week int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.regimen.week.set")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))
	span.SetAttributes(attribute.Int("week", week))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE app_user SET current_week = $1 WHERE id = $2;`,
		week, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *Repo) SetMaintenance(ctx context.Context, userID int, maintenance bool) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.regimen.maintenance.set")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))
	span.SetAttributes(attribute.Bool("maintenance", maintenance))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE app_user SET maintenance = $1 WHERE id = $2;`,
		maintenance, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *Repo) GetOverride(ctx context.Context, userID, regimenID, weekNumber int) (_ *GoalSet, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.regimen.override.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))
	span.SetAttributes(attribute.Int("regimen.id", regimenID))
	span.SetAttributes(attribute.Int("week", weekNumber))

	var goals GoalSet
	err = r.db.QueryRow(
		ctx,
		`SELECT `+goalColumns+` FROM goal_override
			WHERE user_id = $1 AND regimen_id = $2 AND week_number = $3;`,
		userID, regimenID, weekNumber,
	).Scan(
		&goals.EnduranceDistance,
		&goals.StaminaReps, &goals.StaminaTimePerRep,
		&goals.SpeedReps, &goals.SpeedDistancePerRep,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrOverrideNotFound
	} else if err != nil {
		return nil, fmt.Errorf("get override: %w", err)
	}

	return &goals, nil
}

func (r *Repo) UpsertOverride(ctx context.Context, userID, regimenID, weekNumber int, goals GoalSet) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.regimen.override.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))
	span.SetAttributes(attribute.Int("regimen.id", regimenID))
	span.SetAttributes(attribute.Int("week", weekNumber))

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO goal_override (user_id, regimen_id, week_number, `+goalColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, regimen_id, week_number) DO UPDATE SET
			endurance_distance = EXCLUDED.endurance_distance,
			stamina_reps = EXCLUDED.stamina_reps,
			stamina_time_per_rep = EXCLUDED.stamina_time_per_rep,
			speed_reps = EXCLUDED.speed_reps,
			speed_distance_per_rep = EXCLUDED.speed_distance_per_rep;`,
		userID, regimenID, weekNumber,
		goals.EnduranceDistance,
		goals.StaminaReps, goals.StaminaTimePerRep,
		goals.SpeedReps, goals.SpeedDistancePerRep,
	)
	if err != nil {
		return fmt.Errorf("upsert override: %w", err)
	}
	return nil
}

// UpsertDefinition stores a regimen and all its weeks in one transaction.
func (r *Repo) UpsertDefinition(ctx context.Context, def Definition) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.regimen.definition.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("regimen.id", def.Regimen.ID))
	span.SetAttributes(attribute.Int("weeks", len(def.Weeks)))

	if err := def.Validate(); err != nil {
		return err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				err = fmt.Errorf("%w (rollback: %s)", err, rbErr)
			}
		}
	}()

	reg := def.Regimen
	if _, err = tx.Exec(
		ctx,
		`INSERT INTO regimen (id, name, description, monthly_cycle, length)
			VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			monthly_cycle = EXCLUDED.monthly_cycle,
			length = EXCLUDED.length;`,
		reg.ID, reg.Name, reg.Description, reg.MonthlyCycle, reg.Length,
	); err != nil {
		return fmt.Errorf("upsert regimen: %w", err)
	}

	batch := &pgx.Batch{}
	for _, w := range def.Weeks {
		batch.Queue(
			`INSERT INTO regimen_week (regimen_id, week_number, variant, `+goalColumns+`)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (regimen_id, week_number, variant) DO UPDATE SET
				endurance_distance = EXCLUDED.endurance_distance,
				stamina_reps = EXCLUDED.stamina_reps,
				stamina_time_per_rep = EXCLUDED.stamina_time_per_rep,
				speed_reps = EXCLUDED.speed_reps,
				speed_distance_per_rep = EXCLUDED.speed_distance_per_rep;`,
			reg.ID, w.WeekNumber, string(w.Variant),
			w.Goals.EnduranceDistance,
			w.Goals.StaminaReps, w.Goals.StaminaTimePerRep,
			w.Goals.SpeedReps, w.Goals.SpeedDistancePerRep,
		)
	}
	if err = tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("upsert weeks: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}
