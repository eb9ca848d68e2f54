package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// Schema is idempotent, it is applied on every migrate run.
const Schema = `
CREATE TABLE IF NOT EXISTS regimen
(
    id            INTEGER PRIMARY KEY,
    name          VARCHAR NOT NULL UNIQUE,
    description   TEXT    NOT NULL DEFAULT '',
    monthly_cycle BOOLEAN NOT NULL DEFAULT FALSE,
    length        INTEGER NOT NULL CHECK (length > 0)
);

CREATE TABLE IF NOT EXISTS regimen_week
(
    regimen_id             INTEGER          NOT NULL REFERENCES regimen (id),
    week_number            INTEGER          NOT NULL CHECK (week_number > 0),
    variant                VARCHAR          NOT NULL DEFAULT 'normal',
    endurance_distance     DOUBLE PRECISION NOT NULL,
    stamina_reps           INTEGER          NOT NULL,
    stamina_time_per_rep   DOUBLE PRECISION NOT NULL,
    speed_reps             INTEGER          NOT NULL,
    speed_distance_per_rep DOUBLE PRECISION NOT NULL,
    PRIMARY KEY (regimen_id, week_number, variant)
);

CREATE TABLE IF NOT EXISTS app_user
(
    id            SERIAL PRIMARY KEY,
    username      VARCHAR     NOT NULL UNIQUE,
    email         VARCHAR     NOT NULL UNIQUE,
    password_hash VARCHAR     NOT NULL,
    regimen_id    INTEGER REFERENCES regimen (id),
    current_week  INTEGER     NOT NULL DEFAULT 1 CHECK (current_week > 0),
    maintenance   BOOLEAN     NOT NULL DEFAULT FALSE,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS goal_override
(
    user_id                INTEGER          NOT NULL REFERENCES app_user (id) ON DELETE CASCADE,
    regimen_id             INTEGER          NOT NULL REFERENCES regimen (id),
    week_number            INTEGER          NOT NULL,
    endurance_distance     DOUBLE PRECISION NOT NULL,
    stamina_reps           INTEGER          NOT NULL,
    stamina_time_per_rep   DOUBLE PRECISION NOT NULL,
    speed_reps             INTEGER          NOT NULL,
    speed_distance_per_rep DOUBLE PRECISION NOT NULL,
    PRIMARY KEY (user_id, regimen_id, week_number)
);

CREATE TABLE IF NOT EXISTS run
(
    id              SERIAL PRIMARY KEY,
    user_id         INTEGER          NOT NULL REFERENCES app_user (id) ON DELETE CASCADE,
    run_type        VARCHAR          NOT NULL,
    distance        DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (distance >= 0),
    duration        INTEGER          NOT NULL DEFAULT 0 CHECK (duration >= 0),
    cadence         INTEGER          NOT NULL DEFAULT 0,
    effort          DOUBLE PRECISION NOT NULL DEFAULT 0,
    location        VARCHAR          NOT NULL DEFAULT '',
    music_bpm       INTEGER          NOT NULL DEFAULT 0,
    breathing_tempo VARCHAR          NOT NULL DEFAULT '',
    reps            INTEGER          NOT NULL DEFAULT 0,
    rep_distance    DOUBLE PRECISION NOT NULL DEFAULT 0,
    rep_time        INTEGER          NOT NULL DEFAULT 0,
    metadata        JSONB            NOT NULL DEFAULT '{}',
    created_at      TIMESTAMPTZ      NOT NULL
);

CREATE INDEX IF NOT EXISTS ix_run_user_created_at ON run (user_id, created_at);
CREATE INDEX IF NOT EXISTS ix_run_user_type ON run (user_id, run_type);
`

// Migrate applies the schema. Safe to run multiple times.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	log.Debugln("db schema applied")
	return nil
}
