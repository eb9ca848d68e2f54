package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/runanalysis/internal/telemetry/tracing"
	"github.com/2beens/runanalysis/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

const userColumns = `id, username, email, password_hash, regimen_id, current_week, maintenance, created_at`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, newUser NewUser) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("username", newUser.Username))

	row := r.db.QueryRow(
		ctx,
		`INSERT INTO app_user (username, email, password_hash)
			VALUES ($1, $2, $3)
		RETURNING `+userColumns+`;`,
		newUser.Username, newUser.Email, newUser.PasswordHash,
	)

	user, err := scanUser(row)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	span.SetAttributes(attribute.Int("user.id", user.ID))
	return user, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", id))

	return r.getBy(ctx, "id", id)
}

func (r *Repo) GetByUsername(ctx context.Context, username string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.get-by-username")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("username", username))

	return r.getBy(ctx, "username", username)
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.get-by-email")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.getBy(ctx, "email", email)
}

// getBy is only called with a fixed set of column names, never with user input.
func (r *Repo) getBy(ctx context.Context, column string, value any) (*User, error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM app_user WHERE `+column+` = $1;`,
		value,
	)
	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by %s: %w", column, err)
	}
	return user, nil
}

func (r *Repo) UpdatePassword(ctx context.Context, id int, passwordHash string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.update-password")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", id))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE app_user SET password_hash = $1 WHERE id = $2;`,
		passwordHash, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*User, error) {
	var u User
	if err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash,
		&u.RegimenID, &u.CurrentWeek, &u.Maintenance, &u.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}
