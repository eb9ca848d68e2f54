package testinternals

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/2beens/runanalysis/internal/db"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

const TestDBName = "runanalysis_test"

// NewTestDBPool connects to the test postgres (POSTGRES_HOST, default localhost),
// applies the schema and empties all user data tables.
func NewTestDBPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	timeoutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	host := os.Getenv("POSTGRES_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("POSTGRES_PORT")
	if port == "" {
		port = "5432"
	}
	t.Logf("using postres host: %s:%s", host, port)

	dbPool, err := db.NewDBPool(timeoutCtx, db.NewDBPoolParams{
		DBHost:     host,
		DBPort:     port,
		DBName:     TestDBName,
		DBPassword: os.Getenv("POSTGRES_PASSWORD"),
	})
	require.NoError(t, err)
	t.Cleanup(dbPool.Close)

	require.NoError(t, db.Migrate(timeoutCtx, dbPool))
	require.NoError(t, Truncate(timeoutCtx, dbPool))

	return dbPool
}

// Truncate removes users, their runs and overrides. Regimen definitions are kept.
func Truncate(ctx context.Context, dbPool *pgxpool.Pool) error {
	_, err := dbPool.Exec(ctx, `TRUNCATE run, goal_override, app_user RESTART IDENTITY CASCADE;`)
	return err
}

type FakeUser struct {
	Username string
	Email    string
	Password string
}

func NewFakeUser(faker *gofakeit.Faker) FakeUser {
	return FakeUser{
		Username: faker.Username() + faker.DigitN(4),
		Email:    faker.Email(),
		Password: faker.Password(true, true, true, false, false, 12),
	}
}
