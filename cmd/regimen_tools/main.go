package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/2beens/runanalysis/internal/config"
	"github.com/2beens/runanalysis/internal/db"
	"github.com/2beens/runanalysis/internal/logging"
	"github.com/2beens/runanalysis/internal/regimen"
	"github.com/2beens/runanalysis/pkg"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	env        string
	configPath string
	envFile    string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "regimen_tools",
		Short:        "runanalysis db and regimen maintenance",
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
				fmt.Printf("failed to load env file [%s]: %s\n", envFile, err)
			}
			logging.Setup(logging.LoggerSetupParams{
				LogToStdout: true,
				LogLevel:    "debug",
				Environment: env,
			})
		},
	}
	rootCmd.PersistentFlags().StringVar(&env, "env", "development", "environment [prod | production | dev | development]")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./config.toml", "path for the TOML config file")
	rootCmd.PersistentFlags().StringVar(&envFile, "envfile", ".env", "optional file with the secrets env vars")

	rootCmd.AddCommand(
		newMigrateCmd(),
		newSeedCmd(),
		newHashCmd(),
		newResolveCmd(),
	)
	return rootCmd
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "apply the db schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(cmd.Context(), func(ctx context.Context, pool *pgxpool.Pool) error {
				return db.Migrate(ctx, pool)
			})
		},
	}
}

func newSeedCmd() *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "store the built-in regimens and their weekly goals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(cmd.Context(), func(ctx context.Context, pool *pgxpool.Pool) error {
				if migrate {
					if err := db.Migrate(ctx, pool); err != nil {
						return err
					}
				}

				repo := regimen.NewRepo(pool)
				for _, def := range regimen.BuiltIn() {
					if err := repo.UpsertDefinition(ctx, def); err != nil {
						return fmt.Errorf("seed regimen %d: %w", def.Regimen.ID, err)
					}
					log.Infof("regimen [%d] %s seeded with %d week rows", def.Regimen.ID, def.Regimen.Name, len(def.Weeks))
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply the db schema first")
	return cmd
}

func newHashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash <password>",
		Short: "print the bcrypt hash of a password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := pkg.HashPassword(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

// resolve works on the built-in definitions only, no db needed
func newResolveCmd() *cobra.Command {
	var (
		regimenID   int
		week        int
		maintenance bool
		date        string
	)
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "print the resolved week and goals for the given state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			now := time.Now()
			if date != "" {
				parsed, err := time.Parse(time.DateOnly, date)
				if err != nil {
					return fmt.Errorf("parse date: %w", err)
				}
				now = parsed
			}

			var def *regimen.Definition
			for _, d := range regimen.BuiltIn() {
				if d.Regimen.ID == regimenID {
					def = &d
					break
				}
			}
			if def == nil {
				return regimen.ErrRegimenNotFound
			}

			resolution, err := regimen.Resolve(regimen.ResolveParams{
				Regimen:     def.Regimen,
				CurrentWeek: week,
				Maintenance: maintenance,
				Date:        now,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "status: %s\n", resolution.Status)
			if resolution.Status == regimen.StatusCompletionPrompt {
				return nil
			}
			for _, w := range def.Weeks {
				if w.WeekNumber == resolution.WeekNumber && w.Variant == resolution.Variant {
					fmt.Fprintf(out, "week %d (%s): %+v\n", w.WeekNumber, w.Variant, w.Goals)
					return nil
				}
			}
			return regimen.ErrWeekNotFound
		},
	}
	cmd.Flags().IntVar(&regimenID, "regimen", regimen.NSWCandidateID, "regimen id")
	cmd.Flags().IntVar(&week, "week", 1, "current week")
	cmd.Flags().BoolVar(&maintenance, "maintenance", false, "maintenance mode")
	cmd.Flags().StringVar(&date, "date", "", "date used for the monthly cycle variant, YYYY-MM-DD")
	return cmd
}

func withDB(ctx context.Context, fn func(ctx context.Context, pool *pgxpool.Pool) error) error {
	cfg, err := config.Load(env, configPath)
	if err != nil {
		return err
	}

	pool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBUser:     cfg.PostgresUser,
		DBPassword: os.Getenv("RUN_POSTGRES_PASS"),
	})
	if err != nil {
		return fmt.Errorf("new db pool: %w", err)
	}
	defer pool.Close()

	return fn(ctx, pool)
}
