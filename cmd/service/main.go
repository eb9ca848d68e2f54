package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	"github.com/2beens/runanalysis/internal"
	"github.com/2beens/runanalysis/internal/config"
	"github.com/2beens/runanalysis/internal/logging"
	"github.com/2beens/runanalysis/pkg"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	fmt.Println("starting ...")

	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	envFile := flag.String("envfile", ".env", "optional file with the secrets env vars")
	flag.Parse()

	// secrets set in the real environment win over the .env file
	if err := godotenv.Load(*envFile); err != nil && !os.IsNotExist(err) {
		fmt.Printf("failed to load env file [%s]: %s\n", *envFile, err)
	}

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}

	sentryDSN := os.Getenv("SENTRY_DSN")
	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    cfg.LogFormatJSON,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        sentryDSN,
		SentryServerName: "runanalysis-service",
	})

	log.Warnf("---->> running in [%s] environment", cfg.Environment)
	log.Debugf("using port: %d", cfg.Port)
	log.Debugf("using server logs path: [%s]", cfg.LogsPath)

	versionInfo := cfg.VersionInfo
	if commitHash, err := tryGetLastCommitHash(); err != nil {
		log.Tracef("failed to get last commit hash / version info: %s", err)
	} else {
		versionInfo = commitHash
	}
	log.Tracef("running version: %s", versionInfo)

	redisPassword := os.Getenv("RUN_REDIS_PASS")
	if redisPassword == "" {
		log.Errorf("redis password not set. use RUN_REDIS_PASS")
	}

	postgresPassword := os.Getenv("RUN_POSTGRES_PASS")
	if postgresPassword == "" {
		log.Warnln("postgres password not set. use RUN_POSTGRES_PASS")
	}

	smtpPassword := os.Getenv("RUN_SMTP_PASS")
	if smtpPassword == "" && cfg.SMTPHost != "" {
		log.Errorf("smtp password not set. use RUN_SMTP_PASS")
	}

	if otelServiceName := os.Getenv("OTEL_SERVICE_NAME"); otelServiceName == "" {
		log.Warnln("OTEL_SERVICE_NAME env var not set")
	}

	honeycombEnabled := os.Getenv("HONEYCOMB_ENABLED") == "true"
	if honeycombEnabled {
		if honeycombApiKey := os.Getenv("HONEYCOMB_API_KEY"); honeycombApiKey == "" {
			log.Warnln("HONEYCOMB_API_KEY env var not set")
		}
	} else {
		log.Debugln("honeycomb tracing disabled")
	}

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())

	server, err := internal.NewServer(
		ctx,
		internal.NewServerParams{
			Config:                  cfg,
			VersionInfo:             versionInfo,
			RedisPassword:           redisPassword,
			PostgresPassword:        postgresPassword,
			SMTPPassword:            smtpPassword,
			HoneycombTracingEnabled: honeycombEnabled,
		},
	)
	if err != nil {
		log.Fatalf("new server: %s", err)
	}

	server.Serve(cfg.Host, cfg.Port)

	receivedSig := <-chOsInterrupt
	log.Warnf("signal [%s] received, killing everything ...", receivedSig)
	cancel()

	// go to sleep 🥱
	server.GracefulShutdown()
}

// tryGetLastCommitHash will try to get the last commit hash
// assumes that the built main executable is in project root
func tryGetLastCommitHash() (string, error) {
	cmd := exec.Command("/usr/bin/git", "rev-parse", "HEAD")
	stdout, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(pkg.BytesToString(stdout)), nil
}
