package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	VersionInfo string `toml:"version_info"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresUser   string `toml:"postgres_user"`
	PostgresDBName string `toml:"postgres_db_name"`

	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// auth
	SessionTTLHours             int      `toml:"session_ttl_hours"`
	LoginRateLimitAllowedPerMin int      `toml:"login_rate_limit_allowed_per_min"`
	AllowedOrigins              []string `toml:"allowed_origins"`

	// password recovery
	RecoveryTokenTTLMinutes int    `toml:"recovery_token_ttl_minutes"`
	RecoveryLinkBaseURL     string `toml:"recovery_link_base_url"`
	SMTPHost                string `toml:"smtp_host"`
	SMTPPort                int    `toml:"smtp_port"`
	SMTPUsername            string `toml:"smtp_username"`
	SMTPFrom                string `toml:"smtp_from"`

	// regimen definitions are immutable, cached in memory
	RegimenCacheSizeMB int `toml:"regimen_cache_size_mb"`
}

func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLHours) * time.Hour
}

func (c *Config) RecoveryTokenTTL() time.Duration {
	return time.Duration(c.RecoveryTokenTTLMinutes) * time.Minute
}

// applyDefaults fills in the values which are safe to default
func (c *Config) applyDefaults() {
	if c.SessionTTLHours <= 0 {
		c.SessionTTLHours = 24 * 7
	}
	if c.LoginRateLimitAllowedPerMin <= 0 {
		c.LoginRateLimitAllowedPerMin = 15
	}
	if c.RecoveryTokenTTLMinutes <= 0 {
		c.RecoveryTokenTTLMinutes = 60
	}
	if c.RegimenCacheSizeMB <= 0 {
		c.RegimenCacheSizeMB = 5
	}
	if c.PostgresUser == "" {
		c.PostgresUser = "postgres"
	}
}

func (c *Config) validate() error {
	if c.Port <= 0 {
		return errors.New("port not set")
	}
	if c.PostgresHost == "" || c.PostgresPort == "" || c.PostgresDBName == "" {
		return errors.New("postgres host, port and db name must be set")
	}
	if c.RedisHost == "" || c.RedisPort == "" {
		return errors.New("redis host and port must be set")
	}
	if c.SMTPHost != "" && c.SMTPFrom == "" {
		return errors.New("smtp from address must be set when smtp host is set")
	}
	return nil
}

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Toml struct {
	Development *Config
	Production  *Config
}

// Get returns the config for the given env and the canonical env name.
func (t *Toml) Get(env string) (*Config, string, error) {
	var cfg *Config
	var name string
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg, name = t.Development, EnvDevelopment
	case "prod", "production":
		cfg, name = t.Production, EnvProduction
	default:
		return nil, "", fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, "", fmt.Errorf("env [%s] not present in config", env)
	}
	return cfg, name, nil
}

// Load reads the TOML config file and returns the config for the given environment.
func Load(env string, path string) (*Config, error) {
	var tomlConfig Toml
	if _, err := toml.DecodeFile(path, &tomlConfig); err != nil {
		return nil, fmt.Errorf("decode config file [%s]: %w", path, err)
	}
	return fromToml(&tomlConfig, env)
}

// Parse is like Load, but reads the config from a TOML string.
func Parse(env string, data string) (*Config, error) {
	var tomlConfig Toml
	if _, err := toml.Decode(data, &tomlConfig); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return fromToml(&tomlConfig, env)
}

func fromToml(tomlConfig *Toml, env string) (*Config, error) {
	cfg, envName, err := tomlConfig.Get(env)
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid [%s] config: %w", env, err)
	}
	if cfg.Environment == "" {
		cfg.Environment = envName
	}

	return cfg, nil
}
