package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// DatabaseConfig holds the database connection information.
type DatabaseConfig struct {
	Type string `yaml:"type"`
	DSN  string `yaml:"dsn"`
}

// AdminConfig holds configuration for the admin API.
type AdminConfig struct {
	Password string `yaml:"password"`
}

// CORSConfig lists the origins browsers may call the API from.
// An empty list allows any origin; per-key integrations still apply.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// UsageConfig controls how usage records are captured and retained.
// A negative RetentionDays keeps usage logs forever.
type UsageConfig struct {
	RetentionDays int `yaml:"retention_days"`
	MaxBodyBytes  int `yaml:"max_body_bytes"`
	QueueSize     int `yaml:"queue_size"`
}

// SchedulerConfig holds configuration for the scheduler.
type SchedulerConfig struct {
	UsagePruneSpec string `yaml:"usage_prune_spec"`
}

// Config holds the configuration for the service.
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Admin     AdminConfig     `yaml:"admin"`
	CORS      CORSConfig      `yaml:"cors"`
	Usage     UsageConfig     `yaml:"usage"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Port      int             `yaml:"port"`
	Debug     bool            `yaml:"debug"`
	LogLevel  string          `yaml:"log_level"`
}

const envPrefix = "FOLIOAPI_"

// LoadConfig reads and parses the configuration file. It returns the config and
// the warnings produced while applying defaults.
var LoadConfig = func(path string) (*Config, []string, error) {
	var config Config
	var warnings []string

	// A missing .env file is the normal case outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err == nil {
		err = yaml.Unmarshal(data, &config)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("failed to read config file: %w", err)
	}
	// If file does not exist, we continue with an empty config and rely on environment variables.

	if err := applyEnv(&config); err != nil {
		return nil, nil, err
	}
	warnings = applyDefaults(&config)

	if config.Database.Type == "" || config.Database.DSN == "" {
		return nil, nil, fmt.Errorf("database type and dsn must be configured in config.yaml or via environment variables")
	}

	return &config, warnings, nil
}

func applyEnv(config *Config) error {
	if dsn := os.Getenv(envPrefix + "DATABASE_DSN"); dsn != "" {
		config.Database.DSN = dsn
	}
	if dbType := os.Getenv(envPrefix + "DATABASE_TYPE"); dbType != "" {
		config.Database.Type = dbType
	}
	if password := os.Getenv(envPrefix + "ADMIN_PASSWORD"); password != "" {
		config.Admin.Password = password
	}
	if level := os.Getenv(envPrefix + "LOG_LEVEL"); level != "" {
		config.LogLevel = level
	}
	if debug := os.Getenv(envPrefix + "DEBUG"); debug != "" {
		config.Debug = debug == "true"
	}
	if origins := os.Getenv(envPrefix + "CORS_ALLOWED_ORIGINS"); origins != "" {
		config.CORS.AllowedOrigins = splitList(origins)
	}
	if spec := os.Getenv(envPrefix + "USAGE_PRUNE_SPEC"); spec != "" {
		config.Scheduler.UsagePruneSpec = spec
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"PORT", &config.Port},
		{"USAGE_RETENTION_DAYS", &config.Usage.RetentionDays},
		{"USAGE_MAX_BODY_BYTES", &config.Usage.MaxBodyBytes},
		{"USAGE_QUEUE_SIZE", &config.Usage.QueueSize},
	}
	for _, v := range ints {
		raw := os.Getenv(envPrefix + v.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid %s%s %q: %w", envPrefix, v.name, raw, err)
		}
		*v.dst = n
	}
	return nil
}

func applyDefaults(config *Config) []string {
	var warnings []string
	if config.Port == 0 {
		config.Port = 8080
	}
	if config.Database.Type == "" && config.Database.DSN == "" {
		config.Database.Type = "sqlite"
		config.Database.DSN = "folio.db"
		warnings = append(warnings, "database not configured, using sqlite file folio.db")
	}
	if config.Usage.RetentionDays == 0 {
		config.Usage.RetentionDays = 90
		warnings = append(warnings, "usage.retention_days not set, using default value of 90")
	}
	if config.Usage.MaxBodyBytes <= 0 {
		config.Usage.MaxBodyBytes = 4096
	}
	if config.Usage.QueueSize <= 0 {
		config.Usage.QueueSize = 256
	}
	if config.Scheduler.UsagePruneSpec == "" {
		config.Scheduler.UsagePruneSpec = "@daily"
	}
	if config.Admin.Password == "" {
		warnings = append(warnings, "admin.password not set, admin API only accepts database users")
	}
	return warnings
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
