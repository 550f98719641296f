package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Backend names accepted in StoreConfig.Backend.
const (
	BackendPostgres = "postgres"
	BackendSheet    = "sheet"
)

// Config struct to hold the configuration settings
type Config struct {
	HTTP          HTTPConfig          `yaml:"http"`
	Store         StoreConfig         `yaml:"store"`
	Postgres      PostgresConfig      `yaml:"postgres"`
	Sheet         SheetConfig         `yaml:"sheet"`
	Observability ObservabilityConfig `yaml:"observability"`
	Client        ClientConfig        `yaml:"client"`
}

// HTTPConfig holds the score service's listener settings.
type HTTPConfig struct {
	Address             string   `yaml:"address"`
	AllowedOrigins      []string `yaml:"allowed_origins"`
	SubmitRatePerSecond float64  `yaml:"submit_rate_per_second"`
	SubmitBurst         int      `yaml:"submit_burst"`
}

// StoreConfig selects which ranking store backend the service runs on.
type StoreConfig struct {
	Backend string `yaml:"backend"` // postgres|sheet
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// SheetConfig holds the spreadsheet backend configuration.
type SheetConfig struct {
	Path string `yaml:"path"`
}

// ObservabilityConfig holds configuration for observability components.
type ObservabilityConfig struct {
	MetricsAddress string `yaml:"metrics_address"` // empty disables the metrics listener
}

// ClientConfig holds the game-client manager settings.
type ClientConfig struct {
	RemoteURL      string        `yaml:"remote_url"`
	CachePath      string        `yaml:"cache_path"`
	RequestTimeout time.Duration `yaml:"request_timeout"` // zero means no timeout
}

// LoadConfig loads the configuration from a YAML file, falling back to
// environment variables when the file is absent. Env vars override file
// values either way.
func LoadConfig(filename string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(filename)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if cfg.Store.Backend != BackendPostgres && cfg.Store.Backend != BackendSheet {
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
	if cfg.Store.Backend == BackendPostgres && cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("postgres backend selected but no DSN configured")
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.HTTP.Address == "" {
		cfg.HTTP.Address = ":8080"
	}
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = BackendPostgres
	}
	if cfg.Sheet.Path == "" {
		cfg.Sheet.Path = "scoreboards.xlsx"
	}
	if cfg.HTTP.SubmitBurst == 0 {
		cfg.HTTP.SubmitBurst = 5
	}
	if cfg.Client.CachePath == "" {
		cfg.Client.CachePath = "leaderboard_cache.db"
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("STORE_BACKEND"); v != "" {
		cfg.Store.Backend = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("SHEET_PATH"); v != "" {
		cfg.Sheet.Path = v
	}
	if v := os.Getenv("METRICS_ADDRESS"); v != "" {
		cfg.Observability.MetricsAddress = v
	}
	if v := os.Getenv("SUBMIT_RATE_PER_SECOND"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.HTTP.SubmitRatePerSecond = f
		}
	}
	if v := os.Getenv("SUBMIT_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.SubmitBurst = n
		}
	}
	if v := os.Getenv("REMOTE_URL"); v != "" {
		cfg.Client.RemoteURL = v
	}
	if v := os.Getenv("CACHE_PATH"); v != "" {
		cfg.Client.CachePath = v
	}
	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Client.RequestTimeout = d
		}
	}
}
