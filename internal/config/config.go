package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full application configuration. Only the sections a command
// actually uses need to be populated: `analyze` runs with the zero value.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Telegram TelegramConfig `yaml:"telegram"`
	Redis    RedisConfig    `yaml:"redis"`
	Worker   WorkerConfig   `yaml:"worker"`
}

// DatabaseConfig holds the Postgres connection settings for the exporter.
// Durations are plain integers so the YAML stays shell-friendly.
type DatabaseConfig struct {
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
	QueryTimeoutSeconds    int    `yaml:"query_timeout_seconds"`
}

// ConnMaxLifetime returns the pool connection lifetime.
func (c DatabaseConfig) ConnMaxLifetime() time.Duration {
	return time.Duration(c.ConnMaxLifetimeMinutes) * time.Minute
}

// QueryTimeout returns the per-query timeout.
func (c DatabaseConfig) QueryTimeout() time.Duration {
	return time.Duration(c.QueryTimeoutSeconds) * time.Second
}

// AnalysisConfig holds the analyzer's input/output locations.
type AnalysisConfig struct {
	DatasetPath string `yaml:"dataset_path"`
}

// TelegramConfig holds the notification settings. An empty token disables
// delivery.
type TelegramConfig struct {
	BotToken string  `yaml:"bot_token"`
	ChatIDs  []int64 `yaml:"chat_ids"`
}

// RedisConfig selects the run-state backend. An empty address keeps state in
// memory.
type RedisConfig struct {
	Addr string `yaml:"addr"`
	DB   int    `yaml:"db"`
}

// WorkerConfig holds the scheduled-run settings.
type WorkerConfig struct {
	Schedule string `yaml:"schedule"`
	HTTPAddr string `yaml:"http_addr"`
}

// Default returns the configuration used when no config file is given. The
// schedule mirrors the production setup: one analysis run every morning at
// 09:00 UTC.
func Default() Config {
	return Config{
		Database: DatabaseConfig{
			MaxOpenConns:           10,
			MaxIdleConns:           5,
			ConnMaxLifetimeMinutes: 30,
			QueryTimeoutSeconds:    30,
		},
		Analysis: AnalysisConfig{
			DatasetPath: "betting_opportunities_analysis.csv",
		},
		Worker: WorkerConfig{
			Schedule: "0 9 * * *",
			HTTPAddr: "127.0.0.1:8080",
		},
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
