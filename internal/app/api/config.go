package api

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"go.temporal.io/sdk/client"
)

// Config carries environment-driven settings for the API, worker and
// maintenance commands.
type Config struct {
	Port              string `mapstructure:"port" validate:"required,numeric"`
	PostgresDSN       string `mapstructure:"postgres_dsn"`
	SQLitePath        string `mapstructure:"sqlite_path"`
	TemporalAddress   string `mapstructure:"temporal_address" validate:"required_if=TemporalDisabled false"`
	TemporalNamespace string `mapstructure:"temporal_namespace" validate:"required_if=TemporalDisabled false"`
	TemporalDisabled  bool   `mapstructure:"temporal_disabled"`
	LogFile           string `mapstructure:"log_file"`
	LogLevel          string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	Environment       string `mapstructure:"environment" validate:"required"`
	SeedFile          string `mapstructure:"seed_file"`
}

var configKeys = map[string]any{
	"port":               "8080",
	"postgres_dsn":       "",
	"sqlite_path":        "",
	"temporal_address":   client.DefaultHostPort,
	"temporal_namespace": client.DefaultNamespace,
	"temporal_disabled":  false,
	"log_file":           "",
	"log_level":          "info",
	"environment":        "local",
	"seed_file":          "",
}

// LoadConfig reads environment variables, and the file named by CONFIG_FILE
// when set, applies defaults and validates the result. Environment variables
// take precedence over the file.
func LoadConfig() (Config, error) {
	v := viper.New()
	for key, value := range configKeys {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()
	_ = v.BindEnv("config_file", "CONFIG_FILE")

	if path := strings.TrimSpace(v.GetString("config_file")); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SlogLevel maps LogLevel onto slog.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
