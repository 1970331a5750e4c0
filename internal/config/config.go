package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

type (
	ServerConfig struct {
		Host      string `yaml:"host"`
		Port      string `yaml:"port"`
		AdminPort string `yaml:"admin_port"`
		LogLevel  string `yaml:"log_level"`
	}

	UpstreamConfig struct {
		BaseURL string        `yaml:"base_url"`
		Timeout time.Duration `yaml:"timeout"`
		Mock    bool          `yaml:"mock"`
	}

	Config struct {
		Server   ServerConfig   `yaml:"server"`
		Upstream UpstreamConfig `yaml:"upstream"`
	}
)

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:      "0.0.0.0",
			Port:      "8080",
			AdminPort: "9090",
			LogLevel:  "info",
		},
		Upstream: UpstreamConfig{
			BaseURL: "https://app.quidax.io/api/v1/trades/",
			Timeout: 10 * time.Second,
		},
	}
}

// LoadConfig builds the config from defaults, then the YAML file at path
// (skipped when path is empty), then environment variables.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("unmarshalling config file %s: %w", path, err)
		}
	}

	cfg.Server.Host = getEnv("HOST", cfg.Server.Host)
	cfg.Server.Port = getEnv("PORT", cfg.Server.Port)
	cfg.Server.AdminPort = getEnv("ADMIN_PORT", cfg.Server.AdminPort)
	cfg.Server.LogLevel = getEnv("LOG_LEVEL", cfg.Server.LogLevel)
	cfg.Upstream.BaseURL = getEnv("QUIDAX_BASE_URL", cfg.Upstream.BaseURL)

	if v := getEnv("UPSTREAM_TIMEOUT", ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid UPSTREAM_TIMEOUT %q: %w", v, err)
		}
		cfg.Upstream.Timeout = d
	}
	if v := getEnv("MOCK_UPSTREAM", ""); v != "" {
		mock, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid MOCK_UPSTREAM %q: %w", v, err)
		}
		cfg.Upstream.Mock = mock
	}

	if cfg.Upstream.Timeout <= 0 {
		return nil, fmt.Errorf("upstream timeout must be positive, got %s", cfg.Upstream.Timeout)
	}

	return cfg, nil
}

// SlogLevel maps the configured level name to a slog.Level, defaulting to info
func (s ServerConfig) SlogLevel() slog.Level {
	switch strings.ToLower(s.LogLevel) {
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

// NewLogger builds the process logger and installs it as the slog default
func NewLogger(level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}

	return defaultValue
}
