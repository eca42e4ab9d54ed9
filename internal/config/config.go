package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/claude/bodyfat/internal/formulas"
	"github.com/claude/bodyfat/internal/models"
)

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Auth        AuthConfig        `yaml:"auth"`
	Preferences PreferencesConfig `yaml:"preferences"`
	Tailscale   TailscaleConfig   `yaml:"tailscale"`
	Defaults    DefaultsConfig    `yaml:"defaults"`
	Log         LogConfig         `yaml:"log"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

// PreferencesConfig locates the SQLite preference database directory.
type PreferencesConfig struct {
	Path string `yaml:"path"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// DefaultsConfig holds the selections used when a user has saved none.
type DefaultsConfig struct {
	System  models.MeasurementSystem `yaml:"system"`
	Formula models.FormulaID         `yaml:"formula"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// SlogLevel maps the configured level name to a slog.Level. Unknown names
// mean info.
func (l LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Load reads config from a YAML file, then applies environment variable overrides.
// Env vars use the prefix BODYFAT_ and underscore-separated paths:
//
//	BODYFAT_SERVER_HOST, BODYFAT_SERVER_PORT, BODYFAT_AUTH_API_KEY,
//	BODYFAT_PREFS_PATH, BODYFAT_TAILSCALE_ENABLED, BODYFAT_TAILSCALE_HOSTNAME,
//	BODYFAT_TAILSCALE_STATE_DIR, BODYFAT_DEFAULT_SYSTEM, BODYFAT_DEFAULT_FORMULA,
//	BODYFAT_LOG_LEVEL
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("BODYFAT_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("BODYFAT_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("BODYFAT_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
	if v := os.Getenv("BODYFAT_PREFS_PATH"); v != "" {
		cfg.Preferences.Path = v
	}
	if v := os.Getenv("BODYFAT_TAILSCALE_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Tailscale.Enabled = enabled
		}
	}
	if v := os.Getenv("BODYFAT_TAILSCALE_HOSTNAME"); v != "" {
		cfg.Tailscale.Hostname = v
	}
	if v := os.Getenv("BODYFAT_TAILSCALE_STATE_DIR"); v != "" {
		cfg.Tailscale.StateDir = v
	}
	if v := os.Getenv("BODYFAT_DEFAULT_SYSTEM"); v != "" {
		cfg.Defaults.System = models.MeasurementSystem(v)
	}
	if v := os.Getenv("BODYFAT_DEFAULT_FORMULA"); v != "" {
		cfg.Defaults.Formula = models.FormulaID(v)
	}
	if v := os.Getenv("BODYFAT_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Defaults.System == "" {
		cfg.Defaults.System = models.SystemMetric
	}
	if cfg.Defaults.Formula == "" {
		cfg.Defaults.Formula = models.FormulaNavy
	}
	if cfg.Preferences.Path == "" {
		cfg.Preferences.Path = "data"
	}
	if cfg.Tailscale.StateDir == "" {
		cfg.Tailscale.StateDir = "tsnet-state"
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.Auth.APIKey == "" {
		return fmt.Errorf("auth.api_key is required")
	}
	system, err := models.ParseMeasurementSystem(string(c.Defaults.System))
	if err != nil {
		return fmt.Errorf("defaults.system: %w", err)
	}
	c.Defaults.System = system
	if !formulas.IsAvailable(c.Defaults.Formula) {
		return fmt.Errorf("defaults.formula: unknown formula %q", c.Defaults.Formula)
	}
	if c.Tailscale.Enabled && c.Tailscale.Hostname == "" {
		return fmt.Errorf("tailscale.hostname is required when tailscale is enabled")
	}
	return nil
}
