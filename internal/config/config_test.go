package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/claude/bodyfat/internal/models"
)

const validYAML = `
server:
  host: "0.0.0.0"
  port: 8080
auth:
  api_key: "test-key-123"
preferences:
  path: "/var/lib/bodyfat"
defaults:
  system: "imperial"
  formula: "jack7"
log:
  level: "debug"
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLoadValid verifies that a well-formed YAML config loads with all fields populated.
func TestLoadValid(t *testing.T) {
	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Auth.APIKey != "test-key-123" {
		t.Errorf("auth.api_key = %q, want %q", cfg.Auth.APIKey, "test-key-123")
	}
	if cfg.Preferences.Path != "/var/lib/bodyfat" {
		t.Errorf("preferences.path = %q", cfg.Preferences.Path)
	}
	if cfg.Defaults.System != models.SystemImperial {
		t.Errorf("defaults.system = %q, want imperial", cfg.Defaults.System)
	}
	if cfg.Defaults.Formula != models.FormulaJack7 {
		t.Errorf("defaults.formula = %q, want jack7", cfg.Defaults.Formula)
	}
	if cfg.Log.SlogLevel() != slog.LevelDebug {
		t.Errorf("log level = %v, want debug", cfg.Log.SlogLevel())
	}
}

// TestDefaults verifies that omitted optional sections fall back to metric,
// the Navy formula and info logging.
func TestDefaults(t *testing.T) {
	cfg, err := Load(writeTemp(t, "server:\n  port: 8080\nauth:\n  api_key: k\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Defaults.System != models.SystemMetric {
		t.Errorf("defaults.system = %q, want metric", cfg.Defaults.System)
	}
	if cfg.Defaults.Formula != models.FormulaNavy {
		t.Errorf("defaults.formula = %q, want navy", cfg.Defaults.Formula)
	}
	if cfg.Preferences.Path != "data" {
		t.Errorf("preferences.path = %q, want data", cfg.Preferences.Path)
	}
	if cfg.Log.SlogLevel() != slog.LevelInfo {
		t.Errorf("log level = %v, want info", cfg.Log.SlogLevel())
	}
}

// TestEnvOverride verifies that BODYFAT_ env vars take precedence over YAML values.
// This ensures production deployments can override config via environment.
func TestEnvOverride(t *testing.T) {
	t.Setenv("BODYFAT_SERVER_PORT", "9999")
	t.Setenv("BODYFAT_AUTH_API_KEY", "env-key")
	t.Setenv("BODYFAT_DEFAULT_SYSTEM", "Metric")
	t.Setenv("BODYFAT_DEFAULT_FORMULA", "ymca")
	t.Setenv("BODYFAT_TAILSCALE_ENABLED", "true")
	t.Setenv("BODYFAT_TAILSCALE_HOSTNAME", "bodyfat")
	t.Setenv("BODYFAT_LOG_LEVEL", "warn")

	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("server.port = %d, want 9999", cfg.Server.Port)
	}
	if cfg.Auth.APIKey != "env-key" {
		t.Errorf("auth.api_key = %q, want %q", cfg.Auth.APIKey, "env-key")
	}
	if cfg.Defaults.System != models.SystemMetric {
		t.Errorf("defaults.system = %q, want metric", cfg.Defaults.System)
	}
	if cfg.Defaults.Formula != models.FormulaYMCA {
		t.Errorf("defaults.formula = %q, want ymca", cfg.Defaults.Formula)
	}
	if !cfg.Tailscale.Enabled || cfg.Tailscale.Hostname != "bodyfat" {
		t.Errorf("tailscale = %+v", cfg.Tailscale)
	}
	if cfg.Log.SlogLevel() != slog.LevelWarn {
		t.Errorf("log level = %v, want warn", cfg.Log.SlogLevel())
	}
	// Unchanged fields should keep YAML values
	if cfg.Preferences.Path != "/var/lib/bodyfat" {
		t.Errorf("preferences.path = %q", cfg.Preferences.Path)
	}
}

// TestValidationErrors verifies that incomplete or inconsistent configs are
// rejected before the server starts.
func TestValidationErrors(t *testing.T) {
	cases := map[string]string{
		"missing port":      "server:\n  host: x\nauth:\n  api_key: k\n",
		"missing api key":   "server:\n  port: 8080\nauth: {}\n",
		"bad system":        "server:\n  port: 8080\nauth:\n  api_key: k\ndefaults:\n  system: nautical\n",
		"bad formula":       "server:\n  port: 8080\nauth:\n  api_key: k\ndefaults:\n  formula: bmi\n",
		"tailscale no host": "server:\n  port: 8080\nauth:\n  api_key: k\ntailscale:\n  enabled: true\n",
	}
	for name, yaml := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeTemp(t, yaml)); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

// TestLoadMissingFile verifies that a missing config file returns a clear error.
func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
