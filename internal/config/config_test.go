package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
apiBaseURL: https://api.example.com
logLevel: debug
dataDir: ./data/books
prefsPath: ./data/prefs.json
pollInterval: 2s
pollCompletionGrace: 500ms
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIBaseURL != "https://api.example.com" || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	interval, err := ParsePollInterval(cfg.PollInterval)
	if err != nil || interval != 2*time.Second {
		t.Fatalf("poll interval = %v, %v", interval, err)
	}
	grace, err := ParseCompletionGrace(cfg.PollCompletionGrace)
	if err != nil || grace != 500*time.Millisecond {
		t.Fatalf("completion grace = %v, %v", grace, err)
	}
}

func TestLoadRequiresBaseURL(t *testing.T) {
	path := writeConfig(t, `
dataDir: ./data
prefsPath: ./prefs.json
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for missing apiBaseURL")
	}
}

func TestLoadRequiresPrefsBackend(t *testing.T) {
	path := writeConfig(t, `
apiBaseURL: https://api.example.com
dataDir: ./data
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error when neither prefsPath nor redisAddr is set")
	}
}

func TestEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
apiBaseURL: https://api.example.com
dataDir: ./data
prefsPath: ./prefs.json
`)
	t.Setenv("BOOKFORGE_API_BASE_URL", "http://localhost:8000")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("BOOKFORGE_POLL_COMPLETION_GRACE", "250ms")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIBaseURL != "http://localhost:8000" {
		t.Fatalf("env override not applied: %q", cfg.APIBaseURL)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Fatalf("redis env override not applied: %q", cfg.RedisAddr)
	}
	grace, err := ParseCompletionGrace(cfg.PollCompletionGrace)
	if err != nil || grace != 250*time.Millisecond {
		t.Fatalf("completion grace env override not applied: %v, %v", grace, err)
	}
}

func TestDefaultDurations(t *testing.T) {
	interval, err := ParsePollInterval("")
	if err != nil || interval != 3*time.Second {
		t.Fatalf("default poll interval = %v, %v", interval, err)
	}
	grace, err := ParseCompletionGrace("")
	if err != nil || grace != 1500*time.Millisecond {
		t.Fatalf("default completion grace = %v, %v", grace, err)
	}
}

func TestInvalidDurations(t *testing.T) {
	if _, err := ParsePollInterval("soon"); err == nil {
		t.Fatalf("expected error for invalid interval")
	}
	if _, err := ParsePollInterval("-3s"); err == nil {
		t.Fatalf("expected error for negative interval")
	}
	if _, err := ParseCompletionGrace("-1s"); err == nil {
		t.Fatalf("expected error for negative grace")
	}
}

func TestInvalidDownloadFormat(t *testing.T) {
	path := writeConfig(t, `
apiBaseURL: https://api.example.com
dataDir: ./data
prefsPath: ./prefs.json
defaultDownloadFormat: mobi
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for unsupported download format")
	}
}
