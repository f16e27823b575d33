package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
	t.Setenv("GYMCOACH_CONFIG_PATH", "")
	t.Setenv("GYMCOACH_ENV_FILE", filepath.Join(dir, "missing.env"))
	for _, k := range []string{
		"LOG_MODE", "GYMCOACH_API_BASE_URL", "GYMCOACH_API_KEY", "GYMCOACH_CHAT_PATH",
		"GYMCOACH_REQUEST_TIMEOUT_SECONDS", "GYMCOACH_MAX_UPLOAD_BYTES", "GYMCOACH_HTTP_ADDR",
		"GYMCOACH_CORS_ORIGINS", "GYMCOACH_TELEGRAM_TOKEN", "GYMCOACH_TELEGRAM_DEBUG",
	} {
		t.Setenv(k, "")
	}
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != DefaultBaseURL || cfg.API.ChatPath != "/chat" {
		t.Fatalf("api=%+v", cfg.API)
	}
	if cfg.API.Timeout.Duration != 0 {
		t.Fatalf("timeout should default to none, got %v", cfg.API.Timeout.Duration)
	}
	if cfg.API.MaxUploadBytes != 10<<20 {
		t.Fatalf("max upload=%d", cfg.API.MaxUploadBytes)
	}
}

func TestLoadYAMLThenEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "gymcoach.yaml")
	yml := `
api:
  base_url: http://coach.internal:9000/api/v1/
  chat_path: /coach
  timeout: 30s
http:
  addr: ":9090"
session:
  ttl: 1h
`
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("GYMCOACH_CONFIG_PATH", path)
	t.Setenv("GYMCOACH_HTTP_ADDR", ":7070")
	t.Setenv("GYMCOACH_CORS_ORIGINS", "http://a.test, http://b.test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != "http://coach.internal:9000/api/v1" || cfg.API.ChatPath != "/coach" {
		t.Fatalf("api=%+v", cfg.API)
	}
	if cfg.API.Timeout.Duration != 30*time.Second || cfg.Session.TTL.Duration != time.Hour {
		t.Fatalf("durations: %v %v", cfg.API.Timeout.Duration, cfg.Session.TTL.Duration)
	}
	if cfg.HTTP.Addr != ":7070" {
		t.Fatalf("env should override file, addr=%q", cfg.HTTP.Addr)
	}
	if len(cfg.HTTP.CORSOrigins) != 2 || cfg.HTTP.CORSOrigins[1] != "http://b.test" {
		t.Fatalf("cors=%v", cfg.HTTP.CORSOrigins)
	}
	if cfg.API.MaxUploadBytes != DefaultMaxUploadBytes {
		t.Fatalf("omitted fields should keep defaults, got %d", cfg.API.MaxUploadBytes)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := isolate(t)
	envPath := filepath.Join(dir, "test.env")
	if err := os.WriteFile(envPath, []byte("GYMCOACH_REQUEST_TIMEOUT_SECONDS=12\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("GYMCOACH_ENV_FILE", envPath)
	// godotenv does not override variables that are already set, even empty ones.
	os.Unsetenv("GYMCOACH_REQUEST_TIMEOUT_SECONDS")
	t.Cleanup(func() { os.Unsetenv("GYMCOACH_REQUEST_TIMEOUT_SECONDS") })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.Timeout.Duration != 12*time.Second {
		t.Fatalf("timeout=%v", cfg.API.Timeout.Duration)
	}
}

func TestLoadRejectsRelativeBaseURL(t *testing.T) {
	isolate(t)
	t.Setenv("GYMCOACH_API_BASE_URL", "/api/v1")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error")
	}
}

func TestDurationJSON(t *testing.T) {
	var d Duration
	if err := d.UnmarshalJSON([]byte(`"1m"`)); err != nil || d.Duration != time.Minute {
		t.Fatalf("d=%v err=%v", d.Duration, err)
	}
	if err := d.UnmarshalJSON([]byte(`1000`)); err != nil || d.Duration != time.Microsecond {
		t.Fatalf("d=%v err=%v", d.Duration, err)
	}
	if err := d.UnmarshalJSON([]byte(`"soon"`)); err == nil {
		t.Fatalf("expected error")
	}
}
