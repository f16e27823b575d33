package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/yungbote/gymcoach/internal/platform/envutil"
)

const (
	DefaultBaseURL        = "http://localhost:8000/api/v1"
	DefaultChatPath       = "/chat"
	DefaultMaxUploadBytes = 10 << 20
)

func (d *Duration) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		d.Duration = 0
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		u, err := strconv.Unquote(s)
		if err != nil {
			return err
		}
		return d.parse(u)
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("duration must be a JSON string like \"5s\" or an int nanoseconds: %w", err)
	}
	d.Duration = time.Duration(n)
	return nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Tag == "!!int" {
		n, err := strconv.ParseInt(node.Value, 10, 64)
		if err != nil {
			return err
		}
		d.Duration = time.Duration(n)
		return nil
	}
	return d.parse(node.Value)
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Duration.String())
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

func (d *Duration) parse(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		d.Duration = 0
		return nil
	}
	dd, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	d.Duration = dd
	return nil
}

func defaultConfig() *Config {
	return &Config{
		Env: "development",
		API: APIConfig{
			BaseURL:           DefaultBaseURL,
			ChatPath:          DefaultChatPath,
			MaxUploadBytes:    DefaultMaxUploadBytes,
			AllowedMimePrefix: "image/",
		},
		HTTP: HTTPConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: Duration{Duration: 5 * time.Second},
			IdleTimeout:       Duration{Duration: 2 * time.Minute},
			ShutdownTimeout:   Duration{Duration: 15 * time.Second},
			MaxRequestBytes:   12 << 20,
			CORSOrigins:       []string{"http://localhost:5173", "http://localhost:3000"},
		},
		Session: SessionConfig{
			TTL:           Duration{Duration: 24 * time.Hour},
			PruneSchedule: "@every 10m",
			PreviewSize:   320,
		},
		Telegram: TelegramConfig{PollTimeout: 30},
	}
}

// Load builds the config from defaults, then an optional YAML or JSON file,
// then .env, then the process environment. Later sources win.
func Load() (*Config, error) {
	cfg := defaultConfig()

	cfgPath := strings.TrimSpace(os.Getenv("GYMCOACH_CONFIG_PATH"))
	if cfgPath == "" {
		if wd, err := os.Getwd(); err == nil {
			for _, name := range []string{"gymcoach.yaml", "gymcoach.yml", "gymcoach.json"} {
				p := filepath.Join(wd, "config", name)
				if _, err := os.Stat(p); err == nil {
					cfgPath = p
					break
				}
			}
		}
	}
	if cfgPath != "" {
		if err := loadFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("load config %s: %w", cfgPath, err)
		}
	}

	envFile := envutil.String("GYMCOACH_ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	applyEnv(cfg)

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile overlays the file onto cfg; fields the file omits keep their
// defaults.
func loadFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return json.Unmarshal(b, cfg)
	default:
		return yaml.Unmarshal(b, cfg)
	}
}

func applyEnv(cfg *Config) {
	cfg.Env = envutil.String("LOG_MODE", cfg.Env)
	cfg.API.BaseURL = envutil.String("GYMCOACH_API_BASE_URL", cfg.API.BaseURL)
	cfg.API.APIKey = envutil.String("GYMCOACH_API_KEY", cfg.API.APIKey)
	cfg.API.ChatPath = envutil.String("GYMCOACH_CHAT_PATH", cfg.API.ChatPath)
	if v := strings.TrimSpace(os.Getenv("GYMCOACH_REQUEST_TIMEOUT_SECONDS")); v != "" {
		cfg.API.Timeout = Duration{Duration: time.Duration(envutil.Int("GYMCOACH_REQUEST_TIMEOUT_SECONDS", 0)) * time.Second}
	}
	cfg.API.MaxUploadBytes = envutil.Int64("GYMCOACH_MAX_UPLOAD_BYTES", cfg.API.MaxUploadBytes)
	cfg.HTTP.Addr = envutil.String("GYMCOACH_HTTP_ADDR", cfg.HTTP.Addr)
	cfg.HTTP.CORSOrigins = envutil.List("GYMCOACH_CORS_ORIGINS", cfg.HTTP.CORSOrigins)
	cfg.Telegram.Token = envutil.String("GYMCOACH_TELEGRAM_TOKEN", cfg.Telegram.Token)
	cfg.Telegram.Debug = envutil.Bool("GYMCOACH_TELEGRAM_DEBUG", cfg.Telegram.Debug)
}

func (cfg *Config) normalize() error {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "development"
	}

	cfg.API.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.API.BaseURL), "/")
	if cfg.API.BaseURL == "" {
		return errors.New("api.base_url is required")
	}
	u, err := url.Parse(cfg.API.BaseURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("api.base_url must be an absolute URL, got %q", cfg.API.BaseURL)
	}
	if strings.TrimSpace(cfg.API.ChatPath) == "" {
		cfg.API.ChatPath = DefaultChatPath
	}
	if cfg.API.Timeout.Duration < 0 {
		return errors.New("api.timeout must not be negative")
	}
	if cfg.API.MaxUploadBytes <= 0 {
		return errors.New("api.max_upload_bytes must be positive")
	}
	if strings.TrimSpace(cfg.API.AllowedMimePrefix) == "" {
		cfg.API.AllowedMimePrefix = "image/"
	}

	if strings.TrimSpace(cfg.HTTP.Addr) == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.HTTP.MaxRequestBytes <= 0 {
		cfg.HTTP.MaxRequestBytes = 12 << 20
	}
	// Uploads must fit in a request, with room for the multipart framing.
	if cfg.HTTP.MaxRequestBytes < cfg.API.MaxUploadBytes {
		cfg.HTTP.MaxRequestBytes = cfg.API.MaxUploadBytes + 1<<20
	}
	if cfg.HTTP.ShutdownTimeout.Duration <= 0 {
		cfg.HTTP.ShutdownTimeout = Duration{Duration: 15 * time.Second}
	}

	if cfg.Session.TTL.Duration < 0 {
		return errors.New("session.ttl must not be negative")
	}
	if cfg.Session.PreviewSize <= 0 {
		cfg.Session.PreviewSize = 320
	}
	if cfg.Telegram.PollTimeout <= 0 {
		cfg.Telegram.PollTimeout = 30
	}
	return nil
}
