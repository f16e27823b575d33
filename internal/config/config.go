package config

import "time"

type Duration struct {
	Duration time.Duration
}

// APIConfig points at the coaching backend.
type APIConfig struct {
	BaseURL  string `json:"base_url" yaml:"base_url"`
	APIKey   string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	ChatPath string `json:"chat_path,omitempty" yaml:"chat_path,omitempty"`

	// Timeout of zero leaves requests bounded only by the caller's context.
	Timeout Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`

	MaxUploadBytes    int64  `json:"max_upload_bytes,omitempty" yaml:"max_upload_bytes,omitempty"`
	AllowedMimePrefix string `json:"allowed_mime_prefix,omitempty" yaml:"allowed_mime_prefix,omitempty"`
}

type HTTPConfig struct {
	Addr              string   `json:"addr" yaml:"addr"`
	ReadHeaderTimeout Duration `json:"read_header_timeout" yaml:"read_header_timeout"`
	IdleTimeout       Duration `json:"idle_timeout" yaml:"idle_timeout"`
	ShutdownTimeout   Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
	MaxRequestBytes   int64    `json:"max_request_bytes" yaml:"max_request_bytes"`
	CORSOrigins       []string `json:"cors_origins,omitempty" yaml:"cors_origins,omitempty"`
}

type SessionConfig struct {
	// TTL bounds how long an idle-or-not session is kept. Zero keeps sessions
	// until deleted.
	TTL Duration `json:"ttl,omitempty" yaml:"ttl,omitempty"`
	// PruneSchedule is a cron spec such as "@every 10m".
	PruneSchedule string `json:"prune_schedule,omitempty" yaml:"prune_schedule,omitempty"`
	PreviewSize   int    `json:"preview_size,omitempty" yaml:"preview_size,omitempty"`
}

type TelegramConfig struct {
	Token string `json:"token,omitempty" yaml:"token,omitempty"`
	Debug bool   `json:"debug,omitempty" yaml:"debug,omitempty"`
	// PollTimeout is the long-poll timeout in seconds.
	PollTimeout int `json:"poll_timeout,omitempty" yaml:"poll_timeout,omitempty"`
}

type Config struct {
	Env      string         `json:"env" yaml:"env"`
	API      APIConfig      `json:"api" yaml:"api"`
	HTTP     HTTPConfig     `json:"http" yaml:"http"`
	Session  SessionConfig  `json:"session" yaml:"session"`
	Telegram TelegramConfig `json:"telegram" yaml:"telegram"`
}
