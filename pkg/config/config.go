package config

import "time"

// Config is the root configuration structure for llmockapi.
type Config struct {
	// Server contains HTTP server configuration.
	Server ServerConfig `yaml:"server"`

	// LLM contains the upstream chat-completion provider configuration.
	LLM LLMConfig `yaml:"llm"`

	// Spec contains the API specification document configuration.
	Spec SpecConfig `yaml:"spec"`

	// Journal contains the exchange journal configuration.
	Journal JournalConfig `yaml:"journal"`

	// Telemetry contains logging and metrics configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServerConfig contains configuration for the HTTP server.
type ServerConfig struct {
	// ListenAddress is the address and port to listen on.
	// Default: "localhost:9000"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the entire request.
	// Default: 30s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out response writes.
	// Upstream calls happen while a response is pending, so this must exceed
	// the LLM timeout.
	// Default: 120s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the keep-alive idle timeout.
	// Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown.
	// Default: 15s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxHeaderBytes limits request header parsing.
	// Default: 1048576 (1MB)
	MaxHeaderBytes int `yaml:"max_header_bytes"`
}

// LLMConfig contains configuration for the upstream provider.
type LLMConfig struct {
	// BaseURL is the provider's API base URL.
	// Example: "https://openrouter.ai/api"
	BaseURL string `yaml:"base_url"`

	// APIKey is the provider authentication key. Typically supplied via the
	// LLMOCKAPI_API_KEY environment variable rather than the file.
	APIKey string `yaml:"api_key"`

	// Model is the model identifier sent with every completion request.
	// Default: "anthropic/claude-haiku-4.5"
	Model string `yaml:"model"`

	// Timeout is the whole-request timeout for upstream calls.
	// Default: 60s
	Timeout time.Duration `yaml:"timeout"`

	// MaxIdleConns is the upstream connection pool size.
	// Default: 10
	MaxIdleConns int `yaml:"max_idle_conns"`

	// IdleConnTimeout is how long idle upstream connections stay pooled.
	// Default: 90s
	IdleConnTimeout time.Duration `yaml:"idle_conn_timeout"`
}

// SpecConfig contains configuration for the API specification document that
// conditions the model.
type SpecConfig struct {
	// Source is a local file path (JSON, YAML, or plain text) or an http(s)
	// URL. The document is loaded once at startup and embedded into the
	// system turn.
	Source string `yaml:"source"`

	// FetchTimeout bounds the HTTP fetch when Source is a URL.
	// Default: 30s
	FetchTimeout time.Duration `yaml:"fetch_timeout"`

	// Watch enables a file watcher that flags the loaded spec as stale when
	// the source file changes on disk. The running conversation is never
	// rewritten; a restart picks up the new document.
	// Default: false
	Watch bool `yaml:"watch"`
}

// JournalConfig contains configuration for the exchange journal.
type JournalConfig struct {
	// Enabled controls whether exchanges are recorded.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// SQLitePath is the journal database file path.
	// Default: "data/journal.db"
	SQLitePath string `yaml:"sqlite_path"`

	// RetentionDays is how long records are kept. 0 keeps them forever.
	// Default: 30
	RetentionDays int `yaml:"retention_days"`

	// MaxRecords caps the journal size. 0 means unlimited.
	// Default: 0
	MaxRecords int64 `yaml:"max_records"`

	// PruneSchedule is a cron expression for retention pruning.
	// Default: "0 3 * * *" (daily at 3 AM)
	PruneSchedule string `yaml:"prune_schedule"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains structured logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the output format ("json", "text").
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file:line in log records.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected and served.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Namespace is the metric name prefix.
	// Default: "llmockapi"
	Namespace string `yaml:"namespace"`
}
