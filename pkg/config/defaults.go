package config

import "time"

// Default returns a fully populated configuration with default values.
// Loading unmarshals the YAML file over this, so absent fields keep their
// defaults (including booleans that default to true).
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			ListenAddress:   "localhost:9000",
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    120 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			MaxHeaderBytes:  1 << 20,
		},
		LLM: LLMConfig{
			Model:           "anthropic/claude-haiku-4.5",
			Timeout:         60 * time.Second,
			MaxIdleConns:    10,
			IdleConnTimeout: 90 * time.Second,
		},
		Spec: SpecConfig{
			FetchTimeout: 30 * time.Second,
		},
		Journal: JournalConfig{
			SQLitePath:    "data/journal.db",
			RetentionDays: 30,
			PruneSchedule: "0 3 * * *",
		},
		Telemetry: TelemetryConfig{
			Logging: LoggingConfig{
				Level:  "info",
				Format: "json",
			},
			Metrics: MetricsConfig{
				Enabled:   true,
				Namespace: "llmockapi",
			},
		},
	}
}

// ApplyDefaults fills zero-valued fields of a programmatically constructed
// configuration. Boolean fields are left as-is.
func ApplyDefaults(cfg *Config) {
	def := Default()

	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = def.Server.ListenAddress
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = def.Server.ReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = def.Server.WriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = def.Server.IdleTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = def.Server.ShutdownTimeout
	}
	if cfg.Server.MaxHeaderBytes == 0 {
		cfg.Server.MaxHeaderBytes = def.Server.MaxHeaderBytes
	}

	if cfg.LLM.Model == "" {
		cfg.LLM.Model = def.LLM.Model
	}
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = def.LLM.Timeout
	}
	if cfg.LLM.MaxIdleConns == 0 {
		cfg.LLM.MaxIdleConns = def.LLM.MaxIdleConns
	}
	if cfg.LLM.IdleConnTimeout == 0 {
		cfg.LLM.IdleConnTimeout = def.LLM.IdleConnTimeout
	}

	if cfg.Spec.FetchTimeout == 0 {
		cfg.Spec.FetchTimeout = def.Spec.FetchTimeout
	}

	if cfg.Journal.SQLitePath == "" {
		cfg.Journal.SQLitePath = def.Journal.SQLitePath
	}
	if cfg.Journal.RetentionDays == 0 {
		cfg.Journal.RetentionDays = def.Journal.RetentionDays
	}
	if cfg.Journal.PruneSchedule == "" {
		cfg.Journal.PruneSchedule = def.Journal.PruneSchedule
	}

	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = def.Telemetry.Logging.Level
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = def.Telemetry.Logging.Format
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = def.Telemetry.Metrics.Namespace
	}
}
