package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks the configuration for values the service cannot start
// with. It returns the first problem found.
func Validate(cfg *Config) error {
	if cfg.Server.ListenAddress == "" {
		return fmt.Errorf("server.listen_address must not be empty")
	}

	if cfg.LLM.BaseURL == "" {
		return fmt.Errorf("llm.base_url is required")
	}
	if u, err := url.Parse(cfg.LLM.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("llm.base_url %q is not a valid http(s) URL", cfg.LLM.BaseURL)
	}
	if cfg.LLM.Model == "" {
		return fmt.Errorf("llm.model must not be empty")
	}
	if cfg.LLM.Timeout < 0 {
		return fmt.Errorf("llm.timeout must not be negative")
	}

	if cfg.Spec.Source == "" {
		return fmt.Errorf("spec.source is required")
	}
	if cfg.Spec.Watch && strings.HasPrefix(cfg.Spec.Source, "http") {
		return fmt.Errorf("spec.watch requires a local file source, got URL %q", cfg.Spec.Source)
	}

	if cfg.Journal.Enabled {
		if cfg.Journal.SQLitePath == "" {
			return fmt.Errorf("journal.sqlite_path is required when the journal is enabled")
		}
		if cfg.Journal.RetentionDays < 0 {
			return fmt.Errorf("journal.retention_days must not be negative")
		}
		if cfg.Journal.MaxRecords < 0 {
			return fmt.Errorf("journal.max_records must not be negative")
		}
	}

	switch cfg.Telemetry.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("telemetry.logging.level %q is not one of debug, info, warn, error", cfg.Telemetry.Logging.Level)
	}
	switch cfg.Telemetry.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("telemetry.logging.format %q is not one of json, text", cfg.Telemetry.Logging.Format)
	}

	return nil
}
