package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Load loads configuration from a YAML file and applies environment variable
// overrides. An empty path skips the file and starts from defaults, so the
// service can run on environment variables alone.
//
// The loading sequence is:
//  1. Start from Default()
//  2. Unmarshal the YAML file over it (if a path is given)
//  3. Apply LLMOCKAPI_* environment overrides (always win)
//
// Validation is the caller's responsibility: command-line flags are applied
// on top of the loaded config before Validate runs.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides applies LLMOCKAPI_* environment variable overrides.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("LLMOCKAPI_LISTEN_ADDRESS"); val != "" {
		cfg.Server.ListenAddress = val
	}
	if val := os.Getenv("LLMOCKAPI_SHUTDOWN_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.ShutdownTimeout = d
		}
	}

	if val := os.Getenv("LLMOCKAPI_BASE_URL"); val != "" {
		cfg.LLM.BaseURL = val
	}
	if val := os.Getenv("LLMOCKAPI_API_KEY"); val != "" {
		cfg.LLM.APIKey = val
	}
	if val := os.Getenv("LLMOCKAPI_MODEL"); val != "" {
		cfg.LLM.Model = val
	}
	if val := os.Getenv("LLMOCKAPI_LLM_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.LLM.Timeout = d
		}
	}

	if val := os.Getenv("LLMOCKAPI_SPEC_SOURCE"); val != "" {
		cfg.Spec.Source = val
	}
	if val := os.Getenv("LLMOCKAPI_SPEC_WATCH"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Spec.Watch = b
		}
	}

	if val := os.Getenv("LLMOCKAPI_JOURNAL_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Journal.Enabled = b
		}
	}
	if val := os.Getenv("LLMOCKAPI_JOURNAL_SQLITE_PATH"); val != "" {
		cfg.Journal.SQLitePath = val
	}
	if val := os.Getenv("LLMOCKAPI_JOURNAL_RETENTION_DAYS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Journal.RetentionDays = i
		}
	}

	if val := os.Getenv("LLMOCKAPI_LOG_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("LLMOCKAPI_LOG_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("LLMOCKAPI_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
}
