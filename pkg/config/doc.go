// Package config defines the service configuration.
//
// Configuration is loaded from an optional YAML file, then defaults are
// applied, then LLMOCKAPI_* environment variables override file values, and
// the result is validated. The loaded configuration is treated as immutable
// for the process lifetime.
package config
