package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any errors.
// Environment variables are not consulted; use LoadConfigWithEnvOverrides for that.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	cfg := NewDefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention SLOTGEN_SECTION_FIELD (e.g., SLOTGEN_SERVER_LISTEN_ADDRESS) and
// always take precedence over the file.
//
// A missing file at DefaultConfigPath, or an empty path, yields the defaults.
// Any other missing file is an error.
//
// The loading sequence is:
// 1. Load YAML from file
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := loadOptional(path)
	if err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

func loadOptional(path string) (*Config, error) {
	if path == "" {
		return NewDefaultConfig(), nil
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		if path == DefaultConfigPath && errors.Is(err, fs.ErrNotExist) {
			return NewDefaultConfig(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Unparseable values are reported rather than ignored.
func applyEnvOverrides(cfg *Config) error {
	var errs []FieldError

	str := func(name string, dst *string) {
		if val := os.Getenv(name); val != "" {
			*dst = val
		}
	}
	boolean := func(name string, dst *bool) {
		if val := os.Getenv(name); val != "" {
			b, err := strconv.ParseBool(val)
			if err != nil {
				errs = append(errs, FieldError{Field: name, Message: fmt.Sprintf("invalid boolean %q", val)})
				return
			}
			*dst = b
		}
	}
	duration := func(name string, dst *time.Duration) {
		if val := os.Getenv(name); val != "" {
			d, err := time.ParseDuration(val)
			if err != nil {
				errs = append(errs, FieldError{Field: name, Message: fmt.Sprintf("invalid duration %q", val)})
				return
			}
			*dst = d
		}
	}
	integer := func(name string, dst *int) {
		if val := os.Getenv(name); val != "" {
			i, err := strconv.Atoi(val)
			if err != nil {
				errs = append(errs, FieldError{Field: name, Message: fmt.Sprintf("invalid integer %q", val)})
				return
			}
			*dst = i
		}
	}

	// Definitions overrides
	str("SLOTGEN_DEFINITIONS_PATH", &cfg.Definitions.Path)

	// Generator overrides
	if val := os.Getenv("SLOTGEN_GENERATOR_SEED"); val != "" {
		seed, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			errs = append(errs, FieldError{Field: "SLOTGEN_GENERATOR_SEED", Message: fmt.Sprintf("invalid seed %q", val)})
		} else {
			cfg.Generator.Seed = &seed
		}
	}
	str("SLOTGEN_GENERATOR_NEWLINE_MARKER", &cfg.Generator.NewlineMarker)

	// Corpus overrides
	str("SLOTGEN_CORPUS_BACKEND", &cfg.Corpus.Backend)
	str("SLOTGEN_CORPUS_DIR", &cfg.Corpus.Dir)
	str("SLOTGEN_CORPUS_SQLITE_PATH", &cfg.Corpus.SQLite.Path)
	str("SLOTGEN_CORPUS_SQLITE_DRIVER", &cfg.Corpus.SQLite.Driver)
	duration("SLOTGEN_CORPUS_SQLITE_BUSY_TIMEOUT", &cfg.Corpus.SQLite.BusyTimeout)

	// Reload overrides
	boolean("SLOTGEN_RELOAD_WATCH", &cfg.Reload.Watch)
	duration("SLOTGEN_RELOAD_DEBOUNCE", &cfg.Reload.Debounce)
	str("SLOTGEN_RELOAD_SCHEDULE", &cfg.Reload.Schedule)

	// Server overrides
	str("SLOTGEN_SERVER_LISTEN_ADDRESS", &cfg.Server.ListenAddress)
	duration("SLOTGEN_SERVER_READ_TIMEOUT", &cfg.Server.ReadTimeout)
	duration("SLOTGEN_SERVER_WRITE_TIMEOUT", &cfg.Server.WriteTimeout)
	duration("SLOTGEN_SERVER_IDLE_TIMEOUT", &cfg.Server.IdleTimeout)
	duration("SLOTGEN_SERVER_SHUTDOWN_TIMEOUT", &cfg.Server.ShutdownTimeout)
	integer("SLOTGEN_SERVER_MAX_COUNT", &cfg.Server.MaxCount)

	// Telemetry overrides
	str("SLOTGEN_TELEMETRY_LOGGING_LEVEL", &cfg.Telemetry.Logging.Level)
	str("SLOTGEN_TELEMETRY_LOGGING_FORMAT", &cfg.Telemetry.Logging.Format)
	boolean("SLOTGEN_TELEMETRY_LOGGING_ADD_SOURCE", &cfg.Telemetry.Logging.AddSource)
	boolean("SLOTGEN_TELEMETRY_METRICS_ENABLED", &cfg.Telemetry.Metrics.Enabled)
	str("SLOTGEN_TELEMETRY_METRICS_PATH", &cfg.Telemetry.Metrics.Path)
	str("SLOTGEN_TELEMETRY_METRICS_NAMESPACE", &cfg.Telemetry.Metrics.Namespace)
	str("SLOTGEN_TELEMETRY_METRICS_SUBSYSTEM", &cfg.Telemetry.Metrics.Subsystem)

	if len(errs) > 0 {
		return fmt.Errorf("invalid environment override: %w", ValidationError{Errors: errs})
	}
	return nil
}
