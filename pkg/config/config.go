package config

import "time"

// Config is the root configuration structure for slotgen.
type Config struct {
	// Definitions locates the definitions document.
	Definitions DefinitionsConfig `yaml:"definitions"`

	// Generator contains engine settings.
	Generator GeneratorConfig `yaml:"generator"`

	// Corpus selects where $name corpus references are resolved.
	Corpus CorpusConfig `yaml:"corpus"`

	// Reload controls rebuilding the engine when its inputs change.
	Reload HotReloadConfig `yaml:"reload"`

	// Server contains HTTP server configuration for "slotgen serve".
	Server ServerConfig `yaml:"server"`

	// Telemetry contains logging and metrics configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// DefinitionsConfig locates the definitions document.
type DefinitionsConfig struct {
	// Path is the definitions document to load.
	// Default: "definitions.txt"
	Path string `yaml:"path"`
}

// GeneratorConfig contains engine settings.
type GeneratorConfig struct {
	// Seed makes generation deterministic when set.
	// Default: unset (process entropy)
	Seed *int64 `yaml:"seed"`

	// NewlineMarker is the text callers split outputs on when asked to
	// split lines. It is never interpreted by the engine.
	// Default: `\n` (backslash, n)
	NewlineMarker string `yaml:"newline_marker"`
}

// CorpusConfig selects the corpus backend.
type CorpusConfig struct {
	// Backend is the corpus backend.
	// Options: "dir", "sqlite"
	// Default: "dir"
	Backend string `yaml:"backend"`

	// Dir is the corpus directory for the "dir" backend.
	// Default: "corpora"
	Dir string `yaml:"dir"`

	// SQLite configures the "sqlite" backend.
	SQLite SQLiteConfig `yaml:"sqlite"`
}

// SQLiteConfig configures the SQLite corpus store.
type SQLiteConfig struct {
	// Path is the database file.
	// Default: "data/corpora.db"
	Path string `yaml:"path"`

	// Driver is the database/sql driver name.
	// Options: "sqlite" (modernc.org/sqlite), "sqlite3" (github.com/mattn/go-sqlite3)
	// Default: "sqlite"
	Driver string `yaml:"driver"`

	// BusyTimeout is how long to wait for database locks.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// HotReloadConfig controls engine rebuilds.
type HotReloadConfig struct {
	// Watch rebuilds the engine when the definitions document or corpus
	// directory changes on disk.
	// Default: true
	Watch bool `yaml:"watch"`

	// Debounce is the quiet period after a file change before rebuilding.
	// Default: 100ms
	Debounce time.Duration `yaml:"debounce"`

	// Schedule is an optional cron expression for periodic rebuilds, useful
	// with the sqlite backend, whose changes produce no file events.
	// Default: "" (disabled)
	Schedule string `yaml:"schedule"`
}

// ServerConfig contains configuration for the HTTP server.
type ServerConfig struct {
	// ListenAddress is the address and port to listen on.
	// Default: "127.0.0.1:8080"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the entire request.
	// Default: 10s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the response.
	// Default: 10s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the maximum amount of time to wait for the next request
	// when keep-alives are enabled.
	// Default: 60s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown.
	// Default: 15s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxCount caps the count parameter of generate requests.
	// Default: 1000
	MaxCount int `yaml:"max_count"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text"
	// Default: "text"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected and served.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "slotgen"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: "engine"
	Subsystem string `yaml:"subsystem"`
}
