package config

import "time"

// Default values for configuration fields.
const (
	DefaultConfigPath = "slotgen.yaml"

	// Definitions defaults
	DefaultDefinitionsPath = "definitions.txt"

	// Generator defaults
	DefaultNewlineMarker = `\n`

	// Corpus defaults
	DefaultCorpusBackend     = "dir"
	DefaultCorpusDir         = "corpora"
	DefaultSQLitePath        = "data/corpora.db"
	DefaultSQLiteDriver      = "sqlite"
	DefaultSQLiteBusyTimeout = 5 * time.Second

	// Reload defaults
	DefaultReloadWatch    = true
	DefaultReloadDebounce = 100 * time.Millisecond

	// Server defaults
	DefaultListenAddress   = "127.0.0.1:8080"
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 15 * time.Second
	DefaultMaxCount        = 1000

	// Telemetry defaults
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "text"
	DefaultMetricsEnabled   = true
	DefaultMetricsPath      = "/metrics"
	DefaultMetricsNamespace = "slotgen"
	DefaultMetricsSubsystem = "engine"
)

// NewDefaultConfig returns a configuration with every default applied.
// Boolean defaults are only expressible here, so files are decoded on top of it.
func NewDefaultConfig() *Config {
	cfg := &Config{
		Reload: HotReloadConfig{Watch: DefaultReloadWatch},
		Telemetry: TelemetryConfig{
			Metrics: MetricsConfig{Enabled: DefaultMetricsEnabled},
		},
	}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills every zero-valued field that has a default.
func ApplyDefaults(cfg *Config) {
	if cfg.Definitions.Path == "" {
		cfg.Definitions.Path = DefaultDefinitionsPath
	}

	if cfg.Generator.NewlineMarker == "" {
		cfg.Generator.NewlineMarker = DefaultNewlineMarker
	}

	if cfg.Corpus.Backend == "" {
		cfg.Corpus.Backend = DefaultCorpusBackend
	}
	if cfg.Corpus.Dir == "" {
		cfg.Corpus.Dir = DefaultCorpusDir
	}
	if cfg.Corpus.SQLite.Path == "" {
		cfg.Corpus.SQLite.Path = DefaultSQLitePath
	}
	if cfg.Corpus.SQLite.Driver == "" {
		cfg.Corpus.SQLite.Driver = DefaultSQLiteDriver
	}
	if cfg.Corpus.SQLite.BusyTimeout == 0 {
		cfg.Corpus.SQLite.BusyTimeout = DefaultSQLiteBusyTimeout
	}

	if cfg.Reload.Debounce == 0 {
		cfg.Reload.Debounce = DefaultReloadDebounce
	}

	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = DefaultListenAddress
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Server.MaxCount == 0 {
		cfg.Server.MaxCount = DefaultMaxCount
	}

	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLogLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLogFormat
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
}
