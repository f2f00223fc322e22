package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"mercator-hq/slotgen/pkg/cli"
	"mercator-hq/slotgen/pkg/config"
	"mercator-hq/slotgen/pkg/corpus"
	"mercator-hq/slotgen/pkg/generator"
	"mercator-hq/slotgen/pkg/telemetry/logging"
)

// loadConfig loads the config file with env overrides, sets up logging and
// publishes the result as the process configuration.
func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		path = config.DefaultConfigPath
	}

	cfg, err := config.LoadConfigWithEnvOverrides(path)
	if err != nil {
		field := path
		var validationErr config.ValidationError
		if errors.As(err, &validationErr) && len(validationErr.Errors) > 0 {
			field = validationErr.Errors[0].Field
		}
		return nil, cli.NewConfigError(field, err.Error())
	}

	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	logger, err := logging.New(logging.FromConfig(cfg.Telemetry.Logging, os.Stderr))
	if err != nil {
		return nil, cli.NewConfigError("telemetry.logging", err.Error())
	}
	slog.SetDefault(logger)

	config.SetConfig(cfg)
	return cfg, nil
}

// definitionsPath returns the --file flag value or the configured path.
func definitionsPath(cfg *config.Config, flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return cfg.Definitions.Path
}

// openCorpusLoader opens the configured corpus backend.
// The returned closer is never nil.
func openCorpusLoader(cfg *config.Config) (corpus.Loader, io.Closer, error) {
	switch cfg.Corpus.Backend {
	case "sqlite":
		store, err := openCorpusStore(cfg)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	default:
		return corpus.NewDirLoader(cfg.Corpus.Dir), io.NopCloser(nil), nil
	}
}

// openCorpusStore opens the SQLite corpus store regardless of the backend setting.
func openCorpusStore(cfg *config.Config) (*corpus.SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Corpus.SQLite.Path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create corpus store directory: %w", err)
	}
	store, err := corpus.NewSQLiteStoreWithConfig(corpus.SQLiteConfig{
		Path:        cfg.Corpus.SQLite.Path,
		Driver:      cfg.Corpus.SQLite.Driver,
		BusyTimeout: cfg.Corpus.SQLite.BusyTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus store: %w", err)
	}
	return store, nil
}

// engineOptions assembles the generator options shared by every command.
// seedFlag wins over the configured seed when seedSet is true.
func engineOptions(cfg *config.Config, loader corpus.Loader, seedFlag int64, seedSet bool) []generator.Option {
	opts := []generator.Option{
		generator.WithCorpusLoader(loader),
		generator.WithLogger(slog.Default()),
	}

	switch {
	case seedSet:
		opts = append(opts, generator.WithSeed(seedFlag))
	case cfg.Generator.Seed != nil:
		opts = append(opts, generator.WithSeed(*cfg.Generator.Seed))
	}

	return opts
}

// commandContext returns the command's context, or Background when the
// command runs outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}

// watchPaths lists what a file watcher should observe for a document: the
// document itself, plus the corpus directory when corpora live on disk.
func watchPaths(cfg *config.Config, definitions string) []string {
	paths := []string{definitions}
	if cfg.Corpus.Backend == "dir" {
		if info, err := os.Stat(cfg.Corpus.Dir); err == nil && info.IsDir() {
			paths = append(paths, cfg.Corpus.Dir)
		}
	}
	return paths
}
