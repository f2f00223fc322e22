package generator

import (
	"log/slog"

	"mercator-hq/slotgen/pkg/corpus"
)

// Option configures an Engine.
type Option func(*options)

type options struct {
	seed     int64
	seeded   bool
	loader   corpus.Loader
	logger   *slog.Logger
	observer Observer
}

func defaultOptions() *options {
	return &options{
		loader:   corpus.NewDirLoader(corpus.DefaultDir),
		logger:   slog.Default(),
		observer: nopObserver{},
	}
}

// WithSeed makes the engine's draws deterministic. Engines built from the same
// document with the same seed produce the same sequence of outputs.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
		o.seeded = true
	}
}

// WithCorpusLoader sets the loader for $name corpus references.
// The default reads files from the "corpora" directory.
func WithCorpusLoader(loader corpus.Loader) Option {
	return func(o *options) {
		if loader != nil {
			o.loader = loader
		}
	}
}

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithObserver registers an observer of engine activity.
func WithObserver(observer Observer) Option {
	return func(o *options) {
		if observer != nil {
			o.observer = observer
		}
	}
}
