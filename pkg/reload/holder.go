package reload

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"mercator-hq/slotgen/pkg/generator"
)

// Rebuild triggers.
const (
	TriggerWatch    = "watch"
	TriggerSchedule = "schedule"
	TriggerManual   = "manual"
)

// BuildFunc constructs a fresh engine, typically by re-reading the
// definitions document and its corpora.
type BuildFunc func() (*generator.Engine, error)

// Recorder is told about every rebuild attempt. *metrics.Collector satisfies it.
type Recorder interface {
	RecordReload(trigger string, err error)
}

// BuildInfo describes the engine currently held.
type BuildInfo struct {
	ID        string
	BuiltAt   time.Time
	Source    string
	Slots     int
	Templates int
}

// Holder owns the current engine and serializes access to it.
//
// An engine is not safe for concurrent use, so every caller goes through Do.
// Reload builds a replacement outside the lock and swaps it in only when the
// build succeeds; a failed rebuild leaves the previous engine serving.
type Holder struct {
	build    BuildFunc
	logger   *slog.Logger
	recorder Recorder

	// buildMu keeps rebuilds from racing each other
	buildMu sync.Mutex

	mu      sync.Mutex
	engine  *generator.Engine
	info    BuildInfo
	lastErr error
}

// HolderOption configures a Holder.
type HolderOption func(*Holder)

// WithLogger sets the holder logger.
func WithLogger(logger *slog.Logger) HolderOption {
	return func(h *Holder) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithRecorder registers a recorder for rebuild outcomes.
func WithRecorder(recorder Recorder) HolderOption {
	return func(h *Holder) {
		if recorder != nil {
			h.recorder = recorder
		}
	}
}

// NewHolder builds the first engine. It fails if that build fails.
func NewHolder(build BuildFunc, opts ...HolderOption) (*Holder, error) {
	if build == nil {
		return nil, errors.New("build function cannot be nil")
	}

	h := &Holder{
		build:  build,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.logger = h.logger.With("component", "reload")

	engine, err := build()
	if err != nil {
		return nil, err
	}
	h.swap(engine)

	return h, nil
}

// Reload rebuilds the engine. On success the new engine replaces the old one
// and its draw state starts fresh. On failure the old engine is kept and the
// build error is returned.
func (h *Holder) Reload(trigger string) error {
	h.buildMu.Lock()
	defer h.buildMu.Unlock()

	start := time.Now()
	engine, err := h.build()

	if h.recorder != nil {
		h.recorder.RecordReload(trigger, err)
	}

	if err != nil {
		h.mu.Lock()
		h.lastErr = err
		buildID := h.info.ID
		h.mu.Unlock()

		h.logger.Error("rebuild failed, keeping current engine",
			"trigger", trigger,
			"build_id", buildID,
			"error", err,
		)
		return fmt.Errorf("rebuild failed: %w", err)
	}

	info := h.swap(engine)
	h.logger.Info("engine reloaded",
		"trigger", trigger,
		"build_id", info.ID,
		"templates", info.Templates,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

func (h *Holder) swap(engine *generator.Engine) BuildInfo {
	info := BuildInfo{
		ID:        uuid.New().String(),
		BuiltAt:   time.Now(),
		Source:    engine.Document().Path,
		Slots:     len(engine.SlotNames()),
		Templates: len(engine.TemplateNames()),
	}

	h.mu.Lock()
	h.engine = engine
	h.info = info
	h.lastErr = nil
	h.mu.Unlock()

	return info
}

// Do runs fn with exclusive access to the current engine.
func (h *Holder) Do(fn func(*generator.Engine) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	return fn(h.engine)
}

// Generate produces n outputs from the named template.
func (h *Holder) Generate(name string, n int) ([]string, error) {
	var outputs []string
	err := h.Do(func(e *generator.Engine) error {
		var err error
		outputs, err = e.GenerateN(name, n)
		return err
	})
	return outputs, err
}

// TemplateNames returns the current engine's template names.
func (h *Holder) TemplateNames() []string {
	var names []string
	_ = h.Do(func(e *generator.Engine) error {
		names = e.TemplateNames()
		return nil
	})
	return names
}

// Info describes the current engine.
func (h *Holder) Info() BuildInfo {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.info
}

// LastError returns the error of the most recent rebuild, or nil if it succeeded.
func (h *Holder) LastError() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.lastErr
}

// Check reports the engine as unhealthy while the latest rebuild has failed.
// It satisfies health.CheckFunc.
func (h *Holder) Check(context.Context) error {
	if err := h.LastError(); err != nil {
		return fmt.Errorf("serving stale engine %s: %w", h.Info().ID, err)
	}
	return nil
}
