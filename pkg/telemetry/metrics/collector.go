package metrics

import (
	"errors"
	"sync"
	"time"

	"mercator-hq/slotgen/pkg/config"
	grammarerrors "mercator-hq/slotgen/pkg/grammar/errors"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// otherLabel replaces label values once the cardinality limit is reached.
	otherLabel = "other"

	// unknownLabel stands in for template names that are not defined.
	unknownLabel = "unknown"
)

// Collector owns every Prometheus metric exported by slotgen.
//
// It implements generator.Observer so an engine built with
// generator.WithObserver(collector) reports its draws, refills and
// generations directly. The reload holder and HTTP server record their own
// activity through RecordReload and RecordHTTPRequest.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	generationMetrics *GenerationMetrics
	slotMetrics       *SlotMetrics
	serviceMetrics    *ServiceMetrics

	// Template names arrive from HTTP callers, so they are bounded here
	cardinalityLimiter *CardinalityLimiter
}

// NewCollector creates a collector and registers its metrics on registry.
// If registry is nil a fresh private registry is used.
//
// Example:
//
//	cfg := &config.MetricsConfig{
//		Enabled:   true,
//		Namespace: "slotgen",
//		Subsystem: "engine",
//	}
//	collector := metrics.NewCollector(cfg, nil)
//	engine, err := generator.New(path, generator.WithObserver(collector))
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}

	return &Collector{
		config:             cfg,
		registry:           registry,
		generationMetrics:  NewGenerationMetrics(cfg, registry),
		slotMetrics:        NewSlotMetrics(cfg, registry),
		serviceMetrics:     NewServiceMetrics(cfg, registry),
		cardinalityLimiter: NewCardinalityLimiter(1000),
	}
}

// ObserveDraw records one draw from slot.
func (c *Collector) ObserveDraw(slot string, singleUse bool) {
	if !c.config.Enabled {
		return
	}

	c.slotMetrics.RecordDraw(slot, singleUse)
}

// ObserveRefill records that slot's used values returned to its pool.
func (c *Collector) ObserveRefill(slot string) {
	if !c.config.Enabled {
		return
	}

	c.slotMetrics.RecordRefill(slot)
}

// ObserveGeneration records the outcome of one Generate call.
// Failed generations are labelled with the grammar error type.
func (c *Collector) ObserveGeneration(template string, duration time.Duration, err error) {
	if !c.config.Enabled {
		return
	}

	status := "success"
	if err != nil {
		status = string(grammarerrors.TypeOf(err))
		if status == "" {
			status = "error"
		}
	}

	// Requested names that do not exist never reach the limiter.
	switch {
	case errors.Is(err, grammarerrors.ErrUndefinedTemplate):
		template = unknownLabel
	case !c.cardinalityLimiter.Allow("generation:" + template):
		template = otherLabel
	}

	c.generationMetrics.RecordGeneration(template, status, duration)
}

// RecordReload records an engine rebuild.
//
// Parameters:
//   - trigger: What caused the rebuild ("watch", "schedule", "manual")
//   - err: The build error, nil if the new engine was swapped in
func (c *Collector) RecordReload(trigger string, err error) {
	if !c.config.Enabled {
		return
	}

	c.serviceMetrics.RecordReload(trigger, err == nil)
}

// RecordHTTPRequest records a served HTTP request.
//
// Parameters:
//   - route: Route pattern (e.g., "/v1/generate/{name}")
//   - code: HTTP status code
//   - duration: Time spent in the handler
func (c *Collector) RecordHTTPRequest(route string, code int, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	c.serviceMetrics.RecordHTTPRequest(route, code, duration)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// CardinalityLimiter prevents metric cardinality explosion by limiting
// the number of unique label combinations per metric.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a new cardinality limiter with the specified
// maximum cardinality.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow reports whether labelSet may be used. Known label sets are always
// allowed; new ones are allowed until the limit is reached.
func (cl *CardinalityLimiter) Allow(labelSet string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[labelSet]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	if _, exists := cl.current[labelSet]; exists {
		return true
	}

	if len(cl.current) >= cl.maxCardinality {
		return false
	}

	cl.current[labelSet] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
