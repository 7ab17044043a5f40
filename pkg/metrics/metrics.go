package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mercmobily/routify/pkg/router"
)

// Config configures the Prometheus instrumentation.
type Config struct {
	// Namespace is the metrics namespace (default: "routify").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for pass duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures the Prometheus instrumentation.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

// Metrics implements router.Observer with Prometheus collectors. Pass it to
// router.WithObserver.
type Metrics struct {
	passes       *prometheus.CounterVec
	passDuration *prometheus.HistogramVec
	evaluations  *prometheus.CounterVec
	activations  prometheus.Counter
	hookFailures prometheus.Counter
	components   prometheus.Gauge
}

// New creates the instrumentation and registers its collectors.
func New(opts ...Option) *Metrics {
	cfg := Config{
		Namespace: "routify",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	factory := promauto.With(cfg.Registry)
	return &Metrics{
		passes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "reconcile_passes_total",
			Help:        "Reconciliation passes by trigger kind and outcome.",
			ConstLabels: cfg.ConstLabels,
		}, []string{"trigger", "outcome"}),
		passDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "reconcile_pass_duration_seconds",
			Help:        "Reconciliation pass duration by trigger kind.",
			ConstLabels: cfg.ConstLabels,
			Buckets:     cfg.Buckets,
		}, []string{"trigger"}),
		evaluations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "evaluations_total",
			Help:        "Component pattern evaluations by result.",
			ConstLabels: cfg.ConstLabels,
		}, []string{"result"}),
		activations: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "activations_total",
			Help:        "Component transitions into the active state.",
			ConstLabels: cfg.ConstLabels,
		}),
		hookFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "hook_failures_total",
			Help:        "Lifecycle hooks that returned an error.",
			ConstLabels: cfg.ConstLabels,
		}),
		components: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "registered_components",
			Help:        "Currently registered routable components.",
			ConstLabels: cfg.ConstLabels,
		}),
	}
}

// PassStarted implements router.Observer.
func (m *Metrics) PassStarted(kind router.EventKind) {}

// PassCompleted implements router.Observer.
func (m *Metrics) PassCompleted(kind router.EventKind, elapsed time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.passes.WithLabelValues(string(kind), outcome).Inc()
	m.passDuration.WithLabelValues(string(kind)).Observe(elapsed.Seconds())
}

// ComponentEvaluated implements router.Observer.
func (m *Metrics) ComponentEvaluated(matched bool) {
	result := "miss"
	if matched {
		result = "match"
	}
	m.evaluations.WithLabelValues(result).Inc()
}

// ComponentActivated implements router.Observer.
func (m *Metrics) ComponentActivated() {
	m.activations.Inc()
}

// HookFailed implements router.Observer.
func (m *Metrics) HookFailed() {
	m.hookFailures.Inc()
}

// RegistrationChanged implements router.Observer.
func (m *Metrics) RegistrationChanged(delta int) {
	m.components.Add(float64(delta))
}
