// Package metrics exposes Prometheus instrumentation for pipeline turns,
// generation latency and message edits. A nil *Collector is valid and
// records nothing, so services can take it as an optional dependency.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "scriptmesh"

// Outcome labels.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Collector groups the scriptmesh metric vectors.
type Collector struct {
	registry   *prometheus.Registry
	turns      *prometheus.CounterVec
	generation *prometheus.HistogramVec
	edits      *prometheus.CounterVec
	history    *prometheus.GaugeVec
	facts      *prometheus.GaugeVec
}

// NewCollector creates a Collector registered on a private registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		turns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "turns_total",
			Help:      "Pipeline turns by role and outcome.",
		}, []string{"role", "outcome"}),
		generation: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Latency of external generation calls.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60},
		}, []string{"role"}),
		edits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "edits_total",
			Help:      "Generated message edits by role and outcome.",
		}, []string{"role", "outcome"}),
		history: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "history_messages",
			Help:      "Messages in each role's short-term history.",
		}, []string{"role"}),
		facts: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "long_term_facts",
			Help:      "Facts in each role's long-term memory.",
		}, []string{"role"}),
	}
	c.registry.MustRegister(c.turns, c.generation, c.edits, c.history, c.facts)
	return c
}

// ObserveTurn records the outcome and generation latency of one turn.
func (c *Collector) ObserveTurn(role string, dur time.Duration, err error) {
	if c == nil {
		return
	}
	c.turns.WithLabelValues(role, outcome(err)).Inc()
	c.generation.WithLabelValues(role).Observe(dur.Seconds())
}

// ObserveState records the sizes of a role's stores after a committed turn.
func (c *Collector) ObserveState(role string, historyLen, facts int) {
	if c == nil {
		return
	}
	c.history.WithLabelValues(role).Set(float64(historyLen))
	c.facts.WithLabelValues(role).Set(float64(facts))
}

// ObserveEdit records an edit attempt.
func (c *Collector) ObserveEdit(role string, err error) {
	if c == nil {
		return
	}
	c.edits.WithLabelValues(role, outcome(err)).Inc()
}

// Registry returns the underlying registry (nil for a nil Collector).
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// Handler serves the collected metrics in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

func outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeSuccess
}
