// Package metrics exports engine activity as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lox/holdem/internal/game"
)

// Collector counts hands, actions and pot sizes from engine events. It
// registers on its own registry so several collectors can coexist.
type Collector struct {
	registry *prometheus.Registry

	hands     prometheus.Counter
	abandoned prometheus.Counter
	showdowns prometheus.Counter
	actions   *prometheus.CounterVec
	phases    *prometheus.CounterVec
	potSize   prometheus.Histogram
}

// NewCollector creates a collector. Subscribe it to an event bus to feed it.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		hands: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "holdem_hands_total",
			Help: "Hands settled.",
		}),
		abandoned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "holdem_hands_abandoned_total",
			Help: "Hands ended by abandonment.",
		}),
		showdowns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "holdem_showdowns_total",
			Help: "Hands settled at showdown.",
		}),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "holdem_actions_total",
			Help: "Voluntary actions applied, by kind.",
		}, []string{"action"}),
		phases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "holdem_phases_total",
			Help: "Streets dealt, by phase.",
		}, []string{"phase"}),
		potSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "holdem_pot_size_chips",
			Help:    "Chips awarded per hand.",
			Buckets: prometheus.ExponentialBuckets(10, 2, 12),
		}),
	}
	c.registry.MustRegister(c.hands, c.abandoned, c.showdowns, c.actions, c.phases, c.potSize)
	return c
}

// Registry returns the registry holding the collector's metrics.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// OnEvent implements game.EventSubscriber.
func (c *Collector) OnEvent(ev game.Event) {
	switch e := ev.(type) {
	case game.ActionAppliedEvent:
		c.actions.WithLabelValues(e.Action.Kind.String()).Inc()
	case game.PhaseAdvancedEvent:
		c.phases.WithLabelValues(e.Phase.String()).Inc()
	case game.HandSettledEvent:
		c.hands.Inc()
		if e.Abandoned {
			c.abandoned.Inc()
		}
		if e.Settlement == nil {
			return
		}
		if e.Settlement.Showdown {
			c.showdowns.Inc()
		}
		c.potSize.Observe(float64(e.Settlement.Total()))
	}
}

// WriteFile writes the current values in the node exporter textfile format.
func (c *Collector) WriteFile(filename string) error {
	return prometheus.WriteToTextfile(filename, c.registry)
}
