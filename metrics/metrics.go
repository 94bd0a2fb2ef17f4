// Package metrics counts pattern-lock activity with Prometheus.
//
// A Collector registers its series once and exposes Hooks that feed them;
// install the hooks on any number of sessions with patternlock.WithHooks.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	patternlock "github.com/codeninelabs/cnl-patternlock"
)

// Namespace prefixes every series name.
const Namespace = "patternlock"

// Collector holds the Prometheus series fed by session hooks.
type Collector struct {
	attempts      *prometheus.CounterVec
	selections    prometheus.Counter
	backtracks    prometheus.Counter
	length        prometheus.Histogram
	errorsCleared prometheus.Counter
}

// NewCollector creates the series and registers them with reg.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		attempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "attempts_total",
				Help:      "Completed pattern attempts by validation result.",
			},
			[]string{"result"},
		),
		selections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "dots_selected_total",
			Help:      "Dots appended to a pattern during drags.",
		}),
		backtracks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "backtracks_total",
			Help:      "Dots removed by dragging back past the previous dot.",
		}),
		length: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "pattern_length",
			Help:      "Number of dots in completed patterns.",
			Buckets:   prometheus.LinearBuckets(1, 1, 9),
		}),
		errorsCleared: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "errors_cleared_total",
			Help:      "Error indications that cleared themselves after the delay.",
		}),
	}

	for _, col := range []prometheus.Collector{c.attempts, c.selections, c.backtracks, c.length, c.errorsCleared} {
		if err := reg.Register(col); err != nil {
			return nil, fmt.Errorf("metrics: register: %w", err)
		}
	}

	// Expose both result labels from the start
	c.attempts.WithLabelValues("success")
	c.attempts.WithLabelValues("failure")

	return c, nil
}

// Hooks returns session hooks that update the collector.
func (c *Collector) Hooks() patternlock.Hooks {
	return patternlock.Hooks{
		OnSelect: func(patternlock.DotEvent) {
			c.selections.Inc()
		},
		OnBacktrack: func(patternlock.DotEvent) {
			c.backtracks.Inc()
		},
		OnComplete: func(comp patternlock.Completion) {
			c.attempts.WithLabelValues(comp.Result.Outcome().String()).Inc()
			c.length.Observe(float64(len(comp.Pattern)))
		},
		OnErrorCleared: func() {
			c.errorsCleared.Inc()
		},
	}
}
