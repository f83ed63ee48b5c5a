package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wealthyways/wealthyways/internal/advisor"
)

type metrics struct {
	registry    *prometheus.Registry
	evaluations *prometheus.CounterVec
	rejected    prometheus.Counter
	score       prometheus.Histogram
}

// newMetrics builds a private registry so tests and multiple services never
// collide on the global one.
func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &metrics{
		registry: reg,
		evaluations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "wealthyways_evaluations_total",
			Help: "Successful evaluations by category and commentary tier.",
		}, []string{"category", "tier"}),
		rejected: f.NewCounter(prometheus.CounterOpts{
			Name: "wealthyways_rejected_inputs_total",
			Help: "Snapshots rejected as invalid.",
		}),
		score: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "wealthyways_saving_score",
			Help:    "Distribution of saving scores.",
			Buckets: []float64{-100, -25, 0, 10, 25, 50, 100},
		}),
	}
}

func (m *metrics) observe(adv advisor.Advice) {
	m.evaluations.WithLabelValues(adv.Category.String(), string(adv.Tier)).Inc()
	m.score.Observe(adv.Score)
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
