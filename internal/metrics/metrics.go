package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Amr-9/pumpvanity/pkg/generator"
)

// Metrics holds all search-level metrics
type Metrics struct {
	registry *ComponentRegistry

	AttemptsTotal  *prometheus.CounterVec
	SearchesTotal  *prometheus.CounterVec
	SearchDuration *prometheus.HistogramVec
	WorkersActive  *prometheus.GaugeVec
	HashRate       *prometheus.GaugeVec
	LiveAttempts   *prometheus.GaugeVec
}

// NewMetrics creates search metrics
func NewMetrics() *Metrics {
	reg := NewComponentRegistry("pumpvanity", "search")

	return &Metrics{
		registry: reg,

		AttemptsTotal: reg.NewCounterVec(prometheus.CounterOpts{
			Name: "attempts_total",
			Help: "Keypairs generated by finished searches",
		}, []string{"network"}),

		SearchesTotal: reg.NewCounterVec(prometheus.CounterOpts{
			Name: "searches_total",
			Help: "Finished searches by outcome",
		}, []string{"network", "outcome"}),

		SearchDuration: reg.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "duration_seconds",
			Help:    "Wall-clock duration of finished searches",
			Buckets: DurationBuckets,
		}, []string{"network", "outcome"}),

		WorkersActive: reg.NewGaugeVec(prometheus.GaugeOpts{
			Name: "workers_active",
			Help: "Worker goroutines currently searching",
		}, []string{"network"}),

		HashRate: reg.NewGaugeVec(prometheus.GaugeOpts{
			Name: "hash_rate",
			Help: "Keypairs generated per second by the running search",
		}, []string{"network"}),

		LiveAttempts: reg.NewGaugeVec(prometheus.GaugeOpts{
			Name: "live_attempts",
			Help: "Keypairs generated so far by the running search",
		}, []string{"network"}),
	}
}

// Registry returns the Prometheus registry holding these metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry.Registry()
}

// SearchStarted records a search launch.
func (m *Metrics) SearchStarted(network generator.Network, workers int) {
	m.WorkersActive.WithLabelValues(network.String()).Add(float64(workers))
}

// SearchFinished records a search that has stopped, with or without a match.
func (m *Metrics) SearchFinished(network generator.Network, outcome string, workers int, attempts uint64, elapsed time.Duration) {
	label := network.String()
	m.AttemptsTotal.WithLabelValues(label).Add(float64(attempts))
	m.SearchesTotal.WithLabelValues(label, outcome).Inc()
	m.SearchDuration.WithLabelValues(label, outcome).Observe(elapsed.Seconds())
	m.WorkersActive.WithLabelValues(label).Sub(float64(workers))
	m.LiveAttempts.WithLabelValues(label).Set(0)
	m.HashRate.WithLabelValues(label).Set(0)
}

// ObserveStats publishes live progress of a running search.
func (m *Metrics) ObserveStats(network generator.Network, stats generator.Stats) {
	label := network.String()
	m.LiveAttempts.WithLabelValues(label).Set(float64(stats.Attempts))
	m.HashRate.WithLabelValues(label).Set(stats.HashRate)
}
