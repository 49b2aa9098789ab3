// Package metrics exposes search metrics to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// DurationBuckets spans sub-second searches up to multi-hour ones.
var DurationBuckets = prometheus.ExponentialBuckets(0.01, 4, 12)

// ComponentRegistry creates collectors under a shared namespace/subsystem and
// registers them on its own registry.
type ComponentRegistry struct {
	namespace string
	subsystem string
	registry  *prometheus.Registry
}

// NewComponentRegistry returns a registry preloaded with the Go and process collectors.
func NewComponentRegistry(namespace, subsystem string) *ComponentRegistry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &ComponentRegistry{
		namespace: namespace,
		subsystem: subsystem,
		registry:  reg,
	}
}

// Registry returns the underlying Prometheus registry.
func (r *ComponentRegistry) Registry() *prometheus.Registry {
	return r.registry
}

func (r *ComponentRegistry) NewCounterVec(opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	opts.Namespace, opts.Subsystem = r.namespace, r.subsystem
	c := prometheus.NewCounterVec(opts, labels)
	r.registry.MustRegister(c)
	return c
}

func (r *ComponentRegistry) NewGaugeVec(opts prometheus.GaugeOpts, labels []string) *prometheus.GaugeVec {
	opts.Namespace, opts.Subsystem = r.namespace, r.subsystem
	g := prometheus.NewGaugeVec(opts, labels)
	r.registry.MustRegister(g)
	return g
}

func (r *ComponentRegistry) NewHistogramVec(opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	opts.Namespace, opts.Subsystem = r.namespace, r.subsystem
	h := prometheus.NewHistogramVec(opts, labels)
	r.registry.MustRegister(h)
	return h
}
