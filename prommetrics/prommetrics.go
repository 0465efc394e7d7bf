// Package prommetrics exports pidalloc metrics to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	c, err := prommetrics.New(reg, prommetrics.WithNamespace("myapp"))
//	alloc, _ := pidalloc.New(8, pidalloc.WithMetricsCollector(c))
package prommetrics

import (
	"time"

	"github.com/hupe1980/pidalloc"
	"github.com/prometheus/client_golang/prometheus"
)

var _ pidalloc.MetricsCollector = (*Collector)(nil)

// Collector implements pidalloc.MetricsCollector on Prometheus metrics.
type Collector struct {
	opLatency   *prometheus.HistogramVec
	allocations *prometheus.CounterVec
	recycles    prometheus.Counter
	leaks       prometheus.Counter
	resets      prometheus.Counter
	inUse       prometheus.Gauge
}

type options struct {
	namespace   string
	constLabels prometheus.Labels
	buckets     []float64
}

// Option configures a Collector.
type Option func(*options)

// WithNamespace sets the metric namespace. Default "pidalloc".
func WithNamespace(ns string) Option {
	return func(o *options) { o.namespace = ns }
}

// WithConstLabels attaches constant labels, e.g. a pool name when several
// allocators share one registry.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(o *options) { o.constLabels = labels }
}

// WithBuckets sets the latency histogram buckets in seconds.
func WithBuckets(buckets []float64) Option {
	return func(o *options) { o.buckets = buckets }
}

// New creates a Collector and registers its metrics with reg.
// A nil reg selects prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer, optFns ...Option) (*Collector, error) {
	o := options{
		namespace: "pidalloc",
		buckets:   prometheus.ExponentialBuckets(1e-8, 4, 10), // 10ns .. ~2.6ms
	}
	for _, fn := range optFns {
		fn(&o)
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   o.namespace,
			Name:        "operation_latency_seconds",
			Help:        "Latency of allocator operations including lock acquisition",
			ConstLabels: o.constLabels,
			Buckets:     o.buckets,
		}, []string{"op"}),
		allocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   o.namespace,
			Name:        "allocations_total",
			Help:        "Allocation attempts by outcome",
			ConstLabels: o.constLabels,
		}, []string{"status"}),
		recycles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   o.namespace,
			Name:        "recycles_total",
			Help:        "IDs returned to the pool",
			ConstLabels: o.constLabels,
		}),
		leaks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   o.namespace,
			Name:        "leaks_total",
			Help:        "IDs reclaimed by the garbage collector without Release",
			ConstLabels: o.constLabels,
		}),
		resets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   o.namespace,
			Name:        "resets_total",
			Help:        "Allocator resets",
			ConstLabels: o.constLabels,
		}),
		inUse: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   o.namespace,
			Name:        "ids_in_use",
			Help:        "Currently allocated IDs",
			ConstLabels: o.constLabels,
		}),
	}

	for _, m := range []prometheus.Collector{c.opLatency, c.allocations, c.recycles, c.leaks, c.resets, c.inUse} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// MustNew is like New but panics on registration errors.
func MustNew(reg prometheus.Registerer, optFns ...Option) *Collector {
	c, err := New(reg, optFns...)
	if err != nil {
		panic(err)
	}
	return c
}

// RecordAllocate implements pidalloc.MetricsCollector.
func (c *Collector) RecordAllocate(d time.Duration, inUse int, ok bool) {
	status := "success"
	if !ok {
		status = "exhausted"
	}
	c.opLatency.WithLabelValues("allocate").Observe(d.Seconds())
	c.allocations.WithLabelValues(status).Inc()
	c.inUse.Set(float64(inUse))
}

// RecordRecycle implements pidalloc.MetricsCollector.
func (c *Collector) RecordRecycle(d time.Duration, inUse int) {
	c.opLatency.WithLabelValues("recycle").Observe(d.Seconds())
	c.recycles.Inc()
	c.inUse.Set(float64(inUse))
}

// RecordLeak implements pidalloc.MetricsCollector.
func (c *Collector) RecordLeak(uint64) {
	c.leaks.Inc()
}

// RecordReset implements pidalloc.MetricsCollector.
func (c *Collector) RecordReset(int) {
	c.resets.Inc()
	c.inUse.Set(0)
}
