package pidalloc

import (
	"log/slog"
	"time"
)

// DefaultRetryInterval is the pause between allocation attempts in
// AllocateContext.
const DefaultRetryInterval = time.Millisecond

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	retryInterval    time.Duration
	leakTracking     bool
}

// Option configures Allocator construction.
type Option func(*options)

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &pidalloc.BasicMetricsCollector{}
//	alloc, _ := pidalloc.New(8, pidalloc.WithMetricsCollector(metrics))
//	// ... use alloc ...
//	stats := metrics.GetStats()
//	fmt.Printf("Allocations: %d, exhausted: %d\n", stats.AllocateCount, stats.AllocateExhausted)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := pidalloc.NewJSONLogger(slog.LevelInfo)
//	alloc, _ := pidalloc.New(8, pidalloc.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithRetryInterval sets how often AllocateContext retries while the pool
// is exhausted. Non-positive values select DefaultRetryInterval.
func WithRetryInterval(d time.Duration) Option {
	return func(o *options) {
		if d <= 0 {
			d = DefaultRetryInterval
		}
		o.retryInterval = d
	}
}

// WithLeakTracking controls whether IDs dropped without Release are
// reclaimed when their handle is garbage collected. Enabled by default.
//
// Disabling it saves one cleanup registration per allocation; leaked IDs
// then stay allocated for the lifetime of the pool.
func WithLeakTracking(enabled bool) Option {
	return func(o *options) {
		o.leakTracking = enabled
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		retryInterval:    DefaultRetryInterval,
		leakTracking:     true,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
