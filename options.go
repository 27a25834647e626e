package rowmap

import "sync/atomic"

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
}

// Option configures process-wide RowMap instrumentation.
type Option func(*options)

// WithLogger configures the logger used to report backing conversions.
//
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector configures the collector notified of backing
// conversions and compositions.
//
// If nil is passed, NoopMetricsCollector is used.
func WithMetricsCollector(m MetricsCollector) Option {
	return func(o *options) {
		if m == nil {
			m = NoopMetricsCollector{}
		}
		o.metricsCollector = m
	}
}

var current atomic.Pointer[options]

func init() {
	current.Store(defaultOptions())
}

func defaultOptions() *options {
	return &options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
}

// Configure applies opts on top of the current configuration. It is safe
// to call concurrently with RowMap operations; operations already running
// keep the configuration they started with.
func Configure(opts ...Option) {
	for {
		old := current.Load()
		next := *old
		for _, opt := range opts {
			opt(&next)
		}
		if current.CompareAndSwap(old, &next) {
			return
		}
	}
}

// ResetConfig restores the default configuration: no logging, no metrics.
func ResetConfig() {
	current.Store(defaultOptions())
}

func config() *options {
	return current.Load()
}
