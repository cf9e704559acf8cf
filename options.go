package lexvec

import (
	"github.com/viant/lexvec/index"
	"github.com/viant/lexvec/metric"
	"github.com/viant/lexvec/resolve"
	"github.com/viant/lexvec/similarity"
)

type options struct {
	logger      *Logger
	missPolicy  resolve.MissPolicy
	parallelism int
	onWarning   func(similarity.Warning)
	n           int
	metric      metric.Name
	lower       bool
	newIndex    index.Factory
}

func defaultOptions() options {
	return options{
		logger: NoopLogger(),
		n:      similarity.DefaultN,
		metric: metric.Default,
	}
}

// Option configures a Language.
type Option func(*options)

// WithLogger sets the logger.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMissPolicy sets how missing tokens resolve.
func WithMissPolicy(p resolve.MissPolicy) Option {
	return func(o *options) { o.missPolicy = p }
}

// WithParallelism caps goroutines used per similarity query.
func WithParallelism(n int) Option {
	return func(o *options) { o.parallelism = n }
}

// WithIndex replaces the brute-force ranking index.
func WithIndex(f index.Factory) Option {
	return func(o *options) { o.newIndex = f }
}

// WithWarningHandler registers a callback for candidate shortfalls.
func WithWarningHandler(fn func(similarity.Warning)) Option {
	return func(o *options) { o.onWarning = fn }
}

// WithSimilarityDefaults sets the n, metric and lower values used when a
// call does not override them.
func WithSimilarityDefaults(n int, m metric.Name, lower bool) Option {
	return func(o *options) {
		o.n, o.metric, o.lower = n, m, lower
	}
}
