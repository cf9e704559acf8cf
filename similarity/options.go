package similarity

import (
	"log/slog"

	"github.com/viant/lexvec/index"
	"github.com/viant/lexvec/index/bruteforce"
	"github.com/viant/lexvec/metric"
)

// DefaultN is the number of results returned when WithN is not given.
const DefaultN = 10

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for shortfall warnings and debug records.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithParallelism caps goroutines used to score candidates.
func WithParallelism(n int) Option {
	return func(e *Engine) { e.parallelism = n }
}

// WithIndex replaces the default brute-force index.
func WithIndex(f index.Factory) Option {
	return func(e *Engine) {
		if f != nil {
			e.newIndex = f
		}
	}
}

// WithWarningHandler registers a callback invoked for every shortfall.
func WithWarningHandler(fn func(Warning)) Option {
	return func(e *Engine) { e.onWarning = fn }
}

// WithDefaults sets the per-call defaults applied before call options.
func WithDefaults(n int, m metric.Name, lower bool) Option {
	return func(e *Engine) {
		e.defaults = callOptions{n: n, metric: string(m), lower: lower}
	}
}

type callOptions struct {
	n      int
	metric string
	lower  bool
}

// CallOption adjusts a single ScoreSimilar or EmbsetSimilar call.
type CallOption func(*callOptions)

// WithN sets how many results to return.
func WithN(n int) CallOption {
	return func(o *callOptions) { o.n = n }
}

// WithMetric sets the metric by name, e.g. "cosine" or "euclidean".
func WithMetric(name string) CallOption {
	return func(o *callOptions) { o.metric = name }
}

// WithLower restricts candidates to lowercase tokens.
func WithLower(lower bool) CallOption {
	return func(o *callOptions) { o.lower = lower }
}

func defaultIndexFactory(parallelism int) index.Factory {
	return func() index.Index {
		return bruteforce.New(bruteforce.WithParallelism(parallelism))
	}
}
