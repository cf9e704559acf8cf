package lexvec

import (
	"io"

	"github.com/viant/lexvec/embedding"
	"github.com/viant/lexvec/resolve"
	"github.com/viant/lexvec/similarity"
	"github.com/viant/lexvec/store"
)

// Language fetches embeddings from a store and ranks its vocabulary. It does
// not own or mutate the store and is safe for concurrent use.
type Language struct {
	store    store.Store
	resolver *resolve.Resolver
	engine   *similarity.Engine
	logger   *Logger
	closers  []io.Closer
}

// New creates a Language over s.
func New(s store.Store, opts ...Option) *Language {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	r := resolve.New(s, resolve.WithMissPolicy(o.missPolicy))
	e := similarity.New(r,
		similarity.WithLogger(o.logger.Logger),
		similarity.WithParallelism(o.parallelism),
		similarity.WithWarningHandler(o.onWarning),
		similarity.WithDefaults(o.n, o.metric, o.lower),
		similarity.WithIndex(o.newIndex),
	)
	return &Language{store: s, resolver: r, engine: e, logger: o.logger}
}

// Store returns the underlying store.
func (l *Language) Store() store.Store { return l.store }

// Get resolves a single token or space-separated phrase.
func (l *Language) Get(query string) (embedding.Embedding, error) {
	return l.resolver.Embedding(query)
}

// Set resolves each query, in order, into an embedding set.
func (l *Language) Set(queries ...string) (*embedding.Set, error) {
	return l.resolver.Set(queries...)
}

// Resolve dispatches on the query variant: resolve.Single yields an
// Embedding, resolve.Batch a Set.
func (l *Language) Resolve(q resolve.Query) (resolve.Result, error) {
	return l.resolver.Resolve(q)
}

// Transform returns one vector per query, in order.
func (l *Language) Transform(queries ...string) ([][]float32, error) {
	return l.resolver.Matrix(queries...)
}

// ScoreSimilar returns the vocabulary entries closest to query with their
// distances, nearest first.
func (l *Language) ScoreSimilar(query string, opts ...similarity.CallOption) ([]similarity.Scored, error) {
	return l.engine.ScoreSimilar(query, opts...)
}

// ScoreSimilarTo is ScoreSimilar for an existing embedding.
func (l *Language) ScoreSimilarTo(query embedding.Embedding, opts ...similarity.CallOption) ([]similarity.Scored, error) {
	return l.engine.ScoreSimilarTo(query, opts...)
}

// EmbsetSimilar returns the entries closest to query as a set, nearest first.
func (l *Language) EmbsetSimilar(query string, opts ...similarity.CallOption) (*embedding.Set, error) {
	return l.engine.EmbsetSimilar(query, opts...)
}

// EmbsetSimilarTo is EmbsetSimilar for an existing embedding.
func (l *Language) EmbsetSimilarTo(query embedding.Embedding, opts ...similarity.CallOption) (*embedding.Set, error) {
	return l.engine.EmbsetSimilarTo(query, opts...)
}

// Close releases resources opened by Load, such as the SQLite ranking
// database. The store itself is not closed.
func (l *Language) Close() error {
	var first error
	for _, c := range l.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	l.closers = nil
	return first
}
