package similarity

import (
	"io"
	"log/slog"

	"github.com/viant/lexvec/embedding"
	"github.com/viant/lexvec/index"
	"github.com/viant/lexvec/metric"
	"github.com/viant/lexvec/resolve"
	"github.com/viant/lexvec/store"
)

// Scored pairs a candidate embedding with its distance to the query.
type Scored struct {
	embedding.Embedding
	Distance float64
}

// Engine ranks store vocabulary against query embeddings. It is safe for
// concurrent use.
type Engine struct {
	resolver    *resolve.Resolver
	store       store.Store
	logger      *slog.Logger
	parallelism int
	newIndex    index.Factory
	onWarning   func(Warning)
	defaults    callOptions
}

// New creates an Engine that resolves queries and candidates with r.
func New(r *resolve.Resolver, opts ...Option) *Engine {
	e := &Engine{
		resolver: r,
		store:    r.Store(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		defaults: callOptions{n: DefaultN, metric: string(metric.Default)},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.newIndex == nil {
		e.newIndex = defaultIndexFactory(e.parallelism)
	}
	return e
}

// ScoreSimilar resolves query and returns the closest candidates with their
// distances, nearest first.
func (e *Engine) ScoreSimilar(query string, opts ...CallOption) ([]Scored, error) {
	q, err := e.resolver.Embedding(query)
	if err != nil {
		return nil, err
	}
	return e.ScoreSimilarTo(q, opts...)
}

// ScoreSimilarTo is ScoreSimilar for an already resolved embedding.
func (e *Engine) ScoreSimilarTo(query embedding.Embedding, opts ...CallOption) ([]Scored, error) {
	o := e.defaults
	for _, opt := range opts {
		opt(&o)
	}
	m, err := metric.Parse(o.metric)
	if err != nil {
		return nil, err
	}

	candidates, err := e.candidates(o.lower)
	if err != nil {
		return nil, err
	}
	idx := e.newIndex()
	if c, ok := idx.(io.Closer); ok {
		defer c.Close()
	}
	if err := idx.Build(candidates.Names(), candidates.Matrix()); err != nil {
		return nil, err
	}
	neighbors, err := idx.Query(query.Vector, o.n, m)
	if err != nil {
		return nil, err
	}

	if found := candidates.Len(); found < o.n {
		e.warn(Warning{Found: found, N: o.n, Lower: o.lower})
	}

	members := candidates.Embeddings()
	out := make([]Scored, len(neighbors))
	for i, n := range neighbors {
		out[i] = Scored{Embedding: members[n.Pos], Distance: n.Distance}
	}
	e.logger.Debug("similarity query",
		"query", query.Name,
		"metric", string(m),
		"n", o.n,
		"lower", o.lower,
		"candidates", candidates.Len(),
		"results", len(out),
	)
	return out, nil
}

// EmbsetSimilar ranks like ScoreSimilar and returns the matches, without
// distances, as an embedding.Set in rank order.
func (e *Engine) EmbsetSimilar(query string, opts ...CallOption) (*embedding.Set, error) {
	scored, err := e.ScoreSimilar(query, opts...)
	if err != nil {
		return nil, err
	}
	return toSet(scored), nil
}

// EmbsetSimilarTo is EmbsetSimilar for an already resolved embedding.
func (e *Engine) EmbsetSimilarTo(query embedding.Embedding, opts ...CallOption) (*embedding.Set, error) {
	scored, err := e.ScoreSimilarTo(query, opts...)
	if err != nil {
		return nil, err
	}
	return toSet(scored), nil
}

// candidates resolves every (optionally lowercase) vocabulary token. Tokens
// containing spaces go through the phrase path like any other query.
func (e *Engine) candidates(lower bool) (*embedding.Set, error) {
	return e.resolver.Set(e.store.Tokens(lower)...)
}

func (e *Engine) warn(w Warning) {
	e.logger.Warn("insufficient candidates",
		"found", w.Found,
		"n", w.N,
		"lower", w.Lower,
		"hint", "consider changing n or lower",
	)
	if e.onWarning != nil {
		e.onWarning(w)
	}
}

func toSet(scored []Scored) *embedding.Set {
	set := embedding.NewSet()
	for _, s := range scored {
		set.Add(s.Embedding)
	}
	return set
}
