package resolve

import (
	"strings"

	"github.com/viant/lexvec/embedding"
	"github.com/viant/lexvec/store"
)

// MissPolicy decides what a single-token lookup does when the token is absent.
type MissPolicy int

const (
	// FallbackZero resolves a missing token to a zero vector.
	FallbackZero MissPolicy = iota
	// Strict returns an error wrapping store.ErrLookupMiss.
	Strict
)

func (p MissPolicy) String() string {
	switch p {
	case FallbackZero:
		return "zero"
	case Strict:
		return "strict"
	default:
		return "unknown"
	}
}

// ParseMissPolicy maps "zero" (or "") and "strict" to a MissPolicy.
func ParseMissPolicy(s string) (MissPolicy, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "zero", "fallback":
		return FallbackZero, true
	case "strict", "error":
		return Strict, true
	}
	return FallbackZero, false
}

const phraseSep = " "

// Resolver builds embeddings from a store. It holds no mutable state and is
// safe for concurrent use.
type Resolver struct {
	store  store.Store
	policy MissPolicy
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithMissPolicy sets the policy applied to missing tokens.
func WithMissPolicy(p MissPolicy) Option {
	return func(r *Resolver) { r.policy = p }
}

// New creates a Resolver over s.
func New(s store.Store, opts ...Option) *Resolver {
	r := &Resolver{store: s}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Store returns the underlying store.
func (r *Resolver) Store() store.Store { return r.store }

// Policy returns the configured miss policy.
func (r *Resolver) Policy() MissPolicy { return r.policy }

// Resolve dispatches on the query variant.
func (r *Resolver) Resolve(q Query) (Result, error) {
	if q.IsBatch() {
		set, err := r.Set(q.batch...)
		if err != nil {
			return Result{}, err
		}
		return Result{Set: set}, nil
	}
	e, err := r.Embedding(q.single)
	if err != nil {
		return Result{}, err
	}
	return Result{Embedding: e}, nil
}

// Embedding resolves a single token or phrase.
func (r *Resolver) Embedding(q string) (embedding.Embedding, error) {
	if strings.Contains(q, phraseSep) {
		return r.phrase(q)
	}
	vec, err := r.Sum(q)
	if err != nil {
		return embedding.Embedding{}, err
	}
	return embedding.Embedding{Name: q, Vector: vec}, nil
}

// phrase resolves each space-separated part through Embedding and sums the
// parts, so every part applies the miss policy on its own.
func (r *Resolver) phrase(q string) (embedding.Embedding, error) {
	parts := strings.Split(q, phraseSep)
	vectors := make([][]float32, 0, len(parts))
	for _, part := range parts {
		e, err := r.Embedding(part)
		if err != nil {
			return embedding.Embedding{}, err
		}
		vectors = append(vectors, e.Vector)
	}
	sum, err := embedding.Sum(vectors...)
	if err != nil {
		return embedding.Embedding{}, err
	}
	return embedding.Embedding{Name: q, Vector: sum}, nil
}

// Sum adds the store vectors of tokens, read straight from the store. A
// single miss discards the whole sum: under FallbackZero the result is all
// zeros, never a partial sum. Contrast with a phrase passed to Embedding,
// where each word falls back on its own.
func (r *Resolver) Sum(tokens ...string) ([]float32, error) {
	vectors := make([][]float32, 0, len(tokens))
	for _, token := range tokens {
		lookup := r.store.Lookup(token)
		if !lookup.Found() {
			if r.policy == Strict {
				_, err := lookup.OrErr()
				return nil, err
			}
			return make([]float32, r.store.Dimension()), nil
		}
		vectors = append(vectors, lookup.Vector())
	}
	if len(vectors) == 0 {
		return make([]float32, r.store.Dimension()), nil
	}
	return embedding.Sum(vectors...)
}

// Set resolves every query in order. Repeated queries collapse into one
// member holding the last resolution.
func (r *Resolver) Set(qs ...string) (*embedding.Set, error) {
	set := embedding.NewSet()
	for _, q := range qs {
		e, err := r.Embedding(q)
		if err != nil {
			return nil, err
		}
		set.Add(e)
	}
	return set, nil
}

// Matrix resolves every query and returns the vectors as rows, one per query
// and in query order, duplicates included.
func (r *Resolver) Matrix(qs ...string) ([][]float32, error) {
	out := make([][]float32, 0, len(qs))
	for _, q := range qs {
		e, err := r.Embedding(q)
		if err != nil {
			return nil, err
		}
		out = append(out, e.Vector)
	}
	return out, nil
}
