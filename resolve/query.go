package resolve

import (
	"github.com/viant/lexvec/embedding"
)

// Query is either a single string or an ordered batch of strings. Build one
// with Single or Batch.
type Query struct {
	single  string
	batch   []string
	isBatch bool
}

// Single wraps one token or phrase.
func Single(q string) Query { return Query{single: q} }

// Batch wraps an ordered list of tokens or phrases.
func Batch(qs ...string) Query {
	return Query{batch: append([]string(nil), qs...), isBatch: true}
}

// IsBatch reports whether q was built with Batch.
func (q Query) IsBatch() bool { return q.isBatch }

// Text returns the single query string; empty for batches.
func (q Query) Text() string { return q.single }

// Items returns the batch elements; nil for single queries.
func (q Query) Items() []string { return append([]string(nil), q.batch...) }

// Result holds the outcome of Resolve: Embedding for single queries, Set for
// batches.
type Result struct {
	Embedding embedding.Embedding
	Set       *embedding.Set
}

// IsBatch reports whether the result carries a Set.
func (r Result) IsBatch() bool { return r.Set != nil }
