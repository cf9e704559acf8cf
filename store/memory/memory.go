// Package memory provides an in-process store.Store over an ordered token
// list. It is the backend every other loader materializes into.
package memory

import (
	"fmt"

	"github.com/viant/lexvec/store"
)

// Store keeps vectors in a map and their tokens in load order.
type Store struct {
	tokens  []string
	vectors map[string][]float32
	dim     int
}

// Builder accumulates entries before freezing them into a Store.
type Builder struct {
	tokens  []string
	vectors map[string][]float32
	dim     int
	fixed   bool
}

// NewBuilder creates a Builder. A dim of zero takes the length of the first
// vector added.
func NewBuilder(dim int) *Builder {
	return &Builder{vectors: make(map[string][]float32), dim: dim, fixed: dim > 0}
}

// Add appends a token. Re-adding a token replaces its vector and keeps its
// first position. Empty vectors are rejected.
func (b *Builder) Add(token string, vector []float32) error {
	if err := store.ValidateEntry(token, vector, b.dim); err != nil {
		return err
	}
	if !b.fixed {
		b.dim, b.fixed = len(vector), true
	}
	if _, ok := b.vectors[token]; !ok {
		b.tokens = append(b.tokens, token)
	}
	b.vectors[token] = append([]float32(nil), vector...)
	return nil
}

// Len returns the number of distinct tokens added so far.
func (b *Builder) Len() int { return len(b.tokens) }

// Build returns the immutable Store. The builder must not be reused.
func (b *Builder) Build() *Store {
	s := &Store{tokens: b.tokens, vectors: b.vectors, dim: b.dim}
	b.tokens, b.vectors = nil, nil
	return s
}

// New builds a Store from parallel token and vector slices.
func New(tokens []string, vectors [][]float32) (*Store, error) {
	if len(tokens) != len(vectors) {
		return nil, fmt.Errorf("memory: tokens and vectors length mismatch: %d != %d", len(tokens), len(vectors))
	}
	b := NewBuilder(0)
	for i, token := range tokens {
		if err := b.Add(token, vectors[i]); err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}

// FromMap builds a Store whose order is given explicitly by order. Every
// key of m must appear in order.
func FromMap(order []string, m map[string][]float32) (*Store, error) {
	if len(order) != len(m) {
		return nil, fmt.Errorf("memory: order lists %d tokens, map has %d", len(order), len(m))
	}
	b := NewBuilder(0)
	for _, token := range order {
		vec, ok := m[token]
		if !ok {
			return nil, fmt.Errorf("memory: token %q missing from map", token)
		}
		if err := b.Add(token, vec); err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}

// Has implements store.Store.
func (s *Store) Has(token string) bool {
	_, ok := s.vectors[token]
	return ok
}

// Lookup implements store.Store.
func (s *Store) Lookup(token string) store.Lookup {
	if vec, ok := s.vectors[token]; ok {
		return store.Found(token, vec)
	}
	return store.Missing(token)
}

// Tokens implements store.Store.
func (s *Store) Tokens(lowerOnly bool) []string {
	if lowerOnly {
		return store.FilterLower(s.tokens)
	}
	return append([]string(nil), s.tokens...)
}

// Dimension implements store.Store.
func (s *Store) Dimension() int { return s.dim }

// Len returns the vocabulary size.
func (s *Store) Len() int { return len(s.tokens) }

var _ store.Store = (*Store)(nil)
