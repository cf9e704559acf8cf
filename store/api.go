package store

import (
	"errors"
	"fmt"
)

var (
	// ErrLookupMiss is returned when a token has no vector in the store.
	ErrLookupMiss = errors.New("store: token not found")

	// ErrDimensionMismatch is returned when vectors loaded into one store differ in length.
	ErrDimensionMismatch = errors.New("store: dimension mismatch")

	// ErrEmptyToken is returned when a store is built with an empty key.
	ErrEmptyToken = errors.New("store: empty token")
)

// Store is an immutable mapping from token to a fixed-length vector.
// Implementations must be safe for concurrent reads.
type Store interface {
	// Has reports whether token exists as a literal key.
	Has(token string) bool

	// Lookup returns the vector for token wrapped in a Lookup; callers decide
	// whether a miss becomes a zero vector or an error.
	Lookup(token string) Lookup

	// Tokens enumerates every key in load order. When lowerOnly is set, only
	// tokens equal to their lowercase form are returned.
	Tokens(lowerOnly bool) []string

	// Dimension returns the vector length shared by every entry.
	Dimension() int
}

// Vector returns the stored vector for token or an error wrapping ErrLookupMiss.
func Vector(s Store, token string) ([]float32, error) {
	return s.Lookup(token).OrErr()
}

// Lookup is the outcome of a single token lookup: either Found with a vector
// or Missing.
type Lookup struct {
	token  string
	vector []float32
	found  bool
}

// Found wraps a hit.
func Found(token string, vector []float32) Lookup {
	return Lookup{token: token, vector: vector, found: true}
}

// Missing wraps a miss.
func Missing(token string) Lookup {
	return Lookup{token: token}
}

// Found reports whether the token was present.
func (l Lookup) Found() bool { return l.found }

// Token returns the token that was looked up.
func (l Lookup) Token() string { return l.token }

// Vector returns the stored vector, nil on a miss. The slice is shared with
// the store and must not be modified.
func (l Lookup) Vector() []float32 { return l.vector }

// OrZero returns a copy of the vector, or zeros of length dim on a miss.
func (l Lookup) OrZero(dim int) []float32 {
	if !l.found {
		return make([]float32, dim)
	}
	return append([]float32(nil), l.vector...)
}

// OrErr returns a copy of the vector, or an error wrapping ErrLookupMiss.
func (l Lookup) OrErr() ([]float32, error) {
	if !l.found {
		return nil, fmt.Errorf("%w: %q", ErrLookupMiss, l.token)
	}
	return append([]float32(nil), l.vector...), nil
}
