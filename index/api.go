package index

import "github.com/viant/lexvec/metric"

// Neighbor is a single ranked match.
type Neighbor struct {
	// Pos is the position of the match in the slices passed to Build.
	Pos      int
	ID       string
	Distance float64
}

// Index defines a vector index with basic lifecycle methods.
type Index interface {
	// Build loads the given ids and vectors, replacing previous content.
	// ids and vectors must have the same length and vectors one dimension.
	Build(ids []string, vectors [][]float32) error

	// Len returns the number of indexed vectors.
	Len() int

	// Query returns up to k matches ordered by ascending distance under m.
	// Matches at equal distance keep their Build order. k <= 0 yields no
	// matches.
	Query(query []float32, k int, m metric.Name) ([]Neighbor, error)
}

// Factory creates an empty index. Callers close indexes that implement
// io.Closer once they are done querying.
type Factory func() Index
