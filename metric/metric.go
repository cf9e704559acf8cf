package metric

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedMetric is returned for metric names outside the supported set.
var ErrUnsupportedMetric = errors.New("metric: unsupported metric")

// ErrDimensionMismatch is returned when a query and a row differ in length.
var ErrDimensionMismatch = errors.New("metric: dimension mismatch")

// Name identifies a distance metric.
type Name string

const (
	Cosine           Name = "cosine"
	Euclidean        Name = "euclidean"
	SquaredEuclidean Name = "sqeuclidean"
	Manhattan        Name = "manhattan"
	Chebyshev        Name = "chebyshev"
)

// Default is the metric used when none is given.
const Default = Cosine

var aliases = map[string]Name{
	"cosine":      Cosine,
	"euclidean":   Euclidean,
	"l2":          Euclidean,
	"sqeuclidean": SquaredEuclidean,
	"manhattan":   Manhattan,
	"cityblock":   Manhattan,
	"l1":          Manhattan,
	"chebyshev":   Chebyshev,
}

// Func computes the distance between two equally sized vectors.
type Func func(a, b []float32) float64

// Parse resolves a metric name; matching ignores case and surrounding spaces.
// An empty name resolves to Default.
func Parse(name string) (Name, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return Default, nil
	}
	if n, ok := aliases[key]; ok {
		return n, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedMetric, name)
}

// Names lists the canonical metric names.
func Names() []Name {
	return []Name{Cosine, Euclidean, SquaredEuclidean, Manhattan, Chebyshev}
}

// Function returns the implementation for n, or nil if n is not canonical.
func (n Name) Function() Func {
	switch n {
	case Cosine:
		return CosineDistance
	case Euclidean:
		return EuclideanDistance
	case SquaredEuclidean:
		return SquaredEuclideanDistance
	case Manhattan:
		return ManhattanDistance
	case Chebyshev:
		return ChebyshevDistance
	default:
		return nil
	}
}

// Lookup parses name and returns its implementation.
func Lookup(name string) (Func, error) {
	n, err := Parse(name)
	if err != nil {
		return nil, err
	}
	return n.Function(), nil
}

// Pairwise returns the distance from query to every row, in row order.
func Pairwise(query []float32, rows [][]float32, fn Func) ([]float64, error) {
	if fn == nil {
		return nil, ErrUnsupportedMetric
	}
	out := make([]float64, len(rows))
	for i, row := range rows {
		if len(row) != len(query) {
			return nil, fmt.Errorf("%w: row %d has %d, query has %d", ErrDimensionMismatch, i, len(row), len(query))
		}
		out[i] = fn(query, row)
	}
	return out, nil
}

// Distances is Pairwise with the metric addressed by name.
func Distances(query []float32, rows [][]float32, name string) ([]float64, error) {
	fn, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return Pairwise(query, rows, fn)
}

func (n Name) String() string { return string(n) }
