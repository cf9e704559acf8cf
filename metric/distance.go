package metric

import (
	"math"

	"github.com/viant/vec/search"
)

// CosineDistance returns 1 - cosine similarity, clamped to [0, 2]. A zero
// vector has no direction, so its distance to anything is 1.
func CosineDistance(a, b []float32) float64 {
	va := search.Float32s(a)
	if va.Magnitude() == 0 || search.Float32s(b).Magnitude() == 0 {
		return 1
	}
	d := float64(va.CosineDistance(b))
	switch {
	case math.IsNaN(d):
		return 1
	case d < 0:
		return 0
	case d > 2:
		return 2
	}
	return d
}

// EuclideanDistance returns the L2 distance.
func EuclideanDistance(a, b []float32) float64 {
	return float64(search.Float32s(a).EuclideanDistance(b))
}

// SquaredEuclideanDistance returns the squared L2 distance.
func SquaredEuclideanDistance(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}

// ManhattanDistance returns the L1 distance.
func ManhattanDistance(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += math.Abs(float64(a[i]) - float64(b[i]))
	}
	return sum
}

// ChebyshevDistance returns the largest absolute component difference.
func ChebyshevDistance(a, b []float32) float64 {
	var m float64
	for i := range a {
		if d := math.Abs(float64(a[i]) - float64(b[i])); d > m {
			m = d
		}
	}
	return m
}
