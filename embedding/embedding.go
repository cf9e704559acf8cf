package embedding

import (
	"errors"
	"fmt"
)

// ErrDimensionMismatch is returned when two vectors of different lengths are combined.
var ErrDimensionMismatch = errors.New("embedding: dimension mismatch")

// Embedding pairs a name (a token or the original phrase) with its vector.
type Embedding struct {
	Name   string
	Vector []float32
}

// New returns an Embedding that owns a copy of vector.
func New(name string, vector []float32) Embedding {
	return Embedding{Name: name, Vector: append([]float32(nil), vector...)}
}

// Dim returns the vector length.
func (e Embedding) Dim() int { return len(e.Vector) }

// Add returns the element-wise sum of e and other, keeping e's name.
func (e Embedding) Add(other Embedding) (Embedding, error) {
	sum, err := Sum(e.Vector, other.Vector)
	if err != nil {
		return Embedding{}, err
	}
	return Embedding{Name: e.Name, Vector: sum}, nil
}

func (e Embedding) String() string {
	return fmt.Sprintf("Emb[%s]", e.Name)
}

// Sum adds vectors element-wise into a freshly allocated slice. All inputs
// must share one length; an empty input yields nil.
func Sum(vectors ...[]float32) ([]float32, error) {
	if len(vectors) == 0 {
		return nil, nil
	}
	dim := len(vectors[0])
	out := make([]float32, dim)
	for _, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(v), dim)
		}
		for i := range v {
			out[i] += v[i]
		}
	}
	return out, nil
}
