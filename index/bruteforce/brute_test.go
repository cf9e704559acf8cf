package bruteforce

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/lexvec/metric"
)

func TestQueryCosine(t *testing.T) {
	idx := New()
	require.NoError(t, idx.Build(
		[]string{"cat", "dog", "car"},
		[][]float32{{1, 0}, {0.9, 0.1}, {-1, 0}},
	))
	assert.Equal(t, 3, idx.Len())

	got, err := idx.Query([]float32{1, 0}, 2, metric.Cosine)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "cat", got[0].ID)
	assert.InDelta(t, 0, got[0].Distance, 1e-6)
	assert.Equal(t, "dog", got[1].ID)
	assert.Greater(t, got[1].Distance, 0.0)
	assert.Equal(t, 1, got[1].Pos)
}

func TestQueryStableTies(t *testing.T) {
	idx := New()
	require.NoError(t, idx.Build(
		[]string{"b", "a", "c", "d"},
		[][]float32{{1, 1}, {1, 1}, {0, 0}, {1, 1}},
	))
	got, err := idx.Query([]float32{0, 0}, 10, metric.Euclidean)
	require.NoError(t, err)
	ids := make([]string, len(got))
	for i, n := range got {
		ids[i] = n.ID
	}
	assert.Equal(t, []string{"c", "b", "a", "d"}, ids)
}

func TestQueryEdgeCases(t *testing.T) {
	idx := New()
	got, err := idx.Query([]float32{1}, 3, metric.Cosine)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, idx.Build([]string{"a"}, [][]float32{{1, 2}}))
	got, err = idx.Query([]float32{1, 2}, 0, metric.Cosine)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	_, err = idx.Query([]float32{1}, 1, metric.Cosine)
	assert.True(t, errors.Is(err, metric.ErrDimensionMismatch))

	_, err = idx.Query([]float32{1, 2}, 1, metric.Name("hamming"))
	assert.True(t, errors.Is(err, metric.ErrUnsupportedMetric))

	assert.Error(t, idx.Build([]string{"a", "b"}, [][]float32{{1}}))
	assert.Error(t, idx.Build([]string{"a", "b"}, [][]float32{{1}, {1, 2}}))
}

func TestParallelMatchesSerial(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	const n, dim = 5000, 8
	ids := make([]string, n)
	vecs := make([][]float32, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("w%d", i)
		v := make([]float32, dim)
		for j := range v {
			v[j] = float32(r.NormFloat64())
		}
		vecs[i] = v
	}

	serial := New(WithParallelism(1))
	parallel := New(WithParallelism(4))
	require.NoError(t, serial.Build(ids, vecs))
	require.NoError(t, parallel.Build(ids, vecs))

	q := vecs[42]
	want, err := serial.Query(q, 25, metric.Cosine)
	require.NoError(t, err)
	got, err := parallel.Query(q, 25, metric.Cosine)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, "w42", got[0].ID)
}
