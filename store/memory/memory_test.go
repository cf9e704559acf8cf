package memory

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/lexvec/store"
)

func TestStore(t *testing.T) {
	s, err := New(
		[]string{"cat", "Dog", "car"},
		[][]float32{{1, 0}, {0.9, 0.1}, {-1, 0}},
	)
	require.NoError(t, err)

	assert.Equal(t, 2, s.Dimension())
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Has("cat"))
	assert.False(t, s.Has("CAT"))
	assert.Equal(t, []string{"cat", "Dog", "car"}, s.Tokens(false))
	assert.Equal(t, []string{"cat", "car"}, s.Tokens(true))

	vec, err := store.Vector(s, "Dog")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.9, 0.1}, vec)

	_, err = store.Vector(s, "bird")
	assert.True(t, errors.Is(err, store.ErrLookupMiss))
}

func TestNewValidation(t *testing.T) {
	_, err := New([]string{"a"}, nil)
	assert.Error(t, err)

	_, err = New([]string{"a", "b"}, [][]float32{{1, 2}, {1}})
	assert.True(t, errors.Is(err, store.ErrDimensionMismatch))

	_, err = New([]string{""}, [][]float32{{1}})
	assert.True(t, errors.Is(err, store.ErrEmptyToken))
}

func TestNewRejectsEmptyVector(t *testing.T) {
	_, err := New([]string{"a", "b"}, [][]float32{{}, {1, 2, 3}})
	assert.True(t, errors.Is(err, store.ErrDimensionMismatch))

	_, err = FromMap([]string{"pad", "cat"}, map[string][]float32{"pad": {}, "cat": {1, 0}})
	assert.True(t, errors.Is(err, store.ErrDimensionMismatch))

	b := NewBuilder(0)
	require.NoError(t, b.Add("a", []float32{1, 2}))
	err = b.Add("b", []float32{1, 2, 3})
	var dimErr *store.DimensionError
	require.True(t, errors.As(err, &dimErr))
	assert.Equal(t, 2, dimErr.Expected)
}

func TestBuilderReplaceKeepsPosition(t *testing.T) {
	b := NewBuilder(1)
	require.NoError(t, b.Add("a", []float32{1}))
	require.NoError(t, b.Add("b", []float32{2}))
	require.NoError(t, b.Add("a", []float32{3}))
	assert.Equal(t, 2, b.Len())

	s := b.Build()
	assert.Equal(t, []string{"a", "b"}, s.Tokens(false))
	assert.Equal(t, []float32{3}, s.Lookup("a").Vector())
}

func TestFromMap(t *testing.T) {
	s, err := FromMap([]string{"y", "x"}, map[string][]float32{"x": {1}, "y": {2}})
	require.NoError(t, err)
	assert.Equal(t, []string{"y", "x"}, s.Tokens(false))

	_, err = FromMap([]string{"y", "z"}, map[string][]float32{"x": {1}, "y": {2}})
	assert.Error(t, err)
}

func TestConcurrentReads(t *testing.T) {
	s, err := New([]string{"a", "b"}, [][]float32{{1}, {2}})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = s.Lookup("a")
				_ = s.Tokens(true)
			}
		}()
	}
	wg.Wait()
}
