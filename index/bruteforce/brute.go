package bruteforce

import (
	"fmt"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/viant/lexvec/index"
	"github.com/viant/lexvec/metric"
)

// minChunk keeps small vocabularies on a single goroutine.
const minChunk = 1024

// Index is a brute-force vector index.
type Index struct {
	ids         []string
	vecs        [][]float32
	dim         int
	parallelism int
}

// Option configures an Index.
type Option func(*Index)

// WithParallelism caps the goroutines used per query. Values <= 0 use
// GOMAXPROCS.
func WithParallelism(n int) Option {
	return func(i *Index) { i.parallelism = n }
}

// New creates an empty Index.
func New(opts ...Option) *Index {
	i := &Index{}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Build loads ids and vectors. Vectors are referenced, not copied.
func (i *Index) Build(ids []string, vectors [][]float32) error {
	if len(ids) != len(vectors) {
		return fmt.Errorf("bruteforce: ids and vectors length mismatch: %d != %d", len(ids), len(vectors))
	}
	if len(ids) == 0 {
		i.ids, i.vecs, i.dim = nil, nil, 0
		return nil
	}
	dim := len(vectors[0])
	for j := range vectors {
		if len(vectors[j]) != dim {
			return fmt.Errorf("bruteforce: inconsistent vector dims %d vs %d", len(vectors[j]), dim)
		}
	}
	i.ids = append([]string(nil), ids...)
	i.vecs = append([][]float32(nil), vectors...)
	i.dim = dim
	return nil
}

// Len implements index.Index.
func (i *Index) Len() int { return len(i.ids) }

// Query implements index.Index.
func (i *Index) Query(query []float32, k int, m metric.Name) ([]index.Neighbor, error) {
	fn := m.Function()
	if fn == nil {
		return nil, fmt.Errorf("%w: %q", metric.ErrUnsupportedMetric, m)
	}
	if k <= 0 || len(i.vecs) == 0 {
		return []index.Neighbor{}, nil
	}
	if len(query) != i.dim {
		return nil, fmt.Errorf("%w: query dim %d != index dim %d", metric.ErrDimensionMismatch, len(query), i.dim)
	}

	dists, err := i.distances(query, fn)
	if err != nil {
		return nil, err
	}
	order := make([]int, len(dists))
	for j := range order {
		order[j] = j
	}
	sort.SliceStable(order, func(a, b int) bool { return dists[order[a]] < dists[order[b]] })

	k = min(k, len(order))
	out := make([]index.Neighbor, k)
	for n := 0; n < k; n++ {
		pos := order[n]
		out[n] = index.Neighbor{Pos: pos, ID: i.ids[pos], Distance: dists[pos]}
	}
	return out, nil
}

func (i *Index) distances(query []float32, fn metric.Func) ([]float64, error) {
	n := len(i.vecs)
	workers := i.parallelism
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	chunk := max(minChunk, (n+workers-1)/workers)
	if chunk >= n {
		return metric.Pairwise(query, i.vecs, fn)
	}

	dists := make([]float64, n)
	var g errgroup.Group
	g.SetLimit(workers)
	for lo := 0; lo < n; lo += chunk {
		lo, hi := lo, min(lo+chunk, n)
		g.Go(func() error {
			part, err := metric.Pairwise(query, i.vecs[lo:hi], fn)
			if err != nil {
				return err
			}
			copy(dists[lo:hi], part)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return dists, nil
}

var _ index.Index = (*Index)(nil)
