package similarity

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/lexvec/embedding"
	"github.com/viant/lexvec/index"
	"github.com/viant/lexvec/index/bruteforce"
	"github.com/viant/lexvec/index/sqlindex"
	"github.com/viant/lexvec/metric"
	"github.com/viant/lexvec/resolve"
	"github.com/viant/lexvec/store/memory"
)

func newEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	s, err := memory.New(
		[]string{"cat", "dog", "car", "Paris", "kitten"},
		[][]float32{{1, 0}, {0.9, 0.1}, {-1, 0}, {0, 1}, {0.95, 0.05}},
	)
	require.NoError(t, err)
	return New(resolve.New(s), opts...)
}

func names(scored []Scored) []string {
	out := make([]string, len(scored))
	for i, s := range scored {
		out[i] = s.Name
	}
	return out
}

func TestScoreSimilarExample(t *testing.T) {
	s, err := memory.New(
		[]string{"cat", "dog", "car"},
		[][]float32{{1, 0}, {0.9, 0.1}, {-1, 0}},
	)
	require.NoError(t, err)
	e := New(resolve.New(s))

	got, err := e.ScoreSimilar("cat", WithN(2), WithMetric("cosine"))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "cat", got[0].Name)
	assert.InDelta(t, 0, got[0].Distance, 1e-6)
	assert.Equal(t, "dog", got[1].Name)
	assert.Greater(t, got[1].Distance, 0.0)
	assert.Less(t, got[1].Distance, 0.1)
}

func TestScoreSimilarSortedAscending(t *testing.T) {
	for _, m := range metric.Names() {
		got, err := newEngine(t).ScoreSimilar("cat", WithMetric(string(m)), WithN(5))
		require.NoError(t, err, m)
		require.Len(t, got, 5)
		assert.Equal(t, "cat", got[0].Name, m)
		assert.InDelta(t, 0, got[0].Distance, 1e-6, m)
		for i := 1; i < len(got); i++ {
			assert.LessOrEqual(t, got[i-1].Distance, got[i].Distance, m)
		}
	}
}

func TestScoreSimilarCount(t *testing.T) {
	var warnings []Warning
	e := newEngine(t, WithWarningHandler(func(w Warning) { warnings = append(warnings, w) }))

	for k := 0; k <= 5; k++ {
		got, err := e.ScoreSimilar("cat", WithN(k))
		require.NoError(t, err)
		assert.Len(t, got, k)
	}
	assert.Empty(t, warnings)

	got, err := e.ScoreSimilar("cat", WithN(-3))
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Empty(t, warnings)
}

func TestShortfallWarnsOnce(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	var warnings []Warning
	e := newEngine(t,
		WithLogger(logger),
		WithWarningHandler(func(w Warning) { warnings = append(warnings, w) }),
	)

	got, err := e.ScoreSimilar("cat", WithN(10), WithLower(true))
	require.NoError(t, err)
	assert.Len(t, got, 4)
	assert.NotContains(t, names(got), "Paris")

	assert.Equal(t, 1, strings.Count(buf.String(), "insufficient candidates"))
	require.Len(t, warnings, 1)
	assert.Equal(t, Warning{Found: 4, N: 10, Lower: true}, warnings[0])
	assert.True(t, errors.Is(warnings[0], ErrInsufficientCandidates))
	assert.Contains(t, warnings[0].Error(), "4 feasible words")
}

func TestDefaultsToTen(t *testing.T) {
	var warnings []Warning
	e := newEngine(t, WithWarningHandler(func(w Warning) { warnings = append(warnings, w) }))
	got, err := e.ScoreSimilar("dog")
	require.NoError(t, err)
	assert.Len(t, got, 5)
	require.Len(t, warnings, 1)
	assert.Equal(t, DefaultN, warnings[0].N)
}

func TestUnsupportedMetric(t *testing.T) {
	var warnings []Warning
	e := newEngine(t, WithWarningHandler(func(w Warning) { warnings = append(warnings, w) }))
	_, err := e.ScoreSimilar("cat", WithMetric("hamming"), WithN(100))
	assert.True(t, errors.Is(err, metric.ErrUnsupportedMetric))
	assert.Empty(t, warnings)

	_, err = e.EmbsetSimilar("cat", WithMetric("hamming"))
	assert.True(t, errors.Is(err, metric.ErrUnsupportedMetric))
}

func TestEmbsetSimilarMatchesScoreOrder(t *testing.T) {
	e := newEngine(t)
	scored, err := e.ScoreSimilar("cat", WithN(4), WithMetric("euclidean"))
	require.NoError(t, err)
	set, err := e.EmbsetSimilar("cat", WithN(4), WithMetric("euclidean"))
	require.NoError(t, err)
	assert.Equal(t, names(scored), set.Names())

	member, ok := set.Get("kitten")
	require.True(t, ok)
	assert.Equal(t, []float32{0.95, 0.05}, member.Vector)
}

func TestScoreSimilarToEmbedding(t *testing.T) {
	e := newEngine(t)
	q := embedding.New("north", []float32{0, 2})
	got, err := e.ScoreSimilarTo(q, WithN(1))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Paris", got[0].Name)

	set, err := e.EmbsetSimilarTo(q, WithN(2), WithLower(true))
	require.NoError(t, err)
	assert.Equal(t, 2, set.Len())
	assert.NotContains(t, set.Names(), "Paris")
}

func TestPhraseQuery(t *testing.T) {
	got, err := newEngine(t).ScoreSimilar("cat Paris", WithN(1))
	require.NoError(t, err)
	require.Len(t, got, 1)
	// "cat Paris" sums to (1, 1); dog is the closest direction to it.
	assert.Equal(t, "dog", got[0].Name)
}

func TestMissingQueryRanksWithZeroVector(t *testing.T) {
	got, err := newEngine(t).ScoreSimilar("unicorn", WithN(3))
	require.NoError(t, err)
	require.Len(t, got, 3)
	for _, s := range got {
		assert.Equal(t, float64(1), s.Distance)
	}
	assert.Equal(t, []string{"cat", "dog", "car"}, names(got))
}

func TestStrictQueryMiss(t *testing.T) {
	s, err := memory.New([]string{"cat"}, [][]float32{{1, 0}})
	require.NoError(t, err)
	e := New(resolve.New(s, resolve.WithMissPolicy(resolve.Strict)))
	_, err = e.ScoreSimilar("unicorn")
	assert.Error(t, err)
}

func TestEngineDefaults(t *testing.T) {
	var warnings []Warning
	e := newEngine(t,
		WithDefaults(2, metric.Euclidean, true),
		WithWarningHandler(func(w Warning) { warnings = append(warnings, w) }),
		WithParallelism(2),
	)
	got, err := e.ScoreSimilar("cat")
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "kitten"}, names(got))
	assert.Empty(t, warnings)
}

type closingIndex struct {
	*bruteforce.Index
	closed *int
}

func (c closingIndex) Close() error {
	*c.closed++
	return nil
}

func TestIndexClosedAfterQuery(t *testing.T) {
	closed := 0
	e := newEngine(t, WithIndex(func() index.Index {
		return closingIndex{Index: bruteforce.New(), closed: &closed}
	}))

	got, err := e.ScoreSimilar("cat", WithN(2))
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "kitten"}, names(got))
	_, err = e.EmbsetSimilar("dog", WithN(1))
	require.NoError(t, err)
	assert.Equal(t, 2, closed)
}

func TestSQLIndexMatchesDefault(t *testing.T) {
	db, err := sqlindex.Open()
	require.NoError(t, err)
	defer db.Close()

	sql := newEngine(t, WithIndex(sqlindex.Factory(db)))
	def := newEngine(t)
	for _, m := range metric.Names() {
		want, err := def.ScoreSimilar("kitten", WithMetric(string(m)), WithN(4))
		require.NoError(t, err, m)
		got, err := sql.ScoreSimilar("kitten", WithMetric(string(m)), WithN(4))
		require.NoError(t, err, m)
		assert.Equal(t, want, got, m)
	}
}
