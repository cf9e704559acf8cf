package kvfile

import (
	"bytes"
	"encoding/binary"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/lexvec/store/memory"
)

func sample(t *testing.T) *memory.Store {
	t.Helper()
	s, err := memory.New(
		[]string{"cat", "dog", "New York"},
		[][]float32{{1, 0, 0.5}, {0.9, 0.1, -0.25}, {-1, 0, 3.75}},
	)
	require.NoError(t, err)
	return s
}

func TestRoundTrip(t *testing.T) {
	for _, compress := range []bool{false, true} {
		var buf bytes.Buffer
		src := sample(t)
		require.NoError(t, Write(&buf, src, compress))

		got, err := Read(&buf)
		require.NoError(t, err, "compress=%v", compress)
		assert.Equal(t, src.Tokens(false), got.Tokens(false))
		assert.Equal(t, 3, got.Dimension())
		for _, token := range src.Tokens(false) {
			assert.Equal(t, src.Lookup(token).Vector(), got.Lookup(token).Vector(), token)
		}
	}
}

func TestCreateOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.kv")
	require.NoError(t, Create(path, sample(t), true))

	got, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Len())
}

func TestReadInvalid(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte("nope")))
	assert.True(t, errors.Is(err, ErrInvalidFormat))

	_, err = Read(bytes.NewReader([]byte("XXXX\x01\x00")))
	assert.True(t, errors.Is(err, ErrInvalidFormat))

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sample(t), false))
	truncated := buf.Bytes()[:buf.Len()-3]
	_, err = Read(bytes.NewReader(truncated))
	assert.True(t, errors.Is(err, ErrInvalidFormat))
}

func TestReadOversizedHeader(t *testing.T) {
	u32 := func(v uint32) []byte { return binary.LittleEndian.AppendUint32(nil, v) }
	header := []byte("LXVF\x01\x00")

	data := append(append(append([]byte{}, header...), u32(1<<28)...), u32(1)...)
	_, err := Read(bytes.NewReader(data))
	assert.True(t, errors.Is(err, ErrInvalidFormat))
	assert.Contains(t, err.Error(), "dimension")

	data = append(append(append(append([]byte{}, header...), u32(2)...), u32(1)...), u32(1<<30)...)
	_, err = Read(bytes.NewReader(data))
	assert.True(t, errors.Is(err, ErrInvalidFormat))
	assert.Contains(t, err.Error(), "id length")
}

func TestEmptyStore(t *testing.T) {
	empty, err := memory.New(nil, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, empty, false))
	got, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())
}
