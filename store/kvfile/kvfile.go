package kvfile

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/klauspost/compress/zstd"

	"github.com/viant/lexvec/store"
	"github.com/viant/lexvec/store/memory"
)

const (
	version       = 1
	flagZstd byte = 1 << 0

	maxDim   = 1 << 16
	maxIDLen = 1 << 16
)

var magic = [4]byte{'L', 'X', 'V', 'F'}

// ErrInvalidFormat is returned when the input is not a keyed-vector file.
var ErrInvalidFormat = errors.New("kvfile: invalid format")

// Write encodes every token of s, in enumeration order, to w.
func Write(w io.Writer, s store.Store, compress bool) (err error) {
	header := []byte{magic[0], magic[1], magic[2], magic[3], version, 0}
	if compress {
		header[5] |= flagZstd
	}
	if _, err := w.Write(header); err != nil {
		return err
	}

	var payload io.Writer
	var enc *zstd.Encoder
	bw := bufio.NewWriter(w)
	payload = bw
	if compress {
		if enc, err = zstd.NewWriter(bw); err != nil {
			return err
		}
		payload = enc
	}

	if err := writePayload(payload, s); err != nil {
		if enc != nil {
			_ = enc.Close()
		}
		return err
	}
	if enc != nil {
		if err := enc.Close(); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writePayload(w io.Writer, s store.Store) error {
	tokens := s.Tokens(false)
	dim := s.Dimension()
	buf := make([]byte, 4)
	putU32 := func(v uint32) error {
		binary.LittleEndian.PutUint32(buf, v)
		_, err := w.Write(buf)
		return err
	}
	if err := putU32(uint32(dim)); err != nil {
		return err
	}
	if err := putU32(uint32(len(tokens))); err != nil {
		return err
	}
	vecBuf := make([]byte, 4*dim)
	for _, token := range tokens {
		vec, err := store.Vector(s, token)
		if err != nil {
			return err
		}
		if len(vec) != dim {
			return &store.DimensionError{Token: token, Expected: dim, Actual: len(vec)}
		}
		if err := putU32(uint32(len(token))); err != nil {
			return err
		}
		if _, err := io.WriteString(w, token); err != nil {
			return err
		}
		for j, v := range vec {
			binary.LittleEndian.PutUint32(vecBuf[j*4:], math.Float32bits(v))
		}
		if _, err := w.Write(vecBuf); err != nil {
			return err
		}
	}
	return nil
}

// Read decodes a keyed-vector file into an in-memory store.
func Read(r io.Reader) (*memory.Store, error) {
	br := bufio.NewReader(r)
	header := make([]byte, 6)
	if _, err := io.ReadFull(br, header); err != nil {
		return nil, fmt.Errorf("%w: short header: %v", ErrInvalidFormat, err)
	}
	if [4]byte(header[:4]) != magic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrInvalidFormat, header[:4])
	}
	if header[4] != version {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidFormat, header[4])
	}

	var payload io.Reader = br
	if header[5]&flagZstd != 0 {
		dec, err := zstd.NewReader(br)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		payload = dec
	}
	return readPayload(payload)
}

func readPayload(r io.Reader) (*memory.Store, error) {
	buf := make([]byte, 4)
	getU32 := func(what string) (uint32, error) {
		if _, err := io.ReadFull(r, buf); err != nil {
			return 0, fmt.Errorf("%w: truncated %s: %v", ErrInvalidFormat, what, err)
		}
		return binary.LittleEndian.Uint32(buf), nil
	}
	dim, err := getU32("dim")
	if err != nil {
		return nil, err
	}
	if dim > maxDim {
		return nil, fmt.Errorf("%w: dimension %d exceeds %d", ErrInvalidFormat, dim, maxDim)
	}
	n, err := getU32("count")
	if err != nil {
		return nil, err
	}

	b := memory.NewBuilder(int(dim))
	vecBuf := make([]byte, 4*int(dim))
	for i := uint32(0); i < n; i++ {
		idLen, err := getU32("id length")
		if err != nil {
			return nil, err
		}
		if idLen > maxIDLen {
			return nil, fmt.Errorf("%w: id length %d exceeds %d", ErrInvalidFormat, idLen, maxIDLen)
		}
		id := make([]byte, idLen)
		if _, err := io.ReadFull(r, id); err != nil {
			return nil, fmt.Errorf("%w: truncated id: %v", ErrInvalidFormat, err)
		}
		if _, err := io.ReadFull(r, vecBuf); err != nil {
			return nil, fmt.Errorf("%w: truncated vector: %v", ErrInvalidFormat, err)
		}
		vec := make([]float32, dim)
		for j := range vec {
			vec[j] = math.Float32frombits(binary.LittleEndian.Uint32(vecBuf[j*4:]))
		}
		if err := b.Add(string(id), vec); err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}

// Open reads the keyed-vector file at path.
func Open(path string) (*memory.Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Create writes s to a new file at path, replacing any existing file.
func Create(path string, s store.Store, compress bool) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, s, compress); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
