package compression

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/densify/pkg/errors"
)

func TestRoundTrip(t *testing.T) {
	payload := []byte(strings.Repeat("cell,c0,c1,c2\nr0,0,5,0\nr1,7,0,9\n", 200))

	for _, algo := range []Algorithm{None, Gzip, Snappy, LZ4, Zstd, S2, Deflate} {
		t.Run(string(algo), func(t *testing.T) {
			var buf bytes.Buffer
			w, err := NewWriter(&buf, algo, Default)
			require.NoError(t, err)
			_, err = w.Write(payload)
			require.NoError(t, err)
			require.NoError(t, w.Close())

			r, err := NewReader(bytes.NewReader(buf.Bytes()), algo)
			require.NoError(t, err)
			defer func() { _ = r.Close() }()

			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, payload, got)
		})
	}
}

func TestRoundTrip_Levels(t *testing.T) {
	payload := []byte(strings.Repeat("0,0,0,1,0,2\n", 500))

	for _, level := range []Level{Fastest, Default, Better, Best} {
		var buf bytes.Buffer
		w, err := NewWriter(&buf, Zstd, level)
		require.NoError(t, err)
		_, err = w.Write(payload)
		require.NoError(t, err)
		require.NoError(t, w.Close())

		r, err := NewReader(bytes.NewReader(buf.Bytes()), Zstd)
		require.NoError(t, err)
		got, err := io.ReadAll(r)
		require.NoError(t, err)
		_ = r.Close()
		assert.Equal(t, payload, got)
	}
}

func TestParseAlgorithm(t *testing.T) {
	algo, err := ParseAlgorithm("zstd")
	require.NoError(t, err)
	assert.Equal(t, Zstd, algo)

	algo, err = ParseAlgorithm("")
	require.NoError(t, err)
	assert.Equal(t, None, algo)

	_, err = ParseAlgorithm("brotli")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}

func TestExtension(t *testing.T) {
	assert.Equal(t, ".gz", Extension(Gzip))
	assert.Equal(t, ".zst", Extension(Zstd))
	assert.Equal(t, "", Extension(None))
}

func TestForPath(t *testing.T) {
	tests := []struct {
		path string
		want Algorithm
	}{
		{"counts.json", None},
		{"counts.json.gz", Gzip},
		{"counts.json.zst", Zstd},
		{"counts.json.lz4", LZ4},
		{"counts.json.snappy", Snappy},
		{"counts.json.s2", S2},
		{"counts.json.deflate", Deflate},
		{"counts.unknown", None},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ForPath(tt.path), tt.path)
	}
}

func TestNewWriter_UnknownAlgorithm(t *testing.T) {
	var buf bytes.Buffer
	_, err := NewWriter(&buf, Algorithm("brotli"), Default)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}
