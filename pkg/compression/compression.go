// Package compression provides streaming compression support for densify
// input containers and output tables. It wraps several algorithms behind a
// uniform reader/writer API with configurable levels.
//
// Algorithms: Gzip, Snappy, LZ4, Zstd, S2, Deflate. Choose based on your
// requirements:
//   - Snappy/S2: best for speed, moderate compression
//   - LZ4: extremely fast, decent compression
//   - Zstd: best compression ratio, good speed
//   - Gzip/Deflate: wide compatibility, good compression
//
// Usage:
//
//	w, err := compression.NewWriter(file, compression.Gzip, compression.Default)
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//	// write table bytes through w
//
// Input side, detecting the algorithm from the file name:
//
//	r, err := compression.NewReader(file, compression.ForPath("counts.json.zst"))
package compression

import (
	"compress/flate"
	"compress/gzip"
	"io"
	"path/filepath"
	"sort"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/ajitpratap0/densify/pkg/errors"
)

// Algorithm represents a compression algorithm.
// Each algorithm has different trade-offs between speed and compression ratio.
type Algorithm string

const (
	// None represents no compression
	None Algorithm = "none"
	// Gzip represents gzip compression
	Gzip Algorithm = "gzip"
	// Snappy represents snappy compression
	Snappy Algorithm = "snappy"
	// LZ4 represents lz4 compression
	LZ4 Algorithm = "lz4"
	// Zstd represents zstandard compression
	Zstd Algorithm = "zstd"
	// S2 represents s2 compression (Snappy compatible)
	S2 Algorithm = "s2"
	// Deflate represents deflate compression
	Deflate Algorithm = "deflate"
)

// Level represents compression level, controlling the trade-off between
// compression speed and compression ratio.
type Level int

const (
	// Fastest prioritizes speed over compression ratio
	Fastest Level = 1
	// Default balances speed and compression
	Default Level = 5
	// Better improves compression at cost of speed
	Better Level = 7
	// Best maximizes compression ratio
	Best Level = 9
)

// Algorithms returns the supported algorithm names, sorted
func Algorithms() []string {
	names := []string{
		string(None), string(Gzip), string(Snappy), string(LZ4),
		string(Zstd), string(S2), string(Deflate),
	}
	sort.Strings(names)
	return names
}

// ParseAlgorithm validates an algorithm name from configuration
func ParseAlgorithm(name string) (Algorithm, error) {
	switch Algorithm(name) {
	case None, Gzip, Snappy, LZ4, Zstd, S2, Deflate:
		return Algorithm(name), nil
	case "":
		return None, nil
	default:
		return None, errors.Newf(errors.ErrorTypeConfig,
			"unsupported compression algorithm: %s (valid: %v)", name, Algorithms()).
			WithDetail("algorithm", name)
	}
}

// Extension returns the conventional file extension for the algorithm
func Extension(algo Algorithm) string {
	switch algo {
	case Gzip:
		return ".gz"
	case Snappy:
		return ".snappy"
	case LZ4:
		return ".lz4"
	case Zstd:
		return ".zst"
	case S2:
		return ".s2"
	case Deflate:
		return ".deflate"
	default:
		return ""
	}
}

// ForPath infers the algorithm from a file name extension.
// Unrecognized extensions map to None.
func ForPath(path string) Algorithm {
	switch filepath.Ext(path) {
	case ".gz":
		return Gzip
	case ".snappy":
		return Snappy
	case ".lz4":
		return LZ4
	case ".zst":
		return Zstd
	case ".s2":
		return S2
	case ".deflate":
		return Deflate
	default:
		return None
	}
}

// NewWriter wraps dst with a compressing writer for the given algorithm.
// The returned writer must be closed to flush trailing blocks; closing it
// does not close dst.
func NewWriter(dst io.Writer, algo Algorithm, level Level) (io.WriteCloser, error) {
	switch algo {
	case None:
		return &nopWriteCloser{dst}, nil
	case Gzip:
		w, err := gzip.NewWriterLevel(dst, mapGzipLevel(level))
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeInternal, "failed to create gzip writer")
		}
		return w, nil
	case Snappy:
		return snappy.NewBufferedWriter(dst), nil
	case LZ4:
		w := lz4.NewWriter(dst)
		if err := w.Apply(lz4.CompressionLevelOption(mapLZ4Level(level))); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeInternal, "failed to configure lz4 writer")
		}
		return w, nil
	case Zstd:
		w, err := zstd.NewWriter(dst, zstd.WithEncoderLevel(mapZstdLevel(level)))
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeInternal, "failed to create zstd writer")
		}
		return w, nil
	case S2:
		return s2.NewWriter(dst), nil
	case Deflate:
		w, err := flate.NewWriter(dst, mapDeflateLevel(level))
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeInternal, "failed to create deflate writer")
		}
		return w, nil
	default:
		return nil, errors.Newf(errors.ErrorTypeConfig,
			"unsupported compression algorithm: %s (valid: %v)", algo, Algorithms())
	}
}

// NewReader wraps src with a decompressing reader for the given algorithm.
// Closing the returned reader does not close src.
func NewReader(src io.Reader, algo Algorithm) (io.ReadCloser, error) {
	switch algo {
	case None:
		return io.NopCloser(src), nil
	case Gzip:
		r, err := gzip.NewReader(src)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeData, "failed to open gzip stream")
		}
		return r, nil
	case Snappy:
		return io.NopCloser(snappy.NewReader(src)), nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(src)), nil
	case Zstd:
		r, err := zstd.NewReader(src)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeData, "failed to open zstd stream")
		}
		return r.IOReadCloser(), nil
	case S2:
		return io.NopCloser(s2.NewReader(src)), nil
	case Deflate:
		return flate.NewReader(src), nil
	default:
		return nil, errors.Newf(errors.ErrorTypeConfig,
			"unsupported compression algorithm: %s (valid: %v)", algo, Algorithms())
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// Helper functions to map compression levels

func mapGzipLevel(level Level) int {
	switch level {
	case Fastest:
		return gzip.BestSpeed
	case Best:
		return gzip.BestCompression
	default:
		return gzip.DefaultCompression
	}
}

func mapLZ4Level(level Level) lz4.CompressionLevel {
	switch level {
	case Fastest:
		return lz4.Fast
	case Best:
		return lz4.Level9
	default:
		return lz4.Level5
	}
}

func mapZstdLevel(level Level) zstd.EncoderLevel {
	switch level {
	case Fastest:
		return zstd.SpeedFastest
	case Better:
		return zstd.SpeedBetterCompression
	case Best:
		return zstd.SpeedBestCompression
	default:
		return zstd.SpeedDefault
	}
}

func mapDeflateLevel(level Level) int {
	switch level {
	case Fastest:
		return flate.BestSpeed
	case Best:
		return flate.BestCompression
	default:
		return flate.DefaultCompression
	}
}
