package source

import (
	"context"
	"os"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/ajitpratap0/densify/pkg/compression"
	"github.com/ajitpratap0/densify/pkg/errors"
	"github.com/ajitpratap0/densify/pkg/logger"
)

// JSONSource reads a CSR container from a JSON file laid out like an
// exported AnnData matrix:
//
//	{
//	  "dtype": "int32",
//	  "shape": [2, 3],
//	  "indptr": [0, 1, 3],
//	  "indices": [1, 0, 2],
//	  "data": [5, 7, 9],
//	  "obs_names": ["r0", "r1"],
//	  "var_names": ["c0", "c1", "c2"]
//	}
//
// Compressed inputs are handled transparently based on the file
// extension (.gz, .zst, .snappy, .lz4, .s2, .deflate).
type JSONSource struct {
	path   string
	logger *zap.Logger
}

// NewJSON creates a source reading the container at path
func NewJSON(path string) *JSONSource {
	return &JSONSource{
		path: path,
		logger: logger.Get().With(
			zap.String("component", "json_source"),
			zap.String("path", path)),
	}
}

// Load implements Source
func (s *JSONSource) Load(ctx context.Context) (*Container, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "load canceled")
	}

	file, err := os.Open(s.path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to open input file").
			WithDetail("path", s.path)
	}
	defer func() {
		_ = file.Close()
	}()

	algo := compression.ForPath(s.path)
	reader, err := compression.NewReader(file, algo)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = reader.Close()
	}()

	if algo != compression.None {
		s.logger.Debug("decompressing input", zap.String("algorithm", string(algo)))
	}

	var container Container
	if err := json.NewDecoder(reader).Decode(&container); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "failed to decode container").
			WithDetail("path", s.path)
	}

	if err := container.Validate(); err != nil {
		return nil, err
	}

	s.logger.Info("container loaded",
		zap.String("dtype", container.DType),
		zap.Int("rows", container.Rows()),
		zap.Int("cols", container.Cols()),
		zap.Int("nnz", len(container.Indices)))

	return &container, nil
}

var _ Source = (*JSONSource)(nil)
