// Package pipeline orchestrates one densify conversion: load the raw
// container, dispatch on its element-type tag, orient the matrix, then
// stream materialized rows into the sink in strict row order.
//
// The run is a single-pass, single-threaded pipeline with an explicit
// phase boundary: the matrix is finalized (and possibly transposed)
// before the first row is emitted, and is read-only afterwards. All
// structural, label, and type errors surface before any record is
// written; sink I/O errors abort the run with whatever the sink has
// already flushed.
package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/ajitpratap0/densify/pkg/compression"
	"github.com/ajitpratap0/densify/pkg/config"
	"github.com/ajitpratap0/densify/pkg/errors"
	"github.com/ajitpratap0/densify/pkg/logger"
	"github.com/ajitpratap0/densify/pkg/metrics"
	"github.com/ajitpratap0/densify/pkg/sink"
	"github.com/ajitpratap0/densify/pkg/source"
	"github.com/ajitpratap0/densify/pkg/sparse"
)

// rows between context cancellation checks during emission
const cancelCheckStride = 4096

// Converter runs one container-to-table conversion
type Converter struct {
	cfg    *config.Config
	src    source.Source
	logger *zap.Logger
}

// New creates a converter for the given configuration, reading from the
// configured JSON container source.
func New(cfg *config.Config) *Converter {
	return &Converter{
		cfg: cfg,
		src: source.NewJSON(cfg.Input.Path),
		logger: logger.Get().With(
			zap.String("component", "converter"),
			zap.String("input", cfg.Input.Path),
			zap.String("output", cfg.Output.Path)),
	}
}

// NewWithSource creates a converter reading from a custom source
func NewWithSource(cfg *config.Config, src source.Source) *Converter {
	c := New(cfg)
	c.src = src
	return c
}

// converters maps each supported element-type tag to its concrete
// instantiation of the generic conversion. This map is the single
// runtime dispatch point; everything behind it is written once.
var converters = map[string]func(context.Context, *Converter, *source.Container) error{
	"int8":    convertTyped[int8],
	"int16":   convertTyped[int16],
	"int32":   convertTyped[int32],
	"int64":   convertTyped[int64],
	"uint8":   convertTyped[uint8],
	"uint16":  convertTyped[uint16],
	"uint32":  convertTyped[uint32],
	"uint64":  convertTyped[uint64],
	"float32": convertTyped[float32],
	"float64": convertTyped[float64],
}

// Run executes the conversion. It returns the first error encountered;
// no row is written unless the container, matrix, and labels all
// validated first.
func (c *Converter) Run(ctx context.Context) error {
	if err := c.cfg.Validate(); err != nil {
		return err
	}

	totalTimer := metrics.NewTimer("total")
	loadTimer := metrics.NewTimer("load")

	container, err := c.src.Load(ctx)
	if err != nil {
		return err
	}
	loadDuration := loadTimer.Stop()

	convert, ok := converters[container.DType]
	if !ok {
		return errors.Newf(errors.ErrorTypeUnsupportedType,
			"unsupported element type %q (valid: %v)", container.DType, sparse.SupportedTypes()).
			WithDetail("dtype", container.DType)
	}

	if err := convert(ctx, c, container); err != nil {
		return err
	}

	if c.cfg.Observability.EnableMetrics {
		collector := metrics.NewCollector(c.cfg.Output.Orientation, container.DType)
		collector.ObservePhase("load", loadDuration)
		collector.ObservePhase("total", totalTimer.Stop())
	}

	return nil
}

// convertTyped is the whole conversion for one concrete element type:
// decode values, build and validate the matrix, orient, then stream
// every row through the materializer into the sink.
func convertTyped[T sparse.Element](ctx context.Context, c *Converter, container *source.Container) error {
	values, err := source.DecodeValues[T](container)
	if err != nil {
		return err
	}

	matrix, err := sparse.New(container.Rows(), container.Cols(), container.Indptr, container.Indices, values)
	if err != nil {
		return err
	}

	layout, err := sparse.Orient(matrix, container.ObsNames, container.VarNames, c.cfg.Orientation())
	if err != nil {
		return err
	}

	out, err := sink.NewCSV(sink.Config{
		Path:             c.cfg.Output.Path,
		Delimiter:        c.cfg.Delimiter(),
		Overwrite:        c.cfg.Output.Overwrite,
		Compression:      c.cfg.Compression(),
		CompressionLevel: compression.Level(c.cfg.Output.CompressionLevel),
		FlushEvery:       c.cfg.Output.FlushEvery,
	})
	if err != nil {
		return err
	}

	c.logger.Info("writing dense table",
		zap.String("path", out.Path()),
		zap.String("dtype", container.DType),
		zap.String("orientation", c.cfg.Output.Orientation),
		zap.Int("rows", layout.Matrix.RowCount()),
		zap.Int("cols", layout.Matrix.ColCount()),
		zap.Int("nnz", layout.Matrix.NNZ()))

	if err := emit(ctx, c, layout, out, container.DType); err != nil {
		_ = out.Close()
		return err
	}

	return out.Close()
}

// emit streams the header and every materialized row, in order
func emit[T sparse.Element](ctx context.Context, c *Converter, layout *sparse.Layout[T], out sink.RecordSink, dtype string) error {
	if err := out.WriteHeader(layout.RowLabel, layout.Header); err != nil {
		return err
	}

	var collector *metrics.Collector
	if c.cfg.Observability.EnableMetrics {
		collector = metrics.NewCollector(c.cfg.Output.Orientation, dtype)
	}

	convertTimer := metrics.NewTimer("convert")
	progress := newProgressReporter(c.logger, layout.Matrix.RowCount(), c.cfg.Observability.ProgressInterval)
	tracker := metrics.NewThroughputTracker()

	fields := make([]string, layout.Matrix.ColCount())
	it := layout.Matrix.Rows()

	for i := 0; ; i++ {
		row, ok := it.Next()
		if !ok {
			break
		}

		if i%cancelCheckStride == 0 {
			if err := ctx.Err(); err != nil {
				return errors.Wrap(err, errors.ErrorTypeFile, "conversion canceled")
			}
		}

		cursor := row.Cursor()
		for j := range fields {
			v, _ := cursor.Next()
			fields[j] = sparse.FormatValue(v)
		}

		if err := out.WriteRow(layout.RowNames[i], fields); err != nil {
			if collector != nil {
				collector.RowFailed()
			}
			return err
		}

		progress.increment()
		if collector != nil {
			collector.RowEmitted(len(fields))
			tracker.Increment(1)
		}
	}

	progress.finish()
	if collector != nil {
		collector.SetThroughput(tracker.GetAndReset())
		collector.ObservePhase("convert", convertTimer.Stop())
	}

	return nil
}
