package sink

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/ajitpratap0/densify/pkg/compression"
	"github.com/ajitpratap0/densify/pkg/errors"
	"github.com/ajitpratap0/densify/pkg/logger"
)

// Config configures a delimited-text sink
type Config struct {
	// Path is the output file path. When compression is enabled the
	// conventional extension is appended if not already present.
	Path string
	// Delimiter selects the field separator (default: comma)
	Delimiter Delimiter
	// Overwrite truncates an existing file instead of failing
	Overwrite bool
	// Compression optionally wraps the output stream
	Compression compression.Algorithm
	// CompressionLevel applies when Compression is set
	CompressionLevel compression.Level
	// FlushEvery flushes buffered records every N rows (default: 1000)
	FlushEvery int
}

// CSV writes delimited records to a file, optionally through a
// compressing writer. It is not safe for concurrent use; the conversion
// pipeline writes rows strictly in order from a single goroutine.
type CSV struct {
	path        string
	file        *os.File
	compWriter  io.WriteCloser
	writer      *csv.Writer
	flushEvery  int
	headerLen   int
	wroteHeader bool
	rowsWritten int64
	record      []string // reused per row
	logger      *zap.Logger
}

// NewCSV opens the output file and prepares the writer chain
func NewCSV(cfg Config) (*CSV, error) {
	if cfg.Path == "" {
		return nil, errors.New(errors.ErrorTypeConfig, "output path is required")
	}

	delim := cfg.Delimiter
	if delim == "" {
		delim = Comma
	}
	sep, err := delim.Rune()
	if err != nil {
		return nil, err
	}

	flushEvery := cfg.FlushEvery
	if flushEvery <= 0 {
		flushEvery = 1000
	}

	path := cfg.Path
	if ext := compression.Extension(cfg.Compression); ext != "" && !strings.HasSuffix(path, ext) {
		path += ext
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to create output directory")
		}
	}

	flags := os.O_CREATE | os.O_WRONLY
	if cfg.Overwrite {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_EXCL
	}

	file, err := os.OpenFile(path, flags, 0o600)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to create output file").
			WithDetail("path", path)
	}

	var w io.Writer = file
	var compWriter io.WriteCloser
	if cfg.Compression != "" && cfg.Compression != compression.None {
		compWriter, err = compression.NewWriter(file, cfg.Compression, cfg.CompressionLevel)
		if err != nil {
			_ = file.Close()
			return nil, err
		}
		w = compWriter
	}

	writer := csv.NewWriter(w)
	writer.Comma = sep

	return &CSV{
		path:       path,
		file:       file,
		compWriter: compWriter,
		writer:     writer,
		flushEvery: flushEvery,
		logger: logger.Get().With(
			zap.String("component", "csv_sink"),
			zap.String("path", path)),
	}, nil
}

// Path returns the resolved output path, including any compression extension
func (s *CSV) Path() string {
	return s.path
}

// WriteHeader implements RecordSink
func (s *CSV) WriteHeader(rowLabel string, header []string) error {
	if s.wroteHeader {
		return errors.New(errors.ErrorTypeData, "header already written")
	}

	record := make([]string, 0, len(header)+1)
	record = append(record, rowLabel)
	record = append(record, header...)

	if err := s.writer.Write(record); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to write header record")
	}

	s.headerLen = len(header)
	s.wroteHeader = true
	s.logger.Debug("header written",
		zap.String("row_label", rowLabel),
		zap.Int("columns", len(header)))
	return nil
}

// WriteRow implements RecordSink
func (s *CSV) WriteRow(name string, values []string) error {
	if !s.wroteHeader {
		return errors.New(errors.ErrorTypeData, "row written before header")
	}
	if len(values) != s.headerLen {
		return errors.Newf(errors.ErrorTypeData,
			"row %q has %d values for %d header columns", name, len(values), s.headerLen).
			WithDetail("row", name)
	}

	if cap(s.record) < len(values)+1 {
		s.record = make([]string, 0, len(values)+1)
	}
	s.record = s.record[:0]
	s.record = append(s.record, name)
	s.record = append(s.record, values...)

	if err := s.writer.Write(s.record); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to write row record")
	}

	s.rowsWritten++
	if s.rowsWritten%int64(s.flushEvery) == 0 {
		s.writer.Flush()
		if err := s.writer.Error(); err != nil {
			return errors.Wrap(err, errors.ErrorTypeFile, "failed to flush records")
		}
	}
	return nil
}

// Flush implements RecordSink
func (s *CSV) Flush() error {
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to flush records")
	}
	return nil
}

// Close implements RecordSink
func (s *CSV) Close() error {
	if s.writer != nil {
		s.writer.Flush()
		if err := s.writer.Error(); err != nil {
			return errors.Wrap(err, errors.ErrorTypeFile, "failed to flush records")
		}
	}

	if s.compWriter != nil {
		if err := s.compWriter.Close(); err != nil {
			return errors.Wrap(err, errors.ErrorTypeFile, "failed to close compression writer")
		}
		s.compWriter = nil
	}

	if s.file != nil {
		if err := s.file.Close(); err != nil {
			return errors.Wrap(err, errors.ErrorTypeFile, "failed to close output file")
		}
		s.file = nil
	}

	s.logger.Info("sink closed", zap.Int64("rows_written", s.rowsWritten))
	return nil
}

var _ RecordSink = (*CSV)(nil)
