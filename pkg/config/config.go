// Package config provides the unified configuration for densify
// conversions. A single Config structure covers the input container, the
// output table, logging, and observability, loadable from JSON or YAML
// with CLI flags layered on top.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/ajitpratap0/densify/pkg/compression"
	"github.com/ajitpratap0/densify/pkg/errors"
	"github.com/ajitpratap0/densify/pkg/sink"
	"github.com/ajitpratap0/densify/pkg/sparse"
)

// Config is the complete configuration for one conversion run
type Config struct {
	// Input describes the source container
	Input InputConfig `yaml:"input" json:"input"`

	// Output describes the dense table to write
	Output OutputConfig `yaml:"output" json:"output"`

	// Logging controls the structured logger
	Logging LoggingConfig `yaml:"logging" json:"logging"`

	// Observability controls metrics and progress reporting
	Observability ObservabilityConfig `yaml:"observability" json:"observability"`
}

// InputConfig describes the source container file
type InputConfig struct {
	// Path to the container file; compressed inputs are detected by
	// extension
	Path string `yaml:"path" json:"path"`
}

// OutputConfig describes the dense table to produce
type OutputConfig struct {
	// Path of the output file
	Path string `yaml:"path" json:"path"`
	// Orientation selects which label axis becomes the column header
	// (var-names or obs-names)
	Orientation string `yaml:"orientation" json:"orientation"`
	// Delimiter selects the field separator (comma, tab, colon, pipe,
	// semicolon)
	Delimiter string `yaml:"delimiter" json:"delimiter"`
	// Compression optionally compresses the output (none, gzip, snappy,
	// lz4, zstd, s2, deflate)
	Compression string `yaml:"compression" json:"compression"`
	// CompressionLevel tunes the algorithm (1 fastest .. 9 best)
	CompressionLevel int `yaml:"compression_level" json:"compression_level"`
	// Overwrite truncates an existing output file instead of failing
	Overwrite bool `yaml:"overwrite" json:"overwrite"`
	// FlushEvery flushes buffered records every N rows
	FlushEvery int `yaml:"flush_every" json:"flush_every"`
}

// LoggingConfig controls the structured logger
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error)
	Level string `yaml:"level" json:"level"`
	// Encoding is json or console
	Encoding string `yaml:"encoding" json:"encoding"`
	// Development enables colored, stack-traced output
	Development bool `yaml:"development" json:"development"`
}

// ObservabilityConfig controls metrics and progress reporting
type ObservabilityConfig struct {
	// EnableMetrics turns on Prometheus metric collection
	EnableMetrics bool `yaml:"enable_metrics" json:"enable_metrics"`
	// ProgressInterval is the minimum time between progress log lines
	ProgressInterval time.Duration `yaml:"progress_interval" json:"progress_interval"`
}

// New returns a Config with defaults applied
func New() *Config {
	return &Config{
		Output: OutputConfig{
			Path:             "out.csv",
			Orientation:      string(sparse.VarNames),
			Delimiter:        string(sink.Comma),
			Compression:      string(compression.None),
			CompressionLevel: int(compression.Default),
			Overwrite:        true,
			FlushEvery:       1000,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Encoding: "console",
		},
		Observability: ObservabilityConfig{
			ProgressInterval: 5 * time.Second,
		},
	}
}

// Validate checks the configuration before any file is touched
func (c *Config) Validate() error {
	if c.Input.Path == "" {
		return errors.New(errors.ErrorTypeConfig, "input path is required")
	}
	if c.Output.Path == "" {
		return errors.New(errors.ErrorTypeConfig, "output path is required")
	}
	if _, err := sparse.ParseOrientation(c.Output.Orientation); err != nil {
		return err
	}
	if _, err := sink.ParseDelimiter(c.Output.Delimiter); err != nil {
		return err
	}
	if _, err := compression.ParseAlgorithm(c.Output.Compression); err != nil {
		return err
	}
	if c.Output.CompressionLevel < 0 || c.Output.CompressionLevel > int(compression.Best) {
		return errors.Newf(errors.ErrorTypeConfig,
			"compression level must be between 0 and %d, got %d",
			int(compression.Best), c.Output.CompressionLevel)
	}
	if c.Output.FlushEvery < 0 {
		return errors.Newf(errors.ErrorTypeConfig,
			"flush_every must be non-negative, got %d", c.Output.FlushEvery)
	}
	if c.Observability.ProgressInterval < 0 {
		return errors.New(errors.ErrorTypeConfig, "progress_interval must be non-negative")
	}
	return nil
}

// Orientation returns the parsed orientation. Call Validate first.
func (c *Config) Orientation() sparse.Orientation {
	return sparse.Orientation(c.Output.Orientation)
}

// Delimiter returns the parsed delimiter. Call Validate first.
func (c *Config) Delimiter() sink.Delimiter {
	return sink.Delimiter(c.Output.Delimiter)
}

// Compression returns the parsed compression algorithm. Call Validate first.
func (c *Config) Compression() compression.Algorithm {
	if c.Output.Compression == "" {
		return compression.None
	}
	return compression.Algorithm(c.Output.Compression)
}

// Load reads a Config from a JSON or YAML file, selected by extension,
// on top of the defaults from New.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to read config file").
			WithDetail("path", path)
	}

	cfg := New()
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to parse YAML config").
				WithDetail("path", path)
		}
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to parse JSON config").
				WithDetail("path", path)
		}
	}

	return cfg, nil
}
