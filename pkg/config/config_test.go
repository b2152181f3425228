package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/densify/pkg/compression"
	"github.com/ajitpratap0/densify/pkg/errors"
	"github.com/ajitpratap0/densify/pkg/sink"
	"github.com/ajitpratap0/densify/pkg/sparse"
)

func TestNew_Defaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, "out.csv", cfg.Output.Path)
	assert.Equal(t, "var-names", cfg.Output.Orientation)
	assert.Equal(t, "comma", cfg.Output.Delimiter)
	assert.Equal(t, "none", cfg.Output.Compression)
	assert.Equal(t, 5, cfg.Output.CompressionLevel)
	assert.True(t, cfg.Output.Overwrite)
	assert.Equal(t, 1000, cfg.Output.FlushEvery)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Encoding)
	assert.Equal(t, 5*time.Second, cfg.Observability.ProgressInterval)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := New()
		cfg.Input.Path = "counts.json"
		return cfg
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing input path", func(c *Config) { c.Input.Path = "" }},
		{"missing output path", func(c *Config) { c.Output.Path = "" }},
		{"bad orientation", func(c *Config) { c.Output.Orientation = "sideways" }},
		{"bad delimiter", func(c *Config) { c.Output.Delimiter = "space" }},
		{"bad compression", func(c *Config) { c.Output.Compression = "brotli" }},
		{"compression level too high", func(c *Config) { c.Output.CompressionLevel = 12 }},
		{"negative flush_every", func(c *Config) { c.Output.FlushEvery = -1 }},
		{"negative progress interval", func(c *Config) { c.Observability.ProgressInterval = -time.Second }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
		})
	}
}

func TestAccessors(t *testing.T) {
	cfg := New()
	cfg.Output.Orientation = "obs-names"
	cfg.Output.Delimiter = "tab"
	cfg.Output.Compression = "zstd"

	assert.Equal(t, sparse.ObsNames, cfg.Orientation())
	assert.Equal(t, sink.Tab, cfg.Delimiter())
	assert.Equal(t, compression.Zstd, cfg.Compression())

	cfg.Output.Compression = ""
	assert.Equal(t, compression.None, cfg.Compression())
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "densify.yaml")
	body := `
input:
  path: counts.json.gz
output:
  path: table.tsv
  orientation: obs-names
  delimiter: tab
  compression: gzip
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "counts.json.gz", cfg.Input.Path)
	assert.Equal(t, "table.tsv", cfg.Output.Path)
	assert.Equal(t, "obs-names", cfg.Output.Orientation)
	assert.Equal(t, "tab", cfg.Output.Delimiter)
	assert.Equal(t, "gzip", cfg.Output.Compression)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Unset fields keep their defaults.
	assert.Equal(t, 1000, cfg.Output.FlushEvery)
}

func TestLoad_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "densify.json")
	body := `{"input":{"path":"counts.json"},"output":{"path":"table.csv","delimiter":"pipe"}}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "counts.json", cfg.Input.Path)
	assert.Equal(t, "pipe", cfg.Output.Delimiter)
	assert.Equal(t, "var-names", cfg.Output.Orientation)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "densify.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input: [unclosed"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}
