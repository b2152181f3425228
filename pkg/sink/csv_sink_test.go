package sink

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/densify/pkg/compression"
	"github.com/ajitpratap0/densify/pkg/errors"
)

func writeTable(t *testing.T, s *CSV) {
	t.Helper()
	require.NoError(t, s.WriteHeader("cell", []string{"c0", "c1", "c2"}))
	require.NoError(t, s.WriteRow("r0", []string{"0", "5", "0"}))
	require.NoError(t, s.WriteRow("r1", []string{"7", "0", "9"}))
	require.NoError(t, s.Close())
}

func TestCSV_CommaOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	s, err := NewCSV(Config{Path: path, Overwrite: true})
	require.NoError(t, err)

	writeTable(t, s)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "cell,c0,c1,c2\nr0,0,5,0\nr1,7,0,9\n", string(data))
}

func TestCSV_TabOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.tsv")
	s, err := NewCSV(Config{Path: path, Delimiter: Tab, Overwrite: true})
	require.NoError(t, err)

	writeTable(t, s)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "cell\tc0\tc1\tc2\nr0\t0\t5\t0\nr1\t7\t0\t9\n", string(data))
}

func TestCSV_InvalidDelimiter(t *testing.T) {
	_, err := NewCSV(Config{
		Path:      filepath.Join(t.TempDir(), "out.csv"),
		Delimiter: "space",
	})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}

func TestCSV_EmptyPath(t *testing.T) {
	_, err := NewCSV(Config{})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}

func TestCSV_RefusesExistingWithoutOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

	_, err := NewCSV(Config{Path: path, Overwrite: false})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeFile))

	// The existing file is untouched.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))
}

func TestCSV_RowBeforeHeader(t *testing.T) {
	s, err := NewCSV(Config{Path: filepath.Join(t.TempDir(), "out.csv"), Overwrite: true})
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	err = s.WriteRow("r0", []string{"1"})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeData))
}

func TestCSV_DoubleHeader(t *testing.T) {
	s, err := NewCSV(Config{Path: filepath.Join(t.TempDir(), "out.csv"), Overwrite: true})
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	require.NoError(t, s.WriteHeader("cell", []string{"c0"}))
	err = s.WriteHeader("cell", []string{"c0"})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeData))
}

func TestCSV_ValueCountMismatch(t *testing.T) {
	s, err := NewCSV(Config{Path: filepath.Join(t.TempDir(), "out.csv"), Overwrite: true})
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	require.NoError(t, s.WriteHeader("cell", []string{"c0", "c1"}))
	err = s.WriteRow("r0", []string{"1"})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeData))
}

func TestCSV_FieldQuoting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	s, err := NewCSV(Config{Path: path, Overwrite: true})
	require.NoError(t, err)

	require.NoError(t, s.WriteHeader("cell", []string{"a,b"}))
	require.NoError(t, s.WriteRow(`r"0`, []string{"1"}))
	require.NoError(t, s.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "cell,\"a,b\"\n\"r\"\"0\",1\n", string(data))
}

func TestCSV_GzipOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	s, err := NewCSV(Config{
		Path:        path,
		Overwrite:   true,
		Compression: compression.Gzip,
	})
	require.NoError(t, err)
	assert.Equal(t, path+".gz", s.Path())

	writeTable(t, s)

	f, err := os.Open(s.Path())
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	r, err := compression.NewReader(f, compression.Gzip)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)
	assert.Equal(t, "cell,c0,c1,c2\nr0,0,5,0\nr1,7,0,9\n", buf.String())
}

func TestDelimiters(t *testing.T) {
	assert.Equal(t, []string{"colon", "comma", "pipe", "semicolon", "tab"}, Delimiters())
}

func TestParseDelimiter(t *testing.T) {
	d, err := ParseDelimiter("tab")
	require.NoError(t, err)
	assert.Equal(t, Tab, d)

	_, err = ParseDelimiter("space")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}
