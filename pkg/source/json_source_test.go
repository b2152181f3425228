package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/densify/pkg/compression"
	"github.com/ajitpratap0/densify/pkg/errors"
)

const validContainer = `{
  "dtype": "int32",
  "shape": [2, 3],
  "indptr": [0, 1, 3],
  "indices": [1, 0, 2],
  "data": [5, 7, 9],
  "obs_names": ["r0", "r1"],
  "var_names": ["c0", "c1", "c2"]
}`

func writeContainer(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestJSONSource_Load(t *testing.T) {
	path := writeContainer(t, "counts.json", validContainer)

	c, err := NewJSON(path).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "int32", c.DType)
	assert.Equal(t, 2, c.Rows())
	assert.Equal(t, 3, c.Cols())
	assert.Equal(t, []int{0, 1, 3}, c.Indptr)
	assert.Equal(t, []int{1, 0, 2}, c.Indices)
	assert.Equal(t, []string{"r0", "r1"}, c.ObsNames)
	assert.Equal(t, []string{"c0", "c1", "c2"}, c.VarNames)

	values, err := DecodeValues[int32](c)
	require.NoError(t, err)
	assert.Equal(t, []int32{5, 7, 9}, values)
}

func TestJSONSource_LoadCompressed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "counts.json.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	w, err := compression.NewWriter(f, compression.Gzip, compression.Default)
	require.NoError(t, err)
	_, err = w.Write([]byte(validContainer))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())

	c, err := NewJSON(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, len(c.Indices))
}

func TestJSONSource_MissingFile(t *testing.T) {
	_, err := NewJSON(filepath.Join(t.TempDir(), "absent.json")).Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeFile))
}

func TestJSONSource_MalformedJSON(t *testing.T) {
	path := writeContainer(t, "counts.json", `{"dtype": "int32",`)

	_, err := NewJSON(path).Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeData))
}

func TestJSONSource_CanceledContext(t *testing.T) {
	path := writeContainer(t, "counts.json", validContainer)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewJSON(path).Load(ctx)
	require.Error(t, err)
}

func TestContainer_Validate(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing dtype", `{"indptr":[0],"indices":[],"data":[],"obs_names":[],"var_names":[]}`},
		{"missing indptr", `{"dtype":"int32","indices":[],"data":[],"obs_names":[],"var_names":[]}`},
		{"missing data", `{"dtype":"int32","indptr":[0],"indices":[],"obs_names":[],"var_names":[]}`},
		{"missing obs_names", `{"dtype":"int32","indptr":[0],"indices":[],"data":[],"var_names":[]}`},
		{"missing var_names", `{"dtype":"int32","indptr":[0],"indices":[],"data":[],"obs_names":[]}`},
		{"bad shape", `{"dtype":"int32","shape":[2],"indptr":[0],"indices":[],"data":[],"obs_names":[],"var_names":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeContainer(t, "counts.json", tt.body)
			_, err := NewJSON(path).Load(context.Background())
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.ErrorTypeData))
		})
	}
}

func TestContainer_ShapeFallsBackToLabels(t *testing.T) {
	c := &Container{
		ObsNames: []string{"r0", "r1"},
		VarNames: []string{"c0", "c1", "c2"},
	}
	assert.Equal(t, 2, c.Rows())
	assert.Equal(t, 3, c.Cols())
}

func TestDecodeValues_TypeMismatch(t *testing.T) {
	c := &Container{
		DType: "int32",
		Data:  []byte(`[1.5, "x"]`),
	}
	_, err := DecodeValues[int32](c)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeData))
}
