// Package source loads raw CSR containers for conversion. A source hands
// the core four untyped arrays plus label sets and a runtime element-type
// tag; values stay raw until the tag has selected a concrete element type.
package source

import (
	"context"

	"github.com/goccy/go-json"

	"github.com/ajitpratap0/densify/pkg/errors"
	"github.com/ajitpratap0/densify/pkg/sparse"
)

// Container holds the raw arrays of one CSR counts matrix as read from a
// source file. The value array is kept undecoded; DecodeValues turns it
// into a concrete element slice once the type tag has been dispatched.
type Container struct {
	// DType is the element type tag, one of the ten supported names
	DType string `json:"dtype"`
	// Shape optionally declares [rows, cols]; label lengths are used
	// when absent
	Shape []int `json:"shape,omitempty"`
	// Indptr is the CSR row pointer array, length rows+1
	Indptr []int `json:"indptr"`
	// Indices is the CSR column index array, parallel to the values
	Indices []int `json:"indices"`
	// Data is the raw value array, decoded per element type
	Data json.RawMessage `json:"data"`
	// ObsNames labels the rows as stored (observations / cells)
	ObsNames []string `json:"obs_names"`
	// VarNames labels the columns as stored (variables / genes)
	VarNames []string `json:"var_names"`
}

// Rows returns the declared row count, preferring an explicit shape
func (c *Container) Rows() int {
	if len(c.Shape) == 2 {
		return c.Shape[0]
	}
	return len(c.ObsNames)
}

// Cols returns the declared column count, preferring an explicit shape
func (c *Container) Cols() int {
	if len(c.Shape) == 2 {
		return c.Shape[1]
	}
	return len(c.VarNames)
}

// Validate checks that the container carries every required array.
// CSR structural validation is the matrix constructor's job; this only
// rejects containers that cannot even reach construction.
func (c *Container) Validate() error {
	if c.DType == "" {
		return errors.New(errors.ErrorTypeData, "container is missing the dtype tag")
	}
	if c.Indptr == nil {
		return errors.New(errors.ErrorTypeData, "container is missing the indptr array")
	}
	if c.Data == nil {
		return errors.New(errors.ErrorTypeData, "container is missing the data array")
	}
	if c.ObsNames == nil {
		return errors.New(errors.ErrorTypeData, "container is missing the obs_names labels")
	}
	if c.VarNames == nil {
		return errors.New(errors.ErrorTypeData, "container is missing the var_names labels")
	}
	if c.Shape != nil && len(c.Shape) != 2 {
		return errors.Newf(errors.ErrorTypeData,
			"container shape must have 2 entries, got %d", len(c.Shape))
	}
	return nil
}

// DecodeValues decodes the container's raw value array as a slice of the
// concrete element type selected by the dtype dispatch.
func DecodeValues[T sparse.Element](c *Container) ([]T, error) {
	var values []T
	if err := json.Unmarshal(c.Data, &values); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "failed to decode value array").
			WithDetail("dtype", c.DType)
	}
	return values, nil
}

// Source is the data-access collaborator contract: load one container
// from wherever the raw matrix lives.
type Source interface {
	Load(ctx context.Context) (*Container, error)
}
