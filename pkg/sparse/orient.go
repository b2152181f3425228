package sparse

import (
	"github.com/ajitpratap0/densify/pkg/errors"
)

// Orientation selects which label axis becomes the output's column
// header. The names follow the AnnData convention: observations (cells)
// are the rows as stored, variables (genes) the columns.
type Orientation string

const (
	// VarNames keeps the matrix as stored: variable labels become the
	// header, one output row per observation.
	VarNames Orientation = "var-names"
	// ObsNames transposes the matrix: observation labels become the
	// header, one output row per variable.
	ObsNames Orientation = "obs-names"
)

// Orientations returns the valid orientation names
func Orientations() []string {
	return []string{string(VarNames), string(ObsNames)}
}

// ParseOrientation validates an orientation name from configuration
func ParseOrientation(name string) (Orientation, error) {
	switch Orientation(name) {
	case VarNames, ObsNames:
		return Orientation(name), nil
	default:
		return "", errors.Newf(errors.ErrorTypeConfig,
			"invalid orientation: %q (valid: %v)", name, Orientations()).
			WithDetail("orientation", name)
	}
}

// Layout is the result of orientation selection: the matrix in its final
// orientation, sealed for emission, plus the label roles around it.
type Layout[T Element] struct {
	// Header holds the column labels, one per matrix column
	Header []string
	// RowLabel names the row-name column in the output header record
	RowLabel string
	// RowNames holds the row labels, one per matrix row
	RowNames []string
	// Matrix is the finalized matrix in its output orientation
	Matrix *Finalized[T]
}

// Orient applies the requested orientation, transposing the matrix when
// observation labels are to become the header, and seals the result for
// emission. Label set lengths are checked against the final matrix
// dimensions before any row can be produced.
func Orient[T Element](m *Matrix[T], obsNames, varNames []string, o Orientation) (*Layout[T], error) {
	var layout *Layout[T]
	switch o {
	case VarNames:
		layout = &Layout[T]{
			Header:   varNames,
			RowLabel: "cell",
			RowNames: obsNames,
			Matrix:   m.Finalize(),
		}
	case ObsNames:
		layout = &Layout[T]{
			Header:   obsNames,
			RowLabel: "gene",
			RowNames: varNames,
			Matrix:   m.Transpose().Finalize(),
		}
	default:
		return nil, errors.Newf(errors.ErrorTypeConfig,
			"invalid orientation: %q (valid: %v)", o, Orientations())
	}

	if len(layout.RowNames) != layout.Matrix.RowCount() {
		return nil, errors.Newf(errors.ErrorTypeLabelMismatch,
			"%d row labels for %d matrix rows", len(layout.RowNames), layout.Matrix.RowCount()).
			WithDetail("labels", len(layout.RowNames)).
			WithDetail("rows", layout.Matrix.RowCount())
	}
	if len(layout.Header) != layout.Matrix.ColCount() {
		return nil, errors.Newf(errors.ErrorTypeLabelMismatch,
			"%d column labels for %d matrix columns", len(layout.Header), layout.Matrix.ColCount()).
			WithDetail("labels", len(layout.Header)).
			WithDetail("columns", layout.Matrix.ColCount())
	}

	return layout, nil
}
