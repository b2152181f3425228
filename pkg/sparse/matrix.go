package sparse

import (
	"github.com/ajitpratap0/densify/pkg/errors"
)

// Matrix is a CSR matrix in its building phase. The backing arrays are
// validated once at construction and never mutated afterwards except by
// Transpose, which produces a new Matrix. Call Finalize to obtain the
// read-only view used for row emission.
type Matrix[T Element] struct {
	rowCount int
	colCount int
	indptr   []int
	indices  []int
	values   []T
}

// New constructs a CSR matrix from raw arrays, validating structural
// consistency:
//
//   - len(indptr) == rowCount+1, indptr[0] == 0
//   - indptr is non-decreasing and indptr[rowCount] == len(values)
//   - len(indices) == len(values)
//   - every column index is in [0, colCount)
//   - column indices are strictly increasing within each row slice
//
// Any violation yields a structural error naming the offending dimension
// or position. This validation is the sole correctness guard; everything
// downstream assumes it has passed.
func New[T Element](rowCount, colCount int, indptr, indices []int, values []T) (*Matrix[T], error) {
	if rowCount < 0 || colCount < 0 {
		return nil, errors.Newf(errors.ErrorTypeStructural,
			"matrix dimensions must be non-negative, got %dx%d", rowCount, colCount).
			WithDetail("row_count", rowCount).
			WithDetail("col_count", colCount)
	}

	if len(indptr) != rowCount+1 {
		return nil, errors.Newf(errors.ErrorTypeStructural,
			"row pointer array has length %d, want %d for %d rows", len(indptr), rowCount+1, rowCount).
			WithDetail("indptr_len", len(indptr)).
			WithDetail("row_count", rowCount)
	}

	if len(indices) != len(values) {
		return nil, errors.Newf(errors.ErrorTypeStructural,
			"column index array has length %d but value array has length %d", len(indices), len(values)).
			WithDetail("indices_len", len(indices)).
			WithDetail("values_len", len(values))
	}

	if indptr[0] != 0 {
		return nil, errors.Newf(errors.ErrorTypeStructural,
			"row pointer array must start at 0, got %d", indptr[0])
	}

	for r := 0; r < rowCount; r++ {
		if indptr[r+1] < indptr[r] {
			return nil, errors.Newf(errors.ErrorTypeStructural,
				"row pointer array decreases at row %d (%d -> %d)", r, indptr[r], indptr[r+1]).
				WithDetail("row", r)
		}
	}

	if indptr[rowCount] != len(values) {
		return nil, errors.Newf(errors.ErrorTypeStructural,
			"final row pointer is %d but %d values are stored", indptr[rowCount], len(values)).
			WithDetail("final_indptr", indptr[rowCount]).
			WithDetail("values_len", len(values))
	}

	for r := 0; r < rowCount; r++ {
		prev := -1
		for k := indptr[r]; k < indptr[r+1]; k++ {
			c := indices[k]
			if c < 0 || c >= colCount {
				return nil, errors.Newf(errors.ErrorTypeStructural,
					"column index %d at row %d out of range [0, %d)", c, r, colCount).
					WithDetail("row", r).
					WithDetail("column", c)
			}
			if c <= prev {
				return nil, errors.Newf(errors.ErrorTypeStructural,
					"column indices not strictly increasing at row %d (%d after %d)", r, c, prev).
					WithDetail("row", r).
					WithDetail("column", c)
			}
			prev = c
		}
	}

	return &Matrix[T]{
		rowCount: rowCount,
		colCount: colCount,
		indptr:   indptr,
		indices:  indices,
		values:   values,
	}, nil
}

// RowCount returns the number of matrix rows
func (m *Matrix[T]) RowCount() int { return m.rowCount }

// ColCount returns the number of matrix columns
func (m *Matrix[T]) ColCount() int { return m.colCount }

// NNZ returns the number of stored entries
func (m *Matrix[T]) NNZ() int { return len(m.values) }

// Transpose returns the matrix with rows and columns swapped. Every
// (row, col, value) triple is re-bucketed by its column via a counting
// sort over the existing row-major order, which keeps each new row's
// column indices strictly increasing without a comparison sort. O(nnz).
func (m *Matrix[T]) Transpose() *Matrix[T] {
	nnz := len(m.values)

	indptr := make([]int, m.colCount+1)
	for _, c := range m.indices {
		indptr[c+1]++
	}
	for c := 0; c < m.colCount; c++ {
		indptr[c+1] += indptr[c]
	}

	next := make([]int, m.colCount)
	copy(next, indptr[:m.colCount])

	indices := make([]int, nnz)
	values := make([]T, nnz)
	for r := 0; r < m.rowCount; r++ {
		for k := m.indptr[r]; k < m.indptr[r+1]; k++ {
			c := m.indices[k]
			pos := next[c]
			next[c]++
			indices[pos] = r
			values[pos] = m.values[k]
		}
	}

	return &Matrix[T]{
		rowCount: m.colCount,
		colCount: m.rowCount,
		indptr:   indptr,
		indices:  indices,
		values:   values,
	}
}

// Finalize seals the matrix for emission. The returned view is read-only
// and is the only way to iterate rows; Transpose is not reachable from
// it, so no mutation can interleave with row streaming.
func (m *Matrix[T]) Finalize() *Finalized[T] {
	return &Finalized[T]{m: m}
}

// Finalized is the read-only emission-phase view of a CSR matrix
type Finalized[T Element] struct {
	m *Matrix[T]
}

// RowCount returns the number of matrix rows
func (f *Finalized[T]) RowCount() int { return f.m.rowCount }

// ColCount returns the number of matrix columns
func (f *Finalized[T]) ColCount() int { return f.m.colCount }

// NNZ returns the number of stored entries
func (f *Finalized[T]) NNZ() int { return len(f.m.values) }

// Rows returns a forward-only cursor over the matrix rows in index
// order. The cursor is finite, non-restartable, and yields exactly
// RowCount row views.
func (f *Finalized[T]) Rows() *RowIter[T] {
	return &RowIter[T]{m: f.m}
}

// RowIter iterates the rows of a finalized matrix exactly once
type RowIter[T Element] struct {
	m   *Matrix[T]
	row int
}

// Next returns the next row view. The view borrows the matrix's backing
// arrays and must be fully consumed before the next call.
func (it *RowIter[T]) Next() (Row[T], bool) {
	if it.row >= it.m.rowCount {
		return Row[T]{}, false
	}
	lo, hi := it.m.indptr[it.row], it.m.indptr[it.row+1]
	it.row++
	return Row[T]{
		indices: it.m.indices[lo:hi],
		values:  it.m.values[lo:hi],
		length:  it.m.colCount,
	}, true
}
