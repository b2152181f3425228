// Package sparse implements the CSR (compressed sparse row) matrix engine
// behind densify: validated sparse storage, orientation selection, and lazy
// row materialization with implicit-zero fill.
//
// # Overview
//
// The package provides:
//   - Matrix: a validated CSR container generic over the ten numeric
//     element types (int8..int64, uint8..uint64, float32, float64)
//   - An O(nnz) transpose preserving all CSR invariants
//   - A two-phase lifecycle: a building Matrix is sealed into a read-only
//     Finalized view before any row is emitted
//   - RowCursor: a single-use cursor expanding one sparse row into its
//     full dense value sequence, filling zeros at unlisted positions
//   - Orient: selection of which label axis becomes the output header
//
// # Lifecycle
//
// Construction validates the raw arrays once; everything downstream
// assumes a consistent matrix. Transpose is only available before
// finalization, so the "no mutation during emission" invariant is
// enforced by the type system rather than by convention:
//
//	m, err := sparse.New[int32](rows, cols, indptr, indices, values)
//	if err != nil {
//	    return err
//	}
//	layout, err := sparse.Orient(m, obsNames, varNames, sparse.VarNames)
//	if err != nil {
//	    return err
//	}
//	it := layout.Matrix.Rows()
//	for {
//	    row, ok := it.Next()
//	    if !ok {
//	        break
//	    }
//	    cur := row.Cursor()
//	    for {
//	        v, ok := cur.Next()
//	        if !ok {
//	            break
//	        }
//	        // emit v
//	    }
//	}
//
// Row views and cursors borrow from the owning matrix and must not be
// retained past the row's processing step.
package sparse
