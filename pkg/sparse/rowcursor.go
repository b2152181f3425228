package sparse

// Row is a read-only view of one sparse row: a sorted column-index slice,
// the parallel value slice, and the row's declared dense length. It
// borrows from the owning matrix and is only valid until the next
// RowIter.Next call.
type Row[T Element] struct {
	indices []int
	values  []T
	length  int
}

// Len returns the dense length of the row
func (r Row[T]) Len() int { return r.length }

// NNZ returns the number of stored entries in the row
func (r Row[T]) NNZ() int { return len(r.values) }

// Cursor returns a single-use cursor producing the row's full dense value
// sequence. Re-materializing a row requires taking a fresh cursor.
func (r Row[T]) Cursor() *RowCursor[T] {
	return &RowCursor[T]{
		indices: r.indices,
		values:  r.values,
		stop:    r.length,
	}
}

// RowCursor lazily expands a sparse row into exactly Len values: the
// stored value where the next sorted column index matches the current
// position, the zero value everywhere else. It is the single-pass merge
// between the implicit position stream 0..Len and the ascending sparse
// index stream.
type RowCursor[T Element] struct {
	indices []int
	values  []T
	cursor  int // next unconsumed sparse entry
	pos     int // current dense position
	stop    int // declared row length
}

// Next returns the value at the next dense position. The second return
// is false once all positions have been produced; the cursor never reads
// sparse entries at or beyond the declared row length.
func (c *RowCursor[T]) Next() (T, bool) {
	var zero T
	if c.pos >= c.stop {
		return zero, false
	}
	if c.cursor < len(c.indices) && c.indices[c.cursor] == c.pos {
		v := c.values[c.cursor]
		c.cursor++
		c.pos++
		return v, true
	}
	c.pos++
	return zero, true
}

// Remaining returns the number of dense positions not yet produced
func (c *RowCursor[T]) Remaining() int {
	return c.stop - c.pos
}
