// Package strings provides pooled string building utilities for densify
package strings

import (
	"fmt"
	"sync"
	"unsafe"
)

// BytesToString converts byte slice to string without allocation
// WARNING: The returned string shares memory with the byte slice.
// Do not modify the byte slice after calling this function.
func BytesToString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return *(*string)(unsafe.Pointer(&b))
}

// StringToBytes converts string to byte slice without allocation
// WARNING: The returned byte slice shares memory with the string.
// Do not modify the returned slice.
func StringToBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

// Clone returns a copy of s backed by freshly allocated memory.
// Use when the source string may come from a pooled or shared buffer.
func Clone(s string) string {
	if len(s) == 0 {
		return ""
	}
	b := make([]byte, len(s))
	copy(b, s)
	return BytesToString(b)
}

// Builder provides efficient string building over a reusable byte buffer
type Builder struct {
	buf []byte
}

// NewBuilder creates a new string builder with the given initial capacity
func NewBuilder(capacity int) *Builder {
	return &Builder{
		buf: make([]byte, 0, capacity),
	}
}

// Write appends bytes to the builder, implementing io.Writer
func (b *Builder) Write(p []byte) (int, error) {
	b.buf = append(b.buf, p...)
	return len(p), nil
}

// WriteString appends a string to the builder
func (b *Builder) WriteString(s string) {
	b.buf = append(b.buf, s...)
}

// WriteByte appends a single byte to the builder
func (b *Builder) WriteByte(c byte) error {
	b.buf = append(b.buf, c)
	return nil
}

// String returns the accumulated string.
// The result shares memory with the builder; Clone it before
// returning the builder to a pool.
func (b *Builder) String() string {
	return BytesToString(b.buf)
}

// Bytes returns the accumulated bytes
func (b *Builder) Bytes() []byte {
	return b.buf
}

// Len returns the number of accumulated bytes
func (b *Builder) Len() int {
	return len(b.buf)
}

// Reset clears the builder for reuse without deallocating
func (b *Builder) Reset() {
	b.buf = b.buf[:0]
}

// BuilderSize selects which builder pool to draw from
type BuilderSize int

const (
	// Small builders hold short messages (error strings, labels)
	Small BuilderSize = iota
	// Medium builders hold row-sized payloads
	Medium
	// Large builders hold batch-sized payloads
	Large
)

var (
	smallBuilderPool = &sync.Pool{
		New: func() interface{} { return NewBuilder(256) },
	}
	mediumBuilderPool = &sync.Pool{
		New: func() interface{} { return NewBuilder(4 * 1024) },
	}
	largeBuilderPool = &sync.Pool{
		New: func() interface{} { return NewBuilder(64 * 1024) },
	}
)

// GetBuilder gets a builder from the pool for the given size class
func GetBuilder(size BuilderSize) *Builder {
	var pool *sync.Pool
	switch size {
	case Medium:
		pool = mediumBuilderPool
	case Large:
		pool = largeBuilderPool
	default:
		pool = smallBuilderPool
	}

	builder := pool.Get().(*Builder)
	builder.Reset()
	return builder
}

// PutBuilder returns a builder to the appropriate pool
func PutBuilder(builder *Builder, size BuilderSize) {
	if builder == nil {
		return
	}

	var pool *sync.Pool
	switch size {
	case Medium:
		pool = mediumBuilderPool
	case Large:
		pool = largeBuilderPool
	default:
		pool = smallBuilderPool
	}

	builder.Reset()
	pool.Put(builder)
}

// Sprintf formats using a pooled builder to reduce allocations
func Sprintf(format string, args ...interface{}) string {
	if len(args) == 0 {
		return format
	}

	estimatedSize := len(format) + len(args)*16

	size := Small
	if estimatedSize > 16*1024 {
		size = Large
	} else if estimatedSize > 1024 {
		size = Medium
	}

	builder := GetBuilder(size)
	defer PutBuilder(builder, size)

	fmt.Fprintf(builder, format, args...)

	return Clone(builder.String())
}

// Join concatenates elems with delimiter using a pooled builder
func Join(elems []string, delimiter string) string {
	if len(elems) == 0 {
		return ""
	}
	if len(elems) == 1 {
		return elems[0]
	}

	totalLen := (len(elems) - 1) * len(delimiter)
	for _, s := range elems {
		totalLen += len(s)
	}

	size := Small
	if totalLen > 16*1024 {
		size = Large
	} else if totalLen > 1024 {
		size = Medium
	}

	builder := GetBuilder(size)
	defer PutBuilder(builder, size)

	builder.WriteString(elems[0])
	for _, s := range elems[1:] {
		builder.WriteString(delimiter)
		builder.WriteString(s)
	}

	return Clone(builder.String())
}
