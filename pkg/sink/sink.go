// Package sink defines the record sink contract the conversion core
// writes into, and provides the delimited-text implementation. A sink
// consumes one header record followed by one record per matrix row, in
// order; quoting and escaping are the sink's responsibility.
package sink

import (
	"sort"

	"github.com/ajitpratap0/densify/pkg/errors"
)

// RecordSink consumes the ordered record stream produced by a
// conversion: exactly one header, then one row record per matrix row.
// Implementations must preserve record order and field order.
type RecordSink interface {
	// WriteHeader emits the header record: the row-label column name
	// followed by the column labels. Must be called exactly once,
	// before any row.
	WriteHeader(rowLabel string, header []string) error

	// WriteRow emits one record: the row's name followed by its dense
	// values in column order. The value count always equals the header
	// label count.
	WriteRow(name string, values []string) error

	// Flush forces buffered records out to the underlying writer
	Flush() error

	// Close flushes and releases the sink. No writes may follow.
	Close() error
}

// Delimiter names a field separator from the closed supported set
type Delimiter string

const (
	// Comma separates fields with ','
	Comma Delimiter = "comma"
	// Tab separates fields with '\t'
	Tab Delimiter = "tab"
	// Colon separates fields with ':'
	Colon Delimiter = "colon"
	// Pipe separates fields with '|'
	Pipe Delimiter = "pipe"
	// Semicolon separates fields with ';'
	Semicolon Delimiter = "semicolon"
)

var delimiterRunes = map[Delimiter]rune{
	Comma:     ',',
	Tab:       '\t',
	Colon:     ':',
	Pipe:      '|',
	Semicolon: ';',
}

// Delimiters returns the valid delimiter names, sorted
func Delimiters() []string {
	names := make([]string, 0, len(delimiterRunes))
	for d := range delimiterRunes {
		names = append(names, string(d))
	}
	sort.Strings(names)
	return names
}

// ParseDelimiter validates a delimiter name from configuration
func ParseDelimiter(name string) (Delimiter, error) {
	if _, ok := delimiterRunes[Delimiter(name)]; ok {
		return Delimiter(name), nil
	}
	return "", errors.Newf(errors.ErrorTypeConfig,
		"invalid delimiter: %q (valid: %v)", name, Delimiters()).
		WithDetail("delimiter", name)
}

// Rune returns the field separator character for the delimiter
func (d Delimiter) Rune() (rune, error) {
	r, ok := delimiterRunes[d]
	if !ok {
		return 0, errors.Newf(errors.ErrorTypeConfig,
			"invalid delimiter: %q (valid: %v)", string(d), Delimiters())
	}
	return r, nil
}
