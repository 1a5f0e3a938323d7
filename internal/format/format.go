// Package format writes rows of values in different output formats.
package format

import (
	"fmt"
	"strings"
)

// ListSeparator separates the elements of list values in text formats.
const ListSeparator = ", "

// Formatter writes rows of values. Rows might be buffered until Flush is
// called.
type Formatter interface {
	WriteRow(row ...any) error
	Flush() error
}

// Cell returns the text representation of a row value.
// nil is converted to an empty string, the elements of string slices are
// joined with ListSeparator.
func Cell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []string:
		return strings.Join(val, ListSeparator)
	default:
		return fmt.Sprint(val)
	}
}

// Cells converts row to text with Cell.
func Cells(row []any) []string {
	res := make([]string, len(row))
	for i, v := range row {
		res[i] = Cell(v)
	}

	return res
}
