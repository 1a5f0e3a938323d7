// Package csv writes rows in RFC4180 CSV format.
package csv

import (
	"encoding/csv"
	"io"

	"github.com/simplesurance/ccnetcfg/internal/format"
)

// Formatter writes rows as CSV records.
type Formatter struct {
	w *csv.Writer
}

// New returns a Formatter that writes to out. A non-empty headers slice is
// written as first record.
func New(headers []string, out io.Writer) *Formatter {
	f := Formatter{w: csv.NewWriter(out)}

	if len(headers) > 0 {
		_ = f.w.Write(headers)
	}

	return &f
}

// WriteRow writes a record, values are converted with format.Cell.
func (f *Formatter) WriteRow(row ...any) error {
	return f.w.Write(format.Cells(row))
}

func (f *Formatter) Flush() error {
	f.w.Flush()

	return f.w.Error()
}
