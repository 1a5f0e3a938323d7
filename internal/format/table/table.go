// Package table writes rows as a table with space aligned columns.
package table

import (
	"io"
	"strings"
	"text/tabwriter"

	"github.com/simplesurance/ccnetcfg/internal/format"
)

const columnPadding = 4

// Formatter writes rows as table with space separated columns.
// Column widths are only known after all rows were written, rows are
// therefore buffered until Flush is called.
type Formatter struct {
	tw  *tabwriter.Writer
	err error
}

// New returns a Formatter that writes to out. A non-empty headers slice is
// written as first row.
func New(headers []string, out io.Writer) *Formatter {
	f := Formatter{
		tw: tabwriter.NewWriter(out, 0, 0, columnPadding, ' ', 0),
	}

	if len(headers) > 0 {
		f.err = f.writeLine(headers)
	}

	return &f
}

func (f *Formatter) writeLine(cols []string) error {
	_, err := io.WriteString(f.tw, strings.Join(cols, "\t")+"\n")
	return err
}

// WriteRow buffers a row, values are converted with format.Cell.
func (f *Formatter) WriteRow(row ...any) error {
	if f.err != nil {
		return f.err
	}

	return f.writeLine(format.Cells(row))
}

// Flush writes the buffered rows.
func (f *Formatter) Flush() error {
	if f.err != nil {
		return f.err
	}

	return f.tw.Flush()
}
