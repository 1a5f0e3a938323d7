// Package jsonformat writes rows as a JSON array of objects.
package jsonformat

import (
	"encoding/json"
	"fmt"
	"io"
)

// Formatter buffers rows and writes them as JSON array when Flush is called.
// Every row is an object, its keys are the field names.
type Formatter struct {
	keys []string
	rows []map[string]any
	out  io.Writer
}

func New(keys []string, out io.Writer) *Formatter {
	return &Formatter{keys: keys, out: out}
}

// WriteRow adds an object to the array.
// The values must be passed in the order of the keys that were passed to New.
// A nil []string is written as empty array.
func (f *Formatter) WriteRow(vals ...any) error {
	if len(vals) != len(f.keys) {
		return fmt.Errorf("row has %d values but %d keys are defined", len(vals), len(f.keys))
	}

	obj := make(map[string]any, len(vals))
	for i, v := range vals {
		if sl, ok := v.([]string); ok && sl == nil {
			v = []string{}
		}

		obj[f.keys[i]] = v
	}

	f.rows = append(f.rows, obj)

	return nil
}

// Flush writes the buffered objects as indented JSON array and clears the
// buffer.
func (f *Formatter) Flush() error {
	rows := f.rows
	if rows == nil {
		rows = []map[string]any{}
	}

	enc := json.NewEncoder(f.out)
	enc.SetIndent("", "  ")

	if err := enc.Encode(rows); err != nil {
		return err
	}

	f.rows = nil

	return nil
}
