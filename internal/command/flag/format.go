package flag

const (
	FormatCSV   = "csv"
	FormatJSON  = "json"
	FormatPlain = "plain"
)

// Format is the --format flag of commands that print tabular data.
type Format struct {
	*OneOf
}

func NewFormatFlag() *Format {
	return &Format{
		OneOf: NewOneOfFlag("format", FormatPlain, "output format", FormatCSV, FormatJSON, FormatPlain),
	}
}

// IsPlain returns true if the output is written as aligned, human readable
// table.
func (f *Format) IsPlain() bool {
	return f.Val == FormatPlain
}
