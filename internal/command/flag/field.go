package flag

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

// FieldSep separates the values passed to a Fields flag.
const FieldSep = ","

// Fields is a flag that selects the printed columns and their order, e.g.
// "-f name,queue,category". Field names are case-insensitive.
type Fields struct {
	// Fields are the selected fields in lowercase, by default all supported
	// fields in the order passed to NewFields.
	Fields []string

	supported []string
}

func NewFields(fields []string) *Fields {
	lower := make([]string, len(fields))
	for i, f := range fields {
		lower[i] = strings.ToLower(f)
	}

	return &Fields{
		Fields:    lower,
		supported: slices.Clone(lower),
	}
}

// String returns the selected fields, it's shown as default value in the
// usage output.
func (f *Fields) String() string {
	return strings.Join(f.Fields, FieldSep)
}

// ValidValues returns the supported fields in alphabetical order.
func (f *Fields) ValidValues() string {
	sorted := slices.Clone(f.supported)
	slices.Sort(sorted)

	return strings.Join(sorted, FieldSep+" ")
}

// Set replaces the selected fields with the comma separated list val.
// The selection is unchanged if val contains an unsupported field.
func (f *Fields) Set(val string) error {
	if strings.TrimSpace(val) == "" {
		return errors.New("at least one field must be specified")
	}

	parts := strings.Split(val, FieldSep)
	selected := make([]string, 0, len(parts))

	for _, p := range parts {
		field := strings.ToLower(strings.TrimSpace(p))
		if !slices.Contains(f.supported, field) {
			return fmt.Errorf("%q is not supported, <FIELD> must be one of %s", field, f.ValidValues())
		}

		selected = append(selected, field)
	}

	f.Fields = selected

	return nil
}

func (f *Fields) Type() string {
	return "<FIELD>[,<FIELD>]..."
}

// Usage returns a usage description, the format and field names are passed
// through highlightFn.
func (f *Fields) Usage(highlightFn func(a ...any) string) string {
	names := make([]string, len(f.supported))
	for i, name := range f.supported {
		names[i] = highlightFn(name)
	}

	return fmt.Sprintf("Specify the printed fields and their order:\nFormat: %s\nwhere %s is one of: %s\n",
		highlightFn(f.Type()), highlightFn("FIELD"), strings.Join(names, ", "),
	)
}

// RegisterFlagCompletion completes the field names after the last separator
// of the already typed value.
func (f *Fields) RegisterFlagCompletion(cmd *cobra.Command, flagName string) error {
	return cmd.RegisterFlagCompletionFunc(flagName, func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		prefix := ""
		if i := strings.LastIndex(toComplete, FieldSep); i >= 0 {
			prefix = toComplete[:i+1]
		}

		res := make([]string, 0, len(f.supported))
		for _, name := range f.supported {
			res = append(res, prefix+name)
		}

		return res, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
	})
}
