package flag

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

// OneOf is a flag whose value must be one of a fixed list of lowercase
// values. The passed value is compared case-insensitive.
type OneOf struct {
	Val string

	name   string
	usage  string
	values []string
}

// NewOneOfFlag returns a OneOf flag with the name flagName.
// It panics if one of supportedVals contains uppercase letters.
func NewOneOfFlag(flagName, defaultVal, usage string, supportedVals ...string) *OneOf {
	values := slices.Clone(supportedVals)
	for _, v := range values {
		if strings.ToLower(v) != v {
			panic(fmt.Sprintf("flag %s: value %q is not lowercase", flagName, v))
		}
	}
	slices.Sort(values)

	return &OneOf{
		Val:    defaultVal,
		name:   flagName,
		usage:  usage,
		values: slices.Compact(values),
	}
}

func (f *OneOf) Set(val string) error {
	lv := strings.ToLower(val)
	if _, found := slices.BinarySearch(f.values, lv); !found {
		return fmt.Errorf("%s must be one of: %s", f.name, strings.Join(f.values, ", "))
	}

	f.Val = lv

	return nil
}

func (f *OneOf) Value() string {
	return f.Val
}

func (f *OneOf) String() string {
	return f.Val
}

// Type returns the flag name in uppercase, it is shown as placeholder in the
// usage output.
func (f *OneOf) Type() string {
	return strings.ToUpper(f.name)
}

// Usage returns the usage text followed by the list of accepted values,
// each passed through highlightFn.
func (f *OneOf) Usage(highlightFn func(a ...any) string) string {
	highlighted := make([]string, len(f.values))
	for i, v := range f.values {
		highlighted[i] = highlightFn(v)
	}

	return f.usage + "\none of: " + strings.Join(highlighted, ", ")
}

func (f *OneOf) RegisterFlagCompletion(cmd *cobra.Command) error {
	return cmd.RegisterFlagCompletionFunc(f.name, cobra.FixedCompletions(f.values, cobra.ShellCompDirectiveNoFileComp))
}
