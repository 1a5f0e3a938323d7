package command

import (
	"github.com/spf13/cobra"

	"github.com/simplesurance/ccnetcfg/internal/fs"
	"github.com/simplesurance/ccnetcfg/pkg/schema"
)

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "list projects, queues and component types",
}

func init() {
	rootCmd.AddCommand(lsCmd)
}

// nameMatches returns true if pattern is empty or name matches the glob
// pattern.
func nameMatches(pattern, name string) bool {
	if pattern == "" {
		return true
	}

	match, err := fs.MatchGlob(pattern, name)
	exitOnErr(err, "invalid --name pattern")

	return match
}

func typeNames[T schema.Component](components []T) []string {
	res := make([]string, 0, len(components))
	for _, c := range components {
		res = append(res, c.TypeName())
	}

	return res
}

// optionalValue returns the value p points to or nil, if p is nil.
func optionalValue[T any](p *T) any {
	if p == nil {
		return nil
	}

	return *p
}
