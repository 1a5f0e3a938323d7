package command

import (
	"github.com/spf13/cobra"

	"github.com/simplesurance/ccnetcfg/pkg/cfg"
)

// completeConfigFileAndProject completes file names for the first argument
// and the project names of the file for the second one.
func completeConfigFileAndProject(
	_ *cobra.Command,
	args []string,
	_ string,
) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return nil, cobra.ShellCompDirectiveDefault
	}

	if len(args) > 1 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	conf, err := cfg.FromFile(args[0])
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	result := make([]string, 0, len(conf.Projects))
	for _, p := range conf.Projects {
		result = append(result, p.Name)
	}

	return result, cobra.ShellCompDirectiveNoFileComp
}

// completeTypeName completes the names of all registered component types.
func completeTypeName(
	_ *cobra.Command,
	args []string,
	_ string,
) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var result []string
	for _, cat := range cfg.Types.Categories() {
		for _, reg := range cfg.Types.Types(cat) {
			result = append(result, reg.Name)
		}
	}

	return result, cobra.ShellCompDirectiveNoFileComp
}
