package command

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simplesurance/ccnetcfg/internal/command/term"
	"github.com/simplesurance/ccnetcfg/pkg/cfg"
)

func init() {
	initCmd.AddCommand(&newInitConfigCmd().Command)
}

const initConfigLongHelp = `
Create an example ccnet.config file.
The file contains projects that use every supported trigger, task,
publisher, source control, labeller, state and security type.
If no argument is passed, ccnet.config is created in the current directory.
`

type initConfigCmd struct {
	cobra.Command
}

func newInitConfigCmd() *initConfigCmd {
	cmd := initConfigCmd{
		Command: cobra.Command{
			Use:   "config [FILE]",
			Short: "create an example ccnet.config file",
			Long:  strings.TrimSpace(initConfigLongHelp),
			Args:  cobra.MaximumNArgs(1),
		},
	}

	cmd.Run = cmd.run

	return &cmd
}

func (c *initConfigCmd) run(_ *cobra.Command, args []string) {
	path := configFileArg(args)

	err := cfg.ExampleCruiseControl().ToFile(path, cfg.WriteOptIndent(userSettings.Format.Indent))
	if err != nil {
		if os.IsExist(err) {
			fatal(exitCodeAlreadyExist, "%s already exists", path)
			return
		}

		exitOnErr(err)
	}

	stdout.Printf("Example configuration was written to %s\n", term.Highlight(path))
	stdout.Printf("Run '%s' after adapting it.\n", term.Highlight(cmdValidate+" "+path))
}
