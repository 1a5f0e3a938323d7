package command

import (
	"strings"

	"github.com/beevik/etree"
	"github.com/spf13/cobra"

	"github.com/simplesurance/ccnetcfg/pkg/cfg"
)

func init() {
	rootCmd.AddCommand(&newShowCmd().Command)
}

const showLongHelp = `
Print the XML configuration of a project.

The project is written the same way it is written to ccnet.config files,
values of the file that are unknown or unsupported by its configuration
version are omitted.
If --queue is passed, NAME refers to an integration queue instead.
`

const showExamples = `
ccnetcfg show ccnet.config website
ccnetcfg show --queue ccnet.config dotnet
`

type showCmd struct {
	cobra.Command

	queue  bool
	strict bool
}

func newShowCmd() *showCmd {
	cmd := showCmd{
		Command: cobra.Command{
			Use:               "show FILE NAME",
			Short:             "print the configuration of a project",
			Long:              strings.TrimSpace(showLongHelp),
			Example:           strings.TrimSpace(showExamples),
			Args:              cobra.ExactArgs(2),
			ValidArgsFunction: completeConfigFileAndProject,
		},
	}

	cmd.Run = cmd.run

	cmd.Flags().BoolVar(&cmd.queue, "queue", false,
		"show an integration queue instead of a project")
	cmd.Flags().BoolVar(&cmd.strict, "strict", false,
		"fail on unknown attributes and elements")

	return &cmd
}

func (c *showCmd) run(_ *cobra.Command, args []string) {
	path, name := args[0], args[1]

	conf := mustLoadConfig(path, c.strict)

	var el *etree.Element
	var err error

	if c.queue {
		q := conf.Queue(name)
		if q == nil {
			fatal(exitCodeNotExist, "%s: queue %q does not exist", path, name)
			return
		}

		el, err = cfg.EncodeComponent(conf.Version, q)
	} else {
		p := conf.Project(name)
		if p == nil {
			fatal(exitCodeNotExist, "%s: project %q does not exist", path, name)
			return
		}

		el, err = cfg.EncodeComponent(conf.Version, p)
	}
	exitOnErr(err)

	doc := etree.NewDocument()
	doc.SetRoot(el)
	doc.Indent(userSettings.Format.Indent)

	_, err = doc.WriteTo(stdout)
	exitOnErr(err)
}
