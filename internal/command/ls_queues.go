package command

import (
	"github.com/spf13/cobra"

	"github.com/simplesurance/ccnetcfg/internal/command/flag"
	"github.com/simplesurance/ccnetcfg/internal/command/term"
	"github.com/simplesurance/ccnetcfg/internal/log"
	"github.com/simplesurance/ccnetcfg/pkg/cfg"
)

func init() {
	lsCmd.AddCommand(&newLsQueuesCmd().Command)
}

type lsQueuesCmd struct {
	cobra.Command

	quiet  bool
	name   string
	strict bool
	format *flag.Format
}

func newLsQueuesCmd() *lsQueuesCmd {
	cmd := lsQueuesCmd{
		Command: cobra.Command{
			Use:   "queues [FILE]",
			Short: "list the integration queues of a ccnet.config file",
			Long: "List the integration queues of a ccnet.config file.\n" +
				"Queues that are referenced by projects but not declared are listed as implicit queues.",
			Args: cobra.MaximumNArgs(1),
		},
		format: flag.NewFormatFlag(),
	}

	cmd.Run = cmd.run

	cmd.Flags().BoolVarP(&cmd.quiet, "quiet", "q", false,
		"only show queue names")
	cmd.Flags().StringVar(&cmd.name, "name", "",
		"only show queues whose name matches the glob pattern")
	cmd.Flags().BoolVar(&cmd.strict, "strict", false,
		"fail on unknown attributes and elements")
	cmd.Flags().Var(cmd.format, "format", cmd.format.Usage(term.Highlight))
	_ = cmd.format.RegisterFlagCompletion(&cmd.Command)

	return &cmd
}

func (c *lsQueuesCmd) run(_ *cobra.Command, args []string) {
	conf := mustLoadConfig(configFileArg(args), c.strict)
	if !conf.Version.AtLeast(cfg.Version13) {
		log.Debugf("configuration version %s does not support queues\n", conf.Version)
	}

	formatter := mustNewFormatter(c.format.Val, c.createHeader())

	for _, q := range conf.Queues {
		if !nameMatches(c.name, q.Name) {
			continue
		}

		if c.quiet {
			mustWriteRow(formatter, q.Name)
			continue
		}

		projects := make([]string, 0, len(q.Projects()))
		for _, p := range q.Projects() {
			projects = append(projects, p.Name)
		}

		var duplicates any
		if q.Duplicates != "" {
			duplicates = q.Duplicates
		}

		mustWriteRow(formatter,
			q.Name,
			duplicates,
			q.LockQueues,
			projects,
			q.Implicit(),
		)
	}

	exitOnErr(formatter.Flush())
}

func (c *lsQueuesCmd) createHeader() []string {
	if c.format.Val == flag.FormatJSON {
		if c.quiet {
			return []string{"Name"}
		}

		return []string{"Name", "Duplicates", "LockQueues", "Projects", "Implicit"}
	}

	if c.quiet {
		return nil
	}

	return []string{"Name", "Duplicates", "Lock Queues", "Projects", "Implicit"}
}
