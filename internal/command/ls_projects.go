package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simplesurance/ccnetcfg/internal/command/flag"
	"github.com/simplesurance/ccnetcfg/internal/command/term"
	"github.com/simplesurance/ccnetcfg/pkg/cfg"
)

const (
	lsProjectsNameParam          = "name"
	lsProjectsQueueParam         = "queue"
	lsProjectsPriorityParam      = "priority"
	lsProjectsCategoryParam      = "category"
	lsProjectsSourceControlParam = "sourcecontrol"
	lsProjectsTriggersParam      = "triggers"
	lsProjectsTasksParam         = "tasks"
	lsProjectsPublishersParam    = "publishers"
)

var lsProjectsHeaders = map[string]string{
	lsProjectsNameParam:          "Name",
	lsProjectsQueueParam:         "Queue",
	lsProjectsPriorityParam:      "Priority",
	lsProjectsCategoryParam:      "Category",
	lsProjectsSourceControlParam: "Source Control",
	lsProjectsTriggersParam:      "Triggers",
	lsProjectsTasksParam:         "Tasks",
	lsProjectsPublishersParam:    "Publishers",
}

func init() {
	lsCmd.AddCommand(&newLsProjectsCmd().Command)
}

type lsProjectsCmd struct {
	cobra.Command

	quiet  bool
	name   string
	format *flag.Format
	fields *flag.Fields
	strict bool
}

func newLsProjectsCmd() *lsProjectsCmd {
	cmd := lsProjectsCmd{
		Command: cobra.Command{
			Use:   "projects [FILE]",
			Short: "list the projects of a ccnet.config file",
			Args:  cobra.MaximumNArgs(1),
		},
		format: flag.NewFormatFlag(),
		fields: flag.NewFields([]string{
			lsProjectsNameParam,
			lsProjectsQueueParam,
			lsProjectsPriorityParam,
			lsProjectsCategoryParam,
			lsProjectsSourceControlParam,
			lsProjectsTriggersParam,
			lsProjectsTasksParam,
			lsProjectsPublishersParam,
		}),
	}

	cmd.Run = cmd.run

	cmd.Flags().BoolVarP(&cmd.quiet, "quiet", "q", false,
		"only show project names")
	cmd.Flags().StringVar(&cmd.name, "name", "",
		"only show projects whose name matches the glob pattern")
	cmd.Flags().BoolVar(&cmd.strict, "strict", false,
		"fail on unknown attributes and elements")
	cmd.Flags().Var(cmd.format, "format", cmd.format.Usage(term.Highlight))
	_ = cmd.format.RegisterFlagCompletion(&cmd.Command)
	cmd.Flags().VarP(cmd.fields, "fields", "f", cmd.fields.Usage(term.Highlight))
	_ = cmd.fields.RegisterFlagCompletion(&cmd.Command, "fields")

	return &cmd
}

func (c *lsProjectsCmd) run(_ *cobra.Command, args []string) {
	conf := mustLoadConfig(configFileArg(args), c.strict)

	fields := c.fields.Fields
	if c.quiet {
		fields = []string{lsProjectsNameParam}
	}

	formatter := mustNewFormatter(c.format.Val, c.createHeader(fields))

	for _, p := range conf.Projects {
		if !nameMatches(c.name, p.Name) {
			continue
		}

		mustWriteRow(formatter, c.assembleRow(fields, conf, p)...)
	}

	exitOnErr(formatter.Flush())
}

func (c *lsProjectsCmd) createHeader(fields []string) []string {
	if c.quiet && c.format.Val != flag.FormatJSON {
		return nil
	}

	headers := make([]string, 0, len(fields))
	for _, f := range fields {
		h, exist := lsProjectsHeaders[f]
		if !exist {
			panic(fmt.Sprintf("unsupported value %q in fields parameter", f))
		}

		headers = append(headers, h)
	}

	return headers
}

func (c *lsProjectsCmd) assembleRow(fields []string, conf *cfg.CruiseControl, p *cfg.Project) []any {
	row := make([]any, 0, len(fields))

	for _, f := range fields {
		switch f {
		case lsProjectsNameParam:
			row = append(row, p.Name)

		case lsProjectsQueueParam:
			if conf.Version.AtLeast(cfg.Version13) {
				row = append(row, p.QueueName())
			} else {
				row = append(row, nil)
			}

		case lsProjectsPriorityParam:
			row = append(row, optionalValue(p.QueuePriority))

		case lsProjectsCategoryParam:
			row = append(row, p.Category)

		case lsProjectsSourceControlParam:
			if p.SourceControl == nil {
				row = append(row, nil)
			} else {
				row = append(row, p.SourceControl.TypeName())
			}

		case lsProjectsTriggersParam:
			row = append(row, typeNames(p.Triggers))

		case lsProjectsTasksParam:
			row = append(row, typeNames(p.Tasks))

		case lsProjectsPublishersParam:
			row = append(row, typeNames(p.Publishers))

		default:
			panic(fmt.Sprintf("unsupported value %q in fields parameter", f))
		}
	}

	return row
}
