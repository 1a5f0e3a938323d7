package command

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/simplesurance/ccnetcfg/internal/command/flag"
	"github.com/simplesurance/ccnetcfg/internal/command/term"
	"github.com/simplesurance/ccnetcfg/pkg/cfg"
	"github.com/simplesurance/ccnetcfg/pkg/schema"
)

func init() {
	lsCmd.AddCommand(&newLsTypesCmd().Command)
}

const lsTypesLongHelp = `
List the component types that can be used in ccnet.config files.

If CATEGORY is passed, only types of the category are listed.
Types that require a newer configuration version than the one in the
settings file are only shown when --all is passed or show_newer_types is
enabled in the settings.
`

type lsTypesCmd struct {
	cobra.Command

	quiet  bool
	all    bool
	name   string
	format *flag.Format
}

func categoryNames() []string {
	cats := cfg.Types.Categories()
	res := make([]string, 0, len(cats))

	for _, c := range cats {
		res = append(res, string(c))
	}

	return res
}

func newLsTypesCmd() *lsTypesCmd {
	cmd := lsTypesCmd{
		Command: cobra.Command{
			Use:       "types [CATEGORY]",
			Short:     "list the registered component types",
			Long:      strings.TrimSpace(lsTypesLongHelp),
			Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
			ValidArgs: categoryNames(),
		},
		format: flag.NewFormatFlag(),
	}

	cmd.Run = cmd.run

	cmd.Flags().BoolVarP(&cmd.quiet, "quiet", "q", false,
		"only show type names")
	cmd.Flags().BoolVarP(&cmd.all, "all", "a", false,
		"also show types that require a newer configuration version")
	cmd.Flags().StringVar(&cmd.name, "name", "",
		"only show types whose name matches the glob pattern")
	cmd.Flags().Var(cmd.format, "format", cmd.format.Usage(term.Highlight))
	_ = cmd.format.RegisterFlagCompletion(&cmd.Command)

	return &cmd
}

func (c *lsTypesCmd) run(_ *cobra.Command, args []string) {
	version, err := userSettings.Version()
	exitOnErr(err, "evaluating settings failed")

	showNewer := c.all || userSettings.Display.ShowNewerTypes

	categories := cfg.Types.Categories()
	if len(args) == 1 {
		categories = []schema.Category{schema.Category(args[0])}
	}

	formatter := mustNewFormatter(c.format.Val, c.createHeader())

	for _, cat := range categories {
		for _, reg := range cfg.Types.Types(cat) {
			if !showNewer && !version.AtLeast(reg.Since) {
				continue
			}

			if !nameMatches(c.name, reg.Name) {
				continue
			}

			if c.quiet {
				mustWriteRow(formatter, reg.Name)
				continue
			}

			mustWriteRow(formatter,
				string(reg.Category),
				reg.Name,
				sinceValue(reg.Since),
				reg.Legacy,
				reg.Description,
			)
		}
	}

	exitOnErr(formatter.Flush())
}

func (c *lsTypesCmd) createHeader() []string {
	if c.format.Val == flag.FormatJSON {
		if c.quiet {
			return []string{"Name"}
		}

		return []string{"Category", "Name", "Since", "LegacyNames", "Description"}
	}

	if c.quiet {
		return nil
	}

	return []string{"Category", "Name", "Since", "Legacy Names", "Description"}
}

// sinceValue returns nil for the zero version, that is supported by all
// configuration versions.
func sinceValue(v schema.Version) any {
	if v == (schema.Version{}) {
		return nil
	}

	return v.String()
}
