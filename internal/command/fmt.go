package command

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/simplesurance/ccnetcfg/internal/command/term"
	"github.com/simplesurance/ccnetcfg/internal/log"
	"github.com/simplesurance/ccnetcfg/pkg/cfg"
	"github.com/simplesurance/ccnetcfg/pkg/schema"
)

func init() {
	rootCmd.AddCommand(&newFmtCmd().Command)
}

const fmtLongHelp = `
Rewrite a ccnet.config file in the canonical format.

The file is loaded and written again, with consistent indentation and
attribute order. The result is printed to stdout, unless --write is passed.

With --config-version the document is converted to another configuration
version. When converting to an older version, settings and queues that the
older version does not support are removed.

The ccnetconfigType attributes that older configuration editors wrote are
kept, unless --drop-legacy-types is passed.
`

const fmtExamples = `
ccnetcfg fmt ccnet.config
ccnetcfg fmt -w --backup ccnet.config
ccnetcfg fmt --config-version 1.3 ccnet.config
`

type fmtCmd struct {
	cobra.Command

	write         bool
	backup        bool
	strict        bool
	indent          int
	configVersion   string
	dropLegacyTypes bool
}

func newFmtCmd() *fmtCmd {
	cmd := fmtCmd{
		Command: cobra.Command{
			Use:     "fmt [FILE]",
			Short:   "format and convert a ccnet.config file",
			Long:    strings.TrimSpace(fmtLongHelp),
			Example: strings.TrimSpace(fmtExamples),
			Args:    cobra.MaximumNArgs(1),
		},
	}

	cmd.Run = cmd.run

	cmd.Flags().BoolVarP(&cmd.write, "write", "w", false,
		"overwrite the file instead of printing the result")
	cmd.Flags().BoolVar(&cmd.backup, "backup", false,
		"keep a copy of the original file, when --write is passed")
	cmd.Flags().BoolVar(&cmd.strict, "strict", false,
		"fail on unknown attributes and elements instead of removing them")
	cmd.Flags().IntVar(&cmd.indent, "indent", cfg.DefaultIndent,
		"number of spaces nested elements are indented with, overrides the settings file")
	cmd.Flags().StringVar(&cmd.configVersion, "config-version", "",
		"convert the document to the configuration version")
	cmd.Flags().BoolVar(&cmd.dropLegacyTypes, "drop-legacy-types", false,
		"remove the ccnetconfigType attributes of components")

	return &cmd
}

func (c *fmtCmd) run(cmd *cobra.Command, args []string) {
	path := configFileArg(args)
	conf := mustLoadConfig(path, c.strict)

	if c.configVersion != "" {
		c.convert(conf)
	}

	opts := userSettings.WriteOpts()

	if cmd.Flags().Changed("indent") {
		if c.indent < 0 {
			fatal(exitCodeError, "--indent must not be negative")
			return
		}

		opts = append(opts, cfg.WriteOptIndent(c.indent))
	}

	if c.dropLegacyTypes {
		opts = append(opts, cfg.WriteOptOmitLegacyTypes())
	}

	if !c.write {
		exitOnErr(conf.Write(stdout, opts...))
		return
	}

	opts = append(opts, cfg.ToFileOptOverwrite())
	if c.backup {
		opts = append(opts, cfg.ToFileOptBackup())
	}

	exitOnErr(conf.ToFile(path, opts...), "writing ", path, " failed")

	stdout.Printf("%s written\n", term.Highlight(path))
}

func (c *fmtCmd) convert(conf *cfg.CruiseControl) {
	v, err := schema.ParseVersion(c.configVersion)
	exitOnErr(err, "invalid --config-version")

	if v.Compare(cfg.LatestVersion) > 0 {
		fatal(exitCodeError, "configuration version %s is not supported, the latest supported version is %s",
			v, cfg.LatestVersion)
		return
	}

	if v.Compare(conf.Version) < 0 {
		log.Warnf("converting from configuration version %s to %s, settings that are not supported by %s are removed\n",
			conf.Version, v, v)
	}

	log.Debugf("converting document from configuration version %s to %s\n", conf.Version, v)
	conf.Version = v
}
