package command

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simplesurance/ccnetcfg/internal/command/term"
	"github.com/simplesurance/ccnetcfg/internal/fs"
	"github.com/simplesurance/ccnetcfg/internal/log"
	"github.com/simplesurance/ccnetcfg/pkg/cfg"
	"github.com/simplesurance/ccnetcfg/pkg/schema"
)

func init() {
	rootCmd.AddCommand(&newValidateCmd().Command)
}

const validateLongHelp = `
Load and validate ccnet.config files.

Arguments are paths of files or glob patterns, '**' matches directories
recursively. If no argument is passed, ccnet.config in the current
directory is validated.
All found violations are reported, not only the first one.

Exit Codes:
  0  all files are valid
  1  a file could not be loaded or is invalid
`

const validateExample = `
ccnetcfg validate                       validate ./ccnet.config
ccnetcfg validate --strict servers/**/ccnet.config
`

type validateCmd struct {
	cobra.Command

	strict bool
	quiet  bool
}

func newValidateCmd() *validateCmd {
	cmd := validateCmd{
		Command: cobra.Command{
			Use:     "validate [FILE|GLOB]...",
			Short:   "validate ccnet.config files",
			Long:    strings.TrimSpace(validateLongHelp),
			Example: strings.TrimSpace(validateExample),
			Args:    cobra.ArbitraryArgs,
		},
	}

	cmd.Run = cmd.run

	cmd.Flags().BoolVar(&cmd.strict, "strict", false,
		"fail on unknown attributes and elements")
	cmd.Flags().BoolVarP(&cmd.quiet, "quiet", "q", false,
		"only print violations")

	return &cmd
}

func (c *validateCmd) run(_ *cobra.Command, args []string) {
	if len(args) == 0 {
		args = []string{defaultConfigFile}
	}

	paths, err := fs.ResolveFiles(args...)
	exitOnErr(err)

	var failed int
	for _, path := range paths {
		if !c.validateFile(path) {
			failed++
		}
	}

	if !c.quiet {
		stdout.Printf("%d file(s) validated, %s invalid\n",
			len(paths), term.ColoredCount(failed))
	}

	if failed > 0 {
		exitFunc(exitCodeError)
	}
}

// validateFile loads and validates path, violations are printed.
// It returns true if the file is valid.
func (c *validateCmd) validateFile(path string) bool {
	log.Debugf("validating %s\n", path)

	conf, err := cfg.FromFile(path, loadOpts(c.strict)...)
	if err != nil {
		stderr.ErrPrintln(err)
		return false
	}

	err = conf.Validate()
	if err == nil {
		if !c.quiet {
			stdout.Printf("%s: %s\n", term.Highlight(path), term.GreenHighlight("valid"))
		}

		return true
	}

	var violations schema.Violations
	if !errors.As(err, &violations) {
		violations = schema.Violations{err}
	}

	for _, v := range violations {
		stderr.ErrPrintln(errors.New(path + ": " + v.Error()))
	}

	if !c.quiet {
		stdout.Printf("%s: %s\n", term.Highlight(path),
			term.RedHighlight(len(violations), " violation(s)"))
	}

	return false
}
