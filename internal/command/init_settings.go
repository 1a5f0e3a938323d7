package command

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simplesurance/ccnetcfg/internal/command/term"
	"github.com/simplesurance/ccnetcfg/internal/fs"
	"github.com/simplesurance/ccnetcfg/internal/settings"
)

func init() {
	initCmd.AddCommand(&newInitSettingsCmd().Command)
}

var initSettingsLongHelp = `
Create the settings file of ccnetcfg.

If FILE is not passed, the file is created at the path passed via
--settings, the path in the $` + settings.EnvVarPath + ` environment variable or in
the user configuration directory.
All settings are commented out in the created file, uncomment them to
change the defaults. Settings that are missing in the file have their
default values.
`

type initSettingsCmd struct {
	cobra.Command

	uncommented bool
}

func newInitSettingsCmd() *initSettingsCmd {
	cmd := initSettingsCmd{
		Command: cobra.Command{
			Use:   "settings [FILE]",
			Short: "create the settings file",
			Long:  strings.TrimSpace(initSettingsLongHelp),
			Args:  cobra.MaximumNArgs(1),
		},
	}

	cmd.Run = cmd.run

	cmd.Flags().BoolVar(&cmd.uncommented, "uncommented", false,
		"write the example settings instead of commented defaults")

	return &cmd
}

func (c *initSettingsCmd) run(_ *cobra.Command, args []string) {
	var path string

	if len(args) == 1 {
		path = args[0]
	} else {
		var err error
		path, err = settings.Locate(settingsFlag)
		exitOnErr(err)
	}

	exitOnErr(fs.Mkdir(filepath.Dir(path)), "creating directory failed")

	var err error
	if c.uncommented {
		err = settings.ExampleSettings().ToFile(path)
	} else {
		err = settings.ExampleSettings().ToFile(path, settings.ToFileOptCommented())
	}

	if err != nil {
		if os.IsExist(err) {
			fatal(exitCodeAlreadyExist, "%s already exists", path)
			return
		}

		exitOnErr(err)
	}

	stdout.Printf("Settings were written to %s\n", term.Highlight(path))
}
