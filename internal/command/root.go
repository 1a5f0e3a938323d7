// Package command implements the ccnetcfg command line interface.
package command

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/simplesurance/ccnetcfg/internal/command/term"
	"github.com/simplesurance/ccnetcfg/internal/log"
	"github.com/simplesurance/ccnetcfg/internal/settings"
	"github.com/simplesurance/ccnetcfg/internal/version"
)

var rootCmd = &cobra.Command{
	Use:              "ccnetcfg",
	Short:            "ccnetcfg validates, inspects and formats CruiseControl.NET ccnet.config files.",
	PersistentPreRun: initCcnetcfg,
}

var (
	verboseFlag  bool
	noColorFlag  bool
	settingsFlag string
)

var stdout = term.NewStream(os.Stdout)
var stderr = term.NewStream(os.Stderr)

var exitFunc = func(code int) { os.Exit(code) }

// userSettings are replaced by the content of the settings file when a
// command is run via rootCmd.
var userSettings = settings.Default()

func initCcnetcfg(_ *cobra.Command, _ []string) {
	if verboseFlag {
		log.StdLogger.EnableDebug(verboseFlag)
	}

	path, err := settings.Locate(settingsFlag)
	exitOnErr(err)

	s, err := settings.Load(path)
	exitOnErr(err)

	if s.FilePath() != "" {
		log.Debugf("settings loaded from %s\n", s.FilePath())
	} else {
		log.Debugf("settings file %s does not exist, using default settings\n", path)
	}

	userSettings = s

	if noColorFlag || s.Display.NoColor {
		term.DisableColors()
	}
}

// Execute parses commandline flags and execute their actions
func Execute() {
	if err := version.Load(); err != nil {
		stderr.Printf("setting version failed: %s\n", err)
	}
	rootCmd.Version = version.Current.String()

	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "disable color output")
	rootCmd.PersistentFlags().StringVar(&settingsFlag, "settings", "",
		"path of the settings file, overrides $"+settings.EnvVarPath)

	err := rootCmd.Execute()
	exitOnErr(err)
}
