package command

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simplesurance/ccnetcfg/internal/command/term"
)

const (
	cmdInitConfig   = "ccnetcfg init config"
	cmdInitSettings = "ccnetcfg init settings"
	cmdValidate     = "ccnetcfg validate"
)

var initLongHelp = fmt.Sprintf(`
The init commands create example configuration files.

%s writes an example ccnet.config file that uses all supported
component types, %s creates the settings file of ccnetcfg.
`, term.Highlight(cmdInitConfig), term.Highlight(cmdInitSettings))

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "create example ccnet.config and settings files",
	Long:  strings.TrimSpace(initLongHelp),
}

func init() {
	rootCmd.AddCommand(initCmd)
}
