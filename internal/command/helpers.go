package command

import (
	"fmt"

	"github.com/simplesurance/ccnetcfg/internal/command/flag"
	"github.com/simplesurance/ccnetcfg/internal/command/term"
	"github.com/simplesurance/ccnetcfg/internal/format"
	"github.com/simplesurance/ccnetcfg/internal/format/csv"
	"github.com/simplesurance/ccnetcfg/internal/format/jsonformat"
	"github.com/simplesurance/ccnetcfg/internal/format/table"
	"github.com/simplesurance/ccnetcfg/internal/log"
	"github.com/simplesurance/ccnetcfg/pkg/cfg"
)

// defaultConfigFile is the file that commands operate on when no path is
// passed.
const defaultConfigFile = "ccnet.config"

// exitOnErr prints err and terminates the program with exitCodeError, if
// err is not nil. If msg is passed, it is printed before err.
func exitOnErr(err error, msg ...any) {
	if err == nil {
		return
	}

	if len(msg) == 0 {
		stderr.ErrPrintln(err)
	} else {
		stderr.ErrPrintf(err, "%s", fmt.Sprint(msg...))
	}

	exitFunc(exitCodeError)
}

// fatal prints an error message and terminates the program with exitCode.
func fatal(exitCode int, format string, a ...any) {
	stderr.Println(term.RedHighlight("ERROR:"), fmt.Sprintf(format, a...))
	exitFunc(exitCode)
}

func configFileArg(args []string) string {
	if len(args) == 0 || args[0] == "" {
		return defaultConfigFile
	}

	return args[0]
}

// loadOpts returns the options for reading ccnet.config files, according
// to the user settings. If strict is true, strict mode is enabled
// independent of the settings.
func loadOpts(strict bool) []cfg.LoadOpt {
	opts, err := userSettings.LoadOpts()
	exitOnErr(err, "evaluating settings failed")

	opts = append(opts, cfg.LoadOptLogf(log.Debugf))
	if strict {
		opts = append(opts, cfg.LoadOptStrict())
	}

	return opts
}

func mustLoadConfig(path string, strict bool) *cfg.CruiseControl {
	log.Debugf("loading %s\n", path)

	c, err := cfg.FromFile(path, loadOpts(strict)...)
	exitOnErr(err, "loading configuration failed")

	return c
}

// mustNewFormatter returns a formatter for the output format.
// For JSON, headers are used as field names.
func mustNewFormatter(formatName string, headers []string) format.Formatter {
	switch formatName {
	case flag.FormatCSV:
		return csv.New(headers, stdout)
	case flag.FormatJSON:
		return jsonformat.New(headers, stdout)
	case flag.FormatPlain:
		return table.New(headers, stdout)
	default:
		panic(fmt.Sprintf("unsupported format: %q", formatName))
	}
}

func mustWriteRow(fmt format.Formatter, row ...any) {
	err := fmt.WriteRow(row...)
	exitOnErr(err)
}
