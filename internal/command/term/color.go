package term

import (
	"github.com/fatih/color"
)

var (
	GreenHighlight = color.New(color.FgGreen).SprintFunc()
	RedHighlight   = color.New(color.FgRed).SprintFunc()

	// Highlight emphasizes flag values and names in help texts.
	Highlight = color.New(color.FgMagenta).SprintFunc()
)

// DisableColors turns off colored output for all highlight functions.
func DisableColors() {
	color.NoColor = true
}

// ColoredRequired returns "yes" in red when required is true, otherwise
// "no".
func ColoredRequired(required bool) string {
	if required {
		return RedHighlight("yes")
	}

	return "no"
}

// ColoredCount returns cnt green when it is zero and red otherwise.
func ColoredCount(cnt int) string {
	if cnt == 0 {
		return GreenHighlight(cnt)
	}

	return RedHighlight(cnt)
}
