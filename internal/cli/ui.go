package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"dynadoc/internal/diagnostic"
)

var levelColors = map[diagnostic.Level]*color.Color{
	diagnostic.LevelAdmonition: color.New(color.FgCyan),
	diagnostic.LevelError:      color.New(color.FgRed, color.Bold),
	diagnostic.LevelAlert:      color.New(color.FgYellow, color.Bold),
}

// writeDiagnostics prints one line per diagnostic, the level label colored.
func writeDiagnostics(w io.Writer, diags []diagnostic.Diagnostic) {
	for _, d := range diags {
		label := fmt.Sprintf("%-10s", d.Level.String())

		if c, ok := levelColors[d.Level]; ok {
			label = c.Sprint(label)
		}

		fmt.Fprintf(w, "%s %s\n", label, d.String())
	}
}

// summary describes the diagnostic counts, e.g. "1 error, 2 admonitions".
func summary(d *diagnostic.Diagnostics) string {
	if d.Len() == 0 {
		return color.GreenString("no problems found")
	}

	return fmt.Sprintf("%s, %s, %s",
		plural(len(d.Alerts), "alert"),
		plural(len(d.Errors), "error"),
		plural(len(d.Admonitions), "admonition"))
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}

	return fmt.Sprintf("%d %ss", n, noun)
}
