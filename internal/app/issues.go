package app

import (
	"fmt"
	"io"

	"github.com/gookit/color"
	"github.com/specialistvlad/eqgen/internal/analyser"
)

// printIssues writes one line per issue followed by a summary. Severity
// labels are coloured unless plain is set.
func printIssues(w io.Writer, m *analyser.Model, plain bool) {
	paint := func(c color.Color, s string) string {
		if plain {
			return s
		}
		return c.Sprint(s)
	}

	errorCount, warningCount := 0, 0
	for _, issue := range m.Issues {
		label := issue.Severity.String()
		switch issue.Severity {
		case analyser.Error:
			errorCount++
			label = paint(color.FgRed, label)
		case analyser.Warning:
			warningCount++
			label = paint(color.FgYellow, label)
		}
		fmt.Fprintf(w, "%s [%s]: %s\n", label, issue.Kind, issue.Message)
	}

	summary := fmt.Sprintf("%d error(s), %d warning(s)", errorCount, warningCount)
	switch {
	case errorCount > 0:
		summary = paint(color.FgRed, summary)
	case warningCount > 0:
		summary = paint(color.FgYellow, summary)
	default:
		summary = paint(color.FgGreen, summary)
	}
	fmt.Fprintln(w, summary)
}
