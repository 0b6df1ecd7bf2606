package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/swe363/gradehtml/internal/models"
	"github.com/swe363/gradehtml/internal/reporting"
)

// glyphs picks status markers. Emoji are only used on a terminal; logs and
// redirected output get plain words.
type glyphs struct {
	pass, fail, warn string
}

func glyphsFor(fancy bool) glyphs {
	if fancy {
		return glyphs{pass: "✅", fail: "❌", warn: "⚠️"}
	}
	return glyphs{pass: "PASS", fail: "FAIL", warn: "WARN"}
}

// printConsoleSummary writes a short scoreboard for the person running the
// grader. The full breakdown lives in the written reports.
func printConsoleSummary(w io.Writer, r *models.GradeReport, paths reporting.Paths, fancy bool) {
	g := glyphsFor(fancy)

	const colScore = 16
	nameWidth := len("Category")
	for _, c := range r.Categories {
		if n := runewidth.StringWidth(c.Name); n > nameWidth {
			nameWidth = n
		}
	}
	totalWidth := nameWidth + colScore + 2 + len("Checks") + 8

	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "%s\n", strings.Repeat("═", totalWidth))
	fmt.Fprintf(w, " %s\n", strings.TrimPrefix(reporting.Title, "# "))
	fmt.Fprintf(w, "%s\n\n", strings.Repeat("═", totalWidth))

	switch r.Status {
	case models.StatusMissing:
		fmt.Fprintf(w, "%s Could not find %s\n\n", g.fail, r.HTMLFile)
	case models.StatusError:
		fmt.Fprintf(w, "%s Autograder crashed: %s\n\n", g.fail, r.Error)
	case models.StatusFullCredit:
		fmt.Fprintf(w, "%s Full credit awarded\n\n", g.pass)
	}

	if !r.Degraded() {
		fmt.Fprintf(w, "%s  %s  %s\n", padRight("Category", nameWidth), padRight("Score", colScore), "Checks")
		fmt.Fprintf(w, "%s\n", strings.Repeat("─", totalWidth))
		for _, c := range r.Categories {
			icon := g.pass
			if c.Scaled < c.Budget {
				icon = g.warn
			}
			score := fmt.Sprintf("%s %.2f/%s", icon, c.Scaled, formatPoints(c.Budget))
			fmt.Fprintf(w, "%s  %s  %s\n", padRight(c.Name, nameWidth), padRight(score, colScore), reporting.InterpretChecks(c))
		}
		fmt.Fprintf(w, "\n")
	}

	late := ""
	if r.IsLate && r.Status != models.StatusFullCredit {
		late = " (late)"
	}
	fmt.Fprintf(w, "Automatic score:  %.2f / %s\n", r.AutoScoreTotal, formatPoints(r.AutoScoreMax))
	fmt.Fprintf(w, "Timeliness:       %s / %s%s\n", formatPoints(r.SubmissionPoints), formatPoints(r.SubmissionMax), late)
	fmt.Fprintf(w, "Final score:      %.2f / %s  %s\n", r.FinalScore, formatPoints(r.FinalMax), reporting.InterpretScore(r.FinalScore, r.FinalMax))

	var written []string
	for _, p := range []string{paths.Markdown, paths.JSON, paths.CSV, paths.JUnit, paths.HTML} {
		if p != "" {
			written = append(written, p)
		}
	}
	if len(written) > 0 {
		fmt.Fprintf(w, "\nReports: %s\n", strings.Join(written, ", "))
	}
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

func formatPoints(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
