package reporting

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/swe363/gradehtml/internal/models"
	"github.com/swe363/gradehtml/internal/rubric"
)

// Title heads every narrative report.
const Title = "# Automated Grade: 2.1 HTML Basics"

// RenderMarkdown renders the narrative report. Degraded runs get a status line
// and the headline scores only; graded and full-credit runs list every check.
func RenderMarkdown(r *models.GradeReport) string {
	var b strings.Builder

	b.WriteString(Title + "\n\n")

	switch r.Status {
	case models.StatusMissing:
		fmt.Fprintf(&b, "**Status:** ❌ Could not find `%s`.\n\n", r.HTMLFile)
		writeCompactHeadline(&b, r)
		b.WriteString("\n> Ensure your main HTML file is named `index.html` at the repo root (or set `HTML_FILE`).\n")
		return b.String()
	case models.StatusError:
		b.WriteString("**Status:** ❌ Autograder crashed.\n\n")
		fmt.Fprintf(&b, "```\n%s\n```\n\n", r.Error)
		writeCompactHeadline(&b, r)
		return b.String()
	case models.StatusFullCredit:
		b.WriteString("**Status:** ✅ Full credit awarded.\n\n")
	}

	fmt.Fprintf(&b, "**Automatic Score (out of %s):** **%.2f / %s**\n\n", num(r.AutoScoreMax), r.AutoScoreTotal, num(r.AutoScoreMax))
	for _, c := range r.Categories {
		fmt.Fprintf(&b, "- %s (%s): **%.2f**\n", c.Name, num(c.Budget), c.Scaled)
	}
	fmt.Fprintf(&b, "\n**Submission Time Points (out of %s):** %s%s\n\n", num(r.SubmissionMax), num(r.SubmissionPoints), lateMarker(r))
	fmt.Fprintf(&b, "**Final Score (out of %s):** **%.2f / %s**\n\n", num(r.FinalMax), r.FinalScore, num(r.FinalMax))
	b.WriteString("---\n")

	for _, c := range r.Categories {
		fmt.Fprintf(&b, "\n## %s (%s)\n", c.Name, num(c.Budget))
		b.WriteString("| Result | Check | Points |\n")
		b.WriteString("|---|---|---|\n")
		for _, ch := range c.Checks {
			fmt.Fprintf(&b, "| %s | %s | %.2f / %s |\n", passIcon(ch.Passed), ch.Description, ch.PointsEarned, num(ch.PointsMax))
		}
	}

	b.WriteString("\n**Notes:**\n")
	if r.Variant == rubric.PresetLenient {
		b.WriteString("- Matching is structural: headings, paragraphs and table cells only need to be non-empty, and nested lists must sit inside <li>.\n")
	} else {
		b.WriteString("- Matching is flexible: case-insensitive, ignores extra spaces, and validates structure (e.g., nested lists under <li>).\n")
	}
	fmt.Fprintf(&b, "- If your main file isn’t `%s`, your instructor can set `HTML_FILE` in the workflow.\n", r.HTMLFile)
	return b.String()
}

// writeCompactHeadline writes the three headline scores as one block with
// markdown hard line breaks.
func writeCompactHeadline(b *strings.Builder, r *models.GradeReport) {
	fmt.Fprintf(b, "**Automatic Score (out of %s):** %.2f / %s  \n", num(r.AutoScoreMax), r.AutoScoreTotal, num(r.AutoScoreMax))
	fmt.Fprintf(b, "**Submission Time Points (out of %s):** %s%s  \n", num(r.SubmissionMax), num(r.SubmissionPoints), lateMarker(r))
	fmt.Fprintf(b, "**Final Score (out of %s):** %.2f / %s\n", num(r.FinalMax), r.FinalScore, num(r.FinalMax))
}

func lateMarker(r *models.GradeReport) string {
	if r.IsLate && r.Status != models.StatusFullCredit {
		return " _(late)_"
	}
	return ""
}

func passIcon(passed bool) string {
	if passed {
		return "✅"
	}
	return "❌"
}

// num formats a point value without trailing zeros: 25, 12.5, 3.5.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
