package reporting

import (
	"fmt"
	"strings"

	"github.com/swe363/gradehtml/internal/models"
)

// InterpretScore returns a plain-language label for score out of max.
func InterpretScore(score, max float64) string {
	if max <= 0 {
		return "Not graded"
	}
	pct := score / max * 100
	switch {
	case pct > 90:
		return "Excellent (>90%)"
	case pct >= 70:
		return "Good (70-90%)"
	case pct >= 50:
		return "Needs Work (50-70%)"
	default:
		return "Poor (<50%)"
	}
}

// InterpretChecks summarizes how many weighted checks passed in a category.
// Zero-weight markers are not counted.
func InterpretChecks(c models.CategoryResult) string {
	passed, total := 0, 0
	for _, ch := range c.Checks {
		if ch.PointsMax == 0 {
			continue
		}
		total++
		if ch.Passed {
			passed++
		}
	}
	switch {
	case total == 0:
		return "No weighted checks"
	case passed == total:
		return fmt.Sprintf("All %d checks passed", total)
	default:
		return fmt.Sprintf("%d of %d checks passed", passed, total)
	}
}

// FormatSummaryReport produces a plain-text interpretation of r for terminals
// and logs.
func FormatSummaryReport(r *models.GradeReport) string {
	var b strings.Builder

	b.WriteString("=== Interpretation ===\n\n")

	switch r.Status {
	case models.StatusMissing:
		fmt.Fprintf(&b, "Submission:    %s was not found\n", r.HTMLFile)
	case models.StatusError:
		fmt.Fprintf(&b, "Submission:    grading failed: %s\n", r.Error)
	case models.StatusFullCredit:
		b.WriteString("Submission:    full credit awarded\n")
	}

	fmt.Fprintf(&b, "Final Score:   %.2f / %s — %s\n", r.FinalScore, num(r.FinalMax), InterpretScore(r.FinalScore, r.FinalMax))
	fmt.Fprintf(&b, "Auto Score:    %.2f / %s — %s\n", r.AutoScoreTotal, num(r.AutoScoreMax), InterpretScore(r.AutoScoreTotal, r.AutoScoreMax))
	timeliness := "on time"
	if r.IsLate {
		timeliness = "late"
	}
	fmt.Fprintf(&b, "Timeliness:    %s / %s (%s)\n", num(r.SubmissionPoints), num(r.SubmissionMax), timeliness)

	if len(r.Categories) > 0 && !r.Degraded() {
		b.WriteString("\nPer-Category Interpretation:\n")
		for _, c := range r.Categories {
			icon := "✓"
			if c.Scaled < c.Budget {
				icon = "✗"
			}
			fmt.Fprintf(&b, "  %s %s: %.2f / %s\n", icon, c.Name, c.Scaled, num(c.Budget))
			fmt.Fprintf(&b, "    %s\n", InterpretChecks(c))
			for _, ch := range c.Checks {
				if !ch.Passed && ch.PointsMax > 0 {
					fmt.Fprintf(&b, "    - missed: %s (%s pts)\n", ch.Description, num(ch.PointsMax))
				}
			}
		}
	}

	return b.String()
}
