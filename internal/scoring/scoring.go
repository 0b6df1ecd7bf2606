// Package scoring turns evaluated rubric categories into the numbers that end
// up in the reports: scaled category scores, the auto score, the timeliness
// component and the final score.
package scoring

import (
	"math"

	"github.com/swe363/gradehtml/internal/models"
	"github.com/swe363/gradehtml/internal/rubric"
)

// Totals is the scored half of a GradeReport.
type Totals struct {
	Categories       []models.CategoryResult
	AutoScoreTotal   float64
	AutoScoreMax     float64
	SubmissionPoints float64
	SubmissionMax    float64
	IsLate           bool
	FinalScore       float64
	FinalMax         float64
}

// ApplyTo copies the totals into r.
func (t Totals) ApplyTo(r *models.GradeReport) {
	r.Categories = t.Categories
	r.AutoScoreTotal = t.AutoScoreTotal
	r.AutoScoreMax = t.AutoScoreMax
	r.SubmissionPoints = t.SubmissionPoints
	r.SubmissionMax = t.SubmissionMax
	r.IsLate = t.IsLate
	r.FinalScore = t.FinalScore
	r.FinalMax = t.FinalMax
}

// Scorer computes totals from evaluated categories.
type Scorer interface {
	Score(categories []models.CategoryResult, timeliness Timeliness) Totals
}

// RubricScorer scales each category's earned/max ratio to its budget.
type RubricScorer struct{}

func (RubricScorer) Score(categories []models.CategoryResult, timeliness Timeliness) Totals {
	scored := make([]models.CategoryResult, len(categories))
	sum, budget := 0.0, 0.0
	for i, c := range categories {
		scored[i] = ScaleCategory(c)
		sum += scored[i].Scaled
		budget += c.Budget
	}

	return totals(scored, Round2(Clamp(sum, 0, budget)), budget, timeliness.Points(), timeliness)
}

// FullCreditScorer ignores every check and awards each category its budget
// plus the whole timeliness budget. Each category carries one synthetic check
// so the reports keep their shape.
type FullCreditScorer struct{}

func (FullCreditScorer) Score(categories []models.CategoryResult, timeliness Timeliness) Totals {
	scored := make([]models.CategoryResult, len(categories))
	budget := 0.0
	for i, c := range categories {
		c.Checks = []models.CheckResult{
			models.NewCheckResult("full_credit", "Full credit awarded", true, c.Budget),
		}
		c.RawScore, c.RawMax, c.Scaled = c.Budget, c.Budget, c.Budget
		scored[i] = c
		budget += c.Budget
	}

	return totals(scored, budget, budget, timeliness.Budget, timeliness)
}

func totals(categories []models.CategoryResult, auto, autoMax, submission float64, timeliness Timeliness) Totals {
	return Totals{
		Categories:       categories,
		AutoScoreTotal:   auto,
		AutoScoreMax:     autoMax,
		SubmissionPoints: submission,
		SubmissionMax:    timeliness.Budget,
		IsLate:           timeliness.Late,
		FinalScore:       Round2(auto + submission),
		FinalMax:         autoMax + timeliness.Budget,
	}
}

// ScaleCategory sums the raw points and scales them to the category budget.
// A category whose checks carry no weight scales to zero.
func ScaleCategory(c models.CategoryResult) models.CategoryResult {
	c.RawScore, c.RawMax = 0, 0
	for _, ch := range c.Checks {
		c.RawScore += ch.PointsEarned
		c.RawMax += ch.PointsMax
	}
	c.Scaled = 0
	if c.RawMax > 0 {
		c.Scaled = Clamp(Round2(c.RawScore/c.RawMax*c.Budget), 0, c.Budget)
	}
	return c
}

// EmptyCategories returns the categories of defs with no check results, the
// shape used for runs that never evaluated the document.
func EmptyCategories(defs []rubric.CategoryDef) []models.CategoryResult {
	out := make([]models.CategoryResult, len(defs))
	for i, d := range defs {
		out[i] = models.CategoryResult{
			Key:       d.Key,
			Name:      d.Name,
			ScaledKey: d.ScaledKey,
			Budget:    d.Budget,
		}
	}
	return out
}

// Round2 rounds to two decimal places, halves away from zero.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
