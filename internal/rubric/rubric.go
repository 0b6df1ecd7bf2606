// Package rubric holds the check definitions for the HTML Basics assignment and
// the evaluator that runs them against a parsed submission.
package rubric

import (
	"fmt"

	"github.com/swe363/gradehtml/internal/dom"
	"github.com/swe363/gradehtml/internal/models"
)

// Category keys, as they appear in the structured report's details object.
const (
	KeyTodos       = "todos"
	KeyCorrectness = "correctness"
	KeyQuality     = "quality"
)

// DefaultBudget is the number of points each category is scaled to.
const DefaultBudget = 25.0

// Predicate is a pure test over the parsed document.
type Predicate func(doc *dom.Document) bool

// Check is one rubric line: an identifier, a label, a fixed weight and the
// predicate deciding pass or fail. A zero weight marks an informational check.
type Check struct {
	ID          string
	Description string
	Weight      float64
	Predicate   Predicate
}

// CategoryDef is an ordered list of checks scaled to Budget points.
type CategoryDef struct {
	Key       string
	Name      string
	ScaledKey string
	Budget    float64
	Checks    []Check
}

// MaxRaw is the sum of the category's check weights.
func (c CategoryDef) MaxRaw() float64 {
	total := 0.0
	for _, ch := range c.Checks {
		total += ch.Weight
	}
	return total
}

// Definitions returns the three categories configured by opts, in report order.
func Definitions(opts Options) []CategoryDef {
	return []CategoryDef{
		{
			Key:       KeyTodos,
			Name:      "TODOs Completion",
			ScaledKey: "todo_scaled",
			Budget:    DefaultBudget,
			Checks:    todoChecks(opts),
		},
		{
			Key:       KeyCorrectness,
			Name:      "Correctness of Output",
			ScaledKey: "correctness_scaled",
			Budget:    DefaultBudget,
			Checks:    correctnessChecks(opts),
		},
		{
			Key:       KeyQuality,
			Name:      "Code Quality",
			ScaledKey: "quality_scaled",
			Budget:    DefaultBudget,
			Checks:    qualityChecks(opts),
		},
	}
}

// WithBudgets returns defs with per-category budgets replaced from budgets,
// keyed by category key. Missing keys keep their current budget.
func WithBudgets(defs []CategoryDef, budgets map[string]float64) []CategoryDef {
	out := make([]CategoryDef, len(defs))
	for i, d := range defs {
		if b, ok := budgets[d.Key]; ok {
			d.Budget = b
		}
		out[i] = d
	}
	return out
}

// ValidateBudgets rejects budget overrides for unknown categories and
// non-positive budgets.
func ValidateBudgets(budgets map[string]float64) error {
	for key, b := range budgets {
		switch key {
		case KeyTodos, KeyCorrectness, KeyQuality:
		default:
			return fmt.Errorf("unknown category %q in budgets", key)
		}
		if b <= 0 {
			return fmt.Errorf("budget for %s must be positive, got %v", key, b)
		}
	}
	return nil
}

// Evaluate runs every check in order. Checks don't observe each other, so the
// order only affects presentation.
func Evaluate(doc *dom.Document, defs []CategoryDef) []models.CategoryResult {
	results := make([]models.CategoryResult, 0, len(defs))
	for _, def := range defs {
		cat := models.CategoryResult{
			Key:       def.Key,
			Name:      def.Name,
			ScaledKey: def.ScaledKey,
			Budget:    def.Budget,
			Checks:    make([]models.CheckResult, 0, len(def.Checks)),
		}
		for _, ch := range def.Checks {
			cat.Checks = append(cat.Checks, models.NewCheckResult(ch.ID, ch.Description, ch.Predicate(doc), ch.Weight))
		}
		results = append(results, cat)
	}
	return results
}
