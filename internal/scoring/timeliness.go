package scoring

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultTimelinessBudget is the number of points awarded for an on-time submission.
const DefaultTimelinessBudget = 25.0

// Timeliness is the part of the score that depends only on when the work was
// submitted, never on its content.
type Timeliness struct {
	Budget float64
	// Override, when set, replaces the computed award.
	Override *float64
	Late     bool
}

// Points returns the timeliness award. An override is clamped to the budget;
// a late submission is capped at half the budget whether or not an override
// is present.
func (t Timeliness) Points() float64 {
	limit := t.Budget
	if t.Late {
		limit = t.Budget / 2
	}
	if t.Override != nil {
		return Round2(Clamp(*t.Override, 0, limit))
	}
	return limit
}

// ParseOverride reads a numeric override. Blank input means no override.
func ParseOverride(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid submission points %q: %w", s, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("invalid submission points %q: not a finite number", s)
	}
	return &v, nil
}

// ParseLate interprets a lateness flag or a submission status string.
// "true", "1", "yes", "y" and "late" (any case) mean late; anything else,
// including "on-time" and the empty string, does not.
func ParseLate(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "late":
		return true
	default:
		return false
	}
}
