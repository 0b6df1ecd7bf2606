package models

import "time"

// Mode selects the scoring policy for a run.
type Mode string

const (
	// ModeScored evaluates the rubric against the submission.
	ModeScored Mode = "scored"
	// ModeFullCredit ignores the submission and awards every point.
	ModeFullCredit Mode = "full-credit"
)

// ParseMode converts a flag or environment value into a Mode. Unknown values
// fall back to ModeScored with ok=false.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeScored, "":
		return ModeScored, true
	case ModeFullCredit, "full_credit", "fullcredit":
		return ModeFullCredit, true
	default:
		return ModeScored, false
	}
}

// Status describes how a run ended.
type Status string

const (
	StatusGraded     Status = "graded"
	StatusMissing    Status = "missing"
	StatusError      Status = "error"
	StatusFullCredit Status = "full-credit"
)

// CheckResult is the outcome of one rubric predicate.
type CheckResult struct {
	ID           string  `json:"id"`
	Description  string  `json:"desc"`
	Passed       bool    `json:"pass"`
	PointsEarned float64 `json:"ptsEarned"`
	PointsMax    float64 `json:"ptsMax"`
}

// NewCheckResult builds a result, awarding weight only when passed.
func NewCheckResult(id, description string, passed bool, weight float64) CheckResult {
	earned := 0.0
	if passed {
		earned = weight
	}
	return CheckResult{
		ID:           id,
		Description:  description,
		Passed:       passed,
		PointsEarned: earned,
		PointsMax:    weight,
	}
}

// CategoryResult holds one rubric section and its scores.
type CategoryResult struct {
	// Key names the category in the structured report's details object.
	Key string
	// Name is the human-readable section title.
	Name string
	// ScaledKey is the structured report field that carries Scaled.
	ScaledKey string
	// Budget is the number of points the category is scaled to.
	Budget float64
	Checks []CheckResult

	RawScore float64
	RawMax   float64
	Scaled   float64
}

// GradeReport is the single source of truth every artifact is rendered from.
type GradeReport struct {
	RunID   string
	Mode    Mode
	Variant string
	Status  Status
	// Error carries the fault message when Status is StatusError.
	Error string

	HTMLFile  string
	FileFound bool
	Repo      string

	Timestamp time.Time
	Duration  time.Duration

	Categories []CategoryResult

	AutoScoreTotal   float64
	AutoScoreMax     float64
	SubmissionPoints float64
	SubmissionMax    float64
	IsLate           bool
	FinalScore       float64
	FinalMax         float64
}

// Category returns the category with the given key.
func (r *GradeReport) Category(key string) (CategoryResult, bool) {
	for _, c := range r.Categories {
		if c.Key == key {
			return c, true
		}
	}
	return CategoryResult{}, false
}

// Degraded reports whether the auto score was forced to zero.
func (r *GradeReport) Degraded() bool {
	return r.Status == StatusMissing || r.Status == StatusError
}
