package reporting

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/swe363/gradehtml/internal/models"
)

// field is one key of an object whose key order is part of the format.
type field struct {
	key   string
	value any
}

type orderedObject []field

func (o orderedObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := encodeJSON(f.key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := encodeJSON(f.value)
		if err != nil {
			return nil, fmt.Errorf("marshaling %s: %w", f.key, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// AutoScoreKey is the structured report key of the auto score, e.g.
// "auto_score_out_of_75".
func AutoScoreKey(r *models.GradeReport) string {
	return "auto_score_out_of_" + num(r.AutoScoreMax)
}

// SubmissionKey is the key of the timeliness award.
func SubmissionKey(r *models.GradeReport) string {
	return "submission_points_out_of_" + num(r.SubmissionMax)
}

// FinalScoreKey is the key of the final score.
func FinalScoreKey(r *models.GradeReport) string {
	return "final_score_out_of_" + num(r.FinalMax)
}

// MarshalJSON renders the structured report with a stable key order and two
// space indentation. Markup in check descriptions is written verbatim.
func MarshalJSON(r *models.GradeReport) ([]byte, error) {
	obj := orderedObject{
		{"run_id", r.RunID},
		{"mode", r.Mode},
		{"variant", r.Variant},
		{"status", r.Status},
	}
	if r.Error != "" {
		obj = append(obj, field{"error", r.Error})
	}
	obj = append(obj,
		field{"html_file", r.HTMLFile},
		field{"file_found", r.FileFound},
		field{AutoScoreKey(r), r.AutoScoreTotal},
	)
	details := make(orderedObject, 0, len(r.Categories))
	for _, c := range r.Categories {
		obj = append(obj, field{c.ScaledKey, c.Scaled})
		checks := c.Checks
		if checks == nil {
			checks = []models.CheckResult{}
		}
		details = append(details, field{c.Key, checks})
	}
	obj = append(obj,
		field{SubmissionKey(r), r.SubmissionPoints},
		field{FinalScoreKey(r), r.FinalScore},
		field{"is_late_submission", r.IsLate},
		field{"details", details},
	)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(obj); err != nil {
		return nil, fmt.Errorf("marshaling report: %w", err)
	}
	return buf.Bytes(), nil
}

func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
