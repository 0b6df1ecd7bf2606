package reporting

import (
	"time"

	"github.com/swe363/gradehtml/internal/models"
)

func newTestReport() *models.GradeReport {
	return &models.GradeReport{
		RunID:     "run-1",
		Mode:      models.ModeScored,
		Variant:   "strict",
		Status:    models.StatusGraded,
		HTMLFile:  "index.html",
		FileFound: true,
		Repo:      "swe363/hw1-alice",
		Timestamp: time.Date(2025, 9, 14, 12, 0, 0, 0, time.UTC),
		Duration:  1500 * time.Millisecond,
		Categories: []models.CategoryResult{
			{
				Key: "todos", Name: "TODOs Completion", ScaledKey: "todo_scaled", Budget: 25,
				Checks: []models.CheckResult{
					models.NewCheckResult("h1_present", "Has an <h1> element", true, 5),
					models.NewCheckResult("h2_present", "Has an <h2> element", false, 4),
					models.NewCheckResult("table_present", "Has a <table> with data", true, 0),
					models.NewCheckResult("img_present", "Has an <img> with alt text", false, 0),
				},
				RawScore: 5, RawMax: 9, Scaled: 13.89,
			},
			{
				Key: "correctness", Name: "Correctness of Output", ScaledKey: "correctness_scaled", Budget: 25,
				Checks: []models.CheckResult{
					models.NewCheckResult("img_wh", "Image has numeric width & height", true, 2),
				},
				RawScore: 2, RawMax: 2, Scaled: 25,
			},
			{
				Key: "quality", Name: "Code Quality", ScaledKey: "quality_scaled", Budget: 25,
				Checks: []models.CheckResult{
					models.NewCheckResult("doctype", "Uses <!DOCTYPE html>", true, 4),
					models.NewCheckResult("list_nesting", "Nested lists are inside <li>", false, 5),
				},
				RawScore: 4, RawMax: 9, Scaled: 11.11,
			},
		},
		AutoScoreTotal:   50,
		AutoScoreMax:     75,
		SubmissionPoints: 25,
		SubmissionMax:    25,
		FinalScore:       75,
		FinalMax:         100,
	}
}

func newMissingReport() *models.GradeReport {
	return &models.GradeReport{
		RunID:            "run-2",
		Mode:             models.ModeScored,
		Variant:          "strict",
		Status:           models.StatusMissing,
		Error:            "Missing site/index.html",
		HTMLFile:         "site/index.html",
		Repo:             "repo",
		Categories:       []models.CategoryResult{{Key: "todos", Name: "TODOs Completion", ScaledKey: "todo_scaled", Budget: 25}},
		AutoScoreMax:     75,
		SubmissionPoints: 12.5,
		SubmissionMax:    25,
		IsLate:           true,
		FinalScore:       12.5,
		FinalMax:         100,
	}
}
