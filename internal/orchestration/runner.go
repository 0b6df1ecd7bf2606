// Package orchestration runs one grading pass: resolve the submission, parse
// it, evaluate the rubric, score it and assemble the GradeReport. Every fault,
// configuration included, is turned into a degraded report instead of an error.
package orchestration

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/swe363/gradehtml/internal/dom"
	"github.com/swe363/gradehtml/internal/models"
	"github.com/swe363/gradehtml/internal/rubric"
	"github.com/swe363/gradehtml/internal/scoring"
)

// Config is everything a run needs besides the submission itself.
type Config struct {
	HTMLFile string
	Repo     string
	Mode     models.Mode
	Variant  string
	// Params overlay the variant's rubric options.
	Params map[string]any
	// Budgets override per-category budgets by category key.
	Budgets    map[string]float64
	Timeliness scoring.Timeliness
	// Faults are configuration problems the caller found before the run.
	// Any fault degrades the report to StatusError.
	Faults []string
}

// Parser turns raw markup into a queryable document.
type Parser func(raw string) (*dom.Document, error)

// Runner grades a single submission.
type Runner struct {
	cfg Config

	readFile func(name string) ([]byte, error)
	parse    Parser
	now      func() time.Time
	newID    func() string

	listeners []ProgressListener
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithParser replaces the HTML parser.
func WithParser(p Parser) RunnerOption {
	return func(r *Runner) {
		r.parse = p
	}
}

// WithReadFile replaces how the submission is read.
func WithReadFile(fn func(name string) ([]byte, error)) RunnerOption {
	return func(r *Runner) {
		r.readFile = fn
	}
}

// WithClock fixes the time source used for report timestamps and durations.
func WithClock(now func() time.Time) RunnerOption {
	return func(r *Runner) {
		r.now = now
	}
}

// WithRunID fixes the run identifier instead of generating a UUID.
func WithRunID(id string) RunnerOption {
	return func(r *Runner) {
		r.newID = func() string { return id }
	}
}

// NewRunner creates a runner for cfg.
func NewRunner(cfg Config, opts ...RunnerOption) *Runner {
	r := &Runner{
		cfg:      cfg,
		readFile: os.ReadFile,
		parse:    dom.Parse,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Run grades the configured submission. The returned error is reserved for
// cancellation; unusable settings, and a missing, unreadable, unparsable or
// crashing submission, still yield a complete report.
func (r *Runner) Run(ctx context.Context) (*models.GradeReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	defs, opts, timeliness, faults := r.resolve()

	start := r.now()
	report := &models.GradeReport{
		RunID:     r.newID(),
		Mode:      r.cfg.Mode,
		Variant:   opts.Preset,
		HTMLFile:  r.cfg.HTMLFile,
		Repo:      r.cfg.Repo,
		Timestamp: start,
	}
	if report.Mode == "" {
		report.Mode = models.ModeScored
	}

	log := slog.With("run_id", report.RunID, "file", r.cfg.HTMLFile)
	r.notify(ProgressEvent{EventType: EventGradeStart, RunID: report.RunID, File: r.cfg.HTMLFile})

	raw, readErr := r.readFile(r.cfg.HTMLFile)
	report.FileFound = readErr == nil

	var totals scoring.Totals
	switch {
	case len(faults) > 0:
		log.Error("Invalid configuration", "error", strings.Join(faults, "; "))
		report.Status = models.StatusError
		report.Error = strings.Join(faults, "; ")
		totals = scoring.RubricScorer{}.Score(scoring.EmptyCategories(defs), timeliness)

	case report.Mode == models.ModeFullCredit:
		report.Status = models.StatusFullCredit
		totals = scoring.FullCreditScorer{}.Score(scoring.EmptyCategories(defs), timeliness)

	case errors.Is(readErr, fs.ErrNotExist):
		log.Warn("Submission not found")
		report.Status = models.StatusMissing
		report.Error = fmt.Sprintf("Missing %s", r.cfg.HTMLFile)
		totals = scoring.RubricScorer{}.Score(scoring.EmptyCategories(defs), timeliness)

	case readErr != nil:
		log.Error("Failed to read submission", "error", readErr)
		report.Status = models.StatusError
		report.Error = readErr.Error()
		totals = scoring.RubricScorer{}.Score(scoring.EmptyCategories(defs), timeliness)

	default:
		categories, evalErr := r.evaluate(string(raw), defs)
		if evalErr != nil {
			log.Error("Grading failed", "error", evalErr)
			report.Status = models.StatusError
			report.Error = evalErr.Error()
			categories = scoring.EmptyCategories(defs)
		} else {
			report.Status = models.StatusGraded
		}
		totals = scoring.RubricScorer{}.Score(categories, timeliness)
	}

	totals.ApplyTo(report)
	report.Duration = r.now().Sub(start)

	if report.Status == models.StatusGraded {
		for i := range report.Categories {
			r.notify(ProgressEvent{EventType: EventCategoryComplete, RunID: report.RunID, File: r.cfg.HTMLFile, Category: &report.Categories[i]})
		}
	}

	log.Info("Graded submission",
		"status", report.Status,
		"auto", report.AutoScoreTotal,
		"submission", report.SubmissionPoints,
		"final", report.FinalScore,
		"duration", report.Duration,
	)
	r.notify(ProgressEvent{EventType: EventGradeComplete, RunID: report.RunID, File: r.cfg.HTMLFile, Report: report})

	return report, nil
}

// evaluate parses and runs the rubric. A panicking predicate or parser is
// converted into an error so the run can still produce reports.
func (r *Runner) evaluate(raw string, defs []rubric.CategoryDef) (categories []models.CategoryResult, err error) {
	defer func() {
		if p := recover(); p != nil {
			categories = nil
			err = fmt.Errorf("grading panicked: %v", p)
		}
	}()

	doc, err := r.parse(raw)
	if err != nil {
		return nil, err
	}
	return rubric.Evaluate(doc, defs), nil
}

// resolve builds the rubric and timeliness settings for the run. Settings
// that can't be used fall back to their defaults and are reported as faults.
func (r *Runner) resolve() ([]rubric.CategoryDef, rubric.Options, scoring.Timeliness, []string) {
	faults := append([]string(nil), r.cfg.Faults...)

	opts, err := rubric.NewOptions(r.cfg.Variant, r.cfg.Params)
	if err != nil {
		faults = append(faults, fmt.Sprintf("configuring rubric: %v", err))
		if opts, err = rubric.Preset(r.cfg.Variant); err != nil {
			opts, _ = rubric.Preset(rubric.PresetStrict)
		}
	}

	defs := rubric.Definitions(opts)
	if err := rubric.ValidateBudgets(r.cfg.Budgets); err != nil {
		faults = append(faults, err.Error())
	} else {
		defs = rubric.WithBudgets(defs, r.cfg.Budgets)
	}

	timeliness := r.cfg.Timeliness
	if timeliness.Budget < 0 {
		faults = append(faults, fmt.Sprintf("timeliness budget must not be negative, got %v", timeliness.Budget))
		timeliness.Budget = scoring.DefaultTimelinessBudget
	}

	return defs, opts, timeliness, faults
}
