package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/swe363/gradehtml/internal/models"
	"github.com/swe363/gradehtml/internal/orchestration"
	"github.com/swe363/gradehtml/internal/projectconfig"
	"github.com/swe363/gradehtml/internal/reporting"
	"github.com/swe363/gradehtml/internal/rubric"
	"github.com/swe363/gradehtml/internal/scoring"
)

// Environment variables read by grade in addition to the profile overlay.
const (
	envSubmissionPoints = "SUBMISSION_POINTS"
	envLate             = "LATE"
	envIsLate           = "IS_LATE"
	envSubmissionStatus = "SUBMISSION_STATUS"
)

type gradeFlags struct {
	file             string
	submissionPoints string
	late             string
	submissionStatus string
	repo             string
	mode             string
	variant          string
	outDir           string
	junit            string
	html             string
	config           string
	quiet            bool
	interpret        bool
}

func newGradeCommand() *cobra.Command {
	var flags gradeFlags

	cmd := &cobra.Command{
		Use:   "grade",
		Short: "Grade an HTML submission and write the reports",
		Long: `Grade an HTML submission and write GRADE.md, grade_report.json and
grade_report.csv.

Settings are resolved in order: built-in defaults, .gradehtml.yaml (searched
upward from the working directory, or --config), environment variables, then
flags. Most flags fall back to an environment variable:

  --file               HTML_FILE (default index.html)
  --submission-points  SUBMISSION_POINTS
  --late               LATE or IS_LATE
  --submission-status  SUBMISSION_STATUS ("late" marks the submission late)
  --repo               GITHUB_REPOSITORY (default "repo")
  --mode               GRADE_MODE: scored | full-credit
  --variant            GRADE_VARIANT: strict | lenient

A missing or broken submission is still graded (with a zero automatic score)
and the command exits 0, so CI never fails because of the student's file.
Unusable environment or profile values are reported the same way, as an
error report; only invalid flags stop the command.

When GITHUB_STEP_SUMMARY is set the narrative report is appended to it.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGrade(cmd, &flags)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.file, "file", "", "HTML file to grade")
	f.StringVar(&flags.submissionPoints, "submission-points", "", "Timeliness points awarded, clamped to the timeliness budget")
	f.StringVar(&flags.late, "late", "", "Mark the submission late (true|false)")
	f.StringVar(&flags.submissionStatus, "submission-status", "", "Submission status, e.g. on-time | late")
	f.StringVar(&flags.repo, "repo", "", "Repository name for the CSV row")
	f.StringVar(&flags.mode, "mode", "", "Scoring mode: scored | full-credit")
	f.StringVar(&flags.variant, "variant", "", "Rubric variant: "+strings.Join(rubric.Presets(), " | "))
	f.StringVar(&flags.outDir, "out-dir", "", "Directory for the report files")
	f.StringVar(&flags.junit, "junit", "", "Also write a JUnit XML report (optionally naming the file)")
	f.StringVar(&flags.html, "html", "", "Also write an HTML preview of the report (optionally naming the file)")
	f.StringVar(&flags.config, "config", "", "Path to a profile instead of searching for "+projectconfig.FileName)
	f.BoolVarP(&flags.quiet, "quiet", "q", false, "Don't print the console summary")
	f.BoolVar(&flags.interpret, "interpret", false, "Print a plain-language interpretation of the results")

	f.Lookup("late").NoOptDefVal = "true"
	f.Lookup("junit").NoOptDefVal = projectconfig.DefaultJUnitFile
	f.Lookup("html").NoOptDefVal = projectconfig.DefaultHTMLReport

	return cmd
}

func runGrade(cmd *cobra.Command, flags *gradeFlags) error {
	changed := cmd.Flags().Changed

	// Bad flags are usage errors. Bad environment or profile values still
	// produce a (degraded) report so CI always gets its artifacts.
	var faults []string

	cfg, err := loadProfile(flags.config)
	if err != nil {
		if changed("config") {
			return err
		}
		slog.Warn("Ignoring unreadable profile", "error", err)
		faults = append(faults, err.Error())
		cfg = projectconfig.New()
	}
	cfg.ApplyEnv(os.Getenv)
	applyGradeFlags(cmd, cfg, flags)

	if changed("variant") {
		if _, err := rubric.Preset(flags.variant); err != nil {
			return err
		}
	}

	mode, ok := models.ParseMode(strings.ToLower(strings.TrimSpace(cfg.Grading.Mode)))
	if !ok {
		err := fmt.Errorf("invalid mode %q: must be %s or %s", cfg.Grading.Mode, models.ModeScored, models.ModeFullCredit)
		if changed("mode") {
			return err
		}
		faults = append(faults, err.Error())
	}

	timeliness, fault, err := resolveTimeliness(cmd, cfg, flags)
	if err != nil {
		return err
	}
	if fault != nil {
		faults = append(faults, fault.Error())
	}

	runner := orchestration.NewRunner(orchestration.Config{
		HTMLFile:   cfg.Input.File,
		Repo:       cfg.Repo,
		Mode:       mode,
		Variant:    cfg.Grading.Variant,
		Params:     cfg.Grading.Params,
		Budgets:    cfg.Grading.Budgets,
		Timeliness: timeliness,
		Faults:     faults,
	})
	runner.OnProgress(func(e orchestration.ProgressEvent) {
		if e.EventType == orchestration.EventCategoryComplete {
			slog.Debug("Category scored", "category", e.Category.Key, "raw", e.Category.RawScore, "max", e.Category.RawMax, "scaled", e.Category.Scaled)
		}
	})

	report, err := runner.Run(cmd.Context())
	if err != nil {
		return err
	}

	paths := reporting.Paths{
		Markdown: cfg.OutputPath(cfg.Output.Markdown),
		JSON:     cfg.OutputPath(cfg.Output.JSON),
		CSV:      cfg.OutputPath(cfg.Output.CSV),
		JUnit:    cfg.OutputPath(cfg.Output.JUnit),
		HTML:     cfg.OutputPath(cfg.Output.HTML),
	}
	if cfg.Output.StepSummary == nil || *cfg.Output.StepSummary {
		paths.StepSummary = os.Getenv(reporting.EnvStepSummary)
	}

	// Failures are logged per artifact and never fail the run.
	_ = reporting.WriteArtifacts(report, paths)

	out := cmd.OutOrStdout()
	if !flags.quiet {
		printConsoleSummary(out, report, paths, isTerminal(cmd))
	}
	if flags.interpret {
		fmt.Fprintln(out)
		fmt.Fprint(out, reporting.FormatSummaryReport(report))
	}
	return nil
}

func loadProfile(path string) (*projectconfig.ProjectConfig, error) {
	if path != "" {
		return projectconfig.LoadFile(path)
	}
	return projectconfig.Load(".")
}

// applyGradeFlags overlays explicitly set flags onto cfg.
func applyGradeFlags(cmd *cobra.Command, cfg *projectconfig.ProjectConfig, flags *gradeFlags) {
	changed := cmd.Flags().Changed
	if changed("file") {
		cfg.Input.File = flags.file
	}
	if changed("repo") {
		cfg.Repo = flags.repo
	}
	if changed("mode") {
		cfg.Grading.Mode = flags.mode
	}
	if changed("variant") {
		cfg.Grading.Variant = flags.variant
	}
	if changed("out-dir") {
		cfg.Output.Dir = flags.outDir
	}
	if changed("junit") {
		cfg.Output.JUnit = flags.junit
	}
	if changed("html") {
		cfg.Output.HTML = flags.html
	}
}

// resolveTimeliness builds the timeliness inputs from flags, falling back to
// the environment. An unparsable --submission-points is returned as err; an
// unparsable SUBMISSION_POINTS is returned as fault and ignored.
func resolveTimeliness(cmd *cobra.Command, cfg *projectconfig.ProjectConfig, flags *gradeFlags) (t scoring.Timeliness, fault, err error) {
	flagOrEnv := func(name, value string, keys ...string) string {
		if cmd.Flags().Changed(name) {
			return value
		}
		for _, k := range keys {
			if v := os.Getenv(k); strings.TrimSpace(v) != "" {
				return v
			}
		}
		return ""
	}

	override, err := scoring.ParseOverride(flagOrEnv("submission-points", flags.submissionPoints, envSubmissionPoints))
	if err != nil {
		if cmd.Flags().Changed("submission-points") {
			return scoring.Timeliness{}, nil, err
		}
		fault, override = err, nil
	}

	budget := projectconfig.DefaultTimelinessBudget
	if cfg.Grading.TimelinessBudget != nil {
		budget = *cfg.Grading.TimelinessBudget
	}

	late := scoring.ParseLate(flagOrEnv("late", flags.late, envLate, envIsLate)) ||
		scoring.ParseLate(flagOrEnv("submission-status", flags.submissionStatus, envSubmissionStatus))

	return scoring.Timeliness{Budget: budget, Override: override, Late: late}, fault, nil
}

// isTerminal reports whether the command writes to an interactive terminal.
func isTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
