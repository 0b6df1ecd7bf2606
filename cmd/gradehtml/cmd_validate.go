package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/swe363/gradehtml/internal/models"
	"github.com/swe363/gradehtml/internal/projectconfig"
	"github.com/swe363/gradehtml/internal/rubric"
	"github.com/swe363/gradehtml/internal/validation"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [profile]",
		Short: "Check a grading profile for mistakes",
		Long: `Validate a grading profile against its schema and check that the mode,
variant, rubric params and budgets it names are usable.

Without an argument the nearest ` + projectconfig.FileName + ` is used.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			return runValidate(cmd, path)
		},
	}
}

func runValidate(cmd *cobra.Command, path string) error {
	if path == "" {
		cfg, err := projectconfig.Load(".")
		if err != nil {
			return err
		}
		if cfg.Path == "" {
			return fmt.Errorf("no %s found in this directory or its parents", projectconfig.FileName)
		}
		path = cfg.Path
	}

	problems, err := validation.ValidateProfileFile(path)
	if err != nil {
		return err
	}

	// Semantic checks only make sense once the shape is right.
	if len(problems) == 0 {
		problems = append(problems, checkProfile(path)...)
	}

	out := cmd.OutOrStdout()
	if len(problems) > 0 {
		fmt.Fprintf(out, "✗ %s\n", path)
		for _, p := range problems {
			fmt.Fprintf(out, "  - %s\n", p)
		}
		return fmt.Errorf("%s has %d problem(s)", path, len(problems))
	}

	fmt.Fprintf(out, "✓ %s is valid\n", path)
	return nil
}

// checkProfile loads the profile the way grade would and reports values the
// schema can't catch.
func checkProfile(path string) []string {
	cfg, err := projectconfig.LoadFile(path)
	if err != nil {
		return []string{err.Error()}
	}

	var problems []string
	if _, ok := models.ParseMode(strings.ToLower(strings.TrimSpace(cfg.Grading.Mode))); !ok {
		problems = append(problems, fmt.Sprintf("grading.mode: unknown mode %q", cfg.Grading.Mode))
	}
	if _, err := rubric.NewOptions(cfg.Grading.Variant, cfg.Grading.Params); err != nil {
		problems = append(problems, fmt.Sprintf("grading: %v", err))
	}
	return problems
}
