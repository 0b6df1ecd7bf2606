package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/swe363/gradehtml/internal/projectconfig"
	"github.com/swe363/gradehtml/internal/rubric"
)

func newRubricCommand() *cobra.Command {
	var (
		variant  string
		config   string
		patterns []string
	)

	cmd := &cobra.Command{
		Use:   "rubric",
		Short: "List the rubric checks and their weights",
		Long: `Print every category of the rubric with its point budget, followed by
each check's identifier, weight and description.

The variant, rubric params and budgets come from the profile and
GRADE_VARIANT the same way grade resolves them, so the listing matches what
grade would score. --variant overrides the variant.

Checks with weight 0 are informational and never change the score.
--check narrows the listing to checks whose ID or description matches a glob.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadProfile(config)
			if err != nil {
				return err
			}
			cfg.ApplyEnv(os.Getenv)
			if cmd.Flags().Changed("variant") {
				cfg.Grading.Variant = variant
			}

			opts, err := rubric.NewOptions(cfg.Grading.Variant, cfg.Grading.Params)
			if err != nil {
				return err
			}
			if err := rubric.ValidateBudgets(cfg.Grading.Budgets); err != nil {
				return err
			}
			defs := rubric.WithBudgets(rubric.Definitions(opts), cfg.Grading.Budgets)

			defs, err = rubric.FilterChecks(defs, patterns)
			if err != nil {
				return err
			}
			if len(defs) == 0 {
				return fmt.Errorf("no checks match %s", strings.Join(patterns, ", "))
			}
			printRubric(cmd, defs, opts.Preset)
			return nil
		},
	}

	cmd.Flags().StringVar(&variant, "variant", projectconfig.DefaultVariant, "Rubric variant: "+strings.Join(rubric.Presets(), " | "))
	cmd.Flags().StringVar(&config, "config", "", "Path to a profile instead of searching for "+projectconfig.FileName)
	cmd.Flags().StringSliceVar(&patterns, "check", nil, "Only list checks matching these glob patterns (repeatable)")
	return cmd
}

func printRubric(cmd *cobra.Command, defs []rubric.CategoryDef, variant string) {
	w := cmd.OutOrStdout()

	idWidth := len("Check")
	for _, d := range defs {
		for _, c := range d.Checks {
			if len(c.ID) > idWidth {
				idWidth = len(c.ID)
			}
		}
	}

	fmt.Fprintf(w, "Rubric (%s)\n", variant)
	for _, d := range defs {
		fmt.Fprintf(w, "\n%s: %s points, %d checks\n", d.Name, formatPoints(d.Budget), len(d.Checks))
		fmt.Fprintf(w, "  %s  %s  %s\n", padRight("Check", idWidth), padRight("Weight", 6), "Description")
		for _, c := range d.Checks {
			fmt.Fprintf(w, "  %s  %s  %s\n", padRight(c.ID, idWidth), padRight(formatPoints(c.Weight), 6), c.Description)
		}
	}
}
