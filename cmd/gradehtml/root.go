package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gradehtml",
		Short: "gradehtml - automated grader for the HTML Basics assignment",
		Long: `gradehtml grades a student's HTML submission against a fixed rubric.

It inspects the document's structure, text and attributes, scores three
rubric categories plus a timeliness component, and writes the result as
Markdown, JSON and CSV reports suitable for CI.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newGradeCommand())
	cmd.AddCommand(newValidateCommand())
	cmd.AddCommand(newRubricCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
