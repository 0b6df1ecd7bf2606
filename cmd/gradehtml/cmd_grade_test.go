package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swe363/gradehtml/internal/projectconfig"
	"github.com/swe363/gradehtml/internal/reporting"
)

// clearGradeEnv blanks every variable grade reads so the host CI environment
// can't leak into a test.
func clearGradeEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		projectconfig.EnvHTMLFile,
		projectconfig.EnvRepo,
		projectconfig.EnvMode,
		projectconfig.EnvVariant,
		projectconfig.EnvOutDir,
		envSubmissionPoints,
		envLate,
		envIsLate,
		envSubmissionStatus,
		reporting.EnvStepSummary,
	} {
		t.Setenv(k, "")
	}
}

func completeFixture(t *testing.T) []byte {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join("..", "..", "internal", "rubric", "testdata", "complete.html"))
	require.NoError(t, err)
	return raw
}

// gradeIn runs "grade" with args inside a fresh working directory.
func gradeIn(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	t.Chdir(dir)

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"grade"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func readJSONReport(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestGradeCommand_CompleteSubmission(t *testing.T) {
	clearGradeEnv(t)
	html := completeFixture(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), html, 0644))

	out, err := gradeIn(t, dir)
	require.NoError(t, err)

	assert.Contains(t, out, "Automated Grade: 2.1 HTML Basics")
	assert.Contains(t, out, "Automatic score:  75.00 / 75")
	assert.Contains(t, out, "Final score:      100.00 / 100")
	assert.Contains(t, out, "PASS")

	report := readJSONReport(t, filepath.Join(dir, "grade_report.json"))
	assert.Equal(t, "graded", report["status"])
	assert.Equal(t, true, report["file_found"])
	assert.Equal(t, 100.0, report["final_score_out_of_100"])

	assert.Equal(t, "repo,auto_score_75,submission_25,final_100\nrepo,75.00,25,100.00\n",
		readFile(t, filepath.Join(dir, "grade_report.csv")))
	assert.Contains(t, readFile(t, filepath.Join(dir, "GRADE.md")), "**Final Score (out of 100):** **100.00 / 100**")

	assert.NoFileExists(t, filepath.Join(dir, projectconfig.DefaultJUnitFile))
	assert.NoFileExists(t, filepath.Join(dir, projectconfig.DefaultHTMLReport))
}

func TestGradeCommand_MissingFileStillSucceeds(t *testing.T) {
	clearGradeEnv(t)
	dir := t.TempDir()

	out, err := gradeIn(t, dir)
	require.NoError(t, err)
	assert.Contains(t, out, "FAIL Could not find index.html")

	report := readJSONReport(t, filepath.Join(dir, "grade_report.json"))
	assert.Equal(t, "missing", report["status"])
	assert.Equal(t, false, report["file_found"])
	assert.Equal(t, "Missing index.html", report["error"])
	assert.Equal(t, 0.0, report["auto_score_out_of_75"])
	assert.Equal(t, 25.0, report["final_score_out_of_100"])

	md := readFile(t, filepath.Join(dir, "GRADE.md"))
	assert.Contains(t, md, "Could not find `index.html`")
	assert.FileExists(t, filepath.Join(dir, "grade_report.csv"))
}

func TestGradeCommand_FullCreditIgnoresSubmission(t *testing.T) {
	clearGradeEnv(t)
	dir := t.TempDir()

	_, err := gradeIn(t, dir, "--mode", "full-credit", "--late")
	require.NoError(t, err)

	report := readJSONReport(t, filepath.Join(dir, "grade_report.json"))
	assert.Equal(t, "full-credit", report["status"])
	assert.Equal(t, "full-credit", report["mode"])
	assert.Equal(t, 100.0, report["final_score_out_of_100"])
	assert.Equal(t, 25.0, report["submission_points_out_of_25"])
}

func TestGradeCommand_EnvFallbacks(t *testing.T) {
	clearGradeEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "page.html"), completeFixture(t), 0644))

	t.Setenv(projectconfig.EnvHTMLFile, "page.html")
	t.Setenv(projectconfig.EnvRepo, "org/student-repo")
	t.Setenv(envSubmissionStatus, "late")

	_, err := gradeIn(t, dir, "--quiet")
	require.NoError(t, err)

	report := readJSONReport(t, filepath.Join(dir, "grade_report.json"))
	assert.Equal(t, "page.html", report["html_file"])
	assert.Equal(t, true, report["is_late_submission"])
	assert.Equal(t, 12.5, report["submission_points_out_of_25"])
	assert.Equal(t, 87.5, report["final_score_out_of_100"])

	csv := readFile(t, filepath.Join(dir, "grade_report.csv"))
	assert.True(t, strings.HasSuffix(csv, "org/student-repo,75.00,12.5,87.50\n"), csv)
}

func TestGradeCommand_FlagsOverrideEnv(t *testing.T) {
	clearGradeEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), completeFixture(t), 0644))

	t.Setenv(projectconfig.EnvHTMLFile, "nowhere.html")
	t.Setenv(envSubmissionPoints, "3")
	t.Setenv(envLate, "true")

	_, err := gradeIn(t, dir, "--quiet", "--file", "index.html", "--submission-points", "20", "--late=false")
	require.NoError(t, err)

	report := readJSONReport(t, filepath.Join(dir, "grade_report.json"))
	assert.Equal(t, "graded", report["status"])
	assert.Equal(t, false, report["is_late_submission"])
	assert.Equal(t, 20.0, report["submission_points_out_of_25"])
	assert.Equal(t, 95.0, report["final_score_out_of_100"])
}

func TestGradeCommand_ProfileAndOutDir(t *testing.T) {
	clearGradeEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), completeFixture(t), 0644))
	profile := `repo: course/section-2
output:
  dir: reports
grading:
  variant: lenient
  timeliness_budget: 10
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, projectconfig.FileName), []byte(profile), 0644))

	_, err := gradeIn(t, dir, "--quiet")
	require.NoError(t, err)

	report := readJSONReport(t, filepath.Join(dir, "reports", "grade_report.json"))
	assert.Equal(t, "lenient", report["variant"])
	assert.Equal(t, 10.0, report["submission_points_out_of_10"])
	assert.Equal(t, 85.0, report["final_score_out_of_85"])
	assert.NoFileExists(t, filepath.Join(dir, "grade_report.json"))
}

func TestGradeCommand_OptionalReports(t *testing.T) {
	clearGradeEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), completeFixture(t), 0644))

	out, err := gradeIn(t, dir, "--junit", "--html=preview.html")
	require.NoError(t, err)

	junit := readFile(t, filepath.Join(dir, projectconfig.DefaultJUnitFile))
	assert.Contains(t, junit, "<testsuites")
	assert.Contains(t, readFile(t, filepath.Join(dir, "preview.html")), "<table>")
	assert.Contains(t, out, "Reports:")
	assert.Contains(t, out, "preview.html")
}

func TestGradeCommand_AppendsStepSummary(t *testing.T) {
	clearGradeEnv(t)
	dir := t.TempDir()
	summary := filepath.Join(dir, "summary.md")
	require.NoError(t, os.WriteFile(summary, []byte("existing\n"), 0644))
	t.Setenv(reporting.EnvStepSummary, summary)

	_, err := gradeIn(t, dir, "--quiet")
	require.NoError(t, err)

	got := readFile(t, summary)
	assert.True(t, strings.HasPrefix(got, "existing\n# Automated Grade"), got)
}

func TestGradeCommand_InvalidInputs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "unknown mode flag",
			args:    []string{"--mode", "generous"},
			wantErr: `invalid mode "generous"`,
		},
		{
			name:    "unknown variant",
			args:    []string{"--variant", "relaxed"},
			wantErr: "unknown rubric preset",
		},
		{
			name:    "missing explicit profile",
			args:    []string{"--config", "nowhere.yaml"},
			wantErr: "nowhere.yaml",
		},
		{
			name:    "non-numeric submission points",
			args:    []string{"--submission-points", "lots"},
			wantErr: "lots",
		},
		{
			name:    "unexpected argument",
			args:    []string{"index.html"},
			wantErr: "unknown command",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearGradeEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			dir := t.TempDir()

			_, err := gradeIn(t, dir, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.NoFileExists(t, filepath.Join(dir, "grade_report.json"))
		})
	}
}

func TestGradeCommand_BadSettingsStillWriteReports(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		profile string
		wantErr string
	}{
		{
			name:    "non-numeric submission points env",
			env:     map[string]string{envSubmissionPoints: "abc"},
			wantErr: `invalid submission points "abc"`,
		},
		{
			name:    "unknown variant env",
			env:     map[string]string{projectconfig.EnvVariant: "relaxed"},
			wantErr: `unknown rubric preset "relaxed"`,
		},
		{
			name:    "unknown mode env",
			env:     map[string]string{projectconfig.EnvMode: "generous"},
			wantErr: `invalid mode "generous"`,
		},
		{
			name:    "unknown profile param",
			profile: "grading:\n  params:\n    min_items: 2\n",
			wantErr: "decoding rubric params",
		},
		{
			name:    "malformed profile",
			profile: "grading: [\n",
			wantErr: "parsing",
		},
		{
			name:    "unknown profile budget",
			profile: "grading:\n  budgets:\n    style: 10\n",
			wantErr: `unknown category "style"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearGradeEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), completeFixture(t), 0644))
			if tt.profile != "" {
				require.NoError(t, os.WriteFile(filepath.Join(dir, projectconfig.FileName), []byte(tt.profile), 0644))
			}

			out, err := gradeIn(t, dir)
			require.NoError(t, err)
			assert.Contains(t, out, tt.wantErr)

			for _, name := range []string{"GRADE.md", "grade_report.json", "grade_report.csv"} {
				require.FileExists(t, filepath.Join(dir, name))
			}

			report := readJSONReport(t, filepath.Join(dir, "grade_report.json"))
			assert.Equal(t, "error", report["status"])
			assert.Contains(t, report["error"], tt.wantErr)
			assert.Equal(t, 0.0, report["auto_score_out_of_75"])
			assert.Equal(t, 25.0, report["submission_points_out_of_25"])
			assert.Equal(t, 25.0, report["final_score_out_of_100"])
			assert.Equal(t, "repo,auto_score_75,submission_25,final_100\nrepo,0.00,25,25.00\n",
				readFile(t, filepath.Join(dir, "grade_report.csv")))
		})
	}
}

func TestGradeCommand_Interpret(t *testing.T) {
	clearGradeEnv(t)
	dir := t.TempDir()

	out, err := gradeIn(t, dir, "--quiet", "--interpret")
	require.NoError(t, err)
	assert.Contains(t, out, "=== Interpretation ===")
	assert.Contains(t, out, "index.html was not found")
	assert.NotContains(t, out, "Automatic score:")
}
