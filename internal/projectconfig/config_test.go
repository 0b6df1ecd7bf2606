package projectconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNew_ReturnsAllDefaults(t *testing.T) {
	cfg := New()

	assertEqual(t, "Repo", "repo", cfg.Repo)
	assertEqual(t, "Path", "", cfg.Path)

	// Input
	assertEqual(t, "Input.File", "index.html", cfg.Input.File)

	// Output
	assertEqual(t, "Output.Dir", ".", cfg.Output.Dir)
	assertEqual(t, "Output.Markdown", "GRADE.md", cfg.Output.Markdown)
	assertEqual(t, "Output.JSON", "grade_report.json", cfg.Output.JSON)
	assertEqual(t, "Output.CSV", "grade_report.csv", cfg.Output.CSV)
	assertEqual(t, "Output.JUnit", "", cfg.Output.JUnit)
	assertEqual(t, "Output.HTML", "", cfg.Output.HTML)
	assertBoolPtr(t, "Output.StepSummary", true, cfg.Output.StepSummary)

	// Grading
	assertEqual(t, "Grading.Mode", "scored", cfg.Grading.Mode)
	assertEqual(t, "Grading.Variant", "strict", cfg.Grading.Variant)
	if cfg.Grading.Params != nil {
		t.Error("Grading.Params should be nil by default")
	}
	if cfg.Grading.Budgets != nil {
		t.Error("Grading.Budgets should be nil by default")
	}
	assertFloatPtr(t, "Grading.TimelinessBudget", 25, cfg.Grading.TimelinessBudget)
}

func TestLoad_FullConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, `
repo: swe363/hw1-alice
input:
  file: site/index.html
output:
  dir: out
  markdown: REPORT.md
  json: report.json
  csv: report.csv
  junit: junit.xml
  html: report.html
  step_summary: false
grading:
  mode: full-credit
  variant: lenient
  params:
    min_list_items: 5
    table_headers: [name, grade]
  budgets:
    todos: 30
    quality: 20
  timeliness_budget: 10
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	assertEqual(t, "Path", filepath.Join(dir, FileName), cfg.Path)
	assertEqual(t, "Repo", "swe363/hw1-alice", cfg.Repo)
	assertEqual(t, "Input.File", "site/index.html", cfg.Input.File)
	assertEqual(t, "Output.Dir", "out", cfg.Output.Dir)
	assertEqual(t, "Output.Markdown", "REPORT.md", cfg.Output.Markdown)
	assertEqual(t, "Output.JSON", "report.json", cfg.Output.JSON)
	assertEqual(t, "Output.CSV", "report.csv", cfg.Output.CSV)
	assertEqual(t, "Output.JUnit", "junit.xml", cfg.Output.JUnit)
	assertEqual(t, "Output.HTML", "report.html", cfg.Output.HTML)
	assertBoolPtr(t, "Output.StepSummary", false, cfg.Output.StepSummary)
	assertEqual(t, "Grading.Mode", "full-credit", cfg.Grading.Mode)
	assertEqual(t, "Grading.Variant", "lenient", cfg.Grading.Variant)
	assertFloatPtr(t, "Grading.TimelinessBudget", 10, cfg.Grading.TimelinessBudget)

	if got := cfg.Grading.Params["min_list_items"]; got != 5 {
		t.Errorf("Grading.Params[min_list_items] = %v, want 5", got)
	}
	if headers, ok := cfg.Grading.Params["table_headers"].([]any); !ok || len(headers) != 2 {
		t.Errorf("Grading.Params[table_headers] = %v, want two entries", cfg.Grading.Params["table_headers"])
	}
	if cfg.Grading.Budgets["todos"] != 30 || cfg.Grading.Budgets["quality"] != 20 {
		t.Errorf("Grading.Budgets = %v", cfg.Grading.Budgets)
	}
	if _, ok := cfg.Grading.Budgets["correctness"]; ok {
		t.Error("Grading.Budgets should not invent a correctness entry")
	}
}

func TestLoad_PartialConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, `
grading:
  variant: lenient
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// Overridden
	assertEqual(t, "Grading.Variant", "lenient", cfg.Grading.Variant)

	// Defaults preserved
	assertEqual(t, "Grading.Mode", "scored", cfg.Grading.Mode)
	assertEqual(t, "Input.File", "index.html", cfg.Input.File)
	assertEqual(t, "Output.Markdown", "GRADE.md", cfg.Output.Markdown)
	assertBoolPtr(t, "Output.StepSummary", true, cfg.Output.StepSummary)
	assertFloatPtr(t, "Grading.TimelinessBudget", 25, cfg.Grading.TimelinessBudget)
}

func TestLoad_ZeroTimelinessBudget(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, `
grading:
  timeliness_budget: 0
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	assertFloatPtr(t, "Grading.TimelinessBudget", 0, cfg.Grading.TimelinessBudget)
}

func TestLoad_MissingFile_ReturnsDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// Should be identical to New()
	defaults := New()
	assertEqual(t, "Input.File", defaults.Input.File, cfg.Input.File)
	assertEqual(t, "Grading.Variant", defaults.Grading.Variant, cfg.Grading.Variant)
	assertEqual(t, "Output.Dir", defaults.Output.Dir, cfg.Output.Dir)
	assertEqual(t, "Path", "", cfg.Path)
}

func TestLoad_InvalidYAML_ReturnsError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, `
grading:
  variant: [not valid yaml
    this is broken
`)

	_, err := Load(dir)
	if err == nil {
		t.Fatal("Load() should return error for invalid YAML")
	}
}

func TestLoad_WalksUpDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, FileName, `
input:
  file: found-it.html
`)

	child := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(child, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(child)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	assertEqual(t, "Input.File", "found-it.html", cfg.Input.File)
	// Other defaults still populated
	assertEqual(t, "Grading.Variant", "strict", cfg.Grading.Variant)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "custom.yaml", `
repo: explicit
`)

	cfg, err := LoadFile(filepath.Join(dir, "custom.yaml"))
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	assertEqual(t, "Repo", "explicit", cfg.Repo)
	assertEqual(t, "Input.File", "index.html", cfg.Input.File)

	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatal("LoadFile() should fail for a missing file")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"HTML_FILE":         "submission/page.html",
		"GITHUB_REPOSITORY": "swe363/hw1-bob",
		"GRADE_MODE":        "full-credit",
		"GRADE_VARIANT":     "  ",
		"GRADE_OUT_DIR":     "artifacts",
	}

	cfg := New()
	cfg.Grading.Variant = "lenient"
	cfg.ApplyEnv(func(k string) string { return env[k] })

	assertEqual(t, "Input.File", "submission/page.html", cfg.Input.File)
	assertEqual(t, "Repo", "swe363/hw1-bob", cfg.Repo)
	assertEqual(t, "Grading.Mode", "full-credit", cfg.Grading.Mode)
	// Blank values don't clobber the profile.
	assertEqual(t, "Grading.Variant", "lenient", cfg.Grading.Variant)
	assertEqual(t, "Output.Dir", "artifacts", cfg.Output.Dir)
}

func TestOutputPath(t *testing.T) {
	cfg := New()
	cfg.Output.Dir = "out"

	assertEqual(t, "relative", filepath.Join("out", "GRADE.md"), cfg.OutputPath("GRADE.md"))
	assertEqual(t, "empty", "", cfg.OutputPath(""))

	abs := filepath.Join(t.TempDir(), "x.json")
	assertEqual(t, "absolute", abs, cfg.OutputPath(abs))
}

// --- test helpers ---

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func assertEqual(t *testing.T, field, want, got string) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %q, want %q", field, got, want)
	}
}

func assertBoolPtr(t *testing.T, field string, want bool, got *bool) {
	t.Helper()
	if got == nil {
		t.Errorf("%s is nil, want *%v", field, want)
		return
	}
	if *got != want {
		t.Errorf("%s = %v, want %v", field, *got, want)
	}
}

func assertFloatPtr(t *testing.T, field string, want float64, got *float64) {
	t.Helper()
	if got == nil {
		t.Errorf("%s is nil, want *%v", field, want)
		return
	}
	if *got != want {
		t.Errorf("%s = %v, want %v", field, *got, want)
	}
}
