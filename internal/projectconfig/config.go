// Package projectconfig provides the ProjectConfig struct and loader for
// .gradehtml.yaml grader profiles.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the profile file Load searches for.
const FileName = ".gradehtml.yaml"

// Default values for the grader profile. New() references them and no other
// code should duplicate them.
const (
	DefaultHTMLFile = "index.html"
	DefaultRepo     = "repo"

	DefaultOutDir       = "."
	DefaultMarkdownFile = "GRADE.md"
	DefaultJSONFile     = "grade_report.json"
	DefaultCSVFile      = "grade_report.csv"
	DefaultJUnitFile    = "grade_junit.xml"
	DefaultHTMLReport   = "GRADE.html"

	DefaultMode             = "scored"
	DefaultVariant          = "strict"
	DefaultTimelinessBudget = 25.0
)

// Environment variables consulted by ApplyEnv.
const (
	EnvHTMLFile = "HTML_FILE"
	EnvRepo     = "GITHUB_REPOSITORY"
	EnvMode     = "GRADE_MODE"
	EnvVariant  = "GRADE_VARIANT"
	EnvOutDir   = "GRADE_OUT_DIR"
)

// InputConfig locates the submission.
type InputConfig struct {
	File string `yaml:"file,omitempty"`
}

// OutputConfig names the artifacts. An empty JUnit or HTML name disables
// that artifact.
type OutputConfig struct {
	Dir         string `yaml:"dir,omitempty"`
	Markdown    string `yaml:"markdown,omitempty"`
	JSON        string `yaml:"json,omitempty"`
	CSV         string `yaml:"csv,omitempty"`
	JUnit       string `yaml:"junit,omitempty"`
	HTML        string `yaml:"html,omitempty"`
	StepSummary *bool  `yaml:"step_summary,omitempty"`
}

// GradingConfig selects the scoring policy and rubric strictness.
type GradingConfig struct {
	Mode    string `yaml:"mode,omitempty"`
	Variant string `yaml:"variant,omitempty"`
	// Params overlay the variant's rubric options, keyed by option name.
	Params map[string]any `yaml:"params,omitempty"`
	// Budgets override per-category budgets, keyed by category key.
	Budgets          map[string]float64 `yaml:"budgets,omitempty"`
	TimelinessBudget *float64           `yaml:"timeliness_budget,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .gradehtml.yaml.
type ProjectConfig struct {
	Repo    string        `yaml:"repo,omitempty"`
	Input   InputConfig   `yaml:"input,omitempty"`
	Output  OutputConfig  `yaml:"output,omitempty"`
	Grading GradingConfig `yaml:"grading,omitempty"`

	// Path is the profile file the values came from, empty for defaults.
	Path string `yaml:"-"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Repo: DefaultRepo,
		Input: InputConfig{
			File: DefaultHTMLFile,
		},
		Output: OutputConfig{
			Dir:         DefaultOutDir,
			Markdown:    DefaultMarkdownFile,
			JSON:        DefaultJSONFile,
			CSV:         DefaultCSVFile,
			StepSummary: boolPtr(true),
		},
		Grading: GradingConfig{
			Mode:             DefaultMode,
			Variant:          DefaultVariant,
			TimelinessBudget: floatPtr(DefaultTimelinessBudget),
		},
	}
}

// Load finds .gradehtml.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults.
// If no profile is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	path, data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil // no file found → return defaults
		}
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	}

	if err := apply(cfg, data); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// LoadFile reads an explicit profile path. Unlike Load, a missing file is an
// error.
func LoadFile(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}

	cfg := New()
	if err := apply(cfg, data); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

func apply(cfg *ProjectConfig, data []byte) error {
	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return err
	}

	// Merge file values onto defaults.
	mergeConfig(cfg, &fileCfg)
	return nil
}

// ApplyEnv overlays environment variables onto cfg. Blank values are ignored.
func (cfg *ProjectConfig) ApplyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&cfg.Input.File, EnvHTMLFile)
	set(&cfg.Repo, EnvRepo)
	set(&cfg.Grading.Mode, EnvMode)
	set(&cfg.Grading.Variant, EnvVariant)
	set(&cfg.Output.Dir, EnvOutDir)
}

// OutputPath joins name onto the output directory. Empty names stay empty.
func (cfg *ProjectConfig) OutputPath(name string) string {
	if name == "" {
		return ""
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(cfg.Output.Dir, name)
}

// findConfigFile walks up from dir looking for .gradehtml.yaml (max 10 levels).
// Returns os.ErrNotExist if no profile is found. Propagates real I/O
// errors (e.g. permission denied) instead of silently swallowing them.
func findConfigFile(dir string) (string, []byte, error) {
	// Convert to absolute path so filepath.Dir(".") walks correctly.
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, FileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return p, data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return "", nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	if src.Repo != "" {
		dst.Repo = src.Repo
	}

	// Input
	if src.Input.File != "" {
		dst.Input.File = src.Input.File
	}

	// Output
	if src.Output.Dir != "" {
		dst.Output.Dir = src.Output.Dir
	}
	if src.Output.Markdown != "" {
		dst.Output.Markdown = src.Output.Markdown
	}
	if src.Output.JSON != "" {
		dst.Output.JSON = src.Output.JSON
	}
	if src.Output.CSV != "" {
		dst.Output.CSV = src.Output.CSV
	}
	if src.Output.JUnit != "" {
		dst.Output.JUnit = src.Output.JUnit
	}
	if src.Output.HTML != "" {
		dst.Output.HTML = src.Output.HTML
	}
	if src.Output.StepSummary != nil {
		dst.Output.StepSummary = src.Output.StepSummary
	}

	// Grading
	if src.Grading.Mode != "" {
		dst.Grading.Mode = src.Grading.Mode
	}
	if src.Grading.Variant != "" {
		dst.Grading.Variant = src.Grading.Variant
	}
	if src.Grading.Params != nil {
		dst.Grading.Params = src.Grading.Params
	}
	if src.Grading.Budgets != nil {
		dst.Grading.Budgets = src.Grading.Budgets
	}
	if src.Grading.TimelinessBudget != nil {
		dst.Grading.TimelinessBudget = src.Grading.TimelinessBudget
	}
}

func boolPtr(b bool) *bool {
	return &b
}

func floatPtr(f float64) *float64 {
	return &f
}
