package reporting

import (
	"fmt"
	"os"
)

// EnvStepSummary names the file GitHub Actions renders on the run page.
const EnvStepSummary = "GITHUB_STEP_SUMMARY"

// AppendStepSummary appends the narrative report to the step summary file at
// path. An empty path means the run is not under Actions and is not an error.
func AppendStepSummary(path, md string) error {
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening step summary: %w", err)
	}
	defer f.Close() //nolint:errcheck

	if _, err := f.WriteString(md + "\n"); err != nil {
		return fmt.Errorf("writing step summary: %w", err)
	}
	return nil
}
