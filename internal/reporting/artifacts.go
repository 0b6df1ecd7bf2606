package reporting

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/swe363/gradehtml/internal/models"
	"github.com/swe363/gradehtml/internal/validation"
)

// Paths lists where each artifact goes. Empty JUnit, HTML and StepSummary
// paths skip that artifact.
type Paths struct {
	Markdown    string
	JSON        string
	CSV         string
	JUnit       string
	HTML        string
	StepSummary string
}

// WriteArtifacts renders r every configured way and writes the results,
// overwriting existing files. A failing artifact does not stop the others;
// all failures are returned joined.
func WriteArtifacts(r *models.GradeReport, paths Paths) error {
	md := RenderMarkdown(r)

	var errs []error
	write := func(path string, render func() ([]byte, error)) {
		if path == "" {
			return
		}
		data, err := render()
		if err == nil {
			err = writeFile(path, data)
		}
		if err != nil {
			slog.Warn("Failed to write artifact", "path", path, "error", err)
			errs = append(errs, err)
			return
		}
		slog.Debug("Wrote artifact", "path", path, "bytes", len(data))
	}

	write(paths.Markdown, func() ([]byte, error) { return []byte(md), nil })
	write(paths.JSON, func() ([]byte, error) {
		data, err := MarshalJSON(r)
		if err != nil {
			return nil, err
		}
		if problems := validation.ValidateReportBytes(data); len(problems) > 0 {
			slog.Warn("Structured report does not match its schema", "problems", strings.Join(problems, "; "))
		}
		return data, nil
	})
	write(paths.CSV, func() ([]byte, error) {
		var buf bytes.Buffer
		if err := WriteCSV(&buf, r); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	})
	write(paths.JUnit, func() ([]byte, error) { return MarshalJUnitXML(r) })
	write(paths.HTML, func() ([]byte, error) { return RenderHTML(r) })

	if err := AppendStepSummary(paths.StepSummary, md); err != nil {
		slog.Warn("Failed to append step summary", "path", paths.StepSummary, "error", err)
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
