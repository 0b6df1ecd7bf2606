package reporting

import (
	"encoding/xml"
	"fmt"
	"time"

	"github.com/swe363/gradehtml/internal/models"
)

// JUnit XML schema types

// JUnitTestSuites is the top-level container.
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Name       string           `xml:"name,attr"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Errors     int              `xml:"errors,attr"`
	Time       float64          `xml:"time,attr"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

// JUnitTestSuite maps to one rubric category.
type JUnitTestSuite struct {
	XMLName    xml.Name        `xml:"testsuite"`
	Name       string          `xml:"name,attr"`
	Tests      int             `xml:"tests,attr"`
	Failures   int             `xml:"failures,attr"`
	Errors     int             `xml:"errors,attr"`
	Skipped    int             `xml:"skipped,attr"`
	Time       float64         `xml:"time,attr"`
	Timestamp  string          `xml:"timestamp,attr"`
	Properties []JUnitProperty `xml:"properties>property,omitempty"`
	TestCases  []JUnitTestCase `xml:"testcase"`
}

// JUnitTestCase maps to one rubric check.
type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Time      float64       `xml:"time,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
	Error     *JUnitError   `xml:"error,omitempty"`
	Skipped   *JUnitSkipped `xml:"skipped,omitempty"`
}

// JUnitFailure represents a failed check.
type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// JUnitError represents a run that could not be graded.
type JUnitError struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// JUnitSkipped marks a test as skipped.
type JUnitSkipped struct {
	Message string `xml:"message,attr,omitempty"`
}

// JUnitProperty is a key-value metadata entry.
type JUnitProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// ConvertToJUnit converts a GradeReport to JUnit XML. Each category becomes a
// suite and each check a testcase; zero-weight markers that fail are reported
// as skipped since they never cost points. Degraded runs become a single
// erroring testcase.
func ConvertToJUnit(r *models.GradeReport) *JUnitTestSuites {
	durationSec := r.Duration.Seconds()
	timestamp := r.Timestamp.UTC().Format(time.RFC3339)

	props := []JUnitProperty{
		{Name: "run_id", Value: r.RunID},
		{Name: "mode", Value: string(r.Mode)},
		{Name: "variant", Value: r.Variant},
		{Name: "html_file", Value: r.HTMLFile},
		{Name: "final_score", Value: fmt.Sprintf("%.2f/%s", r.FinalScore, num(r.FinalMax))},
	}

	out := &JUnitTestSuites{
		Name: r.Repo,
		Time: durationSec,
	}

	if r.Degraded() {
		suite := JUnitTestSuite{
			Name:       "grade",
			Tests:      1,
			Errors:     1,
			Time:       durationSec,
			Timestamp:  timestamp,
			Properties: props,
			TestCases: []JUnitTestCase{{
				Name:      r.HTMLFile,
				Classname: "gradehtml",
				Error: &JUnitError{
					Message: r.Error,
					Type:    string(r.Status),
				},
			}},
		}
		out.Tests, out.Errors = 1, 1
		out.TestSuites = []JUnitTestSuite{suite}
		return out
	}

	for _, c := range r.Categories {
		suite := JUnitTestSuite{
			Name:       c.Name,
			Timestamp:  timestamp,
			Properties: append(props, JUnitProperty{Name: "scaled", Value: fmt.Sprintf("%.2f/%s", c.Scaled, num(c.Budget))}),
		}
		for _, ch := range c.Checks {
			tc := JUnitTestCase{
				Name:      ch.ID,
				Classname: "gradehtml." + c.Key,
			}
			switch {
			case ch.Passed:
			case ch.PointsMax == 0:
				tc.Skipped = &JUnitSkipped{Message: ch.Description}
				suite.Skipped++
			default:
				tc.Failure = &JUnitFailure{
					Message: ch.Description,
					Type:    "CheckFailure",
					Body:    fmt.Sprintf("[FAIL] %s: 0 / %s points", ch.Description, num(ch.PointsMax)),
				}
				suite.Failures++
			}
			suite.TestCases = append(suite.TestCases, tc)
		}
		suite.Tests = len(suite.TestCases)

		out.Tests += suite.Tests
		out.Failures += suite.Failures
		out.TestSuites = append(out.TestSuites, suite)
	}

	return out
}

// MarshalJUnitXML renders the report as an indented JUnit XML document.
func MarshalJUnitXML(r *models.GradeReport) ([]byte, error) {
	data, err := xml.MarshalIndent(ConvertToJUnit(r), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JUnit XML: %w", err)
	}

	return append([]byte(xml.Header), data...), nil
}
