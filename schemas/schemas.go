// Package schemas embeds the JSON Schemas for grader profiles and structured
// grade reports.
package schemas

import _ "embed"

// ProfileSchemaJSON describes a .gradehtml.yaml profile.
//
//go:embed profile.schema.json
var ProfileSchemaJSON string

// ReportSchemaJSON describes grade_report.json.
//
//go:embed report.schema.json
var ReportSchemaJSON string
