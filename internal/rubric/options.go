package rubric

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

const (
	PresetStrict  = "strict"
	PresetLenient = "lenient"
)

// Options are the strictness knobs of the rubric. The grader variants differ
// only along these axes: whether text must match fixed phrases, and how many
// items a list or table needs.
type Options struct {
	// Preset is the name the options were derived from.
	Preset string `mapstructure:"-"`

	// TextSensitive requires headings, paragraphs and table headers to contain
	// the configured phrases. When false only non-empty text is required.
	TextSensitive bool `mapstructure:"text_sensitive"`

	MinListItems   int `mapstructure:"min_list_items"`
	MinNestedItems int `mapstructure:"min_nested_items"`
	MinHeaderCells int `mapstructure:"min_header_cells"`
	MinBodyRows    int `mapstructure:"min_body_rows"`

	CourseCode        string   `mapstructure:"course_code"`
	Subtitle          string   `mapstructure:"subtitle"`
	DescriptionTerm   string   `mapstructure:"description_term"`
	DescriptionTopics []string `mapstructure:"description_topics"`
	TopicsHeading     string   `mapstructure:"topics_heading"`
	WebTechHeading    string   `mapstructure:"webtech_heading"`
	FrontendLabel     string   `mapstructure:"frontend_label"`
	BackendLabel      string   `mapstructure:"backend_label"`
	TableHeaders      []string `mapstructure:"table_headers"`
	ImageSource       string   `mapstructure:"image_source"`
}

var presets = map[string]Options{
	PresetStrict: {
		Preset:         PresetStrict,
		TextSensitive:  true,
		MinListItems:   4,
		MinNestedItems: 3,
		MinHeaderCells: 4,
		MinBodyRows:    2,
	},
	PresetLenient: {
		Preset:         PresetLenient,
		TextSensitive:  false,
		MinListItems:   3,
		MinNestedItems: 3,
		MinHeaderCells: 4,
		MinBodyRows:    2,
	},
}

// Presets lists the known preset names in sorted order.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Preset returns the named options with the assignment's default phrases.
func Preset(name string) (Options, error) {
	p, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Options{}, fmt.Errorf("unknown rubric preset %q: must be one of %s", name, strings.Join(Presets(), ", "))
	}
	withDefaultPhrases(&p)
	return p, nil
}

// NewOptions starts from a preset and overlays params, which use the
// mapstructure tag names of Options (e.g. "min_list_items"). Unknown keys are
// rejected so a misspelled threshold doesn't silently fall back.
func NewOptions(preset string, params map[string]any) (Options, error) {
	opts, err := Preset(preset)
	if err != nil {
		return Options{}, err
	}
	if len(params) == 0 {
		return opts, nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &opts,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		ZeroFields:       true,
	})
	if err != nil {
		return Options{}, err
	}
	if err := dec.Decode(params); err != nil {
		return Options{}, fmt.Errorf("decoding rubric params: %w", err)
	}
	if err := opts.validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

func (o Options) validate() error {
	for name, v := range map[string]int{
		"min_list_items":   o.MinListItems,
		"min_nested_items": o.MinNestedItems,
		"min_header_cells": o.MinHeaderCells,
		"min_body_rows":    o.MinBodyRows,
	} {
		if v < 0 {
			return fmt.Errorf("%s must not be negative, got %d", name, v)
		}
	}
	return nil
}

func withDefaultPhrases(o *Options) {
	o.CourseCode = "swe 363"
	o.Subtitle = "introduction to html"
	o.DescriptionTerm = "course"
	o.DescriptionTopics = []string{"html", "css", "js"}
	o.TopicsHeading = "course topics"
	o.WebTechHeading = "web technologies"
	o.FrontendLabel = "frontend"
	o.BackendLabel = "backend"
	o.TableHeaders = []string{"student name", "assignment 1", "assignment 2", "final grade"}
	o.ImageSource = "kfupm"
}
