package orchestration

import "github.com/swe363/gradehtml/internal/models"

// ProgressListener receives progress updates
type ProgressListener func(event ProgressEvent)

// EventType represents the type of progress event
type EventType string

// EventType constants
const (
	EventGradeStart       EventType = "grade_start"
	EventCategoryComplete EventType = "category_complete"
	EventGradeComplete    EventType = "grade_complete"
)

// ProgressEvent represents a progress update
type ProgressEvent struct {
	EventType EventType
	RunID     string
	File      string
	// Category is set for EventCategoryComplete.
	Category *models.CategoryResult
	// Report is set for EventGradeComplete.
	Report *models.GradeReport
}

// OnProgress registers a progress listener
func (r *Runner) OnProgress(listener ProgressListener) {
	r.listeners = append(r.listeners, listener)
}

func (r *Runner) notify(event ProgressEvent) {
	for _, l := range r.listeners {
		l(event)
	}
}
