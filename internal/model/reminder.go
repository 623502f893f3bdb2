package model

import (
	"strings"
	"time"
)

// Reminder priority levels.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Reminder is a single schedulable item with a due time, priority,
// labels, and completion state. It is the only persisted entity.
type Reminder struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Notes       string    `json:"notes,omitempty"`
	DueDateTime time.Time `json:"dueDateTime"`
	IsCompleted bool      `json:"isCompleted"`
	Priority    string    `json:"priority"`

	// Labels keeps the order the user typed them in; duplicates are
	// allowed, empty entries are not.
	Labels []string `json:"labels"`

	// Color is a hex code like "#FF69B4". Empty means the configured
	// accent color is used for display.
	Color string `json:"color,omitempty"`

	CreatedAt time.Time `json:"createdAt"`

	// WasNotified flips to true once the due notification has fired.
	// It resets to false on every edit so a rescheduled reminder is
	// re-armed.
	WasNotified bool `json:"wasNotified,omitempty"`
}

// FormData holds the raw editor fields for creating or editing a
// reminder. Labels is the single comma-separated string from the form.
type FormData struct {
	Title       string
	Notes       string
	DueDateTime time.Time
	Priority    string
	Labels      string
	Color       string
}

// ParseLabels splits a comma-separated label string into individual
// labels, trimming whitespace and dropping empty entries. Order and
// duplicates are preserved.
func ParseLabels(raw string) []string {
	var labels []string
	for _, part := range strings.Split(raw, ",") {
		if l := strings.TrimSpace(part); l != "" {
			labels = append(labels, l)
		}
	}
	return labels
}

// JoinLabels is the inverse of ParseLabels for pre-filling the edit form.
func JoinLabels(labels []string) string {
	return strings.Join(labels, ", ")
}
