package agenda

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/remind/internal/model"
	"github.com/nhle/remind/internal/theme"
)

// priorityBadge is the short label shown next to each reminder.
func priorityBadge(priority string) string {
	switch priority {
	case model.PriorityHigh:
		return "HIGH"
	case model.PriorityLow:
		return "LOW"
	default:
		return "MED"
	}
}

// renderReminder draws a single reminder line:
//
//	● ○ 09:00  HIGH  Buy milk  [errands, groceries]
//
// The leading dot carries the reminder's color, the circle is the
// completion checkbox.
func renderReminder(r model.Reminder, selected bool, accent string, now time.Time) string {
	dot := theme.ReminderColorStyle(r.Color, accent).Render("●")

	checkbox := "○"
	if r.IsCompleted {
		checkbox = "✓"
	}

	timeStyle := theme.DimmedStyle
	if !r.IsCompleted && r.DueDateTime.Before(now) {
		timeStyle = theme.OverdueStyle
	}
	due := timeStyle.Render(r.DueDateTime.Format("Mon 02 Jan 15:04"))

	badge := theme.PriorityStyle(r.Priority).Render(priorityBadge(r.Priority))

	title := r.Title
	if r.IsCompleted {
		title = theme.CompletedItemStyle.Render(title)
	}

	parts := []string{dot, checkbox, due, badge, title}
	if len(r.Labels) > 0 {
		labels := theme.DimmedStyle.Render(
			fmt.Sprintf("[%s]", strings.Join(r.Labels, ", ")))
		parts = append(parts, labels)
	}

	line := strings.Join(parts, "  ")
	if selected {
		return theme.SelectedItemStyle.Render(line)
	}
	return theme.ListItemStyle.Render(line)
}

// renderNotes draws the notes line under a selected reminder.
func renderNotes(notes string, width int) string {
	if notes == "" {
		return ""
	}
	return lipgloss.NewStyle().
		PaddingLeft(5).
		Foreground(theme.ColorGray).
		Width(width).
		Render(notes)
}
