package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/remind/internal/model"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorPink   = lipgloss.AdaptiveColor{Dark: "#FF69B4", Light: "#DB0073"}
	ColorGreen  = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed    = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorBlue   = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGray   = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite  = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for the top bar with the greeting and stats.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorPink).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// SectionStyle is used for view section headings.
var SectionStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorPink).
	MarginBottom(1)

// ListItemStyle is the base style for items in a list.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedItemStyle highlights the currently focused list item.
var SelectedItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorPink).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorPink)

// CompletedItemStyle renders finished reminders struck through and dim.
var CompletedItemStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Strikethrough(true)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// BorderStyle provides a standard rounded border for panels.
var BorderStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// DimmedStyle fades out-of-month calendar cells and empty states.
var DimmedStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// OverdueStyle marks reminders whose due time has passed.
var OverdueStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorRed)

// TodayCellStyle highlights the current day in the calendar grid.
var TodayCellStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorPink)

// PriorityStyle returns a color-coded style for the given priority.
func PriorityStyle(priority string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch priority {
	case model.PriorityHigh:
		return base.Foreground(ColorRed)
	case model.PriorityMedium:
		return base.Foreground(ColorYellow)
	case model.PriorityLow:
		return base.Foreground(ColorBlue)
	default:
		return base.Foreground(ColorGray)
	}
}

// ReminderColorStyle returns a style carrying the reminder's own color,
// falling back to the given accent when the reminder has none.
func ReminderColorStyle(color, accent string) lipgloss.Style {
	if color == "" {
		color = accent
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}
