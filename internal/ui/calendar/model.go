// Package calendar renders the month grid view: full Sunday-start weeks
// with each day cell listing the incomplete reminders due on it.
package calendar

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/remind/internal/keys"
	"github.com/nhle/remind/internal/projection"
	"github.com/nhle/remind/internal/theme"
)

// MonthChangedMsg is sent when the user navigates to a different month,
// so the root model can re-project the grid.
type MonthChangedMsg struct {
	Anchor time.Time
}

// weekdayHeader labels the grid columns, Sunday first.
var weekdayHeader = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// cellRows is how many reminder lines fit in a day cell.
const cellRows = 3

// Model is the calendar month view component.
type Model struct {
	anchor time.Time
	days   []projection.Day
	keys   *keys.KeyMap
	accent string
	now    func() time.Time
	width  int
	height int
}

// New creates a calendar model anchored at the month containing now.
func New(k *keys.KeyMap, accent string, now func() time.Time, width, height int) Model {
	if now == nil {
		now = time.Now
	}
	return Model{
		anchor: projection.CurrentMonth(now()),
		keys:   k,
		accent: accent,
		now:    now,
		width:  width,
		height: height,
	}
}

// Anchor returns the currently displayed month.
func (m Model) Anchor() time.Time {
	return m.anchor
}

// SetDays replaces the projected grid content.
func (m *Model) SetDays(days []projection.Day) {
	m.days = days
}

// Update handles month navigation.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.PrevMonth):
		m.anchor = projection.PrevMonth(m.anchor)
	case key.Matches(keyMsg, m.keys.NextMonth):
		m.anchor = projection.NextMonth(m.anchor)
	case key.Matches(keyMsg, m.keys.JumpToday):
		m.anchor = projection.CurrentMonth(m.now())
	default:
		return m, nil
	}

	anchor := m.anchor
	return m, func() tea.Msg {
		return MonthChangedMsg{Anchor: anchor}
	}
}

// View renders the month grid.
func (m Model) View() string {
	title := theme.SectionStyle.Render(m.anchor.Format("January 2006"))
	hint := theme.HelpStyle.Render("h/l change month · t this month")

	header := lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", hint)

	cellWidth := m.width/7 - 1
	if cellWidth < 8 {
		cellWidth = 8
	}

	var headerCells []string
	for _, d := range weekdayHeader {
		headerCells = append(headerCells, lipgloss.NewStyle().
			Width(cellWidth).
			Align(lipgloss.Center).
			Bold(true).
			Foreground(theme.ColorGray).
			Render(d))
	}
	weekdays := lipgloss.JoinHorizontal(lipgloss.Top, headerCells...)

	var weeks []string
	for i := 0; i+7 <= len(m.days); i += 7 {
		var cells []string
		for _, day := range m.days[i : i+7] {
			cells = append(cells, m.renderCell(day, cellWidth))
		}
		weeks = append(weeks, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	grid := lipgloss.JoinVertical(lipgloss.Left, weeks...)

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, header, weekdays, grid))
}

// renderCell draws a single day: the day number plus up to cellRows
// reminder titles in the reminder's color.
func (m Model) renderCell(day projection.Day, width int) string {
	numStyle := lipgloss.NewStyle().Bold(true)
	switch {
	case day.IsToday:
		numStyle = theme.TodayCellStyle
	case !day.InMonth:
		numStyle = theme.DimmedStyle
	}
	lines := []string{numStyle.Render(day.Date.Format("2"))}

	for i, r := range day.Reminders {
		if i == cellRows {
			lines[len(lines)-1] = theme.DimmedStyle.Render("…")
			break
		}
		title := r.Title
		if runes := []rune(title); len(runes) > width-2 {
			title = string(runes[:width-2]) + "…"
		}
		lines = append(lines, theme.ReminderColorStyle(r.Color, m.accent).Render(title))
	}
	for len(lines) < cellRows+1 {
		lines = append(lines, "")
	}

	return theme.BorderStyle.
		Width(width).
		Render(strings.Join(lines, "\n"))
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
