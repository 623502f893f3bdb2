// Package agenda renders the today and completed list views: cursor
// navigation over reminder lines grouped into sections. All list
// content is supplied by the root model from the projection engine;
// this component only displays and tracks the selection.
package agenda

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/remind/internal/keys"
	"github.com/nhle/remind/internal/model"
	"github.com/nhle/remind/internal/theme"
)

// Mode selects which agenda the model renders.
type Mode int

const (
	ModeToday Mode = iota
	ModeCompleted
)

// section is a titled run of reminders in the flattened list.
type section struct {
	title     string
	reminders []model.Reminder
}

// Model is the agenda list view component.
type Model struct {
	mode      Mode
	sections  []section
	cursor    int
	keys      *keys.KeyMap
	accent    string
	now       time.Time
	searching bool
	width     int
	height    int
}

// New creates an agenda model for the given mode.
func New(mode Mode, k *keys.KeyMap, accent string, width, height int) Model {
	return Model{
		mode:   mode,
		keys:   k,
		accent: accent,
		width:  width,
		height: height,
	}
}

// SetToday replaces the today-view content: the day's schedule plus the
// capped upcoming strip.
func (m *Model) SetToday(today, upcoming []model.Reminder, now time.Time) {
	m.now = now
	m.sections = []section{{title: "Today's Schedule", reminders: today}}
	if len(upcoming) > 0 {
		m.sections = append(m.sections, section{title: "Coming Up Soon", reminders: upcoming})
	}
	m.clampCursor()
}

// SetCompleted replaces the completed-view content.
func (m *Model) SetCompleted(completed []model.Reminder, now time.Time) {
	m.now = now
	m.sections = []section{{title: "Completed", reminders: completed}}
	m.clampCursor()
}

// SetSearching tells the view whether a search query is active, which
// changes the empty-state text.
func (m *Model) SetSearching(searching bool) {
	m.searching = searching
}

// Selected returns the reminder under the cursor.
func (m Model) Selected() (model.Reminder, bool) {
	i := 0
	for _, s := range m.sections {
		for _, r := range s.reminders {
			if i == m.cursor {
				return r, true
			}
			i++
		}
	}
	return model.Reminder{}, false
}

// Update handles cursor movement.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < m.itemCount()-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	}
	return m, nil
}

// View renders the agenda.
func (m Model) View() string {
	if m.itemCount() == 0 {
		return m.renderEmptyState()
	}

	var blocks []string
	i := 0
	for _, s := range m.sections {
		if len(s.reminders) == 0 && s.title != "Today's Schedule" {
			continue
		}

		blocks = append(blocks, theme.SectionStyle.Render(s.title))
		if len(s.reminders) == 0 {
			blocks = append(blocks, theme.DimmedStyle.PaddingLeft(2).Render(
				"Nothing scheduled for today yet."))
			continue
		}

		for _, r := range s.reminders {
			selected := i == m.cursor
			blocks = append(blocks, renderReminder(r, selected, m.accent, m.now))
			if selected && r.Notes != "" {
				blocks = append(blocks, renderNotes(r.Notes, m.width))
			}
			i++
		}
		blocks = append(blocks, "")
	}

	return lipgloss.NewStyle().
		Padding(1, 2).
		Width(m.width).
		Render(lipgloss.JoinVertical(lipgloss.Left, blocks...))
}

// renderEmptyState shows guidance text when the list has nothing in it.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.searching {
		return style.Render("No matching reminders found.")
	}

	switch m.mode {
	case ModeCompleted:
		return style.Render("No completed reminders yet. Go be productive!")
	default:
		return style.Render(fmt.Sprintf(
			"Nothing scheduled for today yet.\n\nPress %s to plan something fun!",
			m.keys.New.Help().Key,
		))
	}
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) itemCount() int {
	n := 0
	for _, s := range m.sections {
		n += len(s.reminders)
	}
	return n
}

func (m *Model) clampCursor() {
	if n := m.itemCount(); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
