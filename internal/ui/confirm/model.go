// Package confirm implements the delete confirmation dialog. Deletion
// is permanent, so the repository call is only made after the user says
// yes here.
package confirm

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// ResultMsg carries the user's decision about the reminder with the
// given id.
type ResultMsg struct {
	ID        string
	Confirmed bool
}

// confirmBindings keeps the huh value pointer stable across model copies.
type confirmBindings struct {
	confirmed bool
}

// Model is the Bubble Tea model for the delete confirmation dialog.
type Model struct {
	form   *huh.Form
	cb     *confirmBindings
	id     string
	width  int
	height int
}

// New creates a confirmation dialog model.
func New(width, height int) Model {
	return Model{
		cb:     &confirmBindings{},
		width:  width,
		height: height,
	}
}

// Start initializes the dialog for the given reminder.
func (m *Model) Start(id, title string) tea.Cmd {
	m.id = id
	m.cb.confirmed = false
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %q?", title)).
				Description("This will remove the reminder permanently.").
				Affirmative("Delete").
				Negative("Keep").
				Value(&m.cb.confirmed),
		),
	).WithWidth(60)
	return m.form.Init()
}

// Update handles messages for the dialog.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		id, confirmed := m.id, m.cb.confirmed
		return m, func() tea.Msg { return ResultMsg{ID: id, Confirmed: confirmed} }
	}
	if m.form.State == huh.StateAborted {
		id := m.id
		return m, func() tea.Msg { return ResultMsg{ID: id, Confirmed: false} }
	}

	return m, cmd
}

// View renders the dialog centered in the content area.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}
	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(m.form.View())
}

// SetSize updates the dialog dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
