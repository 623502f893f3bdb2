package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nhle/remind/internal/model"
	"github.com/nhle/remind/internal/ui/confirm"
	"github.com/nhle/remind/internal/ui/editor"
)

// remindersLoadedMsg is sent after the one-shot startup read finishes.
type remindersLoadedMsg struct{}

// flashExpiredMsg clears the celebration flash from the status bar.
type flashExpiredMsg struct{}

// loadReminders performs the startup read. Until it completes the
// repository is empty, which is indistinguishable from having no
// reminders yet — there is no loading state to model.
func (m Model) loadReminders() tea.Cmd {
	repo := m.repo
	return func() tea.Msg {
		if err := repo.Load(context.Background()); err != nil {
			log.Error("loading reminders", "err", err)
		}
		return remindersLoadedMsg{}
	}
}

// handleEditorSaved applies a submitted editor form: create when no
// edit id is present, update otherwise.
func (m Model) handleEditorSaved(msg editor.SavedMsg) (tea.Model, tea.Cmd) {
	if msg.EditID == "" {
		m.repo.Create(msg.Form)
	} else if _, ok := m.repo.Update(msg.EditID, msg.Form); !ok {
		log.Warn("edited reminder vanished", "id", msg.EditID)
	}

	m.currentView = m.previousView
	m.refreshViews()
	return m, nil
}

// handleConfirmResult deletes the reminder if the user confirmed.
func (m Model) handleConfirmResult(msg confirm.ResultMsg) (tea.Model, tea.Cmd) {
	if msg.Confirmed {
		m.repo.Delete(msg.ID)
	}
	m.currentView = m.previousView
	m.refreshViews()
	return m, nil
}

// startEditSelected opens the editor pre-filled with the reminder under
// the cursor.
func (m Model) startEditSelected() (tea.Model, tea.Cmd) {
	r, ok := m.selectedReminder()
	if !ok {
		return m, nil
	}

	m.previousView = m.currentView
	m.currentView = ViewEditor
	return m, m.editorView.StartEdit(r)
}

// startDeleteSelected opens the delete confirmation for the reminder
// under the cursor.
func (m Model) startDeleteSelected() (tea.Model, tea.Cmd) {
	r, ok := m.selectedReminder()
	if !ok {
		return m, nil
	}

	m.previousView = m.currentView
	m.currentView = ViewConfirm
	return m, m.confirmView.Start(r.ID, r.Title)
}

// toggleSelected flips completion on the reminder under the cursor and
// celebrates a fresh completion with a status bar flash.
func (m Model) toggleSelected() (tea.Model, tea.Cmd) {
	r, ok := m.selectedReminder()
	if !ok {
		return m, nil
	}

	toggled, ok := m.repo.ToggleComplete(r.ID)
	if !ok {
		return m, nil
	}
	m.refreshViews()

	if toggled.IsCompleted {
		m.flash = "🎉 Done: " + toggled.Title
		return m, tea.Tick(flashDuration, func(time.Time) tea.Msg {
			return flashExpiredMsg{}
		})
	}
	return m, nil
}

// selectedReminder returns the reminder under the cursor of whichever
// agenda view is active. The calendar has no cursor.
func (m Model) selectedReminder() (model.Reminder, bool) {
	switch m.currentView {
	case ViewToday:
		return m.todayView.Selected()
	case ViewCompleted:
		return m.completedView.Selected()
	default:
		return model.Reminder{}, false
	}
}
