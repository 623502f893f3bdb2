package app

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/remind/internal/keys"
	"github.com/nhle/remind/internal/model"
	"github.com/nhle/remind/internal/notify"
	"github.com/nhle/remind/internal/projection"
	"github.com/nhle/remind/internal/reminder"
	"github.com/nhle/remind/internal/theme"
	"github.com/nhle/remind/internal/ui"
	"github.com/nhle/remind/internal/ui/agenda"
	"github.com/nhle/remind/internal/ui/calendar"
	"github.com/nhle/remind/internal/ui/confirm"
	"github.com/nhle/remind/internal/ui/editor"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewToday ViewState = iota
	ViewCalendar
	ViewCompleted
	ViewEditor
	ViewConfirm
)

// flashDuration is how long the celebration message stays in the
// status bar.
const flashDuration = 3 * time.Second

// Model is the root Bubble Tea model that manages view routing, search,
// and the due-time notifier lifecycle.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	repo         *reminder.Repository
	cfg          *model.AppConfig
	keys         *keys.KeyMap

	todayView     agenda.Model
	completedView agenda.Model
	calendarView  calendar.Model
	editorView    editor.Model
	confirmView   confirm.Model

	poller   *notify.Poller
	delivery notify.Delivery

	searchMode  bool
	searchInput textinput.Model
	searchQuery string

	flash    string
	showHelp bool
	now      func() time.Time
	ready    bool
}

// New creates the root application model. The clock is injectable for
// tests; nil means time.Now.
func New(
	repo *reminder.Repository,
	cfg *model.AppConfig,
	delivery notify.Delivery,
	now func() time.Time,
) Model {
	if now == nil {
		now = time.Now
	}

	k := keys.DefaultKeyMap()
	accent := cfg.Display.AccentColor

	si := textinput.New()
	si.Placeholder = "search reminders..."
	si.Prompt = "/ "
	si.Width = 76

	p := notify.New(
		repo,
		delivery,
		time.Duration(cfg.Notify.PollIntervalSec)*time.Second,
		time.Duration(cfg.Notify.WindowSec)*time.Second,
		now,
	)

	return Model{
		currentView:   ViewToday,
		repo:          repo,
		cfg:           cfg,
		keys:          k,
		todayView:     agenda.New(agenda.ModeToday, k, accent, 80, 24),
		completedView: agenda.New(agenda.ModeCompleted, k, accent, 80, 24),
		calendarView:  calendar.New(k, accent, now, 80, 24),
		editorView:    editor.New(now, 80, 24),
		confirmView:   confirm.New(80, 24),
		poller:        p,
		delivery:      delivery,
		searchInput:   si,
		now:           now,
	}
}

// Init loads the persisted collection and starts the due-time notifier
// if notifications are enabled and permitted.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadReminders()}

	if m.cfg.Notify.Enabled {
		if m.delivery.PermissionState() == notify.PermissionDefault {
			m.delivery.RequestPermission()
		}
		if cmd := m.poller.Start(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	return tea.Batch(cmds...)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w := m.layout.ContentWidth()
		h := m.layout.ContentHeight()
		m.todayView.SetSize(w, h)
		m.completedView.SetSize(w, h)
		m.calendarView.SetSize(w, h)
		m.editorView.SetSize(w, h)
		m.confirmView.SetSize(w, h)
		m.searchInput.Width = w - 4
		return m.updateActiveView(msg)

	case remindersLoadedMsg:
		m.refreshViews()
		return m, nil

	case notify.DueMsg:
		// Reminders were just marked notified; re-project so any
		// state the views cache stays accurate, then keep listening.
		m.refreshViews()
		return m, m.poller.WaitForNextDue()

	case calendar.MonthChangedMsg:
		m.calendarView.SetDays(projection.MonthGrid(
			m.filtered(), msg.Anchor, m.now()))
		return m, nil

	case editor.SavedMsg:
		return m.handleEditorSaved(msg)

	case editor.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	case confirm.ResultMsg:
		return m.handleConfirmResult(msg)

	case flashExpiredMsg:
		m.flash = ""
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}

	return m.updateActiveView(msg)
}

// handleKeys routes key input: search first, then modal views, then the
// global bindings, then the active view.
func (m Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searchMode {
		return m.handleSearchKeys(msg)
	}

	// Modal views own the keyboard while open.
	if m.currentView == ViewEditor || m.currentView == ViewConfirm {
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		return m.updateActiveView(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.ViewToday):
		m.currentView = ViewToday
		return m, nil

	case key.Matches(msg, m.keys.ViewCalendar):
		m.currentView = ViewCalendar
		m.refreshViews()
		return m, nil

	case key.Matches(msg, m.keys.ViewCompleted):
		m.currentView = ViewCompleted
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.Back):
		if m.searchQuery != "" {
			m.searchQuery = ""
			m.searchInput.Reset()
			m.refreshViews()
		}
		return m, nil

	case key.Matches(msg, m.keys.New):
		m.previousView = m.currentView
		m.currentView = ViewEditor
		return m, m.editorView.StartCreate()

	case key.Matches(msg, m.keys.Edit):
		return m.startEditSelected()

	case key.Matches(msg, m.keys.Delete):
		return m.startDeleteSelected()

	case key.Matches(msg, m.keys.Toggle):
		return m.toggleSelected()
	}

	return m.updateActiveView(msg)
}

// handleSearchKeys processes key input while the search bar is focused.
// The query filters live as the user types.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		m.searchInput.Blur()
		return m, nil

	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		m.searchInput.Blur()
		m.searchQuery = ""
		m.refreshViews()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.searchQuery = m.searchInput.Value()
	m.refreshViews()
	return m, cmd
}

// updateActiveView forwards a message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentView {
	case ViewToday:
		m.todayView, cmd = m.todayView.Update(msg)
	case ViewCalendar:
		m.calendarView, cmd = m.calendarView.Update(msg)
	case ViewCompleted:
		m.completedView, cmd = m.completedView.Update(msg)
	case ViewEditor:
		m.editorView, cmd = m.editorView.Update(msg)
	case ViewConfirm:
		m.confirmView, cmd = m.confirmView.Update(msg)
	}
	return m, cmd
}

// quit tears down the notifier before exiting so no background work is
// orphaned.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.poller.Stop()
	return m, tea.Quit
}

// View renders the full application frame.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	completed, total := m.repo.Stats()
	header := m.layout.RenderHeader(
		m.greeting(),
		fmt.Sprintf("✦ %d / %d done", completed, total),
	)

	var content string
	switch m.currentView {
	case ViewCalendar:
		content = m.calendarView.View()
	case ViewCompleted:
		content = m.completedView.View()
	case ViewEditor:
		content = m.editorView.View()
	case ViewConfirm:
		content = m.confirmView.View()
	default:
		content = m.todayView.View()
	}

	if m.searchMode || m.searchQuery != "" {
		searchBar := lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.searchInput.View())
		content = lipgloss.JoinVertical(lipgloss.Left, searchBar, content)
	}

	content = lipgloss.NewStyle().
		Width(m.layout.ContentWidth()).
		Height(m.layout.ContentHeight()).
		Render(content)

	return m.layout.RenderWithFrame(header, content, m.layout.RenderStatusBar(m.statusHints()))
}

// greeting returns the time-of-day greeting, personalized when a name
// is configured.
func (m Model) greeting() string {
	var g string
	switch hour := m.now().Hour(); {
	case hour < 12:
		g = "Good Morning"
	case hour < 18:
		g = "Good Afternoon"
	default:
		g = "Good Evening"
	}
	if name := m.cfg.Display.UserName; name != "" {
		return fmt.Sprintf("%s, %s!", g, name)
	}
	return g + "!"
}

// statusHints builds the status bar text: a celebration flash when one
// is active, otherwise key hints for the current view.
func (m Model) statusHints() string {
	if m.flash != "" {
		return m.flash
	}

	if m.showHelp {
		return "1 today · 2 calendar · 3 completed · n new · e edit · d delete · space toggle · / search · q quit"
	}

	switch m.currentView {
	case ViewCalendar:
		return "h/l month · t this month · n new · ? help"
	case ViewEditor, ViewConfirm:
		return "esc cancel"
	default:
		return "j/k move · space toggle · n new · ? help"
	}
}

// filtered returns the search-filtered snapshot of the collection. The
// filter applies before every projection.
func (m Model) filtered() []model.Reminder {
	return projection.Filter(m.repo.All(), m.searchQuery)
}

// refreshViews re-projects the collection into every view.
func (m *Model) refreshViews() {
	now := m.now()
	filtered := m.filtered()

	m.todayView.SetToday(
		projection.Today(filtered, now),
		projection.Upcoming(filtered, now),
		now,
	)
	m.todayView.SetSearching(m.searchQuery != "")

	m.completedView.SetCompleted(projection.Completed(filtered), now)
	m.completedView.SetSearching(m.searchQuery != "")

	m.calendarView.SetDays(projection.MonthGrid(filtered, m.calendarView.Anchor(), now))
}
