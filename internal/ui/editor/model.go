package editor

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/remind/internal/model"
	"github.com/nhle/remind/internal/theme"
)

// SavedMsg is dispatched when the form is submitted. EditID is empty
// for a newly created reminder.
type SavedMsg struct {
	EditID string
	Form   model.FormData
}

// CancelMsg is dispatched when the user cancels the form.
type CancelMsg struct{}

// hexColorRe matches a 3- or 6-digit hex color like #F0A or #FF69B4.
var hexColorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title    string
	notes    string
	dueDate  string
	dueTime  string
	priority string
	labels   string
	color    string
}

// Model is the Bubble Tea model for the reminder create/edit form.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	editMode bool
	editID   string
	now      func() time.Time
	width    int
	height   int
}

// New creates a new reminder form model.
func New(now func() time.Time, width, height int) Model {
	if now == nil {
		now = time.Now
	}
	return Model{
		fb:     &formBindings{priority: model.PriorityMedium},
		now:    now,
		width:  width,
		height: height,
	}
}

// StartCreate initializes the form for creating a new reminder. The due
// date defaults to today at the next full hour.
func (m *Model) StartCreate() tea.Cmd {
	m.editMode = false
	m.editID = ""

	due := m.now().Truncate(time.Hour).Add(time.Hour)
	m.fb.title = ""
	m.fb.notes = ""
	m.fb.dueDate = due.Format("2006-01-02")
	m.fb.dueTime = due.Format("15:04")
	m.fb.priority = model.PriorityMedium
	m.fb.labels = ""
	m.fb.color = ""

	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form for editing an existing reminder.
func (m *Model) StartEdit(r model.Reminder) tea.Cmd {
	m.editMode = true
	m.editID = r.ID

	m.fb.title = r.Title
	m.fb.notes = r.Notes
	m.fb.dueDate = r.DueDateTime.Format("2006-01-02")
	m.fb.dueTime = r.DueDateTime.Format("15:04")
	m.fb.priority = r.Priority
	m.fb.labels = model.JoinLabels(r.Labels)
	m.fb.color = r.Color

	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the reminder form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the reminder form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Reminder"
	if m.editMode {
		titleText = "Edit Reminder"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("What should I remind you about?").
				Value(&m.fb.title).
				Validate(validateRequired("Title")),
			huh.NewText().
				Title("Notes").
				Placeholder("Optional details...").
				Value(&m.fb.notes),
			huh.NewInput().
				Title("Due Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.fb.dueDate).
				Validate(validateDate),
			huh.NewInput().
				Title("Due Time").
				Placeholder("HH:MM").
				Value(&m.fb.dueTime).
				Validate(validateTime),
			huh.NewSelect[string]().
				Title("Priority").
				Options(
					huh.NewOption("High", model.PriorityHigh),
					huh.NewOption("Medium", model.PriorityMedium),
					huh.NewOption("Low", model.PriorityLow),
				).
				Value(&m.fb.priority),
			huh.NewInput().
				Title("Labels").
				Placeholder("comma, separated, labels").
				Value(&m.fb.labels),
			huh.NewInput().
				Title("Color").
				Placeholder("#FF69B4 (optional)").
				Value(&m.fb.color).
				Validate(validateOptionalHexColor),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	due, err := time.ParseInLocation(
		"2006-01-02 15:04",
		strings.TrimSpace(m.fb.dueDate)+" "+strings.TrimSpace(m.fb.dueTime),
		m.now().Location(),
	)
	if err != nil {
		// Both fields are validated; fall back to now just in case.
		due = m.now()
	}

	form := model.FormData{
		Title:       strings.TrimSpace(m.fb.title),
		Notes:       strings.TrimSpace(m.fb.notes),
		DueDateTime: due,
		Priority:    m.fb.priority,
		Labels:      m.fb.labels,
		Color:       strings.TrimSpace(m.fb.color),
	}

	editID := ""
	if m.editMode {
		editID = m.editID
	}
	return func() tea.Msg { return SavedMsg{EditID: editID, Form: form} }
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateDate(s string) error {
	if _, err := time.Parse("2006-01-02", strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return nil
}

func validateTime(s string) error {
	if _, err := time.Parse("15:04", strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("invalid time format, use HH:MM")
	}
	return nil
}

func validateOptionalHexColor(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if !hexColorRe.MatchString(s) {
		return fmt.Errorf("invalid color, use a hex code like #FF69B4")
	}
	return nil
}
