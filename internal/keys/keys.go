package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down key.Binding
	Up   key.Binding

	// View switching
	ViewToday     key.Binding
	ViewCalendar  key.Binding
	ViewCompleted key.Binding

	// Actions
	New    key.Binding
	Edit   key.Binding
	Delete key.Binding
	Toggle key.Binding

	// Calendar navigation
	PrevMonth key.Binding
	NextMonth key.Binding
	JumpToday key.Binding

	// Search
	Search key.Binding

	// Help toggle
	Help key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		ViewToday: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "today"),
		),
		ViewCalendar: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "calendar"),
		),
		ViewCompleted: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "completed"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new reminder"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle done"),
		),
		PrevMonth: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "prev month"),
		),
		NextMonth: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "next month"),
		),
		JumpToday: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "this month"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
