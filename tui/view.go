package tui

import tea "github.com/charmbracelet/bubbletea"

// KeyBinding is one shortcut shown in the status bar.
type KeyBinding struct {
	Key  string
	Desc string
}

// View is one tab of the application. Views are Bubble Tea sub-models:
// the App routes messages to them and composes their output with the
// surrounding chrome.
type View interface {
	// Name labels the tab.
	Name() string

	// Init is invoked when the view becomes active and may kick off
	// asynchronous work (loading sessions, for example).
	Init() tea.Cmd

	// Update handles one message.
	Update(msg tea.Msg) (View, tea.Cmd)

	// View renders the tab body. Header and status bar belong to the App.
	View() string

	// SetSize informs the view of its drawable area after a resize.
	SetSize(width, height int)

	// ShortHelp lists the view's shortcuts for the status bar.
	ShortHelp() []KeyBinding

	// WantsTextInput reports whether plain keystrokes are consumed by the
	// view (a focused input line) rather than treated as shortcuts.
	WantsTextInput() bool
}
