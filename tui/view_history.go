// view_history.go — past sessions view.
//
// Loads persisted sessions asynchronously. A nil store degrades to an
// empty list, so a broken session database never blocks the chat.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fleetops/fleetchat/store"
)

type HistoryView struct {
	store    *store.Store
	viewport *Viewport
	records  []store.SessionRecord
	loaded   bool
	loading  bool
	err      error

	width  int
	height int
}

func NewHistoryView(st *store.Store) *HistoryView {
	return &HistoryView{
		store:    st,
		viewport: NewViewport(80, 20),
	}
}

func (v *HistoryView) Name() string { return "History" }

func (v *HistoryView) WantsTextInput() bool { return false }

// Invalidate forces a reload the next time the view is shown.
func (v *HistoryView) Invalidate() {
	v.loaded = false
}

func (v *HistoryView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.viewport.SetSize(width-2, height-2)
}

func (v *HistoryView) ShortHelp() []KeyBinding {
	return []KeyBinding{
		{Key: "r", Desc: "reload"},
		{Key: "↑/↓", Desc: "scroll"},
	}
}

func (v *HistoryView) Init() tea.Cmd {
	if v.loaded || v.loading {
		v.refresh()
		return nil
	}
	v.loading = true
	v.refresh()
	return v.load()
}

func (v *HistoryView) load() tea.Cmd {
	st := v.store
	return func() tea.Msg {
		records, err := st.ListAll()
		return SessionsMsg{Records: records, Err: err}
	}
}

func (v *HistoryView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			v.loaded = false
			return v, v.Init()
		case "up", "k":
			v.viewport.ScrollUp(1)
		case "down", "j":
			v.viewport.ScrollDown(1)
		case "pgup":
			v.viewport.PageUp()
		case "pgdown":
			v.viewport.PageDown()
		}

	case SessionsMsg:
		v.loading = false
		v.loaded = true
		v.records = msg.Records
		v.err = msg.Err
		v.refresh()
	}

	return v, nil
}

func (v *HistoryView) refresh() {
	var lines []string
	lines = append(lines, StyleTitle.Render("📚 Chat History"))
	lines = append(lines, "")

	switch {
	case v.loading:
		lines = append(lines, StyleDimmed.Render("Loading..."))
	case v.err != nil:
		// Store trouble degrades to an empty listing; the error only
		// shows up here, never in the chat itself.
		lines = append(lines, StyleDimmed.Render("Chat history is unavailable."))
	case len(v.records) == 0:
		lines = append(lines, StyleDimmed.Render("No previous chats found."))
	default:
		for _, rec := range v.records {
			lines = append(lines, StyleBold.Render("• "+rec.Title))
			lines = append(lines, StyleDimmed.Render(fmt.Sprintf("  %s — %s, %d turns",
				rec.Mode, rec.Timestamp.Format("2006-01-02 15:04"), len(rec.Turns))))
			lines = append(lines, "")
		}
	}

	v.viewport.SetContentLines(lines)
}

func (v *HistoryView) View() string {
	return v.viewport.Render()
}
