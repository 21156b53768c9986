// app.go is the top-level Bubble Tea model that orchestrates the views.
//
// Flow:
//  1. Start directly in the chat view (capabilities are wired from the
//     environment before the program starts).
//  2. F1/F2 switch between Chat and History.
//  3. Ctrl+N persists the current session and starts a fresh one.
//
// Key design decisions:
//   - The App owns the current Session handle and is its only writer
//     besides the in-flight pipeline; views receive it explicitly.
//   - Saving happens on new-chat and on quit, mirroring the
//     persist-once-per-session model.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fleetops/fleetchat/applog"
	"github.com/fleetops/fleetchat/chat"
	"github.com/fleetops/fleetchat/store"
)

const appVersion = "0.1.0"

// Tab indices.
const (
	TabChat = iota
	TabHistory
)

// App is the root Bubble Tea model.
type App struct {
	views       []View
	activeTab   int
	chatView    *ChatView
	historyView *HistoryView

	session      *chat.Session
	store        *store.Store
	providerName string

	// UI state
	width     int
	height    int
	showHelp  bool
	statusMsg string
}

// NewApp creates the application with a fresh session.
func NewApp(orch *chat.Orchestrator, st *store.Store, providerName string) *App {
	session := chat.NewSession(chat.ModeUser)
	chatView := NewChatView(orch, session)
	historyView := NewHistoryView(st)

	return &App{
		views:        []View{chatView, historyView},
		activeTab:    TabChat,
		chatView:     chatView,
		historyView:  historyView,
		session:      session,
		store:        st,
		providerName: providerName,
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return a.views[a.activeTab].Init()
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// header(1) + status(1) + border(2) = 4 lines of chrome
		contentH := a.height - 4
		contentW := a.width - 2
		for _, v := range a.views {
			v.SetSize(contentW, contentH)
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case StatusMsg:
		a.statusMsg = string(msg)
		return a, nil
	}

	// Forward other messages to every view: pipeline events belong to
	// the chat view even while the history tab is showing.
	var cmds []tea.Cmd
	for i, v := range a.views {
		updated, cmd := v.Update(msg)
		a.views[i] = updated
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return a, tea.Batch(cmds...)
}

// handleKey processes global shortcuts, then forwards to the active view.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		a.saveSession()
		return a, tea.Quit

	case "f1":
		return a.switchTab(TabChat)

	case "f2":
		return a.switchTab(TabHistory)

	case "ctrl+n":
		return a, a.startNewChat()
	}

	if !a.views[a.activeTab].WantsTextInput() && msg.String() == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}

	updated, cmd := a.views[a.activeTab].Update(msg)
	a.views[a.activeTab] = updated
	return a, cmd
}

func (a *App) switchTab(idx int) (tea.Model, tea.Cmd) {
	if idx >= 0 && idx < len(a.views) && idx != a.activeTab {
		a.activeTab = idx
		a.statusMsg = ""
		return a, a.views[a.activeTab].Init()
	}
	return a, nil
}

// startNewChat persists the current session (if it has any turns) and
// resets to a fresh one.
func (a *App) startNewChat() tea.Cmd {
	a.saveSession()

	a.session = chat.NewSession(a.chatView.Mode())
	a.chatView.StartNew(a.session)
	a.historyView.Invalidate()
	a.statusMsg = "✨ New chat started"

	if a.activeTab == TabHistory {
		return a.historyView.Init()
	}
	return nil
}

func (a *App) saveSession() {
	if err := a.store.Save(a.session); err != nil {
		// Persistence trouble is logged, never surfaced to the user.
		applog.Error("save session: %v", err)
		return
	}
	if !a.session.Empty() {
		applog.Event("session", "saved %q (%d turns)", a.session.Title, len(a.session.Turns))
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if a.width == 0 {
		return "loading..."
	}

	header := a.renderHeader()

	var inner string
	if a.showHelp {
		inner = a.renderHelp()
	} else {
		inner = a.views[a.activeTab].View()
	}

	frameHeight := a.height - 4
	if frameHeight < 0 {
		frameHeight = 0
	}
	frame := StyleBorder.
		Width(a.width - 2).
		Height(frameHeight).
		Render(inner)

	statusBar := a.renderStatusBar()

	return header + "\n" + frame + "\n" + statusBar
}

// renderHeader draws a simple text bar: logo + version + mode + provider.
func (a *App) renderHeader() string {
	logo := StyleBold.Render("🚛 fleetchat")
	version := StyleDimmed.Render(" v" + appVersion)

	mode := StyleSuccess.Render("  ⚡ " + a.chatView.Mode().String())
	provider := StyleDimmed.Render("  AI: " + a.providerName)

	content := logo + version + mode + provider

	right := StyleDimmed.Render(fmt.Sprintf("%d×%d", a.width, a.height))
	gap := a.width - lipgloss.Width(content) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return lipgloss.NewStyle().
		Width(a.width).
		Render(content + strings.Repeat(" ", gap) + right)
}

func (a *App) renderStatusBar() string {
	var content string
	if a.statusMsg != "" {
		content = a.statusMsg
	} else {
		var parts []string
		for _, h := range a.getHelpItems() {
			parts = append(parts,
				StyleHelpKey.Render(h.Key)+" "+StyleHelpDesc.Render(h.Desc))
		}
		content = strings.Join(parts, "  │  ")
	}

	return StyleStatusBar.Width(a.width).Render(content)
}

func (a *App) getHelpItems() []KeyBinding {
	global := []KeyBinding{
		{Key: "F1", Desc: "chat"},
		{Key: "F2", Desc: "history"},
		{Key: "Ctrl+C", Desc: "quit"},
	}
	return append(a.views[a.activeTab].ShortHelp(), global...)
}

func (a *App) renderHelp() string {
	help := []string{
		StyleTitle.Render("⌨ fleetchat Keyboard Shortcuts"),
		"",
		StyleHelpKey.Render("F1 / F2") + "     Switch between Chat and History",
		StyleHelpKey.Render("Ctrl+T") + "      Toggle User / Fleet Manager mode",
		StyleHelpKey.Render("Ctrl+N") + "      Save current chat and start a new one",
		StyleHelpKey.Render("PgUp/PgDn") + "   Scroll the transcript",
		StyleHelpKey.Render("Ctrl+C") + "      Quit (saves the current chat)",
		"",
		StyleDimmed.Render("Press ? to close"),
	}

	return lipgloss.NewStyle().
		Width(a.width - 4).
		Padding(1, 2).
		Render(strings.Join(help, "\n"))
}
