// view_chat.go — the conversation view.
//
// Messages are handed to the chat orchestrator in a goroutine; pipeline
// events stream back over a channel so the UI stays responsive and can
// show progress text before the final response arrives.
package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fleetops/fleetchat/chat"
)

// chatEntry is one rendered transcript element.
type chatEntry struct {
	role string // "you", "assistant", "progress"
	text string
}

type ChatView struct {
	orch    *chat.Orchestrator
	session *chat.Session
	mode    chat.Mode

	viewport *Viewport
	entries  []chatEntry
	input    string
	loading  bool
	pending  bool // last entry is a progress placeholder
	events   chan chat.Event

	width  int
	height int
}

func NewChatView(orch *chat.Orchestrator, session *chat.Session) *ChatView {
	return &ChatView{
		orch:     orch,
		session:  session,
		mode:     chat.ModeUser,
		viewport: NewViewport(80, 20),
	}
}

func (v *ChatView) Name() string { return "Chat" }

func (v *ChatView) WantsTextInput() bool { return true }

// Mode returns the currently selected chat mode.
func (v *ChatView) Mode() chat.Mode { return v.mode }

// StartNew swaps in a fresh session and clears the transcript.
func (v *ChatView) StartNew(session *chat.Session) {
	v.session = session
	v.entries = nil
	v.input = ""
	v.pending = false
	v.refresh()
}

func (v *ChatView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.viewport.SetSize(width-2, height-4)
}

func (v *ChatView) ShortHelp() []KeyBinding {
	return []KeyBinding{
		{Key: "Enter", Desc: "send"},
		{Key: "Ctrl+T", Desc: "switch mode"},
		{Key: "Ctrl+N", Desc: "new chat"},
		{Key: "PgUp/PgDn", Desc: "scroll"},
	}
}

func (v *ChatView) Init() tea.Cmd {
	v.refresh()
	return nil
}

func (v *ChatView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v.handleKey(msg)

	case PipelineEventMsg:
		return v.handleEvent(msg.Event)
	}

	return v, nil
}

func (v *ChatView) handleKey(msg tea.KeyMsg) (View, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return v, v.send()
	case "ctrl+t":
		if !v.loading {
			if v.mode == chat.ModeUser {
				v.mode = chat.ModeFleetManager
			} else {
				v.mode = chat.ModeUser
			}
			v.refresh()
		}
	case "ctrl+k":
		v.viewport.ScrollUp(1)
	case "ctrl+j":
		v.viewport.ScrollDown(1)
	case "pgup":
		v.viewport.PageUp()
	case "pgdown":
		v.viewport.PageDown()
	case "backspace":
		if len(v.input) > 0 {
			v.input = v.input[:len(v.input)-1]
		}
	default:
		if msg.Type == tea.KeyRunes {
			v.input += string(msg.Runes)
		} else if msg.Type == tea.KeySpace {
			v.input += " "
		}
	}
	return v, nil
}

// send hands the message to the orchestrator in a goroutine and starts
// listening for pipeline events. One message is in flight at a time.
func (v *ChatView) send() tea.Cmd {
	text := strings.TrimSpace(v.input)
	if text == "" || v.loading {
		return nil
	}

	v.input = ""
	v.loading = true
	v.entries = append(v.entries, chatEntry{role: "you", text: text})
	v.refresh()
	v.viewport.End()

	events := make(chan chat.Event, 8)
	v.events = events

	orch, sess, mode := v.orch, v.session, v.mode
	go func() {
		defer close(events)
		orch.Respond(context.Background(), sess, mode, text, func(ev chat.Event) {
			events <- ev
		})
	}()

	return waitForEvent(events)
}

// waitForEvent blocks until the pipeline emits its next event.
func waitForEvent(events <-chan chat.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return PipelineEventMsg{Event: ev}
	}
}

// handleEvent folds a pipeline event into the transcript. Progress text
// overwrites the previous progress line; the final response replaces it.
func (v *ChatView) handleEvent(ev chat.Event) (View, tea.Cmd) {
	entry := chatEntry{role: "progress", text: ev.Text}
	if ev.Final {
		entry.role = "assistant"
	}

	if v.pending {
		v.entries[len(v.entries)-1] = entry
	} else {
		v.entries = append(v.entries, entry)
	}
	v.pending = !ev.Final

	v.refresh()
	v.viewport.End()

	if ev.Final {
		v.loading = false
		v.events = nil
		return v, nil
	}
	return v, waitForEvent(v.events)
}

func (v *ChatView) refresh() {
	v.viewport.SetContentLines(v.renderTranscript())
}

func (v *ChatView) renderTranscript() []string {
	var lines []string

	lines = append(lines, StyleTitle.Render("🚛 Fleet Maintenance Assistant")+" "+
		StyleDimmed.Render("("+v.mode.String()+")"))
	lines = append(lines, "")

	if len(v.entries) == 0 {
		lines = append(lines,
			"Ask about vehicle maintenance, or switch to Fleet Manager",
			"Mode (Ctrl+T) to query the fleet warehouse in plain language.",
			"",
			StyleDimmed.Render("Type your question and press Enter."))
		return lines
	}

	for _, entry := range v.entries {
		switch entry.role {
		case "you":
			lines = append(lines, StyleUserLabel.Render("You: ")+entry.text)
			lines = append(lines, "")
		case "progress":
			lines = append(lines, StyleDimmed.Render("  "+entry.text))
			lines = append(lines, "")
		case "assistant":
			lines = append(lines, StyleAssistant.Render("Assistant: "))
			for _, line := range strings.Split(entry.text, "\n") {
				lines = append(lines, "  "+line)
			}
			lines = append(lines, "")
		}
	}

	if v.loading && !v.pending {
		lines = append(lines, StyleDimmed.Render("  ⏳ Thinking..."))
	}

	return lines
}

func (v *ChatView) View() string {
	prompt := StylePrompt.Render("Ask> ") + v.input + "█"
	if v.loading {
		prompt = StylePrompt.Render("Ask> ") + StyleDimmed.Render("waiting for response...")
	}

	content := v.viewport.Render()

	return lipgloss.JoinVertical(lipgloss.Left, prompt, "", content)
}
