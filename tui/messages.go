// messages.go defines Bubble Tea messages used for async communication.
//
// The chat pipeline and the session store run in goroutines and send
// results back to the TUI via these message types, so the UI never blocks.
package tui

import (
	"github.com/fleetops/fleetchat/chat"
	"github.com/fleetops/fleetchat/store"
)

// PipelineEventMsg carries one orchestrator event. Non-final events are
// advisory progress text; the final event is the persisted response.
type PipelineEventMsg struct {
	Event chat.Event
}

// SessionsMsg is sent when loading past sessions completes.
type SessionsMsg struct {
	Records []store.SessionRecord
	Err     error
}

// StatusMsg is a transient status message for the status bar.
type StatusMsg string
