// Package chat implements the mode-routing conversation pipeline:
// question → SQL synthesis → warehouse execution → result narration,
// plus the general-advice path for regular users.
//
// Design decisions:
//   - The active Session is an explicit handle passed to Respond, never a
//     package global. The caller (the TUI) is its single writer; the
//     pipeline itself is strictly sequential per message.
//   - Every stage failure is converted to benign response text here.
//     Nothing unwinds past the orchestrator boundary.
package chat

import "time"

// Mode selects which pipeline handles a message.
type Mode int

const (
	// ModeUser answers general maintenance questions without data access.
	ModeUser Mode = iota
	// ModeFleetManager answers with warehouse data via synthesized SQL.
	ModeFleetManager
)

func (m Mode) String() string {
	if m == ModeFleetManager {
		return "Fleet Manager Mode"
	}
	return "User Mode"
}

// TitleMaxLen bounds a session title derived from its first message.
const TitleMaxLen = 50

// Turn is one question/response pair within a Session. Immutable once
// appended; its Response is always non-empty.
type Turn struct {
	Message  string
	Response string
}

// Session is one continuous conversation. It accumulates Turns in order
// and is persisted as a unit when the user starts a new chat.
type Session struct {
	Title     string
	Mode      Mode
	StartedAt time.Time
	Turns     []Turn
}

// NewSession starts an empty session in the given mode.
func NewSession(mode Mode) *Session {
	return &Session{
		Mode:      mode,
		StartedAt: time.Now().UTC(),
	}
}

// Append records a completed turn. The first turn's message, truncated
// to TitleMaxLen, becomes the session title.
func (s *Session) Append(message, response string) {
	if len(s.Turns) == 0 && s.Title == "" {
		s.Title = truncateTitle(message)
	}
	s.Turns = append(s.Turns, Turn{Message: message, Response: response})
}

// Empty reports whether the session has no turns yet.
func (s *Session) Empty() bool {
	return len(s.Turns) == 0
}

func truncateTitle(s string) string {
	if len(s) <= TitleMaxLen {
		return s
	}
	return s[:TitleMaxLen]
}
