package chat

import (
	"strings"
	"testing"
)

func TestSessionTitle(t *testing.T) {
	t.Run("short message becomes title", func(t *testing.T) {
		s := NewSession(ModeUser)
		s.Append("How often to change oil?", "Every 5,000 miles.")
		if s.Title != "How often to change oil?" {
			t.Errorf("title = %q", s.Title)
		}
	})

	t.Run("long message truncated", func(t *testing.T) {
		s := NewSession(ModeFleetManager)
		long := strings.Repeat("which trucks need maintenance ", 5)
		s.Append(long, "resp")
		if len(s.Title) != TitleMaxLen {
			t.Errorf("title length = %d, want %d", len(s.Title), TitleMaxLen)
		}
		if s.Title != long[:TitleMaxLen] {
			t.Errorf("title = %q, want prefix of message", s.Title)
		}
	})

	t.Run("title fixed by first turn", func(t *testing.T) {
		s := NewSession(ModeUser)
		s.Append("first question", "a")
		s.Append("second question", "b")
		if s.Title != "first question" {
			t.Errorf("title = %q, want %q", s.Title, "first question")
		}
		if len(s.Turns) != 2 {
			t.Errorf("turns = %d, want 2", len(s.Turns))
		}
	})
}

func TestSessionEmpty(t *testing.T) {
	s := NewSession(ModeUser)
	if !s.Empty() {
		t.Error("new session should be empty")
	}
	s.Append("q", "r")
	if s.Empty() {
		t.Error("session with a turn should not be empty")
	}
}

func TestModeString(t *testing.T) {
	if got := ModeUser.String(); got != "User Mode" {
		t.Errorf("ModeUser = %q", got)
	}
	if got := ModeFleetManager.String(); got != "Fleet Manager Mode" {
		t.Errorf("ModeFleetManager = %q", got)
	}
}
