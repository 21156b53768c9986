package ai

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Placeholder is a mock completion provider for development.
type Placeholder struct{}

var _ Provider = (*Placeholder)(nil)

func NewPlaceholder() *Placeholder {
	return &Placeholder{}
}

func (p *Placeholder) Name() string {
	return "placeholder"
}

func (p *Placeholder) Complete(ctx context.Context, creq CompletionRequest) (string, error) {
	// Simulate network latency
	select {
	case <-time.After(300 * time.Millisecond):
	case <-ctx.Done():
		return "", ctx.Err()
	}

	// A SQL-generation prompt gets SQL back so the rest of the
	// pipeline can be exercised without credentials.
	if strings.Contains(creq.System, "SQL query generator") {
		return "SELECT * FROM logistics_maintenance_predictions WHERE Maintenance_Required = 1 LIMIT 50", nil
	}

	return fmt.Sprintf("🤖 [Placeholder AI]\n\nYou asked: %q\n\nThis is a placeholder response. "+
		"Configure a real completion provider (Azure OpenAI, OpenAI, Anthropic, Ollama) "+
		"to get actual assistance.", truncate(creq.User, 120)), nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
