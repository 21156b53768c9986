// Package ai defines the interface for completion providers
// and a placeholder implementation.
//
// Design decisions:
//   - Provider is an interface so we can swap backends (Azure OpenAI,
//     OpenAI, Anthropic, Ollama) without changing the chat pipeline.
//   - Every call carries its own temperature, token budget and timeout:
//     SQL synthesis wants near-deterministic short output, narration
//     wants a looser budget. The caller decides, the provider obeys.
//   - All methods accept context for cancellation (async-friendly).
package ai

import (
	"context"
	"time"
)

// CompletionRequest describes one bounded completion call.
type CompletionRequest struct {
	System      string        // system instruction
	User        string        // user message
	Temperature float64       // sampling temperature
	MaxTokens   int           // response token budget
	Timeout     time.Duration // response-time budget; 0 means no deadline
}

// Provider is the interface all completion backends must implement.
type Provider interface {
	// Complete sends a system+user prompt pair and returns the reply text.
	Complete(ctx context.Context, req CompletionRequest) (string, error)

	// Name returns the provider name for display and logging.
	Name() string
}

// reqContext derives a context honoring the request's response-time budget.
func reqContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
