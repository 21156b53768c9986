package chat

import (
	"context"
	"time"

	"github.com/fleetops/fleetchat/ai"
)

// Narration runs looser than synthesis: moderate temperature, a larger
// token budget, and a slightly longer deadline.
const (
	interpretTemperature = 0.7
	interpretMaxTokens   = 500
	interpretTimeout     = 25 * time.Second

	// resultCharLimit bounds how much formatted result text is forwarded
	// to the model; fallbackCharLimit bounds what the user sees verbatim
	// when narration fails.
	resultCharLimit   = 2000
	fallbackCharLimit = 1000
)

// Interpreter narrates query results back to the user in prose.
type Interpreter struct {
	provider ai.Provider
}

// NewInterpreter creates an interpreter over the given provider.
func NewInterpreter(provider ai.Provider) *Interpreter {
	return &Interpreter{provider: provider}
}

// Narrate explains the results of a query in natural language. On provider
// failure it falls back to a truncated slice of the formatted results, so
// the caller always receives usable, non-empty text.
func (i *Interpreter) Narrate(ctx context.Context, question, sqlText, results string) string {
	req := ai.CompletionRequest{
		System:      systemPromptInterpret,
		User:        interpretPrompt(question, sqlText, head(results, resultCharLimit)),
		Temperature: interpretTemperature,
		MaxTokens:   interpretMaxTokens,
		Timeout:     interpretTimeout,
	}

	ai.LogRequest("InterpretResults", i.provider.Name(), map[string]string{
		"Question": question,
		"SQL":      sqlText,
	})
	resp, err := i.provider.Complete(ctx, req)
	ai.LogResponse("InterpretResults", resp, err)
	if err != nil || resp == "" {
		return "Here are the query results:\n\n" + head(results, fallbackCharLimit)
	}
	return resp
}

// head returns at most n bytes of s.
func head(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
