package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fleetops/fleetchat/ai"
)

// SQL synthesis favors determinism: low temperature, small token budget,
// tight deadline. The reply is expected to be a bare SQL statement.
const (
	synthesisTemperature = 0.1
	synthesisMaxTokens   = 300
	synthesisTimeout     = 20 * time.Second
)

// Synthesizer turns a natural-language question into a SQL string via the
// completion provider. It never executes or validates the SQL; it trusts
// the model's output verbatim aside from fence stripping.
type Synthesizer struct {
	provider ai.Provider
	table    string
}

// NewSynthesizer creates a synthesizer targeting the given table.
func NewSynthesizer(provider ai.Provider, table string) *Synthesizer {
	return &Synthesizer{provider: provider, table: table}
}

// Generate returns the cleaned SQL for a question, or an error when the
// provider fails, times out, or replies with nothing usable.
func (s *Synthesizer) Generate(ctx context.Context, question string) (string, error) {
	req := ai.CompletionRequest{
		System:      synthesisPrompt(s.table),
		User:        question,
		Temperature: synthesisTemperature,
		MaxTokens:   synthesisMaxTokens,
		Timeout:     synthesisTimeout,
	}

	ai.LogRequest("GenerateSQL", s.provider.Name(), map[string]string{
		"Question": question,
	})
	resp, err := s.provider.Complete(ctx, req)
	ai.LogResponse("GenerateSQL", resp, err)
	if err != nil {
		return "", fmt.Errorf("generate sql: %w", err)
	}

	sqlText := StripSQLFences(resp)
	if sqlText == "" {
		return "", fmt.Errorf("model returned empty SQL")
	}
	return sqlText, nil
}

// StripSQLFences removes leading/trailing markdown code-fence markers and
// surrounding whitespace from a model reply. Running it on an already
// clean SQL string returns the string unchanged.
func StripSQLFences(s string) string {
	trimmed := strings.TrimSpace(s)
	trimmed = strings.TrimPrefix(trimmed, "```sql")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	return strings.TrimSpace(trimmed)
}
