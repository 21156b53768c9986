package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/fleetops/fleetchat/ai"
	"github.com/fleetops/fleetchat/applog"
	"github.com/fleetops/fleetchat/warehouse"
)

// General advice gets the same budget the narration step does, with a
// little more headroom on the deadline.
const (
	adviceTemperature = 0.7
	adviceMaxTokens   = 500
	adviceTimeout     = 30 * time.Second
)

// Fixed user-visible responses. Tests and the transcript rely on these
// exact strings.
const (
	MsgServiceUnavailable   = "The AI service is not available. Please check the configuration."
	MsgWarehouseUnavailable = "The fleet warehouse is not available. Please check the configuration."
	MsgNoQuery              = "I couldn't generate a valid query for your question. Please try rephrasing it."
	MsgAdviceFailed         = "I'm having trouble processing your request. Please try again."
)

// Event is one UI update emitted while handling a message. Only the final
// event of an invocation carries the response that is persisted; earlier
// events are advisory progress text.
type Event struct {
	Text  string
	Final bool
}

// Executor abstracts the warehouse capability so tests can fake it.
type Executor interface {
	Execute(ctx context.Context, sqlText string) (*warehouse.Result, error)
}

// Orchestrator routes each message to the right pipeline and owns the
// conversion of every stage failure into a terminal text response.
type Orchestrator struct {
	provider ai.Provider // nil when the completion capability is unavailable
	executor Executor    // nil when the warehouse is unavailable
	synth    *Synthesizer
	interp   *Interpreter
	progress bool
}

// NewOrchestrator wires the pipeline. provider and executor may be nil;
// the orchestrator then answers with the corresponding fixed notice
// instead of failing.
func NewOrchestrator(provider ai.Provider, executor Executor, table string, progress bool) *Orchestrator {
	o := &Orchestrator{
		provider: provider,
		executor: executor,
		progress: progress,
	}
	if provider != nil {
		o.synth = NewSynthesizer(provider, table)
		o.interp = NewInterpreter(provider)
	}
	return o
}

// Respond handles one message: it emits zero or more progress events,
// exactly one final event, and appends exactly one Turn to sess. The
// returned string equals the final event's text and is never empty.
// A failure in any stage produces a terminal error response; a Turn is
// never retried.
func (o *Orchestrator) Respond(ctx context.Context, sess *Session, mode Mode, message string, emit func(Event)) string {
	if emit == nil {
		emit = func(Event) {}
	}
	applog.Event("chat", "mode=%s message=%q", mode, message)

	sess.Mode = mode
	finish := func(response string) string {
		sess.Append(message, response)
		emit(Event{Text: response, Final: true})
		return response
	}

	if o.provider == nil {
		return finish(MsgServiceUnavailable)
	}

	if mode == ModeFleetManager {
		return o.fleetPipeline(ctx, message, emit, finish)
	}
	return o.generalAdvice(ctx, message, finish)
}

// fleetPipeline runs synthesis → execution → narration sequentially.
func (o *Orchestrator) fleetPipeline(ctx context.Context, message string, emit func(Event), finish func(string) string) string {
	if o.executor == nil {
		return finish(MsgWarehouseUnavailable)
	}

	if o.progress {
		emit(Event{Text: "🔍 Analyzing your question and generating database query..."})
	}

	sqlText, err := o.synth.Generate(ctx, message)
	if err != nil {
		applog.Error("sql synthesis failed: %v", err)
		return finish(MsgNoQuery)
	}

	if o.progress {
		emit(Event{Text: fmt.Sprintf("⚙️ Executing query...\n\n`%s`", sqlText)})
	}

	formatted, rows := o.runQuery(ctx, sqlText)
	if len(rows) == 0 {
		// Covers both genuinely empty results and execution errors: the
		// user sees the formatted text either way, without narration.
		return finish("📊 Query executed successfully.\n\n" + formatted)
	}

	if o.progress {
		emit(Event{Text: "📊 Analyzing results..."})
	}

	narration := o.interp.Narrate(ctx, message, sqlText, formatted)
	return finish(fmt.Sprintf("**Query Executed:**\n```sql\n%s\n```\n\n%s", sqlText, narration))
}

// runQuery executes the SQL defensively: an execution error becomes an
// error-description string with an empty row list, never a crash.
func (o *Orchestrator) runQuery(ctx context.Context, sqlText string) (string, []warehouse.Row) {
	res, err := o.executor.Execute(ctx, sqlText)
	if err != nil {
		applog.Error("query execution failed: %v", err)
		return "Error executing query: " + err.Error(), nil
	}
	return res.Formatted, res.Rows
}

// generalAdvice answers User Mode questions with a single completion call.
func (o *Orchestrator) generalAdvice(ctx context.Context, message string, finish func(string) string) string {
	req := ai.CompletionRequest{
		System:      systemPromptAdvice,
		User:        message,
		Temperature: adviceTemperature,
		MaxTokens:   adviceMaxTokens,
		Timeout:     adviceTimeout,
	}

	ai.LogRequest("GeneralAdvice", o.provider.Name(), map[string]string{
		"Question": message,
	})
	resp, err := o.provider.Complete(ctx, req)
	ai.LogResponse("GeneralAdvice", resp, err)
	if err != nil || resp == "" {
		applog.Error("general advice failed: %v", err)
		return finish(MsgAdviceFailed)
	}
	return finish(resp)
}
