package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fleetops/fleetchat/ai"
	"github.com/fleetops/fleetchat/warehouse"
)

// fakeProvider is a scripted ai.Provider. With replies set, each call
// consumes the next entry; otherwise every call returns reply/err.
type fakeProvider struct {
	reply   string
	replies []string
	err     error

	calls   int
	lastReq ai.CompletionRequest
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Complete(_ context.Context, req ai.CompletionRequest) (string, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return "", f.err
	}
	if len(f.replies) > 0 {
		r := f.replies[0]
		f.replies = f.replies[1:]
		return r, nil
	}
	return f.reply, nil
}

// fakeExecutor is a scripted warehouse Executor.
type fakeExecutor struct {
	result *warehouse.Result
	err    error

	calls   int
	lastSQL string
}

func (f *fakeExecutor) Execute(_ context.Context, sqlText string) (*warehouse.Result, error) {
	f.calls++
	f.lastSQL = sqlText
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

// collectEvents runs Respond and returns every emitted event.
func collectEvents(o *Orchestrator, sess *Session, mode Mode, message string) ([]Event, string) {
	var events []Event
	resp := o.Respond(context.Background(), sess, mode, message, func(ev Event) {
		events = append(events, ev)
	})
	return events, resp
}

func TestRespondServiceUnavailable(t *testing.T) {
	o := NewOrchestrator(nil, nil, "t", false)
	sess := NewSession(ModeUser)

	events, resp := collectEvents(o, sess, ModeUser, "hello")

	if resp != MsgServiceUnavailable {
		t.Errorf("response = %q, want %q", resp, MsgServiceUnavailable)
	}
	if len(events) != 1 || !events[0].Final {
		t.Fatalf("expected a single final event, got %+v", events)
	}
	if len(sess.Turns) != 1 {
		t.Fatalf("expected 1 turn, got %d", len(sess.Turns))
	}
	if sess.Turns[0].Response != MsgServiceUnavailable {
		t.Errorf("turn response = %q, want %q", sess.Turns[0].Response, MsgServiceUnavailable)
	}
}

func TestRespondWarehouseUnavailable(t *testing.T) {
	p := &fakeProvider{reply: "SELECT 1"}
	o := NewOrchestrator(p, nil, "t", false)
	sess := NewSession(ModeFleetManager)

	_, resp := collectEvents(o, sess, ModeFleetManager, "how many trucks?")

	if resp != MsgWarehouseUnavailable {
		t.Errorf("response = %q, want %q", resp, MsgWarehouseUnavailable)
	}
	if p.calls != 0 {
		t.Errorf("provider should not be called without a warehouse, got %d calls", p.calls)
	}
}

func TestRespondFleetPipeline(t *testing.T) {
	p := &fakeProvider{replies: []string{
		"```sql\nSELECT COUNT(*) FROM logistics_maintenance_predictions\n```",
		"Your fleet has 42 trucks on record.",
	}}
	exec := &fakeExecutor{result: &warehouse.Result{
		Columns:   []string{"count"},
		Rows:      []warehouse.Row{{"count": int64(42)}},
		Formatted: "count: 42",
	}}
	o := NewOrchestrator(p, exec, "logistics_maintenance_predictions", true)
	sess := NewSession(ModeFleetManager)

	events, resp := collectEvents(o, sess, ModeFleetManager, "How many trucks do we have?")

	if exec.calls != 1 {
		t.Fatalf("executor calls = %d, want 1", exec.calls)
	}
	if want := "SELECT COUNT(*) FROM logistics_maintenance_predictions"; exec.lastSQL != want {
		t.Errorf("executed SQL = %q, want %q", exec.lastSQL, want)
	}

	// The final response embeds the SQL and the narration.
	if !strings.Contains(resp, "**Query Executed:**") {
		t.Errorf("response missing SQL echo header: %q", resp)
	}
	if !strings.Contains(resp, "SELECT COUNT(*)") {
		t.Errorf("response missing SQL text: %q", resp)
	}
	if !strings.Contains(resp, "42 trucks") {
		t.Errorf("response missing narration: %q", resp)
	}

	// With progress on: synthesis, execution, analysis, then the final.
	if len(events) != 4 {
		t.Fatalf("expected 4 events, got %d: %+v", len(events), events)
	}
	for i, ev := range events[:3] {
		if ev.Final {
			t.Errorf("event %d should not be final", i)
		}
	}
	last := events[len(events)-1]
	if !last.Final || last.Text != resp {
		t.Errorf("final event = %+v, want final with response text", last)
	}

	if len(sess.Turns) != 1 || sess.Turns[0].Response != resp {
		t.Fatalf("expected exactly one turn carrying the response, got %+v", sess.Turns)
	}
}

func TestRespondProgressSuppressed(t *testing.T) {
	p := &fakeProvider{replies: []string{"SELECT 1", "one row"}}
	exec := &fakeExecutor{result: &warehouse.Result{
		Columns:   []string{"n"},
		Rows:      []warehouse.Row{{"n": int64(1)}},
		Formatted: "n: 1",
	}}
	o := NewOrchestrator(p, exec, "t", false)
	sess := NewSession(ModeFleetManager)

	events, _ := collectEvents(o, sess, ModeFleetManager, "q")

	if len(events) != 1 || !events[0].Final {
		t.Fatalf("with progress off, expected only the final event, got %+v", events)
	}
}

func TestRespondSynthesisFailure(t *testing.T) {
	p := &fakeProvider{err: errors.New("model unavailable")}
	exec := &fakeExecutor{}
	o := NewOrchestrator(p, exec, "t", false)
	sess := NewSession(ModeFleetManager)

	_, resp := collectEvents(o, sess, ModeFleetManager, "q")

	if resp != MsgNoQuery {
		t.Errorf("response = %q, want %q", resp, MsgNoQuery)
	}
	if exec.calls != 0 {
		t.Errorf("executor should not run without SQL, got %d calls", exec.calls)
	}
	if len(sess.Turns) != 1 {
		t.Fatalf("expected 1 turn, got %d", len(sess.Turns))
	}
}

func TestRespondExecutionError(t *testing.T) {
	p := &fakeProvider{reply: "SELECT broken"}
	exec := &fakeExecutor{err: errors.New(`column "broken" does not exist`)}
	o := NewOrchestrator(p, exec, "t", false)
	sess := NewSession(ModeFleetManager)

	_, resp := collectEvents(o, sess, ModeFleetManager, "q")

	if !strings.Contains(resp, "Error executing query:") {
		t.Errorf("response should carry the execution error, got %q", resp)
	}
	if !strings.Contains(resp, "does not exist") {
		t.Errorf("response should include the driver message, got %q", resp)
	}
	// An execution error must not reach the narration step.
	if p.calls != 1 {
		t.Errorf("provider calls = %d, want 1 (synthesis only)", p.calls)
	}
}

func TestRespondZeroRowsSkipsNarration(t *testing.T) {
	p := &fakeProvider{reply: "SELECT * FROM t WHERE 1=0"}
	exec := &fakeExecutor{result: &warehouse.Result{
		Columns:   []string{"vehicle_id"},
		Rows:      nil,
		Formatted: warehouse.NoDataMessage,
	}}
	o := NewOrchestrator(p, exec, "t", false)
	sess := NewSession(ModeFleetManager)

	_, resp := collectEvents(o, sess, ModeFleetManager, "q")

	want := "📊 Query executed successfully.\n\n" + warehouse.NoDataMessage
	if resp != want {
		t.Errorf("response = %q, want %q", resp, want)
	}
	if p.calls != 1 {
		t.Errorf("provider calls = %d, want 1 (no narration on empty results)", p.calls)
	}
}

func TestRespondNarrationFallback(t *testing.T) {
	// Synthesis succeeds; narration fails. The response should fall back
	// to the raw formatted results rather than an error.
	p := &fakeProvider{replies: []string{"SELECT make FROM t"}, reply: ""}
	exec := &fakeExecutor{result: &warehouse.Result{
		Columns:   []string{"make"},
		Rows:      []warehouse.Row{{"make": "Volvo"}},
		Formatted: "make: Volvo",
	}}
	o := NewOrchestrator(p, exec, "t", false)
	sess := NewSession(ModeFleetManager)

	_, resp := collectEvents(o, sess, ModeFleetManager, "q")

	if !strings.Contains(resp, "Here are the query results:") {
		t.Errorf("expected fallback narration, got %q", resp)
	}
	if !strings.Contains(resp, "make: Volvo") {
		t.Errorf("fallback should carry the formatted rows, got %q", resp)
	}
}

func TestRespondUserMode(t *testing.T) {
	p := &fakeProvider{reply: "Rotate your tires every 5,000 miles."}
	exec := &fakeExecutor{}
	o := NewOrchestrator(p, exec, "t", true)
	sess := NewSession(ModeUser)

	events, resp := collectEvents(o, sess, ModeUser, "When should I rotate tires?")

	if resp != "Rotate your tires every 5,000 miles." {
		t.Errorf("response = %q", resp)
	}
	if exec.calls != 0 {
		t.Errorf("User Mode must never touch the warehouse, got %d calls", exec.calls)
	}
	// Even with progress on, the advice path emits only the final event.
	if len(events) != 1 || !events[0].Final {
		t.Fatalf("expected a single final event, got %+v", events)
	}
	if p.lastReq.Temperature != adviceTemperature || p.lastReq.MaxTokens != adviceMaxTokens {
		t.Errorf("advice budget = (%v, %d), want (%v, %d)",
			p.lastReq.Temperature, p.lastReq.MaxTokens, adviceTemperature, adviceMaxTokens)
	}
}

func TestRespondAdviceFailure(t *testing.T) {
	p := &fakeProvider{err: errors.New("timeout")}
	o := NewOrchestrator(p, nil, "t", false)
	sess := NewSession(ModeUser)

	_, resp := collectEvents(o, sess, ModeUser, "q")

	if resp != MsgAdviceFailed {
		t.Errorf("response = %q, want %q", resp, MsgAdviceFailed)
	}
}

func TestRespondNilEmit(t *testing.T) {
	p := &fakeProvider{reply: "ok"}
	o := NewOrchestrator(p, nil, "t", true)
	sess := NewSession(ModeUser)

	// A nil emit callback must not panic.
	resp := o.Respond(context.Background(), sess, ModeUser, "q", nil)
	if resp != "ok" {
		t.Errorf("response = %q, want %q", resp, "ok")
	}
}

func TestRespondRecordsMode(t *testing.T) {
	p := &fakeProvider{reply: "ok"}
	o := NewOrchestrator(p, nil, "t", false)
	sess := NewSession(ModeUser)

	collectEvents(o, sess, ModeFleetManager, "q")
	if sess.Mode != ModeFleetManager {
		t.Errorf("session mode = %v, want ModeFleetManager", sess.Mode)
	}
}
