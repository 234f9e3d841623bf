package agents

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"consilium/internal/adapters/ai"
	"consilium/internal/project"
)

// fakeClient scripts LLM completions for tests.
type fakeClient struct {
	calls   atomic.Int64
	respond func(call int64, req ai.CompletionRequest) (*ai.Completion, error)
}

func (f *fakeClient) Name() string { return "fake" }

func (f *fakeClient) Complete(_ context.Context, req ai.CompletionRequest) (*ai.Completion, error) {
	call := f.calls.Add(1)
	if f.respond != nil {
		return f.respond(call, req)
	}
	return &ai.Completion{Text: "ok", Model: "fake"}, nil
}

// scriptedAgent is a configurable stand-in for a real agent.
type scriptedAgent struct {
	role    Role
	delay   time.Duration
	err     error
	panics  bool
	payload Payload
}

func (a *scriptedAgent) Role() Role { return a.role }

func (a *scriptedAgent) Analyze(ctx context.Context, _ *project.Input) (Payload, error) {
	if a.delay > 0 {
		select {
		case <-time.After(a.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if a.panics {
		panic("scripted panic")
	}
	if a.err != nil {
		return nil, a.err
	}
	if a.payload != nil {
		return a.payload, nil
	}
	return &textPayload{summary: string(a.role) + " summary"}, nil
}

// textPayload is a minimal payload for scripted agents.
type textPayload struct {
	summary string
	recs    []string
}

func (p *textPayload) Summary() string { return p.summary }

func (p *textPayload) Recommendations() []string { return p.recs }

func (p *textPayload) Render() string {
	return fmt.Sprintf("%s\n%s", p.summary, strings.Join(p.recs, "\n"))
}

func testInput() *project.Input {
	return &project.Input{ClientName: "Acme Corp", Industry: "manufacturing"}
}
