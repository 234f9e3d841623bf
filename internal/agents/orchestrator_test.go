package agents

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"consilium/internal/adapters/ai"
	"consilium/internal/project"
	"consilium/pkg/errors"
)

func TestOrchestrator_NoAgents(t *testing.T) {
	o := NewOrchestrator(nil, nil, nil, nil, Options{})

	_, err := o.Analyze(context.Background(), testInput())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNoAgentsEnabled))
}

func TestOrchestrator_InvalidInput(t *testing.T) {
	o := NewOrchestrator([]Agent{&scriptedAgent{role: RoleMarket}}, nil, nil, nil, Options{})

	_, err := o.Analyze(context.Background(), &project.Input{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}

func TestOrchestrator_RunsAgentsConcurrently(t *testing.T) {
	delay := 150 * time.Millisecond
	o := NewOrchestrator([]Agent{
		&scriptedAgent{role: RoleMarket, delay: delay},
		&scriptedAgent{role: RoleFinancial, delay: delay},
		&scriptedAgent{role: RoleStrategy, delay: delay},
	}, nil, nil, nil, Options{})

	start := time.Now()
	res, err := o.Analyze(context.Background(), testInput())
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Equal(t, 3, res.Summary.Successful)
	// Serial execution would take at least 3x the delay.
	assert.Less(t, elapsed, 2*delay, "agents must run in parallel")
}

func TestOrchestrator_ResultsInCanonicalOrder(t *testing.T) {
	// Finish out of order on purpose.
	o := NewOrchestrator([]Agent{
		&scriptedAgent{role: RoleStrategy},
		&scriptedAgent{role: RoleMarket, delay: 50 * time.Millisecond},
		&scriptedAgent{role: RoleFinancial, delay: 20 * time.Millisecond},
	}, nil, nil, nil, Options{})

	res, err := o.Analyze(context.Background(), testInput())
	require.NoError(t, err)

	require.Len(t, res.Results, 3)
	assert.Equal(t, RoleMarket, res.Results[0].Role)
	assert.Equal(t, RoleFinancial, res.Results[1].Role)
	assert.Equal(t, RoleStrategy, res.Results[2].Role)
}

func TestOrchestrator_FailureIsolation(t *testing.T) {
	o := NewOrchestrator([]Agent{
		&scriptedAgent{role: RoleMarket},
		&scriptedAgent{role: RoleFinancial, err: errors.New("backend unreachable")},
		&scriptedAgent{role: RoleStrategy},
	}, nil, nil, nil, Options{})

	res, err := o.Analyze(context.Background(), testInput())
	require.NoError(t, err)

	assert.Equal(t, 2, res.Summary.Successful)
	assert.Equal(t, 1, res.Summary.Failed)
	assert.Equal(t, 66.7, res.Summary.SuccessRate)

	failed := res.ResultFor(RoleFinancial)
	require.NotNil(t, failed)
	assert.Equal(t, StatusFailed, failed.Status)
	assert.Nil(t, failed.Payload)
	require.Error(t, failed.Err)
}

func TestOrchestrator_PanicRecovery(t *testing.T) {
	o := NewOrchestrator([]Agent{
		&scriptedAgent{role: RoleMarket, panics: true},
		&scriptedAgent{role: RoleFinancial},
	}, nil, nil, nil, Options{})

	res, err := o.Analyze(context.Background(), testInput())
	require.NoError(t, err)

	panicked := res.ResultFor(RoleMarket)
	require.NotNil(t, panicked)
	assert.Equal(t, StatusFailed, panicked.Status)
	assert.Contains(t, panicked.Err.Error(), "panicked")
	assert.Equal(t, StatusSuccess, res.ResultFor(RoleFinancial).Status)
}

func TestOrchestrator_SkippedAgent(t *testing.T) {
	o := NewOrchestrator([]Agent{
		&scriptedAgent{role: RoleMarket},
		&scriptedAgent{role: RoleFinancial, err: errors.Wrap(errors.ErrMissingProjectData, "financial data not provided")},
	}, nil, nil, nil, Options{})

	res, err := o.Analyze(context.Background(), testInput())
	require.NoError(t, err)

	skipped := res.ResultFor(RoleFinancial)
	require.NotNil(t, skipped)
	assert.Equal(t, StatusSkipped, skipped.Status)
	assert.Contains(t, skipped.SkipNote, "financial data not provided")
	assert.NoError(t, skipped.Err)
	assert.Equal(t, 1, res.Summary.Skipped)
	assert.Equal(t, 0, res.Summary.Failed)
	assert.Equal(t, 50.0, res.Summary.SuccessRate)
}

func TestOrchestrator_AgentTimeout(t *testing.T) {
	o := NewOrchestrator([]Agent{
		&scriptedAgent{role: RoleMarket, delay: time.Second},
		&scriptedAgent{role: RoleFinancial},
	}, nil, nil, nil, Options{AgentTimeout: 30 * time.Millisecond})

	res, err := o.Analyze(context.Background(), testInput())
	require.NoError(t, err)

	timedOut := res.ResultFor(RoleMarket)
	require.NotNil(t, timedOut)
	assert.Equal(t, StatusFailed, timedOut.Status)
	assert.True(t, errors.Is(timedOut.Err, errors.ErrTimeout))
	assert.Contains(t, timedOut.Err.Error(), "timeout")
}

func TestOrchestrator_AllAgentsFailed(t *testing.T) {
	o := NewOrchestrator([]Agent{
		&scriptedAgent{role: RoleMarket, err: errors.New("boom")},
		&scriptedAgent{role: RoleFinancial, err: errors.New("boom")},
	}, nil, nil, nil, Options{})

	// All agents failing is not an orchestration error: the consolidated
	// result still comes back so the caller can render the all-failed report.
	res, err := o.Analyze(context.Background(), testInput())
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, 0, res.Summary.Successful)
	assert.Equal(t, 2, res.Summary.Failed)
	assert.Equal(t, 0.0, res.Summary.SuccessRate)
	require.Len(t, res.Results, 2)
	for _, r := range res.Results {
		assert.Equal(t, StatusFailed, r.Status)
		assert.Error(t, r.Err)
	}
}

func TestOrchestrator_DialogueRequiresTwoSuccesses(t *testing.T) {
	client := &fakeClient{}
	dialogue := NewDialogueManager(client, 0.7)

	o := NewOrchestrator([]Agent{
		&scriptedAgent{role: RoleMarket},
		&scriptedAgent{role: RoleFinancial, err: errors.Wrap(errors.ErrMissingProjectData, "no data")},
		&scriptedAgent{role: RoleStrategy, err: errors.New("boom")},
	}, dialogue, nil, nil, Options{EnableDialogue: true})

	res, err := o.Analyze(context.Background(), testInput())
	require.NoError(t, err)

	require.NotNil(t, res.Dialogue)
	assert.False(t, res.Dialogue.Occurred)
	assert.Contains(t, res.Dialogue.Note, "not enough successful analyses")
	assert.Zero(t, client.calls.Load(), "dialogue must not call the LLM without quorum")
}

func TestOrchestrator_DialogueDisabled(t *testing.T) {
	o := NewOrchestrator([]Agent{
		&scriptedAgent{role: RoleMarket},
		&scriptedAgent{role: RoleFinancial},
	}, NewDialogueManager(&fakeClient{}, 0.7), nil, nil, Options{EnableDialogue: false})

	res, err := o.Analyze(context.Background(), testInput())
	require.NoError(t, err)
	assert.Nil(t, res.Dialogue)
}

func TestOrchestrator_DialogueRuns(t *testing.T) {
	client := &fakeClient{respond: func(call int64, _ ai.CompletionRequest) (*ai.Completion, error) {
		if call == 1 {
			return &ai.Completion{Text: "No material conflicts identified."}, nil
		}
		return &ai.Completion{Text: "**Consensus**\n- expand into adjacent segments\n\n**Priority actions**\n1. launch pilot\n"}, nil
	}}

	o := NewOrchestrator([]Agent{
		&scriptedAgent{role: RoleMarket, payload: &textPayload{summary: "growing market", recs: []string{"invest"}}},
		&scriptedAgent{role: RoleFinancial, payload: &textPayload{summary: "healthy", recs: []string{"hold course"}}},
	}, NewDialogueManager(client, 0.7), nil, nil, Options{EnableDialogue: true})

	res, err := o.Analyze(context.Background(), testInput())
	require.NoError(t, err)

	require.NotNil(t, res.Dialogue)
	assert.True(t, res.Dialogue.Occurred)
	require.Len(t, res.Dialogue.Turns, 3)
	assert.Equal(t, PhaseShareInsights, res.Dialogue.Turns[0].Phase)
	assert.Equal(t, PhaseIdentifyConflicts, res.Dialogue.Turns[1].Phase)
	assert.Equal(t, PhaseBuildConsensus, res.Dialogue.Turns[2].Phase)
	assert.Equal(t, []string{"expand into adjacent segments"}, res.Dialogue.ConsensusItems)
	assert.Equal(t, []string{"launch pilot"}, res.Dialogue.ActionItems)
}

func TestOrchestrator_RunMetadata(t *testing.T) {
	o := NewOrchestrator([]Agent{&scriptedAgent{role: RoleMarket}}, nil, nil, nil, Options{})

	res, err := o.Analyze(context.Background(), testInput())
	require.NoError(t, err)

	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", res.RunID.String())
	assert.Equal(t, "Acme Corp", res.ClientName)
	assert.False(t, res.CreatedAt.IsZero())
	assert.Positive(t, res.Results[0].Duration)
}
