package agents

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"consilium/internal/adapters/ai"
	"consilium/internal/project"
	"consilium/pkg/errors"
)

func TestProfiler_EnrichFillsMissingFields(t *testing.T) {
	client := &fakeClient{respond: func(int64, ai.CompletionRequest) (*ai.Completion, error) {
		return &ai.Completion{Text: "Industry: industrial automation\nChallenge: margin erosion from low-cost imports\nPosition: regional number two"}, nil
	}}
	p := NewProfiler(client)

	in := &project.Input{ClientName: "Acme Corp"}
	require.NoError(t, in.Normalize())

	profile := p.Enrich(context.Background(), in)
	require.NotNil(t, profile)

	assert.Equal(t, "industrial automation", in.Industry)
	assert.Equal(t, "margin erosion from low-cost imports", in.Challenge)
	assert.Equal(t, "regional number two", profile.Position)
}

func TestProfiler_SkipsCompleteInputs(t *testing.T) {
	client := &fakeClient{}
	p := NewProfiler(client)

	in := &project.Input{ClientName: "Acme", Industry: "retail", Challenge: "expand online"}
	profile := p.Enrich(context.Background(), in)

	assert.Nil(t, profile)
	assert.Zero(t, client.calls.Load())
}

func TestProfiler_LLMFailureLeavesInputUntouched(t *testing.T) {
	client := &fakeClient{respond: func(int64, ai.CompletionRequest) (*ai.Completion, error) {
		return nil, errors.New("unavailable")
	}}
	p := NewProfiler(client)

	in := &project.Input{ClientName: "Acme"}
	require.NoError(t, in.Normalize())

	assert.Nil(t, p.Enrich(context.Background(), in))
	assert.Equal(t, project.DefaultChallenge, in.Challenge)
}

func TestParseProfile(t *testing.T) {
	profile := parseProfile("noise\nIndustry:  logistics \nPosition: challenger\nmore noise")
	require.NotNil(t, profile)
	assert.Equal(t, "logistics", profile.Industry)
	assert.Equal(t, "challenger", profile.Position)
	assert.Empty(t, profile.Challenge)

	assert.Nil(t, parseProfile("free text with no labels"))
}

func TestProfiler_NilClient(t *testing.T) {
	p := NewProfiler(nil)
	assert.Nil(t, p.Enrich(context.Background(), &project.Input{ClientName: "Acme"}))
}
