package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"consilium/internal/agents"
	"consilium/internal/frameworks"
	"consilium/internal/project"
	"consilium/pkg/errors"
)

func consolidatedFixture() *agents.ConsolidatedResult {
	market := &agents.MarketPayload{Result: frameworks.AnalyzeMarket(&project.MarketData{
		MarketSize: 60_000_000_000,
		GrowthRate: 8,
		Trends:     []string{"AI adoption"},
	})}

	return &agents.ConsolidatedResult{
		RunID:      uuid.New(),
		ClientName: "Acme Corp",
		Industry:   "manufacturing",
		Challenge:  "defend market share",
		Results: []agents.Result{
			{Role: agents.RoleMarket, Status: agents.StatusSuccess, Payload: market},
			{Role: agents.RoleFinancial, Status: agents.StatusSkipped, SkipNote: "financial data not provided"},
			{Role: agents.RoleStrategy, Status: agents.StatusFailed, Err: errors.New("llm unavailable")},
		},
		Summary:   agents.Summary{TotalAgents: 3, Successful: 1, Skipped: 1, Failed: 1, SuccessRate: 33.3},
		CreatedAt: time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC),
	}
}

func TestGenerate_Sections(t *testing.T) {
	out := NewGenerator().Generate(consolidatedFixture())

	assert.Contains(t, out, "# Integrated Strategy Consulting Report")
	assert.Contains(t, out, "- **Client**: Acme Corp")
	assert.Contains(t, out, "## Executive Summary")
	assert.Contains(t, out, "Market attractiveness: **high**")
	assert.Contains(t, out, "## Market Analysis")
	assert.Contains(t, out, "## Analyses Not Included")
	assert.Contains(t, out, "Financial Analysis: skipped (financial data not provided)")
	assert.Contains(t, out, "Strategy Analysis: failed")
	assert.Contains(t, out, "## Integrated Recommendations")
	assert.Contains(t, out, "**[market]**")
	assert.Contains(t, out, "## Action Plan")
	assert.Contains(t, out, "success rate: 33.3%")
}

func TestGenerate_DialogueBeforeRecommendations(t *testing.T) {
	res := consolidatedFixture()
	res.Dialogue = &agents.DialogueResult{
		Occurred:       true,
		ConsensusItems: []string{"expand into services"},
		ActionItems:    []string{"hire a services lead"},
		FullConsensus:  "full text of the consensus discussion",
	}

	out := NewGenerator().Generate(res)

	assert.Contains(t, out, "## Inter-Agent Dialogue")
	assert.Contains(t, out, "1. expand into services")
	assert.Contains(t, out, "1. hire a services lead")

	dialogueIdx := strings.Index(out, "## Inter-Agent Dialogue")
	recsIdx := strings.Index(out, "## Integrated Recommendations")
	require.Positive(t, dialogueIdx)
	require.Positive(t, recsIdx)
	assert.Less(t, dialogueIdx, recsIdx, "dialogue section must precede integrated recommendations")
}

func TestGenerate_NoDialogueSectionWhenNotOccurred(t *testing.T) {
	res := consolidatedFixture()
	res.Dialogue = &agents.DialogueResult{Occurred: false, Note: "not enough successful analyses"}

	out := NewGenerator().Generate(res)
	assert.NotContains(t, out, "## Inter-Agent Dialogue")
}

func TestGenerate_NoSuccesses(t *testing.T) {
	res := &agents.ConsolidatedResult{
		RunID:      uuid.New(),
		ClientName: "Acme Corp",
		Results: []agents.Result{
			{Role: agents.RoleMarket, Status: agents.StatusFailed, Err: errors.New("boom")},
		},
		Summary:   agents.Summary{TotalAgents: 1, Failed: 1},
		CreatedAt: time.Now().UTC(),
	}

	out := NewGenerator().Generate(res)
	assert.Contains(t, out, "No analysis could be completed.")
	assert.Contains(t, out, "No recommendations could be produced.")
}

func TestExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")

	require.NoError(t, NewGenerator().Export(consolidatedFixture(), path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# Integrated Strategy Consulting Report")
}
