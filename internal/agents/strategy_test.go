package agents

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"consilium/internal/adapters/ai"
	"consilium/internal/project"
	"consilium/pkg/errors"
)

func strategyInput() *project.Input {
	return &project.Input{
		ClientName: "Acme Corp",
		Industry:   "manufacturing",
		Challenge:  "defend share against low-cost entrants",
		Customer: &project.CustomerData{
			MarketSize: 80_000_000_000,
			GrowthRate: 6,
			Needs:      []string{"reliability", "total cost of ownership"},
		},
		Competitors: &project.CompetitorData{Competitors: []project.Competitor{
			{Name: "Alpha", Type: "direct", Revenue: 500, Strengths: []string{"price"}},
		}},
		Company: &project.CompanyData{
			CoreCompetencies: []string{"service network"},
		},
		Market: &project.MarketData{Trends: []string{"automation demand"}},
	}
}

func TestStrategyAgent_SkippedWithoutData(t *testing.T) {
	a := NewStrategyAgent(&fakeClient{})

	_, err := a.Analyze(context.Background(), &project.Input{ClientName: "Acme"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrMissingProjectData))
}

func TestStrategyAgent_SynthesizesWithLLM(t *testing.T) {
	var prompt ai.CompletionRequest
	client := &fakeClient{respond: func(_ int64, req ai.CompletionRequest) (*ai.Completion, error) {
		prompt = req
		return &ai.Completion{Text: "- position as the premium service provider"}, nil
	}}
	a := NewStrategyAgent(client)

	payload, err := a.Analyze(context.Background(), strategyInput())
	require.NoError(t, err)

	sp, ok := payload.(*StrategyPayload)
	require.True(t, ok)
	assert.Equal(t, "- position as the premium service provider", sp.Synthesis)
	require.NotNil(t, sp.ThreeC)
	require.NotNil(t, sp.SWOT, "SWOT derived from company, trends and competitor strengths")

	assert.Contains(t, prompt.Prompt, "Acme Corp")
	assert.Contains(t, prompt.Prompt, "3C analysis")
	assert.Contains(t, prompt.Prompt, "SWOT analysis")
	assert.Contains(t, prompt.System, "strategy consultant")
}

func TestStrategyAgent_LLMFailure(t *testing.T) {
	client := &fakeClient{respond: func(int64, ai.CompletionRequest) (*ai.Completion, error) {
		return nil, errors.New("quota exceeded")
	}}
	a := NewStrategyAgent(client)

	_, err := a.Analyze(context.Background(), strategyInput())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "strategy synthesis failed")
}

func TestStrategyAgent_NilClientDegrades(t *testing.T) {
	a := NewStrategyAgent(nil)

	payload, err := a.Analyze(context.Background(), strategyInput())
	require.NoError(t, err)

	sp := payload.(*StrategyPayload)
	assert.Empty(t, sp.Synthesis)
	assert.NotEmpty(t, sp.Summary())
	assert.NotEmpty(t, sp.Recommendations())
}

func TestStrategyPayload_SummaryTruncatesOnRuneBoundary(t *testing.T) {
	// A multibyte character straddling the truncation point must not be split.
	synthesis := strings.Repeat("a", 199) + "日本語の戦略提言が続きます"
	p := &StrategyPayload{Synthesis: synthesis}

	summary := p.Summary()
	assert.True(t, utf8.ValidString(summary))
	assert.True(t, strings.HasSuffix(summary, "..."))
	assert.Equal(t, 200, utf8.RuneCountInString(strings.TrimSuffix(summary, "...")))
}

func TestSWOTInputs_Derived(t *testing.T) {
	in := strategyInput()
	s, w, o, th := swotInputs(in)

	assert.Equal(t, []string{"service network"}, s)
	assert.Empty(t, w)
	assert.Equal(t, []string{"automation demand"}, o)
	assert.Equal(t, []string{"price"}, th)
}

func TestSWOTInputs_Explicit(t *testing.T) {
	in := strategyInput()
	in.SWOT = &project.SWOTData{Strengths: []string{"brand"}, Weaknesses: []string{"cost"}}

	s, w, o, th := swotInputs(in)
	assert.Equal(t, []string{"brand"}, s)
	assert.Equal(t, []string{"cost"}, w)
	assert.Empty(t, o)
	assert.Empty(t, th)
}

func TestMarketAgent(t *testing.T) {
	a := NewMarketAgent()

	_, err := a.Analyze(context.Background(), &project.Input{ClientName: "Acme"})
	assert.True(t, errors.Is(err, errors.ErrMissingProjectData))

	payload, err := a.Analyze(context.Background(), &project.Input{
		ClientName: "Acme",
		Market:     &project.MarketData{MarketSize: 60_000_000_000, GrowthRate: 8},
	})
	require.NoError(t, err)
	assert.Contains(t, payload.Summary(), "Market attractiveness: high")
	assert.Contains(t, payload.Render(), "Market overview")
}

func TestFinancialAgent(t *testing.T) {
	a := NewFinancialAgent()

	_, err := a.Analyze(context.Background(), &project.Input{ClientName: "Acme"})
	assert.True(t, errors.Is(err, errors.ErrMissingProjectData))

	payload, err := a.Analyze(context.Background(), &project.Input{
		ClientName: "Acme",
		Financial: &project.FinancialData{
			Revenue:     decimal.NewFromInt(1000),
			CostOfSales: decimal.NewFromInt(400),
		},
	})
	require.NoError(t, err)
	assert.Contains(t, payload.Summary(), "Overall assessment")
	assert.NotEmpty(t, payload.Recommendations())
}
