package agents

import (
	"context"
	"fmt"
	"strings"

	"consilium/internal/adapters/ai"
	"consilium/internal/frameworks"
	"consilium/internal/metrics"
	"consilium/internal/project"
	"consilium/pkg/errors"
	"consilium/pkg/logger"
	"consilium/pkg/templates"
)

var _ Agent = (*StrategyAgent)(nil)

const strategySystemPrompt = "You are a strategy consultant synthesizing multiple analytical frameworks into one coherent direction."

// StrategyAgent runs the strategic frameworks and synthesizes them into a
// unified direction via the LLM. With a nil client it degrades to the
// framework implications without a narrative synthesis.
type StrategyAgent struct {
	client   ai.Client
	registry *templates.Registry
	log      *logger.Logger
}

// NewStrategyAgent creates the strategy analyst.
func NewStrategyAgent(client ai.Client) *StrategyAgent {
	return &StrategyAgent{
		client:   client,
		registry: templates.Get(),
		log:      logger.Get().With("agent", RoleStrategy),
	}
}

// Role implements Agent.
func (a *StrategyAgent) Role() Role { return RoleStrategy }

// Analyze implements Agent.
func (a *StrategyAgent) Analyze(ctx context.Context, in *project.Input) (Payload, error) {
	if !in.HasStrategyData() {
		return nil, errors.Wrap(errors.ErrMissingProjectData, "neither customer nor competitor data provided")
	}

	payload := &StrategyPayload{
		ThreeC: frameworks.AnalyzeThreeC(in.Customer, in.Competitors, in.Company),
	}

	s, w, o, th := swotInputs(in)
	if len(s)+len(w)+len(o)+len(th) > 0 {
		payload.SWOT = frameworks.AnalyzeSWOT(s, w, o, th)
	}
	if in.Forces != nil {
		payload.FiveForces = frameworks.AnalyzeFiveForces(in.Forces)
	}
	if in.PEST != nil {
		payload.PEST = frameworks.AnalyzePEST(in.PEST)
	}
	if in.ValueChain != nil {
		payload.ValueChain = frameworks.AnalyzeValueChain(in.ValueChain)
	}

	if a.client == nil {
		a.log.Warnw("No LLM client configured, skipping strategy synthesis", "client", in.ClientName)
		return payload, nil
	}

	synthesis, err := a.synthesize(ctx, in, payload)
	if err != nil {
		return nil, errors.Wrap(err, "strategy synthesis failed")
	}
	payload.Synthesis = synthesis

	return payload, nil
}

// swotInputs returns the SWOT quadrants, deriving them from other project
// data when no explicit SWOT input is present.
func swotInputs(in *project.Input) (s, w, o, t []string) {
	if in.SWOT != nil {
		return in.SWOT.Strengths, in.SWOT.Weaknesses, in.SWOT.Opportunities, in.SWOT.Threats
	}

	if in.Company != nil {
		s = in.Company.CoreCompetencies
	}
	if in.Market != nil {
		o = in.Market.Trends
	}
	if in.Competitors != nil {
		seen := make(map[string]bool)
		for _, c := range in.Competitors.Competitors {
			for _, strength := range c.Strengths {
				if !seen[strength] {
					seen[strength] = true
					t = append(t, strength)
				}
			}
		}
	}
	return s, w, o, t
}

type frameworkFinding struct {
	Name    string
	Summary string
}

func (a *StrategyAgent) synthesize(ctx context.Context, in *project.Input, payload *StrategyPayload) (string, error) {
	var findings []frameworkFinding
	if payload.ThreeC != nil {
		findings = append(findings, frameworkFinding{Name: "3C analysis", Summary: payload.ThreeC.Format()})
	}
	if payload.SWOT != nil {
		findings = append(findings, frameworkFinding{Name: "SWOT analysis", Summary: payload.SWOT.Format()})
	}
	if payload.FiveForces != nil {
		findings = append(findings, frameworkFinding{Name: "Five Forces analysis", Summary: payload.FiveForces.Format()})
	}
	if payload.PEST != nil {
		findings = append(findings, frameworkFinding{Name: "PEST analysis", Summary: payload.PEST.Format()})
	}
	if payload.ValueChain != nil {
		findings = append(findings, frameworkFinding{Name: "Value chain analysis", Summary: payload.ValueChain.Format()})
	}

	prompt, err := a.registry.Render("prompts/strategy_synthesis", map[string]any{
		"ClientName": in.ClientName,
		"Industry":   in.Industry,
		"Challenge":  in.Challenge,
		"Findings":   findings,
	})
	if err != nil {
		return "", err
	}

	completion, err := a.client.Complete(ctx, ai.CompletionRequest{
		System: strategySystemPrompt,
		Prompt: prompt,
	})
	if err != nil {
		metrics.LLMCalls.WithLabelValues("strategy_agent", "error").Inc()
		return "", err
	}

	metrics.LLMCalls.WithLabelValues("strategy_agent", "success").Inc()
	metrics.LLMTokens.WithLabelValues("strategy_agent", "input").Add(float64(completion.Usage.PromptTokens))
	metrics.LLMTokens.WithLabelValues("strategy_agent", "output").Add(float64(completion.Usage.CompletionTokens))

	return completion.Text, nil
}

// StrategyPayload is the strategy agent's output. Framework results other
// than ThreeC are nil when the corresponding input was absent.
type StrategyPayload struct {
	ThreeC     *frameworks.ThreeCResult
	SWOT       *frameworks.SWOTResult
	FiveForces *frameworks.FiveForcesResult
	PEST       *frameworks.PESTResult
	ValueChain *frameworks.ValueChainResult
	Synthesis  string
}

// Summary implements Payload.
func (p *StrategyPayload) Summary() string {
	if p.Synthesis != "" {
		return truncate(p.Synthesis, 200)
	}
	if p.SWOT != nil {
		return p.SWOT.Summary
	}
	if len(p.ThreeC.Insights) > 0 {
		return strings.Join(p.ThreeC.Insights, " ")
	}
	return "Strategic analysis completed."
}

// truncate shortens s to at most n runes. Slicing bytes could split a
// multibyte character.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

// Recommendations implements Payload.
func (p *StrategyPayload) Recommendations() []string {
	var recs []string
	if p.SWOT != nil {
		for _, s := range p.SWOT.Strategies {
			recs = append(recs, s.Description)
		}
	}
	if p.FiveForces != nil {
		recs = append(recs, p.FiveForces.Implications...)
	}
	if p.PEST != nil {
		recs = append(recs, p.PEST.Recs...)
	}
	return recs
}

// Render implements Payload.
func (p *StrategyPayload) Render() string {
	var b strings.Builder

	section := func(title, body string) {
		if body == "" {
			return
		}
		fmt.Fprintf(&b, "### %s\n\n%s\n", title, body)
	}

	if p.Synthesis != "" {
		section("Strategic synthesis", p.Synthesis+"\n")
	}
	if p.ThreeC != nil {
		section("3C analysis", p.ThreeC.Format())
	}
	if p.SWOT != nil {
		section("SWOT analysis", p.SWOT.Format())
	}
	if p.FiveForces != nil {
		section("Five Forces analysis", p.FiveForces.Format())
	}
	if p.PEST != nil {
		section("PEST analysis", p.PEST.Format())
	}
	if p.ValueChain != nil {
		section("Value chain analysis", p.ValueChain.Format())
	}

	return b.String()
}
