package agents

import (
	"context"
	"fmt"
	"strings"

	"consilium/internal/frameworks"
	"consilium/internal/project"
	"consilium/pkg/errors"
	"consilium/pkg/logger"
)

var _ Agent = (*MarketAgent)(nil)

// MarketAgent analyzes the client's market environment.
type MarketAgent struct {
	log *logger.Logger
}

// NewMarketAgent creates the market analyst.
func NewMarketAgent() *MarketAgent {
	return &MarketAgent{log: logger.Get().With("agent", RoleMarket)}
}

// Role implements Agent.
func (a *MarketAgent) Role() Role { return RoleMarket }

// Analyze implements Agent.
func (a *MarketAgent) Analyze(ctx context.Context, in *project.Input) (Payload, error) {
	if !in.HasMarketData() {
		return nil, errors.Wrap(errors.ErrMissingProjectData, "market data not provided")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a.log.Debugw("Running market analysis", "client", in.ClientName)
	return &MarketPayload{Result: frameworks.AnalyzeMarket(in.Market)}, nil
}

// MarketPayload is the market agent's output.
type MarketPayload struct {
	Result *frameworks.MarketResult
}

// Summary implements Payload.
func (p *MarketPayload) Summary() string {
	recs := p.Result.Recs
	if len(recs) > 2 {
		recs = recs[:2]
	}
	return fmt.Sprintf("Market attractiveness: %s, growth rate: %.1f%%, recommendations: %s",
		p.Result.Attractiveness, p.Result.GrowthRate, strings.Join(recs, " "))
}

// Recommendations implements Payload.
func (p *MarketPayload) Recommendations() []string { return p.Result.Recs }

// Render implements Payload.
func (p *MarketPayload) Render() string { return p.Result.Format() }
