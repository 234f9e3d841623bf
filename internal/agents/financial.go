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

var _ Agent = (*FinancialAgent)(nil)

// FinancialAgent analyzes the client's financial position.
type FinancialAgent struct {
	log *logger.Logger
}

// NewFinancialAgent creates the financial analyst.
func NewFinancialAgent() *FinancialAgent {
	return &FinancialAgent{log: logger.Get().With("agent", RoleFinancial)}
}

// Role implements Agent.
func (a *FinancialAgent) Role() Role { return RoleFinancial }

// Analyze implements Agent.
func (a *FinancialAgent) Analyze(ctx context.Context, in *project.Input) (Payload, error) {
	if !in.HasFinancialData() {
		return nil, errors.Wrap(errors.ErrMissingProjectData, "financial data not provided")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a.log.Debugw("Running financial analysis", "client", in.ClientName)
	return &FinancialPayload{Result: frameworks.AnalyzeFinancial(in.Financial)}, nil
}

// FinancialPayload is the financial agent's output.
type FinancialPayload struct {
	Result *frameworks.FinancialResult
}

// Summary implements Payload.
func (p *FinancialPayload) Summary() string {
	recs := p.Result.Recs
	if len(recs) > 2 {
		recs = recs[:2]
	}
	return fmt.Sprintf("Overall assessment: %s Operating margin: %s%%, recommendations: %s",
		p.Result.Assessment, p.Result.Profitability.OperatingMargin.StringFixed(1), strings.Join(recs, " "))
}

// Recommendations implements Payload.
func (p *FinancialPayload) Recommendations() []string { return p.Result.Recs }

// Render implements Payload.
func (p *FinancialPayload) Render() string { return p.Result.Format() }
