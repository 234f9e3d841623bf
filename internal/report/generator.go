package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	"consilium/internal/agents"
	"consilium/internal/metrics"
	"consilium/pkg/errors"
	"consilium/pkg/logger"
)

// Generator renders a consolidated analysis into a Markdown report.
type Generator struct {
	log *logger.Logger
}

// NewGenerator creates a report generator.
func NewGenerator() *Generator {
	return &Generator{log: logger.Get().With("component", "report")}
}

// Generate renders the full Markdown report. The dialogue section, when
// present, comes right before the integrated recommendations.
func (g *Generator) Generate(res *agents.ConsolidatedResult) string {
	sections := []string{
		g.header(res),
		g.executiveSummary(res),
	}

	for _, r := range res.Results {
		if r.Status == agents.StatusSuccess {
			sections = append(sections, g.agentSection(r))
		}
	}

	if excluded := g.excludedAgents(res); excluded != "" {
		sections = append(sections, excluded)
	}

	if res.Dialogue != nil && res.Dialogue.Occurred {
		sections = append(sections, g.dialogueSection(res.Dialogue))
	}

	sections = append(sections,
		g.integratedRecommendations(res),
		g.actionPlan(),
		g.footer(res),
	)

	metrics.ReportRenders.WithLabelValues("markdown").Inc()
	return strings.Join(sections, "\n\n")
}

// Export writes the Markdown report to path.
func (g *Generator) Export(res *agents.ConsolidatedResult, path string) error {
	content := g.Generate(res)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errors.Wrapf(err, "write report to %s", path)
	}

	g.log.Infow("Report exported", "path", path, "run_id", res.RunID.String())
	return nil
}

func (g *Generator) header(res *agents.ConsolidatedResult) string {
	var b strings.Builder

	b.WriteString("# Integrated Strategy Consulting Report\n\n")
	b.WriteString("---\n\n")
	b.WriteString("## Project\n\n")
	fmt.Fprintf(&b, "- **Client**: %s\n", res.ClientName)
	fmt.Fprintf(&b, "- **Industry**: %s\n", valueOrNA(res.Industry))
	fmt.Fprintf(&b, "- **Challenge**: %s\n", valueOrNA(res.Challenge))
	fmt.Fprintf(&b, "- **Analyzed**: %s\n", res.CreatedAt.Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(&b, "- **Run**: %s\n", res.RunID.String())

	return b.String()
}

func (g *Generator) executiveSummary(res *agents.ConsolidatedResult) string {
	var b strings.Builder
	b.WriteString("## Executive Summary\n\n")

	successful := 0
	for _, r := range res.Results {
		if r.Status == agents.StatusSuccess {
			successful++
		}
	}
	if successful == 0 {
		b.WriteString("No analysis could be completed.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "This report combines %d analytical perspectives:\n\n", successful)

	for _, r := range res.Results {
		if r.Status != agents.StatusSuccess {
			continue
		}
		switch payload := r.Payload.(type) {
		case *agents.MarketPayload:
			b.WriteString("### Market Analysis\n\n")
			fmt.Fprintf(&b, "- Market attractiveness: **%s**\n", payload.Result.Attractiveness)
			fmt.Fprintf(&b, "- Market size: %s\n", humanize.Commaf(payload.Result.MarketSize))
			fmt.Fprintf(&b, "- Growth rate: %.1f%%\n", payload.Result.GrowthRate)
		case *agents.FinancialPayload:
			b.WriteString("### Financial Analysis\n\n")
			fmt.Fprintf(&b, "- Overall assessment: **%s**\n", payload.Result.Assessment)
			fmt.Fprintf(&b, "- Operating margin: %s%% (%s)\n",
				payload.Result.Profitability.OperatingMargin.StringFixed(1),
				payload.Result.Profitability.OperatingMarginRating)
		case *agents.StrategyPayload:
			b.WriteString("### Strategy Analysis\n\n")
			b.WriteString("- Comprehensive analysis across strategic frameworks (3C, SWOT, Five Forces and others)\n")
		default:
			fmt.Fprintf(&b, "### %s\n\n- %s\n", sectionTitle(r.Role), r.Payload.Summary())
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func (g *Generator) agentSection(r agents.Result) string {
	var b strings.Builder

	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "## %s\n\n", sectionTitle(r.Role))
	b.WriteString(r.Payload.Render())

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func (g *Generator) excludedAgents(res *agents.ConsolidatedResult) string {
	var lines []string
	for _, r := range res.Results {
		switch r.Status {
		case agents.StatusSkipped:
			lines = append(lines, fmt.Sprintf("- %s: skipped (%s)", sectionTitle(r.Role), r.SkipNote))
		case agents.StatusFailed:
			lines = append(lines, fmt.Sprintf("- %s: failed (%s)", sectionTitle(r.Role), r.Err))
		}
	}
	if len(lines) == 0 {
		return ""
	}

	return "---\n\n## Analyses Not Included\n\n" + strings.Join(lines, "\n") + "\n"
}

func (g *Generator) dialogueSection(d *agents.DialogueResult) string {
	var b strings.Builder

	b.WriteString("---\n\n")
	b.WriteString("## Inter-Agent Dialogue\n\n")
	b.WriteString("The analysts debated their findings and reached the following agreements.\n\n")

	if len(d.ConsensusItems) > 0 {
		b.WriteString("### Consensus\n\n")
		for i, item := range d.ConsensusItems {
			fmt.Fprintf(&b, "%d. %s\n", i+1, item)
		}
		b.WriteString("\n")
	}

	if len(d.ActionItems) > 0 {
		b.WriteString("### Priority Actions\n\n")
		for i, item := range d.ActionItems {
			fmt.Fprintf(&b, "%d. %s\n", i+1, item)
		}
		b.WriteString("\n")
	}

	if d.FullConsensus != "" {
		b.WriteString("### Full Discussion\n\n")
		b.WriteString(d.FullConsensus)
		b.WriteString("\n")
	}

	if d.Note != "" {
		fmt.Fprintf(&b, "\n*Note: %s*\n", d.Note)
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func (g *Generator) integratedRecommendations(res *agents.ConsolidatedResult) string {
	var b strings.Builder

	b.WriteString("---\n\n")
	b.WriteString("## Integrated Recommendations\n\n")

	type taggedRec struct {
		tag string
		rec string
	}
	var all []taggedRec
	for _, r := range res.Results {
		if r.Status != agents.StatusSuccess {
			continue
		}
		for _, rec := range r.Payload.Recommendations() {
			all = append(all, taggedRec{tag: string(r.Role), rec: rec})
		}
	}

	if len(all) == 0 {
		b.WriteString("No recommendations could be produced.\n")
		return b.String()
	}

	b.WriteString("Recommendations from each analysis, consolidated and prioritized:\n\n")
	for i, tr := range all {
		fmt.Fprintf(&b, "%d. **[%s]** %s\n", i+1, tr.tag, tr.rec)
	}

	return b.String()
}

func (g *Generator) actionPlan() string {
	return strings.Join([]string{
		"## Action Plan",
		"",
		"A concrete plan for executing the recommendations:",
		"",
		"### Short term (1-3 months)",
		"- Collect data and run detailed analyses",
		"- Plan the highest-priority initiatives",
		"- Align stakeholders",
		"",
		"### Mid term (3-6 months)",
		"- Start executing priority initiatives",
		"- Define KPIs and set up monitoring",
		"- Review progress and adjust course",
		"",
		"### Long term (6-12 months)",
		"- Measure and evaluate initiative impact",
		"- Plan the next strategic phase",
		"- Establish a continuous improvement cycle",
	}, "\n")
}

func (g *Generator) footer(res *agents.ConsolidatedResult) string {
	return fmt.Sprintf("---\n\n*Generated by the multi-agent analysis system (agents: %d, success rate: %.1f%%).*",
		res.Summary.TotalAgents, res.Summary.SuccessRate)
}

func sectionTitle(role agents.Role) string {
	switch role {
	case agents.RoleMarket:
		return "Market Analysis"
	case agents.RoleFinancial:
		return "Financial Analysis"
	case agents.RoleStrategy:
		return "Strategy Analysis"
	default:
		return string(role)
	}
}

func valueOrNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
