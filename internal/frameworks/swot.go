package frameworks

import (
	"fmt"
	"strings"
)

// Cross-SWOT strategy types.
const (
	StrategySO = "SO" // strengths x opportunities
	StrategyST = "ST" // strengths x threats
	StrategyWO = "WO" // weaknesses x opportunities
	StrategyWT = "WT" // weaknesses x threats
)

// SWOTResult is the output of the SWOT analysis framework.
type SWOTResult struct {
	Strengths     []string
	Weaknesses    []string
	Opportunities []string
	Threats       []string
	Strategies    []CrossStrategy
	Summary       string
}

// CrossStrategy is one cross-SWOT strategy derived from pairing internal and
// external factors.
type CrossStrategy struct {
	Type        string
	Name        string
	Description string
}

// AnalyzeSWOT runs the SWOT analysis and derives cross-SWOT strategies.
func AnalyzeSWOT(strengths, weaknesses, opportunities, threats []string) *SWOTResult {
	res := &SWOTResult{
		Strengths:     strengths,
		Weaknesses:    weaknesses,
		Opportunities: opportunities,
		Threats:       threats,
		Strategies:    crossStrategies(strengths, weaknesses, opportunities, threats),
	}
	res.Summary = swotSummary(res)
	return res
}

func crossStrategies(strengths, weaknesses, opportunities, threats []string) []CrossStrategy {
	var out []CrossStrategy

	if len(strengths) > 0 && len(opportunities) > 0 {
		out = append(out, CrossStrategy{
			Type:        StrategySO,
			Name:        "offensive strategy",
			Description: fmt.Sprintf("Leverage the strength %q to capture the opportunity %q.", strengths[0], opportunities[0]),
		})
	}
	if len(strengths) > 0 && len(threats) > 0 {
		out = append(out, CrossStrategy{
			Type:        StrategyST,
			Name:        "differentiation strategy",
			Description: fmt.Sprintf("Leverage the strength %q to minimize the impact of the threat %q.", strengths[0], threats[0]),
		})
	}
	if len(weaknesses) > 0 && len(opportunities) > 0 {
		out = append(out, CrossStrategy{
			Type:        StrategyWO,
			Name:        "improvement strategy",
			Description: fmt.Sprintf("Address the weakness %q to capture the opportunity %q.", weaknesses[0], opportunities[0]),
		})
	}
	if len(weaknesses) > 0 && len(threats) > 0 {
		out = append(out, CrossStrategy{
			Type:        StrategyWT,
			Name:        "defensive strategy",
			Description: fmt.Sprintf("Contain the combined impact of the weakness %q and the threat %q.", weaknesses[0], threats[0]),
		})
	}

	return out
}

func swotSummary(res *SWOTResult) string {
	parts := []string{
		fmt.Sprintf("Internal: %d strengths, %d weaknesses.", len(res.Strengths), len(res.Weaknesses)),
		fmt.Sprintf("External: %d opportunities, %d threats.", len(res.Opportunities), len(res.Threats)),
	}
	if len(res.Strategies) > 0 {
		primary := res.Strategies[0]
		parts = append(parts, fmt.Sprintf("Primary strategy: %s (%s).", primary.Type, primary.Name))
	}
	return strings.Join(parts, " ")
}

// Format renders the result as a readable plain-text block for reports.
func (r *SWOTResult) Format() string {
	var b strings.Builder

	section := func(title string, items []string) {
		fmt.Fprintf(&b, "%s:\n", title)
		for i, item := range items {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, item)
		}
		b.WriteString("\n")
	}

	section("Strengths", r.Strengths)
	section("Weaknesses", r.Weaknesses)
	section("Opportunities", r.Opportunities)
	section("Threats", r.Threats)

	if len(r.Strategies) > 0 {
		b.WriteString("Cross-SWOT strategies:\n")
		for _, s := range r.Strategies {
			fmt.Fprintf(&b, "  %s (%s): %s\n", s.Type, s.Name, s.Description)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Summary: %s\n", r.Summary)

	return b.String()
}
