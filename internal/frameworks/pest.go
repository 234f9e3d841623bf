package frameworks

import (
	"fmt"
	"strings"

	"consilium/internal/project"
)

// Impact levels for PEST factors.
const (
	ImpactPositive = "positive"
	ImpactNegative = "negative"
	ImpactNeutral  = "neutral"
)

// PESTResult is the output of the PEST macro-environment analysis.
type PESTResult struct {
	Political     []PESTInsight
	Economic      []PESTInsight
	Social        []PESTInsight
	Technological []PESTInsight
	Opportunities []string
	Threats       []string
	Recs          []string
}

// PESTInsight is one classified macro-environment factor.
type PESTInsight struct {
	Category    string
	Factor      string
	Description string
	Impact      string
	Timeframe   string
}

// AnalyzePEST runs the PEST analysis over the macro-environment factors.
func AnalyzePEST(data *project.PESTData) *PESTResult {
	res := &PESTResult{
		Political:     classifyPESTFactors("Political", data.Political),
		Economic:      classifyPESTFactors("Economic", data.Economic),
		Social:        classifyPESTFactors("Social", data.Social),
		Technological: classifyPESTFactors("Technological", data.Technological),
	}

	for _, group := range [][]PESTInsight{res.Political, res.Economic, res.Social, res.Technological} {
		for _, f := range group {
			switch f.Impact {
			case ImpactPositive:
				res.Opportunities = append(res.Opportunities, fmt.Sprintf("%s: %s", f.Category, f.Factor))
			case ImpactNegative:
				res.Threats = append(res.Threats, fmt.Sprintf("%s: %s", f.Category, f.Factor))
			}
		}
	}

	res.Recs = pestRecommendations(res)
	return res
}

func classifyPESTFactors(category string, factors []project.PESTFactor) []PESTInsight {
	out := make([]PESTInsight, 0, len(factors))
	for _, f := range factors {
		impact := f.Impact
		switch impact {
		case ImpactPositive, ImpactNegative:
		default:
			impact = ImpactNeutral
		}
		timeframe := f.Timeframe
		if timeframe == "" {
			timeframe = "medium-term"
		}
		out = append(out, PESTInsight{
			Category:    category,
			Factor:      f.Factor,
			Description: f.Description,
			Impact:      impact,
			Timeframe:   timeframe,
		})
	}
	return out
}

func pestRecommendations(res *PESTResult) []string {
	var recs []string

	if len(res.Opportunities) > 0 {
		recs = append(recs, fmt.Sprintf("Incorporate the %d identified opportunities into the strategy.", len(res.Opportunities)))
	}
	if len(res.Threats) > 0 {
		recs = append(recs, fmt.Sprintf("Prepare risk management plans for the %d identified threats.", len(res.Threats)))
	}

	for _, f := range res.Technological {
		if f.Impact == ImpactPositive {
			recs = append(recs, "Invest in technology: advance digital transformation.")
			break
		}
	}
	for _, f := range res.Social {
		if f.Impact == ImpactPositive {
			recs = append(recs, "Adapt to social trends: develop products and services for shifting consumer needs.")
			break
		}
	}

	return recs
}

// Format renders the result as a readable plain-text block for reports.
func (r *PESTResult) Format() string {
	var b strings.Builder

	group := func(title string, insights []PESTInsight) {
		if len(insights) == 0 {
			return
		}
		fmt.Fprintf(&b, "%s:\n", title)
		for _, f := range insights {
			fmt.Fprintf(&b, "  - %s (%s, %s)\n", f.Factor, f.Impact, f.Timeframe)
			if f.Description != "" {
				fmt.Fprintf(&b, "    %s\n", f.Description)
			}
		}
		b.WriteString("\n")
	}

	group("Political", r.Political)
	group("Economic", r.Economic)
	group("Social", r.Social)
	group("Technological", r.Technological)

	if len(r.Opportunities) > 0 {
		b.WriteString("Key opportunities:\n")
		for i, o := range r.Opportunities {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, o)
		}
		b.WriteString("\n")
	}
	if len(r.Threats) > 0 {
		b.WriteString("Key threats:\n")
		for i, t := range r.Threats {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, t)
		}
		b.WriteString("\n")
	}
	if len(r.Recs) > 0 {
		b.WriteString("Recommendations:\n")
		for i, rec := range r.Recs {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, rec)
		}
	}

	return b.String()
}
