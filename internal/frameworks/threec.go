package frameworks

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"consilium/internal/project"
)

// ThreeCResult is the output of the 3C (customer, competitor, company)
// analysis framework.
type ThreeCResult struct {
	Customer   CustomerView
	Competitor CompetitorView
	Company    CompanyView
	Insights   []string
}

// CustomerView summarizes the demand side.
type CustomerView struct {
	MarketSize     float64
	GrowthRate     float64
	Segments       []string
	Needs          []string
	BuyingBehavior string
}

// CompetitorView summarizes the competitive landscape.
type CompetitorView struct {
	Direct     []project.Competitor
	Indirect   []project.Competitor
	ShareByRev map[string]float64
	Advantages map[string]CompetitiveAdvantage
}

// CompetitiveAdvantage classifies one competitor's sources of advantage.
type CompetitiveAdvantage struct {
	CostLeadership  bool
	Differentiation []string
	FocusStrategy   string
}

// CompanyView summarizes the client itself.
type CompanyView struct {
	CoreCompetencies []string
	Resources        map[string]any
	ValueProposition string
	Position         string
}

// AnalyzeThreeC runs the 3C analysis over customer, competitor and company
// data. Any of the three inputs may be nil.
func AnalyzeThreeC(customer *project.CustomerData, competitors *project.CompetitorData, company *project.CompanyData) *ThreeCResult {
	res := &ThreeCResult{}

	if customer != nil {
		res.Customer = CustomerView{
			MarketSize:     customer.MarketSize,
			GrowthRate:     customer.GrowthRate,
			Segments:       customer.Segments,
			Needs:          customer.Needs,
			BuyingBehavior: customer.BuyingBehavior,
		}
	}

	if competitors != nil {
		res.Competitor = analyzeCompetitors(competitors.Competitors)
	}

	if company != nil {
		res.Company = CompanyView{
			CoreCompetencies: company.CoreCompetencies,
			Resources:        company.Resources,
			ValueProposition: company.ValueProposition,
			Position:         company.MarketPosition,
		}
	}

	res.Insights = threeCInsights(res, competitors)
	return res
}

func analyzeCompetitors(competitors []project.Competitor) CompetitorView {
	view := CompetitorView{
		ShareByRev: make(map[string]float64),
		Advantages: make(map[string]CompetitiveAdvantage),
	}

	var totalRevenue float64
	for _, c := range competitors {
		totalRevenue += c.Revenue
		switch c.Type {
		case "indirect":
			view.Indirect = append(view.Indirect, c)
		default:
			view.Direct = append(view.Direct, c)
		}
		view.Advantages[c.Name] = CompetitiveAdvantage{
			CostLeadership:  c.CostAdvantage,
			Differentiation: c.UniqueFeatures,
			FocusStrategy:   c.NicheMarket,
		}
	}

	if totalRevenue > 0 {
		for _, c := range competitors {
			view.ShareByRev[c.Name] = math.Round(c.Revenue/totalRevenue*100*100) / 100
		}
	}

	return view
}

func threeCInsights(res *ThreeCResult, competitors *project.CompetitorData) []string {
	var insights []string

	if res.Customer.GrowthRate > 10 {
		insights = append(insights, fmt.Sprintf("The market is growing fast (%.1f%%): there is room for aggressive investment.", res.Customer.GrowthRate))
	} else if res.Customer.GrowthRate < 0 {
		insights = append(insights, fmt.Sprintf("The market is shrinking (%.1f%%): a cautious strategy is needed.", res.Customer.GrowthRate))
	}

	// Competencies no competitor claims as strengths are unique.
	if len(res.Company.CoreCompetencies) > 0 && competitors != nil {
		competitorStrengths := make(map[string]bool)
		for _, c := range competitors.Competitors {
			for _, s := range c.Strengths {
				competitorStrengths[s] = true
			}
		}
		var unique []string
		for _, comp := range res.Company.CoreCompetencies {
			if !competitorStrengths[comp] {
				unique = append(unique, comp)
			}
		}
		if len(unique) > 0 {
			sort.Strings(unique)
			insights = append(insights, fmt.Sprintf("Unique strengths: %s.", strings.Join(unique, ", ")))
		}
	}

	if res.Customer.MarketSize > 100_000_000_000 {
		insights = append(insights, fmt.Sprintf("The market is large (%s): economies of scale are attainable.", humanize.Commaf(res.Customer.MarketSize)))
	} else if res.Customer.MarketSize > 0 && res.Customer.MarketSize < 10_000_000_000 {
		insights = append(insights, fmt.Sprintf("The market is a niche (%s): a focus strategy is effective.", humanize.Commaf(res.Customer.MarketSize)))
	}

	return insights
}

// Format renders the result as a readable plain-text block for reports.
func (r *ThreeCResult) Format() string {
	var b strings.Builder

	b.WriteString("Customer:\n")
	if r.Customer.MarketSize > 0 {
		fmt.Fprintf(&b, "  Market size: %s\n", humanize.Commaf(r.Customer.MarketSize))
	}
	fmt.Fprintf(&b, "  Growth rate: %.1f%%\n", r.Customer.GrowthRate)
	if len(r.Customer.Segments) > 0 {
		fmt.Fprintf(&b, "  Segments: %s\n", strings.Join(r.Customer.Segments, ", "))
	}
	if len(r.Customer.Needs) > 0 {
		fmt.Fprintf(&b, "  Needs: %s\n", strings.Join(r.Customer.Needs, ", "))
	}

	b.WriteString("\nCompetitor:\n")
	fmt.Fprintf(&b, "  Direct competitors: %d\n", len(r.Competitor.Direct))
	if len(r.Competitor.ShareByRev) > 0 {
		b.WriteString("  Revenue share:\n")
		names := make([]string, 0, len(r.Competitor.ShareByRev))
		for name := range r.Competitor.ShareByRev {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&b, "    - %s: %.1f%%\n", name, r.Competitor.ShareByRev[name])
		}
	}

	b.WriteString("\nCompany:\n")
	if len(r.Company.CoreCompetencies) > 0 {
		fmt.Fprintf(&b, "  Core competencies: %s\n", strings.Join(r.Company.CoreCompetencies, ", "))
	}
	if r.Company.ValueProposition != "" {
		fmt.Fprintf(&b, "  Value proposition: %s\n", r.Company.ValueProposition)
	}

	if len(r.Insights) > 0 {
		b.WriteString("\nStrategic insights:\n")
		for i, insight := range r.Insights {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, insight)
		}
	}

	return b.String()
}
