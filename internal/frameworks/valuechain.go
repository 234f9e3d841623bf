package frameworks

import (
	"fmt"
	"strings"

	"consilium/internal/project"
)

// Activity kinds in the value chain.
const (
	ActivityPrimary = "primary"
	ActivitySupport = "support"
)

// ValueChainResult is the output of the value chain analysis framework.
type ValueChainResult struct {
	Primary       []ChainActivity
	Support       []ChainActivity
	ValuePoints   []string
	Advantages    []string
	Opportunities []string
}

// ChainActivity is one analyzed value-chain activity.
type ChainActivity struct {
	Name                 string
	Kind                 string
	Description          string
	CostDriver           string
	ValueAdded           string
	CompetitiveAdvantage string
}

// Canonical activity keys and display names, in chain order.
var primaryActivityNames = []struct{ key, name, defaultDesc string }{
	{"inbound_logistics", "inbound logistics", "receiving, storing and distributing inputs"},
	{"operations", "operations", "producing the product or service"},
	{"outbound_logistics", "outbound logistics", "storing and delivering the product"},
	{"marketing_sales", "marketing and sales", "promoting and selling the product"},
	{"service", "service", "after-sales service and maintenance"},
}

var supportActivityNames = []struct{ key, name, defaultDesc string }{
	{"infrastructure", "firm infrastructure", "management, finance and legal"},
	{"hrm", "human resource management", "recruiting, developing and evaluating people"},
	{"technology", "technology development", "R&D and process improvement"},
	{"procurement", "procurement", "purchasing materials and equipment"},
}

// AnalyzeValueChain runs the value chain analysis over the activity data.
func AnalyzeValueChain(data *project.ValueChainData) *ValueChainResult {
	res := &ValueChainResult{}

	for _, meta := range primaryActivityNames {
		if in, ok := data.Primary[meta.key]; ok {
			res.Primary = append(res.Primary, buildActivity(meta.name, ActivityPrimary, meta.defaultDesc, in))
		}
	}
	for _, meta := range supportActivityNames {
		if in, ok := data.Support[meta.key]; ok {
			res.Support = append(res.Support, buildActivity(meta.name, ActivitySupport, meta.defaultDesc, in))
		}
	}

	for _, a := range append(append([]ChainActivity{}, res.Primary...), res.Support...) {
		if a.ValueAdded != "" {
			res.ValuePoints = append(res.ValuePoints, fmt.Sprintf("%s: %s", a.Name, a.ValueAdded))
		}
		if a.CompetitiveAdvantage != "" {
			res.Advantages = append(res.Advantages, fmt.Sprintf("%s: %s", a.Name, a.CompetitiveAdvantage))
		}
		if strings.Contains(strings.ToLower(a.CostDriver), "high") {
			res.Opportunities = append(res.Opportunities, fmt.Sprintf("reduce costs in %s", a.Name))
		}
	}

	return res
}

func buildActivity(name, kind, defaultDesc string, in project.ActivityInput) ChainActivity {
	desc := in.Description
	if desc == "" {
		desc = defaultDesc
	}
	return ChainActivity{
		Name:                 name,
		Kind:                 kind,
		Description:          desc,
		CostDriver:           in.CostDriver,
		ValueAdded:           in.ValueAdded,
		CompetitiveAdvantage: in.CompetitiveAdvantage,
	}
}

// Format renders the result as a readable plain-text block for reports.
func (r *ValueChainResult) Format() string {
	var b strings.Builder

	writeActivities := func(title string, activities []ChainActivity) {
		if len(activities) == 0 {
			return
		}
		fmt.Fprintf(&b, "%s:\n", title)
		for _, a := range activities {
			fmt.Fprintf(&b, "  - %s: %s\n", a.Name, a.Description)
			if a.ValueAdded != "" {
				fmt.Fprintf(&b, "    value added: %s\n", a.ValueAdded)
			}
		}
		b.WriteString("\n")
	}

	writeActivities("Primary activities", r.Primary)
	writeActivities("Support activities", r.Support)

	list := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		fmt.Fprintf(&b, "%s:\n", title)
		for i, item := range items {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, item)
		}
		b.WriteString("\n")
	}

	list("Value creation points", r.ValuePoints)
	list("Competitive advantages", r.Advantages)
	list("Improvement opportunities", r.Opportunities)

	return strings.TrimRight(b.String(), "\n") + "\n"
}
