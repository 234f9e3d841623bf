package frameworks

import (
	"fmt"
	"strings"

	"consilium/internal/project"
)

// ForceLevel is the assessed intensity of one competitive force.
type ForceLevel string

const (
	ForceHigh   ForceLevel = "high"
	ForceMedium ForceLevel = "medium"
	ForceLow    ForceLevel = "low"
)

// Force is the assessment of one of Porter's five forces.
type Force struct {
	Name        string
	Level       ForceLevel
	Factors     []string
	Description string
}

// FiveForcesResult is the output of the Five Forces analysis framework.
type FiveForcesResult struct {
	NewEntrants    Force
	Substitutes    Force
	BuyerPower     Force
	SupplierPower  Force
	Rivalry        Force
	Attractiveness string
	Implications   []string
}

// AnalyzeFiveForces runs Porter's Five Forces over the qualitative ratings.
func AnalyzeFiveForces(data *project.ForcesData) *FiveForcesResult {
	res := &FiveForcesResult{
		NewEntrants:   assessNewEntrants(data),
		Substitutes:   assessSubstitutes(data),
		BuyerPower:    assessBuyerPower(data),
		SupplierPower: assessSupplierPower(data),
		Rivalry:       assessRivalry(data),
	}
	res.Attractiveness = industryAttractiveness(res)
	res.Implications = forceImplications(res)
	return res
}

func assessNewEntrants(data *project.ForcesData) Force {
	var factors []string
	score := 0

	// Barriers lower the threat.
	if data.CapitalRequirements == "high" {
		factors = append(factors, "high capital requirements")
		score--
	} else {
		score++
	}
	if data.EconomiesOfScale == "important" {
		factors = append(factors, "economies of scale matter")
		score--
	} else {
		score++
	}
	if data.BrandLoyalty == "strong" {
		factors = append(factors, "strong brand loyalty")
		score--
	} else {
		score++
	}
	if data.Regulations == "strict" {
		factors = append(factors, "strict regulations")
		score--
	} else {
		score++
	}

	level, desc := ForceMedium, "The threat of new entrants is moderate."
	switch {
	case score <= -2:
		level, desc = ForceLow, "Entry barriers are high: the threat of new entrants is low."
	case score >= 2:
		level, desc = ForceHigh, "Entry barriers are low: the threat of new entrants is high."
	}

	return Force{Name: "threat of new entrants", Level: level, Factors: factors, Description: desc}
}

func assessSubstitutes(data *project.ForcesData) Force {
	var factors []string
	score := 0

	if data.SubstituteAvail == "many" {
		factors = append(factors, "many substitutes available")
		score++
	} else {
		score--
	}
	if data.SwitchingCost == "low" {
		factors = append(factors, "low switching cost")
		score++
	} else {
		score--
	}
	if data.SubstitutePricePerf == "better" {
		factors = append(factors, "substitutes offer better price performance")
		score++
	} else {
		score--
	}

	level, desc := ForceMedium, "The threat of substitutes is moderate."
	switch {
	case score >= 2:
		level, desc = ForceHigh, "The threat of substitutes is high."
	case score <= -2:
		level, desc = ForceLow, "The threat of substitutes is low."
	}

	return Force{Name: "threat of substitutes", Level: level, Factors: factors, Description: desc}
}

func assessBuyerPower(data *project.ForcesData) Force {
	var factors []string
	score := 0

	if data.BuyerConcentration == "high" {
		factors = append(factors, "high buyer concentration")
		score++
	} else {
		score--
	}
	if data.SwitchingCost == "low" {
		factors = append(factors, "low switching cost")
		score++
	} else {
		score--
	}
	if data.BuyerPriceSensitivity == "high" {
		factors = append(factors, "high price sensitivity")
		score++
	} else {
		score--
	}

	level, desc := ForceMedium, "Buyer bargaining power is moderate."
	switch {
	case score >= 2:
		level, desc = ForceHigh, "Buyer bargaining power is strong."
	case score <= -2:
		level, desc = ForceLow, "Buyer bargaining power is weak."
	}

	return Force{Name: "buyer bargaining power", Level: level, Factors: factors, Description: desc}
}

func assessSupplierPower(data *project.ForcesData) Force {
	var factors []string
	score := 0

	if data.SupplierConcentration == "high" {
		factors = append(factors, "high supplier concentration")
		score++
	} else {
		score--
	}
	if data.SwitchingCost == "high" {
		factors = append(factors, "high switching cost")
		score++
	} else {
		score--
	}
	if data.InputDifferentiation == "high" {
		factors = append(factors, "highly differentiated inputs")
		score++
	} else {
		score--
	}

	level, desc := ForceMedium, "Supplier bargaining power is moderate."
	switch {
	case score >= 2:
		level, desc = ForceHigh, "Supplier bargaining power is strong."
	case score <= -2:
		level, desc = ForceLow, "Supplier bargaining power is weak."
	}

	return Force{Name: "supplier bargaining power", Level: level, Factors: factors, Description: desc}
}

func assessRivalry(data *project.ForcesData) Force {
	var factors []string
	score := 0

	if data.CompetitorCount == "many" {
		factors = append(factors, "many competitors")
		score++
	} else {
		score--
	}
	if data.IndustryGrowth == "slow" {
		factors = append(factors, "slow industry growth")
		score++
	} else {
		score--
	}
	if data.InputDifferentiation == "low" {
		factors = append(factors, "low product differentiation")
		score++
	} else {
		score--
	}
	if data.ExitBarriers == "high" {
		factors = append(factors, "high exit barriers")
		score++
	} else {
		score--
	}

	level, desc := ForceMedium, "Industry rivalry is moderate."
	switch {
	case score >= 2:
		level, desc = ForceHigh, "Industry rivalry is intense."
	case score <= -2:
		level, desc = ForceLow, "Industry rivalry is mild."
	}

	return Force{Name: "industry rivalry", Level: level, Factors: factors, Description: desc}
}

func industryAttractiveness(res *FiveForcesResult) string {
	score := 0
	for _, f := range []Force{res.NewEntrants, res.Substitutes, res.BuyerPower, res.SupplierPower, res.Rivalry} {
		switch f.Level {
		case ForceHigh:
			score--
		case ForceLow:
			score++
		}
	}

	switch {
	case score >= 3:
		return "high attractiveness: a profitable industry"
	case score <= -3:
		return "low attractiveness: a tough competitive environment"
	default:
		return "moderate attractiveness: profitability depends on strategy"
	}
}

func forceImplications(res *FiveForcesResult) []string {
	var out []string

	if res.NewEntrants.Level == ForceHigh {
		out = append(out, "Build entry barriers through brand strength and economies of scale.")
	}
	if res.Substitutes.Level == ForceHigh {
		out = append(out, "Strengthen differentiation and customer loyalty against substitutes.")
	}
	if res.BuyerPower.Level == ForceHigh {
		out = append(out, "Raise switching costs through product differentiation.")
	}
	if res.SupplierPower.Level == ForceHigh {
		out = append(out, "Diversify suppliers or consider vertical integration.")
	}
	if res.Rivalry.Level == ForceHigh {
		out = append(out, "Focus on niche segments or pursue cost leadership.")
	}

	return out
}

// Format renders the result as a readable plain-text block for reports.
func (r *FiveForcesResult) Format() string {
	var b strings.Builder

	for _, f := range []Force{r.NewEntrants, r.Substitutes, r.BuyerPower, r.SupplierPower, r.Rivalry} {
		fmt.Fprintf(&b, "%s: %s\n", strings.ToUpper(f.Name[:1])+f.Name[1:], f.Level)
		fmt.Fprintf(&b, "  %s\n", f.Description)
		for _, factor := range f.Factors {
			fmt.Fprintf(&b, "  - %s\n", factor)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Industry attractiveness: %s\n", r.Attractiveness)

	if len(r.Implications) > 0 {
		b.WriteString("\nStrategic implications:\n")
		for i, imp := range r.Implications {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, imp)
		}
	}

	return b.String()
}
