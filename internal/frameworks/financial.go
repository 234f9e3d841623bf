package frameworks

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"consilium/internal/project"
)

// Ratings used across profitability and health ratios.
const (
	RatingExcellent        = "excellent"
	RatingGood             = "good"
	RatingNeedsImprovement = "needs improvement"
	CashFlowHealthy        = "healthy"
	CashFlowNeedsAttention = "needs attention"
)

// FinancialResult is the output of the financial analysis framework.
type FinancialResult struct {
	Revenue         decimal.Decimal
	GrossProfit     decimal.Decimal
	OperatingProfit decimal.Decimal
	Profitability   ProfitabilityRatios
	Health          HealthRatios
	CashFlow        CashFlowAnalysis
	Assessment      string
	Recs            []string
}

// ProfitabilityRatios carries margin percentages and their ratings.
type ProfitabilityRatios struct {
	GrossMargin           decimal.Decimal
	GrossMarginRating     string
	OperatingMargin       decimal.Decimal
	OperatingMarginRating string
}

// HealthRatios carries balance-sheet health percentages and ratings.
type HealthRatios struct {
	EquityRatio       decimal.Decimal
	EquityRatioRating string
	DebtRatio         decimal.Decimal
	DebtRatioRating   string
}

// CashFlowAnalysis classifies the three cash flow streams.
type CashFlowAnalysis struct {
	Operating    decimal.Decimal
	Investing    decimal.Decimal
	Financing    decimal.Decimal
	Total        decimal.Decimal
	FreeCashFlow decimal.Decimal
	Pattern      string
	Health       string
}

var hundred = decimal.NewFromInt(100)

// AnalyzeFinancial runs the financial analysis framework over the client's
// financial figures.
func AnalyzeFinancial(data *project.FinancialData) *FinancialResult {
	grossProfit := data.Revenue.Sub(data.CostOfSales)
	operatingProfit := grossProfit.Sub(data.OperatingExpenses)

	res := &FinancialResult{
		Revenue:         data.Revenue,
		GrossProfit:     grossProfit,
		OperatingProfit: operatingProfit,
		Profitability:   profitabilityRatios(data.Revenue, grossProfit, operatingProfit),
		Health:          healthRatios(data.Assets, data.Liabilities, data.Equity),
		CashFlow:        analyzeCashFlow(data.CashFlowOperating, data.CashFlowInvesting, data.CashFlowFinancing),
	}
	res.Assessment = financialAssessment(res)
	res.Recs = financialRecommendations(res)
	return res
}

func ratio(numerator, denominator decimal.Decimal) decimal.Decimal {
	if denominator.IsZero() {
		return decimal.Zero
	}
	return numerator.Div(denominator).Mul(hundred)
}

func profitabilityRatios(revenue, gross, operating decimal.Decimal) ProfitabilityRatios {
	grossMargin := ratio(gross, revenue)
	operatingMargin := ratio(operating, revenue)

	return ProfitabilityRatios{
		GrossMargin:           grossMargin,
		GrossMarginRating:     rateThreshold(grossMargin, 40, 25),
		OperatingMargin:       operatingMargin,
		OperatingMarginRating: rateThreshold(operatingMargin, 15, 8),
	}
}

// rateThreshold rates a percentage: above excellent -> excellent, above good
// -> good, otherwise needs improvement.
func rateThreshold(value decimal.Decimal, excellent, good int64) string {
	switch {
	case value.GreaterThan(decimal.NewFromInt(excellent)):
		return RatingExcellent
	case value.GreaterThan(decimal.NewFromInt(good)):
		return RatingGood
	default:
		return RatingNeedsImprovement
	}
}

func healthRatios(assets, liabilities, equity decimal.Decimal) HealthRatios {
	equityRatio := ratio(equity, assets)
	debtRatio := ratio(liabilities, equity)

	debtRating := RatingNeedsImprovement
	switch {
	case debtRatio.LessThan(decimal.NewFromInt(100)):
		debtRating = RatingExcellent
	case debtRatio.LessThan(decimal.NewFromInt(200)):
		debtRating = RatingGood
	}

	return HealthRatios{
		EquityRatio:       equityRatio,
		EquityRatioRating: rateThreshold(equityRatio, 50, 30),
		DebtRatio:         debtRatio,
		DebtRatioRating:   debtRating,
	}
}

func analyzeCashFlow(operating, investing, financing decimal.Decimal) CashFlowAnalysis {
	free := operating.Add(investing)

	health := CashFlowNeedsAttention
	if operating.IsPositive() && free.IsPositive() {
		health = CashFlowHealthy
	}

	return CashFlowAnalysis{
		Operating:    operating,
		Investing:    investing,
		Financing:    financing,
		Total:        operating.Add(investing).Add(financing),
		FreeCashFlow: free,
		Pattern:      cashFlowPattern(operating, investing, financing),
		Health:       health,
	}
}

func cashFlowPattern(operating, investing, financing decimal.Decimal) string {
	opPos := operating.IsPositive()
	invPos := investing.IsPositive()
	finPos := financing.IsPositive()

	switch {
	case opPos && !invPos && !finPos:
		return "mature company (earning from operations, investing and repaying debt)"
	case opPos && !invPos && finPos:
		return "growth company (earning from operations, raising funds to invest)"
	case opPos && invPos && finPos:
		return "asset seller (raising cash by selling assets)"
	case !opPos && invPos && finPos:
		return "distressed company (operating losses covered by asset sales and financing)"
	case opPos && invPos && !finPos:
		return "restructuring company (selling assets to repay debt)"
	default:
		return "other pattern"
	}
}

func financialAssessment(res *FinancialResult) string {
	score := func(rating string) int {
		switch rating {
		case RatingExcellent:
			return 3
		case RatingGood:
			return 2
		default:
			return 1
		}
	}

	total := score(res.Profitability.GrossMarginRating) + score(res.Health.EquityRatioRating)
	if res.CashFlow.Health == CashFlowHealthy {
		total += 3
	} else {
		total++
	}

	// Average over the three components, scaled by 2 to avoid float math.
	switch {
	case total*2 >= 15: // avg >= 2.5
		return "The financial position is very strong."
	case total*2 >= 12: // avg >= 2.0
		return "The financial position is sound, with some room for improvement."
	case total*2 >= 9: // avg >= 1.5
		return "The financial position is moderate; several areas need improvement."
	default:
		return "The financial position has significant issues and needs urgent attention."
	}
}

func financialRecommendations(res *FinancialResult) []string {
	var recs []string

	if res.Profitability.GrossMarginRating == RatingNeedsImprovement {
		recs = append(recs, "Gross margin is low: review cost of sales and pricing strategy.")
	}
	if res.Profitability.OperatingMarginRating == RatingNeedsImprovement {
		recs = append(recs, "Operating margin is low: optimize operating expenses.")
	}
	if res.Health.EquityRatioRating == RatingNeedsImprovement {
		recs = append(recs, "Equity ratio is low: strengthen the capital base through retained earnings or new equity.")
	}
	if res.Health.DebtRatioRating == RatingNeedsImprovement {
		recs = append(recs, "Debt ratio is high: reduce borrowings or raise additional capital.")
	}
	if res.CashFlow.Health == CashFlowNeedsAttention {
		recs = append(recs, "Cash flow is under pressure: strengthen cash generation from operations.")
	}
	if res.CashFlow.FreeCashFlow.IsNegative() {
		recs = append(recs, "Free cash flow is negative: reprioritize investments and improve capital efficiency.")
	}

	if len(recs) == 0 {
		recs = append(recs, "The financial position is healthy: maintain the current strategy while exploring further growth.")
	}

	return recs
}

// Format renders the result as a readable plain-text block for reports.
func (r *FinancialResult) Format() string {
	var b strings.Builder

	b.WriteString("Profit and loss:\n")
	fmt.Fprintf(&b, "  Revenue: %s\n", formatMoney(r.Revenue))
	fmt.Fprintf(&b, "  Gross profit: %s\n", formatMoney(r.GrossProfit))
	fmt.Fprintf(&b, "  Operating profit: %s\n", formatMoney(r.OperatingProfit))

	b.WriteString("\nProfitability:\n")
	fmt.Fprintf(&b, "  Gross margin: %s%% (%s)\n", r.Profitability.GrossMargin.StringFixed(1), r.Profitability.GrossMarginRating)
	fmt.Fprintf(&b, "  Operating margin: %s%% (%s)\n", r.Profitability.OperatingMargin.StringFixed(1), r.Profitability.OperatingMarginRating)

	b.WriteString("\nFinancial health:\n")
	fmt.Fprintf(&b, "  Equity ratio: %s%% (%s)\n", r.Health.EquityRatio.StringFixed(1), r.Health.EquityRatioRating)
	fmt.Fprintf(&b, "  Debt ratio: %s%% (%s)\n", r.Health.DebtRatio.StringFixed(1), r.Health.DebtRatioRating)

	b.WriteString("\nCash flow:\n")
	fmt.Fprintf(&b, "  Operating: %s\n", formatMoney(r.CashFlow.Operating))
	fmt.Fprintf(&b, "  Investing: %s\n", formatMoney(r.CashFlow.Investing))
	fmt.Fprintf(&b, "  Financing: %s\n", formatMoney(r.CashFlow.Financing))
	fmt.Fprintf(&b, "  Free cash flow: %s\n", formatMoney(r.CashFlow.FreeCashFlow))
	fmt.Fprintf(&b, "  Pattern: %s\n", r.CashFlow.Pattern)
	fmt.Fprintf(&b, "  Health: %s\n", r.CashFlow.Health)

	b.WriteString("\nOverall assessment:\n")
	fmt.Fprintf(&b, "  %s\n", r.Assessment)

	b.WriteString("\nRecommendations:\n")
	for i, rec := range r.Recs {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, rec)
	}

	return b.String()
}
