package project

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"consilium/pkg/errors"
)

// DefaultChallenge is used when the engagement does not state one.
const DefaultChallenge = "strengthen market competitiveness and sustain growth"

// Input carries all data for one consulting engagement. It is read-only for
// the duration of an orchestration run: agents receive a shared pointer and
// must not mutate it.
type Input struct {
	ClientName string `json:"client_name"`
	Industry   string `json:"industry,omitempty"`
	Challenge  string `json:"challenge,omitempty"`

	Market      *MarketData     `json:"market_analysis_data,omitempty"`
	Financial   *FinancialData  `json:"financial_data,omitempty"`
	Customer    *CustomerData   `json:"customer_data,omitempty"`
	Competitors *CompetitorData `json:"competitor_data,omitempty"`
	Company     *CompanyData    `json:"company_data,omitempty"`
	SWOT        *SWOTData       `json:"swot_data,omitempty"`
	Forces      *ForcesData     `json:"five_forces_data,omitempty"`
	PEST        *PESTData       `json:"pest_data,omitempty"`
	ValueChain  *ValueChainData `json:"value_chain_data,omitempty"`
}

// MarketData describes the client's market environment.
type MarketData struct {
	MarketSize       float64            `json:"market_size"`
	GrowthRate       float64            `json:"growth_rate"`
	Segments         []string           `json:"market_segments,omitempty"`
	Trends           []string           `json:"market_trends,omitempty"`
	CustomerSegments []CustomerSegment  `json:"customer_segments,omitempty"`
	ShareByCompany   map[string]float64 `json:"market_share_data,omitempty"`
}

// CustomerSegment describes one customer segment in detail.
type CustomerSegment struct {
	Name            string   `json:"name"`
	Size            float64  `json:"size,omitempty"`
	GrowthRate      float64  `json:"growth_rate,omitempty"`
	Characteristics []string `json:"characteristics,omitempty"`
}

// FinancialData carries the client's financial figures. Monetary amounts use
// decimals so ratio math stays exact regardless of currency magnitude.
type FinancialData struct {
	Revenue           decimal.Decimal `json:"revenue"`
	CostOfSales       decimal.Decimal `json:"cost_of_sales"`
	OperatingExpenses decimal.Decimal `json:"operating_expenses"`
	Assets            decimal.Decimal `json:"assets"`
	Liabilities       decimal.Decimal `json:"liabilities"`
	Equity            decimal.Decimal `json:"equity"`
	CashFlowOperating decimal.Decimal `json:"cash_flow_operating"`
	CashFlowInvesting decimal.Decimal `json:"cash_flow_investing"`
	CashFlowFinancing decimal.Decimal `json:"cash_flow_financing"`
}

// CustomerData describes the demand side for the 3C analysis.
type CustomerData struct {
	MarketSize     float64  `json:"market_size,omitempty"`
	GrowthRate     float64  `json:"growth_rate,omitempty"`
	Segments       []string `json:"segments,omitempty"`
	Needs          []string `json:"needs,omitempty"`
	BuyingBehavior string   `json:"buying_behavior,omitempty"`
}

// CompetitorData wraps the competitor list.
type CompetitorData struct {
	Competitors []Competitor `json:"competitors"`
}

// Competitor describes one competing company.
type Competitor struct {
	Name           string   `json:"name"`
	Type           string   `json:"type"` // direct | indirect
	Revenue        float64  `json:"revenue,omitempty"`
	Strengths      []string `json:"strengths,omitempty"`
	CostAdvantage  bool     `json:"cost_advantage,omitempty"`
	UniqueFeatures []string `json:"unique_features,omitempty"`
	NicheMarket    string   `json:"niche_market,omitempty"`
}

// CompanyData describes the client itself.
type CompanyData struct {
	CoreCompetencies []string       `json:"core_competencies,omitempty"`
	Resources        map[string]any `json:"resources,omitempty"`
	ValueProposition string         `json:"value_proposition,omitempty"`
	MarketPosition   string         `json:"market_position,omitempty"`
}

// SWOTData carries explicit SWOT inputs when the engagement provides them.
type SWOTData struct {
	Strengths     []string `json:"strengths,omitempty"`
	Weaknesses    []string `json:"weaknesses,omitempty"`
	Opportunities []string `json:"opportunities,omitempty"`
	Threats       []string `json:"threats,omitempty"`
}

// ForcesData carries qualitative ratings for the Five Forces analysis.
// Values follow the source questionnaires: "high"/"low", "many"/"few",
// "strict"/"loose" and so on.
type ForcesData struct {
	CapitalRequirements   string `json:"capital_requirements,omitempty"`
	EconomiesOfScale      string `json:"economies_of_scale,omitempty"`
	BrandLoyalty          string `json:"brand_loyalty,omitempty"`
	Regulations           string `json:"regulations,omitempty"`
	SubstituteAvail       string `json:"substitute_availability,omitempty"`
	SwitchingCost         string `json:"switching_cost,omitempty"`
	SubstitutePricePerf   string `json:"price_performance,omitempty"`
	BuyerConcentration    string `json:"buyer_concentration,omitempty"`
	BuyerPriceSensitivity string `json:"price_sensitivity,omitempty"`
	SupplierConcentration string `json:"supplier_concentration,omitempty"`
	InputDifferentiation  string `json:"input_differentiation,omitempty"`
	CompetitorCount       string `json:"competitor_count,omitempty"`
	IndustryGrowth        string `json:"industry_growth,omitempty"`
	ExitBarriers          string `json:"exit_barriers,omitempty"`
}

// PESTData carries macro-environment factors.
type PESTData struct {
	Political     []PESTFactor `json:"political,omitempty"`
	Economic      []PESTFactor `json:"economic,omitempty"`
	Social        []PESTFactor `json:"social,omitempty"`
	Technological []PESTFactor `json:"technological,omitempty"`
}

// PESTFactor is one macro-environment factor with its assessed impact.
type PESTFactor struct {
	Factor      string `json:"factor"`
	Description string `json:"description,omitempty"`
	Impact      string `json:"impact,omitempty"`    // positive | negative | neutral
	Timeframe   string `json:"timeframe,omitempty"` // short-term | medium-term | long-term
}

// ValueChainData maps value-chain activities keyed by canonical activity
// names (inbound_logistics, operations, outbound_logistics, marketing_sales,
// service for primary; infrastructure, hrm, technology, procurement for
// support).
type ValueChainData struct {
	Primary map[string]ActivityInput `json:"primary_activities,omitempty"`
	Support map[string]ActivityInput `json:"support_activities,omitempty"`
}

// ActivityInput describes one value-chain activity.
type ActivityInput struct {
	Description          string `json:"description,omitempty"`
	CostDriver           string `json:"cost_driver,omitempty"`
	ValueAdded           string `json:"value_added,omitempty"`
	CompetitiveAdvantage string `json:"competitive_advantage,omitempty"`
}

// Normalize fills defaults and trims whitespace. Call once before handing the
// input to the orchestrator.
func (in *Input) Normalize() error {
	in.ClientName = strings.TrimSpace(in.ClientName)
	if in.ClientName == "" {
		return errors.Wrap(errors.ErrInvalidInput, "client name is required")
	}
	if strings.TrimSpace(in.Challenge) == "" {
		in.Challenge = DefaultChallenge
	}
	return nil
}

// HasMarketData reports whether the market agent has enough to work with.
func (in *Input) HasMarketData() bool {
	return in.Market != nil
}

// HasFinancialData reports whether the financial agent has enough to work with.
func (in *Input) HasFinancialData() bool {
	return in.Financial != nil && !in.Financial.Revenue.IsZero()
}

// HasStrategyData reports whether the strategy agent has enough to work with.
// Strategy needs at least one of the customer or competitor views.
func (in *Input) HasStrategyData() bool {
	return in.Customer != nil || (in.Competitors != nil && len(in.Competitors.Competitors) > 0)
}

// LoadFile reads an Input from a JSON file.
func LoadFile(path string) (*Input, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read project file %s", path)
	}

	var in Input
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, errors.Wrapf(err, "parse project file %s", path)
	}

	if err := in.Normalize(); err != nil {
		return nil, err
	}

	return &in, nil
}
