package frameworks

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"consilium/internal/project"
)

// Market attractiveness levels, ordered from best to worst.
const (
	AttractivenessVeryHigh = "very high"
	AttractivenessHigh     = "high"
	AttractivenessModerate = "moderate"
	AttractivenessLow      = "low"
)

// Market concentration levels derived from the Herfindahl-Hirschman index.
const (
	ConcentrationHigh        = "highly concentrated"
	ConcentrationModerate    = "moderately concentrated"
	ConcentrationCompetitive = "competitive"
)

// MarketResult is the output of the market analysis framework.
type MarketResult struct {
	MarketSize     float64
	GrowthRate     float64
	Attractiveness string
	Segments       []SegmentInsight
	Share          ShareAnalysis
	Trends         []TrendInsight
	Recs           []string
}

// SegmentInsight is a prioritized customer segment.
type SegmentInsight struct {
	Name            string
	Size            float64
	GrowthRate      float64
	Priority        string // high | medium | low
	Characteristics []string
}

// ShareAnalysis summarizes market share concentration.
type ShareAnalysis struct {
	TotalTrackedShare float64
	HHI               float64
	Concentration     string
	TopPlayers        []SharePlayer
}

// SharePlayer is one company's market share.
type SharePlayer struct {
	Company string
	Share   float64
}

// TrendInsight is a classified market trend.
type TrendInsight struct {
	Trend    string
	Category string
	Impact   string // high | medium
}

var (
	techTrendKeywords     = []string{"ai", "dx", "cloud", "iot", "automation", "digital"}
	socialTrendKeywords   = []string{"esg", "sustainability", "workstyle", "remote"}
	economicTrendKeywords = []string{"cost reduction", "efficiency", "productivity"}
)

// AnalyzeMarket runs the market analysis framework over the engagement's
// market data.
func AnalyzeMarket(data *project.MarketData) *MarketResult {
	res := &MarketResult{
		MarketSize:     data.MarketSize,
		GrowthRate:     data.GrowthRate,
		Attractiveness: marketAttractiveness(data.MarketSize, data.GrowthRate),
		Segments:       analyzeSegments(data.CustomerSegments),
		Share:          analyzeShare(data.ShareByCompany),
		Trends:         classifyTrends(data.Trends),
	}
	res.Recs = marketRecommendations(res)
	return res
}

func marketAttractiveness(size, growth float64) string {
	switch {
	case size > 100_000_000_000 && growth > 10:
		return AttractivenessVeryHigh
	case size > 50_000_000_000 && growth > 5:
		return AttractivenessHigh
	case size > 10_000_000_000 && growth > 3:
		return AttractivenessModerate
	default:
		return AttractivenessLow
	}
}

func analyzeSegments(segments []project.CustomerSegment) []SegmentInsight {
	out := make([]SegmentInsight, 0, len(segments))
	for _, s := range segments {
		priority := "low"
		switch {
		case s.GrowthRate > 10 && s.Size > 10_000_000_000:
			priority = "high"
		case s.GrowthRate > 5:
			priority = "medium"
		}
		out = append(out, SegmentInsight{
			Name:            s.Name,
			Size:            s.Size,
			GrowthRate:      s.GrowthRate,
			Priority:        priority,
			Characteristics: s.Characteristics,
		})
	}
	return out
}

func analyzeShare(shares map[string]float64) ShareAnalysis {
	var total, hhi float64
	players := make([]SharePlayer, 0, len(shares))
	for company, share := range shares {
		total += share
		hhi += share * share
		players = append(players, SharePlayer{Company: company, Share: share})
	}

	sort.Slice(players, func(i, j int) bool {
		if players[i].Share == players[j].Share {
			return players[i].Company < players[j].Company
		}
		return players[i].Share > players[j].Share
	})
	if len(players) > 3 {
		players = players[:3]
	}

	concentration := ConcentrationCompetitive
	switch {
	case hhi > 2500:
		concentration = ConcentrationHigh
	case hhi > 1500:
		concentration = ConcentrationModerate
	}

	return ShareAnalysis{
		TotalTrackedShare: total,
		HHI:               hhi,
		Concentration:     concentration,
		TopPlayers:        players,
	}
}

func classifyTrends(trends []string) []TrendInsight {
	out := make([]TrendInsight, 0, len(trends))
	for _, trend := range trends {
		lower := strings.ToLower(trend)
		insight := TrendInsight{Trend: trend, Category: "other", Impact: "high"}
		switch {
		case containsAny(lower, techTrendKeywords):
			insight.Category = "technology"
			insight.Impact = "high"
		case containsAny(lower, socialTrendKeywords):
			insight.Category = "social"
			insight.Impact = "medium"
		case containsAny(lower, economicTrendKeywords):
			insight.Category = "economic"
			insight.Impact = "high"
		}
		out = append(out, insight)
	}
	return out
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if containsWord(s, kw) {
			return true
		}
	}
	return false
}

// containsWord reports whether kw occurs in s as a whole word. A bare
// substring check would match "ai" inside "sustainability".
func containsWord(s, kw string) bool {
	for offset := 0; offset+len(kw) <= len(s); {
		i := strings.Index(s[offset:], kw)
		if i < 0 {
			return false
		}
		i += offset
		end := i + len(kw)
		if (i == 0 || !isWordByte(s[i-1])) && (end == len(s) || !isWordByte(s[end])) {
			return true
		}
		offset = i + 1
	}
	return false
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

func marketRecommendations(res *MarketResult) []string {
	var recs []string

	if res.Attractiveness == AttractivenessVeryHigh || res.Attractiveness == AttractivenessHigh {
		recs = append(recs, "The market is growing fast: pursue aggressive investment and an expansion strategy.")
	}

	var highPriority []string
	for _, s := range res.Segments {
		if s.Priority == "high" {
			highPriority = append(highPriority, s.Name)
		}
	}
	if len(highPriority) > 0 {
		recs = append(recs, fmt.Sprintf("Focus marketing on the priority segments (%s).", strings.Join(highPriority, ", ")))
	}

	switch res.Share.Concentration {
	case ConcentrationCompetitive:
		recs = append(recs, "The market is highly competitive: consider differentiation and niche positioning.")
	case ConcentrationHigh:
		recs = append(recs, "The market is an oligopoly: consider strategic alliances or M&A to strengthen position.")
	}

	var highImpact []string
	for _, t := range res.Trends {
		if t.Impact == "high" {
			highImpact = append(highImpact, t.Trend)
		}
	}
	if len(highImpact) > 0 {
		if len(highImpact) > 2 {
			highImpact = highImpact[:2]
		}
		recs = append(recs, fmt.Sprintf("Prioritize response to key trends (%s).", strings.Join(highImpact, ", ")))
	}

	return recs
}

// Format renders the result as a readable plain-text block for reports.
func (r *MarketResult) Format() string {
	var b strings.Builder

	b.WriteString("Market overview:\n")
	fmt.Fprintf(&b, "  Market size: %s\n", humanize.Commaf(r.MarketSize))
	fmt.Fprintf(&b, "  Growth rate: %.1f%%\n", r.GrowthRate)
	fmt.Fprintf(&b, "  Attractiveness: %s\n", r.Attractiveness)

	if len(r.Segments) > 0 {
		b.WriteString("\nSegment analysis:\n")
		for _, s := range r.Segments {
			fmt.Fprintf(&b, "  %s: size %s, growth %.1f%%, priority %s\n",
				s.Name, humanize.Commaf(s.Size), s.GrowthRate, s.Priority)
		}
	}

	if len(r.Share.TopPlayers) > 0 {
		b.WriteString("\nMarket share:\n")
		fmt.Fprintf(&b, "  Concentration: %s (HHI %.0f)\n", r.Share.Concentration, r.Share.HHI)
		for _, p := range r.Share.TopPlayers {
			fmt.Fprintf(&b, "  - %s: %.1f%%\n", p.Company, p.Share)
		}
	}

	if len(r.Trends) > 0 {
		b.WriteString("\nTrends:\n")
		for _, t := range r.Trends {
			fmt.Fprintf(&b, "  - %s (%s, %s impact)\n", t.Trend, t.Category, t.Impact)
		}
	}

	if len(r.Recs) > 0 {
		b.WriteString("\nRecommendations:\n")
		for i, rec := range r.Recs {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, rec)
		}
	}

	return b.String()
}
