package frameworks

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// formatMoney renders a monetary decimal with thousand separators.
func formatMoney(d decimal.Decimal) string {
	return humanize.Commaf(d.InexactFloat64())
}
