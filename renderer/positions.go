package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/snowball"
)

// PositionsMarkdown renders the open positions. Positions without a known
// price show "n/a" for every market figure.
func PositionsMarkdown(positions []snowball.Position, method snowball.CostBasisMethod) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Positions\n\n")
	if len(positions) == 0 {
		fmt.Fprintf(&b, "No open positions.\n")
		return b.String()
	}
	fmt.Fprintf(&b, "Cost basis method: %s.\n\n", method)
	tableHeader(&b, "llrrrrrrrrr", "Symbol", "Name", "Shares", "Avg Cost", "Cost", "Price", "Market Value", "Gain", "Gain %", "Yield", "Yield on Cost")

	var value, cost, gains snowball.Money
	for _, p := range positions {
		cost = cost.Add(p.TotalCost)
		price, mv, gain, gainPct, yield := "n/a", "n/a", "n/a", "n/a", "n/a"
		if p.PriceKnown {
			value = value.Add(p.MarketValue)
			gains = gains.Add(p.UnrealizedGain)
			price = p.CurrentPrice.String()
			mv = p.MarketValue.String()
			gain = p.UnrealizedGain.SignedString()
			gainPct = p.UnrealizedGainPercent.SignedString()
			yield = p.DividendYield.String()
		}
		tableRow(&b, p.Symbol, p.Name, p.Shares.String(), p.AverageCost.String(), p.TotalCost.String(),
			price, mv, gain, gainPct, yield, p.YieldOnCost.String())
	}
	fmt.Fprintf(&b, "| **Total** | | | | **%s** | | **%s** | **%s** | | | |\n", cost, value, gains.SignedString())

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprintf(w, "\n## Realized gains and dividends\n\n")
		tableHeader(w, "lrr", "Symbol", "Realized Gain", "Dividend Income")
		written := false
		for _, p := range positions {
			if p.RealizedGain.IsZero() && p.DividendIncome.IsZero() {
				continue
			}
			tableRow(w, p.Symbol, p.RealizedGain.SignedString(), amount(p.DividendIncome))
			written = true
		}
		return written
	})
	return b.String()
}
