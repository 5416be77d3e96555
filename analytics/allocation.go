// Package analytics computes presentation metrics from derived positions.
//
// Allocation and TopPerformers are exact. The Mock functions return
// placeholder metrics with fixed constants: they are not computed from market
// history and are labeled as such wherever they are shown.
package analytics

import (
	"cmp"
	"slices"
	"strings"

	"github.com/etnz/snowball"
)

// Unclassified is the sector of positions without a known sector.
const Unclassified = "Unclassified"

// Slice is one share of the portfolio market value.
type Slice struct {
	Label   string
	Value   snowball.Money
	Percent snowball.Percent
}

// Allocation is the split of the total market value per symbol and per sector.
// Slices are sorted by decreasing value, then by label.
type Allocation struct {
	Total    snowball.Money
	BySymbol []Slice
	BySector []Slice
	Unpriced []string // Unpriced lists the symbols without a market price.
}

// Allocate computes the allocation of positions. Positions without a price
// have no weight and are reported in Unpriced.
func Allocate(positions []snowball.Position) Allocation {
	var a Allocation
	sectors := make(map[string]snowball.Money)
	for _, p := range positions {
		if !p.PriceKnown {
			a.Unpriced = append(a.Unpriced, p.Symbol)
			continue
		}
		a.Total = a.Total.Add(p.MarketValue)
		a.BySymbol = append(a.BySymbol, Slice{Label: p.Symbol, Value: p.MarketValue})
		sector := strings.TrimSpace(p.Sector)
		if sector == "" {
			sector = Unclassified
		}
		sectors[sector] = sectors[sector].Add(p.MarketValue)
	}
	for sector, v := range sectors {
		a.BySector = append(a.BySector, Slice{Label: sector, Value: v})
	}
	for _, group := range [][]Slice{a.BySymbol, a.BySector} {
		for i := range group {
			group[i].Percent = group[i].Value.Ratio(a.Total)
		}
	}
	sortSlices(a.BySymbol)
	sortSlices(a.BySector)
	slices.Sort(a.Unpriced)
	return a
}

func sortSlices(s []Slice) {
	slices.SortStableFunc(s, func(a, b Slice) int {
		if c := b.Value.Decimal().Cmp(a.Value.Decimal()); c != 0 {
			return c
		}
		return cmp.Compare(a.Label, b.Label)
	})
}

// TopPerformers returns at most n priced positions ranked by decreasing
// unrealized gain percent. n <= 0 returns them all.
func TopPerformers(positions []snowball.Position, n int) []snowball.Position {
	var res []snowball.Position
	for _, p := range positions {
		if p.PriceKnown {
			res = append(res, p)
		}
	}
	slices.SortStableFunc(res, func(a, b snowball.Position) int {
		if c := cmp.Compare(b.UnrealizedGainPercent, a.UnrealizedGainPercent); c != 0 {
			return c
		}
		return cmp.Compare(a.Symbol, b.Symbol)
	})
	if n > 0 && len(res) > n {
		res = res[:n]
	}
	return res
}
