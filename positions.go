package snowball

import (
	"cmp"
	"maps"
	"slices"
)

// Position is the current holding in one symbol, derived from the net
// transaction history and completed with reference data.
type Position struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name,omitempty"`
	Sector string `json:"sector,omitempty"`

	Shares       Quantity `json:"shares"`
	AverageCost  Money    `json:"averageCost"`
	CurrentPrice Money    `json:"currentPrice"`
	PriceKnown   bool     `json:"priceKnown"` // PriceKnown is false when no market price was available.

	MarketValue           Money   `json:"marketValue"`
	TotalCost             Money   `json:"totalCost"`
	UnrealizedGain        Money   `json:"unrealizedGain"`
	UnrealizedGainPercent Percent `json:"unrealizedGainPercent"`
	DividendYield         Percent `json:"dividendYield"`
	YieldOnCost           Percent `json:"yieldOnCost"`

	RealizedGain   Money `json:"realizedGain"`
	DividendIncome Money `json:"dividendIncome"`
}

func (p Position) in(currency string) Position {
	p.AverageCost = p.AverageCost.In(currency)
	p.CurrentPrice = p.CurrentPrice.In(currency)
	p.MarketValue = p.MarketValue.In(currency)
	p.TotalCost = p.TotalCost.In(currency)
	p.UnrealizedGain = p.UnrealizedGain.In(currency)
	p.RealizedGain = p.RealizedGain.In(currency)
	p.DividendIncome = p.DividendIncome.In(currency)
	return p
}

// book accumulates the history of a single symbol.
type book struct {
	shares    Quantity // net signed shares
	open      lots     // open lots, holding max(shares, 0) shares
	realized  Money
	dividends Money
}

func (b *book) acquire(e acquireLot, method CostBasisMethod) {
	if !e.quantity.IsPositive() {
		return
	}
	quantity, cost := e.quantity, e.cost
	if b.shares.IsNegative() {
		// the first shares cover the oversold part and carry no basis.
		cover := quantity.min(b.shares.Neg())
		cost = cost.Mul(quantity.Sub(cover)).Div(quantity)
		quantity = quantity.Sub(cover)
	}
	b.shares = b.shares.Add(e.quantity)
	if !quantity.IsPositive() {
		return
	}
	b.open = append(b.open, lot{Date: e.on, Quantity: quantity, Cost: cost})
	if method == AverageCost {
		b.open = b.open.merged()
	}
}

func (b *book) dispose(e disposeLot) {
	if !e.quantity.IsPositive() {
		return
	}
	held := b.open.quantity()
	if matched := e.quantity.min(held); matched.IsPositive() {
		// with AverageCost there is a single lot, so FIFO matching is proportional.
		costOfSale := b.open.fifoCostOfSelling(matched)
		proceeds := e.proceeds.Mul(matched).Div(e.quantity)
		b.realized = b.realized.Add(proceeds.Sub(costOfSale))
		b.open = b.open.sell(matched)
	}
	b.shares = b.shares.Sub(e.quantity)
	if !b.shares.IsPositive() {
		b.open = nil
	}
}

func (b *book) split(e splitShare) {
	held := b.open.quantity()
	if !held.IsPositive() || e.quantity.IsZero() {
		return
	}
	b.open.scale(held.Add(e.quantity), held)
	b.shares = b.shares.Add(e.quantity)
}

// books folds the journal into one book per symbol.
func (j *Journal) books(method CostBasisMethod) map[string]*book {
	res := make(map[string]*book)
	get := func(symbol string) *book {
		b, ok := res[symbol]
		if !ok {
			b = &book{}
			res[symbol] = b
		}
		return b
	}
	for _, e := range j.events {
		switch v := e.(type) {
		case acquireLot:
			get(v.security).acquire(v, method)
		case disposeLot:
			get(v.security).dispose(v)
		case splitShare:
			get(v.security).split(v)
		case receiveDividend:
			b := get(v.security)
			b.dividends = b.dividends.Add(v.amount)
		}
	}
	return res
}

// DerivePositions computes the open positions of txs, keyed by symbol.
//
// Symbols whose net shares are zero or negative are left out. ref may be nil:
// positions without a quote keep their cost fields and report PriceKnown as
// false with zero market fields.
func DerivePositions(txs []Transaction, ref ReferenceData, method CostBasisMethod) map[string]Position {
	res := make(map[string]Position)
	for symbol, b := range NewJournal(txs).books(method) {
		if !b.shares.IsPositive() {
			continue
		}
		res[symbol] = b.position(symbol, ref)
	}
	return res
}

func (b *book) position(symbol string, ref ReferenceData) Position {
	p := Position{
		Symbol:         symbol,
		Shares:         b.shares,
		TotalCost:      b.open.cost(),
		RealizedGain:   b.realized,
		DividendIncome: b.dividends,
	}
	p.AverageCost = p.TotalCost.Div(p.Shares)

	var q Quote
	var ok bool
	if ref != nil {
		q, ok = ref.Quote(symbol)
	}
	if !ok {
		return p
	}
	p.Name, p.Sector = q.Name, q.Sector
	if q.Price.IsPositive() {
		p.PriceKnown = true
		p.CurrentPrice = q.Price
		p.MarketValue = q.Price.Mul(p.Shares)
		p.UnrealizedGain = p.MarketValue.Sub(p.TotalCost)
		p.UnrealizedGainPercent = p.UnrealizedGain.Ratio(p.TotalCost)
		p.DividendYield = q.AnnualDividend.Ratio(q.Price)
	}
	p.YieldOnCost = q.AnnualDividend.Ratio(p.AverageCost)
	return p
}

// RealizedGains returns the gain realized by sales for every symbol ever
// traded, open or closed.
func RealizedGains(txs []Transaction, method CostBasisMethod) map[string]Money {
	res := make(map[string]Money)
	for symbol, b := range NewJournal(txs).books(method) {
		res[symbol] = b.realized
	}
	return res
}

// SortedPositions returns the positions ordered by symbol.
func SortedPositions(positions map[string]Position) []Position {
	res := slices.Collect(maps.Values(positions))
	slices.SortFunc(res, func(a, b Position) int { return cmp.Compare(a.Symbol, b.Symbol) })
	return res
}
