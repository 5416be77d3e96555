package snowball

// Quote is the reference data known about a security: it cannot be derived
// from transactions.
type Quote struct {
	Name           string `json:"name,omitempty"`
	Sector         string `json:"sector,omitempty"`
	Price          Money  `json:"price"`          // Price is the latest known market price.
	AnnualDividend Money  `json:"annualDividend"` // AnnualDividend is the expected dividend per share over a year.
}

// ReferenceData is a read-only source of quotes keyed by symbol.
type ReferenceData interface {
	Quote(symbol string) (Quote, bool)
}

// Quotes is an in-memory ReferenceData.
type Quotes map[string]Quote

// Quote implements ReferenceData.
func (q Quotes) Quote(symbol string) (Quote, bool) {
	v, ok := q[symbol]
	return v, ok
}

// Chain is a ReferenceData that merges several sources. For each field the
// first source that knows a non-empty value wins.
type Chain []ReferenceData

// Quote implements ReferenceData.
func (c Chain) Quote(symbol string) (Quote, bool) {
	var res Quote
	var found bool
	for _, ref := range c {
		if ref == nil {
			continue
		}
		q, ok := ref.Quote(symbol)
		if !ok {
			continue
		}
		found = true
		if res.Name == "" {
			res.Name = q.Name
		}
		if res.Sector == "" {
			res.Sector = q.Sector
		}
		if res.Price.IsZero() {
			res.Price = q.Price
		}
		if res.AnnualDividend.IsZero() {
			res.AnnualDividend = q.AnnualDividend
		}
	}
	return res, found
}

// QuotesFromPositions recovers the reference data carried by previously
// derived positions.
func QuotesFromPositions(positions []Position) Quotes {
	q := make(Quotes, len(positions))
	for _, p := range positions {
		quote := Quote{Name: p.Name, Sector: p.Sector}
		if p.PriceKnown {
			quote.Price = p.CurrentPrice
			quote.AnnualDividend = p.CurrentPrice.Percent(p.DividendYield)
		}
		q[p.Symbol] = quote
	}
	return q
}
