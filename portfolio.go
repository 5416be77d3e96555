package snowball

import (
	"github.com/rs/zerolog"
)

// Options configure a Portfolio.
type Options struct {
	Currency  string          // Currency of every amount, e.g. "USD".
	Method    CostBasisMethod // Method matches sales against open lots.
	Reference ReferenceData   // Reference supplies prices, names and sectors. May be nil.
	Logger    zerolog.Logger
}

// Portfolio owns a Store and derives positions and totals from it.
//
// Derived values are recomputed from the transactions on every call, they
// are never stored.
type Portfolio struct {
	store    *Store
	ref      ReferenceData
	fallback Quotes // reference data recovered from saved positions
	method   CostBasisMethod
	currency string
	log      zerolog.Logger
}

// New creates an empty portfolio.
func New(opts Options) *Portfolio {
	return &Portfolio{
		store:    NewStore(opts.Logger),
		ref:      opts.Reference,
		method:   opts.Method,
		currency: opts.Currency,
		log:      opts.Logger.With().Str("component", "portfolio").Logger(),
	}
}

// Currency returns the currency of the portfolio.
func (p *Portfolio) Currency() string { return p.currency }

// Method returns the cost basis method of the portfolio.
func (p *Portfolio) Method() CostBasisMethod { return p.method }

// Store returns the underlying store.
func (p *Portfolio) Store() *Store { return p.store }

// Reference returns the reference data used to complete positions: the
// configured source first, then what the last saved positions knew.
func (p *Portfolio) Reference() ReferenceData {
	return Chain{p.ref, p.fallback}
}

// Transactions returns the transactions, newest first.
func (p *Portfolio) Transactions() []Transaction { return p.store.All() }

// Dividends returns the dividend payment records.
func (p *Portfolio) Dividends() []DividendPayment { return p.store.Dividends() }

// PositionMap returns the open positions keyed by symbol.
func (p *Portfolio) PositionMap() map[string]Position {
	return DerivePositions(p.store.All(), p.Reference(), p.method)
}

// Positions returns the open positions ordered by symbol.
func (p *Portfolio) Positions() []Position {
	return SortedPositions(p.PositionMap())
}

// Summary returns the portfolio-wide totals.
func (p *Portfolio) Summary() Summary {
	txs := p.store.All()
	return Summarize(DerivePositions(txs, p.Reference(), p.method), txs, p.method).In(p.currency)
}

// Taxes returns the dividend income split by tax classification. With a
// non-zero year only the dividends of that year are counted.
func (p *Portfolio) Taxes(year int) TaxSummary {
	if year == 0 {
		return ClassifyDividends(p.store.All())
	}
	var txs []Transaction
	for _, tx := range p.store.Transactions(InYear(year)) {
		txs = append(txs, tx)
	}
	return ClassifyDividends(txs)
}

// AddTransaction adds tx and returns it with its id.
func (p *Portfolio) AddTransaction(tx Transaction) Transaction { return p.store.Add(tx) }

// UpdateTransaction merges patch into the transaction id.
func (p *Portfolio) UpdateTransaction(id string, patch Patch) bool {
	return p.store.Update(id, patch)
}

// DeleteTransaction removes the transaction id.
func (p *Portfolio) DeleteTransaction(id string) bool { return p.store.Delete(id) }

// AddDividend records a dividend payment.
func (p *Portfolio) AddDividend(d DividendPayment) DividendPayment {
	d.Amount = d.Amount.In(p.currency)
	return p.store.AddDividend(d)
}

// Import adds imported transactions and returns their count.
func (p *Portfolio) Import(txs []Transaction) int {
	n := p.store.Import(txs)
	p.log.Info().Int("count", n).Msg("imported transactions")
	return n
}
