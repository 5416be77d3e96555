package snowball

// Summary holds the portfolio-wide totals.
type Summary struct {
	TotalValue       Money   `json:"totalValue"`
	TotalCost        Money   `json:"totalCost"`
	TotalGain        Money   `json:"totalGain"` // TotalGain is the unrealized gain.
	TotalGainPercent Percent `json:"totalGainPercent"`
	RealizedGain     Money   `json:"realizedGain"`
	UnrealizedGain   Money   `json:"unrealizedGain"`
	DividendIncome   Money   `json:"dividendIncome"`
	Cash             Money   `json:"cash"`        // Cash is deposits minus withdrawals.
	CashBalance      Money   `json:"cashBalance"` // CashBalance also accounts for trades, dividends and fees.
	Unpriced         int     `json:"unpriced,omitempty"` // Unpriced counts the open positions without a market price.
}

// In tags the totals that carry no currency yet, such as the zero totals of
// an empty portfolio.
func (s Summary) In(currency string) Summary {
	for _, m := range []*Money{&s.TotalValue, &s.TotalCost, &s.TotalGain, &s.RealizedGain,
		&s.UnrealizedGain, &s.DividendIncome, &s.Cash, &s.CashBalance} {
		if m.Currency() == "" {
			*m = m.In(currency)
		}
	}
	return s
}

// Summarize reduces positions and transactions to portfolio-wide totals.
// Division by a zero cost yields a zero percent.
func Summarize(positions map[string]Position, txs []Transaction, method CostBasisMethod) Summary {
	var s Summary
	for _, p := range positions {
		s.TotalValue = s.TotalValue.Add(p.MarketValue)
		s.TotalCost = s.TotalCost.Add(p.TotalCost)
		if !p.PriceKnown {
			s.Unpriced++
		}
	}
	s.UnrealizedGain = s.TotalValue.Sub(s.TotalCost)
	s.TotalGain = s.UnrealizedGain
	if s.TotalCost.IsPositive() {
		s.TotalGainPercent = s.UnrealizedGain.Ratio(s.TotalCost)
	}

	j := NewJournal(txs)
	for _, b := range j.books(method) {
		s.RealizedGain = s.RealizedGain.Add(b.realized)
	}
	s.DividendIncome = j.DividendIncome()
	s.Cash = j.Contributions()
	s.CashBalance = j.CashBalance()
	return s
}

// DividendIncomeIn returns the dividend income of a single year.
func DividendIncomeIn(txs []Transaction, year int) Money {
	return YearlyDividends(txs, year)
}
