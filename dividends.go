package snowball

import "time"

// DividendPayment is a finer-grained record of a dividend event, kept apart
// from the transaction log for calendar and yield views.
type DividendPayment struct {
	ID      string       `json:"id"`
	Symbol  string       `json:"symbol"`
	Amount  Money        `json:"amount"`
	ExDate  Date         `json:"exDate"`
	PayDate Date         `json:"payDate"`
	Type    DividendType `json:"type"`
	Shares  Quantity     `json:"shares"`
}

// PerShare returns the amount paid for each share, or zero without shares.
func (d DividendPayment) PerShare() Money {
	if d.Shares.IsZero() {
		return Money{cur: d.Amount.cur}
	}
	return d.Amount.Div(d.Shares)
}

// YearlyDividends sums the dividend transactions dated in year.
func YearlyDividends(txs []Transaction, year int) Money {
	var total Money
	for _, tx := range txs {
		if d, ok := tx.(Dividend); ok && d.Date.Year() == year {
			total = total.Add(d.Amount)
		}
	}
	return total
}

// MonthlyDividends sums the dividend transactions of year by month.
// Index 0 is January.
func MonthlyDividends(txs []Transaction, year int) [12]Money {
	var months [12]Money
	for _, tx := range txs {
		if d, ok := tx.(Dividend); ok && d.Date.Year() == year {
			i := d.Date.Month() - time.January
			months[i] = months[i].Add(d.Amount)
		}
	}
	return months
}

// MonthlyAverage returns the average monthly dividend income over year.
func MonthlyAverage(txs []Transaction, year int) Money {
	return YearlyDividends(txs, year).Div(Q(12))
}

// DividendsBySymbol sums all dividend transactions per symbol.
func DividendsBySymbol(txs []Transaction) map[string]Money {
	res := make(map[string]Money)
	for _, tx := range txs {
		if d, ok := tx.(Dividend); ok {
			res[d.Symbol] = res[d.Symbol].Add(d.Amount)
		}
	}
	return res
}
