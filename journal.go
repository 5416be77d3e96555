package snowball

import (
	"slices"
)

// event represents a single, atomic operation in the portfolio's history.
// It is the lowest-level, immutable fact from which all states are derived.
type event interface {
	date() Date
}

// Journal holds a chronologically sorted list of all atomic events.
type Journal struct {
	events []event // sorted by date
}

// --- Cash Events ---

// creditCash increases the cash balance.
type creditCash struct {
	on       Date
	amount   Money
	external bool // true when cash comes from outside.
}

func (e creditCash) date() Date { return e.on }

// debitCash decreases the cash balance.
type debitCash struct {
	on       Date
	amount   Money
	external bool // true when cash goes outside.
}

func (e debitCash) date() Date { return e.on }

// --- Security Events ---

// acquireLot adds a new lot of a security.
type acquireLot struct {
	on       Date
	security string
	quantity Quantity
	cost     Money
}

func (e acquireLot) date() Date { return e.on }

// disposeLot removes a quantity of a security.
type disposeLot struct {
	on       Date
	security string
	quantity Quantity
	proceeds Money
}

func (e disposeLot) date() Date { return e.on }

// splitShare adds new shares of a security at no cost.
type splitShare struct {
	on       Date
	security string
	quantity Quantity
}

func (e splitShare) date() Date { return e.on }

// receiveDividend records a dividend income on a security.
type receiveDividend struct {
	on       Date
	security string
	amount   Money
	class    DividendType
}

func (e receiveDividend) date() Date { return e.on }

// NewJournal converts transactions into events, in chronological order.
// Transactions on the same day keep their relative order.
func NewJournal(txs []Transaction) *Journal {
	ordered := slices.Clone(txs)
	slices.SortStableFunc(ordered, func(a, b Transaction) int { return a.When().Compare(b.When()) })

	j := &Journal{events: make([]event, 0, len(ordered)*2)}
	for _, tx := range ordered {
		switch v := tx.(type) {
		case Buy:
			j.events = append(j.events,
				acquireLot{on: v.Date, security: v.Symbol, quantity: v.Quantity, cost: v.Cost()},
				debitCash{on: v.Date, amount: v.Amount},
			)
		case Sell:
			j.events = append(j.events,
				disposeLot{on: v.Date, security: v.Symbol, quantity: v.Quantity, proceeds: v.Proceeds()},
				creditCash{on: v.Date, amount: v.Amount},
			)
		case Dividend:
			j.events = append(j.events,
				receiveDividend{on: v.Date, security: v.Symbol, amount: v.Amount, class: v.Class},
				creditCash{on: v.Date, amount: v.Amount},
			)
		case Split:
			j.events = append(j.events, splitShare{on: v.Date, security: v.Symbol, quantity: v.Quantity})
		case Deposit:
			j.events = append(j.events, creditCash{on: v.Date, amount: v.Amount, external: true})
		case Withdrawal:
			j.events = append(j.events, debitCash{on: v.Date, amount: v.Amount, external: true})
		case Fee:
			j.events = append(j.events, debitCash{on: v.Date, amount: v.Amount})
		}
	}
	return j
}

// Len returns the number of events.
func (j *Journal) Len() int { return len(j.events) }

// Contributions returns deposits minus withdrawals.
func (j *Journal) Contributions() Money {
	var total Money
	for _, e := range j.events {
		switch v := e.(type) {
		case creditCash:
			if v.external {
				total = total.Add(v.amount)
			}
		case debitCash:
			if v.external {
				total = total.Sub(v.amount)
			}
		}
	}
	return total
}

// CashBalance returns the cash left after every cash event, trades and fees included.
func (j *Journal) CashBalance() Money {
	var total Money
	for _, e := range j.events {
		switch v := e.(type) {
		case creditCash:
			total = total.Add(v.amount)
		case debitCash:
			total = total.Sub(v.amount)
		}
	}
	return total
}

// DividendIncome returns the sum of all dividends received.
func (j *Journal) DividendIncome() Money {
	var total Money
	for _, e := range j.events {
		if v, ok := e.(receiveDividend); ok {
			total = total.Add(v.amount)
		}
	}
	return total
}
