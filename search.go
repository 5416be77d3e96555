package snowball

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// AcceptAll is a filter that accepts every transaction.
func AcceptAll(Transaction) bool { return true }

// Matching returns a filter accepting transactions whose symbol, notes or type
// contain term, ignoring case. An empty term matches everything.
func Matching(term string) func(Transaction) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	return func(tx Transaction) bool {
		if term == "" {
			return true
		}
		return strings.Contains(strings.ToLower(Symbol(tx)), term) ||
			strings.Contains(strings.ToLower(tx.Note()), term) ||
			strings.Contains(string(tx.What()), term)
	}
}

// OfType returns a filter accepting transactions of any of the given types.
func OfType(types ...CommandType) func(Transaction) bool {
	return func(tx Transaction) bool { return slices.Contains(types, tx.What()) }
}

// ForSymbol returns a filter accepting transactions on the given symbol.
func ForSymbol(symbol string) func(Transaction) bool {
	symbol = normalizeSymbol(symbol)
	return func(tx Transaction) bool { return Symbol(tx) == symbol }
}

// InYear returns a filter accepting transactions dated in year.
func InYear(year int) func(Transaction) bool {
	return func(tx Transaction) bool { return tx.When().Year() == year }
}

// SortField is a column transactions can be sorted on.
type SortField string

const (
	SortByDate     SortField = "date"
	SortByType     SortField = "type"
	SortBySymbol   SortField = "symbol"
	SortByQuantity SortField = "quantity"
	SortByPrice    SortField = "price"
	SortByAmount   SortField = "amount"
)

// ParseSortField parses the name of a sortable column.
func ParseSortField(s string) (SortField, error) {
	f := SortField(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case SortByDate, SortByType, SortBySymbol, SortByQuantity, SortByPrice, SortByAmount:
		return f, nil
	}
	return "", fmt.Errorf("unknown sort field %q", s)
}

// SortTransactions sorts txs in place on field. Equal values keep their
// relative order.
func SortTransactions(txs []Transaction, field SortField, descending bool) {
	compare := func(a, b Fields) int {
		switch field {
		case SortByType:
			return cmp.Compare(a.Type, b.Type)
		case SortBySymbol:
			return cmp.Compare(a.Symbol, b.Symbol)
		case SortByQuantity:
			return a.Quantity.value.Cmp(b.Quantity.value)
		case SortByPrice:
			return a.Price.value.Cmp(b.Price.value)
		case SortByAmount:
			return a.Amount.value.Cmp(b.Amount.value)
		default:
			return a.Date.Compare(b.Date)
		}
	}
	slices.SortStableFunc(txs, func(a, b Transaction) int {
		c := compare(FieldsOf(a), FieldsOf(b))
		if descending {
			return -c
		}
		return c
	})
}
