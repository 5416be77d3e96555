package snowball

import (
	"testing"

	"github.com/rs/zerolog"
)

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// NO is a helper for test to create money from const with no currency set
func NO(v float64) Money { return M(v, "") }

// day is a helper for test to parse an ISO date.
func day(s string) Date { return MustParse(s) }

func newTestPortfolio(ref ReferenceData, method CostBasisMethod) *Portfolio {
	return New(Options{Currency: "USD", Method: method, Reference: ref, Logger: zerolog.Nop()})
}

func assertMoney(t *testing.T, name string, got, want Money) {
	t.Helper()
	if !got.Equal(want) {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertQuantity(t *testing.T, name string, got, want Quantity) {
	t.Helper()
	if !got.Equal(want) {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}
