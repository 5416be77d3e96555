package snowball

import "testing"

func TestClassifyDividends(t *testing.T) {
	txs := []Transaction{
		NewDividend(day("2024-01-15"), "", "KO", USD(100), Qualified),
		NewDividend(day("2024-02-15"), "", "O", USD(100), NonQualified),
		NewDividend(day("2024-03-15"), "", "MAIN", USD(40), ReturnOfCapital),
		NewDividend(day("2024-04-15"), "", "VOD", USD(50), Foreign),
		// unknown classes fall back to qualified.
		Dividend{secCmd: secCmd{baseCmd: baseCmd{Command: CmdDividend, Date: day("2024-05-15"), Amount: USD(10)}, Symbol: "KO"}, Class: "bogus"},
		NewBuy(day("2024-01-01"), "", "KO", Q(10), USD(60), Money{}),
	}

	got := ClassifyDividends(txs)
	assertMoney(t, "Qualified", got.Qualified, USD(110))
	assertMoney(t, "NonQualified", got.NonQualified, USD(100))
	assertMoney(t, "ReturnOfCapital", got.ReturnOfCapital, USD(40))
	assertMoney(t, "Foreign", got.Foreign, USD(50))
	assertMoney(t, "Total", got.Total(), USD(300))
	assertMoney(t, "Taxable", got.Taxable(), USD(260))

	// 15% of 110, 22% of 100, 15% of 50
	assertMoney(t, "EstimateTax", got.EstimateTax(DefaultTaxRates), USD(16.5+22+7.5))
}

func TestClassifyDividends_SumsToTotal(t *testing.T) {
	txs := sampleTransactions()
	var want Money
	for _, tx := range txs {
		if tx.What() == CmdDividend {
			want = want.Add(tx.Total())
		}
	}
	if got := ClassifyDividends(txs).Total(); !got.Equal(want) {
		t.Errorf("Total() = %v, want %v", got, want)
	}
}

func TestParseDividendType(t *testing.T) {
	tests := map[string]DividendType{
		"":              Qualified,
		"qualified":     Qualified,
		"Non-Qualified": NonQualified,
		"ordinary":      NonQualified,
		"ROC":           ReturnOfCapital,
		"foreign":       Foreign,
		"whatever":      Qualified,
	}
	for input, want := range tests {
		if got := ParseDividendType(input); got != want {
			t.Errorf("ParseDividendType(%q) = %q, want %q", input, got, want)
		}
	}
}
