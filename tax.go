package snowball

// TaxSummary splits dividend income by tax classification.
type TaxSummary struct {
	Qualified       Money `json:"qualified"`
	NonQualified    Money `json:"nonQualified"`
	ReturnOfCapital Money `json:"returnOfCapital"`
	Foreign         Money `json:"foreign"`
}

// ClassifyDividends folds dividend transactions into the four buckets.
// Unset or unrecognized classes count as qualified.
func ClassifyDividends(txs []Transaction) TaxSummary {
	var t TaxSummary
	for _, tx := range txs {
		d, ok := tx.(Dividend)
		if !ok {
			continue
		}
		switch d.Class {
		case NonQualified:
			t.NonQualified = t.NonQualified.Add(d.Amount)
		case ReturnOfCapital:
			t.ReturnOfCapital = t.ReturnOfCapital.Add(d.Amount)
		case Foreign:
			t.Foreign = t.Foreign.Add(d.Amount)
		default:
			t.Qualified = t.Qualified.Add(d.Amount)
		}
	}
	return t
}

// Total returns the sum of every bucket.
func (t TaxSummary) Total() Money {
	return t.Qualified.Add(t.NonQualified).Add(t.ReturnOfCapital).Add(t.Foreign)
}

// Taxable returns the income subject to tax. Return of capital reduces the
// cost basis instead.
func (t TaxSummary) Taxable() Money {
	return t.Qualified.Add(t.NonQualified).Add(t.Foreign)
}

// TaxRates are the rates applied by EstimateTax.
type TaxRates struct {
	Qualified Percent // Qualified applies to qualified dividends.
	Ordinary  Percent // Ordinary applies to non-qualified dividends.
	Foreign   Percent // Foreign applies to foreign dividends.
}

// DefaultTaxRates are the rates used when none are configured.
var DefaultTaxRates = TaxRates{Qualified: 15, Ordinary: 22, Foreign: 15}

// EstimateTax returns the tax due on the dividend income at the given rates.
func (t TaxSummary) EstimateTax(r TaxRates) Money {
	return t.Qualified.Percent(r.Qualified).
		Add(t.NonQualified.Percent(r.Ordinary)).
		Add(t.Foreign.Percent(r.Foreign))
}
