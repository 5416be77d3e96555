package snowball

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseBrokerNumber parses a brokerage currency string such as "$1,234.56"
// or "(1,234.56)". Parentheses mean a negative value.
func ParseBrokerNumber(s string) (decimal.Decimal, error) {
	negative := strings.Contains(s, "(")
	clean := strings.NewReplacer("$", "", ",", "", "(", "", ")", "", " ", "").Replace(strings.TrimSpace(s))
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid number %q: %w", s, err)
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}

// brokerType maps a brokerage transaction code to a type and, for dividends,
// a classification. The sign of the amount decides cash transfers.
func brokerType(code string, amount decimal.Decimal) (CommandType, DividendType, bool) {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "BUY":
		return CmdBuy, "", true
	case "SELL":
		return CmdSell, "", true
	case "CDIV", "DIV", "QDIV":
		return CmdDividend, Qualified, true
	case "NDIV":
		return CmdDividend, NonQualified, true
	case "ROC":
		return CmdDividend, ReturnOfCapital, true
	case "FDIV":
		return CmdDividend, Foreign, true
	case "SPL", "SPR":
		return CmdSplit, "", true
	case "ACH", "DEP", "WIRE":
		if amount.IsNegative() {
			return CmdWithdrawal, "", true
		}
		return CmdDeposit, "", true
	case "GOLD", "AFEE", "DFEE", "FEE", "DTAX":
		return CmdFee, "", true
	}
	return "", "", false
}

// ReadBrokerCSV reads a brokerage activity export with the columns Date,
// Instrument, Trans Code, Quantity, Price, Amount and Description, looked up
// by name. Amounts are stored as positive magnitudes: the sign of the export
// only decides between deposit and withdrawal.
//
// Rows with an unknown code or an invalid date are skipped. It returns
// ErrNoTransactions when no row qualifies.
func ReadBrokerCSV(r io.Reader, currency string) ([]Transaction, error) {
	header, rows, err := readRows(r)
	if err != nil {
		return nil, err
	}
	col := columns(header)
	dateCol := "date"
	if _, ok := col[dateCol]; !ok {
		dateCol = "activity date"
	}
	for _, required := range []string{dateCol, "trans code"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("%w %q", ErrMissingHeader, required)
		}
	}

	var txs []Transaction
	for _, row := range rows {
		get := func(name string) string {
			if i, ok := col[name]; ok && i < len(row) {
				return strings.TrimSpace(row[i])
			}
			return ""
		}
		day, err := ParseDate(get(dateCol))
		if err != nil {
			continue
		}
		amount, err := ParseBrokerNumber(get("amount"))
		if err != nil {
			amount = decimal.Zero
		}
		typ, class, ok := brokerType(get("trans code"), amount)
		if !ok {
			continue
		}

		f := Fields{
			Date:         day,
			Type:         typ,
			Symbol:       get("instrument"),
			Amount:       Money{value: amount.Abs()},
			Notes:        get("description"),
			DividendType: class,
		}
		if q, err := ParseBrokerNumber(strings.TrimRight(get("quantity"), "Ss")); err == nil {
			f.Quantity = Quantity{value: q.Abs()}
		}
		if p, err := ParseBrokerNumber(get("price")); err == nil {
			f.Price = Money{value: p.Abs()}
		}
		tx, err := f.Normalize().in(currency).Transaction()
		if err != nil {
			continue
		}
		txs = append(txs, tx)
	}
	if len(txs) == 0 {
		return nil, ErrNoTransactions
	}
	return txs, nil
}
