package snowball

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// CSVHeader is the header row of exported transactions.
var CSVHeader = []string{"Date", "Type", "Symbol", "Quantity", "Price", "Amount", "Fees", "Notes"}

var (
	// ErrNoTransactions is returned by importers when no row qualifies.
	ErrNoTransactions = errors.New("no valid transactions found")
	// ErrMissingHeader is returned when a required column is absent.
	ErrMissingHeader = errors.New("missing required column")
)

// WriteCSV writes txs, in the given order, as CSV with every field quoted.
// Rows are separated by "\n" and unset optional fields are empty.
func WriteCSV(w io.Writer, txs []Transaction) error {
	rows := make([]string, 0, len(txs)+1)
	rows = append(rows, strings.Join(CSVHeader, ","))
	for _, tx := range txs {
		f := FieldsOf(tx)
		rows = append(rows, quoteRow(
			f.Date.String(),
			string(f.Type),
			f.Symbol,
			f.Quantity.plain(),
			f.Price.plain(),
			f.Amount.value.String(),
			f.Fees.plain(),
			f.Notes,
		))
	}
	if _, err := io.WriteString(w, strings.Join(rows, "\n")); err != nil {
		return fmt.Errorf("could not write csv: %w", err)
	}
	return nil
}

func quoteRow(fields ...string) string {
	for i, f := range fields {
		fields[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	return strings.Join(fields, ",")
}

// ReadCSV reads transactions in the generic format written by WriteCSV.
//
// Columns are found by header name, ignoring case, in any order. A row is
// kept when it has a recognized type and a valid date. Unparseable quantity,
// price and fees are left unset, an unparseable amount is zero. Rows with
// fewer fields than the header are skipped.
//
// It returns ErrNoTransactions when no row qualifies.
func ReadCSV(r io.Reader, currency string) ([]Transaction, error) {
	header, rows, err := readRows(r)
	if err != nil {
		return nil, err
	}
	col := columns(header)

	var txs []Transaction
	for _, row := range rows {
		if len(row) < len(header) {
			continue
		}
		get := func(name string) string {
			if i, ok := col[name]; ok {
				return strings.TrimSpace(row[i])
			}
			return ""
		}

		var f Fields
		if t, ok := ParseCommandType(get("type")); ok {
			f.Type = t
		}
		if d, err := ParseDate(get("date")); err == nil {
			f.Date = d
		}
		if f.Type == "" || f.Date.IsZero() {
			continue
		}
		f.Symbol = get("symbol")
		f.Notes = get("notes")
		f.DividendType = DividendType(get("dividendtype"))
		if q, err := ParseQuantity(get("quantity")); err == nil {
			f.Quantity = q.Abs()
		}
		if p, err := ParseMoney(get("price"), currency); err == nil {
			f.Price = p.Abs()
		}
		if fee, err := ParseMoney(get("fees"), currency); err == nil {
			f.Fees = fee.Abs()
		}
		if a, err := ParseMoney(get("amount"), currency); err == nil {
			f.Amount = a.Abs()
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

// readRows reads all the records of r, the first one being the header.
func readRows(r io.Reader) (header []string, rows [][]string, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("could not read csv: %w", err)
	}
	if len(records) < 2 {
		return nil, nil, ErrNoTransactions
	}
	return records[0], records[1:], nil
}

// columns indexes header names, lower cased and trimmed.
func columns(header []string) map[string]int {
	col := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := col[h]; !dup {
			col[h] = i
		}
	}
	return col
}
