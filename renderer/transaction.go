package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/snowball"
)

// Transaction renders a transaction to a string.
func Transaction(tx snowball.Transaction) string {
	switch v := tx.(type) {
	case snowball.Buy:
		return fmt.Sprintf("Bought %s of %s at %s for %s", v.Quantity, v.Symbol, v.Price, v.Amount)
	case snowball.Sell:
		return fmt.Sprintf("Sold %s of %s at %s for %s", v.Quantity, v.Symbol, v.Price, v.Amount)
	case snowball.Dividend:
		return fmt.Sprintf("Dividend of %s for %s (%s)", v.Amount, v.Symbol, v.Class)
	case snowball.Split:
		return fmt.Sprintf("Split %s: %s new shares", v.Symbol, v.Quantity)
	case snowball.Deposit:
		return fmt.Sprintf("Deposited %s", v.Amount)
	case snowball.Withdrawal:
		return fmt.Sprintf("Withdrew %s", v.Amount)
	case snowball.Fee:
		return fmt.Sprintf("Paid a fee of %s", v.Amount)
	default:
		return string(tx.What())
	}
}

// TransactionsMarkdown renders the transactions as a table, in the given order.
func TransactionsMarkdown(txs []snowball.Transaction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Transactions\n\n")
	if len(txs) == 0 {
		fmt.Fprintf(&b, "No transactions.\n")
		return b.String()
	}
	tableHeader(&b, "llllrrrrl", "ID", "Date", "Type", "Symbol", "Quantity", "Price", "Amount", "Fees", "Notes")
	for _, tx := range txs {
		f := snowball.FieldsOf(tx)
		tableRow(&b, f.ID, f.Date.String(), string(f.Type), f.Symbol,
			quantity(f.Quantity), amount(f.Price), f.Amount.String(), amount(f.Fees), f.Notes)
	}
	fmt.Fprintf(&b, "\n%s.\n", Count(len(txs), "transaction"))
	return b.String()
}
