package renderer

import (
	"fmt"
	"strings"
	"time"

	"github.com/etnz/snowball"
)

// MonthlyDividendsMarkdown renders the dividend income of every month of year.
func MonthlyDividendsMarkdown(year int, months [12]snowball.Money) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Dividends %d\n\n", year)
	tableHeader(&b, "lr", "Month", "Income")
	var total snowball.Money
	for i, m := range months {
		total = total.Add(m)
		tableRow(&b, time.Month(i+1).String(), m.String())
	}
	fmt.Fprintf(&b, "| **Total** | **%s** |\n", total)
	fmt.Fprintf(&b, "\nMonthly average: %s.\n", total.Div(snowball.Q(12)))
	return b.String()
}

// DividendPaymentsMarkdown renders the recorded dividend payments, most recent first.
func DividendPaymentsMarkdown(payments []snowball.DividendPayment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Dividend Payments\n\n")
	if len(payments) == 0 {
		fmt.Fprintf(&b, "No dividend payments.\n")
		return b.String()
	}
	tableHeader(&b, "lllrrrl", "Symbol", "Ex-Date", "Pay Date", "Shares", "Amount", "Per Share", "Type")
	for _, d := range payments {
		tableRow(&b, d.Symbol, date(d.ExDate), date(d.PayDate), quantity(d.Shares),
			d.Amount.String(), amount(d.PerShare()), string(d.Type))
	}
	return b.String()
}

func date(d snowball.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}
