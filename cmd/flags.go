package cmd

import (
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/snowball"
)

// txFlags are the fields of a transaction given on the command line.
type txFlags struct {
	date         string
	symbol       string
	quantity     string
	price        string
	amount       string
	fees         string
	notes        string
	dividendType string
}

func (t *txFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&t.date, "d", "", "Transaction date: YYYY-MM-DD, MM/DD/YYYY, today or yesterday.")
	f.StringVar(&t.symbol, "s", "", "Security symbol, such as AAPL.")
	f.StringVar(&t.quantity, "q", "", "Number of shares. For a split, the shares received.")
	f.StringVar(&t.price, "p", "", "Price per share.")
	f.StringVar(&t.amount, "a", "", "Cash amount. Computed from quantity, price and fees for buy and sell when omitted.")
	f.StringVar(&t.fees, "fees", "", "Commissions paid on a buy or sell.")
	f.StringVar(&t.notes, "n", "", "Free text notes.")
	f.StringVar(&t.dividendType, "class", "", "Dividend classification: qualified, non-qualified, roc or foreign.")
}

// patch returns the fields that were set on the command line.
func (t *txFlags) patch(f *flag.FlagSet, cur string) (snowball.Patch, error) {
	var p snowball.Patch
	var errs []string
	f.Visit(func(fl *flag.Flag) {
		var err error
		switch fl.Name {
		case "d":
			var d snowball.Date
			d, err = snowball.ParseDate(t.date)
			p.Date = &d
		case "s":
			p.Symbol = &t.symbol
		case "q":
			var q snowball.Quantity
			q, err = snowball.ParseQuantity(t.quantity)
			p.Quantity = &q
		case "p":
			p.Price, err = parseMoney(t.price, cur)
		case "a":
			p.Amount, err = parseMoney(t.amount, cur)
		case "fees":
			p.Fees, err = parseMoney(t.fees, cur)
		case "n":
			p.Notes = &t.notes
		case "class":
			c := snowball.ParseDividendType(t.dividendType)
			p.DividendType = &c
		}
		if err != nil {
			errs = append(errs, fmt.Sprintf("-%s: %v", fl.Name, err))
		}
	})
	if len(errs) > 0 {
		return p, fmt.Errorf("invalid flags: %s", strings.Join(errs, "; "))
	}
	return p, nil
}

func parseMoney(s, cur string) (*snowball.Money, error) {
	m, err := snowball.ParseMoney(s, cur)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// withTradeAmount computes the amount of a buy or sell from its quantity,
// price and fees.
func withTradeAmount(f snowball.Fields) snowball.Fields {
	switch f.Type {
	case snowball.CmdBuy:
		f.Amount = snowball.NewBuy(f.Date, "", f.Symbol, f.Quantity, f.Price, f.Fees).Amount
	case snowball.CmdSell:
		f.Amount = snowball.NewSell(f.Date, "", f.Symbol, f.Quantity, f.Price, f.Fees).Amount
	}
	return f
}

// positional returns the first positional argument and parses the flags that
// follow it, so that "add buy -s AAPL" works as well as "add -s AAPL buy".
func positional(f *flag.FlagSet) (string, error) {
	args := f.Args()
	if len(args) == 0 {
		return "", nil
	}
	if err := f.Parse(args[1:]); err != nil {
		return "", err
	}
	return args[0], nil
}
