package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/snowball"
	"github.com/etnz/snowball/renderer"
	"github.com/google/subcommands"
)

type txCmd struct {
	search string
	types  string
	symbol string
	year   int
	sort   string
	desc   bool
	head   int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list transactions" }
func (*txCmd) Usage() string {
	return `snowball tx [-search <term>] [-type <type,...>] [-s <symbol>] [-y <year>] [-sort <field>] [-desc] [-head <n>]

  Lists transactions, newest first, with options for filtering and sorting the output.
  Sort fields are date, type, symbol, quantity, price and amount.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.search, "search", "", "Keep transactions whose symbol, type or notes contain the term.")
	f.StringVar(&c.types, "type", "", "Comma separated list of transaction types to keep.")
	f.StringVar(&c.symbol, "s", "", "Keep transactions of this symbol.")
	f.IntVar(&c.year, "y", 0, "Keep transactions of this year.")
	f.StringVar(&c.sort, "sort", "", "Sort on a field instead of the date order.")
	f.BoolVar(&c.desc, "desc", false, "Sort in descending order.")
	f.IntVar(&c.head, "head", 0, "Show only the first N transactions.")
}

func (c *txCmd) filters() ([]func(snowball.Transaction) bool, error) {
	var filters []func(snowball.Transaction) bool
	if c.search != "" {
		filters = append(filters, snowball.Matching(c.search))
	}
	if c.types != "" {
		var types []snowball.CommandType
		for _, name := range strings.Split(c.types, ",") {
			t, ok := snowball.ParseCommandType(name)
			if !ok {
				return nil, fmt.Errorf("unknown transaction type %q", name)
			}
			types = append(types, t)
		}
		filters = append(filters, snowball.OfType(types...))
	}
	if c.symbol != "" {
		filters = append(filters, snowball.ForSymbol(c.symbol))
	}
	if c.year != 0 {
		filters = append(filters, snowball.InYear(c.year))
	}
	return filters, nil
}

func (c *txCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	filters, err := c.filters()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	var field snowball.SortField
	if c.sort != "" {
		if field, err = snowball.ParseSortField(c.sort); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	p, store, err := OpenPortfolio(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	var transactions []snowball.Transaction
	for _, tx := range p.Store().Transactions(filters...) {
		transactions = append(transactions, tx)
	}
	if field != "" {
		snowball.SortTransactions(transactions, field, c.desc)
	}
	if c.head > 0 && len(transactions) > c.head {
		transactions = transactions[:c.head]
	}

	printMarkdown(renderer.TransactionsMarkdown(transactions))
	return subcommands.ExitSuccess
}
