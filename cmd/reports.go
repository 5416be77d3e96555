package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/snowball"
	"github.com/etnz/snowball/analytics"
	"github.com/etnz/snowball/renderer"
	"github.com/google/subcommands"
)

type positionsCmd struct{}

func (*positionsCmd) Name() string     { return "positions" }
func (*positionsCmd) Synopsis() string { return "show open positions" }
func (*positionsCmd) Usage() string {
	return `snowball positions

  Shows the open positions derived from the transactions, priced with the -quotes reference data.
`
}

func (*positionsCmd) SetFlags(f *flag.FlagSet) {}

func (*positionsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, store, err := OpenPortfolio(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	printMarkdown(renderer.PositionsMarkdown(p.Positions(), p.Method()))
	return subcommands.ExitSuccess
}

type summaryCmd struct {
	performance bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "show portfolio totals" }
func (*summaryCmd) Usage() string {
	return `snowball summary [-performance]

  Shows the total value, cost, gains, dividend income and cash of the portfolio.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.performance, "performance", false, "Add the mock performance metrics.")
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, store, err := OpenPortfolio(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	positions := p.Positions()
	report := renderer.SummaryReport{
		Date:         snowball.Today(),
		Method:       p.Method(),
		Positions:    len(positions),
		Summary:      p.Summary(),
		ForwardYield: analytics.MockForwardYield(positions).In(p.Currency()),
	}
	if c.performance {
		perf := analytics.MockPerformance(report.Summary, positions)
		report.Performance = &perf
	}
	printMarkdown(renderer.RenderSummary(report))
	return subcommands.ExitSuccess
}

type allocationCmd struct {
	top int
}

func (*allocationCmd) Name() string     { return "allocation" }
func (*allocationCmd) Synopsis() string { return "show allocation and top performers" }
func (*allocationCmd) Usage() string {
	return `snowball allocation [-top <n>]

  Shows the weight of each symbol and sector in the market value, and the best performing positions.
`
}

func (c *allocationCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.top, "top", 5, "Number of top performers to show, 0 for all.")
}

func (c *allocationCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, store, err := OpenPortfolio(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	positions := p.Positions()
	printMarkdown(renderer.AllocationMarkdown(analytics.Allocate(positions), analytics.TopPerformers(positions, c.top)))
	return subcommands.ExitSuccess
}

type dividendsCmd struct {
	year int
}

func (*dividendsCmd) Name() string     { return "dividends" }
func (*dividendsCmd) Synopsis() string { return "show dividend income" }
func (*dividendsCmd) Usage() string {
	return `snowball dividends [-y <year>]

  Shows the dividend income of every month of a year and the recorded dividend payments.
`
}

func (c *dividendsCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.year, "y", snowball.Today().Year(), "Year of the monthly breakdown.")
}

func (c *dividendsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, store, err := OpenPortfolio(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	md := renderer.MonthlyDividendsMarkdown(c.year, snowball.MonthlyDividends(p.Transactions(), c.year))
	md += "\n" + renderer.DividendPaymentsMarkdown(p.Dividends())
	printMarkdown(md)
	return subcommands.ExitSuccess
}

type addDividendCmd struct {
	symbol, amount, exDate, payDate, class, shares string
}

func (*addDividendCmd) Name() string     { return "add-dividend" }
func (*addDividendCmd) Synopsis() string { return "record a dividend payment" }
func (*addDividendCmd) Usage() string {
	return `snowball add-dividend -s <symbol> -a <amount> [-ex <date>] [-pay <date>] [-shares <n>] [-class <class>]

  Records a dividend payment with its ex-date and pay date. Payments feed the dividend calendar,
  they are not transactions: use "snowball add dividend" to record the cash income.
`
}

func (c *addDividendCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Security symbol.")
	f.StringVar(&c.amount, "a", "", "Amount paid.")
	f.StringVar(&c.exDate, "ex", "", "Ex-dividend date.")
	f.StringVar(&c.payDate, "pay", "today", "Payment date.")
	f.StringVar(&c.shares, "shares", "", "Number of shares held on the ex-date.")
	f.StringVar(&c.class, "class", "qualified", "Classification: qualified, non-qualified, roc or foreign.")
}

func (c *addDividendCmd) payment() (snowball.DividendPayment, error) {
	d := snowball.DividendPayment{Symbol: c.symbol, Type: snowball.ParseDividendType(c.class)}
	if c.symbol == "" {
		return d, fmt.Errorf("a symbol is required")
	}
	var err error
	if d.Amount, err = snowball.ParseMoney(c.amount, *currency); err != nil {
		return d, fmt.Errorf("invalid amount: %w", err)
	}
	if !d.Amount.IsPositive() {
		return d, fmt.Errorf("amount must be positive, got %s", d.Amount)
	}
	if c.exDate != "" {
		if d.ExDate, err = snowball.ParseDate(c.exDate); err != nil {
			return d, fmt.Errorf("invalid ex-date: %w", err)
		}
	}
	if c.payDate != "" {
		if d.PayDate, err = snowball.ParseDate(c.payDate); err != nil {
			return d, fmt.Errorf("invalid pay date: %w", err)
		}
	}
	if c.shares != "" {
		if d.Shares, err = snowball.ParseQuantity(c.shares); err != nil {
			return d, fmt.Errorf("invalid shares: %w", err)
		}
	}
	return d, nil
}

func (c *addDividendCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	d, err := c.payment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	p, store, err := OpenPortfolio(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	d = p.AddDividend(d)
	if err := SavePortfolio(ctx, store, p); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Recorded a dividend payment of %s for %s (id %s)\n", d.Amount, d.Symbol, d.ID)
	return subcommands.ExitSuccess
}

type taxesCmd struct {
	year                        int
	qualified, ordinary, foreign float64
}

func (*taxesCmd) Name() string     { return "taxes" }
func (*taxesCmd) Synopsis() string { return "classify dividends for taxes" }
func (*taxesCmd) Usage() string {
	return `snowball taxes [-y <year>] [-qualified-rate <pct>] [-ordinary-rate <pct>] [-foreign-rate <pct>]

  Splits dividend income into qualified, non-qualified, return of capital and foreign, and estimates the tax due.
`
}

func (c *taxesCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.year, "y", 0, "Tax year. 0 reports every year.")
	f.Float64Var(&c.qualified, "qualified-rate", float64(defaults.TaxRates.Qualified), "Tax rate of qualified dividends, in percent. Env SNOWBALL_TAX_QUALIFIED.")
	f.Float64Var(&c.ordinary, "ordinary-rate", float64(defaults.TaxRates.Ordinary), "Tax rate of non-qualified dividends, in percent. Env SNOWBALL_TAX_ORDINARY.")
	f.Float64Var(&c.foreign, "foreign-rate", float64(defaults.TaxRates.Foreign), "Tax rate of foreign dividends, in percent. Env SNOWBALL_TAX_FOREIGN.")
}

func (c *taxesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, store, err := OpenPortfolio(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	report := renderer.TaxReport{
		Year:    c.year,
		Summary: p.Taxes(c.year),
		Rates: snowball.TaxRates{
			Qualified: snowball.Percent(c.qualified),
			Ordinary:  snowball.Percent(c.ordinary),
			Foreign:   snowball.Percent(c.foreign),
		},
	}
	printMarkdown(renderer.RenderTaxes(report))
	return subcommands.ExitSuccess
}
