// Package cmd implements the CLI application to manage a dividend portfolio.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/snowball"
	"github.com/etnz/snowball/config"
	"github.com/etnz/snowball/kv"
	"github.com/etnz/snowball/logger"
	"github.com/etnz/snowball/quote"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&addCmd{}, "transactions")
	c.Register(&editCmd{}, "transactions")
	c.Register(&rmCmd{}, "transactions")
	c.Register(&txCmd{}, "transactions")
	c.Register(&importCmd{}, "transactions")
	c.Register(&exportCmd{}, "transactions")

	c.Register(&positionsCmd{}, "reports")
	c.Register(&summaryCmd{}, "reports")
	c.Register(&allocationCmd{}, "reports")

	c.Register(&dividendsCmd{}, "dividends")
	c.Register(&addDividendCmd{}, "dividends")
	c.Register(&taxesCmd{}, "dividends")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var defaults = loadDefaults()

var (
	stateURL      = flag.String("state", defaults.State, "Portfolio state: a directory, dir://, sqlite://, postgres://, redis:// or mem://. Env SNOWBALL_STATE.")
	quotesFile    = flag.String("quotes", defaults.Quotes, "Path to a JSON quote file used as reference data. Env SNOWBALL_QUOTES.")
	quotesMapping = flag.String("quotes-mapping", defaults.QuotesMapping, "Path to a JSONPath mapping to read -quotes as an arbitrary JSON document. Env SNOWBALL_QUOTES_MAPPING.")
	currency      = flag.String("currency", defaults.Currency, "Currency of every amount. Env SNOWBALL_CURRENCY.")
	costMethod    = flag.String("cost-method", defaults.CostMethod, "Cost basis method: average or fifo. Env SNOWBALL_COST_METHOD.")
	Verbose       = flag.Bool("verbose", false, "Print debug logs to stderr.")
	raw           = flag.Bool("raw", false, "Print reports as raw markdown.")
)

// stdout receives every report.
var stdout io.Writer = os.Stdout

func loadDefaults() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error in configuration, using defaults: %v\n", err)
		return config.Default()
	}
	return cfg
}

func newLogger() zerolog.Logger {
	level := defaults.LogLevel
	if *Verbose {
		level = "debug"
	}
	return logger.New(logger.Config{Level: level, Pretty: defaults.LogPretty})
}

// referenceData loads the quotes given by -quotes, if any.
func referenceData() (snowball.ReferenceData, error) {
	if *quotesFile == "" {
		return nil, nil
	}
	if *quotesMapping != "" {
		m, err := quote.LoadJSONPath(*quotesMapping)
		if err != nil {
			return nil, err
		}
		return m.File(*quotesFile, *currency)
	}
	return quote.File(*quotesFile, *currency)
}

func options(log zerolog.Logger) (snowball.Options, error) {
	method, err := snowball.ParseCostBasisMethod(*costMethod)
	if err != nil {
		return snowball.Options{}, err
	}
	ref, err := referenceData()
	if err != nil {
		return snowball.Options{}, err
	}
	return snowball.Options{Currency: *currency, Method: method, Reference: ref, Logger: log}, nil
}

// OpenPortfolio is the central function to open the portfolio state. The
// caller must close the returned store.
func OpenPortfolio(ctx context.Context) (*snowball.Portfolio, kv.Store, error) {
	log := newLogger()
	opts, err := options(log)
	if err != nil {
		return nil, nil, err
	}
	store, err := kv.Open(ctx, *stateURL, log)
	if err != nil {
		return nil, nil, err
	}
	p, err := snowball.Load(ctx, store, opts)
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	log.Debug().Str("state", kv.Redact(*stateURL)).Int("transactions", len(p.Transactions())).Msg("portfolio loaded")
	return p, store, nil
}

// SavePortfolio writes the portfolio back to its state.
func SavePortfolio(ctx context.Context, store kv.Store, p *snowball.Portfolio) error {
	if err := snowball.Save(ctx, store, p); err != nil {
		return fmt.Errorf("could not save portfolio to %s: %w", kv.Redact(*stateURL), err)
	}
	return nil
}

// printMarkdown renders md on the terminal, or prints it as is with -raw.
func printMarkdown(md string) {
	if *raw {
		fmt.Fprint(stdout, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Fprint(stdout, out)
			return
		}
	}
	fmt.Fprint(stdout, md)
}
