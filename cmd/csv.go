package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/snowball"
	"github.com/etnz/snowball/renderer"
	"github.com/google/subcommands"
)

var stdin io.Reader = os.Stdin

type importCmd struct {
	format string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import transactions from a CSV file" }
func (*importCmd) Usage() string {
	return `snowball import [-format generic|broker] <file.csv|->

  Adds the transactions of a CSV file. "-" reads the standard input.

  The generic format has the columns Date, Type, Symbol, Quantity, Price, Amount, Fees and Notes,
  as written by "snowball export". The broker format reads brokerage activity exports with the
  columns Activity Date, Instrument, Trans Code, Quantity, Price and Amount.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "generic", "CSV layout: generic or broker.")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one CSV file is required.")
		return subcommands.ExitUsageError
	}
	var read func(io.Reader, string) ([]snowball.Transaction, error)
	switch c.format {
	case "generic":
		read = snowball.ReadCSV
	case "broker":
		read = snowball.ReadBrokerCSV
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown format %q, want generic or broker\n", c.format)
		return subcommands.ExitUsageError
	}

	r := stdin
	if name := f.Arg(0); name != "-" {
		file, err := os.Open(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening CSV file: %v\n", err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		r = file
	}
	txs, err := read(r, *currency)
	if errors.Is(err, snowball.ErrNoTransactions) {
		fmt.Fprintf(os.Stderr, "Error: %s contains no valid transactions\n", f.Arg(0))
		return subcommands.ExitFailure
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading CSV file: %v\n", err)
		return subcommands.ExitFailure
	}

	p, store, err := OpenPortfolio(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	n := p.Import(txs)
	if err := SavePortfolio(ctx, store, p); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Imported %s.\n", renderer.Count(n, "transaction"))
	return subcommands.ExitSuccess
}

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export transactions to CSV" }
func (*exportCmd) Usage() string {
	return `snowball export [-o <file.csv>]

  Writes every transaction, newest first, in the generic CSV format.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file. Defaults to the standard output.")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, store, err := OpenPortfolio(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	w := stdout
	if c.output != "" {
		file, err := os.Create(c.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		w = file
	}
	if err := snowball.WriteCSV(w, p.Transactions()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
