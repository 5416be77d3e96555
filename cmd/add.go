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

type addCmd struct {
	txFlags
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record a transaction" }
func (*addCmd) Usage() string {
	return `snowball add <buy|sell|dividend|split|deposit|withdrawal|fee> [-d <date>] [-s <symbol>] [-q <quantity>] [-p <price>] [-a <amount>] [-fees <fees>] [-class <class>] [-n <notes>]

  Records a transaction. The date defaults to today.
  buy and sell need a symbol, a quantity and a price; their amount is computed when omitted.
  dividend needs a symbol and an amount, split a symbol and the shares received.
`
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	name, err := positional(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		return subcommands.ExitUsageError
	}
	typ, ok := snowball.ParseCommandType(name)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown transaction type %q, want one of %s\n", name, typeNames())
		return subcommands.ExitUsageError
	}

	patch, err := c.patch(f, *currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	fields := patch.Apply(snowball.Fields{Type: typ, Date: snowball.Today()}).Normalize()
	if typ.HasPrice() && patch.Amount == nil {
		fields = withTradeAmount(fields)
	}
	if err := fields.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	tx, err := fields.Transaction()
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

	tx = p.AddTransaction(tx)
	if err := SavePortfolio(ctx, store, p); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "%s (id %s)\n", renderer.Transaction(tx), tx.ID())
	return subcommands.ExitSuccess
}

func commandTypes() []string {
	names := make([]string, len(snowball.CommandTypes))
	for i, t := range snowball.CommandTypes {
		names[i] = string(t)
	}
	return names
}

func typeNames() string { return strings.Join(commandTypes(), ", ") }

type editCmd struct {
	txFlags
	typ string
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "modify a transaction" }
func (*editCmd) Usage() string {
	return `snowball edit <id> [-type <type>] [-d <date>] [-s <symbol>] [-q <quantity>] [-p <price>] [-a <amount>] [-fees <fees>] [-class <class>] [-n <notes>]

  Modifies the given fields of a transaction, leaving the others untouched.
  The amount of a buy or sell is recomputed when its quantity, price or fees change.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	c.txFlags.SetFlags(f)
	f.StringVar(&c.typ, "type", "", "New transaction type.")
}

func (c *editCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	id, err := positional(f)
	if err != nil || id == "" {
		fmt.Fprintln(os.Stderr, "Error: a transaction id is required.")
		return subcommands.ExitUsageError
	}
	patch, err := c.patch(f, *currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if c.typ != "" {
		typ, ok := snowball.ParseCommandType(c.typ)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown transaction type %q, want one of %s\n", c.typ, typeNames())
			return subcommands.ExitUsageError
		}
		patch.Type = &typ
	}

	p, store, err := OpenPortfolio(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	old, ok := p.Store().Get(id)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: no transaction with id %q\n", id)
		return subcommands.ExitFailure
	}
	tradeChanged := patch.Quantity != nil || patch.Price != nil || patch.Fees != nil || patch.Type != nil
	if tradeChanged && patch.Amount == nil {
		merged := withTradeAmount(patch.Apply(snowball.FieldsOf(old)))
		if merged.Type.HasPrice() {
			patch.Amount = &merged.Amount
		}
	}

	if !p.UpdateTransaction(id, patch) {
		fmt.Fprintf(os.Stderr, "Error: transaction %q could not be updated\n", id)
		return subcommands.ExitFailure
	}
	if err := SavePortfolio(ctx, store, p); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	tx, _ := p.Store().Get(id)
	fmt.Fprintf(stdout, "%s (id %s)\n", renderer.Transaction(tx), id)
	return subcommands.ExitSuccess
}

type rmCmd struct{}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "delete transactions" }
func (*rmCmd) Usage() string {
	return `snowball rm <id>...

  Deletes the transactions with the given ids.
`
}

func (*rmCmd) SetFlags(f *flag.FlagSet) {}

func (*rmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one transaction id is required.")
		return subcommands.ExitUsageError
	}
	p, store, err := OpenPortfolio(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	status := subcommands.ExitSuccess
	deleted := 0
	for _, id := range f.Args() {
		if !p.DeleteTransaction(id) {
			fmt.Fprintf(os.Stderr, "Error: no transaction with id %q\n", id)
			status = subcommands.ExitFailure
			continue
		}
		deleted++
	}
	if deleted > 0 {
		if err := SavePortfolio(ctx, store, p); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	fmt.Fprintf(stdout, "Deleted %s.\n", renderer.Count(deleted, "transaction"))
	return status
}
