package cmd

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/snowball"
	"github.com/etnz/snowball/renderer"
	"github.com/google/subcommands"
)

func TestAdd(t *testing.T) {
	out := setup(t)

	got := mustRun(t, out, &addCmd{}, "buy", "-d", "2024-01-15", "-s", "AAPL", "-q", "10", "-p", "100")
	if want := "Bought 10 of AAPL at $100.00 for $1,000.00"; !strings.Contains(got, want) {
		t.Errorf("add buy printed %q, want it to contain %q", got, want)
	}
	mustRun(t, out, &addCmd{}, "-d", "2024-02-01", "-s", "AAPL", "-q", "4", "-p", "120", "-fees", "1", "sell")
	mustRun(t, out, &addCmd{}, "deposit", "-d", "2024-01-01", "-a", "5000")

	p := load(t)
	txs := p.Transactions()
	if len(txs) != 3 {
		t.Fatalf("got %d transactions, want 3", len(txs))
	}
	// newest first
	sell, ok := txs[0].(snowball.Sell)
	if !ok {
		t.Fatalf("txs[0] is a %s, want a sell", txs[0].What())
	}
	if want := snowball.M(479, "USD"); !sell.Amount.Equal(want) {
		t.Errorf("sell amount = %v, want %v", sell.Amount, want)
	}
	if got := p.PositionMap()["AAPL"].Shares; !got.Equal(snowball.Q(6)) {
		t.Errorf("AAPL shares = %v, want 6", got)
	}
}

func TestAdd_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no type", nil},
		{"unknown type", []string{"gift", "-a", "10"}},
		{"missing symbol", []string{"buy", "-q", "10", "-p", "100"}},
		{"invalid quantity", []string{"buy", "-s", "AAPL", "-q", "ten", "-p", "100"}},
		{"invalid date", []string{"deposit", "-d", "someday", "-a", "100"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setup(t)
			if got := run(t, &addCmd{}, tt.args...); got != subcommands.ExitUsageError {
				t.Errorf("add %v = %v, want a usage error", tt.args, got)
			}
			if n := len(load(t).Transactions()); n != 0 {
				t.Errorf("add %v recorded %d transactions, want none", tt.args, n)
			}
		})
	}
}

func TestEdit(t *testing.T) {
	out := setup(t)
	mustRun(t, out, &addCmd{}, "buy", "-d", "2024-01-15", "-s", "AAPL", "-q", "10", "-p", "100")
	id := load(t).Transactions()[0].ID()

	got := mustRun(t, out, &editCmd{}, id, "-q", "20", "-n", "doubled")
	if want := "Bought 20 of AAPL at $100.00 for $2,000.00"; !strings.Contains(got, want) {
		t.Errorf("edit printed %q, want it to contain %q", got, want)
	}

	tx, ok := load(t).Store().Get(id)
	if !ok {
		t.Fatalf("transaction %s disappeared", id)
	}
	if tx.Note() != "doubled" {
		t.Errorf("notes = %q, want %q", tx.Note(), "doubled")
	}
	if want := snowball.M(2000, "USD"); !tx.Total().Equal(want) {
		t.Errorf("amount = %v, want %v", tx.Total(), want)
	}

	// an explicit amount wins over the computed one.
	mustRun(t, out, &editCmd{}, id, "-p", "50", "-a", "999")
	tx, _ = load(t).Store().Get(id)
	if want := snowball.M(999, "USD"); !tx.Total().Equal(want) {
		t.Errorf("amount = %v, want %v", tx.Total(), want)
	}
}

func TestEdit_Errors(t *testing.T) {
	out := setup(t)
	mustRun(t, out, &addCmd{}, "deposit", "-a", "100")
	id := load(t).Transactions()[0].ID()

	if got := run(t, &editCmd{}); got != subcommands.ExitUsageError {
		t.Errorf("edit without id = %v, want a usage error", got)
	}
	if got := run(t, &editCmd{}, "unknown-id", "-a", "5"); got != subcommands.ExitFailure {
		t.Errorf("edit of an unknown id = %v, want a failure", got)
	}
	if got := run(t, &editCmd{}, "-type", "gift", id); got != subcommands.ExitUsageError {
		t.Errorf("edit to an unknown type = %v, want a usage error", got)
	}
}

func TestRm(t *testing.T) {
	out := setup(t)
	mustRun(t, out, &addCmd{}, "deposit", "-d", "2024-01-01", "-a", "100")
	mustRun(t, out, &addCmd{}, "deposit", "-d", "2024-01-02", "-a", "200")
	mustRun(t, out, &addCmd{}, "fee", "-d", "2024-01-03", "-a", "5")
	txs := load(t).Transactions()

	got := mustRun(t, out, &rmCmd{}, txs[0].ID(), txs[2].ID())
	if want := "Deleted 2 transactions."; !strings.Contains(got, want) {
		t.Errorf("rm printed %q, want %q", got, want)
	}
	left := load(t).Transactions()
	if len(left) != 1 || left[0].ID() != txs[1].ID() {
		t.Errorf("after rm got %v, want only %s", left, txs[1].ID())
	}

	if got := run(t, &rmCmd{}, "unknown-id"); got != subcommands.ExitFailure {
		t.Errorf("rm of an unknown id = %v, want a failure", got)
	}
	if got := run(t, &rmCmd{}); got != subcommands.ExitUsageError {
		t.Errorf("rm without id = %v, want a usage error", got)
	}
}

func TestTx(t *testing.T) {
	out := setup(t)
	mustRun(t, out, &addCmd{}, "buy", "-d", "2023-05-01", "-s", "KO", "-q", "10", "-p", "60", "-n", "drinks")
	mustRun(t, out, &addCmd{}, "buy", "-d", "2024-01-15", "-s", "AAPL", "-q", "10", "-p", "100")
	mustRun(t, out, &addCmd{}, "dividend", "-d", "2024-03-15", "-s", "KO", "-a", "4.6")

	tests := []struct {
		name  string
		args  []string
		count int
		has   string
	}{
		{"all", nil, 3, "AAPL"},
		{"symbol", []string{"-s", "ko"}, 2, "KO"},
		{"year", []string{"-y", "2024"}, 2, "AAPL"},
		{"type", []string{"-type", "dividend,sell"}, 1, "KO"},
		{"search", []string{"-search", "drink"}, 1, "drinks"},
		{"head", []string{"-sort", "amount", "-desc", "-head", "1"}, 1, "$1,000.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustRun(t, out, &txCmd{}, tt.args...)
			if !strings.Contains(got, tt.has) {
				t.Errorf("tx %v = %q, want it to contain %q", tt.args, got, tt.has)
			}
			if want := renderer.Count(tt.count, "transaction") + "."; !strings.Contains(got, want) {
				t.Errorf("tx %v = %q, want it to contain %q", tt.args, got, want)
			}
		})
	}

	if got := run(t, &txCmd{}, "-type", "gift"); got != subcommands.ExitUsageError {
		t.Errorf("tx -type gift = %v, want a usage error", got)
	}
	if got := run(t, &txCmd{}, "-sort", "color"); got != subcommands.ExitUsageError {
		t.Errorf("tx -sort color = %v, want a usage error", got)
	}
}

func TestImportExport(t *testing.T) {
	out := setup(t)
	mustRun(t, out, &addCmd{}, "buy", "-d", "2024-01-15", "-s", "AAPL", "-q", "10", "-p", "100", "-fees", "1")
	mustRun(t, out, &addCmd{}, "dividend", "-d", "2024-03-15", "-s", "AAPL", "-a", "2.4", "-class", "foreign")

	exported := filepath.Join(t.TempDir(), "export.csv")
	mustRun(t, out, &exportCmd{}, "-o", exported)
	before := load(t)

	set(t, stateURL, filepath.Join(t.TempDir(), "other"))
	got := mustRun(t, out, &importCmd{}, exported)
	if want := "Imported 2 transactions."; !strings.Contains(got, want) {
		t.Errorf("import printed %q, want %q", got, want)
	}

	after := load(t)
	if got, want := after.Summary().TotalCost, before.Summary().TotalCost; !got.Equal(want) {
		t.Errorf("imported total cost = %v, want %v", got, want)
	}
	if got, want := after.Taxes(2024).Total(), before.Taxes(2024).Total(); !got.Equal(want) {
		t.Errorf("imported dividends = %v, want %v", got, want)
	}

	// export to stdout writes the same CSV.
	data, err := os.ReadFile(exported)
	if err != nil {
		t.Fatal(err)
	}
	set(t, stateURL, filepath.Join(t.TempDir(), "again"))
	mustRun(t, out, &importCmd{}, exported)
	if got := mustRun(t, out, &exportCmd{}); got != string(data) {
		t.Errorf("export to stdout = %q, want %q", got, data)
	}
}

func TestImport_Broker(t *testing.T) {
	out := setup(t)
	file := writeFile(t, "activity.csv", `Activity Date,Instrument,Trans Code,Quantity,Price,Amount
01/15/2024,AAPL,Buy,10,$100.00,"($1,000.00)"
03/15/2024,AAPL,CDIV,,,$2.40
`)
	got := mustRun(t, out, &importCmd{}, "-format", "broker", file)
	if want := "Imported 2 transactions."; !strings.Contains(got, want) {
		t.Errorf("import printed %q, want %q", got, want)
	}
	if got := load(t).PositionMap()["AAPL"].Shares; !got.Equal(snowball.Q(10)) {
		t.Errorf("AAPL shares = %v, want 10", got)
	}
}

func TestImport_Stdin(t *testing.T) {
	out := setup(t)
	set(t, &stdin, io.Reader(strings.NewReader("Date,Type,Symbol,Quantity,Price,Amount,Fees,Notes\n2024-01-01,deposit,,,,1000,,initial\n")))
	got := mustRun(t, out, &importCmd{}, "-")
	if want := "Imported 1 transaction."; !strings.Contains(got, want) {
		t.Errorf("import printed %q, want %q", got, want)
	}
}

func TestImport_Errors(t *testing.T) {
	setup(t)
	empty := writeFile(t, "empty.csv", "Date,Type,Symbol,Quantity,Price,Amount,Fees,Notes\n")
	tests := []struct {
		name string
		args []string
		want subcommands.ExitStatus
	}{
		{"no file", nil, subcommands.ExitUsageError},
		{"unknown format", []string{"-format", "xml", empty}, subcommands.ExitUsageError},
		{"missing file", []string{filepath.Join(t.TempDir(), "missing.csv")}, subcommands.ExitFailure},
		{"no transactions", []string{empty}, subcommands.ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := run(t, &importCmd{}, tt.args...); got != tt.want {
				t.Errorf("import %v = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}
