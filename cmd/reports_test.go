package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/etnz/snowball"
	"github.com/google/subcommands"
)

const quotesJSON = `{
  "AAPL": {"name": "Apple Inc.", "sector": "Technology", "price": 150, "annualDividend": 1},
  "KO": {"name": "Coca-Cola", "sector": "Consumer Staples", "price": 60, "annualDividend": 1.84}
}`

const mappingJSON = `{"records": "$.data[*]", "symbol": "$.ticker", "price": "$.last", "sector": "$.industry"}`

const brokerQuotesJSON = `{"data": [{"ticker": "AAPL", "last": "$160.00", "industry": "Technology"}]}`

// portfolio records a small dividend portfolio and returns the output buffer.
func portfolio(t *testing.T) *bytes.Buffer {
	t.Helper()
	out := setup(t)
	set(t, quotesFile, writeFile(t, "quotes.json", quotesJSON))
	mustRun(t, out, &addCmd{}, "deposit", "-d", "2024-01-01", "-a", "5000")
	mustRun(t, out, &addCmd{}, "buy", "-d", "2024-01-15", "-s", "AAPL", "-q", "10", "-p", "100")
	mustRun(t, out, &addCmd{}, "buy", "-d", "2024-02-01", "-s", "KO", "-q", "20", "-p", "50")
	mustRun(t, out, &addCmd{}, "dividend", "-d", "2024-03-15", "-s", "KO", "-a", "100")
	mustRun(t, out, &addCmd{}, "dividend", "-d", "2024-05-15", "-s", "AAPL", "-a", "20", "-class", "foreign")
	return out
}

func assertContains(t *testing.T, got string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(got, want) {
			t.Errorf("output does not contain %q:\n%s", want, got)
		}
	}
}

func TestPositions(t *testing.T) {
	out := portfolio(t)
	got := mustRun(t, out, &positionsCmd{})
	assertContains(t, got,
		"# Positions",
		"Cost basis method: average.",
		"| AAPL | Apple Inc. | 10 | $100.00 | $1,000.00 | $150.00 | $1,500.00 |",
		"| KO | Coca-Cola | 20 | $50.00 | $1,000.00 | $60.00 | $1,200.00 |",
		"**$2,700.00**",
	)
}

func TestPositions_Unpriced(t *testing.T) {
	out := setup(t)
	mustRun(t, out, &addCmd{}, "buy", "-d", "2024-01-15", "-s", "AAPL", "-q", "10", "-p", "100")
	got := mustRun(t, out, &positionsCmd{})
	assertContains(t, got, "| AAPL |", "n/a")
}

func TestPositions_SavedPrices(t *testing.T) {
	out := portfolio(t)
	// prices saved with the positions are used when no quote is given.
	set(t, quotesFile, "")
	got := mustRun(t, out, &positionsCmd{})
	assertContains(t, got, "$1,500.00")
}

func TestPositions_QuotesMapping(t *testing.T) {
	out := portfolio(t)
	set(t, quotesFile, writeFile(t, "broker.json", brokerQuotesJSON))
	set(t, quotesMapping, writeFile(t, "mapping.json", mappingJSON))
	got := mustRun(t, out, &positionsCmd{})
	assertContains(t, got, "| AAPL | Apple Inc. | 10 | $100.00 | $1,000.00 | $160.00 | $1,600.00 |")
}

func TestPositions_Errors(t *testing.T) {
	tests := []struct {
		name string
		flag *string
		v    string
	}{
		{"cost method", costMethod, "lifo"},
		{"quotes", quotesFile, "/does/not/exist.json"},
		{"state", stateURL, "ftp://somewhere"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setup(t)
			set(t, tt.flag, tt.v)
			if got := run(t, &positionsCmd{}); got != subcommands.ExitFailure {
				t.Errorf("positions with -%s=%s = %v, want a failure", tt.name, tt.v, got)
			}
		})
	}
}

func TestSummary(t *testing.T) {
	out := portfolio(t)
	got := mustRun(t, out, &summaryCmd{})
	assertContains(t, got,
		"# Portfolio Summary on",
		"| Total Value | $2,700.00 |",
		"| Total Cost | $2,000.00 |",
		"| Dividend Income | $120.00 |",
	)
	if strings.Contains(got, "## Performance") {
		t.Errorf("summary without -performance shows performance:\n%s", got)
	}

	got = mustRun(t, out, &summaryCmd{}, "-performance")
	assertContains(t, got, "## Performance (mock)")
}

func TestSummary_Empty(t *testing.T) {
	out := setup(t)
	got := mustRun(t, out, &summaryCmd{})
	assertContains(t, got, "| Total Value | $0.00 |", "| Cash Balance | $0.00 |")
}

func TestSummary_Unpriced(t *testing.T) {
	out := setup(t)
	mustRun(t, out, &addCmd{}, "buy", "-d", "2024-01-15", "-s", "AAPL", "-q", "10", "-p", "185.50", "-fees", "1")
	got := mustRun(t, out, &summaryCmd{})
	assertContains(t, got, "| Unrealized Gain | n/a |")
}

func TestAllocation(t *testing.T) {
	out := portfolio(t)
	got := mustRun(t, out, &allocationCmd{}, "-top", "1")
	assertContains(t, got, "Technology", "Consumer Staples", "Top Performers")
}

func TestDividends(t *testing.T) {
	out := portfolio(t)
	got := mustRun(t, out, &dividendsCmd{}, "-y", "2024")
	assertContains(t, got, "$100.00", "$20.00", "$120.00")
}

func TestAddDividend(t *testing.T) {
	out := setup(t)
	got := mustRun(t, out, &addDividendCmd{}, "-s", "ko", "-a", "25", "-ex", "2024-03-01", "-pay", "2024-03-15", "-shares", "50")
	assertContains(t, got, "Recorded a dividend payment of $25.00 for KO")

	p := load(t)
	payments := p.Dividends()
	if len(payments) != 1 {
		t.Fatalf("got %d dividend payments, want 1", len(payments))
	}
	if got := payments[0].PayDate.String(); got != "2024-03-15" {
		t.Errorf("pay date = %s, want 2024-03-15", got)
	}
	if n := len(p.Transactions()); n != 0 {
		t.Errorf("add-dividend recorded %d transactions, want none", n)
	}

	got = mustRun(t, out, &dividendsCmd{}, "-y", "2024")
	assertContains(t, got, "KO", "2024-03-01")
}

func TestAddDividend_DefaultPayDate(t *testing.T) {
	out := setup(t)
	mustRun(t, out, &addDividendCmd{}, "-s", "KO", "-a", "25")

	payments := load(t).Dividends()
	if len(payments) != 1 {
		t.Fatalf("got %d dividend payments, want 1", len(payments))
	}
	if got, want := payments[0].PayDate, snowball.Today(); got != want {
		t.Errorf("pay date = %s, want %s", got, want)
	}
}

func TestAddDividend_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no symbol", []string{"-a", "25"}},
		{"no amount", []string{"-s", "KO"}},
		{"negative amount", []string{"-s", "KO", "-a", "-3"}},
		{"invalid date", []string{"-s", "KO", "-a", "3", "-ex", "soon"}},
		{"invalid shares", []string{"-s", "KO", "-a", "3", "-shares", "many"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setup(t)
			if got := run(t, &addDividendCmd{}, tt.args...); got != subcommands.ExitUsageError {
				t.Errorf("add-dividend %v = %v, want a usage error", tt.args, got)
			}
		})
	}
}

func TestTaxes(t *testing.T) {
	out := portfolio(t)
	got := mustRun(t, out, &taxesCmd{}, "-y", "2024", "-qualified-rate", "10", "-foreign-rate", "20")
	assertContains(t, got,
		"# Dividend Tax Summary 2024",
		"| Qualified | $100.00 | 10.00% | $10.00 |",
		"| Foreign | $20.00 | 20.00% | $4.00 |",
		"**$14.00**",
	)

	got = mustRun(t, out, &taxesCmd{}, "-y", "2023")
	assertContains(t, got, "# Dividend Tax Summary 2023")
}

func TestPrintMarkdown(t *testing.T) {
	out := setup(t)
	set(t, raw, false)
	printMarkdown("# Positions\n\nNo open positions.\n")
	assertContains(t, out.String(), "Positions", "No open positions.")
}

func TestTopic(t *testing.T) {
	out := setup(t)
	assertContains(t, mustRun(t, out, &topicCmd{}), "snowball")
	if got := run(t, &topicCmd{}, "no-such-topic"); got != subcommands.ExitFailure {
		t.Errorf("topic no-such-topic = %v, want a failure", got)
	}
}
