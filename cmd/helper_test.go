package cmd

import (
	"bytes"
	"context"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/snowball"
	"github.com/google/subcommands"
)

// set replaces a global flag value for the duration of the test.
func set[T any](t *testing.T, p *T, v T) {
	t.Helper()
	old := *p
	*p = v
	t.Cleanup(func() { *p = old })
}

// setup points the global flags to a fresh directory state and captures the
// reports in the returned buffer.
func setup(t *testing.T) *bytes.Buffer {
	t.Helper()
	set(t, stateURL, filepath.Join(t.TempDir(), "state"))
	set(t, quotesFile, "")
	set(t, quotesMapping, "")
	set(t, currency, "USD")
	set(t, costMethod, "average")
	set(t, Verbose, false)
	set(t, raw, true)

	var out bytes.Buffer
	set(t, &stdout, io.Writer(&out))
	return &out
}

// run parses args for c the way the commander does, then executes it.
func run(t *testing.T, c subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("%s %v: cannot parse flags: %v", c.Name(), args, err)
	}
	return c.Execute(context.Background(), f)
}

// mustRun runs c and fails the test unless it succeeds. It returns the
// output of that run only.
func mustRun(t *testing.T, out *bytes.Buffer, c subcommands.Command, args ...string) string {
	t.Helper()
	out.Reset()
	if got := run(t, c, args...); got != subcommands.ExitSuccess {
		t.Fatalf("%s %s = %v, want success", c.Name(), strings.Join(args, " "), got)
	}
	return out.String()
}

// load opens the current state.
func load(t *testing.T) *snowball.Portfolio {
	t.Helper()
	p, store, err := OpenPortfolio(context.Background())
	if err != nil {
		t.Fatalf("OpenPortfolio() failed: %v", err)
	}
	defer store.Close()
	return p
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
