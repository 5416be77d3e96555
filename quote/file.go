// Package quote provides reference data sources for the portfolio: a plain
// JSON quote file and a JSONPath extractor for arbitrary JSON documents.
package quote

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/etnz/snowball"
)

// Read quotes from 'r' in the quote file format.
//
// The file contains a single json object whose property names are symbols
// and values are quotes:
//
//	{"AAPL":{"name":"Apple Inc.","sector":"Technology","price":190.5,"annualDividend":0.96}}
//
// Every price is expressed in 'currency'.
func Read(r io.Reader, currency string) (snowball.Quotes, error) {
	content := make(map[string]snowball.Quote)
	if err := json.NewDecoder(r).Decode(&content); err != nil {
		return nil, fmt.Errorf("cannot parse quote file: %w", err)
	}
	quotes := make(snowball.Quotes, len(content))
	for symbol, q := range content {
		symbol = strings.ToUpper(strings.TrimSpace(symbol))
		if symbol == "" {
			return nil, fmt.Errorf("cannot parse quote file: empty symbol")
		}
		q.Price = q.Price.In(currency)
		q.AnnualDividend = q.AnnualDividend.In(currency)
		quotes[symbol] = q
	}
	return quotes, nil
}

// File loads the quote file at path.
func File(path, currency string) (snowball.Quotes, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open quote file: %w", err)
	}
	defer f.Close()
	q, err := Read(f, currency)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return q, nil
}
