package quote

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/snowball"
	"github.com/shopspring/decimal"
)

// JSONPath extracts quotes from an arbitrary JSON document, such as a saved
// broker export.
//
// Records selects one JSON value per security, for instance "$.data[*]".
// The other expressions are evaluated against each record. Only Symbol is
// required; a field whose expression is empty or matches nothing is left unset.
type JSONPath struct {
	Records        string `json:"records"`
	Symbol         string `json:"symbol"`
	Name           string `json:"name,omitempty"`
	Sector         string `json:"sector,omitempty"`
	Price          string `json:"price,omitempty"`
	AnnualDividend string `json:"annualDividend,omitempty"`
}

// LoadJSONPath reads a JSONPath mapping from a json file.
func LoadJSONPath(path string) (JSONPath, error) {
	var m JSONPath
	data, err := os.ReadFile(path)
	if err != nil {
		return m, fmt.Errorf("cannot read quote mapping: %w", err)
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("cannot parse quote mapping %s: %w", path, err)
	}
	if m.Records == "" || m.Symbol == "" {
		return m, fmt.Errorf("quote mapping %s: records and symbol are required", path)
	}
	return m, nil
}

// Read decodes the JSON document in 'r' and extracts its quotes.
func (m JSONPath) Read(r io.Reader, currency string) (snowball.Quotes, error) {
	var doc any
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("cannot parse quote document: %w", err)
	}
	return m.Extract(doc, currency)
}

// File extracts the quotes of the JSON document at path.
func (m JSONPath) File(path, currency string) (snowball.Quotes, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open quote document: %w", err)
	}
	defer f.Close()
	q, err := m.Read(f, currency)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return q, nil
}

// Extract evaluates the mapping on an already decoded document.
func (m JSONPath) Extract(doc any, currency string) (snowball.Quotes, error) {
	jval, err := jsonpath.Get(m.Records, doc)
	if err != nil {
		return nil, fmt.Errorf("error evaluating records %q: %w", m.Records, err)
	}
	records, ok := jval.([]any)
	if !ok {
		records = []any{jval}
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("records %q selects no security", m.Records)
	}

	quotes := make(snowball.Quotes, len(records))
	for i, rec := range records {
		symbol, ok := text(m.Symbol, rec)
		if !ok {
			return nil, fmt.Errorf("record %d: no symbol at %q", i, m.Symbol)
		}
		symbol = strings.ToUpper(strings.TrimSpace(symbol))
		var q snowball.Quote
		q.Name, _ = text(m.Name, rec)
		q.Sector, _ = text(m.Sector, rec)
		if p, ok, err := number(m.Price, rec); err != nil {
			return nil, fmt.Errorf("record %d (%s): price: %w", i, symbol, err)
		} else if ok {
			q.Price = snowball.M(p, currency)
		}
		if d, ok, err := number(m.AnnualDividend, rec); err != nil {
			return nil, fmt.Errorf("record %d (%s): annual dividend: %w", i, symbol, err)
		} else if ok {
			q.AnnualDividend = snowball.M(d, currency)
		}
		quotes[symbol] = q
	}
	return quotes, nil
}

// lookup evaluates path on rec. Missing keys and empty paths are reported as absent.
func lookup(path string, rec any) (any, bool) {
	if path == "" {
		return nil, false
	}
	jval, err := jsonpath.Get(path, rec)
	if err != nil {
		return nil, false
	}
	// jsonpath returns either a single answer or a list of answers: keep the first one.
	if jlist, ok := jval.([]any); ok {
		if len(jlist) == 0 {
			return nil, false
		}
		jval = jlist[0]
	}
	if jval == nil {
		return nil, false
	}
	return jval, true
}

func text(path string, rec any) (string, bool) {
	jval, ok := lookup(path, rec)
	if !ok {
		return "", false
	}
	switch v := jval.(type) {
	case string:
		return v, v != ""
	case float64:
		return decimal.NewFromFloat(v).String(), true
	default:
		return fmt.Sprint(v), true
	}
}

// number accepts json numbers and formatted strings such as "$1,234.50".
func number(path string, rec any) (decimal.Decimal, bool, error) {
	jval, ok := lookup(path, rec)
	if !ok {
		return decimal.Decimal{}, false, nil
	}
	switch v := jval.(type) {
	case float64:
		return decimal.NewFromFloat(v), true, nil
	case string:
		if strings.TrimSpace(v) == "" {
			return decimal.Decimal{}, false, nil
		}
		d, err := snowball.ParseBrokerNumber(v)
		return d, err == nil, err
	default:
		return decimal.Decimal{}, false, fmt.Errorf("not a number: %v", jval)
	}
}
