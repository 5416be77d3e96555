package snowball

import (
	"context"
	"fmt"
)

// Keys of the persisted state. Each one holds a JSON array.
const (
	TransactionsKey = "snowball_transactions"
	PositionsKey    = "snowball_positions"
	DividendsKey    = "snowball_dividends"
)

// KeyValue is a string keyed store of opaque values.
// Get reports false, with no error, for an absent key.
type KeyValue interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Load reads a portfolio from kv. Absent keys are empty lists.
//
// Saved positions are not trusted as such: positions are always derived
// from the transactions. Their names, sectors and prices are kept as
// fallback reference data.
func Load(ctx context.Context, kv KeyValue, opts Options) (*Portfolio, error) {
	p := New(opts)

	data, err := get(ctx, kv, TransactionsKey)
	if err != nil {
		return nil, err
	}
	txs, err := DecodeTransactions(data, opts.Currency)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", TransactionsKey, err)
	}

	if data, err = get(ctx, kv, DividendsKey); err != nil {
		return nil, err
	}
	dividends, err := DecodeDividends(data, opts.Currency)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", DividendsKey, err)
	}

	if data, err = get(ctx, kv, PositionsKey); err != nil {
		return nil, err
	}
	positions, err := DecodePositions(data, opts.Currency)
	if err != nil {
		// stale derived data is never a reason to refuse the ledger.
		p.log.Warn().Err(err).Msg("ignoring saved positions")
		positions = nil
	}

	p.store.restore(txs, dividends)
	p.fallback = QuotesFromPositions(positions)
	p.log.Debug().Int("transactions", len(txs)).Int("dividends", len(dividends)).Msg("portfolio loaded")
	return p, nil
}

func get(ctx context.Context, kv KeyValue, key string) ([]byte, error) {
	data, ok, err := kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", key, err)
	}
	if !ok {
		return nil, nil
	}
	return data, nil
}

// Save writes the transactions, the derived positions and the dividend
// payments to kv. The portfolio itself is not modified, even on failure.
func Save(ctx context.Context, kv KeyValue, p *Portfolio) error {
	txs, err := EncodeTransactions(p.Transactions())
	if err != nil {
		return err
	}
	positions, err := EncodePositions(p.Positions())
	if err != nil {
		return err
	}
	dividends, err := EncodeDividends(p.Dividends())
	if err != nil {
		return err
	}

	for _, entry := range []struct {
		key  string
		data []byte
	}{
		{TransactionsKey, txs},
		{PositionsKey, positions},
		{DividendsKey, dividends},
	} {
		if err := kv.Set(ctx, entry.key, entry.data); err != nil {
			return fmt.Errorf("could not write %s: %w", entry.key, err)
		}
	}
	p.log.Debug().Int("transactions", len(p.store.transactions)).Msg("portfolio saved")
	return nil
}
