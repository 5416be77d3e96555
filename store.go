package snowball

import (
	"iter"
	"slices"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Store holds the transaction log and the dividend payment records.
//
// Transactions are kept sorted by date, newest first. Transactions on the
// same day stay in insertion order.
type Store struct {
	log          zerolog.Logger
	transactions []Transaction
	dividends    []DividendPayment
	newID        func() string
}

// NewStore creates an empty store.
func NewStore(log zerolog.Logger) *Store {
	return &Store{
		log:          log.With().Str("component", "store").Logger(),
		transactions: make([]Transaction, 0),
		newID:        uuid.NewString,
	}
}

// Len returns the number of transactions.
func (s *Store) Len() int { return len(s.transactions) }

// Add assigns a fresh id to tx and inserts it. It returns the stored transaction.
//
// The symbol is uppercased and the text fields trimmed, as ReadCSV does.
func (s *Store) Add(tx Transaction) Transaction {
	tx = normalized(tx).withID(s.newID())
	s.insert(tx)
	s.log.Debug().Str("id", tx.ID()).Str("type", string(tx.What())).Stringer("date", tx.When()).Msg("transaction added")
	return tx
}

// Import adds every transaction and returns how many were added.
func (s *Store) Import(txs []Transaction) int {
	for _, tx := range txs {
		s.insert(normalized(tx).withID(s.newID()))
	}
	s.log.Debug().Int("count", len(txs)).Msg("transactions imported")
	return len(txs)
}

func normalized(tx Transaction) Transaction {
	n, err := FieldsOf(tx).Normalize().Transaction()
	if err != nil {
		return tx
	}
	return n
}

// insert puts tx after every transaction dated on or after its date.
func (s *Store) insert(tx Transaction) {
	i := len(s.transactions)
	for j, t := range s.transactions {
		if t.When().Before(tx.When()) {
			i = j
			break
		}
	}
	s.transactions = slices.Insert(s.transactions, i, tx)
}

// Update merges the patch into the transaction with the given id.
// It returns false, and changes nothing, if there is no such transaction or
// if the patched record has no valid type.
func (s *Store) Update(id string, p Patch) bool {
	i := s.index(id)
	if i < 0 {
		s.log.Debug().Str("id", id).Msg("update of unknown transaction ignored")
		return false
	}
	tx, err := p.Apply(FieldsOf(s.transactions[i])).Normalize().Transaction()
	if err != nil {
		s.log.Warn().Err(err).Str("id", id).Msg("update rejected")
		return false
	}
	s.transactions[i] = tx
	s.stableSort()
	s.log.Debug().Str("id", id).Msg("transaction updated")
	return true
}

// Delete removes the transaction with the given id. It returns false if there
// is no such transaction.
func (s *Store) Delete(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.transactions = slices.Delete(s.transactions, i, i+1)
	s.log.Debug().Str("id", id).Msg("transaction deleted")
	return true
}

// AddDividend appends a dividend payment record, assigning its id.
func (s *Store) AddDividend(d DividendPayment) DividendPayment {
	d.ID = s.newID()
	d.Symbol = normalizeSymbol(d.Symbol)
	if d.Type == "" {
		d.Type = Qualified
	}
	s.dividends = append(s.dividends, d)
	s.log.Debug().Str("id", d.ID).Str("symbol", d.Symbol).Msg("dividend payment added")
	return d
}

// Get returns the transaction with the given id.
func (s *Store) Get(id string) (Transaction, bool) {
	if i := s.index(id); i >= 0 {
		return s.transactions[i], true
	}
	return nil, false
}

// Transactions iterates over the transactions, newest first, that match all
// the filters.
func (s *Store) Transactions(filters ...func(Transaction) bool) iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
	next:
		for i, tx := range s.transactions {
			for _, accept := range filters {
				if !accept(tx) {
					continue next
				}
			}
			if !yield(i, tx) {
				return
			}
		}
	}
}

// All returns a copy of the transactions, newest first.
func (s *Store) All() []Transaction { return slices.Clone(s.transactions) }

// Dividends returns a copy of the dividend payment records, in insertion order.
func (s *Store) Dividends() []DividendPayment { return slices.Clone(s.dividends) }

// restore replaces the content of the store with previously saved records.
// Records without an id get one.
func (s *Store) restore(txs []Transaction, dividends []DividendPayment) {
	s.transactions = make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.ID() == "" {
			tx = tx.withID(s.newID())
		}
		s.transactions = append(s.transactions, tx)
	}
	s.stableSort()
	s.dividends = slices.Clone(dividends)
	for i := range s.dividends {
		if s.dividends[i].ID == "" {
			s.dividends[i].ID = s.newID()
		}
	}
}

func (s *Store) index(id string) int {
	return slices.IndexFunc(s.transactions, func(tx Transaction) bool { return tx.ID() == id })
}

func (s *Store) stableSort() {
	slices.SortStableFunc(s.transactions, func(a, b Transaction) int {
		return b.When().Compare(a.When())
	})
}
