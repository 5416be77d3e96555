package snowball

import (
	"errors"
	"fmt"
	"strings"
)

// Fields is the flat shape of a transaction, as found in CSV rows, JSON
// records and entry forms. Zero values are unset.
type Fields struct {
	ID           string       `json:"id,omitempty"`
	Date         Date         `json:"date"`
	Type         CommandType  `json:"type"`
	Symbol       string       `json:"symbol,omitempty"`
	Quantity     Quantity     `json:"quantity"`
	Price        Money        `json:"price"`
	Amount       Money        `json:"amount"`
	Fees         Money        `json:"fees"`
	Notes        string       `json:"notes,omitempty"`
	DividendType DividendType `json:"dividendType,omitempty"`
}

// FieldsOf flattens a transaction.
func FieldsOf(tx Transaction) Fields {
	f := Fields{
		ID:     tx.ID(),
		Date:   tx.When(),
		Type:   tx.What(),
		Symbol: Symbol(tx),
		Amount: tx.Total(),
		Notes:  tx.Note(),
	}
	switch v := tx.(type) {
	case Buy:
		f.Quantity, f.Price, f.Fees = v.Quantity, v.Price, v.Fees
	case Sell:
		f.Quantity, f.Price, f.Fees = v.Quantity, v.Price, v.Fees
	case Split:
		f.Quantity = v.Quantity
	case Dividend:
		f.DividendType = v.Class
	}
	return f
}

// Transaction builds the typed transaction for f.Type. Fields that have no
// meaning for that type are dropped.
func (f Fields) Transaction() (Transaction, error) {
	base := baseCmd{id: f.ID, Command: f.Type, Date: f.Date, Amount: f.Amount, Notes: f.Notes}
	sec := secCmd{baseCmd: base, Symbol: f.Symbol}
	switch f.Type {
	case CmdBuy:
		return Buy{secCmd: sec, Quantity: f.Quantity, Price: f.Price, Fees: f.Fees}, nil
	case CmdSell:
		return Sell{secCmd: sec, Quantity: f.Quantity, Price: f.Price, Fees: f.Fees}, nil
	case CmdDividend:
		return Dividend{secCmd: sec, Class: ParseDividendType(string(f.DividendType))}, nil
	case CmdSplit:
		return Split{secCmd: sec, Quantity: f.Quantity}, nil
	case CmdDeposit:
		return Deposit{base}, nil
	case CmdWithdrawal:
		return Withdrawal{base}, nil
	case CmdFee:
		return Fee{base}, nil
	case "":
		return nil, errors.New("transaction type is missing")
	default:
		return nil, fmt.Errorf("unknown transaction type %q", f.Type)
	}
}

// in tags every amount with the currency.
func (f Fields) in(currency string) Fields {
	f.Price = f.Price.In(currency)
	f.Amount = f.Amount.In(currency)
	f.Fees = f.Fees.In(currency)
	return f
}

// Normalize trims the text fields and uppercases the symbol.
func (f Fields) Normalize() Fields {
	f.Symbol = normalizeSymbol(f.Symbol)
	f.Notes = strings.TrimSpace(f.Notes)
	return f
}

func normalizeSymbol(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }

// Validate checks the requiredness rules of manual entry: a date and a type
// always, a symbol for security transactions, a quantity for buy, sell and
// split, and a price for buy and sell.
//
// The Store does not call Validate: imported records are accepted with
// whatever they carry.
func (f Fields) Validate() error {
	if f.Date.IsZero() {
		return errors.New("transaction date is missing")
	}
	if _, ok := ParseCommandType(string(f.Type)); !ok {
		return fmt.Errorf("unknown transaction type %q", f.Type)
	}
	if f.Type.HasSymbol() && f.Symbol == "" {
		return fmt.Errorf("%s transaction symbol is missing", f.Type)
	}
	if f.Type.HasQuantity() && !f.Quantity.IsPositive() {
		return fmt.Errorf("%s transaction quantity must be positive, got %s", f.Type, f.Quantity)
	}
	if f.Type.HasPrice() && !f.Price.IsPositive() {
		return fmt.Errorf("%s transaction price must be positive, got %s", f.Type, f.Price)
	}
	if f.Amount.IsNegative() {
		return fmt.Errorf("%s transaction amount must not be negative, got %s", f.Type, f.Amount)
	}
	return nil
}

// Patch holds the fields of a partial update. Nil fields are left untouched.
type Patch struct {
	Date         *Date
	Type         *CommandType
	Symbol       *string
	Quantity     *Quantity
	Price        *Money
	Amount       *Money
	Fees         *Money
	Notes        *string
	DividendType *DividendType
}

// Apply merges p into f.
func (p Patch) Apply(f Fields) Fields {
	if p.Date != nil {
		f.Date = *p.Date
	}
	if p.Type != nil {
		f.Type = *p.Type
	}
	if p.Symbol != nil {
		f.Symbol = *p.Symbol
	}
	if p.Quantity != nil {
		f.Quantity = *p.Quantity
	}
	if p.Price != nil {
		f.Price = *p.Price
	}
	if p.Amount != nil {
		f.Amount = *p.Amount
	}
	if p.Fees != nil {
		f.Fees = *p.Fees
	}
	if p.Notes != nil {
		f.Notes = *p.Notes
	}
	if p.DividendType != nil {
		f.DividendType = *p.DividendType
	}
	return f
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p == Patch{}
}
