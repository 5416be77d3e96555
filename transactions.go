package snowball

import (
	"strings"
)

// CommandType is a typed string for identifying transaction types.
type CommandType string

// Command types used for identifying transactions.
const (
	CmdBuy        CommandType = "buy"
	CmdSell       CommandType = "sell"
	CmdDividend   CommandType = "dividend"
	CmdSplit      CommandType = "split"
	CmdDeposit    CommandType = "deposit"
	CmdWithdrawal CommandType = "withdrawal"
	CmdFee        CommandType = "fee"
)

// CommandTypes lists every transaction type, in display order.
var CommandTypes = []CommandType{CmdBuy, CmdSell, CmdDividend, CmdSplit, CmdDeposit, CmdWithdrawal, CmdFee}

// ParseCommandType parses a transaction type case-insensitively.
// It returns false for anything outside the closed set.
func ParseCommandType(s string) (CommandType, bool) {
	c := CommandType(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case CmdBuy, CmdSell, CmdDividend, CmdSplit, CmdDeposit, CmdWithdrawal, CmdFee:
		return c, true
	}
	return "", false
}

// HasSymbol reports whether transactions of this type refer to a security.
func (c CommandType) HasSymbol() bool {
	switch c {
	case CmdBuy, CmdSell, CmdDividend, CmdSplit:
		return true
	}
	return false
}

// HasQuantity reports whether transactions of this type carry a share quantity.
func (c CommandType) HasQuantity() bool {
	switch c {
	case CmdBuy, CmdSell, CmdSplit:
		return true
	}
	return false
}

// HasPrice reports whether transactions of this type carry a per-share price and fees.
func (c CommandType) HasPrice() bool {
	return c == CmdBuy || c == CmdSell
}

// DividendType is the tax classification of a dividend.
type DividendType string

const (
	Qualified       DividendType = "qualified"
	NonQualified    DividendType = "non-qualified"
	ReturnOfCapital DividendType = "roc"
	Foreign         DividendType = "foreign"
)

// ParseDividendType parses a dividend classification.
// Empty or unrecognized values are qualified.
func ParseDividendType(s string) DividendType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "non-qualified", "nonqualified", "ordinary":
		return NonQualified
	case "roc", "return-of-capital":
		return ReturnOfCapital
	case "foreign":
		return Foreign
	default:
		return Qualified
	}
}

// Transaction is one record of the ledger. The set of implementations is
// closed: Buy, Sell, Dividend, Split, Deposit, Withdrawal and Fee. Each one
// carries only the fields that are meaningful for its type.
//
// Amount is always a positive magnitude: the type tells whether cash comes in
// or goes out.
type Transaction interface {
	ID() string        // ID is assigned by the Store.
	What() CommandType // What returns the type of the transaction (e.g., "buy", "sell").
	When() Date        // When returns the date on which the transaction occurred.
	Total() Money      // Total returns the cash amount of the transaction.
	Note() string      // Note returns the optional free text.

	withID(id string) Transaction
}

type baseCmd struct {
	id      string
	Command CommandType
	Date    Date
	Amount  Money
	Notes   string
}

func (t baseCmd) ID() string        { return t.id }
func (t baseCmd) What() CommandType { return t.Command }
func (t baseCmd) When() Date        { return t.Date }
func (t baseCmd) Total() Money      { return t.Amount }
func (t baseCmd) Note() string      { return t.Notes }

// MarshalJSON writes the identifying head of every transaction.
func (t baseCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("id", t.id)
	w.Append("date", t.Date)
	w.Append("type", t.Command)
	return w.MarshalJSON()
}

// secCmd is a component for security based transactions (buy, sell, dividend, split).
type secCmd struct {
	baseCmd
	Symbol string
}

// Ticker returns the symbol of the security involved in the transaction.
func (t secCmd) Ticker() string { return t.Symbol }

func (t secCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("symbol", t.Symbol)
	return w.MarshalJSON()
}

// Buy represents a purchase of shares.
type Buy struct {
	secCmd
	Quantity Quantity // Quantity is the number of shares bought.
	Price    Money    // Price is the per-share price.
	Fees     Money    // Fees are the optional commissions.
}

// NewBuy creates a new Buy transaction. The amount is quantity × price + fees.
func NewBuy(day Date, notes, symbol string, quantity Quantity, price, fees Money) Buy {
	return Buy{
		secCmd:   secCmd{baseCmd: baseCmd{Command: CmdBuy, Date: day, Amount: price.Mul(quantity).Add(fees), Notes: notes}, Symbol: symbol},
		Quantity: quantity,
		Price:    price,
		Fees:     fees,
	}
}

// Cost returns what the purchase adds to the cost basis.
// Without a price the amount is used.
func (t Buy) Cost() Money {
	if t.Price.IsZero() {
		return t.Amount
	}
	return t.Price.Mul(t.Quantity).Add(t.Fees)
}

func (t Buy) withID(id string) Transaction { t.id = id; return t }

// MarshalJSON implements the json.Marshaler interface for Buy.
func (t Buy) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.secCmd)
	writeTrade(&w, t.Quantity, t.Price, t.Amount, t.Fees, t.Notes)
	return w.MarshalJSON()
}

// Sell represents a sale of shares.
type Sell struct {
	secCmd
	Quantity Quantity // Quantity is the number of shares sold.
	Price    Money    // Price is the per-share price.
	Fees     Money    // Fees are the optional commissions.
}

// NewSell creates a new Sell transaction. The amount is quantity × price − fees.
func NewSell(day Date, notes, symbol string, quantity Quantity, price, fees Money) Sell {
	return Sell{
		secCmd:   secCmd{baseCmd: baseCmd{Command: CmdSell, Date: day, Amount: price.Mul(quantity).Sub(fees), Notes: notes}, Symbol: symbol},
		Quantity: quantity,
		Price:    price,
		Fees:     fees,
	}
}

// Proceeds returns the cash received net of fees.
// Without a price the amount is used.
func (t Sell) Proceeds() Money {
	if t.Price.IsZero() {
		return t.Amount
	}
	return t.Price.Mul(t.Quantity).Sub(t.Fees)
}

func (t Sell) withID(id string) Transaction { t.id = id; return t }

// MarshalJSON implements the json.Marshaler interface for Sell.
func (t Sell) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.secCmd)
	writeTrade(&w, t.Quantity, t.Price, t.Amount, t.Fees, t.Notes)
	return w.MarshalJSON()
}

func writeTrade(w *jsonObjectWriter, quantity Quantity, price, amount, fees Money, notes string) {
	w.Optional("quantity", quantity)
	w.Optional("price", price)
	w.Append("amount", amount)
	w.Optional("fees", fees)
	w.Optional("notes", notes)
}

// Dividend represents a cash dividend received for a security.
type Dividend struct {
	secCmd
	Class DividendType // Class is the tax classification, qualified by default.
}

// NewDividend creates a new Dividend transaction.
func NewDividend(day Date, notes, symbol string, amount Money, class DividendType) Dividend {
	if class == "" {
		class = Qualified
	}
	return Dividend{
		secCmd: secCmd{baseCmd: baseCmd{Command: CmdDividend, Date: day, Amount: amount, Notes: notes}, Symbol: symbol},
		Class:  class,
	}
}

func (t Dividend) withID(id string) Transaction { t.id = id; return t }

// MarshalJSON implements the json.Marshaler interface for Dividend.
func (t Dividend) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.secCmd)
	w.Append("amount", t.Amount)
	w.Optional("notes", t.Notes)
	w.Append("dividendType", t.Class)
	return w.MarshalJSON()
}

// Split represents a stock split. Quantity is the number of new shares received.
type Split struct {
	secCmd
	Quantity Quantity
}

// NewSplit creates a new Split transaction.
func NewSplit(day Date, notes, symbol string, quantity Quantity) Split {
	return Split{
		secCmd:   secCmd{baseCmd: baseCmd{Command: CmdSplit, Date: day, Notes: notes}, Symbol: symbol},
		Quantity: quantity,
	}
}

func (t Split) withID(id string) Transaction { t.id = id; return t }

// MarshalJSON implements the json.Marshaler interface for Split.
func (t Split) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.secCmd)
	w.Optional("quantity", t.Quantity)
	w.Append("amount", t.Amount)
	w.Optional("notes", t.Notes)
	return w.MarshalJSON()
}

// Deposit represents cash added to the account.
type Deposit struct{ baseCmd }

// NewDeposit creates a new Deposit transaction.
func NewDeposit(day Date, notes string, amount Money) Deposit {
	return Deposit{baseCmd{Command: CmdDeposit, Date: day, Amount: amount, Notes: notes}}
}

func (t Deposit) withID(id string) Transaction { t.id = id; return t }

// MarshalJSON implements the json.Marshaler interface for Deposit.
func (t Deposit) MarshalJSON() ([]byte, error) { return marshalCash(t.baseCmd) }

// Withdrawal represents cash taken out of the account.
type Withdrawal struct{ baseCmd }

// NewWithdrawal creates a new Withdrawal transaction.
func NewWithdrawal(day Date, notes string, amount Money) Withdrawal {
	return Withdrawal{baseCmd{Command: CmdWithdrawal, Date: day, Amount: amount, Notes: notes}}
}

func (t Withdrawal) withID(id string) Transaction { t.id = id; return t }

// MarshalJSON implements the json.Marshaler interface for Withdrawal.
func (t Withdrawal) MarshalJSON() ([]byte, error) { return marshalCash(t.baseCmd) }

// Fee represents an account fee not attached to a trade.
type Fee struct{ baseCmd }

// NewFee creates a new Fee transaction.
func NewFee(day Date, notes string, amount Money) Fee {
	return Fee{baseCmd{Command: CmdFee, Date: day, Amount: amount, Notes: notes}}
}

func (t Fee) withID(id string) Transaction { t.id = id; return t }

// MarshalJSON implements the json.Marshaler interface for Fee.
func (t Fee) MarshalJSON() ([]byte, error) { return marshalCash(t.baseCmd) }

func marshalCash(t baseCmd) ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t)
	w.Append("amount", t.Amount)
	w.Optional("notes", t.Notes)
	return w.MarshalJSON()
}

// Symbol returns the security symbol of tx, or "" for cash transactions.
func Symbol(tx Transaction) string {
	if s, ok := tx.(interface{ Ticker() string }); ok {
		return s.Ticker()
	}
	return ""
}
