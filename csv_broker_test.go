package snowball

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseBrokerNumber(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"$1,234.56", "1234.56", false},
		{"(1,234.56)", "-1234.56", false},
		{"($50.00)", "-50", false},
		{" 12 ", "12", false},
		{"-3.5", "-3.5", false},
		{"", "", true},
		{"abc", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBrokerNumber(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseBrokerNumber(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if want := decimal.RequireFromString(tt.want); !got.Equal(want) {
				t.Errorf("ParseBrokerNumber(%q) = %v, want %v", tt.input, got, want)
			}
		})
	}
}

const brokerExport = `"Activity Date","Process Date","Settle Date","Instrument","Description","Trans Code","Quantity","Price","Amount"
"1/15/2024","1/15/2024","1/17/2024","aapl","Apple Inc","Buy","10","$185.00","($1,850.00)"
"2/10/2024","2/10/2024","2/10/2024","AAPL","Cash Div: R/D 2024-02-05","CDIV","","","$2.40"
"2/12/2024","2/12/2024","2/12/2024","VOD","Foreign tax withheld","FDIV","","","$1.10"
"3/1/2024","3/1/2024","3/1/2024","","ACH Deposit","ACH","","","$5,000.00"
"3/5/2024","3/5/2024","3/5/2024","","ACH Withdrawal","ACH","","","($500.00)"
"3/6/2024","3/6/2024","3/6/2024","XYZ","Journal","JNLS","","","$1.00"
"4/1/2024","4/1/2024","4/3/2024","AAPL","Apple Inc","Sell","4S","$190.00","$760.00"
"6/1/2024","6/1/2024","6/1/2024","","Gold Subscription Fee","GOLD","","","($5.00)"
""
"The data provided is for informational purposes only."
`

func TestReadBrokerCSV(t *testing.T) {
	txs, err := ReadBrokerCSV(strings.NewReader(brokerExport), "USD")
	if err != nil {
		t.Fatalf("ReadBrokerCSV() error = %v", err)
	}

	want := []Fields{
		{Date: day("2024-01-15"), Type: CmdBuy, Symbol: "AAPL", Quantity: Q(10), Price: USD(185), Amount: USD(1850), Notes: "Apple Inc"},
		{Date: day("2024-02-10"), Type: CmdDividend, Symbol: "AAPL", Amount: USD(2.4), Notes: "Cash Div: R/D 2024-02-05", DividendType: Qualified},
		{Date: day("2024-02-12"), Type: CmdDividend, Symbol: "VOD", Amount: USD(1.1), Notes: "Foreign tax withheld", DividendType: Foreign},
		{Date: day("2024-03-01"), Type: CmdDeposit, Amount: USD(5000), Notes: "ACH Deposit"},
		{Date: day("2024-03-05"), Type: CmdWithdrawal, Amount: USD(500), Notes: "ACH Withdrawal"},
		{Date: day("2024-04-01"), Type: CmdSell, Symbol: "AAPL", Quantity: Q(4), Price: USD(190), Amount: USD(760), Notes: "Apple Inc"},
		{Date: day("2024-06-01"), Type: CmdFee, Amount: USD(5), Notes: "Gold Subscription Fee"},
	}
	if len(txs) != len(want) {
		t.Fatalf("ReadBrokerCSV() read %d transactions, want %d", len(txs), len(want))
	}
	for i, w := range want {
		g := FieldsOf(txs[i])
		if g.Date != w.Date || g.Type != w.Type || g.Symbol != w.Symbol || g.Notes != w.Notes || g.DividendType != w.DividendType {
			t.Errorf("row %d: got %+v, want %+v", i, g, w)
		}
		if !g.Quantity.Equal(w.Quantity) || !g.Price.Equal(w.Price) || !g.Amount.Equal(w.Amount) {
			t.Errorf("row %d: got %v %v %v, want %v %v %v", i, g.Quantity, g.Price, g.Amount, w.Quantity, w.Price, w.Amount)
		}
	}
}

func TestReadBrokerCSV_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"missing trans code", "Date,Instrument,Amount\n1/1/2024,AAPL,1\n", ErrMissingHeader},
		{"header only", "Date,Instrument,Trans Code,Quantity,Price,Amount,Description\n", ErrNoTransactions},
		{"no known code", "Date,Instrument,Trans Code,Amount\n1/1/2024,AAPL,JNLS,1\n", ErrNoTransactions},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadBrokerCSV(strings.NewReader(tt.input), "USD")
			if !errors.Is(err, tt.want) {
				t.Errorf("ReadBrokerCSV() error = %v, want %v", err, tt.want)
			}
		})
	}
}
