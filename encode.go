package snowball

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// EncodeTransactions encodes transactions as a JSON array, in the given order.
func EncodeTransactions(txs []Transaction) ([]byte, error) {
	if txs == nil {
		txs = []Transaction{}
	}
	data, err := json.Marshal(txs)
	if err != nil {
		return nil, fmt.Errorf("could not encode transactions: %w", err)
	}
	return data, nil
}

// DecodeTransactions decodes a JSON array of transaction records. Every
// amount is tagged with currency. Empty input is an empty list.
func DecodeTransactions(data []byte, currency string) ([]Transaction, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var records []Fields
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("could not decode transactions: %w", err)
	}
	txs := make([]Transaction, 0, len(records))
	for i, r := range records {
		tx, err := r.in(currency).Transaction()
		if err != nil {
			return nil, fmt.Errorf("could not identify transaction at index %d: %w", i, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// EncodeDividends encodes dividend payments as a JSON array.
func EncodeDividends(payments []DividendPayment) ([]byte, error) {
	if payments == nil {
		payments = []DividendPayment{}
	}
	data, err := json.Marshal(payments)
	if err != nil {
		return nil, fmt.Errorf("could not encode dividends: %w", err)
	}
	return data, nil
}

// DecodeDividends decodes a JSON array of dividend payments.
func DecodeDividends(data []byte, currency string) ([]DividendPayment, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var payments []DividendPayment
	if err := json.Unmarshal(data, &payments); err != nil {
		return nil, fmt.Errorf("could not decode dividends: %w", err)
	}
	for i := range payments {
		payments[i].Amount = payments[i].Amount.In(currency)
		payments[i].Type = ParseDividendType(string(payments[i].Type))
	}
	return payments, nil
}

// EncodePositions encodes positions as a JSON array.
func EncodePositions(positions []Position) ([]byte, error) {
	if positions == nil {
		positions = []Position{}
	}
	data, err := json.Marshal(positions)
	if err != nil {
		return nil, fmt.Errorf("could not encode positions: %w", err)
	}
	return data, nil
}

// DecodePositions decodes a JSON array of positions.
func DecodePositions(data []byte, currency string) ([]Position, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var positions []Position
	if err := json.Unmarshal(data, &positions); err != nil {
		return nil, fmt.Errorf("could not decode positions: %w", err)
	}
	for i := range positions {
		positions[i] = positions[i].in(currency)
	}
	return positions, nil
}
