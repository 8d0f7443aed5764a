// Package models provides the data structures used throughout the application.
package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes outgoing from incoming transactions.
type TransactionType string

const (
	TypeDebit  TransactionType = "debit"
	TypeCredit TransactionType = "credit"
)

// Transaction represents a single statement entry. Amount carries the sign
// as received: the remote adapter reports positive magnitudes, the fallback
// generator emits negative debits. Type is authoritative for direction and
// is never changed after extraction.
type Transaction struct {
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category,omitempty"`
}

// IsDebit returns true if the transaction is a debit (outgoing money)
func (t Transaction) IsDebit() bool {
	return t.Type == TypeDebit
}

// IsCredit returns true if the transaction is a credit (incoming money)
func (t Transaction) IsCredit() bool {
	return t.Type == TypeCredit
}

// ParseAmount parses a string amount into a decimal, stripping currency
// symbols and thousands separators. Returns zero if nothing parseable
// remains, matching the lenient handling of statement text.
func ParseAmount(amountStr string) decimal.Decimal {
	amount := strings.TrimSpace(amountStr)
	amount = strings.ReplaceAll(amount, " ", "")
	amount = strings.ReplaceAll(amount, "£", "")
	amount = strings.ReplaceAll(amount, "$", "")
	amount = strings.ReplaceAll(amount, "€", "")
	amount = strings.ReplaceAll(amount, ",", "")
	amount = strings.TrimPrefix(amount, "+")

	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero
	}
	return dec
}

// Statement date layouts, tried in order. "02 Jan 2006" is the native
// statement format; the ISO variants cover the remote adapter's output.
var statementDateLayouts = []string{
	"02 Jan 2006",
	"2 Jan 2006",
	"02 January 2006",
	"2 January 2006",
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
}

// ParseStatementDate parses a statement date string using the known layouts.
func ParseStatementDate(dateStr string) (time.Time, error) {
	cleaned := strings.TrimSpace(dateStr)
	var lastErr error
	for _, layout := range statementDateLayouts {
		t, err := time.Parse(layout, cleaned)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
