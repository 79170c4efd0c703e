package ledger

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// TxnType is the kind of a ledger transaction.
type TxnType string

const (
	Deposit    TxnType = "D"
	Withdrawal TxnType = "W"
)

// InterestType marks the synthetic interest line on a statement. It is never
// a valid ledger transaction type.
const InterestType = "I"

// ParseTxnType accepts D or W in either case.
func ParseTxnType(s string) (TxnType, error) {
	t := TxnType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.valid() {
		return "", invalid("type must be D (Deposit) or W (Withdrawal), got %q", s)
	}
	return t, nil
}

func (t TxnType) valid() bool {
	return t == Deposit || t == Withdrawal
}

// Transaction is one recorded ledger entry.
type Transaction struct {
	Date    string          `json:"date"`
	Account string          `json:"account"`
	Type    TxnType         `json:"type"`
	Amount  decimal.Decimal `json:"amount"`
	TxnID   string          `json:"txnId"`
	Balance decimal.Decimal `json:"balance"`
}

func (t Transaction) signedAmount() decimal.Decimal {
	if t.Type == Withdrawal {
		return t.Amount.Neg()
	}
	return t.Amount
}

// InterestRule is an annual rate effective from Date onwards.
type InterestRule struct {
	Date   string          `json:"date"`
	RuleID string          `json:"ruleId"`
	Rate   decimal.Decimal `json:"rate"`
}

// InterestEntry is the display-only statement line for a month's interest.
type InterestEntry struct {
	Date    string
	Account string
	Amount  decimal.Decimal
	Balance decimal.Decimal
}

func (e InterestEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date    string          `json:"date"`
		Account string          `json:"account"`
		Type    string          `json:"type"`
		Amount  decimal.Decimal `json:"amount"`
		TxnID   string          `json:"txnId"`
		Balance decimal.Decimal `json:"balance"`
	}{e.Date, e.Account, InterestType, e.Amount, "", e.Balance})
}

// NormalizeAccount lowercases and trims an account identifier.
func NormalizeAccount(account string) string {
	return strings.ToLower(strings.TrimSpace(account))
}

// Balance sums the signed amounts of history.
func Balance(history []Transaction) decimal.Decimal {
	bal := decimal.Zero
	for _, t := range history {
		bal = bal.Add(t.signedAmount())
	}
	return bal
}
