package storage

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/NgigiN/ledger/internal/ledger"
)

// Transaction represents a stored ledger transaction.
type Transaction struct {
	gorm.Model
	Date    string          `gorm:"size:8;index;not null"`
	Account string          `gorm:"index;not null"`
	Type    string          `gorm:"size:1;not null"`
	Amount  decimal.Decimal `gorm:"type:varchar(32);not null"`
	TxnID   string          `gorm:"uniqueIndex;not null"`
	Balance decimal.Decimal `gorm:"type:varchar(32);not null"`
}

// InterestRule represents a stored interest rule; one per date.
type InterestRule struct {
	gorm.Model
	Date   string          `gorm:"size:8;uniqueIndex;not null"`
	RuleID string          `gorm:"not null"`
	Rate   decimal.Decimal `gorm:"type:varchar(32);not null"`
}

func fromLedgerTransaction(t *ledger.Transaction) *Transaction {
	return &Transaction{
		Date:    t.Date,
		Account: t.Account,
		Type:    string(t.Type),
		Amount:  t.Amount,
		TxnID:   t.TxnID,
		Balance: t.Balance,
	}
}

func (t Transaction) toLedger() ledger.Transaction {
	return ledger.Transaction{
		Date:    t.Date,
		Account: t.Account,
		Type:    ledger.TxnType(t.Type),
		Amount:  t.Amount,
		TxnID:   t.TxnID,
		Balance: t.Balance,
	}
}

func (r InterestRule) toLedger() ledger.InterestRule {
	return ledger.InterestRule{Date: r.Date, RuleID: r.RuleID, Rate: r.Rate}
}

func toLedgerTransactions(rows []Transaction) []ledger.Transaction {
	out := make([]ledger.Transaction, len(rows))
	for i, r := range rows {
		out[i] = r.toLedger()
	}
	return out
}
