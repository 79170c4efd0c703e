package ledger

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionRepository is the storage the ledger reads and appends to.
type TransactionRepository interface {
	// TransactionsByAccount returns the account's history ordered by date,
	// then by insertion.
	TransactionsByAccount(ctx context.Context, account string) ([]Transaction, error)
	// CountByDate counts transactions recorded on date across all accounts.
	CountByDate(ctx context.Context, date string) (int, error)
	InsertTransaction(ctx context.Context, txn *Transaction) error
}

// Ledger appends deposits and withdrawals while keeping every account's
// history consistent.
//
// Appends are serialized through a single lock: the balance check reads
// the account's full history and the txn id sequence is shared by every
// account on the same date.
type Ledger struct {
	mu   sync.Mutex
	repo TransactionRepository
	now  func() time.Time
}

type Option func(*Ledger)

// WithClock overrides the clock used to reject future-dated transactions.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

func NewLedger(repo TransactionRepository, opts ...Option) *Ledger {
	l := &Ledger{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Append validates and records one transaction, returning it with its
// txn id and running balance. Nothing is stored when an error is returned.
func (l *Ledger) Append(ctx context.Context, account, date string, typ TxnType, amount decimal.Decimal) (*Transaction, error) {
	if _, err := ParseDate(date); err != nil {
		return nil, err
	}
	if date > FormatDate(l.now()) {
		return nil, invalid("transaction date cannot be in the future")
	}
	if !typ.valid() {
		return nil, invalid("type must be D (Deposit) or W (Withdrawal), got %q", typ)
	}
	account = NormalizeAccount(account)
	if account == "" {
		return nil, invalid("account is required")
	}
	if !amount.IsPositive() || !amount.Equal(amount.Truncate(2)) {
		return nil, invalid("amount must be positive with at most 2 decimal places, got %s", amount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	history, err := l.repo.TransactionsByAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("failed to load account history: %w", err)
	}
	sort.SliceStable(history, func(i, j int) bool { return history[i].Date < history[j].Date })

	if len(history) == 0 && typ == Withdrawal {
		return nil, ErrFirstWithdrawal
	}
	// Compared against the first transaction only, so a second transaction
	// on the account's opening day is rejected too.
	if len(history) > 0 && date <= history[0].Date {
		return nil, ErrBeforeFirstTransaction
	}

	balance := Balance(history)
	if typ == Withdrawal && amount.GreaterThan(balance) {
		return nil, ErrInsufficientFunds
	}

	txn := &Transaction{
		Date:    date,
		Account: account,
		Type:    typ,
		Amount:  amount,
	}
	txn.Balance = balance.Add(txn.signedAmount())

	n, err := l.repo.CountByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to count transactions for %s: %w", date, err)
	}
	txn.TxnID = fmt.Sprintf("%s-%02d", date, n+1)

	if err := l.repo.InsertTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}
	return txn, nil
}
