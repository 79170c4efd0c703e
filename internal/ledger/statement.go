package ledger

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

// RuleRepository stores interest rules keyed by date.
type RuleRepository interface {
	// Rules returns every rule in ascending date order.
	Rules(ctx context.Context) ([]InterestRule, error)
	// UpsertRule replaces the rule on rule.Date, or inserts it.
	UpsertRule(ctx context.Context, rule InterestRule) error
}

// MonthlyRepository answers date-range queries for one account.
type MonthlyRepository interface {
	// TransactionsBetween returns the account's transactions dated within
	// [from, to], ordered by date then insertion.
	TransactionsBetween(ctx context.Context, account, from, to string) ([]Transaction, error)
}

// Rates is the persisted rate schedule.
type Rates struct {
	mu   sync.Mutex
	repo RuleRepository
}

func NewRates(repo RuleRepository) *Rates {
	return &Rates{repo: repo}
}

// Schedule loads the current schedule.
func (r *Rates) Schedule(ctx context.Context) (*RateSchedule, error) {
	rules, err := r.repo.Rules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load interest rules: %w", err)
	}
	return NewRateSchedule(rules), nil
}

// Upsert validates and stores a rule, then returns the stored rule and the
// full schedule in ascending date order.
func (r *Rates) Upsert(ctx context.Context, date, ruleID string, rate decimal.Decimal) (InterestRule, []InterestRule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, err := r.Schedule(ctx)
	if err != nil {
		return InterestRule{}, nil, err
	}
	rule, err := s.Upsert(date, ruleID, rate)
	if err != nil {
		return InterestRule{}, nil, err
	}
	if err := r.repo.UpsertRule(ctx, rule); err != nil {
		return InterestRule{}, nil, fmt.Errorf("failed to save interest rule: %w", err)
	}
	return rule, s.All(), nil
}

// Statement is one account's transactions for a month plus the interest
// accrued over it.
type Statement struct {
	Account      string        `json:"account"`
	Month        string        `json:"month"`
	Transactions []Transaction `json:"transactions"`
	Periods      []Period      `json:"periods"`
	Interest     InterestEntry `json:"interest"`
}

// Statements builds monthly statements from stored transactions and rules.
type Statements struct {
	txns  MonthlyRepository
	rates *Rates
}

func NewStatements(txns MonthlyRepository, rates *Rates) *Statements {
	return &Statements{txns: txns, rates: rates}
}

// Statement fails with ErrNotFound when the account has no transactions in ym.
func (s *Statements) Statement(ctx context.Context, requested string, ym YearMonth) (*Statement, error) {
	account := NormalizeAccount(requested)
	txns, err := s.txns.TransactionsBetween(ctx, account, ym.FirstDay(), ym.LastDay())
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions for %s: %w", account, err)
	}
	if len(txns) == 0 {
		return nil, fmt.Errorf("%w: no transactions found for account %s in %s", ErrNotFound, strings.TrimSpace(requested), ym)
	}
	schedule, err := s.rates.Schedule(ctx)
	if err != nil {
		return nil, err
	}

	periods := Periods(txns, schedule, ym)
	interest := interestFor(periods)
	return &Statement{
		Account:      account,
		Month:        ym.String(),
		Transactions: txns,
		Periods:      periods,
		Interest:     NewInterestEntry(txns, interest, ym),
	}, nil
}
