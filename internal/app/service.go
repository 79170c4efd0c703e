package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/NgigiN/ledger/internal/events"
	"github.com/NgigiN/ledger/internal/ledger"
)

// Store is everything the service needs from persistence.
type Store interface {
	ledger.TransactionRepository
	ledger.MonthlyRepository
	ledger.RuleRepository
	AllTransactions(ctx context.Context) ([]ledger.Transaction, error)
	Accounts(ctx context.Context) ([]string, error)
}

// Service ties the ledger, the rate schedule and statements to storage and
// event publishing. The HTTP API, the Discord bot and the scheduler all go
// through it.
type Service struct {
	store      Store
	ledger     *ledger.Ledger
	rates      *ledger.Rates
	statements *ledger.Statements
	publisher  events.Publisher
	logger     zerolog.Logger
}

func NewService(store Store, publisher events.Publisher, logger zerolog.Logger, opts ...ledger.Option) *Service {
	rates := ledger.NewRates(store)
	return &Service{
		store:      store,
		ledger:     ledger.NewLedger(store, opts...),
		rates:      rates,
		statements: ledger.NewStatements(store, rates),
		publisher:  publisher,
		logger:     logger.With().Str("component", "service").Logger(),
	}
}

// RecordTransaction appends a deposit or withdrawal.
func (s *Service) RecordTransaction(ctx context.Context, account, date string, typ ledger.TxnType, amount decimal.Decimal) (*ledger.Transaction, error) {
	txn, err := s.ledger.Append(ctx, account, date, typ, amount)
	if err != nil {
		return nil, err
	}
	s.logger.Info().
		Str("account", txn.Account).
		Str("txn_id", txn.TxnID).
		Str("type", string(txn.Type)).
		Str("amount", txn.Amount.StringFixed(2)).
		Msg("transaction recorded")
	s.publish(ctx, events.TransactionRecorded, txn)
	return txn, nil
}

// SetRule upserts an interest rule and returns every rule by ascending date.
func (s *Service) SetRule(ctx context.Context, date, ruleID string, rate decimal.Decimal) ([]ledger.InterestRule, error) {
	rule, all, err := s.rates.Upsert(ctx, date, ruleID, rate)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("date", rule.Date).Str("rule_id", rule.RuleID).Str("rate", rule.Rate.String()).Msg("interest rule saved")
	s.publish(ctx, events.RuleUpdated, rule)
	return all, nil
}

func (s *Service) Rules(ctx context.Context) ([]ledger.InterestRule, error) {
	schedule, err := s.rates.Schedule(ctx)
	if err != nil {
		return nil, err
	}
	return schedule.All(), nil
}

func (s *Service) Statement(ctx context.Context, account string, ym ledger.YearMonth) (*ledger.Statement, error) {
	return s.statements.Statement(ctx, account, ym)
}

func (s *Service) Transactions(ctx context.Context) ([]ledger.Transaction, error) {
	return s.store.AllTransactions(ctx)
}

func (s *Service) AccountTransactions(ctx context.Context, account string) ([]ledger.Transaction, error) {
	return s.store.TransactionsByAccount(ctx, ledger.NormalizeAccount(account))
}

func (s *Service) MonthlyTransactions(ctx context.Context, account string, ym ledger.YearMonth) ([]ledger.Transaction, error) {
	return s.store.TransactionsBetween(ctx, ledger.NormalizeAccount(account), ym.FirstDay(), ym.LastDay())
}

func (s *Service) Accounts(ctx context.Context) ([]string, error) {
	return s.store.Accounts(ctx)
}

// publish is best-effort; the write it reports on is already committed.
func (s *Service) publish(ctx context.Context, routingKey string, body any) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.publisher.Publish(ctx, routingKey, body); err != nil {
		s.logger.Warn().Err(err).Str("routing_key", routingKey).Msg("failed to publish event")
	}
}
