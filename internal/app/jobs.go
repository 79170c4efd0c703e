package app

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/NgigiN/ledger/internal/events"
	"github.com/NgigiN/ledger/internal/ledger"
)

// AccrualEvent is published for each account with activity in the month.
type AccrualEvent struct {
	Account  string          `json:"account"`
	Month    string          `json:"month"`
	Interest decimal.Decimal `json:"interest"`
	Balance  decimal.Decimal `json:"balance"`
}

// StatementSource is the part of Service the jobs use.
type StatementSource interface {
	Accounts(ctx context.Context) ([]string, error)
	Statement(ctx context.Context, account string, ym ledger.YearMonth) (*ledger.Statement, error)
}

type Jobs struct {
	source    StatementSource
	publisher events.Publisher
	logger    zerolog.Logger
	now       func() time.Time
}

func NewJobs(source StatementSource, publisher events.Publisher, logger zerolog.Logger) *Jobs {
	return &Jobs{
		source:    source,
		publisher: publisher,
		logger:    logger.With().Str("component", "jobs").Logger(),
		now:       time.Now,
	}
}

// AccruePreviousMonth computes last month's interest for every account.
// Nothing is written to the ledger.
func (j *Jobs) AccruePreviousMonth() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	ym := ledger.MonthOf(j.now()).Previous()
	if _, err := j.Accrue(ctx, ym); err != nil {
		j.logger.Error().Err(err).Str("month", ym.String()).Msg("interest accrual job failed")
	}
}

// Accrue builds the statement of every account for ym and publishes the
// interest. Accounts without transactions in ym are skipped.
func (j *Jobs) Accrue(ctx context.Context, ym ledger.YearMonth) ([]AccrualEvent, error) {
	accounts, err := j.source.Accounts(ctx)
	if err != nil {
		return nil, err
	}

	var out []AccrualEvent
	for _, account := range accounts {
		st, err := j.source.Statement(ctx, account, ym)
		if errors.Is(err, ledger.ErrNotFound) {
			continue
		}
		if err != nil {
			j.logger.Error().Err(err).Str("account", account).Msg("failed to build statement")
			continue
		}
		ev := AccrualEvent{Account: st.Account, Month: st.Month, Interest: st.Interest.Amount, Balance: st.Interest.Balance}
		j.logger.Info().Str("account", ev.Account).Str("month", ev.Month).Str("interest", ev.Interest.StringFixed(2)).Msg("interest accrued")
		if err := j.publisher.Publish(ctx, events.InterestAccrued, ev); err != nil {
			j.logger.Warn().Err(err).Str("account", ev.Account).Msg("failed to publish accrual event")
		}
		out = append(out, ev)
	}
	return out, nil
}
