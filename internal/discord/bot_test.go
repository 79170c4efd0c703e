package discord

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/NgigiN/ledger/internal/app"
	"github.com/NgigiN/ledger/internal/events"
	"github.com/NgigiN/ledger/internal/ledger"
	"github.com/NgigiN/ledger/internal/storage"
)

func newTestBot(t *testing.T) *Bot {
	t.Helper()
	db, err := storage.NewDatabase(t.TempDir() + "/bot.db")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	svc := app.NewService(db, events.Fallback{Logger: zerolog.Nop()}, zerolog.Nop(), ledger.WithClock(func() time.Time { return now }))
	return &Bot{svc: svc, logger: zerolog.Nop()}
}

func TestRespond(t *testing.T) {
	b := newTestBot(t)
	ctx := context.Background()

	steps := []struct {
		msg  string
		want []string
	}{
		{"hello there", nil},
		{"!help", []string{"[T] Input transactions", "[Q] Quit"}},
		{"!i 20230101 RULE01 1.95", []string{"Interest rule RULE01 added successfully!", "1.95"}},
		{"!i 20230615 rule03 2.20", []string{"RULE03", "2.20"}},
		{"!t 20230601 AC001 D 100.00", []string{"Account: AC001", "20230601-01", "100.00"}},
		{"!t 20230601 AC001 D 5.00", []string{"Invalid transaction", "first transaction"}},
		{"!t 20230620 AC002 W 5.00", []string{"Invalid transaction", "first transaction cannot be a withdrawal"}},
		{"!p AC001 202306", []string{"Account: AC001", "20230630", "0.17", "100.17"}},
		{"!p AC001 202305", []string{"no transactions found for account AC001 in 202305"}},
		{"!p AC001", []string{"Invalid statement request"}},
		{"!rules", []string{"RULE01", "RULE03"}},
		{"!q", []string{"Have a nice day!"}},
		{"!nope", []string{"Unknown command"}},
	}
	for _, s := range steps {
		got := b.respond(ctx, s.msg)
		if s.want == nil {
			if got != "" {
				t.Fatalf("%q: expected no reply, got %q", s.msg, got)
			}
			continue
		}
		for _, w := range s.want {
			if !strings.Contains(got, w) {
				t.Fatalf("%q: reply missing %q:\n%s", s.msg, w, got)
			}
		}
	}
}

func TestRespondBatch(t *testing.T) {
	b := newTestBot(t)
	msg := "!t 20230505 AC001 D 100.00\n20230601 AC001 D 150.00\n20230626 AC001 W 1000.00\n20230627 AC001 W 20.00"

	got := b.respond(context.Background(), msg)
	if !strings.Contains(got, "**Successfully processed**: 3 transactions") {
		t.Fatalf("unexpected batch summary:\n%s", got)
	}
	if !strings.Contains(got, "Transaction 3: ") || !strings.Contains(got, "insufficient funds") {
		t.Fatalf("missing failure detail:\n%s", got)
	}
}

func TestRespondBatchOnLinesAfterCommand(t *testing.T) {
	b := newTestBot(t)
	ctx := context.Background()

	got := b.respond(ctx, "!t\n20230505 AC001 D 100.00\n20230601 AC001 D 150.00")
	if !strings.Contains(got, "**Successfully processed**: 2 transactions") {
		t.Fatalf("unexpected batch summary:\n%s", got)
	}
	history, err := b.svc.AccountTransactions(ctx, "AC001")
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 2 {
		t.Fatalf("recorded %d transactions, want 2", len(history))
	}
}

func TestRespondNotFoundHasNoPrefix(t *testing.T) {
	b := newTestBot(t)

	got := b.respond(context.Background(), "!p Ac009 202306")
	if want := "no transactions found for account Ac009 in 202306"; got != want {
		t.Fatalf("reply=%q want %q", got, want)
	}
}
