package command

import (
	"errors"
	"testing"

	"github.com/NgigiN/ledger/internal/ledger"
)

func TestParseTransaction(t *testing.T) {
	cases := []struct {
		line    string
		account string
		typ     ledger.TxnType
		amount  string
	}{
		{"20230626 AC001 W 100.00", "ac001", ledger.Withdrawal, "100"},
		{"20230601  ac002 d 5", "ac002", ledger.Deposit, "5"},
		{"20230601 AC003 D 0.5", "ac003", ledger.Deposit, "0.5"},
	}

	for _, c := range cases {
		p, err := ParseTransaction(c.line)
		if err != nil {
			t.Fatalf("expected parse ok for %q, got err: %v", c.line, err)
		}
		if p.Account != c.account || p.Type != c.typ {
			t.Fatalf("wrong parse for %q: %+v", c.line, p)
		}
		if p.Amount.String() != c.amount {
			t.Fatalf("amount for %q = %s want %s", c.line, p.Amount, c.amount)
		}
	}
}

func TestParseTransactionInvalid(t *testing.T) {
	for _, line := range []string{
		"",
		"20230626 AC001 W",
		"2023062 AC001 W 1.00",
		"20230631 AC001 W 1.00",
		"20230626 AC001 X 1.00",
		"20230626 AC001 D 1.005",
		"20230626 AC001 D -1",
		"20230626 AC001 D 0",
		"20230626 AC001 D 0.00",
		"20230626 AC001 D abc",
	} {
		if _, err := ParseTransaction(line); !errors.Is(err, ledger.ErrInvalidInput) {
			t.Fatalf("%q: want ErrInvalidInput, got %v", line, err)
		}
	}
}

func TestParseRule(t *testing.T) {
	r, err := ParseRule("20230615 rule03 2.20")
	if err != nil {
		t.Fatal(err)
	}
	if r.RuleID != "RULE03" || r.Date != "20230615" || r.Rate.String() != "2.2" {
		t.Fatalf("rule=%+v", r)
	}

	for _, line := range []string{"20230615 R 0", "20230615 R 100", "20230615 R -1", "20230615 R", "2023 R 1"} {
		if _, err := ParseRule(line); !errors.Is(err, ledger.ErrInvalidInput) {
			t.Fatalf("%q: want ErrInvalidInput, got %v", line, err)
		}
	}
}

func TestParseStatement(t *testing.T) {
	s, err := ParseStatement("AC001 202306")
	if err != nil {
		t.Fatal(err)
	}
	if s.Account != "ac001" || s.Month.String() != "202306" {
		t.Fatalf("statement=%+v", s)
	}
	for _, line := range []string{"", "AC001", "AC001 2023-06", "AC001 202313"} {
		if _, err := ParseStatement(line); !errors.Is(err, ledger.ErrInvalidInput) {
			t.Fatalf("%q: want ErrInvalidInput, got %v", line, err)
		}
	}
}
