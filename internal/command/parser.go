package command

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/NgigiN/ledger/internal/ledger"
)

var (
	amountRe = regexp.MustCompile(`^\d+(?:\.\d{1,2})?$`)
	rateRe   = regexp.MustCompile(`^\d+(?:\.\d+)?$`)
)

var hundred = decimal.NewFromInt(100)

type TransactionInput struct {
	Date    string
	Account string
	Type    ledger.TxnType
	Amount  decimal.Decimal
}

type RuleInput struct {
	Date   string
	RuleID string
	Rate   decimal.Decimal
}

type StatementInput struct {
	Account string
	Month   ledger.YearMonth
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ledger.ErrInvalidInput, msg)
}

// ParseTransaction reads "<Date> <Account> <Type> <Amount>", e.g.
// "20230626 AC001 W 100.00".
func ParseTransaction(line string) (*TransactionInput, error) {
	f := strings.Fields(line)
	if len(f) != 4 {
		return nil, invalid("invalid input. Format: YYYYMMDD ACCOUNT TYPE AMOUNT")
	}
	if _, err := ledger.ParseDate(f[0]); err != nil {
		return nil, invalid("invalid date format. Use YYYYMMDD.")
	}
	typ, err := ledger.ParseTxnType(f[2])
	if err != nil {
		return nil, invalid("type must be D (Deposit) or W (Withdraw).")
	}
	amount, err := ParseAmount(f[3])
	if err != nil {
		return nil, err
	}
	return &TransactionInput{
		Date:    f[0],
		Account: ledger.NormalizeAccount(f[1]),
		Type:    typ,
		Amount:  amount,
	}, nil
}

// ParseAmount accepts a positive decimal with at most two decimal places.
func ParseAmount(s string) (decimal.Decimal, error) {
	if !amountRe.MatchString(s) {
		return decimal.Zero, invalid("amount must be a positive number with at most 2 decimal places.")
	}
	amount, err := decimal.NewFromString(s)
	if err != nil || !amount.IsPositive() {
		return decimal.Zero, invalid("amount must be a positive number with at most 2 decimal places.")
	}
	return amount, nil
}

// ParseRule reads "<Date> <RuleId> <Rate in %>", e.g. "20230615 RULE03 2.20".
// The rate must be strictly between 0 and 100.
func ParseRule(line string) (*RuleInput, error) {
	f := strings.Fields(line)
	if len(f) != 3 {
		return nil, invalid("please input Date, Rule ID, and Rate.")
	}
	if _, err := ledger.ParseDate(f[0]); err != nil {
		return nil, invalid("invalid date format. Use YYYYMMDD.")
	}
	if !rateRe.MatchString(f[2]) {
		return nil, invalid("rate should be between 0 and 100.")
	}
	rate, err := decimal.NewFromString(f[2])
	if err != nil || !rate.IsPositive() || !rate.LessThan(hundred) {
		return nil, invalid("rate should be between 0 and 100.")
	}
	return &RuleInput{Date: f[0], RuleID: strings.ToUpper(f[1]), Rate: rate}, nil
}

// ParseStatement reads "<Account> <YYYYMM>", e.g. "AC001 202306".
func ParseStatement(line string) (*StatementInput, error) {
	if strings.TrimSpace(line) == "" {
		return nil, invalid("input cannot be empty.")
	}
	f := strings.Fields(line)
	if len(f) != 2 {
		return nil, invalid("please enter account and month in <Account> <Year><Month> format.")
	}
	ym, err := ledger.ParseYearMonth(f[1])
	if err != nil {
		return nil, invalid("invalid date format. Please use YYYYMM.")
	}
	return &StatementInput{Account: ledger.NormalizeAccount(f[0]), Month: ym}, nil
}
