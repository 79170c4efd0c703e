package ledger

import (
	"errors"
	"fmt"
)

// Error kinds. Every rejection returned by this package wraps one of them.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrBusinessRule = errors.New("business rule violation")
	ErrNotFound     = errors.New("not found")
)

var (
	ErrFirstWithdrawal        = fmt.Errorf("%w: first transaction cannot be a withdrawal", ErrBusinessRule)
	ErrBeforeFirstTransaction = fmt.Errorf("%w: transaction date must be after the account's first transaction", ErrBusinessRule)
	ErrInsufficientFunds      = fmt.Errorf("%w: insufficient funds for withdrawal", ErrBusinessRule)
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
