package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrSenderNotFound = errors.New("sender account not found")
var ErrReceiverNotFound = errors.New("receiver account not found")
var ErrAccountNotFound = errors.New("account not found")

// InsufficientFundsError carries the figures the caller needs to display.
type InsufficientFundsError struct {
	Required  decimal.Decimal
	Available decimal.Decimal
	Shortfall decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("Insufficient funds. Available: %s, Required: %s, Shortfall: %s",
		e.Available.StringFixed(2), e.Required.StringFixed(2), e.Shortfall.StringFixed(2))
}

// InvariantViolationError is the store refusing a balance adjustment that
// would leave the balance negative. The engine pre-checks funds, so seeing
// this means a bug or a concurrent writer bypassing the engine.
type InvariantViolationError struct {
	AccountID int64
	Reason    string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("balance invariant violated for account %d: %s", e.AccountID, e.Reason)
}

// UnexpectedFailureError wraps any fault outside the typed taxonomy.
type UnexpectedFailureError struct {
	Op  string
	Err error
}

func (e *UnexpectedFailureError) Error() string {
	return fmt.Sprintf("%s failed unexpectedly: %v", e.Op, e.Err)
}

func (e *UnexpectedFailureError) Unwrap() error {
	return e.Err
}
