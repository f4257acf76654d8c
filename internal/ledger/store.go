// Package ledger defines the library-level contract of the fund-transfer
// core: the durable store of accounts and transactions, and the append-only
// audit and recovery repositories around it.
package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/stonebridge-bank/ledger/internal/domain"
)

// Store owns accounts and transactions and hands out atomic units of work.
type Store interface {
	Begin(ctx context.Context) (Tx, error)
}

// Tx is a single all-or-nothing unit of work. Row locks taken by
// GetAccountForUpdate are held until Commit or Rollback.
//
// Callers must acquire locks in ascending account-id order; that rule is
// global and is what keeps concurrent transfers over the same account pair
// deadlock free.
type Tx interface {
	// GetAccountForUpdate returns the account row under an exclusive lock.
	// Returns domain.ErrAccountNotFound if the id does not exist.
	GetAccountForUpdate(ctx context.Context, accountID int64) (domain.Account, error)

	// AdjustBalance applies a signed delta to a locked account row. If the
	// stored value actually changes, exactly one audit entry is staged in
	// the same unit of work. A result below zero fails with
	// *domain.InvariantViolationError and poisons the whole unit.
	AdjustBalance(ctx context.Context, accountID int64, delta decimal.Decimal, operation string) (domain.Account, error)

	// RecordTransaction appends the completed transaction record. Only
	// called after every balance adjustment in the unit succeeded.
	RecordTransaction(ctx context.Context, txn domain.Transaction) (domain.Transaction, error)

	Commit() error
	Rollback() error
}
