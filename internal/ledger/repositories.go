package ledger

import (
	"context"

	"github.com/stonebridge-bank/ledger/internal/domain"
)

// RecoveryRepository persists failure records. Create runs in its own unit
// of work and commits immediately; it is never enrolled in an engine
// transaction, so a recovery entry survives the rollback of the operation
// that produced it.
type RecoveryRepository interface {
	Create(ctx context.Context, entry domain.RecoveryEntry) (domain.RecoveryEntry, error)
	List(ctx context.Context, limit, offset int) ([]domain.RecoveryEntry, error)
}

// AuditRepository is the read side of the balance-change audit trail. Writes
// happen inside the store's AdjustBalance path only.
type AuditRepository interface {
	List(ctx context.Context, accountID *int64, limit, offset int) ([]domain.AuditEntry, error)
}

// AccountRepository covers non-balance account access. UpdateStatus touches
// the status column only and must never produce audit entries.
type AccountRepository interface {
	Create(ctx context.Context, account domain.Account) (domain.Account, error)
	GetByID(ctx context.Context, accountID int64) (domain.Account, error)
	GetByAccountNumber(ctx context.Context, accountNumber string) (domain.Account, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.Account, error)
	UpdateStatus(ctx context.Context, accountID int64, status domain.AccountStatus) error
}

// TransactionRepository is the read side of completed transactions.
type TransactionRepository interface {
	ListByAccount(ctx context.Context, accountID int64, limit, offset int) ([]domain.Transaction, error)
}

// ReportRepository serves the derived, read-only projections.
type ReportRepository interface {
	CustomerTotalBalance(ctx context.Context, customerID int64) (domain.CustomerTotal, error)
	BranchAggregates(ctx context.Context) ([]domain.BranchAggregate, error)
}
