package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecoveryEntry records why an operation failed. It is persisted in its own
// unit of work before the failing operation is rolled back, so it survives
// the rollback that reverts everything else.
type RecoveryEntry struct {
	ID                     int64
	OperationType          string
	SenderAccountID        *int64
	ReceiverAccountID      *int64
	AttemptedAmount        decimal.Decimal
	FailureReason          string
	FailedAt               time.Time
	SenderBalanceAtFailure *decimal.Decimal
	AdditionalDetails      map[string]any
}
