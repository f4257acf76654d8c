package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeTransfer   TransactionType = "TRANSFER"
	TransactionTypeDeposit    TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal TransactionType = "WITHDRAWAL"
)

type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusFailed    TransactionStatus = "FAILED"
)

// Transaction is the durable proof of a completed atomic operation. It is
// recorded only after every balance adjustment in the operation succeeded;
// failed attempts leave recovery entries instead.
type Transaction struct {
	ID                int64
	TransactionType   TransactionType
	Amount            decimal.Decimal
	SenderAccountID   *int64
	ReceiverAccountID *int64
	TransactionDate   time.Time
	Description       string
	Status            TransactionStatus
}
