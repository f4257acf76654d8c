package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stonebridge-bank/ledger/internal/domain"
)

type AuditEntryResponse struct {
	LogID         int64           `json:"logId"`
	AccountID     int64           `json:"accountId"`
	OldBalance    decimal.Decimal `json:"oldBalance"`
	NewBalance    decimal.Decimal `json:"newBalance"`
	ChangedAt     string          `json:"changedAt"`
	OperationType string          `json:"operationType"`
}

func MapAuditEntries(entries []domain.AuditEntry) []AuditEntryResponse {
	out := make([]AuditEntryResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, AuditEntryResponse{
			LogID:         entry.ID,
			AccountID:     entry.AccountID,
			OldBalance:    entry.OldBalance,
			NewBalance:    entry.NewBalance,
			ChangedAt:     entry.ChangedAt.Format(time.RFC3339),
			OperationType: entry.OperationType,
		})
	}
	return out
}

type RecoveryEntryResponse struct {
	RecoveryID             int64            `json:"recoveryId"`
	OperationType          string           `json:"operationType"`
	SenderAccountID        *int64           `json:"senderAccountId"`
	ReceiverAccountID      *int64           `json:"receiverAccountId"`
	AttemptedAmount        decimal.Decimal  `json:"attemptedAmount"`
	FailureReason          string           `json:"failureReason"`
	FailedAt               string           `json:"failedAt"`
	SenderBalanceAtFailure *decimal.Decimal `json:"senderBalanceAtFailure"`
	AdditionalDetails      map[string]any   `json:"additionalDetails,omitempty"`
}

func MapRecoveryEntries(entries []domain.RecoveryEntry) []RecoveryEntryResponse {
	out := make([]RecoveryEntryResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, RecoveryEntryResponse{
			RecoveryID:             entry.ID,
			OperationType:          entry.OperationType,
			SenderAccountID:        entry.SenderAccountID,
			ReceiverAccountID:      entry.ReceiverAccountID,
			AttemptedAmount:        entry.AttemptedAmount,
			FailureReason:          entry.FailureReason,
			FailedAt:               entry.FailedAt.Format(time.RFC3339),
			SenderBalanceAtFailure: entry.SenderBalanceAtFailure,
			AdditionalDetails:      entry.AdditionalDetails,
		})
	}
	return out
}

type TransactionResponse struct {
	TransactionID     int64           `json:"transactionId"`
	TransactionType   string          `json:"transactionType"`
	Amount            decimal.Decimal `json:"amount"`
	SenderAccountID   *int64          `json:"senderAccountId"`
	ReceiverAccountID *int64          `json:"receiverAccountId"`
	TransactionDate   string          `json:"transactionDate"`
	Description       string          `json:"description"`
	Status            string          `json:"status"`
}

func MapTransactions(txns []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txns))
	for _, txn := range txns {
		out = append(out, TransactionResponse{
			TransactionID:     txn.ID,
			TransactionType:   string(txn.TransactionType),
			Amount:            txn.Amount,
			SenderAccountID:   txn.SenderAccountID,
			ReceiverAccountID: txn.ReceiverAccountID,
			TransactionDate:   txn.TransactionDate.Format(time.RFC3339),
			Description:       txn.Description,
			Status:            string(txn.Status),
		})
	}
	return out
}
