package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/stonebridge-bank/ledger/internal/domain"
	"github.com/stonebridge-bank/ledger/internal/logger"
)

// RecoveryRepository writes through the pool, never through an engine
// transaction. Each Create is its own implicit transaction that commits
// before the caller aborts the failed operation, which is what lets the
// failure record outlive the rollback.
type RecoveryRepository struct {
	db *sql.DB
}

func NewRecoveryRepository(db *sql.DB) *RecoveryRepository {
	return &RecoveryRepository{db: db}
}

func (r *RecoveryRepository) Create(ctx context.Context, entry domain.RecoveryEntry) (domain.RecoveryEntry, error) {
	const query = `
INSERT INTO recovery_logs (
	operation_type,
	sender_account_id,
	receiver_account_id,
	attempted_amount,
	failure_reason,
	sender_balance_at_failure,
	additional_details
) VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING recovery_id, failed_at`

	var details []byte
	if entry.AdditionalDetails != nil {
		encoded, err := json.Marshal(entry.AdditionalDetails)
		if err != nil {
			return domain.RecoveryEntry{}, fmt.Errorf("encode recovery details: %w", err)
		}
		details = encoded
	}

	if err := r.db.QueryRowContext(
		ctx,
		query,
		entry.OperationType,
		entry.SenderAccountID,
		entry.ReceiverAccountID,
		entry.AttemptedAmount,
		entry.FailureReason,
		entry.SenderBalanceAtFailure,
		details,
	).Scan(&entry.ID, &entry.FailedAt); err != nil {
		logger.Error("recovery repository create failed", err, logger.Fields{
			"operationType": entry.OperationType,
		})
		return domain.RecoveryEntry{}, fmt.Errorf("create recovery entry: %w", err)
	}

	logger.Info("recovery repository entry persisted", logger.Fields{
		"recoveryId":    entry.ID,
		"operationType": entry.OperationType,
		"failureReason": entry.FailureReason,
	})

	return entry, nil
}

func (r *RecoveryRepository) List(ctx context.Context, limit, offset int) ([]domain.RecoveryEntry, error) {
	const query = `
SELECT recovery_id,
       operation_type,
       sender_account_id,
       receiver_account_id,
       attempted_amount,
       failure_reason,
       failed_at,
       sender_balance_at_failure,
       additional_details
FROM recovery_logs
ORDER BY failed_at DESC, recovery_id DESC
LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list recovery entries: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.RecoveryEntry, 0)
	for rows.Next() {
		var (
			entry         domain.RecoveryEntry
			senderID      sql.NullInt64
			receiverID    sql.NullInt64
			senderBalance decimal.NullDecimal
			details       []byte
		)
		if err := rows.Scan(
			&entry.ID,
			&entry.OperationType,
			&senderID,
			&receiverID,
			&entry.AttemptedAmount,
			&entry.FailureReason,
			&entry.FailedAt,
			&senderBalance,
			&details,
		); err != nil {
			return nil, fmt.Errorf("scan recovery entry: %w", err)
		}

		if senderID.Valid {
			value := senderID.Int64
			entry.SenderAccountID = &value
		}
		if receiverID.Valid {
			value := receiverID.Int64
			entry.ReceiverAccountID = &value
		}
		if senderBalance.Valid {
			value := senderBalance.Decimal
			entry.SenderBalanceAtFailure = &value
		}
		if len(details) > 0 {
			if err := json.Unmarshal(details, &entry.AdditionalDetails); err != nil {
				return nil, fmt.Errorf("decode recovery details: %w", err)
			}
		}

		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recovery entries: %w", err)
	}

	return entries, nil
}
