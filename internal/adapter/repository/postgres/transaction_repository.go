package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/stonebridge-bank/ledger/internal/domain"
)

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID int64, limit, offset int) ([]domain.Transaction, error) {
	const query = `
SELECT transaction_id,
       transaction_type,
       amount,
       sender_account_id,
       receiver_account_id,
       transaction_date,
       description,
       status
FROM transactions
WHERE sender_account_id = $1 OR receiver_account_id = $1
ORDER BY transaction_date DESC, transaction_id DESC
LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transactions for account %d: %w", accountID, err)
	}
	defer rows.Close()

	transactions := make([]domain.Transaction, 0)
	for rows.Next() {
		var (
			txn        domain.Transaction
			senderID   sql.NullInt64
			receiverID sql.NullInt64
			desc       sql.NullString
		)
		if err := rows.Scan(
			&txn.ID,
			&txn.TransactionType,
			&txn.Amount,
			&senderID,
			&receiverID,
			&txn.TransactionDate,
			&desc,
			&txn.Status,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}

		if senderID.Valid {
			value := senderID.Int64
			txn.SenderAccountID = &value
		}
		if receiverID.Valid {
			value := receiverID.Int64
			txn.ReceiverAccountID = &value
		}
		if desc.Valid {
			txn.Description = desc.String
		}

		transactions = append(transactions, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	return transactions, nil
}
