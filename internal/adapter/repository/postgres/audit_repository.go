package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/stonebridge-bank/ledger/internal/domain"
)

type AuditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) List(ctx context.Context, accountID *int64, limit, offset int) ([]domain.AuditEntry, error) {
	const query = `
SELECT log_id,
       account_id,
       old_balance,
       new_balance,
       changed_at,
       operation_type
FROM audit_logs
WHERE $1::bigint IS NULL OR account_id = $1
ORDER BY changed_at DESC, log_id DESC
LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.AuditEntry, 0)
	for rows.Next() {
		var entry domain.AuditEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.AccountID,
			&entry.OldBalance,
			&entry.NewBalance,
			&entry.ChangedAt,
			&entry.OperationType,
		); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}

	return entries, nil
}
