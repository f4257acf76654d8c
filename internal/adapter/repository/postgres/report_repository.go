package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/stonebridge-bank/ledger/internal/domain"
)

type ReportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) CustomerTotalBalance(ctx context.Context, customerID int64) (domain.CustomerTotal, error) {
	const query = `
SELECT COUNT(*), COALESCE(SUM(balance), 0)
FROM accounts
WHERE customer_id = $1`

	total := domain.CustomerTotal{CustomerID: customerID}
	if err := r.db.QueryRowContext(ctx, query, customerID).Scan(&total.AccountCount, &total.TotalBalance); err != nil {
		return domain.CustomerTotal{}, fmt.Errorf("customer total balance: %w", err)
	}
	return total, nil
}

func (r *ReportRepository) BranchAggregates(ctx context.Context) ([]domain.BranchAggregate, error) {
	const query = `
SELECT b.branch_id,
       b.branch_name,
       b.branch_code,
       COUNT(a.account_id),
       COALESCE(SUM(a.balance), 0)
FROM branches b
LEFT JOIN accounts a ON a.branch_id = b.branch_id
GROUP BY b.branch_id, b.branch_name, b.branch_code
ORDER BY b.branch_id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("branch aggregates: %w", err)
	}
	defer rows.Close()

	aggregates := make([]domain.BranchAggregate, 0)
	for rows.Next() {
		var agg domain.BranchAggregate
		if err := rows.Scan(&agg.BranchID, &agg.BranchName, &agg.BranchCode, &agg.AccountCount, &agg.TotalBalance); err != nil {
			return nil, fmt.Errorf("scan branch aggregate: %w", err)
		}
		aggregates = append(aggregates, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate branch aggregates: %w", err)
	}

	return aggregates, nil
}
