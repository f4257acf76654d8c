package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/stonebridge-bank/ledger/internal/commons"
	"github.com/stonebridge-bank/ledger/internal/domain"
	"github.com/stonebridge-bank/ledger/internal/logger"
)

const accountColumns = `account_id,
       account_number,
       account_type,
       balance,
       customer_id,
       branch_id,
       status,
       opened_date,
       created_at`

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	const query = `
INSERT INTO accounts (
	account_number,
	account_type,
	balance,
	customer_id,
	branch_id,
	status
) VALUES ($1, $2, $3, $4, $5, $6)
RETURNING account_id, opened_date, created_at`

	if err := r.db.QueryRowContext(
		ctx,
		query,
		account.AccountNumber,
		account.AccountType,
		account.Balance,
		account.CustomerID,
		account.BranchID,
		account.Status,
	).Scan(&account.ID, &account.OpenedDate, &account.CreatedAt); err != nil {
		logger.Error("account repository create failed", err, logger.Fields{
			"accountNumber": account.AccountNumber,
		})
		return domain.Account{}, fmt.Errorf("create account: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, accountID int64) (domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1`

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, commons.ErrRecordNotFound
		}
		return domain.Account{}, fmt.Errorf("get account %d: %w", accountID, err)
	}
	return account, nil
}

func (r *AccountRepository) GetByAccountNumber(ctx context.Context, accountNumber string) (domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_number = $1`

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, accountNumber))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, commons.ErrRecordNotFound
		}
		return domain.Account{}, fmt.Errorf("get account %q: %w", accountNumber, err)
	}
	return account, nil
}

func (r *AccountRepository) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE customer_id = $1 ORDER BY account_id`

	rows, err := r.db.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list accounts for customer %d: %w", customerID, err)
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accounts: %w", err)
	}

	return accounts, nil
}

// UpdateStatus writes the status column only. It deliberately stays away
// from the balance mutation path, so it can never generate audit entries.
func (r *AccountRepository) UpdateStatus(ctx context.Context, accountID int64, status domain.AccountStatus) error {
	const query = `UPDATE accounts SET status = $2 WHERE account_id = $1`

	result, err := r.db.ExecContext(ctx, query, accountID, status)
	if err != nil {
		return fmt.Errorf("update account %d status: %w", accountID, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update account status rows affected: %w", err)
	}
	if rows == 0 {
		return commons.ErrRecordNotFound
	}

	logger.Info("account repository status updated", logger.Fields{
		"accountId": accountID,
		"status":    status,
	})
	return nil
}
