package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/stonebridge-bank/ledger/internal/domain"
	"github.com/stonebridge-bank/ledger/internal/ledger"
	"github.com/stonebridge-bank/ledger/internal/logger"
)

// pq error code for CHECK constraint violations; the accounts table carries
// CHECK (balance >= 0), the store's last line of defense behind the engine's
// own funds pre-check.
const pqCheckViolation = "23514"

type LedgerStore struct {
	db *sql.DB
}

func NewLedgerStore(db *sql.DB) *LedgerStore {
	return &LedgerStore{db: db}
}

func (s *LedgerStore) Begin(ctx context.Context) (ledger.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin ledger transaction: %w", err)
	}
	return &ledgerTx{tx: tx}, nil
}

type ledgerTx struct {
	tx *sql.Tx
}

func (t *ledgerTx) GetAccountForUpdate(ctx context.Context, accountID int64) (domain.Account, error) {
	const query = `
SELECT account_id,
       account_number,
       account_type,
       balance,
       customer_id,
       branch_id,
       status,
       opened_date,
       created_at
FROM accounts
WHERE account_id = $1
FOR UPDATE`

	account, err := scanAccount(t.tx.QueryRowContext(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrAccountNotFound
		}
		return domain.Account{}, fmt.Errorf("lock account %d: %w", accountID, err)
	}
	return account, nil
}

func (t *ledgerTx) AdjustBalance(ctx context.Context, accountID int64, delta decimal.Decimal, operation string) (domain.Account, error) {
	const query = `
UPDATE accounts
SET balance = balance + $2::numeric
WHERE account_id = $1
RETURNING account_id,
          account_number,
          account_type,
          balance,
          customer_id,
          branch_id,
          status,
          opened_date,
          created_at`

	account, err := scanAccount(t.tx.QueryRowContext(ctx, query, accountID, delta))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrAccountNotFound
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqCheckViolation {
			return domain.Account{}, &domain.InvariantViolationError{
				AccountID: accountID,
				Reason:    "resulting balance would be negative",
			}
		}
		return domain.Account{}, fmt.Errorf("adjust balance of account %d: %w", accountID, err)
	}

	// Balance-change recorder: one audit row per adjustment that actually
	// changed the stored value, staged inside the same unit of work so it
	// cannot observe a balance other than the one persisted.
	if !delta.IsZero() {
		oldBalance := account.Balance.Sub(delta)
		const auditQuery = `
INSERT INTO audit_logs (account_id, old_balance, new_balance, operation_type)
VALUES ($1, $2, $3, $4)`
		if _, err := t.tx.ExecContext(ctx, auditQuery, accountID, oldBalance, account.Balance, operation); err != nil {
			return domain.Account{}, fmt.Errorf("record audit entry for account %d: %w", accountID, err)
		}
	}

	return account, nil
}

func (t *ledgerTx) RecordTransaction(ctx context.Context, txn domain.Transaction) (domain.Transaction, error) {
	const query = `
INSERT INTO transactions (
	transaction_type,
	amount,
	sender_account_id,
	receiver_account_id,
	description,
	status
) VALUES ($1, $2, $3, $4, $5, $6)
RETURNING transaction_id, transaction_date`

	if txn.Status == "" {
		txn.Status = domain.TransactionStatusCompleted
	}

	if err := t.tx.QueryRowContext(
		ctx,
		query,
		txn.TransactionType,
		txn.Amount,
		txn.SenderAccountID,
		txn.ReceiverAccountID,
		txn.Description,
		txn.Status,
	).Scan(&txn.ID, &txn.TransactionDate); err != nil {
		return domain.Transaction{}, fmt.Errorf("record transaction: %w", err)
	}

	logger.Info("ledger store transaction recorded", logger.Fields{
		"transactionId":   txn.ID,
		"transactionType": txn.TransactionType,
		"amount":          txn.Amount,
	})

	return txn, nil
}

func (t *ledgerTx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("commit ledger transaction: %w", err)
	}
	return nil
}

func (t *ledgerTx) Rollback() error {
	if err := t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("rollback ledger transaction: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (domain.Account, error) {
	var account domain.Account
	if err := row.Scan(
		&account.ID,
		&account.AccountNumber,
		&account.AccountType,
		&account.Balance,
		&account.CustomerID,
		&account.BranchID,
		&account.Status,
		&account.OpenedDate,
		&account.CreatedAt,
	); err != nil {
		return domain.Account{}, err
	}
	return account, nil
}
