// Package memory implements the ledger contract over process memory. It
// backs the test suite and the server's demo mode; semantics mirror the
// postgres store: exclusive per-account locks held to commit or rollback,
// staged audit/transaction writes, and an append-only recovery log that
// lives outside any unit of work.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stonebridge-bank/ledger/internal/domain"
	"github.com/stonebridge-bank/ledger/internal/ledger"
)

type accountRow struct {
	mu      sync.Mutex
	account domain.Account
}

type Store struct {
	mu            sync.Mutex
	accounts      map[int64]*accountRow
	transactions  []domain.Transaction
	auditLog      []domain.AuditEntry
	branches      map[int64]domain.Branch
	nextAccountID int64
	nextTxnID     int64
	nextAuditID   int64
}

func NewStore() *Store {
	return &Store{
		accounts: make(map[int64]*accountRow),
		branches: make(map[int64]domain.Branch),
	}
}

func (s *Store) Begin(ctx context.Context) (ledger.Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &storeTx{
		store:     s,
		held:      make(map[int64]*accountRow),
		snapshots: make(map[int64]decimal.Decimal),
	}, nil
}

type storeTx struct {
	store     *Store
	held      map[int64]*accountRow
	lockOrder []int64
	snapshots map[int64]decimal.Decimal
	audits    []domain.AuditEntry
	txns      []domain.Transaction
	done      bool
}

func (t *storeTx) GetAccountForUpdate(ctx context.Context, accountID int64) (domain.Account, error) {
	if t.done {
		return domain.Account{}, fmt.Errorf("transaction already finished")
	}
	if err := ctx.Err(); err != nil {
		return domain.Account{}, err
	}

	if row, ok := t.held[accountID]; ok {
		return row.account, nil
	}

	t.store.mu.Lock()
	row, ok := t.store.accounts[accountID]
	t.store.mu.Unlock()
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	// Blocks until the current holder commits or rolls back; callers keep
	// the global ascending-id acquisition order.
	row.mu.Lock()
	t.held[accountID] = row
	t.lockOrder = append(t.lockOrder, accountID)
	t.snapshots[accountID] = row.account.Balance

	return row.account, nil
}

func (t *storeTx) AdjustBalance(ctx context.Context, accountID int64, delta decimal.Decimal, operation string) (domain.Account, error) {
	if t.done {
		return domain.Account{}, fmt.Errorf("transaction already finished")
	}
	if err := ctx.Err(); err != nil {
		return domain.Account{}, err
	}

	row, ok := t.held[accountID]
	if !ok {
		// The lock is implicit in the postgres store's UPDATE; match that.
		if _, err := t.GetAccountForUpdate(ctx, accountID); err != nil {
			return domain.Account{}, err
		}
		row = t.held[accountID]
	}

	oldBalance := row.account.Balance
	newBalance := oldBalance.Add(delta)
	if newBalance.IsNegative() {
		return domain.Account{}, &domain.InvariantViolationError{
			AccountID: accountID,
			Reason:    "resulting balance would be negative",
		}
	}

	row.account.Balance = newBalance

	if !delta.IsZero() {
		t.audits = append(t.audits, domain.AuditEntry{
			AccountID:     accountID,
			OldBalance:    oldBalance,
			NewBalance:    newBalance,
			ChangedAt:     time.Now().UTC(),
			OperationType: operation,
		})
	}

	return row.account, nil
}

func (t *storeTx) RecordTransaction(ctx context.Context, txn domain.Transaction) (domain.Transaction, error) {
	if t.done {
		return domain.Transaction{}, fmt.Errorf("transaction already finished")
	}
	if err := ctx.Err(); err != nil {
		return domain.Transaction{}, err
	}

	if txn.Status == "" {
		txn.Status = domain.TransactionStatusCompleted
	}
	txn.TransactionDate = time.Now().UTC()

	// bigserial allocates at insert time, so callers see the real id before
	// commit; a rollback leaves a gap in the sequence, same as postgres.
	t.store.mu.Lock()
	t.store.nextTxnID++
	txn.ID = t.store.nextTxnID
	t.store.mu.Unlock()

	t.txns = append(t.txns, txn)

	return txn, nil
}

func (t *storeTx) Commit() error {
	if t.done {
		return fmt.Errorf("transaction already finished")
	}
	t.done = true

	t.store.mu.Lock()
	for i := range t.audits {
		t.store.nextAuditID++
		t.audits[i].ID = t.store.nextAuditID
		t.store.auditLog = append(t.store.auditLog, t.audits[i])
	}
	t.store.transactions = append(t.store.transactions, t.txns...)
	t.store.mu.Unlock()

	t.releaseLocks()
	return nil
}

func (t *storeTx) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true

	for id, row := range t.held {
		row.account.Balance = t.snapshots[id]
	}
	t.audits = nil
	t.txns = nil

	t.releaseLocks()
	return nil
}

func (t *storeTx) releaseLocks() {
	// Release in reverse acquisition order.
	for i := len(t.lockOrder) - 1; i >= 0; i-- {
		t.held[t.lockOrder[i]].mu.Unlock()
	}
	t.held = nil
	t.lockOrder = nil
}
