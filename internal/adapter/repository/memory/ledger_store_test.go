package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stonebridge-bank/ledger/internal/domain"
)

func seedAccount(t *testing.T, store *Store, number, balance string) domain.Account {
	t.Helper()
	account, err := NewAccountRepository(store).Create(context.Background(), domain.Account{
		AccountNumber: number,
		AccountType:   domain.AccountTypeSavings,
		Balance:       decimal.RequireFromString(balance),
		CustomerID:    1,
		BranchID:      1,
	})
	require.NoError(t, err)
	return account
}

func TestStoreTx_CommitPersistsStagedWrites(t *testing.T) {
	store := NewStore()
	account := seedAccount(t, store, "ACC1001", "100.00")

	tx, err := store.Begin(context.Background())
	require.NoError(t, err)

	_, err = tx.AdjustBalance(context.Background(), account.ID, decimal.RequireFromString("25.00"), "DEPOSIT")
	require.NoError(t, err)
	_, err = tx.RecordTransaction(context.Background(), domain.Transaction{
		TransactionType:   domain.TransactionTypeDeposit,
		Amount:            decimal.RequireFromString("25.00"),
		ReceiverAccountID: &account.ID,
	})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	got, err := NewAccountRepository(store).GetByID(context.Background(), account.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.RequireFromString("125.00")))

	audits, err := NewAuditRepository(store).List(context.Background(), nil, 10, 0)
	require.NoError(t, err)
	require.Len(t, audits, 1)

	txns, err := NewTransactionRepository(store).ListByAccount(context.Background(), account.ID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, txns, 1)
}

func TestStoreTx_RecordTransactionAssignsIDBeforeCommit(t *testing.T) {
	store := NewStore()
	account := seedAccount(t, store, "ACC1001", "100.00")

	tx, err := store.Begin(context.Background())
	require.NoError(t, err)

	txn, err := tx.RecordTransaction(context.Background(), domain.Transaction{
		TransactionType:   domain.TransactionTypeDeposit,
		Amount:            decimal.RequireFromString("5.00"),
		ReceiverAccountID: &account.ID,
	})
	require.NoError(t, err)
	assert.NotZero(t, txn.ID, "id must be allocated at insert, not at commit")
	require.NoError(t, tx.Commit())

	txns, err := NewTransactionRepository(store).ListByAccount(context.Background(), account.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, txn.ID, txns[0].ID)
}

func TestStoreTx_RollbackRestoresBalancesAndDiscardsWrites(t *testing.T) {
	store := NewStore()
	account := seedAccount(t, store, "ACC1001", "100.00")

	tx, err := store.Begin(context.Background())
	require.NoError(t, err)

	_, err = tx.AdjustBalance(context.Background(), account.ID, decimal.RequireFromString("40.00"), "DEPOSIT")
	require.NoError(t, err)
	_, err = tx.RecordTransaction(context.Background(), domain.Transaction{
		TransactionType:   domain.TransactionTypeDeposit,
		Amount:            decimal.RequireFromString("40.00"),
		ReceiverAccountID: &account.ID,
	})
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	got, err := NewAccountRepository(store).GetByID(context.Background(), account.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.RequireFromString("100.00")))

	audits, err := NewAuditRepository(store).List(context.Background(), nil, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, audits)

	txns, err := NewTransactionRepository(store).ListByAccount(context.Background(), account.ID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, txns)
}

func TestStoreTx_NegativeBalanceRejected(t *testing.T) {
	store := NewStore()
	account := seedAccount(t, store, "ACC1001", "10.00")

	tx, err := store.Begin(context.Background())
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()

	_, err = tx.AdjustBalance(context.Background(), account.ID, decimal.RequireFromString("-10.01"), "WITHDRAWAL")
	var invariantErr *domain.InvariantViolationError
	require.ErrorAs(t, err, &invariantErr)
	assert.Equal(t, account.ID, invariantErr.AccountID)
}

func TestStoreTx_ZeroDeltaLeavesNoAuditEntry(t *testing.T) {
	store := NewStore()
	account := seedAccount(t, store, "ACC1001", "10.00")

	tx, err := store.Begin(context.Background())
	require.NoError(t, err)

	_, err = tx.AdjustBalance(context.Background(), account.ID, decimal.Zero, "DEPOSIT")
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	audits, err := NewAuditRepository(store).List(context.Background(), nil, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, audits)
}

func TestUpdateStatus_LeavesNoAuditEntry(t *testing.T) {
	store := NewStore()
	account := seedAccount(t, store, "ACC1001", "10.00")

	repo := NewAccountRepository(store)
	require.NoError(t, repo.UpdateStatus(context.Background(), account.ID, domain.AccountStatusFrozen))

	got, err := repo.GetByID(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AccountStatusFrozen, got.Status)

	audits, err := NewAuditRepository(store).List(context.Background(), nil, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, audits)
}

func TestStoreTx_LockBlocksUntilRelease(t *testing.T) {
	store := NewStore()
	account := seedAccount(t, store, "ACC1001", "10.00")

	first, err := store.Begin(context.Background())
	require.NoError(t, err)
	_, err = first.GetAccountForUpdate(context.Background(), account.ID)
	require.NoError(t, err)

	acquired := make(chan struct{})
	go func() {
		second, err := store.Begin(context.Background())
		if err != nil {
			close(acquired)
			return
		}
		_, _ = second.GetAccountForUpdate(context.Background(), account.ID)
		close(acquired)
		_ = second.Rollback()
	}()

	select {
	case <-acquired:
		t.Fatal("second transaction acquired the lock while the first still held it")
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(t, first.Rollback())

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second transaction never acquired the lock after release")
	}
}

func TestStoreTx_MissingAccount(t *testing.T) {
	store := NewStore()

	tx, err := store.Begin(context.Background())
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()

	_, err = tx.GetAccountForUpdate(context.Background(), 404)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestRecoveryRepository_SurvivesStoreRollback(t *testing.T) {
	store := NewStore()
	account := seedAccount(t, store, "ACC1001", "10.00")
	recovery := NewRecoveryRepository()

	tx, err := store.Begin(context.Background())
	require.NoError(t, err)
	_, err = tx.GetAccountForUpdate(context.Background(), account.ID)
	require.NoError(t, err)

	_, err = recovery.Create(context.Background(), domain.RecoveryEntry{
		OperationType: "TRANSFER",
		FailureReason: "Insufficient funds. Available: 10.00, Required: 50.00, Shortfall: 40.00",
	})
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	entries, err := recovery.List(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
