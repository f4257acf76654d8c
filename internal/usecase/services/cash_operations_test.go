package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stonebridge-bank/ledger/internal/domain"
)

func TestDeposit_Success(t *testing.T) {
	f := newFixture(t)
	account := f.newAccount(t, "ACC1002", "1500.00")

	result, err := f.engine.Deposit(context.Background(), account.ID, mustDecimal(t, "300.00"))
	require.NoError(t, err)

	assert.NotZero(t, result.TransactionID)
	assert.True(t, result.NewBalance.Equal(mustDecimal(t, "1800.00")))
	assert.True(t, f.balance(t, account.ID).Equal(mustDecimal(t, "1800.00")))

	txns, err := f.transactionRepo.ListByAccount(context.Background(), account.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, domain.TransactionTypeDeposit, txns[0].TransactionType)
	assert.Nil(t, txns[0].SenderAccountID)
	require.NotNil(t, txns[0].ReceiverAccountID)
	assert.Equal(t, account.ID, *txns[0].ReceiverAccountID)

	audits, err := f.auditRepo.List(context.Background(), &account.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, audits, 1)
	assert.True(t, audits[0].OldBalance.Equal(mustDecimal(t, "1500.00")))
	assert.True(t, audits[0].NewBalance.Equal(mustDecimal(t, "1800.00")))
	assert.Equal(t, "DEPOSIT", audits[0].OperationType)
}

func TestDeposit_AccountNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.engine.Deposit(context.Background(), 31337, mustDecimal(t, "300.00"))
	require.ErrorIs(t, err, domain.ErrAccountNotFound)

	entries, err := f.recoveryRepo.List(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "DEPOSIT", entries[0].OperationType)
	require.NotNil(t, entries[0].ReceiverAccountID)
	assert.Equal(t, int64(31337), *entries[0].ReceiverAccountID)
}

func TestWithdraw_Success(t *testing.T) {
	f := newFixture(t)
	account := f.newAccount(t, "ACC3001", "3000.00")

	result, err := f.engine.Withdraw(context.Background(), account.ID, mustDecimal(t, "450.00"))
	require.NoError(t, err)

	assert.NotZero(t, result.TransactionID)
	assert.True(t, result.NewBalance.Equal(mustDecimal(t, "2550.00")))
	assert.True(t, f.balance(t, account.ID).Equal(mustDecimal(t, "2550.00")))

	txns, err := f.transactionRepo.ListByAccount(context.Background(), account.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, domain.TransactionTypeWithdrawal, txns[0].TransactionType)
	require.NotNil(t, txns[0].SenderAccountID)
	assert.Equal(t, account.ID, *txns[0].SenderAccountID)
	assert.Nil(t, txns[0].ReceiverAccountID)
}

func TestWithdraw_InsufficientFunds(t *testing.T) {
	f := newFixture(t)
	account := f.newAccount(t, "ACC3002", "500.00")

	_, err := f.engine.Withdraw(context.Background(), account.ID, mustDecimal(t, "800.00"))

	var fundsErr *domain.InsufficientFundsError
	require.ErrorAs(t, err, &fundsErr)
	assert.True(t, fundsErr.Shortfall.Equal(mustDecimal(t, "300.00")))

	assert.True(t, f.balance(t, account.ID).Equal(mustDecimal(t, "500.00")))

	entries, err := f.recoveryRepo.List(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "WITHDRAWAL", entries[0].OperationType)
	require.NotNil(t, entries[0].SenderBalanceAtFailure)
	assert.True(t, entries[0].SenderBalanceAtFailure.Equal(mustDecimal(t, "500.00")))
	assert.Equal(t, "300.00", entries[0].AdditionalDetails["shortfall"])
}

func TestWithdraw_NonPositiveAmount(t *testing.T) {
	f := newFixture(t)
	account := f.newAccount(t, "ACC1001", "100.00")

	_, err := f.engine.Withdraw(context.Background(), account.ID, mustDecimal(t, "0"))
	require.Error(t, err)

	entries, err := f.recoveryRepo.List(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
