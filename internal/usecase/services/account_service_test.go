package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stonebridge-bank/ledger/internal/domain"
	"github.com/stonebridge-bank/ledger/internal/usecase/services"
)

func TestCreateAccount(t *testing.T) {
	f := newFixture(t)
	svc := services.NewAccountService(f.accountRepo, f.transactionRepo)

	account, err := svc.CreateAccount(context.Background(), 1, 1, domain.AccountTypeChecking, mustDecimal(t, "1500.00"))
	require.NoError(t, err)
	assert.NotZero(t, account.ID)
	assert.NotEmpty(t, account.AccountNumber)
	assert.Equal(t, domain.AccountStatusActive, account.Status)
	assert.True(t, account.Balance.Equal(mustDecimal(t, "1500.00")))
}

func TestCreateAccount_Rejections(t *testing.T) {
	f := newFixture(t)
	svc := services.NewAccountService(f.accountRepo, f.transactionRepo)

	_, err := svc.CreateAccount(context.Background(), 1, 1, "PREMIUM", decimal.Zero)
	require.Error(t, err)

	_, err = svc.CreateAccount(context.Background(), 1, 1, domain.AccountTypeSavings, mustDecimal(t, "-1.00"))
	require.Error(t, err)
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture(t)
	svc := services.NewAccountService(f.accountRepo, f.transactionRepo)
	account := f.newAccount(t, "ACC1001", "100.00")

	require.NoError(t, svc.UpdateStatus(context.Background(), account.ID, domain.AccountStatusFrozen))
	got, err := svc.GetAccount(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AccountStatusFrozen, got.Status)

	require.Error(t, svc.UpdateStatus(context.Background(), account.ID, "SUSPENDED"))

	// Status transitions never touch the balance path, so the audit log
	// stays empty.
	audits, err := f.auditRepo.List(context.Background(), nil, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, audits)
}
