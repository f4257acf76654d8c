package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stonebridge-bank/ledger/internal/adapter/repository/memory"
	"github.com/stonebridge-bank/ledger/internal/domain"
	"github.com/stonebridge-bank/ledger/internal/usecase/services"
)

func TestCustomerSummary(t *testing.T) {
	f := newFixture(t)
	reports := services.NewReportService(memory.NewReportRepository(f.store), f.accountRepo, f.transactionRepo)

	a := f.newAccount(t, "ACC1001", "5000.00")
	b := f.newAccount(t, "ACC1002", "1500.00")

	_, err := f.engine.Transfer(context.Background(), a.ID, b.ID, mustDecimal(t, "200.00"))
	require.NoError(t, err)

	summary, err := reports.CustomerSummary(context.Background(), 1, 10)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Total.AccountCount)
	assert.True(t, summary.Total.TotalBalance.Equal(mustDecimal(t, "6500.00")))
	assert.Len(t, summary.Accounts, 2)
	require.NotEmpty(t, summary.RecentTransactions)
	assert.Equal(t, domain.TransactionTypeTransfer, summary.RecentTransactions[0].TransactionType)
}

func TestBranchAggregates(t *testing.T) {
	f := newFixture(t)
	f.store.AddBranch(domain.Branch{ID: 1, BranchName: "Main Branch", BranchCode: "BR001"})
	reports := services.NewReportService(memory.NewReportRepository(f.store), f.accountRepo, f.transactionRepo)

	f.newAccount(t, "ACC1001", "5000.00")
	f.newAccount(t, "ACC2001", "10000.00")

	aggregates, err := reports.BranchAggregates(context.Background())
	require.NoError(t, err)
	require.Len(t, aggregates, 1)
	assert.Equal(t, 2, aggregates[0].AccountCount)
	assert.True(t, aggregates[0].TotalBalance.Equal(mustDecimal(t, "15000.00")))
}
