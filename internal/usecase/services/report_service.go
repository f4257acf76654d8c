package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/stonebridge-bank/ledger/internal/domain"
	"github.com/stonebridge-bank/ledger/internal/ledger"
)

// ReportService recomputes derived projections on demand. Nothing here
// mutates state; the figures come straight from accounts and transactions.
type ReportService struct {
	reportRepo      ledger.ReportRepository
	accountRepo     ledger.AccountRepository
	transactionRepo ledger.TransactionRepository
}

func NewReportService(
	reportRepo ledger.ReportRepository,
	accountRepo ledger.AccountRepository,
	transactionRepo ledger.TransactionRepository,
) *ReportService {
	return &ReportService{
		reportRepo:      reportRepo,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
	}
}

type CustomerSummary struct {
	Total              domain.CustomerTotal
	Accounts           []domain.Account
	RecentTransactions []domain.Transaction
}

// CustomerSummary fans the component queries out concurrently; they are
// independent reads over committed state.
func (s *ReportService) CustomerSummary(ctx context.Context, customerID int64, recentLimit int) (CustomerSummary, error) {
	if recentLimit <= 0 {
		recentLimit = 10
	}

	var summary CustomerSummary
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		total, err := s.reportRepo.CustomerTotalBalance(gctx, customerID)
		if err != nil {
			return err
		}
		summary.Total = total
		return nil
	})

	g.Go(func() error {
		accounts, err := s.accountRepo.ListByCustomer(gctx, customerID)
		if err != nil {
			return err
		}
		summary.Accounts = accounts

		recent := make([]domain.Transaction, 0, recentLimit)
		for _, account := range accounts {
			txns, err := s.transactionRepo.ListByAccount(gctx, account.ID, recentLimit, 0)
			if err != nil {
				return err
			}
			recent = append(recent, txns...)
		}
		if len(recent) > recentLimit {
			recent = recent[:recentLimit]
		}
		summary.RecentTransactions = recent
		return nil
	})

	if err := g.Wait(); err != nil {
		return CustomerSummary{}, err
	}
	return summary, nil
}

func (s *ReportService) BranchAggregates(ctx context.Context) ([]domain.BranchAggregate, error) {
	return s.reportRepo.BranchAggregates(ctx)
}
