package services

import (
	"context"
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stonebridge-bank/ledger/internal/domain"
	"github.com/stonebridge-bank/ledger/internal/ledger"
	"github.com/stonebridge-bank/ledger/internal/logger"
)

type AccountService struct {
	accountRepo     ledger.AccountRepository
	transactionRepo ledger.TransactionRepository
}

func NewAccountService(accountRepo ledger.AccountRepository, transactionRepo ledger.TransactionRepository) *AccountService {
	return &AccountService{accountRepo: accountRepo, transactionRepo: transactionRepo}
}

func (s *AccountService) CreateAccount(ctx context.Context, customerID, branchID int64, accountType domain.AccountType, openingBalance decimal.Decimal) (domain.Account, error) {
	logger.Info("account service create account request", logger.Fields{
		"customerId":  customerID,
		"branchId":    branchID,
		"accountType": accountType,
	})

	switch accountType {
	case domain.AccountTypeSavings, domain.AccountTypeChecking, domain.AccountTypeFixedDeposit:
	default:
		return domain.Account{}, fmt.Errorf("unsupported account type %q", accountType)
	}
	if openingBalance.IsNegative() {
		return domain.Account{}, fmt.Errorf("opening balance cannot be negative")
	}

	account := domain.Account{
		AccountNumber: generateAccountNumber(),
		AccountType:   accountType,
		Balance:       openingBalance,
		CustomerID:    customerID,
		BranchID:      branchID,
		Status:        domain.AccountStatusActive,
	}

	created, err := s.accountRepo.Create(ctx, account)
	if err != nil {
		logger.Error("account service create account failed", err, logger.Fields{
			"customerId": customerID,
		})
		return domain.Account{}, fmt.Errorf("create account: %w", err)
	}

	logger.Info("account service account created", logger.Fields{
		"accountId":     created.ID,
		"accountNumber": created.AccountNumber,
	})
	return created, nil
}

func (s *AccountService) GetAccount(ctx context.Context, accountID int64) (domain.Account, error) {
	return s.accountRepo.GetByID(ctx, accountID)
}

func (s *AccountService) GetAccountByNumber(ctx context.Context, accountNumber string) (domain.Account, error) {
	return s.accountRepo.GetByAccountNumber(ctx, accountNumber)
}

func (s *AccountService) ListCustomerAccounts(ctx context.Context, customerID int64) ([]domain.Account, error) {
	return s.accountRepo.ListByCustomer(ctx, customerID)
}

func (s *AccountService) ListAccountTransactions(ctx context.Context, accountID int64, limit, offset int) ([]domain.Transaction, error) {
	limit, offset = clampPage(limit, offset)
	return s.transactionRepo.ListByAccount(ctx, accountID, limit, offset)
}

// UpdateStatus changes the account status only; balances are untouched and
// no audit entry results.
func (s *AccountService) UpdateStatus(ctx context.Context, accountID int64, status domain.AccountStatus) error {
	switch status {
	case domain.AccountStatusActive, domain.AccountStatusInactive, domain.AccountStatusFrozen:
	default:
		return fmt.Errorf("unsupported account status %q", status)
	}
	return s.accountRepo.UpdateStatus(ctx, accountID, status)
}

var accountNumberCounter uint32

func generateAccountNumber() string {
	suffix := atomic.AddUint32(&accountNumberCounter, 1) % 1000
	return fmt.Sprintf("ACC%d%03d%03d", time.Now().UTC().Unix()%1000000, rand.Intn(1000), suffix)
}
