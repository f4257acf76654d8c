package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stonebridge-bank/ledger/internal/domain"
)

type CreateAccountRequest struct {
	CustomerID     int64           `json:"customerId"`
	BranchID       int64           `json:"branchId"`
	AccountType    string          `json:"accountType"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
}

func (r CreateAccountRequest) Validate() error {
	var errs []string

	if r.CustomerID <= 0 {
		errs = append(errs, "customerId must be a positive integer")
	}
	if r.BranchID <= 0 {
		errs = append(errs, "branchId must be a positive integer")
	}
	switch domain.AccountType(strings.ToUpper(strings.TrimSpace(r.AccountType))) {
	case domain.AccountTypeSavings, domain.AccountTypeChecking, domain.AccountTypeFixedDeposit:
	default:
		errs = append(errs, "accountType must be one of SAVINGS, CHECKING, FIXED_DEPOSIT")
	}
	if r.OpeningBalance.IsNegative() {
		errs = append(errs, "openingBalance cannot be negative")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type UpdateAccountStatusRequest struct {
	AccountID int64  `json:"accountId"`
	Status    string `json:"status"`
}

func (r UpdateAccountStatusRequest) Validate() error {
	var errs []string

	if r.AccountID <= 0 {
		errs = append(errs, "accountId must be a positive integer")
	}
	switch domain.AccountStatus(strings.ToUpper(strings.TrimSpace(r.Status))) {
	case domain.AccountStatusActive, domain.AccountStatusInactive, domain.AccountStatusFrozen:
	default:
		errs = append(errs, "status must be one of ACTIVE, INACTIVE, FROZEN")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type AccountResponse struct {
	AccountID     int64           `json:"accountId"`
	AccountNumber string          `json:"accountNumber"`
	AccountType   string          `json:"accountType"`
	Balance       decimal.Decimal `json:"balance"`
	CustomerID    int64           `json:"customerId"`
	BranchID      int64           `json:"branchId"`
	Status        string          `json:"status"`
	OpenedDate    string          `json:"openedDate"`
}

func MapAccount(account domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     account.ID,
		AccountNumber: account.AccountNumber,
		AccountType:   string(account.AccountType),
		Balance:       account.Balance,
		CustomerID:    account.CustomerID,
		BranchID:      account.BranchID,
		Status:        string(account.Status),
		OpenedDate:    account.OpenedDate.Format(time.RFC3339),
	}
}
