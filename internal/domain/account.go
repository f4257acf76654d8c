package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountTypeSavings      AccountType = "SAVINGS"
	AccountTypeChecking     AccountType = "CHECKING"
	AccountTypeFixedDeposit AccountType = "FIXED_DEPOSIT"
)

type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "ACTIVE"
	AccountStatusInactive AccountStatus = "INACTIVE"
	AccountStatusFrozen   AccountStatus = "FROZEN"
)

// Account balances are mutated only through the ledger store's
// AdjustBalance path; nothing else in the system writes the balance column.
type Account struct {
	ID            int64
	AccountNumber string
	AccountType   AccountType
	Balance       decimal.Decimal
	CustomerID    int64
	BranchID      int64
	Status        AccountStatus
	OpenedDate    time.Time
	CreatedAt     time.Time
}
