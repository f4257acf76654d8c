package domain

import "github.com/shopspring/decimal"

// Derived, read-only projections over accounts and transactions. These are
// recomputed on demand and carry no state of their own.

type CustomerTotal struct {
	CustomerID   int64
	AccountCount int
	TotalBalance decimal.Decimal
}

type BranchAggregate struct {
	BranchID     int64
	BranchName   string
	BranchCode   string
	AccountCount int
	TotalBalance decimal.Decimal
}
