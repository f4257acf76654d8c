package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Branch struct {
	ID          int64
	BranchName  string
	BranchCode  string
	Address     string
	Phone       string
	ManagerName string
	CreatedAt   time.Time
}

type Employee struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Position  string
	Salary    decimal.Decimal
	HireDate  time.Time
	BranchID  int64
	IsActive  bool
	CreatedAt time.Time
}
