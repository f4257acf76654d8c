package domain

import "time"

type Customer struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Phone        string
	Address      string
	DateOfBirth  *time.Time
	BranchID     int64
	IsActive     bool
	CreatedAt    time.Time
}
