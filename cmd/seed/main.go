// Seeds the demo data set: three branches, three customers, three
// employees, and five accounts. Safe to re-run; existing rows are kept.
package main

import (
	"context"
	"database/sql"
	"log"
	"time"

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/stonebridge-bank/ledger/internal/adapter/repository/postgres"
	"github.com/stonebridge-bank/ledger/internal/config"
	"github.com/stonebridge-bank/ledger/internal/domain"
)

const demoPassword = "password"

var branches = []domain.Branch{
	{BranchName: "Main Branch", BranchCode: "BR001", Address: "123 Main Street, New York, NY 10001", Phone: "555-0100", ManagerName: "John Smith"},
	{BranchName: "Downtown Branch", BranchCode: "BR002", Address: "456 Park Avenue, New York, NY 10022", Phone: "555-0200", ManagerName: "Sarah Johnson"},
	{BranchName: "Suburban Branch", BranchCode: "BR003", Address: "789 Oak Street, Brooklyn, NY 11201", Phone: "555-0300", ManagerName: "Michael Brown"},
}

// branch/customer fields on the rows below are 1-based indexes into the
// slices above; the real ids come back from the inserts.
type customerRow struct {
	domain.Customer
	branch int
}

var customers = []customerRow{
	{domain.Customer{FirstName: "Alice", LastName: "Williams", Email: "alice@example.com", Phone: "555-1001", Address: "100 First Ave, NY", DateOfBirth: datePtr("1990-05-15")}, 1},
	{domain.Customer{FirstName: "Bob", LastName: "Davis", Email: "bob@example.com", Phone: "555-1002", Address: "200 Second Ave, NY", DateOfBirth: datePtr("1985-08-20")}, 1},
	{domain.Customer{FirstName: "Charlie", LastName: "Miller", Email: "charlie@example.com", Phone: "555-1003", Address: "300 Third Ave, NY", DateOfBirth: datePtr("1992-03-10")}, 2},
}

type employeeRow struct {
	domain.Employee
	branch int
}

var employees = []employeeRow{
	{domain.Employee{FirstName: "Emma", LastName: "Wilson", Email: "emma.wilson@bank.com", Phone: "555-2001", Position: "Teller", Salary: decimal.RequireFromString("45000.00"), HireDate: date("2020-01-15")}, 1},
	{domain.Employee{FirstName: "David", LastName: "Taylor", Email: "david.taylor@bank.com", Phone: "555-2002", Position: "Manager", Salary: decimal.RequireFromString("75000.00"), HireDate: date("2018-06-01")}, 1},
	{domain.Employee{FirstName: "Lisa", LastName: "Anderson", Email: "lisa.anderson@bank.com", Phone: "555-2003", Position: "Loan Officer", Salary: decimal.RequireFromString("60000.00"), HireDate: date("2019-03-20")}, 2},
}

type accountRow struct {
	domain.Account
	customer, branch int
}

var accounts = []accountRow{
	{domain.Account{AccountNumber: "ACC1001", AccountType: domain.AccountTypeSavings, Balance: decimal.RequireFromString("5000.00")}, 1, 1},
	{domain.Account{AccountNumber: "ACC1002", AccountType: domain.AccountTypeChecking, Balance: decimal.RequireFromString("1500.00")}, 1, 1},
	{domain.Account{AccountNumber: "ACC2001", AccountType: domain.AccountTypeSavings, Balance: decimal.RequireFromString("10000.00")}, 2, 1},
	{domain.Account{AccountNumber: "ACC3001", AccountType: domain.AccountTypeChecking, Balance: decimal.RequireFromString("3000.00")}, 3, 2},
	{domain.Account{AccountNumber: "ACC3002", AccountType: domain.AccountTypeSavings, Balance: decimal.RequireFromString("500.00")}, 3, 2},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := postgres.RunMigrations(ctx, cfg.DatabaseDSN, cfg.MigrationsDir); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	db, err := postgres.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if err := seed(ctx, db); err != nil {
		log.Fatalf("seed database: %v", err)
	}

	log.Println("demo data seeded; customer logins use password \"password\"")
}

func seed(ctx context.Context, db *sql.DB) error {
	branchIDs := make([]int64, len(branches))
	for i, b := range branches {
		err := db.QueryRowContext(ctx, `
INSERT INTO branches (branch_name, branch_code, address, phone, manager_name)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (branch_code) DO UPDATE SET branch_name = EXCLUDED.branch_name
RETURNING branch_id`,
			b.BranchName, b.BranchCode, b.Address, b.Phone, b.ManagerName,
		).Scan(&branchIDs[i])
		if err != nil {
			return err
		}
	}

	customerIDs := make([]int64, len(customers))
	for i, c := range customers {
		hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		err = db.QueryRowContext(ctx, `
INSERT INTO customers (first_name, last_name, email, password_hash, phone, address, date_of_birth, branch_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (email) DO UPDATE SET phone = EXCLUDED.phone
RETURNING customer_id`,
			c.FirstName, c.LastName, c.Email, string(hash), c.Phone, c.Address, c.DateOfBirth, branchIDs[c.branch-1],
		).Scan(&customerIDs[i])
		if err != nil {
			return err
		}
	}

	for _, e := range employees {
		if _, err := db.ExecContext(ctx, `
INSERT INTO employees (first_name, last_name, email, phone, position, salary, hire_date, branch_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (email) DO NOTHING`,
			e.FirstName, e.LastName, e.Email, e.Phone, e.Position, e.Salary, e.HireDate, branchIDs[e.branch-1],
		); err != nil {
			return err
		}
	}

	for _, a := range accounts {
		if _, err := db.ExecContext(ctx, `
INSERT INTO accounts (account_number, account_type, balance, customer_id, branch_id)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (account_number) DO NOTHING`,
			a.AccountNumber, a.AccountType, a.Balance, customerIDs[a.customer-1], branchIDs[a.branch-1],
		); err != nil {
			return err
		}
	}

	return nil
}

func date(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		log.Fatalf("parse seed date %q: %v", value, err)
	}
	return t
}

func datePtr(value string) *time.Time {
	t := date(value)
	return &t
}
