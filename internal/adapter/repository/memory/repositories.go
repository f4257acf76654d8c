package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stonebridge-bank/ledger/internal/commons"
	"github.com/stonebridge-bank/ledger/internal/domain"
)

// AddBranch seeds a branch row for the report projections.
func (s *Store) AddBranch(branch domain.Branch) domain.Branch {
	s.mu.Lock()
	defer s.mu.Unlock()

	if branch.ID == 0 {
		branch.ID = int64(len(s.branches) + 1)
	}
	s.branches[branch.ID] = branch
	return branch
}

type AccountRepository struct {
	store *Store
}

func NewAccountRepository(store *Store) *AccountRepository {
	return &AccountRepository{store: store}
}

func (r *AccountRepository) Create(_ context.Context, account domain.Account) (domain.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.nextAccountID++
	account.ID = r.store.nextAccountID
	if account.Status == "" {
		account.Status = domain.AccountStatusActive
	}
	now := time.Now().UTC()
	account.OpenedDate = now
	account.CreatedAt = now

	r.store.accounts[account.ID] = &accountRow{account: account}
	return account, nil
}

func (r *AccountRepository) GetByID(_ context.Context, accountID int64) (domain.Account, error) {
	r.store.mu.Lock()
	row, ok := r.store.accounts[accountID]
	r.store.mu.Unlock()
	if !ok {
		return domain.Account{}, commons.ErrRecordNotFound
	}

	row.mu.Lock()
	defer row.mu.Unlock()
	return row.account, nil
}

func (r *AccountRepository) GetByAccountNumber(_ context.Context, accountNumber string) (domain.Account, error) {
	r.store.mu.Lock()
	var found *accountRow
	for _, row := range r.store.accounts {
		if row.account.AccountNumber == accountNumber {
			found = row
			break
		}
	}
	r.store.mu.Unlock()
	if found == nil {
		return domain.Account{}, commons.ErrRecordNotFound
	}

	found.mu.Lock()
	defer found.mu.Unlock()
	return found.account, nil
}

func (r *AccountRepository) ListByCustomer(_ context.Context, customerID int64) ([]domain.Account, error) {
	r.store.mu.Lock()
	rows := make([]*accountRow, 0)
	for _, row := range r.store.accounts {
		rows = append(rows, row)
	}
	r.store.mu.Unlock()

	accounts := make([]domain.Account, 0)
	for _, row := range rows {
		row.mu.Lock()
		if row.account.CustomerID == customerID {
			accounts = append(accounts, row.account)
		}
		row.mu.Unlock()
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts, nil
}

func (r *AccountRepository) UpdateStatus(_ context.Context, accountID int64, status domain.AccountStatus) error {
	r.store.mu.Lock()
	row, ok := r.store.accounts[accountID]
	r.store.mu.Unlock()
	if !ok {
		return commons.ErrRecordNotFound
	}

	// Status lives outside the balance mutation path; no audit entry.
	row.mu.Lock()
	row.account.Status = status
	row.mu.Unlock()
	return nil
}

type AuditRepository struct {
	store *Store
}

func NewAuditRepository(store *Store) *AuditRepository {
	return &AuditRepository{store: store}
}

func (r *AuditRepository) List(_ context.Context, accountID *int64, limit, offset int) ([]domain.AuditEntry, error) {
	r.store.mu.Lock()
	entries := make([]domain.AuditEntry, 0, len(r.store.auditLog))
	for _, entry := range r.store.auditLog {
		if accountID != nil && entry.AccountID != *accountID {
			continue
		}
		entries = append(entries, entry)
	}
	r.store.mu.Unlock()

	// Insertion ids are monotonic, so id-descending is timestamp-descending.
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID > entries[j].ID })
	return paginate(entries, limit, offset), nil
}

type TransactionRepository struct {
	store *Store
}

func NewTransactionRepository(store *Store) *TransactionRepository {
	return &TransactionRepository{store: store}
}

func (r *TransactionRepository) ListByAccount(_ context.Context, accountID int64, limit, offset int) ([]domain.Transaction, error) {
	r.store.mu.Lock()
	txns := make([]domain.Transaction, 0)
	for _, txn := range r.store.transactions {
		if (txn.SenderAccountID != nil && *txn.SenderAccountID == accountID) ||
			(txn.ReceiverAccountID != nil && *txn.ReceiverAccountID == accountID) {
			txns = append(txns, txn)
		}
	}
	r.store.mu.Unlock()

	sort.Slice(txns, func(i, j int) bool { return txns[i].ID > txns[j].ID })
	return paginate(txns, limit, offset), nil
}

// RecoveryRepository appends to its own log under its own lock. It is not
// part of any store transaction, so entries persist across rollbacks.
type RecoveryRepository struct {
	mu      sync.Mutex
	entries []domain.RecoveryEntry
	nextID  int64
}

func NewRecoveryRepository() *RecoveryRepository {
	return &RecoveryRepository{}
}

func (r *RecoveryRepository) Create(_ context.Context, entry domain.RecoveryEntry) (domain.RecoveryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	entry.ID = r.nextID
	entry.FailedAt = time.Now().UTC()
	r.entries = append(r.entries, entry)
	return entry, nil
}

func (r *RecoveryRepository) List(_ context.Context, limit, offset int) ([]domain.RecoveryEntry, error) {
	r.mu.Lock()
	entries := make([]domain.RecoveryEntry, len(r.entries))
	copy(entries, r.entries)
	r.mu.Unlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].ID > entries[j].ID })
	return paginate(entries, limit, offset), nil
}

type ReportRepository struct {
	store *Store
}

func NewReportRepository(store *Store) *ReportRepository {
	return &ReportRepository{store: store}
}

func (r *ReportRepository) CustomerTotalBalance(ctx context.Context, customerID int64) (domain.CustomerTotal, error) {
	accounts, err := NewAccountRepository(r.store).ListByCustomer(ctx, customerID)
	if err != nil {
		return domain.CustomerTotal{}, err
	}

	total := domain.CustomerTotal{CustomerID: customerID, AccountCount: len(accounts)}
	total.TotalBalance = decimal.Zero
	for _, account := range accounts {
		total.TotalBalance = total.TotalBalance.Add(account.Balance)
	}
	return total, nil
}

func (r *ReportRepository) BranchAggregates(_ context.Context) ([]domain.BranchAggregate, error) {
	r.store.mu.Lock()
	byBranch := make(map[int64]*domain.BranchAggregate, len(r.store.branches))
	for id, branch := range r.store.branches {
		byBranch[id] = &domain.BranchAggregate{
			BranchID:     id,
			BranchName:   branch.BranchName,
			BranchCode:   branch.BranchCode,
			TotalBalance: decimal.Zero,
		}
	}
	rows := make([]*accountRow, 0, len(r.store.accounts))
	for _, row := range r.store.accounts {
		rows = append(rows, row)
	}
	r.store.mu.Unlock()

	for _, row := range rows {
		row.mu.Lock()
		account := row.account
		row.mu.Unlock()

		agg, ok := byBranch[account.BranchID]
		if !ok {
			continue
		}
		agg.AccountCount++
		agg.TotalBalance = agg.TotalBalance.Add(account.Balance)
	}

	aggregates := make([]domain.BranchAggregate, 0, len(byBranch))
	for _, agg := range byBranch {
		aggregates = append(aggregates, *agg)
	}
	sort.Slice(aggregates, func(i, j int) bool { return aggregates[i].BranchID < aggregates[j].BranchID })
	return aggregates, nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
