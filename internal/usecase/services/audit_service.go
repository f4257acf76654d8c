package services

import (
	"context"

	"github.com/stonebridge-bank/ledger/internal/domain"
	"github.com/stonebridge-bank/ledger/internal/ledger"
)

const defaultPageSize = 50
const maxPageSize = 500

// AuditService is the read-only surface over balance-change audit entries.
type AuditService struct {
	auditRepo ledger.AuditRepository
}

func NewAuditService(auditRepo ledger.AuditRepository) *AuditService {
	return &AuditService{auditRepo: auditRepo}
}

// ListAuditEntries returns entries ordered by timestamp descending,
// optionally scoped to one account.
func (s *AuditService) ListAuditEntries(ctx context.Context, accountID *int64, limit, offset int) ([]domain.AuditEntry, error) {
	limit, offset = clampPage(limit, offset)
	return s.auditRepo.List(ctx, accountID, limit, offset)
}

// RecoveryService is the read-only surface over the recovery log.
type RecoveryService struct {
	recoveryRepo ledger.RecoveryRepository
}

func NewRecoveryService(recoveryRepo ledger.RecoveryRepository) *RecoveryService {
	return &RecoveryService{recoveryRepo: recoveryRepo}
}

// ListRecoveryEntries returns failure records ordered by timestamp
// descending.
func (s *RecoveryService) ListRecoveryEntries(ctx context.Context, limit, offset int) ([]domain.RecoveryEntry, error) {
	limit, offset = clampPage(limit, offset)
	return s.recoveryRepo.List(ctx, limit, offset)
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
