package controller

import (
	"context"
	"net/http"

	"github.com/stonebridge-bank/ledger/internal/adapter/http/models"
	"github.com/stonebridge-bank/ledger/internal/commons"
	"github.com/stonebridge-bank/ledger/internal/domain"
)

type AuditService interface {
	ListAuditEntries(ctx context.Context, accountID *int64, limit, offset int) ([]domain.AuditEntry, error)
}

type RecoveryService interface {
	ListRecoveryEntries(ctx context.Context, limit, offset int) ([]domain.RecoveryEntry, error)
}

// LogsController serves the two read-only log surfaces: the balance-change
// audit trail and the recovery log of failed operations.
type LogsController struct {
	auditService    AuditService
	recoveryService RecoveryService
}

func NewLogsController(auditService AuditService, recoveryService RecoveryService) *LogsController {
	return &LogsController{auditService: auditService, recoveryService: recoveryService}
}

func (c *LogsController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	routes := map[string]http.HandlerFunc{
		"/audit-logs":    c.auditLogs,
		"/recovery-logs": c.recoveryLogs,
	}
	for path, handler := range routes {
		wrapped := http.Handler(handler)
		if authMiddleware != nil {
			wrapped = authMiddleware(wrapped)
		}
		mux.Handle(path, wrapped)
	}
}

func (c *LogsController) auditLogs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[[]models.AuditEntryResponse]("method not allowed"))
		return
	}

	var accountFilter *int64
	if accountID, ok, err := queryInt64(r, "accountId"); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[[]models.AuditEntryResponse]("invalid accountId"))
		return
	} else if ok {
		accountFilter = &accountID
	}

	limit, offset := queryPage(r)
	entries, err := c.auditService.ListAuditEntries(r.Context(), accountFilter, limit, offset)
	if err != nil {
		writeJSON(w, statusForError(err), commons.ErrorResponse[[]models.AuditEntryResponse]("failed to list audit entries", err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, commons.SuccessResponse("Audit entries retrieved", models.MapAuditEntries(entries)))
}

func (c *LogsController) recoveryLogs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[[]models.RecoveryEntryResponse]("method not allowed"))
		return
	}

	limit, offset := queryPage(r)
	entries, err := c.recoveryService.ListRecoveryEntries(r.Context(), limit, offset)
	if err != nil {
		writeJSON(w, statusForError(err), commons.ErrorResponse[[]models.RecoveryEntryResponse]("failed to list recovery entries", err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, commons.SuccessResponse("Recovery entries retrieved", models.MapRecoveryEntries(entries)))
}
