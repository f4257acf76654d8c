package controller

import (
	"context"
	"net/http"

	"github.com/stonebridge-bank/ledger/internal/adapter/http/models"
	"github.com/stonebridge-bank/ledger/internal/commons"
	"github.com/stonebridge-bank/ledger/internal/domain"
	"github.com/stonebridge-bank/ledger/internal/usecase/services"
)

type ReportService interface {
	CustomerSummary(ctx context.Context, customerID int64, recentLimit int) (services.CustomerSummary, error)
	BranchAggregates(ctx context.Context) ([]domain.BranchAggregate, error)
}

type ReportController struct {
	service ReportService
}

func NewReportController(service ReportService) *ReportController {
	return &ReportController{service: service}
}

func (c *ReportController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	routes := map[string]http.HandlerFunc{
		"/reports/customer-summary": c.customerSummary,
		"/reports/branches":         c.branchAggregates,
	}
	for path, handler := range routes {
		wrapped := http.Handler(handler)
		if authMiddleware != nil {
			wrapped = authMiddleware(wrapped)
		}
		mux.Handle(path, wrapped)
	}
}

type customerSummaryResponse struct {
	CustomerID         int64                        `json:"customerId"`
	AccountCount       int                          `json:"accountCount"`
	TotalBalance       string                       `json:"totalBalance"`
	Accounts           []models.AccountResponse     `json:"accounts"`
	RecentTransactions []models.TransactionResponse `json:"recentTransactions"`
}

type branchAggregateResponse struct {
	BranchID     int64  `json:"branchId"`
	BranchName   string `json:"branchName"`
	BranchCode   string `json:"branchCode"`
	AccountCount int    `json:"accountCount"`
	TotalBalance string `json:"totalBalance"`
}

func (c *ReportController) customerSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[customerSummaryResponse]("method not allowed"))
		return
	}

	customerID, ok, err := queryInt64(r, "customerId")
	if err != nil || !ok {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[customerSummaryResponse]("customerId is required"))
		return
	}

	limit, _ := queryPage(r)
	summary, err := c.service.CustomerSummary(r.Context(), customerID, limit)
	if err != nil {
		writeJSON(w, statusForError(err), commons.ErrorResponse[customerSummaryResponse]("failed to build customer summary", err.Error()))
		return
	}

	accounts := make([]models.AccountResponse, 0, len(summary.Accounts))
	for _, account := range summary.Accounts {
		accounts = append(accounts, models.MapAccount(account))
	}

	writeJSON(w, http.StatusOK, commons.SuccessResponse("Customer summary", customerSummaryResponse{
		CustomerID:         summary.Total.CustomerID,
		AccountCount:       summary.Total.AccountCount,
		TotalBalance:       summary.Total.TotalBalance.StringFixed(2),
		Accounts:           accounts,
		RecentTransactions: models.MapTransactions(summary.RecentTransactions),
	}))
}

func (c *ReportController) branchAggregates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[[]branchAggregateResponse]("method not allowed"))
		return
	}

	aggregates, err := c.service.BranchAggregates(r.Context())
	if err != nil {
		writeJSON(w, statusForError(err), commons.ErrorResponse[[]branchAggregateResponse]("failed to build branch aggregates", err.Error()))
		return
	}

	out := make([]branchAggregateResponse, 0, len(aggregates))
	for _, agg := range aggregates {
		out = append(out, branchAggregateResponse{
			BranchID:     agg.BranchID,
			BranchName:   agg.BranchName,
			BranchCode:   agg.BranchCode,
			AccountCount: agg.AccountCount,
			TotalBalance: agg.TotalBalance.StringFixed(2),
		})
	}

	writeJSON(w, http.StatusOK, commons.SuccessResponse("Branch aggregates", out))
}
