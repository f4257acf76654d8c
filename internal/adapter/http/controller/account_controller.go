package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/stonebridge-bank/ledger/internal/adapter/http/models"
	"github.com/stonebridge-bank/ledger/internal/commons"
	"github.com/stonebridge-bank/ledger/internal/domain"
)

type AccountService interface {
	CreateAccount(ctx context.Context, customerID, branchID int64, accountType domain.AccountType, openingBalance decimal.Decimal) (domain.Account, error)
	GetAccount(ctx context.Context, accountID int64) (domain.Account, error)
	GetAccountByNumber(ctx context.Context, accountNumber string) (domain.Account, error)
	ListCustomerAccounts(ctx context.Context, customerID int64) ([]domain.Account, error)
	ListAccountTransactions(ctx context.Context, accountID int64, limit, offset int) ([]domain.Transaction, error)
	UpdateStatus(ctx context.Context, accountID int64, status domain.AccountStatus) error
}

type AccountController struct {
	service AccountService
}

func NewAccountController(service AccountService) *AccountController {
	return &AccountController{service: service}
}

func (c *AccountController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	routes := map[string]http.HandlerFunc{
		"/accounts":        c.accounts,
		"/accounts/status": c.updateStatus,
		"/transactions":    c.transactions,
	}
	for path, handler := range routes {
		wrapped := http.Handler(handler)
		if authMiddleware != nil {
			wrapped = authMiddleware(wrapped)
		}
		mux.Handle(path, wrapped)
	}
}

func (c *AccountController) accounts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		c.createAccount(w, r)
	case http.MethodGet:
		c.getAccounts(w, r)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.AccountResponse]("method not allowed"))
	}
}

func (c *AccountController) createAccount(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("invalid request body", err.Error()))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()))
		return
	}

	accountType := domain.AccountType(strings.ToUpper(strings.TrimSpace(req.AccountType)))
	account, err := c.service.CreateAccount(r.Context(), req.CustomerID, req.BranchID, accountType, req.OpeningBalance)
	if err != nil {
		writeJSON(w, statusForError(err), commons.ErrorResponse[models.AccountResponse]("failed to create account", err.Error()))
		return
	}

	writeJSON(w, http.StatusCreated, commons.SuccessResponse("Account created", models.MapAccount(account)))
}

func (c *AccountController) getAccounts(w http.ResponseWriter, r *http.Request) {
	if customerID, ok, err := queryInt64(r, "customerId"); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[[]models.AccountResponse]("invalid customerId"))
		return
	} else if ok {
		accounts, err := c.service.ListCustomerAccounts(r.Context(), customerID)
		if err != nil {
			writeJSON(w, statusForError(err), commons.ErrorResponse[[]models.AccountResponse]("failed to list accounts", err.Error()))
			return
		}
		out := make([]models.AccountResponse, 0, len(accounts))
		for _, account := range accounts {
			out = append(out, models.MapAccount(account))
		}
		writeJSON(w, http.StatusOK, commons.SuccessResponse("Accounts retrieved", out))
		return
	}

	if accountID, ok, err := queryInt64(r, "accountId"); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("invalid accountId"))
		return
	} else if ok {
		account, err := c.service.GetAccount(r.Context(), accountID)
		if err != nil {
			writeJSON(w, statusForError(err), commons.ErrorResponse[models.AccountResponse]("failed to get account", err.Error()))
			return
		}
		writeJSON(w, http.StatusOK, commons.SuccessResponse("Account retrieved", models.MapAccount(account)))
		return
	}

	if number := strings.TrimSpace(r.URL.Query().Get("accountNumber")); number != "" {
		account, err := c.service.GetAccountByNumber(r.Context(), number)
		if err != nil {
			writeJSON(w, statusForError(err), commons.ErrorResponse[models.AccountResponse]("failed to get account", err.Error()))
			return
		}
		writeJSON(w, http.StatusOK, commons.SuccessResponse("Account retrieved", models.MapAccount(account)))
		return
	}

	writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("customerId, accountId or accountNumber is required"))
}

func (c *AccountController) updateStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[struct{}]("method not allowed"))
		return
	}

	var req models.UpdateAccountStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[struct{}]("invalid request body", err.Error()))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[struct{}]("validation failed", err.Error()))
		return
	}

	status := domain.AccountStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	if err := c.service.UpdateStatus(r.Context(), req.AccountID, status); err != nil {
		writeJSON(w, statusForError(err), commons.ErrorResponse[struct{}]("failed to update status", err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, commons.SuccessResponse("Account status updated", struct{}{}))
}

func (c *AccountController) transactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[[]models.TransactionResponse]("method not allowed"))
		return
	}

	accountID, ok, err := queryInt64(r, "accountId")
	if err != nil || !ok {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[[]models.TransactionResponse]("accountId is required"))
		return
	}

	limit, offset := queryPage(r)
	txns, err := c.service.ListAccountTransactions(r.Context(), accountID, limit, offset)
	if err != nil {
		writeJSON(w, statusForError(err), commons.ErrorResponse[[]models.TransactionResponse]("failed to list transactions", err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, commons.SuccessResponse("Transactions retrieved", models.MapTransactions(txns)))
}
