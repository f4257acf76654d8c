package controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stonebridge-bank/ledger/internal/adapter/http/controller"
	"github.com/stonebridge-bank/ledger/internal/adapter/http/models"
	"github.com/stonebridge-bank/ledger/internal/adapter/repository/memory"
	"github.com/stonebridge-bank/ledger/internal/commons"
	"github.com/stonebridge-bank/ledger/internal/domain"
	"github.com/stonebridge-bank/ledger/internal/usecase/services"
)

type harness struct {
	mux          *http.ServeMux
	accountRepo  *memory.AccountRepository
	recoveryRepo *memory.RecoveryRepository
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	store := memory.NewStore()
	recoveryRepo := memory.NewRecoveryRepository()
	accountRepo := memory.NewAccountRepository(store)
	transactionRepo := memory.NewTransactionRepository(store)

	transferService := services.NewTransferService(store, recoveryRepo)
	accountService := services.NewAccountService(accountRepo, transactionRepo)

	mux := http.NewServeMux()
	controller.NewTransferController(transferService, accountService).RegisterRoutes(mux, nil)

	return &harness{mux: mux, accountRepo: accountRepo, recoveryRepo: recoveryRepo}
}

func (h *harness) createAccount(t *testing.T, number, balance string) domain.Account {
	t.Helper()
	account, err := h.accountRepo.Create(context.Background(), domain.Account{
		AccountNumber: number,
		AccountType:   domain.AccountTypeSavings,
		Balance:       decimal.RequireFromString(balance),
		CustomerID:    1,
		BranchID:      1,
	})
	require.NoError(t, err)
	return account
}

func (h *harness) post(t *testing.T, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.mux.ServeHTTP(rr, req)
	return rr
}

func TestTransferEndpoint_Success(t *testing.T) {
	h := newHarness(t)
	sender := h.createAccount(t, "ACC1001", "5000.00")
	receiver := h.createAccount(t, "ACC2001", "10000.00")

	rr := h.post(t, "/transfers", map[string]any{
		"senderAccountId":   sender.ID,
		"receiverAccountId": receiver.ID,
		"amount":            "100.00",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp commons.Response[models.TransferResponse]
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Data)
	assert.Equal(t, sender.ID, resp.Data.SenderAccountID)
	assert.True(t, resp.Data.Amount.Equal(decimal.RequireFromString("100.00")))
}

func TestTransferEndpoint_ValidationFailure(t *testing.T) {
	h := newHarness(t)

	rr := h.post(t, "/transfers", map[string]any{
		"senderAccountId":   1,
		"receiverAccountId": 1,
		"amount":            "100.00",
	})
	require.Equal(t, http.StatusBadRequest, rr.Code)

	var resp commons.Response[models.TransferResponse]
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Errors)
}

func TestTransferEndpoint_InsufficientFunds(t *testing.T) {
	h := newHarness(t)
	sender := h.createAccount(t, "ACC3002", "500.00")
	receiver := h.createAccount(t, "ACC2001", "10000.00")

	rr := h.post(t, "/transfers", map[string]any{
		"senderAccountId":   sender.ID,
		"receiverAccountId": receiver.ID,
		"amount":            "50000.00",
	})
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	var resp commons.Response[models.TransferResponse]
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotEmpty(t, resp.Errors)
	assert.Contains(t, resp.Errors[0], "Shortfall: 49500.00")
}

func TestTransferEndpoint_SenderNotFound(t *testing.T) {
	h := newHarness(t)
	receiver := h.createAccount(t, "ACC2001", "10000.00")

	rr := h.post(t, "/transfers", map[string]any{
		"senderAccountId":   987654,
		"receiverAccountId": receiver.ID,
		"amount":            "10.00",
	})
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestTransferEndpoint_MethodNotAllowed(t *testing.T) {
	h := newHarness(t)

	req := httptest.NewRequest(http.MethodGet, "/transfers", nil)
	rr := httptest.NewRecorder()
	h.mux.ServeHTTP(rr, req)
	require.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestDepositAndWithdrawalEndpoints(t *testing.T) {
	h := newHarness(t)
	account := h.createAccount(t, "ACC1002", "1500.00")

	rr := h.post(t, "/deposits", map[string]any{"accountId": account.ID, "amount": "500.00"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var depositResp commons.Response[models.CashOperationResponse]
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &depositResp))
	require.NotNil(t, depositResp.Data)
	assert.True(t, depositResp.Data.NewBalance.Equal(decimal.RequireFromString("2000.00")))

	rr = h.post(t, "/withdrawals", map[string]any{"accountId": account.ID, "amount": "2500.00"})
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestSimulateFailureEndpoint(t *testing.T) {
	h := newHarness(t)
	sender := h.createAccount(t, "ACC1001", "5000.00")
	receiver := h.createAccount(t, "ACC2001", "10000.00")

	rr := h.post(t, "/simulate-failure", map[string]any{
		"senderAccountId":   sender.ID,
		"receiverAccountId": receiver.ID,
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp commons.Response[struct {
		AttemptedAmount decimal.Decimal `json:"attemptedAmount"`
		FailureReason   string          `json:"failureReason"`
	}]
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Data)
	assert.True(t, resp.Data.AttemptedAmount.Equal(decimal.RequireFromString("10000.00")))
	assert.Contains(t, resp.Data.FailureReason, "Insufficient funds")

	// The attempt rolled back; the balances and the recovery log prove it.
	account, err := h.accountRepo.GetByID(context.Background(), sender.ID)
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(decimal.RequireFromString("5000.00")))

	entries, err := h.recoveryRepo.List(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
