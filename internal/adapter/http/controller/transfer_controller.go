package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/stonebridge-bank/ledger/internal/adapter/http/models"
	"github.com/stonebridge-bank/ledger/internal/commons"
	"github.com/stonebridge-bank/ledger/internal/domain"
	"github.com/stonebridge-bank/ledger/internal/logger"
	"github.com/stonebridge-bank/ledger/internal/usecase/services"
)

type TransferEngine interface {
	Transfer(ctx context.Context, senderID, receiverID int64, amount decimal.Decimal) (services.TransferResult, error)
	Deposit(ctx context.Context, accountID int64, amount decimal.Decimal) (services.OperationResult, error)
	Withdraw(ctx context.Context, accountID int64, amount decimal.Decimal) (services.OperationResult, error)
}

type AccountReader interface {
	GetAccount(ctx context.Context, accountID int64) (domain.Account, error)
}

type TransferController struct {
	engine   TransferEngine
	accounts AccountReader
}

func NewTransferController(engine TransferEngine, accounts AccountReader) *TransferController {
	return &TransferController{engine: engine, accounts: accounts}
}

func (c *TransferController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	routes := map[string]http.HandlerFunc{
		"/transfers":        c.transfer,
		"/deposits":         c.deposit,
		"/withdrawals":      c.withdraw,
		"/simulate-failure": c.simulateFailure,
	}
	for path, handler := range routes {
		wrapped := http.Handler(handler)
		if authMiddleware != nil {
			wrapped = authMiddleware(wrapped)
		}
		mux.Handle(path, wrapped)
	}
}

func (c *TransferController) transfer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.TransferResponse]("method not allowed"))
		return
	}

	var req models.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.TransferResponse]("invalid request body", err.Error()))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.TransferResponse]("validation failed", err.Error()))
		return
	}

	result, err := c.engine.Transfer(r.Context(), req.SenderAccountID, req.ReceiverAccountID, req.Amount)
	if err != nil {
		logger.Error("transfer controller transfer failed", err, logger.Fields{
			"senderAccountId":   req.SenderAccountID,
			"receiverAccountId": req.ReceiverAccountID,
		})
		writeJSON(w, statusForError(err), commons.ErrorResponse[models.TransferResponse]("transfer failed", err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, commons.SuccessResponse(result.Message, models.TransferResponse{
		TransactionID:     result.TransactionID,
		SenderAccountID:   result.SenderAccountID,
		ReceiverAccountID: result.ReceiverAccountID,
		Amount:            result.Amount,
		Message:           result.Message,
	}))
}

func (c *TransferController) deposit(w http.ResponseWriter, r *http.Request) {
	c.cashOperation(w, r, c.engine.Deposit)
}

func (c *TransferController) withdraw(w http.ResponseWriter, r *http.Request) {
	c.cashOperation(w, r, c.engine.Withdraw)
}

func (c *TransferController) cashOperation(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, accountID int64, amount decimal.Decimal) (services.OperationResult, error),
) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.CashOperationResponse]("method not allowed"))
		return
	}

	var req models.CashOperationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.CashOperationResponse]("invalid request body", err.Error()))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.CashOperationResponse]("validation failed", err.Error()))
		return
	}

	result, err := op(r.Context(), req.AccountID, req.Amount)
	if err != nil {
		logger.Error("transfer controller cash operation failed", err, logger.Fields{
			"accountId": req.AccountID,
		})
		writeJSON(w, statusForError(err), commons.ErrorResponse[models.CashOperationResponse]("operation failed", err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, commons.SuccessResponse(result.Message, models.CashOperationResponse{
		TransactionID: result.TransactionID,
		AccountID:     result.AccountID,
		Amount:        result.Amount,
		NewBalance:    result.NewBalance,
		Message:       result.Message,
	}))
}

type simulateFailureRequest struct {
	SenderAccountID   int64 `json:"senderAccountId"`
	ReceiverAccountID int64 `json:"receiverAccountId"`
}

type simulateFailureResponse struct {
	AttemptedAmount decimal.Decimal `json:"attemptedAmount"`
	FailureReason   string          `json:"failureReason"`
}

// simulateFailure pushes an over-balance transfer through the normal engine
// path so the rollback-plus-recovery-entry behavior can be demonstrated on
// live data. The attempt is expected to fail validation.
func (c *TransferController) simulateFailure(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[simulateFailureResponse]("method not allowed"))
		return
	}

	var req simulateFailureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[simulateFailureResponse]("invalid request body", err.Error()))
		return
	}
	if req.SenderAccountID <= 0 || req.ReceiverAccountID <= 0 || req.SenderAccountID == req.ReceiverAccountID {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[simulateFailureResponse]("senderAccountId and receiverAccountId must be distinct positive integers"))
		return
	}

	sender, err := c.accounts.GetAccount(r.Context(), req.SenderAccountID)
	if err != nil {
		writeJSON(w, statusForError(err), commons.ErrorResponse[simulateFailureResponse]("failed to load sender account", err.Error()))
		return
	}

	excessive := sender.Balance.Add(decimal.NewFromInt(5000))
	_, err = c.engine.Transfer(r.Context(), req.SenderAccountID, req.ReceiverAccountID, excessive)
	if err == nil {
		writeJSON(w, http.StatusOK, commons.ErrorResponse[simulateFailureResponse]("unexpected success - transfer should have failed"))
		return
	}

	writeJSON(w, http.StatusOK, commons.SuccessResponse("Failure simulated; transfer rolled back and recovery entry persisted", simulateFailureResponse{
		AttemptedAmount: excessive,
		FailureReason:   err.Error(),
	}))
}
