package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type TransferRequest struct {
	SenderAccountID   int64           `json:"senderAccountId"`
	ReceiverAccountID int64           `json:"receiverAccountId"`
	Amount            decimal.Decimal `json:"amount"`
}

func (r TransferRequest) Validate() error {
	var errs []string

	if r.SenderAccountID <= 0 {
		errs = append(errs, "senderAccountId must be a positive integer")
	}
	if r.ReceiverAccountID <= 0 {
		errs = append(errs, "receiverAccountId must be a positive integer")
	}
	if r.SenderAccountID > 0 && r.SenderAccountID == r.ReceiverAccountID {
		errs = append(errs, "senderAccountId and receiverAccountId cannot be the same")
	}
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, "amount must be greater than zero")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type TransferResponse struct {
	TransactionID     int64           `json:"transactionId"`
	SenderAccountID   int64           `json:"senderAccountId"`
	ReceiverAccountID int64           `json:"receiverAccountId"`
	Amount            decimal.Decimal `json:"amount"`
	Message           string          `json:"message"`
}

type CashOperationRequest struct {
	AccountID int64           `json:"accountId"`
	Amount    decimal.Decimal `json:"amount"`
}

func (r CashOperationRequest) Validate() error {
	var errs []string

	if r.AccountID <= 0 {
		errs = append(errs, "accountId must be a positive integer")
	}
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, "amount must be greater than zero")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type CashOperationResponse struct {
	TransactionID int64           `json:"transactionId"`
	AccountID     int64           `json:"accountId"`
	Amount        decimal.Decimal `json:"amount"`
	NewBalance    decimal.Decimal `json:"newBalance"`
	Message       string          `json:"message"`
}
