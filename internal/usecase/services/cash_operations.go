package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/stonebridge-bank/ledger/internal/domain"
	"github.com/stonebridge-bank/ledger/internal/logger"
)

// Deposit credits an account under the same locking, audit, and recovery
// discipline as transfers. The transaction record carries a nil sender.
func (s *TransferService) Deposit(ctx context.Context, accountID int64, amount decimal.Decimal) (OperationResult, error) {
	logger.Info("transfer service deposit request", logger.Fields{
		"accountId": accountID,
		"amount":    amount,
	})

	if amount.LessThanOrEqual(decimal.Zero) {
		return OperationResult{}, fmt.Errorf("deposit amount must be greater than zero")
	}

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return OperationResult{}, &domain.UnexpectedFailureError{Op: "deposit", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	account, err := tx.GetAccountForUpdate(ctx, accountID)
	if err != nil {
		return OperationResult{}, s.failCashOperation(ctx, domain.TransactionTypeDeposit, accountID, amount, nil, err)
	}

	updated, err := tx.AdjustBalance(ctx, accountID, amount, string(domain.TransactionTypeDeposit))
	if err != nil {
		return OperationResult{}, s.failCashOperation(ctx, domain.TransactionTypeDeposit, accountID, amount, balancePtr(account.Balance), err)
	}

	txn, err := tx.RecordTransaction(ctx, domain.Transaction{
		TransactionType:   domain.TransactionTypeDeposit,
		Amount:            amount,
		ReceiverAccountID: &accountID,
		Description:       fmt.Sprintf("Deposit to %s", account.AccountNumber),
	})
	if err != nil {
		return OperationResult{}, s.failCashOperation(ctx, domain.TransactionTypeDeposit, accountID, amount, balancePtr(account.Balance), err)
	}

	if err := tx.Commit(); err != nil {
		return OperationResult{}, s.failCashOperation(ctx, domain.TransactionTypeDeposit, accountID, amount, balancePtr(account.Balance), err)
	}

	return OperationResult{
		TransactionID: txn.ID,
		AccountID:     accountID,
		Amount:        amount,
		NewBalance:    updated.Balance,
		Message:       fmt.Sprintf("Successfully deposited %s to account %s", amount.StringFixed(2), account.AccountNumber),
	}, nil
}

// Withdraw debits an account; the funds check uses the same shortfall
// wording as transfers. The transaction record carries a nil receiver.
func (s *TransferService) Withdraw(ctx context.Context, accountID int64, amount decimal.Decimal) (OperationResult, error) {
	logger.Info("transfer service withdrawal request", logger.Fields{
		"accountId": accountID,
		"amount":    amount,
	})

	if amount.LessThanOrEqual(decimal.Zero) {
		return OperationResult{}, fmt.Errorf("withdrawal amount must be greater than zero")
	}

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return OperationResult{}, &domain.UnexpectedFailureError{Op: "withdrawal", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	account, err := tx.GetAccountForUpdate(ctx, accountID)
	if err != nil {
		return OperationResult{}, s.failCashOperation(ctx, domain.TransactionTypeWithdrawal, accountID, amount, nil, err)
	}

	if account.Balance.LessThan(amount) {
		shortfall := amount.Sub(account.Balance)
		fundsErr := &domain.InsufficientFundsError{
			Required:  amount,
			Available: account.Balance,
			Shortfall: shortfall,
		}
		s.writeRecovery(ctx, domain.RecoveryEntry{
			OperationType:          string(domain.TransactionTypeWithdrawal),
			SenderAccountID:        &accountID,
			AttemptedAmount:        amount,
			FailureReason:          fundsErr.Error(),
			SenderBalanceAtFailure: balancePtr(account.Balance),
			AdditionalDetails: map[string]any{
				"sender_account": account.AccountNumber,
				"shortfall":      shortfall.StringFixed(2),
			},
		})
		return OperationResult{}, fundsErr
	}

	updated, err := tx.AdjustBalance(ctx, accountID, amount.Neg(), string(domain.TransactionTypeWithdrawal))
	if err != nil {
		return OperationResult{}, s.failCashOperation(ctx, domain.TransactionTypeWithdrawal, accountID, amount, balancePtr(account.Balance), err)
	}

	txn, err := tx.RecordTransaction(ctx, domain.Transaction{
		TransactionType: domain.TransactionTypeWithdrawal,
		Amount:          amount,
		SenderAccountID: &accountID,
		Description:     fmt.Sprintf("Withdrawal from %s", account.AccountNumber),
	})
	if err != nil {
		return OperationResult{}, s.failCashOperation(ctx, domain.TransactionTypeWithdrawal, accountID, amount, balancePtr(account.Balance), err)
	}

	if err := tx.Commit(); err != nil {
		return OperationResult{}, s.failCashOperation(ctx, domain.TransactionTypeWithdrawal, accountID, amount, balancePtr(account.Balance), err)
	}

	return OperationResult{
		TransactionID: txn.ID,
		AccountID:     accountID,
		Amount:        amount,
		NewBalance:    updated.Balance,
		Message:       fmt.Sprintf("Successfully withdrew %s from account %s", amount.StringFixed(2), account.AccountNumber),
	}, nil
}

func (s *TransferService) failCashOperation(ctx context.Context, opType domain.TransactionType, accountID int64, amount decimal.Decimal, balance *decimal.Decimal, cause error) error {
	entry := domain.RecoveryEntry{
		OperationType:          string(opType),
		AttemptedAmount:        amount,
		FailureReason:          cause.Error(),
		SenderBalanceAtFailure: balance,
	}
	if opType == domain.TransactionTypeDeposit {
		entry.ReceiverAccountID = &accountID
	} else {
		entry.SenderAccountID = &accountID
	}
	if errors.Is(cause, domain.ErrAccountNotFound) {
		entry.FailureReason = fmt.Sprintf("Account %d not found", accountID)
	}
	s.writeRecovery(ctx, entry)

	if errors.Is(cause, domain.ErrAccountNotFound) {
		return domain.ErrAccountNotFound
	}
	var invariantErr *domain.InvariantViolationError
	if errors.As(cause, &invariantErr) {
		return invariantErr
	}
	return &domain.UnexpectedFailureError{Op: string(opType), Err: cause}
}
