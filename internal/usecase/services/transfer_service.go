package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/stonebridge-bank/ledger/internal/domain"
	"github.com/stonebridge-bank/ledger/internal/ledger"
	"github.com/stonebridge-bank/ledger/internal/logger"
)

// TransferService orchestrates fund movements as single atomic units of
// work. It holds no state between calls; the ledger store is the only
// source of truth.
type TransferService struct {
	store        ledger.Store
	recoveryRepo ledger.RecoveryRepository
}

func NewTransferService(store ledger.Store, recoveryRepo ledger.RecoveryRepository) *TransferService {
	return &TransferService{store: store, recoveryRepo: recoveryRepo}
}

type TransferResult struct {
	TransactionID     int64
	SenderAccountID   int64
	ReceiverAccountID int64
	Amount            decimal.Decimal
	Message           string
}

type OperationResult struct {
	TransactionID int64
	AccountID     int64
	Amount        decimal.Decimal
	NewBalance    decimal.Decimal
	Message       string
}

// Transfer debits the sender and credits the receiver as one all-or-nothing
// unit. Every failure after the unit is opened leaves exactly one recovery
// entry, committed in its own unit of work before the transfer rolls back.
func (s *TransferService) Transfer(ctx context.Context, senderID, receiverID int64, amount decimal.Decimal) (TransferResult, error) {
	logger.Info("transfer service transfer request", logger.Fields{
		"senderAccountId":   senderID,
		"receiverAccountId": receiverID,
		"amount":            amount,
	})

	if amount.LessThanOrEqual(decimal.Zero) {
		return TransferResult{}, fmt.Errorf("transfer amount must be greater than zero")
	}
	if senderID == receiverID {
		return TransferResult{}, fmt.Errorf("cannot transfer to the same account")
	}

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return TransferResult{}, &domain.UnexpectedFailureError{Op: "transfer", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	sender, receiver, err := s.lockTransferAccounts(ctx, tx, senderID, receiverID, amount)
	if err != nil {
		return TransferResult{}, err
	}

	if sender.Balance.LessThan(amount) {
		shortfall := amount.Sub(sender.Balance)
		fundsErr := &domain.InsufficientFundsError{
			Required:  amount,
			Available: sender.Balance,
			Shortfall: shortfall,
		}
		s.writeRecovery(ctx, domain.RecoveryEntry{
			OperationType:          string(domain.TransactionTypeTransfer),
			SenderAccountID:        &senderID,
			ReceiverAccountID:      &receiverID,
			AttemptedAmount:        amount,
			FailureReason:          fundsErr.Error(),
			SenderBalanceAtFailure: balancePtr(sender.Balance),
			AdditionalDetails: map[string]any{
				"sender_account":   sender.AccountNumber,
				"receiver_account": receiver.AccountNumber,
				"shortfall":        shortfall.StringFixed(2),
			},
		})
		return TransferResult{}, fundsErr
	}

	if _, err := tx.AdjustBalance(ctx, senderID, amount.Neg(), "TRANSFER_DEBIT"); err != nil {
		return TransferResult{}, s.failTransfer(ctx, senderID, receiverID, amount, balancePtr(sender.Balance), err)
	}
	if _, err := tx.AdjustBalance(ctx, receiverID, amount, "TRANSFER_CREDIT"); err != nil {
		return TransferResult{}, s.failTransfer(ctx, senderID, receiverID, amount, balancePtr(sender.Balance), err)
	}

	txn, err := tx.RecordTransaction(ctx, domain.Transaction{
		TransactionType:   domain.TransactionTypeTransfer,
		Amount:            amount,
		SenderAccountID:   &senderID,
		ReceiverAccountID: &receiverID,
		Description:       fmt.Sprintf("Transfer from %s to %s", sender.AccountNumber, receiver.AccountNumber),
	})
	if err != nil {
		return TransferResult{}, s.failTransfer(ctx, senderID, receiverID, amount, balancePtr(sender.Balance), err)
	}

	if err := tx.Commit(); err != nil {
		return TransferResult{}, s.failTransfer(ctx, senderID, receiverID, amount, balancePtr(sender.Balance), err)
	}

	logger.Info("transfer service transfer completed", logger.Fields{
		"transactionId":     txn.ID,
		"senderAccountId":   senderID,
		"receiverAccountId": receiverID,
		"amount":            amount,
	})

	return TransferResult{
		TransactionID:     txn.ID,
		SenderAccountID:   senderID,
		ReceiverAccountID: receiverID,
		Amount:            amount,
		Message: fmt.Sprintf("Successfully transferred %s from account %s to account %s",
			amount.StringFixed(2), sender.AccountNumber, receiver.AccountNumber),
	}, nil
}

// lockTransferAccounts acquires both row locks in ascending account-id
// order — the global rule that keeps opposite-direction transfers deadlock
// free — while still diagnosing a missing sender before a missing receiver.
func (s *TransferService) lockTransferAccounts(ctx context.Context, tx ledger.Tx, senderID, receiverID int64, amount decimal.Decimal) (domain.Account, domain.Account, error) {
	var sender, receiver domain.Account
	var err error

	if senderID < receiverID {
		sender, err = tx.GetAccountForUpdate(ctx, senderID)
		if err != nil {
			return domain.Account{}, domain.Account{}, s.senderLockFailure(ctx, senderID, receiverID, amount, err)
		}
		receiver, err = tx.GetAccountForUpdate(ctx, receiverID)
		if err != nil {
			return domain.Account{}, domain.Account{}, s.receiverLockFailure(ctx, senderID, receiverID, amount, sender, err)
		}
		return sender, receiver, nil
	}

	receiver, err = tx.GetAccountForUpdate(ctx, receiverID)
	if err != nil && !errors.Is(err, domain.ErrAccountNotFound) {
		return domain.Account{}, domain.Account{}, s.failTransfer(ctx, senderID, receiverID, amount, nil, err)
	}
	receiverMissing := errors.Is(err, domain.ErrAccountNotFound)

	sender, err = tx.GetAccountForUpdate(ctx, senderID)
	if err != nil {
		return domain.Account{}, domain.Account{}, s.senderLockFailure(ctx, senderID, receiverID, amount, err)
	}
	if receiverMissing {
		return domain.Account{}, domain.Account{}, s.receiverLockFailure(ctx, senderID, receiverID, amount, sender, domain.ErrAccountNotFound)
	}
	return sender, receiver, nil
}

func (s *TransferService) senderLockFailure(ctx context.Context, senderID, receiverID int64, amount decimal.Decimal, err error) error {
	if errors.Is(err, domain.ErrAccountNotFound) {
		s.writeRecovery(ctx, domain.RecoveryEntry{
			OperationType:     string(domain.TransactionTypeTransfer),
			SenderAccountID:   &senderID,
			ReceiverAccountID: &receiverID,
			AttemptedAmount:   amount,
			FailureReason:     fmt.Sprintf("Sender account %d not found", senderID),
		})
		return domain.ErrSenderNotFound
	}
	return s.failTransfer(ctx, senderID, receiverID, amount, nil, err)
}

func (s *TransferService) receiverLockFailure(ctx context.Context, senderID, receiverID int64, amount decimal.Decimal, sender domain.Account, err error) error {
	if errors.Is(err, domain.ErrAccountNotFound) {
		s.writeRecovery(ctx, domain.RecoveryEntry{
			OperationType:          string(domain.TransactionTypeTransfer),
			SenderAccountID:        &senderID,
			ReceiverAccountID:      &receiverID,
			AttemptedAmount:        amount,
			FailureReason:          fmt.Sprintf("Receiver account %d not found", receiverID),
			SenderBalanceAtFailure: balancePtr(sender.Balance),
			AdditionalDetails: map[string]any{
				"sender_account": sender.AccountNumber,
			},
		})
		return domain.ErrReceiverNotFound
	}
	return s.failTransfer(ctx, senderID, receiverID, amount, balancePtr(sender.Balance), err)
}

// failTransfer records the failure and maps the cause into the typed
// taxonomy. Invariant violations pass through; anything else is wrapped as
// an unexpected failure with its raw diagnostic text preserved.
func (s *TransferService) failTransfer(ctx context.Context, senderID, receiverID int64, amount decimal.Decimal, senderBalance *decimal.Decimal, cause error) error {
	s.writeRecovery(ctx, domain.RecoveryEntry{
		OperationType:          string(domain.TransactionTypeTransfer),
		SenderAccountID:        &senderID,
		ReceiverAccountID:      &receiverID,
		AttemptedAmount:        amount,
		FailureReason:          cause.Error(),
		SenderBalanceAtFailure: senderBalance,
		AdditionalDetails: map[string]any{
			"error_message": cause.Error(),
		},
	})

	var invariantErr *domain.InvariantViolationError
	if errors.As(cause, &invariantErr) {
		return invariantErr
	}
	return &domain.UnexpectedFailureError{Op: "transfer", Err: cause}
}

// writeRecovery commits the failure record in its own unit of work before
// the caller aborts the main one. Under the postgres driver this draws a
// second pooled connection while the engine transaction still holds its
// own, so the pool must keep open-connection headroom above the number of
// concurrent operations. Best effort: a failed recovery write is logged,
// never allowed to mask the original failure.
func (s *TransferService) writeRecovery(ctx context.Context, entry domain.RecoveryEntry) {
	if _, err := s.recoveryRepo.Create(ctx, entry); err != nil {
		logger.Error("transfer service recovery entry write failed", err, logger.Fields{
			"operationType": entry.OperationType,
			"failureReason": entry.FailureReason,
		})
	}
}

func balancePtr(value decimal.Decimal) *decimal.Decimal {
	v := value
	return &v
}
