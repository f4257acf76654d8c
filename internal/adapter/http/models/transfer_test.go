package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestTransferRequestValidate(t *testing.T) {
	cases := []struct {
		name    string
		request TransferRequest
		wantErr bool
	}{
		{
			name:    "valid",
			request: TransferRequest{SenderAccountID: 1, ReceiverAccountID: 2, Amount: decimal.RequireFromString("10.00")},
		},
		{
			name:    "same account",
			request: TransferRequest{SenderAccountID: 1, ReceiverAccountID: 1, Amount: decimal.RequireFromString("10.00")},
			wantErr: true,
		},
		{
			name:    "zero amount",
			request: TransferRequest{SenderAccountID: 1, ReceiverAccountID: 2},
			wantErr: true,
		},
		{
			name:    "negative amount",
			request: TransferRequest{SenderAccountID: 1, ReceiverAccountID: 2, Amount: decimal.RequireFromString("-1")},
			wantErr: true,
		},
		{
			name:    "missing sender",
			request: TransferRequest{ReceiverAccountID: 2, Amount: decimal.RequireFromString("10.00")},
			wantErr: true,
		},
		{
			name:    "missing receiver",
			request: TransferRequest{SenderAccountID: 1, Amount: decimal.RequireFromString("10.00")},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.request.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestCashOperationRequestValidate(t *testing.T) {
	cases := []struct {
		name    string
		request CashOperationRequest
		wantErr bool
	}{
		{
			name:    "valid",
			request: CashOperationRequest{AccountID: 1, Amount: decimal.RequireFromString("10.00")},
		},
		{
			name:    "missing account",
			request: CashOperationRequest{Amount: decimal.RequireFromString("10.00")},
			wantErr: true,
		},
		{
			name:    "zero amount",
			request: CashOperationRequest{AccountID: 1},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.request.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}
