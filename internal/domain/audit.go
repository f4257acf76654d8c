package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditEntry is written by the store's balance mutation path, exactly once
// per adjustment that changed the stored value. Application code never
// creates these directly.
type AuditEntry struct {
	ID            int64
	AccountID     int64
	OldBalance    decimal.Decimal
	NewBalance    decimal.Decimal
	ChangedAt     time.Time
	OperationType string
}
