// Package journal persists an account's audit trail: one Record per applied
// transaction plus point-in-time valuation Snapshots. The ledger keeps its own
// in-memory history; a journal is the durable copy an integrating application
// can attach.
package journal

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record is one applied ledger transaction, flattened for persistence.
// Symbol, Quantity and PricePerShare are zero-valued for cash movements.
type Record struct {
	ID            string
	AccountID     string
	Time          time.Time
	Kind          string
	Symbol        string
	Quantity      int64
	PricePerShare decimal.Decimal
	CashDelta     decimal.Decimal
	BalanceAfter  decimal.Decimal
}

// Snapshot captures an account valuation at a point in time.
type Snapshot struct {
	Time      time.Time
	AccountID string
	Cash      decimal.Decimal
	Stock     decimal.Decimal
	Total     decimal.Decimal
}

type Journal interface {
	RecordTransaction(Record) error
	RecordValuation(Snapshot) error
	Close() error
}
