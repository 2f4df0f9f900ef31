package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind classifies a transaction record.
type Kind string

const (
	KindDeposit  Kind = "DEPOSIT"
	KindWithdraw Kind = "WITHDRAW"
	KindBuy      Kind = "BUY"
	KindSell     Kind = "SELL"
)

// TransactionRecord is one state-changing event in an account's history.
// Records are immutable once appended; the history is never reordered.
//
// Symbol, Quantity and PricePerShare are only set for BUY and SELL records.
// CashDelta is the signed amount the event applied to the cash balance:
// positive for deposits and sale proceeds, negative for withdrawals and
// purchase costs. BalanceAfter is the cash balance once the delta applied.
type TransactionRecord struct {
	ID            string
	Timestamp     time.Time
	Kind          Kind
	Symbol        string
	Quantity      int64
	PricePerShare decimal.Decimal
	CashDelta     decimal.Decimal
	BalanceAfter  decimal.Decimal
}
