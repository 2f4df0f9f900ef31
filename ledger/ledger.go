// Package ledger implements a single trading account: cash deposits and
// withdrawals, share purchases and sales at oracle-quoted prices, and an
// append-only transaction history. Every operation either fully applies and
// appends exactly one record, or fails validation and leaves the account
// untouched.
package ledger

import (
	"fmt"
	"sync"
	"time"

	"github.com/Shreya-kudale-19/crewai-trading-account-simulator/journal"
	"github.com/Shreya-kudale-19/crewai-trading-account-simulator/pkg/id"
	"github.com/Shreya-kudale-19/crewai-trading-account-simulator/pricing"
	"github.com/shopspring/decimal"
)

// Ledger owns all state for one account. A single mutex serializes mutating
// operations so balance checks and updates cannot interleave; reads never
// observe a partially applied mutation.
type Ledger struct {
	mu       sync.Mutex
	id       string
	cash     decimal.Decimal
	holdings map[string]int64
	history  []TransactionRecord
	deposits decimal.Decimal // cumulative, P/L baseline
	oracle   pricing.Oracle
	journal  journal.Journal // optional audit sink
}

// New creates an empty account: zero balance, no holdings, no history.
func New(accountID string, oracle pricing.Oracle) *Ledger {
	return &Ledger{
		id:       accountID,
		holdings: make(map[string]int64),
		oracle:   oracle,
	}
}

// SetJournal attaches an optional audit journal. Every successful mutating
// operation then emits exactly one journal record after its state change.
// The in-memory history remains the source of truth; a journal write failure
// is reported but does not roll the operation back.
func (l *Ledger) SetJournal(j journal.Journal) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.journal = j
}

// Deposit credits cash to the account. The amount also grows the cumulative
// deposit total used as the profit/loss baseline.
func (l *Ledger) Deposit(amount decimal.Decimal) (TransactionRecord, error) {
	if amount.Sign() <= 0 {
		return TransactionRecord{}, fmt.Errorf("deposit %s: %w", amount, ErrInvalidAmount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.cash = l.cash.Add(amount)
	l.deposits = l.deposits.Add(amount)

	rec := l.appendLocked(KindDeposit, "", 0, decimal.Decimal{}, amount)
	return rec, l.recordLocked(rec)
}

// Withdraw debits cash from the account. Cumulative deposits are unaffected,
// so a withdrawal shows up as negative profit/loss rather than a reversed
// deposit.
func (l *Ledger) Withdraw(amount decimal.Decimal) (TransactionRecord, error) {
	if amount.Sign() <= 0 {
		return TransactionRecord{}, fmt.Errorf("withdraw %s: %w", amount, ErrInvalidAmount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cash.LessThan(amount) {
		return TransactionRecord{}, fmt.Errorf(
			"withdraw %s: available %s: %w", amount, l.cash, ErrInsufficientFunds)
	}

	l.cash = l.cash.Sub(amount)

	rec := l.appendLocked(KindWithdraw, "", 0, decimal.Decimal{}, amount.Neg())
	return rec, l.recordLocked(rec)
}

// BuyShares purchases quantity shares of symbol at the oracle's current
// price. Oracle failures (unknown symbol under a strict oracle) propagate
// with the account unchanged.
func (l *Ledger) BuyShares(symbol string, quantity int64) (TransactionRecord, error) {
	if quantity <= 0 {
		return TransactionRecord{}, fmt.Errorf("buy %d %s: %w", quantity, symbol, ErrInvalidAmount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	price, err := l.oracle.PriceOf(symbol)
	if err != nil {
		return TransactionRecord{}, fmt.Errorf("buy %d %s: %w", quantity, symbol, err)
	}

	cost := price.Mul(decimal.NewFromInt(quantity))
	if l.cash.LessThan(cost) {
		return TransactionRecord{}, fmt.Errorf(
			"buy %d %s at %s: cost %s, available %s: %w",
			quantity, symbol, price, cost, l.cash, ErrInsufficientFunds)
	}

	l.cash = l.cash.Sub(cost)
	l.holdings[symbol] += quantity

	rec := l.appendLocked(KindBuy, symbol, quantity, price, cost.Neg())
	return rec, l.recordLocked(rec)
}

// SellShares sells quantity shares of symbol at the oracle's current price.
// A position sold down to zero is removed from the holdings map entirely.
func (l *Ledger) SellShares(symbol string, quantity int64) (TransactionRecord, error) {
	if quantity <= 0 {
		return TransactionRecord{}, fmt.Errorf("sell %d %s: %w", quantity, symbol, ErrInvalidAmount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	held := l.holdings[symbol]
	if held < quantity {
		return TransactionRecord{}, fmt.Errorf(
			"sell %d %s: held %d: %w", quantity, symbol, held, ErrInsufficientShares)
	}

	price, err := l.oracle.PriceOf(symbol)
	if err != nil {
		return TransactionRecord{}, fmt.Errorf("sell %d %s: %w", quantity, symbol, err)
	}

	proceeds := price.Mul(decimal.NewFromInt(quantity))

	l.cash = l.cash.Add(proceeds)
	l.holdings[symbol] -= quantity
	if l.holdings[symbol] == 0 {
		delete(l.holdings, symbol)
	}

	rec := l.appendLocked(KindSell, symbol, quantity, price, proceeds)
	return rec, l.recordLocked(rec)
}

// ID returns the account identifier.
func (l *Ledger) ID() string { return l.id }

// CashBalance returns the current cash balance.
func (l *Ledger) CashBalance() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cash
}

// CumulativeDeposits returns the running total of all deposits ever applied.
func (l *Ledger) CumulativeDeposits() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.deposits
}

// Holdings returns a snapshot of current positions. The returned map is a
// copy; mutating it cannot corrupt the account. Only symbols with a positive
// quantity appear.
func (l *Ledger) Holdings() map[string]int64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make(map[string]int64, len(l.holdings))
	for sym, qty := range l.holdings {
		out[sym] = qty
	}
	return out
}

// TransactionHistory returns the full chronological record list as a copy.
func (l *Ledger) TransactionHistory() []TransactionRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]TransactionRecord, len(l.history))
	copy(out, l.history)
	return out
}

func (l *Ledger) appendLocked(kind Kind, symbol string, quantity int64, price, delta decimal.Decimal) TransactionRecord {
	rec := TransactionRecord{
		ID:            id.New(),
		Timestamp:     time.Now().UTC(),
		Kind:          kind,
		Symbol:        symbol,
		Quantity:      quantity,
		PricePerShare: price,
		CashDelta:     delta,
		BalanceAfter:  l.cash,
	}
	l.history = append(l.history, rec)
	return rec
}

func (l *Ledger) recordLocked(rec TransactionRecord) error {
	if l.journal == nil {
		return nil
	}

	err := l.journal.RecordTransaction(journal.Record{
		ID:            rec.ID,
		AccountID:     l.id,
		Time:          rec.Timestamp,
		Kind:          string(rec.Kind),
		Symbol:        rec.Symbol,
		Quantity:      rec.Quantity,
		PricePerShare: rec.PricePerShare,
		CashDelta:     rec.CashDelta,
		BalanceAfter:  rec.BalanceAfter,
	})
	if err != nil {
		return fmt.Errorf("journal transaction %s: %w", rec.ID, err)
	}
	return nil
}
