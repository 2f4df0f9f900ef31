package ledger

import (
	"testing"

	"github.com/Shreya-kudale-19/crewai-trading-account-simulator/journal"
	"github.com/Shreya-kudale-19/crewai-trading-account-simulator/pricing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testJournal struct {
	records   []journal.Record
	snapshots []journal.Snapshot
	closed    bool
}

func (j *testJournal) RecordTransaction(rec journal.Record) error {
	j.records = append(j.records, rec)
	return nil
}

func (j *testJournal) RecordValuation(snap journal.Snapshot) error {
	j.snapshots = append(j.snapshots, snap)
	return nil
}

func (j *testJournal) Close() error {
	j.closed = true
	return nil
}

func newTestLedger(t *testing.T) (*Ledger, *pricing.Static) {
	t.Helper()
	oracle := pricing.NewStatic(pricing.StrictUnknown)
	return New("acct-1", oracle), oracle
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	return decimal.RequireFromString(s)
}

func assertDecimalEqual(t *testing.T, want, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, want.Equal(got), "want %s got %s %v", want, got, msgAndArgs)
}

func TestNewLedgerEmpty(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t)

	assert.Equal(t, "acct-1", l.ID())
	assertDecimalEqual(t, decimal.Zero, l.CashBalance())
	assertDecimalEqual(t, decimal.Zero, l.CumulativeDeposits())
	assert.Empty(t, l.Holdings())
	assert.Empty(t, l.TransactionHistory())
}

func TestDeposit(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t)

	rec, err := l.Deposit(dec(t, "1000.50"))
	require.NoError(t, err)

	assertDecimalEqual(t, dec(t, "1000.50"), l.CashBalance())
	assertDecimalEqual(t, dec(t, "1000.50"), l.CumulativeDeposits())

	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, KindDeposit, rec.Kind)
	assert.Empty(t, rec.Symbol)
	assert.Zero(t, rec.Quantity)
	assertDecimalEqual(t, dec(t, "1000.50"), rec.CashDelta)
	assertDecimalEqual(t, dec(t, "1000.50"), rec.BalanceAfter)

	history := l.TransactionHistory()
	require.Len(t, history, 1)
	assert.Equal(t, rec, history[0])
}

func TestDepositInvalidAmount(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t)

	for _, amount := range []string{"0", "-100"} {
		_, err := l.Deposit(dec(t, amount))
		assert.ErrorIs(t, err, ErrInvalidAmount, "amount %s", amount)
	}

	assertDecimalEqual(t, decimal.Zero, l.CashBalance())
	assertDecimalEqual(t, decimal.Zero, l.CumulativeDeposits())
	assert.Empty(t, l.TransactionHistory())
}

func TestWithdraw(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t)

	_, err := l.Deposit(dec(t, "1000"))
	require.NoError(t, err)

	rec, err := l.Withdraw(dec(t, "500"))
	require.NoError(t, err)

	assertDecimalEqual(t, dec(t, "500"), l.CashBalance())
	assert.Equal(t, KindWithdraw, rec.Kind)
	assertDecimalEqual(t, dec(t, "-500"), rec.CashDelta)
	assertDecimalEqual(t, dec(t, "500"), rec.BalanceAfter)
}

func TestWithdrawInsufficientFunds(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t)

	_, err := l.Deposit(dec(t, "100"))
	require.NoError(t, err)

	_, err = l.Withdraw(dec(t, "100.01"))
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	assertDecimalEqual(t, dec(t, "100"), l.CashBalance())
	assert.Len(t, l.TransactionHistory(), 1)
}

func TestWithdrawInvalidAmount(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t)

	_, err := l.Withdraw(dec(t, "-10"))
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestDepositThenWithdrawRestoresBalance(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t)

	_, err := l.Deposit(dec(t, "250"))
	require.NoError(t, err)
	before := l.CashBalance()

	_, err = l.Deposit(dec(t, "75.25"))
	require.NoError(t, err)
	_, err = l.Withdraw(dec(t, "75.25"))
	require.NoError(t, err)

	// Balance restored, but deposits are not reversed by withdrawals.
	assertDecimalEqual(t, before, l.CashBalance())
	assertDecimalEqual(t, dec(t, "325.25"), l.CumulativeDeposits())
}

func TestBuyShares(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t)

	_, err := l.Deposit(dec(t, "10000"))
	require.NoError(t, err)

	rec, err := l.BuyShares("AAPL", 10)
	require.NoError(t, err)

	// 10 x 170.50 = 1705.00
	assertDecimalEqual(t, dec(t, "8295.00"), l.CashBalance())
	assert.Equal(t, map[string]int64{"AAPL": 10}, l.Holdings())

	assert.Equal(t, KindBuy, rec.Kind)
	assert.Equal(t, "AAPL", rec.Symbol)
	assert.Equal(t, int64(10), rec.Quantity)
	assertDecimalEqual(t, dec(t, "170.50"), rec.PricePerShare)
	assertDecimalEqual(t, dec(t, "-1705.00"), rec.CashDelta)
}

func TestBuySharesAccumulatesPosition(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t)

	_, err := l.Deposit(dec(t, "10000"))
	require.NoError(t, err)

	_, err = l.BuyShares("AAPL", 10)
	require.NoError(t, err)
	_, err = l.BuyShares("AAPL", 5)
	require.NoError(t, err)

	assert.Equal(t, map[string]int64{"AAPL": 15}, l.Holdings())
}

func TestBuySharesInsufficientFunds(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t)

	_, err := l.Deposit(dec(t, "100.00"))
	require.NoError(t, err)

	_, err = l.BuyShares("GOOGL", 1) // costs 2500.25
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	assertDecimalEqual(t, dec(t, "100.00"), l.CashBalance())
	assert.Empty(t, l.Holdings())
	assert.Len(t, l.TransactionHistory(), 1)
}

func TestBuySharesInvalidQuantity(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t)

	for _, qty := range []int64{0, -3} {
		_, err := l.BuyShares("AAPL", qty)
		assert.ErrorIs(t, err, ErrInvalidAmount, "quantity %d", qty)
	}
}

func TestBuySharesUnknownSymbolStrict(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t)

	_, err := l.Deposit(dec(t, "10000"))
	require.NoError(t, err)

	_, err = l.BuyShares("MSFT", 1)
	assert.ErrorIs(t, err, pricing.ErrUnknownSymbol)

	assertDecimalEqual(t, dec(t, "10000"), l.CashBalance())
	assert.Empty(t, l.Holdings())
	assert.Len(t, l.TransactionHistory(), 1)
}

func TestBuySharesUnknownSymbolDefaultPolicy(t *testing.T) {
	t.Parallel()

	l := New("acct-1", pricing.NewStatic(pricing.DefaultPriceUnknown))

	_, err := l.Deposit(dec(t, "1000"))
	require.NoError(t, err)

	rec, err := l.BuyShares("MSFT", 5)
	require.NoError(t, err)

	// Lenient oracle fills unlisted symbols at 100.00.
	assertDecimalEqual(t, dec(t, "100.00"), rec.PricePerShare)
	assertDecimalEqual(t, dec(t, "500.00"), l.CashBalance())
	assert.Equal(t, map[string]int64{"MSFT": 5}, l.Holdings())
}

func TestSellShares(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t)

	_, err := l.Deposit(dec(t, "10000"))
	require.NoError(t, err)
	_, err = l.BuyShares("AAPL", 10)
	require.NoError(t, err)

	rec, err := l.SellShares("AAPL", 4)
	require.NoError(t, err)

	// 4 x 170.50 = 682.00 proceeds on a 8295.00 balance
	assertDecimalEqual(t, dec(t, "8977.00"), l.CashBalance())
	assert.Equal(t, map[string]int64{"AAPL": 6}, l.Holdings())

	assert.Equal(t, KindSell, rec.Kind)
	assertDecimalEqual(t, dec(t, "682.00"), rec.CashDelta)
	assertDecimalEqual(t, dec(t, "170.50"), rec.PricePerShare)
}

func TestSellSharesExhaustsPosition(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t)

	_, err := l.Deposit(dec(t, "10000"))
	require.NoError(t, err)
	_, err = l.BuyShares("AAPL", 10)
	require.NoError(t, err)

	_, err = l.SellShares("AAPL", 10)
	require.NoError(t, err)

	// A position sold to zero disappears from the holdings map.
	_, held := l.Holdings()["AAPL"]
	assert.False(t, held)
	assert.Empty(t, l.Holdings())
}

func TestSellSharesInsufficientShares(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t)

	_, err := l.SellShares("TSLA", 1)
	assert.ErrorIs(t, err, ErrInsufficientShares)

	assertDecimalEqual(t, decimal.Zero, l.CashBalance())
	assert.Empty(t, l.TransactionHistory())
}

func TestSellSharesMoreThanHeld(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t)

	_, err := l.Deposit(dec(t, "10000"))
	require.NoError(t, err)
	_, err = l.BuyShares("AAPL", 10)
	require.NoError(t, err)

	_, err = l.SellShares("AAPL", 11)
	assert.ErrorIs(t, err, ErrInsufficientShares)

	assert.Equal(t, map[string]int64{"AAPL": 10}, l.Holdings())
	assertDecimalEqual(t, dec(t, "8295.00"), l.CashBalance())
}

func TestSellSharesInvalidQuantity(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t)

	_, err := l.SellShares("AAPL", 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestBuyThenSellRoundTrip(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t)

	_, err := l.Deposit(dec(t, "10000"))
	require.NoError(t, err)

	before := l.CashBalance()

	_, err = l.BuyShares("TSLA", 3)
	require.NoError(t, err)
	_, err = l.SellShares("TSLA", 3)
	require.NoError(t, err)

	// At an unchanged price the round trip restores cash and holdings exactly.
	assertDecimalEqual(t, before, l.CashBalance())
	assert.Empty(t, l.Holdings())
}

func TestHoldingsSnapshotIsCopy(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t)

	_, err := l.Deposit(dec(t, "10000"))
	require.NoError(t, err)
	_, err = l.BuyShares("AAPL", 10)
	require.NoError(t, err)

	snap := l.Holdings()
	snap["AAPL"] = 999999
	snap["FAKE"] = 1

	assert.Equal(t, map[string]int64{"AAPL": 10}, l.Holdings())
}

func TestTransactionHistoryIsCopy(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t)

	_, err := l.Deposit(dec(t, "10000"))
	require.NoError(t, err)

	history := l.TransactionHistory()
	history[0].Kind = KindSell
	history[0].CashDelta = dec(t, "-999999")

	fresh := l.TransactionHistory()
	assert.Equal(t, KindDeposit, fresh[0].Kind)
	assertDecimalEqual(t, dec(t, "10000"), fresh[0].CashDelta)
}

func TestHistoryChronological(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t)

	_, err := l.Deposit(dec(t, "10000"))
	require.NoError(t, err)
	_, err = l.BuyShares("AAPL", 10)
	require.NoError(t, err)
	_, err = l.SellShares("AAPL", 4)
	require.NoError(t, err)
	_, err = l.Withdraw(dec(t, "100"))
	require.NoError(t, err)

	history := l.TransactionHistory()
	require.Len(t, history, 4)

	wantKinds := []Kind{KindDeposit, KindBuy, KindSell, KindWithdraw}
	for i, rec := range history {
		assert.Equal(t, wantKinds[i], rec.Kind, "record %d", i)
		if i > 0 {
			// ULIDs are time-sortable, so IDs agree with insertion order.
			assert.Less(t, history[i-1].ID, rec.ID)
		}
	}
}

func TestJournalReceivesOneRecordPerOperation(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t)
	j := &testJournal{}
	l.SetJournal(j)

	_, err := l.Deposit(dec(t, "10000"))
	require.NoError(t, err)
	_, err = l.BuyShares("AAPL", 10)
	require.NoError(t, err)

	// Rejected operations emit nothing.
	_, err = l.Withdraw(dec(t, "999999"))
	require.Error(t, err)
	_, err = l.SellShares("GOOGL", 1)
	require.Error(t, err)

	_, err = l.SellShares("AAPL", 4)
	require.NoError(t, err)

	require.Len(t, j.records, 3)
	assert.Equal(t, "DEPOSIT", j.records[0].Kind)
	assert.Equal(t, "BUY", j.records[1].Kind)
	assert.Equal(t, "SELL", j.records[2].Kind)
	for _, rec := range j.records {
		assert.Equal(t, "acct-1", rec.AccountID)
	}
	assertDecimalEqual(t, dec(t, "8977.00"), j.records[2].BalanceAfter)
}

func TestCashNeverNegative(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t)

	ops := []func() error{
		func() error { _, err := l.Withdraw(dec(t, "50")); return err },
		func() error { _, err := l.Deposit(dec(t, "1000")); return err },
		func() error { _, err := l.BuyShares("TSLA", 2); return err },
		func() error { _, err := l.BuyShares("TSLA", 1); return err },
		func() error { _, err := l.SellShares("TSLA", 1); return err },
		func() error { _, err := l.Withdraw(dec(t, "2000")); return err },
		func() error { _, err := l.Withdraw(dec(t, "100")); return err },
	}

	for i, op := range ops {
		_ = op() // failures are expected; state must stay valid regardless
		assert.False(t, l.CashBalance().IsNegative(), "negative balance after op %d", i)
		for sym, qty := range l.Holdings() {
			assert.Positive(t, qty, "non-positive holding %s after op %d", sym, i)
		}
	}
}
