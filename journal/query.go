package journal

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// GetTransaction returns a single transaction record by ULID.
func (j *SQLite) GetTransaction(txID string) (Record, error) {
	row := j.db.QueryRow(`
		SELECT tx_id, account_id, time, kind, symbol, quantity, price_per_share, cash_delta, balance_after
		FROM transactions
		WHERE tx_id = ?`, txID)

	rec, err := scanRecord(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return Record{}, fmt.Errorf("transaction %q not found", txID)
		}
		return Record{}, err
	}
	return rec, nil
}

// ListTransactionsByAccount returns all transactions for an account in
// chronological order (ULIDs sort by creation time, so tx_id order is
// insertion order).
func (j *SQLite) ListTransactionsByAccount(accountID string) ([]Record, error) {
	rows, err := j.db.Query(`
		SELECT tx_id, account_id, time, kind, symbol, quantity, price_per_share, cash_delta, balance_after
		FROM transactions
		WHERE account_id = ?
		ORDER BY tx_id ASC`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListValuationsBetween returns valuation snapshots whose time is within
// [start, end).
func (j *SQLite) ListValuationsBetween(start, end time.Time) ([]Snapshot, error) {
	rows, err := j.db.Query(`
		SELECT time, account_id, cash, stock, total
		FROM valuations
		WHERE time >= ? AND time < ?
		ORDER BY time ASC`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var (
			snap               Snapshot
			cash, stock, total string
		)
		if err := rows.Scan(&snap.Time, &snap.AccountID, &cash, &stock, &total); err != nil {
			return nil, err
		}
		if snap.Cash, err = decimal.NewFromString(cash); err != nil {
			return nil, fmt.Errorf("bad cash value %q: %w", cash, err)
		}
		if snap.Stock, err = decimal.NewFromString(stock); err != nil {
			return nil, fmt.Errorf("bad stock value %q: %w", stock, err)
		}
		if snap.Total, err = decimal.NewFromString(total); err != nil {
			return nil, fmt.Errorf("bad total value %q: %w", total, err)
		}
		out = append(out, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanRecord(scan func(...any) error) (Record, error) {
	var (
		rec                 Record
		price, delta, after string
	)
	err := scan(
		&rec.ID,
		&rec.AccountID,
		&rec.Time,
		&rec.Kind,
		&rec.Symbol,
		&rec.Quantity,
		&price,
		&delta,
		&after,
	)
	if err != nil {
		return Record{}, err
	}

	if rec.PricePerShare, err = decimal.NewFromString(price); err != nil {
		return Record{}, fmt.Errorf("bad price value %q: %w", price, err)
	}
	if rec.CashDelta, err = decimal.NewFromString(delta); err != nil {
		return Record{}, fmt.Errorf("bad cash delta %q: %w", delta, err)
	}
	if rec.BalanceAfter, err = decimal.NewFromString(after); err != nil {
		return Record{}, fmt.Errorf("bad balance value %q: %w", after, err)
	}
	return rec, nil
}
