package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordTransaction(r Record) error {
	_, err := j.db.Exec(`
		INSERT INTO transactions
		(tx_id, account_id, time, kind, symbol, quantity, price_per_share, cash_delta, balance_after)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.AccountID, r.Time, r.Kind, r.Symbol, r.Quantity,
		r.PricePerShare.String(), r.CashDelta.String(), r.BalanceAfter.String(),
	)
	return err
}

func (j *SQLite) RecordValuation(s Snapshot) error {
	_, err := j.db.Exec(`
		INSERT INTO valuations
		(time, account_id, cash, stock, total)
		VALUES (?, ?, ?, ?, ?)`,
		s.Time, s.AccountID, s.Cash.String(), s.Stock.String(), s.Total.String(),
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
