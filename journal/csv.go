package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

type CSV struct {
	tx, val *csv.Writer
	tf, vf  *os.File
}

func NewCSV(transactionsPath, valuationsPath string) (*CSV, error) {
	tf, err := os.Create(transactionsPath)
	if err != nil {
		return nil, err
	}
	vf, err := os.Create(valuationsPath)
	if err != nil {
		return nil, err
	}

	tw := csv.NewWriter(tf)
	vw := csv.NewWriter(vf)

	if err := tw.Write([]string{"tx_id", "account_id", "time", "kind", "symbol", "quantity", "price_per_share", "cash_delta", "balance_after"}); err != nil {
		return nil, err
	}
	if err := vw.Write([]string{"time", "account_id", "cash", "stock", "total"}); err != nil {
		return nil, err
	}

	tw.Flush()
	if err := tw.Error(); err != nil {
		return nil, err
	}
	vw.Flush()
	if err := vw.Error(); err != nil {
		return nil, err
	}

	return &CSV{tw, vw, tf, vf}, nil
}

func (j *CSV) RecordTransaction(r Record) error {
	err := j.tx.Write([]string{
		r.ID,
		r.AccountID,
		r.Time.Format(time.RFC3339),
		r.Kind,
		r.Symbol,
		strconv.FormatInt(r.Quantity, 10),
		r.PricePerShare.String(),
		r.CashDelta.String(),
		r.BalanceAfter.String(),
	})
	if err != nil {
		return err
	}

	j.tx.Flush()
	return j.tx.Error()
}

func (j *CSV) RecordValuation(s Snapshot) error {
	err := j.val.Write([]string{
		s.Time.Format(time.RFC3339),
		s.AccountID,
		s.Cash.String(),
		s.Stock.String(),
		s.Total.String(),
	})
	if err != nil {
		return err
	}

	j.val.Flush()
	return j.val.Error()
}

func (j *CSV) Close() error {
	j.tx.Flush()
	if err := j.tx.Error(); err != nil {
		return err
	}
	j.val.Flush()
	if err := j.val.Error(); err != nil {
		return err
	}

	if err := j.tf.Close(); err != nil {
		return err
	}
	if err := j.vf.Close(); err != nil {
		return err
	}
	return nil
}
