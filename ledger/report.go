package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PortfolioValue is an account valuation at current oracle prices.
type PortfolioValue struct {
	Cash  decimal.Decimal
	Stock decimal.Decimal
	Total decimal.Decimal
}

// ProfitLoss measures performance against the cumulative deposit baseline.
// Percent is zero when nothing has been deposited.
type ProfitLoss struct {
	InitialDeposit    decimal.Decimal
	CurrentTotalValue decimal.Decimal
	Amount            decimal.Decimal
	Percent           decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// PortfolioValue values the account at current oracle prices:
// Stock = Σ quantity × price over held symbols, Total = Cash + Stock.
// An oracle failure for a held symbol propagates.
func (l *Ledger) PortfolioValue() (PortfolioValue, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.portfolioValueLocked()
}

// ProfitLoss compares the current total value to everything ever deposited.
// Withdrawals are not added back, so cash taken out shows up as a loss
// relative to the baseline.
func (l *Ledger) ProfitLoss() (ProfitLoss, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	pv, err := l.portfolioValueLocked()
	if err != nil {
		return ProfitLoss{}, err
	}

	amount := pv.Total.Sub(l.deposits)

	var percent decimal.Decimal
	if l.deposits.Sign() > 0 {
		percent = amount.Div(l.deposits).Mul(hundred)
	}

	return ProfitLoss{
		InitialDeposit:    l.deposits,
		CurrentTotalValue: pv.Total,
		Amount:            amount,
		Percent:           percent,
	}, nil
}

func (l *Ledger) portfolioValueLocked() (PortfolioValue, error) {
	var stock decimal.Decimal
	for sym, qty := range l.holdings {
		price, err := l.oracle.PriceOf(sym)
		if err != nil {
			return PortfolioValue{}, fmt.Errorf("value %d %s: %w", qty, sym, err)
		}
		stock = stock.Add(price.Mul(decimal.NewFromInt(qty)))
	}

	return PortfolioValue{
		Cash:  l.cash,
		Stock: stock,
		Total: l.cash.Add(stock),
	}, nil
}
