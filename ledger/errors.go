package ledger

import "errors"

var (
	// ErrInvalidAmount rejects non-positive amounts and quantities.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInsufficientFunds rejects withdrawals and purchases exceeding cash.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInsufficientShares rejects sales exceeding the held quantity.
	ErrInsufficientShares = errors.New("insufficient shares")
)
