package pricing

import (
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

// ErrUnknownSymbol is returned by strict oracles for symbols they cannot price.
var ErrUnknownSymbol = errors.New("unknown symbol")

// Oracle supplies the current market price for a symbol. Lookups are
// synchronous and side-effect free; the ledger treats the oracle as an
// external collaborator so a live market-data source can be substituted
// without touching accounting logic.
type Oracle interface {
	PriceOf(symbol string) (decimal.Decimal, error)
}

// UnknownSymbolPolicy controls how a Static oracle handles symbols that are
// missing from its table. The two behaviors both exist in the wild: strict
// feeds refuse to quote, lenient stubs quote a flat default.
type UnknownSymbolPolicy int

const (
	// StrictUnknown rejects lookups for unlisted symbols with ErrUnknownSymbol.
	StrictUnknown UnknownSymbolPolicy = iota
	// DefaultPriceUnknown silently quotes the fallback price for unlisted symbols.
	DefaultPriceUnknown
)

func (p UnknownSymbolPolicy) String() string {
	switch p {
	case StrictUnknown:
		return "strict"
	case DefaultPriceUnknown:
		return "default"
	default:
		return "unknown"
	}
}

// ParsePolicy parses a policy name as it appears in config files.
func ParsePolicy(s string) (UnknownSymbolPolicy, error) {
	switch s {
	case "strict":
		return StrictUnknown, nil
	case "default":
		return DefaultPriceUnknown, nil
	default:
		return 0, fmt.Errorf("unknown pricing policy: %q", s)
	}
}

// DefaultFallbackPrice is the flat quote a DefaultPriceUnknown oracle returns
// for symbols missing from its table.
var DefaultFallbackPrice = decimal.RequireFromString("100.00")

// Static is a fixed pricing table, safe for concurrent use. Prices can be
// re-pointed mid-session with Set, which is how tests and scripted runs
// simulate market movement.
type Static struct {
	mu       sync.RWMutex
	prices   map[string]decimal.Decimal
	policy   UnknownSymbolPolicy
	fallback decimal.Decimal
}

// NewStatic returns a Static oracle seeded with the reference table:
// AAPL 170.50, TSLA 750.00, GOOGL 2500.25.
func NewStatic(policy UnknownSymbolPolicy) *Static {
	return StaticFromTable(map[string]decimal.Decimal{
		"AAPL":  decimal.RequireFromString("170.50"),
		"TSLA":  decimal.RequireFromString("750.00"),
		"GOOGL": decimal.RequireFromString("2500.25"),
	}, policy)
}

// StaticFromTable returns a Static oracle over the given table. The table is
// copied; the caller keeps ownership of its map.
func StaticFromTable(table map[string]decimal.Decimal, policy UnknownSymbolPolicy) *Static {
	prices := make(map[string]decimal.Decimal, len(table))
	for sym, price := range table {
		prices[sym] = price
	}
	return &Static{
		prices:   prices,
		policy:   policy,
		fallback: DefaultFallbackPrice,
	}
}

// Set adds or re-prices a symbol.
func (s *Static) Set(symbol string, price decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prices[symbol] = price
}

// SetFallback replaces the price quoted for unlisted symbols under
// DefaultPriceUnknown.
func (s *Static) SetFallback(price decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fallback = price
}

func (s *Static) PriceOf(symbol string) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if price, ok := s.prices[symbol]; ok {
		return price, nil
	}
	if s.policy == DefaultPriceUnknown {
		return s.fallback, nil
	}
	return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrUnknownSymbol, symbol)
}
