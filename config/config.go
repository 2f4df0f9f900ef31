package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/Shreya-kudale-19/crewai-trading-account-simulator/pricing"
	"gopkg.in/yaml.v3"
)

// Config represents a complete simulated trading session.
type Config struct {
	Account AccountConfig `json:"account" yaml:"account"`
	Pricing PricingConfig `json:"pricing" yaml:"pricing"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
	Session []Step        `json:"session,omitempty" yaml:"session,omitempty"`
}

// AccountConfig contains account initialization parameters. A positive
// OpeningDeposit is applied as a regular deposit before the session runs.
type AccountConfig struct {
	ID             string  `json:"id" yaml:"id"`
	OpeningDeposit float64 `json:"opening_deposit" yaml:"opening_deposit"`
}

// PricingConfig configures the static price oracle. An empty table means the
// built-in reference table (AAPL, TSLA, GOOGL). Policy picks the
// unknown-symbol behavior: "strict" refuses to quote, "default" quotes
// DefaultPrice.
type PricingConfig struct {
	Policy       string             `json:"policy" yaml:"policy"`
	DefaultPrice float64            `json:"default_price,omitempty" yaml:"default_price,omitempty"`
	Table        map[string]float64 `json:"table,omitempty" yaml:"table,omitempty"`
}

// JournalConfig contains audit journal parameters.
type JournalConfig struct {
	Type             string `json:"type" yaml:"type"` // "csv", "sqlite" or "none"
	TransactionsFile string `json:"transactions_file,omitempty" yaml:"transactions_file,omitempty"`
	ValuationsFile   string `json:"valuations_file,omitempty" yaml:"valuations_file,omitempty"`
	DBPath           string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// Step is one scripted account operation.
type Step struct {
	Op       string  `json:"op" yaml:"op"` // deposit, withdraw, buy, sell, report
	Amount   float64 `json:"amount,omitempty" yaml:"amount,omitempty"`
	Symbol   string  `json:"symbol,omitempty" yaml:"symbol,omitempty"`
	Quantity int64   `json:"quantity,omitempty" yaml:"quantity,omitempty"`
}

// LoadFromFile loads configuration from a file (YAML or JSON).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (format chosen by extension).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Account.ID == "" {
		return fmt.Errorf("account.id is required")
	}
	if c.Account.OpeningDeposit < 0 {
		return fmt.Errorf("account.opening_deposit must not be negative")
	}

	if _, err := pricing.ParsePolicy(c.Pricing.Policy); err != nil {
		return fmt.Errorf("pricing.policy must be 'strict' or 'default'")
	}
	if c.Pricing.DefaultPrice < 0 {
		return fmt.Errorf("pricing.default_price must not be negative")
	}
	for sym, price := range c.Pricing.Table {
		if price <= 0 {
			return fmt.Errorf("pricing.table[%s] must be positive", sym)
		}
	}

	switch c.Journal.Type {
	case "csv":
		if c.Journal.TransactionsFile == "" || c.Journal.ValuationsFile == "" {
			return fmt.Errorf("journal transactions_file and valuations_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	case "none":
	default:
		return fmt.Errorf("journal.type must be 'csv', 'sqlite' or 'none'")
	}

	for i, step := range c.Session {
		if err := step.validate(); err != nil {
			return fmt.Errorf("session step %d: %w", i, err)
		}
	}

	return nil
}

func (s Step) validate() error {
	switch s.Op {
	case "deposit", "withdraw":
		if s.Amount <= 0 {
			return fmt.Errorf("%s amount must be positive", s.Op)
		}
	case "buy", "sell":
		if s.Symbol == "" {
			return fmt.Errorf("%s requires a symbol", s.Op)
		}
		if s.Quantity <= 0 {
			return fmt.Errorf("%s quantity must be positive", s.Op)
		}
	case "report":
	default:
		return fmt.Errorf("unknown op: %q", s.Op)
	}
	return nil
}

// Default returns a configuration with sensible defaults: a strict oracle
// over the reference table and a short demo session.
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			ID:             "ACCT-001",
			OpeningDeposit: 10000,
		},
		Pricing: PricingConfig{
			Policy: "strict",
		},
		Journal: JournalConfig{
			Type:             "csv",
			TransactionsFile: "./transactions.csv",
			ValuationsFile:   "./valuations.csv",
		},
		Session: []Step{
			{Op: "buy", Symbol: "AAPL", Quantity: 10},
			{Op: "sell", Symbol: "AAPL", Quantity: 4},
			{Op: "report"},
		},
	}
}
