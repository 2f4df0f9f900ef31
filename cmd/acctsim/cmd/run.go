package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/Shreya-kudale-19/crewai-trading-account-simulator/config"
	"github.com/Shreya-kudale-19/crewai-trading-account-simulator/journal"
	"github.com/Shreya-kudale-19/crewai-trading-account-simulator/ledger"
	"github.com/Shreya-kudale-19/crewai-trading-account-simulator/pricing"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a scripted session from a config file",
	Long: `Run a scripted account session using settings from a configuration file.

The config file specifies the account, the pricing table and unknown-symbol
policy, the journal backend, and the session steps to apply in order.

A rejected step (bad amount, overdraft, oversell, unknown symbol) is logged
and the session continues; rejected operations never corrupt account state.

Example:
  acctsim run -f examples/configs/basic.yaml`,
	RunE: runRun,
}

var runConfigPath string

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "f", "", "path to config file (YAML or JSON) (required)")
	runCmd.MarkFlagRequired("config")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(runConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	oracle, err := buildOracle(cfg.Pricing)
	if err != nil {
		return fmt.Errorf("build oracle: %w", err)
	}

	j, err := buildJournal(cfg.Journal)
	if err != nil {
		return fmt.Errorf("create journal: %w", err)
	}
	if j != nil {
		defer j.Close()
	}

	acct := ledger.New(cfg.Account.ID, oracle)
	if j != nil {
		acct.SetJournal(j)
	}

	log.Info().
		Str("account", cfg.Account.ID).
		Str("policy", cfg.Pricing.Policy).
		Str("journal", cfg.Journal.Type).
		Int("steps", len(cfg.Session)).
		Msg("session start")

	if cfg.Account.OpeningDeposit > 0 {
		amount := decimal.NewFromFloat(cfg.Account.OpeningDeposit)
		if _, err := acct.Deposit(amount); err != nil {
			return fmt.Errorf("opening deposit: %w", err)
		}
		log.Info().Str("amount", amount.String()).Msg("opening deposit")
	}

	for i, step := range cfg.Session {
		if err := applyStep(acct, step); err != nil {
			log.Warn().Int("step", i).Str("op", step.Op).Err(err).Msg("operation rejected")
			continue
		}
		log.Info().Int("step", i).Str("op", step.Op).
			Str("balance", acct.CashBalance().String()).Msg("applied")
	}

	if err := printReport(acct); err != nil {
		return err
	}

	if j != nil {
		pv, err := acct.PortfolioValue()
		if err != nil {
			return fmt.Errorf("final valuation: %w", err)
		}
		err = j.RecordValuation(journal.Snapshot{
			Time:      time.Now().UTC(),
			AccountID: acct.ID(),
			Cash:      pv.Cash,
			Stock:     pv.Stock,
			Total:     pv.Total,
		})
		if err != nil {
			return fmt.Errorf("record valuation: %w", err)
		}
	}

	return nil
}

func applyStep(acct *ledger.Ledger, step config.Step) error {
	switch step.Op {
	case "deposit":
		_, err := acct.Deposit(decimal.NewFromFloat(step.Amount))
		return err
	case "withdraw":
		_, err := acct.Withdraw(decimal.NewFromFloat(step.Amount))
		return err
	case "buy":
		_, err := acct.BuyShares(step.Symbol, step.Quantity)
		return err
	case "sell":
		_, err := acct.SellShares(step.Symbol, step.Quantity)
		return err
	case "report":
		return printReport(acct)
	default:
		return fmt.Errorf("unknown op: %q", step.Op)
	}
}

func buildOracle(cfg config.PricingConfig) (*pricing.Static, error) {
	policy, err := pricing.ParsePolicy(cfg.Policy)
	if err != nil {
		return nil, err
	}

	var oracle *pricing.Static
	if len(cfg.Table) == 0 {
		oracle = pricing.NewStatic(policy)
	} else {
		table := make(map[string]decimal.Decimal, len(cfg.Table))
		for sym, price := range cfg.Table {
			table[sym] = decimal.NewFromFloat(price)
		}
		oracle = pricing.StaticFromTable(table, policy)
	}

	if cfg.DefaultPrice > 0 {
		oracle.SetFallback(decimal.NewFromFloat(cfg.DefaultPrice))
	}
	return oracle, nil
}

func buildJournal(cfg config.JournalConfig) (journal.Journal, error) {
	switch cfg.Type {
	case "csv":
		return journal.NewCSV(cfg.TransactionsFile, cfg.ValuationsFile)
	case "sqlite":
		return journal.NewSQLite(cfg.DBPath)
	default:
		return nil, nil
	}
}

func printReport(acct *ledger.Ledger) error {
	pv, err := acct.PortfolioValue()
	if err != nil {
		return fmt.Errorf("portfolio value: %w", err)
	}
	pl, err := acct.ProfitLoss()
	if err != nil {
		return fmt.Errorf("profit/loss: %w", err)
	}

	fmt.Printf("\nAccount %s\n", acct.ID())
	fmt.Printf("  Cash Balance: $%s\n", pv.Cash.StringFixed(2))

	holdings := acct.Holdings()
	if len(holdings) > 0 {
		symbols := make([]string, 0, len(holdings))
		for sym := range holdings {
			symbols = append(symbols, sym)
		}
		sort.Strings(symbols)

		fmt.Println("  Holdings:")
		for _, sym := range symbols {
			fmt.Printf("    %-6s %d\n", sym, holdings[sym])
		}
	}

	fmt.Printf("  Stock Value: $%s\n", pv.Stock.StringFixed(2))
	fmt.Printf("  Total Value: $%s\n", pv.Total.StringFixed(2))
	fmt.Printf("  Deposited: $%s\n", pl.InitialDeposit.StringFixed(2))
	fmt.Printf("  Profit/Loss: $%s (%s%%)\n", pl.Amount.StringFixed(2), pl.Percent.StringFixed(2))

	return nil
}
