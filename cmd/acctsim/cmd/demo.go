package cmd

import (
	"fmt"

	"github.com/Shreya-kudale-19/crewai-trading-account-simulator/ledger"
	"github.com/Shreya-kudale-19/crewai-trading-account-simulator/pricing"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run an example account session",
	Long: `Run a worked example session against the built-in reference prices
(AAPL 170.50, TSLA 750.00, GOOGL 2500.25).

Shows the basic workflow of:
  1. Creating an account and depositing cash
  2. Buying shares at the oracle price
  3. Selling part of the position
  4. Having an overdraft withdrawal rejected
  5. Reading the portfolio value and profit/loss`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Trading Account Demo ===")
	fmt.Println()

	acct := ledger.New("DEMO-001", pricing.NewStatic(pricing.StrictUnknown))

	if _, err := acct.Deposit(decimal.NewFromInt(10000)); err != nil {
		return err
	}
	fmt.Printf("DEPOSIT  $10000.00    balance $%s\n", acct.CashBalance().StringFixed(2))

	rec, err := acct.BuyShares("AAPL", 10)
	if err != nil {
		return err
	}
	fmt.Printf("BUY      10 AAPL @ $%s   cost $%s   balance $%s\n",
		rec.PricePerShare.StringFixed(2), rec.CashDelta.Neg().StringFixed(2),
		acct.CashBalance().StringFixed(2))

	rec, err = acct.SellShares("AAPL", 4)
	if err != nil {
		return err
	}
	fmt.Printf("SELL     4 AAPL @ $%s    proceeds $%s   balance $%s\n",
		rec.PricePerShare.StringFixed(2), rec.CashDelta.StringFixed(2),
		acct.CashBalance().StringFixed(2))

	if _, err := acct.Withdraw(decimal.NewFromInt(20000)); err != nil {
		fmt.Printf("WITHDRAW $20000.00 rejected: %v\n", err)
	}

	fmt.Println()
	if err := printReport(acct); err != nil {
		return err
	}

	fmt.Printf("\nTransaction history (%d records):\n", len(acct.TransactionHistory()))
	for _, tx := range acct.TransactionHistory() {
		if tx.Symbol != "" {
			fmt.Printf("  %s  %-8s %4d %-6s delta $%s\n",
				tx.ID, tx.Kind, tx.Quantity, tx.Symbol, tx.CashDelta.StringFixed(2))
		} else {
			fmt.Printf("  %s  %-8s             delta $%s\n",
				tx.ID, tx.Kind, tx.CashDelta.StringFixed(2))
		}
	}

	return nil
}
