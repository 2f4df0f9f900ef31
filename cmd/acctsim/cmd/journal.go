package cmd

import (
	"fmt"

	"github.com/Shreya-kudale-19/crewai-trading-account-simulator/journal"
	"github.com/spf13/cobra"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query the audit journal",
	Long: `Query and display transaction records from a SQLite journal.

Subcommands:
  account  - List all transactions for an account
  tx       - Get details of a specific transaction by ID

Examples:
  acctsim journal account ACCT-001
  acctsim journal tx 01J8ZC4V9XKQ2M3N4P5Q6R7S8T`,
}

var journalAccountCmd = &cobra.Command{
	Use:   "account <account-id>",
	Short: "List all transactions for an account",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalAccount,
}

var journalTxCmd = &cobra.Command{
	Use:   "tx <tx-id>",
	Short: "Get details of a specific transaction",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalTx,
}

var journalDBPath string

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalAccountCmd)
	journalCmd.AddCommand(journalTxCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "./acctsim.sqlite", "path to SQLite journal DB")
}

func runJournalAccount(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	recs, err := j.ListTransactionsByAccount(args[0])
	if err != nil {
		return fmt.Errorf("query transactions: %w", err)
	}

	if len(recs) == 0 {
		fmt.Printf("no transactions for account %q\n", args[0])
		return nil
	}

	for _, rec := range recs {
		printRecord(rec)
	}
	return nil
}

func runJournalTx(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	rec, err := j.GetTransaction(args[0])
	if err != nil {
		return fmt.Errorf("get transaction: %w", err)
	}

	printRecord(rec)
	return nil
}

func printRecord(rec journal.Record) {
	if rec.Symbol != "" {
		fmt.Printf("%s  %s  %-8s %4d %-6s @ %-10s delta %-12s balance %s\n",
			rec.ID, rec.Time.Format("2006-01-02 15:04:05"), rec.Kind,
			rec.Quantity, rec.Symbol, rec.PricePerShare.StringFixed(2),
			rec.CashDelta.StringFixed(2), rec.BalanceAfter.StringFixed(2))
		return
	}
	fmt.Printf("%s  %s  %-8s %23s delta %-12s balance %s\n",
		rec.ID, rec.Time.Format("2006-01-02 15:04:05"), rec.Kind, "",
		rec.CashDelta.StringFixed(2), rec.BalanceAfter.StringFixed(2))
}
