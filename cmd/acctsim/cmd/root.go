package cmd

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "acctsim",
	Short: "A single-account trading simulator with an auditable ledger",
	Long: `Acctsim simulates a single trading account against a static price oracle.

It provides tools for:
  - Depositing and withdrawing cash
  - Buying and selling shares at oracle-quoted prices
  - Valuing the portfolio and measuring profit/loss against deposits
  - Recording an auditable journal to CSV or SQLite
  - Replaying scripted sessions from YAML or JSON config files

All money is decimal; the account can never be driven into overdraft.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
}
