package main

import (
	"os"

	"github.com/Shreya-kudale-19/crewai-trading-account-simulator/cmd/acctsim/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
