package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "invctl",
	Short: "Inventory management server and tools",
	Long: `Run the inventory HTTP API and manage its database.

The database is chosen by DATABASE_URL (postgres://... or sqlite://path).`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
