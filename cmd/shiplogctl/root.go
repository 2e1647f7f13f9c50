package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "shiplogctl",
	Short: "Run and administer the shiplog API",
	Long: `shiplogctl runs the shiplog API server and provides operator commands
for the database, configuration, accounts, tokens and changelog imports.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
