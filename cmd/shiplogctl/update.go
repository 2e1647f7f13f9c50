package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Manage product updates",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'update' requires a subcommand (import, watch)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
}
