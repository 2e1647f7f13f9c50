package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/shiplog/pkg/identity"
	gormstore "github.com/doodlesbykumbi/shiplog/pkg/server/store/gorm"
)

// tokenIssueCmd represents the token issue command
var tokenIssueCmd = &cobra.Command{
	Use:   "issue <username>",
	Short: "Issue a token for an existing user",
	Long: `Issue a bearer token for an existing user without their password.

This is an operator aid. The token is signed with the configured JWT_SECRET
and lives for the configured token_ttl.

Example:
  shiplogctl token issue alice`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()
		users := gormstore.NewUsersStore(mustConnect(cfg))

		user, err := users.FindUserByUsername(context.Background(), args[0])
		if err != nil {
			fatalf("Failed to find user %s: %v", args[0], err)
		}

		tok, err := mustIssuer(cfg).Issue(identity.Identity{ID: user.ID, Username: user.Username})
		if err != nil {
			fatalf("Failed to issue token: %v", err)
		}
		fmt.Println(tok)
	},
}

func init() {
	tokenCmd.AddCommand(tokenIssueCmd)
}
