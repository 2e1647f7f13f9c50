package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/shiplog/pkg/token"
)

// tokenInspectCmd represents the token inspect command
var tokenInspectCmd = &cobra.Command{
	Use:   "inspect <token>",
	Short: "Decode a token with the configured secret",
	Long: `Decode a bearer token with the configured JWT_SECRET and print the
identity it carries and when it expires. A token that does not verify is
reported with the reason and a non-zero exit status.

Example:
  shiplogctl token inspect eyJhbGciOiJIUzI1NiIs...`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()
		if err := inspectToken(os.Stdout, mustIssuer(cfg), args[0]); err != nil {
			fatalf("Rejected: %v", err)
		}
	},
}

func init() {
	tokenCmd.AddCommand(tokenInspectCmd)
}

func inspectToken(w io.Writer, issuer *token.Issuer, raw string) error {
	id, err := issuer.Decode(raw)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "id:         %s\n", id.ID)
	fmt.Fprintf(w, "username:   %s\n", id.Username)
	fmt.Fprintf(w, "issued at:  %s\n", id.IssuedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(w, "expires at: %s\n", id.ExpiresAt.UTC().Format(time.RFC3339))
	return nil
}
