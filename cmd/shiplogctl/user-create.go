package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/shiplog/pkg/credential"
	"github.com/doodlesbykumbi/shiplog/pkg/identity"
	"github.com/doodlesbykumbi/shiplog/pkg/server/endpoints"
	gormstore "github.com/doodlesbykumbi/shiplog/pkg/server/store/gorm"
)

// userCreateCmd represents the user create command
var userCreateCmd = &cobra.Command{
	Use:   "create <username>",
	Short: "Create a user and print a token for it",
	Long: `Create a user account and print a bearer token for it.

The password is read from --password, or from the first line of stdin when
the flag is omitted. The same username and password rules as the
/user/new-user endpoint apply.

Example:
  shiplogctl user create alice --password hunter22
  echo hunter22 | shiplogctl user create alice`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		password, _ := cmd.Flags().GetString("password")
		if !cmd.Flags().Changed("password") {
			var err error
			if password, err = readPassword(os.Stdin); err != nil {
				fatalf("Failed to read password: %v", err)
			}
		}

		req := endpoints.CredentialsRequest{Username: args[0], Password: password}
		if err := req.Validate(); err != nil {
			fatalf("Invalid user: %v", err)
		}

		cfg := mustLoadConfig()
		users := gormstore.NewUsersStore(mustConnect(cfg))
		hash, err := credential.NewHasher(cfg.BcryptCost).Hash(req.Password)
		if err != nil {
			fatalf("Failed to hash password: %v", err)
		}

		user, err := users.CreateUser(context.Background(), req.Username, hash)
		if err != nil {
			fatalf("Failed to create user %s: %v", req.Username, err)
		}

		tok, err := mustIssuer(cfg).Issue(identity.Identity{ID: user.ID, Username: user.Username})
		if err != nil {
			fatalf("Failed to issue token: %v", err)
		}
		fmt.Println(tok)
	},
}

func init() {
	userCmd.AddCommand(userCreateCmd)
	userCreateCmd.Flags().String("password", "", "account password (read from stdin when omitted)")
}

// readPassword returns the first line of r without its line ending.
func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errors.New("empty password")
	}
	return line, nil
}
