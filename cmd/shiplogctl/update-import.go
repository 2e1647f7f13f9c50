package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/shiplog/pkg/markdown"
	"github.com/doodlesbykumbi/shiplog/pkg/model"
	gormstore "github.com/doodlesbykumbi/shiplog/pkg/server/store/gorm"
)

const changelogDateLayout = "2006-01-02"

// updateImportCmd represents the update import command
var updateImportCmd = &cobra.Command{
	Use:   "import <CHANGELOG.md>",
	Short: "Import a Keep a Changelog file as product updates",
	Long: `Import a Keep a Changelog file as updates on one of a user's products.

Each version section becomes one update. Released versions are imported as
LIVE with their version and date. The Unreleased section is imported as
IN_PROGRESS. The product must belong to --user. Versions that were
imported before have their body refreshed instead of being duplicated.

Example:
  shiplogctl update import CHANGELOG.md --user alice --product 5b2e6a10-...
  shiplogctl update import CHANGELOG.md --user alice --product 5b2e6a10-... --dry-run`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		username, _ := cmd.Flags().GetString("user")
		productID, _ := cmd.Flags().GetString("product")
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		content, err := os.ReadFile(args[0])
		if err != nil {
			fatalf("Failed to read %s: %v", args[0], err)
		}
		updates := updatesFromChangelog(markdown.ParseChangelog(content), productID)
		if len(updates) == 0 {
			fatalf("No version sections found in %s", args[0])
		}

		if dryRun {
			printUpdates(os.Stdout, updates)
			return
		}

		cfg := mustLoadConfig()
		gormDB := mustConnect(cfg)
		ctx := context.Background()

		user, err := gormstore.NewUsersStore(gormDB).FindUserByUsername(ctx, username)
		if err != nil {
			fatalf("Failed to find user %s: %v", username, err)
		}

		result, err := syncUpdates(ctx, gormstore.NewUpdatesStore(gormDB), user.ID, productID, updates)
		if err != nil {
			fatalf("Failed to import %s: %v", args[0], err)
		}
		printUpdates(os.Stdout, updates)
		fmt.Println(result)
	},
}

func init() {
	updateCmd.AddCommand(updateImportCmd)
	updateImportCmd.Flags().StringP("user", "u", "", "owner of the product")
	updateImportCmd.Flags().String("product", "", "product ID to import into")
	updateImportCmd.Flags().Bool("dry-run", false, "print the updates without writing them")
	_ = updateImportCmd.MarkFlagRequired("user")
	_ = updateImportCmd.MarkFlagRequired("product")
}

// updatesFromChangelog converts changelog entries to updates, oldest first,
// so creation order follows release order.
func updatesFromChangelog(changelog *markdown.Changelog, productID string) []model.Update {
	updates := make([]model.Update, 0, len(changelog.Entries))

	for i := len(changelog.Entries) - 1; i >= 0; i-- {
		entry := changelog.Entries[i]
		update := model.Update{
			Title:     "Unreleased changes",
			Body:      entry.Content,
			Status:    model.UpdateStatusInProgress,
			ProductID: productID,
		}

		if entry.Released() {
			version := entry.Version
			update.Title = "Release " + version
			update.Status = model.UpdateStatusLive
			update.Version = &version
			if date, err := time.Parse(changelogDateLayout, entry.Date); err == nil {
				update.CreatedAt = date
				update.UpdatedAt = date
			}
		}
		updates = append(updates, update)
	}
	return updates
}

func printUpdates(w io.Writer, updates []model.Update) {
	for _, u := range updates {
		version := "-"
		if u.Version != nil {
			version = *u.Version
		}
		fmt.Fprintf(w, "%-12s %-12s %s\n", u.Status, version, u.Title)
	}
}
