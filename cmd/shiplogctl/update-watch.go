package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/shiplog/pkg/markdown"
	gormstore "github.com/doodlesbykumbi/shiplog/pkg/server/store/gorm"
)

// updateWatchCmd represents the update watch command
var updateWatchCmd = &cobra.Command{
	Use:   "watch <CHANGELOG.md>",
	Short: "Watch a changelog and sync it into product updates on every change",
	Long: `Watch a Keep a Changelog file and sync it into a product's updates
whenever it is written. The file is synced once at startup.

New versions are created, edited versions have their body refreshed and the
Unreleased section is kept in a single IN_PROGRESS update.

Example:
  shiplogctl update watch CHANGELOG.md --user alice --product 5b2e6a10-...`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		username, _ := cmd.Flags().GetString("user")
		productID, _ := cmd.Flags().GetString("product")
		filename := args[0]

		cfg := mustLoadConfig()
		gormDB := mustConnect(cfg)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		user, err := gormstore.NewUsersStore(gormDB).FindUserByUsername(ctx, username)
		if err != nil {
			fatalf("Failed to find user %s: %v", username, err)
		}
		updates := gormstore.NewUpdatesStore(gormDB)

		sync := func() error {
			content, err := os.ReadFile(filename)
			if err != nil {
				return err
			}
			incoming := updatesFromChangelog(markdown.ParseChangelog(content), productID)
			result, err := syncUpdates(ctx, updates, user.ID, productID, incoming)
			if err != nil {
				return err
			}
			fmt.Printf("[%s] Synced %s: %s\n", time.Now().Format(time.RFC3339), filename, result)
			return nil
		}

		if err := sync(); err != nil {
			fatalf("Failed to sync %s: %v", filename, err)
		}

		watcher, err := newChangelogWatcher(filename)
		if err != nil {
			fatalf("Failed to watch %s: %v", filename, err)
		}
		defer func() { _ = watcher.Close() }()

		fmt.Printf("Watching %s for changes (product: %s)\n", filename, productID)
		if err := watchChangelog(ctx, watcher, filename, sync, os.Stderr); err != nil {
			fatalf("Watcher failed: %v", err)
		}
		fmt.Println("\nShutting down...")
	},
}

func init() {
	updateCmd.AddCommand(updateWatchCmd)
	updateWatchCmd.Flags().StringP("user", "u", "", "owner of the product")
	updateWatchCmd.Flags().String("product", "", "product ID to sync into")
	_ = updateWatchCmd.MarkFlagRequired("user")
	_ = updateWatchCmd.MarkFlagRequired("product")
}

// newChangelogWatcher watches the directory holding filename so that editors
// which replace the file on save are still seen.
func newChangelogWatcher(filename string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(filename)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(filename), err)
	}
	return watcher, nil
}

// watchChangelog calls onChange each time filename is written or created,
// until ctx is done or the watcher closes. onChange failures are reported to
// errw and do not stop the watch.
func watchChangelog(ctx context.Context, watcher *fsnotify.Watcher, filename string, onChange func() error, errw io.Writer) error {
	target := filepath.Clean(filename)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				if err := onChange(); err != nil {
					fmt.Fprintf(errw, "Error syncing %s: %v\n", filename, err)
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(errw, "Watcher error: %v\n", err)
		case <-ctx.Done():
			return nil
		}
	}
}
