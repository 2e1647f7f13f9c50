package main

import (
	"fmt"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/shiplog/pkg/config"
	"github.com/doodlesbykumbi/shiplog/pkg/db"
)

// dbMigrateCmd represents the db migrate command
var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create and/or upgrade the database schema",
	Long: `Create and/or upgrade the database schema.

This command runs all pending database migrations to bring the schema
up to date.

Example:
  shiplogctl db migrate`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runMigrations(databaseURL()); err != nil {
			fatalf("Migration failed: %v", err)
		}
	},
}

var dbMigrateDownCmd = &cobra.Command{
	Use:   "down [steps]",
	Short: "Rollback database migrations",
	Long: `Rollback database migrations.

This command rolls back the specified number of migrations (default: 1).

Example:
  shiplogctl db down      # Rollback 1 migration
  shiplogctl db down 3    # Rollback 3 migrations`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		steps := 1
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				fatalf("steps must be a positive integer, got %q", args[0])
			}
			steps = n
		}

		if err := runMigrationsDown(databaseURL(), steps); err != nil {
			fatalf("Rollback failed: %v", err)
		}
	},
}

var dbMigrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current migration version",
	Long:  `Show the current database migration version and any pending migrations.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := showMigrationStatus(databaseURL()); err != nil {
			fatalf("Failed to get status: %v", err)
		}
	},
}

func init() {
	dbCmd.AddCommand(dbMigrateCmd)
	dbCmd.AddCommand(dbMigrateDownCmd)
	dbCmd.AddCommand(dbMigrateStatusCmd)
}

// databaseURL reads the URL from configuration without requiring the rest
// of it, so migrations can run before a secret is provisioned.
func databaseURL() string {
	cfg, err := config.Load()
	if err != nil {
		fatalf("Failed to load configuration: %v", err)
	}
	return cfg.DatabaseURL
}

func newMigrator(dbURL string) (*migrate.Migrate, error) {
	src, err := migrationSource()
	if err != nil {
		return nil, err
	}
	return db.NewMigrator(src, dbURL)
}

func runMigrations(dbURL string) error {
	m, err := newMigrator(dbURL)
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	before, err := db.CurrentStatus(m)
	if err != nil {
		return err
	}
	fmt.Printf("Current version: %d (dirty: %v)\n", before.Version, before.Dirty)

	if err := db.Up(m); err != nil {
		return err
	}

	after, err := db.CurrentStatus(m)
	if err != nil {
		return err
	}
	if after.Version == before.Version {
		fmt.Println("No migrations to run - database is up to date")
		return nil
	}
	fmt.Printf("Migrated to version: %d\n", after.Version)
	return nil
}

func runMigrationsDown(dbURL string, steps int) error {
	m, err := newMigrator(dbURL)
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	fmt.Printf("Rolling back %d migration(s)...\n", steps)
	if err := m.Steps(-steps); err != nil {
		return fmt.Errorf("rollback failed: %w", err)
	}

	status, err := db.CurrentStatus(m)
	if err != nil {
		return err
	}
	if !status.Applied {
		fmt.Println("Rolled back all migrations")
		return nil
	}
	fmt.Printf("Rolled back to version: %d\n", status.Version)
	return nil
}

func showMigrationStatus(dbURL string) error {
	m, err := newMigrator(dbURL)
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	status, err := db.CurrentStatus(m)
	if err != nil {
		return err
	}
	if !status.Applied {
		fmt.Println("No migrations have been applied yet")
	} else {
		fmt.Printf("Current version: %d\n", status.Version)
		if status.Dirty {
			fmt.Println("Warning: Database is in a dirty state")
		}
	}

	files, err := listMigrationFiles()
	if err != nil {
		return err
	}
	for _, name := range pendingMigrations(files, status) {
		fmt.Printf("Pending: %s\n", name)
	}
	return nil
}

// pendingMigrations returns the up files newer than the applied version.
func pendingMigrations(files []string, status db.Status) []string {
	var pending []string
	for _, name := range files {
		var version uint
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if !status.Applied || version > status.Version {
			pending = append(pending, name)
		}
	}
	return pending
}
