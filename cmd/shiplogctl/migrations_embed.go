//go:build embed_migrations

package main

import (
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4/source"

	migrations "github.com/doodlesbykumbi/shiplog/db"
	"github.com/doodlesbykumbi/shiplog/pkg/db"
)

func init() {
	fmt.Println("Using embedded migrations (production build)")
}

func migrationSource() (source.Driver, error) {
	return db.Embedded()
}

func listMigrationFiles() ([]string, error) {
	migrationsFS, err := fs.Sub(migrations.Migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to get embedded migrations: %w", err)
	}
	return db.UpMigrations(migrationsFS)
}
