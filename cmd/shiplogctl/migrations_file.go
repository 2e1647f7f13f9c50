//go:build !embed_migrations

package main

import (
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4/source"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/doodlesbykumbi/shiplog/pkg/db"
)

const defaultMigrationsPath = "db/migrations"

func migrationsPath() string {
	if path := os.Getenv("SHIPLOG_MIGRATIONS_PATH"); path != "" {
		return path
	}
	return defaultMigrationsPath
}

func migrationSource() (source.Driver, error) {
	path := migrationsPath()
	fmt.Printf("Running migrations from file://%s\n", path)
	return source.Open("file://" + path)
}

func listMigrationFiles() ([]string, error) {
	return db.UpMigrations(os.DirFS(migrationsPath()))
}
