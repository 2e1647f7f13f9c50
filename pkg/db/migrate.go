package db

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	migrations "github.com/doodlesbykumbi/shiplog/db"
)

// MigrationsTable is the table golang-migrate records the schema version in.
const MigrationsTable = "schema_migrations"

// Embedded returns the migrations compiled into the binary.
func Embedded() (source.Driver, error) {
	sub, err := fs.Sub(migrations.Migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to get embedded migrations: %w", err)
	}

	d, err := iofs.New(sub, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to create iofs driver: %w", err)
	}
	return d, nil
}

// WithMigrationsTable adds the x-migrations-table parameter to dbURL.
func WithMigrationsTable(dbURL string) string {
	if strings.Contains(dbURL, "x-migrations-table=") {
		return dbURL
	}
	sep := "?"
	if strings.Contains(dbURL, "?") {
		sep = "&"
	}
	return dbURL + sep + "x-migrations-table=" + MigrationsTable
}

// NewMigrator binds src to the database at dbURL.
func NewMigrator(src source.Driver, dbURL string) (*migrate.Migrate, error) {
	if dbURL == "" {
		return nil, ErrNoDatabaseURL
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, WithMigrationsTable(dbURL))
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

// Up applies every pending migration. An up-to-date schema is not an error.
func Up(m *migrate.Migrate) error {
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

// Status describes the current schema version.
type Status struct {
	Version uint
	Dirty   bool
	// Applied is false when no migration has run yet.
	Applied bool
}

// CurrentStatus reads the schema version recorded by golang-migrate.
func CurrentStatus(m *migrate.Migrate) (Status, error) {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return Status{}, nil
	}
	if err != nil {
		return Status{}, err
	}
	return Status{Version: version, Dirty: dirty, Applied: true}, nil
}

// UpMigrations lists the *.up.sql file names in fsys, in order.
func UpMigrations(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			files = append(files, entry.Name())
		}
	}
	return files, nil
}
