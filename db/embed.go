// Package db holds the SQL schema migrations, embedded for builds that ship
// without a db/migrations directory on disk.
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
