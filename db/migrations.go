// Package db embeds the goose migrations, one directory per dialect.
package db

import "embed"

//go:embed migrations
var Migrations embed.FS

// MigrationsDir returns the directory holding the migrations of a goose dialect.
func MigrationsDir(dialect string) string {
	if dialect == "postgres" {
		return "migrations/postgres"
	}
	return "migrations/sqlite"
}
