// Package migrations embeds and applies the PostgreSQL schema of the remote
// store: users with quota counters, sessions, the userworkspace/workspace/
// note hierarchy with cascading foreign keys, the updated_at touch triggers,
// and the apply_note_patch stored function.
package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var embedMigrations embed.FS

func Migrate(db *sql.DB) error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
