package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nvoronin/inkwell/internal/logger"
	"github.com/nvoronin/inkwell/internal/utils"
)

// ErrUnknownLocalSchema is returned when the local database contains tables
// but neither a schema_version row nor the recognizable version-1 layout.
var ErrUnknownLocalSchema = errors.New("unrecognized local schema")

// InitLocalSchema brings the local database to the current schema version.
// A fresh database gets the v2 layout directly; a v1 database is migrated in
// place. The decision is driven by an explicit schema_version table, which
// makes re-runs idempotent.
func InitLocalSchema(ctx context.Context, db *DB, log *logger.Logger) error {
	version, err := localSchemaVersionOf(ctx, db)
	if err != nil {
		return err
	}

	switch version {
	case 0:
		log.Info().Str("func", "InitLocalSchema").Msg("creating local schema")
		return createLocalSchema(ctx, db)
	case 1:
		log.Info().Str("func", "InitLocalSchema").Msg("migrating local schema to identifier keys")
		return migrateLocalSchemaV1ToV2(ctx, db)
	case localSchemaVersion:
		return nil
	default:
		return fmt.Errorf("%w: version %d", ErrUnknownLocalSchema, version)
	}
}

// localSchemaVersionOf reports 0 for an empty database, the recorded version
// when schema_version exists, and 1 for a pre-version-table database whose
// userworkspaces table still uses the INTEGER key layout.
func localSchemaVersionOf(ctx context.Context, db *DB) (int, error) {
	var hasVersionTable bool
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) > 0 FROM sqlite_master WHERE type = 'table' AND name = 'schema_version';`).
		Scan(&hasVersionTable)
	if err != nil {
		return 0, fmt.Errorf("error inspecting local schema: %w", err)
	}

	if hasVersionTable {
		var version int
		if err = db.QueryRowContext(ctx, `SELECT version FROM schema_version;`).Scan(&version); err != nil {
			return 0, fmt.Errorf("error reading local schema version: %w", err)
		}
		return version, nil
	}

	var hasUserWorkspaces bool
	err = db.QueryRowContext(ctx,
		`SELECT COUNT(*) > 0 FROM sqlite_master WHERE type = 'table' AND name = 'userworkspaces';`).
		Scan(&hasUserWorkspaces)
	if err != nil {
		return 0, fmt.Errorf("error inspecting local schema: %w", err)
	}

	if !hasUserWorkspaces {
		return 0, nil
	}

	// Tables exist but no version marker: that is the v1 layout.
	return 1, nil
}

func createLocalSchema(ctx context.Context, db *DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, ddl := range []string{localSchemaV2, localTriggersV2, createVersionTable} {
		if _, err = tx.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("error creating local schema: %w", err)
		}
	}
	if _, err = tx.ExecContext(ctx, `INSERT INTO schema_version (version) VALUES (?);`, localSchemaVersion); err != nil {
		return fmt.Errorf("error recording local schema version: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

const createVersionTable = `CREATE TABLE schema_version (version INTEGER NOT NULL);`

// migrateLocalSchemaV1ToV2 upgrades the integer-keyed layout to opaque
// identifiers in place, inside one transaction:
//
//  1. build old-id → new-id mapping tables with a fresh identifier per row;
//  2. rename the live tables to *_old and drop the old triggers/indexes so
//     their names can be reused;
//  3. create the v2 schema;
//  4. re-insert every row, substituting identifiers via joins against the
//     mapping tables (preserving every foreign-key edge, including
//     note_history → notes);
//  5. recreate the indexes and triggers under their original names;
//  6. drop the *_old and mapping tables, record the version, commit.
//
// Foreign-key enforcement is suspended around the transaction because the
// pragma cannot change inside one; the joins themselves guarantee that only
// resolvable references are re-inserted.
func migrateLocalSchemaV1ToV2(ctx context.Context, db *DB) error {
	if _, err := db.ExecContext(ctx, `PRAGMA foreign_keys = OFF;`); err != nil {
		return fmt.Errorf("error suspending foreign keys: %w", err)
	}
	defer db.ExecContext(ctx, `PRAGMA foreign_keys = ON;`)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// 1. Mapping tables.
	for _, table := range []string{"userworkspaces", "workspaces", "notes"} {
		if err = buildIDMapping(ctx, tx, table); err != nil {
			return err
		}
	}

	// 2. Park the live tables and free up trigger/index names.
	for _, stmt := range []string{
		`DROP INDEX IF EXISTS idx_workspaces_userworkspace;`,
		`DROP INDEX IF EXISTS idx_notes_workspace;`,
		`DROP INDEX IF EXISTS idx_note_history_note;`,
		`DROP TRIGGER IF EXISTS userworkspaces_touch_updated_at;`,
		`DROP TRIGGER IF EXISTS workspaces_touch_updated_at;`,
		`DROP TRIGGER IF EXISTS notes_touch_updated_at;`,
		`DROP TRIGGER IF EXISTS notes_content_history;`,
		`ALTER TABLE userworkspaces RENAME TO userworkspaces_old;`,
		`ALTER TABLE workspaces RENAME TO workspaces_old;`,
		`ALTER TABLE notes RENAME TO notes_old;`,
		`ALTER TABLE note_history RENAME TO note_history_old;`,
	} {
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("error preparing migration: %w", err)
		}
	}

	// 3. + 5. New schema with the original trigger/index names.
	for _, ddl := range []string{localSchemaV2, localTriggersV2} {
		if _, err = tx.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("error creating v2 schema: %w", err)
		}
	}

	// 4. Copy rows, substituting identifiers through the mapping tables.
	for _, stmt := range []string{
		`INSERT INTO userworkspaces (userworkspace_id, name, icon, created_at, updated_at)
		 SELECT m.new_id, o.name, o.icon, o.created_at, o.updated_at
		 FROM userworkspaces_old o
		 JOIN map_userworkspaces m ON m.old_id = o.id;`,

		`INSERT INTO workspaces (workspace_id, userworkspace_id, name, icon, description, created_at, updated_at)
		 SELECT m.new_id, mu.new_id, o.name, o.icon, o.description, o.created_at, o.updated_at
		 FROM workspaces_old o
		 JOIN map_workspaces m ON m.old_id = o.id
		 JOIN map_userworkspaces mu ON mu.old_id = o.userworkspace_id;`,

		`INSERT INTO notes (note_id, workspace_id, userworkspace_id, name, icon, favorite, trashed, content, created_at, updated_at)
		 SELECT m.new_id, mw.new_id, mu.new_id, o.name, o.icon, o.favorite, o.trashed, o.content, o.created_at, o.updated_at
		 FROM notes_old o
		 JOIN map_notes m ON m.old_id = o.id
		 JOIN map_workspaces mw ON mw.old_id = o.workspace_id
		 JOIN map_userworkspaces mu ON mu.old_id = o.userworkspace_id;`,

		`INSERT INTO note_history (history_id, note_id, content, created_at)
		 SELECT o.id, m.new_id, o.content, o.created_at
		 FROM note_history_old o
		 JOIN map_notes m ON m.old_id = o.note_id;`,
	} {
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("error copying rows into v2 schema: %w", err)
		}
	}

	// 6. Cleanup and version stamp.
	for _, stmt := range []string{
		`DROP TABLE note_history_old;`,
		`DROP TABLE notes_old;`,
		`DROP TABLE workspaces_old;`,
		`DROP TABLE userworkspaces_old;`,
		`DROP TABLE map_notes;`,
		`DROP TABLE map_workspaces;`,
		`DROP TABLE map_userworkspaces;`,
		createVersionTable,
	} {
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("error finishing migration: %w", err)
		}
	}
	if _, err = tx.ExecContext(ctx, `INSERT INTO schema_version (version) VALUES (?);`, localSchemaVersion); err != nil {
		return fmt.Errorf("error recording local schema version: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// buildIDMapping creates map_<table>(old_id, new_id) and fills it with a
// freshly generated identifier for every existing row.
func buildIDMapping(ctx context.Context, tx *sql.Tx, table string) error {
	if _, err := tx.ExecContext(ctx,
		fmt.Sprintf(`CREATE TABLE map_%s (old_id INTEGER PRIMARY KEY, new_id TEXT NOT NULL);`, table)); err != nil {
		return fmt.Errorf("error creating mapping table for %s: %w", table, err)
	}

	rows, err := tx.QueryContext(ctx, fmt.Sprintf(`SELECT id FROM %s;`, table))
	if err != nil {
		return fmt.Errorf("error reading ids from %s: %w", table, err)
	}
	defer rows.Close()

	var oldIDs []int64
	for rows.Next() {
		var id int64
		if err = rows.Scan(&id); err != nil {
			return fmt.Errorf("error scanning id from %s: %w", table, err)
		}
		oldIDs = append(oldIDs, id)
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("error reading ids from %s: %w", table, err)
	}

	gen := utils.NewUUIDGenerator()
	for _, id := range oldIDs {
		if _, err = tx.ExecContext(ctx,
			fmt.Sprintf(`INSERT INTO map_%s (old_id, new_id) VALUES (?, ?);`, table), id, gen.Generate()); err != nil {
			return fmt.Errorf("error filling mapping table for %s: %w", table, err)
		}
	}

	return nil
}
