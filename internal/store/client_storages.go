package store

import (
	"context"

	"github.com/nvoronin/inkwell/internal/config"
	"github.com/nvoronin/inkwell/internal/logger"
)

// LocalStorages aggregates the client-side repositories over the embedded
// SQLite database. The constructor also brings the schema up to date, so a
// caller holding a LocalStorages always works against the current layout.
type LocalStorages struct {
	UserWorkspaceRepository LocalUserWorkspaceRepository
	WorkspaceRepository     LocalWorkspaceRepository
	NoteRepository          LocalNoteRepository
}

func NewLocalStorages(ctx context.Context, cfg config.Client, log *logger.Logger) (*LocalStorages, *DB, error) {
	db, err := NewConnectSQLite(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	if err = InitLocalSchema(ctx, db, log); err != nil {
		db.Close()
		return nil, nil, err
	}

	return &LocalStorages{
		UserWorkspaceRepository: NewLocalUserWorkspaceRepository(db, log),
		WorkspaceRepository:     NewLocalWorkspaceRepository(db, log),
		NoteRepository:          NewLocalNoteRepository(db, log),
	}, db, nil
}
