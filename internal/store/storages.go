package store

import (
	"context"

	"github.com/nvoronin/inkwell/internal/config"
	"github.com/nvoronin/inkwell/internal/logger"
)

// Storages aggregates every server-side repository behind one constructor
// so the service layer receives a single wired bundle.
type Storages struct {
	UserRepository          UserRepository
	SessionRepository       SessionRepository
	UserWorkspaceRepository UserWorkspaceRepository
	WorkspaceRepository     WorkspaceRepository
	NoteRepository          NoteRepository
}

func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, *DB, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, nil, err
	}

	return &Storages{
		UserRepository:          NewUserRepository(db, log),
		SessionRepository:       NewSessionRepository(db, log),
		UserWorkspaceRepository: NewUserWorkspaceRepository(db, log),
		WorkspaceRepository:     NewWorkspaceRepository(db, log),
		NoteRepository:          NewNoteRepository(db, log),
	}, db, nil
}
