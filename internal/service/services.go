package service

import (
	"github.com/nvoronin/inkwell/internal/config"
	"github.com/nvoronin/inkwell/internal/logger"
	"github.com/nvoronin/inkwell/internal/objectstore"
	"github.com/nvoronin/inkwell/internal/store"
)

type Services struct {
	AuthService          AuthService
	UserWorkspaceService UserWorkspaceService
	WorkspaceService     WorkspaceService
	NoteService          NoteService
	StorageService       StorageService
}

func NewServices(storages *store.Storages, objects objectstore.ObjectStore, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService:          NewAuthService(storages.UserRepository, storages.SessionRepository, cfg.App, logger),
		UserWorkspaceService: NewUserWorkspaceService(storages.UserWorkspaceRepository, logger),
		WorkspaceService:     NewWorkspaceService(storages.WorkspaceRepository, logger),
		NoteService:          NewNoteService(storages.NoteRepository, logger),
		StorageService:       NewStorageService(storages.UserRepository, objects, cfg.Storage.S3, logger),
	}
}
