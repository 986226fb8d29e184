package service

import (
	"github.com/nvoronin/inkwell/internal/adapter"
	"github.com/nvoronin/inkwell/internal/store"
)

type ClientServices struct {
	AuthService          ClientAuthService
	UserWorkspaceService UserWorkspaceFetchService
	WorkspaceService     WorkspaceFetchService
	NoteService          NoteFetchService
}

func NewClientServices(localStorages *store.LocalStorages, serverAdapter adapter.ServerAdapter) *ClientServices {
	authSvc := NewClientAuthService(serverAdapter)
	userWorkspaceSvc := NewClientUserWorkspaceService(localStorages.UserWorkspaceRepository, serverAdapter, authSvc)
	workspaceSvc := NewClientWorkspaceService(localStorages.WorkspaceRepository, serverAdapter, userWorkspaceSvc)

	return &ClientServices{
		AuthService:          authSvc,
		UserWorkspaceService: userWorkspaceSvc,
		WorkspaceService:     workspaceSvc,
		NoteService:          NewClientNoteService(localStorages.NoteRepository, serverAdapter, workspaceSvc),
	}
}
