package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/nvoronin/inkwell/internal/adapter"
	"github.com/nvoronin/inkwell/internal/store"
	"github.com/nvoronin/inkwell/internal/utils"
	"github.com/nvoronin/inkwell/models"
)

type clientWorkspaceService struct {
	local          store.LocalWorkspaceRepository
	adapter        adapter.ServerAdapter
	userWorkspaces UserWorkspaceFetchService
	uuid           *utils.UUIDGenerator

	mu    sync.RWMutex
	cache map[string]models.Workspace
}

func NewClientWorkspaceService(local store.LocalWorkspaceRepository, serverAdapter adapter.ServerAdapter, userWorkspaces UserWorkspaceFetchService) WorkspaceFetchService {
	return &clientWorkspaceService{
		local:          local,
		adapter:        serverAdapter,
		userWorkspaces: userWorkspaces,
		uuid:           utils.NewUUIDGenerator(),
		cache:          make(map[string]models.Workspace),
	}
}

// Fetch routes on the parent userworkspace, which must have been fetched
// first; a workspace listing never spans both stores.
func (s *clientWorkspaceService) Fetch(ctx context.Context, userWorkspaceID string) ([]models.Workspace, error) {
	parent, ok := s.userWorkspaces.Cached(userWorkspaceID)
	if !ok {
		return nil, ErrRecordNotFetched
	}

	var list []models.Workspace
	var err error
	if parent.IsLocal() {
		list, err = s.local.ListByUserWorkspace(ctx, userWorkspaceID)
	} else {
		list, err = s.adapter.FetchWorkspaces(ctx, userWorkspaceID)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch workspaces: %w", err)
	}

	s.mu.Lock()
	for _, ws := range list {
		s.cache[ws.WorkspaceID] = ws
	}
	s.mu.Unlock()

	return list, nil
}

func (s *clientWorkspaceService) Create(ctx context.Context, ws models.Workspace) (models.Workspace, error) {
	parent, ok := s.userWorkspaces.Cached(ws.UserWorkspaceID)
	if !ok {
		return models.Workspace{}, ErrRecordNotFetched
	}

	var created models.Workspace
	var err error
	if parent.IsLocal() {
		ws.WorkspaceID = s.uuid.Generate()
		created, err = s.local.Create(ctx, ws)
	} else {
		created, err = s.adapter.CreateWorkspace(ctx, ws)
	}
	if err != nil {
		return models.Workspace{}, fmt.Errorf("create workspace: %w", err)
	}

	s.put(created)
	return created, nil
}

func (s *clientWorkspaceService) Update(ctx context.Context, id string, update models.WorkspaceUpdate) (models.Workspace, error) {
	cached, ok := s.Cached(id)
	if !ok {
		return models.Workspace{}, ErrRecordNotFetched
	}

	var updated models.Workspace
	var err error
	if cached.Owner == "" {
		updated, err = s.local.Update(ctx, id, update)
	} else {
		updated, err = s.adapter.UpdateWorkspace(ctx, id, update)
	}
	if err != nil {
		return models.Workspace{}, fmt.Errorf("update workspace: %w", err)
	}

	s.put(updated)
	return updated, nil
}

func (s *clientWorkspaceService) Delete(ctx context.Context, id string) error {
	cached, ok := s.Cached(id)
	if !ok {
		return ErrRecordNotFetched
	}

	var err error
	if cached.Owner == "" {
		err = s.local.Delete(ctx, id)
	} else {
		err = s.adapter.DeleteWorkspace(ctx, id)
	}
	if err != nil {
		return fmt.Errorf("delete workspace: %w", err)
	}

	s.mu.Lock()
	delete(s.cache, id)
	s.mu.Unlock()

	return nil
}

func (s *clientWorkspaceService) Cached(id string) (models.Workspace, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ws, ok := s.cache[id]
	return ws, ok
}

func (s *clientWorkspaceService) put(ws models.Workspace) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[ws.WorkspaceID] = ws
}
