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

// DefaultUserWorkspaceName is the local container created on first run.
const DefaultUserWorkspaceName = "Personal"

type clientUserWorkspaceService struct {
	local   store.LocalUserWorkspaceRepository
	adapter adapter.ServerAdapter
	auth    ClientAuthService
	uuid    *utils.UUIDGenerator

	mu    sync.RWMutex
	cache map[string]models.UserWorkspace
}

func NewClientUserWorkspaceService(local store.LocalUserWorkspaceRepository, serverAdapter adapter.ServerAdapter, auth ClientAuthService) UserWorkspaceFetchService {
	return &clientUserWorkspaceService{
		local:   local,
		adapter: serverAdapter,
		auth:    auth,
		uuid:    utils.NewUUIDGenerator(),
		cache:   make(map[string]models.UserWorkspace),
	}
}

func (s *clientUserWorkspaceService) Fetch(ctx context.Context) ([]models.UserWorkspace, error) {
	localList, err := s.local.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch local userworkspaces: %w", err)
	}

	result := localList
	if _, signedIn := s.auth.CurrentUser(); signedIn {
		remoteList, err := s.adapter.FetchUserWorkspaces(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetch remote userworkspaces: %w", err)
		}
		result = append(result, remoteList...)
	}

	s.mu.Lock()
	s.cache = make(map[string]models.UserWorkspace, len(result))
	for _, uw := range result {
		s.cache[uw.UserWorkspaceID] = uw
	}
	s.mu.Unlock()

	return result, nil
}

func (s *clientUserWorkspaceService) Create(ctx context.Context, uw models.UserWorkspace) (models.UserWorkspace, error) {
	var created models.UserWorkspace
	var err error

	if uw.IsLocal() {
		uw.UserWorkspaceID = s.uuid.Generate()
		created, err = s.local.Create(ctx, uw)
	} else {
		created, err = s.adapter.CreateUserWorkspace(ctx, uw)
	}
	if err != nil {
		return models.UserWorkspace{}, fmt.Errorf("create userworkspace: %w", err)
	}

	s.put(created)
	return created, nil
}

func (s *clientUserWorkspaceService) Update(ctx context.Context, id string, update models.UserWorkspaceUpdate) (models.UserWorkspace, error) {
	cached, ok := s.Cached(id)
	if !ok {
		return models.UserWorkspace{}, ErrRecordNotFetched
	}

	var updated models.UserWorkspace
	var err error
	if cached.IsLocal() {
		updated, err = s.local.Update(ctx, id, update)
	} else {
		updated, err = s.adapter.UpdateUserWorkspace(ctx, id, update)
	}
	if err != nil {
		return models.UserWorkspace{}, fmt.Errorf("update userworkspace: %w", err)
	}

	s.put(updated)
	return updated, nil
}

func (s *clientUserWorkspaceService) Delete(ctx context.Context, id string) error {
	cached, ok := s.Cached(id)
	if !ok {
		return ErrRecordNotFetched
	}

	var err error
	if cached.IsLocal() {
		err = s.local.Delete(ctx, id)
	} else {
		err = s.adapter.DeleteUserWorkspace(ctx, id)
	}
	if err != nil {
		return fmt.Errorf("delete userworkspace: %w", err)
	}

	s.mu.Lock()
	delete(s.cache, id)
	s.mu.Unlock()

	return nil
}

func (s *clientUserWorkspaceService) Cached(id string) (models.UserWorkspace, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	uw, ok := s.cache[id]
	return uw, ok
}

// EnsureDefault makes the first run usable offline: an empty local store
// gets a "Personal" userworkspace.
func (s *clientUserWorkspaceService) EnsureDefault(ctx context.Context) (models.UserWorkspace, error) {
	localList, err := s.local.List(ctx)
	if err != nil {
		return models.UserWorkspace{}, fmt.Errorf("ensure default userworkspace: %w", err)
	}
	if len(localList) > 0 {
		s.put(localList[0])
		return localList[0], nil
	}

	return s.Create(ctx, models.UserWorkspace{Name: DefaultUserWorkspaceName})
}

func (s *clientUserWorkspaceService) put(uw models.UserWorkspace) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[uw.UserWorkspaceID] = uw
}
