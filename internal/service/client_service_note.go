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

type clientNoteService struct {
	local      store.LocalNoteRepository
	adapter    adapter.ServerAdapter
	workspaces WorkspaceFetchService
	uuid       *utils.UUIDGenerator

	mu    sync.RWMutex
	cache map[string]models.Note
}

func NewClientNoteService(local store.LocalNoteRepository, serverAdapter adapter.ServerAdapter, workspaces WorkspaceFetchService) NoteFetchService {
	return &clientNoteService{
		local:      local,
		adapter:    serverAdapter,
		workspaces: workspaces,
		uuid:       utils.NewUUIDGenerator(),
		cache:      make(map[string]models.Note),
	}
}

func (s *clientNoteService) Fetch(ctx context.Context, workspaceID string) ([]models.Note, error) {
	parent, ok := s.workspaces.Cached(workspaceID)
	if !ok {
		return nil, ErrRecordNotFetched
	}

	var list []models.Note
	var err error
	if parent.Owner == "" {
		list, err = s.local.ListByWorkspace(ctx, workspaceID)
	} else {
		list, err = s.adapter.FetchNotes(ctx, workspaceID)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch notes: %w", err)
	}

	s.mu.Lock()
	for _, n := range list {
		s.cache[n.NoteID] = n
	}
	s.mu.Unlock()

	return list, nil
}

func (s *clientNoteService) Get(ctx context.Context, id string) (models.Note, error) {
	cached, ok := s.Cached(id)
	if !ok {
		return models.Note{}, ErrRecordNotFetched
	}

	var note models.Note
	var err error
	if cached.Owner == "" {
		note, err = s.local.Get(ctx, id)
	} else {
		note, err = s.adapter.GetNote(ctx, id)
	}
	if err != nil {
		return models.Note{}, fmt.Errorf("get note: %w", err)
	}

	s.put(note)
	return note, nil
}

func (s *clientNoteService) Create(ctx context.Context, note models.Note) (models.Note, error) {
	parent, ok := s.workspaces.Cached(note.WorkspaceID)
	if !ok {
		return models.Note{}, ErrRecordNotFetched
	}
	note.UserWorkspaceID = parent.UserWorkspaceID

	var created models.Note
	var err error
	if parent.Owner == "" {
		note.NoteID = s.uuid.Generate()
		created, err = s.local.Create(ctx, note)
	} else {
		created, err = s.adapter.CreateNote(ctx, note)
	}
	if err != nil {
		return models.Note{}, fmt.Errorf("create note: %w", err)
	}

	s.put(created)
	return created, nil
}

func (s *clientNoteService) Update(ctx context.Context, id string, update models.NoteUpdate) (models.Note, error) {
	cached, ok := s.Cached(id)
	if !ok {
		return models.Note{}, ErrRecordNotFetched
	}

	var updated models.Note
	var err error
	if cached.Owner == "" {
		updated, err = s.local.Update(ctx, id, update)
	} else {
		updated, err = s.adapter.UpdateNote(ctx, id, update)
	}
	if err != nil {
		return models.Note{}, fmt.Errorf("update note: %w", err)
	}

	s.put(updated)
	return updated, nil
}

func (s *clientNoteService) Delete(ctx context.Context, id string) error {
	cached, ok := s.Cached(id)
	if !ok {
		return ErrRecordNotFetched
	}

	var err error
	if cached.Owner == "" {
		err = s.local.Delete(ctx, id)
	} else {
		err = s.adapter.DeleteNote(ctx, id)
	}
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}

	s.mu.Lock()
	delete(s.cache, id)
	s.mu.Unlock()

	return nil
}

// ApplyPatch sends the whole operation list to the owning store. Locally it
// runs in one SQLite transaction; remotely the stored function applies it
// under a row lock. Either way the cache is refreshed with the winning
// content afterwards.
func (s *clientNoteService) ApplyPatch(ctx context.Context, id string, ops []models.PatchOperation) (models.Note, error) {
	cached, ok := s.Cached(id)
	if !ok {
		return models.Note{}, ErrRecordNotFetched
	}

	var patched models.Note
	var err error
	if cached.Owner == "" {
		patched, err = s.local.ApplyPatch(ctx, id, ops)
	} else {
		if err = s.adapter.PatchNoteContent(ctx, id, ops); err == nil {
			patched, err = s.adapter.GetNote(ctx, id)
		}
	}
	if err != nil {
		return models.Note{}, fmt.Errorf("patch note: %w", err)
	}

	s.put(patched)
	return patched, nil
}

func (s *clientNoteService) History(ctx context.Context, id string) ([]models.NoteHistory, error) {
	cached, ok := s.Cached(id)
	if !ok {
		return nil, ErrRecordNotFetched
	}
	if cached.Owner != "" {
		return nil, ErrNoHistoryForCloudNotes
	}

	history, err := s.local.History(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("note history: %w", err)
	}
	return history, nil
}

func (s *clientNoteService) Cached(id string) (models.Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.cache[id]
	return n, ok
}

func (s *clientNoteService) put(n models.Note) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[n.NoteID] = n
}
