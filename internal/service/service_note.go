package service

import (
	"context"
	"fmt"

	"github.com/nvoronin/inkwell/internal/logger"
	"github.com/nvoronin/inkwell/internal/store"
	"github.com/nvoronin/inkwell/models"
)

type noteService struct {
	repository store.NoteRepository
	logger     *logger.Logger
}

func NewNoteService(repository store.NoteRepository, logger *logger.Logger) NoteService {
	return &noteService{repository: repository, logger: logger}
}

func (s *noteService) Create(ctx context.Context, owner string, note models.Note) (models.Note, error) {
	log := logger.FromContext(ctx)

	if note.Name == "" || note.WorkspaceID == "" || note.UserWorkspaceID == "" {
		log.Error().Str("owner", owner).Msg("note name, workspace and userworkspace are required")
		return models.Note{}, ErrInvalidDataProvided
	}
	note.Owner = owner
	if len(note.Content) == 0 {
		note.Content = []byte(`{}`)
	}

	created, err := s.repository.Create(ctx, note)
	if err != nil {
		log.Err(err).Str("owner", owner).Str("workspaceID", note.WorkspaceID).Msg("note creation failed")
		return models.Note{}, fmt.Errorf("note creation failed: %w", err)
	}

	return created, nil
}

func (s *noteService) Get(ctx context.Context, id, owner string) (models.Note, error) {
	note, err := s.repository.Get(ctx, id, owner)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("id", id).Str("owner", owner).Msg("note lookup failed")
		return models.Note{}, fmt.Errorf("note lookup failed: %w", err)
	}

	return note, nil
}

func (s *noteService) List(ctx context.Context, workspaceID, owner string) ([]models.Note, error) {
	if workspaceID == "" {
		return nil, ErrInvalidDataProvided
	}

	list, err := s.repository.ListByWorkspace(ctx, workspaceID, owner)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("workspaceID", workspaceID).Msg("note listing failed")
		return nil, fmt.Errorf("note listing failed: %w", err)
	}

	return list, nil
}

func (s *noteService) Update(ctx context.Context, id, owner string, update models.NoteUpdate) (models.Note, error) {
	updated, err := s.repository.Update(ctx, id, owner, update)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("id", id).Str("owner", owner).Msg("note update failed")
		return models.Note{}, fmt.Errorf("note update failed: %w", err)
	}

	return updated, nil
}

func (s *noteService) Delete(ctx context.Context, id, owner string) error {
	if err := s.repository.Delete(ctx, id, owner); err != nil {
		logger.FromContext(ctx).Err(err).Str("id", id).Str("owner", owner).Msg("note deletion failed")
		return fmt.Errorf("note deletion failed: %w", err)
	}

	return nil
}

// ApplyPatch validates the operation list up front and then delegates the
// whole batch to the database. Concurrent patches to the same note serialize
// on the row lock; the last committed patch wins.
func (s *noteService) ApplyPatch(ctx context.Context, id, owner string, ops []models.PatchOperation) error {
	log := logger.FromContext(ctx)

	if err := models.ValidatePatch(ops); err != nil {
		log.Error().Str("id", id).Err(err).Msg("malformed patch")
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if err := s.repository.ApplyPatch(ctx, id, owner, ops); err != nil {
		log.Err(err).Str("id", id).Str("owner", owner).Msg("note patch failed")
		return fmt.Errorf("note patch failed: %w", err)
	}

	return nil
}
