package service

import (
	"context"
	"fmt"

	"github.com/nvoronin/inkwell/internal/logger"
	"github.com/nvoronin/inkwell/internal/store"
	"github.com/nvoronin/inkwell/models"
)

type workspaceService struct {
	repository store.WorkspaceRepository
	logger     *logger.Logger
}

func NewWorkspaceService(repository store.WorkspaceRepository, logger *logger.Logger) WorkspaceService {
	return &workspaceService{repository: repository, logger: logger}
}

func (s *workspaceService) Create(ctx context.Context, owner string, ws models.Workspace) (models.Workspace, error) {
	log := logger.FromContext(ctx)

	if ws.Name == "" || ws.UserWorkspaceID == "" {
		log.Error().Str("owner", owner).Msg("workspace name and userworkspace are required")
		return models.Workspace{}, ErrInvalidDataProvided
	}
	ws.Owner = owner

	created, err := s.repository.Create(ctx, ws)
	if err != nil {
		log.Err(err).Str("owner", owner).Str("userworkspaceID", ws.UserWorkspaceID).Msg("workspace creation failed")
		return models.Workspace{}, fmt.Errorf("workspace creation failed: %w", err)
	}

	return created, nil
}

func (s *workspaceService) List(ctx context.Context, userWorkspaceID, owner string) ([]models.Workspace, error) {
	if userWorkspaceID == "" {
		return nil, ErrInvalidDataProvided
	}

	list, err := s.repository.ListByUserWorkspace(ctx, userWorkspaceID, owner)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("userworkspaceID", userWorkspaceID).Msg("workspace listing failed")
		return nil, fmt.Errorf("workspace listing failed: %w", err)
	}

	return list, nil
}

func (s *workspaceService) Update(ctx context.Context, id, owner string, update models.WorkspaceUpdate) (models.Workspace, error) {
	updated, err := s.repository.Update(ctx, id, owner, update)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("id", id).Str("owner", owner).Msg("workspace update failed")
		return models.Workspace{}, fmt.Errorf("workspace update failed: %w", err)
	}

	return updated, nil
}

func (s *workspaceService) Delete(ctx context.Context, id, owner string) error {
	if err := s.repository.Delete(ctx, id, owner); err != nil {
		logger.FromContext(ctx).Err(err).Str("id", id).Str("owner", owner).Msg("workspace deletion failed")
		return fmt.Errorf("workspace deletion failed: %w", err)
	}

	return nil
}
