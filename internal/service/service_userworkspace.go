package service

import (
	"context"
	"fmt"

	"github.com/nvoronin/inkwell/internal/logger"
	"github.com/nvoronin/inkwell/internal/store"
	"github.com/nvoronin/inkwell/models"
)

type userWorkspaceService struct {
	repository store.UserWorkspaceRepository
	logger     *logger.Logger
}

func NewUserWorkspaceService(repository store.UserWorkspaceRepository, logger *logger.Logger) UserWorkspaceService {
	return &userWorkspaceService{repository: repository, logger: logger}
}

func (s *userWorkspaceService) Create(ctx context.Context, owner string, uw models.UserWorkspace) (models.UserWorkspace, error) {
	log := logger.FromContext(ctx)

	if uw.Name == "" {
		log.Error().Str("owner", owner).Msg("userworkspace name is required")
		return models.UserWorkspace{}, ErrInvalidDataProvided
	}
	uw.Owner = owner

	created, err := s.repository.Create(ctx, uw)
	if err != nil {
		log.Err(err).Str("owner", owner).Msg("userworkspace creation failed")
		return models.UserWorkspace{}, fmt.Errorf("userworkspace creation failed: %w", err)
	}

	return created, nil
}

func (s *userWorkspaceService) List(ctx context.Context, owner string) ([]models.UserWorkspace, error) {
	list, err := s.repository.ListByOwner(ctx, owner)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("owner", owner).Msg("userworkspace listing failed")
		return nil, fmt.Errorf("userworkspace listing failed: %w", err)
	}

	return list, nil
}

func (s *userWorkspaceService) Update(ctx context.Context, id, owner string, update models.UserWorkspaceUpdate) (models.UserWorkspace, error) {
	updated, err := s.repository.Update(ctx, id, owner, update)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("id", id).Str("owner", owner).Msg("userworkspace update failed")
		return models.UserWorkspace{}, fmt.Errorf("userworkspace update failed: %w", err)
	}

	return updated, nil
}

func (s *userWorkspaceService) Delete(ctx context.Context, id, owner string) error {
	if err := s.repository.Delete(ctx, id, owner); err != nil {
		logger.FromContext(ctx).Err(err).Str("id", id).Str("owner", owner).Msg("userworkspace deletion failed")
		return fmt.Errorf("userworkspace deletion failed: %w", err)
	}

	return nil
}
