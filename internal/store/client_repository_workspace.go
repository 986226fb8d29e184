package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/nvoronin/inkwell/internal/logger"
	"github.com/nvoronin/inkwell/models"
)

// localWorkspaceRepository is the SQLite-backed implementation of
// [LocalWorkspaceRepository].
type localWorkspaceRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewLocalWorkspaceRepository(db *DB, logger *logger.Logger) LocalWorkspaceRepository {
	logger.Debug().Msg("creating local workspace repository")
	return &localWorkspaceRepository{db: db, logger: logger}
}

func scanLocalWorkspace(row interface{ Scan(dest ...any) error }) (models.Workspace, error) {
	var ws models.Workspace
	err := row.Scan(&ws.WorkspaceID, &ws.UserWorkspaceID, &ws.Name, &ws.Icon, &ws.Description, &ws.CreatedAt, &ws.UpdatedAt)
	return ws, err
}

func (s *localWorkspaceRepository) Create(ctx context.Context, ws models.Workspace) (models.Workspace, error) {
	_, err := s.db.ExecContext(ctx, localCreateWorkspace,
		ws.WorkspaceID, ws.UserWorkspaceID, ws.Name, ws.Icon, ws.Description)
	if err != nil {
		if isLocalFKViolation(err) {
			return models.Workspace{}, ErrUserWorkspaceNotFound
		}
		return models.Workspace{}, fmt.Errorf("local create workspace: %w", err)
	}
	return s.get(ctx, ws.WorkspaceID)
}

func (s *localWorkspaceRepository) get(ctx context.Context, id string) (models.Workspace, error) {
	ws, err := scanLocalWorkspace(s.db.QueryRowContext(ctx, localGetWorkspace, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Workspace{}, ErrWorkspaceNotFound
	}
	if err != nil {
		return models.Workspace{}, fmt.Errorf("local get workspace: %w", err)
	}
	return ws, nil
}

func (s *localWorkspaceRepository) ListByUserWorkspace(ctx context.Context, userWorkspaceID string) ([]models.Workspace, error) {
	rows, err := s.db.QueryContext(ctx, localListWorkspaces, userWorkspaceID)
	if err != nil {
		return nil, fmt.Errorf("local list workspaces: %w", err)
	}
	defer rows.Close()

	var list []models.Workspace
	for rows.Next() {
		ws, err := scanLocalWorkspace(rows)
		if err != nil {
			return nil, fmt.Errorf("local list workspaces: %w", err)
		}
		list = append(list, ws)
	}
	return list, rows.Err()
}

func (s *localWorkspaceRepository) Update(ctx context.Context, id string, update models.WorkspaceUpdate) (models.Workspace, error) {
	builder := sq.Update("workspaces").Where(sq.Eq{"workspace_id": id})
	changed := false
	if update.Name != nil {
		builder = builder.Set("name", *update.Name)
		changed = true
	}
	if update.Icon != nil {
		builder = builder.Set("icon", *update.Icon)
		changed = true
	}
	if update.Description != nil {
		builder = builder.Set("description", *update.Description)
		changed = true
	}
	if !changed {
		return models.Workspace{}, ErrNothingToUpdate
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return models.Workspace{}, fmt.Errorf("local update workspace: %w", err)
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return models.Workspace{}, fmt.Errorf("local update workspace: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return models.Workspace{}, ErrWorkspaceNotFound
	}
	return s.get(ctx, id)
}

func (s *localWorkspaceRepository) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, localDeleteWorkspace, id)
	if err != nil {
		return fmt.Errorf("local delete workspace: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrWorkspaceNotFound
	}
	return nil
}
