package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"

	"github.com/nvoronin/inkwell/internal/logger"
	"github.com/nvoronin/inkwell/models"
)

type workspaceRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewWorkspaceRepository(db *DB, logger *logger.Logger) WorkspaceRepository {
	logger.Debug().Msg("creating workspace repository")
	return &workspaceRepository{
		db:     db,
		logger: logger,
	}
}

func scanWorkspace(row *sql.Row) (models.Workspace, error) {
	var ws models.Workspace
	err := row.Scan(&ws.WorkspaceID, &ws.UserWorkspaceID, &ws.Owner, &ws.Name, &ws.Icon, &ws.Description, &ws.CreatedAt, &ws.UpdatedAt)
	return ws, err
}

func (r *workspaceRepository) Create(ctx context.Context, ws models.Workspace) (models.Workspace, error) {
	log := logger.FromContext(ctx)

	created, err := scanWorkspace(r.db.QueryRowContext(ctx, createWorkspace, ws.UserWorkspaceID, ws.Owner, ws.Name, ws.Icon, ws.Description))
	if err != nil {
		log.Err(err).Str("func", "*workspaceRepository.Create").Str("userworkspace_id", ws.UserWorkspaceID).Msg("error creating workspace")

		switch postgresError(err) {
		case pgerrcode.ForeignKeyViolation:
			return models.Workspace{}, ErrIntegrityViolation
		default:
			return models.Workspace{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return created, nil
}

func (r *workspaceRepository) ListByUserWorkspace(ctx context.Context, userWorkspaceID, owner string) ([]models.Workspace, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listWorkspacesByUserWorkspace, userWorkspaceID, owner)
	if err != nil {
		log.Err(err).Str("func", "*workspaceRepository.ListByUserWorkspace").Str("userworkspace_id", userWorkspaceID).Msg("error listing workspaces")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	var result []models.Workspace
	for rows.Next() {
		var ws models.Workspace
		if err = rows.Scan(&ws.WorkspaceID, &ws.UserWorkspaceID, &ws.Owner, &ws.Name, &ws.Icon, &ws.Description, &ws.CreatedAt, &ws.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan workspace row: %w", err)
		}
		result = append(result, ws)
	}

	return result, rows.Err()
}

func (r *workspaceRepository) Update(ctx context.Context, id, owner string, update models.WorkspaceUpdate) (models.Workspace, error) {
	log := logger.FromContext(ctx)

	builder := sq.Update("workspaces").
		PlaceholderFormat(sq.Dollar).
		Where(sq.Eq{"workspace_id": id, "owner": owner}).
		Suffix("RETURNING workspace_id, userworkspace_id, owner, name, icon, description, created_at, updated_at")

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
		return models.Workspace{}, fmt.Errorf("error building update query: %w", err)
	}

	updated, err := scanWorkspace(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Workspace{}, ErrWorkspaceNotFound
		}
		log.Err(err).Str("func", "*workspaceRepository.Update").Str("id", id).Msg("error updating workspace")
		return models.Workspace{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return updated, nil
}

func (r *workspaceRepository) Delete(ctx context.Context, id, owner string) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, deleteWorkspace, id, owner)
	if err != nil {
		log.Err(err).Str("func", "*workspaceRepository.Delete").Str("id", id).Msg("error deleting workspace")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrWorkspaceNotFound
	}

	return nil
}
