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

// localUserWorkspaceRepository is the SQLite-backed implementation of
// [LocalUserWorkspaceRepository].
type localUserWorkspaceRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewLocalUserWorkspaceRepository(db *DB, logger *logger.Logger) LocalUserWorkspaceRepository {
	logger.Debug().Msg("creating local userworkspace repository")
	return &localUserWorkspaceRepository{db: db, logger: logger}
}

func scanLocalUserWorkspace(row interface{ Scan(dest ...any) error }) (models.UserWorkspace, error) {
	var uw models.UserWorkspace
	err := row.Scan(&uw.UserWorkspaceID, &uw.Name, &uw.Icon, &uw.CreatedAt, &uw.UpdatedAt)
	return uw, err
}

func (s *localUserWorkspaceRepository) Create(ctx context.Context, uw models.UserWorkspace) (models.UserWorkspace, error) {
	_, err := s.db.ExecContext(ctx, localCreateUserWorkspace, uw.UserWorkspaceID, uw.Name, uw.Icon)
	if err != nil {
		return models.UserWorkspace{}, fmt.Errorf("local create userworkspace: %w", err)
	}
	return s.get(ctx, uw.UserWorkspaceID)
}

func (s *localUserWorkspaceRepository) get(ctx context.Context, id string) (models.UserWorkspace, error) {
	uw, err := scanLocalUserWorkspace(s.db.QueryRowContext(ctx, localGetUserWorkspace, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.UserWorkspace{}, ErrUserWorkspaceNotFound
	}
	if err != nil {
		return models.UserWorkspace{}, fmt.Errorf("local get userworkspace: %w", err)
	}
	return uw, nil
}

func (s *localUserWorkspaceRepository) List(ctx context.Context) ([]models.UserWorkspace, error) {
	rows, err := s.db.QueryContext(ctx, localListUserWorkspaces)
	if err != nil {
		return nil, fmt.Errorf("local list userworkspaces: %w", err)
	}
	defer rows.Close()

	var list []models.UserWorkspace
	for rows.Next() {
		uw, err := scanLocalUserWorkspace(rows)
		if err != nil {
			return nil, fmt.Errorf("local list userworkspaces: %w", err)
		}
		list = append(list, uw)
	}
	return list, rows.Err()
}

func (s *localUserWorkspaceRepository) Update(ctx context.Context, id string, update models.UserWorkspaceUpdate) (models.UserWorkspace, error) {
	builder := sq.Update("userworkspaces").Where(sq.Eq{"userworkspace_id": id})
	changed := false
	if update.Name != nil {
		builder = builder.Set("name", *update.Name)
		changed = true
	}
	if update.Icon != nil {
		builder = builder.Set("icon", *update.Icon)
		changed = true
	}
	if !changed {
		return models.UserWorkspace{}, ErrNothingToUpdate
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return models.UserWorkspace{}, fmt.Errorf("local update userworkspace: %w", err)
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return models.UserWorkspace{}, fmt.Errorf("local update userworkspace: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return models.UserWorkspace{}, ErrUserWorkspaceNotFound
	}
	return s.get(ctx, id)
}

func (s *localUserWorkspaceRepository) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, localDeleteUserWorkspace, id)
	if err != nil {
		return fmt.Errorf("local delete userworkspace: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrUserWorkspaceNotFound
	}
	return nil
}
