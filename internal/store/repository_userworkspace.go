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

// userWorkspaceRepository is the PostgreSQL-backed implementation of
// [UserWorkspaceRepository]. Deletes cascade to workspaces and notes via
// the schema's foreign keys; nothing is cleaned up in application code.
type userWorkspaceRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewUserWorkspaceRepository(db *DB, logger *logger.Logger) UserWorkspaceRepository {
	logger.Debug().Msg("creating userworkspace repository")
	return &userWorkspaceRepository{
		db:     db,
		logger: logger,
	}
}

func scanUserWorkspace(row *sql.Row) (models.UserWorkspace, error) {
	var uw models.UserWorkspace
	err := row.Scan(&uw.UserWorkspaceID, &uw.Owner, &uw.Name, &uw.Icon, &uw.CreatedAt, &uw.UpdatedAt)
	return uw, err
}

func (r *userWorkspaceRepository) Create(ctx context.Context, uw models.UserWorkspace) (models.UserWorkspace, error) {
	log := logger.FromContext(ctx)

	created, err := scanUserWorkspace(r.db.QueryRowContext(ctx, createUserWorkspace, uw.Owner, uw.Name, uw.Icon))
	if err != nil {
		log.Err(err).Str("func", "*userWorkspaceRepository.Create").Str("owner", uw.Owner).Msg("error creating userworkspace")

		switch postgresError(err) {
		case pgerrcode.ForeignKeyViolation:
			return models.UserWorkspace{}, ErrNoUserWasFound
		default:
			return models.UserWorkspace{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return created, nil
}

func (r *userWorkspaceRepository) ListByOwner(ctx context.Context, owner string) ([]models.UserWorkspace, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listUserWorkspacesByOwner, owner)
	if err != nil {
		log.Err(err).Str("func", "*userWorkspaceRepository.ListByOwner").Str("owner", owner).Msg("error listing userworkspaces")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	var result []models.UserWorkspace
	for rows.Next() {
		var uw models.UserWorkspace
		if err = rows.Scan(&uw.UserWorkspaceID, &uw.Owner, &uw.Name, &uw.Icon, &uw.CreatedAt, &uw.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan userworkspace row: %w", err)
		}
		result = append(result, uw)
	}

	return result, rows.Err()
}

// Update builds the partial UPDATE dynamically: only the supplied fields go
// into the SET clause. The owner filter rides along with the primary key so
// a guessed id owned by someone else behaves exactly like a missing row.
func (r *userWorkspaceRepository) Update(ctx context.Context, id, owner string, update models.UserWorkspaceUpdate) (models.UserWorkspace, error) {
	log := logger.FromContext(ctx)

	builder := sq.Update("userworkspaces").
		PlaceholderFormat(sq.Dollar).
		Where(sq.Eq{"userworkspace_id": id, "owner": owner}).
		Suffix("RETURNING userworkspace_id, owner, name, icon, created_at, updated_at")

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
		return models.UserWorkspace{}, fmt.Errorf("error building update query: %w", err)
	}

	updated, err := scanUserWorkspace(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.UserWorkspace{}, ErrUserWorkspaceNotFound
		}
		log.Err(err).Str("func", "*userWorkspaceRepository.Update").Str("id", id).Msg("error updating userworkspace")
		return models.UserWorkspace{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return updated, nil
}

func (r *userWorkspaceRepository) Delete(ctx context.Context, id, owner string) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, deleteUserWorkspace, id, owner)
	if err != nil {
		log.Err(err).Str("func", "*userWorkspaceRepository.Delete").Str("id", id).Msg("error deleting userworkspace")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrUserWorkspaceNotFound
	}

	return nil
}
