package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"

	"github.com/nvoronin/inkwell/internal/logger"
	"github.com/nvoronin/inkwell/models"
)

const noteColumns = "note_id, workspace_id, userworkspace_id, owner, name, icon, favorite, trashed, public, content, created_at, updated_at"

type noteRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewNoteRepository(db *DB, logger *logger.Logger) NoteRepository {
	logger.Debug().Msg("creating note repository")
	return &noteRepository{
		db:     db,
		logger: logger,
	}
}

func scanNote(row *sql.Row) (models.Note, error) {
	var n models.Note
	var content []byte
	err := row.Scan(&n.NoteID, &n.WorkspaceID, &n.UserWorkspaceID, &n.Owner, &n.Name, &n.Icon, &n.Favorite, &n.Trashed, &n.Public, &content, &n.CreatedAt, &n.UpdatedAt)
	n.Content = content
	return n, err
}

// Create inserts the note through an INSERT...SELECT against the workspaces
// table: the row only materializes when the target workspace exists, belongs
// to the acting user, and sits inside the claimed userworkspace. An
// inconsistent workspace/userworkspace pair comes back as no rows.
func (r *noteRepository) Create(ctx context.Context, note models.Note) (models.Note, error) {
	log := logger.FromContext(ctx)

	content := note.Content
	if len(content) == 0 {
		content = json.RawMessage(`{}`)
	}

	created, err := scanNote(r.db.QueryRowContext(ctx, createNote,
		note.WorkspaceID, note.UserWorkspaceID, note.Owner, note.Name, note.Icon, []byte(content)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, ErrWorkspaceNotFound
		}
		log.Err(err).Str("func", "*noteRepository.Create").Str("workspace_id", note.WorkspaceID).Msg("error creating note")

		switch postgresError(err) {
		case pgerrcode.ForeignKeyViolation:
			return models.Note{}, ErrIntegrityViolation
		default:
			return models.Note{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return created, nil
}

func (r *noteRepository) Get(ctx context.Context, id, owner string) (models.Note, error) {
	log := logger.FromContext(ctx)

	found, err := scanNote(r.db.QueryRowContext(ctx, getNote, id, owner))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, ErrNoteNotFound
		}
		log.Err(err).Str("func", "*noteRepository.Get").Str("id", id).Msg("error getting note")
		return models.Note{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

func (r *noteRepository) ListByWorkspace(ctx context.Context, workspaceID, owner string) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listNotesByWorkspace, workspaceID, owner)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.ListByWorkspace").Str("workspace_id", workspaceID).Msg("error listing notes")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	var result []models.Note
	for rows.Next() {
		var n models.Note
		var content []byte
		if err = rows.Scan(&n.NoteID, &n.WorkspaceID, &n.UserWorkspaceID, &n.Owner, &n.Name, &n.Icon, &n.Favorite, &n.Trashed, &n.Public, &content, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan note row: %w", err)
		}
		n.Content = content
		result = append(result, n)
	}

	return result, rows.Err()
}

// Update covers the metadata fields only; content goes through ApplyPatch.
func (r *noteRepository) Update(ctx context.Context, id, owner string, update models.NoteUpdate) (models.Note, error) {
	log := logger.FromContext(ctx)

	builder := sq.Update("notes").
		PlaceholderFormat(sq.Dollar).
		Where(sq.Eq{"note_id": id, "owner": owner}).
		Suffix("RETURNING " + noteColumns)

	changed := false
	if update.Name != nil {
		builder = builder.Set("name", *update.Name)
		changed = true
	}
	if update.Icon != nil {
		builder = builder.Set("icon", *update.Icon)
		changed = true
	}
	if update.WorkspaceID != nil {
		builder = builder.Set("workspace_id", *update.WorkspaceID)
		changed = true
	}
	if update.Favorite != nil {
		builder = builder.Set("favorite", *update.Favorite)
		changed = true
	}
	if update.Trashed != nil {
		builder = builder.Set("trashed", *update.Trashed)
		changed = true
	}
	if update.Public != nil {
		builder = builder.Set("public", *update.Public)
		changed = true
	}
	if !changed {
		return models.Note{}, ErrNothingToUpdate
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return models.Note{}, fmt.Errorf("error building update query: %w", err)
	}

	updated, err := scanNote(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, ErrNoteNotFound
		}
		log.Err(err).Str("func", "*noteRepository.Update").Str("id", id).Msg("error updating note")

		switch postgresError(err) {
		case pgerrcode.ForeignKeyViolation:
			return models.Note{}, ErrIntegrityViolation
		default:
			return models.Note{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return updated, nil
}

func (r *noteRepository) Delete(ctx context.Context, id, owner string) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, deleteNote, id, owner)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.Delete").Str("id", id).Msg("error deleting note")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrNoteNotFound
	}

	return nil
}

// ApplyPatch hands the whole operation list to the apply_note_patch stored
// function. The function's SQLSTATEs come back as typed errors:
//   - no_data_found (P0002)          → [ErrNoteNotFound]
//   - insufficient_privilege (42501) → [ErrPermissionDenied]
//   - invalid_parameter_value (22023)→ [models.ErrInvalidPatchOp]
func (r *noteRepository) ApplyPatch(ctx context.Context, id, owner string, ops []models.PatchOperation) error {
	log := logger.FromContext(ctx)

	payload, err := json.Marshal(ops)
	if err != nil {
		return fmt.Errorf("error encoding patch operations: %w", err)
	}

	if _, err = r.db.ExecContext(ctx, applyNotePatch, id, owner, payload); err != nil {
		switch postgresError(err) {
		case pgerrcode.NoDataFound:
			return ErrNoteNotFound
		case pgerrcode.InsufficientPrivilege:
			return ErrPermissionDenied
		case pgerrcode.InvalidParameterValue:
			return models.ErrInvalidPatchOp
		default:
			log.Err(err).Str("func", "*noteRepository.ApplyPatch").Str("id", id).Msg("error applying note patch")
			return fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return nil
}
