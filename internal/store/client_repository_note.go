package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/nvoronin/inkwell/internal/logger"
	"github.com/nvoronin/inkwell/internal/utils"
	"github.com/nvoronin/inkwell/models"
)

// localNoteRepository is the SQLite-backed implementation of
// [LocalNoteRepository]. Content history is maintained by the schema's
// triggers, so every content write below goes through a plain UPDATE.
type localNoteRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewLocalNoteRepository(db *DB, logger *logger.Logger) LocalNoteRepository {
	logger.Debug().Msg("creating local note repository")
	return &localNoteRepository{db: db, logger: logger}
}

func scanLocalNote(row interface{ Scan(dest ...any) error }) (models.Note, error) {
	var n models.Note
	var content []byte
	err := row.Scan(&n.NoteID, &n.WorkspaceID, &n.UserWorkspaceID, &n.Name, &n.Icon,
		&n.Favorite, &n.Trashed, &content, &n.CreatedAt, &n.UpdatedAt)
	n.Content = content
	return n, err
}

func (s *localNoteRepository) Create(ctx context.Context, note models.Note) (models.Note, error) {
	content := note.Content
	if len(content) == 0 {
		content = []byte(`{}`)
	}

	res, err := s.db.ExecContext(ctx, localCreateNote,
		note.NoteID, note.Name, note.Icon, string(content), note.WorkspaceID, note.UserWorkspaceID)
	if err != nil {
		return models.Note{}, fmt.Errorf("local create note: %w", err)
	}
	// The guarded INSERT...SELECT inserts nothing when the workspace does
	// not exist or belongs to a different userworkspace.
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return models.Note{}, ErrWorkspaceNotFound
	}
	return s.Get(ctx, note.NoteID)
}

func (s *localNoteRepository) Get(ctx context.Context, id string) (models.Note, error) {
	n, err := scanLocalNote(s.db.QueryRowContext(ctx, localGetNote, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Note{}, ErrNoteNotFound
	}
	if err != nil {
		return models.Note{}, fmt.Errorf("local get note: %w", err)
	}
	return n, nil
}

func (s *localNoteRepository) ListByWorkspace(ctx context.Context, workspaceID string) ([]models.Note, error) {
	rows, err := s.db.QueryContext(ctx, localListNotes, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("local list notes: %w", err)
	}
	defer rows.Close()

	var list []models.Note
	for rows.Next() {
		n, err := scanLocalNote(rows)
		if err != nil {
			return nil, fmt.Errorf("local list notes: %w", err)
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

func (s *localNoteRepository) Update(ctx context.Context, id string, update models.NoteUpdate) (models.Note, error) {
	builder := sq.Update("notes").Where(sq.Eq{"note_id": id})
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
	// update.Public is meaningless in the local store: sharing only exists
	// for remote notes, and the local schema carries no such column.
	if !changed {
		return models.Note{}, ErrNothingToUpdate
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return models.Note{}, fmt.Errorf("local update note: %w", err)
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isLocalFKViolation(err) {
			return models.Note{}, ErrWorkspaceNotFound
		}
		return models.Note{}, fmt.Errorf("local update note: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return models.Note{}, ErrNoteNotFound
	}
	return s.Get(ctx, id)
}

func (s *localNoteRepository) UpdateContent(ctx context.Context, id string, content []byte) (models.Note, error) {
	res, err := s.db.ExecContext(ctx, localUpdateNoteContent, string(content), id)
	if err != nil {
		return models.Note{}, fmt.Errorf("local update note content: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return models.Note{}, ErrNoteNotFound
	}
	return s.Get(ctx, id)
}

// ApplyPatch reads, patches, and writes back the content document inside one
// transaction. The write-back fires the history trigger exactly as a direct
// content update would, so the snapshot window stays consistent between the
// two paths.
func (s *localNoteRepository) ApplyPatch(ctx context.Context, id string, ops []models.PatchOperation) (models.Note, error) {
	if err := models.ValidatePatch(ops); err != nil {
		return models.Note{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Note{}, fmt.Errorf("local apply patch: %w", err)
	}
	defer tx.Rollback()

	var content []byte
	err = tx.QueryRowContext(ctx, `SELECT content FROM notes WHERE note_id = ?;`, id).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Note{}, ErrNoteNotFound
	}
	if err != nil {
		return models.Note{}, fmt.Errorf("local apply patch: %w", err)
	}

	patched, err := utils.ApplyJSONPatch(content, ops)
	if err != nil {
		return models.Note{}, err
	}

	if _, err = tx.ExecContext(ctx, localUpdateNoteContent, string(patched), id); err != nil {
		return models.Note{}, fmt.Errorf("local apply patch: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return models.Note{}, fmt.Errorf("local apply patch: %w", err)
	}

	return s.Get(ctx, id)
}

func (s *localNoteRepository) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, localDeleteNote, id)
	if err != nil {
		return fmt.Errorf("local delete note: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNoteNotFound
	}
	return nil
}

func (s *localNoteRepository) History(ctx context.Context, noteID string) ([]models.NoteHistory, error) {
	rows, err := s.db.QueryContext(ctx, localNoteHistory, noteID)
	if err != nil {
		return nil, fmt.Errorf("local note history: %w", err)
	}
	defer rows.Close()

	var list []models.NoteHistory
	for rows.Next() {
		var h models.NoteHistory
		var content []byte
		if err = rows.Scan(&h.HistoryID, &h.NoteID, &content, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("local note history: %w", err)
		}
		h.Content = content
		list = append(list, h)
	}
	return list, rows.Err()
}
