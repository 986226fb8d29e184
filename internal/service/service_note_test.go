package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvoronin/inkwell/internal/logger"
	"github.com/nvoronin/inkwell/models"
)

type fakeNoteRepository struct {
	created models.Note
	err     error

	patchedID  string
	patchedOps []models.PatchOperation
}

func (f *fakeNoteRepository) Create(_ context.Context, note models.Note) (models.Note, error) {
	f.created = note
	return note, f.err
}

func (f *fakeNoteRepository) Get(_ context.Context, id, owner string) (models.Note, error) {
	return models.Note{NoteID: id, Owner: owner}, f.err
}

func (f *fakeNoteRepository) ListByWorkspace(_ context.Context, _, _ string) ([]models.Note, error) {
	return nil, f.err
}

func (f *fakeNoteRepository) Update(_ context.Context, id, owner string, _ models.NoteUpdate) (models.Note, error) {
	return models.Note{NoteID: id, Owner: owner}, f.err
}

func (f *fakeNoteRepository) Delete(_ context.Context, _, _ string) error {
	return f.err
}

func (f *fakeNoteRepository) ApplyPatch(_ context.Context, id, _ string, ops []models.PatchOperation) error {
	f.patchedID = id
	f.patchedOps = ops
	return f.err
}

func TestNoteCreate_RequiresNameAndParents(t *testing.T) {
	svc := NewNoteService(&fakeNoteRepository{}, logger.Nop())

	for _, note := range []models.Note{
		{WorkspaceID: "ws-1", UserWorkspaceID: "uw-1"},
		{Name: "n", UserWorkspaceID: "uw-1"},
		{Name: "n", WorkspaceID: "ws-1"},
	} {
		_, err := svc.Create(context.Background(), "user-1", note)
		assert.ErrorIs(t, err, ErrInvalidDataProvided, "note %+v", note)
	}
}

func TestNoteCreate_SetsOwnerAndDefaultContent(t *testing.T) {
	repo := &fakeNoteRepository{}
	svc := NewNoteService(repo, logger.Nop())

	_, err := svc.Create(context.Background(), "user-1", models.Note{
		Name:            "n",
		WorkspaceID:     "ws-1",
		UserWorkspaceID: "uw-1",
		Owner:           "spoofed",
	})
	require.NoError(t, err)

	// The owner always comes from the authenticated context, never the
	// request body.
	assert.Equal(t, "user-1", repo.created.Owner)
	assert.JSONEq(t, `{}`, string(repo.created.Content))
}

func TestNoteList_RequiresWorkspace(t *testing.T) {
	svc := NewNoteService(&fakeNoteRepository{}, logger.Nop())

	_, err := svc.List(context.Background(), "", "user-1")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestNoteApplyPatch_ValidatesBeforeDelegating(t *testing.T) {
	repo := &fakeNoteRepository{}
	svc := NewNoteService(repo, logger.Nop())

	err := svc.ApplyPatch(context.Background(), "note-1", "user-1", nil)
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
	assert.ErrorIs(t, err, models.ErrEmptyPatch)
	assert.Empty(t, repo.patchedID, "a malformed patch must never reach the store")

	ops := []models.PatchOperation{{Op: models.PatchOpReplace, Path: "/title", Value: json.RawMessage(`"t"`)}}
	require.NoError(t, svc.ApplyPatch(context.Background(), "note-1", "user-1", ops))
	assert.Equal(t, "note-1", repo.patchedID)
	assert.Equal(t, ops, repo.patchedOps)
}
