package store

import (
	"context"

	"github.com/nvoronin/inkwell/models"
)

// Local repositories mirror the server-side contracts minus the owner
// argument: the embedded store is single-user by construction, so there is
// no ownership to check.

type LocalUserWorkspaceRepository interface {
	Create(ctx context.Context, uw models.UserWorkspace) (models.UserWorkspace, error)
	List(ctx context.Context) ([]models.UserWorkspace, error)
	Update(ctx context.Context, id string, update models.UserWorkspaceUpdate) (models.UserWorkspace, error)
	Delete(ctx context.Context, id string) error
}

type LocalWorkspaceRepository interface {
	Create(ctx context.Context, ws models.Workspace) (models.Workspace, error)
	ListByUserWorkspace(ctx context.Context, userWorkspaceID string) ([]models.Workspace, error)
	Update(ctx context.Context, id string, update models.WorkspaceUpdate) (models.Workspace, error)
	Delete(ctx context.Context, id string) error
}

type LocalNoteRepository interface {
	Create(ctx context.Context, note models.Note) (models.Note, error)
	Get(ctx context.Context, id string) (models.Note, error)
	ListByWorkspace(ctx context.Context, workspaceID string) ([]models.Note, error)
	Update(ctx context.Context, id string, update models.NoteUpdate) (models.Note, error)

	// UpdateContent rewrites the content document; the schema's triggers
	// append the pre-update snapshot to note_history and prune beyond the
	// retention window in the same statement.
	UpdateContent(ctx context.Context, id string, content []byte) (models.Note, error)

	// ApplyPatch applies the operations to the note's content inside one
	// transaction, mirroring the remote stored function's semantics.
	ApplyPatch(ctx context.Context, id string, ops []models.PatchOperation) (models.Note, error)

	Delete(ctx context.Context, id string) error

	// History returns the retained snapshots, most recent first.
	History(ctx context.Context, noteID string) ([]models.NoteHistory, error)
}
