package service

import (
	"context"

	"github.com/nvoronin/inkwell/models"
)

// Client-side fetch services. Each entity service fronts both stores behind
// one API: records whose Owner is empty live in the embedded SQLite store,
// records with an Owner belong to the signed-in account and go through the
// server adapter. The two datasets stay disjoint; fetching concatenates
// them, it never merges or reconciles.
//
// Every service keeps an in-memory cache of the records it has seen, both
// to serve the UI without re-querying and to route mutations by id: an
// update or delete consults the cached record's Owner to pick the store.

// ClientAuthService manages the remote account from the client side. All
// local-store operations work without it; signing in only adds the cloud
// dataset.
type ClientAuthService interface {
	Register(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, login, password string) (models.User, error)
	Logout(ctx context.Context) error

	// CurrentUser returns the signed-in account, ok=false when offline.
	CurrentUser() (models.User, bool)
}

type UserWorkspaceFetchService interface {
	// Fetch returns the local userworkspaces followed by the remote ones
	// (when signed in), refreshing the cache.
	Fetch(ctx context.Context) ([]models.UserWorkspace, error)

	// Create routes on uw.Owner: empty means the embedded store (the id is
	// generated client-side), anything else goes to the server.
	Create(ctx context.Context, uw models.UserWorkspace) (models.UserWorkspace, error)

	Update(ctx context.Context, id string, update models.UserWorkspaceUpdate) (models.UserWorkspace, error)
	Delete(ctx context.Context, id string) error

	// Cached looks a userworkspace up by id without touching either store.
	Cached(id string) (models.UserWorkspace, bool)

	// EnsureDefault creates the local "Personal" userworkspace when the
	// embedded store is empty (first run).
	EnsureDefault(ctx context.Context) (models.UserWorkspace, error)
}

type WorkspaceFetchService interface {
	Fetch(ctx context.Context, userWorkspaceID string) ([]models.Workspace, error)
	Create(ctx context.Context, ws models.Workspace) (models.Workspace, error)
	Update(ctx context.Context, id string, update models.WorkspaceUpdate) (models.Workspace, error)
	Delete(ctx context.Context, id string) error

	Cached(id string) (models.Workspace, bool)
}

type NoteFetchService interface {
	Fetch(ctx context.Context, workspaceID string) ([]models.Note, error)
	Get(ctx context.Context, id string) (models.Note, error)
	Create(ctx context.Context, note models.Note) (models.Note, error)
	Update(ctx context.Context, id string, update models.NoteUpdate) (models.Note, error)
	Delete(ctx context.Context, id string) error

	// ApplyPatch routes the operation list to the owning store; both sides
	// apply it atomically with last-patch-wins semantics.
	ApplyPatch(ctx context.Context, id string, ops []models.PatchOperation) (models.Note, error)

	// History returns the retained content snapshots of a local note,
	// most recent first. Cloud notes have no client-visible history.
	History(ctx context.Context, id string) ([]models.NoteHistory, error)
}
