package store

import (
	"context"

	"github.com/nvoronin/inkwell/models"
)

// UserRepository manages accounts and their quota counters.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
	GetUser(ctx context.Context, userID string) (models.User, error)

	// DebitStorage atomically increments used_storage by n bytes.
	DebitStorage(ctx context.Context, userID string, n int64) (models.User, error)

	// RefundStorage atomically decrements used_storage by n bytes, clamped
	// to a floor of zero.
	RefundStorage(ctx context.Context, userID string, n int64) (models.User, error)
}

// SessionRepository manages the server-side token sessions.
type SessionRepository interface {
	CreateSession(ctx context.Context, session models.Session) (models.Session, error)
	FindSessionByRefreshToken(ctx context.Context, refreshToken string) (models.Session, error)
	GetSession(ctx context.Context, sessionID string) (models.Session, error)

	// RotateSession replaces the session's refresh token and extends its
	// expiry in one statement; returns ErrSessionNotFound when the session
	// is revoked, expired, or unknown.
	RotateSession(ctx context.Context, sessionID, newRefreshToken string, expiresAt int64) (models.Session, error)

	RevokeSession(ctx context.Context, sessionID string) error
}

// UserWorkspaceRepository manages top-level containers. Every read and
// mutation filters by owner in addition to the primary key.
type UserWorkspaceRepository interface {
	Create(ctx context.Context, uw models.UserWorkspace) (models.UserWorkspace, error)
	ListByOwner(ctx context.Context, owner string) ([]models.UserWorkspace, error)
	Update(ctx context.Context, id, owner string, update models.UserWorkspaceUpdate) (models.UserWorkspace, error)
	Delete(ctx context.Context, id, owner string) error
}

// WorkspaceRepository manages note folders within a userworkspace.
type WorkspaceRepository interface {
	Create(ctx context.Context, ws models.Workspace) (models.Workspace, error)
	ListByUserWorkspace(ctx context.Context, userWorkspaceID, owner string) ([]models.Workspace, error)
	Update(ctx context.Context, id, owner string, update models.WorkspaceUpdate) (models.Workspace, error)
	Delete(ctx context.Context, id, owner string) error
}

// NoteRepository manages notes, including the transactional content patch.
type NoteRepository interface {
	Create(ctx context.Context, note models.Note) (models.Note, error)
	Get(ctx context.Context, id, owner string) (models.Note, error)
	ListByWorkspace(ctx context.Context, workspaceID, owner string) ([]models.Note, error)
	Update(ctx context.Context, id, owner string, update models.NoteUpdate) (models.Note, error)
	Delete(ctx context.Context, id, owner string) error

	// ApplyPatch executes the apply_note_patch stored function: the whole
	// operation list is applied to the content document in one database
	// transaction under a row lock, with ownership verified inside it.
	ApplyPatch(ctx context.Context, id, owner string, ops []models.PatchOperation) error
}
