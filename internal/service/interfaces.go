package service

import (
	"context"

	"github.com/nvoronin/inkwell/models"
)

type AuthService interface {
	// Register creates the account and opens its first session.
	Register(ctx context.Context, user models.User) (models.User, models.TokenPair, error)

	// Login verifies credentials and opens a new session.
	Login(ctx context.Context, login, password string) (models.User, models.TokenPair, error)

	// Refresh rotates the refresh token and issues a fresh access token.
	// The presented refresh token is invalidated in the same step.
	Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error)

	// Logout revokes the session; access tokens carrying its id stop
	// working immediately regardless of their remaining lifetime.
	Logout(ctx context.Context, sessionID string) error

	// ParseToken validates the access token and verifies that its session
	// is still live.
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type UserWorkspaceService interface {
	Create(ctx context.Context, owner string, uw models.UserWorkspace) (models.UserWorkspace, error)
	List(ctx context.Context, owner string) ([]models.UserWorkspace, error)
	Update(ctx context.Context, id, owner string, update models.UserWorkspaceUpdate) (models.UserWorkspace, error)
	Delete(ctx context.Context, id, owner string) error
}

type WorkspaceService interface {
	Create(ctx context.Context, owner string, ws models.Workspace) (models.Workspace, error)
	List(ctx context.Context, userWorkspaceID, owner string) ([]models.Workspace, error)
	Update(ctx context.Context, id, owner string, update models.WorkspaceUpdate) (models.Workspace, error)
	Delete(ctx context.Context, id, owner string) error
}

type NoteService interface {
	Create(ctx context.Context, owner string, note models.Note) (models.Note, error)
	Get(ctx context.Context, id, owner string) (models.Note, error)
	List(ctx context.Context, workspaceID, owner string) ([]models.Note, error)
	Update(ctx context.Context, id, owner string, update models.NoteUpdate) (models.Note, error)
	Delete(ctx context.Context, id, owner string) error

	// ApplyPatch hands the whole operation list to the database, which
	// applies it atomically under a row lock.
	ApplyPatch(ctx context.Context, id, owner string, ops []models.PatchOperation) error
}

type StorageService interface {
	// AuthorizeUpload checks the declared size against the remaining quota
	// and returns a presigned upload ticket. Nothing is debited yet.
	AuthorizeUpload(ctx context.Context, userID string, req models.PresignedURLRequest) (models.PresignedURLResponse, error)

	// ConfirmUpload verifies the object exists, re-reads its true size from
	// the store, and debits that verified size.
	ConfirmUpload(ctx context.Context, userID, key string) (int64, error)

	// DeleteObject removes the object and refunds its stored size.
	DeleteObject(ctx context.Context, userID, key string) (int64, error)

	// List returns the caller's objects under prefix together with the
	// current quota snapshot.
	List(ctx context.Context, userID, prefix string) ([]models.StorageObject, models.StorageUsage, error)
}
