// Package adapter provides the transport layer the desktop client uses to
// talk to the remote API.
//
// The primary abstraction is [ServerAdapter], which decouples the client's
// fetch services from the wire protocol. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrNotFound] for 404, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/nvoronin/inkwell/models"
)

// ServerAdapter defines transport-agnostic communication with the remote
// API. Implementations manage the token pair themselves: a 401 on an
// authenticated call triggers exactly one silent refresh-and-retry before
// the error surfaces.
type ServerAdapter interface {
	// SetTokens stores the pair attached to subsequent authenticated
	// requests. Called after Register, Login, and internally after a
	// successful refresh.
	SetTokens(accessToken, refreshToken string)

	// AccessToken returns the currently stored access token, or "".
	AccessToken() string

	Register(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, login, password string) (models.User, error)
	Logout(ctx context.Context) error

	FetchUserWorkspaces(ctx context.Context) ([]models.UserWorkspace, error)
	CreateUserWorkspace(ctx context.Context, uw models.UserWorkspace) (models.UserWorkspace, error)
	UpdateUserWorkspace(ctx context.Context, id string, update models.UserWorkspaceUpdate) (models.UserWorkspace, error)
	DeleteUserWorkspace(ctx context.Context, id string) error

	FetchWorkspaces(ctx context.Context, userWorkspaceID string) ([]models.Workspace, error)
	CreateWorkspace(ctx context.Context, ws models.Workspace) (models.Workspace, error)
	UpdateWorkspace(ctx context.Context, id string, update models.WorkspaceUpdate) (models.Workspace, error)
	DeleteWorkspace(ctx context.Context, id string) error

	FetchNotes(ctx context.Context, workspaceID string) ([]models.Note, error)
	GetNote(ctx context.Context, id string) (models.Note, error)
	CreateNote(ctx context.Context, note models.Note) (models.Note, error)
	UpdateNote(ctx context.Context, id string, update models.NoteUpdate) (models.Note, error)
	DeleteNote(ctx context.Context, id string) error
	PatchNoteContent(ctx context.Context, id string, ops []models.PatchOperation) error

	AuthorizeUpload(ctx context.Context, req models.PresignedURLRequest) (models.PresignedURLResponse, error)
	ConfirmUpload(ctx context.Context, key string) (models.ConfirmResponse, error)
	DeleteObject(ctx context.Context, key string) (models.DeleteObjectResponse, error)
}
