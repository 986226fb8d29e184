package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known
// failure conditions. Callers should use [errors.Is] to match against them.
// Every SQLSTATE the schema or the apply_note_patch function can raise is
// converted exactly once, here in the store layer.
var (
	// ErrLoginAlreadyExists is returned when registration fails because a
	// user with the same login already exists.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrNoUserWasFound is returned when a query expected to match a user
	// produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrSessionNotFound is returned when a refresh token or session id
	// does not resolve to a live session row.
	ErrSessionNotFound = errors.New("session not found")

	// ErrNoteNotFound is returned when a note lookup or mutation targets a
	// note id that does not exist.
	ErrNoteNotFound = errors.New("note not found")

	// ErrWorkspaceNotFound is returned when a workspace lookup or mutation
	// targets a workspace id that does not exist for the acting user.
	ErrWorkspaceNotFound = errors.New("workspace not found")

	// ErrUserWorkspaceNotFound is the userworkspace equivalent of
	// [ErrWorkspaceNotFound].
	ErrUserWorkspaceNotFound = errors.New("userworkspace not found")

	// ErrPermissionDenied is returned when a mutation targets a resource
	// owned by a different user. Repository queries filter by owner, so
	// for plain CRUD this usually collapses into a not-found; the patch
	// stored function distinguishes the two cases explicitly.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIntegrityViolation is returned when an insert references a parent
	// row that does not exist (foreign-key violation).
	ErrIntegrityViolation = errors.New("referenced resource does not exist")

	// ErrNothingToUpdate is returned when a partial update carries no
	// fields.
	ErrNothingToUpdate = errors.New("no fields to update")
)
