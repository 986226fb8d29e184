package models

import "time"

// UserWorkspace is the top-level container scoping a user's workspaces and
// notes ("Personal", etc.). A local-store record has an empty Owner; a
// remote record always carries the owning user's id. The fetch layer uses
// that distinction to route operations to the local or the remote store.
type UserWorkspace struct {
	UserWorkspaceID string    `json:"userworkspaceId" db:"userworkspace_id"`
	Owner           string    `json:"owner,omitempty" db:"owner"`
	Name            string    `json:"name" db:"name"`
	Icon            string    `json:"icon" db:"icon"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

// IsLocal reports whether the record lives in the embedded local store.
func (u UserWorkspace) IsLocal() bool {
	return u.Owner == ""
}

// Workspace is a folder of notes inside a UserWorkspace. Deleting a
// workspace cascades to its notes.
type Workspace struct {
	WorkspaceID     string    `json:"workspaceId" db:"workspace_id"`
	UserWorkspaceID string    `json:"userworkspaceId" db:"userworkspace_id"`
	Owner           string    `json:"owner,omitempty" db:"owner"`
	Name            string    `json:"name" db:"name"`
	Icon            string    `json:"icon" db:"icon"`
	Description     string    `json:"description" db:"description"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

// UserWorkspaceUpdate carries the optional fields of a partial userworkspace
// update. Nil pointers are left untouched.
type UserWorkspaceUpdate struct {
	Name *string `json:"name,omitempty"`
	Icon *string `json:"icon,omitempty"`
}

// WorkspaceUpdate carries the optional fields of a partial workspace update.
type WorkspaceUpdate struct {
	Name        *string `json:"name,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	Description *string `json:"description,omitempty"`
}
