package models

import (
	"encoding/json"
	"time"
)

// Note is the content-bearing unit. Content is the structured document tree
// serialized as JSON (jsonb on the remote side, TEXT locally). A note always
// references both its workspace and its userworkspace; the two references
// must be internally consistent.
type Note struct {
	NoteID          string          `json:"noteId" db:"note_id"`
	WorkspaceID     string          `json:"workspaceId" db:"workspace_id"`
	UserWorkspaceID string          `json:"userworkspaceId" db:"userworkspace_id"`
	Owner           string          `json:"owner,omitempty" db:"owner"`
	Name            string          `json:"name" db:"name"`
	Icon            string          `json:"icon" db:"icon"`
	Favorite        bool            `json:"favorite" db:"favorite"`
	Trashed         bool            `json:"trashed" db:"trashed"`
	Public          bool            `json:"public" db:"public"`
	Content         json.RawMessage `json:"content" db:"content"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time       `json:"updatedAt" db:"updated_at"`
}

// NoteUpdate carries the optional fields of a partial note update. Content
// is deliberately absent: content changes go through the patch endpoint so
// that history and atomicity guarantees hold.
type NoteUpdate struct {
	Name        *string `json:"name,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	WorkspaceID *string `json:"workspaceId,omitempty"`
	Favorite    *bool   `json:"favorite,omitempty"`
	Trashed     *bool   `json:"trashed,omitempty"`
	Public      *bool   `json:"public,omitempty"`
}

// NoteHistory is one pre-update content snapshot of a note, recorded by the
// local store's content trigger. At most HistoryLimit rows exist per note.
type NoteHistory struct {
	HistoryID int64           `json:"historyId" db:"history_id"`
	NoteID    string          `json:"noteId" db:"note_id"`
	Content   json.RawMessage `json:"content" db:"content"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
}

// HistoryLimit bounds the number of content snapshots retained per note.
const HistoryLimit = 100
