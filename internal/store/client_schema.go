package store

import (
	"strconv"

	"github.com/nvoronin/inkwell/models"
)

// Local schema, current (version 2): opaque text identifiers throughout.
// Version 1 used INTEGER AUTOINCREMENT keys; localSchemaV1 survives only for
// the in-place migration and its tests.
const localSchemaVersion = 2

const localSchemaV2 = `
CREATE TABLE userworkspaces (
    userworkspace_id TEXT PRIMARY KEY,
    name             TEXT NOT NULL,
    icon             TEXT NOT NULL DEFAULT '',
    created_at       TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at       TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE workspaces (
    workspace_id     TEXT PRIMARY KEY,
    userworkspace_id TEXT NOT NULL REFERENCES userworkspaces (userworkspace_id) ON DELETE CASCADE,
    name             TEXT NOT NULL,
    icon             TEXT NOT NULL DEFAULT '',
    description      TEXT NOT NULL DEFAULT '',
    created_at       TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at       TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE notes (
    note_id          TEXT PRIMARY KEY,
    workspace_id     TEXT NOT NULL REFERENCES workspaces (workspace_id) ON DELETE CASCADE,
    userworkspace_id TEXT NOT NULL REFERENCES userworkspaces (userworkspace_id) ON DELETE CASCADE,
    name             TEXT NOT NULL,
    icon             TEXT NOT NULL DEFAULT '',
    favorite         INTEGER NOT NULL DEFAULT 0,
    trashed          INTEGER NOT NULL DEFAULT 0,
    content          TEXT NOT NULL DEFAULT '{}',
    created_at       TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at       TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE note_history (
    history_id INTEGER PRIMARY KEY AUTOINCREMENT,
    note_id    TEXT NOT NULL REFERENCES notes (note_id) ON DELETE CASCADE,
    content    TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX idx_workspaces_userworkspace ON workspaces (userworkspace_id);
CREATE INDEX idx_notes_workspace ON notes (workspace_id);
CREATE INDEX idx_note_history_note ON note_history (note_id);
`

// Touch triggers bump updated_at only when the caller left it untouched, so
// an explicit timestamp in the UPDATE statement is never double-bumped.
// SQLite does not fire triggers recursively by default, so the inner UPDATE
// cannot loop.
const localTriggersV2Head = `
CREATE TRIGGER userworkspaces_touch_updated_at
AFTER UPDATE ON userworkspaces
FOR EACH ROW
WHEN NEW.updated_at = OLD.updated_at
BEGIN
    UPDATE userworkspaces SET updated_at = CURRENT_TIMESTAMP
    WHERE userworkspace_id = NEW.userworkspace_id;
END;

CREATE TRIGGER workspaces_touch_updated_at
AFTER UPDATE ON workspaces
FOR EACH ROW
WHEN NEW.updated_at = OLD.updated_at
BEGIN
    UPDATE workspaces SET updated_at = CURRENT_TIMESTAMP
    WHERE workspace_id = NEW.workspace_id;
END;

CREATE TRIGGER notes_touch_updated_at
AFTER UPDATE ON notes
FOR EACH ROW
WHEN NEW.updated_at = OLD.updated_at
BEGIN
    UPDATE notes SET updated_at = CURRENT_TIMESTAMP
    WHERE note_id = NEW.note_id;
END;

CREATE TRIGGER notes_content_history
AFTER UPDATE OF content ON notes
FOR EACH ROW
WHEN NOT (NEW.content IS OLD.content)
BEGIN
    INSERT INTO note_history (note_id, content)
    VALUES (OLD.note_id, OLD.content);

    DELETE FROM note_history
    WHERE note_id = OLD.note_id
      AND history_id NOT IN (
        SELECT history_id FROM note_history
        WHERE note_id = OLD.note_id
        ORDER BY history_id DESC
        LIMIT `

const localTriggersV2Tail = `
      );
END;
`

// historyLimitLiteral keeps the trigger DDL and the Go-side constant from
// drifting apart.
var historyLimitLiteral = strconv.Itoa(models.HistoryLimit)

// localTriggersV2 carries the trigger DDL; it is a var only because the
// history prune limit is spliced in from [models.HistoryLimit].
var localTriggersV2 = localTriggersV2Head + historyLimitLiteral + localTriggersV2Tail

// Version-1 layout, integer keys. Used only to create fixtures for the
// migration and by installs that predate the identifier change.
const localSchemaV1 = `
CREATE TABLE userworkspaces (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    name       TEXT NOT NULL,
    icon       TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE workspaces (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    userworkspace_id INTEGER NOT NULL REFERENCES userworkspaces (id) ON DELETE CASCADE,
    name             TEXT NOT NULL,
    icon             TEXT NOT NULL DEFAULT '',
    description      TEXT NOT NULL DEFAULT '',
    created_at       TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at       TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE notes (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    workspace_id     INTEGER NOT NULL REFERENCES workspaces (id) ON DELETE CASCADE,
    userworkspace_id INTEGER NOT NULL REFERENCES userworkspaces (id) ON DELETE CASCADE,
    name             TEXT NOT NULL,
    icon             TEXT NOT NULL DEFAULT '',
    favorite         INTEGER NOT NULL DEFAULT 0,
    trashed          INTEGER NOT NULL DEFAULT 0,
    content          TEXT NOT NULL DEFAULT '{}',
    created_at       TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at       TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE note_history (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    note_id    INTEGER NOT NULL REFERENCES notes (id) ON DELETE CASCADE,
    content    TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX idx_workspaces_userworkspace ON workspaces (userworkspace_id);
CREATE INDEX idx_notes_workspace ON notes (workspace_id);
CREATE INDEX idx_note_history_note ON note_history (note_id);
`
