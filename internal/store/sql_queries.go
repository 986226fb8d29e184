package store

const (
	createUser = `INSERT INTO users (login, password_hash, name, assigned_storage)
    VALUES ($1, $2, $3, $4)
    RETURNING user_id, login, password_hash, name, used_storage, assigned_storage, created_at;`

	findUserByLogin = `SELECT user_id, login, password_hash, name, used_storage, assigned_storage, created_at
    FROM users
    WHERE login = $1;`

	getUser = `SELECT user_id, login, password_hash, name, used_storage, assigned_storage, created_at
    FROM users
    WHERE user_id = $1;`

	// The counter is mutated by the database itself so concurrent
	// confirms/deletes by the same user cannot lose updates.
	debitStorage = `UPDATE users
    SET used_storage = used_storage + $2
    WHERE user_id = $1
    RETURNING user_id, login, password_hash, name, used_storage, assigned_storage, created_at;`

	refundStorage = `UPDATE users
    SET used_storage = GREATEST(0, used_storage - $2)
    WHERE user_id = $1
    RETURNING user_id, login, password_hash, name, used_storage, assigned_storage, created_at;`

	createSession = `INSERT INTO sessions (user_id, refresh_token, expires_at)
    VALUES ($1, $2, $3)
    RETURNING session_id, user_id, refresh_token, revoked, expires_at, created_at;`

	findSessionByRefreshToken = `SELECT session_id, user_id, refresh_token, revoked, expires_at, created_at
    FROM sessions
    WHERE refresh_token = $1;`

	getSession = `SELECT session_id, user_id, refresh_token, revoked, expires_at, created_at
    FROM sessions
    WHERE session_id = $1;`

	rotateSession = `UPDATE sessions
    SET refresh_token = $2, expires_at = to_timestamp($3)
    WHERE session_id = $1 AND NOT revoked AND expires_at > now()
    RETURNING session_id, user_id, refresh_token, revoked, expires_at, created_at;`

	revokeSession = `UPDATE sessions
    SET revoked = true
    WHERE session_id = $1;`

	createUserWorkspace = `INSERT INTO userworkspaces (owner, name, icon)
    VALUES ($1, $2, $3)
    RETURNING userworkspace_id, owner, name, icon, created_at, updated_at;`

	listUserWorkspacesByOwner = `SELECT userworkspace_id, owner, name, icon, created_at, updated_at
    FROM userworkspaces
    WHERE owner = $1
    ORDER BY created_at;`

	deleteUserWorkspace = `DELETE FROM userworkspaces
    WHERE userworkspace_id = $1 AND owner = $2;`

	createWorkspace = `INSERT INTO workspaces (userworkspace_id, owner, name, icon, description)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING workspace_id, userworkspace_id, owner, name, icon, description, created_at, updated_at;`

	listWorkspacesByUserWorkspace = `SELECT workspace_id, userworkspace_id, owner, name, icon, description, created_at, updated_at
    FROM workspaces
    WHERE userworkspace_id = $1 AND owner = $2
    ORDER BY created_at;`

	deleteWorkspace = `DELETE FROM workspaces
    WHERE workspace_id = $1 AND owner = $2;`

	// The workspace must belong to the same userworkspace the note claims;
	// the INSERT ... SELECT enforces that consistency in one statement.
	createNote = `INSERT INTO notes (workspace_id, userworkspace_id, owner, name, icon, content)
    SELECT w.workspace_id, w.userworkspace_id, $3, $4, $5, $6
    FROM workspaces w
    WHERE w.workspace_id = $1 AND w.userworkspace_id = $2 AND w.owner = $3
    RETURNING note_id, workspace_id, userworkspace_id, owner, name, icon, favorite, trashed, public, content, created_at, updated_at;`

	getNote = `SELECT note_id, workspace_id, userworkspace_id, owner, name, icon, favorite, trashed, public, content, created_at, updated_at
    FROM notes
    WHERE note_id = $1 AND owner = $2;`

	listNotesByWorkspace = `SELECT note_id, workspace_id, userworkspace_id, owner, name, icon, favorite, trashed, public, content, created_at, updated_at
    FROM notes
    WHERE workspace_id = $1 AND owner = $2
    ORDER BY created_at;`

	deleteNote = `DELETE FROM notes
    WHERE note_id = $1 AND owner = $2;`

	applyNotePatch = `SELECT apply_note_patch($1, $2, $3);`
)
