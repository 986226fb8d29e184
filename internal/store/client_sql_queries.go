package store

const (
	localCreateUserWorkspace = `
		INSERT INTO userworkspaces (userworkspace_id, name, icon)
		VALUES (?, ?, ?);`

	localGetUserWorkspace = `
		SELECT userworkspace_id, name, icon, created_at, updated_at
		FROM userworkspaces
		WHERE userworkspace_id = ?;`

	localListUserWorkspaces = `
		SELECT userworkspace_id, name, icon, created_at, updated_at
		FROM userworkspaces
		ORDER BY created_at;`

	localDeleteUserWorkspace = `
		DELETE FROM userworkspaces
		WHERE userworkspace_id = ?;`

	localCreateWorkspace = `
		INSERT INTO workspaces (workspace_id, userworkspace_id, name, icon, description)
		VALUES (?, ?, ?, ?, ?);`

	localGetWorkspace = `
		SELECT workspace_id, userworkspace_id, name, icon, description, created_at, updated_at
		FROM workspaces
		WHERE workspace_id = ?;`

	localListWorkspaces = `
		SELECT workspace_id, userworkspace_id, name, icon, description, created_at, updated_at
		FROM workspaces
		WHERE userworkspace_id = ?
		ORDER BY created_at;`

	localDeleteWorkspace = `
		DELETE FROM workspaces
		WHERE workspace_id = ?;`

	localCreateNote = `
		INSERT INTO notes (note_id, workspace_id, userworkspace_id, name, icon, content)
		SELECT ?, w.workspace_id, w.userworkspace_id, ?, ?, ?
		FROM workspaces w
		WHERE w.workspace_id = ? AND w.userworkspace_id = ?;`

	localGetNote = `
		SELECT note_id, workspace_id, userworkspace_id, name, icon, favorite, trashed, content, created_at, updated_at
		FROM notes
		WHERE note_id = ?;`

	localListNotes = `
		SELECT note_id, workspace_id, userworkspace_id, name, icon, favorite, trashed, content, created_at, updated_at
		FROM notes
		WHERE workspace_id = ?
		ORDER BY created_at;`

	localUpdateNoteContent = `
		UPDATE notes
		SET content = ?
		WHERE note_id = ?;`

	localDeleteNote = `
		DELETE FROM notes
		WHERE note_id = ?;`

	localNoteHistory = `
		SELECT history_id, note_id, content, created_at
		FROM note_history
		WHERE note_id = ?
		ORDER BY history_id DESC;`
)
