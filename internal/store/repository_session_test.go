package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"

	"github.com/nvoronin/inkwell/internal/logger"
	"github.com/nvoronin/inkwell/models"
)

func newTestSessionRepo(t *testing.T) (*sessionRepository, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, conn := newMockDB(t)
	repo := &sessionRepository{db: db, logger: logger.Nop()}
	return repo, mock, func() { conn.Close() }
}

func sessionRows(session models.Session) *sqlmock.Rows {
	return sqlmock.
		NewRows([]string{"session_id", "user_id", "refresh_token", "revoked", "expires_at", "created_at"}).
		AddRow(session.SessionID, session.UserID, session.RefreshToken, session.Revoked, session.ExpiresAt, session.CreatedAt)
}

func TestCreateSession_Success(t *testing.T) {
	repo, mock, closeDB := newTestSessionRepo(t)
	defer closeDB()

	want := models.Session{
		SessionID:    "session-1",
		UserID:       "user-1",
		RefreshToken: "token",
		ExpiresAt:    time.Now().Add(time.Hour),
		CreatedAt:    time.Now(),
	}

	mock.ExpectQuery("INSERT INTO sessions").
		WithArgs(want.UserID, want.RefreshToken, want.ExpiresAt).
		WillReturnRows(sessionRows(want))

	created, err := repo.CreateSession(context.Background(), want)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.SessionID != want.SessionID {
		t.Errorf("expected SessionID=%s, got %s", want.SessionID, created.SessionID)
	}
}

func TestCreateSession_UnknownUser(t *testing.T) {
	repo, mock, closeDB := newTestSessionRepo(t)
	defer closeDB()

	mock.ExpectQuery("INSERT INTO sessions").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(pgError(pgerrcode.ForeignKeyViolation))

	_, err := repo.CreateSession(context.Background(), models.Session{UserID: "ghost"})
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestFindSessionByRefreshToken_NotFound(t *testing.T) {
	repo, mock, closeDB := newTestSessionRepo(t)
	defer closeDB()

	mock.ExpectQuery("SELECT (.+) FROM sessions").
		WithArgs("stale-token").
		WillReturnRows(sqlmock.NewRows([]string{"session_id"}))

	_, err := repo.FindSessionByRefreshToken(context.Background(), "stale-token")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestRotateSession_Success(t *testing.T) {
	repo, mock, closeDB := newTestSessionRepo(t)
	defer closeDB()

	expiresAt := time.Now().Add(time.Hour)
	want := models.Session{SessionID: "session-1", UserID: "user-1", RefreshToken: "fresh", ExpiresAt: expiresAt}

	mock.ExpectQuery("UPDATE sessions").
		WithArgs("session-1", "fresh", expiresAt.Unix()).
		WillReturnRows(sessionRows(want))

	rotated, err := repo.RotateSession(context.Background(), "session-1", "fresh", expiresAt.Unix())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rotated.RefreshToken != "fresh" {
		t.Errorf("expected rotated refresh token, got %s", rotated.RefreshToken)
	}
}

// A revoked or expired session is filtered out by the WHERE clause, so the
// rotation statement returns no row at all.
func TestRotateSession_RevokedOrExpired(t *testing.T) {
	repo, mock, closeDB := newTestSessionRepo(t)
	defer closeDB()

	mock.ExpectQuery("UPDATE sessions").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"session_id"}))

	_, err := repo.RotateSession(context.Background(), "session-1", "fresh", time.Now().Unix())
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestRevokeSession_NotFound(t *testing.T) {
	repo, mock, closeDB := newTestSessionRepo(t)
	defer closeDB()

	mock.ExpectExec("UPDATE sessions").
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.RevokeSession(context.Background(), "ghost")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}
