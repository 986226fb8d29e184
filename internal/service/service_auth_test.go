package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/nvoronin/inkwell/internal/config"
	"github.com/nvoronin/inkwell/internal/logger"
	"github.com/nvoronin/inkwell/internal/store"
	"github.com/nvoronin/inkwell/internal/utils"
	"github.com/nvoronin/inkwell/models"
)

// fakeSessionRepository keeps sessions in a map and mimics the single
// statement rotation guard of the real repository.
type fakeSessionRepository struct {
	sessions  map[string]models.Session
	createErr error
}

func newFakeSessionRepository() *fakeSessionRepository {
	return &fakeSessionRepository{sessions: make(map[string]models.Session)}
}

func (f *fakeSessionRepository) CreateSession(_ context.Context, session models.Session) (models.Session, error) {
	if f.createErr != nil {
		return models.Session{}, f.createErr
	}
	session.SessionID = utils.NewUUIDGenerator().Generate()
	f.sessions[session.SessionID] = session
	return session, nil
}

func (f *fakeSessionRepository) FindSessionByRefreshToken(_ context.Context, refreshToken string) (models.Session, error) {
	for _, s := range f.sessions {
		if s.RefreshToken == refreshToken {
			return s, nil
		}
	}
	return models.Session{}, store.ErrSessionNotFound
}

func (f *fakeSessionRepository) GetSession(_ context.Context, sessionID string) (models.Session, error) {
	s, ok := f.sessions[sessionID]
	if !ok {
		return models.Session{}, store.ErrSessionNotFound
	}
	return s, nil
}

func (f *fakeSessionRepository) RotateSession(_ context.Context, sessionID, newRefreshToken string, expiresAt int64) (models.Session, error) {
	s, ok := f.sessions[sessionID]
	if !ok || s.Revoked || s.ExpiresAt.Before(time.Now()) {
		return models.Session{}, store.ErrSessionNotFound
	}
	s.RefreshToken = newRefreshToken
	s.ExpiresAt = time.Unix(expiresAt, 0)
	f.sessions[sessionID] = s
	return s, nil
}

func (f *fakeSessionRepository) RevokeSession(_ context.Context, sessionID string) error {
	s, ok := f.sessions[sessionID]
	if !ok {
		return store.ErrSessionNotFound
	}
	s.Revoked = true
	f.sessions[sessionID] = s
	return nil
}

func testAppConfig() config.App {
	return config.App{
		TokenSignKey:         "test-sign-key",
		TokenIssuer:          "inkwell-test",
		AccessTokenDuration:  time.Minute,
		RefreshTokenDuration: time.Hour,
	}
}

func newAuthServiceWithFakes(t *testing.T, password string) (AuthService, *fakeUserRepository, *fakeSessionRepository) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	users := &fakeUserRepository{user: models.User{
		UserID:       "user-1",
		Login:        "john",
		PasswordHash: string(hash),
	}}
	sessions := newFakeSessionRepository()

	return NewAuthService(users, sessions, testAppConfig(), logger.Nop()), users, sessions
}

func TestRegister_Success(t *testing.T) {
	svc, _, sessions := newAuthServiceWithFakes(t, "secret")

	user, pair, err := svc.Register(context.Background(), models.User{Login: "jane", Password: "secret", Name: "Jane"})
	require.NoError(t, err)

	assert.Empty(t, user.Password, "the plaintext password must never leave the service")
	assert.NotEmpty(t, user.PasswordHash)
	assert.Equal(t, models.DefaultAssignedStorage, user.AssignedStorage)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Len(t, sessions.sessions, 1)

	// The issued access token must pass the service's own validation.
	token, err := svc.ParseToken(context.Background(), pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.UserID, token.UserID)
}

func TestRegister_InvalidData(t *testing.T) {
	svc, _, _ := newAuthServiceWithFakes(t, "secret")

	_, _, err := svc.Register(context.Background(), models.User{Login: "", Password: "x"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, _, err = svc.Register(context.Background(), models.User{Login: "x", Password: ""})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestLogin_Success(t *testing.T) {
	svc, users, _ := newAuthServiceWithFakes(t, "secret")

	user, pair, err := svc.Login(context.Background(), "john", "secret")
	require.NoError(t, err)
	assert.Equal(t, users.user.UserID, user.UserID)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, _ := newAuthServiceWithFakes(t, "secret")

	_, _, err := svc.Login(context.Background(), "john", "guess")
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc, users, _ := newAuthServiceWithFakes(t, "secret")
	users.getErr = store.ErrNoUserWasFound

	_, _, err := svc.Login(context.Background(), "ghost", "secret")
	assert.ErrorIs(t, err, store.ErrNoUserWasFound)
}

func TestRefresh_RotatesToken(t *testing.T) {
	svc, _, _ := newAuthServiceWithFakes(t, "secret")

	_, pair, err := svc.Login(context.Background(), "john", "secret")
	require.NoError(t, err)

	rotated, err := svc.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, rotated.AccessToken)
	assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

	// The old token lost the race and is single-use.
	_, err = svc.Refresh(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)

	// The new one still works.
	_, err = svc.Refresh(context.Background(), rotated.RefreshToken)
	assert.NoError(t, err)
}

func TestRefresh_RevokedSession(t *testing.T) {
	svc, _, sessions := newAuthServiceWithFakes(t, "secret")

	_, pair, err := svc.Login(context.Background(), "john", "secret")
	require.NoError(t, err)

	for id := range sessions.sessions {
		require.NoError(t, sessions.RevokeSession(context.Background(), id))
	}

	_, err = svc.Refresh(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestRefresh_UnknownToken(t *testing.T) {
	svc, _, _ := newAuthServiceWithFakes(t, "secret")

	_, err := svc.Refresh(context.Background(), "never-issued")
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestParseToken_RevokedSessionRejectsValidJWT(t *testing.T) {
	svc, _, sessions := newAuthServiceWithFakes(t, "secret")

	_, pair, err := svc.Login(context.Background(), "john", "secret")
	require.NoError(t, err)

	_, err = svc.ParseToken(context.Background(), pair.AccessToken)
	require.NoError(t, err)

	for id := range sessions.sessions {
		require.NoError(t, sessions.RevokeSession(context.Background(), id))
	}

	// The JWT signature and expiry are still fine; the session state is
	// what rejects it.
	_, err = svc.ParseToken(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, ErrSessionRevoked)
}

func TestParseToken_Garbage(t *testing.T) {
	svc, _, _ := newAuthServiceWithFakes(t, "secret")

	_, err := svc.ParseToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestParseToken_ForeignSignKey(t *testing.T) {
	svc, _, _ := newAuthServiceWithFakes(t, "secret")

	foreign, err := utils.GenerateAccessToken("inkwell-test", "user-1", "session-1", time.Minute, "other-key")
	require.NoError(t, err)

	_, err = svc.ParseToken(context.Background(), foreign.SignedString)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestLogout_RevokesSession(t *testing.T) {
	svc, _, sessions := newAuthServiceWithFakes(t, "secret")

	_, pair, err := svc.Login(context.Background(), "john", "secret")
	require.NoError(t, err)

	token, err := svc.ParseToken(context.Background(), pair.AccessToken)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), token.SessionID))
	assert.True(t, sessions.sessions[token.SessionID].Revoked)

	_, err = svc.ParseToken(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, ErrSessionRevoked)
}
