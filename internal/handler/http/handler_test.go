package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvoronin/inkwell/internal/logger"
	"github.com/nvoronin/inkwell/internal/service"
	"github.com/nvoronin/inkwell/internal/store"
	"github.com/nvoronin/inkwell/models"
)

// ─────────────────────────────────────────────
// fake services
// ─────────────────────────────────────────────

type fakeAuthService struct {
	parseToken models.Token
	parseErr   error

	registerErr error
	loginErr    error
	refreshErr  error
	logoutErr   error

	loggedOutSession string
}

func (f *fakeAuthService) Register(_ context.Context, user models.User) (models.User, models.TokenPair, error) {
	if f.registerErr != nil {
		return models.User{}, models.TokenPair{}, f.registerErr
	}
	user.UserID = "user-1"
	return user, models.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, nil
}

func (f *fakeAuthService) Login(_ context.Context, login, _ string) (models.User, models.TokenPair, error) {
	if f.loginErr != nil {
		return models.User{}, models.TokenPair{}, f.loginErr
	}
	return models.User{UserID: "user-1", Login: login}, models.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, nil
}

func (f *fakeAuthService) Refresh(_ context.Context, _ string) (models.TokenPair, error) {
	if f.refreshErr != nil {
		return models.TokenPair{}, f.refreshErr
	}
	return models.TokenPair{AccessToken: "access2", RefreshToken: "refresh2"}, nil
}

func (f *fakeAuthService) Logout(_ context.Context, sessionID string) error {
	f.loggedOutSession = sessionID
	return f.logoutErr
}

func (f *fakeAuthService) ParseToken(_ context.Context, _ string) (models.Token, error) {
	if f.parseErr != nil {
		return models.Token{}, f.parseErr
	}
	return f.parseToken, nil
}

type fakeNoteService struct {
	note     models.Note
	list     []models.Note
	err      error
	patchErr error

	patchedID  string
	patchedOps []models.PatchOperation
}

func (f *fakeNoteService) Create(_ context.Context, owner string, note models.Note) (models.Note, error) {
	note.Owner = owner
	return note, f.err
}

func (f *fakeNoteService) Get(_ context.Context, _, _ string) (models.Note, error) {
	return f.note, f.err
}

func (f *fakeNoteService) List(_ context.Context, _, _ string) ([]models.Note, error) {
	return f.list, f.err
}

func (f *fakeNoteService) Update(_ context.Context, _, _ string, _ models.NoteUpdate) (models.Note, error) {
	return f.note, f.err
}

func (f *fakeNoteService) Delete(_ context.Context, _, _ string) error {
	return f.err
}

func (f *fakeNoteService) ApplyPatch(_ context.Context, id, _ string, ops []models.PatchOperation) error {
	f.patchedID = id
	f.patchedOps = ops
	return f.patchErr
}

type fakeStorageService struct {
	authorizeResp models.PresignedURLResponse
	authorizeErr  error
	confirmSize   int64
	confirmErr    error
	deleteErr     error
	objects       []models.StorageObject
	usage         models.StorageUsage
}

func (f *fakeStorageService) AuthorizeUpload(_ context.Context, _ string, _ models.PresignedURLRequest) (models.PresignedURLResponse, error) {
	return f.authorizeResp, f.authorizeErr
}

func (f *fakeStorageService) ConfirmUpload(_ context.Context, _, _ string) (int64, error) {
	return f.confirmSize, f.confirmErr
}

func (f *fakeStorageService) DeleteObject(_ context.Context, _, _ string) (int64, error) {
	return f.confirmSize, f.deleteErr
}

func (f *fakeStorageService) List(_ context.Context, _, _ string) ([]models.StorageObject, models.StorageUsage, error) {
	return f.objects, f.usage, nil
}

type fakeUserWorkspaceService struct {
	list []models.UserWorkspace
	err  error
}

func (f *fakeUserWorkspaceService) Create(_ context.Context, owner string, uw models.UserWorkspace) (models.UserWorkspace, error) {
	uw.Owner = owner
	return uw, f.err
}

func (f *fakeUserWorkspaceService) List(_ context.Context, _ string) ([]models.UserWorkspace, error) {
	return f.list, f.err
}

func (f *fakeUserWorkspaceService) Update(_ context.Context, id, owner string, _ models.UserWorkspaceUpdate) (models.UserWorkspace, error) {
	return models.UserWorkspace{UserWorkspaceID: id, Owner: owner}, f.err
}

func (f *fakeUserWorkspaceService) Delete(_ context.Context, _, _ string) error {
	return f.err
}

type fakeWorkspaceService struct {
	list []models.Workspace
	err  error
}

func (f *fakeWorkspaceService) Create(_ context.Context, owner string, ws models.Workspace) (models.Workspace, error) {
	ws.Owner = owner
	return ws, f.err
}

func (f *fakeWorkspaceService) List(_ context.Context, _, _ string) ([]models.Workspace, error) {
	return f.list, f.err
}

func (f *fakeWorkspaceService) Update(_ context.Context, id, owner string, _ models.WorkspaceUpdate) (models.Workspace, error) {
	return models.Workspace{WorkspaceID: id, Owner: owner}, f.err
}

func (f *fakeWorkspaceService) Delete(_ context.Context, _, _ string) error {
	return f.err
}

// ─────────────────────────────────────────────
// helpers
// ─────────────────────────────────────────────

type fixture struct {
	auth    *fakeAuthService
	notes   *fakeNoteService
	storage *fakeStorageService
	router  http.Handler
}

func newFixture() *fixture {
	auth := &fakeAuthService{parseToken: models.Token{UserID: "user-1", SessionID: "session-1"}}
	notes := &fakeNoteService{}
	storage := &fakeStorageService{}

	services := &service.Services{
		AuthService:          auth,
		UserWorkspaceService: &fakeUserWorkspaceService{},
		WorkspaceService:     &fakeWorkspaceService{},
		NoteService:          notes,
		StorageService:       storage,
	}

	handler := NewHandler(services, logger.Nop())
	return &fixture{auth: auth, notes: notes, storage: storage, router: handler.Init()}
}

func (f *fixture) do(t *testing.T, method, target string, body any, authed bool) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if authed {
		req.Header.Set("Authorization", "Bearer some-token")
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()

	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// ─────────────────────────────────────────────
// auth middleware
// ─────────────────────────────────────────────

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	f := newFixture()

	rec := f.do(t, http.MethodGet, "/api/userworkspaces", nil, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	f := newFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/userworkspaces", nil)
	req.Header.Set("Authorization", "Bearer-without-space")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_RejectedToken(t *testing.T) {
	f := newFixture()
	f.auth.parseErr = service.ErrSessionRevoked

	rec := f.do(t, http.MethodGet, "/api/userworkspaces", nil, true)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_PublicRoutesSkipAuth(t *testing.T) {
	f := newFixture()

	rec := f.do(t, http.MethodPost, "/api/auth/login", models.User{Login: "john", Password: "x"}, false)
	assert.Equal(t, http.StatusOK, rec.Code)
}

// ─────────────────────────────────────────────
// auth endpoints
// ─────────────────────────────────────────────

func TestRegisterEndpoint(t *testing.T) {
	f := newFixture()

	rec := f.do(t, http.MethodPost, "/api/auth/register", models.User{Login: "jane", Password: "pw"}, false)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		User         models.User `json:"user"`
		AccessToken  string      `json:"accessToken"`
		RefreshToken string      `json:"refreshToken"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "user-1", body.User.UserID)
	assert.Equal(t, "access", body.AccessToken)
	assert.Equal(t, "refresh", body.RefreshToken)
}

func TestRegisterEndpoint_DuplicateLogin(t *testing.T) {
	f := newFixture()
	f.auth.registerErr = store.ErrLoginAlreadyExists

	rec := f.do(t, http.MethodPost, "/api/auth/register", models.User{Login: "jane", Password: "pw"}, false)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLoginEndpoint_WrongPassword(t *testing.T) {
	f := newFixture()
	f.auth.loginErr = service.ErrWrongPassword

	rec := f.do(t, http.MethodPost, "/api/auth/login", models.User{Login: "john", Password: "bad"}, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefreshEndpoint_StaleToken(t *testing.T) {
	f := newFixture()
	f.auth.refreshErr = service.ErrTokenIsExpiredOrInvalid

	rec := f.do(t, http.MethodPost, "/api/auth/refresh", models.RefreshRequest{RefreshToken: "stale"}, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutEndpoint_UsesSessionFromToken(t *testing.T) {
	f := newFixture()

	rec := f.do(t, http.MethodPost, "/api/auth/logout", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "session-1", f.auth.loggedOutSession)
}

// ─────────────────────────────────────────────
// notes
// ─────────────────────────────────────────────

func TestListNotes_EmptyListIsJSONArray(t *testing.T) {
	f := newFixture()

	rec := f.do(t, http.MethodGet, "/api/notes?workspace=ws-1", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestCreateNote_InvalidJSON(t *testing.T) {
	f := newFixture()

	req := httptest.NewRequest(http.MethodPost, "/api/notes", bytes.NewReader([]byte(`{broken`)))
	req.Header.Set("Authorization", "Bearer some-token")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid JSON was passed", decodeError(t, rec).Error)
}

func TestPatchNoteContent_Success(t *testing.T) {
	f := newFixture()

	ops := []models.PatchOperation{{Op: models.PatchOpReplace, Path: "/title", Value: json.RawMessage(`"t"`)}}
	rec := f.do(t, http.MethodPatch, "/api/notes/note-1/content", ops, true)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "note-1", f.notes.patchedID)
	assert.Equal(t, ops, f.notes.patchedOps)
	assert.JSONEq(t, `{"success": true}`, rec.Body.String())
}

func TestPatchNoteContent_UnknownNote(t *testing.T) {
	f := newFixture()
	f.notes.patchErr = store.ErrNoteNotFound

	ops := []models.PatchOperation{{Op: models.PatchOpRemove, Path: "/x"}}
	rec := f.do(t, http.MethodPatch, "/api/notes/ghost/content", ops, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// An ownership violation must not reveal that the note exists: the body is
// indistinguishable from a generic unauthorized response.
func TestPatchNoteContent_ForeignNote(t *testing.T) {
	f := newFixture()
	f.notes.patchErr = store.ErrPermissionDenied

	ops := []models.PatchOperation{{Op: models.PatchOpRemove, Path: "/x"}}
	rec := f.do(t, http.MethodPatch, "/api/notes/note-1/content", ops, true)

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Unauthorized", decodeError(t, rec).Error)
}

func TestPatchNoteContent_MalformedOps(t *testing.T) {
	f := newFixture()
	f.notes.patchErr = models.ErrInvalidPatchOp

	ops := []models.PatchOperation{{Op: "move", Path: "/x"}}
	rec := f.do(t, http.MethodPatch, "/api/notes/note-1/content", ops, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ─────────────────────────────────────────────
// storage
// ─────────────────────────────────────────────

func TestAuthorizeUploadEndpoint_QuotaExceededBody(t *testing.T) {
	f := newFixture()
	f.storage.authorizeErr = &service.QuotaError{Used: 900, Assigned: 1000, Required: 200}

	rec := f.do(t, http.MethodPost, "/api/storage/presigned-url", models.PresignedURLRequest{
		Filename:    "big.mp4",
		ContentType: "video/mp4",
		Size:        200,
	}, true)

	require.Equal(t, http.StatusForbidden, rec.Code)

	body := decodeError(t, rec)
	assert.Equal(t, "Storage quota exceeded", body.Error)
	require.NotNil(t, body.Details)
	assert.Equal(t, int64(900), body.Details.Used)
	assert.Equal(t, int64(1000), body.Details.Assigned)
	assert.Equal(t, int64(200), body.Details.Required)
}

func TestAuthorizeUploadEndpoint_Success(t *testing.T) {
	f := newFixture()
	f.storage.authorizeResp = models.PresignedURLResponse{
		UploadURL: "https://bucket/upload",
		PublicURL: "https://cdn/user-1/images/a.png",
		Key:       "user-1/images/a.png",
	}

	rec := f.do(t, http.MethodPost, "/api/storage/presigned-url", models.PresignedURLRequest{
		Filename:    "a.png",
		ContentType: "image/png",
		Size:        100,
	}, true)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.PresignedURLResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, f.storage.authorizeResp, resp)
}

func TestConfirmUploadEndpoint(t *testing.T) {
	f := newFixture()
	f.storage.confirmSize = 5000

	rec := f.do(t, http.MethodPost, "/api/storage/confirm", models.ConfirmRequest{Key: "user-1/images/a.png"}, true)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.ConfirmResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, int64(5000), resp.Size)
}

func TestConfirmUploadEndpoint_ForeignKey(t *testing.T) {
	f := newFixture()
	f.storage.confirmErr = service.ErrForeignStorageKey

	rec := f.do(t, http.MethodPost, "/api/storage/confirm", models.ConfirmRequest{Key: "user-2/images/a.png"}, true)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Unauthorized", decodeError(t, rec).Error)
}

func TestListStorageEndpoint(t *testing.T) {
	f := newFixture()
	f.storage.objects = []models.StorageObject{{Key: "user-1/images/a.png", Size: 100, URL: "https://cdn/user-1/images/a.png"}}
	f.storage.usage = models.StorageUsage{Used: 100, Assigned: 1000}

	rec := f.do(t, http.MethodGet, "/api/storage", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp storageListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Objects, 1)
	assert.Equal(t, models.StorageUsage{Used: 100, Assigned: 1000}, resp.Usage)
}
