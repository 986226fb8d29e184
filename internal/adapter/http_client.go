package adapter

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/nvoronin/inkwell/models"
)

type HTTPClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

// loginResponse mirrors the body of the register and login endpoints.
type loginResponse struct {
	User         models.User `json:"user"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
}

type httpServerAdapter struct {
	client *resty.Client

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
}

func NewHTTPServerAdapter(cfg HTTPClientConfig) ServerAdapter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &httpServerAdapter{client: cli}
}

func (h *httpServerAdapter) SetTokens(accessToken, refreshToken string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.accessToken = strings.TrimSpace(accessToken)
	h.refreshToken = strings.TrimSpace(refreshToken)
}

func (h *httpServerAdapter) AccessToken() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.accessToken
}

func (h *httpServerAdapter) currentRefreshToken() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.refreshToken
}

func (h *httpServerAdapter) Register(ctx context.Context, user models.User) (models.User, error) {
	var body loginResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		SetResult(&body).
		Post("/api/auth/register")
	if err != nil {
		return models.User{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	h.SetTokens(body.AccessToken, body.RefreshToken)
	return body.User, nil
}

func (h *httpServerAdapter) Login(ctx context.Context, login, password string) (models.User, error) {
	var body loginResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.User{Login: login, Password: password}).
		SetResult(&body).
		Post("/api/auth/login")
	if err != nil {
		return models.User{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	h.SetTokens(body.AccessToken, body.RefreshToken)
	return body.User, nil
}

func (h *httpServerAdapter) Logout(ctx context.Context) error {
	err := h.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
	h.SetTokens("", "")
	return err
}

func (h *httpServerAdapter) FetchUserWorkspaces(ctx context.Context) ([]models.UserWorkspace, error) {
	var list []models.UserWorkspace
	if err := h.do(ctx, http.MethodGet, "/api/userworkspaces", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (h *httpServerAdapter) CreateUserWorkspace(ctx context.Context, uw models.UserWorkspace) (models.UserWorkspace, error) {
	var created models.UserWorkspace
	if err := h.do(ctx, http.MethodPost, "/api/userworkspaces", uw, &created); err != nil {
		return models.UserWorkspace{}, err
	}
	return created, nil
}

func (h *httpServerAdapter) UpdateUserWorkspace(ctx context.Context, id string, update models.UserWorkspaceUpdate) (models.UserWorkspace, error) {
	var updated models.UserWorkspace
	if err := h.do(ctx, http.MethodPut, "/api/userworkspaces/"+id, update, &updated); err != nil {
		return models.UserWorkspace{}, err
	}
	return updated, nil
}

func (h *httpServerAdapter) DeleteUserWorkspace(ctx context.Context, id string) error {
	return h.do(ctx, http.MethodDelete, "/api/userworkspaces/"+id, nil, nil)
}

func (h *httpServerAdapter) FetchWorkspaces(ctx context.Context, userWorkspaceID string) ([]models.Workspace, error) {
	var list []models.Workspace
	if err := h.do(ctx, http.MethodGet, "/api/workspaces?userworkspace="+userWorkspaceID, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (h *httpServerAdapter) CreateWorkspace(ctx context.Context, ws models.Workspace) (models.Workspace, error) {
	var created models.Workspace
	if err := h.do(ctx, http.MethodPost, "/api/workspaces", ws, &created); err != nil {
		return models.Workspace{}, err
	}
	return created, nil
}

func (h *httpServerAdapter) UpdateWorkspace(ctx context.Context, id string, update models.WorkspaceUpdate) (models.Workspace, error) {
	var updated models.Workspace
	if err := h.do(ctx, http.MethodPut, "/api/workspaces/"+id, update, &updated); err != nil {
		return models.Workspace{}, err
	}
	return updated, nil
}

func (h *httpServerAdapter) DeleteWorkspace(ctx context.Context, id string) error {
	return h.do(ctx, http.MethodDelete, "/api/workspaces/"+id, nil, nil)
}

func (h *httpServerAdapter) FetchNotes(ctx context.Context, workspaceID string) ([]models.Note, error) {
	var list []models.Note
	if err := h.do(ctx, http.MethodGet, "/api/notes?workspace="+workspaceID, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (h *httpServerAdapter) GetNote(ctx context.Context, id string) (models.Note, error) {
	var note models.Note
	if err := h.do(ctx, http.MethodGet, "/api/notes/"+id, nil, &note); err != nil {
		return models.Note{}, err
	}
	return note, nil
}

func (h *httpServerAdapter) CreateNote(ctx context.Context, note models.Note) (models.Note, error) {
	var created models.Note
	if err := h.do(ctx, http.MethodPost, "/api/notes", note, &created); err != nil {
		return models.Note{}, err
	}
	return created, nil
}

func (h *httpServerAdapter) UpdateNote(ctx context.Context, id string, update models.NoteUpdate) (models.Note, error) {
	var updated models.Note
	if err := h.do(ctx, http.MethodPut, "/api/notes/"+id, update, &updated); err != nil {
		return models.Note{}, err
	}
	return updated, nil
}

func (h *httpServerAdapter) DeleteNote(ctx context.Context, id string) error {
	return h.do(ctx, http.MethodDelete, "/api/notes/"+id, nil, nil)
}

func (h *httpServerAdapter) PatchNoteContent(ctx context.Context, id string, ops []models.PatchOperation) error {
	return h.do(ctx, http.MethodPatch, "/api/notes/"+id+"/content", ops, nil)
}

func (h *httpServerAdapter) AuthorizeUpload(ctx context.Context, req models.PresignedURLRequest) (models.PresignedURLResponse, error) {
	var resp models.PresignedURLResponse
	if err := h.do(ctx, http.MethodPost, "/api/storage/presigned-url", req, &resp); err != nil {
		return models.PresignedURLResponse{}, err
	}
	return resp, nil
}

func (h *httpServerAdapter) ConfirmUpload(ctx context.Context, key string) (models.ConfirmResponse, error) {
	var resp models.ConfirmResponse
	if err := h.do(ctx, http.MethodPost, "/api/storage/confirm", models.ConfirmRequest{Key: key}, &resp); err != nil {
		return models.ConfirmResponse{}, err
	}
	return resp, nil
}

func (h *httpServerAdapter) DeleteObject(ctx context.Context, key string) (models.DeleteObjectResponse, error) {
	var resp models.DeleteObjectResponse
	if err := h.do(ctx, http.MethodDelete, "/api/storage", models.DeleteObjectRequest{Key: key}, &resp); err != nil {
		return models.DeleteObjectResponse{}, err
	}
	return resp, nil
}

// do executes one authenticated request. On a 401 it refreshes the token
// pair once and replays the request; a second 401 (or a failed refresh)
// surfaces as ErrUnauthorized. There is deliberately no retry loop beyond
// that single replay.
func (h *httpServerAdapter) do(ctx context.Context, method, url string, body, result any) error {
	resp, err := h.execute(ctx, method, url, body, result)
	if err != nil {
		return fmt.Errorf("%s %s request: %w", method, url, err)
	}

	if resp.StatusCode() == http.StatusUnauthorized && h.currentRefreshToken() != "" {
		if refreshErr := h.refresh(ctx); refreshErr == nil {
			resp, err = h.execute(ctx, method, url, body, result)
			if err != nil {
				return fmt.Errorf("%s %s request: %w", method, url, err)
			}
		}
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) execute(ctx context.Context, method, url string, body, result any) (*resty.Response, error) {
	req := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json")
	if token := h.AccessToken(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	return req.Execute(method, url)
}

func (h *httpServerAdapter) refresh(ctx context.Context) error {
	var pair models.TokenPair
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.RefreshRequest{RefreshToken: h.currentRefreshToken()}).
		SetResult(&pair).
		Post("/api/auth/refresh")
	if err != nil {
		return fmt.Errorf("refresh request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	h.SetTokens(pair.AccessToken, pair.RefreshToken)

	return nil
}
