package http

import (
	"encoding/json"
	"net/http"

	"github.com/nvoronin/inkwell/internal/logger"
	"github.com/nvoronin/inkwell/internal/utils"
	"github.com/nvoronin/inkwell/models"
)

// loginResponse is the body returned by register and login: the token pair
// plus the account (password hash stripped by the model's json tags).
type loginResponse struct {
	User         models.User `json:"user"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	registeredUser, pair, err := h.services.AuthService.Register(ctx, user)
	if err != nil {
		log.Err(err).Msg("user registration failed")
		writeMappedError(w, err)
		return
	}

	utils.WriteJSON(w, loginResponse{
		User:         registeredUser,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, http.StatusOK)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var creds models.User
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	foundUser, pair, err := h.services.AuthService.Login(ctx, creds.Login, creds.Password)
	if err != nil {
		log.Err(err).Str("login", creds.Login).Msg("user login failed")
		writeMappedError(w, err)
		return
	}

	utils.WriteJSON(w, loginResponse{
		User:         foundUser,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, http.StatusOK)
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	pair, err := h.services.AuthService.Refresh(ctx, req.RefreshToken)
	if err != nil {
		log.Err(err).Msg("token refresh failed")
		writeMappedError(w, err)
		return
	}

	utils.WriteJSON(w, pair, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	sessionID, ok := utils.GetSessionIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no session in authenticated request")
		utils.WriteError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	if err := h.services.AuthService.Logout(ctx, sessionID); err != nil {
		log.Err(err).Str("sessionID", sessionID).Msg("logout failed")
		writeMappedError(w, err)
		return
	}

	utils.WriteJSON(w, models.SuccessResponse{Success: true}, http.StatusOK)
}
