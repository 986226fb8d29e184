package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nvoronin/inkwell/internal/logger"
	"github.com/nvoronin/inkwell/internal/utils"
	"github.com/nvoronin/inkwell/models"
)

func (h *Handler) listUserWorkspaces(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	owner, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	list, err := h.services.UserWorkspaceService.List(ctx, owner)
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("userworkspace listing failed")
		writeMappedError(w, err)
		return
	}
	if list == nil {
		list = []models.UserWorkspace{}
	}

	utils.WriteJSON(w, list, http.StatusOK)
}

func (h *Handler) createUserWorkspace(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	owner, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var uw models.UserWorkspace
	if err := json.NewDecoder(r.Body).Decode(&uw); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	created, err := h.services.UserWorkspaceService.Create(ctx, owner, uw)
	if err != nil {
		log.Err(err).Msg("userworkspace creation failed")
		writeMappedError(w, err)
		return
	}

	utils.WriteJSON(w, created, http.StatusOK)
}

func (h *Handler) updateUserWorkspace(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	owner, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var update models.UserWorkspaceUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	updated, err := h.services.UserWorkspaceService.Update(ctx, chi.URLParam(r, "id"), owner, update)
	if err != nil {
		log.Err(err).Msg("userworkspace update failed")
		writeMappedError(w, err)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteUserWorkspace(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	owner, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	if err := h.services.UserWorkspaceService.Delete(ctx, chi.URLParam(r, "id"), owner); err != nil {
		logger.FromRequest(r).Err(err).Msg("userworkspace deletion failed")
		writeMappedError(w, err)
		return
	}

	utils.WriteJSON(w, models.SuccessResponse{Success: true}, http.StatusOK)
}
