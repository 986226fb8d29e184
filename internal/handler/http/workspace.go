package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nvoronin/inkwell/internal/logger"
	"github.com/nvoronin/inkwell/internal/utils"
	"github.com/nvoronin/inkwell/models"
)

func (h *Handler) listWorkspaces(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	owner, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	list, err := h.services.WorkspaceService.List(ctx, r.URL.Query().Get("userworkspace"), owner)
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("workspace listing failed")
		writeMappedError(w, err)
		return
	}
	if list == nil {
		list = []models.Workspace{}
	}

	utils.WriteJSON(w, list, http.StatusOK)
}

func (h *Handler) createWorkspace(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	owner, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var ws models.Workspace
	if err := json.NewDecoder(r.Body).Decode(&ws); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	created, err := h.services.WorkspaceService.Create(ctx, owner, ws)
	if err != nil {
		log.Err(err).Msg("workspace creation failed")
		writeMappedError(w, err)
		return
	}

	utils.WriteJSON(w, created, http.StatusOK)
}

func (h *Handler) updateWorkspace(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	owner, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var update models.WorkspaceUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	updated, err := h.services.WorkspaceService.Update(ctx, chi.URLParam(r, "id"), owner, update)
	if err != nil {
		log.Err(err).Msg("workspace update failed")
		writeMappedError(w, err)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteWorkspace(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	owner, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	if err := h.services.WorkspaceService.Delete(ctx, chi.URLParam(r, "id"), owner); err != nil {
		logger.FromRequest(r).Err(err).Msg("workspace deletion failed")
		writeMappedError(w, err)
		return
	}

	utils.WriteJSON(w, models.SuccessResponse{Success: true}, http.StatusOK)
}
