package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nvoronin/inkwell/internal/logger"
	"github.com/nvoronin/inkwell/internal/utils"
	"github.com/nvoronin/inkwell/models"
)

func (h *Handler) listNotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	owner, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	list, err := h.services.NoteService.List(ctx, r.URL.Query().Get("workspace"), owner)
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("note listing failed")
		writeMappedError(w, err)
		return
	}
	if list == nil {
		list = []models.Note{}
	}

	utils.WriteJSON(w, list, http.StatusOK)
}

func (h *Handler) createNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	owner, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var note models.Note
	if err := json.NewDecoder(r.Body).Decode(&note); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	created, err := h.services.NoteService.Create(ctx, owner, note)
	if err != nil {
		log.Err(err).Msg("note creation failed")
		writeMappedError(w, err)
		return
	}

	utils.WriteJSON(w, created, http.StatusOK)
}

func (h *Handler) getNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	owner, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	note, err := h.services.NoteService.Get(ctx, chi.URLParam(r, "id"), owner)
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("note lookup failed")
		writeMappedError(w, err)
		return
	}

	utils.WriteJSON(w, note, http.StatusOK)
}

func (h *Handler) updateNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	owner, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var update models.NoteUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	updated, err := h.services.NoteService.Update(ctx, chi.URLParam(r, "id"), owner, update)
	if err != nil {
		log.Err(err).Msg("note update failed")
		writeMappedError(w, err)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	owner, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	if err := h.services.NoteService.Delete(ctx, chi.URLParam(r, "id"), owner); err != nil {
		logger.FromRequest(r).Err(err).Msg("note deletion failed")
		writeMappedError(w, err)
		return
	}

	utils.WriteJSON(w, models.SuccessResponse{Success: true}, http.StatusOK)
}

// patchNoteContent forwards the operation list to the stored function. The
// content document is never round-tripped through the server: the database
// applies the ops under a row lock and the handler only reports the outcome.
func (h *Handler) patchNoteContent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	owner, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var ops []models.PatchOperation
	if err := json.NewDecoder(r.Body).Decode(&ops); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.NoteService.ApplyPatch(ctx, chi.URLParam(r, "id"), owner, ops); err != nil {
		log.Err(err).Msg("note patch failed")
		writeMappedError(w, err)
		return
	}

	utils.WriteJSON(w, models.SuccessResponse{Success: true}, http.StatusOK)
}
