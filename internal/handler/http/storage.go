package http

import (
	"encoding/json"
	"net/http"

	"github.com/nvoronin/inkwell/internal/logger"
	"github.com/nvoronin/inkwell/internal/utils"
	"github.com/nvoronin/inkwell/models"
)

// storageListResponse is the listing body: the caller's objects plus the
// current quota snapshot.
type storageListResponse struct {
	Objects []models.StorageObject `json:"objects"`
	Usage   models.StorageUsage    `json:"usage"`
}

func (h *Handler) authorizeUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.PresignedURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	resp, err := h.services.StorageService.AuthorizeUpload(ctx, userID, req)
	if err != nil {
		log.Err(err).Msg("upload authorization failed")
		writeMappedError(w, err)
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) confirmUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.ConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	size, err := h.services.StorageService.ConfirmUpload(ctx, userID, req.Key)
	if err != nil {
		log.Err(err).Str("key", req.Key).Msg("upload confirmation failed")
		writeMappedError(w, err)
		return
	}

	utils.WriteJSON(w, models.ConfirmResponse{Success: true, Size: size}, http.StatusOK)
}

func (h *Handler) deleteObject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.DeleteObjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	refunded, err := h.services.StorageService.DeleteObject(ctx, userID, req.Key)
	if err != nil {
		log.Err(err).Str("key", req.Key).Msg("object deletion failed")
		writeMappedError(w, err)
		return
	}

	utils.WriteJSON(w, models.DeleteObjectResponse{Success: true, Refunded: refunded}, http.StatusOK)
}

func (h *Handler) listStorage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	objects, usage, err := h.services.StorageService.List(ctx, userID, r.URL.Query().Get("prefix"))
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("storage listing failed")
		writeMappedError(w, err)
		return
	}
	if objects == nil {
		objects = []models.StorageObject{}
	}

	utils.WriteJSON(w, storageListResponse{Objects: objects, Usage: usage}, http.StatusOK)
}
