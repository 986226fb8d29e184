package http

import (
	"errors"
	"net/http"

	"github.com/nvoronin/inkwell/internal/objectstore"
	"github.com/nvoronin/inkwell/internal/service"
	"github.com/nvoronin/inkwell/internal/store"
	"github.com/nvoronin/inkwell/internal/utils"
	"github.com/nvoronin/inkwell/models"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrSessionRevoked:          http.StatusUnauthorized,
	service.ErrQuotaExceeded:           http.StatusForbidden,
	service.ErrForeignStorageKey:       http.StatusForbidden,

	store.ErrLoginAlreadyExists:    http.StatusConflict,
	store.ErrNoUserWasFound:        http.StatusNotFound,
	store.ErrSessionNotFound:       http.StatusUnauthorized,
	store.ErrNoteNotFound:          http.StatusNotFound,
	store.ErrWorkspaceNotFound:     http.StatusNotFound,
	store.ErrUserWorkspaceNotFound: http.StatusNotFound,
	store.ErrPermissionDenied:      http.StatusForbidden,
	store.ErrIntegrityViolation:    http.StatusBadRequest,
	store.ErrNothingToUpdate:       http.StatusBadRequest,

	models.ErrEmptyPatch:     http.StatusBadRequest,
	models.ErrInvalidPatchOp: http.StatusBadRequest,

	objectstore.ErrObjectNotFound: http.StatusNotFound,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeMappedError resolves err to a status code and writes the standard
// {"error": ...} body. A quota rejection additionally carries the byte
// numbers; an ownership violation masquerades as a plain "Unauthorized" so
// the response does not confirm that the resource exists.
func writeMappedError(w http.ResponseWriter, err error) {
	status := statusFromError(err)

	var quotaErr *service.QuotaError
	if errors.As(err, &quotaErr) {
		utils.WriteJSON(w, models.ErrorResponse{
			Error: "Storage quota exceeded",
			Details: &models.QuotaDetails{
				Used:     quotaErr.Used,
				Assigned: quotaErr.Assigned,
				Required: quotaErr.Required,
			},
		}, status)
		return
	}

	if errors.Is(err, store.ErrPermissionDenied) || errors.Is(err, service.ErrForeignStorageKey) {
		utils.WriteError(w, "Unauthorized", status)
		return
	}

	if status == http.StatusInternalServerError {
		utils.WriteError(w, http.StatusText(http.StatusInternalServerError), status)
		return
	}
	utils.WriteError(w, err.Error(), status)
}
