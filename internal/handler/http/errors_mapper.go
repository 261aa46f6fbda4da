package http

import (
	"errors"
	"net/http"

	"github.com/itemkeeper/item-keeper/internal/logger"
	"github.com/itemkeeper/item-keeper/internal/service"
	"github.com/itemkeeper/item-keeper/internal/store"
	"github.com/itemkeeper/item-keeper/internal/utils"
	"github.com/itemkeeper/item-keeper/models"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrSamePassword:            http.StatusBadRequest,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrTokenCreationFailed:     http.StatusInternalServerError,

	ErrOwnerMismatch: http.StatusForbidden,

	store.ErrEmailAlreadyExists: http.StatusConflict,
	store.ErrItemAlreadyExists:  http.StatusConflict,
	store.ErrNoUserWasFound:     http.StatusNotFound,
	store.ErrItemNotFound:       http.StatusNotFound,

	store.ErrCounterUnavailable: http.StatusServiceUnavailable,
	store.ErrStoreUnavailable:   http.StatusServiceUnavailable,

	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusInternalServerError,
	store.ErrScanningRow:      http.StatusInternalServerError,
	store.ErrScanningRows:     http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError logs err and responds with the mapped status and a uniform
// JSON error body.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	log := logger.FromRequest(r)
	log.Err(err).Msg(msg)
	utils.WriteJSON(w, models.ErrorResponse{Message: msg}, statusFromError(err))
}
