package http

import (
	"net/http"

	"github.com/itemkeeper/item-keeper/internal/logger"
	"github.com/itemkeeper/item-keeper/internal/service"
	"github.com/itemkeeper/item-keeper/internal/utils"
)

type Handler struct {
	services *service.Services

	logger *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		logger:   logger,
	}
}

// requireOwner checks that the authenticated identity stored in the request
// context matches the owner named in the request. On mismatch it writes a
// 403 response and returns false. A valid token never overrides the check:
// acting on another account's records is forbidden regardless of who signed in.
func (h *Handler) requireOwner(w http.ResponseWriter, r *http.Request, declaredOwner string) bool {
	tokenEmail, ok := utils.GetEmailFromContext(r.Context())
	if !ok || tokenEmail != declaredOwner {
		h.writeError(w, r, ErrOwnerMismatch, ErrOwnerMismatch.Error())
		return false
	}
	return true
}
