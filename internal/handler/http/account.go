package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/itemkeeper/item-keeper/internal/logger"
	"github.com/itemkeeper/item-keeper/internal/utils"
	"github.com/itemkeeper/item-keeper/models"
)

func (h *Handler) items(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	email, ok := utils.GetEmailFromContext(ctx)
	if !ok {
		log.Error().Msg("no identity found in request context")
		utils.WriteJSON(w, models.ErrorResponse{Message: http.StatusText(http.StatusUnauthorized)}, http.StatusUnauthorized)
		return
	}

	items, err := h.services.AccountService.ListItems(ctx, email)
	if err != nil {
		h.writeError(w, r, err, "listing items failed")
		return
	}

	if items == nil {
		items = []models.Item{}
	}

	utils.WriteJSON(w, models.ItemsResponse{Items: items}, http.StatusOK)
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Message: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	if !h.requireOwner(w, r, req.UserID) {
		return
	}

	createdItem, err := h.services.AccountService.AddItem(ctx, req)
	if err != nil {
		h.writeError(w, r, err, "item creation failed")
		return
	}

	log.Debug().Str("email", createdItem.UserEmail).Int64("item_no", createdItem.ItemNo).Msg("item created")

	utils.WriteJSON(w, models.ItemAddedResponse{
		Message: "item added",
		ID:      createdItem.ItemNo,
	}, http.StatusOK)
}

func (h *Handler) changeItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Message: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	if !h.requireOwner(w, r, req.Email) {
		return
	}

	updatedItem, err := h.services.AccountService.UpdateItem(ctx, req)
	if err != nil {
		h.writeError(w, r, err, "item update failed")
		return
	}

	utils.WriteJSON(w, models.ItemUpdatedResponse{
		Message: "item updated",
		ID:      updatedItem.ItemNo,
		Item:    updatedItem.Name,
		Cost:    updatedItem.Cost,
	}, http.StatusOK)
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	email := chi.URLParam(r, "userId")
	itemNo, err := strconv.ParseInt(chi.URLParam(r, "itemNo"), 10, 64)
	if err != nil {
		log.Err(err).Msg("invalid item number in URL")
		utils.WriteJSON(w, models.ErrorResponse{Message: "invalid item number"}, http.StatusBadRequest)
		return
	}

	if !h.requireOwner(w, r, email) {
		return
	}

	deletedItem, err := h.services.AccountService.DeleteItem(ctx, email, itemNo)
	if err != nil {
		h.writeError(w, r, err, "item deletion failed")
		return
	}

	utils.WriteJSON(w, models.ItemDeletedResponse{
		Message: "item deleted",
		ItemNo:  deletedItem.ItemNo,
	}, http.StatusOK)
}
