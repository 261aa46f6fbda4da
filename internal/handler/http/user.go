package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/itemkeeper/item-keeper/internal/logger"
	"github.com/itemkeeper/item-keeper/internal/service"
	"github.com/itemkeeper/item-keeper/internal/store"
	"github.com/itemkeeper/item-keeper/internal/utils"
	"github.com/itemkeeper/item-keeper/models"
)

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Message: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	registeredUser, err := h.services.AuthService.RegisterUser(ctx, req)
	if err != nil {
		h.writeError(w, r, err, "user registration failed")
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, registeredUser)
	if err != nil {
		h.writeError(w, r, err, "creation of token failed")
		return
	}

	log.Debug().Int64("id", registeredUser.UserID).Str("email", registeredUser.Email).Msg("user registered")

	utils.WriteJSON(w, models.SignupResponse{
		Message: "user created",
		Email:   registeredUser.Email,
		Key:     token.SignedString,
		Name:    registeredUser.Name,
		ID:      registeredUser.UserID,
	}, http.StatusOK)
}

func (h *Handler) signin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Message: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, req)
	if err != nil {
		// an absent account and a wrong password must be indistinguishable,
		// otherwise signin becomes an account enumeration oracle
		if errors.Is(err, store.ErrNoUserWasFound) || errors.Is(err, service.ErrWrongPassword) {
			log.Err(err).Msg("no user was found/wrong password")
			utils.WriteJSON(w, models.ErrorResponse{Message: "invalid email/password"}, http.StatusUnauthorized)
			return
		}
		h.writeError(w, r, err, "user signin failed")
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, foundUser)
	if err != nil {
		h.writeError(w, r, err, "creation of token failed")
		return
	}

	log.Debug().Int64("id", foundUser.UserID).Str("email", foundUser.Email).Msg("user successfully signed in")

	utils.WriteJSON(w, models.SigninResponse{
		Token: token.SignedString,
		Name:  foundUser.Name,
		Email: foundUser.Email,
		ID:    foundUser.UserID,
	}, http.StatusOK)
}

func (h *Handler) usersByName(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	name := r.URL.Query().Get("name")

	foundUsers, err := h.services.AuthService.FindUsersByName(ctx, name)
	if err != nil {
		h.writeError(w, r, err, "user search by name failed")
		return
	}

	// only public fields leave the server
	response := models.UsersResponse{Users: make([]models.UserResponse, 0, len(foundUsers))}
	for _, user := range foundUsers {
		response.Users = append(response.Users, models.UserResponse{
			Name:  user.Name,
			Email: user.Email,
			ID:    user.UserID,
		})
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Message: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	if !h.requireOwner(w, r, req.UserID) {
		return
	}

	updatedUser, err := h.services.AuthService.ChangePassword(ctx, req.UserID, req.OldPassword, req.NewPassword)
	if err != nil {
		h.writeError(w, r, err, "password change failed")
		return
	}

	utils.WriteJSON(w, models.UserChangedResponse{
		Message: "password changed",
		Email:   updatedUser.Email,
		ID:      updatedUser.UserID,
	}, http.StatusOK)
}

func (h *Handler) removeUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	email := chi.URLParam(r, "userId")
	if _, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64); err != nil {
		log.Err(err).Msg("invalid user id in URL")
		utils.WriteJSON(w, models.ErrorResponse{Message: "invalid user id"}, http.StatusBadRequest)
		return
	}

	if !h.requireOwner(w, r, email) {
		return
	}

	deletedUser, err := h.services.AuthService.DeleteUser(ctx, email)
	if err != nil {
		h.writeError(w, r, err, "user deletion failed")
		return
	}

	utils.WriteJSON(w, models.UserChangedResponse{
		Message: "user deleted",
		Email:   deletedUser.Email,
		ID:      deletedUser.UserID,
	}, http.StatusOK)
}
