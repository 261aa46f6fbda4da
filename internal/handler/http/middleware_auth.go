// Package http implements the HTTP transport layer of the application.
// It provides middleware, route handlers, and request/response utilities
// for the REST API. Authentication, logging, and tracing concerns are all
// handled at this layer before requests are forwarded to the service layer.
package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/itemkeeper/item-keeper/internal/logger"
	"github.com/itemkeeper/item-keeper/internal/utils"
	"github.com/itemkeeper/item-keeper/models"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It reads the incoming "Authorization" header, strips an optional "Bearer "
// scheme prefix, validates the remainder via [service.AuthService.ParseToken],
// and — on success — stores the authenticated account email in the request
// context under [utils.EmailCtxKey] before delegating to the next handler.
//
// An absent header yields an empty token string, which fails signature
// verification like any other malformed token; there is no separate
// "missing token" path. All rejections are HTTP 401 Unauthorized.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		tokenString := getTokenFromAuthHeader(r.Header.Get("Authorization"))

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Err(err).Msg("error occurred during parsing token")
			utils.WriteJSON(w, models.ErrorResponse{Message: http.StatusText(http.StatusUnauthorized)}, http.StatusUnauthorized)
			return
		}

		// Store the authenticated account email in the context so that
		// downstream handlers can check ownership without re-parsing the token.
		ctx = context.WithValue(ctx, utils.EmailCtxKey, token.Email)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getTokenFromAuthHeader extracts the token string from a raw "Authorization"
// HTTP header value.
//
// A "Bearer " scheme prefix is tolerated and stripped; any other value is
// used verbatim. An absent header therefore maps to the empty string.
func getTokenFromAuthHeader(authHeader string) string {
	return strings.TrimPrefix(authHeader, "Bearer ")
}
