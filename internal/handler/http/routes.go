package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/user/signup", h.signup)
		r.Post("/api/user/signin", h.signin)
		r.Get("/api/user/bulk", h.usersByName)
	})

	// owner-scoped routes behind the token guard
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Put("/api/user/changePassword", h.changePassword)
		r.Delete("/api/user/removeUser/user/{userId}/id/{id}", h.removeUser)

		r.Get("/api/account/items", h.items)
		r.Post("/api/account/additem", h.addItem)
		r.Put("/api/account/changeitem", h.changeItem)
		r.Delete("/api/account/removeitem/user/{userId}/items/{itemNo}", h.removeItem)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
