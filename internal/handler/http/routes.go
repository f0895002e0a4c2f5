package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	api := chi.NewRouter()

	// routes without authorization
	api.Group(func(r chi.Router) {
		r.Get("/api/health", h.health)
		r.Get("/api/version", h.getServerVersion)
		r.Post("/api/auth/login", h.login)
	})

	// routes behind the authentication gate
	api.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/api/users", h.listUsers)
		r.Post("/api/users", h.createUser)
		r.Post("/api/users/{userID}", h.editUser)
	})

	api.NotFound(h.notFound)
	api.MethodNotAllowed(h.notFound)

	basePath := h.basePath
	if basePath == "" {
		basePath = "/"
	}
	router.Mount(basePath, api)
	router.NotFound(h.notFound)

	return router
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.fail(w, http.StatusNotFound, "API Endpoint Not Found")
}
