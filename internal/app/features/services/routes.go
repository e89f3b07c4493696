package services

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the admin service management endpoints.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.ListHandler)
	r.Post("/", h.CreateHandler)
	r.Get("/{slug}", h.GetHandler)
	r.Put("/{slug}", h.UpdateHandler)
	r.Delete("/{slug}", h.DeleteHandler)
	return r
}
