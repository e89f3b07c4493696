package gallery

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the admin gallery endpoints.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.ListHandler)
	r.Post("/", h.CreateHandler)
	r.Put("/{id}", h.UpdateHandler)
	r.Delete("/{id}", h.DeleteHandler)
	return r
}
