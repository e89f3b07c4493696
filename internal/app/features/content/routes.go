package content

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the public content endpoints.
//
// When mounted at /api/content:
//   - GET /api/content        - Full content snapshot
//   - GET /api/content/status - Sync state
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.GetHandler)
	r.Get("/status", h.StatusHandler)
	return r
}

// AdminRoutes returns the admin-only content endpoints.
//
// When mounted at /api/admin/content:
//   - POST /api/admin/content/refresh - Force a refresh
//   - POST /api/admin/content/reset   - Restore compiled-in defaults
func AdminRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Post("/refresh", h.RefreshHandler)
	r.Post("/reset", h.ResetHandler)
	return r
}
