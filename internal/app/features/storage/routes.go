package storage

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the admin image and quota endpoints.
//
// When mounted at /api/admin/storage:
//   - POST   /api/admin/storage/upload/{folder}
//   - GET    /api/admin/storage/images/{folder}
//   - DELETE /api/admin/storage/images
//   - GET    /api/admin/storage/stats
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Post("/upload/{folder}", h.UploadHandler)
	r.Get("/images/{folder}", h.ListHandler)
	r.Delete("/images", h.DeleteHandler)
	r.Get("/stats", h.StatsHandler)
	return r
}
