package settings

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the admin settings endpoints.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/site", h.GetSiteHandler)
	r.Put("/site", h.SaveSiteHandler)
	r.Get("/opening-hours", h.GetOpeningHoursHandler)
	r.Put("/opening-hours", h.SaveOpeningHoursHandler)
	r.Get("/legal", h.GetLegalHandler)
	r.Put("/legal", h.SaveLegalHandler)
	r.Get("/override", h.GetOverrideHandler)
	r.Put("/override", h.SetOverrideHandler)
	return r
}
