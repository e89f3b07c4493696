// Package settings provides the admin endpoints for site-wide settings:
// contact details, opening hours and the legal text blocks.
//
// Endpoints (mounted under /api/admin/settings):
//   - GET /site           - Contact and booking settings
//   - PUT /site           - Save contact and booking settings
//   - GET /opening-hours  - Weekly opening hours
//   - PUT /opening-hours  - Save weekly opening hours
//   - GET /legal          - Impressum and Datenschutz texts
//   - PUT /legal          - Save legal texts
//   - GET /override       - Dynamic-content override flag
//   - PUT /override       - Set the override flag
package settings

import (
	"net/http"
	"strings"

	settings "github.com/dalemusser/glowsite/internal/app/store/settings"
	"github.com/dalemusser/glowsite/internal/app/system/content"
	"github.com/dalemusser/glowsite/internal/app/system/htmlsanitize"
	"github.com/dalemusser/glowsite/internal/app/system/jsonutil"
	"github.com/dalemusser/glowsite/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler handles admin settings requests.
type Handler struct {
	settings *settings.Store
	agg      *content.Aggregator
	logger   *zap.Logger
}

// NewHandler creates a settings handler.
func NewHandler(s *settings.Store, agg *content.Aggregator, logger *zap.Logger) *Handler {
	return &Handler{settings: s, agg: agg, logger: logger}
}

// GetSiteHandler handles GET /api/admin/settings/site.
// Before anything was saved the compiled-in defaults are returned, so the
// admin form is never empty.
func (h *Handler) GetSiteHandler(w http.ResponseWriter, r *http.Request) {
	s, err := h.settings.GetSiteSettings(r.Context())
	if err != nil {
		if err == mongo.ErrNoDocuments {
			def := models.DefaultSnapshot().SiteSettings
			jsonutil.Success(w, def)
			return
		}
		h.logger.Error("failed to load site settings", zap.Error(err))
		jsonutil.InternalError(w, "Einstellungen konnten nicht geladen werden")
		return
	}
	jsonutil.Success(w, s)
}

// SaveSiteHandler handles PUT /api/admin/settings/site.
func (h *Handler) SaveSiteHandler(w http.ResponseWriter, r *http.Request) {
	var in models.SiteSettings
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "Ungültige Anfrage")
		return
	}

	in.BrandPrimary = strings.TrimSpace(in.BrandPrimary)
	in.BrandAccent = strings.TrimSpace(in.BrandAccent)
	in.BookingURL = strings.TrimSpace(in.BookingURL)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.TrimSpace(in.Email)
	in.Address = strings.TrimSpace(in.Address)
	in.Instagram = strings.TrimSpace(in.Instagram)
	in.Facebook = strings.TrimSpace(in.Facebook)
	in.LogoURL = strings.TrimSpace(in.LogoURL)

	if err := h.settings.SaveSiteSettings(r.Context(), in); err != nil {
		h.logger.Error("failed to save site settings", zap.Error(err))
		jsonutil.InternalError(w, "Einstellungen konnten nicht gespeichert werden")
		return
	}

	h.agg.RefreshScope(r.Context(), content.ScopeSettings)
	h.logger.Info("site settings saved")
	jsonutil.Success(w, in)
}

// GetOpeningHoursHandler handles GET /api/admin/settings/opening-hours.
func (h *Handler) GetOpeningHoursHandler(w http.ResponseWriter, r *http.Request) {
	hours, err := h.settings.GetOpeningHours(r.Context())
	if err != nil {
		if err == mongo.ErrNoDocuments {
			jsonutil.Success(w, models.DefaultSnapshot().OpeningHours)
			return
		}
		h.logger.Error("failed to load opening hours", zap.Error(err))
		jsonutil.InternalError(w, "Öffnungszeiten konnten nicht geladen werden")
		return
	}
	jsonutil.Success(w, hours)
}

// SaveOpeningHoursHandler handles PUT /api/admin/settings/opening-hours.
// The table always has exactly seven entries, Monday first.
func (h *Handler) SaveOpeningHoursHandler(w http.ResponseWriter, r *http.Request) {
	var in []models.OpeningHour
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "Ungültige Anfrage")
		return
	}
	if len(in) != 7 {
		jsonutil.BadRequest(w, "Öffnungszeiten müssen genau 7 Tage umfassen")
		return
	}
	for i := range in {
		in[i].Day = strings.TrimSpace(in[i].Day)
		in[i].Open = strings.TrimSpace(in[i].Open)
		in[i].Close = strings.TrimSpace(in[i].Close)
		if in[i].Day == "" {
			jsonutil.BadRequest(w, "Jeder Eintrag braucht einen Wochentag")
			return
		}
		if !in[i].Closed && (in[i].Open == "" || in[i].Close == "") {
			jsonutil.BadRequest(w, "Geöffnete Tage brauchen Öffnungs- und Schließzeit")
			return
		}
	}

	if err := h.settings.SaveOpeningHours(r.Context(), in); err != nil {
		h.logger.Error("failed to save opening hours", zap.Error(err))
		jsonutil.InternalError(w, "Öffnungszeiten konnten nicht gespeichert werden")
		return
	}

	h.agg.RefreshScope(r.Context(), content.ScopeSettings)
	h.logger.Info("opening hours saved")
	jsonutil.Success(w, in)
}

// GetLegalHandler handles GET /api/admin/settings/legal.
func (h *Handler) GetLegalHandler(w http.ResponseWriter, r *http.Request) {
	legal, err := h.settings.GetLegal(r.Context())
	if err != nil {
		if err == mongo.ErrNoDocuments {
			def := models.DefaultSnapshot().Legal
			jsonutil.Success(w, def)
			return
		}
		h.logger.Error("failed to load legal texts", zap.Error(err))
		jsonutil.InternalError(w, "Rechtstexte konnten nicht geladen werden")
		return
	}
	jsonutil.Success(w, legal)
}

// SaveLegalHandler handles PUT /api/admin/settings/legal.
// Both texts are stored as sanitized HTML.
func (h *Handler) SaveLegalHandler(w http.ResponseWriter, r *http.Request) {
	var in models.Legal
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "Ungültige Anfrage")
		return
	}

	in.Impressum = htmlsanitize.Sanitize(in.Impressum)
	in.Datenschutz = htmlsanitize.Sanitize(in.Datenschutz)
	if strings.TrimSpace(in.Impressum) == "" {
		jsonutil.BadRequest(w, "Impressum darf nicht leer sein")
		return
	}
	if strings.TrimSpace(in.Datenschutz) == "" {
		jsonutil.BadRequest(w, "Datenschutzerklärung darf nicht leer sein")
		return
	}

	if err := h.settings.SaveLegal(r.Context(), in); err != nil {
		h.logger.Error("failed to save legal texts", zap.Error(err))
		jsonutil.InternalError(w, "Rechtstexte konnten nicht gespeichert werden")
		return
	}

	h.agg.RefreshScope(r.Context(), content.ScopeLegal)
	h.logger.Info("legal texts saved")
	jsonutil.Success(w, in)
}

// GetOverrideHandler handles GET /api/admin/settings/override.
func (h *Handler) GetOverrideHandler(w http.ResponseWriter, r *http.Request) {
	enabled, err := h.settings.GetContentOverride(r.Context())
	if err != nil {
		h.logger.Error("failed to load content override", zap.Error(err))
		jsonutil.InternalError(w, "Einstellungen konnten nicht geladen werden")
		return
	}
	jsonutil.Success(w, map[string]bool{"enabled": enabled})
}

// SetOverrideHandler handles PUT /api/admin/settings/override.
// Enabling the override triggers a full snapshot refresh so the database
// content takes effect immediately.
func (h *Handler) SetOverrideHandler(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Enabled bool `json:"enabled"`
	}
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "Ungültige Anfrage")
		return
	}

	if err := h.settings.SetContentOverride(r.Context(), in.Enabled); err != nil {
		h.logger.Error("failed to save content override", zap.Error(err))
		jsonutil.InternalError(w, "Einstellungen konnten nicht gespeichert werden")
		return
	}

	if in.Enabled {
		if err := h.agg.Refresh(r.Context()); err != nil {
			h.logger.Warn("refresh after override aborted", zap.Error(err))
		}
	}

	h.logger.Info("content override saved", zap.Bool("enabled", in.Enabled))
	jsonutil.Success(w, map[string]bool{"enabled": in.Enabled})
}
