// Package services provides the admin CRUD endpoints for treatments.
//
// Endpoints (mounted under /api/admin/services):
//   - GET    /              - List all services
//   - POST   /              - Create a service
//   - GET    /{slug}        - Get one service
//   - PUT    /{slug}        - Update a service
//   - DELETE /{slug}        - Delete a service and its price categories
//
// The public site reads services from the content snapshot, not from
// these endpoints. Every mutation triggers a scoped snapshot refresh so
// changes show up without waiting for the next periodic sync.
package services

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/dalemusser/glowsite/internal/app/store/prices"
	"github.com/dalemusser/glowsite/internal/app/store/services"
	"github.com/dalemusser/glowsite/internal/app/system/content"
	"github.com/dalemusser/glowsite/internal/app/system/htmlsanitize"
	"github.com/dalemusser/glowsite/internal/app/system/jsonutil"
	"github.com/dalemusser/glowsite/internal/app/system/slug"
	"github.com/dalemusser/glowsite/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler handles admin service management requests.
type Handler struct {
	services *services.Store
	prices   *prices.Store
	agg      *content.Aggregator
	logger   *zap.Logger
}

// NewHandler creates a services handler.
func NewHandler(svc *services.Store, pr *prices.Store, agg *content.Aggregator, logger *zap.Logger) *Handler {
	return &Handler{services: svc, prices: pr, agg: agg, logger: logger}
}

type serviceInput struct {
	Slug               string `json:"slug"`
	Title              string `json:"title"`
	Excerpt            string `json:"excerpt"`
	Description        string `json:"description"`
	ImageURL           string `json:"imageUrl"`
	Order              int    `json:"order"`
	SEOSectionTitle    string `json:"seoSectionTitle"`
	SEOSectionContent  string `json:"seoSectionContent"`
	SEOSectionImageURL string `json:"seoSectionImageUrl"`
}

// validate checks the field constraints and returns a user-facing German
// message for the first violation found.
func (in *serviceInput) validate() string {
	title := strings.TrimSpace(in.Title)
	switch {
	case title == "":
		return "Titel ist erforderlich"
	case utf8.RuneCountInString(title) > models.MaxServiceTitleLength:
		return "Titel darf maximal 100 Zeichen lang sein"
	}

	excerpt := strings.TrimSpace(in.Excerpt)
	switch {
	case excerpt == "":
		return "Kurzbeschreibung ist erforderlich"
	case utf8.RuneCountInString(excerpt) > models.MaxServiceExcerptLength:
		return "Kurzbeschreibung darf maximal 200 Zeichen lang sein"
	}

	desc := strings.TrimSpace(in.Description)
	switch {
	case desc == "":
		return "Beschreibung ist erforderlich"
	case utf8.RuneCountInString(desc) < models.MinServiceDescription:
		return "Beschreibung muss mindestens 50 Zeichen lang sein"
	}

	if strings.TrimSpace(in.ImageURL) == "" {
		return "Bild ist erforderlich"
	}
	if in.Order < 0 {
		return "Reihenfolge darf nicht negativ sein"
	}
	return ""
}

// ListHandler handles GET /api/admin/services.
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	list, err := h.services.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list services", zap.Error(err))
		jsonutil.InternalError(w, "Services konnten nicht geladen werden")
		return
	}
	jsonutil.Success(w, list)
}

// GetHandler handles GET /api/admin/services/{slug}.
func (h *Handler) GetHandler(w http.ResponseWriter, r *http.Request) {
	svc, err := h.services.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		if err == mongo.ErrNoDocuments {
			jsonutil.NotFound(w, "Service nicht gefunden")
			return
		}
		h.logger.Error("failed to load service", zap.Error(err))
		jsonutil.InternalError(w, "Service konnte nicht geladen werden")
		return
	}
	jsonutil.Success(w, svc)
}

// CreateHandler handles POST /api/admin/services.
// The slug is derived from the title when the request leaves it empty.
func (h *Handler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var in serviceInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "Ungültige Anfrage")
		return
	}
	if msg := in.validate(); msg != "" {
		jsonutil.BadRequest(w, msg)
		return
	}

	s := strings.TrimSpace(in.Slug)
	if s == "" {
		s = slug.FromTitle(in.Title)
	}
	if err := slug.Validate(s); err != nil {
		jsonutil.BadRequest(w, err.Error())
		return
	}

	exists, err := h.services.Exists(r.Context(), s)
	if err != nil {
		h.logger.Error("failed to check slug", zap.Error(err))
		jsonutil.InternalError(w, "Service konnte nicht angelegt werden")
		return
	}
	if exists {
		jsonutil.Conflict(w, "Ein Service mit diesem Slug existiert bereits")
		return
	}

	svc, err := h.services.Create(r.Context(), services.CreateInput{
		Slug:               s,
		Title:              strings.TrimSpace(in.Title),
		Excerpt:            strings.TrimSpace(in.Excerpt),
		Description:        htmlsanitize.Sanitize(in.Description),
		ImageURL:           strings.TrimSpace(in.ImageURL),
		Order:              in.Order,
		SEOSectionTitle:    strings.TrimSpace(in.SEOSectionTitle),
		SEOSectionContent:  htmlsanitize.Sanitize(in.SEOSectionContent),
		SEOSectionImageURL: strings.TrimSpace(in.SEOSectionImageURL),
	})
	if err != nil {
		h.logger.Error("failed to create service", zap.String("slug", s), zap.Error(err))
		jsonutil.InternalError(w, "Service konnte nicht angelegt werden")
		return
	}

	h.agg.RefreshScope(r.Context(), content.ScopeServices)
	h.logger.Info("service created", zap.String("slug", s))
	jsonutil.Created(w, svc)
}

type serviceUpdateInput struct {
	Title              *string `json:"title"`
	Excerpt            *string `json:"excerpt"`
	Description        *string `json:"description"`
	ImageURL           *string `json:"imageUrl"`
	Order              *int    `json:"order"`
	SEOSectionTitle    *string `json:"seoSectionTitle"`
	SEOSectionContent  *string `json:"seoSectionContent"`
	SEOSectionImageURL *string `json:"seoSectionImageUrl"`
}

// UpdateHandler handles PUT /api/admin/services/{slug}.
// Absent fields are left unchanged; present fields are validated with the
// same limits as on create.
func (h *Handler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	s := chi.URLParam(r, "slug")

	var in serviceUpdateInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "Ungültige Anfrage")
		return
	}

	var update services.UpdateInput
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			jsonutil.BadRequest(w, "Titel ist erforderlich")
			return
		}
		if utf8.RuneCountInString(title) > models.MaxServiceTitleLength {
			jsonutil.BadRequest(w, "Titel darf maximal 100 Zeichen lang sein")
			return
		}
		update.Title = &title
	}
	if in.Excerpt != nil {
		excerpt := strings.TrimSpace(*in.Excerpt)
		if excerpt == "" {
			jsonutil.BadRequest(w, "Kurzbeschreibung ist erforderlich")
			return
		}
		if utf8.RuneCountInString(excerpt) > models.MaxServiceExcerptLength {
			jsonutil.BadRequest(w, "Kurzbeschreibung darf maximal 200 Zeichen lang sein")
			return
		}
		update.Excerpt = &excerpt
	}
	if in.Description != nil {
		desc := htmlsanitize.Sanitize(*in.Description)
		if utf8.RuneCountInString(strings.TrimSpace(desc)) < models.MinServiceDescription {
			jsonutil.BadRequest(w, "Beschreibung muss mindestens 50 Zeichen lang sein")
			return
		}
		update.Description = &desc
	}
	if in.ImageURL != nil {
		img := strings.TrimSpace(*in.ImageURL)
		if img == "" {
			jsonutil.BadRequest(w, "Bild ist erforderlich")
			return
		}
		update.ImageURL = &img
	}
	if in.Order != nil {
		if *in.Order < 0 {
			jsonutil.BadRequest(w, "Reihenfolge darf nicht negativ sein")
			return
		}
		update.Order = in.Order
	}
	if in.SEOSectionTitle != nil {
		t := strings.TrimSpace(*in.SEOSectionTitle)
		update.SEOSectionTitle = &t
	}
	if in.SEOSectionContent != nil {
		c := htmlsanitize.Sanitize(*in.SEOSectionContent)
		update.SEOSectionContent = &c
	}
	if in.SEOSectionImageURL != nil {
		img := strings.TrimSpace(*in.SEOSectionImageURL)
		update.SEOSectionImageURL = &img
	}

	if err := h.services.Update(r.Context(), s, update); err != nil {
		if err == mongo.ErrNoDocuments {
			jsonutil.NotFound(w, "Service nicht gefunden")
			return
		}
		h.logger.Error("failed to update service", zap.String("slug", s), zap.Error(err))
		jsonutil.InternalError(w, "Service konnte nicht gespeichert werden")
		return
	}

	svc, err := h.services.GetBySlug(r.Context(), s)
	if err != nil {
		h.logger.Error("failed to reload service", zap.String("slug", s), zap.Error(err))
		jsonutil.InternalError(w, "Service konnte nicht geladen werden")
		return
	}

	h.agg.RefreshScope(r.Context(), content.ScopeServices)
	h.logger.Info("service updated", zap.String("slug", s))
	jsonutil.Success(w, svc)
}

// DeleteHandler handles DELETE /api/admin/services/{slug}.
// Price categories that reference the service are removed with it.
func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	s := chi.URLParam(r, "slug")

	if err := h.services.Delete(r.Context(), s); err != nil {
		if err == mongo.ErrNoDocuments {
			jsonutil.NotFound(w, "Service nicht gefunden")
			return
		}
		h.logger.Error("failed to delete service", zap.String("slug", s), zap.Error(err))
		jsonutil.InternalError(w, "Service konnte nicht gelöscht werden")
		return
	}

	removed, err := h.prices.DeleteByService(r.Context(), s)
	if err != nil {
		h.logger.Error("failed to delete price categories for service",
			zap.String("slug", s),
			zap.Error(err),
		)
	}

	h.agg.RefreshScope(r.Context(), content.ScopeServices)
	h.agg.RefreshScope(r.Context(), content.ScopePrices)
	h.logger.Info("service deleted",
		zap.String("slug", s),
		zap.Int64("price_categories_removed", removed),
	)
	jsonutil.Message(w, "Service gelöscht")
}
