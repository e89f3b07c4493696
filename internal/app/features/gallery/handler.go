// Package gallery provides the admin CRUD endpoints for gallery images.
//
// Endpoints (mounted under /api/admin/gallery):
//   - GET    /       - List all gallery images
//   - POST   /       - Add an image
//   - PUT    /{id}   - Update category or order
//   - DELETE /{id}   - Remove an image
//
// The image files themselves go through the storage feature; this feature
// only manages the gallery entries that reference them.
package gallery

import (
	"net/http"
	"strings"

	"github.com/dalemusser/glowsite/internal/app/store/gallery"
	"github.com/dalemusser/glowsite/internal/app/system/content"
	"github.com/dalemusser/glowsite/internal/app/system/jsonutil"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler handles admin gallery requests.
type Handler struct {
	gallery *gallery.Store
	agg     *content.Aggregator
	logger  *zap.Logger
}

// NewHandler creates a gallery handler.
func NewHandler(g *gallery.Store, agg *content.Aggregator, logger *zap.Logger) *Handler {
	return &Handler{gallery: g, agg: agg, logger: logger}
}

// ListHandler handles GET /api/admin/gallery.
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	list, err := h.gallery.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list gallery images", zap.Error(err))
		jsonutil.InternalError(w, "Galerie konnte nicht geladen werden")
		return
	}
	jsonutil.Success(w, list)
}

// CreateHandler handles POST /api/admin/gallery.
func (h *Handler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var in struct {
		URL      string `json:"url"`
		Category string `json:"category"`
		Order    int    `json:"order"`
	}
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "Ungültige Anfrage")
		return
	}
	if strings.TrimSpace(in.URL) == "" {
		jsonutil.BadRequest(w, "Bild-URL ist erforderlich")
		return
	}
	if in.Order < 0 {
		jsonutil.BadRequest(w, "Reihenfolge darf nicht negativ sein")
		return
	}

	img, err := h.gallery.Create(r.Context(), gallery.CreateInput{
		URL:      strings.TrimSpace(in.URL),
		Category: strings.TrimSpace(in.Category),
		Order:    in.Order,
	})
	if err != nil {
		h.logger.Error("failed to create gallery image", zap.Error(err))
		jsonutil.InternalError(w, "Bild konnte nicht hinzugefügt werden")
		return
	}

	h.agg.RefreshScope(r.Context(), content.ScopeGallery)
	h.logger.Info("gallery image added", zap.String("id", img.ID.Hex()))
	jsonutil.Created(w, img)
}

// UpdateHandler handles PUT /api/admin/gallery/{id}.
func (h *Handler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.BadRequest(w, "Ungültige ID")
		return
	}

	var in struct {
		URL      *string `json:"url"`
		Category *string `json:"category"`
		Order    *int    `json:"order"`
	}
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "Ungültige Anfrage")
		return
	}

	var update gallery.UpdateInput
	if in.URL != nil {
		u := strings.TrimSpace(*in.URL)
		if u == "" {
			jsonutil.BadRequest(w, "Bild-URL ist erforderlich")
			return
		}
		update.URL = &u
	}
	if in.Category != nil {
		c := strings.TrimSpace(*in.Category)
		update.Category = &c
	}
	if in.Order != nil {
		if *in.Order < 0 {
			jsonutil.BadRequest(w, "Reihenfolge darf nicht negativ sein")
			return
		}
		update.Order = in.Order
	}

	if err := h.gallery.Update(r.Context(), id, update); err != nil {
		if err == mongo.ErrNoDocuments {
			jsonutil.NotFound(w, "Bild nicht gefunden")
			return
		}
		h.logger.Error("failed to update gallery image", zap.Error(err))
		jsonutil.InternalError(w, "Bild konnte nicht gespeichert werden")
		return
	}

	img, err := h.gallery.GetByID(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to reload gallery image", zap.Error(err))
		jsonutil.InternalError(w, "Bild konnte nicht geladen werden")
		return
	}

	h.agg.RefreshScope(r.Context(), content.ScopeGallery)
	jsonutil.Success(w, img)
}

// DeleteHandler handles DELETE /api/admin/gallery/{id}.
func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.BadRequest(w, "Ungültige ID")
		return
	}

	if err := h.gallery.Delete(r.Context(), id); err != nil {
		if err == mongo.ErrNoDocuments {
			jsonutil.NotFound(w, "Bild nicht gefunden")
			return
		}
		h.logger.Error("failed to delete gallery image", zap.Error(err))
		jsonutil.InternalError(w, "Bild konnte nicht gelöscht werden")
		return
	}

	h.agg.RefreshScope(r.Context(), content.ScopeGallery)
	h.logger.Info("gallery image removed", zap.String("id", id.Hex()))
	jsonutil.Message(w, "Bild gelöscht")
}
