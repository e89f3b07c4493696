// Package promotions provides the admin CRUD endpoints for limited-time
// offers.
//
// Endpoints (mounted under /api/admin/promotions):
//   - GET    /       - List all promotions
//   - POST   /       - Create a promotion (capped at 3)
//   - PUT    /{id}   - Update a promotion
//   - DELETE /{id}   - Delete a promotion
package promotions

import (
	"net/http"
	"strings"

	"github.com/dalemusser/glowsite/internal/app/store/promotions"
	"github.com/dalemusser/glowsite/internal/app/system/content"
	"github.com/dalemusser/glowsite/internal/app/system/htmlsanitize"
	"github.com/dalemusser/glowsite/internal/app/system/jsonutil"
	"github.com/dalemusser/glowsite/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const msgCapReached = "Maximum 3 Aktionen erreicht"

// Handler handles admin promotion requests.
type Handler struct {
	promotions *promotions.Store
	agg        *content.Aggregator
	logger     *zap.Logger
}

// NewHandler creates a promotions handler.
func NewHandler(p *promotions.Store, agg *content.Aggregator, logger *zap.Logger) *Handler {
	return &Handler{promotions: p, agg: agg, logger: logger}
}

// ListHandler handles GET /api/admin/promotions.
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	list, err := h.promotions.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list promotions", zap.Error(err))
		jsonutil.InternalError(w, "Aktionen konnten nicht geladen werden")
		return
	}
	jsonutil.Success(w, list)
}

// CreateHandler handles POST /api/admin/promotions.
// The total number of promotions is capped; the cap counts inactive
// promotions too.
func (h *Handler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		ImageURL    string `json:"imageUrl"`
		Active      bool   `json:"active"`
		Order       int    `json:"order"`
	}
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "Ungültige Anfrage")
		return
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		jsonutil.BadRequest(w, "Titel ist erforderlich")
		return
	}
	if in.Order < 0 {
		jsonutil.BadRequest(w, "Reihenfolge darf nicht negativ sein")
		return
	}

	count, err := h.promotions.Count(r.Context())
	if err != nil {
		h.logger.Error("failed to count promotions", zap.Error(err))
		jsonutil.InternalError(w, "Aktion konnte nicht angelegt werden")
		return
	}
	if count >= models.MaxPromotions {
		jsonutil.Conflict(w, msgCapReached)
		return
	}

	p, err := h.promotions.Create(r.Context(), promotions.CreateInput{
		Title:       title,
		Description: htmlsanitize.Sanitize(in.Description),
		ImageURL:    strings.TrimSpace(in.ImageURL),
		Active:      in.Active,
		Order:       in.Order,
	})
	if err != nil {
		h.logger.Error("failed to create promotion", zap.Error(err))
		jsonutil.InternalError(w, "Aktion konnte nicht angelegt werden")
		return
	}

	h.agg.RefreshScope(r.Context(), content.ScopePromotions)
	h.logger.Info("promotion created", zap.String("id", p.ID.Hex()), zap.String("title", title))
	jsonutil.Created(w, p)
}

// UpdateHandler handles PUT /api/admin/promotions/{id}.
func (h *Handler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.BadRequest(w, "Ungültige ID")
		return
	}

	var in struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		ImageURL    *string `json:"imageUrl"`
		Active      *bool   `json:"active"`
		Order       *int    `json:"order"`
	}
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "Ungültige Anfrage")
		return
	}

	var update promotions.UpdateInput
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			jsonutil.BadRequest(w, "Titel ist erforderlich")
			return
		}
		update.Title = &title
	}
	if in.Description != nil {
		d := htmlsanitize.Sanitize(*in.Description)
		update.Description = &d
	}
	if in.ImageURL != nil {
		img := strings.TrimSpace(*in.ImageURL)
		update.ImageURL = &img
	}
	update.Active = in.Active
	if in.Order != nil {
		if *in.Order < 0 {
			jsonutil.BadRequest(w, "Reihenfolge darf nicht negativ sein")
			return
		}
		update.Order = in.Order
	}

	if err := h.promotions.Update(r.Context(), id, update); err != nil {
		if err == mongo.ErrNoDocuments {
			jsonutil.NotFound(w, "Aktion nicht gefunden")
			return
		}
		h.logger.Error("failed to update promotion", zap.Error(err))
		jsonutil.InternalError(w, "Aktion konnte nicht gespeichert werden")
		return
	}

	p, err := h.promotions.GetByID(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to reload promotion", zap.Error(err))
		jsonutil.InternalError(w, "Aktion konnte nicht geladen werden")
		return
	}

	h.agg.RefreshScope(r.Context(), content.ScopePromotions)
	jsonutil.Success(w, p)
}

// DeleteHandler handles DELETE /api/admin/promotions/{id}.
func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.BadRequest(w, "Ungültige ID")
		return
	}

	if err := h.promotions.Delete(r.Context(), id); err != nil {
		if err == mongo.ErrNoDocuments {
			jsonutil.NotFound(w, "Aktion nicht gefunden")
			return
		}
		h.logger.Error("failed to delete promotion", zap.Error(err))
		jsonutil.InternalError(w, "Aktion konnte nicht gelöscht werden")
		return
	}

	h.agg.RefreshScope(r.Context(), content.ScopePromotions)
	h.logger.Info("promotion deleted", zap.String("id", id.Hex()))
	jsonutil.Message(w, "Aktion gelöscht")
}
