// Package prices provides the admin CRUD endpoints for price categories.
//
// Endpoints (mounted under /api/admin/prices):
//   - GET    /       - List all price categories (optionally ?service=slug)
//   - POST   /       - Create a price category
//   - GET    /{id}   - Get one price category
//   - PUT    /{id}   - Update a price category
//   - DELETE /{id}   - Delete a price category
package prices

import (
	"net/http"
	"strings"

	"github.com/dalemusser/glowsite/internal/app/store/prices"
	"github.com/dalemusser/glowsite/internal/app/store/services"
	"github.com/dalemusser/glowsite/internal/app/system/content"
	"github.com/dalemusser/glowsite/internal/app/system/jsonutil"
	"github.com/dalemusser/glowsite/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler handles admin price category requests.
type Handler struct {
	prices   *prices.Store
	services *services.Store
	agg      *content.Aggregator
	logger   *zap.Logger
}

// NewHandler creates a prices handler.
func NewHandler(pr *prices.Store, svc *services.Store, agg *content.Aggregator, logger *zap.Logger) *Handler {
	return &Handler{prices: pr, services: svc, agg: agg, logger: logger}
}

type priceInput struct {
	ServiceID     string             `json:"serviceId"`
	Category      string             `json:"category"`
	DurationRange string             `json:"durationRange"`
	StartingPrice *float64           `json:"startingPrice"`
	Description   string             `json:"description"`
	Items         []models.PriceItem `json:"items"`
	Order         int                `json:"order"`
}

func validateItems(items []models.PriceItem) string {
	for _, it := range items {
		if strings.TrimSpace(it.Name) == "" {
			return "Jede Position braucht einen Namen"
		}
		if it.Amount < 0 {
			return "Preise dürfen nicht negativ sein"
		}
		if it.Duration < 0 {
			return "Dauer darf nicht negativ sein"
		}
	}
	return ""
}

// ListHandler handles GET /api/admin/prices.
// An optional "service" query parameter filters by service slug.
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	var (
		list []models.PriceCategory
		err  error
	)
	if svc := r.URL.Query().Get("service"); svc != "" {
		list, err = h.prices.ListByService(r.Context(), svc)
	} else {
		list, err = h.prices.List(r.Context())
	}
	if err != nil {
		h.logger.Error("failed to list price categories", zap.Error(err))
		jsonutil.InternalError(w, "Preise konnten nicht geladen werden")
		return
	}
	jsonutil.Success(w, list)
}

// GetHandler handles GET /api/admin/prices/{id}.
func (h *Handler) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.BadRequest(w, "Ungültige ID")
		return
	}
	cat, err := h.prices.GetByID(r.Context(), id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			jsonutil.NotFound(w, "Preiskategorie nicht gefunden")
			return
		}
		h.logger.Error("failed to load price category", zap.Error(err))
		jsonutil.InternalError(w, "Preiskategorie konnte nicht geladen werden")
		return
	}
	jsonutil.Success(w, cat)
}

// CreateHandler handles POST /api/admin/prices.
// The referenced service must exist; a category cannot be attached to a
// slug that has no service page.
func (h *Handler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var in priceInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "Ungültige Anfrage")
		return
	}

	serviceID := strings.TrimSpace(in.ServiceID)
	if serviceID == "" {
		jsonutil.BadRequest(w, "Service ist erforderlich")
		return
	}
	if strings.TrimSpace(in.Category) == "" {
		jsonutil.BadRequest(w, "Kategorie ist erforderlich")
		return
	}
	if in.Order < 0 {
		jsonutil.BadRequest(w, "Reihenfolge darf nicht negativ sein")
		return
	}
	if msg := validateItems(in.Items); msg != "" {
		jsonutil.BadRequest(w, msg)
		return
	}

	exists, err := h.services.Exists(r.Context(), serviceID)
	if err != nil {
		h.logger.Error("failed to check service", zap.Error(err))
		jsonutil.InternalError(w, "Preiskategorie konnte nicht angelegt werden")
		return
	}
	if !exists {
		jsonutil.BadRequest(w, "Unbekannter Service: "+serviceID)
		return
	}

	cat, err := h.prices.Create(r.Context(), prices.CreateInput{
		ServiceID:     serviceID,
		Category:      strings.TrimSpace(in.Category),
		DurationRange: strings.TrimSpace(in.DurationRange),
		StartingPrice: in.StartingPrice,
		Description:   strings.TrimSpace(in.Description),
		Items:         in.Items,
		Order:         in.Order,
	})
	if err != nil {
		h.logger.Error("failed to create price category", zap.Error(err))
		jsonutil.InternalError(w, "Preiskategorie konnte nicht angelegt werden")
		return
	}

	h.agg.RefreshScope(r.Context(), content.ScopePrices)
	h.logger.Info("price category created",
		zap.String("service", serviceID),
		zap.String("category", cat.Category),
	)
	jsonutil.Created(w, cat)
}

type priceUpdateInput struct {
	ServiceID     *string            `json:"serviceId"`
	Category      *string            `json:"category"`
	DurationRange *string            `json:"durationRange"`
	StartingPrice *float64           `json:"startingPrice"`
	Description   *string            `json:"description"`
	Items         []models.PriceItem `json:"items"`
	Order         *int               `json:"order"`
}

// UpdateHandler handles PUT /api/admin/prices/{id}.
// A non-null items array replaces the whole item list.
func (h *Handler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.BadRequest(w, "Ungültige ID")
		return
	}

	var in priceUpdateInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "Ungültige Anfrage")
		return
	}

	var update prices.UpdateInput
	if in.ServiceID != nil {
		serviceID := strings.TrimSpace(*in.ServiceID)
		if serviceID == "" {
			jsonutil.BadRequest(w, "Service ist erforderlich")
			return
		}
		exists, err := h.services.Exists(r.Context(), serviceID)
		if err != nil {
			h.logger.Error("failed to check service", zap.Error(err))
			jsonutil.InternalError(w, "Preiskategorie konnte nicht gespeichert werden")
			return
		}
		if !exists {
			jsonutil.BadRequest(w, "Unbekannter Service: "+serviceID)
			return
		}
		update.ServiceID = &serviceID
	}
	if in.Category != nil {
		cat := strings.TrimSpace(*in.Category)
		if cat == "" {
			jsonutil.BadRequest(w, "Kategorie ist erforderlich")
			return
		}
		update.Category = &cat
	}
	if in.DurationRange != nil {
		d := strings.TrimSpace(*in.DurationRange)
		update.DurationRange = &d
	}
	update.StartingPrice = in.StartingPrice
	if in.Description != nil {
		d := strings.TrimSpace(*in.Description)
		update.Description = &d
	}
	if in.Items != nil {
		if msg := validateItems(in.Items); msg != "" {
			jsonutil.BadRequest(w, msg)
			return
		}
		update.Items = in.Items
	}
	if in.Order != nil {
		if *in.Order < 0 {
			jsonutil.BadRequest(w, "Reihenfolge darf nicht negativ sein")
			return
		}
		update.Order = in.Order
	}

	if err := h.prices.Update(r.Context(), id, update); err != nil {
		if err == mongo.ErrNoDocuments {
			jsonutil.NotFound(w, "Preiskategorie nicht gefunden")
			return
		}
		h.logger.Error("failed to update price category", zap.Error(err))
		jsonutil.InternalError(w, "Preiskategorie konnte nicht gespeichert werden")
		return
	}

	cat, err := h.prices.GetByID(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to reload price category", zap.Error(err))
		jsonutil.InternalError(w, "Preiskategorie konnte nicht geladen werden")
		return
	}

	h.agg.RefreshScope(r.Context(), content.ScopePrices)
	jsonutil.Success(w, cat)
}

// DeleteHandler handles DELETE /api/admin/prices/{id}.
func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.BadRequest(w, "Ungültige ID")
		return
	}

	if err := h.prices.Delete(r.Context(), id); err != nil {
		if err == mongo.ErrNoDocuments {
			jsonutil.NotFound(w, "Preiskategorie nicht gefunden")
			return
		}
		h.logger.Error("failed to delete price category", zap.Error(err))
		jsonutil.InternalError(w, "Preiskategorie konnte nicht gelöscht werden")
		return
	}

	h.agg.RefreshScope(r.Context(), content.ScopePrices)
	h.logger.Info("price category deleted", zap.String("id", id.Hex()))
	jsonutil.Message(w, "Preiskategorie gelöscht")
}
