// Package testimonials provides the admin CRUD endpoints for customer
// reviews.
//
// Endpoints (mounted under /api/admin/testimonials):
//   - GET    /       - List all testimonials (newest first)
//   - POST   /       - Create a testimonial
//   - PUT    /{id}   - Update a testimonial
//   - DELETE /{id}   - Delete a testimonial
package testimonials

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/dalemusser/glowsite/internal/app/store/testimonials"
	"github.com/dalemusser/glowsite/internal/app/system/content"
	"github.com/dalemusser/glowsite/internal/app/system/jsonutil"
	"github.com/dalemusser/glowsite/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler handles admin testimonial requests.
type Handler struct {
	testimonials *testimonials.Store
	agg          *content.Aggregator
	logger       *zap.Logger
}

// NewHandler creates a testimonials handler.
func NewHandler(t *testimonials.Store, agg *content.Aggregator, logger *zap.Logger) *Handler {
	return &Handler{testimonials: t, agg: agg, logger: logger}
}

func validateStars(stars int) bool {
	return stars >= models.MinTestimonialStars && stars <= models.MaxTestimonialStars
}

// ListHandler handles GET /api/admin/testimonials.
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	list, err := h.testimonials.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list testimonials", zap.Error(err))
		jsonutil.InternalError(w, "Bewertungen konnten nicht geladen werden")
		return
	}
	jsonutil.Success(w, list)
}

// CreateHandler handles POST /api/admin/testimonials.
func (h *Handler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name     string `json:"name"`
		Text     string `json:"text"`
		Stars    int    `json:"stars"`
		ImageURL string `json:"imageUrl"`
	}
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "Ungültige Anfrage")
		return
	}

	name := strings.TrimSpace(in.Name)
	text := strings.TrimSpace(in.Text)
	switch {
	case name == "":
		jsonutil.BadRequest(w, "Name ist erforderlich")
		return
	case text == "":
		jsonutil.BadRequest(w, "Text ist erforderlich")
		return
	case utf8.RuneCountInString(text) > models.MaxTestimonialTextLength:
		jsonutil.BadRequest(w, "Text darf maximal 500 Zeichen lang sein")
		return
	case !validateStars(in.Stars):
		jsonutil.BadRequest(w, "Bewertung muss zwischen 1 und 5 Sternen liegen")
		return
	}

	t, err := h.testimonials.Create(r.Context(), testimonials.CreateInput{
		Name:     name,
		Text:     text,
		Stars:    in.Stars,
		ImageURL: strings.TrimSpace(in.ImageURL),
	})
	if err != nil {
		h.logger.Error("failed to create testimonial", zap.Error(err))
		jsonutil.InternalError(w, "Bewertung konnte nicht angelegt werden")
		return
	}

	h.agg.RefreshScope(r.Context(), content.ScopeTestimonials)
	h.logger.Info("testimonial created", zap.String("id", t.ID.Hex()))
	jsonutil.Created(w, t)
}

// UpdateHandler handles PUT /api/admin/testimonials/{id}.
func (h *Handler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.BadRequest(w, "Ungültige ID")
		return
	}

	var in struct {
		Name     *string `json:"name"`
		Text     *string `json:"text"`
		Stars    *int    `json:"stars"`
		ImageURL *string `json:"imageUrl"`
	}
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "Ungültige Anfrage")
		return
	}

	var update testimonials.UpdateInput
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			jsonutil.BadRequest(w, "Name ist erforderlich")
			return
		}
		update.Name = &name
	}
	if in.Text != nil {
		text := strings.TrimSpace(*in.Text)
		if text == "" {
			jsonutil.BadRequest(w, "Text ist erforderlich")
			return
		}
		if utf8.RuneCountInString(text) > models.MaxTestimonialTextLength {
			jsonutil.BadRequest(w, "Text darf maximal 500 Zeichen lang sein")
			return
		}
		update.Text = &text
	}
	if in.Stars != nil {
		if !validateStars(*in.Stars) {
			jsonutil.BadRequest(w, "Bewertung muss zwischen 1 und 5 Sternen liegen")
			return
		}
		update.Stars = in.Stars
	}
	if in.ImageURL != nil {
		img := strings.TrimSpace(*in.ImageURL)
		update.ImageURL = &img
	}

	if err := h.testimonials.Update(r.Context(), id, update); err != nil {
		if err == mongo.ErrNoDocuments {
			jsonutil.NotFound(w, "Bewertung nicht gefunden")
			return
		}
		h.logger.Error("failed to update testimonial", zap.Error(err))
		jsonutil.InternalError(w, "Bewertung konnte nicht gespeichert werden")
		return
	}

	t, err := h.testimonials.GetByID(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to reload testimonial", zap.Error(err))
		jsonutil.InternalError(w, "Bewertung konnte nicht geladen werden")
		return
	}

	h.agg.RefreshScope(r.Context(), content.ScopeTestimonials)
	jsonutil.Success(w, t)
}

// DeleteHandler handles DELETE /api/admin/testimonials/{id}.
func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.BadRequest(w, "Ungültige ID")
		return
	}

	if err := h.testimonials.Delete(r.Context(), id); err != nil {
		if err == mongo.ErrNoDocuments {
			jsonutil.NotFound(w, "Bewertung nicht gefunden")
			return
		}
		h.logger.Error("failed to delete testimonial", zap.Error(err))
		jsonutil.InternalError(w, "Bewertung konnte nicht gelöscht werden")
		return
	}

	h.agg.RefreshScope(r.Context(), content.ScopeTestimonials)
	h.logger.Info("testimonial deleted", zap.String("id", id.Hex()))
	jsonutil.Message(w, "Bewertung gelöscht")
}
