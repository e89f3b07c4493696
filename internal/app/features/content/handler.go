// Package content serves the aggregated site content to the public website
// and lets admins trigger an immediate re-sync.
//
// Endpoints:
//   - GET  /api/content          - Full content snapshot (public)
//   - GET  /api/content/status   - Sync state and generation (public)
//   - POST /api/admin/content/refresh - Force a refresh (admin)
//   - POST /api/admin/content/reset   - Back to compiled-in defaults (admin)
package content

import (
	"net/http"
	"time"

	settingsstore "github.com/dalemusser/glowsite/internal/app/store/settings"
	"github.com/dalemusser/glowsite/internal/app/system/content"
	"github.com/dalemusser/glowsite/internal/app/system/jsonutil"
	"go.uber.org/zap"
)

// Handler serves content snapshot requests.
type Handler struct {
	agg      *content.Aggregator
	settings *settingsstore.Store
	logger   *zap.Logger
}

// NewHandler creates a content handler backed by the given aggregator.
func NewHandler(agg *content.Aggregator, settings *settingsstore.Store, logger *zap.Logger) *Handler {
	return &Handler{agg: agg, settings: settings, logger: logger}
}

// snapshotResponse wraps the snapshot with sync metadata so clients can
// tell defaults from database-backed content.
type snapshotResponse struct {
	State      string    `json:"state"`
	Generation uint64    `json:"generation"`
	LastSync   time.Time `json:"lastSync,omitempty"`
	Content    any       `json:"content"`
}

// GetHandler handles GET /api/content.
func (h *Handler) GetHandler(w http.ResponseWriter, r *http.Request) {
	snap := h.agg.Snapshot()
	state, lastSync := h.agg.State()

	jsonutil.Success(w, snapshotResponse{
		State:      state,
		Generation: h.agg.Generation(),
		LastSync:   lastSync,
		Content:    snap,
	})
}

// StatusHandler handles GET /api/content/status.
func (h *Handler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	state, lastSync := h.agg.State()
	jsonutil.Success(w, map[string]any{
		"state":      state,
		"generation": h.agg.Generation(),
		"lastSync":   lastSync,
	})
}

var refreshScopes = map[string]bool{
	content.ScopeSettings:     true,
	content.ScopeServices:     true,
	content.ScopePrices:       true,
	content.ScopeGallery:      true,
	content.ScopeTestimonials: true,
	content.ScopePromotions:   true,
	content.ScopeLegal:        true,
}

// RefreshHandler handles POST /api/admin/content/refresh.
// An optional "scope" query parameter limits the refresh to one collection.
func (h *Handler) RefreshHandler(w http.ResponseWriter, r *http.Request) {
	scope := r.URL.Query().Get("scope")

	if scope != "" {
		if !refreshScopes[scope] {
			jsonutil.BadRequest(w, "Unbekannter Bereich: "+scope)
			return
		}
		h.agg.RefreshScope(r.Context(), scope)
	} else {
		if err := h.agg.Refresh(r.Context()); err != nil {
			h.logger.Error("content refresh aborted", zap.Error(err))
			jsonutil.InternalError(w, "Aktualisierung abgebrochen")
			return
		}
	}

	state, lastSync := h.agg.State()
	h.logger.Info("content refresh requested",
		zap.String("scope", scope),
		zap.String("state", state),
	)
	jsonutil.Success(w, map[string]any{
		"state":      state,
		"generation": h.agg.Generation(),
		"lastSync":   lastSync,
	})
}

// ResetHandler handles POST /api/admin/content/reset.
// Drops all synced content in favor of the compiled-in defaults and clears
// the manual content override. The next refresh re-syncs from the database.
func (h *Handler) ResetHandler(w http.ResponseWriter, r *http.Request) {
	h.agg.Reset()

	if err := h.settings.SetContentOverride(r.Context(), false); err != nil {
		h.logger.Warn("failed to clear content override", zap.Error(err))
	}

	state, _ := h.agg.State()
	h.logger.Info("content reset to defaults")
	jsonutil.Success(w, map[string]any{
		"state":      state,
		"generation": h.agg.Generation(),
	})
}
