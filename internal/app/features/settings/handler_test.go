// internal/app/features/settings/handler_test.go
package settings

import (
	"net/http"
	"testing"

	galleryStore "github.com/dalemusser/glowsite/internal/app/store/gallery"
	priceStore "github.com/dalemusser/glowsite/internal/app/store/prices"
	promotionStore "github.com/dalemusser/glowsite/internal/app/store/promotions"
	serviceStore "github.com/dalemusser/glowsite/internal/app/store/services"
	settingsStore "github.com/dalemusser/glowsite/internal/app/store/settings"
	testimonialStore "github.com/dalemusser/glowsite/internal/app/store/testimonials"
	"github.com/dalemusser/glowsite/internal/app/system/content"
	"github.com/dalemusser/glowsite/internal/domain/models"
	"github.com/dalemusser/glowsite/internal/testutil"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) (http.Handler, *content.Aggregator) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	store := settingsStore.New(db)
	agg := content.New(content.Stores{
		Settings:     store,
		Services:     serviceStore.New(db),
		Prices:       priceStore.New(db),
		Gallery:      galleryStore.New(db),
		Testimonials: testimonialStore.New(db),
		Promotions:   promotionStore.New(db),
	}, zap.NewNop())
	h := NewHandler(store, agg, zap.NewNop())
	return Routes(h), agg
}

func TestGetSiteFallsBackToDefaults(t *testing.T) {
	router, _ := newTestRouter(t)

	req := testutil.NewRequest(http.MethodGet, "/site")
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	var s models.SiteSettings
	rec.DecodeData(t, &s)
	if s.BrandPrimary != models.DefaultSnapshot().SiteSettings.BrandPrimary {
		t.Errorf("brand primary = %q, want default", s.BrandPrimary)
	}
}

func TestSaveSiteRefreshesSnapshot(t *testing.T) {
	router, agg := newTestRouter(t)

	req := testutil.NewJSONRequest(t, http.MethodPut, "/site", map[string]string{
		"brandPrimary": " #112233 ",
		"phone":        "+49 170 1234567",
	})
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	snap := agg.Snapshot()
	if snap.SiteSettings.BrandPrimary != "#112233" {
		t.Errorf("snapshot brand = %q, want trimmed stored value", snap.SiteSettings.BrandPrimary)
	}
}

func TestSaveOpeningHoursValidation(t *testing.T) {
	router, _ := newTestRouter(t)

	// Not seven entries.
	req := testutil.NewJSONRequest(t, http.MethodPut, "/opening-hours", []models.OpeningHour{
		{Day: "Montag", Open: "09:00", Close: "18:00"},
	})
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "genau 7 Tage")

	// Open day without times.
	hours := models.DefaultSnapshot().OpeningHours
	hours[0].Open = ""
	req = testutil.NewJSONRequest(t, http.MethodPut, "/opening-hours", hours)
	rec = testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestSaveOpeningHours(t *testing.T) {
	router, _ := newTestRouter(t)

	req := testutil.NewJSONRequest(t, http.MethodPut, "/opening-hours", models.DefaultSnapshot().OpeningHours)
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusOK)
}

func TestSaveLegalSanitizes(t *testing.T) {
	router, agg := newTestRouter(t)

	req := testutil.NewJSONRequest(t, http.MethodPut, "/legal", map[string]string{
		"impressum":   "<h2>Impressum</h2><script>alert(1)</script>",
		"datenschutz": "<p>Datenschutz</p>",
	})
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	snap := agg.Snapshot()
	if snap.Legal.Impressum != "<h2>Impressum</h2>" {
		t.Errorf("impressum not sanitized: %q", snap.Legal.Impressum)
	}
}

func TestSaveLegalRejectsEmpty(t *testing.T) {
	router, _ := newTestRouter(t)

	req := testutil.NewJSONRequest(t, http.MethodPut, "/legal", map[string]string{
		"impressum":   "<script>nur skript</script>",
		"datenschutz": "<p>ok</p>",
	})
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "Impressum darf nicht leer sein")
}

func TestOverrideRoundTrip(t *testing.T) {
	router, _ := newTestRouter(t)

	req := testutil.NewRequest(http.MethodGet, "/override")
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	var out struct {
		Enabled bool `json:"enabled"`
	}
	rec.DecodeData(t, &out)
	if out.Enabled {
		t.Error("override should default to off")
	}

	req = testutil.NewJSONRequest(t, http.MethodPut, "/override", map[string]bool{"enabled": true})
	rec = testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	req = testutil.NewRequest(http.MethodGet, "/override")
	rec = testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	rec.DecodeData(t, &out)
	if !out.Enabled {
		t.Error("override should be on after save")
	}
}
