// internal/app/system/content/aggregator_test.go

package content

import (
	"testing"

	galleryStore "github.com/dalemusser/glowsite/internal/app/store/gallery"
	priceStore "github.com/dalemusser/glowsite/internal/app/store/prices"
	promotionStore "github.com/dalemusser/glowsite/internal/app/store/promotions"
	serviceStore "github.com/dalemusser/glowsite/internal/app/store/services"
	settingsStore "github.com/dalemusser/glowsite/internal/app/store/settings"
	testimonialStore "github.com/dalemusser/glowsite/internal/app/store/testimonials"
	"github.com/dalemusser/glowsite/internal/domain/models"
	"github.com/dalemusser/glowsite/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestAggregator(t *testing.T) (*Aggregator, Stores, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	stores := Stores{
		Settings:     settingsStore.New(db),
		Services:     serviceStore.New(db),
		Prices:       priceStore.New(db),
		Gallery:      galleryStore.New(db),
		Testimonials: testimonialStore.New(db),
		Promotions:   promotionStore.New(db),
	}
	return New(stores, zap.NewNop()), stores, db
}

func TestStartsBootstrappedWithDefaults(t *testing.T) {
	agg, _, _ := newTestAggregator(t)

	state, lastSync := agg.State()
	if state != StateBootstrapped {
		t.Fatalf("state = %q, want %q", state, StateBootstrapped)
	}
	if !lastSync.IsZero() {
		t.Errorf("lastSync should be zero before any merge, got %v", lastSync)
	}

	snap := agg.Snapshot()
	if snap.SiteSettings.BrandPrimary != models.DefaultSnapshot().SiteSettings.BrandPrimary {
		t.Errorf("brand primary = %q, want default", snap.SiteSettings.BrandPrimary)
	}
	if len(snap.Services) != 2 {
		t.Errorf("default services = %d, want 2", len(snap.Services))
	}
	if agg.Generation() != 0 {
		t.Errorf("generation = %d, want 0", agg.Generation())
	}
}

func TestRefreshMergesDatabaseContent(t *testing.T) {
	agg, stores, _ := newTestAggregator(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := stores.Services.Create(ctx, serviceStore.CreateInput{
		Slug:  "nageldesign",
		Title: "Nageldesign",
		Order: 1,
	}); err != nil {
		t.Fatalf("create service: %v", err)
	}
	if _, err := stores.Testimonials.Create(ctx, testimonialStore.CreateInput{
		Name:  "Anna",
		Text:  "Sehr zufrieden!",
		Stars: 5,
	}); err != nil {
		t.Fatalf("create testimonial: %v", err)
	}

	if err := agg.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	state, lastSync := agg.State()
	if state != StateSynced {
		t.Fatalf("state = %q, want %q", state, StateSynced)
	}
	if lastSync.IsZero() {
		t.Error("lastSync should be set after refresh")
	}

	snap := agg.Snapshot()
	if len(snap.Services) != 1 || snap.Services[0].Slug != "nageldesign" {
		t.Errorf("services not merged: %+v", snap.Services)
	}
	if len(snap.Testimonials) != 1 || snap.Testimonials[0].Name != "Anna" {
		t.Errorf("testimonials not merged: %+v", snap.Testimonials)
	}
}

func TestEmptyCollectionsKeepDefaults(t *testing.T) {
	agg, _, _ := newTestAggregator(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// Nothing in the database. Services and prices keep their compiled-in
	// defaults so the public site never renders empty.
	if err := agg.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	snap := agg.Snapshot()
	if len(snap.Services) != 2 {
		t.Errorf("services = %d, want 2 defaults kept", len(snap.Services))
	}
	if len(snap.Prices) == 0 {
		t.Error("prices defaults should be kept")
	}
	if len(snap.OpeningHours) != 7 {
		t.Errorf("opening hours = %d, want 7 defaults kept", len(snap.OpeningHours))
	}
}

func TestEmptiedCollectionsKeepPreviousContent(t *testing.T) {
	agg, stores, _ := newTestAggregator(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	img, err := stores.Gallery.Create(ctx, galleryStore.CreateInput{
		URL:      "https://cdn.example.com/gallery/1.jpg",
		Category: "Nägel",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	tst, err := stores.Testimonials.Create(ctx, testimonialStore.CreateInput{
		Name:  "Anna",
		Text:  "Sehr zufrieden!",
		Stars: 5,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	promo, err := stores.Promotions.Create(ctx, promotionStore.CreateInput{
		Title:  "Sommerangebot",
		Active: true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := agg.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	// Deleting the last entry of a collection leaves the snapshot slice
	// untouched, like every other collection that comes back empty.
	if err := stores.Gallery.Delete(ctx, img.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := stores.Testimonials.Delete(ctx, tst.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := stores.Promotions.Delete(ctx, promo.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := agg.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	snap := agg.Snapshot()
	if len(snap.Gallery) != 1 {
		t.Errorf("gallery = %d, want previous content kept", len(snap.Gallery))
	}
	if len(snap.Testimonials) != 1 {
		t.Errorf("testimonials = %d, want previous content kept", len(snap.Testimonials))
	}
	if len(snap.Promotions) != 1 {
		t.Errorf("promotions = %d, want previous content kept", len(snap.Promotions))
	}
}

func TestStaleScopeWriteIsDiscarded(t *testing.T) {
	agg, _, _ := newTestAggregator(t)

	early := agg.beginPass()
	late := agg.beginPass()

	agg.merge(ScopeGallery, late, func(s *models.ContentSnapshot) {
		s.Gallery = []models.GalleryImage{{URL: "https://cdn.example.com/gallery/new.jpg"}}
	})
	gen := agg.Generation()

	// A slower pass that started earlier finishes now; its result is stale
	// and must not overwrite the newer one.
	agg.merge(ScopeGallery, early, func(s *models.ContentSnapshot) {
		s.Gallery = []models.GalleryImage{{URL: "https://cdn.example.com/gallery/old.jpg"}}
	})

	snap := agg.Snapshot()
	if len(snap.Gallery) != 1 || snap.Gallery[0].URL != "https://cdn.example.com/gallery/new.jpg" {
		t.Errorf("gallery = %+v, want the newer pass to win", snap.Gallery)
	}
	if agg.Generation() != gen {
		t.Error("discarded write must not bump the generation")
	}

	// The same pass may write its scope again (single-scope refreshes reuse
	// their number only once, but equal numbers are not stale).
	agg.merge(ScopeGallery, late, func(s *models.ContentSnapshot) {
		s.Gallery = nil
	})
	if agg.Generation() != gen+1 {
		t.Error("non-stale write should apply")
	}
}

func TestRefreshScopeTargetsSingleScope(t *testing.T) {
	agg, stores, _ := newTestAggregator(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := stores.Promotions.Create(ctx, promotionStore.CreateInput{
		Title:  "Sommerangebot",
		Active: true,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := stores.Services.Create(ctx, serviceStore.CreateInput{
		Slug:  "microblading",
		Title: "Microblading",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	agg.RefreshScope(ctx, ScopePromotions)

	snap := agg.Snapshot()
	if len(snap.Promotions) != 1 {
		t.Errorf("promotions = %d, want 1", len(snap.Promotions))
	}
	// Services scope was not refreshed, so the defaults still stand.
	if len(snap.Services) != 2 {
		t.Errorf("services = %d, want untouched defaults", len(snap.Services))
	}
}

func TestSettingsScopeMergesHoursOnlyWhenPresent(t *testing.T) {
	agg, stores, _ := newTestAggregator(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := stores.Settings.SaveSiteSettings(ctx, models.SiteSettings{
		BrandPrimary: "#112233",
		Phone:        "+49 170 1234567",
	}); err != nil {
		t.Fatalf("save: %v", err)
	}

	agg.RefreshScope(ctx, ScopeSettings)

	snap := agg.Snapshot()
	if snap.SiteSettings.BrandPrimary != "#112233" {
		t.Errorf("brand primary = %q, want stored value", snap.SiteSettings.BrandPrimary)
	}
	if len(snap.OpeningHours) != 7 {
		t.Errorf("opening hours = %d, want defaults kept when none stored", len(snap.OpeningHours))
	}
}

func TestUnknownScopeIsIgnored(t *testing.T) {
	agg, _, _ := newTestAggregator(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	gen := agg.Generation()
	agg.RefreshScope(ctx, "bogus")
	if agg.Generation() != gen {
		t.Error("unknown scope must not bump the generation")
	}
}

func TestGenerationBumpsOnMerge(t *testing.T) {
	agg, _, _ := newTestAggregator(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	before := agg.Generation()
	agg.RefreshScope(ctx, ScopeGallery)
	if agg.Generation() <= before {
		t.Error("generation should increase after a merge")
	}
}

func TestResetReturnsToDefaults(t *testing.T) {
	agg, stores, _ := newTestAggregator(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := stores.Gallery.Create(ctx, galleryStore.CreateInput{
		URL: "https://cdn.example.com/gallery/2.jpg",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}
	agg.RefreshScope(ctx, ScopeGallery)

	agg.Reset()

	state, _ := agg.State()
	if state != StateBootstrapped {
		t.Fatalf("state = %q, want %q", state, StateBootstrapped)
	}
	if snap := agg.Snapshot(); len(snap.Gallery) != 0 {
		t.Errorf("gallery = %d, want empty default", len(snap.Gallery))
	}
}
