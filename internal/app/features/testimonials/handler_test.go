// internal/app/features/testimonials/handler_test.go
package testimonials

import (
	"net/http"
	"strings"
	"testing"

	testimonialStore "github.com/dalemusser/glowsite/internal/app/store/testimonials"
	"github.com/dalemusser/glowsite/internal/app/system/content"
	"github.com/dalemusser/glowsite/internal/domain/models"
	"github.com/dalemusser/glowsite/internal/testutil"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) (http.Handler, *testimonialStore.Store) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	store := testimonialStore.New(db)
	agg := content.New(content.Stores{Testimonials: store}, zap.NewNop())
	h := NewHandler(store, agg, zap.NewNop())
	return Routes(h), store
}

func TestCreateTestimonial(t *testing.T) {
	router, _ := newTestRouter(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/", map[string]any{
		"name":  "Lisa M.",
		"text":  "Tolle Beratung!",
		"stars": 5,
	})
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusCreated)

	var tm models.Testimonial
	rec.DecodeData(t, &tm)
	if tm.Name != "Lisa M." || tm.Stars != 5 {
		t.Errorf("payload: %+v", tm)
	}
}

func TestCreateTestimonialValidation(t *testing.T) {
	router, _ := newTestRouter(t)

	cases := []struct {
		name string
		body map[string]any
		want string
	}{
		{"missing name", map[string]any{"name": " ", "text": "ok", "stars": 5}, "Name ist erforderlich"},
		{"missing text", map[string]any{"name": "A", "text": "", "stars": 5}, "Text ist erforderlich"},
		{"text too long", map[string]any{"name": "A", "text": strings.Repeat("x", 501), "stars": 5}, "maximal 500 Zeichen"},
		{"stars too low", map[string]any{"name": "A", "text": "ok", "stars": 0}, "zwischen 1 und 5 Sternen"},
		{"stars too high", map[string]any{"name": "A", "text": "ok", "stars": 6}, "zwischen 1 und 5 Sternen"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.NewJSONRequest(t, http.MethodPost, "/", tc.body)
			rec := testutil.NewRecorder()
			router.ServeHTTP(rec, req)
			rec.AssertStatus(t, http.StatusBadRequest)
			rec.AssertContains(t, tc.want)
		})
	}
}

func TestUpdateTestimonialStars(t *testing.T) {
	router, store := newTestRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tm, err := store.Create(ctx, testimonialStore.CreateInput{Name: "Sarah", Text: "Gut", Stars: 3})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	req := testutil.NewJSONRequest(t, http.MethodPut, "/"+tm.ID.Hex(), map[string]any{"stars": 5})
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	var got models.Testimonial
	rec.DecodeData(t, &got)
	if got.Stars != 5 {
		t.Errorf("stars = %d", got.Stars)
	}

	// Out-of-range stars are rejected on update too.
	req = testutil.NewJSONRequest(t, http.MethodPut, "/"+tm.ID.Hex(), map[string]any{"stars": 9})
	rec = testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestDeleteTestimonial(t *testing.T) {
	router, store := newTestRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tm, err := store.Create(ctx, testimonialStore.CreateInput{Name: "Weg", Text: "x", Stars: 4})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	req := testutil.NewRequest(http.MethodDelete, "/"+tm.ID.Hex())
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	req = testutil.NewRequest(http.MethodDelete, "/"+tm.ID.Hex())
	rec = testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusNotFound)
}
