// internal/app/store/gallery/gallerystore_test.go
package gallery

import (
	"errors"
	"testing"

	"github.com/dalemusser/glowsite/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestCreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	img, err := store.Create(ctx, CreateInput{
		URL:      "https://cdn.example.com/gallery/nails-1.jpg",
		Category: "Nägel",
		Order:    2,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if img.ID.IsZero() {
		t.Error("id not assigned")
	}

	got, err := store.GetByID(ctx, img.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.URL != img.URL || got.Category != "Nägel" {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestUpdate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	img, err := store.Create(ctx, CreateInput{URL: "https://cdn.example.com/a.jpg", Category: "Wimpern"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	category := "Augenbrauen"
	order := 7
	if err := store.Update(ctx, img.ID, UpdateInput{Category: &category, Order: &order}); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := store.GetByID(ctx, img.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Category != "Augenbrauen" || got.Order != 7 {
		t.Errorf("update not applied: %+v", got)
	}
	if got.URL != img.URL {
		t.Errorf("url changed: %q", got.URL)
	}
}

func TestDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	img, err := store.Create(ctx, CreateInput{URL: "https://cdn.example.com/b.jpg"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.Delete(ctx, img.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.GetByID(ctx, img.ID); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("want ErrNoDocuments, got %v", err)
	}
}

func TestDeleteMissing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.Delete(ctx, primitive.NewObjectID()); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("want ErrNoDocuments, got %v", err)
	}
}

func TestListSortedByOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for _, in := range []CreateInput{
		{URL: "https://cdn.example.com/3.jpg", Order: 3},
		{URL: "https://cdn.example.com/1.jpg", Order: 1},
		{URL: "https://cdn.example.com/2.jpg", Order: 2},
	} {
		if _, err := store.Create(ctx, in); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("len = %d", len(list))
	}
	for i := range list {
		if list[i].Order != i+1 {
			t.Errorf("list[%d].Order = %d", i, list[i].Order)
		}
	}
}
