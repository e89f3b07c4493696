// internal/app/store/users/userstore_test.go
package userstore

import (
	"errors"
	"testing"

	"github.com/dalemusser/glowsite/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestCreateNormalizesEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u, err := store.Create(ctx, "  Admin@Example.COM ", "$2a$12$hash")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.Email != "admin@example.com" {
		t.Errorf("email = %q, want normalized", u.Email)
	}
}

func TestGetByEmailCaseInsensitive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, "chef@example.com", "$2a$12$hash"); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := store.GetByEmail(ctx, "CHEF@Example.com")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Email != "chef@example.com" {
		t.Errorf("email = %q", got.Email)
	}

	if _, err := store.GetByEmail(ctx, "missing@example.com"); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("want ErrNoDocuments, got %v", err)
	}
}

func TestCreateDuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, "doppelt@example.com", "$2a$12$hash"); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := store.Create(ctx, "Doppelt@example.com", "$2a$12$other")
	if !mongo.IsDuplicateKeyError(err) {
		t.Errorf("want duplicate key error, got %v", err)
	}
}

func TestUpdatePassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u, err := store.Create(ctx, "reset@example.com", "$2a$12$old")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := store.UpdatePassword(ctx, u.ID, "$2a$12$new"); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := store.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.PasswordHash != "$2a$12$new" {
		t.Errorf("hash = %q", got.PasswordHash)
	}
}

func TestRecordLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u, err := store.Create(ctx, "login@example.com", "$2a$12$hash")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.LastLoginAt != nil {
		t.Error("last_login_at should start unset")
	}

	if err := store.RecordLogin(ctx, u.ID); err != nil {
		t.Fatalf("record: %v", err)
	}

	got, err := store.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.LastLoginAt == nil || got.LastLoginAt.IsZero() {
		t.Error("last_login_at not recorded")
	}
}

func TestExistsByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, "da@example.com", "$2a$12$hash"); err != nil {
		t.Fatalf("create: %v", err)
	}

	ok, err := store.ExistsByEmail(ctx, "DA@example.com")
	if err != nil || !ok {
		t.Errorf("exists = %v, %v", ok, err)
	}
	ok, err = store.ExistsByEmail(ctx, "nein@example.com")
	if err != nil || ok {
		t.Errorf("missing exists = %v, %v", ok, err)
	}
}

func TestGetByIDMissing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.GetByID(ctx, primitive.NewObjectID()); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("want ErrNoDocuments, got %v", err)
	}
}

func TestListAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for _, email := range []string{"a@example.com", "b@example.com"} {
		if _, err := store.Create(ctx, email, "$2a$12$hash"); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	list, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("len = %d", len(list))
	}
}
