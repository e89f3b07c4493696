package passwordreset

import (
	"testing"
	"time"

	"github.com/dalemusser/glowsite/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, time.Hour)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	r, err := store.Create(ctx, userID, "admin@example.com")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if r.Token == "" {
		t.Error("Create() should generate a token")
	}
	if r.Used {
		t.Error("Create() reset should not be marked used")
	}
	if r.UserID != userID {
		t.Error("Create() should keep the user ID")
	}
	if !r.ExpiresAt.After(time.Now().Add(50 * time.Minute)) {
		t.Error("Create() expiry should be about an hour in the future")
	}
}

func TestStore_Create_InvalidatesPreviousTokens(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, time.Hour)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	first, err := store.Create(ctx, userID, "admin@example.com")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	second, err := store.Create(ctx, userID, "admin@example.com")
	if err != nil {
		t.Fatalf("second Create() error = %v", err)
	}

	if _, err := store.VerifyToken(ctx, first.Token); err == nil {
		t.Error("VerifyToken() should reject the superseded token")
	}
	if _, err := store.VerifyToken(ctx, second.Token); err != nil {
		t.Errorf("VerifyToken() should accept the latest token, got %v", err)
	}
}

func TestStore_VerifyToken(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, time.Hour)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	created, err := store.Create(ctx, userID, "admin@example.com")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	r, err := store.VerifyToken(ctx, created.Token)
	if err != nil {
		t.Fatalf("VerifyToken() error = %v", err)
	}
	if r.UserID != userID {
		t.Error("VerifyToken() returned wrong user")
	}
	if r.Email != "admin@example.com" {
		t.Errorf("VerifyToken() email = %s", r.Email)
	}

	// Unknown token
	if _, err := store.VerifyToken(ctx, "not-a-token"); err == nil {
		t.Error("VerifyToken() should reject an unknown token")
	}
}

func TestStore_VerifyToken_Expired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, 1*time.Millisecond)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, primitive.NewObjectID(), "admin@example.com")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	if _, err := store.VerifyToken(ctx, created.Token); err == nil {
		t.Error("VerifyToken() should reject an expired token")
	}
}

func TestStore_MarkUsed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, time.Hour)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, primitive.NewObjectID(), "admin@example.com")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := store.MarkUsed(ctx, created.ID); err != nil {
		t.Fatalf("MarkUsed() error = %v", err)
	}

	if _, err := store.VerifyToken(ctx, created.Token); err == nil {
		t.Error("VerifyToken() should reject a used token")
	}
}

func TestGenerateToken_Unique(t *testing.T) {
	a, err := newToken()
	if err != nil {
		t.Fatalf("generateToken() error = %v", err)
	}
	b, err := newToken()
	if err != nil {
		t.Fatalf("generateToken() error = %v", err)
	}
	if a == b {
		t.Error("generateToken() should not repeat")
	}
	if len(a) < 32 {
		t.Errorf("generateToken() length = %d, want at least 32", len(a))
	}
}
