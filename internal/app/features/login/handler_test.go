// internal/app/features/login/handler_test.go
package login

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/glowsite/internal/app/store/passwordreset"
	"github.com/dalemusser/glowsite/internal/app/store/ratelimit"
	users "github.com/dalemusser/glowsite/internal/app/store/users"
	"github.com/dalemusser/glowsite/internal/app/system/auth"
	"github.com/dalemusser/glowsite/internal/app/system/auth/strategy"
	"github.com/dalemusser/glowsite/internal/app/system/authutil"
	"github.com/dalemusser/glowsite/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const testPassword = "Str0ng!Passw0rd"

type loginFixture struct {
	handler *Handler
	users   *users.Store
	resets  *passwordreset.Store
	limits  *ratelimit.Store
}

func newLoginFixture(t *testing.T, db *mongo.Database, allowed []string) *loginFixture {
	t.Helper()

	sm, err := auth.NewSessionManager(
		"0123456789abcdef0123456789abcdef", "glowsite_test_session", "",
		time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}

	userStore := users.New(db)
	limits := ratelimit.New(db, 3, 15*time.Minute, zap.NewNop())
	resets := passwordreset.New(db, time.Hour)

	h := NewHandler(Config{
		Sessions:   sm,
		Users:      userStore,
		RateLimits: limits,
		Resets:     resets,
		Strategies: []strategy.Strategy{strategy.NewPasswordStrategy(userStore)},
		Allowed:    allowed,
		AppName:    "Glow Studio",
		ResetURL:   "https://example.com/l-787/reset-password",
		LoginURL:   "https://example.com/l-787",
		Logger:     zap.NewNop(),
	})

	return &loginFixture{handler: h, users: userStore, resets: resets, limits: limits}
}

func createAccount(t *testing.T, f *loginFixture, email string) {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	hash, err := authutil.HashPassword(testPassword)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if _, err := f.users.Create(ctx, email, hash); err != nil {
		t.Fatalf("create account: %v", err)
	}
}

func postLogin(t *testing.T, f *loginFixture, email, password string) *testutil.ResponseRecorder {
	t.Helper()
	req := testutil.NewJSONRequest(t, http.MethodPost, "/login", map[string]string{
		"email":    email,
		"password": password,
	})
	rec := testutil.NewRecorder()
	f.handler.LoginHandler(rec, req)
	return rec
}

func TestLoginSuccess(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := newLoginFixture(t, db, []string{"admin@example.com"})
	createAccount(t, f, "admin@example.com")

	rec := postLogin(t, f, "Admin@Example.com", testPassword)
	rec.AssertStatus(t, http.StatusOK)

	var payload struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	rec.DecodeData(t, &payload)
	if payload.Email != "admin@example.com" || payload.Role != "admin" {
		t.Errorf("payload: %+v", payload)
	}
	if payload.ID == "" {
		t.Error("payload should carry the user id")
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Error("login should set a session cookie")
	}
}

func TestLoginNotOnAllowList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := newLoginFixture(t, db, []string{"admin@example.com"})
	createAccount(t, f, "admin@example.com")

	// The account exists but the address is not allow-listed: same message
	// as for a completely unknown address.
	rec := postLogin(t, f, "fremd@example.com", testPassword)
	rec.AssertStatus(t, http.StatusUnauthorized)
	rec.AssertContains(t, "Zugriff verweigert")

	// A rejected address must leave no rate-limit trace.
	ctx, cancel := testutil.TestContext()
	defer cancel()
	record, err := f.limits.GetRecord(ctx, "fremd@example.com")
	if err != nil {
		t.Fatalf("get record: %v", err)
	}
	if record != nil {
		t.Error("allow-list rejection should not touch the rate limiter")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := newLoginFixture(t, db, []string{"admin@example.com"})
	createAccount(t, f, "admin@example.com")

	rec := postLogin(t, f, "admin@example.com", "falsches-passwort")
	rec.AssertStatus(t, http.StatusUnauthorized)
	// The first of three allowed attempts failed; the message says how many
	// are left.
	rec.AssertContains(t, "Falsches Passwort. Noch 2 Versuche übrig.")

	ctx, cancel := testutil.TestContext()
	defer cancel()
	record, err := f.limits.GetRecord(ctx, "admin@example.com")
	if err != nil {
		t.Fatalf("get record: %v", err)
	}
	if record == nil || len(record.Attempts) != 1 {
		t.Errorf("failure should be recorded, got %+v", record)
	}
}

func TestLoginRateLimited(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := newLoginFixture(t, db, []string{"admin@example.com"})
	createAccount(t, f, "admin@example.com")

	// Exhaust the three allowed attempts.
	postLogin(t, f, "admin@example.com", "falsch").AssertContains(t, "Noch 2 Versuche übrig")
	postLogin(t, f, "admin@example.com", "falsch").AssertContains(t, "Noch 1 Versuche übrig")
	rec := postLogin(t, f, "admin@example.com", "falsch")
	rec.AssertStatus(t, http.StatusUnauthorized)
	rec.AssertContains(t, "Konto temporär gesperrt")

	// Even the correct password is rejected now.
	rec = postLogin(t, f, "admin@example.com", testPassword)
	rec.AssertStatus(t, http.StatusTooManyRequests)
	rec.AssertContains(t, "Zu viele Fehlversuche")
}

func TestLoginClearsRateLimitOnSuccess(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := newLoginFixture(t, db, []string{"admin@example.com"})
	createAccount(t, f, "admin@example.com")

	postLogin(t, f, "admin@example.com", "falsch").AssertStatus(t, http.StatusUnauthorized)
	postLogin(t, f, "admin@example.com", testPassword).AssertStatus(t, http.StatusOK)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	record, err := f.limits.GetRecord(ctx, "admin@example.com")
	if err != nil {
		t.Fatalf("get record: %v", err)
	}
	if record != nil {
		t.Error("successful login should clear the failure record")
	}
}

func TestLoginMissingFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := newLoginFixture(t, db, []string{"admin@example.com"})

	rec := postLogin(t, f, "admin@example.com", "")
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "erforderlich")
}

func TestSessionHandler(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := newLoginFixture(t, db, nil)

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/session", testutil.AdminUser())
	rec := testutil.NewRecorder()
	f.handler.SessionHandler(rec, req)
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "admin@test.com")

	anon := testutil.NewRequest(http.MethodGet, "/session")
	rec = testutil.NewRecorder()
	f.handler.SessionHandler(rec, anon)
	rec.AssertStatus(t, http.StatusUnauthorized)
}

func TestValidatePasswordHandler(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := newLoginFixture(t, db, nil)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/password/validate", map[string]string{
		"password": "kurz",
	})
	rec := testutil.NewRecorder()
	f.handler.ValidatePasswordHandler(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	var strength authutil.Strength
	rec.DecodeData(t, &strength)
	if strength.IsValid {
		t.Error("short password should be invalid")
	}
	if len(strength.Feedback) == 0 {
		t.Error("feedback expected")
	}
}

func TestResetRequestIsEnumerationSafe(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := newLoginFixture(t, db, []string{"admin@example.com"})
	createAccount(t, f, "admin@example.com")

	for _, email := range []string{"admin@example.com", "unbekannt@example.com"} {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/password/reset-request", map[string]string{
			"email": email,
		})
		rec := testutil.NewRecorder()
		f.handler.ResetRequestHandler(rec, req)
		rec.AssertStatus(t, http.StatusOK)
		rec.AssertContains(t, "Wenn die E-Mail-Adresse registriert ist")
	}
}

func TestResetConfirm(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := newLoginFixture(t, db, []string{"admin@example.com"})
	createAccount(t, f, "admin@example.com")

	ctx, cancel := testutil.TestContext()
	defer cancel()
	u, err := f.users.GetByEmail(ctx, "admin@example.com")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	reset, err := f.resets.Create(ctx, u.ID, u.Email)
	if err != nil {
		t.Fatalf("create reset: %v", err)
	}

	newPassword := "N3ues!Passwort42"
	req := testutil.NewJSONRequest(t, http.MethodPost, "/password/reset-confirm", map[string]string{
		"token":    reset.Token,
		"password": newPassword,
	})
	rec := testutil.NewRecorder()
	f.handler.ResetConfirmHandler(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	// The old password no longer works, the new one does.
	postLogin(t, f, "admin@example.com", testPassword).AssertStatus(t, http.StatusUnauthorized)
	postLogin(t, f, "admin@example.com", newPassword).AssertStatus(t, http.StatusOK)

	// The token is single use.
	req = testutil.NewJSONRequest(t, http.MethodPost, "/password/reset-confirm", map[string]string{
		"token":    reset.Token,
		"password": "Noch3in!Passwort",
	})
	rec = testutil.NewRecorder()
	f.handler.ResetConfirmHandler(rec, req)
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "ungültig oder abgelaufen")
}

func TestResetConfirmWeakPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := newLoginFixture(t, db, []string{"admin@example.com"})

	req := testutil.NewJSONRequest(t, http.MethodPost, "/password/reset-confirm", map[string]string{
		"token":    "irgendein-token",
		"password": "schwach",
	})
	rec := testutil.NewRecorder()
	f.handler.ResetConfirmHandler(rec, req)
	rec.AssertStatus(t, http.StatusBadRequest)

	var body struct {
		Success  bool            `json:"success"`
		Strength json.RawMessage `json:"strength"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Success {
		t.Error("success should be false")
	}
	if len(body.Strength) == 0 {
		t.Error("response should include the strength report")
	}
}

func TestChangePassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := newLoginFixture(t, db, []string{"admin@example.com"})
	createAccount(t, f, "admin@example.com")

	ctx, cancel := testutil.TestContext()
	defer cancel()
	u, err := f.users.GetByEmail(ctx, "admin@example.com")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	sessionUser := testutil.TestUser{ID: u.ID.Hex(), Email: u.Email, Role: "admin"}

	req := testutil.WithUser(testutil.NewJSONRequest(t, http.MethodPost, "/password/change", map[string]string{
		"currentPassword": testPassword,
		"newPassword":     "N3ues!Passwort42",
	}), sessionUser)
	rec := testutil.NewRecorder()
	f.handler.ChangePasswordHandler(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	postLogin(t, f, "admin@example.com", "N3ues!Passwort42").AssertStatus(t, http.StatusOK)
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := newLoginFixture(t, db, []string{"admin@example.com"})
	createAccount(t, f, "admin@example.com")

	ctx, cancel := testutil.TestContext()
	defer cancel()
	u, err := f.users.GetByEmail(ctx, "admin@example.com")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	sessionUser := testutil.TestUser{ID: u.ID.Hex(), Email: u.Email, Role: "admin"}

	req := testutil.WithUser(testutil.NewJSONRequest(t, http.MethodPost, "/password/change", map[string]string{
		"currentPassword": "falsch",
		"newPassword":     "N3ues!Passwort42",
	}), sessionUser)
	rec := testutil.NewRecorder()
	f.handler.ChangePasswordHandler(rec, req)
	rec.AssertStatus(t, http.StatusUnauthorized)
	rec.AssertContains(t, "Falsches Passwort")
}

func TestChangePasswordDevSession(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := newLoginFixture(t, db, nil)

	dev := testutil.TestUser{Email: "dev@example.com", Role: "admin", Dev: true}
	req := testutil.WithUser(testutil.NewJSONRequest(t, http.MethodPost, "/password/change", map[string]string{
		"currentPassword": "egal",
		"newPassword":     "N3ues!Passwort42",
	}), dev)
	rec := testutil.NewRecorder()
	f.handler.ChangePasswordHandler(rec, req)
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "Dev-Sitzungen")
}
