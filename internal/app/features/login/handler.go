// Package login provides the admin authentication endpoints.
//
// Endpoints:
//   - POST /api/admin/login                   - Sign in with email and password
//   - POST /api/admin/logout                  - Destroy the session
//   - GET  /api/admin/session                 - Current session user
//   - POST /api/admin/password/validate       - Password strength check
//   - POST /api/admin/password/reset-request  - Request a reset email
//   - POST /api/admin/password/reset-confirm  - Set a new password via token
//   - POST /api/admin/password/change         - Change own password (signed in)
//
// Login is gated by an email allow list: addresses not on the list are
// rejected before any credential check or database lookup happens, so the
// response does not reveal whether an account exists.
package login

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dalemusser/glowsite/internal/app/store/passwordreset"
	"github.com/dalemusser/glowsite/internal/app/store/ratelimit"
	users "github.com/dalemusser/glowsite/internal/app/store/users"
	"github.com/dalemusser/glowsite/internal/app/system/auth"
	"github.com/dalemusser/glowsite/internal/app/system/auth/strategy"
	"github.com/dalemusser/glowsite/internal/app/system/authutil"
	"github.com/dalemusser/glowsite/internal/app/system/jsonutil"
	"github.com/dalemusser/glowsite/internal/app/system/mailer"
	"github.com/dalemusser/glowsite/internal/app/system/network"
	"github.com/dalemusser/glowsite/internal/app/system/normalize"
	"github.com/dalemusser/glowsite/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const (
	msgAccessDenied  = "Zugriff verweigert"
	msgWrongPassword = "Falsches Passwort"
	msgInternalError = "Ein Fehler ist aufgetreten"
	msgRateLimited   = "Zu viele Fehlversuche. Bitte versuchen Sie es in %d Minuten erneut."
	msgLockedOut     = "Konto temporär gesperrt. Bitte warten Sie 15 Minuten."
	msgResetSent     = "Wenn die E-Mail-Adresse registriert ist, wurde ein Link zum Zurücksetzen gesendet."
	msgTokenInvalid  = "Der Link ist ungültig oder abgelaufen. Bitte fordern Sie einen neuen an."
)

// Handler handles admin authentication requests.
type Handler struct {
	sessions   *auth.SessionManager
	users      *users.Store
	rateLimits *ratelimit.Store
	resets     *passwordreset.Store
	strategies []strategy.Strategy
	mail       *mailer.Mailer
	allowed    map[string]bool
	appName    string
	resetURL   string // base URL of the reset form; token is appended as ?token=
	loginURL   string
	logger     *zap.Logger
}

// Config bundles the dependencies for the login handler.
type Config struct {
	Sessions   *auth.SessionManager
	Users      *users.Store
	RateLimits *ratelimit.Store
	Resets     *passwordreset.Store
	Strategies []strategy.Strategy
	Mail       *mailer.Mailer // nil disables reset emails
	Allowed    []string
	AppName    string
	ResetURL   string
	LoginURL   string
	Logger     *zap.Logger
}

// NewHandler creates a login handler. The allow list is normalized to
// lowercase so comparisons are case insensitive.
func NewHandler(cfg Config) *Handler {
	allowed := make(map[string]bool, len(cfg.Allowed))
	for _, e := range cfg.Allowed {
		if n := normalize.Email(e); n != "" {
			allowed[n] = true
		}
	}
	return &Handler{
		sessions:   cfg.Sessions,
		users:      cfg.Users,
		rateLimits: cfg.RateLimits,
		resets:     cfg.Resets,
		strategies: cfg.Strategies,
		mail:       cfg.Mail,
		allowed:    allowed,
		appName:    cfg.AppName,
		resetURL:   cfg.ResetURL,
		loginURL:   cfg.LoginURL,
		logger:     cfg.Logger,
	}
}

type userPayload struct {
	ID    string `json:"id,omitempty"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Dev   bool   `json:"dev,omitempty"`
}

// LoginHandler handles POST /api/admin/login.
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "Ungültige Anfrage")
		return
	}

	email := normalize.Email(in.Email)
	if email == "" || in.Password == "" {
		jsonutil.BadRequest(w, "E-Mail und Passwort sind erforderlich")
		return
	}

	// Allow-list gate. Unknown addresses are rejected without touching
	// the credential strategies or the rate limiter.
	if !h.allowed[email] {
		h.logger.Warn("login rejected, email not on allow list",
			zap.String("email", email),
			zap.String("ip", network.ClientIP(r)),
		)
		jsonutil.Unauthorized(w, msgAccessDenied)
		return
	}

	if h.rateLimits != nil {
		allowed, remaining := h.rateLimits.CheckAllowed(r.Context(), email)
		if !allowed {
			h.logger.Warn("login rate limited",
				zap.String("email", email),
				zap.Int("remaining_minutes", remaining),
			)
			jsonutil.Error(w, http.StatusTooManyRequests, fmt.Sprintf(msgRateLimited, remaining))
			return
		}
	}

	res, err := h.authenticate(r, email, in.Password)
	if err != nil {
		if errors.Is(err, strategy.ErrBadCredentials) {
			if h.rateLimits != nil {
				if rlErr := h.rateLimits.RecordFailure(r.Context(), email); rlErr != nil {
					h.logger.Error("failed to record login failure", zap.Error(rlErr))
				}
			}
			h.logger.Info("login failed",
				zap.String("email", email),
				zap.String("ip", network.ClientIP(r)),
			)
			msg := msgWrongPassword
			if h.rateLimits != nil {
				if left := h.rateLimits.Remaining(r.Context(), email); left > 0 {
					msg = fmt.Sprintf("%s. Noch %d Versuche übrig.", msgWrongPassword, left)
				} else {
					msg = msgLockedOut
				}
			}
			jsonutil.Unauthorized(w, msg)
			return
		}
		h.logger.Error("login error", zap.String("email", email), zap.Error(err))
		jsonutil.InternalError(w, msgInternalError)
		return
	}

	if h.rateLimits != nil {
		if err := h.rateLimits.ClearOnSuccess(r.Context(), email); err != nil {
			h.logger.Warn("failed to clear rate limit record", zap.Error(err))
		}
	}

	if res.Dev {
		if err := h.sessions.CreateDevSession(w, r, res.Email, models.RoleAdmin); err != nil {
			h.logger.Error("failed to create dev session", zap.Error(err))
			jsonutil.InternalError(w, msgInternalError)
			return
		}
		h.logger.Info("dev login", zap.String("email", res.Email))
		jsonutil.Success(w, userPayload{Email: res.Email, Role: models.RoleAdmin, Dev: true})
		return
	}

	token, err := auth.GenerateSessionToken()
	if err != nil {
		h.logger.Error("failed to generate session token", zap.Error(err))
		jsonutil.InternalError(w, msgInternalError)
		return
	}
	if err := h.sessions.CreateSession(w, r, res.UserID, res.Email, models.RoleAdmin, token); err != nil {
		h.logger.Error("failed to create session", zap.Error(err))
		jsonutil.InternalError(w, msgInternalError)
		return
	}
	if err := h.users.RecordLogin(r.Context(), res.UserID); err != nil {
		h.logger.Warn("failed to record login time", zap.Error(err))
	}

	h.logger.Info("login", zap.String("email", res.Email))
	jsonutil.Success(w, userPayload{
		ID:    res.UserID.Hex(),
		Email: res.Email,
		Role:  models.RoleAdmin,
	})
}

// authenticate tries each credential strategy in order. A strategy that
// does not know the email answers ErrBadCredentials and the next one gets
// a turn; any other error aborts.
func (h *Handler) authenticate(r *http.Request, email, password string) (*strategy.Result, error) {
	var lastErr error = strategy.ErrBadCredentials
	for _, s := range h.strategies {
		res, err := s.Authenticate(r.Context(), email, password)
		if err == nil {
			return res, nil
		}
		if !errors.Is(err, strategy.ErrBadCredentials) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

// LogoutHandler handles POST /api/admin/logout.
func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	h.sessions.DestroySession(w, r)
	jsonutil.Message(w, "Abgemeldet")
}

// SessionHandler handles GET /api/admin/session.
func (h *Handler) SessionHandler(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		jsonutil.Unauthorized(w, "Nicht angemeldet")
		return
	}
	jsonutil.Success(w, userPayload{ID: u.ID, Email: u.Email, Role: u.Role, Dev: u.Dev})
}

// ValidatePasswordHandler handles POST /api/admin/password/validate.
// The admin UI calls this while the user types to render a strength meter.
func (h *Handler) ValidatePasswordHandler(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Password string `json:"password"`
	}
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "Ungültige Anfrage")
		return
	}
	jsonutil.Success(w, authutil.ValidatePassword(in.Password))
}

// ResetRequestHandler handles POST /api/admin/password/reset-request.
// The response is identical whether or not the account exists.
func (h *Handler) ResetRequestHandler(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email string `json:"email"`
	}
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "Ungültige Anfrage")
		return
	}
	email := normalize.Email(in.Email)
	if email == "" {
		jsonutil.BadRequest(w, "E-Mail ist erforderlich")
		return
	}

	if !h.allowed[email] || h.mail == nil {
		jsonutil.Message(w, msgResetSent)
		return
	}

	u, err := h.users.GetByEmail(r.Context(), email)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			h.logger.Error("reset request lookup failed", zap.Error(err))
		}
		jsonutil.Message(w, msgResetSent)
		return
	}

	reset, err := h.resets.Create(r.Context(), u.ID, u.Email)
	if err != nil {
		h.logger.Error("failed to create reset token", zap.Error(err))
		jsonutil.Message(w, msgResetSent)
		return
	}

	text, html := mailer.PasswordResetEmail(mailer.PasswordResetEmailData{
		AppName:   h.appName,
		ResetURL:  h.resetURL + "?token=" + reset.Token,
		ExpiryMin: 60,
	})
	if err := h.mail.Send(mailer.Email{
		To:       u.Email,
		Subject:  h.appName + ": Passwort zurücksetzen",
		TextBody: text,
		HTMLBody: html,
	}); err != nil {
		h.logger.Error("failed to send reset email", zap.Error(err))
	} else {
		h.logger.Info("reset email sent", zap.String("email", u.Email))
	}

	jsonutil.Message(w, msgResetSent)
}

// ResetConfirmHandler handles POST /api/admin/password/reset-confirm.
func (h *Handler) ResetConfirmHandler(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "Ungültige Anfrage")
		return
	}
	if in.Token == "" {
		jsonutil.BadRequest(w, msgTokenInvalid)
		return
	}

	strength := authutil.ValidatePassword(in.Password)
	if !strength.IsValid {
		jsonutil.JSON(w, http.StatusBadRequest, map[string]any{
			"success":  false,
			"error":    "Das Passwort erfüllt die Anforderungen nicht",
			"strength": strength,
		})
		return
	}

	reset, err := h.resets.VerifyToken(r.Context(), in.Token)
	if err != nil {
		jsonutil.BadRequest(w, msgTokenInvalid)
		return
	}

	hash, err := authutil.HashPassword(in.Password)
	if err != nil {
		h.logger.Error("failed to hash password", zap.Error(err))
		jsonutil.InternalError(w, msgInternalError)
		return
	}
	if err := h.users.UpdatePassword(r.Context(), reset.UserID, hash); err != nil {
		h.logger.Error("failed to update password", zap.Error(err))
		jsonutil.InternalError(w, msgInternalError)
		return
	}
	if err := h.resets.MarkUsed(r.Context(), reset.ID); err != nil {
		h.logger.Warn("failed to mark reset token used", zap.Error(err))
	}
	if h.rateLimits != nil {
		if err := h.rateLimits.ClearOnSuccess(r.Context(), reset.Email); err != nil {
			h.logger.Warn("failed to clear rate limit record", zap.Error(err))
		}
	}

	h.notifyPasswordChanged(reset.Email)
	h.logger.Info("password reset completed", zap.String("email", reset.Email))
	jsonutil.Message(w, "Das Passwort wurde geändert. Sie können sich jetzt anmelden.")
}

// ChangePasswordHandler handles POST /api/admin/password/change for a
// signed-in admin. Dev sessions have no stored credentials to change.
func (h *Handler) ChangePasswordHandler(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		jsonutil.Unauthorized(w, "Nicht angemeldet")
		return
	}
	if u.Dev {
		jsonutil.BadRequest(w, "Dev-Sitzungen haben kein Passwort")
		return
	}

	var in struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "Ungültige Anfrage")
		return
	}

	account, err := h.users.GetByID(r.Context(), u.UserID())
	if err != nil {
		h.logger.Error("failed to load account", zap.Error(err))
		jsonutil.InternalError(w, msgInternalError)
		return
	}
	if !authutil.CheckPassword(in.CurrentPassword, account.PasswordHash) {
		jsonutil.Unauthorized(w, msgWrongPassword)
		return
	}

	strength := authutil.ValidatePassword(in.NewPassword)
	if !strength.IsValid {
		jsonutil.JSON(w, http.StatusBadRequest, map[string]any{
			"success":  false,
			"error":    "Das Passwort erfüllt die Anforderungen nicht",
			"strength": strength,
		})
		return
	}

	hash, err := authutil.HashPassword(in.NewPassword)
	if err != nil {
		h.logger.Error("failed to hash password", zap.Error(err))
		jsonutil.InternalError(w, msgInternalError)
		return
	}
	if err := h.users.UpdatePassword(r.Context(), account.ID, hash); err != nil {
		h.logger.Error("failed to update password", zap.Error(err))
		jsonutil.InternalError(w, msgInternalError)
		return
	}

	h.notifyPasswordChanged(account.Email)
	h.logger.Info("password changed", zap.String("email", account.Email))
	jsonutil.Message(w, "Das Passwort wurde geändert.")
}

func (h *Handler) notifyPasswordChanged(email string) {
	if h.mail == nil {
		return
	}
	text, html := mailer.PasswordChangedEmail(mailer.PasswordChangedEmailData{
		AppName:  h.appName,
		LoginURL: h.loginURL,
	})
	if err := h.mail.Send(mailer.Email{
		To:       email,
		Subject:  h.appName + ": Passwort geändert",
		TextBody: text,
		HTMLBody: html,
	}); err != nil {
		h.logger.Warn("failed to send password changed email", zap.Error(err))
	}
}
