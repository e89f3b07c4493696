package login

import (
	"net/http"

	"github.com/dalemusser/glowsite/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the auth endpoints. Login, logout, and the password
// reset flow are unauthenticated; session inspection and password change
// require a signed-in user.
//
// When mounted at /api/admin:
//   - POST /api/admin/login
//   - POST /api/admin/logout
//   - POST /api/admin/password/validate
//   - POST /api/admin/password/reset-request
//   - POST /api/admin/password/reset-confirm
//   - GET  /api/admin/session          (signed in)
//   - POST /api/admin/password/change  (signed in)
func Routes(h *Handler, sessionMgr *auth.SessionManager) http.Handler {
	r := chi.NewRouter()

	r.Post("/login", h.LoginHandler)
	r.Post("/logout", h.LogoutHandler)
	r.Post("/password/validate", h.ValidatePasswordHandler)
	r.Post("/password/reset-request", h.ResetRequestHandler)
	r.Post("/password/reset-confirm", h.ResetConfirmHandler)

	r.Group(func(gr chi.Router) {
		gr.Use(sessionMgr.RequireSignedIn)
		gr.Get("/session", h.SessionHandler)
		gr.Post("/password/change", h.ChangePasswordHandler)
	})

	return r
}
