// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"strings"
	"time"

	contentfeature "github.com/dalemusser/glowsite/internal/app/features/content"
	galleryfeature "github.com/dalemusser/glowsite/internal/app/features/gallery"
	healthfeature "github.com/dalemusser/glowsite/internal/app/features/health"
	loginfeature "github.com/dalemusser/glowsite/internal/app/features/login"
	pricesfeature "github.com/dalemusser/glowsite/internal/app/features/prices"
	promotionsfeature "github.com/dalemusser/glowsite/internal/app/features/promotions"
	servicesfeature "github.com/dalemusser/glowsite/internal/app/features/services"
	settingsfeature "github.com/dalemusser/glowsite/internal/app/features/settings"
	storagefeature "github.com/dalemusser/glowsite/internal/app/features/storage"
	testimonialsfeature "github.com/dalemusser/glowsite/internal/app/features/testimonials"
	appresources "github.com/dalemusser/glowsite/internal/app/resources"
	galleryStore "github.com/dalemusser/glowsite/internal/app/store/gallery"
	imageStore "github.com/dalemusser/glowsite/internal/app/store/images"
	"github.com/dalemusser/glowsite/internal/app/store/passwordreset"
	priceStore "github.com/dalemusser/glowsite/internal/app/store/prices"
	promotionStore "github.com/dalemusser/glowsite/internal/app/store/promotions"
	"github.com/dalemusser/glowsite/internal/app/store/ratelimit"
	serviceStore "github.com/dalemusser/glowsite/internal/app/store/services"
	settingsStore "github.com/dalemusser/glowsite/internal/app/store/settings"
	testimonialStore "github.com/dalemusser/glowsite/internal/app/store/testimonials"
	userstore "github.com/dalemusser/glowsite/internal/app/store/users"
	"github.com/dalemusser/glowsite/internal/app/system/auth"
	"github.com/dalemusser/glowsite/internal/app/system/auth/strategy"
	"github.com/dalemusser/glowsite/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/middleware"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed.
//
// Route layout:
//   - /api/content/*          - public content snapshot (JSON)
//   - /api/admin/*            - admin API, session auth (JSON)
//   - /health, /ready, /livez - probes
//   - /assets/*               - embedded static assets
//   - /files/*                - uploaded images (local storage only)
//   - <admin_path>            - the admin SPA bundle served from disk
//
// All /api routes are JSON with session-cookie authentication for the
// admin surface. CSRF tokens are skipped for /api: the session cookie is
// SameSite=Lax and every mutating endpoint requires a JSON body, which
// cross-site forms cannot produce.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	// Create the session manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Set up the UserFetcher so LoadSessionUser fetches fresh user data on
	// each request. This ensures deleted accounts lose access immediately.
	users := userstore.New(db)
	sessionMgr.SetUserFetcher(userstore.NewFetcher(db, logger))

	// Collection stores shared by the admin features.
	svcStore := serviceStore.New(db)
	prStore := priceStore.New(db)
	galStore := galleryStore.New(db)
	tstStore := testimonialStore.New(db)
	promStore := promotionStore.New(db)
	setStore := settingsStore.New(db)
	imgStore := imageStore.New(db)
	resetStore := passwordreset.New(db, appCfg.ResetTokenExpiry)

	// Rate limiting for login attempts (nil if disabled).
	var rateLimitStore *ratelimit.Store
	if appCfg.RateLimitEnabled {
		rateLimitStore = ratelimit.New(db, appCfg.RateLimitAttempts, appCfg.RateLimitWindow, logger)
	}

	// Credential strategies. The password strategy is always active; dev
	// credentials are an additional strategy outside production.
	strategies := []strategy.Strategy{strategy.NewPasswordStrategy(users)}
	allowedEmails := appCfg.AdminEmails
	if appCfg.DevCredentials != "" && coreCfg.Env != "prod" {
		devStrategy, err := strategy.ParseDevCredentials(appCfg.DevCredentials)
		if err != nil {
			logger.Error("invalid dev credentials", zap.Error(err))
			return nil, err
		}
		strategies = append(strategies, devStrategy)
		allowedEmails = append(allowedEmails, devStrategy.Emails()...)
		logger.Warn("dev credential login enabled", zap.Int("accounts", len(devStrategy.Emails())))
	}

	loginHandler := loginfeature.NewHandler(loginfeature.Config{
		Sessions:   sessionMgr,
		Users:      users,
		RateLimits: rateLimitStore,
		Resets:     resetStore,
		Strategies: strategies,
		Mail:       deps.Mailer,
		Allowed:    allowedEmails,
		AppName:    appCfg.MailFromName,
		ResetURL:   appCfg.BaseURL + appCfg.AdminPath + "/reset-password",
		LoginURL:   appCfg.BaseURL + appCfg.AdminPath,
		Logger:     logger,
	})

	contentHandler := contentfeature.NewHandler(deps.Content, setStore, logger)
	servicesHandler := servicesfeature.NewHandler(svcStore, prStore, deps.Content, logger)
	pricesHandler := pricesfeature.NewHandler(prStore, svcStore, deps.Content, logger)
	galleryHandler := galleryfeature.NewHandler(galStore, deps.Content, logger)
	testimonialsHandler := testimonialsfeature.NewHandler(tstStore, deps.Content, logger)
	promotionsHandler := promotionsfeature.NewHandler(promStore, deps.Content, logger)
	settingsHandler := settingsfeature.NewHandler(setStore, deps.Content, logger)
	storageHandler := storagefeature.NewHandler(imgStore, deps.FileStorage, logger)
	healthHandler := healthfeature.NewHandler(deps.MongoClient, deps.Content, logger)

	r := chi.NewRouter()

	// Global middleware.
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.CORSFromConfig(coreCfg))
	r.Use(middleware.SecurityHeadersFromConfig(coreCfg))
	r.Use(sessionMgr.LoadSessionUser)

	// CSRF protection for everything outside /api (the SPA bundle and any
	// future server-rendered pages). The cookie name is scoped to avoid
	// collisions with other services on the same domain.
	csrfOpts := []csrf.Option{
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.CookieName("glowsite_csrf"),
		csrf.FieldName("csrf_token"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			logger.Warn("CSRF validation failed",
				zap.String("path", req.URL.Path),
				zap.String("method", req.Method),
				zap.String("reason", csrf.FailureReason(req).Error()),
			)
			http.Error(w, "CSRF token invalid or missing", http.StatusForbidden)
		})),
	}
	if !secure {
		csrfOpts = append(csrfOpts, csrf.TrustedOrigins([]string{
			"localhost:8080",
			"localhost:3000",
			"127.0.0.1:8080",
			"127.0.0.1:3000",
		}))
	}
	if appCfg.SessionDomain != "" {
		csrfOpts = append(csrfOpts, csrf.Domain(appCfg.SessionDomain))
	}
	csrfProtect := csrf.Protect([]byte(appCfg.CSRFKey), csrfOpts...)

	csrfMiddleware := func(next http.Handler) http.Handler {
		csrfHandler := csrfProtect(next)
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if strings.HasPrefix(req.URL.Path, "/api/") {
				next.ServeHTTP(w, req)
				return
			}
			csrfHandler.ServeHTTP(w, req)
		})
	}
	r.Use(csrfMiddleware)

	// Public content API consumed by the website.
	r.Mount("/api/content", contentfeature.Routes(contentHandler))

	// Admin API: login endpoints are public, everything else requires an
	// authenticated admin session.
	r.Route("/api/admin", func(ar chi.Router) {
		ar.Mount("/", loginfeature.Routes(loginHandler, sessionMgr))

		ar.Group(func(pr chi.Router) {
			pr.Use(sessionMgr.RequireRole(models.RoleAdmin))
			pr.Mount("/content", contentfeature.AdminRoutes(contentHandler))
			pr.Mount("/services", servicesfeature.Routes(servicesHandler))
			pr.Mount("/prices", pricesfeature.Routes(pricesHandler))
			pr.Mount("/gallery", galleryfeature.Routes(galleryHandler))
			pr.Mount("/testimonials", testimonialsfeature.Routes(testimonialsHandler))
			pr.Mount("/promotions", promotionsfeature.Routes(promotionsHandler))
			pr.Mount("/settings", settingsfeature.Routes(settingsHandler))
			pr.Mount("/storage", storagefeature.Routes(storageHandler))
		})
	})

	// Health check endpoints for load balancers and orchestrators.
	r.Mount("/health", healthfeature.Routes(healthHandler))
	healthfeature.MountRootEndpoints(r, healthHandler)

	// Embedded static assets (robots.txt, favicon).
	assetsHandler := appresources.AssetsHandler("/assets")
	r.Handle("/assets/*", assetsHandler)
	r.Get("/robots.txt", func(w http.ResponseWriter, req *http.Request) {
		req.URL.Path = "/assets/robots.txt"
		assetsHandler.ServeHTTP(w, req)
	})
	r.Get("/favicon.svg", func(w http.ResponseWriter, req *http.Request) {
		req.URL.Path = "/assets/favicon.svg"
		assetsHandler.ServeHTTP(w, req)
	})

	// Uploaded images (local storage only). S3 deployments serve them via
	// CloudFront instead.
	if appCfg.StorageType == "local" || appCfg.StorageType == "" {
		r.Handle(appCfg.StorageLocalURL+"/*", fileserver.Handler(appCfg.StorageLocalURL, appCfg.StorageLocalPath))
	}

	// Admin SPA bundle, served from the obscured admin path. The bundle is
	// built separately and deployed next to the binary in ./admin.
	r.Handle(appCfg.AdminPath+"/*", spaHandler(appCfg.AdminPath, "admin"))
	r.Get(appCfg.AdminPath, func(w http.ResponseWriter, req *http.Request) {
		http.ServeFile(w, req, "admin/index.html")
	})

	return r, nil
}

// spaHandler serves the admin single-page app: real files are served from
// dir, anything else falls back to index.html so client-side routes work
// on hard reloads.
func spaHandler(prefix, dir string) http.Handler {
	fileHandler := fileserver.Handler(prefix, dir)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, prefix)
		if strings.Contains(path, ".") {
			fileHandler.ServeHTTP(w, r)
			return
		}
		http.ServeFile(w, r, dir+"/index.html")
	})
}
