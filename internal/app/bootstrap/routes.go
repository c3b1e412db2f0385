// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	accountfeature "github.com/dalemusser/alumnihub/internal/app/features/account"
	adminusersfeature "github.com/dalemusser/alumnihub/internal/app/features/adminusers"
	alumnifeature "github.com/dalemusser/alumnihub/internal/app/features/alumni"
	auditlogfeature "github.com/dalemusser/alumnihub/internal/app/features/auditlog"
	campaignsfeature "github.com/dalemusser/alumnihub/internal/app/features/campaigns"
	donationsfeature "github.com/dalemusser/alumnihub/internal/app/features/donations"
	errorsfeature "github.com/dalemusser/alumnihub/internal/app/features/errors"
	eventsfeature "github.com/dalemusser/alumnihub/internal/app/features/events"
	galleryfeature "github.com/dalemusser/alumnihub/internal/app/features/gallery"
	healthfeature "github.com/dalemusser/alumnihub/internal/app/features/health"
	memoriesfeature "github.com/dalemusser/alumnihub/internal/app/features/memories"
	postsfeature "github.com/dalemusser/alumnihub/internal/app/features/posts"
	slideshowfeature "github.com/dalemusser/alumnihub/internal/app/features/slideshow"
	statsfeature "github.com/dalemusser/alumnihub/internal/app/features/stats"
	"github.com/dalemusser/alumnihub/internal/app/store/audit"
	userstore "github.com/dalemusser/alumnihub/internal/app/store/users"
	"github.com/dalemusser/alumnihub/internal/app/system/auditlog"
	"github.com/dalemusser/alumnihub/internal/app/system/auth"
	"github.com/dalemusser/alumnihub/internal/app/system/httpmetrics"
	"github.com/dalemusser/alumnihub/internal/app/system/mailer"
	"github.com/dalemusser/alumnihub/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root router. WAFFLE calls it once config,
// the database and Startup are ready.
//
// Everything is JSON under /api, plus /health and (optionally) /metrics.
// The session user is loaded once per request so feature routers only
// check roles.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	// Secure cookies in production only.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}
	// Role and status changes take effect on the next request.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(db))

	errLog := errorsfeature.NewErrorLogger(logger)
	audits := auditlog.New(audit.New(db), logger, auditlog.Config{
		Auth:  appCfg.AuditLogAuth,
		Admin: appCfg.AuditLogAdmin,
	})
	mail := mailer.New(mailer.Config{
		Host:     appCfg.MailSMTPHost,
		Port:     appCfg.MailSMTPPort,
		User:     appCfg.MailSMTPUser,
		Pass:     appCfg.MailSMTPPass,
		From:     appCfg.MailFrom,
		FromName: appCfg.MailFromName,
	}, logger)

	loginLimiter := ratelimit.NewLoginLimiter(appCfg.LoginRateLimit)
	formLimiter := ratelimit.New(appCfg.FormRateLimit, time.Minute)
	onShutdown(loginLimiter.Stop)
	onShutdown(formLimiter.Stop)

	r := chi.NewRouter()
	r.Use(errLog.Recoverer)

	metrics := httpmetrics.New()
	r.Use(metrics.Middleware)
	r.Use(sessionMgr.LoadSessionUser)

	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	if appCfg.MetricsEnabled {
		r.Handle("/metrics", metrics.Handler())
	}

	// Identity and directory
	accountHandler := accountfeature.NewHandler(db, sessionMgr, errLog, audits, mail, loginLimiter, appCfg.BaseURL, appCfg.SiteName, logger)
	r.Mount("/api/auth", accountfeature.Routes(accountHandler, sessionMgr, formLimiter.Middleware))

	alumniHandler := alumnifeature.NewHandler(db, errLog, logger)
	r.Mount("/api/alumni", alumnifeature.Routes(alumniHandler))

	adminUsersHandler := adminusersfeature.NewHandler(db, errLog, audits, mail, appCfg.BaseURL, appCfg.SiteName, logger)
	r.Mount("/api/admin/users", adminusersfeature.Routes(adminUsersHandler, sessionMgr))

	// Events
	eventsHandler := eventsfeature.NewHandler(db, errLog, logger)
	r.Mount("/api/events", eventsfeature.Routes(eventsHandler, sessionMgr))
	r.Mount("/api/admin/events", eventsfeature.AdminRoutes(eventsHandler, sessionMgr))

	// Donations and campaigns
	donationsHandler := donationsfeature.NewHandler(db, errLog, audits, logger)
	r.Mount("/api/donations", donationsfeature.Routes(donationsHandler, sessionMgr, formLimiter.Middleware))
	r.Mount("/api/admin/donations", donationsfeature.AdminRoutes(donationsHandler, sessionMgr))

	campaignsHandler := campaignsfeature.NewHandler(db, errLog, audits, logger)
	r.Mount("/api/donation-campaigns", campaignsfeature.Routes(campaignsHandler))
	r.Mount("/api/admin/donation-campaigns", campaignsfeature.AdminRoutes(campaignsHandler, sessionMgr))

	// Community content
	memoriesHandler := memoriesfeature.NewHandler(db, errLog, logger)
	r.Mount("/api/memories", memoriesfeature.Routes(memoriesHandler, sessionMgr))

	galleryHandler := galleryfeature.NewHandler(db, errLog, logger)
	r.Mount("/api/gallery", galleryfeature.Routes(galleryHandler))
	r.Mount("/api/admin/gallery", galleryfeature.AdminRoutes(galleryHandler, sessionMgr))

	slideshowHandler := slideshowfeature.NewHandler(db, errLog, logger)
	r.Mount("/api/slideshow", slideshowfeature.Routes(slideshowHandler))
	r.Mount("/api/admin/slideshow", slideshowfeature.AdminRoutes(slideshowHandler, sessionMgr))

	postsHandler := postsfeature.NewHandler(db, errLog, logger)
	r.Mount("/api/posts", postsfeature.Routes(postsHandler))
	r.Mount("/api/admin/posts", postsfeature.AdminRoutes(postsHandler, sessionMgr))

	// Back-office reporting
	statsHandler := statsfeature.NewHandler(db, logger)
	r.Mount("/api/admin/stats", statsfeature.Routes(statsHandler, sessionMgr))

	auditHandler := auditlogfeature.NewHandler(db, errLog, logger)
	r.Mount("/api/admin/audit", auditlogfeature.Routes(auditHandler, sessionMgr))

	errorsHandler := errorsfeature.NewHandler()
	r.NotFound(errorsHandler.NotFound)
	r.MethodNotAllowed(errorsHandler.MethodNotAllowed)

	return r, nil
}
