// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

const devSessionKey = "dev-only-change-me-please-0123456789ABCDEF"

// appConfigKeys are read from config files (mongo_uri), environment
// variables (ALUMNIHUB_MONGO_URI) and flags (--mongo_uri).
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "alumnihub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 5, Desc: "MongoDB min connection pool size"},

	{Name: "session_key", Default: devSessionKey, Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "token", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "168h", Desc: "Session lifetime"},

	{Name: "mail_smtp_host", Default: "", Desc: "SMTP server host (blank logs mail instead of sending)"},
	{Name: "mail_smtp_port", Default: 587, Desc: "SMTP server port"},
	{Name: "mail_smtp_user", Default: "", Desc: "SMTP username"},
	{Name: "mail_smtp_pass", Default: "", Desc: "SMTP password"},
	{Name: "mail_from", Default: "noreply@alumnihub.local", Desc: "From email address"},
	{Name: "mail_from_name", Default: "Alumni Association", Desc: "From display name"},

	{Name: "base_url", Default: "http://localhost:3000", Desc: "Public site URL used in email links"},
	{Name: "site_name", Default: "Alumni Association", Desc: "Site name used in email copy"},

	{Name: "superadmin_email", Default: "", Desc: "Email of an account promoted to super_admin on startup"},

	{Name: "audit_log_auth", Default: "all", Desc: "Auth event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_log_admin", Default: "all", Desc: "Admin event logging: 'all' (db+log), 'db', 'log', or 'off'"},

	{Name: "login_rate_limit", Default: 10, Desc: "Login attempts per minute per IP and email"},
	{Name: "form_rate_limit", Default: 20, Desc: "Public form submissions per minute per IP"},

	{Name: "metrics_enabled", Default: true, Desc: "Expose Prometheus metrics at /metrics"},
	{Name: "reconcile_interval", Default: "0s", Desc: "How often campaign totals are recomputed in the background (0 disables)"},
	{Name: "token_cleanup_interval", Default: "0s", Desc: "How often expired password reset tokens are cleared (0 disables)"},

	{Name: "timeout_short", Default: "5s", Desc: "Deadline for single-document store calls"},
	{Name: "timeout_medium", Default: "10s", Desc: "Deadline for list and multi-step store calls"},
	{Name: "timeout_long", Default: "30s", Desc: "Deadline for reports and recomputation"},
}

// LoadConfig loads WAFFLE core config and the portal's AppConfig.
// Precedence is flags > env (ALUMNIHUB_*) > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "ALUMNIHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionMaxAge: appValues.Duration("session_max_age", 7*24*time.Hour),

		MailSMTPHost: appValues.String("mail_smtp_host"),
		MailSMTPPort: appValues.Int("mail_smtp_port"),
		MailSMTPUser: appValues.String("mail_smtp_user"),
		MailSMTPPass: appValues.String("mail_smtp_pass"),
		MailFrom:     appValues.String("mail_from"),
		MailFromName: appValues.String("mail_from_name"),

		BaseURL:  appValues.String("base_url"),
		SiteName: appValues.String("site_name"),

		SuperAdminEmail: appValues.String("superadmin_email"),

		AuditLogAuth:  appValues.String("audit_log_auth"),
		AuditLogAdmin: appValues.String("audit_log_admin"),

		LoginRateLimit: appValues.Int("login_rate_limit"),
		FormRateLimit:  appValues.Int("form_rate_limit"),

		MetricsEnabled: appValues.Bool("metrics_enabled"),

		ReconcileInterval:    appValues.Duration("reconcile_interval", 0),
		TokenCleanupInterval: appValues.Duration("token_cleanup_interval", 0),

		TimeoutShort:  appValues.Duration("timeout_short", 5*time.Second),
		TimeoutMedium: appValues.Duration("timeout_medium", 10*time.Second),
		TimeoutLong:   appValues.Duration("timeout_long", 30*time.Second),
	}

	return coreCfg, appCfg, nil
}

var auditSettings = map[string]bool{"all": true, "db": true, "log": true, "off": true}

// ValidateConfig rejects settings that would fail later or run insecurely.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if appCfg.MongoDatabase == "" {
		return errors.New("mongo_database is required")
	}
	if len(appCfg.SessionKey) < 32 {
		return errors.New("session_key must be at least 32 characters")
	}
	if coreCfg.Env == "prod" && appCfg.SessionKey == devSessionKey {
		return errors.New("session_key must be changed from the development default in prod")
	}
	if appCfg.SessionMaxAge <= 0 {
		return errors.New("session_max_age must be positive")
	}
	if !auditSettings[appCfg.AuditLogAuth] || !auditSettings[appCfg.AuditLogAdmin] {
		return fmt.Errorf("audit_log_auth and audit_log_admin must be one of all, db, log, off (got %q, %q)",
			appCfg.AuditLogAuth, appCfg.AuditLogAdmin)
	}
	if appCfg.LoginRateLimit <= 0 || appCfg.FormRateLimit <= 0 {
		return errors.New("login_rate_limit and form_rate_limit must be positive")
	}
	if appCfg.ReconcileInterval < 0 || appCfg.TokenCleanupInterval < 0 {
		return errors.New("reconcile_interval and token_cleanup_interval must not be negative")
	}
	return nil
}
