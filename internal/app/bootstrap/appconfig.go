// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds the portal's own settings. WAFFLE's CoreConfig covers
// ports, TLS, logging, CORS and body limits; everything specific to the
// alumni portal lives here and is handed to every lifecycle hook.
type AppConfig struct {
	// MongoDB
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Sessions. The signed token travels in the cookie named SessionName
	// or in an Authorization: Bearer header.
	SessionKey    string
	SessionName   string // default "token"
	SessionDomain string // blank means current host
	SessionMaxAge time.Duration

	// Email/SMTP. An empty host makes the mailer log instead of send.
	MailSMTPHost string
	MailSMTPPort int
	MailSMTPUser string
	MailSMTPPass string
	MailFrom     string
	MailFromName string

	// BaseURL prefixes links in outgoing email, e.g. the reset page.
	BaseURL  string
	SiteName string

	// SuperAdminEmail names an account promoted to super_admin at start-up.
	SuperAdminEmail string

	// Audit logging: "all", "db", "log" or "off".
	AuditLogAuth  string
	AuditLogAdmin string

	// Throttling. LoginRateLimit is attempts per minute per IP+email;
	// FormRateLimit is requests per minute per IP for public forms.
	LoginRateLimit int
	FormRateLimit  int

	MetricsEnabled bool

	// Background maintenance. Zero, the default, disables a job; the
	// recalculate endpoint and alumnictl cover the same repairs on demand.
	ReconcileInterval    time.Duration
	TokenCleanupInterval time.Duration

	// Store deadlines; zero keeps the built-in default.
	TimeoutShort  time.Duration
	TimeoutMedium time.Duration
	TimeoutLong   time.Duration
}
