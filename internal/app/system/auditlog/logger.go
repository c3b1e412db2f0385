// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dalemusser/alumnihub/internal/app/store/audit"
	"github.com/dalemusser/alumnihub/internal/app/system/ratelimit"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Config holds audit logging configuration.
type Config struct {
	// Auth controls logging for authentication events (login, logout, registration, password reset).
	// Values: "all" (MongoDB + zap), "db" (MongoDB only), "log" (zap only), "off" (disabled)
	Auth string
	// Admin controls logging for admin actions (user creation, role/status changes, deletions).
	// Values: "all" (MongoDB + zap), "db" (MongoDB only), "log" (zap only), "off" (disabled)
	Admin string
}

// Logger records audit events to MongoDB (via audit.Store) and zap.
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{
		store:  store,
		zapLog: zapLog,
		config: config,
	}
}

func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}

	if event.UserID != nil {
		fields = append(fields, zap.String("user_id", event.UserID.Hex()))
	}
	if event.ActorID != nil {
		fields = append(fields, zap.String("actor_id", event.ActorID.Hex()))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records an audit event based on configuration.
// A nil *Logger is a no-op so handlers can run without auditing in tests.
// Store failures are logged and swallowed.
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	var setting string
	switch event.Category {
	case audit.CategoryAuth:
		setting = l.config.Auth
	case audit.CategoryAdmin:
		setting = l.config.Admin
	default:
		setting = "all"
	}

	if setting == "off" {
		return
	}
	if setting == "all" || setting == "log" {
		l.logToZap(event)
	}
	if (setting == "all" || setting == "db") && l.store != nil {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

func oidPtr(hex string) *primitive.ObjectID {
	oid, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return nil
	}
	return &oid
}

func authEvent(r *http.Request, typ string, userID *primitive.ObjectID, success bool, reason string, details map[string]string) audit.Event {
	return audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     typ,
		UserID:        userID,
		IP:            ratelimit.ClientIP(r),
		UserAgent:     r.UserAgent(),
		Success:       success,
		FailureReason: reason,
		Details:       details,
	}
}

// --- Authentication Events ---

// LoginSuccess logs a successful login.
func (l *Logger) LoginSuccess(ctx context.Context, r *http.Request, userID primitive.ObjectID, email string) {
	l.Log(ctx, authEvent(r, audit.EventLoginSuccess, &userID, true, "", map[string]string{"email": email}))
}

// LoginFailedUserNotFound logs a login for an unknown email.
func (l *Logger) LoginFailedUserNotFound(ctx context.Context, r *http.Request, attemptedEmail string) {
	l.Log(ctx, authEvent(r, audit.EventLoginFailedUserNotFound, nil, false, "user not found",
		map[string]string{"attempted_email": attemptedEmail}))
}

// LoginFailedWrongPassword logs a login with a bad password.
func (l *Logger) LoginFailedWrongPassword(ctx context.Context, r *http.Request, userID primitive.ObjectID, email string) {
	l.Log(ctx, authEvent(r, audit.EventLoginFailedWrongPassword, &userID, false, "wrong password",
		map[string]string{"email": email}))
}

// LoginFailedInactive logs a login by a pending or suspended account.
func (l *Logger) LoginFailedInactive(ctx context.Context, r *http.Request, userID primitive.ObjectID, status string) {
	l.Log(ctx, authEvent(r, audit.EventLoginFailedInactive, &userID, false, "account "+status, nil))
}

// LoginFailedRateLimit logs a login rejected by the limiter.
func (l *Logger) LoginFailedRateLimit(ctx context.Context, r *http.Request, attemptedEmail string) {
	l.Log(ctx, authEvent(r, audit.EventLoginFailedRateLimit, nil, false, "rate limit exceeded",
		map[string]string{"attempted_email": attemptedEmail}))
}

// Logout logs a sign-out. userIDStr comes from the session and may be empty.
func (l *Logger) Logout(ctx context.Context, r *http.Request, userIDStr string) {
	l.Log(ctx, authEvent(r, audit.EventLogout, oidPtr(userIDStr), true, "", nil))
}

// Registered logs a self-service registration.
func (l *Logger) Registered(ctx context.Context, r *http.Request, userID primitive.ObjectID, email string) {
	l.Log(ctx, authEvent(r, audit.EventRegistered, &userID, true, "", map[string]string{"email": email}))
}

// PasswordResetRequested logs a forgot-password request for a known account.
func (l *Logger) PasswordResetRequested(ctx context.Context, r *http.Request, userID primitive.ObjectID) {
	l.Log(ctx, authEvent(r, audit.EventPasswordResetRequested, &userID, true, "", nil))
}

// PasswordReset logs a completed password reset.
func (l *Logger) PasswordReset(ctx context.Context, r *http.Request, userID primitive.ObjectID) {
	l.Log(ctx, authEvent(r, audit.EventPasswordReset, &userID, true, "", nil))
}

// --- Admin Events ---

func (l *Logger) admin(ctx context.Context, r *http.Request, typ string, actorIDStr string, userID *primitive.ObjectID, details map[string]string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: typ,
		UserID:    userID,
		ActorID:   oidPtr(actorIDStr),
		IP:        ratelimit.ClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
		Details:   details,
	})
}

// UserCreated logs an admin-created account.
func (l *Logger) UserCreated(ctx context.Context, r *http.Request, actorID string, userID primitive.ObjectID, role string) {
	l.admin(ctx, r, audit.EventUserCreated, actorID, &userID, map[string]string{"role": role})
}

// UserRoleChanged logs a role and/or status change. Empty values mean unchanged.
func (l *Logger) UserRoleChanged(ctx context.Context, r *http.Request, actorID string, userID primitive.ObjectID, role, status string) {
	d := map[string]string{}
	if role != "" {
		d["role"] = role
	}
	if status != "" {
		d["status"] = status
	}
	l.admin(ctx, r, audit.EventUserRoleChanged, actorID, &userID, d)
}

// UserFeatured logs a featured flag change.
func (l *Logger) UserFeatured(ctx context.Context, r *http.Request, actorID string, userID primitive.ObjectID, featured bool) {
	v := "false"
	if featured {
		v = "true"
	}
	l.admin(ctx, r, audit.EventUserFeatured, actorID, &userID, map[string]string{"is_featured": v})
}

// DonationDeleted logs a donation removal.
func (l *Logger) DonationDeleted(ctx context.Context, r *http.Request, actorID string, donationID primitive.ObjectID, campaign string) {
	l.admin(ctx, r, audit.EventDonationDeleted, actorID, nil,
		map[string]string{"donation_id": donationID.Hex(), "campaign": campaign})
}

// CampaignDeleted logs a campaign removal.
func (l *Logger) CampaignDeleted(ctx context.Context, r *http.Request, actorID string, campaignID primitive.ObjectID, title string) {
	l.admin(ctx, r, audit.EventCampaignDeleted, actorID, nil,
		map[string]string{"campaign_id": campaignID.Hex(), "title": title})
}

// CampaignsRecounted logs a manual recompute of every campaign total.
func (l *Logger) CampaignsRecounted(ctx context.Context, r *http.Request, actorID string, count int) {
	l.admin(ctx, r, audit.EventCampaignsRecounted, actorID, nil,
		map[string]string{"campaigns": strconv.Itoa(count)})
}
