// internal/app/features/account/handler.go
package account

import (
	uierrors "github.com/dalemusser/alumnihub/internal/app/features/errors"
	userstore "github.com/dalemusser/alumnihub/internal/app/store/users"
	"github.com/dalemusser/alumnihub/internal/app/system/auditlog"
	"github.com/dalemusser/alumnihub/internal/app/system/auth"
	"github.com/dalemusser/alumnihub/internal/app/system/mailer"
	"github.com/dalemusser/alumnihub/internal/app/system/ratelimit"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves registration, sign-in and self-service account routes.
type Handler struct {
	DB           *mongo.Database
	Log          *zap.Logger
	SessionMgr   *auth.SessionManager
	ErrLog       *uierrors.ErrorLogger
	AuditLog     *auditlog.Logger
	Mailer       mailer.Sender
	LoginLimiter *ratelimit.LoginLimiter
	Users        *userstore.Store

	BaseURL  string // used to build reset links, e.g. "https://alumni.example.org"
	SiteName string
}

func NewHandler(
	db *mongo.Database,
	sessionMgr *auth.SessionManager,
	errLog *uierrors.ErrorLogger,
	audit *auditlog.Logger,
	mail mailer.Sender,
	loginLimiter *ratelimit.LoginLimiter,
	baseURL string,
	siteName string,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		DB:           db,
		Log:          logger,
		SessionMgr:   sessionMgr,
		ErrLog:       errLog,
		AuditLog:     audit,
		Mailer:       mail,
		LoginLimiter: loginLimiter,
		Users:        userstore.New(db),
		BaseURL:      baseURL,
		SiteName:     siteName,
	}
}
