// internal/app/features/adminusers/handler.go
package adminusers

import (
	uierrors "github.com/dalemusser/alumnihub/internal/app/features/errors"
	userstore "github.com/dalemusser/alumnihub/internal/app/store/users"
	"github.com/dalemusser/alumnihub/internal/app/system/auditlog"
	"github.com/dalemusser/alumnihub/internal/app/system/mailer"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the back-office handler for user accounts.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	AuditLog *auditlog.Logger
	Mailer   mailer.Sender
	Users    *userstore.Store

	BaseURL  string
	SiteName string
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, mail mailer.Sender, baseURL, siteName string, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		ErrLog:   errLog,
		AuditLog: audit,
		Mailer:   mail,
		Users:    userstore.New(db),
		BaseURL:  baseURL,
		SiteName: siteName,
	}
}
