package bootstrap

import (
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

func validAppConfig() AppConfig {
	return AppConfig{
		MongoURI:       "mongodb://localhost:27017",
		MongoDatabase:  "alumnihub",
		SessionKey:     "a-production-strength-session-key-0123456789",
		SessionName:    "token",
		SessionMaxAge:  7 * 24 * time.Hour,
		AuditLogAuth:   "all",
		AuditLogAdmin:  "db",
		LoginRateLimit: 10,
		FormRateLimit:  20,
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		mutate  func(*AppConfig)
		wantErr string
	}{
		{"valid", "prod", func(*AppConfig) {}, ""},
		{"bad uri", "dev", func(c *AppConfig) { c.MongoURI = "postgres://nope" }, "invalid MongoDB URI"},
		{"no database", "dev", func(c *AppConfig) { c.MongoDatabase = "" }, "mongo_database"},
		{"short key", "dev", func(c *AppConfig) { c.SessionKey = "short" }, "at least 32"},
		{"dev key in prod", "prod", func(c *AppConfig) { c.SessionKey = devSessionKey }, "development default"},
		{"dev key in dev", "dev", func(c *AppConfig) { c.SessionKey = devSessionKey }, ""},
		{"bad audit setting", "dev", func(c *AppConfig) { c.AuditLogAdmin = "sometimes" }, "audit_log"},
		{"zero limiter", "dev", func(c *AppConfig) { c.FormRateLimit = 0 }, "rate_limit"},
		{"negative interval", "dev", func(c *AppConfig) { c.TokenCleanupInterval = -time.Minute }, "must not be negative"},
		{"jobs enabled", "dev", func(c *AppConfig) { c.ReconcileInterval = time.Hour; c.TokenCleanupInterval = time.Hour }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validAppConfig()
			tt.mutate(&cfg)
			err := ValidateConfig(&config.CoreConfig{Env: tt.env}, cfg, zap.NewNop())
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error: got %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}
