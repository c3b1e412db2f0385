// Package auth resolves the signed-in user for each request and gates
// routes on sign-in and role.
//
// A sign-in is an HS256 token carried in a securecookie-encoded session
// cookie (or an Authorization: Bearer header for API clients). The user
// record is re-read on every request so role and status changes apply
// immediately.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/alumnihub/internal/app/system/jsonio"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const tokenKey = "token"

// SessionUser is the per-request view of the signed-in account.
type SessionUser struct {
	ID     string
	Name   string
	Email  string
	Role   string
	Status string
}

// IsActive reports whether the account may act.
func (u *SessionUser) IsActive() bool {
	return u != nil && u.Status == "active"
}

// UserFetcher loads the current state of a user. It returns nil when the
// user does not exist or cannot be loaded.
type UserFetcher interface {
	FetchUser(ctx context.Context, userID string) *SessionUser
}

// State tags the outcome of resolving a request's session.
type State int

const (
	Unauthenticated State = iota
	Authenticated
	AccountInactive
)

func (s State) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	case AccountInactive:
		return "account_inactive"
	default:
		return "unauthenticated"
	}
}

// Resolution is the result of Resolve. User is set for Authenticated and
// AccountInactive.
type Resolution struct {
	State State
	User  *SessionUser
}

// SessionManager issues, reads and clears sign-ins.
type SessionManager struct {
	store   *sessions.CookieStore
	name    string
	tokens  *Tokens
	fetcher UserFetcher
	logger  *zap.Logger
}

// NewSessionManager builds a manager whose cookie is named name, scoped to
// domain, and lasts maxAge. secure marks the cookie Secure.
func NewSessionManager(sessionKey, name, domain string, maxAge time.Duration, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended", zap.Int("length", len(sessionKey)))
	}
	if name == "" {
		name = "token"
	}
	if maxAge <= 0 {
		maxAge = DefaultTokenTTL
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	store.Options = &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	store.MaxAge(int(maxAge.Seconds()))

	logger.Info("session manager initialized",
		zap.String("cookie", name),
		zap.Bool("secure", secure),
		zap.String("domain", domain),
		zap.Duration("max_age", maxAge))

	return &SessionManager{
		store:  store,
		name:   name,
		tokens: NewTokens([]byte(sessionKey), maxAge),
		logger: logger,
	}, nil
}

// SetUserFetcher installs the per-request user loader.
func (m *SessionManager) SetUserFetcher(f UserFetcher) {
	m.fetcher = f
}

// Tokens exposes the token signer.
func (m *SessionManager) Tokens() *Tokens {
	return m.tokens
}

// SignIn writes the session cookie for u and returns the token it carries.
func (m *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, u *SessionUser) (string, error) {
	tok, err := m.tokens.Sign(u)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	sess, _ := m.store.Get(r, m.name) // a bad cookie yields a fresh session
	sess.Values[tokenKey] = tok
	if err := sess.Save(r, w); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	return tok, nil
}

// SignOut expires the session cookie.
func (m *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, _ := m.store.Get(r, m.name)
	delete(sess.Values, tokenKey)
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

// Resolve reads the caller's token and loads the account it names.
func (m *SessionManager) Resolve(r *http.Request) Resolution {
	tok := m.tokenFrom(r)
	if tok == "" {
		return Resolution{State: Unauthenticated}
	}
	claims, err := m.tokens.Verify(tok)
	if err != nil {
		m.logger.Debug("rejected session token", zap.Error(err))
		return Resolution{State: Unauthenticated}
	}
	if m.fetcher == nil {
		return Resolution{State: Unauthenticated}
	}
	u := m.fetcher.FetchUser(r.Context(), claims.UserID)
	if u == nil {
		return Resolution{State: Unauthenticated}
	}
	if !u.IsActive() {
		return Resolution{State: AccountInactive, User: u}
	}
	return Resolution{State: Authenticated, User: u}
}

func (m *SessionManager) tokenFrom(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if scheme, tok, ok := strings.Cut(h, " "); ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(tok)
		}
	}
	if _, err := r.Cookie(m.name); err != nil {
		return ""
	}
	sess, err := m.store.Get(r, m.name)
	if err != nil {
		var se securecookie.Error
		if errors.As(err, &se) && se.IsDecode() {
			m.logger.Debug("undecodable session cookie", zap.Error(err))
		}
		return ""
	}
	tok, _ := sess.Values[tokenKey].(string)
	return tok
}

type ctxKey string

const (
	currentUserKey ctxKey = "currentUser"
	resolutionKey  ctxKey = "resolution"
)

// LoadSessionUser resolves the session once and stores the outcome in the
// request context. Only active accounts become the current user.
func (m *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res := m.Resolve(r)
		ctx := context.WithValue(r.Context(), resolutionKey, res)
		if res.State == Authenticated {
			ctx = context.WithValue(ctx, currentUserKey, res.User)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CurrentUser returns the signed-in, active user.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok && u != nil
}

// CurrentResolution returns what LoadSessionUser found.
func CurrentResolution(r *http.Request) Resolution {
	if res, ok := r.Context().Value(resolutionKey).(Resolution); ok {
		return res
	}
	return Resolution{State: Unauthenticated}
}

// RequireSignedIn rejects callers without an active session with 401.
func (m *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			jsonio.Message(w, http.StatusUnauthorized, "Unauthorized.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole rejects callers without an active session with 401 and
// callers whose role is not in allowed with 403.
func (m *SessionManager) RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				jsonio.Message(w, http.StatusUnauthorized, "Unauthorized.")
				return
			}
			if _, has := set[strings.ToLower(u.Role)]; !has {
				jsonio.Message(w, http.StatusForbidden, "Forbidden.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithTestUser puts u into r's context as an authenticated user.
// Intended for tests.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	ctx := context.WithValue(r.Context(), resolutionKey, Resolution{State: Authenticated, User: u})
	ctx = context.WithValue(ctx, currentUserKey, u)
	return r.WithContext(ctx)
}
