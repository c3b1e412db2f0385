package account_test

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dalemusser/alumnihub/internal/app/features/account"
	uierrors "github.com/dalemusser/alumnihub/internal/app/features/errors"
	userstore "github.com/dalemusser/alumnihub/internal/app/store/users"
	"github.com/dalemusser/alumnihub/internal/app/system/auth"
	"github.com/dalemusser/alumnihub/internal/app/system/authutil"
	"github.com/dalemusser/alumnihub/internal/app/system/mailer"
	"github.com/dalemusser/alumnihub/internal/app/system/ratelimit"
	"github.com/dalemusser/alumnihub/internal/domain/models"
	"github.com/dalemusser/alumnihub/internal/testutil"
	"go.uber.org/zap"
)

type fakeMailer struct {
	mu   sync.Mutex
	sent []mailer.Email
}

func (m *fakeMailer) Send(_ context.Context, e mailer.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, e)
	return nil
}

func (m *fakeMailer) last(t *testing.T) mailer.Email {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		t.Fatal("no email sent")
	}
	return m.sent[len(m.sent)-1]
}

type env struct {
	h    *account.Handler
	sm   *auth.SessionManager
	fx   *testutil.Fixtures
	mail *fakeMailer
}

func newTestEnv(t *testing.T) env {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()

	sm, err := auth.NewSessionManager("test-session-key-for-testing-only-0123", "token", "", time.Hour, false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	sm.SetUserFetcher(userstore.NewFetcher(db))

	limiter := ratelimit.NewLoginLimiter(100)
	t.Cleanup(limiter.Stop)

	mail := &fakeMailer{}
	h := account.NewHandler(db, sm, uierrors.NewErrorLogger(logger), nil, mail, limiter,
		"https://alumni.test", "AlumniHub", logger)
	return env{h: h, sm: sm, fx: testutil.NewFixtures(t, db), mail: mail}
}

func validRegistration(email string) map[string]any {
	return map[string]any{
		"fullName":       "Rahim Uddin",
		"batch":          "2012",
		"passingYear":    "2012",
		"email":          email,
		"password":       "hunter22",
		"profilePicture": "https://img.test/rahim.jpg",
		"collegeName":    "City College",
	}
}

func TestRegister_CreatesPendingUser(t *testing.T) {
	e := newTestEnv(t)

	rec := testutil.NewRecorder()
	e.h.HandleRegister(rec, testutil.JSONRequest(t, "POST", "/api/auth/register", validRegistration("Rahim@Example.com")))
	rec.AssertStatus(t, http.StatusCreated)

	var body struct {
		User models.UserSummary `json:"user"`
	}
	rec.Decode(t, &body)
	if body.User.Status != models.StatusPending {
		t.Errorf("status: got %q, want pending", body.User.Status)
	}
	if body.User.Role != models.RoleAlumni {
		t.Errorf("role: got %q, want alumni", body.User.Role)
	}
	if body.User.Email != "rahim@example.com" {
		t.Errorf("email: got %q, want lowercased", body.User.Email)
	}
}

func TestRegister_DuplicateEmailIsCaseInsensitive(t *testing.T) {
	e := newTestEnv(t)

	first := testutil.NewRecorder()
	e.h.HandleRegister(first, testutil.JSONRequest(t, "POST", "/api/auth/register", validRegistration("dup@example.com")))
	first.AssertStatus(t, http.StatusCreated)

	second := testutil.NewRecorder()
	e.h.HandleRegister(second, testutil.JSONRequest(t, "POST", "/api/auth/register", validRegistration("DUP@example.com")))
	second.AssertStatus(t, http.StatusConflict)
	second.AssertMessage(t, "An account with this email already exists.")
}

func TestRegister_Validation(t *testing.T) {
	e := newTestEnv(t)

	tests := []struct {
		name    string
		mutate  func(map[string]any)
		wantMsg string
	}{
		{
			name:    "missing fields listed together",
			mutate:  func(b map[string]any) { delete(b, "batch"); b["collegeName"] = "  " },
			wantMsg: "Missing required fields: batch, collegeName.",
		},
		{
			name:    "short password",
			mutate:  func(b map[string]any) { b["password"] = "abc" },
			wantMsg: "Password must be at least 6 characters.",
		},
		{
			name:    "bad email",
			mutate:  func(b map[string]any) { b["email"] = "not-an-email" },
			wantMsg: "Invalid email.",
		},
		{
			name:    "bad passing year",
			mutate:  func(b map[string]any) { b["passingYear"] = "soon" },
			wantMsg: "Invalid passingYear.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := validRegistration("v@example.com")
			tt.mutate(body)
			rec := testutil.NewRecorder()
			e.h.HandleRegister(rec, testutil.JSONRequest(t, "POST", "/api/auth/register", body))
			rec.AssertStatus(t, http.StatusBadRequest)
			rec.AssertMessage(t, tt.wantMsg)
		})
	}
}

func TestLogin_Success(t *testing.T) {
	e := newTestEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	e.fx.CreateActiveAlumni(ctx, "Karim", "karim@example.com")

	rec := testutil.NewRecorder()
	e.h.HandleLogin(rec, testutil.JSONRequest(t, "POST", "/api/auth/login", map[string]string{
		"email": "Karim@Example.com", "password": testutil.FixturePassword,
	}))
	rec.AssertStatus(t, http.StatusOK)

	var body struct {
		User  models.UserSummary `json:"user"`
		Token *string            `json:"token"`
	}
	rec.Decode(t, &body)
	if body.Token != nil {
		t.Error("cookie login must not expose the token in the body")
	}
	if body.User.Email != "karim@example.com" {
		t.Errorf("user: got %+v", body.User)
	}

	found := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == "token" && c.HttpOnly {
			found = true
		}
	}
	if !found {
		t.Error("expected httpOnly session cookie")
	}
}

func TestLogin_BearerModeReturnsUsableToken(t *testing.T) {
	e := newTestEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	u := e.fx.CreateActiveAlumni(ctx, "Nadia", "nadia@example.com")

	rec := testutil.NewRecorder()
	e.h.HandleLogin(rec, testutil.JSONRequest(t, "POST", "/api/auth/login", map[string]any{
		"email": "nadia@example.com", "password": testutil.FixturePassword, "bearer": true,
	}))
	rec.AssertStatus(t, http.StatusOK)

	var body struct {
		Token string `json:"token"`
	}
	rec.Decode(t, &body)
	if body.Token == "" {
		t.Fatal("expected token in bearer mode")
	}

	claims, err := e.sm.Tokens().Verify(body.Token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID != u.ID.Hex() {
		t.Errorf("token user: got %q, want %q", claims.UserID, u.ID.Hex())
	}
}

func TestLogin_Rejections(t *testing.T) {
	e := newTestEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	e.fx.CreateUser(ctx, "Pending", "pending@example.com", models.RoleAlumni, models.StatusPending)
	e.fx.CreateUser(ctx, "Suspended", "suspended@example.com", models.RoleAlumni, models.StatusSuspended)
	e.fx.CreateActiveAlumni(ctx, "Active", "active@example.com")

	tests := []struct {
		name     string
		email    string
		password string
		want     int
	}{
		{"unknown email", "nobody@example.com", testutil.FixturePassword, http.StatusUnauthorized},
		{"wrong password", "active@example.com", "wrong-password", http.StatusUnauthorized},
		{"pending account", "pending@example.com", testutil.FixturePassword, http.StatusForbidden},
		{"suspended account", "suspended@example.com", testutil.FixturePassword, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testutil.NewRecorder()
			e.h.HandleLogin(rec, testutil.JSONRequest(t, "POST", "/api/auth/login", map[string]string{
				"email": tt.email, "password": tt.password,
			}))
			rec.AssertStatus(t, tt.want)
			if len(rec.Result().Cookies()) != 0 {
				t.Error("no cookie should be set on a failed login")
			}
		})
	}
}

func TestLogin_RateLimited(t *testing.T) {
	e := newTestEnv(t)
	limiter := ratelimit.NewLoginLimiter(2)
	defer limiter.Stop()
	e.h.LoginLimiter = limiter

	var rec *testutil.ResponseRecorder
	for i := 0; i < 3; i++ {
		rec = testutil.NewRecorder()
		e.h.HandleLogin(rec, testutil.JSONRequest(t, "POST", "/api/auth/login", map[string]string{
			"email": "x@example.com", "password": "whatever",
		}))
	}
	rec.AssertStatus(t, http.StatusTooManyRequests)
	rec.AssertMessage(t, ratelimit.TooManyMessage)
}

func TestMe(t *testing.T) {
	e := newTestEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	active := e.fx.CreateActiveAlumni(ctx, "Active", "active@example.com")
	pending := e.fx.CreateUser(ctx, "Pending", "pending@example.com", models.RoleAlumni, models.StatusPending)

	me := e.sm.LoadSessionUser(http.HandlerFunc(e.h.ServeMe))

	bearer := func(u models.User) string {
		tok, err := e.sm.Tokens().Sign(&auth.SessionUser{ID: u.ID.Hex(), Name: u.FullName, Email: u.Email})
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		return "Bearer " + tok
	}

	t.Run("no session", func(t *testing.T) {
		rec := testutil.NewRecorder()
		me.ServeHTTP(rec, testutil.JSONRequest(t, "GET", "/api/auth/me", nil))
		rec.AssertStatus(t, http.StatusUnauthorized)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := testutil.JSONRequest(t, "GET", "/api/auth/me", nil)
		req.Header.Set("Authorization", "Bearer nope")
		rec := testutil.NewRecorder()
		me.ServeHTTP(rec, req)
		rec.AssertStatus(t, http.StatusUnauthorized)
	})

	t.Run("pending account", func(t *testing.T) {
		req := testutil.JSONRequest(t, "GET", "/api/auth/me", nil)
		req.Header.Set("Authorization", bearer(pending))
		rec := testutil.NewRecorder()
		me.ServeHTTP(rec, req)
		rec.AssertStatus(t, http.StatusForbidden)
	})

	t.Run("active account", func(t *testing.T) {
		req := testutil.JSONRequest(t, "GET", "/api/auth/me", nil)
		req.Header.Set("Authorization", bearer(active))
		rec := testutil.NewRecorder()
		me.ServeHTTP(rec, req)
		rec.AssertStatus(t, http.StatusOK)

		var body struct {
			User map[string]any `json:"user"`
		}
		rec.Decode(t, &body)
		if body.User["email"] != "active@example.com" {
			t.Errorf("email: got %v", body.User["email"])
		}
		if _, leaked := body.User["passwordHash"]; leaked {
			t.Error("password hash must not be serialized")
		}
	})
}

func TestLogout_ClearsCookie(t *testing.T) {
	e := newTestEnv(t)

	rec := testutil.NewRecorder()
	e.h.HandleLogout(rec, testutil.JSONRequest(t, "POST", "/api/auth/logout", nil))
	rec.AssertStatus(t, http.StatusOK)

	for _, c := range rec.Result().Cookies() {
		if c.Name == "token" && c.MaxAge >= 0 {
			t.Errorf("cookie should be expired, MaxAge=%d", c.MaxAge)
		}
	}
}

func TestForgotAndResetPassword(t *testing.T) {
	e := newTestEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	e.fx.CreateActiveAlumni(ctx, "Forgetful", "forgetful@example.com")

	// Unknown email gets the same answer and no mail.
	rec := testutil.NewRecorder()
	e.h.HandleForgotPassword(rec, testutil.JSONRequest(t, "POST", "/api/auth/forgot-password", map[string]string{"email": "ghost@example.com"}))
	rec.AssertStatus(t, http.StatusOK)
	if len(e.mail.sent) != 0 {
		t.Fatalf("expected no email, got %d", len(e.mail.sent))
	}

	rec = testutil.NewRecorder()
	e.h.HandleForgotPassword(rec, testutil.JSONRequest(t, "POST", "/api/auth/forgot-password", map[string]string{"email": "forgetful@example.com"}))
	rec.AssertStatus(t, http.StatusOK)

	msg := e.mail.last(t)
	if msg.To != "forgetful@example.com" {
		t.Errorf("To: got %q", msg.To)
	}
	i := strings.Index(msg.TextBody, "token=")
	if i < 0 {
		t.Fatalf("no reset link in body: %s", msg.TextBody)
	}
	token := strings.Fields(msg.TextBody[i+len("token="):])[0]

	rec = testutil.NewRecorder()
	e.h.HandleResetPassword(rec, testutil.JSONRequest(t, "POST", "/api/auth/reset-password", map[string]string{
		"token": token, "password": "brand-new-pw",
	}))
	rec.AssertStatus(t, http.StatusOK)

	// Token is single-use.
	rec = testutil.NewRecorder()
	e.h.HandleResetPassword(rec, testutil.JSONRequest(t, "POST", "/api/auth/reset-password", map[string]string{
		"token": token, "password": "another-pw",
	}))
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertMessage(t, "Invalid or expired reset token.")

	u, err := e.h.Users.GetByEmail(ctx, "forgetful@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if !authutil.CheckPassword("brand-new-pw", u.PasswordHash) {
		t.Error("password was not changed")
	}
}

func TestResetPassword_ShortPassword(t *testing.T) {
	e := newTestEnv(t)

	rec := testutil.NewRecorder()
	e.h.HandleResetPassword(rec, testutil.JSONRequest(t, "POST", "/api/auth/reset-password", map[string]string{
		"token": "abc", "password": "123",
	}))
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertMessage(t, "Password must be at least 6 characters.")
}

func TestProfile_PartialUpdateKeepsEmail(t *testing.T) {
	e := newTestEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	u := e.fx.CreateActiveAlumni(ctx, "Old Name", "keep@example.com")

	req := testutil.JSONRequest(t, "PATCH", "/api/auth/profile", map[string]any{
		"fullName":   "New Name",
		"profession": "Engineer",
		"email":      "changed@example.com",
	})
	req = testutil.WithUser(req, testutil.FromUser(u))
	rec := testutil.NewRecorder()
	e.h.HandleProfile(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	got, err := e.h.Users.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.FullName != "New Name" || got.Profession != "Engineer" {
		t.Errorf("profile not updated: %+v", got)
	}
	if got.Email != "keep@example.com" {
		t.Errorf("email changed to %q", got.Email)
	}
	if got.Batch != u.Batch {
		t.Errorf("batch: got %q, want untouched %q", got.Batch, u.Batch)
	}
}

func TestProfile_BlankNameRejected(t *testing.T) {
	e := newTestEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	u := e.fx.CreateActiveAlumni(ctx, "Someone", "someone@example.com")

	req := testutil.WithUser(testutil.JSONRequest(t, "PATCH", "/api/auth/profile", map[string]any{"fullName": " "}), testutil.FromUser(u))
	rec := testutil.NewRecorder()
	e.h.HandleProfile(rec, req)
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertMessage(t, "Missing required fields: fullName.")
}
