package mailer

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestSend_NoHostIsNoop(t *testing.T) {
	m := New(Config{}, zap.NewNop())
	m.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("send should not be called without a host")
		return nil
	}
	if err := m.Send(context.Background(), Email{To: "a@b.com"}); err != nil {
		t.Errorf("Send: %v", err)
	}
}

func TestSend_BuildsMultipartMessage(t *testing.T) {
	m := New(Config{Host: "smtp.test", Port: 1025, From: "noreply@alumni.test", FromName: "Alumni"}, zap.NewNop())

	var (
		gotAddr string
		gotTo   []string
		gotMsg  string
	)
	m.send = func(addr string, _ smtp.Auth, _ string, to []string, msg []byte) error {
		gotAddr, gotTo, gotMsg = addr, to, string(msg)
		return nil
	}

	e := BuildResetEmail(ResetEmailData{SiteName: "Alumni", FullName: "Rahim", ResetURL: "https://x/reset?token=t", ExpiresIn: "1 hour"})
	e.To = "rahim@example.com"
	if err := m.Send(context.Background(), e); err != nil {
		t.Fatalf("Send: %v", err)
	}

	if gotAddr != "smtp.test:1025" {
		t.Errorf("addr = %q", gotAddr)
	}
	if len(gotTo) != 1 || gotTo[0] != "rahim@example.com" {
		t.Errorf("to = %v", gotTo)
	}
	for _, want := range []string{"multipart/alternative", "text/plain", "text/html", "https://x/reset?token=t"} {
		if !strings.Contains(gotMsg, want) {
			t.Errorf("message missing %q", want)
		}
	}
}

func TestSend_WrapsError(t *testing.T) {
	m := New(Config{Host: "smtp.test", Port: 25, From: "a@b.com"}, zap.NewNop())
	boom := errors.New("boom")
	m.send = func(string, smtp.Auth, string, []string, []byte) error { return boom }

	if err := m.Send(context.Background(), Email{To: "x@y.com"}); !errors.Is(err, boom) {
		t.Errorf("expected wrapped error, got %v", err)
	}
}

func TestBuildApprovalEmail(t *testing.T) {
	e := BuildApprovalEmail(ApprovalEmailData{SiteName: "Alumni", FullName: "Karim", LoginURL: "https://x/login"})
	if !strings.Contains(e.Subject, "approved") {
		t.Errorf("subject = %q", e.Subject)
	}
	if !strings.Contains(e.TextBody, "Karim") || !strings.Contains(e.HTMLBody, "https://x/login") {
		t.Error("bodies should carry name and link")
	}
}
