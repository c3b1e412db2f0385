package authutil

import (
	"strings"
	"testing"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		pw   string
		want error
	}{
		{"", ErrPasswordTooShort},
		{"abcde", ErrPasswordTooShort},
		{"abcdef", nil},
		{"secure123", nil},
		{strings.Repeat("a", MaxPasswordLength), nil},
		{strings.Repeat("a", MaxPasswordLength+1), ErrPasswordTooLong},
		{"密码ab", ErrPasswordTooShort},
		{"密码密码密码", nil},
		{strings.Repeat("密", 25), ErrPasswordTooLong},
	}

	for _, tt := range tests {
		if got := ValidatePassword(tt.pw); got != tt.want {
			t.Errorf("ValidatePassword(%q) = %v, want %v", tt.pw, got, tt.want)
		}
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("SecurePassword123")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "SecurePassword123" || hash[0] != '$' {
		t.Errorf("unexpected hash %q", hash)
	}
	if !CheckPassword("SecurePassword123", hash) {
		t.Error("expected correct password to match")
	}
	if CheckPassword("WrongPassword456", hash) {
		t.Error("expected wrong password to fail")
	}
	if CheckPassword("", hash) {
		t.Error("expected empty password to fail")
	}
	if CheckPassword("password", "not-a-valid-hash") {
		t.Error("expected invalid hash to fail")
	}
}

func TestHashPassword_Salted(t *testing.T) {
	h1, _ := HashPassword("same-password")
	h2, _ := HashPassword("same-password")
	if h1 == h2 {
		t.Error("expected different hashes for the same password")
	}
}

func TestNewResetToken(t *testing.T) {
	token, digest, err := NewResetToken()
	if err != nil {
		t.Fatalf("NewResetToken: %v", err)
	}
	if len(token) != 64 {
		t.Errorf("token length = %d, want 64", len(token))
	}
	if digest == token {
		t.Error("digest must differ from token")
	}
	if HashResetToken(token) != digest {
		t.Error("HashResetToken(token) should equal digest")
	}

	other, _, _ := NewResetToken()
	if other == token {
		t.Error("tokens should be random")
	}
}

func TestPasswordMessage(t *testing.T) {
	if got := PasswordMessage(ErrPasswordTooShort); got != "Password must be at least 6 characters." {
		t.Errorf("got %q", got)
	}
}

func TestPasswordRules(t *testing.T) {
	if !strings.Contains(PasswordRules(), "6") {
		t.Error("expected rules to mention the minimum length")
	}
}
