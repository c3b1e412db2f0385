// Package authutil holds password and reset-token helpers shared by the
// account handlers and the maintenance CLI.
package authutil

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

const (
	// MinPasswordLength is the shortest password accepted, in characters.
	MinPasswordLength = 6
	// MaxPasswordLength is bcrypt's input limit, in bytes.
	MaxPasswordLength = 72

	// ResetTokenTTL is how long a password reset link stays valid.
	ResetTokenTTL = time.Hour
)

var (
	ErrPasswordTooShort = errors.New("password too short")
	ErrPasswordTooLong  = errors.New("password too long")
)

// PasswordMessage turns a ValidatePassword error into client text.
func PasswordMessage(err error) string {
	if errors.Is(err, ErrPasswordTooLong) {
		return fmt.Sprintf("Password must be at most %d characters.", MaxPasswordLength)
	}
	return fmt.Sprintf("Password must be at least %d characters.", MinPasswordLength)
}

// ValidatePassword checks length only.
func ValidatePassword(pw string) error {
	switch {
	case utf8.RuneCountInString(pw) < MinPasswordLength:
		return ErrPasswordTooShort
	case len(pw) > MaxPasswordLength:
		return ErrPasswordTooLong
	}
	return nil
}

// PasswordRules describes the password policy for clients.
func PasswordRules() string {
	return fmt.Sprintf("Use %d to %d characters.", MinPasswordLength, MaxPasswordLength)
}

// HashPassword returns a bcrypt hash of pw.
func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword reports whether pw matches hash.
func CheckPassword(pw, hash string) bool {
	if pw == "" || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

var errShortRead = errors.New("short read from crypto/rand")

// NewResetToken returns a random 32-byte token (hex) for the email link and
// the digest to store. Only the digest is persisted.
func NewResetToken() (token, digest string, err error) {
	b := make([]byte, 32)
	n, err := rand.Read(b)
	if err != nil {
		return "", "", err
	}
	if n != len(b) {
		return "", "", errShortRead
	}
	token = hex.EncodeToString(b)
	return token, HashResetToken(token), nil
}

// HashResetToken returns the stored form of a reset token.
func HashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
