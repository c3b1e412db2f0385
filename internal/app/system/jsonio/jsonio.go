// Package jsonio reads request bodies and writes JSON responses in the
// envelope every endpoint shares: {message?, <entity>} on success and
// {message} on failure.
package jsonio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MaxBodyBytes caps a decoded request body.
const MaxBodyBytes = 1 << 20

// ErrBadBody is returned by Decode for empty, oversized or malformed bodies.
var ErrBadBody = errors.New("invalid request body")

// M is shorthand for a response object.
type M map[string]any

// Write encodes v as JSON with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Message writes {"message": msg}.
func Message(w http.ResponseWriter, status int, msg string) {
	Write(w, status, M{"message": msg})
}

// Decode reads the request body into dst. Unknown fields are ignored.
func Decode(r *http.Request, dst any) error {
	if r.Body == nil {
		return ErrBadBody
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", ErrBadBody, err)
	}
	return nil
}

// DecodeOptional is Decode for endpoints whose body may be absent.
// An empty body leaves dst untouched.
func DecodeOptional(r *http.Request, dst any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	if err := Decode(r, dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
