// Package inputval validates decoded request bodies before any write.
//
// Handlers build a Checker, run every rule, then call Err. Missing required
// fields are reported together in one message; otherwise the first failed
// rule wins.
package inputval

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Error is a validation failure. Message is safe to show to the client.
type Error struct {
	Message string
}

func (e *Error) Error() string { return e.Message }

// Invalid returns the standard message for a malformed field.
func Invalid(field string) *Error {
	return &Error{Message: "Invalid " + field + "."}
}

// Number accepts a JSON number or a numeric string. Decoding never fails;
// malformed input is recorded and reported by the Checker.
type Number struct {
	Value   float64
	Present bool // a non-null, non-blank value was supplied
	Valid   bool // Present and parsed to a finite number
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(b []byte) error {
	*n = Number{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	raw := string(b)
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			n.Present = true
			return nil
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			return nil
		}
	}
	n.Present = true
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	n.Value = f
	n.Valid = true
	return nil
}

// Int returns Value truncated to an int.
func (n Number) Int() int { return int(n.Value) }

// Num builds a valid Number, mostly for tests and internal callers.
func Num(f float64) Number { return Number{Value: f, Present: true, Valid: true} }

// Checker accumulates rule failures for one request.
type Checker struct {
	missing []string
	first   *Error
}

// New returns an empty Checker.
func New() *Checker { return &Checker{} }

// Required records field as missing when value is blank after trimming.
func (c *Checker) Required(field, value string) *Checker {
	if strings.TrimSpace(value) == "" {
		c.missing = append(c.missing, field)
	}
	return c
}

// RequiredNumber records field as missing when n was not supplied.
func (c *Checker) RequiredNumber(field string, n Number) *Checker {
	if !n.Present {
		c.missing = append(c.missing, field)
	}
	return c
}

// NonNegative fails when a supplied n is malformed or below zero.
func (c *Checker) NonNegative(field string, n Number) *Checker {
	if n.Present && (!n.Valid || n.Value < 0) {
		c.fail(Invalid(field))
	}
	return c
}

// Finite fails when a supplied n is malformed.
func (c *Checker) Finite(field string, n Number) *Checker {
	if n.Present && !n.Valid {
		c.fail(Invalid(field))
	}
	return c
}

// OneOf fails when a non-empty value is not in allowed.
func (c *Checker) OneOf(field, value string, allowed []string) *Checker {
	if value == "" {
		return c
	}
	for _, a := range allowed {
		if value == a {
			return c
		}
	}
	c.fail(Invalid(field))
	return c
}

// Enum fails when value was supplied but is blank or not in allowed. Use it
// for partial updates where a nil pointer means unchanged.
func (c *Checker) Enum(field string, value *string, allowed []string) *Checker {
	if value == nil {
		return c
	}
	v := strings.TrimSpace(*value)
	for _, a := range allowed {
		if v == a {
			return c
		}
	}
	c.fail(Invalid(field))
	return c
}

// Email fails when a non-empty value is not a plausible address.
func (c *Checker) Email(value string) *Checker {
	if value != "" && !IsValidEmail(value) {
		c.fail(&Error{Message: "Invalid email."})
	}
	return c
}

// Check fails with msg when ok is false.
func (c *Checker) Check(ok bool, msg string) *Checker {
	if !ok {
		c.fail(&Error{Message: msg})
	}
	return c
}

func (c *Checker) fail(e *Error) {
	if c.first == nil {
		c.first = e
	}
}

// Err returns the failure to report, or nil when every rule passed.
func (c *Checker) Err() *Error {
	if len(c.missing) > 0 {
		return &Error{Message: "Missing required fields: " + strings.Join(c.missing, ", ") + "."}
	}
	return c.first
}

// IsValidEmail reports whether s looks like local@domain with no spaces,
// no display name, and no empty or leading/trailing/doubled dot labels.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, " \t<>()[],;:\\\"") {
		return false
	}
	at := strings.IndexByte(s, '@')
	if at <= 0 || at != strings.LastIndexByte(s, '@') || at == len(s)-1 {
		return false
	}
	return dotAtom(s[:at]) && dotAtom(s[at+1:])
}

func dotAtom(s string) bool {
	if strings.HasPrefix(s, ".") || strings.HasSuffix(s, ".") {
		return false
	}
	return !strings.Contains(s, "..")
}
