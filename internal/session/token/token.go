// Package token performs structural validation and best-effort claim
// extraction on bearer tokens. Nothing here verifies a signature; the
// backend's 401 response is the trust boundary, and a decoded expiry is
// only a scheduling hint.
package token

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformedToken is returned when a token fails structural validation.
// A malformed token is treated exactly like an absent one.
var ErrMalformedToken = errors.New("malformed token")

const minLength = 20

// opaqueToken matches the restricted character set allowed for non-JWT
// bearer tokens.
var opaqueToken = regexp.MustCompile(`^[A-Za-z0-9._~+/=-]+$`)

// Validate checks a token's shape without trusting its content. A
// three-part token must decode as a JWT and carry at least one of the exp,
// iat, sub, or email claims; anything else must satisfy the opaque-token
// character set. Either way the token must meet the minimum length.
func Validate(raw string) error {
	raw = strings.TrimSpace(raw)
	if len(raw) < minLength {
		return ErrMalformedToken
	}
	if strings.Count(raw, ".") == 2 {
		claims := jwt.MapClaims{}
		if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
			return ErrMalformedToken
		}
		for _, key := range []string{"exp", "iat", "sub", "email"} {
			if _, ok := claims[key]; ok {
				return nil
			}
		}
		return ErrMalformedToken
	}
	if !opaqueToken.MatchString(raw) {
		return ErrMalformedToken
	}
	return nil
}

// ExpiryHint extracts the exp claim from a JWT-shaped token without
// verifying it. Returns false for opaque tokens, undecodable tokens, and
// tokens with no usable exp claim; callers fall back to the absolute age
// cap.
func ExpiryHint(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if strings.Count(raw, ".") != 2 {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
