// Package domain defines the client-held session record.
package domain

import "time"

// Session is the client-side proof of admin authentication. It is all
// fields present or fully absent; a partially populated record is treated
// the same as no session at all.
type Session struct {
	Token      string
	LoginAt    time.Time
	ExpiresAt  time.Time
	SessionID  string
	AdminName  string
	AdminEmail string
	RememberMe bool
}

// Complete reports whether every field required for authentication is
// present. AdminName and AdminEmail are display-only and may be empty.
func (s *Session) Complete() bool {
	if s == nil {
		return false
	}
	return s.Token != "" && s.SessionID != "" && !s.LoginAt.IsZero() && !s.ExpiresAt.IsZero()
}

// Expired reports whether the session has lapsed at the given instant. The
// token expiry and the absolute age cap are independent conditions; either
// one failing invalidates the session.
func (s *Session) Expired(now time.Time, maxAge time.Duration) bool {
	if !now.Before(s.ExpiresAt) {
		return true
	}
	return now.Sub(s.LoginAt) >= maxAge
}

// Remaining returns how long the session stays valid from now, honoring both
// the token expiry and the absolute age cap. Zero or negative means lapsed.
func (s *Session) Remaining(now time.Time, maxAge time.Duration) time.Duration {
	byExpiry := s.ExpiresAt.Sub(now)
	byAge := s.LoginAt.Add(maxAge).Sub(now)
	if byExpiry < byAge {
		return byExpiry
	}
	return byAge
}
