package domain

import (
	"testing"
	"time"
)

func TestSession_Complete(t *testing.T) {
	now := time.Now()
	full := &Session{Token: "tok", SessionID: "sid", LoginAt: now, ExpiresAt: now.Add(time.Hour)}
	if !full.Complete() {
		t.Error("fully populated session should be complete")
	}

	tests := []struct {
		name string
		s    *Session
	}{
		{"nil", nil},
		{"missing token", &Session{SessionID: "sid", LoginAt: now, ExpiresAt: now.Add(time.Hour)}},
		{"missing session id", &Session{Token: "tok", LoginAt: now, ExpiresAt: now.Add(time.Hour)}},
		{"zero login time", &Session{Token: "tok", SessionID: "sid", ExpiresAt: now.Add(time.Hour)}},
		{"zero expiry", &Session{Token: "tok", SessionID: "sid", LoginAt: now}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.s.Complete() {
				t.Error("partial session should not be complete")
			}
		})
	}
}

func TestSession_Expired(t *testing.T) {
	now := time.Now()
	maxAge := 24 * time.Hour

	tests := []struct {
		name    string
		loginAt time.Time
		expires time.Time
		want    bool
	}{
		{"fresh", now.Add(-time.Minute), now.Add(time.Hour), false},
		{"just under the age cap", now.Add(-23*time.Hour - 59*time.Minute), now.Add(time.Hour), false},
		{"past the age cap", now.Add(-24*time.Hour - time.Millisecond), now.Add(time.Hour), true},
		{"exactly at the age cap", now.Add(-24 * time.Hour), now.Add(time.Hour), true},
		{"token expiry passed", now.Add(-time.Minute), now.Add(-time.Second), true},
		{"token expiry exactly now", now.Add(-time.Minute), now, true},
		{"both passed", now.Add(-25 * time.Hour), now.Add(-time.Hour), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Session{Token: "tok", SessionID: "sid", LoginAt: tt.loginAt, ExpiresAt: tt.expires}
			if got := s.Expired(now, maxAge); got != tt.want {
				t.Errorf("Expired = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSession_Remaining(t *testing.T) {
	now := time.Now()
	maxAge := 24 * time.Hour

	s := &Session{LoginAt: now.Add(-23 * time.Hour), ExpiresAt: now.Add(10 * time.Hour)}
	if got := s.Remaining(now, maxAge); got != time.Hour {
		t.Errorf("age cap should win: got %v, want 1h", got)
	}

	s = &Session{LoginAt: now, ExpiresAt: now.Add(30 * time.Minute)}
	if got := s.Remaining(now, maxAge); got != 30*time.Minute {
		t.Errorf("token expiry should win: got %v, want 30m", got)
	}
}
