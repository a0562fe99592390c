package token

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

// makeJWT builds an unsigned JWT-shaped token ("alg":"none" style) for
// structural tests. The signature segment is deliberately junk; nothing in
// this package verifies it.
func makeJWT(t *testing.T, claims map[string]any) string {
	t.Helper()
	header, err := json.Marshal(map[string]string{"alg": "HS256", "typ": "JWT"})
	if err != nil {
		t.Fatalf("marshal header: %v", err)
	}
	payload, err := json.Marshal(claims)
	if err != nil {
		t.Fatalf("marshal claims: %v", err)
	}
	enc := base64.RawURLEncoding
	return enc.EncodeToString(header) + "." + enc.EncodeToString(payload) + "." + enc.EncodeToString([]byte("sig"))
}

func TestValidate_Opaque(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{"valid opaque", "abcdefghij1234567890-_~+/=", false},
		{"too short", "abc123", true},
		{"empty", "", true},
		{"whitespace only", "                         ", true},
		{"forbidden characters", "abcdefghij1234567890!!!!!", true},
		{"spaces inside", "abcdefghij 1234567890xyzw", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.token)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%q) = %v, wantErr %v", tt.token, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrMalformedToken) {
				t.Errorf("error should be ErrMalformedToken, got %v", err)
			}
		})
	}
}

func TestValidate_JWT(t *testing.T) {
	if err := Validate(makeJWT(t, map[string]any{"sub": "admin-1"})); err != nil {
		t.Errorf("JWT with sub claim should validate: %v", err)
	}
	if err := Validate(makeJWT(t, map[string]any{"email": "a@b.co"})); err != nil {
		t.Errorf("JWT with email claim should validate: %v", err)
	}
	if err := Validate(makeJWT(t, map[string]any{"exp": time.Now().Add(time.Hour).Unix()})); err != nil {
		t.Errorf("JWT with exp claim should validate: %v", err)
	}

	if err := Validate(makeJWT(t, map[string]any{"role": "admin"})); !errors.Is(err, ErrMalformedToken) {
		t.Errorf("JWT without identifying claims should fail, got %v", err)
	}

	// Three segments that are not base64 JSON.
	junk := "notbase64!!.alsonotbase64!!.stillnot"
	if err := Validate(junk); !errors.Is(err, ErrMalformedToken) {
		t.Errorf("undecodable three-part token should fail, got %v", err)
	}
}

func TestExpiryHint(t *testing.T) {
	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	got, ok := ExpiryHint(makeJWT(t, map[string]any{"exp": exp.Unix()}))
	if !ok {
		t.Fatal("expected an expiry hint")
	}
	if !got.Equal(exp) {
		t.Errorf("hint = %v, want %v", got, exp)
	}

	if _, ok := ExpiryHint(makeJWT(t, map[string]any{"sub": "admin-1"})); ok {
		t.Error("JWT without exp should yield no hint")
	}
	if _, ok := ExpiryHint("opaque-token-abcdefgh1234"); ok {
		t.Error("opaque token should yield no hint")
	}
	if _, ok := ExpiryHint(""); ok {
		t.Error("empty token should yield no hint")
	}
}

func TestValidate_TrimsWhitespace(t *testing.T) {
	tok := "abcdefghij1234567890-_~"
	if err := Validate("  " + tok + "\n"); err != nil {
		t.Errorf("surrounding whitespace should be ignored: %v", err)
	}
	if !strings.Contains(tok, "-") {
		t.Fatal("test token should exercise the extended character set")
	}
}
