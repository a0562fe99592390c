package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrInvalidCredentials is returned when the backend rejects the email or
// password. Anything else surfaces as a generic *APIError.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AdminProfile is the denormalized profile snapshot returned alongside a
// login token, cached for display only.
type AdminProfile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// LoginResult is a successful authentication response. Admin is nil when
// the backend sent no profile.
type LoginResult struct {
	Token string
	Admin *AdminProfile
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates against the backend. The token is treated as an
// opaque bearer string here; expiry hints are the session layer's business.
func (c *Client) Login(ctx context.Context, endpoint, email, password string) (*LoginResult, error) {
	payload, err := c.do(ctx, http.MethodPost, endpoint, loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, classifyAuthError(err)
	}
	res, err := decodeLogin(payload)
	if err != nil {
		return nil, fmt.Errorf("login response: %w", err)
	}
	return res, nil
}

// decodeLogin extracts the token (and optional admin profile) from a login
// response. Fallback order for the token: "data.token", top-level "token",
// then "data.data.token". The admin profile is looked up beside whichever
// level held the token.
func decodeLogin(payload []byte) (*LoginResult, error) {
	env := parseEnvelope(payload)
	if env == nil {
		return nil, ErrNoPayload
	}

	var data, nested envelope
	if raw, ok := env["data"]; ok {
		data = parseEnvelope(raw)
	}
	if data != nil {
		if raw, ok := data["data"]; ok {
			nested = parseEnvelope(raw)
		}
	}

	for _, level := range []envelope{data, env, nested} {
		if level == nil {
			continue
		}
		raw, ok := level["token"]
		if !ok {
			continue
		}
		var tok string
		if err := json.Unmarshal(raw, &tok); err != nil || tok == "" {
			continue
		}
		res := &LoginResult{Token: tok}
		if adminRaw, ok := level["admin"]; ok {
			var admin AdminProfile
			if err := json.Unmarshal(adminRaw, &admin); err == nil {
				res.Admin = &admin
			}
		}
		return res, nil
	}
	return nil, fmt.Errorf("token: %w", ErrNoPayload)
}

// classifyAuthError maps a login failure onto ErrInvalidCredentials when
// the status or message indicates bad credentials, and passes everything
// else through untouched.
func classifyAuthError(err error) error {
	if errors.Is(err, ErrUnauthorized) {
		return ErrInvalidCredentials
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		msg := strings.ToLower(apiErr.Message)
		for _, indicator := range []string{"invalid", "incorrect", "unauthorized", "401"} {
			if strings.Contains(msg, indicator) {
				return ErrInvalidCredentials
			}
		}
	}
	return err
}
