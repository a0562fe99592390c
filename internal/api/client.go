// Package api is the typed client for the storefront backend REST API. The
// backend is externally owned; this package only shapes requests and
// responses and never interprets tokens beyond attaching them.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var (
	// ErrUnauthorized is returned on a 401 or 403 response. It means the
	// session is invalid server-side, never just "request failed".
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError is a non-auth error response from the backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.Status)
	}
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
}

// Client talks to the storefront backend. Token and unauthorized handling
// are injected by the session manager so the client stays free of session
// state.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	jar     http.CookieJar

	tokenSource    func() string
	onUnauthorized func()
}

// New returns a Client for the given base URL. The transport is
// otelhttp-instrumented and carries a cookie jar for the adminToken mirror.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: u,
		jar:     jar,
		http: &http.Client{
			Timeout:   timeout,
			Jar:       jar,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}, nil
}

// SetTokenSource installs the callback that supplies the current bearer
// token. An empty return means "no token"; requests then go out
// unauthenticated.
func (c *Client) SetTokenSource(fn func() string) { c.tokenSource = fn }

// SetOnUnauthorized installs the hook fired whenever any call receives a
// 401 or 403. The session manager uses it to clear state and redirect.
func (c *Client) SetOnUnauthorized(fn func()) { c.onUnauthorized = fn }

// MirrorCookie mirrors the token into an adminToken cookie on the backend
// host, matching what server-side route middleware expects to see.
func (c *Client) MirrorCookie(token string) {
	c.jar.SetCookies(c.baseURL, []*http.Cookie{{Name: "adminToken", Value: token, Path: "/"}})
}

// ClearCookie drops the adminToken mirror.
func (c *Client) ClearCookie() {
	c.jar.SetCookies(c.baseURL, []*http.Cookie{{Name: "adminToken", Value: "", Path: "/", MaxAge: -1}})
}

// do executes one API call and returns the raw response payload; callers
// run it through the envelope decoders. A 401/403 fires the unauthorized
// hook and returns ErrUnauthorized; other non-2xx statuses return *APIError
// with the backend's message when one can be extracted.
func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokenSource != nil {
		if tok := c.tokenSource(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("%s %s: read response: %w", method, path, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return nil, fmt.Errorf("%s %s: %w", method, path, ErrUnauthorized)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &APIError{Status: resp.StatusCode, Message: errorMessage(payload)}
	}

	return payload, nil
}

// Ping makes the cheapest authenticated call the backend offers. There is
// no dedicated whoami endpoint; a category list stands in for one.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/api/categories", nil)
	return err
}
