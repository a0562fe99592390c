package api

import (
	"context"
	"fmt"
	"net/http"
)

// GetProfile fetches the logged-in admin's profile.
func (c *Client) GetProfile(ctx context.Context) (*AdminProfile, error) {
	payload, err := c.do(ctx, http.MethodGet, "/api/admin/profile", nil)
	if err != nil {
		return nil, err
	}
	var p AdminProfile
	if err := decodeObject(payload, "admin", &p); err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

// UpdateProfile saves profile changes and returns the stored snapshot.
func (c *Client) UpdateProfile(ctx context.Context, p *AdminProfile) (*AdminProfile, error) {
	payload, err := c.do(ctx, http.MethodPut, "/api/admin/profile", p)
	if err != nil {
		return nil, err
	}
	var updated AdminProfile
	if err := decodeObject(payload, "admin", &updated); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return &updated, nil
}
