package api

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Coupon is a storewide or per-category discount code. DiscountPercent
// follows the same [0, 100) contract as product pricing.
type Coupon struct {
	ID              string     `json:"_id,omitempty"`
	Code            string     `json:"code"`
	DiscountPercent float64    `json:"discountPercent"`
	MinOrderValue   float64    `json:"minOrderValue,omitempty"`
	ValidFrom       *time.Time `json:"validFrom,omitempty"`
	ValidTo         *time.Time `json:"validTo,omitempty"`
	Active          bool       `json:"active"`
}

func (c *Client) ListCoupons(ctx context.Context) ([]Coupon, error) {
	payload, err := c.do(ctx, http.MethodGet, "/api/coupons", nil)
	if err != nil {
		return nil, err
	}
	var out []Coupon
	if err := decodeList(payload, "coupons", &out); err != nil {
		return nil, fmt.Errorf("list coupons: %w", err)
	}
	return out, nil
}

func (c *Client) CreateCoupon(ctx context.Context, coupon *Coupon) (*Coupon, error) {
	payload, err := c.do(ctx, http.MethodPost, "/api/coupons", coupon)
	if err != nil {
		return nil, err
	}
	var created Coupon
	if err := decodeObject(payload, "coupon", &created); err != nil {
		return nil, fmt.Errorf("create coupon: %w", err)
	}
	return &created, nil
}

func (c *Client) UpdateCoupon(ctx context.Context, id string, coupon *Coupon) (*Coupon, error) {
	payload, err := c.do(ctx, http.MethodPut, "/api/coupons/"+id, coupon)
	if err != nil {
		return nil, err
	}
	var updated Coupon
	if err := decodeObject(payload, "coupon", &updated); err != nil {
		return nil, fmt.Errorf("update coupon %s: %w", id, err)
	}
	return &updated, nil
}

func (c *Client) DeleteCoupon(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/coupons/"+id, nil)
	return err
}
