package api

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// SizeVariant is one per-size pricing entry. Each variant carries the full
// price triple; the consistency rule is enforced client-side by the pricing
// package before a product is sent.
type SizeVariant struct {
	Size            string  `json:"size"`
	OriginalPrice   float64 `json:"originalPrice"`
	DiscountPercent float64 `json:"discountPercent"`
	SellingPrice    float64 `json:"sellingPrice"`
}

// Product is the catalog entry managed by the dashboard.
type Product struct {
	ID              string        `json:"_id,omitempty"`
	Name            string        `json:"name"`
	Description     string        `json:"description,omitempty"`
	Category        string        `json:"category,omitempty"`
	Material        string        `json:"material,omitempty"`
	Grade           string        `json:"grade,omitempty"`
	OriginalPrice   float64       `json:"originalPrice"`
	DiscountPercent float64       `json:"discountPercent"`
	SellingPrice    float64       `json:"sellingPrice"`
	Sizes           []SizeVariant `json:"sizes,omitempty"`
	InStock         bool          `json:"inStock"`
	Images          []string      `json:"images,omitempty"`
	CreatedAt       time.Time     `json:"createdAt,omitempty"`
	UpdatedAt       time.Time     `json:"updatedAt,omitempty"`
}

// ListProducts fetches the full product list.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	payload, err := c.do(ctx, http.MethodGet, "/api/products", nil)
	if err != nil {
		return nil, err
	}
	var products []Product
	if err := decodeList(payload, "products", &products); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// GetProduct fetches one product by id.
func (c *Client) GetProduct(ctx context.Context, id string) (*Product, error) {
	payload, err := c.do(ctx, http.MethodGet, "/api/products/"+id, nil)
	if err != nil {
		return nil, err
	}
	var p Product
	if err := decodeObject(payload, "product", &p); err != nil {
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}
	return &p, nil
}

// CreateProduct adds a product and returns the stored record.
func (c *Client) CreateProduct(ctx context.Context, p *Product) (*Product, error) {
	payload, err := c.do(ctx, http.MethodPost, "/api/products", p)
	if err != nil {
		return nil, err
	}
	var created Product
	if err := decodeObject(payload, "product", &created); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return &created, nil
}

// UpdateProduct replaces a product by id.
func (c *Client) UpdateProduct(ctx context.Context, id string, p *Product) (*Product, error) {
	payload, err := c.do(ctx, http.MethodPut, "/api/products/"+id, p)
	if err != nil {
		return nil, err
	}
	var updated Product
	if err := decodeObject(payload, "product", &updated); err != nil {
		return nil, fmt.Errorf("update product %s: %w", id, err)
	}
	return &updated, nil
}

// DeleteProduct removes a product by id.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/products/"+id, nil)
	return err
}
