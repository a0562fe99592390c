package api

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// OrderItem is one line of a placed order, snapshotted at purchase time.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Size      string  `json:"size,omitempty"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// Order is read-mostly from the dashboard's side; only the status moves.
// Fulfillment itself is the backend's business.
type Order struct {
	ID            string      `json:"_id,omitempty"`
	CustomerName  string      `json:"customerName"`
	CustomerEmail string      `json:"customerEmail,omitempty"`
	Items         []OrderItem `json:"items,omitempty"`
	Total         float64     `json:"total"`
	Status        string      `json:"status"`
	CreatedAt     time.Time   `json:"createdAt,omitempty"`
}

func (c *Client) ListOrders(ctx context.Context) ([]Order, error) {
	payload, err := c.do(ctx, http.MethodGet, "/api/orders", nil)
	if err != nil {
		return nil, err
	}
	var out []Order
	if err := decodeList(payload, "orders", &out); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return out, nil
}

func (c *Client) GetOrder(ctx context.Context, id string) (*Order, error) {
	payload, err := c.do(ctx, http.MethodGet, "/api/orders/"+id, nil)
	if err != nil {
		return nil, err
	}
	var o Order
	if err := decodeObject(payload, "order", &o); err != nil {
		return nil, fmt.Errorf("get order %s: %w", id, err)
	}
	return &o, nil
}

// UpdateOrderStatus moves an order to a new status (e.g. shipped).
func (c *Client) UpdateOrderStatus(ctx context.Context, id, status string) (*Order, error) {
	payload, err := c.do(ctx, http.MethodPatch, "/api/orders/"+id+"/status", map[string]string{"status": status})
	if err != nil {
		return nil, err
	}
	var o Order
	if err := decodeObject(payload, "order", &o); err != nil {
		return nil, fmt.Errorf("update order %s status: %w", id, err)
	}
	return &o, nil
}
