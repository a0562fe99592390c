package api

import (
	"context"
	"fmt"
	"net/http"
)

// Category, Material, and Grade are flat taxonomy entries; the backend
// exposes the same CRUD shape for all three.

type Category struct {
	ID          string `json:"_id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type Material struct {
	ID   string `json:"_id,omitempty"`
	Name string `json:"name"`
}

type Grade struct {
	ID   string `json:"_id,omitempty"`
	Name string `json:"name"`
}

func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	payload, err := c.do(ctx, http.MethodGet, "/api/categories", nil)
	if err != nil {
		return nil, err
	}
	var out []Category
	if err := decodeList(payload, "categories", &out); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return out, nil
}

func (c *Client) CreateCategory(ctx context.Context, cat *Category) (*Category, error) {
	payload, err := c.do(ctx, http.MethodPost, "/api/categories", cat)
	if err != nil {
		return nil, err
	}
	var created Category
	if err := decodeObject(payload, "category", &created); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &created, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id string, cat *Category) (*Category, error) {
	payload, err := c.do(ctx, http.MethodPut, "/api/categories/"+id, cat)
	if err != nil {
		return nil, err
	}
	var updated Category
	if err := decodeObject(payload, "category", &updated); err != nil {
		return nil, fmt.Errorf("update category %s: %w", id, err)
	}
	return &updated, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/categories/"+id, nil)
	return err
}

func (c *Client) ListMaterials(ctx context.Context) ([]Material, error) {
	payload, err := c.do(ctx, http.MethodGet, "/api/materials", nil)
	if err != nil {
		return nil, err
	}
	var out []Material
	if err := decodeList(payload, "materials", &out); err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	return out, nil
}

func (c *Client) CreateMaterial(ctx context.Context, m *Material) (*Material, error) {
	payload, err := c.do(ctx, http.MethodPost, "/api/materials", m)
	if err != nil {
		return nil, err
	}
	var created Material
	if err := decodeObject(payload, "material", &created); err != nil {
		return nil, fmt.Errorf("create material: %w", err)
	}
	return &created, nil
}

func (c *Client) DeleteMaterial(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/materials/"+id, nil)
	return err
}

func (c *Client) ListGrades(ctx context.Context) ([]Grade, error) {
	payload, err := c.do(ctx, http.MethodGet, "/api/grades", nil)
	if err != nil {
		return nil, err
	}
	var out []Grade
	if err := decodeList(payload, "grades", &out); err != nil {
		return nil, fmt.Errorf("list grades: %w", err)
	}
	return out, nil
}

func (c *Client) CreateGrade(ctx context.Context, g *Grade) (*Grade, error) {
	payload, err := c.do(ctx, http.MethodPost, "/api/grades", g)
	if err != nil {
		return nil, err
	}
	var created Grade
	if err := decodeObject(payload, "grade", &created); err != nil {
		return nil, fmt.Errorf("create grade: %w", err)
	}
	return &created, nil
}

func (c *Client) DeleteGrade(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/grades/"+id, nil)
	return err
}
