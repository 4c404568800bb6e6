package client

import (
	"context"
	"fmt"
	"net/http"

	"catalog/admin/internal/catalog"
	"catalog/admin/internal/domain"
)

// createPaths routes a creation to the endpoint of its level.
var createPaths = map[domain.Level]string{
	domain.LevelCategory:      "/product/category",
	domain.LevelSubCategory:   "/product/subcategory",
	domain.LevelSpecification: "/product/specification",
}

func (c *catalogClient) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories := make([]domain.Category, 0)
	if err := c.do(ctx, http.MethodGet, "/products/categories", nil, enveloped, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *catalogClient) CreateCategory(ctx context.Context, req *catalog.CreateRequest) error {
	path, ok := createPaths[req.Level]
	if !ok {
		return fmt.Errorf("no creation endpoint for level %d", req.Level)
	}
	return c.do(ctx, http.MethodPost, path, withJSON(req.Body), enveloped, nil)
}

// UpdateCategory and DeleteCategory address any level; the backend resolves it from the id.
func (c *catalogClient) UpdateCategory(ctx context.Context, req *catalog.UpdateRequest) error {
	return c.do(ctx, http.MethodPut, pathID("/categories/%s", req.ID), withJSON(req.Body), enveloped, nil)
}

func (c *catalogClient) DeleteCategory(ctx context.Context, id domain.ID) error {
	return c.do(ctx, http.MethodDelete, pathID("/categories/%s", id), nil, enveloped, nil)
}
