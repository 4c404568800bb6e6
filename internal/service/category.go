package service

import (
	"context"
	"fmt"

	"catalog/admin/internal/catalog"
	"catalog/admin/internal/client"
	"catalog/admin/internal/domain"
	"catalog/admin/internal/validation"
)

// CategoryService edits the classification tree. Every mutation is
// followed by a full re-fetch of the tree.
type CategoryService struct {
	api client.CatalogClient
}

func NewCategoryService(api client.CatalogClient) *CategoryService {
	return &CategoryService{api: api}
}

func (s *CategoryService) Tree(ctx context.Context) (*catalog.Tree, error) {
	categories, err := s.api.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	tree, err := catalog.Build(categories)
	if err != nil {
		return nil, fmt.Errorf("failed to build category tree: %w", err)
	}
	return tree, nil
}

func (s *CategoryService) Create(ctx context.Context, in catalog.CreateInput) (*catalog.Tree, error) {
	req, err := catalog.NewCreateRequest(in)
	if err != nil {
		return nil, err
	}
	if err := s.api.CreateCategory(ctx, req); err != nil {
		return nil, err
	}
	return s.Tree(ctx)
}

func (s *CategoryService) Update(ctx context.Context, in catalog.UpdateInput) (*catalog.Tree, error) {
	req, err := catalog.NewUpdateRequest(in)
	if err != nil {
		return nil, err
	}
	if err := s.api.UpdateCategory(ctx, req); err != nil {
		return nil, err
	}
	return s.Tree(ctx)
}

// Delete removes a node of any level. Nodes with children are not
// refused here; the backend decides.
func (s *CategoryService) Delete(ctx context.Context, id domain.ID) (*catalog.Tree, error) {
	if id.IsZero() {
		return nil, validation.New("id", "required", "")
	}
	if err := s.api.DeleteCategory(ctx, id); err != nil {
		return nil, err
	}
	return s.Tree(ctx)
}
