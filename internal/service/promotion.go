package service

import (
	"context"
	"fmt"

	"catalog/admin/internal/client"
	"catalog/admin/internal/domain"
	"catalog/admin/internal/validation"
)

type PromotionService struct {
	api client.CatalogClient
}

func NewPromotionService(api client.CatalogClient) *PromotionService {
	return &PromotionService{api: api}
}

func (s *PromotionService) List(ctx context.Context) ([]domain.Promotion, error) {
	promotions, err := s.api.ListPromotions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list promotions: %w", err)
	}
	return promotions, nil
}

func (s *PromotionService) Get(ctx context.Context, id domain.ID) (*domain.Promotion, error) {
	if id.IsZero() {
		return nil, validation.New("id", "required", "")
	}
	return s.api.GetPromotion(ctx, id)
}

func (s *PromotionService) Create(ctx context.Context, in client.PromotionInput) ([]domain.Promotion, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if err := s.api.CreatePromotion(ctx, in); err != nil {
		return nil, err
	}
	return s.List(ctx)
}

func (s *PromotionService) Update(ctx context.Context, id domain.ID, in client.PromotionInput) ([]domain.Promotion, error) {
	if id.IsZero() {
		return nil, validation.New("id", "required", "")
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if err := s.api.UpdatePromotion(ctx, id, in); err != nil {
		return nil, err
	}
	return s.List(ctx)
}

func (s *PromotionService) Delete(ctx context.Context, id domain.ID) ([]domain.Promotion, error) {
	if id.IsZero() {
		return nil, validation.New("id", "required", "")
	}
	if err := s.api.DeletePromotion(ctx, id); err != nil {
		return nil, err
	}
	return s.List(ctx)
}

type PromotionTypeService struct {
	api client.CatalogClient
}

func NewPromotionTypeService(api client.CatalogClient) *PromotionTypeService {
	return &PromotionTypeService{api: api}
}

func (s *PromotionTypeService) List(ctx context.Context) ([]domain.PromotionType, error) {
	types, err := s.api.ListPromotionTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list promotion types: %w", err)
	}
	return types, nil
}

func (s *PromotionTypeService) Get(ctx context.Context, id domain.ID) (*domain.PromotionType, error) {
	if id.IsZero() {
		return nil, validation.New("id", "required", "")
	}
	return s.api.GetPromotionType(ctx, id)
}

func (s *PromotionTypeService) Create(ctx context.Context, in client.PromotionTypeInput) ([]domain.PromotionType, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if err := s.api.CreatePromotionType(ctx, in); err != nil {
		return nil, err
	}
	return s.List(ctx)
}

func (s *PromotionTypeService) Update(ctx context.Context, id domain.ID, in client.PromotionTypeInput) ([]domain.PromotionType, error) {
	if id.IsZero() {
		return nil, validation.New("id", "required", "")
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if err := s.api.UpdatePromotionType(ctx, id, in); err != nil {
		return nil, err
	}
	return s.List(ctx)
}

func (s *PromotionTypeService) Delete(ctx context.Context, id domain.ID) ([]domain.PromotionType, error) {
	if id.IsZero() {
		return nil, validation.New("id", "required", "")
	}
	if err := s.api.DeletePromotionType(ctx, id); err != nil {
		return nil, err
	}
	return s.List(ctx)
}
