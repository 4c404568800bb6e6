package client

import (
	"context"
	"net/http"

	"catalog/admin/internal/domain"
)

func (c *catalogClient) ListPromotions(ctx context.Context) ([]domain.Promotion, error) {
	promotions := make([]domain.Promotion, 0)
	if err := c.do(ctx, http.MethodGet, "/products/promotions", nil, enveloped, &promotions); err != nil {
		return nil, err
	}
	return promotions, nil
}

func (c *catalogClient) GetPromotion(ctx context.Context, id domain.ID) (*domain.Promotion, error) {
	var promotion domain.Promotion
	if err := c.do(ctx, http.MethodGet, pathID("/promotions/%s", id), nil, enveloped, &promotion); err != nil {
		return nil, err
	}
	return &promotion, nil
}

func (c *catalogClient) CreatePromotion(ctx context.Context, req PromotionInput) error {
	return c.do(ctx, http.MethodPost, "/product/promotion", withJSON(req), enveloped, nil)
}

func (c *catalogClient) UpdatePromotion(ctx context.Context, id domain.ID, req PromotionInput) error {
	return c.do(ctx, http.MethodPut, pathID("/promotions/%s", id), withJSON(req), enveloped, nil)
}

func (c *catalogClient) DeletePromotion(ctx context.Context, id domain.ID) error {
	return c.do(ctx, http.MethodDelete, pathID("/product/promotion/%s", id), nil, enveloped, nil)
}

func (c *catalogClient) AttachPromotion(ctx context.Context, req AttachPromotionRequest) error {
	return c.do(ctx, http.MethodPost, "/product/addpromotion", withJSON(req), enveloped, nil)
}

func (c *catalogClient) ListPromotionTypes(ctx context.Context) ([]domain.PromotionType, error) {
	types := make([]domain.PromotionType, 0)
	if err := c.do(ctx, http.MethodGet, "/products/promotiontypes", nil, enveloped, &types); err != nil {
		return nil, err
	}
	return types, nil
}

func (c *catalogClient) GetPromotionType(ctx context.Context, id domain.ID) (*domain.PromotionType, error) {
	var pt domain.PromotionType
	if err := c.do(ctx, http.MethodGet, pathID("/promotion/types/%s", id), nil, enveloped, &pt); err != nil {
		return nil, err
	}
	return &pt, nil
}

func (c *catalogClient) CreatePromotionType(ctx context.Context, req PromotionTypeInput) error {
	return c.do(ctx, http.MethodPost, "/product/promotiontype", withJSON(req), enveloped, nil)
}

func (c *catalogClient) UpdatePromotionType(ctx context.Context, id domain.ID, req PromotionTypeInput) error {
	return c.do(ctx, http.MethodPut, pathID("/promotion/types/%s", id), withJSON(req), enveloped, nil)
}

func (c *catalogClient) DeletePromotionType(ctx context.Context, id domain.ID) error {
	return c.do(ctx, http.MethodDelete, pathID("/product/promotiontype/%s", id), nil, enveloped, nil)
}
