package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"catalog/admin/internal/client"
	"catalog/admin/internal/domain"
	"catalog/admin/internal/pricing"
	"catalog/admin/internal/validation"
	"catalog/admin/internal/workflow"
)

// ProductView is a product together with the price it is shown at.
type ProductView struct {
	Product domain.Product
	Price   pricing.DisplayPrice
}

// AttachInput links promotions to a product for a time window. Only the
// first promotion is submitted.
type AttachInput struct {
	ProductID    domain.ID        `validate:"required"`
	PromotionIDs []domain.ID      `validate:"min=1"`
	StartDate    domain.Timestamp `validate:"required"`
	EndDate      domain.Timestamp `validate:"required"`
}

type ProductService struct {
	api      client.CatalogClient
	save     *workflow.ProductSave
	pageSize int
	now      func() time.Time
}

func NewProductService(api client.CatalogClient, save *workflow.ProductSave, pageSize int) *ProductService {
	return &ProductService{
		api:      api,
		save:     save,
		pageSize: pageSize,
		now:      time.Now,
	}
}

// DisplayPrice evaluates the product's promotions at the current time.
func (s *ProductService) DisplayPrice(p domain.Product) pricing.DisplayPrice {
	return pricing.ComputeDisplayPrice(p, s.now())
}

// List returns one page of products. Page numbers start at 1; a zero
// size uses the configured page size.
func (s *ProductService) List(ctx context.Context, page domain.Page) ([]ProductView, error) {
	if page.Number < 1 {
		page.Number = 1
	}
	if page.Size < 1 {
		page.Size = s.pageSize
	}

	products, err := s.api.ListProducts(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, ProductView{Product: p, Price: s.DisplayPrice(p)})
	}
	return views, nil
}

func (s *ProductService) Get(ctx context.Context, id domain.ID) (*ProductView, error) {
	if id.IsZero() {
		return nil, validation.New("id", "required", "")
	}
	p, err := s.api.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ProductView{Product: *p, Price: s.DisplayPrice(*p)}, nil
}

func (s *ProductService) Create(ctx context.Context, form client.ProductForm) error {
	if err := validation.Struct(form); err != nil {
		return err
	}
	return s.api.CreateProduct(ctx, form)
}

// Save edits a product through the upload workflow and re-reads it.
func (s *ProductService) Save(ctx context.Context, in workflow.SaveInput) (*ProductView, error) {
	if _, err := s.save.Run(ctx, in); err != nil {
		return nil, err
	}
	return s.Get(ctx, in.ProductID)
}

func (s *ProductService) Delete(ctx context.Context, id domain.ID) error {
	if id.IsZero() {
		return validation.New("id", "required", "")
	}
	return s.api.DeleteProduct(ctx, id)
}

func (s *ProductService) AttachPromotion(ctx context.Context, in AttachInput) (*ProductView, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if !in.EndDate.After(in.StartDate.Time) {
		return nil, validation.New("endDate", "gtfield", "StartDate")
	}

	err := s.api.AttachPromotion(ctx, client.AttachPromotionRequest{
		ProductID:   in.ProductID,
		PromotionID: in.PromotionIDs[0],
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, in.ProductID)
}

// IsValidation reports whether err was raised before any request was sent.
func IsValidation(err error) bool {
	return errors.Is(err, validation.ErrInvalid)
}
