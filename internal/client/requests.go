package client

import (
	"io"

	"catalog/admin/internal/domain"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

type RegisterRequest struct {
	Username        string `json:"username" validate:"required"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"-" validate:"eqfield=Password"`
	Email           string `json:"email" validate:"required,email"`
}

// File is one part of a multipart upload.
type File struct {
	Name   string
	Reader io.Reader
}

// ProductForm is the multipart create form.
type ProductForm struct {
	Name             string      `validate:"required"`
	Description      string
	UnitPrice        float64     `validate:"gt=0"`
	QuantityInStock  int         `validate:"gte=0"`
	SpecificationIDs []domain.ID `validate:"min=1"`
	Images           []File      `validate:"min=1"`
}

// ProductUpdate is the JSON body of PUT /product/{id}. Keys follow the
// backend's binding names.
type ProductUpdate struct {
	Name                  string      `json:"name" validate:"required"`
	UnitPrice             float64     `json:"UnitPrice" validate:"gt=0"`
	Description           string      `json:"description"`
	QuantityInStock       int         `json:"QuantityInStock" validate:"gte=0"`
	SpecificationIDs      []domain.ID `json:"SpecificationIds" validate:"min=1"`
	ImageURLs             []string    `json:"ImageUrls" validate:"min=1"`
	SpecificationExcelURL string      `json:"SpecificationExcelUrl,omitempty"`
}

type PromotionInput struct {
	Name            string    `json:"name" validate:"required"`
	PromotionTypeID domain.ID `json:"promotionTypeId" validate:"required"`
	Description     string    `json:"description"`
	DiscountRate    float64   `json:"discountRate" validate:"gte=0,lte=100"`
	DiscountAmount  float64   `json:"discountAmount" validate:"gte=0"`
	Limit           int       `json:"limit" validate:"gte=0"`
}

// AttachPromotionRequest attaches one promotion to one product for the
// given window.
type AttachPromotionRequest struct {
	ProductID   domain.ID        `json:"productId" validate:"required"`
	PromotionID domain.ID        `json:"promotionId" validate:"required"`
	StartDate   domain.Timestamp `json:"startDate"`
	EndDate     domain.Timestamp `json:"endDate"`
}

type PromotionTypeInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type addToCartBody struct {
	ProductID domain.ID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

type changeQuantityBody struct {
	CartItemID domain.ID `json:"cartItemId"`
	Quantity   int       `json:"quantity"`
}

type uploadResult struct {
	ImageURLs []string `json:"imageUrls"`
}
