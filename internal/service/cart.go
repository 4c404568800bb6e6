package service

import (
	"context"
	"strconv"

	log "github.com/sirupsen/logrus"

	"catalog/admin/internal/client"
	"catalog/admin/internal/domain"
	"catalog/admin/internal/validation"
)

// maxQuantityUnknownStock bounds an add-to-cart when the product reports no stock figure.
const maxQuantityUnknownStock = 99

// CartService edits the session's cart. Each mutation returns the cart as
// re-read from the backend, so totals always match the server.
type CartService struct {
	api client.CatalogClient
}

func NewCartService(api client.CatalogClient) *CartService {
	return &CartService{api: api}
}

func (s *CartService) Get(ctx context.Context) (*domain.Cart, error) {
	return s.api.GetCart(ctx)
}

// Add puts quantity units of a product in the cart. The quantity is
// bounded by the product's stock.
func (s *CartService) Add(ctx context.Context, productID domain.ID, quantity int) (*domain.Cart, error) {
	if productID.IsZero() {
		return nil, validation.New("productId", "required", "")
	}
	if quantity < 1 {
		return nil, validation.New("quantity", "min", "1")
	}

	product, err := s.api.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	limit := product.QuantityInStock
	if limit <= 0 {
		limit = maxQuantityUnknownStock
	}
	if quantity > limit {
		return nil, validation.New("quantity", "max", strconv.Itoa(limit))
	}

	if err := s.api.AddToCart(ctx, productID, quantity); err != nil {
		return nil, err
	}
	return s.api.GetCart(ctx)
}

func (s *CartService) ChangeQuantity(ctx context.Context, itemID domain.ID, quantity int) (*domain.Cart, error) {
	if itemID.IsZero() {
		return nil, validation.New("cartItemId", "required", "")
	}
	if quantity < 1 {
		return nil, validation.New("quantity", "min", "1")
	}
	if err := s.api.ChangeCartItemQuantity(ctx, itemID, quantity); err != nil {
		return nil, err
	}
	return s.api.GetCart(ctx)
}

func (s *CartService) Remove(ctx context.Context, itemID domain.ID) (*domain.Cart, error) {
	if itemID.IsZero() {
		return nil, validation.New("cartItemId", "required", "")
	}
	if err := s.api.RemoveCartItem(ctx, itemID); err != nil {
		return nil, err
	}
	return s.api.GetCart(ctx)
}

// Clear empties the cart. Clearing an already empty or missing cart succeeds.
func (s *CartService) Clear(ctx context.Context) (*domain.Cart, error) {
	if err := s.api.ClearCart(ctx); err != nil {
		if !client.IsNotFound(err) {
			return nil, err
		}
		log.Debugf("Cart already gone: %v", err)
	}
	return s.api.GetCart(ctx)
}
