package client

import (
	"context"
	"net/http"

	"catalog/admin/internal/domain"
)

// GetCart returns the session's cart; the backend creates an empty one on first read.
func (c *catalogClient) GetCart(ctx context.Context) (*domain.Cart, error) {
	cart := domain.Cart{Items: make([]domain.CartItem, 0)}
	if err := c.do(ctx, http.MethodGet, "/product/cart", nil, enveloped, &cart); err != nil {
		return nil, err
	}
	if cart.Items == nil {
		cart.Items = make([]domain.CartItem, 0)
	}
	return &cart, nil
}

func (c *catalogClient) AddToCart(ctx context.Context, productID domain.ID, quantity int) error {
	body := addToCartBody{ProductID: productID, Quantity: quantity}
	return c.do(ctx, http.MethodPost, "/product/addtocart", withJSON(body), enveloped, nil)
}

func (c *catalogClient) ChangeCartItemQuantity(ctx context.Context, itemID domain.ID, quantity int) error {
	body := changeQuantityBody{CartItemID: itemID, Quantity: quantity}
	return c.do(ctx, http.MethodPatch, "/product/cartitem/changequantity", withJSON(body), enveloped, nil)
}

func (c *catalogClient) RemoveCartItem(ctx context.Context, itemID domain.ID) error {
	return c.do(ctx, http.MethodDelete, pathID("/product/cartitem/%s", itemID), nil, enveloped, nil)
}

func (c *catalogClient) ClearCart(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/product/cart", nil, enveloped, nil)
}
