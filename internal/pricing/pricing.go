// Package pricing derives the price shown for a product from the
// promotions attached to it.
package pricing

import (
	"strconv"
	"time"

	"catalog/admin/internal/domain"
)

// DisplayPrice is what a product page shows.
type DisplayPrice struct {
	Original        float64 `json:"original"`
	Current         float64 `json:"current"`
	DiscountPercent float64 `json:"discountPercent"`
	HasDiscount     bool    `json:"hasDiscount"`
}

// IsActive reports whether the attachment window contains at. Both ends
// are inclusive. An attachment missing either date is never active.
func IsActive(p domain.ProductPromotion, at time.Time) bool {
	if p.StartDate.IsZero() || p.EndDate.IsZero() {
		return false
	}
	return !at.Before(p.StartDate.Time) && !at.After(p.EndDate.Time)
}

// ActivePromotion returns the first active promotion in slice order.
// Overlapping promotions do not stack.
func ActivePromotion(promotions []domain.ProductPromotion, at time.Time) (*domain.ProductPromotion, bool) {
	for i := range promotions {
		if IsActive(promotions[i], at) {
			return &promotions[i], true
		}
	}
	return nil, false
}

func ComputeDisplayPrice(product domain.Product, at time.Time) DisplayPrice {
	price := DisplayPrice{
		Original: product.UnitPrice,
		Current:  product.UnitPrice,
	}

	active, ok := ActivePromotion(product.Promotions, at)
	if !ok {
		return price
	}

	percent := 0.0
	if active.DiscountPercent != nil {
		percent = *active.DiscountPercent
	}

	price.DiscountPercent = percent
	price.Current = product.UnitPrice * (1 - percent/100)
	price.HasDiscount = true
	return price
}

// FormatPrice renders a price with two decimals. No other rounding is applied anywhere.
func FormatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
