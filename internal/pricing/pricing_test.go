package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog/admin/internal/domain"
)

func percent(v float64) *float64 {
	return &v
}

func promo(start, end string, p *float64) domain.ProductPromotion {
	return domain.ProductPromotion{
		Name:            "promo " + start,
		StartDate:       domain.MustParseTimestamp(start),
		EndDate:         domain.MustParseTimestamp(end),
		DiscountPercent: p,
	}
}

func at(value string) time.Time {
	return domain.MustParseTimestamp(value).Time
}

func TestComputeDisplayPriceJanuaryScenario(t *testing.T) {
	product := domain.Product{
		UnitPrice:  100,
		Promotions: []domain.ProductPromotion{promo("2024-01-01", "2024-01-31", percent(20))},
	}

	assert.Equal(t, DisplayPrice{Original: 100, Current: 80, DiscountPercent: 20, HasDiscount: true},
		ComputeDisplayPrice(product, at("2024-01-15")))

	assert.Equal(t, DisplayPrice{Original: 100, Current: 100},
		ComputeDisplayPrice(product, at("2024-02-01")))
}

func TestComputeDisplayPriceBoundariesAreInclusive(t *testing.T) {
	product := domain.Product{
		UnitPrice:  50,
		Promotions: []domain.ProductPromotion{promo("2024-03-01T10:00", "2024-03-02T10:00", percent(10))},
	}

	assert.True(t, ComputeDisplayPrice(product, at("2024-03-01T10:00")).HasDiscount)
	assert.True(t, ComputeDisplayPrice(product, at("2024-03-02T10:00")).HasDiscount)
	assert.False(t, ComputeDisplayPrice(product, at("2024-03-01T10:00").Add(-time.Nanosecond)).HasDiscount)
	assert.False(t, ComputeDisplayPrice(product, at("2024-03-02T10:00").Add(time.Nanosecond)).HasDiscount)
}

func TestComputeDisplayPriceWithoutPromotions(t *testing.T) {
	for _, promos := range [][]domain.ProductPromotion{nil, {}} {
		got := ComputeDisplayPrice(domain.Product{UnitPrice: 12.5, Promotions: promos}, at("2024-01-15"))
		assert.Equal(t, DisplayPrice{Original: 12.5, Current: 12.5}, got)
	}
}

func TestComputeDisplayPriceFirstActiveWins(t *testing.T) {
	product := domain.Product{
		UnitPrice: 200,
		Promotions: []domain.ProductPromotion{
			promo("2023-01-01", "2023-12-31", percent(90)),
			promo("2024-01-01", "2024-12-31", percent(25)),
			promo("2024-01-01", "2024-12-31", percent(50)),
		},
	}

	got := ComputeDisplayPrice(product, at("2024-06-01"))
	assert.True(t, got.HasDiscount)
	assert.Equal(t, 25.0, got.DiscountPercent)
	assert.InDelta(t, 150, got.Current, 1e-9)

	active, ok := ActivePromotion(product.Promotions, at("2024-06-01"))
	require.True(t, ok)
	assert.Same(t, &product.Promotions[1], active)
}

func TestComputeDisplayPriceMissingPercentCountsAsZero(t *testing.T) {
	product := domain.Product{
		UnitPrice:  40,
		Promotions: []domain.ProductPromotion{promo("2024-01-01", "2024-01-31", nil)},
	}

	got := ComputeDisplayPrice(product, at("2024-01-10"))
	assert.Equal(t, DisplayPrice{Original: 40, Current: 40, DiscountPercent: 0, HasDiscount: true}, got)
}

func TestComputeDisplayPriceHasDiscountIffSomeWindowContainsT(t *testing.T) {
	promos := []domain.ProductPromotion{
		promo("2024-01-01", "2024-01-10", percent(5)),
		promo("2024-02-01", "2024-02-10", percent(7.5)),
	}
	product := domain.Product{UnitPrice: 99.99, Promotions: promos}

	for day := at("2023-12-25"); day.Before(at("2024-02-20")); day = day.Add(6 * time.Hour) {
		want := false
		for _, p := range promos {
			if IsActive(p, day) {
				want = true
			}
		}
		got := ComputeDisplayPrice(product, day)
		assert.Equal(t, want, got.HasDiscount, day.String())
		if got.HasDiscount {
			assert.InDelta(t, 99.99*(1-got.DiscountPercent/100), got.Current, 1e-9)
		}
	}
}

func TestIsActiveRequiresBothDates(t *testing.T) {
	p := domain.ProductPromotion{StartDate: domain.MustParseTimestamp("2024-01-01")}
	assert.False(t, IsActive(p, at("2024-06-01")))
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "80.00", FormatPrice(80))
	assert.Equal(t, "0.00", FormatPrice(0))
	assert.Equal(t, "33.33", FormatPrice(100.0/3))
	assert.Equal(t, "19.99", FormatPrice(19.99))
}
