package domain

type Product struct {
	ID                    ID                 `json:"id"`
	Name                  string             `json:"name"`
	Description           string             `json:"description"`
	UnitPrice             float64            `json:"unitPrice"`
	QuantityInStock       int                `json:"quantityInStock"`
	SpecificationIDs      []ID               `json:"specificationIds"`
	ImageURLs             []string           `json:"imageUrls"`
	SpecificationExcelURL string             `json:"specificationExcelUrl,omitempty"`
	Promotions            []ProductPromotion `json:"promotions"`
}

// ProductPromotion is a promotion attached to a product. StartDate and
// EndDate belong to the attachment, not to the promotion definition.
type ProductPromotion struct {
	ID              ID        `json:"id,omitempty"`
	PromotionID     ID        `json:"promotionId,omitempty"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	DiscountPercent *float64  `json:"discountPercent,omitempty"`
	DiscountRate    float64   `json:"discountRate,omitempty"`
	DiscountAmount  float64   `json:"discountAmount,omitempty"`
	StartDate       Timestamp `json:"startDate"`
	EndDate         Timestamp `json:"endDate"`
}

// Page selects a slice of a paginated list. Number starts at 1.
type Page struct {
	Number int
	Size   int
}
