package domain

type Promotion struct {
	ID              ID        `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	PromotionTypeID ID        `json:"promotionTypeId"`
	DiscountRate    float64   `json:"discountRate"`
	DiscountAmount  float64   `json:"discountAmount"`
	Limit           int       `json:"limit"`
	StartDate       Timestamp `json:"startDate"`
	EndDate         Timestamp `json:"endDate"`
}

// PromotionType only groups promotions for display.
type PromotionType struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
