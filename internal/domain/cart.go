package domain

type CartItem struct {
	ID          ID       `json:"id"`
	ProductID   ID       `json:"productId"`
	ProductName string   `json:"productName"`
	UnitPrice   float64  `json:"unitPrice"`
	Quantity    int      `json:"quantity"`
	Images      []string `json:"images"`
}

func (i CartItem) Subtotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}

type Cart struct {
	Items []CartItem `json:"items"`
}

// Total is recomputed on every call; the backend never sends one.
func (c Cart) Total() float64 {
	total := 0.0
	for _, item := range c.Items {
		total += item.Subtotal()
	}
	return total
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
