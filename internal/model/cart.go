package model

// CartLine is one menu item at a given quantity, in a cart or an order.
// At most one line per item ID exists in a cart; adding the same item
// again increments the quantity instead of duplicating the line.
type CartLine struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	Quantity            int     `json:"quantity"`
	UnitPrice           float64 `json:"unitPrice"`
	Subtotal            float64 `json:"subtotal"`
	SpecialInstructions string  `json:"specialInstructions,omitempty"`
}

// Cart holds the line items for one session. TotalItems and TotalAmount
// are always derived from Items, never mutated independently.
type Cart struct {
	Items       []CartLine `json:"items"`
	TotalItems  int        `json:"totalItems"`
	TotalAmount float64    `json:"totalAmount"`
}

// EmptyCart returns the zero cart value with a non-nil item list.
func EmptyCart() Cart {
	return Cart{Items: []CartLine{}}
}
