package models

import "time"

// LineItem is one product's presence in the cart.
type LineItem struct {
	ProductID string     `json:"productId" example:"123"`
	Name      string     `json:"name" example:"Widget"`
	UnitPrice float64    `json:"price" example:"29.99"`
	Quantity  int        `json:"quantity" example:"2"`
	AddedAt   time.Time  `json:"addedAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Subtotal is UnitPrice * Quantity.
func (li LineItem) Subtotal() float64 {
	return li.UnitPrice * float64(li.Quantity)
}

// NewLineItem carries the fields accepted by an add.
type NewLineItem struct {
	ProductID string
	Name      string
	UnitPrice float64
	Quantity  int
}

type CartSummary struct {
	Items     []LineItem `json:"items"`
	Total     float64    `json:"total" example:"59.98"`
	ItemCount int        `json:"itemCount" example:"1"`
}
