package models

type AddItemRequest struct {
	ProductID string    `json:"productId" form:"productId" example:"123"`
	Name      string    `json:"name" form:"name" example:"Widget"`
	Price     FlexFloat `json:"price" form:"price" swaggertype:"number" example:"29.99"`
	Quantity  FlexInt   `json:"quantity" form:"quantity" swaggertype:"integer" example:"2"`
}

func (r AddItemRequest) LineItem() NewLineItem {
	return NewLineItem{
		ProductID: r.ProductID,
		Name:      r.Name,
		UnitPrice: float64(r.Price),
		Quantity:  int(r.Quantity),
	}
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" form:"quantity" example:"5"`
}
