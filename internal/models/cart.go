// internal/models/cart.go
package models

import "github.com/google/uuid"

type CartItem struct {
	BaseModel
	UserID     uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product"`
	ProductID  uuid.UUID `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product"`
	Quantity   int       `json:"quantity" gorm:"not null;default:1"`
	Attributes JSONB     `json:"attributes" gorm:"type:jsonb"`

	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

func (ci *CartItem) Subtotal() float64 {
	return ci.Product.Price * float64(ci.Quantity)
}
