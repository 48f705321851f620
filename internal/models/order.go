// internal/models/order.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	BaseModel
	UserID         uuid.UUID   `json:"user_id" gorm:"type:uuid;not null;index"`
	Status         OrderStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	Subtotal       float64     `json:"subtotal" gorm:"type:decimal(10,2);not null"`
	DiscountAmount float64     `json:"discount_amount" gorm:"type:decimal(10,2);default:0"`
	ShippingAmount float64     `json:"shipping_amount" gorm:"type:decimal(10,2);default:0"`
	Total          float64     `json:"total" gorm:"type:decimal(10,2);not null"`
	CouponCode     string      `json:"coupon_code,omitempty" gorm:"size:40"`
	ShippingCEP    string      `json:"shipping_cep,omitempty" gorm:"size:9"`
	ShippingInfo   JSONB       `json:"shipping_info" gorm:"type:jsonb"`

	// Relationships
	User     User        `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Items    []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	Payments []Payment   `json:"payments,omitempty" gorm:"foreignKey:OrderID"`
}

type OrderItem struct {
	BaseModel
	OrderID     uuid.UUID `json:"order_id" gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID `json:"product_id" gorm:"type:uuid;not null"`
	ProductName string    `json:"product_name" gorm:"size:255;not null"`
	UnitPrice   float64   `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	Quantity    int       `json:"quantity" gorm:"not null"`
	Attributes  JSONB     `json:"attributes" gorm:"type:jsonb"`

	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// Payment carries the gateway-facing state of an order charge. Status values
// are set directly from gateway callbacks; the gateway is the source of truth
// and no transition checking happens here.
type Payment struct {
	BaseModel
	OrderID           uuid.UUID       `json:"order_id" gorm:"type:uuid;not null;index"`
	Provider          PaymentProvider `json:"provider" gorm:"type:varchar(20);not null"`
	ProviderReference string          `json:"provider_reference" gorm:"size:255;index"`
	Status            PaymentStatus   `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	Amount            float64         `json:"amount" gorm:"type:decimal(10,2);not null"`
	Method            string          `json:"method" gorm:"size:40"`
	Metadata          JSONB           `json:"metadata" gorm:"type:jsonb"`
	PaidAt            *time.Time      `json:"paid_at,omitempty"`

	Order Order `json:"order,omitempty" gorm:"foreignKey:OrderID"`
}
