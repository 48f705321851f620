// internal/models/coupon.go
package models

import "time"

type Coupon struct {
	BaseModel
	Code          string       `json:"code" gorm:"uniqueIndex;size:40;not null"`
	Description   string       `json:"description" gorm:"size:255"`
	DiscountType  DiscountType `json:"discount_type" gorm:"type:varchar(20);not null"`
	Value         float64      `json:"value" gorm:"type:decimal(10,2);not null"`
	MaxUses       *int         `json:"max_uses,omitempty"`
	UsedCount     int          `json:"used_count" gorm:"default:0"`
	StartsAt      *time.Time   `json:"starts_at,omitempty"`
	ExpiresAt     *time.Time   `json:"expires_at,omitempty"`
	MinOrderValue float64      `json:"min_order_value" gorm:"type:decimal(10,2);default:0"`
	IsActive      bool         `json:"is_active" gorm:"default:true;index"`
}
