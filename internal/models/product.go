// internal/models/product.go
package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Product struct {
	BaseModel
	Name              string         `json:"name" gorm:"size:255;not null"`
	Slug              string         `json:"slug" gorm:"uniqueIndex;size:255;not null"`
	SKU               string         `json:"sku" gorm:"size:64;index"`
	Description       string         `json:"description" gorm:"type:text"`
	Price             float64        `json:"price" gorm:"type:decimal(10,2);not null"`
	OriginalPrice     *float64       `json:"original_price,omitempty" gorm:"type:decimal(10,2)"`
	CostPrice         *float64       `json:"cost_price,omitempty" gorm:"type:decimal(10,2)"`
	StockQuantity     int            `json:"stock_quantity" gorm:"default:0"`
	LowStockThreshold int            `json:"low_stock_threshold" gorm:"default:3"`
	AllowBackorder    bool           `json:"allow_backorder" gorm:"default:false"`
	IsActive          bool           `json:"is_active" gorm:"default:true;index"`
	IsFeatured        bool           `json:"is_featured" gorm:"default:false"`
	Images            pq.StringArray `json:"images" gorm:"type:text[]"`
	Attributes        JSONB          `json:"attributes" gorm:"type:jsonb"`
	WeightGrams       int            `json:"weight_grams" gorm:"default:0"`
	WidthCM           float64        `json:"width_cm" gorm:"default:0"`
	HeightCM          float64        `json:"height_cm" gorm:"default:0"`
	DepthCM           float64        `json:"depth_cm" gorm:"default:0"`
	BrandID           *uuid.UUID     `json:"brand_id,omitempty" gorm:"type:uuid;index"`
	CategoryID        *uuid.UUID     `json:"category_id,omitempty" gorm:"type:uuid;index"`
	CollectionID      *uuid.UUID     `json:"collection_id,omitempty" gorm:"type:uuid;index"`

	// Relationships
	Brand      *Brand      `json:"brand,omitempty" gorm:"foreignKey:BrandID"`
	Category   *Category   `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Collection *Collection `json:"collection,omitempty" gorm:"foreignKey:CollectionID"`
}

// HasDiscount reports whether the product should render a discount badge.
// The original price is display-only and not enforced against price.
func (p *Product) HasDiscount() bool {
	return p.OriginalPrice != nil && *p.OriginalPrice > p.Price
}

func (p *Product) IsLowStock() bool {
	return p.StockQuantity <= p.LowStockThreshold
}

func (p *Product) IsAvailable(quantity int) bool {
	if p.AllowBackorder {
		return true
	}
	return p.StockQuantity >= quantity
}
