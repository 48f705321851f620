// internal/models/taxonomy.go
package models

import "time"

type Brand struct {
	BaseModel
	Name         string `json:"name" gorm:"size:120;not null"`
	Slug         string `json:"slug" gorm:"uniqueIndex;size:160;not null"`
	Description  string `json:"description" gorm:"type:text"`
	LogoURL      string `json:"logo_url" gorm:"size:512"`
	DisplayOrder int    `json:"display_order" gorm:"default:0"`
	IsActive     bool   `json:"is_active" gorm:"default:true;index"`

	Products []Product `json:"products,omitempty" gorm:"foreignKey:BrandID"`
}

type Category struct {
	BaseModel
	Name         string `json:"name" gorm:"size:120;not null"`
	Slug         string `json:"slug" gorm:"uniqueIndex;size:160;not null"`
	Description  string `json:"description" gorm:"type:text"`
	ImageURL     string `json:"image_url" gorm:"size:512"`
	DisplayOrder int    `json:"display_order" gorm:"default:0"`
	IsActive     bool   `json:"is_active" gorm:"default:true;index"`

	Products []Product `json:"products,omitempty" gorm:"foreignKey:CategoryID"`
}

type Collection struct {
	BaseModel
	Name            string     `json:"name" gorm:"size:120;not null"`
	Slug            string     `json:"slug" gorm:"uniqueIndex;size:160;not null"`
	Description     string     `json:"description" gorm:"type:text"`
	BannerURL       string     `json:"banner_url" gorm:"size:512"`
	DisplayOrder    int        `json:"display_order" gorm:"default:0"`
	IsActive        bool       `json:"is_active" gorm:"default:true;index"`
	HighlightOnHome bool       `json:"highlight_on_home" gorm:"default:false"`
	StartsAt        *time.Time `json:"starts_at,omitempty"`
	EndsAt          *time.Time `json:"ends_at,omitempty"`

	Products []Product `json:"products,omitempty" gorm:"foreignKey:CollectionID"`
}

// CurrentlyVisible reports whether the collection falls inside its display
// window at the given instant. A nil bound is open-ended.
func (c *Collection) CurrentlyVisible(now time.Time) bool {
	if !c.IsActive {
		return false
	}
	if c.StartsAt != nil && now.Before(*c.StartsAt) {
		return false
	}
	if c.EndsAt != nil && now.After(*c.EndsAt) {
		return false
	}
	return true
}
