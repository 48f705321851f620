// internal/models/setting.go
package models

import (
	"github.com/google/uuid"
)

// SiteSetting is one entry of the key -> JSON value map that drives the
// storefront (identity, home sections, contact info, ...), grouped by category.
type SiteSetting struct {
	BaseModel
	Category    string     `json:"category" gorm:"size:60;not null;uniqueIndex:idx_settings_category_key"`
	Key         string     `json:"key" gorm:"size:120;not null;uniqueIndex:idx_settings_category_key"`
	Value       JSONB      `json:"value" gorm:"type:jsonb"`
	Description string     `json:"description" gorm:"size:255"`
	UpdatedBy   *uuid.UUID `json:"updated_by,omitempty" gorm:"type:uuid"`
}

// PageLayout is a persisted snapshot of the visual editor state for one page.
type PageLayout struct {
	BaseModel
	Page     string `json:"page" gorm:"uniqueIndex;size:60;not null"`
	Sections JSONB  `json:"sections" gorm:"type:jsonb"`
	Theme    string `json:"theme" gorm:"size:40;default:'classic'"`
	Version  int    `json:"version" gorm:"default:1"`
}

type AuditLog struct {
	BaseModel
	UserID       *uuid.UUID `json:"user_id,omitempty" gorm:"type:uuid;index"`
	Action       string     `json:"action" gorm:"size:255;not null"`
	ResourceType string     `json:"resource_type" gorm:"size:60;index"`
	ResourceID   *uuid.UUID `json:"resource_id,omitempty" gorm:"type:uuid"`
	IPAddress    string     `json:"ip_address" gorm:"size:45"`
	UserAgent    string     `json:"user_agent" gorm:"size:512"`
	NewValues    JSONB      `json:"new_values" gorm:"type:jsonb"`
}
