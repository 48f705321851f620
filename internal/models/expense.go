// internal/models/expense.go
package models

import "time"

type Expense struct {
	BaseModel
	Description string    `json:"description" gorm:"size:255;not null"`
	Amount      float64   `json:"amount" gorm:"type:decimal(10,2);not null"`
	Category    string    `json:"category" gorm:"size:60;index"`
	IncurredAt  time.Time `json:"incurred_at" gorm:"not null;index"`
	Notes       string    `json:"notes" gorm:"type:text"`
}
