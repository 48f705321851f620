// internal/models/note.go
package models

// Note is a card on the back-office kanban board.
type Note struct {
	BaseModel
	Title    string `json:"title" gorm:"size:255;not null"`
	Content  string `json:"content" gorm:"type:text"`
	Column   string `json:"column" gorm:"column:board_column;size:40;default:'todo';index"`
	Position int    `json:"position" gorm:"default:0"`
	Color    string `json:"color" gorm:"size:20"`
}
