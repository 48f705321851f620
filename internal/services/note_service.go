// internal/services/note_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/alluracouro/allura-backend/internal/models"
	"github.com/alluracouro/allura-backend/internal/utils"
)

// NoteService backs the admin kanban board.
type NoteService struct {
	db *gorm.DB
}

type NoteRequest struct {
	Title   string `json:"title" validate:"required,min=1,max=255"`
	Content string `json:"content,omitempty"`
	Column  string `json:"column" validate:"required,oneof=todo doing done"`
	Color   string `json:"color,omitempty"`
}

type MoveNoteRequest struct {
	Column   string `json:"column" validate:"required,oneof=todo doing done"`
	Position int    `json:"position" validate:"min=0"`
}

func NewNoteService(db *gorm.DB) *NoteService {
	return &NoteService{db: db}
}

// ListBoard returns all notes grouped by column, ordered by position.
func (s *NoteService) ListBoard() (map[string][]models.Note, error) {
	var notes []models.Note
	if err := s.db.Order("board_column ASC, position ASC").Find(&notes).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch notes: %w", err)
	}

	board := map[string][]models.Note{
		"todo":  {},
		"doing": {},
		"done":  {},
	}
	for _, note := range notes {
		board[note.Column] = append(board[note.Column], note)
	}
	return board, nil
}

func (s *NoteService) CreateNote(req *NoteRequest) (*models.Note, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// New cards land at the bottom of their column
	var maxPosition int
	s.db.Model(&models.Note{}).
		Where("board_column = ?", req.Column).
		Select("COALESCE(MAX(position), -1)").
		Scan(&maxPosition)

	note := &models.Note{
		Title:    req.Title,
		Content:  req.Content,
		Column:   req.Column,
		Position: maxPosition + 1,
		Color:    req.Color,
	}
	if err := s.db.Create(note).Error; err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	return note, nil
}

func (s *NoteService) UpdateNote(id uuid.UUID, req *NoteRequest) (*models.Note, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var note models.Note
	if err := s.db.First(&note, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("note not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := map[string]interface{}{
		"title":        req.Title,
		"content":      req.Content,
		"board_column": req.Column,
		"color":        req.Color,
	}
	if err := s.db.Model(&note).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}
	return &note, nil
}

// MoveNote places a card at a position inside a column, shifting later cards
// down by one.
func (s *NoteService) MoveNote(id uuid.UUID, req *MoveNoteRequest) (*models.Note, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var note models.Note
	if err := s.db.First(&note, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("note not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Note{}).
			Where("board_column = ? AND position >= ? AND id <> ?", req.Column, req.Position, id).
			UpdateColumn("position", gorm.Expr("position + 1")).Error; err != nil {
			return fmt.Errorf("failed to shift notes: %w", err)
		}

		return tx.Model(&note).Updates(map[string]interface{}{
			"board_column": req.Column,
			"position":     req.Position,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	note.Column = req.Column
	note.Position = req.Position
	return &note, nil
}

func (s *NoteService) DeleteNote(id uuid.UUID) error {
	result := s.db.Delete(&models.Note{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete note: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("note not found")
	}
	return nil
}
