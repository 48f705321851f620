// internal/services/layout_service.go
package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/alluracouro/allura-backend/internal/editor"
	"github.com/alluracouro/allura-backend/internal/models"
)

// LayoutService drives the visual page editor. Each page has one in-memory
// editing session with undo/redo history; Publish persists the session state
// as a new PageLayout version.
type LayoutService struct {
	db *gorm.DB

	mu       sync.Mutex
	sessions map[string]*editor.Editor
}

type LayoutHistory struct {
	CanUndo   bool `json:"can_undo"`
	CanRedo   bool `json:"can_redo"`
	UndoDepth int  `json:"undo_depth"`
	RedoDepth int  `json:"redo_depth"`
}

func NewLayoutService(db *gorm.DB) *LayoutService {
	return &LayoutService{
		db:       db,
		sessions: make(map[string]*editor.Editor),
	}
}

// GetLayout returns the persisted layout for a page, creating the stock one
// on first access.
func (s *LayoutService) GetLayout(page string) (*models.PageLayout, error) {
	var layout models.PageLayout
	err := s.db.Where("page = ?", page).First(&layout).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		state := editor.DefaultState()
		layout = models.PageLayout{
			Page:     page,
			Sections: stateToJSONB(state),
			Theme:    state.Theme,
			Version:  1,
		}
		if err := s.db.Create(&layout).Error; err != nil {
			return nil, fmt.Errorf("failed to create layout: %w", err)
		}
		return &layout, nil
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &layout, nil
}

// SessionState returns the current editor state for a page, starting a
// session from the persisted layout when none exists.
func (s *LayoutService) SessionState(page string) (editor.State, *LayoutHistory, error) {
	ed, err := s.editorFor(page)
	if err != nil {
		return editor.State{}, nil, err
	}
	return ed.State(), historyOf(ed), nil
}

func (s *LayoutService) Move(page, activeID, overID string) (editor.State, *LayoutHistory, error) {
	ed, err := s.editorFor(page)
	if err != nil {
		return editor.State{}, nil, err
	}
	if err := ed.Move(activeID, overID); err != nil {
		return editor.State{}, nil, err
	}
	return ed.State(), historyOf(ed), nil
}

func (s *LayoutService) SetVisibility(page, sectionID string, visible bool) (editor.State, *LayoutHistory, error) {
	ed, err := s.editorFor(page)
	if err != nil {
		return editor.State{}, nil, err
	}
	if err := ed.SetVisibility(sectionID, visible); err != nil {
		return editor.State{}, nil, err
	}
	return ed.State(), historyOf(ed), nil
}

func (s *LayoutService) SetTheme(page, theme string) (editor.State, *LayoutHistory, error) {
	ed, err := s.editorFor(page)
	if err != nil {
		return editor.State{}, nil, err
	}
	ed.SetTheme(theme)
	return ed.State(), historyOf(ed), nil
}

func (s *LayoutService) Undo(page string) (editor.State, *LayoutHistory, bool, error) {
	ed, err := s.editorFor(page)
	if err != nil {
		return editor.State{}, nil, false, err
	}
	ok := ed.Undo()
	return ed.State(), historyOf(ed), ok, nil
}

func (s *LayoutService) Redo(page string) (editor.State, *LayoutHistory, bool, error) {
	ed, err := s.editorFor(page)
	if err != nil {
		return editor.State{}, nil, false, err
	}
	ok := ed.Redo()
	return ed.State(), historyOf(ed), ok, nil
}

// Discard drops the editing session, reverting to the persisted layout.
func (s *LayoutService) Discard(page string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, page)
}

// Publish writes the session state to the page layout and bumps its version.
// The session history is kept so publishing does not break undo.
func (s *LayoutService) Publish(page string) (*models.PageLayout, error) {
	ed, err := s.editorFor(page)
	if err != nil {
		return nil, err
	}
	state := ed.State()

	layout, err := s.GetLayout(page)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"sections": stateToJSONB(state),
		"theme":    state.Theme,
		"version":  layout.Version + 1,
	}
	if err := s.db.Model(layout).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to publish layout: %w", err)
	}

	layout.Sections = stateToJSONB(state)
	layout.Theme = state.Theme
	layout.Version++
	return layout, nil
}

func (s *LayoutService) editorFor(page string) (*editor.Editor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ed, ok := s.sessions[page]; ok {
		return ed, nil
	}

	layout, err := s.GetLayout(page)
	if err != nil {
		return nil, err
	}

	state, err := stateFromLayout(layout)
	if err != nil {
		return nil, err
	}

	ed := editor.New(state)
	s.sessions[page] = ed
	return ed, nil
}

func historyOf(ed *editor.Editor) *LayoutHistory {
	return &LayoutHistory{
		CanUndo:   ed.CanUndo(),
		CanRedo:   ed.CanRedo(),
		UndoDepth: ed.UndoDepth(),
		RedoDepth: ed.RedoDepth(),
	}
}

func stateToJSONB(state editor.State) models.JSONB {
	sections := make([]interface{}, 0, len(state.Sections))
	for _, sec := range state.Sections {
		sections = append(sections, map[string]interface{}{
			"id":      sec.ID,
			"visible": sec.Visible,
		})
	}
	return models.JSONB{"sections": sections}
}

func stateFromLayout(layout *models.PageLayout) (editor.State, error) {
	state := editor.State{Theme: layout.Theme}
	if layout.Sections == nil {
		return editor.DefaultState(), nil
	}

	raw, err := json.Marshal(layout.Sections["sections"])
	if err != nil {
		return editor.State{}, fmt.Errorf("corrupt layout sections: %w", err)
	}
	if err := json.Unmarshal(raw, &state.Sections); err != nil {
		return editor.State{}, fmt.Errorf("corrupt layout sections: %w", err)
	}
	if len(state.Sections) == 0 {
		return editor.DefaultState(), nil
	}
	return state, nil
}
