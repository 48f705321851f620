// internal/editor/editor.go
package editor

import (
	"errors"
	"fmt"
)

// Section is one reorderable block of a storefront page.
type Section struct {
	ID      string `json:"id"`
	Visible bool   `json:"visible"`
}

// State is a whole-page snapshot: ordered sections plus the theme selection.
type State struct {
	Sections []Section `json:"sections"`
	Theme    string    `json:"theme"`
}

var ErrSectionNotFound = errors.New("section not found")

// DefaultState returns the stock home page layout.
func DefaultState() State {
	ids := []string{"navbar", "hero", "benefits", "products", "newsletter", "banner", "footer"}
	sections := make([]Section, len(ids))
	for i, id := range ids {
		sections[i] = Section{ID: id, Visible: true}
	}
	return State{Sections: sections, Theme: "classic"}
}

func (s State) clone() State {
	out := State{Theme: s.Theme, Sections: make([]Section, len(s.Sections))}
	copy(out.Sections, s.Sections)
	return out
}

func (s State) indexOf(id string) int {
	for i, sec := range s.Sections {
		if sec.ID == id {
			return i
		}
	}
	return -1
}

// Editor owns the page state with a linear undo/redo history of whole-state
// snapshots. Any new edit after an undo discards the redo stack.
type Editor struct {
	current State
	undo    []State
	redo    []State
}

func New(initial State) *Editor {
	return &Editor{current: initial.clone()}
}

// State returns a copy of the current snapshot.
func (e *Editor) State() State {
	return e.current.clone()
}

func (e *Editor) snapshot() {
	e.undo = append(e.undo, e.current.clone())
	e.redo = nil
}

// Move reorders sections with drag semantics: the section activeID is removed
// at its source index and inserted at overID's index. Moving a section onto
// itself is a no-op and records no history entry.
func (e *Editor) Move(activeID, overID string) error {
	if activeID == overID {
		return nil
	}

	from := e.current.indexOf(activeID)
	if from < 0 {
		return fmt.Errorf("%w: %s", ErrSectionNotFound, activeID)
	}
	to := e.current.indexOf(overID)
	if to < 0 {
		return fmt.Errorf("%w: %s", ErrSectionNotFound, overID)
	}

	e.snapshot()

	sections := e.current.Sections
	moved := sections[from]
	sections = append(sections[:from], sections[from+1:]...)
	sections = append(sections[:to], append([]Section{moved}, sections[to:]...)...)
	e.current.Sections = sections
	return nil
}

// SetVisibility toggles a section without changing its position.
func (e *Editor) SetVisibility(id string, visible bool) error {
	idx := e.current.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrSectionNotFound, id)
	}
	if e.current.Sections[idx].Visible == visible {
		return nil
	}

	e.snapshot()
	e.current.Sections[idx].Visible = visible
	return nil
}

func (e *Editor) SetTheme(theme string) {
	if e.current.Theme == theme {
		return
	}
	e.snapshot()
	e.current.Theme = theme
}

func (e *Editor) CanUndo() bool { return len(e.undo) > 0 }
func (e *Editor) CanRedo() bool { return len(e.redo) > 0 }

// Undo steps back one edit. Returns false when there is nothing to undo.
func (e *Editor) Undo() bool {
	if len(e.undo) == 0 {
		return false
	}
	e.redo = append(e.redo, e.current)
	e.current = e.undo[len(e.undo)-1]
	e.undo = e.undo[:len(e.undo)-1]
	return true
}

// Redo reapplies the last undone edit. Returns false when the redo stack is
// empty.
func (e *Editor) Redo() bool {
	if len(e.redo) == 0 {
		return false
	}
	e.undo = append(e.undo, e.current)
	e.current = e.redo[len(e.redo)-1]
	e.redo = e.redo[:len(e.redo)-1]
	return true
}

// UndoDepth and RedoDepth expose history sizes for the editor toolbar.
func (e *Editor) UndoDepth() int { return len(e.undo) }
func (e *Editor) RedoDepth() int { return len(e.redo) }
