// internal/editor/editor_test.go
package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sectionIDs(s State) []string {
	ids := make([]string, len(s.Sections))
	for i, sec := range s.Sections {
		ids[i] = sec.ID
	}
	return ids
}

func TestDefaultState(t *testing.T) {
	s := DefaultState()
	assert.Equal(t, []string{"navbar", "hero", "benefits", "products", "newsletter", "banner", "footer"}, sectionIDs(s))
	assert.Equal(t, "classic", s.Theme)
	for _, sec := range s.Sections {
		assert.True(t, sec.Visible)
	}
}

func TestMove(t *testing.T) {
	e := New(DefaultState())

	require.NoError(t, e.Move("hero", "newsletter"))
	assert.Equal(t, []string{"navbar", "benefits", "products", "newsletter", "hero", "banner", "footer"}, sectionIDs(e.State()))
	assert.Equal(t, 1, e.UndoDepth())

	// Moving back up inserts at the target's index.
	require.NoError(t, e.Move("hero", "benefits"))
	assert.Equal(t, []string{"navbar", "hero", "benefits", "products", "newsletter", "banner", "footer"}, sectionIDs(e.State()))
	assert.Equal(t, 2, e.UndoDepth())
}

func TestMoveSelfIsNoOp(t *testing.T) {
	e := New(DefaultState())
	require.NoError(t, e.Move("hero", "hero"))
	assert.Equal(t, 0, e.UndoDepth())
	assert.False(t, e.CanUndo())
}

func TestMoveUnknownSection(t *testing.T) {
	e := New(DefaultState())
	err := e.Move("hero", "sidebar")
	assert.ErrorIs(t, err, ErrSectionNotFound)
	assert.Equal(t, 0, e.UndoDepth())

	err = e.Move("sidebar", "hero")
	assert.ErrorIs(t, err, ErrSectionNotFound)
}

func TestSetVisibility(t *testing.T) {
	e := New(DefaultState())

	require.NoError(t, e.SetVisibility("banner", false))
	st := e.State()
	idx := st.indexOf("banner")
	require.GreaterOrEqual(t, idx, 0)
	assert.False(t, st.Sections[idx].Visible)
	assert.Equal(t, 1, e.UndoDepth())

	// Setting the value it already has records no history entry.
	require.NoError(t, e.SetVisibility("banner", false))
	assert.Equal(t, 1, e.UndoDepth())

	assert.ErrorIs(t, e.SetVisibility("sidebar", true), ErrSectionNotFound)
}

func TestSetTheme(t *testing.T) {
	e := New(DefaultState())

	e.SetTheme("noir")
	assert.Equal(t, "noir", e.State().Theme)
	assert.Equal(t, 1, e.UndoDepth())

	// Same theme again is a no-op.
	e.SetTheme("noir")
	assert.Equal(t, 1, e.UndoDepth())
}

func TestUndoRedoRoundTrip(t *testing.T) {
	e := New(DefaultState())

	require.NoError(t, e.Move("hero", "footer"))
	require.NoError(t, e.SetVisibility("banner", false))
	e.SetTheme("noir")

	// Three edits produce three undo entries, and undoing all of them
	// produces three redo entries.
	assert.Equal(t, 3, e.UndoDepth())
	assert.Equal(t, 0, e.RedoDepth())

	for i := 0; i < 3; i++ {
		assert.True(t, e.Undo())
	}
	assert.False(t, e.Undo())
	assert.Equal(t, 0, e.UndoDepth())
	assert.Equal(t, 3, e.RedoDepth())
	assert.Equal(t, DefaultState(), e.State())

	for i := 0; i < 3; i++ {
		assert.True(t, e.Redo())
	}
	assert.False(t, e.Redo())

	st := e.State()
	assert.Equal(t, "noir", st.Theme)
	assert.Equal(t, []string{"navbar", "benefits", "products", "newsletter", "banner", "footer", "hero"}, sectionIDs(st))
}

func TestNewEditClearsRedo(t *testing.T) {
	e := New(DefaultState())

	e.SetTheme("noir")
	e.SetTheme("minimal")
	require.True(t, e.Undo())
	assert.Equal(t, 1, e.RedoDepth())

	// Any fresh edit after an undo forks history and drops the redo stack.
	require.NoError(t, e.SetVisibility("hero", false))
	assert.Equal(t, 0, e.RedoDepth())
	assert.False(t, e.Redo())
	assert.Equal(t, 2, e.UndoDepth())
}

func TestStateReturnsCopy(t *testing.T) {
	e := New(DefaultState())
	st := e.State()
	st.Sections[0].Visible = false
	st.Theme = "mutated"

	fresh := e.State()
	assert.True(t, fresh.Sections[0].Visible)
	assert.Equal(t, "classic", fresh.Theme)
}
