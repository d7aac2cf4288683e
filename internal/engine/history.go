package engine

import (
	"fmt"

	"github.com/hylla/tavla/internal/domain"
)

// History is the single linear undo/redo controller for one board. Entries
// before the cursor are currently applied; entries at or after it have been
// undone and are eligible for redo. The entry slice is append-only except
// for the redo-branch truncation in Execute.
type History struct {
	board   *domain.Board
	entries []Command
	cursor  int
}

// NewHistory constructs an empty history over the given board.
func NewHistory(board *domain.Board) *History {
	return &History{board: board}
}

// Execute applies the command and records it. On success any undone tail is
// discarded (a new edit invalidates the redo future), the captured command
// is appended, and the cursor advances. On failure the history and the board
// are unchanged and the error propagates.
func (h *History) Execute(cmd Command) error {
	if err := cmd.Apply(h.board); err != nil {
		return err
	}
	if err := h.board.Check(); err != nil {
		return fmt.Errorf("after %s: %w", cmd.Label(), err)
	}
	h.entries = append(h.entries[:h.cursor], cmd)
	h.cursor++
	return nil
}

// Undo reverses the most recently applied command. It returns false when
// nothing is applied; that is a defined state, not an error. The original
// entry is left in place for redo.
func (h *History) Undo() (bool, error) {
	if h.cursor == 0 {
		return false, nil
	}
	inverse, err := h.entries[h.cursor-1].Invert()
	if err != nil {
		return false, err
	}
	if err := inverse.Apply(h.board); err != nil {
		return false, err
	}
	if err := h.board.Check(); err != nil {
		return false, fmt.Errorf("after undo %s: %w", inverse.Label(), err)
	}
	h.cursor--
	return true, nil
}

// Redo re-applies the most recently undone command. It returns false when
// nothing has been undone.
func (h *History) Redo() (bool, error) {
	if h.cursor == len(h.entries) {
		return false, nil
	}
	cmd := h.entries[h.cursor]
	if err := cmd.Apply(h.board); err != nil {
		return false, err
	}
	if err := h.board.Check(); err != nil {
		return false, fmt.Errorf("after redo %s: %w", cmd.Label(), err)
	}
	h.entries[h.cursor] = cmd
	h.cursor++
	return true, nil
}

// CanUndo reports whether any applied command remains.
func (h *History) CanUndo() bool {
	return h.cursor > 0
}

// CanRedo reports whether any undone command remains.
func (h *History) CanRedo() bool {
	return h.cursor < len(h.entries)
}

// Len returns the total number of recorded commands, applied or undone.
func (h *History) Len() int {
	return len(h.entries)
}

// Cursor returns how many recorded commands are currently applied.
func (h *History) Cursor() int {
	return h.cursor
}

// LastLabel describes the command an Undo would reverse, or "" when none.
func (h *History) LastLabel() string {
	if h.cursor == 0 {
		return ""
	}
	return h.entries[h.cursor-1].Label()
}

// NextLabel describes the command a Redo would re-apply, or "" when none.
func (h *History) NextLabel() string {
	if h.cursor == len(h.entries) {
		return ""
	}
	return h.entries[h.cursor].Label()
}

// Reset drops all recorded commands, for use after the board is replaced
// wholesale (snapshot import).
func (h *History) Reset() {
	h.entries = nil
	h.cursor = 0
}
