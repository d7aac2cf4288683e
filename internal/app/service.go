package app

import (
	"fmt"
	"io"
	"time"

	charmLog "github.com/charmbracelet/log"
	"github.com/hylla/tavla/internal/domain"
	"github.com/hylla/tavla/internal/engine"
)

// Clock returns the current time.
type Clock func() time.Time

// Service owns one board, its command history, and the persistence port.
// Every mutation goes through the history so it can be undone; the service
// itself never touches the board directly.
type Service struct {
	board   *domain.Board
	history *engine.History
	store   Store
	clock   Clock
	logger  *charmLog.Logger
}

// NewService loads the board from the store and wires a fresh history over
// it. A nil logger disables logging; a nil clock defaults to time.Now.
func NewService(store Store, clock Clock, logger *charmLog.Logger) (*Service, error) {
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = charmLog.New(io.Discard)
	}
	board, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load board: %w", err)
	}
	board.Normalize()
	if err := board.Check(); err != nil {
		return nil, err
	}
	logger.Debug("board loaded", "lists", board.ListCount(), "items", board.TotalItemCount())
	return &Service{
		board:   board,
		history: engine.NewHistory(board),
		store:   store,
		clock:   clock,
		logger:  logger,
	}, nil
}

// EnsureSeedList appends a list with the given name when the board is empty,
// through the command engine like every other structural change.
func (s *Service) EnsureSeedList(name string) error {
	if s.board.ListCount() > 0 {
		return nil
	}
	s.logger.Info("seeding empty board", "list", name)
	return s.execute(engine.AddList(0, name))
}

// AddList appends a new empty list at the end of the tab order.
func (s *Service) AddList(name string) error {
	return s.execute(engine.AddList(s.board.ListCount(), name))
}

// InsertList inserts a new empty list at index.
func (s *Service) InsertList(index int, name string) error {
	return s.execute(engine.AddList(index, name))
}

// DeleteList removes the list at index. Only an empty list may be deleted;
// callers see domain.ErrNotEmpty otherwise and nothing changes.
func (s *Service) DeleteList(index int) error {
	return s.execute(engine.RemoveList(index))
}

// RenameList renames the list at index.
func (s *Service) RenameList(index int, name string) error {
	return s.execute(engine.RenameList(index, name))
}

// MoveList reorders the list at from to to, post-removal indexing.
func (s *Service) MoveList(from, to int) error {
	return s.execute(engine.MoveList(from, to))
}

// PromoteList moves the list at index to the front of the tab order.
func (s *Service) PromoteList(index int) error {
	if index == 0 {
		return nil
	}
	return s.execute(engine.MoveList(index, 0))
}

// AddItem appends an item to the end of the list at listIndex.
func (s *Service) AddItem(listIndex int, text string) error {
	n, err := s.board.ItemCount(listIndex)
	if err != nil {
		return err
	}
	return s.execute(engine.InsertItem(listIndex, n, text))
}

// InsertItem inserts an item at itemIndex in the list at listIndex.
func (s *Service) InsertItem(listIndex, itemIndex int, text string) error {
	return s.execute(engine.InsertItem(listIndex, itemIndex, text))
}

// DeleteItem removes the item at itemIndex from the list at listIndex.
func (s *Service) DeleteItem(listIndex, itemIndex int) error {
	return s.execute(engine.RemoveItem(listIndex, itemIndex))
}

// EditItem replaces one item's text.
func (s *Service) EditItem(listIndex, itemIndex int, text string) error {
	return s.execute(engine.SetItemText(listIndex, itemIndex, text))
}

// MoveItem reorders one item within its list, post-removal indexing.
func (s *Service) MoveItem(listIndex, from, to int) error {
	return s.execute(engine.MoveItem(listIndex, from, to))
}

// PromoteItem moves the item at itemIndex to the top of its list.
func (s *Service) PromoteItem(listIndex, itemIndex int) error {
	if itemIndex == 0 {
		return nil
	}
	return s.execute(engine.MoveItem(listIndex, itemIndex, 0))
}

// TransferItem moves one item between lists.
func (s *Service) TransferItem(srcList, srcIndex, dstList, dstIndex int) error {
	return s.execute(engine.TransferItem(srcList, srcIndex, dstList, dstIndex))
}

// Undo reverses the most recent mutation. False means nothing to undo.
func (s *Service) Undo() (bool, error) {
	label := s.history.LastLabel()
	ok, err := s.history.Undo()
	if err != nil {
		s.logger.Error("undo failed", "op", label, "err", err)
		return false, err
	}
	if ok {
		s.logger.Info("undo", "op", label)
	}
	return ok, nil
}

// Redo re-applies the most recently undone mutation. False means nothing to
// redo.
func (s *Service) Redo() (bool, error) {
	label := s.history.NextLabel()
	ok, err := s.history.Redo()
	if err != nil {
		s.logger.Error("redo failed", "op", label, "err", err)
		return false, err
	}
	if ok {
		s.logger.Info("redo", "op", label)
	}
	return ok, nil
}

// CanUndo reports whether an undo would do anything.
func (s *Service) CanUndo() bool { return s.history.CanUndo() }

// CanRedo reports whether a redo would do anything.
func (s *Service) CanRedo() bool { return s.history.CanRedo() }

// UndoLabel describes the next undo target for status lines.
func (s *Service) UndoLabel() string { return s.history.LastLabel() }

// RedoLabel describes the next redo target for status lines.
func (s *Service) RedoLabel() string { return s.history.NextLabel() }

// Board returns a deep copy of the current board for rendering. Callers
// never get a live reference; all mutation flows through commands.
func (s *Service) Board() *domain.Board {
	return s.board.Clone()
}

// Save persists the full board state through the store.
func (s *Service) Save() error {
	if err := s.store.Save(s.board); err != nil {
		s.logger.Error("save failed", "err", err)
		return fmt.Errorf("save board: %w", err)
	}
	s.logger.Info("board saved", "lists", s.board.ListCount(), "items", s.board.TotalItemCount())
	return nil
}

func (s *Service) execute(cmd engine.Command) error {
	if err := s.history.Execute(cmd); err != nil {
		s.logger.Warn("command rejected", "op", cmd.Label(), "err", err)
		return err
	}
	s.logger.Debug("command applied", "op", cmd.Label(), "history_len", s.history.Len())
	return nil
}
