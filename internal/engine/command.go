// Package engine implements the reversible command set and the linear
// undo/redo history that drive every board mutation.
package engine

import (
	"errors"
	"fmt"

	"github.com/hylla/tavla/internal/domain"
)

// Op identifies one command variant. The set is closed: one variant per
// board primitive, dispatched exhaustively in Apply and Invert.
type Op string

const (
	OpAddList      Op = "add-list"
	OpRemoveList   Op = "remove-list"
	OpRenameList   Op = "rename-list"
	OpMoveList     Op = "move-list"
	OpInsertItem   Op = "insert-item"
	OpRemoveItem   Op = "remove-item"
	OpSetItemText  Op = "set-item-text"
	OpMoveItem     Op = "move-item"
	OpTransferItem Op = "transfer-item"
)

var (
	ErrUnknownOp  = errors.New("unknown command op")
	ErrNotApplied = errors.New("command has not been applied")
)

// Command is one reversible board mutation. It is constructed with argument
// fields only; Apply captures whatever its inverse needs (replaced text, the
// index a move vacated) into the saved fields. Commands use value semantics:
// History keeps the captured copy, so a stored command is immutable once
// executed.
type Command struct {
	Op     Op
	List   int    // list index argument (source list for transfers)
	Item   int    // item index argument (from-index for moves)
	ToList int    // destination list for transfers
	ToItem int    // destination index for moves and transfers
	Text   string // new item text or list name argument

	applied bool
	saved   string // old text or name captured on apply
	landed  int    // landing index a move captured on apply
}

// AddList inserts an empty list named name at index.
func AddList(index int, name string) Command {
	return Command{Op: OpAddList, List: index, Text: name}
}

// RemoveList removes the empty list at index.
func RemoveList(index int) Command {
	return Command{Op: OpRemoveList, List: index}
}

// RenameList renames the list at index.
func RenameList(index int, name string) Command {
	return Command{Op: OpRenameList, List: index, Text: name}
}

// MoveList reorders the list at from to to, post-removal indexing.
func MoveList(from, to int) Command {
	return Command{Op: OpMoveList, List: from, ToItem: to}
}

// InsertItem inserts text at itemIndex in the list at listIndex.
func InsertItem(listIndex, itemIndex int, text string) Command {
	return Command{Op: OpInsertItem, List: listIndex, Item: itemIndex, Text: text}
}

// RemoveItem removes the item at itemIndex in the list at listIndex.
func RemoveItem(listIndex, itemIndex int) Command {
	return Command{Op: OpRemoveItem, List: listIndex, Item: itemIndex}
}

// SetItemText replaces the text of one item.
func SetItemText(listIndex, itemIndex int, text string) Command {
	return Command{Op: OpSetItemText, List: listIndex, Item: itemIndex, Text: text}
}

// MoveItem reorders one item within a list, post-removal indexing.
func MoveItem(listIndex, from, to int) Command {
	return Command{Op: OpMoveItem, List: listIndex, Item: from, ToItem: to}
}

// TransferItem moves one item between lists (or within one).
func TransferItem(srcList, srcIndex, dstList, dstIndex int) Command {
	return Command{Op: OpTransferItem, List: srcList, Item: srcIndex, ToList: dstList, ToItem: dstIndex}
}

// Apply performs the forward mutation against the board and records the
// inverse data. Indices are resolved against the board at apply time, never
// cached across commands. On error the board is unchanged.
func (c *Command) Apply(b *domain.Board) error {
	switch c.Op {
	case OpAddList:
		if err := b.AddList(c.List, c.Text); err != nil {
			return err
		}
	case OpRemoveList:
		name, err := b.RemoveList(c.List)
		if err != nil {
			return err
		}
		c.saved = name
	case OpRenameList:
		old, err := b.RenameList(c.List, c.Text)
		if err != nil {
			return err
		}
		c.saved = old
	case OpMoveList:
		landed, err := b.MoveList(c.List, c.ToItem)
		if err != nil {
			return err
		}
		c.landed = landed
	case OpInsertItem:
		if err := b.InsertItem(c.List, c.Item, c.Text); err != nil {
			return err
		}
	case OpRemoveItem:
		text, err := b.RemoveItem(c.List, c.Item)
		if err != nil {
			return err
		}
		c.saved = text
	case OpSetItemText:
		old, err := b.SetItemText(c.List, c.Item, c.Text)
		if err != nil {
			return err
		}
		c.saved = old
	case OpMoveItem:
		landed, err := b.MoveItem(c.List, c.Item, c.ToItem)
		if err != nil {
			return err
		}
		c.landed = landed
	case OpTransferItem:
		if err := b.TransferItem(c.List, c.Item, c.ToList, c.ToItem); err != nil {
			return err
		}
	default:
		return fmt.Errorf("apply %q: %w", c.Op, ErrUnknownOp)
	}
	c.applied = true
	return nil
}

// Invert returns a new fully-specified command that reverses this one. It is
// only defined after a successful Apply, since inverses depend on captured
// state. The returned command has not itself been applied.
func (c Command) Invert() (Command, error) {
	if !c.applied {
		return Command{}, fmt.Errorf("invert %q: %w", c.Op, ErrNotApplied)
	}
	switch c.Op {
	case OpAddList:
		return RemoveList(c.List), nil
	case OpRemoveList:
		return AddList(c.List, c.saved), nil
	case OpRenameList:
		return RenameList(c.List, c.saved), nil
	case OpMoveList:
		return MoveList(c.landed, c.List), nil
	case OpInsertItem:
		return RemoveItem(c.List, c.Item), nil
	case OpRemoveItem:
		return InsertItem(c.List, c.Item, c.saved), nil
	case OpSetItemText:
		return SetItemText(c.List, c.Item, c.saved), nil
	case OpMoveItem:
		return MoveItem(c.List, c.landed, c.Item), nil
	case OpTransferItem:
		return TransferItem(c.ToList, c.ToItem, c.List, c.Item), nil
	default:
		return Command{}, fmt.Errorf("invert %q: %w", c.Op, ErrUnknownOp)
	}
}

// Label returns a short human-readable description for status lines and logs.
func (c Command) Label() string {
	switch c.Op {
	case OpAddList:
		return "add list"
	case OpRemoveList:
		return "delete list"
	case OpRenameList:
		return "rename list"
	case OpMoveList:
		return "move list"
	case OpInsertItem:
		return "add item"
	case OpRemoveItem:
		return "delete item"
	case OpSetItemText:
		return "edit item"
	case OpMoveItem:
		return "move item"
	case OpTransferItem:
		return "move item between lists"
	default:
		return string(c.Op)
	}
}
