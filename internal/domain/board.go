package domain

import "fmt"

// List represents one named ordered sequence of text items.
type List struct {
	Name  string
	Items []string
}

// Board represents the root aggregate: all lists in display/tab order.
type Board struct {
	Lists []List
}

// NewBoard constructs an empty board.
func NewBoard() *Board {
	return &Board{}
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	out := &Board{Lists: make([]List, len(b.Lists))}
	for i, lst := range b.Lists {
		out.Lists[i] = List{
			Name:  lst.Name,
			Items: append([]string(nil), lst.Items...),
		}
	}
	return out
}

// Equal reports structural equality of two boards.
func (b *Board) Equal(other *Board) bool {
	if len(b.Lists) != len(other.Lists) {
		return false
	}
	for i, lst := range b.Lists {
		o := other.Lists[i]
		if lst.Name != o.Name || len(lst.Items) != len(o.Items) {
			return false
		}
		for j, item := range lst.Items {
			if item != o.Items[j] {
				return false
			}
		}
	}
	return true
}

// ListCount returns how many lists the board holds.
func (b *Board) ListCount() int {
	return len(b.Lists)
}

// ItemCount returns how many items the list at index holds.
func (b *Board) ItemCount(index int) (int, error) {
	if err := b.checkListIndex(index); err != nil {
		return 0, err
	}
	return len(b.Lists[index].Items), nil
}

// TotalItemCount returns the number of items across all lists.
func (b *Board) TotalItemCount() int {
	total := 0
	for _, lst := range b.Lists {
		total += len(lst.Items)
	}
	return total
}

// ListName returns the name of the list at index.
func (b *Board) ListName(index int) (string, error) {
	if err := b.checkListIndex(index); err != nil {
		return "", err
	}
	return b.Lists[index].Name, nil
}

// ItemText returns the text of one item.
func (b *Board) ItemText(listIndex, itemIndex int) (string, error) {
	if err := b.checkItemIndex(listIndex, itemIndex); err != nil {
		return "", err
	}
	return b.Lists[listIndex].Items[itemIndex], nil
}

// AddList inserts an empty list at index. Inverse: RemoveList(index).
func (b *Board) AddList(index int, name string) error {
	if err := b.checkListInsertIndex(index); err != nil {
		return err
	}
	b.Lists = append(b.Lists, List{})
	copy(b.Lists[index+1:], b.Lists[index:])
	b.Lists[index] = List{Name: name, Items: []string{}}
	return nil
}

// RemoveList removes the list at index and returns its name for inversion.
// Only an empty list may be removed; a populated list reports ErrNotEmpty
// and the board is left unchanged.
func (b *Board) RemoveList(index int) (string, error) {
	if err := b.checkListIndex(index); err != nil {
		return "", err
	}
	if len(b.Lists[index].Items) > 0 {
		return "", fmt.Errorf("remove list %d: %w", index, ErrNotEmpty)
	}
	name := b.Lists[index].Name
	b.Lists = append(b.Lists[:index], b.Lists[index+1:]...)
	return name, nil
}

// RenameList sets a new name on the list at index and returns the old name.
// Self-inverse by swapping old and new.
func (b *Board) RenameList(index int, newName string) (string, error) {
	if err := b.checkListIndex(index); err != nil {
		return "", err
	}
	old := b.Lists[index].Name
	b.Lists[index].Name = newName
	return old, nil
}

// MoveList removes the list at from and reinserts it at to, where to is
// interpreted against the board after removal. Returns the index the list
// landed on, which the inverse move vacates.
func (b *Board) MoveList(from, to int) (int, error) {
	if err := b.checkListIndex(from); err != nil {
		return 0, err
	}
	// Post-removal indexing: the top insertion slot equals len-1, not len.
	if to < 0 || to > len(b.Lists)-1 {
		return 0, fmt.Errorf("move list to %d of %d: %w", to, len(b.Lists), ErrIndexOutOfRange)
	}
	if from == to {
		return to, nil
	}
	moved := b.Lists[from]
	b.Lists = append(b.Lists[:from], b.Lists[from+1:]...)
	b.Lists = append(b.Lists, List{})
	copy(b.Lists[to+1:], b.Lists[to:])
	b.Lists[to] = moved
	return to, nil
}

// InsertItem inserts text at itemIndex within the list at listIndex.
// Inverse: RemoveItem(listIndex, itemIndex).
func (b *Board) InsertItem(listIndex, itemIndex int, text string) error {
	if err := b.checkListIndex(listIndex); err != nil {
		return err
	}
	items := b.Lists[listIndex].Items
	if itemIndex < 0 || itemIndex > len(items) {
		return fmt.Errorf("insert item at %d of %d: %w", itemIndex, len(items), ErrIndexOutOfRange)
	}
	items = append(items, "")
	copy(items[itemIndex+1:], items[itemIndex:])
	items[itemIndex] = text
	b.Lists[listIndex].Items = items
	return nil
}

// RemoveItem removes the item at itemIndex and returns its text for inversion.
func (b *Board) RemoveItem(listIndex, itemIndex int) (string, error) {
	if err := b.checkItemIndex(listIndex, itemIndex); err != nil {
		return "", err
	}
	items := b.Lists[listIndex].Items
	text := items[itemIndex]
	b.Lists[listIndex].Items = append(items[:itemIndex], items[itemIndex+1:]...)
	return text, nil
}

// SetItemText replaces one item's text and returns the old text.
// Self-inverse by swapping old and new.
func (b *Board) SetItemText(listIndex, itemIndex int, newText string) (string, error) {
	if err := b.checkItemIndex(listIndex, itemIndex); err != nil {
		return "", err
	}
	old := b.Lists[listIndex].Items[itemIndex]
	b.Lists[listIndex].Items[itemIndex] = newText
	return old, nil
}

// MoveItem reorders one item within a list, with to interpreted against the
// list after removal. Returns the landing index for inversion.
func (b *Board) MoveItem(listIndex, from, to int) (int, error) {
	if err := b.checkItemIndex(listIndex, from); err != nil {
		return 0, err
	}
	items := b.Lists[listIndex].Items
	if to < 0 || to > len(items)-1 {
		return 0, fmt.Errorf("move item to %d of %d: %w", to, len(items), ErrIndexOutOfRange)
	}
	if from == to {
		return to, nil
	}
	moved := items[from]
	items = append(items[:from], items[from+1:]...)
	items = append(items, "")
	copy(items[to+1:], items[to:])
	items[to] = moved
	b.Lists[listIndex].Items = items
	return to, nil
}

// TransferItem moves one item from srcList/srcIndex to dstList/dstIndex as a
// single atomic step. The item is owned by exactly one list at every
// observable point: the removal is rolled back if the insertion is rejected.
// Same-list transfers degenerate to MoveItem.
func (b *Board) TransferItem(srcList, srcIndex, dstList, dstIndex int) error {
	if srcList == dstList {
		_, err := b.MoveItem(srcList, srcIndex, dstIndex)
		return err
	}
	if err := b.checkListIndex(dstList); err != nil {
		return err
	}
	text, err := b.RemoveItem(srcList, srcIndex)
	if err != nil {
		return err
	}
	if err := b.InsertItem(dstList, dstIndex, text); err != nil {
		if restoreErr := b.InsertItem(srcList, srcIndex, text); restoreErr != nil {
			return fmt.Errorf("transfer rollback failed: %v: %w", restoreErr, ErrInvariant)
		}
		return err
	}
	return nil
}

// Check verifies the board's structural invariants. Every list carries a
// non-nil item slice; a failure indicates a bug in a mutation primitive or
// an adapter that skipped Normalize, never an expected runtime condition.
func (b *Board) Check() error {
	for i, lst := range b.Lists {
		if lst.Items == nil {
			return fmt.Errorf("list %d has nil items: %w", i, ErrInvariant)
		}
	}
	return nil
}

// Normalize replaces nil item slices with empty ones. Storage adapters call
// it on freshly decoded boards before handing them to the engine.
func (b *Board) Normalize() {
	for i := range b.Lists {
		if b.Lists[i].Items == nil {
			b.Lists[i].Items = []string{}
		}
	}
}

func (b *Board) checkListIndex(index int) error {
	if index < 0 || index >= len(b.Lists) {
		return fmt.Errorf("list index %d of %d: %w", index, len(b.Lists), ErrIndexOutOfRange)
	}
	return nil
}

func (b *Board) checkListInsertIndex(index int) error {
	if index < 0 || index > len(b.Lists) {
		return fmt.Errorf("list insert index %d of %d: %w", index, len(b.Lists), ErrIndexOutOfRange)
	}
	return nil
}

func (b *Board) checkItemIndex(listIndex, itemIndex int) error {
	if err := b.checkListIndex(listIndex); err != nil {
		return err
	}
	items := b.Lists[listIndex].Items
	if itemIndex < 0 || itemIndex >= len(items) {
		return fmt.Errorf("item index %d of %d in list %d: %w", itemIndex, len(items), listIndex, ErrIndexOutOfRange)
	}
	return nil
}
