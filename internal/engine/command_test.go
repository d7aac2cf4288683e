package engine

import (
	"errors"
	"testing"

	"github.com/hylla/tavla/internal/domain"
)

func testBoard() *domain.Board {
	b := domain.NewBoard()
	b.Lists = []domain.List{
		{Name: "Work", Items: []string{"a", "b", "c"}},
		{Name: "Personal", Items: []string{"p"}},
		{Name: "Someday", Items: []string{}},
	}
	return b
}

// Every command variant must restore the exact board when its inverse is
// applied after it.
func TestCommandRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
	}{
		{name: "add list", cmd: AddList(1, "New")},
		{name: "add list at end", cmd: AddList(3, "Tail")},
		{name: "remove empty list", cmd: RemoveList(2)},
		{name: "rename list", cmd: RenameList(0, "Job")},
		{name: "move list forward", cmd: MoveList(0, 2)},
		{name: "move list to front", cmd: MoveList(2, 0)},
		{name: "insert item", cmd: InsertItem(0, 1, "new")},
		{name: "insert item at end", cmd: InsertItem(1, 1, "tail")},
		{name: "remove item", cmd: RemoveItem(0, 1)},
		{name: "set item text", cmd: SetItemText(0, 2, "edited")},
		{name: "move item down", cmd: MoveItem(0, 0, 2)},
		{name: "promote item", cmd: MoveItem(0, 2, 0)},
		{name: "transfer across lists", cmd: TransferItem(0, 1, 2, 0)},
		{name: "transfer same list", cmd: TransferItem(0, 0, 0, 2)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			board := testBoard()
			before := board.Clone()

			cmd := tc.cmd
			if err := cmd.Apply(board); err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			inverse, err := cmd.Invert()
			if err != nil {
				t.Fatalf("Invert() error = %v", err)
			}
			if err := inverse.Apply(board); err != nil {
				t.Fatalf("inverse Apply() error = %v", err)
			}
			if !board.Equal(before) {
				t.Fatalf("round trip did not restore board: %#v != %#v", board.Lists, before.Lists)
			}
		})
	}
}

func TestCommandApplyFailureLeavesBoardUntouched(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		want error
	}{
		{name: "add list out of range", cmd: AddList(9, "x"), want: domain.ErrIndexOutOfRange},
		{name: "remove populated list", cmd: RemoveList(0), want: domain.ErrNotEmpty},
		{name: "rename out of range", cmd: RenameList(7, "x"), want: domain.ErrIndexOutOfRange},
		{name: "move list out of range", cmd: MoveList(0, 3), want: domain.ErrIndexOutOfRange},
		{name: "insert out of range", cmd: InsertItem(0, 9, "x"), want: domain.ErrIndexOutOfRange},
		{name: "remove item out of range", cmd: RemoveItem(2, 0), want: domain.ErrIndexOutOfRange},
		{name: "edit out of range", cmd: SetItemText(0, 3, "x"), want: domain.ErrIndexOutOfRange},
		{name: "move item out of range", cmd: MoveItem(0, 1, 3), want: domain.ErrIndexOutOfRange},
		{name: "transfer bad destination", cmd: TransferItem(0, 0, 1, 9), want: domain.ErrIndexOutOfRange},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			board := testBoard()
			before := board.Clone()
			cmd := tc.cmd
			if err := cmd.Apply(board); !errors.Is(err, tc.want) {
				t.Fatalf("Apply() error = %v, want %v", err, tc.want)
			}
			if !board.Equal(before) {
				t.Fatal("board changed after rejected apply")
			}
		})
	}
}

func TestInvertBeforeApplyFails(t *testing.T) {
	cmd := RemoveItem(0, 0)
	if _, err := cmd.Invert(); !errors.Is(err, ErrNotApplied) {
		t.Fatalf("expected ErrNotApplied, got %v", err)
	}
}

func TestUnknownOpRejected(t *testing.T) {
	board := testBoard()
	cmd := Command{Op: Op("bogus")}
	if err := cmd.Apply(board); !errors.Is(err, ErrUnknownOp) {
		t.Fatalf("expected ErrUnknownOp, got %v", err)
	}
}

func TestTransferInverseRestoresText(t *testing.T) {
	board := testBoard()
	cmd := TransferItem(0, 1, 1, 1)
	if err := cmd.Apply(board); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	got, err := board.ItemText(1, 1)
	if err != nil {
		t.Fatalf("ItemText() error = %v", err)
	}
	if got != "b" {
		t.Fatalf("transferred text = %q, want %q", got, "b")
	}
	if board.TotalItemCount() != 4 {
		t.Fatalf("total items = %d, want 4", board.TotalItemCount())
	}
}

func TestMoveListInverseWhenFromLessThanTo(t *testing.T) {
	// from < to is not symmetric; the inverse must use the landing index.
	board := testBoard()
	cmd := MoveList(0, 2)
	if err := cmd.Apply(board); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	inverse, err := cmd.Invert()
	if err != nil {
		t.Fatalf("Invert() error = %v", err)
	}
	if inverse.List != 2 || inverse.ToItem != 0 {
		t.Fatalf("inverse = MoveList(%d,%d), want MoveList(2,0)", inverse.List, inverse.ToItem)
	}
}
