package tui

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/hylla/tavla/internal/app"
	"github.com/hylla/tavla/internal/domain"
)

// memStore is an in-memory app.Store for TUI tests.
type memStore struct {
	board *domain.Board
}

func (m *memStore) Load() (*domain.Board, error) {
	if m.board == nil {
		return domain.NewBoard(), nil
	}
	return m.board.Clone(), nil
}

func (m *memStore) Save(b *domain.Board) error {
	m.board = b.Clone()
	return nil
}

func newTestModel(t *testing.T, lists ...domain.List) (Model, *app.Service) {
	t.Helper()
	board := domain.NewBoard()
	board.Lists = lists
	board.Normalize()
	svc, err := app.NewService(&memStore{board: board}, nil, nil)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	m := NewModel(svc, WithClipboard(func(string) error { return nil }))
	sized, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return sized.(Model), svc
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyPressMsg
		switch k {
		case "enter":
			msg = tea.KeyPressMsg{Code: tea.KeyEnter}
		case "esc":
			msg = tea.KeyPressMsg{Code: tea.KeyEscape}
		default:
			msg = tea.KeyPressMsg{Code: rune(k[0]), Text: k}
		}
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		updated, _ := m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
		m = updated.(Model)
	}
	return m
}

func TestNewItemFlow(t *testing.T) {
	m, svc := newTestModel(t, domain.List{Name: "Work"})

	m = press(t, m, "n")
	if m.mode != modeNewItem {
		t.Fatalf("mode = %d, want modeNewItem", m.mode)
	}
	m = typeText(t, m, "buy milk")
	m = press(t, m, "enter")
	if m.mode != modeNone {
		t.Fatalf("mode = %d, want modeNone", m.mode)
	}

	text, err := svc.Board().ItemText(0, 0)
	if err != nil {
		t.Fatalf("ItemText() error = %v", err)
	}
	if text != "buy milk" {
		t.Fatalf("item = %q", text)
	}
}

func TestNewListFlowSelectsNewTab(t *testing.T) {
	m, svc := newTestModel(t, domain.List{Name: "Work"})

	m = press(t, m, "N")
	m = typeText(t, m, "Personal")
	m = press(t, m, "enter")

	if svc.Board().ListCount() != 2 {
		t.Fatalf("list count = %d, want 2", svc.Board().ListCount())
	}
	if m.selectedList != 1 {
		t.Fatalf("selected list = %d, want 1", m.selectedList)
	}
}

func TestDeleteItemAndUndoKey(t *testing.T) {
	m, svc := newTestModel(t, domain.List{Name: "Work", Items: []string{"a", "b"}})

	m = press(t, m, "d")
	if n, _ := svc.Board().ItemCount(0); n != 1 {
		t.Fatalf("items after delete = %d, want 1", n)
	}

	m = press(t, m, "z")
	if n, _ := svc.Board().ItemCount(0); n != 2 {
		t.Fatalf("items after undo = %d, want 2", n)
	}
	text, _ := svc.Board().ItemText(0, 0)
	if text != "a" {
		t.Fatalf("item 0 = %q, want %q", text, "a")
	}

	m = press(t, m, "Z")
	if n, _ := svc.Board().ItemCount(0); n != 1 {
		t.Fatalf("items after redo = %d, want 1", n)
	}
	if m.status == "" {
		t.Fatal("status line should describe the redo")
	}
}

func TestUndoOnEmptyHistoryReportsNothing(t *testing.T) {
	m, _ := newTestModel(t, domain.List{Name: "Work"})
	m = press(t, m, "z")
	if m.status != "nothing to undo" {
		t.Fatalf("status = %q", m.status)
	}
	m = press(t, m, "Z")
	if m.status != "nothing to redo" {
		t.Fatalf("status = %q", m.status)
	}
}

func TestDeleteListGuardInNormalMode(t *testing.T) {
	m, svc := newTestModel(t, domain.List{Name: "Work", Items: []string{"a"}})

	m = press(t, m, "D")
	if m.mode != modeNone {
		t.Fatal("populated list must not reach the confirm prompt")
	}
	if svc.Board().ListCount() != 1 {
		t.Fatal("list must survive")
	}

	m = press(t, m, "d") // empty it
	m = press(t, m, "D")
	if m.mode != modeConfirmDeleteList {
		t.Fatalf("mode = %d, want confirm", m.mode)
	}
	m = press(t, m, "y")
	if svc.Board().ListCount() != 0 {
		t.Fatal("list should be deleted after confirm")
	}
}

func TestConfirmDeleteListDecline(t *testing.T) {
	m, svc := newTestModel(t, domain.List{Name: "Work"})
	m = press(t, m, "D")
	m = press(t, m, "n")
	if svc.Board().ListCount() != 1 {
		t.Fatal("declined delete must keep the list")
	}
	if m.mode != modeNone {
		t.Fatalf("mode = %d, want modeNone", m.mode)
	}
}

func TestTransferFlow(t *testing.T) {
	m, svc := newTestModel(t,
		domain.List{Name: "Work", Items: []string{"x"}},
		domain.List{Name: "Personal"},
	)

	m = press(t, m, "m")
	if m.mode != modeTransfer {
		t.Fatalf("mode = %d, want modeTransfer", m.mode)
	}
	if m.transferTarget != 1 {
		t.Fatalf("transfer target = %d, want 1", m.transferTarget)
	}
	m = press(t, m, "enter")

	board := svc.Board()
	if n, _ := board.ItemCount(0); n != 0 {
		t.Fatalf("source items = %d, want 0", n)
	}
	text, _ := board.ItemText(1, 0)
	if text != "x" {
		t.Fatalf("moved item = %q", text)
	}

	// One undo restores the transfer in a single step.
	m = press(t, m, "z")
	board = svc.Board()
	if n, _ := board.ItemCount(0); n != 1 {
		t.Fatalf("source items after undo = %d, want 1", n)
	}
}

func TestTransferNeedsSecondList(t *testing.T) {
	m, _ := newTestModel(t, domain.List{Name: "Work", Items: []string{"x"}})
	m = press(t, m, "m")
	if m.mode != modeNone {
		t.Fatal("transfer should not start with a single list")
	}
}

func TestMoveItemKeysReorder(t *testing.T) {
	m, svc := newTestModel(t, domain.List{Name: "Work", Items: []string{"a", "b", "c"}})

	m = press(t, m, "j") // select b
	m = press(t, m, "J") // move down
	text, _ := svc.Board().ItemText(0, 2)
	if text != "b" {
		t.Fatalf("item 2 = %q, want %q", text, "b")
	}
	m = press(t, m, "K")
	text, _ = svc.Board().ItemText(0, 1)
	if text != "b" {
		t.Fatalf("item 1 = %q, want %q", text, "b")
	}

	m = press(t, m, "t") // promote selected (b) to top
	text, _ = svc.Board().ItemText(0, 0)
	if text != "b" {
		t.Fatalf("item 0 = %q, want %q", text, "b")
	}
}

func TestPromoteListKey(t *testing.T) {
	m, svc := newTestModel(t, domain.List{Name: "A"}, domain.List{Name: "B"}, domain.List{Name: "C"})
	m = press(t, m, "l", "l") // select C
	m = press(t, m, "T")
	name, _ := svc.Board().ListName(0)
	if name != "C" {
		t.Fatalf("front list = %q, want %q", name, "C")
	}
	if m.selectedList != 0 {
		t.Fatalf("selection should follow the promoted list, got %d", m.selectedList)
	}
}

func TestRenameListFlow(t *testing.T) {
	m, svc := newTestModel(t, domain.List{Name: "Work"})
	m = press(t, m, "r")
	if m.input.Value() != "Work" {
		t.Fatalf("rename input prefilled with %q", m.input.Value())
	}
	m = typeText(t, m, "!")
	m = press(t, m, "enter")
	name, _ := svc.Board().ListName(0)
	if name != "Work!" {
		t.Fatalf("name = %q", name)
	}
}

func TestEscCancelsInput(t *testing.T) {
	m, svc := newTestModel(t, domain.List{Name: "Work"})
	m = press(t, m, "n")
	m = typeText(t, m, "junk")
	updated, _ := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	m = updated.(Model)
	if m.mode != modeNone {
		t.Fatalf("mode = %d, want modeNone", m.mode)
	}
	if n, _ := svc.Board().ItemCount(0); n != 0 {
		t.Fatal("cancelled input must not add an item")
	}
}

func TestYankUsesClipboardWriter(t *testing.T) {
	var copied string
	board := domain.NewBoard()
	board.Lists = []domain.List{{Name: "Work", Items: []string{"secret"}}}
	svc, err := app.NewService(&memStore{board: board}, nil, nil)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	m := NewModel(svc, WithClipboard(func(text string) error {
		copied = text
		return nil
	}))
	sized, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = sized.(Model)

	m = press(t, m, "y")
	if copied != "secret" {
		t.Fatalf("copied = %q", copied)
	}
	if m.status != "item copied" {
		t.Fatalf("status = %q", m.status)
	}
}
