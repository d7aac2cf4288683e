package tui

import (
	"testing"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
)

func TestApplyOverridesRebindsOnlyGivenKeys(t *testing.T) {
	k := newKeyMap().applyOverrides(KeyOverrides{Undo: "u", NewItem: "a"})

	if !key.Matches(tea.KeyPressMsg{Code: 'u', Text: "u"}, k.undo) {
		t.Fatal("undo should match the override key")
	}
	if key.Matches(tea.KeyPressMsg{Code: 'z', Text: "z"}, k.undo) {
		t.Fatal("undo should no longer match the default key")
	}
	if !key.Matches(tea.KeyPressMsg{Code: 'a', Text: "a"}, k.newItem) {
		t.Fatal("new item should match the override key")
	}
	if !key.Matches(tea.KeyPressMsg{Code: 'Z', Text: "Z"}, k.redo) {
		t.Fatal("redo should keep its default")
	}
}

func TestApplyOverridesBlankKeepsDefaults(t *testing.T) {
	k := newKeyMap().applyOverrides(KeyOverrides{})
	if !key.Matches(tea.KeyPressMsg{Code: 'z', Text: "z"}, k.undo) {
		t.Fatal("blank override must keep the default undo key")
	}
}

func TestHelpGroupsCoverEveryAction(t *testing.T) {
	k := newKeyMap()
	if len(k.ShortHelp()) == 0 {
		t.Fatal("short help is empty")
	}
	total := 0
	for _, group := range k.FullHelp() {
		total += len(group)
	}
	if total != 23 {
		t.Fatalf("full help lists %d bindings, want 23", total)
	}
}
