package tui

import "charm.land/bubbles/v2/key"

// keyMap represents key map data used by this package.
type keyMap struct {
	quit          key.Binding
	toggleHelp    key.Binding
	prevList      key.Binding
	nextList      key.Binding
	itemUp        key.Binding
	itemDown      key.Binding
	newList       key.Binding
	renameList    key.Binding
	deleteList    key.Binding
	moveListLeft  key.Binding
	moveListRight key.Binding
	promoteList   key.Binding
	newItem       key.Binding
	editItem      key.Binding
	deleteItem    key.Binding
	moveItemUp    key.Binding
	moveItemDown  key.Binding
	promoteItem   key.Binding
	transfer      key.Binding
	yank          key.Binding
	undo          key.Binding
	redo          key.Binding
	save          key.Binding
}

// KeyOverrides carries user-configured bindings for the mutable actions.
// Blank fields keep the defaults.
type KeyOverrides struct {
	Undo        string
	Redo        string
	NewList     string
	NewItem     string
	DeleteItem  string
	PromoteItem string
	PromoteList string
}

// newKeyMap constructs key map.
func newKeyMap() keyMap {
	return keyMap{
		quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "save and quit")),
		toggleHelp:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		prevList:      key.NewBinding(key.WithKeys("h", "left", "shift+tab"), key.WithHelp("h/←", "prev list")),
		nextList:      key.NewBinding(key.WithKeys("l", "right", "tab"), key.WithHelp("l/→", "next list")),
		itemUp:        key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "item up")),
		itemDown:      key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "item down")),
		newList:       key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "new list")),
		renameList:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename list")),
		deleteList:    key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete list")),
		moveListLeft:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "move list left")),
		moveListRight: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "move list right")),
		promoteList:   key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "list to front")),
		newItem:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new item")),
		editItem:      key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e/enter", "edit item")),
		deleteItem:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete item")),
		moveItemUp:    key.NewBinding(key.WithKeys("K"), key.WithHelp("K", "move item up")),
		moveItemDown:  key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "move item down")),
		promoteItem:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "item to top")),
		transfer:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move item to list")),
		yank:          key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy item")),
		undo:          key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "undo")),
		redo:          key.NewBinding(key.WithKeys("Z"), key.WithHelp("Z", "redo")),
		save:          key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
	}
}

// applyOverrides rebinds single-key actions from user configuration.
func (k keyMap) applyOverrides(o KeyOverrides) keyMap {
	rebind := func(b key.Binding, keyName, label string) key.Binding {
		if keyName == "" {
			return b
		}
		return key.NewBinding(key.WithKeys(keyName), key.WithHelp(keyName, label))
	}
	k.undo = rebind(k.undo, o.Undo, "undo")
	k.redo = rebind(k.redo, o.Redo, "redo")
	k.newList = rebind(k.newList, o.NewList, "new list")
	k.newItem = rebind(k.newItem, o.NewItem, "new item")
	k.deleteItem = rebind(k.deleteItem, o.DeleteItem, "delete item")
	k.promoteItem = rebind(k.promoteItem, o.PromoteItem, "item to top")
	k.promoteList = rebind(k.promoteList, o.PromoteList, "list to front")
	return k
}

// ShortHelp handles short help.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.newItem, k.editItem, k.deleteItem, k.transfer, k.undo, k.redo, k.toggleHelp, k.quit,
	}
}

// FullHelp handles full help.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.prevList, k.nextList, k.itemUp, k.itemDown},
		{k.newItem, k.editItem, k.deleteItem, k.moveItemUp, k.moveItemDown, k.promoteItem, k.transfer, k.yank},
		{k.newList, k.renameList, k.deleteList, k.moveListLeft, k.moveListRight, k.promoteList},
		{k.undo, k.redo, k.save, k.toggleHelp, k.quit},
	}
}
