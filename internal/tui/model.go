package tui

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/hylla/tavla/internal/domain"
)

// Service is the application surface the TUI drives. Every call is
// synchronous; the core has no internal suspension points.
type Service interface {
	Board() *domain.Board
	AddList(name string) error
	DeleteList(index int) error
	RenameList(index int, name string) error
	MoveList(from, to int) error
	PromoteList(index int) error
	AddItem(listIndex int, text string) error
	DeleteItem(listIndex, itemIndex int) error
	EditItem(listIndex, itemIndex int, text string) error
	MoveItem(listIndex, from, to int) error
	PromoteItem(listIndex, itemIndex int) error
	TransferItem(srcList, srcIndex, dstList, dstIndex int) error
	Undo() (bool, error)
	Redo() (bool, error)
	CanUndo() bool
	CanRedo() bool
	UndoLabel() string
	RedoLabel() string
	Save() error
}

// inputMode represents a selectable mode.
type inputMode int

// modeNone and related constants define package defaults.
const (
	modeNone inputMode = iota
	modeNewList
	modeRenameList
	modeNewItem
	modeEditItem
	modeConfirmDeleteList
	modeTransfer
	modeHelp
)

// Model represents model data used by this package.
type Model struct {
	svc Service

	ready  bool
	width  int
	height int

	board        *domain.Board
	selectedList int
	selectedItem int

	mode           inputMode
	input          textinput.Model
	transferTarget int

	status string
	keys   keyMap
	help   help.Model
	md     markdownRenderer

	clipboardWrite func(string) error
}

// NewModel constructs a new value for this package.
func NewModel(svc Service, opts ...Option) Model {
	h := help.New()
	h.ShowAll = false
	in := textinput.New()
	in.Prompt = "> "
	in.CharLimit = 0

	m := Model{
		svc:            svc,
		board:          svc.Board(),
		status:         "ready",
		keys:           newKeyMap(),
		help:           h,
		input:          in,
		clipboardWrite: defaultClipboardWrite,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}
	return m
}

// Init handles init.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update updates state for the requested operation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.width = msg.Width
		m.height = msg.Height
		m.help.SetWidth(max(0, m.width-2))
		return m, nil

	case tea.KeyPressMsg:
		if m.mode != modeNone {
			return m.handleModalKey(msg)
		}
		return m.handleNormalKey(msg)

	default:
		return m, nil
	}
}

// refresh re-reads the board and clamps the selection into bounds.
func (m *Model) refresh() {
	m.board = m.svc.Board()
	if m.board.ListCount() == 0 {
		m.selectedList = 0
		m.selectedItem = 0
		return
	}
	m.selectedList = clamp(m.selectedList, 0, m.board.ListCount()-1)
	n, _ := m.board.ItemCount(m.selectedList)
	if n == 0 {
		m.selectedItem = 0
	} else {
		m.selectedItem = clamp(m.selectedItem, 0, n-1)
	}
}

func (m *Model) itemCount() int {
	if m.board.ListCount() == 0 {
		return 0
	}
	n, _ := m.board.ItemCount(m.selectedList)
	return n
}

func (m *Model) selectedText() (string, bool) {
	if m.itemCount() == 0 {
		return "", false
	}
	text, err := m.board.ItemText(m.selectedList, m.selectedItem)
	if err != nil {
		return "", false
	}
	return text, true
}

// report surfaces a mutation result on the status line. Index and guard
// errors are expected user-level outcomes, not crashes.
func (m *Model) report(action string, err error) {
	switch {
	case err == nil:
		m.status = action
	case errors.Is(err, domain.ErrNotEmpty):
		m.status = "list is not empty: delete or move its items first"
	case errors.Is(err, domain.ErrIndexOutOfRange):
		m.status = action + ": nothing selected"
	default:
		m.status = fmt.Sprintf("%s failed: %v", action, err)
	}
}

func (m Model) handleNormalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		if err := m.svc.Save(); err != nil {
			m.status = fmt.Sprintf("save failed: %v", err)
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.toggleHelp):
		m.mode = modeHelp
		return m, nil

	case key.Matches(msg, m.keys.prevList):
		if m.board.ListCount() > 0 {
			m.selectedList = (m.selectedList - 1 + m.board.ListCount()) % m.board.ListCount()
			m.refresh()
		}
		return m, nil

	case key.Matches(msg, m.keys.nextList):
		if m.board.ListCount() > 0 {
			m.selectedList = (m.selectedList + 1) % m.board.ListCount()
			m.refresh()
		}
		return m, nil

	case key.Matches(msg, m.keys.itemUp):
		if m.selectedItem > 0 {
			m.selectedItem--
		}
		return m, nil

	case key.Matches(msg, m.keys.itemDown):
		if m.selectedItem < m.itemCount()-1 {
			m.selectedItem++
		}
		return m, nil

	case key.Matches(msg, m.keys.newList):
		return m.enterInputMode(modeNewList, "list name", "")

	case key.Matches(msg, m.keys.renameList):
		if m.board.ListCount() == 0 {
			m.status = "no list to rename"
			return m, nil
		}
		name, _ := m.board.ListName(m.selectedList)
		return m.enterInputMode(modeRenameList, "list name", name)

	case key.Matches(msg, m.keys.deleteList):
		if m.board.ListCount() == 0 {
			m.status = "no list to delete"
			return m, nil
		}
		if m.itemCount() > 0 {
			m.status = "list is not empty: delete or move its items first"
			return m, nil
		}
		m.mode = modeConfirmDeleteList
		return m, nil

	case key.Matches(msg, m.keys.moveListLeft):
		if m.selectedList > 0 {
			m.report("list moved", m.svc.MoveList(m.selectedList, m.selectedList-1))
			m.selectedList--
			m.refresh()
		}
		return m, nil

	case key.Matches(msg, m.keys.moveListRight):
		if m.board.ListCount() > 0 && m.selectedList < m.board.ListCount()-1 {
			m.report("list moved", m.svc.MoveList(m.selectedList, m.selectedList+1))
			m.selectedList++
			m.refresh()
		}
		return m, nil

	case key.Matches(msg, m.keys.promoteList):
		if m.board.ListCount() > 0 && m.selectedList != 0 {
			m.report("list moved to front", m.svc.PromoteList(m.selectedList))
			m.selectedList = 0
			m.refresh()
		}
		return m, nil

	case key.Matches(msg, m.keys.newItem):
		if m.board.ListCount() == 0 {
			m.status = "create a list first"
			return m, nil
		}
		return m.enterInputMode(modeNewItem, "item text", "")

	case key.Matches(msg, m.keys.editItem):
		text, ok := m.selectedText()
		if !ok {
			m.status = "no item selected"
			return m, nil
		}
		return m.enterInputMode(modeEditItem, "item text", text)

	case key.Matches(msg, m.keys.deleteItem):
		if m.itemCount() == 0 {
			m.status = "no item selected"
			return m, nil
		}
		m.report("item deleted", m.svc.DeleteItem(m.selectedList, m.selectedItem))
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.moveItemUp):
		if m.itemCount() > 1 && m.selectedItem > 0 {
			m.report("item moved", m.svc.MoveItem(m.selectedList, m.selectedItem, m.selectedItem-1))
			m.selectedItem--
			m.refresh()
		}
		return m, nil

	case key.Matches(msg, m.keys.moveItemDown):
		if m.itemCount() > 1 && m.selectedItem < m.itemCount()-1 {
			m.report("item moved", m.svc.MoveItem(m.selectedList, m.selectedItem, m.selectedItem+1))
			m.selectedItem++
			m.refresh()
		}
		return m, nil

	case key.Matches(msg, m.keys.promoteItem):
		if m.itemCount() > 0 && m.selectedItem != 0 {
			m.report("item moved to top", m.svc.PromoteItem(m.selectedList, m.selectedItem))
			m.selectedItem = 0
			m.refresh()
		}
		return m, nil

	case key.Matches(msg, m.keys.transfer):
		if m.itemCount() == 0 {
			m.status = "no item selected"
			return m, nil
		}
		if m.board.ListCount() < 2 {
			m.status = "no other list to move to"
			return m, nil
		}
		m.mode = modeTransfer
		m.transferTarget = (m.selectedList + 1) % m.board.ListCount()
		return m, nil

	case key.Matches(msg, m.keys.yank):
		text, ok := m.selectedText()
		if !ok {
			m.status = "no item selected"
			return m, nil
		}
		if err := m.clipboardWrite(text); err != nil {
			m.status = fmt.Sprintf("copy failed: %v", err)
		} else {
			m.status = "item copied"
		}
		return m, nil

	case key.Matches(msg, m.keys.undo):
		label := m.svc.UndoLabel()
		ok, err := m.svc.Undo()
		switch {
		case err != nil:
			m.status = fmt.Sprintf("undo failed: %v", err)
		case !ok:
			m.status = "nothing to undo"
		default:
			m.status = "undo: " + label
		}
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.redo):
		label := m.svc.RedoLabel()
		ok, err := m.svc.Redo()
		switch {
		case err != nil:
			m.status = fmt.Sprintf("redo failed: %v", err)
		case !ok:
			m.status = "nothing to redo"
		default:
			m.status = "redo: " + label
		}
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.save):
		m.report("saved", m.svc.Save())
		return m, nil

	default:
		return m, nil
	}
}

func (m Model) enterInputMode(mode inputMode, placeholder, value string) (tea.Model, tea.Cmd) {
	m.mode = mode
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m Model) handleModalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeHelp:
		// Any key dismisses the overlay.
		m.mode = modeNone
		return m, nil

	case modeConfirmDeleteList:
		switch msg.String() {
		case "y", "enter":
			m.mode = modeNone
			m.report("list deleted", m.svc.DeleteList(m.selectedList))
			m.refresh()
		case "n", "esc":
			m.mode = modeNone
			m.status = "ready"
		}
		return m, nil

	case modeTransfer:
		switch msg.String() {
		case "esc":
			m.mode = modeNone
			m.status = "ready"
			return m, nil
		case "h", "left":
			m.transferTarget = m.stepTransferTarget(-1)
			return m, nil
		case "l", "right", "tab":
			m.transferTarget = m.stepTransferTarget(1)
			return m, nil
		case "enter":
			dst := m.transferTarget
			n, _ := m.board.ItemCount(dst)
			m.mode = modeNone
			m.report("item moved to list", m.svc.TransferItem(m.selectedList, m.selectedItem, dst, n))
			m.refresh()
			return m, nil
		default:
			return m, nil
		}

	case modeNewList, modeRenameList, modeNewItem, modeEditItem:
		switch msg.String() {
		case "esc":
			m.mode = modeNone
			m.input.Blur()
			m.status = "ready"
			return m, nil
		case "enter":
			value := m.input.Value()
			mode := m.mode
			m.mode = modeNone
			m.input.Blur()
			m.submitInput(mode, value)
			m.refresh()
			return m, nil
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

	default:
		m.mode = modeNone
		return m, nil
	}
}

// stepTransferTarget cycles the transfer destination, skipping the source
// list.
func (m *Model) stepTransferTarget(delta int) int {
	count := m.board.ListCount()
	target := m.transferTarget
	for range count {
		target = (target + delta + count) % count
		if target != m.selectedList {
			return target
		}
	}
	return m.transferTarget
}

func (m *Model) submitInput(mode inputMode, value string) {
	switch mode {
	case modeNewList:
		if strings.TrimSpace(value) == "" {
			m.status = "list name must not be blank"
			return
		}
		m.report("list added", m.svc.AddList(strings.TrimSpace(value)))
		m.selectedList = m.board.ListCount() // clamped by refresh
	case modeRenameList:
		if strings.TrimSpace(value) == "" {
			m.status = "list name must not be blank"
			return
		}
		m.report("list renamed", m.svc.RenameList(m.selectedList, strings.TrimSpace(value)))
	case modeNewItem:
		m.report("item added", m.svc.AddItem(m.selectedList, value))
		m.selectedItem = m.itemCount() // clamped by refresh
	case modeEditItem:
		m.report("item edited", m.svc.EditItem(m.selectedList, m.selectedItem, value))
	}
}

// View handles view.
func (m Model) View() tea.View {
	if !m.ready {
		v := tea.NewView("loading...")
		v.AltScreen = true
		return v
	}

	muted := lipgloss.Color("241")
	dim := lipgloss.Color("239")
	accent := lipgloss.Color("62")
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	statusStyle := lipgloss.NewStyle().Foreground(dim)

	var b strings.Builder
	b.WriteString(titleStyle.Render("tavla"))
	b.WriteString("\n\n")

	if m.mode == modeHelp {
		content := m.md.render(helpMarkdown, max(0, m.width-4))
		v := tea.NewView(content + "\n" + statusStyle.Render("press any key to close"))
		v.AltScreen = true
		return v
	}

	if m.board.ListCount() == 0 {
		b.WriteString("No lists yet.\n")
		b.WriteString("Press " + m.keys.newList.Help().Key + " to create your first list.\n")
	} else {
		b.WriteString(m.renderTabs(accent, muted))
		b.WriteString("\n\n")
		b.WriteString(m.renderItems(accent, muted))
	}

	b.WriteString("\n")
	b.WriteString(m.renderModeLine(muted))
	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n")

	helpBubble := m.help
	b.WriteString(lipgloss.NewStyle().Foreground(muted).Render(helpBubble.View(m.keys)))

	v := tea.NewView(b.String())
	v.AltScreen = true
	return v
}

func (m Model) renderTabs(accent, muted color.Color) string {
	activeTab := lipgloss.NewStyle().Bold(true).Foreground(accent).Underline(true)
	inactiveTab := lipgloss.NewStyle().Foreground(muted)
	targetTab := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))

	tabs := make([]string, 0, m.board.ListCount())
	for i, lst := range m.board.Lists {
		label := fmt.Sprintf("%s (%d)", lst.Name, len(lst.Items))
		switch {
		case m.mode == modeTransfer && i == m.transferTarget:
			label = targetTab.Render("→ " + label)
		case i == m.selectedList:
			label = activeTab.Render(label)
		default:
			label = inactiveTab.Render(label)
		}
		tabs = append(tabs, label)
	}
	return strings.Join(tabs, "  ")
}

func (m Model) renderItems(accent, muted color.Color) string {
	selected := lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	normal := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	n := m.itemCount()
	if n == 0 {
		return lipgloss.NewStyle().Foreground(muted).Render("  (empty)")
	}
	lines := make([]string, 0, n)
	for i := range n {
		text, _ := m.board.ItemText(m.selectedList, i)
		text = strings.ReplaceAll(text, "\n", " ")
		prefix := "  "
		style := normal
		if i == m.selectedItem {
			prefix = "> "
			style = selected
		}
		lines = append(lines, style.Render(prefix+text))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderModeLine(muted color.Color) string {
	promptStyle := lipgloss.NewStyle().Foreground(muted)
	switch m.mode {
	case modeNewList:
		return promptStyle.Render("new list  ") + m.input.View() + "\n"
	case modeRenameList:
		return promptStyle.Render("rename list  ") + m.input.View() + "\n"
	case modeNewItem:
		return promptStyle.Render("new item  ") + m.input.View() + "\n"
	case modeEditItem:
		return promptStyle.Render("edit item  ") + m.input.View() + "\n"
	case modeConfirmDeleteList:
		name, _ := m.board.ListName(m.selectedList)
		return promptStyle.Render(fmt.Sprintf("delete list %q? y/n", name)) + "\n"
	case modeTransfer:
		return promptStyle.Render("move item: h/l pick list, enter confirm, esc cancel") + "\n"
	default:
		return ""
	}
}

func clamp(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
