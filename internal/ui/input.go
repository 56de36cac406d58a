package ui

import (
	"strings"
	"unicode"

	"github.com/atomicstack/keyring-tui/internal/command"
	"github.com/atomicstack/keyring-tui/internal/logging/events"
	uistate "github.com/atomicstack/keyring-tui/internal/ui/state"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if keyMsg.Type == tea.KeyCtrlC {
		return m.Dispatch(command.Quit{})
	}
	if m.prompt.Mode() != uistate.PromptIdle {
		return m.handlePromptKey(keyMsg)
	}
	if pending := m.prompt.Pending; pending != nil && key.Matches(keyMsg, m.keymap.Confirm) {
		m.prompt.Clear()
		return m.Dispatch(pending)
	}
	if m.mode == command.ModeCopy {
		if target, err := command.ParseTarget(keyMsg.String()); err == nil {
			return m.Dispatch(command.Copy{Target: target})
		}
	}
	if m.showOptions {
		switch {
		case key.Matches(keyMsg, m.keymap.Select):
			selected, ok := m.options.Selected()
			m.showOptions = false
			if !ok {
				return nil
			}
			return m.Dispatch(selected)
		case key.Matches(keyMsg, m.keymap.Cancel):
			return m.Dispatch(command.None{})
		}
	}
	if key.Matches(keyMsg, m.keymap.Cancel) && m.prompt.Pending == nil {
		m.prompt.Clear()
	}
	cmd := m.keyCommand(keyMsg)
	if cmd == nil {
		if pending := m.prompt.Pending; pending != nil {
			events.Command.Cancel(pending.String())
			m.prompt.Clear()
		}
		return nil
	}
	return m.Dispatch(cmd)
}

// handlePromptKey edits the command or search entry.
func (m *Model) handlePromptKey(msg tea.KeyMsg) tea.Cmd {
	search := m.prompt.Mode() == uistate.PromptSearch
	switch msg.String() {
	case "esc":
		m.closePrompt()
		return nil
	case "enter":
		if search {
			m.closePrompt()
			return nil
		}
		return m.submitCommand()
	case "tab":
		if !search {
			m.completeCommand()
		}
		return nil
	case "up":
		return m.Dispatch(command.Scroll{Direction: command.DirectionUp, Amount: 1})
	case "down":
		return m.Dispatch(command.Scroll{Direction: command.DirectionDown, Amount: 1})
	case "pgup":
		return m.Dispatch(command.Scroll{Direction: command.DirectionUp, Amount: pageStep})
	case "pgdown":
		return m.Dispatch(command.Scroll{Direction: command.DirectionDown, Amount: pageStep})
	case "ctrl+u":
		prefix := string([]rune(m.prompt.Text)[:1])
		if m.prompt.Text == prefix {
			return nil
		}
		m.prompt.SetText(prefix)
		m.promptChanged(search)
		return nil
	case "ctrl+w":
		if m.prompt.DeleteWordBackward() {
			m.promptChanged(search)
		}
		return nil
	case "ctrl+a", "home":
		m.moveCursor(m.prompt.MoveCursorStart)
		return nil
	case "ctrl+e", "end":
		m.moveCursor(m.prompt.MoveCursorEnd)
		return nil
	case "alt+b", "ctrl+left":
		m.moveCursor(m.prompt.MoveCursorWordBackward)
		return nil
	case "alt+f", "ctrl+right":
		m.moveCursor(m.prompt.MoveCursorWordForward)
		return nil
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		if m.prompt.DeleteRuneBackward() {
			m.promptChanged(search)
		}
	case tea.KeyLeft:
		m.moveCursor(m.prompt.MoveCursorRuneBackward)
	case tea.KeyRight:
		m.moveCursor(m.prompt.MoveCursorRuneForward)
	case tea.KeySpace:
		if m.prompt.Insert(" ") {
			m.promptChanged(search)
		}
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return nil
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return nil
			}
		}
		if m.prompt.Insert(string(msg.Runes)) {
			m.promptChanged(search)
		}
	}
	return nil
}

// promptChanged follows an edit of the entry: the search filter is
// recomputed, and deleting the search prefix restores the table.
func (m *Model) promptChanged(search bool) {
	m.promptCursorDirty = true
	events.Prompt.Entry(m.prompt.Text, m.prompt.CursorPos())
	switch {
	case m.prompt.Mode() == uistate.PromptSearch:
		m.applySearch()
	case search:
		m.table.Reset()
		events.Filter.Cleared(m.table.Len())
	}
}

func (m *Model) moveCursor(move func() bool) {
	if move() {
		m.promptCursorDirty = true
	}
}

// closePrompt leaves text entry. Leaving a search restores every key and
// keeps the selected one selected.
func (m *Model) closePrompt() {
	if m.prompt.Mode() == uistate.PromptSearch {
		m.leaveSearch()
		return
	}
	m.prompt.Clear()
}

func (m *Model) submitCommand() tea.Cmd {
	entry := strings.TrimSpace(m.prompt.Entry())
	m.prompt.Clear()
	if entry == "" {
		return nil
	}
	cmd, err := command.Parse(entry)
	if err != nil {
		events.Command.Invalid(entry, err)
		m.failMessage("invalid command: " + entry)
		return nil
	}
	return m.Dispatch(cmd)
}

func (m *Model) completeCommand() {
	before := m.prompt.Text
	completed := command.Complete(before)
	if completed == before {
		return
	}
	events.Command.Complete(before, completed)
	m.prompt.SetText(completed)
	m.promptCursorDirty = true
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	mouse, ok := msg.(tea.MouseMsg)
	if !ok || m.mode == command.ModeVisual {
		return nil
	}
	if mouse.Action != tea.MouseActionPress {
		return nil
	}
	switch mouse.Button {
	case tea.MouseButtonWheelUp:
		return m.Dispatch(command.Scroll{Direction: command.DirectionUp, Amount: 1})
	case tea.MouseButtonWheelDown:
		return m.Dispatch(command.Scroll{Direction: command.DirectionDown, Amount: 1})
	}
	return nil
}
