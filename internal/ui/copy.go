package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atomicstack/keyring-tui/internal/command"
	"github.com/atomicstack/keyring-tui/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// copy writes the target of the selected key to the clipboard. The model
// always returns to normal mode afterwards.
func (m *Model) copy(target command.Target) tea.Cmd {
	previous := m.mode
	m.mode = command.ModeNormal
	var out tea.Cmd
	if previous != m.mode {
		out = mouseCmd(m.mode)
	}
	content, err := m.copyContent(target)
	if err != nil {
		m.fail("copy error", err)
		return out
	}
	if m.clipboard == nil {
		events.Clipboard.Unavailable("copy")
		m.failMessage(ErrClipboardUnavailable.Error())
		return out
	}
	if err := m.clipboard.WriteAll(content); err != nil {
		m.fail("clipboard error", err)
		return out
	}
	events.Clipboard.Write(target.String(), len(content))
	m.succeed("%s copied to clipboard", target)
	return out
}

func (m *Model) copyContent(target command.Target) (string, error) {
	key, ok := m.table.Selected()
	if !ok || m.tab.Help {
		return "", errors.New("no key selected")
	}
	switch target {
	case command.TargetRow1:
		return strings.Join(key.SubkeyInfo(m.settings.Minimized), "\n"), nil
	case command.TargetRow2:
		return strings.Join(key.UserInfo(m.settings.Minimized), "\n"), nil
	case command.TargetKey:
		if m.engine == nil {
			return "", errNoEngine
		}
		opts := m.exportOptions()
		opts.Armor = true
		events.Engine.Call("exported_bytes", map[string]interface{}{"category": m.tab.Category.String(), "id": key.ID()})
		data, err := m.engine.ExportedBytes(m.tab.Category, []string{key.ID()}, opts)
		if err != nil {
			events.Engine.Error("exported_bytes", err)
			return "", err
		}
		return string(data), nil
	case command.TargetKeyID:
		return key.ID(), nil
	case command.TargetFingerprint:
		return key.Fingerprint(), nil
	case command.TargetUserID:
		if key.UserID() == "" {
			return "", errors.New("no user id")
		}
		return key.UserID(), nil
	}
	return "", fmt.Errorf("invalid copy target: %d", target)
}

// paste seeds command entry with the clipboard contents.
func (m *Model) paste() {
	if m.clipboard == nil {
		events.Clipboard.Unavailable("paste")
		m.failMessage(ErrClipboardUnavailable.Error())
		return
	}
	text, err := m.clipboard.ReadAll()
	if err != nil {
		m.fail("clipboard error", err)
		return
	}
	events.Clipboard.Read(len(text))
	text = strings.TrimRight(strings.ReplaceAll(text, "\n", " "), " ")
	m.prompt.SetText(command.CommandPrefix + text)
	m.promptCursorDirty = true
}
