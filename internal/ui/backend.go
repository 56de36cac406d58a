package ui

import (
	"github.com/atomicstack/keyring-tui/internal/backend"
	"github.com/atomicstack/keyring-tui/internal/command"
	"github.com/atomicstack/keyring-tui/internal/logging"
	"github.com/atomicstack/keyring-tui/internal/logging/events"
	uistate "github.com/atomicstack/keyring-tui/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

const keyringChangedMessage = "keyring changed, :refresh to reload"

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.watcher == nil {
		return nil
	}
	return waitForBackendEvent(m.watcher)
}

func (m *Model) handleBackendDoneMsg(tea.Msg) tea.Cmd {
	m.watcher = nil
	return nil
}

// applyBackendEvent compares the polled key set with the one on screen. The
// tables are never reloaded from here; a change is only announced.
func (m *Model) applyBackendEvent(evt backend.Event) {
	if evt.Err != nil {
		logging.Warnf("keyring watcher: %v", evt.Err)
		events.Engine.Error("watch", evt.Err)
		return
	}
	if evt.Signature == "" || evt.Signature == m.signature {
		return
	}
	events.Watcher.Changed(m.signature, evt.Signature)
	if m.prompt.Mode() != uistate.PromptIdle || m.prompt.Pending != nil {
		return
	}
	m.signature = evt.Signature
	m.output(command.OutputWarning, keyringChangedMessage)
}
