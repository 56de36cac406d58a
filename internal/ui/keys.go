package ui

import (
	"strconv"

	"github.com/atomicstack/keyring-tui/internal/command"
	"github.com/atomicstack/keyring-tui/internal/keyring"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const pageStep = 5

// binding is an entry of the help tab's key-binding list.
type binding struct {
	keys string
	desc string
}

type keyMap struct {
	Help            key.Binding
	Options         key.Binding
	Select          key.Binding
	Input           key.Binding
	Search          key.Binding
	Refresh         key.Binding
	Quit            key.Binding
	Cancel          key.Binding
	NextTab         key.Binding
	PreviousTab     key.Binding
	ListPublic      key.Binding
	ListSecret      key.Binding
	Up              key.Binding
	Down            key.Binding
	PageUp          key.Binding
	PageDown        key.Binding
	Top             key.Binding
	Bottom          key.Binding
	RowUp           key.Binding
	RowDown         key.Binding
	ToggleDetail    key.Binding
	ToggleDetailAll key.Binding
	Export          key.Binding
	Delete          key.Binding
	Send            key.Binding
	Edit            key.Binding
	Sign            key.Binding
	Generate        key.Binding
	CopyMode        key.Binding
	VisualMode      key.Binding
	Paste           key.Binding
	Minimize        key.Binding
	Confirm         key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Help:            key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "show help")),
		Options:         key.NewBinding(key.WithKeys("o", " "), key.WithHelp("o, space", "show options")),
		Select:          key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run the selected option")),
		Input:           key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "enable command input")),
		Search:          key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Refresh:         key.NewBinding(key.WithKeys("r", "f5"), key.WithHelp("r, f5", "refresh application")),
		Quit:            key.NewBinding(key.WithKeys("q", "ctrl+c", "ctrl+d"), key.WithHelp("q, ctrl+c", "quit application")),
		Cancel:          key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel, close menu")),
		NextTab:         key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch to the next tab")),
		PreviousTab:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "switch to the previous tab")),
		ListPublic:      key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "list public keys")),
		ListSecret:      key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "list secret keys")),
		Up:              key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k, ↑", "move up")),
		Down:            key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j, ↓", "move down")),
		PageUp:          key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "move up by 5")),
		PageDown:        key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdown", "move down by 5")),
		Top:             key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g, home", "go to top")),
		Bottom:          key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G, end", "go to bottom")),
		RowUp:           key.NewBinding(key.WithKeys("alt+k", "ctrl+up"), key.WithHelp("alt+k", "scroll the row up")),
		RowDown:         key.NewBinding(key.WithKeys("alt+j", "ctrl+down"), key.WithHelp("alt+j", "scroll the row down")),
		ToggleDetail:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "toggle detail (selected)")),
		ToggleDetailAll: key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "toggle detail (all)")),
		Export:          key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export the selected key")),
		Delete:          key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d, del", "delete the selected key")),
		Send:            key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "send the key to the keyserver")),
		Edit:            key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "edit the selected key")),
		Sign:            key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sign the selected key")),
		Generate:        key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "generate a new key pair")),
		CopyMode:        key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "copy mode (1, 2, x, i, f, u)")),
		VisualMode:      key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "toggle visual mode")),
		Paste:           key.NewBinding(key.WithKeys("p", "ctrl+v"), key.WithHelp("p", "paste from clipboard")),
		Minimize:        key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "toggle minimized view")),
		Confirm:         key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "confirm the pending action")),
	}
}

func (km keyMap) all() []key.Binding {
	return []key.Binding{
		km.Help, km.Options, km.Select, km.Input, km.Search, km.Refresh, km.Quit, km.Cancel,
		km.NextTab, km.PreviousTab, km.ListPublic, km.ListSecret,
		km.Up, km.Down, km.PageUp, km.PageDown, km.Top, km.Bottom, km.RowUp, km.RowDown,
		km.ToggleDetail, km.ToggleDetailAll, km.Export, km.Delete, km.Send, km.Edit, km.Sign,
		km.Generate, km.CopyMode, km.VisualMode, km.Paste, km.Minimize, km.Confirm,
	}
}

// bindings lists the help entries of every binding.
func (km keyMap) bindings() []binding {
	all := km.all()
	out := make([]binding, 0, len(all))
	for _, b := range all {
		help := b.Help()
		out = append(out, binding{keys: help.Key, desc: help.Desc})
	}
	return out
}

// keyCommand translates a key press outside of text entry into a command. It
// returns nil for unbound keys and for actions that need a selected key when
// there is none.
func (m *Model) keyCommand(msg tea.KeyMsg) command.Command {
	km := m.keymap
	switch {
	case key.Matches(msg, km.Quit):
		return command.Quit{}
	case key.Matches(msg, km.Help):
		return command.ShowHelp{}
	case key.Matches(msg, km.Options), key.Matches(msg, km.Select):
		return command.ShowOptions{}
	case key.Matches(msg, km.Input):
		return command.EnableInput{}
	case key.Matches(msg, km.Search):
		return command.Search{}
	case key.Matches(msg, km.Refresh):
		return command.Refresh{}
	case key.Matches(msg, km.Cancel):
		if m.mode != command.ModeNormal {
			return command.SwitchMode{Mode: command.ModeNormal}
		}
		return command.None{}
	case key.Matches(msg, km.NextTab):
		return command.NextTab{}
	case key.Matches(msg, km.PreviousTab):
		return command.PreviousTab{}
	case key.Matches(msg, km.ListPublic):
		return command.ListKeys{Category: keyring.Public}
	case key.Matches(msg, km.ListSecret):
		return command.ListKeys{Category: keyring.Secret}
	case key.Matches(msg, km.Up):
		return command.Scroll{Direction: command.DirectionUp, Amount: 1}
	case key.Matches(msg, km.Down):
		return command.Scroll{Direction: command.DirectionDown, Amount: 1}
	case key.Matches(msg, km.PageUp):
		return command.Scroll{Direction: command.DirectionUp, Amount: pageStep}
	case key.Matches(msg, km.PageDown):
		return command.Scroll{Direction: command.DirectionDown, Amount: pageStep}
	case key.Matches(msg, km.Top):
		return command.Scroll{Direction: command.DirectionTop, Amount: 1}
	case key.Matches(msg, km.Bottom):
		return command.Scroll{Direction: command.DirectionBottom, Amount: 1}
	case key.Matches(msg, km.RowUp):
		return command.Scroll{Direction: command.DirectionUp, Amount: 1, Row: true}
	case key.Matches(msg, km.RowDown):
		return command.Scroll{Direction: command.DirectionDown, Amount: 1, Row: true}
	case key.Matches(msg, km.ToggleDetail):
		return command.ToggleDetail{All: false}
	case key.Matches(msg, km.ToggleDetailAll):
		return command.ToggleDetail{All: true}
	case key.Matches(msg, km.VisualMode):
		return m.visualToggle()
	case key.Matches(msg, km.Paste):
		return command.Paste{}
	case key.Matches(msg, km.Minimize):
		return command.Set{Option: "minimized", Value: strconv.FormatBool(!m.settings.Minimized)}
	case key.Matches(msg, km.Generate):
		return command.GenerateKey{}
	}
	if m.tab.Help {
		return nil
	}
	selected, ok := m.table.Selected()
	switch {
	case key.Matches(msg, km.Export):
		if !ok {
			return command.ExportKeys{Category: m.tab.Category}
		}
		return command.ExportKeys{Category: m.tab.Category, Patterns: []string{selected.ID()}}
	case !ok:
		return nil
	case key.Matches(msg, km.Delete):
		return command.Confirm{Command: command.DeleteKey{Category: m.tab.Category, ID: selected.ID()}}
	case key.Matches(msg, km.Send):
		return command.Confirm{Command: command.SendKey{ID: selected.ID()}}
	case key.Matches(msg, km.Edit):
		return command.EditKey{ID: selected.ID()}
	case key.Matches(msg, km.Sign):
		return command.SignKey{ID: selected.ID()}
	case key.Matches(msg, km.CopyMode):
		return command.SwitchMode{Mode: command.ModeCopy}
	}
	return nil
}
