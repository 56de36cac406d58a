package state

import (
	"github.com/atomicstack/keyring-tui/internal/command"
	"github.com/atomicstack/keyring-tui/internal/keyring"
)

// Tab is the active view: the key table of a category or the help view.
type Tab struct {
	Help     bool
	Category keyring.Category
}

// KeysTab returns the key table tab of a category.
func KeysTab(category keyring.Category) Tab {
	return Tab{Category: category}
}

// HelpTab returns the help tab.
func HelpTab() Tab {
	return Tab{Help: true}
}

var tabOrder = []Tab{KeysTab(keyring.Public), KeysTab(keyring.Secret), HelpTab()}

func (t Tab) index() int {
	for i, tab := range tabOrder {
		if tab == t {
			return i
		}
	}
	return 0
}

// Next returns the tab after t, wrapping around.
func (t Tab) Next() Tab {
	return tabOrder[(t.index()+1)%len(tabOrder)]
}

// Previous returns the tab before t, wrapping around.
func (t Tab) Previous() Tab {
	return tabOrder[(t.index()+len(tabOrder)-1)%len(tabOrder)]
}

// Command returns the command that enters the tab.
func (t Tab) Command() command.Command {
	if t.Help {
		return command.ShowHelp{}
	}
	return command.ListKeys{Category: t.Category}
}

func (t Tab) String() string {
	if t.Help {
		return "help"
	}
	return "list " + t.Category.String()
}
