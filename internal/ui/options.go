package ui

import (
	"strconv"

	"github.com/atomicstack/keyring-tui/internal/command"
	"github.com/atomicstack/keyring-tui/internal/keyring"
)

// openOptions rebuilds the options menu for the active tab and selection.
func (m *Model) openOptions() {
	m.options.Rebuild(m.optionCommands())
}

// optionCommands lists the commands offered by the options menu. Toggle labels
// follow the current option values, and entries that need a selected key are
// left out when the table is empty.
func (m *Model) optionCommands() []command.Command {
	if m.tab.Help {
		return []command.Command{
			command.None{},
			command.ListKeys{Category: keyring.Public},
			command.ListKeys{Category: keyring.Secret},
			m.visualToggle(),
			command.Refresh{},
			command.Quit{},
		}
	}
	category := m.tab.Category
	key, selected := m.table.Selected()
	cmds := []command.Command{
		command.None{},
		command.ShowHelp{},
		command.Refresh{},
		command.RefreshKeys{},
		command.Set{Option: "prompt", Value: command.CommandPrefix + "import "},
		command.Set{Option: "prompt", Value: command.CommandPrefix + "receive "},
	}
	if selected {
		cmds = append(cmds, command.ExportKeys{Category: category, Patterns: []string{key.ID()}})
	}
	cmds = append(cmds, command.ExportKeys{Category: category})
	if selected {
		cmds = append(cmds,
			command.Confirm{Command: command.DeleteKey{Category: category, ID: key.ID()}},
			command.Confirm{Command: command.SendKey{ID: key.ID()}},
		)
		if !key.Revoked() {
			cmds = append(cmds, command.EditKey{ID: key.ID()}, command.SignKey{ID: key.ID()})
		}
	}
	cmds = append(cmds,
		command.GenerateKey{},
		command.Set{Option: "armor", Value: strconv.FormatBool(!m.settings.Armor)},
	)
	if selected {
		cmds = append(cmds,
			command.Copy{Target: command.TargetKey},
			command.Copy{Target: command.TargetKeyID},
			command.Copy{Target: command.TargetFingerprint},
		)
		if key.UserID() != "" {
			cmds = append(cmds, command.Copy{Target: command.TargetUserID})
		}
		cmds = append(cmds,
			command.Copy{Target: command.TargetRow1},
			command.Copy{Target: command.TargetRow2},
		)
	}
	cmds = append(cmds, command.Paste{})
	if selected {
		cmds = append(cmds, command.ToggleDetail{All: false})
	}
	margin := "1"
	if m.settings.Margin > 0 {
		margin = "0"
	}
	cmds = append(cmds,
		command.ToggleDetail{All: true},
		command.Set{Option: "margin", Value: margin},
		command.Set{Option: "minimized", Value: strconv.FormatBool(!m.settings.Minimized)},
		command.Set{Option: "colored", Value: strconv.FormatBool(!m.settings.Colored)},
		m.visualToggle(),
		command.Quit{},
	)
	return cmds
}

func (m *Model) visualToggle() command.Command {
	if m.mode == command.ModeVisual {
		return command.SwitchMode{Mode: command.ModeNormal}
	}
	return command.SwitchMode{Mode: command.ModeVisual}
}
