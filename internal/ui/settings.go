package ui

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/atomicstack/keyring-tui/internal/command"
	"github.com/atomicstack/keyring-tui/internal/keyring"
	"github.com/atomicstack/keyring-tui/internal/theme"
	uistate "github.com/atomicstack/keyring-tui/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

// set applies a named option. An invalid value leaves the option unchanged
// and reports a usage hint.
func (m *Model) set(option, value string) tea.Cmd {
	if option == "prompt" && (strings.HasPrefix(value, command.CommandPrefix) || strings.HasPrefix(value, command.SearchPrefix)) {
		m.leaveSearch()
		m.prompt.SetText(value)
		m.promptCursorDirty = true
		if m.prompt.Mode() == uistate.PromptSearch {
			m.applySearch()
		}
		return nil
	}
	value = strings.TrimSpace(value)
	switch option {
	case "output":
		info, err := os.Stat(value)
		if value == "" || err != nil || !info.IsDir() {
			m.failMessage("path does not exist")
			return nil
		}
		if abs, err := filepath.Abs(value); err == nil {
			value = abs
		}
		m.settings.OutputDir = value
		m.succeed("output directory: %q", value)
	case "mode":
		mode, err := command.ParseMode(value)
		if err != nil {
			m.failMessage("invalid mode")
			return nil
		}
		m.mode = mode
		m.succeed("mode: %s", mode.Name())
		return mouseCmd(mode)
	case "armor":
		armor, err := strconv.ParseBool(value)
		if err != nil {
			m.failMessage("usage: set armor <true/false>")
			return nil
		}
		m.settings.Armor = armor
		m.succeed("armor: %t", armor)
	case "minimized":
		minimized, err := strconv.ParseBool(value)
		if err != nil {
			m.failMessage("usage: set minimized <true/false>")
			return nil
		}
		m.settings.Minimize = 0
		m.settings.Minimized = minimized
		m.succeed("minimized: %t", minimized)
	case "minimize":
		threshold, err := strconv.Atoi(value)
		if err != nil || threshold < 0 {
			m.failMessage("usage: set minimize <width>")
			return nil
		}
		m.settings.Minimize = threshold
		m.applyMinimizeThreshold()
		m.succeed("minimize threshold: %d", threshold)
	case "detail":
		detail, err := keyring.ParseDetail(value)
		if err != nil {
			m.failMessage("usage: set detail <level>")
			return nil
		}
		key, ok := m.table.Selected()
		if !ok || m.tab.Help {
			m.failMessage("unknown selection")
			return nil
		}
		key.Detail = detail
		m.succeed("detail: %s", detail)
	case "margin":
		margin, err := strconv.Atoi(value)
		if err != nil || margin < 0 {
			m.failMessage("usage: set margin <rows>")
			return nil
		}
		m.settings.Margin = margin
		m.succeed("table margin: %d", margin)
	case "colored":
		colored, err := strconv.ParseBool(value)
		if err != nil {
			m.failMessage("usage: set colored <true/false>")
			return nil
		}
		m.settings.Colored = colored
		m.applyStyles()
		m.applyCursorStyle()
		m.succeed("colored: %t", colored)
	case "color":
		accent, err := theme.ParseColor(value)
		if err != nil {
			m.failMessage("usage: set color <name|#rrggbb>")
			return nil
		}
		m.settings.Accent = accent
		m.applyStyles()
		m.applyCursorStyle()
		m.succeed("color: %s", accent.Hex())
	case "":
		m.failMessage("usage: set <option> <value>")
	default:
		m.failMessage("unknown option: " + option)
	}
	return nil
}

// get reports the value of a named option.
func (m *Model) get(option string) {
	switch option {
	case "output":
		m.succeed("output directory: %q", m.settings.OutputDir)
	case "mode":
		m.succeed("mode: %s", m.mode.Name())
	case "armor":
		m.succeed("armor: %t", m.settings.Armor)
	case "minimized":
		m.succeed("minimized: %t", m.settings.Minimized)
	case "minimize":
		m.succeed("minimize threshold: %d", m.settings.Minimize)
	case "detail":
		key, ok := m.table.Selected()
		if !ok || m.tab.Help {
			m.failMessage("unknown selection")
			return
		}
		m.succeed("detail: %s", key.Detail)
	case "margin":
		m.succeed("table margin: %d", m.settings.Margin)
	case "colored":
		m.succeed("colored: %t", m.settings.Colored)
	case "color":
		m.succeed("color: %s", m.settings.Accent.Hex())
	case "":
		m.failMessage("usage: get <option>")
	default:
		m.failMessage("unknown option: " + option)
	}
}

// applyMinimizeThreshold switches the minimized view from the terminal width
// when a threshold is set.
func (m *Model) applyMinimizeThreshold() {
	if m.settings.Minimize == 0 || m.width <= 0 {
		return
	}
	m.settings.Minimized = m.width < m.settings.Minimize
}
