package ui

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/atomicstack/keyring-tui/internal/backend"
	"github.com/atomicstack/keyring-tui/internal/command"
	"github.com/atomicstack/keyring-tui/internal/keyring"
	"github.com/atomicstack/keyring-tui/internal/logging"
	"github.com/atomicstack/keyring-tui/internal/logging/events"
	uicommand "github.com/atomicstack/keyring-tui/internal/ui/command"
	uistate "github.com/atomicstack/keyring-tui/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

// Dispatch applies cmd to the model. It is the single place where commands
// mutate state and the only caller of the engine. A Confirm command is held
// until it is affirmed; any other command cancels a pending confirmation.
func (m *Model) Dispatch(cmd command.Command) tea.Cmd {
	if cmd == nil {
		return nil
	}
	if confirm, ok := cmd.(command.Confirm); ok {
		if confirm.Command == nil {
			return nil
		}
		events.Command.Confirm(confirm.Command.String())
		m.prompt.SetCommand(confirm.Command)
		m.showOptions = false
		return nil
	}
	if m.prompt.Pending != nil {
		events.Command.Cancel(m.prompt.Pending.String())
		m.prompt.Clear()
	}
	events.Command.Run(commandKind(cmd), cmd.String())

	showOptions := false
	var out tea.Cmd
	switch c := cmd.(type) {
	case command.None:
	case command.ShowHelp:
		m.showHelp()
	case command.ShowOutput:
		m.output(c.Type, c.Message)
	case command.ShowOptions:
		m.openOptions()
		showOptions = true
	case command.ListKeys:
		m.listKeys(c.Category)
	case command.ImportKeys:
		if c.Receive {
			out = m.execute(c, append([]string{"--receive-keys"}, c.Paths...)...)
		} else {
			m.importKeys(c.Paths)
		}
	case command.ExportKeys:
		m.exportKeys(c.Category, c.Patterns)
	case command.DeleteKey:
		m.deleteKey(c.Category, c.ID)
	case command.SendKey:
		m.sendKey(c.ID)
	case command.EditKey:
		out = m.execute(c, "--edit-key", c.ID)
	case command.SignKey:
		out = m.execute(c, "--sign-key", c.ID)
	case command.GenerateKey:
		out = m.execute(c, "--full-generate-key")
	case command.RefreshKeys:
		out = m.execute(c, "--refresh-keys")
	case command.ToggleDetail:
		m.toggleDetail(c.All)
	case command.Scroll:
		showOptions = m.scroll(c)
	case command.Set:
		out = m.set(c.Option, c.Value)
	case command.Get:
		m.get(c.Option)
	case command.SwitchMode:
		out = m.switchMode(c.Mode)
	case command.Copy:
		out = m.copy(c.Target)
	case command.Paste:
		m.paste()
	case command.EnableInput:
		m.prompt.EnableCommandInput()
		m.promptCursorDirty = true
	case command.Search:
		m.search(c.Query)
	case command.NextTab:
		out = m.Dispatch(m.tab.Next().Command())
	case command.PreviousTab:
		out = m.Dispatch(m.tab.Previous().Command())
	case command.Refresh:
		out = m.reload()
	case command.Quit:
		m.running = false
		out = tea.Quit
	}
	m.showOptions = showOptions
	return out
}

func commandKind(cmd command.Command) string {
	return strings.ToLower(reflect.TypeOf(cmd).Name())
}

func (m *Model) output(kind command.OutputType, message string) {
	m.prompt.SetOutput(kind, message)
	events.Prompt.Output(int(kind), message)
}

func (m *Model) succeed(format string, args ...interface{}) {
	m.output(command.OutputSuccess, fmt.Sprintf(format, args...))
}

// fail reports err at the prompt behind prefix.
func (m *Model) fail(prefix string, err error) {
	logging.Error(fmt.Errorf("%s: %w", prefix, err))
	m.output(command.OutputFailure, fmt.Sprintf("%s: %v", prefix, err))
}

func (m *Model) failMessage(message string) {
	m.output(command.OutputFailure, message)
}

// errNoEngine is reported by engine operations on a model built without one.
var errNoEngine = errors.New("no engine configured")

// refresh reloads every category from the engine. The model is untouched
// when the engine fails.
func (m *Model) refresh() error {
	if m.engine == nil {
		return errNoEngine
	}
	events.Engine.Call("list", nil)
	all, err := m.engine.ListAll()
	if err != nil {
		events.Engine.Error("list", err)
		return err
	}
	m.mode = command.ModeNormal
	m.prompt.Clear()
	m.options.Cursor = 0
	m.settings.Detail = m.defaults.Detail
	m.settings.Margin = m.defaults.Margin
	m.keys.Load(all, m.settings.Detail)
	m.signature = backend.Signature(all)
	m.info = ""
	counts := make(map[string]int, len(all))
	for category, keys := range all {
		counts[category.String()] = len(keys)
	}
	events.Engine.Refresh(counts)
	if !m.tab.Help {
		keys, _ := m.keys.Keys(m.tab.Category)
		m.table.Replace(keys)
	}
	return nil
}

// reload is the refresh command: it reloads the keyring and re-enables mouse
// capture when visual mode was left.
func (m *Model) reload() tea.Cmd {
	previous := m.mode
	if err := m.refresh(); err != nil {
		m.fail("refresh error", err)
		return nil
	}
	if previous != m.mode {
		return mouseCmd(m.mode)
	}
	return nil
}

func mouseCmd(mode command.Mode) tea.Cmd {
	if mode == command.ModeVisual {
		return tea.DisableMouse
	}
	return tea.EnableMouseCellMotion
}

// saveTable stores the table of the active category so it can be restored
// when the category is shown again.
func (m *Model) saveTable() {
	if m.tab.Help {
		return
	}
	m.keys.SetTableState(m.tab.Category, m.table.State())
	m.keys.SetKeys(m.tab.Category, m.table.Default)
}

func (m *Model) showHelp() {
	m.leaveSearch()
	m.saveTable()
	m.tab = uistate.HelpTab()
	if _, ok := m.help.Selected(); !ok {
		m.help.MoveCursorHome()
	}
}

func (m *Model) listKeys(category keyring.Category) {
	keys, ok := m.keys.Keys(category)
	if !ok {
		if m.engine == nil {
			m.fail("refresh error", errNoEngine)
			return
		}
		events.Engine.Call("list", map[string]interface{}{"category": category.String()})
		all, err := m.engine.ListAll()
		if err != nil {
			events.Engine.Error("list", err)
			m.fail("refresh error", err)
			return
		}
		keys = make([]*keyring.Key, 0, len(all[category]))
		for _, key := range all[category] {
			dup := key.Clone()
			dup.Detail = m.settings.Detail
			keys = append(keys, &dup)
		}
		m.keys.SetKeys(category, keys)
	}
	m.leaveSearch()
	m.saveTable()
	m.table.Replace(keys)
	if st, ok := m.keys.TableState(category); ok {
		m.table.Restore(st)
	}
	m.tab = uistate.KeysTab(category)
}

func (m *Model) importKeys(paths []string) {
	if len(paths) == 0 {
		m.failMessage(keyring.ErrNoFiles.Error())
		return
	}
	if m.engine == nil {
		m.fail("import error", errNoEngine)
		return
	}
	events.Engine.Call("import", map[string]interface{}{"paths": paths})
	count, err := m.engine.Import(paths)
	if err != nil {
		events.Engine.Error("import", err)
		m.fail("import error", err)
		return
	}
	if err := m.refresh(); err != nil {
		m.fail("refresh error", err)
		return
	}
	m.succeed("%d keys imported", count)
}

func (m *Model) exportOptions() keyring.ExportOptions {
	return keyring.ExportOptions{Armor: m.settings.Armor, OutputDir: m.settings.OutputDir}
}

func (m *Model) exportKeys(category keyring.Category, patterns []string) {
	if m.engine == nil {
		m.fail("export error", errNoEngine)
		return
	}
	events.Engine.Call("export", map[string]interface{}{"category": category.String(), "patterns": patterns})
	path, err := m.engine.Export(category, patterns, m.exportOptions())
	if err != nil {
		events.Engine.Error("export", err)
		m.fail("export error", err)
		return
	}
	m.succeed("export: %s", path)
}

func (m *Model) deleteKey(category keyring.Category, id string) {
	if m.engine == nil {
		m.fail("delete error", errNoEngine)
		return
	}
	events.Engine.Call("delete", map[string]interface{}{"category": category.String(), "id": id})
	if err := m.engine.Delete(category, id); err != nil {
		events.Engine.Error("delete", err)
		m.fail("delete error", err)
		return
	}
	if err := m.refresh(); err != nil {
		m.fail("refresh error", err)
		return
	}
	m.succeed("key deleted: %s", id)
}

func (m *Model) sendKey(id string) {
	if m.engine == nil {
		m.fail("send error", errNoEngine)
		return
	}
	events.Engine.Call("send", map[string]interface{}{"id": id})
	sent, err := m.engine.Send(id)
	if err != nil {
		events.Engine.Error("send", err)
		m.fail("send error", err)
		return
	}
	m.succeed("key sent to the keyserver: 0x%s", strings.TrimPrefix(sent, "0x"))
}

// execute hands the terminal to the external program. The keyring is
// reloaded once it exits; see handleExitMsg.
func (m *Model) execute(cmd command.Command, args ...string) tea.Cmd {
	if m.engine == nil {
		m.fail("execution error", errNoEngine)
		return nil
	}
	program, base := m.engine.Program()
	full := make([]string, 0, len(base)+len(args))
	full = append(full, base...)
	full = append(full, args...)
	return m.bus.Execute(uicommand.Request{Label: cmd.String(), Program: program, Args: full})
}

func (m *Model) handleExitMsg(msg tea.Msg) tea.Cmd {
	exit, ok := msg.(uicommand.ExitMsg)
	if !ok {
		return nil
	}
	if !exit.Launched {
		m.fail("execution error", exit.Err)
		return nil
	}
	if exit.Err != nil {
		logging.Warnf("%s: %v", exit.Request.Label, exit.Err)
	}
	return m.reload()
}

func (m *Model) toggleDetail(all bool) {
	if m.tab.Help {
		return
	}
	if all {
		m.settings.Detail = m.settings.Detail.Increase()
		for _, key := range m.table.Default {
			key.Detail = m.settings.Detail
		}
		return
	}
	if key, ok := m.table.Selected(); ok {
		key.Detail = key.Detail.Increase()
	}
}

// scroll routes a movement to the options menu when it is open, to the
// key-binding list on the help tab and to the key table otherwise. It reports
// whether the options menu stays open.
func (m *Model) scroll(c command.Scroll) bool {
	amount := max(c.Amount, 1)
	if c.Row {
		if !m.tab.Help && !m.showOptions {
			m.table.ScrollRow(c.Direction, amount, m.rowOverflow())
		}
		return m.showOptions
	}
	switch {
	case m.showOptions:
		moveList(m.options, c.Direction, amount)
		return true
	case m.tab.Help:
		moveList(m.help, c.Direction, amount)
	default:
		switch c.Direction {
		case command.DirectionUp:
			m.table.Retreat(amount)
		case command.DirectionDown:
			m.table.Advance(amount)
		case command.DirectionTop:
			m.table.SelectFirst()
		case command.DirectionBottom:
			m.table.SelectLast()
		}
	}
	return false
}

func moveList[T any](l *uistate.List[T], direction command.Direction, amount int) {
	switch direction {
	case command.DirectionUp:
		for i := 0; i < amount; i++ {
			l.Previous()
		}
	case command.DirectionDown:
		for i := 0; i < amount; i++ {
			l.Next()
		}
	case command.DirectionTop:
		l.MoveCursorHome()
	case command.DirectionBottom:
		l.MoveCursorEnd()
	}
}

func (m *Model) switchMode(mode command.Mode) tea.Cmd {
	if mode == command.ModeCopy && (m.tab.Help || m.table.Len() == 0) {
		return nil
	}
	m.mode = mode
	m.output(command.OutputAction, mode.String())
	return mouseCmd(mode)
}

func (m *Model) search(query string) {
	m.prompt.EnableSearch(query)
	m.promptCursorDirty = true
	m.table.Reset()
	if query != "" {
		m.applySearch()
	}
}

func (m *Model) applySearch() {
	query := m.prompt.Query()
	m.table.ApplyFilter(query, m.searchText)
	events.Filter.Apply(query, m.table.Len(), len(m.table.Default))
}

// leaveSearch restores the unfiltered table when the prompt is in search
// mode.
func (m *Model) leaveSearch() {
	if m.prompt.Mode() != uistate.PromptSearch {
		return
	}
	m.prompt.Clear()
	m.table.Reset()
	events.Filter.Cleared(m.table.Len())
}

// searchText is the text a search matches against: both field groups at the
// key's detail level, unwrapped.
func (m *Model) searchText(key *keyring.Key) []string {
	return []string{
		strings.Join(key.SubkeyInfo(m.settings.Minimized), "\n"),
		strings.Join(key.UserInfo(m.settings.Minimized), "\n"),
	}
}
