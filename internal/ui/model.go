package ui

import (
	"reflect"
	"time"

	"github.com/atomicstack/keyring-tui/internal/backend"
	"github.com/atomicstack/keyring-tui/internal/command"
	"github.com/atomicstack/keyring-tui/internal/keyring"
	"github.com/atomicstack/keyring-tui/internal/logging/events"
	"github.com/atomicstack/keyring-tui/internal/state"
	"github.com/atomicstack/keyring-tui/internal/theme"
	uicommand "github.com/atomicstack/keyring-tui/internal/ui/command"
	uistate "github.com/atomicstack/keyring-tui/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	colorful "github.com/lucasb-eyer/go-colorful"
)

const defaultTickRate = 250 * time.Millisecond

type msgHandler func(tea.Msg) tea.Cmd

type tickMsg time.Time

// Settings are the user options reachable through set and get.
type Settings struct {
	OutputDir string
	Armor     bool
	Minimized bool
	// Minimize is the terminal width below which the table is minimized;
	// 0 disables the automatic switch.
	Minimize int
	// Detail is the table-wide detail level applied on refresh and by the
	// toggle-all command.
	Detail  keyring.Detail
	Margin  int
	Colored bool
	Accent  colorful.Color
}

// Config carries the collaborators and initial settings of a Model.
type Config struct {
	Engine    Engine
	Clipboard Clipboard
	Bus       *uicommand.Bus
	Watcher   *backend.Watcher
	Settings  Settings
	TickRate  time.Duration
	Now       func() time.Time
}

// Model implements the Bubble Tea model of the key manager.
type Model struct {
	engine    Engine
	clipboard Clipboard
	bus       *uicommand.Bus
	watcher   *backend.Watcher
	keys      state.KeyStore

	table   *uistate.Table[*keyring.Key]
	options *uistate.List[command.Command]
	help    *uistate.List[binding]
	prompt  *uistate.Prompt
	tab     uistate.Tab
	mode    command.Mode

	settings Settings
	defaults Settings
	styles   *theme.Styles
	keymap   keyMap

	promptCursor        cursor.Model
	promptCursorDirty   bool
	promptCursorFocused bool

	showOptions bool
	running     bool
	info        string
	width       int
	height      int
	tickRate    time.Duration

	// signature identifies the key set of the last refresh.
	signature string

	handlers map[reflect.Type]msgHandler
}

// NewModel builds the model and loads the keyring. A failed initial load is
// reported at the prompt; the model is usable either way.
func NewModel(cfg Config) *Model {
	bus := cfg.Bus
	if bus == nil {
		bus = uicommand.New()
	}
	settings := cfg.Settings
	if settings.Accent == (colorful.Color{}) {
		settings.Accent, _ = theme.ParseColor(theme.DefaultAccent)
	}
	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = defaultTickRate
	}
	km := newKeyMap()
	m := &Model{
		engine:    cfg.Engine,
		clipboard: cfg.Clipboard,
		bus:       bus,
		watcher:   cfg.Watcher,
		keys:      state.NewKeyStore(),
		table:     uistate.NewTable[*keyring.Key](nil),
		options:   uistate.NewList[command.Command](nil),
		help:      uistate.NewList(km.bindings()),
		prompt:    uistate.NewPrompt(cfg.Now),
		tab:       uistate.KeysTab(keyring.Public),
		mode:      command.ModeNormal,
		settings:  settings,
		defaults:  settings,
		keymap:    km,
		running:   true,
		tickRate:  tickRate,
	}
	m.applyStyles()
	c := cursor.New()
	c.SetChar(" ")
	m.promptCursor = c
	m.applyCursorStyle()
	m.registerHandlers()
	if err := m.refresh(); err != nil {
		m.fail("refresh error", err)
	}
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.tick()}
	if m.watcher != nil {
		cmds = append(cmds, waitForBackendEvent(m.watcher))
	}
	if cmd := m.promptCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	m.promptCursorFocused = true
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updatePromptCursor(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(tickMsg{}):           m.handleTickMsg,
		reflect.TypeOf(uicommand.ExitMsg{}): m.handleExitMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.promptCursorDirty && m.promptCursorFocused {
		m.promptCursorDirty = false
		m.promptCursor.Blink = false
		if cmd := m.promptCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) updatePromptCursor(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.promptCursor, cmd = m.promptCursor.Update(msg)
	return cmd
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.tickRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// handleTickMsg only expires the prompt message.
func (m *Model) handleTickMsg(tea.Msg) tea.Cmd {
	if m.prompt.Expire() {
		events.Prompt.Expire()
	}
	if !m.running {
		return nil
	}
	return m.tick()
}

func (m *Model) applyStyles() {
	m.styles = theme.New(m.settings.Colored, m.settings.Accent)
}

func (m *Model) applyCursorStyle() {
	if m.styles.Cursor != nil {
		m.promptCursor.Style = *m.styles.Cursor
	}
	if m.styles.Prompt != nil {
		m.promptCursor.TextStyle = *m.styles.Prompt
	}
}

// Running reports whether the model has not been asked to quit.
func (m *Model) Running() bool {
	return m.running
}

// Tab returns the active tab.
func (m *Model) Tab() uistate.Tab {
	return m.tab
}

// Mode returns the interaction mode.
func (m *Model) Mode() command.Mode {
	return m.mode
}

// Prompt exposes the prompt state.
func (m *Model) Prompt() *uistate.Prompt {
	return m.prompt
}

// Table exposes the key table of the active category.
func (m *Model) Table() *uistate.Table[*keyring.Key] {
	return m.table
}

// Options exposes the options menu.
func (m *Model) Options() *uistate.List[command.Command] {
	return m.options
}

// OptionsVisible reports whether the options menu is shown.
func (m *Model) OptionsVisible() bool {
	return m.showOptions
}

// Settings returns the current option values.
func (m *Model) Settings() Settings {
	return m.settings
}
