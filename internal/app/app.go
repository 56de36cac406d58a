package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/atomicstack/keyring-tui/internal/backend"
	"github.com/atomicstack/keyring-tui/internal/gpg"
	"github.com/atomicstack/keyring-tui/internal/keyring"
	"github.com/atomicstack/keyring-tui/internal/theme"
	"github.com/atomicstack/keyring-tui/internal/ui"
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	Program     string
	Homedir     string
	DefaultKey  string
	KeyringFile string

	Armor     bool
	OutputDir string
	Detail    keyring.Detail
	Margin    int
	Minimize  int
	Minimized bool
	Colored   bool
	Color     string

	TickRate      time.Duration
	WatchInterval time.Duration
}

// systemClipboard adapts the package-level clipboard functions.
type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

func (systemClipboard) ReadAll() (string, error) { return clipboard.ReadAll() }

// newEngine selects the keyring file store when a file is configured and
// gpg otherwise.
func newEngine(cfg Config) (ui.Engine, error) {
	if cfg.KeyringFile == "" {
		return gpg.New(gpg.Options{Program: cfg.Program, Homedir: cfg.Homedir, DefaultKey: cfg.DefaultKey}), nil
	}
	store, err := keyring.LoadFile(cfg.KeyringFile)
	if err != nil {
		return nil, fmt.Errorf("load keyring file: %w", err)
	}
	store.SetProgram(cfg.Program)
	return store, nil
}

func newClipboard() ui.Clipboard {
	if clipboard.Unsupported {
		return nil
	}
	return systemClipboard{}
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	engine, err := newEngine(cfg)
	if err != nil {
		return err
	}
	accent, err := theme.ParseColor(cfg.Color)
	if err != nil {
		return err
	}
	output := cfg.OutputDir
	if abs, err := filepath.Abs(output); err == nil {
		output = abs
	}

	var watcher *backend.Watcher
	if cfg.WatchInterval > 0 {
		watcher = backend.NewWatcher(engine, cfg.WatchInterval)
		defer watcher.Stop()
	}

	model := ui.NewModel(ui.Config{
		Engine:    engine,
		Clipboard: newClipboard(),
		Watcher:   watcher,
		TickRate:  cfg.TickRate,
		Settings: ui.Settings{
			OutputDir: output,
			Armor:     cfg.Armor,
			Minimized: cfg.Minimized,
			Minimize:  cfg.Minimize,
			Detail:    cfg.Detail,
			Margin:    cfg.Margin,
			Colored:   cfg.Colored,
			Accent:    accent,
		},
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
