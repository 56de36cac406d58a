package ui

import (
	"errors"

	"github.com/atomicstack/keyring-tui/internal/keyring"
)

// ErrClipboardUnavailable is reported by copy and paste when no clipboard is
// configured.
var ErrClipboardUnavailable = errors.New("clipboard not available")

// Engine is the key management backend. Both *gpg.Client and *keyring.Store
// implement it.
type Engine interface {
	ListAll() (map[keyring.Category][]keyring.Key, error)
	Import(paths []string) (int, error)
	Export(category keyring.Category, patterns []string, opts keyring.ExportOptions) (string, error)
	ExportedBytes(category keyring.Category, patterns []string, opts keyring.ExportOptions) ([]byte, error)
	Delete(category keyring.Category, id string) error
	Send(id string) (string, error)
	Info() (string, error)
	// Program returns the binary and base arguments used for operations that
	// hand the terminal to the external program.
	Program() (string, []string)
}

// Clipboard is the system clipboard. A nil Clipboard means none is available.
type Clipboard interface {
	WriteAll(text string) error
	ReadAll() (string, error)
}
