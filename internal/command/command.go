// Package command defines the closed set of commands the dispatcher accepts,
// their menu labels, and the parser for commands typed at the prompt.
package command

import (
	"fmt"
	"strings"

	"github.com/atomicstack/keyring-tui/internal/keyring"
)

// Command is a discrete request handled by the dispatcher. The set is closed:
// only the types in this package implement it.
type Command interface {
	fmt.Stringer
	command()
}

// Mode is the interaction mode of the interface.
type Mode int

const (
	ModeNormal Mode = iota
	ModeVisual
	ModeCopy
)

// ParseMode accepts mode names and their first letter.
func ParseMode(value string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "normal", "n":
		return ModeNormal, nil
	case "visual", "v":
		return ModeVisual, nil
	case "copy", "c":
		return ModeCopy, nil
	}
	return ModeNormal, fmt.Errorf("invalid mode: %q", value)
}

// Name returns the lower-case mode name.
func (m Mode) Name() string {
	switch m {
	case ModeVisual:
		return "visual"
	case ModeCopy:
		return "copy"
	default:
		return "normal"
	}
}

// String returns the banner shown when the mode is entered.
func (m Mode) String() string {
	return "-- " + strings.ToUpper(m.Name()) + " --"
}

// Target selects what Copy places on the clipboard.
type Target int

const (
	TargetRow1 Target = iota
	TargetRow2
	TargetKey
	TargetKeyID
	TargetFingerprint
	TargetUserID
)

func (t Target) String() string {
	switch t {
	case TargetRow1:
		return "table row (1)"
	case TargetRow2:
		return "table row (2)"
	case TargetKey:
		return "exported key"
	case TargetKeyID:
		return "key id"
	case TargetFingerprint:
		return "key fingerprint"
	case TargetUserID:
		return "user id"
	}
	return "unknown"
}

// ParseTarget accepts the copy target names used at the prompt and in copy mode.
func ParseTarget(value string) (Target, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "row1":
		return TargetRow1, nil
	case "2", "row2":
		return TargetRow2, nil
	case "key", "x":
		return TargetKey, nil
	case "id", "keyid", "i":
		return TargetKeyID, nil
	case "fingerprint", "fpr", "f":
		return TargetFingerprint, nil
	case "userid", "user", "uid", "u":
		return TargetUserID, nil
	}
	return TargetRow1, fmt.Errorf("invalid copy target: %q", value)
}

// Direction is the kind of a scroll movement.
type Direction int

const (
	DirectionUp Direction = iota
	DirectionDown
	DirectionTop
	DirectionBottom
)

func (d Direction) String() string {
	switch d {
	case DirectionDown:
		return "down"
	case DirectionTop:
		return "top"
	case DirectionBottom:
		return "bottom"
	default:
		return "up"
	}
}

// ParseDirection accepts up, down, top and bottom along with their vi keys.
func ParseDirection(value string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "up", "u", "k":
		return DirectionUp, nil
	case "down", "d", "j":
		return DirectionDown, nil
	case "top", "t", "home":
		return DirectionTop, nil
	case "bottom", "b", "end":
		return DirectionBottom, nil
	}
	return DirectionUp, fmt.Errorf("invalid scroll direction: %q", value)
}

// OutputType classifies a prompt message.
type OutputType int

const (
	OutputNone OutputType = iota
	OutputSuccess
	OutputWarning
	OutputFailure
	OutputAction
)

// Prefix returns the marker rendered in front of a message of this type.
func (o OutputType) Prefix() string {
	switch o {
	case OutputSuccess:
		return "(i) "
	case OutputWarning:
		return "(w) "
	case OutputFailure:
		return "(e) "
	case OutputAction:
		return "(a) "
	}
	return ""
}

type (
	// None does nothing. Selecting it in the options menu closes the menu.
	None struct{}
	// ShowHelp switches to the help tab.
	ShowHelp struct{}
	// ShowOutput sets a prompt message.
	ShowOutput struct {
		Type    OutputType
		Message string
	}
	// ShowOptions opens the options menu for the active tab.
	ShowOptions struct{}
	// ListKeys switches to the key table of a category.
	ListKeys struct{ Category keyring.Category }
	// ImportKeys imports files, or receives key ids from the keyserver when
	// Receive is set.
	ImportKeys struct {
		Paths   []string
		Receive bool
	}
	// ExportKeys exports matching keys; no patterns exports the category.
	ExportKeys struct {
		Category keyring.Category
		Patterns []string
	}
	// DeleteKey deletes a key.
	DeleteKey struct {
		Category keyring.Category
		ID       string
	}
	// SendKey uploads a key to the keyserver.
	SendKey struct{ ID string }
	// EditKey opens the key editor of the external program.
	EditKey struct{ ID string }
	// SignKey certifies a key with the default key.
	SignKey struct{ ID string }
	// GenerateKey runs interactive key generation.
	GenerateKey struct{}
	// RefreshKeys refreshes the keyring from the keyserver.
	RefreshKeys struct{}
	// ToggleDetail raises the detail level of the selection, or of every
	// record when All is set.
	ToggleDetail struct{ All bool }
	// Scroll moves the selection, or the lines of the selected row when Row is
	// set.
	Scroll struct {
		Direction Direction
		Amount    int
		Row       bool
	}
	// Set changes a named option.
	Set struct{ Option, Value string }
	// Get reports a named option.
	Get struct{ Option string }
	// SwitchMode changes the interaction mode.
	SwitchMode struct{ Mode Mode }
	// Copy places the selected target on the clipboard.
	Copy struct{ Target Target }
	// Paste seeds the prompt with the clipboard contents.
	Paste struct{}
	// EnableInput opens command entry.
	EnableInput struct{}
	// Search opens search entry seeded with Query.
	Search struct{ Query string }
	// NextTab cycles to the next tab.
	NextTab struct{}
	// PreviousTab cycles to the previous tab.
	PreviousTab struct{}
	// Refresh reloads everything from the engine.
	Refresh struct{}
	// Quit stops the program.
	Quit struct{}
	// Confirm asks for confirmation before running Command.
	Confirm struct{ Command Command }
)

func (None) command()         {}
func (ShowHelp) command()     {}
func (ShowOutput) command()   {}
func (ShowOptions) command()  {}
func (ListKeys) command()     {}
func (ImportKeys) command()   {}
func (ExportKeys) command()   {}
func (DeleteKey) command()    {}
func (SendKey) command()      {}
func (EditKey) command()      {}
func (SignKey) command()      {}
func (GenerateKey) command()  {}
func (RefreshKeys) command()  {}
func (ToggleDetail) command() {}
func (Scroll) command()       {}
func (Set) command()          {}
func (Get) command()          {}
func (SwitchMode) command()   {}
func (Copy) command()         {}
func (Paste) command()        {}
func (EnableInput) command()  {}
func (Search) command()       {}
func (NextTab) command()      {}
func (PreviousTab) command()  {}
func (Refresh) command()      {}
func (Quit) command()         {}
func (Confirm) command()      {}

func (None) String() string        { return "close menu" }
func (ShowHelp) String() string    { return "show help" }
func (ShowOptions) String() string { return "show options" }
func (GenerateKey) String() string { return "generate a new key pair" }
func (RefreshKeys) String() string { return "refresh the keyring" }
func (Paste) String() string       { return "paste from clipboard" }
func (EnableInput) String() string { return "enable command input" }
func (NextTab) String() string     { return "switch to the next tab" }
func (PreviousTab) String() string { return "switch to the previous tab" }
func (Refresh) String() string     { return "refresh application" }
func (Quit) String() string        { return "quit application" }

func (c ShowOutput) String() string { return "show output: " + c.Message }

func (c ListKeys) String() string {
	return fmt.Sprintf("list %s keys", categoryName(c.Category))
}

func (c ImportKeys) String() string {
	if c.Receive {
		return "receive " + keysLabel(c.Paths)
	}
	return "import " + keysLabel(c.Paths)
}

func (c ExportKeys) String() string {
	if len(c.Patterns) == 0 {
		return fmt.Sprintf("export all %s keys", categoryName(c.Category))
	}
	return fmt.Sprintf("export %s key %s", categoryName(c.Category), strings.Join(c.Patterns, " "))
}

func (c DeleteKey) String() string {
	return fmt.Sprintf("delete %s key %s", categoryName(c.Category), c.ID)
}

func (c SendKey) String() string { return "send key " + c.ID + " to the keyserver" }
func (c EditKey) String() string { return "edit key " + c.ID }
func (c SignKey) String() string { return "sign key " + c.ID }

func (c ToggleDetail) String() string {
	if c.All {
		return "toggle detail (all)"
	}
	return "toggle detail (selected)"
}

func (c Scroll) String() string {
	target := "scroll"
	if c.Row {
		target = "scroll row"
	}
	if c.Amount > 1 {
		return fmt.Sprintf("%s %s %d", target, c.Direction, c.Amount)
	}
	return fmt.Sprintf("%s %s", target, c.Direction)
}

func (c Set) String() string {
	switch c.Option {
	case "prompt":
		switch strings.TrimSpace(c.Value) {
		case ":import":
			return "import key(s)"
		case ":receive":
			return "receive key(s) from the keyserver"
		}
		return "set prompt text"
	case "armor":
		if c.Value == "true" {
			return "enable armored output"
		}
		return "disable armored output"
	case "margin":
		return "toggle table margin"
	case "minimized":
		return "toggle minimized view"
	case "colored":
		return "toggle colors"
	}
	return fmt.Sprintf("set %s to %s", c.Option, c.Value)
}

func (c Get) String() string        { return "get " + c.Option }
func (c SwitchMode) String() string { return "switch to " + c.Mode.Name() + " mode" }
func (c Copy) String() string       { return "copy " + c.Target.String() }
func (c Search) String() string     { return "search " + c.Query }
func (c Confirm) String() string {
	if c.Command == nil {
		return "confirm"
	}
	return c.Command.String()
}

func categoryName(c keyring.Category) string {
	if c == keyring.Secret {
		return "secret"
	}
	return "public"
}

func keysLabel(items []string) string {
	if len(items) == 0 {
		return "keys"
	}
	return strings.Join(items, " ")
}
