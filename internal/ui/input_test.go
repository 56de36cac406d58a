package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/atomicstack/keyring-tui/internal/command"
	"github.com/atomicstack/keyring-tui/internal/keyring"
	uistate "github.com/atomicstack/keyring-tui/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

func TestPromptEditing(t *testing.T) {
	h := newTestHarness(t, Config{})
	p := h.Model().Prompt()
	press(h, ":")
	if p.Mode() != uistate.PromptCommand {
		t.Fatalf("expected command entry, got %v", p.Mode())
	}
	typeText(h, "get margin")
	if p.Text != ":get margin" {
		t.Fatalf("unexpected entry %q", p.Text)
	}
	press(h, "ctrl+w")
	if p.Text != ":get " {
		t.Fatalf("expected word deletion, got %q", p.Text)
	}
	press(h, "home")
	typeText(h, "x")
	if p.Text != ":xget " || p.CursorPos() != 2 {
		t.Fatalf("expected insertion behind the prefix, got %q at %d", p.Text, p.CursorPos())
	}
	press(h, "ctrl+u")
	if p.Text != ":" {
		t.Fatalf("expected ctrl+u to keep the prefix, got %q", p.Text)
	}
	press(h, "backspace")
	if p.Mode() != uistate.PromptIdle {
		t.Fatalf("expected deleting the prefix to leave entry mode")
	}
}

func TestPromptIgnoresBindingsWhileTyping(t *testing.T) {
	h := newTestHarness(t, Config{})
	m := h.Model()
	press(h, ":")
	typeText(h, "q")
	if !m.Running() {
		t.Fatalf("expected q to be typed, not to quit")
	}
	press(h, "esc")
	if m.Prompt().Text != "" {
		t.Fatalf("expected esc to close the prompt, got %q", m.Prompt().Text)
	}
}

func TestCommandCompletion(t *testing.T) {
	h := newTestHarness(t, Config{})
	p := h.Model().Prompt()
	press(h, ":")
	typeText(h, "gen")
	press(h, "tab")
	if p.Text != ":generate " {
		t.Fatalf("expected completion, got %q", p.Text)
	}
	press(h, "tab")
	if p.Text != ":generate " {
		t.Fatalf("expected completed entry to stay, got %q", p.Text)
	}
}

func TestInvalidCommand(t *testing.T) {
	h := newTestHarness(t, Config{})
	run(h, "frobnicate now")
	p := h.Model().Prompt()
	if p.Output != command.OutputFailure || p.Message != "invalid command: frobnicate now" {
		t.Fatalf("unexpected message %q", p.Message)
	}
}

func TestSearchFiltersAndRestores(t *testing.T) {
	h := newTestHarness(t, Config{})
	m := h.Model()
	press(h, "/")
	if m.Prompt().Mode() != uistate.PromptSearch {
		t.Fatalf("expected search entry")
	}
	typeText(h, "CAROL")
	if m.Table().Len() != 1 {
		t.Fatalf("expected one match, got %d", m.Table().Len())
	}
	key, _ := m.Table().Selected()
	if key.UserID() != "Carol <carol@example.org>" {
		t.Fatalf("unexpected match %q", key.UserID())
	}
	typeText(h, "zzz")
	if m.Table().Len() != 0 {
		t.Fatalf("expected no matches, got %d", m.Table().Len())
	}
	if !strings.Contains(h.View(), "no keys match") {
		t.Fatalf("expected empty search notice in view")
	}
	press(h, "backspace", "backspace", "backspace", "enter")
	if m.Table().Len() != 3 {
		t.Fatalf("expected every key after leaving search, got %d", m.Table().Len())
	}
	key, _ = m.Table().Selected()
	if key.UserID() != "Carol <carol@example.org>" {
		t.Fatalf("expected the matched key to stay selected, got %q", key.UserID())
	}
}

func TestSearchCommandWithQuery(t *testing.T) {
	h := newTestHarness(t, Config{})
	m := h.Model()
	run(h, "search bob")
	if m.Prompt().Text != "/bob" || m.Table().Len() != 1 {
		t.Fatalf("expected seeded search, got %q with %d rows", m.Prompt().Text, m.Table().Len())
	}
	press(h, "esc")
	if m.Table().Len() != 3 || m.Prompt().Mode() != uistate.PromptIdle {
		t.Fatalf("expected esc to leave search")
	}
}

func TestSwitchingTabLeavesSearch(t *testing.T) {
	h := newTestHarness(t, Config{})
	m := h.Model()
	run(h, "search bob")
	m.Dispatch(command.ListKeys{Category: keyring.Secret})
	if m.Prompt().Mode() != uistate.PromptIdle {
		t.Fatalf("expected switching tabs to leave search")
	}
	m.Dispatch(command.ListKeys{Category: keyring.Public})
	if m.Table().Len() != 3 {
		t.Fatalf("expected unfiltered table, got %d", m.Table().Len())
	}
}

func TestSetAndGetArmor(t *testing.T) {
	h := newTestHarness(t, Config{})
	m := h.Model()
	run(h, "set armor true")
	if !m.Settings().Armor || m.Prompt().Message != "armor: true" {
		t.Fatalf("expected armor on, got %v %q", m.Settings().Armor, m.Prompt().Message)
	}
	run(h, "get armor")
	if m.Prompt().Message != "armor: true" {
		t.Fatalf("unexpected get output %q", m.Prompt().Message)
	}
	run(h, "set armor maybe")
	if !m.Settings().Armor {
		t.Fatalf("expected invalid value to leave armor unchanged")
	}
	if m.Prompt().Message != "usage: set armor <true/false>" {
		t.Fatalf("unexpected usage message %q", m.Prompt().Message)
	}
}

func TestSetValidation(t *testing.T) {
	cases := []struct {
		entry string
		want  string
	}{
		{"set", "usage: set <option> <value>"},
		{"get", "usage: get <option>"},
		{"set margin -1", "usage: set margin <rows>"},
		{"set minimize wide", "usage: set minimize <width>"},
		{"set minimized perhaps", "usage: set minimized <true/false>"},
		{"set detail huge", "usage: set detail <level>"},
		{"set colored 2", "usage: set colored <true/false>"},
		{"set color nope", "usage: set color <name|#rrggbb>"},
		{"set mode fancy", "invalid mode"},
		{"set output /does/not/exist", "path does not exist"},
		{"set volume 11", "unknown option: volume"},
		{"get volume", "unknown option: volume"},
	}
	for _, tc := range cases {
		h := newTestHarness(t, Config{})
		before := h.Model().Settings()
		run(h, tc.entry)
		p := h.Model().Prompt()
		if p.Output != command.OutputFailure || p.Message != tc.want {
			t.Fatalf("%q: expected %q, got %q", tc.entry, tc.want, p.Message)
		}
		if h.Model().Settings() != before {
			t.Fatalf("%q: expected settings unchanged", tc.entry)
		}
	}
}

func TestSetOptions(t *testing.T) {
	h := newTestHarness(t, Config{})
	m := h.Model()
	dir := t.TempDir()
	run(h, "set output "+dir)
	if m.Settings().OutputDir != dir {
		t.Fatalf("expected output %q, got %q", dir, m.Settings().OutputDir)
	}
	run(h, "set margin 3")
	if m.Settings().Margin != 3 {
		t.Fatalf("expected margin 3, got %d", m.Settings().Margin)
	}
	run(h, "set detail full")
	key, _ := m.Table().Selected()
	if key.Detail != keyring.DetailFull {
		t.Fatalf("expected full detail on the selection, got %v", key.Detail)
	}
	run(h, "get detail")
	if m.Prompt().Message != "detail: full" {
		t.Fatalf("unexpected detail output %q", m.Prompt().Message)
	}
	run(h, "set color red")
	if m.Settings().Accent.Hex() == "" || !strings.HasPrefix(m.Prompt().Message, "color: #") {
		t.Fatalf("unexpected color output %q", m.Prompt().Message)
	}
	run(h, "set minimize 200")
	if !m.Settings().Minimized {
		t.Fatalf("expected a 120 column terminal to be minimized below 200")
	}
	h.Send(tea.WindowSizeMsg{Width: 220, Height: 40})
	if m.Settings().Minimized {
		t.Fatalf("expected a wide terminal to leave the minimized view")
	}
	run(h, "set mode visual")
	if m.Mode() != command.ModeVisual {
		t.Fatalf("expected visual mode, got %v", m.Mode())
	}
}

func TestSetPromptSeedsEntry(t *testing.T) {
	h := newTestHarness(t, Config{})
	m := h.Model()
	m.Dispatch(command.Set{Option: "prompt", Value: ":import "})
	if m.Prompt().Text != ":import " || m.Prompt().Mode() != uistate.PromptCommand {
		t.Fatalf("unexpected prompt %q", m.Prompt().Text)
	}
	m.Dispatch(command.Set{Option: "prompt", Value: "/carol"})
	if m.Table().Len() != 1 {
		t.Fatalf("expected seeded search to filter, got %d rows", m.Table().Len())
	}
}

func TestGetDetailWithoutSelection(t *testing.T) {
	h := newTestHarness(t, Config{Engine: keyring.NewStore()})
	run(h, "get detail")
	if msg := h.Model().Prompt().Message; msg != "unknown selection" {
		t.Fatalf("expected unknown selection, got %q", msg)
	}
}

func TestCopyMode(t *testing.T) {
	clip := &fakeClipboard{}
	h := newTestHarness(t, Config{Clipboard: clip})
	m := h.Model()
	id := selectedID(t, m)
	press(h, "x")
	if m.Mode() != command.ModeCopy {
		t.Fatalf("expected copy mode, got %v", m.Mode())
	}
	press(h, "i")
	if clip.text != id {
		t.Fatalf("expected key id %q on the clipboard, got %q", id, clip.text)
	}
	if m.Mode() != command.ModeNormal {
		t.Fatalf("expected copy to return to normal mode")
	}
	if m.Prompt().Message != "key id copied to clipboard" {
		t.Fatalf("unexpected message %q", m.Prompt().Message)
	}
}

func TestCopyTargets(t *testing.T) {
	clip := &fakeClipboard{}
	h := newTestHarness(t, Config{Clipboard: clip})
	m := h.Model()
	key, _ := m.Table().Selected()

	run(h, "copy fingerprint")
	if clip.text != key.Fingerprint() {
		t.Fatalf("expected fingerprint, got %q", clip.text)
	}
	run(h, "copy uid")
	if clip.text != key.UserID() {
		t.Fatalf("expected user id, got %q", clip.text)
	}
	run(h, "copy 2")
	if !strings.Contains(clip.text, key.UserID()) {
		t.Fatalf("expected second row to contain the user id, got %q", clip.text)
	}
	run(h, "copy key")
	if !strings.Contains(clip.text, "BEGIN") {
		t.Fatalf("expected an armored export, got %q", clip.text)
	}
}

func TestCopyFailures(t *testing.T) {
	h := newTestHarness(t, Config{})
	run(h, "copy id")
	if msg := h.Model().Prompt().Message; msg != ErrClipboardUnavailable.Error() {
		t.Fatalf("expected missing clipboard, got %q", msg)
	}

	clip := &fakeClipboard{writeErr: errors.New("no display")}
	h = newTestHarness(t, Config{Clipboard: clip})
	run(h, "copy id")
	if msg := h.Model().Prompt().Message; msg != "clipboard error: no display" {
		t.Fatalf("unexpected message %q", msg)
	}

	h = newTestHarness(t, Config{Clipboard: &fakeClipboard{}})
	press(h, "?")
	run(h, "copy id")
	if msg := h.Model().Prompt().Message; msg != "copy error: no key selected" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestCopyModeIgnoredWithoutKeys(t *testing.T) {
	h := newTestHarness(t, Config{Engine: keyring.NewStore()})
	h.Model().Dispatch(command.SwitchMode{Mode: command.ModeCopy})
	if h.Model().Mode() != command.ModeNormal {
		t.Fatalf("expected copy mode to need a key")
	}
}

func TestPaste(t *testing.T) {
	clip := &fakeClipboard{text: "import a.yaml\nb.yaml\n"}
	h := newTestHarness(t, Config{Clipboard: clip})
	press(h, "p")
	if text := h.Model().Prompt().Text; text != ":import a.yaml b.yaml" {
		t.Fatalf("unexpected pasted entry %q", text)
	}

	h = newTestHarness(t, Config{})
	press(h, "p")
	if msg := h.Model().Prompt().Message; msg != ErrClipboardUnavailable.Error() {
		t.Fatalf("expected missing clipboard, got %q", msg)
	}
}

func TestMouseWheelScrolls(t *testing.T) {
	h := newTestHarness(t, Config{})
	m := h.Model()
	h.Send(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	if m.Table().Cursor != 1 {
		t.Fatalf("expected wheel to move down, cursor=%d", m.Table().Cursor)
	}
	press(h, "v")
	h.Send(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	if m.Table().Cursor != 1 {
		t.Fatalf("expected wheel to be ignored in visual mode")
	}
}

func TestHelpListScrolls(t *testing.T) {
	h := newTestHarness(t, Config{})
	m := h.Model()
	press(h, "?", "j", "j")
	if m.help.Cursor != 2 {
		t.Fatalf("expected help cursor 2, got %d", m.help.Cursor)
	}
	press(h, "G")
	if m.help.Cursor != len(m.help.Items)-1 {
		t.Fatalf("expected help cursor at the end, got %d", m.help.Cursor)
	}
	if m.Table().Cursor != 0 {
		t.Fatalf("expected key table untouched")
	}
}
