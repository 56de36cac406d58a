package ui

import (
	"strings"
	"testing"

	"github.com/atomicstack/keyring-tui/internal/format/table"
	"github.com/atomicstack/keyring-tui/internal/keyring"
	tea "github.com/charmbracelet/bubbletea"
)

func TestViewShowsKeyTable(t *testing.T) {
	h := newTestHarness(t, Config{})
	view := h.View()
	for _, want := range []string{"list pub (1/3)", "Alice <alice@example.org>", "Carol <carol@example.org>", rowIndicator} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected view to contain %q:\n%s", want, view)
		}
	}
	lines := strings.Split(view, "\n")
	if len(lines) != 40 {
		t.Fatalf("expected the view to fill 40 rows, got %d", len(lines))
	}
	for i, line := range lines {
		if w := table.Width(line); w > 120 {
			t.Fatalf("line %d is %d cells wide", i, w)
		}
	}
}

func TestViewEmptyTable(t *testing.T) {
	h := newTestHarness(t, Config{Engine: keyring.NewStore()})
	if !strings.Contains(h.View(), "no keys") {
		t.Fatalf("expected empty table notice:\n%s", h.View())
	}
}

func TestViewKeepsSelectionVisible(t *testing.T) {
	keys := make([]keyring.Key, 0, 12)
	for i := 0; i < 12; i++ {
		id := strings.Repeat(string(rune('A'+i)), 16)
		keys = append(keys, testKey(id, "User "+string(rune('A'+i)), keyring.Public))
	}
	h := newTestHarness(t, Config{Engine: keyring.NewStore(keys...)})
	h.Send(tea.WindowSizeMsg{Width: 100, Height: 10})
	press(h, "G")
	view := h.View()
	if !strings.Contains(view, "User L") {
		t.Fatalf("expected the last key to be visible:\n%s", view)
	}
	if strings.Contains(view, "User A") {
		t.Fatalf("expected the first key to be scrolled out:\n%s", view)
	}
}

func TestViewOptionsOverlay(t *testing.T) {
	h := newTestHarness(t, Config{})
	press(h, "o")
	view := h.View()
	for _, want := range []string{"options", "close menu", "show help"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected options view to contain %q:\n%s", want, view)
		}
	}
}

func TestViewHelpTab(t *testing.T) {
	h := newTestHarness(t, Config{})
	press(h, "?")
	view := h.View()
	for _, want := range []string{"key bindings", "show options", "keyring file: (memory)", "armor"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected help view to contain %q:\n%s", want, view)
		}
	}
}

func TestViewPromptLine(t *testing.T) {
	h := newTestHarness(t, Config{})
	run(h, "get margin")
	lines := strings.Split(h.View(), "\n")
	if last := lines[len(lines)-1]; !strings.Contains(last, "(i) table margin: 0") {
		t.Fatalf("expected message on the prompt line, got %q", last)
	}
	press(h, ":")
	typeText(h, "export")
	lines = strings.Split(h.View(), "\n")
	if last := lines[len(lines)-1]; !strings.Contains(last, ":export") {
		t.Fatalf("expected entry on the prompt line, got %q", last)
	}
}

func TestViewMinimizedUsesKeyIDs(t *testing.T) {
	h := newTestHarness(t, Config{})
	run(h, "set minimized true")
	view := h.View()
	if strings.Contains(view, "0000111122223333AAAA") {
		t.Fatalf("expected minimized rows to hide fingerprints:\n%s", view)
	}
}
