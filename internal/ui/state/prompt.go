package state

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/atomicstack/keyring-tui/internal/command"
)

// MessageDuration is how long a prompt message stays visible.
const MessageDuration = 1750 * time.Millisecond

// PromptMode is derived from the prefix of the prompt text.
type PromptMode int

const (
	PromptIdle PromptMode = iota
	PromptCommand
	PromptSearch
)

// Prompt is the input line. Text holds the command or search entry including
// its prefix; Message holds the last output. Setting one clears the other.
type Prompt struct {
	Text    string
	Output  command.OutputType
	Message string
	// Pending is the command awaiting confirmation.
	Pending command.Command

	cursor int
	clock  time.Time
	now    func() time.Time
}

// NewPrompt returns an idle prompt. A nil clock uses time.Now.
func NewPrompt(now func() time.Time) *Prompt {
	if now == nil {
		now = time.Now
	}
	return &Prompt{now: now}
}

// Mode reports the entry mode.
func (p *Prompt) Mode() PromptMode {
	switch {
	case strings.HasPrefix(p.Text, command.CommandPrefix):
		return PromptCommand
	case strings.HasPrefix(p.Text, command.SearchPrefix):
		return PromptSearch
	}
	return PromptIdle
}

// Query returns the search text without its prefix.
func (p *Prompt) Query() string {
	if p.Mode() != PromptSearch {
		return ""
	}
	return strings.TrimPrefix(p.Text, command.SearchPrefix)
}

// Entry returns the command text without its prefix.
func (p *Prompt) Entry() string {
	if p.Mode() != PromptCommand {
		return ""
	}
	return strings.TrimPrefix(p.Text, command.CommandPrefix)
}

// Clear resets the prompt to idle, dropping any message and pending command.
func (p *Prompt) Clear() {
	p.Text = ""
	p.cursor = 0
	p.Output = command.OutputNone
	p.Message = ""
	p.Pending = nil
	p.clock = time.Time{}
}

// SetText replaces the entry text and moves the cursor to its end.
func (p *Prompt) SetText(text string) {
	p.Clear()
	p.Text = text
	p.cursor = len([]rune(text))
}

// EnableCommandInput starts command entry.
func (p *Prompt) EnableCommandInput() {
	p.SetText(command.CommandPrefix)
}

// EnableSearch starts search entry seeded with query.
func (p *Prompt) EnableSearch(query string) {
	p.SetText(command.SearchPrefix + query)
}

// SetOutput shows a message and starts its expiry clock.
func (p *Prompt) SetOutput(output command.OutputType, message string) {
	p.Text = ""
	p.cursor = 0
	p.Output = output
	p.Message = message
	p.clock = p.now()
}

// SetCommand asks for confirmation of cmd. The message does not expire while
// the command is pending.
func (p *Prompt) SetCommand(cmd command.Command) {
	p.SetOutput(command.OutputAction, fmt.Sprintf("press 'y' to %s", cmd))
	p.Pending = cmd
}

// Expire clears a message older than MessageDuration unless a command is
// pending. It reports whether the prompt changed.
func (p *Prompt) Expire() bool {
	if p.clock.IsZero() || p.Pending != nil {
		return false
	}
	if p.now().Sub(p.clock) <= MessageDuration {
		return false
	}
	p.Clear()
	return true
}

// CursorPos returns the rune offset of the entry cursor.
func (p *Prompt) CursorPos() int {
	n := len([]rune(p.Text))
	if p.cursor < p.minCursor() {
		return p.minCursor()
	}
	if p.cursor > n {
		return n
	}
	return p.cursor
}

// minCursor keeps the cursor behind the entry prefix.
func (p *Prompt) minCursor() int {
	if p.Mode() == PromptIdle {
		return 0
	}
	return 1
}

func (p *Prompt) setEntry(text string, cursor int) {
	p.Text = text
	p.cursor = cursor
}

// Insert inserts text at the cursor.
func (p *Prompt) Insert(text string) bool {
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	runes := []rune(p.Text)
	pos := p.CursorPos()
	updated := make([]rune, 0, len(runes)+len(insert))
	updated = append(updated, runes[:pos]...)
	updated = append(updated, insert...)
	updated = append(updated, runes[pos:]...)
	p.setEntry(string(updated), pos+len(insert))
	return true
}

// DeleteRuneBackward deletes the rune before the cursor. Deleting into the
// prefix leaves entry mode.
func (p *Prompt) DeleteRuneBackward() bool {
	runes := []rune(p.Text)
	pos := p.CursorPos()
	if len(runes) == 0 {
		return false
	}
	if pos <= p.minCursor() {
		if len(runes) == 1 {
			p.Clear()
			return true
		}
		return false
	}
	updated := append(runes[:pos-1], runes[pos:]...)
	p.setEntry(string(updated), pos-1)
	return true
}

// DeleteWordBackward deletes the word preceding the cursor.
func (p *Prompt) DeleteWordBackward() bool {
	runes := []rune(p.Text)
	pos := p.CursorPos()
	if pos <= p.minCursor() {
		return false
	}
	i := wordStart(runes, pos, p.minCursor())
	updated := append(runes[:i], runes[pos:]...)
	p.setEntry(string(updated), i)
	return true
}

// MoveCursorStart moves the cursor behind the prefix.
func (p *Prompt) MoveCursorStart() bool {
	if p.CursorPos() == p.minCursor() {
		return false
	}
	p.cursor = p.minCursor()
	return true
}

// MoveCursorEnd moves the cursor to the end of the entry.
func (p *Prompt) MoveCursorEnd() bool {
	end := len([]rune(p.Text))
	if p.CursorPos() == end {
		return false
	}
	p.cursor = end
	return true
}

// MoveCursorWordBackward moves the cursor one word backward.
func (p *Prompt) MoveCursorWordBackward() bool {
	pos := p.CursorPos()
	i := wordStart([]rune(p.Text), pos, p.minCursor())
	if i == pos {
		return false
	}
	p.cursor = i
	return true
}

// MoveCursorWordForward moves the cursor one word forward.
func (p *Prompt) MoveCursorWordForward() bool {
	runes := []rune(p.Text)
	pos := p.CursorPos()
	i := pos
	for i < len(runes) && !unicode.IsSpace(runes[i]) {
		i++
	}
	for i < len(runes) && unicode.IsSpace(runes[i]) {
		i++
	}
	if i == pos {
		return false
	}
	p.cursor = i
	return true
}

// MoveCursorRuneBackward moves the cursor one rune backward.
func (p *Prompt) MoveCursorRuneBackward() bool {
	if p.CursorPos() <= p.minCursor() {
		return false
	}
	p.cursor = p.CursorPos() - 1
	return true
}

// MoveCursorRuneForward moves the cursor one rune forward.
func (p *Prompt) MoveCursorRuneForward() bool {
	pos := p.CursorPos()
	if pos >= len([]rune(p.Text)) {
		return false
	}
	p.cursor = pos + 1
	return true
}

func wordStart(runes []rune, pos, floor int) int {
	i := pos
	for i > floor && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > floor && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	return i
}
