// Package row turns a record's field group into the display lines of a single
// table cell. It handles wrapping, the minimized policy and vertical scrolling
// so the table only has to stack the returned lines.
package row

import (
	"strings"

	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

const overflowTail = "…"

// Field is one logical entry of a field group. The first segment carries the
// essential text; the remaining segments are decorations dropped in minimized
// display mode.
type Field []string

// Text returns the display text of the field.
func (f Field) Text(minimized bool) string {
	if len(f) == 0 {
		return ""
	}
	if minimized {
		return f[0]
	}
	return strings.Join(f, "")
}

// Options controls how a field group is projected.
type Options struct {
	Minimized bool
	// MaxWidth wraps lines at the given width; 0 disables wrapping.
	MaxWidth int
	// Truncate cuts lines longer than the given width; 0 disables it.
	Truncate int
	// MaxHeight bounds the number of visible lines; 0 shows everything.
	MaxHeight int
	Scroll    int
}

// Item is the visible window of a projected field group.
type Item struct {
	Lines    []string
	Total    int
	Scroll   int
	Overflow int
}

// Flatten produces one logical line per field. Embedded newlines split a field
// into several lines.
func Flatten(fields []Field, minimized bool) []string {
	lines := make([]string, 0, len(fields))
	for _, field := range fields {
		lines = append(lines, strings.Split(field.Text(minimized), "\n")...)
	}
	return lines
}

// Wrap re-wraps every line greedily at width, breaking words that are longer
// than the width on their own.
func Wrap(lines []string, width int) []string {
	if width <= 0 {
		return lines
	}
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if len([]rune(line)) <= width {
			out = append(out, line)
			continue
		}
		wrapped := wrap.String(wordwrap.String(line, width), width)
		for _, part := range strings.Split(wrapped, "\n") {
			out = append(out, strings.TrimRight(part, " "))
		}
	}
	return out
}

// MaxScroll returns the largest scroll offset that still fills the window.
func MaxScroll(total, height int) int {
	if height <= 0 || total <= height {
		return 0
	}
	return total - height
}

// New projects fields into the currently visible lines.
func New(fields []Field, opts Options) Item {
	lines := Wrap(Flatten(fields, opts.Minimized), opts.MaxWidth)
	if opts.Truncate > 0 {
		for i, line := range lines {
			if len([]rune(line)) > opts.Truncate {
				lines[i] = truncate.StringWithTail(line, uint(opts.Truncate), overflowTail)
			}
		}
	}
	item := Item{Total: len(lines)}
	item.Overflow = MaxScroll(len(lines), opts.MaxHeight)
	scroll := opts.Scroll
	if scroll < 0 {
		scroll = 0
	}
	if scroll > item.Overflow {
		scroll = item.Overflow
	}
	item.Scroll = scroll
	end := len(lines)
	if opts.MaxHeight > 0 && scroll+opts.MaxHeight < end {
		end = scroll + opts.MaxHeight
	}
	item.Lines = lines[scroll:end]
	return item
}

// Height reports the row height needed to show every item, never less than 1.
func Height(items ...Item) int {
	height := 1
	for _, item := range items {
		if len(item.Lines) > height {
			height = len(item.Lines)
		}
	}
	return height
}
