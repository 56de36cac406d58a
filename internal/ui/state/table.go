package state

import "github.com/atomicstack/keyring-tui/internal/command"

// TableState is the part of a table remembered per category.
type TableState struct {
	Cursor         int
	Scroll         int
	ViewportOffset int
}

// Table is a scrollable record container. Items is the visible sequence and
// Default the unfiltered one; while no filter is applied they hold the same
// elements. With pointer elements both share the records, so in-place changes
// such as detail toggles show in either sequence.
type Table[T comparable] struct {
	Items          []T
	Default        []T
	Cursor         int
	Scroll         int
	ViewportOffset int
}

// NewTable returns a table holding items with the first one selected.
func NewTable[T comparable](items []T) *Table[T] {
	t := &Table[T]{}
	t.Replace(items)
	return t
}

// Replace swaps the contents wholesale and selects the first item.
func (t *Table[T]) Replace(items []T) {
	t.Default = append([]T(nil), items...)
	t.Items = append([]T(nil), items...)
	t.Cursor = -1
	if len(t.Items) > 0 {
		t.Cursor = 0
	}
	t.Scroll = 0
	t.ViewportOffset = 0
}

// Len returns the number of visible items.
func (t *Table[T]) Len() int {
	return len(t.Items)
}

// Selected returns the selected item; ok is false when the table is empty.
func (t *Table[T]) Selected() (item T, ok bool) {
	if t.Cursor < 0 || t.Cursor >= len(t.Items) {
		return item, false
	}
	return t.Items[t.Cursor], true
}

// Select moves the selection to index, clamped to the item range. The row
// scroll is reset when the selection changes.
func (t *Table[T]) Select(index int) bool {
	if len(t.Items) == 0 {
		t.Cursor = -1
		t.Scroll = 0
		return false
	}
	if index < 0 {
		index = 0
	}
	if index >= len(t.Items) {
		index = len(t.Items) - 1
	}
	if index == t.Cursor {
		return false
	}
	t.Cursor = index
	t.Scroll = 0
	return true
}

// Advance moves the selection down by step.
func (t *Table[T]) Advance(step int) bool {
	if len(t.Items) == 0 {
		return false
	}
	return t.Select(max(t.Cursor, 0) + step)
}

// Retreat moves the selection up by step.
func (t *Table[T]) Retreat(step int) bool {
	if len(t.Items) == 0 {
		return false
	}
	return t.Select(max(t.Cursor, 0) - step)
}

// SelectFirst selects the first item.
func (t *Table[T]) SelectFirst() bool {
	return t.Select(0)
}

// SelectLast selects the last item.
func (t *Table[T]) SelectLast() bool {
	return t.Select(len(t.Items) - 1)
}

// ScrollRow scrolls the lines of the selected row. bound is the overflow of
// the selected row as reported by the row builder; the offset never leaves
// [0, bound].
func (t *Table[T]) ScrollRow(direction command.Direction, amount, bound int) bool {
	if len(t.Items) == 0 {
		return false
	}
	if amount < 1 {
		amount = 1
	}
	if bound < 0 {
		bound = 0
	}
	old := t.Scroll
	switch direction {
	case command.DirectionUp:
		t.Scroll -= amount
	case command.DirectionDown:
		t.Scroll += amount
	case command.DirectionTop:
		t.Scroll = 0
	case command.DirectionBottom:
		t.Scroll = bound
	}
	if t.Scroll > bound {
		t.Scroll = bound
	}
	if t.Scroll < 0 {
		t.Scroll = 0
	}
	return t.Scroll != old
}

// SetVisible replaces the visible sequence with a subset of Default and
// selects its first item.
func (t *Table[T]) SetVisible(items []T) {
	t.Items = append([]T(nil), items...)
	t.Cursor = -1
	if len(t.Items) > 0 {
		t.Cursor = 0
	}
	t.Scroll = 0
	t.ViewportOffset = 0
}

// Reset makes every default item visible again. The previously selected
// item stays selected when present; otherwise the first item is.
func (t *Table[T]) Reset() {
	selected, ok := t.Selected()
	t.SetVisible(t.Default)
	if !ok {
		return
	}
	for i, item := range t.Items {
		if item == selected {
			t.Cursor = i
			return
		}
	}
}

// Filtered reports whether a subset of the default items is visible.
func (t *Table[T]) Filtered() bool {
	return len(t.Items) != len(t.Default)
}

// State returns the cursor and scroll offsets.
func (t *Table[T]) State() TableState {
	return TableState{Cursor: t.Cursor, Scroll: t.Scroll, ViewportOffset: t.ViewportOffset}
}

// Restore applies a saved state, clamping it to the current items.
func (t *Table[T]) Restore(s TableState) {
	if len(t.Items) == 0 {
		t.Cursor = -1
		t.Scroll = 0
		t.ViewportOffset = 0
		return
	}
	t.Cursor = min(max(s.Cursor, 0), len(t.Items)-1)
	t.Scroll = max(s.Scroll, 0)
	t.ViewportOffset = min(max(s.ViewportOffset, 0), t.Cursor)
}

// EnsureCursorVisible adjusts the viewport offset so that the selected row is
// among the rows laid out from the offset. heights returns the height of the
// row at an index; available is the height the rows may use.
func (t *Table[T]) EnsureCursorVisible(available int, heights func(int) int) {
	if len(t.Items) == 0 {
		t.ViewportOffset = 0
		return
	}
	if t.ViewportOffset < 0 || t.ViewportOffset >= len(t.Items) {
		t.ViewportOffset = 0
	}
	if t.Cursor < t.ViewportOffset {
		t.ViewportOffset = t.Cursor
		return
	}
	for t.ViewportOffset < t.Cursor {
		used := 0
		for i := t.ViewportOffset; i <= t.Cursor; i++ {
			used += heights(i)
		}
		if used <= available {
			return
		}
		t.ViewportOffset++
	}
}
