package state

// List is a selectable list with a wrapping cursor, used for the options menu
// and the help key-binding list.
type List[T any] struct {
	Items          []T
	Cursor         int
	ViewportOffset int
}

// NewList returns a list with the first item selected.
func NewList[T any](items []T) *List[T] {
	l := &List[T]{Items: items}
	if len(items) == 0 {
		l.Cursor = -1
	}
	return l
}

// Rebuild replaces the items. The cursor is kept when the previous list was
// empty or the new one has the same length; otherwise the first item is
// selected.
func (l *List[T]) Rebuild(items []T) {
	prevLen := len(l.Items)
	prevCursor := l.Cursor
	l.Items = items
	if prevLen == 0 || len(items) == prevLen {
		l.Cursor = prevCursor
	} else {
		l.Cursor = 0
	}
	if l.Cursor < 0 || l.Cursor >= len(items) {
		l.Cursor = 0
	}
	if len(items) == 0 {
		l.Cursor = -1
	}
	l.ViewportOffset = 0
}

// Selected returns the item under the cursor.
func (l *List[T]) Selected() (item T, ok bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return item, false
	}
	return l.Items[l.Cursor], true
}

// Next moves the cursor down, wrapping to the first item.
func (l *List[T]) Next() bool {
	n := len(l.Items)
	if n == 0 {
		return false
	}
	old := l.Cursor
	if l.Cursor < 0 || l.Cursor >= n-1 {
		l.Cursor = 0
	} else {
		l.Cursor++
	}
	return old != l.Cursor
}

// Previous moves the cursor up, wrapping to the last item.
func (l *List[T]) Previous() bool {
	n := len(l.Items)
	if n == 0 {
		return false
	}
	old := l.Cursor
	if l.Cursor <= 0 {
		l.Cursor = n - 1
	} else {
		l.Cursor--
	}
	return old != l.Cursor
}

// MoveCursorHome moves the cursor to the first item.
func (l *List[T]) MoveCursorHome() bool {
	if len(l.Items) == 0 {
		l.Cursor = -1
		return false
	}
	old := l.Cursor
	l.Cursor = 0
	return old != l.Cursor
}

// MoveCursorEnd moves the cursor to the last item.
func (l *List[T]) MoveCursorEnd() bool {
	n := len(l.Items)
	if n == 0 {
		l.Cursor = -1
		return false
	}
	old := l.Cursor
	l.Cursor = n - 1
	return old != l.Cursor
}

// EnsureCursorVisible adjusts the viewport offset so the cursor stays visible.
func (l *List[T]) EnsureCursorVisible(maxVisible int) {
	if len(l.Items) == 0 {
		l.Cursor = -1
		l.ViewportOffset = 0
		return
	}
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	if l.Cursor >= len(l.Items) {
		l.Cursor = len(l.Items) - 1
	}
	if maxVisible <= 0 {
		l.ViewportOffset = 0
		return
	}
	maxOffset := len(l.Items) - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if l.ViewportOffset > maxOffset {
		l.ViewportOffset = maxOffset
	}
	if l.ViewportOffset < 0 {
		l.ViewportOffset = 0
	}
	if l.Cursor < l.ViewportOffset {
		l.ViewportOffset = l.Cursor
	}
	upper := l.ViewportOffset + maxVisible - 1
	if l.Cursor > upper {
		l.ViewportOffset = l.Cursor - maxVisible + 1
		if l.ViewportOffset > maxOffset {
			l.ViewportOffset = maxOffset
		}
	}
}
