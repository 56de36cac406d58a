package state

import "testing"

func TestListWraps(t *testing.T) {
	l := NewList([]string{"a", "b", "c"})
	if !l.Previous() || l.Cursor != 2 {
		t.Fatalf("expected wrap to last item, got %d", l.Cursor)
	}
	if !l.Next() || l.Cursor != 0 {
		t.Fatalf("expected wrap to first item, got %d", l.Cursor)
	}
	if !l.MoveCursorEnd() || l.Cursor != 2 {
		t.Fatalf("expected end, got %d", l.Cursor)
	}
	if !l.MoveCursorHome() || l.Cursor != 0 {
		t.Fatalf("expected home, got %d", l.Cursor)
	}
	empty := NewList[string](nil)
	if empty.Next() || empty.Previous() {
		t.Fatalf("expected no movement on empty list")
	}
	if _, ok := empty.Selected(); ok {
		t.Fatalf("expected no selection on empty list")
	}
}

func TestListRebuildCursorRule(t *testing.T) {
	tests := []struct {
		name   string
		prev   []string
		cursor int
		next   []string
		want   int
	}{
		{"previous empty", nil, -1, []string{"a", "b"}, 0},
		{"same length", []string{"a", "b", "c"}, 2, []string{"x", "y", "z"}, 2},
		{"length changed", []string{"a", "b", "c"}, 2, []string{"x", "y"}, 0},
		{"new list empty", []string{"a"}, 0, nil, -1},
	}
	for _, tt := range tests {
		l := NewList(tt.prev)
		l.Cursor = tt.cursor
		l.Rebuild(tt.next)
		if l.Cursor != tt.want {
			t.Fatalf("%s: expected cursor %d, got %d", tt.name, tt.want, l.Cursor)
		}
	}
}

func TestListEnsureCursorVisible(t *testing.T) {
	l := NewList([]string{"a", "b", "c", "d", "e"})
	l.Cursor = 4
	l.EnsureCursorVisible(2)
	if l.ViewportOffset != 3 {
		t.Fatalf("expected offset 3, got %d", l.ViewportOffset)
	}
	l.Cursor = 0
	l.EnsureCursorVisible(2)
	if l.ViewportOffset != 0 {
		t.Fatalf("expected offset 0, got %d", l.ViewportOffset)
	}
}
