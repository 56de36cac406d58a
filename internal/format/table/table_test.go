package table

import (
	"reflect"
	"testing"
)

func TestFormatAlignsColumns(t *testing.T) {
	rows := [][]string{
		{"q", "quit"},
		{"shift+tab", "previous tab"},
	}
	got := Format(rows, []Alignment{AlignRight, AlignLeft}, 2)
	want := []string{
		"        q  quit",
		"shift+tab  previous tab",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected rows %q", got)
	}
}

func TestFormatShortRows(t *testing.T) {
	got := Format([][]string{{"a", "b", "c"}, {"long"}}, nil, 1)
	want := []string{"a    b c", "long"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected rows %q", got)
	}
}

func TestFormatIgnoresEscapeSequences(t *testing.T) {
	styled := "\x1b[1mkey\x1b[0m"
	got := Format([][]string{{styled, "x"}, {"keys", "y"}}, nil, 1)
	if Width(got[0]) != Width(got[1]) {
		t.Fatalf("expected equal printable widths, got %d and %d", Width(got[0]), Width(got[1]))
	}
}

func TestPad(t *testing.T) {
	if got := Pad("ab", 4); got != "ab  " {
		t.Fatalf("unexpected padding %q", got)
	}
	if got := Pad("abcdef", 4); got != "abcdef" {
		t.Fatalf("expected longer text untouched, got %q", got)
	}
	if Format(nil, nil, 1) != nil {
		t.Fatalf("expected nil for no rows")
	}
}
