package state

import (
	"reflect"
	"testing"
)

func TestFilterItems(t *testing.T) {
	items := []record{
		{id: "1", primary: "rsa3072/ABCDEF"},
		{id: "2", primary: "ed25519/123456"},
		{id: "3", primary: "Straße <strasse@example.org>"},
	}
	text := func(r record) []string { return []string{r.primary, r.id} }
	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"1", "2", "3"}},
		{"abcdef", []string{"1"}},
		{"ED25519", []string{"2"}},
		{"STRASSE", []string{"3"}},
		{"@EXAMPLE", []string{"3"}},
		{"missing", []string{}},
	}
	for _, tt := range tests {
		got := []string{}
		for _, r := range FilterItems(items, tt.query, text) {
			got = append(got, r.id)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("FilterItems(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestApplyFilterPreservesOrderAndDefault(t *testing.T) {
	table := newTestTable("c1", "b", "c2")
	table.ApplyFilter("C", func(r *record) []string { return []string{r.id} })
	if table.Len() != 2 || table.Items[0].id != "c1" || table.Items[1].id != "c2" {
		t.Fatalf("unexpected filtered items %v", table.Items)
	}
	if len(table.Default) != 3 {
		t.Fatalf("expected default items untouched, got %d", len(table.Default))
	}
	table.ApplyFilter("", func(r *record) []string { return []string{r.id} })
	if table.Len() != 3 {
		t.Fatalf("expected empty query to show everything, got %d", table.Len())
	}
}
