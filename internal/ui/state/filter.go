package state

import (
	"strings"

	"golang.org/x/text/cases"
)

// FilterItems returns the items, in order, whose text contains query after
// case folding. text returns the searchable strings of an item; an item
// matches when any of them does. An empty query keeps every item.
func FilterItems[T any](items []T, query string, text func(T) []string) []T {
	if query == "" {
		return append([]T(nil), items...)
	}
	folder := cases.Fold()
	needle := folder.String(query)
	filtered := make([]T, 0, len(items))
	for _, item := range items {
		for _, haystack := range text(item) {
			if strings.Contains(folder.String(haystack), needle) {
				filtered = append(filtered, item)
				break
			}
		}
	}
	return filtered
}

// ApplyFilter shows the default items matching query.
func (t *Table[T]) ApplyFilter(query string, text func(T) []string) {
	t.SetVisible(FilterItems(t.Default, query, text))
}
