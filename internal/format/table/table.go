// Package table aligns cells into columns. Cell widths ignore ANSI escape
// sequences so styled cells line up with plain ones.
package table

import (
	"strings"

	"github.com/muesli/reflow/ansi"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Format returns the rows padded according to the widest entry in each column.
// Columns are separated by gap spaces; a row may have fewer cells than the
// widest row.
func Format(rows [][]string, alignments []Alignment, gap int) []string {
	if len(rows) == 0 {
		return nil
	}
	colCount := 0
	for _, row := range rows {
		colCount = max(colCount, len(row))
	}
	widths := make([]int, colCount)
	for _, row := range rows {
		for c, cell := range row {
			widths[c] = max(widths[c], Width(cell))
		}
	}
	sep := strings.Repeat(" ", max(gap, 0))
	out := make([]string, len(rows))
	for i, row := range rows {
		var b strings.Builder
		for c, cell := range row {
			if c > 0 {
				b.WriteString(sep)
			}
			pad := widths[c] - Width(cell)
			last := c == len(row)-1
			if c < len(alignments) && alignments[c] == AlignRight {
				writeSpaces(&b, pad)
				b.WriteString(cell)
				continue
			}
			b.WriteString(cell)
			if !last {
				writeSpaces(&b, pad)
			}
		}
		out[i] = b.String()
	}
	return out
}

// Width returns the printable width of text.
func Width(text string) int {
	return ansi.PrintableRuneWidth(text)
}

// Pad right-pads text with spaces to width.
func Pad(text string, width int) string {
	var b strings.Builder
	b.WriteString(text)
	writeSpaces(&b, width-Width(text))
	return b.String()
}

func writeSpaces(b *strings.Builder, count int) {
	if count <= 0 {
		return
	}
	b.WriteString(strings.Repeat(" ", count))
}
