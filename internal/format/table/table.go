package table

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Format returns the rows padded according to the widest entry in each
// column. Widths are terminal cells, so CJK meanings line up.
func Format(rows [][]string, alignments []Alignment) []string {
	return FormatMax(rows, alignments, nil)
}

// FormatMax is Format with per-column caps; a cap of zero or a missing entry
// leaves the column unbounded. Capped cells are truncated with "…".
func FormatMax(rows [][]string, alignments []Alignment, maxWidths []int) []string {
	if len(rows) == 0 {
		return nil
	}
	colCount := 0
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	widths := make([]int, colCount)
	for _, row := range rows {
		for c, cell := range row {
			cell = capCell(cell, c, maxWidths)
			if w := cellWidth(cell); w > widths[c] {
				widths[c] = w
			}
		}
	}
	out := make([]string, len(rows))
	for i, row := range rows {
		var b strings.Builder
		for c := 0; c < colCount; c++ {
			cell := ""
			if c < len(row) {
				cell = capCell(row[c], c, maxWidths)
			}
			if c > 0 {
				b.WriteString("  ")
			}
			pad := widths[c] - cellWidth(cell)
			if c < len(alignments) && alignments[c] == AlignRight {
				b.WriteString(strings.Repeat(" ", max(pad, 0)))
				b.WriteString(cell)
				continue
			}
			b.WriteString(cell)
			if c < colCount-1 {
				b.WriteString(strings.Repeat(" ", max(pad, 0)))
			}
		}
		out[i] = b.String()
	}
	return out
}

// Truncate shortens text to width cells, ending in "…" when cut.
func Truncate(text string, width int) string {
	if width <= 0 || cellWidth(text) <= width {
		return text
	}
	return runewidth.Truncate(text, width, "…")
}

// Pad right-pads text with spaces to width cells.
func Pad(text string, width int) string {
	return runewidth.FillRight(text, width)
}

func capCell(cell string, col int, maxWidths []int) string {
	if col < len(maxWidths) && maxWidths[col] > 0 {
		return Truncate(cell, maxWidths[col])
	}
	return cell
}

func cellWidth(text string) int {
	return runewidth.StringWidth(text)
}
