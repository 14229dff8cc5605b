package tablefmt

import "strings"

// Column describes one table column.
type Column struct {
	Title string
	Width int
	Mode  Mode
}

// FitRow sanitizes and fits each cell to its column. Missing cells become
// "n/a"; extra cells are dropped.
func FitRow(cols []Column, cells []any) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		var v any
		if i < len(cells) {
			v = cells[i]
		}
		out[i] = FitCell(SanitizePrintable(v), c.Width, c.Mode)
	}
	return out
}

// Titles returns the column titles.
func Titles(cols []Column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Title
	}
	return out
}

// RenderLines lays out a header and rows as padded, two-space separated lines.
func RenderLines(titles []string, rows [][]string) []string {
	widths := make([]int, len(titles))
	for i, t := range titles {
		widths[i] = Width(t)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			if w := Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	line := func(cells []string) string {
		parts := make([]string, len(widths))
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			if i == len(widths)-1 {
				parts[i] = cell
			} else {
				parts[i] = cond.FillRight(cell, widths[i])
			}
		}
		return strings.TrimRight(strings.Join(parts, "  "), " ")
	}

	out := make([]string, 0, len(rows)+1)
	out = append(out, line(titles))
	for _, row := range rows {
		out = append(out, line(row))
	}
	return out
}
