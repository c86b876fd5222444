package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type column struct {
	title string
	right bool
}

// formatTable lays out rows under the column titles, padding each cell to the
// widest value in its column. Cells are measured in terminal cells.
func formatTable(cols []column, rows [][]string) []string {
	if len(cols) == 0 {
		return nil
	}
	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = runewidth.StringWidth(c.title)
	}
	for _, row := range rows {
		for i := range cols {
			if w := runewidth.StringWidth(cell(row, i)); w > widths[i] {
				widths[i] = w
			}
		}
	}

	titles := make([]string, len(cols))
	for i, c := range cols {
		titles[i] = c.title
	}
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, joinRow(cols, titles, widths))
	for _, row := range rows {
		lines = append(lines, joinRow(cols, row, widths))
	}
	return lines
}

func joinRow(cols []column, row []string, widths []int) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		value := cell(row, i)
		pad := widths[i] - runewidth.StringWidth(value)
		if pad < 0 {
			pad = 0
		}
		if c.right {
			parts[i] = strings.Repeat(" ", pad) + value
		} else {
			parts[i] = value + strings.Repeat(" ", pad)
		}
	}
	return strings.TrimRight(strings.Join(parts, " "), " ")
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
