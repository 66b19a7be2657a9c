package utils

import (
	"fmt"
	"strings"
)

// RenderTable renders headers and rows as a psql-style monospace table
// for code-block output.
//
//	+----+-------+
//	| id | name  |
//	+----+-------+
//	| 1  | squid |
//	+----+-------+
func RenderTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var sb strings.Builder
	writeRule := func() {
		for _, w := range widths {
			sb.WriteString("+")
			sb.WriteString(strings.Repeat("-", w+2))
		}
		sb.WriteString("+\n")
	}
	writeRow := func(cells []string) {
		for i, w := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			fmt.Fprintf(&sb, "| %-*s ", w, cell)
		}
		sb.WriteString("|\n")
	}

	writeRule()
	writeRow(headers)
	writeRule()
	for _, row := range rows {
		writeRow(row)
	}
	writeRule()
	return strings.TrimSuffix(sb.String(), "\n")
}
