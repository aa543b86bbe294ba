package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/rodaine/table"
)

// RenderTable renders a table to the writer for rich mode
func RenderTable(w io.Writer, columns []Column, rows []map[string]string) {
	if len(rows) == 0 {
		return
	}

	headers := make([]interface{}, len(columns))
	for i, col := range columns {
		headers[i] = col.Name
	}

	tbl := table.New(headers...).
		WithWriter(w).
		WithHeaderFormatter(func(format string, vals ...interface{}) string {
			return keyStyle.Render(fmt.Sprintf(format, vals...))
		})

	for _, row := range rows {
		rowData := make([]interface{}, len(columns))
		for i, col := range columns {
			value := row[col.Key]
			if col.Width > 0 {
				value = TruncateString(value, col.Width)
			}
			rowData[i] = value
		}
		tbl.AddRow(rowData...)
	}

	tbl.Print()
}

// TruncateString truncates a string to maxLen and adds "..." if needed
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// OneLine collapses line breaks and tabs so multi-line values fit a table cell
func OneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
