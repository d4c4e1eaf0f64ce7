package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
)

// Table wraps tabwriter for consistent column output.
type Table struct {
	writer  *tabwriter.Writer
	headers []string
	wrote   bool
}

// NewTable creates a table writing to stdout.
func NewTable(headers []string) *Table {
	return NewTableWriter(os.Stdout, headers)
}

// NewTableWriter creates a table writing to w.
func NewTableWriter(w io.Writer, headers []string) *Table {
	return &Table{
		writer:  tabwriter.NewWriter(w, 0, 0, 2, ' ', 0),
		headers: headers,
	}
}

// AddRow appends one row.
func (t *Table) AddRow(row []string) {
	if !t.wrote && len(t.headers) > 0 {
		headerRow := make([]string, len(t.headers))
		for i, h := range t.headers {
			headerRow[i] = Bold(strings.ToUpper(h))
		}
		fmt.Fprintln(t.writer, strings.Join(headerRow, "\t"))
	}
	t.wrote = true
	fmt.Fprintln(t.writer, strings.Join(row, "\t"))
}

// Render flushes the table.
func (t *Table) Render() {
	t.writer.Flush()
}
