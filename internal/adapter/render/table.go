// Package render turns query results into column-ordered tables and markdown.
package render

import (
	"fmt"
	"math"
	"time"
)

// Row is any record exposing its values in column order
type Row interface {
	Values() []any
}

// Table is a titled, column-ordered result set
type Table struct {
	Title   string
	Columns []string
	Rows    [][]any
}

// NewTable builds a table from records whose Values follow columns
func NewTable[R Row](title string, columns []string, records []R) Table {
	rows := make([][]any, 0, len(records))
	for _, r := range records {
		rows = append(rows, r.Values())
	}
	return Table{Title: title, Columns: columns, Rows: rows}
}

// Cells returns the rows with every value made safe for JSON and protobuf:
// times become RFC 3339 strings and non-finite numbers become nil.
func (t Table) Cells() [][]any {
	cells := make([][]any, 0, len(t.Rows))
	for _, row := range t.Rows {
		out := make([]any, len(row))
		for i, v := range row {
			out[i] = Plain(v)
		}
		cells = append(cells, out)
	}
	return cells
}

// Records returns one column-keyed map per row, with values as in Cells
func (t Table) Records() []map[string]any {
	records := make([]map[string]any, 0, len(t.Rows))
	for _, row := range t.Cells() {
		rec := make(map[string]any, len(t.Columns))
		for i, col := range t.Columns {
			if i < len(row) {
				rec[col] = row[i]
			}
		}
		records = append(records, rec)
	}
	return records
}

// Plain converts a cell value to a JSON-representable value
func Plain(v any) any {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil
		}
		return x
	case time.Time:
		return x.UTC().Format(time.RFC3339Nano)
	case fmt.Stringer:
		return x.String()
	default:
		return v
	}
}
