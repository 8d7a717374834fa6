// Package specimen defines the data model of specimen metadata uploads:
// two-state cell values, canonical columns, records and tables.
package specimen

import "slices"

// RawTable is an uploaded spreadsheet before validation.
type RawTable struct {
	Header []string
	Rows   [][]string
}

// Cell returns the text at row i, column j, or an empty string when the
// row is shorter than the header.
func (t *RawTable) Cell(i, j int) string {
	row := t.Rows[i]
	if j >= len(row) {
		return ""
	}
	return row[j]
}

// Table is a validated dataset. Tables are treated as immutable values:
// transformations return new tables.
type Table struct {
	// Columns lists the included column names in output order.
	Columns []string `json:"columns"`

	// Records holds the rows in upload order.
	Records []Record `json:"records"`
}

// HasColumn reports whether a column is included in the table.
func (t Table) HasColumn(col string) bool {
	return slices.Contains(t.Columns, col)
}

// Clone returns a copy that shares no slices with t.
func (t Table) Clone() Table {
	return Table{
		Columns: slices.Clone(t.Columns),
		Records: slices.Clone(t.Records),
	}
}

// Row returns the filled values of record i keyed by column name.
func (t Table) Row(i int) map[string]any {
	res := make(map[string]any, len(t.Columns))
	for _, c := range t.Columns {
		if v, ok := t.Records[i].Get(c); ok {
			res[c] = v
		}
	}
	return res
}

// Capabilities are fixed when a dataset is validated and gate the optional
// features built on top of it.
type Capabilities struct {
	// HasLocation is true when both latitude and longitude are uploaded.
	HasLocation bool `json:"has_location"`

	// HasImages is true when image URLs are uploaded.
	HasImages bool `json:"has_images"`
}
