// Package validate checks uploaded tables against the recognized column
// schema and derives the capabilities of a dataset.
//
// This is a pure package: it works on already parsed tables.
package validate

import (
	"math"
	"strconv"
	"strings"

	"github.com/gnames/gndash/pkg/specimen"
)

// Coordinate limits in degrees.
const (
	MaxLatitude  = 90.0
	MaxLongitude = 180.0
)

// Result is a successfully validated upload.
type Result struct {
	// Table holds the included columns and filled-in records.
	Table specimen.Table

	// Capabilities tell which optional features the dataset supports.
	Capabilities specimen.Capabilities

	// Warnings lists coordinates that were rewritten to "unknown".
	Warnings []Warning
}

// Warning describes a non-fatal problem found in one cell.
type Warning struct {
	// Row is the zero-based data row (header excluded).
	Row int `json:"row"`

	// Column is the canonical column name.
	Column string `json:"column"`

	// Value is the original cell text.
	Value string `json:"value"`

	// Reason explains why the value was replaced.
	Reason string `json:"reason"`
}

// Validate classifies a raw table. A missing required column is an
// error, missing location or image columns only switch the corresponding
// capability off.
func Validate(raw *specimen.RawTable) (*Result, error) {
	idx := columnIndex(raw.Header)

	for _, col := range specimen.Required {
		if _, ok := idx[col]; !ok {
			return nil, MissingColumnError(col)
		}
	}

	var cols []string
	for _, col := range specimen.Recognized {
		if _, ok := idx[col]; ok {
			cols = append(cols, col)
		}
	}

	_, hasLat := idx[specimen.ColLat]
	_, hasLon := idx[specimen.ColLon]
	_, hasURL := idx[specimen.ColFileURL]
	res := Result{
		Capabilities: specimen.Capabilities{
			HasLocation: hasLat && hasLon,
			HasImages:   hasURL,
		},
	}

	recs := make([]specimen.Record, len(raw.Rows))
	for i := range raw.Rows {
		var rec specimen.Record
		for _, col := range cols {
			rec.SetValue(col, specimen.Cell(raw.Cell(i, idx[col])))
		}
		if res.Capabilities.HasLocation {
			var w []Warning
			rec.Lat, w = checkCoord(i, specimen.ColLat, rec.Lat, MaxLatitude, w)
			rec.Lon, w = checkCoord(i, specimen.ColLon, rec.Lon, MaxLongitude, w)
			res.Warnings = append(res.Warnings, w...)
		}
		recs[i] = rec
	}

	res.Table = specimen.Table{Columns: cols, Records: recs}
	return &res, nil
}

// columnIndex maps canonical column names to header positions. Exact
// canonical names win over aliases, the first occurrence wins over
// duplicates.
func columnIndex(header []string) map[string]int {
	res := make(map[string]int)
	for j, h := range header {
		if specimen.IsAlias(h) {
			continue
		}
		if col, ok := specimen.CanonicalColumn(h); ok {
			if _, dup := res[col]; !dup {
				res[col] = j
			}
		}
	}
	for j, h := range header {
		if !specimen.IsAlias(h) {
			continue
		}
		col, _ := specimen.CanonicalColumn(h)
		if _, ok := res[col]; !ok {
			res[col] = j
		}
	}
	return res
}

// checkCoord range-checks one coordinate. Valid values are re-rendered in
// the shortest decimal form, others become the "unknown" sentinel.
func checkCoord(
	row int,
	col string,
	v specimen.Value,
	limit float64,
	ws []Warning,
) (specimen.Value, []Warning) {
	if v.IsAbsent() {
		return v, ws
	}
	if strings.EqualFold(v.String(), specimen.Unknown) {
		return specimen.Known(specimen.Unknown), ws
	}

	s := v.String()
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		ws = append(ws, Warning{
			Row: row, Column: col, Value: s, Reason: "not a number",
		})
		return specimen.Known(specimen.Unknown), ws
	}

	if f < -limit || f > limit {
		ws = append(ws, Warning{
			Row: row, Column: col, Value: s, Reason: "out of range",
		})
		return specimen.Known(specimen.Unknown), ws
	}

	return specimen.Known(FormatCoord(f)), ws
}

// FormatCoord renders a coordinate in its shortest round-trip form.
func FormatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
