// Package dataset turns an uploaded table into an immutable Snapshot and
// declares the storage and notification interfaces of session datasets.
package dataset

import (
	"time"

	"github.com/gnames/gndash/pkg/locality"
	"github.com/gnames/gndash/pkg/species"
	"github.com/gnames/gndash/pkg/specimen"
	"github.com/gnames/gndash/pkg/validate"
	"github.com/gnames/gnuuid"
)

// DefaultSelected is the number of filter options selected by default.
const DefaultSelected = 2

// Snapshot is a processed dataset. It is never modified after Build;
// a new upload produces a new Snapshot.
type Snapshot struct {
	// ID is a UUIDv5 of the uploaded bytes.
	ID string `json:"id"`

	// Filename is the name of the uploaded file.
	Filename string `json:"filename"`

	// CreatedAt is the time the snapshot was built.
	CreatedAt time.Time `json:"created_at"`

	// Columns lists included and derived column names in output order.
	Columns []string `json:"columns"`

	Capabilities specimen.Capabilities `json:"capabilities"`

	Records []specimen.Record `json:"records"`

	// Index maps species to their subspecies options.
	Index species.Index `json:"index"`

	Filters Filters `json:"filters"`

	// Warnings lists coordinates that were replaced by "unknown".
	Warnings []validate.Warning `json:"warnings,omitempty"`
}

// Filters holds the distinct values offered by the View, Sex and hybrid
// status check-lists in first-seen order.
type Filters struct {
	Views          []string `json:"views"`
	Sexes          []string `json:"sexes"`
	HybridStatuses []string `json:"hybrid_statuses"`
}

// Defaults returns the options selected before the user makes a choice.
func (f Filters) Defaults() Filters {
	return Filters{
		Views:          head(f.Views, DefaultSelected),
		Sexes:          head(f.Sexes, DefaultSelected),
		HybridStatuses: head(f.HybridStatuses, DefaultSelected),
	}
}

// Build validates an uploaded table and derives everything the dashboard
// needs from it. Content is the raw upload used to compute the ID.
func Build(
	raw *specimen.RawTable,
	filename string,
	content []byte,
) (*Snapshot, error) {
	vr, err := validate.Validate(raw)
	if err != nil {
		return nil, err
	}

	// The index needs Absent cells, so it is built before aggregation
	// fills them.
	idx := species.BuildIndex(vr.Table.Records)
	tbl := locality.Aggregate(vr.Table, vr.Capabilities.HasLocation)

	res := Snapshot{
		ID:           gnuuid.New(string(content)).String(),
		Filename:     filename,
		CreatedAt:    time.Now().UTC(),
		Columns:      tbl.Columns,
		Capabilities: vr.Capabilities,
		Records:      tbl.Records,
		Index:        idx,
		Filters:      collectFilters(tbl.Records),
		Warnings:     vr.Warnings,
	}
	return &res, nil
}

// Table returns the processed table of the snapshot. The result shares
// memory with the snapshot and must not be modified.
func (s *Snapshot) Table() specimen.Table {
	return specimen.Table{Columns: s.Columns, Records: s.Records}
}

// Localities returns per-locality summaries, or nil when the dataset has
// no location data.
func (s *Snapshot) Localities() []locality.Summary {
	if !s.Capabilities.HasLocation {
		return nil
	}
	return locality.Summaries(s.Records)
}

// Summary is a short description of a snapshot.
type Summary struct {
	ID           string                `json:"id"`
	Filename     string                `json:"filename"`
	CreatedAt    time.Time             `json:"created_at"`
	Rows         int                   `json:"rows"`
	Columns      []string              `json:"columns"`
	Capabilities specimen.Capabilities `json:"capabilities"`
	Species      int                   `json:"species"`
	Localities   int                   `json:"localities"`
	Warnings     int                   `json:"warnings"`
}

// Summary describes the snapshot.
func (s *Snapshot) Summary() Summary {
	return Summary{
		ID:           s.ID,
		Filename:     s.Filename,
		CreatedAt:    s.CreatedAt,
		Rows:         len(s.Records),
		Columns:      s.Columns,
		Capabilities: s.Capabilities,
		Species:      s.Index.Len() - 1,
		Localities:   len(s.Localities()),
		Warnings:     len(s.Warnings),
	}
}

func collectFilters(recs []specimen.Record) Filters {
	var res Filters
	views := make(map[string]struct{})
	sexes := make(map[string]struct{})
	hybrids := make(map[string]struct{})
	for _, r := range recs {
		res.Views = addNew(res.Views, views, r.View.String())
		res.Sexes = addNew(res.Sexes, sexes, r.Sex.String())
		res.HybridStatuses = addNew(
			res.HybridStatuses, hybrids, r.HybridStat.String(),
		)
	}
	return res
}

func addNew(list []string, seen map[string]struct{}, s string) []string {
	if _, ok := seen[s]; ok {
		return list
	}
	seen[s] = struct{}{}
	return append(list, s)
}

func head(list []string, n int) []string {
	if len(list) < n {
		n = len(list)
	}
	res := make([]string, n)
	copy(res, list[:n])
	return res
}
