package charts

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/gnames/gndash/pkg/specimen"
)

// Slice is one value of a pie chart.
type Slice struct {
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`

	// Species lists species of a subspecies slice in first-seen order.
	Species []string `json:"species,omitempty"`
}

// PieData is a percentage breakdown of one field.
type PieData struct {
	Title  string  `json:"title"`
	Field  Field   `json:"field"`
	Total  int     `json:"total"`
	Slices []Slice `json:"slices"`
}

// Pie computes the share of every value of a field. Slices are ordered by
// count, largest first; equal counts keep first-seen order.
func Pie(recs []specimen.Record, field string) (*PieData, error) {
	f, err := LookupField(field)
	if err != nil {
		return nil, err
	}

	vals := newCounter()
	spp := make(map[string]*counter)
	for _, r := range recs {
		v := f.value(r)
		vals.add(v)
		if f.Name != specimen.ColSubspecies {
			continue
		}
		if _, ok := spp[v]; !ok {
			spp[v] = newCounter()
		}
		spp[v].add(r.Species.String())
	}

	res := PieData{
		Title: fmt.Sprintf("Percentage Breakdown of %s", f.Label),
		Field: f,
		Total: len(recs),
	}
	for _, v := range vals.keys {
		s := Slice{
			Label:   v,
			Count:   vals.counts[v],
			Percent: 100 * float64(vals.counts[v]) / float64(len(recs)),
		}
		if c, ok := spp[v]; ok {
			s.Species = c.keys
		}
		res.Slices = append(res.Slices, s)
	}
	slices.SortStableFunc(res.Slices, func(a, b Slice) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return &res, nil
}
