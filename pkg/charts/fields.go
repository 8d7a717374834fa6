// Package charts aggregates specimen records into the data behind the
// distribution histogram, the percentage pie and the locality map.
package charts

import (
	"slices"

	"github.com/gnames/gndash/pkg/specimen"
)

// Field is a categorical column that can be charted.
type Field struct {
	// Name is the canonical column name.
	Name string `json:"name"`

	// Label is the human readable name used in titles.
	Label string `json:"label"`
}

// Fields lists the categorical columns in the order the dashboard offers
// them.
var Fields = []Field{
	{specimen.ColSpecies, "Species"},
	{specimen.ColSubspecies, "Subspecies"},
	{specimen.ColView, "View"},
	{specimen.ColSex, "Sex"},
	{specimen.ColHybridStat, "Hybrid Status"},
	{specimen.ColLocality, "Locality"},
}

// LookupField finds a field by its column name or label.
func LookupField(name string) (Field, error) {
	idx := slices.IndexFunc(Fields, func(f Field) bool {
		return f.Name == name || f.Label == name
	})
	if idx < 0 {
		return Field{}, FieldError(name)
	}
	return Fields[idx], nil
}

func (f Field) value(r specimen.Record) string {
	v, _ := r.Value(f.Name)
	return v.String()
}

// counter counts values keeping their first-seen order.
type counter struct {
	keys   []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(k string) {
	if _, ok := c.counts[k]; !ok {
		c.keys = append(c.keys, k)
	}
	c.counts[k]++
}
