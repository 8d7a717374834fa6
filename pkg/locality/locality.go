// Package locality groups specimen records by coordinate pair and
// attaches per-location summaries to every record.
package locality

import (
	"slices"
	"strconv"
	"strings"

	"github.com/gnames/gndash/pkg/specimen"
)

// KeySeparator joins latitude and longitude in a locality key.
const KeySeparator = "|"

// ListSeparator joins distinct species or subspecies of a locality.
const ListSeparator = ", "

// Key builds the locality key of a record. Unknown coordinates take part
// in the key as the "unknown" sentinel.
func Key(r specimen.Record) string {
	return r.Lat.String() + KeySeparator + r.Lon.String()
}

// Summary describes all records that share a locality key.
type Summary struct {
	// Key is the locality key ("lat|lon").
	Key string `json:"key"`

	// Lat and Lon are the coordinates, "unknown" when not available.
	Lat string `json:"lat"`
	Lon string `json:"lon"`

	// Samples is the number of records at this locality.
	Samples int `json:"samples"`

	// Species lists distinct species in the order they were encountered.
	Species []string `json:"species"`

	// Subspecies lists distinct subspecies in encounter order.
	Subspecies []string `json:"subspecies"`
}

// Coordinates returns numeric coordinates of the locality. The last value
// is false when either coordinate is unknown.
func (s Summary) Coordinates() (float64, float64, bool) {
	lat, err := strconv.ParseFloat(s.Lat, 64)
	if err != nil {
		return 0, 0, false
	}
	lon, err := strconv.ParseFloat(s.Lon, 64)
	if err != nil {
		return 0, 0, false
	}
	return lat, lon, true
}

// Aggregate returns a new table with locality data attached.
//
// Without location data every record gets "unknown" as locality unless
// one was uploaded. With location data each record receives its locality
// key, the number of records sharing the key, and the distinct species and
// subspecies at that key. The uploaded locality wins over the key.
// The input table is not modified; repeated runs give the same result.
func Aggregate(t specimen.Table, hasLocation bool) specimen.Table {
	res := t.Clone()
	uploaded := t.HasColumn(specimen.ColLocality)
	if !uploaded {
		res.Columns = append(res.Columns, specimen.ColLocality)
	}

	if !hasLocation {
		if !uploaded {
			for i := range res.Records {
				res.Records[i].Locality = specimen.Known(specimen.Unknown)
			}
		}
		return res
	}

	sums := summarize(res.Records)
	for i := range res.Records {
		r := &res.Records[i]
		s := sums.byKey[Key(*r)]
		r.LatLon = s.Key
		r.SamplesAtLocality = s.Samples
		r.SpeciesAtLocality = strings.Join(s.Species, ListSeparator)
		r.SubspeciesAtLocality = strings.Join(s.Subspecies, ListSeparator)
		if !uploaded {
			r.Locality = specimen.Known(s.Key)
		}
	}

	for _, col := range specimen.Derived {
		if !slices.Contains(res.Columns, col) {
			res.Columns = append(res.Columns, col)
		}
	}
	return res
}

// Summaries returns one Summary per locality key in first-seen order.
func Summaries(recs []specimen.Record) []Summary {
	sums := summarize(recs)
	res := make([]Summary, len(sums.keys))
	for i, k := range sums.keys {
		res[i] = *sums.byKey[k]
	}
	return res
}

type summaries struct {
	keys  []string
	byKey map[string]*Summary
}

func summarize(recs []specimen.Record) summaries {
	res := summaries{byKey: make(map[string]*Summary)}
	seenSp := make(map[string]map[string]struct{})
	seenSsp := make(map[string]map[string]struct{})

	for _, r := range recs {
		k := Key(r)
		s, ok := res.byKey[k]
		if !ok {
			s = &Summary{Key: k, Lat: r.Lat.String(), Lon: r.Lon.String()}
			res.byKey[k] = s
			res.keys = append(res.keys, k)
			seenSp[k] = make(map[string]struct{})
			seenSsp[k] = make(map[string]struct{})
		}
		s.Samples++
		s.Species = appendUnique(s.Species, seenSp[k], r.Species.String())
		s.Subspecies = appendUnique(
			s.Subspecies, seenSsp[k], r.Subspecies.String(),
		)
	}
	return res
}

func appendUnique(
	list []string,
	seen map[string]struct{},
	s string,
) []string {
	if _, ok := seen[s]; ok {
		return list
	}
	seen[s] = struct{}{}
	return append(list, s)
}
