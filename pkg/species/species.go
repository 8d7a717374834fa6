// Package species builds the species to subspecies index that feeds the
// dependent species and subspecies selectors.
package species

import (
	"encoding/json"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gnames/gndash/pkg/specimen"
)

// Any is the key of the entry that covers all species.
const Any = "Any"

// AnyPrefix starts the wildcard option of a species entry.
const AnyPrefix = "Any-"

// Index maps a species key to its option list. The first option of every
// entry is a wildcard: "Any-<Species>" for species entries and "Any" for
// the entry that covers everything.
type Index struct {
	keys    []string
	options map[string][]string
}

// Keys returns species keys in first-seen order followed by "Any".
func (idx Index) Keys() []string {
	res := make([]string, len(idx.keys))
	copy(res, idx.keys)
	return res
}

// Options returns the option list of a key. The second value is false
// when the key is not in the index.
func (idx Index) Options(key string) ([]string, bool) {
	opts, ok := idx.options[key]
	if !ok {
		return nil, false
	}
	res := make([]string, len(opts))
	copy(res, opts)
	return res, true
}

// Len returns the number of entries including "Any".
func (idx Index) Len() int {
	return len(idx.keys)
}

// Map returns a copy of the index as a plain map.
func (idx Index) Map() map[string][]string {
	res := make(map[string][]string, len(idx.options))
	for _, k := range idx.keys {
		res[k], _ = idx.Options(k)
	}
	return res
}

// FromMap restores an index from keys and their option lists. Keys that
// have no options are dropped.
func FromMap(keys []string, options map[string][]string) Index {
	res := Index{options: make(map[string][]string, len(keys))}
	for _, k := range keys {
		opts, ok := options[k]
		if !ok {
			continue
		}
		res.keys = append(res.keys, k)
		res.options[k] = append([]string(nil), opts...)
	}
	return res
}

// BuildIndex collects distinct subspecies per species. Species names are
// normalised with Capitalize, so "erato" and "ERATO" share one entry.
// Absent species or subspecies do not take part in the index, explicit
// "unknown" values do.
func BuildIndex(recs []specimen.Record) Index {
	res := Index{options: make(map[string][]string)}
	seen := make(map[string]map[string]struct{})
	var all []string
	allSeen := make(map[string]struct{})

	for _, r := range recs {
		ssp := r.Subspecies.String()
		if !r.Subspecies.IsAbsent() {
			if _, ok := allSeen[ssp]; !ok {
				allSeen[ssp] = struct{}{}
				all = append(all, ssp)
			}
		}

		if r.Species.IsAbsent() {
			continue
		}
		key := Capitalize(r.Species.String())
		if _, ok := res.options[key]; !ok {
			res.keys = append(res.keys, key)
			res.options[key] = []string{AnyPrefix + key}
			seen[key] = make(map[string]struct{})
		}
		if r.Subspecies.IsAbsent() {
			continue
		}
		if _, ok := seen[key][ssp]; !ok {
			seen[key][ssp] = struct{}{}
			res.options[key] = append(res.options[key], ssp)
		}
	}

	// A species literally named "any" is shadowed by the wildcard entry.
	res.keys = slices.DeleteFunc(res.keys, func(k string) bool {
		return k == Any
	})
	res.keys = append(res.keys, Any)
	res.options[Any] = append([]string{Any}, all...)
	return res
}

// Capitalize upper-cases the first letter and lower-cases the rest.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

type indexJSON struct {
	Keys    []string            `json:"keys"`
	Options map[string][]string `json:"options"`
}

// MarshalJSON keeps the order of keys next to the option lists.
func (idx Index) MarshalJSON() ([]byte, error) {
	return json.Marshal(indexJSON{Keys: idx.Keys(), Options: idx.Map()})
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (idx *Index) UnmarshalJSON(data []byte) error {
	var v indexJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*idx = FromMap(v.Keys, v.Options)
	return nil
}
