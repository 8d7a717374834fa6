package sampler

import (
	"slices"
	"strings"

	"github.com/gnames/gndash/pkg/species"
	"github.com/gnames/gndash/pkg/specimen"
)

// SelectorKind tells how a Selector narrows records.
type SelectorKind int

const (
	// KindAll keeps every record.
	KindAll SelectorKind = iota
	// KindSpecies keeps records of one species.
	KindSpecies
	// KindSet keeps records whose subspecies is in a set.
	KindSet
)

func (k SelectorKind) String() string {
	switch k {
	case KindAll:
		return "all"
	case KindSpecies:
		return "species"
	case KindSet:
		return "set"
	}
	return "unknown"
}

// Selector is the resolved value of the subspecies selector.
type Selector struct {
	kind    SelectorKind
	species string
	names   []string
}

// AllRecords selects every record.
func AllRecords() Selector {
	return Selector{kind: KindAll}
}

// AllOfSpecies selects records of a species regardless of subspecies.
func AllOfSpecies(name string) Selector {
	return Selector{kind: KindSpecies, species: name}
}

// ExplicitSet selects records with one of the given subspecies.
func ExplicitSet(names ...string) Selector {
	return Selector{kind: KindSet, names: slices.Clone(names)}
}

// ParseSelector resolves values chosen in the subspecies selector.
// A single "Any" selects everything, a single "Any-<Species>" selects one
// species, anything else is an explicit set of subspecies.
func ParseSelector(values []string) Selector {
	if len(values) == 1 {
		v := values[0]
		if v == species.Any {
			return AllRecords()
		}
		if name, ok := strings.CutPrefix(v, species.AnyPrefix); ok {
			return AllOfSpecies(name)
		}
	}
	return ExplicitSet(values...)
}

// Kind returns the kind of the selector.
func (s Selector) Kind() SelectorKind {
	return s.kind
}

// Species returns the species of a KindSpecies selector.
func (s Selector) Species() string {
	return s.species
}

// Names returns the subspecies of a KindSet selector.
func (s Selector) Names() []string {
	return slices.Clone(s.names)
}

// Match reports whether a record passes the selector.
func (s Selector) Match(r specimen.Record) bool {
	switch s.kind {
	case KindAll:
		return true
	case KindSpecies:
		return strings.EqualFold(r.Species.String(), s.species)
	case KindSet:
		return slices.Contains(s.names, r.Subspecies.String())
	}
	return false
}

func (s Selector) String() string {
	switch s.kind {
	case KindSpecies:
		return species.AnyPrefix + s.species
	case KindSet:
		return strings.Join(s.names, ",")
	}
	return species.Any
}
