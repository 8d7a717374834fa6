package charts

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gnames/gndash/pkg/specimen"
)

// Sort is the order of histogram categories.
type Sort string

const (
	// SortAlpha orders categories alphabetically.
	SortAlpha Sort = "alpha"
	// SortAscending orders categories by total count, smallest first.
	SortAscending Sort = "sum ascending"
	// SortDescending orders categories by total count, largest first.
	SortDescending Sort = "sum descending"
)

// ParseSort converts user input to a Sort. Empty input means SortAlpha.
func ParseSort(s string) (Sort, error) {
	switch Sort(s) {
	case "", SortAlpha:
		return SortAlpha, nil
	case SortAscending, SortDescending:
		return Sort(s), nil
	}
	return "", SortError(s)
}

// Series holds the counts of one color value, aligned with the histogram
// categories.
type Series struct {
	Name   string `json:"name"`
	Counts []int  `json:"counts"`
}

// HistogramData is a stacked histogram.
type HistogramData struct {
	Title      string   `json:"title"`
	X          Field    `json:"x"`
	Color      Field    `json:"color"`
	Sort       Sort     `json:"sort"`
	Categories []string `json:"categories"`
	Totals     []int    `json:"totals"`
	Series     []Series `json:"series"`
}

// Histogram counts records per value of x, split by the value of color.
func Histogram(
	recs []specimen.Record,
	x, color string,
	sort Sort,
) (*HistogramData, error) {
	xf, err := LookupField(x)
	if err != nil {
		return nil, err
	}
	cf, err := LookupField(color)
	if err != nil {
		return nil, err
	}
	if _, err = ParseSort(string(sort)); err != nil {
		return nil, err
	}

	cats := newCounter()
	colors := newCounter()
	pairs := make(map[[2]string]int)
	for _, r := range recs {
		xv, cv := xf.value(r), cf.value(r)
		cats.add(xv)
		colors.add(cv)
		pairs[[2]string{xv, cv}]++
	}

	order := slices.Clone(cats.keys)
	switch sort {
	case SortAscending:
		slices.SortStableFunc(order, func(a, b string) int {
			return cats.counts[a] - cats.counts[b]
		})
	case SortDescending:
		slices.SortStableFunc(order, func(a, b string) int {
			return cats.counts[b] - cats.counts[a]
		})
	default:
		sort = SortAlpha
		slices.Sort(order)
	}

	res := HistogramData{
		Title: fmt.Sprintf("Distribution of %s Colored by %s",
			xf.Label, cf.Label),
		X:          xf,
		Color:      cf,
		Sort:       sort,
		Categories: order,
		Totals:     make([]int, len(order)),
	}
	for i, c := range order {
		res.Totals[i] = cats.counts[c]
	}
	for _, cv := range colors.keys {
		s := Series{Name: cv, Counts: make([]int, len(order))}
		for i, c := range order {
			s.Counts[i] = pairs[[2]string{c, cv}]
		}
		res.Series = append(res.Series, s)
	}
	return &res, nil
}

// String renders the histogram as plain text, one category per line.
func (h *HistogramData) String() string {
	var sb strings.Builder
	sb.WriteString(h.Title)
	sb.WriteString("\n")
	for i, c := range h.Categories {
		fmt.Fprintf(&sb, "%s\t%d\n", c, h.Totals[i])
	}
	return sb.String()
}
