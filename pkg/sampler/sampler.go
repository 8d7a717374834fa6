// Package sampler draws random specimen images that satisfy the
// subspecies selector and the View, Sex and hybrid status filters.
package sampler

import (
	"slices"
	"strings"

	"github.com/gnames/gndash/pkg/specimen"
)

// MaxCount is the largest number of images a user may request.
const MaxCount = 100

// Source provides random integers in [0, n).
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

// Query describes an image request.
type Query struct {
	Selector       Selector
	Views          []string
	Sexes          []string
	HybridStatuses []string

	// Count is the number of requested images. Nil or values below 1
	// mean 1.
	Count *int
}

// Image is one sampled specimen image.
type Image struct {
	URL        string `json:"url"`
	Filename   string `json:"filename,omitempty"`
	Species    string `json:"species"`
	Subspecies string `json:"subspecies"`
	View       string `json:"view"`
	Sex        string `json:"sex"`
}

// Sample returns up to Count images of records that match the query.
//
// Records are counted before the ones without image references are
// dropped, so an empty pool can tell "nothing matches" from "nothing
// matching has an image".
func Sample(t specimen.Table, q Query, src Source) ([]Image, error) {
	hasFilenames := t.HasColumn(specimen.ColImageFilename)

	var matched int
	var pool []specimen.Record
	for _, r := range t.Records {
		if !match(r, q) {
			continue
		}
		matched++
		if !displayable(r, hasFilenames) {
			continue
		}
		pool = append(pool, r)
	}

	if matched == 0 {
		return nil, NoMatchError()
	}
	if len(pool) == 0 {
		return nil, NoImagesError(matched)
	}

	num := min(count(q.Count), len(pool))
	res := make([]Image, 0, num)
	for _, r := range draw(pool, num, src) {
		res = append(res, newImage(r, hasFilenames))
	}
	return res, nil
}

// ResolveURL joins an image location with its filename. The location is
// used as is when the filename is unknown or already part of it.
func ResolveURL(fileURL, filename string) string {
	if filename == "" || filename == specimen.Unknown ||
		strings.Contains(fileURL, filename) {
		return fileURL
	}
	if strings.HasSuffix(fileURL, "/") {
		return fileURL + filename
	}
	return fileURL + "/" + filename
}

func match(r specimen.Record, q Query) bool {
	return q.Selector.Match(r) &&
		slices.Contains(q.Views, r.View.String()) &&
		slices.Contains(q.Sexes, r.Sex.String()) &&
		slices.Contains(q.HybridStatuses, r.HybridStat.String())
}

func displayable(r specimen.Record, hasFilenames bool) bool {
	if r.FileURL.IsUnknown() {
		return false
	}
	return !hasFilenames || !r.ImageFilename.IsUnknown()
}

func count(n *int) int {
	if n == nil || *n < 1 {
		return 1
	}
	return *n
}

// draw picks num records without replacement by a partial Fisher-Yates
// shuffle of their indices.
func draw(pool []specimen.Record, num int, src Source) []specimen.Record {
	idx := make([]int, len(pool))
	for i := range idx {
		idx[i] = i
	}
	res := make([]specimen.Record, num)
	for i := range num {
		j := i + src.IntN(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
		res[i] = pool[idx[i]]
	}
	return res
}

func newImage(r specimen.Record, hasFilenames bool) Image {
	var filename string
	if hasFilenames {
		filename = r.ImageFilename.String()
	}
	return Image{
		URL:        ResolveURL(r.FileURL.String(), filename),
		Filename:   filename,
		Species:    r.Species.String(),
		Subspecies: r.Subspecies.String(),
		View:       r.View.String(),
		Sex:        r.Sex.String(),
	}
}
