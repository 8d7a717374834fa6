package charts

import (
	"strconv"

	"github.com/gnames/gndash/pkg/locality"
	"github.com/gnames/gndash/pkg/specimen"
	"github.com/golang/geo/s2"
)

// Point is a marker of the locality map.
type Point struct {
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Locality string  `json:"locality"`

	// Color is the value of the color field shared by the records of the
	// point.
	Color string `json:"color"`

	// Count is the number of records behind the point.
	Count int `json:"count"`

	// Size is the number of records at the locality regardless of color.
	Size int `json:"size"`

	Species    string `json:"species"`
	Subspecies string `json:"subspecies"`
}

// LatLon is a pair of coordinates in degrees.
type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Bounds is the smallest latitude-longitude rectangle that contains all
// points.
type Bounds struct {
	SouthWest LatLon `json:"south_west"`
	NorthEast LatLon `json:"north_east"`
}

// MapData is the scatter map of localities.
type MapData struct {
	Title     string  `json:"title"`
	Color     Field   `json:"color"`
	Points    []Point `json:"points"`
	Bounds    *Bounds `json:"bounds,omitempty"`
	Center    *LatLon `json:"center,omitempty"`
	Unplotted int     `json:"unplotted"`
}

// Map places records on a map, one point per locality and color value.
// Records with unknown coordinates are only counted.
func Map(
	recs []specimen.Record,
	hasLocation bool,
	color string,
) (*MapData, error) {
	if !hasLocation {
		return nil, NoLocationError()
	}
	f, err := LookupField(color)
	if err != nil {
		return nil, err
	}

	res := MapData{
		Title: "Specimen Localities Colored by " + f.Label,
		Color: f,
	}
	rect := s2.EmptyRect()
	points := make(map[[2]string]int)
	for _, r := range recs {
		lat, lon, ok := coordinates(r)
		if !ok {
			res.Unplotted++
			continue
		}
		key := [2]string{locality.Key(r), f.value(r)}
		if i, ok := points[key]; ok {
			res.Points[i].Count++
			continue
		}
		points[key] = len(res.Points)
		res.Points = append(res.Points, Point{
			Lat:        lat,
			Lon:        lon,
			Locality:   r.Locality.String(),
			Color:      key[1],
			Count:      1,
			Size:       r.SamplesAtLocality,
			Species:    r.SpeciesAtLocality,
			Subspecies: r.SubspeciesAtLocality,
		})
		rect = rect.AddPoint(s2.LatLngFromDegrees(lat, lon))
	}

	if !rect.IsEmpty() {
		lo, hi, c := rect.Lo(), rect.Hi(), rect.Center()
		res.Bounds = &Bounds{
			SouthWest: LatLon{Lat: lo.Lat.Degrees(), Lon: lo.Lng.Degrees()},
			NorthEast: LatLon{Lat: hi.Lat.Degrees(), Lon: hi.Lng.Degrees()},
		}
		res.Center = &LatLon{Lat: c.Lat.Degrees(), Lon: c.Lng.Degrees()}
	}
	return &res, nil
}

func coordinates(r specimen.Record) (float64, float64, bool) {
	lat, err := strconv.ParseFloat(r.Lat.String(), 64)
	if err != nil {
		return 0, 0, false
	}
	lon, err := strconv.ParseFloat(r.Lon.String(), 64)
	if err != nil {
		return 0, 0, false
	}
	return lat, lon, true
}
