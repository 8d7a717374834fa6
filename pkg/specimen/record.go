package specimen

// Record is one specimen row of an uploaded dataset.
type Record struct {
	Species       Value `json:"species"`
	Subspecies    Value `json:"subspecies"`
	View          Value `json:"view"`
	Sex           Value `json:"sex"`
	HybridStat    Value `json:"hybrid_stat"`
	Lat           Value `json:"lat"`
	Lon           Value `json:"lon"`
	FileURL       Value `json:"file_url"`
	ImageFilename Value `json:"image_filename"`
	Locality      Value `json:"locality"`

	// LatLon is the locality key, empty when location data is missing.
	LatLon string `json:"lat_lon,omitempty"`

	// SamplesAtLocality is the number of rows sharing LatLon.
	SamplesAtLocality int `json:"samples_at_locality,omitempty"`

	// SpeciesAtLocality joins the distinct species found at LatLon.
	SpeciesAtLocality string `json:"species_at_locality,omitempty"`

	// SubspeciesAtLocality joins the distinct subspecies found at LatLon.
	SubspeciesAtLocality string `json:"subspecies_at_locality,omitempty"`
}

// Value returns the cell of a canonical uploaded column. The second value
// is false for names that are not uploaded columns.
func (r Record) Value(col string) (Value, bool) {
	switch col {
	case ColSpecies:
		return r.Species, true
	case ColSubspecies:
		return r.Subspecies, true
	case ColView:
		return r.View, true
	case ColSex:
		return r.Sex, true
	case ColHybridStat:
		return r.HybridStat, true
	case ColLat:
		return r.Lat, true
	case ColLon:
		return r.Lon, true
	case ColFileURL:
		return r.FileURL, true
	case ColImageFilename:
		return r.ImageFilename, true
	case ColLocality:
		return r.Locality, true
	}
	return Absent(), false
}

// SetValue assigns the cell of a canonical uploaded column. Unknown names
// are ignored.
func (r *Record) SetValue(col string, v Value) {
	switch col {
	case ColSpecies:
		r.Species = v
	case ColSubspecies:
		r.Subspecies = v
	case ColView:
		r.View = v
	case ColSex:
		r.Sex = v
	case ColHybridStat:
		r.HybridStat = v
	case ColLat:
		r.Lat = v
	case ColLon:
		r.Lon = v
	case ColFileURL:
		r.FileURL = v
	case ColImageFilename:
		r.ImageFilename = v
	case ColLocality:
		r.Locality = v
	}
}

// Get returns the filled value of any column, derived ones included.
// Samples_at_locality is returned as an int, everything else as a string.
func (r Record) Get(col string) (any, bool) {
	switch col {
	case ColLatLon:
		return r.LatLon, true
	case ColSamplesAtLocality:
		return r.SamplesAtLocality, true
	case ColSpeciesAtLocality:
		return r.SpeciesAtLocality, true
	case ColSubspeciesAtLocality:
		return r.SubspeciesAtLocality, true
	}
	v, ok := r.Value(col)
	if !ok {
		return nil, false
	}
	return v.String(), true
}
