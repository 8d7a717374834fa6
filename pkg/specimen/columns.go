package specimen

import "strings"

// Canonical column names of an uploaded dataset.
const (
	ColSpecies       = "Species"
	ColSubspecies    = "Subspecies"
	ColView          = "View"
	ColSex           = "Sex"
	ColHybridStat    = "hybrid_stat"
	ColLat           = "lat"
	ColLon           = "lon"
	ColFileURL       = "file_url"
	ColImageFilename = "Image_filename"
	ColLocality      = "locality"
)

// Columns derived by the locality aggregator.
const (
	ColLatLon               = "lat-lon"
	ColSamplesAtLocality    = "Samples_at_locality"
	ColSpeciesAtLocality    = "Species_at_locality"
	ColSubspeciesAtLocality = "Subspecies_at_locality"
)

// Recognized lists the uploaded columns that are kept, in output order.
var Recognized = []string{
	ColSpecies, ColSubspecies, ColView, ColSex, ColHybridStat,
	ColLat, ColLon, ColFileURL, ColImageFilename, ColLocality,
}

// Required columns must be present in every upload.
var Required = []string{
	ColSpecies, ColSubspecies, ColView, ColSex, ColHybridStat,
}

// Derived lists the columns added when location data is available.
var Derived = []string{
	ColLatLon, ColSamplesAtLocality, ColSpeciesAtLocality,
	ColSubspeciesAtLocality,
}

// aliases maps alternative header spellings to canonical names.
var aliases = map[string]string{
	"long": ColLon,
}

// CanonicalColumn maps an uploaded header to its canonical column name.
// Matching ignores case and surrounding spaces. The second value is false
// for headers that are not recognized.
func CanonicalColumn(header string) (string, bool) {
	h := strings.ToLower(strings.TrimSpace(header))
	for _, c := range Recognized {
		if strings.ToLower(c) == h {
			return c, true
		}
	}
	if c, ok := aliases[h]; ok {
		return c, true
	}
	return "", false
}

// IsAlias is true when header is an alternative spelling and not the
// canonical name itself.
func IsAlias(header string) bool {
	_, ok := aliases[strings.ToLower(strings.TrimSpace(header))]
	return ok
}
