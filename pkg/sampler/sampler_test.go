package sampler_test

import (
	"math/rand/v2"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gndash/pkg/errcode"
	"github.com/gnames/gndash/pkg/sampler"
	"github.com/gnames/gndash/pkg/specimen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	urlV = "https://example.org/test_data/images/ventral_images/"
	urlD = "https://example.org/test_data/images/dorsal_images/"
)

func table() specimen.Table {
	rows := [][]string{
		{"melpomene", "schunkei", "ventral", "male", "subspecies synonym",
			urlV + "10428251_V_lowres.png"},
		{"melpomene", "nanna", "ventral", "female", "valid subspecies",
			urlV + "10428328_V_lowres.png"},
		{"erato", "erato", "ventral", "female", "subspecies synonym",
			urlV + "10428723_V_lowres.png"},
		{"melpomene", "rosina_N", "dorsal", "male", "valid subspecies",
			urlD + "10427968_D_lowres.png"},
		{"erato", "guarica", "dorsal", "female", "valid subspecies",
			urlD + "10428804_D_lowres.png"},
		{"species3", "subspecies6", "ventral", "male", "subspecies synonym",
			"unknown"},
	}
	res := specimen.Table{Columns: []string{
		specimen.ColSpecies, specimen.ColSubspecies, specimen.ColView,
		specimen.ColSex, specimen.ColHybridStat, specimen.ColFileURL,
	}}
	for _, v := range rows {
		res.Records = append(res.Records, specimen.Record{
			Species:    specimen.Cell(v[0]),
			Subspecies: specimen.Cell(v[1]),
			View:       specimen.Cell(v[2]),
			Sex:        specimen.Cell(v[3]),
			HybridStat: specimen.Cell(v[4]),
			FileURL:    specimen.Cell(v[5]),
		})
	}
	return res
}

func num(n int) *int {
	return &n
}

var (
	both   = []string{"valid subspecies", "subspecies synonym"}
	views  = []string{"dorsal", "ventral"}
	sexes  = []string{"male", "female"}
	rngSrc = func() sampler.Source { return rand.New(rand.NewPCG(1, 2)) }
)

func urls(imgs []sampler.Image) []string {
	res := make([]string, len(imgs))
	for i := range imgs {
		res[i] = imgs[i].URL
	}
	return res
}

func TestSample(t *testing.T) {
	tests := []struct {
		msg   string
		sel   []string
		views []string
		sexes []string
		hybr  []string
		count *int
		urls  []string
	}{
		{"species wildcard", []string{"Any-Melpomene"}, []string{"ventral"},
			[]string{"male"}, both, num(2),
			[]string{urlV + "10428251_V_lowres.png"}},
		{"explicit subspecies", []string{"guarica"}, views, sexes, both,
			num(1), []string{urlD + "10428804_D_lowres.png"}},
		{"nil count", []string{"Any-Erato"}, views, sexes,
			[]string{"subspecies synonym"}, nil,
			[]string{urlV + "10428723_V_lowres.png"}},
		{"any", []string{"Any"}, []string{"dorsal"}, []string{"female"},
			[]string{"valid subspecies"}, num(1),
			[]string{urlD + "10428804_D_lowres.png"}},
		{"explicit set", []string{"schunkei", "nanna", "rosina_N"}, views,
			sexes, both, num(3),
			[]string{
				urlV + "10428251_V_lowres.png",
				urlV + "10428328_V_lowres.png",
				urlD + "10427968_D_lowres.png",
			}},
		{"zero count means one", []string{"guarica"}, views, sexes, both,
			num(0), []string{urlD + "10428804_D_lowres.png"}},
	}

	for _, v := range tests {
		q := sampler.Query{
			Selector:       sampler.ParseSelector(v.sel),
			Views:          v.views,
			Sexes:          v.sexes,
			HybridStatuses: v.hybr,
			Count:          v.count,
		}
		res, err := sampler.Sample(table(), q, rngSrc())
		require.NoError(t, err, v.msg)
		assert.ElementsMatch(t, v.urls, urls(res), v.msg)
	}
}

func TestSampleSpeciesCaseInsensitive(t *testing.T) {
	q := sampler.Query{
		Selector:       sampler.AllOfSpecies("Melpomene"),
		Views:          views,
		Sexes:          sexes,
		HybridStatuses: both,
		Count:          num(100),
	}
	res, err := sampler.Sample(table(), q, rngSrc())
	require.NoError(t, err)
	assert.Len(t, res, 3)
	for _, img := range res {
		assert.Equal(t, "melpomene", img.Species)
	}
}

func TestSampleBounds(t *testing.T) {
	q := sampler.Query{
		Selector:       sampler.AllRecords(),
		Views:          views,
		Sexes:          sexes,
		HybridStatuses: both,
	}
	for _, n := range []int{1, 2, 4, 5, 6, 100} {
		q.Count = num(n)
		res, err := sampler.Sample(table(), q, rngSrc())
		require.NoError(t, err)
		assert.Len(t, res, min(n, 5), n)

		seen := make(map[string]struct{})
		for _, img := range res {
			seen[img.URL] = struct{}{}
			assert.NotEqual(t, "unknown", img.URL)
		}
		assert.Len(t, seen, len(res), "drawn without replacement")
	}
}

func TestSampleDeterministic(t *testing.T) {
	q := sampler.Query{
		Selector:       sampler.AllRecords(),
		Views:          views,
		Sexes:          sexes,
		HybridStatuses: both,
		Count:          num(2),
	}
	res1, err := sampler.Sample(table(), q, rngSrc())
	require.NoError(t, err)
	res2, err := sampler.Sample(table(), q, rngSrc())
	require.NoError(t, err)
	assert.Equal(t, res1, res2)
}

func TestSampleErrors(t *testing.T) {
	t.Run("no match", func(t *testing.T) {
		q := sampler.Query{
			Selector:       sampler.ExplicitSet("lativitta"),
			Views:          views,
			Sexes:          sexes,
			HybridStatuses: both,
		}
		_, err := sampler.Sample(table(), q, rngSrc())
		require.Error(t, err)
		gnErr, ok := err.(*gn.Error)
		require.True(t, ok)
		assert.Equal(t, errcode.SampleNoMatchError, gnErr.Code)
		_, ok = sampler.Matched(err)
		assert.False(t, ok)
	})

	t.Run("no images", func(t *testing.T) {
		q := sampler.Query{
			Selector:       sampler.AllOfSpecies("species3"),
			Views:          views,
			Sexes:          sexes,
			HybridStatuses: both,
		}
		_, err := sampler.Sample(table(), q, rngSrc())
		require.Error(t, err)
		n, ok := sampler.Matched(err)
		assert.True(t, ok)
		assert.Equal(t, 1, n)
	})

	t.Run("empty filters", func(t *testing.T) {
		q := sampler.Query{Selector: sampler.AllRecords()}
		_, err := sampler.Sample(table(), q, rngSrc())
		gnErr, ok := err.(*gn.Error)
		require.True(t, ok)
		assert.Equal(t, errcode.SampleNoMatchError, gnErr.Code)
	})
}

func hydara(url, file specimen.Value) specimen.Record {
	return specimen.Record{
		Species:       specimen.Known("erato"),
		Subspecies:    specimen.Known("hydara"),
		View:          specimen.Known("dorsal"),
		Sex:           specimen.Known("male"),
		HybridStat:    specimen.Known("valid subspecies"),
		FileURL:       url,
		ImageFilename: file,
	}
}

func TestSampleFilenames(t *testing.T) {
	tbl := specimen.Table{
		Columns: []string{specimen.ColSpecies, specimen.ColSubspecies,
			specimen.ColView, specimen.ColSex, specimen.ColHybridStat,
			specimen.ColFileURL, specimen.ColImageFilename},
		Records: []specimen.Record{
			hydara(specimen.Known(urlD), specimen.Known("1.png")),
			hydara(specimen.Known(urlD+"2.png"), specimen.Absent()),
		},
	}
	q := sampler.Query{
		Selector:       sampler.ExplicitSet("hydara"),
		Views:          views,
		Sexes:          sexes,
		HybridStatuses: both,
		Count:          num(5),
	}
	res, err := sampler.Sample(tbl, q, rngSrc())
	require.NoError(t, err)
	assert.Equal(t, []string{urlD + "1.png"}, urls(res))
	assert.Equal(t, "1.png", res[0].Filename)
}

func TestResolveURL(t *testing.T) {
	tests := []struct {
		msg, url, file, res string
	}{
		{"no filename", "https://a.org/1.png", "", "https://a.org/1.png"},
		{"unknown filename", "https://a.org/x", "unknown", "https://a.org/x"},
		{"contained", "https://a.org/1.png", "1.png", "https://a.org/1.png"},
		{"trailing slash", "https://a.org/", "1.png", "https://a.org/1.png"},
		{"joined", "https://a.org", "1.png", "https://a.org/1.png"},
	}
	for _, v := range tests {
		assert.Equal(t, v.res, sampler.ResolveURL(v.url, v.file), v.msg)
	}
}

func TestParseSelector(t *testing.T) {
	tests := []struct {
		msg    string
		values []string
		kind   sampler.SelectorKind
		str    string
	}{
		{"any", []string{"Any"}, sampler.KindAll, "Any"},
		{"species", []string{"Any-Erato"}, sampler.KindSpecies, "Any-Erato"},
		{"one subspecies", []string{"hydara"}, sampler.KindSet, "hydara"},
		{"set", []string{"hydara", "Any"}, sampler.KindSet, "hydara,Any"},
		{"empty", nil, sampler.KindSet, ""},
	}
	for _, v := range tests {
		sel := sampler.ParseSelector(v.values)
		assert.Equal(t, v.kind, sel.Kind(), v.msg)
		assert.Equal(t, v.str, sel.String(), v.msg)
	}
	assert.Equal(t, "Erato", sampler.ParseSelector([]string{"Any-Erato"}).Species())
}
