package dataset_test

import (
	"encoding/json"
	"testing"

	"github.com/gnames/gndash/pkg/dataset"
	"github.com/gnames/gndash/pkg/specimen"
	"github.com/gnames/gndash/pkg/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawTable() *specimen.RawTable {
	return &specimen.RawTable{
		Header: []string{"Species", "Subspecies", "View", "Sex",
			"hybrid_stat", "lat", "long", "file_url"},
		Rows: [][]string{
			{"melpomene", "schunkei", "ventral", "male", "valid subspecies",
				"-13.43", "-70.38", "https://a.org/1.png"},
			{"melpomene", "nanna", "dorsal", "female", "subspecies synonym",
				"5.25", "-55.25", "https://a.org/2.png"},
			{"erato", "", "ventral", "male", "valid subspecies",
				"5.250", "-55.25", "unknown"},
			{"erato", "guarica", "lateral", "unknown", "hybrid",
				"95", "-55.25", ""},
		},
	}
}

func TestBuild(t *testing.T) {
	assert := assert.New(t)
	content := []byte("uploaded bytes")
	snap, err := dataset.Build(rawTable(), "heliconius.csv", content)
	require.NoError(t, err)

	assert.Equal("heliconius.csv", snap.Filename)
	assert.Len(snap.ID, 36)
	assert.True(snap.Capabilities.HasLocation)
	assert.True(snap.Capabilities.HasImages)
	assert.Equal([]string{"Species", "Subspecies", "View", "Sex",
		"hybrid_stat", "lat", "lon", "file_url", "locality", "lat-lon",
		"Samples_at_locality", "Species_at_locality",
		"Subspecies_at_locality"}, snap.Columns)

	assert.Equal([]string{"Melpomene", "Erato", "Any"}, snap.Index.Keys())
	opts, _ := snap.Index.Options("Erato")
	assert.Equal([]string{"Any-Erato", "guarica"}, opts)

	assert.Equal(2, snap.Records[1].SamplesAtLocality)
	assert.Equal("melpomene, erato", snap.Records[2].SpeciesAtLocality)
	assert.Equal("nanna, unknown", snap.Records[2].SubspeciesAtLocality)
	assert.Equal("unknown|-55.25", snap.Records[3].LatLon)
	assert.Len(snap.Warnings, 1)

	assert.Equal([]string{"ventral", "dorsal", "lateral"}, snap.Filters.Views)
	assert.Equal([]string{"male", "female", "unknown"}, snap.Filters.Sexes)
	def := snap.Filters.Defaults()
	assert.Equal([]string{"ventral", "dorsal"}, def.Views)
	assert.Equal([]string{"valid subspecies", "subspecies synonym"},
		def.HybridStatuses)

	again, err := dataset.Build(rawTable(), "other.csv", content)
	require.NoError(t, err)
	assert.Equal(snap.ID, again.ID)
}

func TestBuildMissingColumn(t *testing.T) {
	raw := rawTable()
	raw.Header[3] = "Gender"
	snap, err := dataset.Build(raw, "bad.csv", nil)
	assert.Nil(t, snap)
	col, ok := validate.MissingColumn(err)
	assert.True(t, ok)
	assert.Equal(t, "Sex", col)
}

func TestSummaryAndEvent(t *testing.T) {
	snap, err := dataset.Build(rawTable(), "heliconius.csv", []byte("x"))
	require.NoError(t, err)

	sum := snap.Summary()
	assert.Equal(t, 4, sum.Rows)
	assert.Equal(t, 2, sum.Species)
	assert.Equal(t, 3, sum.Localities)
	assert.Equal(t, 1, sum.Warnings)

	e := dataset.NewEvent("session-1", snap)
	assert.Equal(t, "session-1", e.SessionID)
	assert.Equal(t, snap.ID, e.DatasetID)
	assert.Equal(t, 4, e.Rows)
	assert.True(t, e.HasImages)
}

func TestSnapshotJSON(t *testing.T) {
	snap, err := dataset.Build(rawTable(), "heliconius.csv", []byte("x"))
	require.NoError(t, err)

	data, err := json.Marshal(snap)
	require.NoError(t, err)
	var res dataset.Snapshot
	err = json.Unmarshal(data, &res)
	require.NoError(t, err)

	assert.True(t, snap.CreatedAt.Equal(res.CreatedAt))
	res.CreatedAt = snap.CreatedAt
	assert.Equal(t, *snap, res)
	assert.True(t, res.Records[2].Subspecies.IsAbsent())
}

func TestNotFound(t *testing.T) {
	err := dataset.NotFoundError("abc")
	assert.True(t, dataset.IsNotFound(err))
	assert.False(t, dataset.IsNotFound(assert.AnError))
}

func TestDefaultsShortLists(t *testing.T) {
	f := dataset.Filters{Views: []string{"dorsal"}}
	def := f.Defaults()
	assert.Equal(t, []string{"dorsal"}, def.Views)
	assert.Empty(t, def.Sexes)
}
