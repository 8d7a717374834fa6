package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gnames/gndash/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const heliconius = `Species,Subspecies,View,Sex,hybrid_stat,lat,long,file_url
melpomene,schunkei,ventral,male,valid subspecies,-13.43,-70.38,https://a.org/1.png
melpomene,nanna,dorsal,female,subspecies synonym,5.25,-55.25,https://a.org/2.png
erato,,ventral,male,valid subspecies,5.250,-55.25,unknown
erato,guarica,lateral,unknown,hybrid,95,-55.25,
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestInspect(t *testing.T) {
	cfg = config.New()
	path := writeFile(t, "heliconius.csv", heliconius)

	cmd := getInspectCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	require.NoError(t, cmd.Flags().Set("format", "json"))

	err := runInspect(cmd, []string{path})
	require.NoError(t, err)

	var reps []report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &reps))
	require.Len(t, reps, 1)
	rep := reps[0]
	assert.Equal(t, path, rep.File)
	assert.Equal(t, 4, rep.Rows)
	assert.True(t, rep.HasLocation)
	assert.True(t, rep.HasImages)
	assert.Equal(t, []string{"Melpomene", "Erato"}, rep.Species)
	assert.Equal(t, 3, rep.Localities)
	assert.NotEmpty(t, rep.Warnings)
	assert.Empty(t, rep.Error)
}

func TestInspectErrors(t *testing.T) {
	cfg = config.New()
	good := writeFile(t, "good.csv", heliconius)
	bad := writeFile(t, "bad.csv", "Species,View\nerato,dorsal\n")
	odd := writeFile(t, "notes.txt", "hello")

	cmd := getInspectCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)

	err := runInspect(cmd, []string{good, bad, odd})
	assert.ErrorIs(t, err, errInspect)

	var reps []report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &reps))
	require.Len(t, reps, 3)
	assert.Equal(t, good, reps[0].File)
	assert.Equal(t, 4, reps[0].Rows)
	assert.Empty(t, reps[0].Error)
	assert.NotEmpty(t, reps[1].Error)
	assert.NotEmpty(t, reps[2].Error)
}

func TestInspectFormat(t *testing.T) {
	cfg = config.New()
	cmd := getInspectCmd()
	require.NoError(t, cmd.Flags().Set("format", "xml"))
	err := runInspect(cmd, []string{"whatever.csv"})
	assert.ErrorContains(t, err, "unknown format")
}

func TestSample(t *testing.T) {
	cfg = config.New()
	path := writeFile(t, "heliconius.csv", heliconius)

	cmd := getSampleCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	require.NoError(t, cmd.Flags().Set("count", "5"))
	require.NoError(t, cmd.Flags().Set("seed", "7"))

	err := runSample(cmd, path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
	out := buf.String()
	assert.Contains(t, out, "https://a.org/1.png")
	assert.Contains(t, out, "https://a.org/2.png")
}

func TestSampleFilters(t *testing.T) {
	cfg = config.New()
	path := writeFile(t, "heliconius.csv", heliconius)

	cmd := getSampleCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	flags := cmd.Flags()
	require.NoError(t, flags.Set("subspecies", "Any-melpomene"))
	require.NoError(t, flags.Set("views", "dorsal"))
	require.NoError(t, flags.Set("format", "json"))

	err := runSample(cmd, path)
	require.NoError(t, err)

	var res struct {
		Selector string `json:"selector"`
		Images   []struct {
			URL  string `json:"url"`
			View string `json:"view"`
		} `json:"images"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &res))
	require.Len(t, res.Images, 1)
	assert.Equal(t, "https://a.org/2.png", res.Images[0].URL)
	assert.Equal(t, "dorsal", res.Images[0].View)
	assert.NotEmpty(t, res.Selector)
}

func TestSampleErrors(t *testing.T) {
	cfg = config.New()
	path := writeFile(t, "heliconius.csv", heliconius)

	tests := []struct {
		msg   string
		flags map[string]string
	}{
		{"count", map[string]string{"count": "0"}},
		{"format", map[string]string{"format": "xml"}},
		{"no match", map[string]string{"views": "frontal"}},
		{"no images", map[string]string{"views": "lateral",
			"sexes": "unknown", "hybrids": "hybrid"}},
	}

	for _, tt := range tests {
		cmd := getSampleCmd()
		cmd.SetOut(new(bytes.Buffer))
		for k, v := range tt.flags {
			require.NoError(t, cmd.Flags().Set(k, v), tt.msg)
		}
		err := runSample(cmd, path)
		assert.Error(t, err, tt.msg)
	}
}

func TestServeFlags(t *testing.T) {
	cmd := getServeCmd()
	assert.Empty(t, serveFlags(cmd))

	flags := cmd.Flags()
	require.NoError(t, flags.Set("host", "127.0.0.1"))
	require.NoError(t, flags.Set("port", "9000"))
	require.NoError(t, flags.Set("store", "sqlite"))
	require.NoError(t, flags.Set("sqlite-path", "/tmp/s.db"))

	c := config.New()
	c.Update(serveFlags(cmd))
	assert.Equal(t, "127.0.0.1", c.Server.Host)
	assert.Equal(t, 9000, c.Server.Port)
	assert.Equal(t, "sqlite", c.Store.Backend)
	assert.Equal(t, "/tmp/s.db", c.Store.SQLitePath)
}

func TestUploadFlags(t *testing.T) {
	cmd := getInspectCmd()
	assert.Empty(t, uploadFlags(cmd))

	require.NoError(t, cmd.Flags().Set("fix-utf8", "true"))
	require.NoError(t, cmd.Flags().Set("max-upload-mb", "3"))

	c := config.New()
	c.Update(uploadFlags(cmd))
	assert.True(t, c.Upload.FixUTF8)
	assert.Equal(t, 3, c.Server.MaxUploadMB)
}
