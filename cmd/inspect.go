/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gndash/internal/iofs"
	"github.com/gnames/gndash/internal/ioupload"
	"github.com/gnames/gndash/pkg/dataset"
	"github.com/gnames/gndash/pkg/species"
	"github.com/gnames/gndash/pkg/validate"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var errInspect = errors.New("some uploads are not valid")

// report is the inspect output of one file.
type report struct {
	File        string             `json:"file"                  yaml:"file"`
	Size        string             `json:"size"                  yaml:"size"`
	DatasetID   string             `json:"dataset_id"            yaml:"dataset_id"`
	Rows        int                `json:"rows"                  yaml:"rows"`
	Columns     []string           `json:"columns"               yaml:"columns"`
	HasLocation bool               `json:"has_location"          yaml:"has_location"`
	HasImages   bool               `json:"has_images"            yaml:"has_images"`
	Species     []string           `json:"species"               yaml:"species"`
	Localities  int                `json:"localities"            yaml:"localities"`
	Warnings    []validate.Warning `json:"warnings,omitempty"    yaml:"warnings,omitempty"`
	Error       string             `json:"error,omitempty"       yaml:"error,omitempty"`
}

// getInspectCmd returns the inspect command.
func getInspectCmd() *cobra.Command {
	inspectCmd := &cobra.Command{
		Use:   "inspect FILE...",
		Short: "Validate uploads and print their summaries",
		Long: `Validate one or more specimen metadata files the same way the
HTTP API does, and print a summary of each: detected columns, optional
capabilities, species, number of localities and coordinate warnings.

Examples:
  gndash inspect heliconius.csv
  gndash inspect -f json data/*.xlsx`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runInspect(cmd, args)
			if err != nil && !errors.Is(err, errInspect) {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	inspectCmd.Flags().StringP("format", "f", "yaml",
		"output format: yaml or json")
	addUploadFlags(inspectCmd)

	return inspectCmd
}

func runInspect(cmd *cobra.Command, paths []string) error {
	if uOpts := uploadFlags(cmd); len(uOpts) > 0 {
		cfg.Update(uOpts)
	}
	format, _ := cmd.Flags().GetString("format")
	if format != "yaml" && format != "json" {
		return fmt.Errorf("unknown format %q, use yaml or json", format)
	}

	var bar *pb.ProgressBar
	if len(paths) > 1 {
		bar = pb.Full.New(len(paths)).SetWriter(os.Stderr)
		bar.Set("prefix", "Inspecting ")
		bar.Start()
		bar.Set(pb.CleanOnFinish, true)
	}

	var failed bool
	reports := make([]report, 0, len(paths))
	for _, path := range paths {
		rep, err := inspectFile(path)
		if err != nil {
			failed = true
			rep.Error = err.Error()
			gn.PrintErrorMessage(err)
		}
		reports = append(reports, rep)
		if bar != nil {
			bar.Increment()
		}
	}
	if bar != nil {
		bar.Finish()
	}

	if err := printReports(cmd, reports, format); err != nil {
		return err
	}
	if failed {
		return errInspect
	}
	return nil
}

func inspectFile(path string) (report, error) {
	rep := report{File: path}
	snap, size, err := loadSnapshot(path)
	if err != nil {
		return rep, err
	}

	rep.Size = humanize.Bytes(uint64(size))
	rep.DatasetID = snap.ID
	rep.Rows = len(snap.Records)
	rep.Columns = snap.Columns
	rep.HasLocation = snap.Capabilities.HasLocation
	rep.HasImages = snap.Capabilities.HasImages
	for _, k := range snap.Index.Keys() {
		if k != species.Any {
			rep.Species = append(rep.Species, k)
		}
	}
	rep.Localities = len(snap.Localities())
	rep.Warnings = snap.Warnings
	return rep, nil
}

// loadSnapshot reads, parses and validates an upload from disk.
func loadSnapshot(path string) (*dataset.Snapshot, int, error) {
	maxBytes := int64(cfg.Server.MaxUploadMB) << 20
	name, data, err := iofs.ReadUpload(path, maxBytes)
	if err != nil {
		return nil, 0, err
	}

	raw, err := ioupload.Parse(name, data, ioupload.Options{
		FixUTF8:  cfg.Upload.FixUTF8,
		MaxBytes: maxBytes,
	})
	if err != nil {
		return nil, 0, err
	}

	snap, err := dataset.Build(raw, name, data)
	if err != nil {
		return nil, 0, err
	}
	return snap, len(data), nil
}

func printReports(cmd *cobra.Command, reports []report, format string) error {
	var out []byte
	var err error
	switch format {
	case "json":
		enc := gnfmt.GNjson{Pretty: true}
		out, err = enc.Encode(reports)
		out = append(out, '\n')
	default:
		out, err = yaml.Marshal(reports)
	}
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
