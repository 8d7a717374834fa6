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
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/gndash/pkg/dataset"
	"github.com/gnames/gndash/pkg/sampler"
	"github.com/gnames/gndash/pkg/species"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"
)

// getSampleCmd returns the sample command.
func getSampleCmd() *cobra.Command {
	sampleCmd := &cobra.Command{
		Use:   "sample FILE",
		Short: "Draw random specimen images from a file",
		Long: `Draw random specimen images from a metadata file using the same
selectors as the dashboard. Without filter flags the first few values of
each filter are selected, as in the web interface.

Examples:
  gndash sample heliconius.csv
  gndash sample -n 5 --subspecies Any-erato data.csv
  gndash sample --views dorsal,ventral --seed 42 -f json data.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runSample(cmd, args[0])
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	flags := sampleCmd.Flags()
	flags.StringSlice("subspecies", []string{species.Any},
		"subspecies selection: Any, Any-<Species> or a list of names")
	flags.StringSlice("views", nil, "views to include")
	flags.StringSlice("sexes", nil, "sexes to include")
	flags.StringSlice("hybrids", nil, "hybrid statuses to include")
	flags.IntP("count", "n", 1, "number of images")
	flags.Uint64("seed", 0, "random seed, zero means time based")
	flags.StringP("format", "f", "text", "output format: text or json")
	addUploadFlags(sampleCmd)

	return sampleCmd
}

func runSample(cmd *cobra.Command, path string) error {
	if uOpts := uploadFlags(cmd); len(uOpts) > 0 {
		cfg.Update(uOpts)
	}
	flags := cmd.Flags()
	format, _ := flags.GetString("format")
	if format != "text" && format != "json" {
		return fmt.Errorf("unknown format %q, use text or json", format)
	}
	count, _ := flags.GetInt("count")
	if count < 1 || count > sampler.MaxCount {
		return fmt.Errorf("count must be from 1 to %d", sampler.MaxCount)
	}

	snap, _, err := loadSnapshot(path)
	if err != nil {
		return err
	}

	q := sampleQuery(cmd, snap.Filters.Defaults())
	q.Count = &count

	images, err := sampler.Sample(snap.Table(), q, newRand(cmd))
	if err != nil {
		return err
	}
	return printImages(cmd, q.Selector, images, format)
}

// sampleQuery builds a query from flags, filling unset filters with
// defaults.
func sampleQuery(cmd *cobra.Command, defs dataset.Filters) sampler.Query {
	flags := cmd.Flags()
	get := func(name string, def []string) []string {
		if !flags.Changed(name) {
			return def
		}
		res, _ := flags.GetStringSlice(name)
		return res
	}
	subsp, _ := flags.GetStringSlice("subspecies")

	return sampler.Query{
		Selector:       sampler.ParseSelector(subsp),
		Views:          get("views", defs.Views),
		Sexes:          get("sexes", defs.Sexes),
		HybridStatuses: get("hybrids", defs.HybridStatuses),
	}
}

func newRand(cmd *cobra.Command) *rand.Rand {
	seed, _ := cmd.Flags().GetUint64("seed")
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed>>1))
}

func printImages(
	cmd *cobra.Command,
	sel sampler.Selector,
	images []sampler.Image,
	format string,
) error {
	out := cmd.OutOrStdout()
	if format == "json" {
		enc := gnfmt.GNjson{Pretty: true}
		res, err := enc.Encode(map[string]any{
			"selector": sel.String(),
			"images":   images,
		})
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(res))
		return err
	}

	for _, img := range images {
		_, err := fmt.Fprintf(out, "%s\t%s\t%s\t%s\n",
			img.URL, img.Subspecies, img.View, img.Sex)
		if err != nil {
			return err
		}
	}
	return nil
}
