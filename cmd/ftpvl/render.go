// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/symbiflow/ftpvl/evaluation"
	"github.com/symbiflow/ftpvl/pipeline"
	"github.com/symbiflow/ftpvl/visualize"
)

// renderFlags are the output flags shared by show and diff.
type renderFlags struct {
	format      string
	output      string
	columns     []string
	preset      bool
	versions    bool
	chartColumn string
	pipeline    string
}

func (f *renderFlags) register(flags *pflag.FlagSet, format string) {
	flags.StringVarP(&f.format, "format", "f", format, "output `format`: debug, text, color, html, csv, json, png or svg")
	flags.StringVarP(&f.output, "output", "o", "", "write to `file` instead of standard output")
	flags.StringSliceVar(&f.columns, "columns", nil, "show only these `columns`, in order")
	flags.BoolVar(&f.preset, "preset", false, "show the preset VtR column order")
	flags.BoolVar(&f.versions, "versions", false, "add tool version columns to the preset order")
	flags.StringVar(&f.chartColumn, "chart-column", "", "`column` plotted by png and svg output")
	flags.StringVar(&f.pipeline, "pipeline", "", "process evaluations with the YAML pipeline in `file`")
}

// loadPipeline returns the pipeline named by --pipeline, if any.
func (f *renderFlags) loadPipeline() (pipeline.Pipeline, error) {
	if f.pipeline == "" {
		return nil, nil
	}
	return pipeline.Load(f.pipeline)
}

func (f *renderFlags) options(e *evaluation.Evaluation) visualize.Options {
	switch {
	case len(f.columns) > 0:
		return visualize.Options{Columns: f.columns}
	case f.preset:
		return visualize.Options{VersionInfo: f.versions}
	}
	return visualize.Options{Columns: e.Table().Columns()}
}

// render writes e, colored by style if it is non-nil.
func (f *renderFlags) render(cmd *cobra.Command, e, style *evaluation.Evaluation) (err error) {
	var w io.Writer = cmd.OutOrStdout()
	if f.output != "" {
		file, err := os.Create(f.output)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := file.Close(); err == nil {
				err = cerr
			}
		}()
		w = file
	}

	opts := f.options(e)
	switch f.format {
	case "debug":
		return visualize.Debug(w, e, opts)
	case "text", "color", "html":
		st := &visualize.SingleTable{Values: e, Style: style, Options: opts}
		if f.format == "html" {
			return st.WriteHTML(w)
		}
		return st.WriteText(w, f.format == "color")
	case "csv":
		return visualize.WriteCSV(w, e)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(e.Table())
	case "png", "svg":
		if f.chartColumn == "" {
			return fmt.Errorf("--format %s needs --chart-column", f.format)
		}
		return visualize.BarChart(w, e, visualize.ChartOptions{Column: f.chartColumn, Format: f.format})
	}
	return fmt.Errorf("unknown format %q", f.format)
}
