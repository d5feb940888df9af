// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package visualize renders evaluations as text, HTML, CSV and
// charts.
package visualize

import (
	"math"
	"strconv"
	"strings"

	"github.com/symbiflow/ftpvl/evaluation"
)

// DefaultColumns is the column order used by Debug when none is given.
var DefaultColumns = []string{
	"device",
	"bram",
	"carry",
	"dff",
	"iob",
	"lut",
	"pll",
	"synthesis",
	"pack",
	"place",
	"route",
	"fasm",
	"bitstream",
	"total",
	"freq",
	"normalized_max_freq",
}

// StyledColumns is the column order used by SingleTable when none is
// given. The device is expected to be part of the index.
var StyledColumns = DefaultColumns[1:]

// VersionColumns are appended to the default column orders when
// version information is requested.
var VersionColumns = []string{
	"versions.vivado",
	"versions.vpr",
	"versions.yosys",
	"versions.nextpnr-xilinx",
	"versions.nextpnr-ice40",
}

// Options select the columns to show.
type Options struct {
	// Columns lists the columns to show, in order. If nil, a preset
	// order is used.
	Columns []string

	// VersionInfo adds VersionColumns to the preset order. It has no
	// effect when Columns is set.
	VersionInfo bool
}

func (o Options) columns(preset []string) []string {
	if o.Columns != nil {
		return o.Columns
	}
	cols := append([]string(nil), preset...)
	if o.VersionInfo {
		cols = append(cols, VersionColumns...)
	}
	return cols
}

// selectColumns narrows t to names. Names of index levels are skipped
// since levels are always shown.
func selectColumns(t *evaluation.Table, names []string) (*evaluation.Table, error) {
	var keep []string
	for _, name := range names {
		if t.ColumnIndex(name) < 0 && t.LevelIndex(name) >= 0 {
			continue
		}
		keep = append(keep, name)
	}
	return t.SelectColumns(keep...)
}

// Precision is the number of decimal places shown for floats.
const Precision = 2

// NA is shown for missing values.
const NA = "-"

// FormatValue formats a cell for display.
func FormatValue(v evaluation.Value) string {
	if v.IsNA() {
		return NA
	}
	if v.Kind() == evaluation.Float {
		f, _ := v.Float()
		if math.IsInf(f, 0) {
			return v.String()
		}
		return strconv.FormatFloat(f, 'f', Precision, 64)
	}
	return v.String()
}

// rowLabel joins the index label of row i, or gives its position.
func rowLabel(t *evaluation.Table, i int) string {
	var parts []string
	for _, v := range t.Label(i) {
		parts = append(parts, v.String())
	}
	return strings.Join(parts, "/")
}
