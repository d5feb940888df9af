// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package style

import (
	"strconv"
	"strings"

	"github.com/symbiflow/ftpvl/evaluation"
)

const backgroundPrefix = "background-color: #"

// Styling returns the CSS declaration coloring the background of a
// cell holding v, or "" if v is not a float in [0, 1]. Ints are left
// uncolored since they are counts, not normalized values.
func Styling(v evaluation.Value, cmap Colormap) string {
	return StylingRange(v, cmap, 0, 1)
}

// StylingRange is like Styling, but first maps [lo, hi] onto [0, 1].
func StylingRange(v evaluation.Value, cmap Colormap, lo, hi float64) string {
	c, ok := CellColor(v, cmap, lo, hi)
	if !ok {
		return ""
	}
	return "background-color: " + c.Hex()
}

// ParseStyling returns the background color of a declaration
// produced by Styling. ok is false for "" and anything else.
func ParseStyling(css string) (c RGB, ok bool) {
	hex, found := strings.CutPrefix(css, backgroundPrefix)
	if !found || len(hex) != 6 {
		return RGB{}, false
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGB{}, false
	}
	return Hex8(uint8(n>>16), uint8(n>>8), uint8(n)), true
}

// CellColor returns the color of a cell holding v, if v is a float
// in [lo, hi].
func CellColor(v evaluation.Value, cmap Colormap, lo, hi float64) (RGB, bool) {
	if v.Kind() != evaluation.Float || v.IsNA() {
		return RGB{}, false
	}
	f, _ := v.Float()
	if f < lo || f > hi {
		return RGB{}, false
	}
	return cmap.At((f - lo) / (hi - lo)), true
}

// ColorMapStyle replaces every cell with its Styling under Colormap.
// The result keeps the index, so it lines up with its input, and has
// no eval id.
type ColorMapStyle struct {
	Colormap Colormap
}

func (p ColorMapStyle) Process(e *evaluation.Evaluation) (*evaluation.Evaluation, error) {
	cmap := p.Colormap
	if cmap == nil {
		cmap = DefaultDiverging
	}
	t := e.Table()
	rows := t.Rows()
	for _, row := range rows {
		for j, v := range row {
			row[j] = evaluation.StringValue(Styling(v, cmap))
		}
	}
	return evaluation.New(evaluation.NewIndexed(t.Levels(), t.Index(), t.Columns(), rows)), nil
}
