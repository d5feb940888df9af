// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package visualize

import (
	"fmt"
	"io"

	"github.com/aclements/go-gg/table"
	"github.com/symbiflow/ftpvl/evaluation"
)

// Debug prints e as a plain text table: index levels first, then the
// columns chosen by opts. Columns that are entirely numbers are right
// aligned; missing values print as NA.
func Debug(w io.Writer, e *evaluation.Evaluation, opts Options) error {
	t, err := selectColumns(e.Table(), opts.columns(DefaultColumns))
	if err != nil {
		return err
	}
	b := table.NewBuilder(nil)
	var formats []string
	for _, name := range t.Levels() {
		vals, _ := t.Level(name)
		data, format := ggColumn(vals)
		b.Add(name, data)
		formats = append(formats, format)
	}
	for _, name := range t.Columns() {
		vals, _ := t.Column(name)
		data, format := ggColumn(vals)
		b.Add(name, data)
		formats = append(formats, format)
	}
	return table.Fprint(w, b.Done(), formats...)
}

// ggColumn converts vals to a go-gg column and the format that prints
// it. Columns of present numbers keep a numeric type so that Fprint
// right aligns them.
func ggColumn(vals []evaluation.Value) (table.Slice, string) {
	ints, floats := true, true
	for _, v := range vals {
		if v.IsNA() || !v.IsNumeric() {
			ints, floats = false, false
			break
		}
		if v.Kind() != evaluation.Int {
			ints = false
		}
	}
	switch {
	case len(vals) == 0:
	case ints:
		out := make([]int64, len(vals))
		for i, v := range vals {
			out[i], _ = v.Int()
		}
		return out, "%d"
	case floats:
		out := make([]float64, len(vals))
		for i, v := range vals {
			out[i], _ = v.Float()
		}
		return out, fmt.Sprintf("%%.%df", Precision)
	}
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = FormatValue(v)
	}
	return out, "%s"
}
