// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package visualize

import (
	"encoding/csv"
	"io"

	"github.com/symbiflow/ftpvl/evaluation"
)

// WriteCSV writes every index level and column of e as CSV, with a
// header row. Missing values are empty fields.
func WriteCSV(w io.Writer, e *evaluation.Evaluation) error {
	t := e.Table()
	cw := csv.NewWriter(w)
	if err := cw.Write(append(t.Levels(), t.Columns()...)); err != nil {
		return err
	}
	rec := make([]string, 0, len(t.Levels())+len(t.Columns()))
	for i := 0; i < t.Len(); i++ {
		rec = rec[:0]
		if t.HasIndex() {
			for _, v := range t.Label(i) {
				rec = append(rec, csvField(v))
			}
		}
		for _, v := range t.Row(i) {
			rec = append(rec, csvField(v))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvField(v evaluation.Value) string {
	if v.IsNA() {
		return ""
	}
	return v.String()
}
