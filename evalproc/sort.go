// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package evalproc

import (
	"sort"

	"github.com/symbiflow/ftpvl/evaluation"
)

// sortedRows returns t's row numbers stably sorted by the given
// fields, which may be columns or index levels. Missing values sort
// last in both directions.
func sortedRows(t *evaluation.Table, fields []string, descending bool) ([]int, error) {
	keys := make([][]evaluation.Value, len(fields))
	for i, f := range fields {
		vs, err := t.Field(f)
		if err != nil {
			return nil, err
		}
		keys[i] = vs
	}
	rows := make([]int, t.Len())
	for i := range rows {
		rows[i] = i
	}
	sort.SliceStable(rows, func(i, j int) bool {
		for _, k := range keys {
			a, b := k[rows[i]], k[rows[j]]
			if a.IsNA() || b.IsNA() {
				if a.IsNA() != b.IsNA() {
					return b.IsNA()
				}
				continue
			}
			c := evaluation.Compare(a, b)
			if descending {
				c = -c
			}
			if c != 0 {
				return c < 0
			}
		}
		return false
	})
	return rows, nil
}

// CleanDuplicates removes rows that repeat the values of Columns,
// keeping the first. If Sort is set, the rows are first sorted by
// those fields, ascending unless Reverse is set, so the sort decides
// which duplicate survives.
type CleanDuplicates struct {
	Columns []string
	Sort    []string
	Reverse bool
}

func (p CleanDuplicates) Process(e *evaluation.Evaluation) (*evaluation.Evaluation, error) {
	t := e.Table()
	if len(p.Sort) > 0 {
		rows, err := sortedRows(t, p.Sort, p.Reverse)
		if err != nil {
			return nil, err
		}
		t = t.Select(rows)
	}
	keys := make([][]evaluation.Value, len(p.Columns))
	for i, c := range p.Columns {
		vs, err := t.Field(c)
		if err != nil {
			return nil, err
		}
		keys[i] = vs
	}
	seen := make(map[string]bool)
	var keep []int
	tuple := make([]evaluation.Value, len(keys))
	for row := 0; row < t.Len(); row++ {
		for i, k := range keys {
			tuple[i] = k[row]
		}
		key := evaluation.TupleKey(tuple)
		if !seen[key] {
			seen[key] = true
			keep = append(keep, row)
		}
	}
	return e.WithTable(t.Select(keep)), nil
}
