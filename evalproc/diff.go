// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package evalproc

import (
	"math"

	"github.com/symbiflow/ftpvl/evaluation"
)

// RelativeDiff computes (B - A) / A for every numeric column, where B
// is the processed Evaluation and A is the reference. Rows are
// matched by position. Non-numeric columns are dropped.
//
// The result has B's numeric columns followed by any that only A has,
// and as many rows as the longer table. Cells missing on either side
// are NaN. It has a positional index and no eval id. A nil A is
// evaluation.ErrNilEvaluation.
type RelativeDiff struct {
	A *evaluation.Evaluation
}

func (p RelativeDiff) Process(b *evaluation.Evaluation) (*evaluation.Evaluation, error) {
	if p.A == nil {
		return nil, evaluation.ErrNilEvaluation
	}
	at, bt := p.A.Table(), b.Table()
	cols := numericColumns(bt)
	inB := make(map[string]bool)
	for _, c := range cols {
		inB[c] = true
	}
	aCols := numericColumns(at)
	inA := make(map[string]bool)
	for _, c := range aCols {
		inA[c] = true
		if !inB[c] {
			cols = append(cols, c)
		}
	}
	n := max(at.Len(), bt.Len())
	get := func(t *evaluation.Table, ok bool, col string) []float64 {
		xs := make([]float64, n)
		for i := range xs {
			xs[i] = math.NaN()
		}
		if ok {
			vs, _ := numbers(t, col)
			copy(xs, vs)
		}
		return xs
	}
	rows := make([][]evaluation.Value, n)
	for i := range rows {
		rows[i] = make([]evaluation.Value, len(cols))
	}
	for j, c := range cols {
		as, bs := get(at, inA[c], c), get(bt, inB[c], c)
		for i := range rows {
			rows[i][j] = evaluation.FloatValue((bs[i] - as[i]) / as[i])
		}
	}
	return evaluation.New(evaluation.NewTable(cols, rows)), nil
}
