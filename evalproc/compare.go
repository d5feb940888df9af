// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package evalproc

import (
	"math"

	"github.com/symbiflow/ftpvl/evaluation"
)

// DefaultSuffix names the ratio columns added by CompareToFirst.
const DefaultSuffix = ".relative"

// CompareToFirst compares every row to the first one. For each
// metric it adds a column named Column+Suffix right after the metric,
// holding (x/first)^sign, where sign is +1 for Maximize and -1 for
// Minimize, so improvements are always above 1. Columns that are not
// metrics are dropped. The index is kept.
type CompareToFirst struct {
	Metrics []Metric
	// Suffix defaults to DefaultSuffix.
	Suffix string
}

func (p CompareToFirst) Process(e *evaluation.Evaluation) (*evaluation.Evaluation, error) {
	t := e.Table()
	suffix := p.Suffix
	if suffix == "" {
		suffix = DefaultSuffix
	}
	var cols []string
	var data [][]evaluation.Value
	for _, m := range p.Metrics {
		vs, err := t.Column(m.Column)
		if err != nil {
			return nil, err
		}
		xs, err := numbers(t, m.Column)
		if err != nil {
			return nil, err
		}
		ratios := make([]float64, len(xs))
		for i, x := range xs {
			ratios[i] = math.Pow(x/xs[0], m.Direction.Sign())
		}
		cols = append(cols, m.Column, m.Column+suffix)
		data = append(data, vs, floatValues(ratios))
	}
	rows := make([][]evaluation.Value, t.Len())
	for i := range rows {
		rows[i] = make([]evaluation.Value, len(cols))
		for j := range cols {
			rows[i][j] = data[j][i]
		}
	}
	return e.WithTable(evaluation.NewIndexed(t.Levels(), t.Index(), cols, rows)), nil
}
