// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package evalproc

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"
	"github.com/symbiflow/ftpvl/evaluation"
)

// present returns the non-NaN values of xs at rows.
func present(xs []float64, rows []int) []float64 {
	var out []float64
	for _, r := range rows {
		if !math.IsNaN(xs[r]) {
			out = append(out, xs[r])
		}
	}
	return out
}

// AddNormalizedColumn divides Input by its best value within each
// group of GroupBy and stores the ratio in Output. The best value is
// the maximum for Maximize and the minimum for Minimize.
//
// The result lists groups in the order they first appear.
type AddNormalizedColumn struct {
	GroupBy   string
	Input     string
	Output    string
	Direction Direction
}

func (p AddNormalizedColumn) Process(e *evaluation.Evaluation) (*evaluation.Evaluation, error) {
	t := e.Table()
	keys, err := t.Field(p.GroupBy)
	if err != nil {
		return nil, err
	}
	xs, err := numbers(t, p.Input)
	if err != nil {
		return nil, err
	}
	groups := partition(keys)
	out := make([]float64, len(xs))
	for _, g := range groups {
		lo, hi := stats.Bounds(present(xs, g))
		best := hi
		if p.Direction == Minimize {
			best = lo
		}
		for _, r := range g {
			out[r] = xs[r] / best
		}
	}
	t = t.WithColumn(p.Output, floatValues(out)).Select(concatGroups(groups))
	return e.WithTable(t), nil
}

// NormalizeAround rescales metrics within each group of GroupBy
// around a baseline row, the first row of the group whose index level
// Level equals Value.
//
// Each value becomes (x-base)/scale*sign/2 + 0.5, where scale is the
// largest distance from the baseline in the group and sign is +1 for
// Minimize and -1 for Maximize. Results lie in [0, 1], the baseline
// maps to 0.5 and better values map below it.
type NormalizeAround struct {
	Metrics []Metric
	GroupBy string
	Level   string
	Value   evaluation.Value
}

func (p NormalizeAround) Process(e *evaluation.Evaluation) (*evaluation.Evaluation, error) {
	t := e.Table()
	keys, err := t.Field(p.GroupBy)
	if err != nil {
		return nil, err
	}
	labels, err := t.Level(p.Level)
	if err != nil {
		return nil, err
	}
	groups := partition(keys)
	bases := make([]int, len(groups))
	for gi, g := range groups {
		bases[gi] = -1
		for _, r := range g {
			if labels[r].Key() == p.Value.Key() {
				bases[gi] = r
				break
			}
		}
		if bases[gi] < 0 {
			return nil, fmt.Errorf("group %v: %w with %s = %v", keys[g[0]], ErrNoBaseline, p.Level, p.Value)
		}
	}
	for _, m := range p.Metrics {
		xs, err := numbers(t, m.Column)
		if err != nil {
			return nil, err
		}
		out := make([]float64, len(xs))
		for gi, g := range groups {
			base := xs[bases[gi]]
			dists := make([]float64, len(g))
			for i, r := range g {
				dists[i] = math.Abs(xs[r] - base)
			}
			_, scale := stats.Bounds(present(dists, indices(len(g))))
			for _, r := range g {
				out[r] = scaleAround(xs[r]-base, scale, m.Direction)
			}
		}
		t = t.WithColumn(m.Column, floatValues(out))
	}
	return e.WithTable(t.Select(concatGroups(groups))), nil
}

// Normalize rescales metrics around zero over the whole table. Each
// value becomes x/scale*sign/2 + 0.5, where scale is the column's
// largest magnitude and sign is +1 for Minimize and -1 for Maximize.
type Normalize struct {
	Metrics []Metric
}

func (p Normalize) Process(e *evaluation.Evaluation) (*evaluation.Evaluation, error) {
	t := e.Table()
	for _, m := range p.Metrics {
		xs, err := numbers(t, m.Column)
		if err != nil {
			return nil, err
		}
		mags := make([]float64, len(xs))
		for i, x := range xs {
			mags[i] = math.Abs(x)
		}
		_, scale := stats.Bounds(present(mags, indices(len(mags))))
		out := make([]float64, len(xs))
		for i, x := range xs {
			out[i] = scaleAround(x, scale, m.Direction)
		}
		t = t.WithColumn(m.Column, floatValues(out))
	}
	return e.WithTable(t), nil
}

// scaleAround maps a distance d from a baseline into [0, 1].
func scaleAround(d, scale float64, dir Direction) float64 {
	scaled := d / scale * -dir.Sign()
	return scaled/2 + 0.5
}

func indices(n int) []int {
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	return rows
}
