// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package evalproc

import (
	"math"

	"github.com/aclements/go-moremath/stats"
	"github.com/symbiflow/ftpvl/evaluation"
)

// An AggFunc reduces a column to a single value.
type AggFunc func(vs []evaluation.Value) evaluation.Value

// Aggregate reduces every numeric column without missing values to
// one value using Func. The result has a single row and a positional
// index. Other columns are dropped.
type Aggregate struct {
	Func AggFunc
}

func (p Aggregate) Process(e *evaluation.Evaluation) (*evaluation.Evaluation, error) {
	t := e.Table()
	var cols []string
	var row []evaluation.Value
	for _, c := range numericColumns(t) {
		vs, _ := t.Column(c)
		if hasNA(vs) {
			continue
		}
		cols = append(cols, c)
		row = append(row, p.Func(vs))
	}
	return e.WithTable(evaluation.NewTable(cols, [][]evaluation.Value{row})), nil
}

func hasNA(vs []evaluation.Value) bool {
	for _, v := range vs {
		if v.IsNA() {
			return true
		}
	}
	return false
}

// GeomeanAggregate reduces every numeric column to its geometric mean.
type GeomeanAggregate struct{}

func (GeomeanAggregate) Process(e *evaluation.Evaluation) (*evaluation.Evaluation, error) {
	return Aggregate{Geomean}.Process(e)
}

// presentFloats returns the non-missing numbers in vs.
func presentFloats(vs []evaluation.Value) []float64 {
	var xs []float64
	for _, v := range vs {
		if v.IsNA() {
			continue
		}
		if f, ok := v.Float(); ok {
			xs = append(xs, f)
		}
	}
	return xs
}

// Geomean is the geometric mean of the numbers in vs, ignoring
// missing values. It is NaN if nothing is left or any value is not
// positive.
func Geomean(vs []evaluation.Value) evaluation.Value {
	xs := presentFloats(vs)
	if len(xs) == 0 {
		return evaluation.FloatValue(math.NaN())
	}
	return evaluation.FloatValue(stats.GeoMean(xs))
}

// Mean is the arithmetic mean of the numbers in vs, ignoring missing
// values.
func Mean(vs []evaluation.Value) evaluation.Value {
	xs := presentFloats(vs)
	if len(xs) == 0 {
		return evaluation.FloatValue(math.NaN())
	}
	return evaluation.FloatValue(stats.Mean(xs))
}

// Sum adds the numbers in vs, ignoring missing values. The sum of
// integers is an integer.
func Sum(vs []evaluation.Value) evaluation.Value {
	var i int64
	var f float64
	isFloat := false
	for _, v := range vs {
		switch v.Kind() {
		case evaluation.Int:
			n, _ := v.Int()
			i += n
		case evaluation.Float:
			if x, _ := v.Float(); !math.IsNaN(x) {
				f += x
			}
			isFloat = true
		}
	}
	if isFloat {
		return evaluation.FloatValue(f + float64(i))
	}
	return evaluation.IntValue(i)
}
