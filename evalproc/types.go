// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package evalproc

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/symbiflow/ftpvl/evaluation"
)

// StandardizeTypes casts columns to fixed kinds. Fetched values get
// whatever kind their JSON spelling implies; this makes a metric's
// kind the same in every row and every Evaluation.
//
// Casting to Int goes through Float, so "6.0" becomes 6. Null values
// become NaN when cast to Float and stay null when cast to String.
type StandardizeTypes struct {
	Types map[string]evaluation.Kind
}

func (p StandardizeTypes) Process(e *evaluation.Evaluation) (*evaluation.Evaluation, error) {
	t := e.Table()
	cols := make([]string, 0, len(p.Types))
	for c := range p.Types {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	for _, col := range cols {
		vs, err := t.Column(col)
		if err != nil {
			return nil, err
		}
		kind := p.Types[col]
		for i, v := range vs {
			var ok bool
			if vs[i], ok = cast(v, kind); !ok {
				return nil, &CastError{col, v, kind}
			}
		}
		t = t.WithColumn(col, vs)
	}
	return e.WithTable(t), nil
}

// cast converts v to kind.
func cast(v evaluation.Value, kind evaluation.Kind) (evaluation.Value, bool) {
	fail := func() (evaluation.Value, bool) {
		return evaluation.NullValue, false
	}
	switch kind {
	case evaluation.Float:
		switch v.Kind() {
		case evaluation.String:
			s, _ := v.Str()
			f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return fail()
			}
			return evaluation.FloatValue(f), true
		case evaluation.Bool:
			if b, _ := v.Bool(); b {
				return evaluation.FloatValue(1), true
			}
			return evaluation.FloatValue(0), true
		}
		f, _ := v.Float()
		return evaluation.FloatValue(f), true

	case evaluation.Int:
		fv, ok := cast(v, evaluation.Float)
		if !ok {
			return fail()
		}
		f, _ := fv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fail()
		}
		return evaluation.IntValue(int64(f)), true

	case evaluation.String:
		switch v.Kind() {
		case evaluation.Null:
			return v, true
		case evaluation.Float:
			f, _ := v.Float()
			return evaluation.StringValue(formatFloat(f)), true
		case evaluation.Bool:
			if b, _ := v.Bool(); b {
				return evaluation.StringValue("True"), true
			}
			return evaluation.StringValue("False"), true
		}
		return evaluation.StringValue(v.String()), true

	case evaluation.Bool:
		switch v.Kind() {
		case evaluation.Null:
			return evaluation.BoolValue(false), true
		case evaluation.String:
			s, _ := v.Str()
			return evaluation.BoolValue(s != ""), true
		case evaluation.Bool:
			return v, true
		}
		f, _ := v.Float()
		return evaluation.BoolValue(f != 0), true
	}
	return fail()
}

// formatFloat formats f the way it is usually written in build
// reports: integral values keep a ".0", and very large or small
// values use an exponent.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	if a := math.Abs(f); a != 0 && (a < 1e-4 || a >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// MinusOne subtracts one from every number in the table. It is mostly
// useful for checking that pipelines run.
type MinusOne struct{}

func (MinusOne) Process(e *evaluation.Evaluation) (*evaluation.Evaluation, error) {
	t := e.Table()
	rows := t.Rows()
	for _, row := range rows {
		for j, v := range row {
			switch v.Kind() {
			case evaluation.Int:
				i, _ := v.Int()
				row[j] = evaluation.IntValue(i - 1)
			case evaluation.Float:
				f, _ := v.Float()
				row[j] = evaluation.FloatValue(f - 1)
			}
		}
	}
	return e.WithTable(evaluation.NewIndexed(t.Levels(), t.Index(), t.Columns(), rows)), nil
}
