// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package evalproc implements the processors that transform
// Evaluations, such as cleaning, normalizing and aggregating tool
// results.
package evalproc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/symbiflow/ftpvl/evaluation"
)

// A Direction says which extreme of a metric is better.
type Direction int

const (
	// Maximize marks metrics where larger is better, such as
	// clock frequency.
	Maximize Direction = iota
	// Minimize marks metrics where smaller is better, such as
	// resource usage or run time.
	Minimize
)

// Sign is +1 for Maximize and -1 for Minimize.
func (d Direction) Sign() float64 {
	if d == Minimize {
		return -1
	}
	return 1
}

func (d Direction) String() string {
	switch d {
	case Maximize:
		return "maximize"
	case Minimize:
		return "minimize"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// ParseDirection parses "maximize" or "minimize", or their short forms
// "max" and "min".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "maximize", "max":
		return Maximize, nil
	case "minimize", "min":
		return Minimize, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

func (d *Direction) UnmarshalText(text []byte) error {
	dir, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = dir
	return nil
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// A Metric is a column and the direction in which it improves.
type Metric struct {
	Column    string
	Direction Direction
}

var (
	ErrNotMapped     = errors.New("value not in mapping")
	ErrMappingLength = errors.New("mapping length does not match output columns")
	ErrNoBaseline    = errors.New("no baseline row")
	ErrIndexShape    = errors.New("table has no index")
)

// A CastError reports a value that cannot be converted to a kind.
type CastError struct {
	Column string
	Value  evaluation.Value
	Kind   evaluation.Kind
}

func (e *CastError) Error() string {
	return fmt.Sprintf("column %q: cannot convert %s %q to %s", e.Column, e.Value.Kind(), e.Value, e.Kind)
}

// A MappingError reports a value ExpandColumn cannot expand.
type MappingError struct {
	Column string
	Value  evaluation.Value
	Err    error // ErrNotMapped or ErrMappingLength
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("column %q: %q: %v", e.Column, e.Value, e.Err)
}

func (e *MappingError) Unwrap() error { return e.Err }

// numbers returns the values of col as floats. Nulls are NaN.
func numbers(t *evaluation.Table, col string) ([]float64, error) {
	vs, err := t.Column(col)
	if err != nil {
		return nil, err
	}
	fs := make([]float64, len(vs))
	for i, v := range vs {
		f, ok := v.Float()
		if !ok {
			return nil, &CastError{col, v, evaluation.Float}
		}
		fs[i] = f
	}
	return fs, nil
}

func floatValues(fs []float64) []evaluation.Value {
	vs := make([]evaluation.Value, len(fs))
	for i, f := range fs {
		vs[i] = evaluation.FloatValue(f)
	}
	return vs
}

// isNumericColumn reports whether every value of vs is a number or
// null and at least one is a number.
func isNumericColumn(vs []evaluation.Value) bool {
	seen := false
	for _, v := range vs {
		switch v.Kind() {
		case evaluation.Int, evaluation.Float:
			seen = true
		case evaluation.Null:
		default:
			return false
		}
	}
	return seen
}

// numericColumns returns the names of t's numeric columns.
func numericColumns(t *evaluation.Table) []string {
	var cols []string
	for _, c := range t.Columns() {
		vs, _ := t.Column(c)
		if isNumericColumn(vs) {
			cols = append(cols, c)
		}
	}
	return cols
}
