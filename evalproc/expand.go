// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package evalproc

import "github.com/symbiflow/ftpvl/evaluation"

// ExpandColumn derives several columns from one. For every row, the
// value of Input is looked up in Mapping, and the mapped values are
// written to the Outputs columns in order.
//
// Lookups compare value keys, so the string "1" does not match the
// number 1. If two expansions share a key, the first one is used.
//
// For example, a "toolchain" column can be split into synthesis and
// place-and-route tool columns.
type ExpandColumn struct {
	Input   string
	Outputs []string
	Mapping []Expansion
}

// An Expansion maps one input value to the values of the output
// columns.
type Expansion struct {
	From evaluation.Value
	To   []evaluation.Value
}

func (p ExpandColumn) Process(e *evaluation.Evaluation) (*evaluation.Evaluation, error) {
	t := e.Table()
	in, err := t.Field(p.Input)
	if err != nil {
		return nil, err
	}
	mapping := make(map[evaluation.Key][]evaluation.Value, len(p.Mapping))
	for _, x := range p.Mapping {
		if _, ok := mapping[x.From.Key()]; !ok {
			mapping[x.From.Key()] = x.To
		}
	}
	outs := make([][]evaluation.Value, len(p.Outputs))
	for i := range outs {
		outs[i] = make([]evaluation.Value, len(in))
	}
	for r, v := range in {
		mapped, ok := mapping[v.Key()]
		if !ok {
			return nil, &MappingError{p.Input, v, ErrNotMapped}
		}
		if len(mapped) != len(p.Outputs) {
			return nil, &MappingError{p.Input, v, ErrMappingLength}
		}
		for i, m := range mapped {
			outs[i][r] = m
		}
	}
	for i, name := range p.Outputs {
		t = t.WithColumn(name, outs[i])
	}
	return e.WithTable(t), nil
}
