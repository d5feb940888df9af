// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package evaluation holds the results of one batch of FPGA tool
// runs as a table, and applies processing pipelines to it.
//
// An Evaluation pairs a Table with the optional id of the build
// evaluation that produced it. Evaluations are values: nothing in
// this package or in a Processor modifies an Evaluation in place.
package evaluation

import (
	"errors"
	"fmt"
)

// An Evaluation is a table of tool results plus the id of the
// evaluation batch it came from, if known.
type Evaluation struct {
	table *Table
	id    int
	hasID bool
}

// New returns an Evaluation of a copy of t with no eval id. A nil t
// is an empty table.
func New(t *Table) *Evaluation {
	if t == nil {
		t = NewTable(nil, nil)
	}
	return &Evaluation{table: t.Copy()}
}

// NewWithID returns an Evaluation of a copy of t with eval id id.
func NewWithID(t *Table, id int) *Evaluation {
	e := New(t)
	e.id, e.hasID = id, true
	return e
}

// Table returns a copy of e's table. Changes to the result never
// affect e.
func (e *Evaluation) Table() *Table {
	return e.table.Copy()
}

// EvalID returns e's eval id and whether it has one.
func (e *Evaluation) EvalID() (id int, ok bool) {
	return e.id, e.hasID
}

// Copy returns a deep copy of e.
func (e *Evaluation) Copy() *Evaluation {
	return &Evaluation{table: e.table.Copy(), id: e.id, hasID: e.hasID}
}

// WithTable returns a new Evaluation of t that keeps e's eval id.
func (e *Evaluation) WithTable(t *Table) *Evaluation {
	ne := New(t)
	ne.id, ne.hasID = e.id, e.hasID
	return ne
}

func (e *Evaluation) String() string {
	if e.hasID {
		return fmt.Sprintf("eval %d\n%s", e.id, e.table)
	}
	return e.table.String()
}

// A Processor transforms an Evaluation into a new one. It holds only
// its configuration and must not modify its input.
type Processor interface {
	Process(e *Evaluation) (*Evaluation, error)
}

// ProcessorFunc adapts an ordinary function to a Processor.
type ProcessorFunc func(e *Evaluation) (*Evaluation, error)

func (f ProcessorFunc) Process(e *Evaluation) (*Evaluation, error) { return f(e) }

// Process applies each processor of pipeline in order, feeding each
// one the output of the previous one. An empty pipeline returns a
// copy of e. The first error stops the pipeline.
func (e *Evaluation) Process(pipeline ...Processor) (*Evaluation, error) {
	cur := e.Copy()
	for i, p := range pipeline {
		next, err := p.Process(cur)
		if err != nil {
			return nil, fmt.Errorf("pipeline step %d (%T): %w", i, p, err)
		}
		cur = next
	}
	return cur, nil
}

// ErrNilEvaluation is returned when an operation needs an Evaluation
// operand and gets nil.
var ErrNilEvaluation = errors.New("nil evaluation")

// Concat returns the rows of a followed by the rows of b. The columns
// are the union of both tables' columns, missing cells are null and
// the index is positional. The result has no eval id.
//
// A nil a is the zero of a sum: Concat(nil, b) is a copy of b.
func Concat(a, b *Evaluation) (*Evaluation, error) {
	if b == nil {
		return nil, ErrNilEvaluation
	}
	if a == nil {
		return b.Copy(), nil
	}
	return New(ConcatTables(a.table, b.table).DropIndex()), nil
}

// Sum concatenates evals left to right, starting from the zero
// Evaluation. The sum of nothing is an empty Evaluation.
func Sum(evals ...*Evaluation) (*Evaluation, error) {
	var acc *Evaluation
	for _, e := range evals {
		var err error
		if acc, err = Concat(acc, e); err != nil {
			return nil, err
		}
	}
	if acc == nil {
		return New(nil), nil
	}
	return acc, nil
}
