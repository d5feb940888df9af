// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package evalproc

import (
	"github.com/symbiflow/ftpvl/evaluation"
)

// Reindex makes the named columns the table's index, in order,
// replacing any previous index.
type Reindex struct {
	Columns []string
}

func (p Reindex) Process(e *evaluation.Evaluation) (*evaluation.Evaluation, error) {
	t, err := e.Table().SetIndex(p.Columns...)
	if err != nil {
		return nil, err
	}
	return e.WithTable(t), nil
}

// SortIndex stably sorts rows by the named index levels, ascending.
// With no levels it sorts by every level.
type SortIndex struct {
	Levels []string
}

func (p SortIndex) Process(e *evaluation.Evaluation) (*evaluation.Evaluation, error) {
	t := e.Table()
	levels := p.Levels
	if len(levels) == 0 {
		levels = t.Levels()
	}
	for _, l := range levels {
		if t.LevelIndex(l) < 0 {
			return nil, &evaluation.LevelError{Level: l}
		}
	}
	rows, err := sortedRows(t, levels, false)
	if err != nil {
		return nil, err
	}
	return e.WithTable(t.Select(rows)), nil
}

// FilterByIndex keeps the rows whose index level Level equals Value.
//
// On a composite index the level is dropped afterwards, leaving the
// table indexed by its other levels. On a single-level index the
// level is kept. Tables with a positional index are rejected with
// ErrIndexShape.
type FilterByIndex struct {
	Level string
	Value evaluation.Value
}

func (p FilterByIndex) Process(e *evaluation.Evaluation) (*evaluation.Evaluation, error) {
	t := e.Table()
	if !t.HasIndex() {
		return nil, ErrIndexShape
	}
	vs, err := t.Level(p.Level)
	if err != nil {
		return nil, err
	}
	want := p.Value.Key()
	var keep []int
	for i, v := range vs {
		if v.Key() == want {
			keep = append(keep, i)
		}
	}
	t = t.Select(keep)
	if len(t.Levels()) > 1 {
		if t, err = t.DropLevel(p.Level); err != nil {
			return nil, err
		}
	}
	return e.WithTable(t), nil
}
