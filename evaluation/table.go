// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package evaluation

import (
	"fmt"
	"strings"

	"github.com/symbiflow/ftpvl/internal/texttab"
)

// Table is an immutable table of Values.
//
// A Table has an ordered set of named columns and an index. The
// index is either positional (no levels) or made of one or more
// named levels that label each row. Every operation on a Table
// returns a new Table.
type Table struct {
	cols   []string
	levels []string
	index  [][]Value // [row][level]
	rows   [][]Value // [row][col]
}

// NewTable returns a table with a positional index. Each row must have
// len(cols) values. The slices are copied.
func NewTable(cols []string, rows [][]Value) *Table {
	return NewIndexed(nil, nil, cols, rows)
}

// NewIndexed returns a table whose rows are labeled by index values
// for the named levels. If levels is empty, index is ignored and the
// table has a positional index.
func NewIndexed(levels []string, index [][]Value, cols []string, rows [][]Value) *Table {
	t := &Table{cols: copyStrings(cols), levels: copyStrings(levels)}
	for i, row := range rows {
		if len(row) != len(cols) {
			panic(fmt.Sprintf("row %d has %d values, want %d", i, len(row), len(cols)))
		}
	}
	t.rows = copyGrid(rows)
	if len(levels) > 0 {
		if len(index) != len(rows) {
			panic(fmt.Sprintf("index has %d labels for %d rows", len(index), len(rows)))
		}
		for i, label := range index {
			if len(label) != len(levels) {
				panic(fmt.Sprintf("index label %d has %d values, want %d", i, len(label), len(levels)))
			}
		}
		t.index = copyGrid(index)
	}
	return t
}

// FromRows returns a table with a positional index from rows of Go
// values, converting each with Of.
func FromRows(cols []string, rows ...[]any) *Table {
	vrows := make([][]Value, len(rows))
	for i, row := range rows {
		vrows[i] = Values(row...)
	}
	return NewTable(cols, vrows)
}

func copyStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}

func copyGrid(g [][]Value) [][]Value {
	if g == nil {
		return nil
	}
	out := make([][]Value, len(g))
	for i, row := range g {
		out[i] = append([]Value(nil), row...)
	}
	return out
}

// Len returns the number of rows in t.
func (t *Table) Len() int { return len(t.rows) }

// Columns returns the names of t's regular columns in order.
func (t *Table) Columns() []string { return copyStrings(t.cols) }

// Levels returns the names of t's index levels. It is empty for a
// positional index.
func (t *Table) Levels() []string { return copyStrings(t.levels) }

// HasIndex reports whether t has named index levels.
func (t *Table) HasIndex() bool { return len(t.levels) > 0 }

// Row returns a copy of the values of row i.
func (t *Table) Row(i int) []Value { return append([]Value(nil), t.rows[i]...) }

// Label returns the index label of row i. For a positional index,
// this is the row number.
func (t *Table) Label(i int) []Value {
	if len(t.levels) == 0 {
		return []Value{IntValue(int64(i))}
	}
	return append([]Value(nil), t.index[i]...)
}

// Rows returns a copy of every row.
func (t *Table) Rows() [][]Value { return copyGrid(t.rows) }

// Index returns a copy of every index label. It is nil for a
// positional index.
func (t *Table) Index() [][]Value { return copyGrid(t.index) }

// Cell returns the value at row i of column col.
func (t *Table) Cell(i, col int) Value { return t.rows[i][col] }

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.cols {
		if c == name {
			return i
		}
	}
	return -1
}

// LevelIndex returns the position of the named index level, or -1.
func (t *Table) LevelIndex(name string) int {
	for i, l := range t.levels {
		if l == name {
			return i
		}
	}
	return -1
}

// Column returns the values of the named column.
func (t *Table) Column(name string) ([]Value, error) {
	c := t.ColumnIndex(name)
	if c < 0 {
		return nil, &ColumnError{name}
	}
	vs := make([]Value, len(t.rows))
	for i, row := range t.rows {
		vs[i] = row[c]
	}
	return vs, nil
}

// Level returns the values of the named index level.
func (t *Table) Level(name string) ([]Value, error) {
	l := t.LevelIndex(name)
	if l < 0 {
		return nil, &LevelError{name}
	}
	vs := make([]Value, len(t.index))
	for i, label := range t.index {
		vs[i] = label[l]
	}
	return vs, nil
}

// Field returns the values of the named column or, if there is no
// such column, the named index level.
func (t *Table) Field(name string) ([]Value, error) {
	if t.ColumnIndex(name) >= 0 {
		return t.Column(name)
	}
	if t.LevelIndex(name) >= 0 {
		return t.Level(name)
	}
	return nil, &ColumnError{name}
}

// Copy returns a deep copy of t.
func (t *Table) Copy() *Table {
	return &Table{
		cols:   copyStrings(t.cols),
		levels: copyStrings(t.levels),
		index:  copyGrid(t.index),
		rows:   copyGrid(t.rows),
	}
}

// Select returns a table of the given rows of t, in the given order.
// Index labels travel with their rows.
func (t *Table) Select(rows []int) *Table {
	nt := &Table{cols: copyStrings(t.cols), levels: copyStrings(t.levels)}
	nt.rows = make([][]Value, len(rows))
	if len(t.levels) > 0 {
		nt.index = make([][]Value, len(rows))
	}
	for i, r := range rows {
		nt.rows[i] = append([]Value(nil), t.rows[r]...)
		if len(t.levels) > 0 {
			nt.index[i] = append([]Value(nil), t.index[r]...)
		}
	}
	return nt
}

// WithColumn returns a copy of t where the named column holds vals.
// An existing column is replaced in place; a new one is appended.
func (t *Table) WithColumn(name string, vals []Value) *Table {
	if len(vals) != len(t.rows) {
		panic(fmt.Sprintf("cannot add column %q with %d values to table with %d rows", name, len(vals), len(t.rows)))
	}
	nt := t.Copy()
	c := nt.ColumnIndex(name)
	if c < 0 {
		nt.cols = append(nt.cols, name)
	}
	for i := range nt.rows {
		if c < 0 {
			nt.rows[i] = append(nt.rows[i], vals[i])
		} else {
			nt.rows[i][c] = vals[i]
		}
	}
	return nt
}

// SelectColumns returns a table with only the named columns, in the
// given order.
func (t *Table) SelectColumns(names ...string) (*Table, error) {
	pos := make([]int, len(names))
	for i, name := range names {
		if pos[i] = t.ColumnIndex(name); pos[i] < 0 {
			return nil, &ColumnError{name}
		}
	}
	nt := &Table{cols: copyStrings(names), levels: copyStrings(t.levels), index: copyGrid(t.index)}
	nt.rows = make([][]Value, len(t.rows))
	for i, row := range t.rows {
		nrow := make([]Value, len(pos))
		for j, p := range pos {
			nrow[j] = row[p]
		}
		nt.rows[i] = nrow
	}
	return nt, nil
}

// DropColumns returns t without the named columns. Names t does not
// have are ignored.
func (t *Table) DropColumns(names ...string) *Table {
	drop := make(map[string]bool, len(names))
	for _, name := range names {
		drop[name] = true
	}
	var keep []string
	for _, c := range t.cols {
		if !drop[c] {
			keep = append(keep, c)
		}
	}
	nt, _ := t.SelectColumns(keep...)
	if nt.cols == nil {
		nt.cols = []string{}
	}
	return nt
}

// SetIndex returns a table indexed by the named columns, which are
// removed from the regular columns. Any previous index is discarded.
func (t *Table) SetIndex(names ...string) (*Table, error) {
	if len(names) == 0 {
		return t.DropIndex(), nil
	}
	label, err := t.SelectColumns(names...)
	if err != nil {
		return nil, err
	}
	nt := t.DropColumns(names...)
	nt.levels = copyStrings(names)
	nt.index = label.rows
	return nt, nil
}

// DropIndex returns t with a positional index. The labels of a named
// index are discarded.
func (t *Table) DropIndex() *Table {
	nt := t.Copy()
	nt.levels, nt.index = nil, nil
	return nt
}

// DropLevel returns t without the named index level. Dropping the
// last level leaves a positional index.
func (t *Table) DropLevel(name string) (*Table, error) {
	l := t.LevelIndex(name)
	if l < 0 {
		return nil, &LevelError{name}
	}
	if len(t.levels) == 1 {
		return t.DropIndex(), nil
	}
	nt := t.Copy()
	nt.levels = append(nt.levels[:l], nt.levels[l+1:]...)
	for i, label := range nt.index {
		nt.index[i] = append(label[:l], label[l+1:]...)
	}
	return nt, nil
}

// ConcatTables returns the rows of ts one after another. The columns
// are the union of the tables' columns in first-seen order, and cells
// a table lacks are null. Index labels are kept if every table has
// the same levels; otherwise the result has a positional index.
func ConcatTables(ts ...*Table) *Table {
	nt := &Table{cols: []string{}}
	colPos := make(map[string]int)
	sameLevels := len(ts) > 0
	for _, t := range ts {
		for _, c := range t.cols {
			if _, ok := colPos[c]; !ok {
				colPos[c] = len(nt.cols)
				nt.cols = append(nt.cols, c)
			}
		}
		if !equalStrings(t.levels, ts[0].levels) {
			sameLevels = false
		}
	}
	if sameLevels && len(ts[0].levels) > 0 {
		nt.levels = copyStrings(ts[0].levels)
		nt.index = [][]Value{}
	}
	nt.rows = [][]Value{}
	for _, t := range ts {
		for i, row := range t.rows {
			nrow := make([]Value, len(nt.cols))
			for j, c := range t.cols {
				nrow[colPos[c]] = row[j]
			}
			nt.rows = append(nt.rows, nrow)
			if nt.levels != nil {
				nt.index = append(nt.index, append([]Value(nil), t.index[i]...))
			}
		}
	}
	return nt
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Equal reports whether t and u have the same columns, index and
// cells.
func (t *Table) Equal(u *Table) bool {
	if !equalStrings(t.cols, u.cols) || !equalStrings(t.levels, u.levels) || len(t.rows) != len(u.rows) {
		return false
	}
	eq := func(a, b [][]Value) bool {
		for i := range a {
			for j := range a[i] {
				if !a[i][j].Equal(b[i][j]) {
					return false
				}
			}
		}
		return true
	}
	return eq(t.rows, u.rows) && eq(t.index, u.index)
}

// String formats t as a text table, index levels first.
func (t *Table) String() string {
	var tab texttab.Table
	tab.Row()
	for _, l := range t.levels {
		tab.Cell(l)
	}
	for _, c := range t.cols {
		tab.Cell(c)
	}
	for i, row := range t.rows {
		tab.Row()
		if len(t.levels) > 0 {
			for _, v := range t.index[i] {
				tab.Cell(v.String())
			}
		}
		for _, v := range row {
			if v.IsNumeric() {
				tab.Cell(v.String(), texttab.Right)
			} else {
				tab.Cell(v.String())
			}
		}
	}
	var sb strings.Builder
	tab.Format(&sb)
	return sb.String()
}

// A Cell is a named value in a Builder row.
type Cell struct {
	Name  string
	Value Value
}

// Builder assembles a table from rows that need not share a column
// set. Columns appear in first-seen order and missing cells are null.
type Builder struct {
	cols   []string
	colPos map[string]int
	rows   []map[int]Value
}

// Add appends a row. A name repeated within one row keeps the last
// value.
func (b *Builder) Add(cells ...Cell) *Builder {
	if b.colPos == nil {
		b.colPos = make(map[string]int)
	}
	row := make(map[int]Value, len(cells))
	for _, c := range cells {
		p, ok := b.colPos[c.Name]
		if !ok {
			p = len(b.cols)
			b.colPos[c.Name] = p
			b.cols = append(b.cols, c.Name)
		}
		row[p] = c.Value
	}
	b.rows = append(b.rows, row)
	return b
}

// Done returns the constructed table and resets b.
func (b *Builder) Done() *Table {
	t := &Table{cols: b.cols, rows: make([][]Value, len(b.rows))}
	if t.cols == nil {
		t.cols = []string{}
	}
	for i, row := range b.rows {
		vals := make([]Value, len(b.cols))
		for p, v := range row {
			vals[p] = v
		}
		t.rows[i] = vals
	}
	*b = Builder{}
	return t
}
