// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab lays out fixed-width text tables whose cells may
// carry ANSI colors.
package texttab

import (
	"io"
	"strings"
	"unicode/utf8"
)

// A Table accumulates rows of cells and writes them column-aligned.
//
// Row and Cell return the Table so rows can be built in one chain.
type Table struct {
	// Gap separates adjacent columns. The empty string means one space.
	Gap string

	rows [][]cell
}

type cell struct {
	text  string
	right bool
	// sgr is an SGR parameter string such as "48;2;255;0;0".
	// Escapes do not count toward the column width.
	sgr string
}

// A CellOption changes how a single cell is drawn.
type CellOption func(c *cell)

// Right aligns a cell against the right edge of its column.
var Right CellOption = func(c *cell) { c.right = true }

// Color draws the cell with the given ANSI SGR parameters.
func Color(sgr string) CellOption {
	return func(c *cell) { c.sgr = sgr }
}

// Row starts a new row.
func (t *Table) Row() *Table {
	t.rows = append(t.rows, nil)
	return t
}

// Cell appends a cell to the current row.
func (t *Table) Cell(text string, opts ...CellOption) *Table {
	if len(t.rows) == 0 {
		t.Row()
	}
	c := cell{text: text}
	for _, o := range opts {
		o(&c)
	}
	last := len(t.rows) - 1
	t.rows[last] = append(t.rows[last], c)
	return t
}

// Format writes the table to w. Trailing blanks are trimmed from
// every line.
func (t *Table) Format(w io.Writer) error {
	gap := t.Gap
	if gap == "" {
		gap = " "
	}
	var widths []int
	for _, row := range t.rows {
		for j, c := range row {
			if j == len(widths) {
				widths = append(widths, 0)
			}
			widths[j] = max(widths[j], utf8.RuneCountInString(c.text))
		}
	}

	var buf strings.Builder
	for _, row := range t.rows {
		var line strings.Builder
		for j, c := range row {
			if j > 0 {
				line.WriteString(gap)
			}
			fill := strings.Repeat(" ", widths[j]-utf8.RuneCountInString(c.text))
			s := c.text + fill
			if c.right {
				s = fill + c.text
			}
			if c.sgr != "" {
				s = "\x1b[" + c.sgr + "m" + s + "\x1b[0m"
			}
			line.WriteString(s)
		}
		buf.WriteString(strings.TrimRight(line.String(), " "))
		buf.WriteByte('\n')
	}
	_, err := io.WriteString(w, buf.String())
	return err
}
