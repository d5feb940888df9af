// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package texttab

import (
	"strings"
	"testing"
)

func format(t *testing.T, tab *Table) string {
	t.Helper()
	var buf strings.Builder
	if err := tab.Format(&buf); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestTable(t *testing.T) {
	for _, tc := range []struct {
		name  string
		build func(tab *Table)
		want  string
	}{
		{"simple", func(tab *Table) {
			tab.Row().Cell("a").Cell("b").Cell("c")
			tab.Row().Cell("d").Cell("e").Cell("f")
		}, "a b c\nd e f\n"},
		{"padding", func(tab *Table) {
			tab.Row().Cell("a").Cell("b").Cell("c")
			tab.Row().Cell("long").Cell("e").Cell("long")
		}, "a    b c\nlong e long\n"},
		{"right", func(tab *Table) {
			tab.Row().Cell("lut").Cell("freq", Right)
			tab.Row().Cell("10").Cell("1.5", Right)
		}, "lut freq\n10   1.5\n"},
		{"unicode", func(tab *Table) {
			tab.Row().Cell("☃", Right)
			tab.Row().Cell("abcd")
		}, "   ☃\nabcd\n"},
		{"short rows", func(tab *Table) {
			tab.Row().Cell("a")
			tab.Row().Cell("d").Cell("e").Cell("f")
		}, "a\nd e f\n"},
		{"blank rows", func(tab *Table) {
			tab.Row().Cell("a")
			tab.Row()
			tab.Row().Cell("b")
		}, "a\n\nb\n"},
		{"implicit row", func(tab *Table) {
			tab.Cell("x").Cell("y")
		}, "x y\n"},
		{"gap", func(tab *Table) {
			tab.Gap = "  "
			tab.Row().Cell("a").Cell("b")
		}, "a  b\n"},
		{"empty", func(tab *Table) {}, ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var tab Table
			tc.build(&tab)
			if got := format(t, &tab); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestColor(t *testing.T) {
	var tab Table
	tab.Row().Cell("x").Cell("1.00", Color("41"), Right)
	tab.Row().Cell("yy").Cell("0.5", Right)
	want := "x  \x1b[41m1.00\x1b[0m\nyy  0.5\n"
	if got := format(t, &tab); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
