// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package evaltest compares tables in tests.
package evaltest

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/symbiflow/ftpvl/evaluation"
)

// Snapshot is a plain-value view of a Table for comparison.
type Snapshot struct {
	Levels  []string
	Columns []string
	Index   [][]any
	Rows    [][]any
}

// Snap returns the Snapshot of t.
func Snap(t *evaluation.Table) Snapshot {
	s := Snapshot{Levels: t.Levels(), Columns: t.Columns()}
	plain := func(g [][]evaluation.Value) [][]any {
		out := make([][]any, len(g))
		for i, row := range g {
			out[i] = make([]any, len(row))
			for j, v := range row {
				out[i][j] = v.Interface()
			}
		}
		return out
	}
	s.Index = plain(t.Index())
	s.Rows = plain(t.Rows())
	return s
}

// Options are the cmp options used by Diff. Floats are compared with
// a small relative tolerance and NaNs are equal.
var Options = cmp.Options{
	cmpopts.EquateApprox(1e-9, 1e-12),
	cmpopts.EquateNaNs(),
	cmpopts.EquateEmpty(),
}

// Diff returns a human-readable report of the differences between
// want and got, or "" if they match.
func Diff(want, got *evaluation.Table) string {
	return cmp.Diff(Snap(want), Snap(got), Options)
}

// Check fails t if got does not match want.
func Check(t testing.TB, got, want *evaluation.Table) {
	t.Helper()
	if diff := Diff(want, got); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}
}
