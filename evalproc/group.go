// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package evalproc

import "github.com/symbiflow/ftpvl/evaluation"

// partition splits row numbers by the key of their value in keys.
// Groups are in first-seen order and rows keep their order within a
// group. Missing values form one group.
func partition(keys []evaluation.Value) [][]int {
	var groups [][]int
	pos := make(map[evaluation.Key]int)
	for i, k := range keys {
		g, ok := pos[k.Key()]
		if !ok {
			g = len(groups)
			pos[k.Key()] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], i)
	}
	return groups
}

// concatGroups returns the row numbers of groups one group after
// another.
func concatGroups(groups [][]int) []int {
	var rows []int
	for _, g := range groups {
		rows = append(rows, g...)
	}
	return rows
}
