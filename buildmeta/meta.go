// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package buildmeta

import (
	"strings"

	"github.com/symbiflow/ftpvl/evaluation"
)

// Flatten returns a single-level copy of o. Nested objects are
// replaced by their members, with keys joined by ".", to any depth.
// Arrays are leaves. Empty nested objects contribute nothing.
//
// If two paths join to the same key, the value seen last wins and the
// key keeps the position where it first appeared.
func Flatten(o Object) Object {
	out := Object{}
	pos := make(map[string]int)
	var walk func(prefix string, o Object)
	walk = func(prefix string, o Object) {
		for _, m := range o {
			key := prefix + m.Key
			if sub, ok := m.Value.(Object); ok {
				walk(key+".", sub)
				continue
			}
			if i, ok := pos[key]; ok {
				out[i].Value = m.Value
				continue
			}
			pos[key] = len(out)
			out = append(out, Member{key, m.Value})
		}
	}
	walk("", o)
	return out
}

// VersionPrefix starts the keys of tool versions in a flattened
// object.
const VersionPrefix = "versions."

// Versions returns the members of the flattened object o whose keys
// start with "versions.".
func Versions(o Object) Object {
	out := Object{}
	for _, m := range o {
		if strings.HasPrefix(m.Key, VersionPrefix) {
			out = append(out, m)
		}
	}
	return out
}

const oneMHz = 1_000_000

// RescaleActualFreq converts a frequency in Hz to MHz. Values above
// one million are taken to be in Hz and divided by one million, which
// always yields a Float. Anything else is returned unchanged.
func RescaleActualFreq(v evaluation.Value) evaluation.Value {
	if !v.IsNumeric() {
		return v
	}
	f, _ := v.Float()
	if f > oneMHz {
		return evaluation.FloatValue(f / oneMHz)
	}
	return v
}

// DefaultClockNames are the clocks whose frequency ActualFreq prefers,
// in order.
var DefaultClockNames = []string{"clk", "sys_clk", "clk_i"}

// ActualFreq returns the achieved clock frequency recorded in the
// flattened object o, in MHz.
//
// A top-level "max_freq" value is used if present. Otherwise the
// first of clockNames with a "max_freq.<name>.actual" key is used.
// Otherwise the shortest "max_freq.*.actual" key is used, ties going
// to the key that comes first in o. If clockNames is nil,
// DefaultClockNames is used. ok is false if o records no frequency.
func ActualFreq(o Object, clockNames []string) (v evaluation.Value, ok bool) {
	v, ok = RawActualFreq(o, clockNames)
	if !ok {
		return v, false
	}
	return RescaleActualFreq(v), true
}

// RawActualFreq is like ActualFreq but returns the frequency as
// recorded, without converting it to MHz.
func RawActualFreq(o Object, clockNames []string) (v evaluation.Value, ok bool) {
	if clockNames == nil {
		clockNames = DefaultClockNames
	}
	if x, ok := o.Get("max_freq"); ok {
		return evaluation.Of(x), true
	}
	for _, name := range clockNames {
		if x, ok := o.Get("max_freq." + name + ".actual"); ok {
			return evaluation.Of(x), true
		}
	}
	best := -1
	for i, m := range o {
		if !strings.HasPrefix(m.Key, "max_freq.") || !strings.HasSuffix(m.Key, ".actual") {
			continue
		}
		if best < 0 || len(m.Key) < len(o[best].Key) {
			best = i
		}
	}
	if best < 0 {
		return evaluation.NullValue, false
	}
	return evaluation.Of(o[best].Value), true
}
