// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package evaluation

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/generic"
)

// A Kind is the scalar type of a Value.
type Kind uint8

const (
	Null Kind = iota
	Int
	Float
	String
	Bool
)

var kindNames = [...]string{Null: "null", Int: "int", Float: "float", String: "str", Bool: "bool"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind parses the name of a cast target. It accepts the names
// returned by Kind.String as well as a few common aliases.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "int", "integer", "int64":
		return Int, nil
	case "float", "float64", "double":
		return Float, nil
	case "str", "string":
		return String, nil
	case "bool", "boolean":
		return Bool, nil
	}
	return Null, fmt.Errorf("unknown type %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler so kinds can be
// read from configuration files.
func (k *Kind) UnmarshalText(text []byte) error {
	kind, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// A Value is a single table cell. The zero Value is null.
//
// Values are comparable with == but note that a float NaN is never
// equal to itself; use Equal to compare cells.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
	b    bool
}

// NullValue is the missing value.
var NullValue = Value{}

func IntValue(i int64) Value     { return Value{kind: Int, i: i} }
func FloatValue(f float64) Value { return Value{kind: Float, f: f} }
func StringValue(s string) Value { return Value{kind: String, s: s} }
func BoolValue(b bool) Value     { return Value{kind: Bool, b: b} }

// Of converts a Go value into a Value. nil becomes null. Slices,
// maps and other composite values are stored as their JSON text,
// which keeps them as opaque leaves.
func Of(x any) Value {
	switch x := x.(type) {
	case nil:
		return NullValue
	case Value:
		return x
	case int:
		return IntValue(int64(x))
	case int8:
		return IntValue(int64(x))
	case int16:
		return IntValue(int64(x))
	case int32:
		return IntValue(int64(x))
	case int64:
		return IntValue(x)
	case uint:
		return IntValue(int64(x))
	case uint8:
		return IntValue(int64(x))
	case uint16:
		return IntValue(int64(x))
	case uint32:
		return IntValue(int64(x))
	case uint64:
		return IntValue(int64(x))
	case float32:
		return FloatValue(float64(x))
	case float64:
		return FloatValue(x)
	case string:
		return StringValue(x)
	case bool:
		return BoolValue(x)
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return IntValue(i)
		}
		f, err := x.Float64()
		if err != nil {
			return StringValue(x.String())
		}
		return FloatValue(f)
	}
	data, err := json.Marshal(x)
	if err != nil {
		return StringValue(fmt.Sprint(x))
	}
	return StringValue(string(data))
}

// Values converts each of xs with Of.
func Values(xs ...any) []Value {
	vs := make([]Value, len(xs))
	for i, x := range xs {
		vs[i] = Of(x)
	}
	return vs
}

func (v Value) Kind() Kind { return v.kind }

// IsNA reports whether v is missing: either null or a float NaN.
func (v Value) IsNA() bool {
	return v.kind == Null || (v.kind == Float && math.IsNaN(v.f))
}

// IsNumeric reports whether v is an Int or a Float.
func (v Value) IsNumeric() bool {
	return v.kind == Int || v.kind == Float
}

// Float returns v as a float64. Nulls are NaN. ok is false if v is
// not numeric or null.
func (v Value) Float() (f float64, ok bool) {
	switch v.kind {
	case Int:
		return float64(v.i), true
	case Float:
		return v.f, true
	case Null:
		return math.NaN(), true
	}
	return math.NaN(), false
}

// Int returns the integer payload of an Int value.
func (v Value) Int() (int64, bool) {
	return v.i, v.kind == Int
}

// Str returns the payload of a String value.
func (v Value) Str() (string, bool) {
	return v.s, v.kind == String
}

// Bool returns the payload of a Bool value.
func (v Value) Bool() (bool, bool) {
	return v.b, v.kind == Bool
}

// Interface returns v as a plain Go value: nil, int64, float64,
// string or bool.
func (v Value) Interface() any {
	switch v.kind {
	case Int:
		return v.i
	case Float:
		return v.f
	case String:
		return v.s
	case Bool:
		return v.b
	}
	return nil
}

func (v Value) String() string {
	switch v.kind {
	case Int:
		return strconv.FormatInt(v.i, 10)
	case Float:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case String:
		return v.s
	case Bool:
		return strconv.FormatBool(v.b)
	}
	return "null"
}

// Equal reports whether v and w are the same cell. Kinds must match,
// and two NaNs are equal.
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}
	if v.kind == Float && math.IsNaN(v.f) {
		return math.IsNaN(w.f)
	}
	return v == w
}

// MarshalJSON encodes v as a JSON scalar. NaN and infinities have no
// JSON form and are written as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case Float:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return []byte("null"), nil
		}
	case Null:
		return []byte("null"), nil
	}
	return json.Marshal(v.Interface())
}

// rank orders values of unrelated kinds: numbers, then strings, then
// bools, then missing values.
func (v Value) rank() int {
	switch {
	case v.IsNA():
		return 3
	case v.IsNumeric():
		return 0
	case v.kind == String:
		return 1
	}
	return 2
}

// Compare returns -1, 0, or 1 depending on whether v sorts before,
// with, or after w. Ints and floats compare numerically, strings
// lexically and false before true. Missing values sort last.
func Compare(v, w Value) int {
	rv, rw := v.rank(), w.rank()
	if rv != rw {
		if rv < rw {
			return -1
		}
		return 1
	}
	switch rv {
	case 0:
		if v.kind == Int && w.kind == Int {
			return generic.Order(v.i, w.i)
		}
		vf, _ := v.Float()
		wf, _ := w.Float()
		return generic.Order(vf, wf)
	case 1:
		return generic.Order(v.s, w.s)
	case 2:
		if v.b == w.b {
			return 0
		} else if !v.b {
			return -1
		}
		return 1
	}
	return 0
}

// A Key identifies a group of equal values. An integral float has the
// key of the int it converts to exactly, so 2 and 2.0 (and 0.0 and
// -0.0) share a key. Every missing value has the same key.
type Key struct {
	kind Kind
	i    int64
	f    float64
	s    string
	b    bool
}

// Key returns the grouping key of v.
func (v Value) Key() Key {
	switch {
	case v.IsNA():
		return Key{}
	case v.kind == Int:
		return Key{kind: Int, i: v.i}
	case v.kind == Float:
		if i, ok := exactInt(v.f); ok {
			return Key{kind: Int, i: i}
		}
		return Key{kind: Float, f: v.f}
	case v.kind == String:
		return Key{kind: String, s: v.s}
	}
	return Key{kind: Bool, b: v.b}
}

// exactInt returns f as an int64 if f is integral and in range.
func exactInt(f float64) (int64, bool) {
	if f != math.Trunc(f) || f < math.MinInt64 || f >= -math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

// TupleKey joins the keys of several values into one comparable key.
func TupleKey(vs []Value) string {
	var sb strings.Builder
	for i, v := range vs {
		if i > 0 {
			sb.WriteByte(0)
		}
		k := v.Key()
		fmt.Fprintf(&sb, "%d:%d:%v:%q:%v", k.kind, k.i, k.f, k.s, k.b)
	}
	return sb.String()
}
