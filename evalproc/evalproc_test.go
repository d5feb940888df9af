// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package evalproc

import (
	"errors"
	"math"
	"testing"

	"github.com/symbiflow/ftpvl/evaluation"
	"github.com/symbiflow/ftpvl/internal/evaltest"
)

func run(t *testing.T, tab *evaluation.Table, p evaluation.Processor) *evaluation.Table {
	t.Helper()
	out, err := evaluation.NewWithID(tab, 42).Process(p)
	if err != nil {
		t.Fatalf("%T: %v", p, err)
	}
	return out.Table()
}

func mustIndex(t *testing.T, tab *evaluation.Table, levels ...string) *evaluation.Table {
	t.Helper()
	out, err := tab.SetIndex(levels...)
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func TestStandardizeTypes(t *testing.T) {
	in := evaluation.FromRows([]string{"a", "b", "c", "d"},
		[]any{"6.0", 1, 6.0, 0},
		[]any{"7", 2, 0.5, 3},
	)
	got := run(t, in, StandardizeTypes{Types: map[string]evaluation.Kind{
		"a": evaluation.Int,
		"b": evaluation.Float,
		"c": evaluation.String,
		"d": evaluation.Bool,
	}})
	want := evaluation.FromRows([]string{"a", "b", "c", "d"},
		[]any{6, 1.0, "6.0", false},
		[]any{7, 2.0, "0.5", true},
	)
	evaltest.Check(t, got, want)
}

func TestStandardizeTypesErrors(t *testing.T) {
	in := evaluation.NewWithID(evaluation.FromRows([]string{"a"}, []any{"fast"}), 1)

	_, err := in.Process(StandardizeTypes{Types: map[string]evaluation.Kind{"missing": evaluation.Int}})
	if !errors.Is(err, evaluation.ErrUnknownColumn) {
		t.Errorf("unknown column: got %v", err)
	}

	_, err = in.Process(StandardizeTypes{Types: map[string]evaluation.Kind{"a": evaluation.Float}})
	var ce *CastError
	if !errors.As(err, &ce) || ce.Column != "a" {
		t.Errorf("bad cast: got %v, want CastError for column a", err)
	}

	null := evaluation.New(evaluation.FromRows([]string{"a"}, []any{nil}))
	if _, err := null.Process(StandardizeTypes{Types: map[string]evaluation.Kind{"a": evaluation.Int}}); !errors.As(err, &ce) {
		t.Errorf("null to int: got %v, want CastError", err)
	}
}

func TestFormatFloat(t *testing.T) {
	for f, want := range map[float64]string{
		6:     "6.0",
		0.5:   "0.5",
		-2:    "-2.0",
		1e20:  "1e+20",
		1e-05: "1e-05",
		0:     "0.0",
	} {
		if got := formatFloat(f); got != want {
			t.Errorf("formatFloat(%v) = %q, want %q", f, got, want)
		}
	}
}

func TestMinusOne(t *testing.T) {
	in := mustIndex(t, evaluation.FromRows([]string{"k", "a", "b", "c"},
		[]any{"x", 1, 2.5, "s"},
	), "k")
	want := mustIndex(t, evaluation.FromRows([]string{"k", "a", "b", "c"},
		[]any{"x", 0, 1.5, "s"},
	), "k")
	evaltest.Check(t, run(t, in, MinusOne{}), want)
}

func dupRows() *evaluation.Table {
	return evaluation.FromRows([]string{"a", "b", "c"},
		[]any{1, 1, 5},
		[]any{1, 2, 4},
		[]any{3, 3, 3},
	)
}

func TestCleanDuplicates(t *testing.T) {
	for _, test := range []struct {
		name string
		p    CleanDuplicates
		want [][]any
	}{
		{"first seen", CleanDuplicates{Columns: []string{"a"}}, [][]any{{1, 1, 5}, {3, 3, 3}}},
		{"all distinct", CleanDuplicates{Columns: []string{"a", "b"}}, [][]any{{1, 1, 5}, {1, 2, 4}, {3, 3, 3}}},
		{"sorted", CleanDuplicates{Columns: []string{"a"}, Sort: []string{"c"}}, [][]any{{3, 3, 3}, {1, 2, 4}}},
		{"reversed", CleanDuplicates{Columns: []string{"a"}, Sort: []string{"c"}, Reverse: true}, [][]any{{1, 1, 5}, {3, 3, 3}}},
	} {
		t.Run(test.name, func(t *testing.T) {
			want := evaluation.FromRows([]string{"a", "b", "c"}, test.want...)
			evaltest.Check(t, run(t, dupRows(), test.p), want)
		})
	}
}

func TestCleanDuplicatesNullsLast(t *testing.T) {
	in := evaluation.FromRows([]string{"k", "v"},
		[]any{"x", nil},
		[]any{"x", 1},
		[]any{"x", 2},
	)
	for _, reverse := range []bool{false, true} {
		got := run(t, in, CleanDuplicates{Columns: []string{"k"}, Sort: []string{"v"}, Reverse: reverse})
		if got.Len() != 1 || got.Cell(0, 1).IsNA() {
			t.Errorf("reverse=%v kept %v, want a non-null row", reverse, got)
		}
	}
}

func TestAddNormalizedColumn(t *testing.T) {
	in := evaluation.FromRows([]string{"group", "freq"},
		[]any{"a", 10},
		[]any{"a", 5},
		[]any{"a", 3},
		[]any{"b", 100},
		[]any{"b", 31},
	)
	got := run(t, in, AddNormalizedColumn{GroupBy: "group", Input: "freq", Output: "normalized"})
	want := evaluation.FromRows([]string{"group", "freq", "normalized"},
		[]any{"a", 10, 1.0},
		[]any{"a", 5, 0.5},
		[]any{"a", 3, 0.3},
		[]any{"b", 100, 1.0},
		[]any{"b", 31, 0.31},
	)
	evaltest.Check(t, got, want)

	got = run(t, in, AddNormalizedColumn{GroupBy: "group", Input: "freq", Output: "normalized", Direction: Minimize})
	want = evaluation.FromRows([]string{"group", "freq", "normalized"},
		[]any{"a", 10, 10.0 / 3},
		[]any{"a", 5, 5.0 / 3},
		[]any{"a", 3, 1.0},
		[]any{"b", 100, 100.0 / 31},
		[]any{"b", 31, 1.0},
	)
	evaltest.Check(t, got, want)
}

func TestAddNormalizedColumnGroupOrder(t *testing.T) {
	in := evaluation.FromRows([]string{"group", "freq"},
		[]any{"b", 2},
		[]any{"a", 4},
		[]any{"b", 1},
		[]any{nil, 8},
	)
	got := run(t, in, AddNormalizedColumn{GroupBy: "group", Input: "freq", Output: "n"})
	want := evaluation.FromRows([]string{"group", "freq", "n"},
		[]any{"b", 2, 1.0},
		[]any{"b", 1, 0.5},
		[]any{"a", 4, 1.0},
		[]any{nil, 8, 1.0},
	)
	evaltest.Check(t, got, want)
}

func TestExpandColumn(t *testing.T) {
	in := evaluation.FromRows([]string{"group", "value"},
		[]any{"a", 1},
		[]any{"b", 2},
		[]any{"a", 3},
	)
	p := ExpandColumn{
		Input:   "group",
		Outputs: []string{"group1", "group2"},
		Mapping: []Expansion{
			{evaluation.StringValue("a"), evaluation.Values("a", "x")},
			{evaluation.StringValue("b"), evaluation.Values("b", "y")},
		},
	}
	want := evaluation.FromRows([]string{"group", "value", "group1", "group2"},
		[]any{"a", 1, "a", "x"},
		[]any{"b", 2, "b", "y"},
		[]any{"a", 3, "a", "x"},
	)
	evaltest.Check(t, run(t, in, p), want)

	e := evaluation.New(in)
	p.Mapping = p.Mapping[:1]
	if _, err := e.Process(p); !errors.Is(err, ErrNotMapped) {
		t.Errorf("unmapped value: got %v, want %v", err, ErrNotMapped)
	}
	p.Mapping = append(p.Mapping, Expansion{evaluation.StringValue("b"), evaluation.Values("b")})
	if _, err := e.Process(p); !errors.Is(err, ErrMappingLength) {
		t.Errorf("short mapping: got %v, want %v", err, ErrMappingLength)
	}
}

func TestExpandColumnKinds(t *testing.T) {
	p := ExpandColumn{
		Input:   "id",
		Outputs: []string{"name"},
		Mapping: []Expansion{{evaluation.IntValue(1), evaluation.Values("x")}},
	}
	for _, id := range []any{1, 1.0} {
		in := evaluation.FromRows([]string{"id"}, []any{id})
		got := run(t, in, p)
		if name, _ := got.Cell(0, 1).Str(); name != "x" {
			t.Errorf("id %v: got name %q, want %q", id, name, "x")
		}
	}
	in := evaluation.New(evaluation.FromRows([]string{"id"}, []any{"1"}))
	if _, err := in.Process(p); !errors.Is(err, ErrNotMapped) {
		t.Errorf("string id: got %v, want %v", err, ErrNotMapped)
	}
}

func TestReindexAndSortIndex(t *testing.T) {
	in := evaluation.FromRows([]string{"idx", "project", "value"},
		[]any{5, "e", 50},
		[]any{4, "d", 40},
		[]any{3, "c", 30},
		[]any{2, "b", 20},
		[]any{1, "a", 10},
	)
	indexed := run(t, in, Reindex{Columns: []string{"idx", "project"}})
	if got := indexed.Levels(); len(got) != 2 || got[0] != "idx" || got[1] != "project" {
		t.Fatalf("levels = %v", got)
	}

	got := run(t, indexed, SortIndex{Levels: []string{"idx"}})
	want := mustIndex(t, evaluation.FromRows([]string{"idx", "project", "value"},
		[]any{1, "a", 10},
		[]any{2, "b", 20},
		[]any{3, "c", 30},
		[]any{4, "d", 40},
		[]any{5, "e", 50},
	), "idx", "project")
	evaltest.Check(t, got, want)

	if _, err := evaluation.New(indexed).Process(SortIndex{Levels: []string{"value"}}); !errors.Is(err, evaluation.ErrUnknownLevel) {
		t.Errorf("sorting by a column: got %v, want %v", err, evaluation.ErrUnknownLevel)
	}
	if _, err := evaluation.New(in).Process(Reindex{Columns: []string{"nope"}}); !errors.Is(err, evaluation.ErrUnknownColumn) {
		t.Errorf("reindex by missing column: got %v", err)
	}
}

func TestSortIndexStable(t *testing.T) {
	in := mustIndex(t, evaluation.FromRows([]string{"k", "v"},
		[]any{"b", 1},
		[]any{"a", 2},
		[]any{"b", 3},
		[]any{"a", 4},
	), "k")
	got := run(t, in, SortIndex{})
	want := mustIndex(t, evaluation.FromRows([]string{"k", "v"},
		[]any{"a", 2},
		[]any{"a", 4},
		[]any{"b", 1},
		[]any{"b", 3},
	), "k")
	evaltest.Check(t, got, want)
}

func toolResults(t *testing.T) *evaluation.Table {
	return mustIndex(t, evaluation.FromRows([]string{"project", "synthesis_tool", "freq"},
		[]any{"blinky", "yosys", 0},
		[]any{"blinky", "yosys", 50},
		[]any{"blinky", "vivado", 100},
		[]any{"ibex", "yosys", 0},
		[]any{"ibex", "vivado", 10},
	), "project", "synthesis_tool")
}

func TestNormalizeAround(t *testing.T) {
	for _, test := range []struct {
		dir  Direction
		want []float64
	}{
		{Minimize, []float64{0, 0.25, 0.5, 0, 0.5}},
		{Maximize, []float64{1, 0.75, 0.5, 1, 0.5}},
	} {
		got := run(t, toolResults(t), NormalizeAround{
			Metrics: []Metric{{"freq", test.dir}},
			GroupBy: "project",
			Level:   "synthesis_tool",
			Value:   evaluation.StringValue("vivado"),
		})
		want := toolResults(t).WithColumn("freq", floatValues(test.want))
		evaltest.Check(t, got, want)
	}
}

func TestNormalizeAroundErrors(t *testing.T) {
	e := evaluation.New(toolResults(t))
	p := NormalizeAround{
		Metrics: []Metric{{"freq", Maximize}},
		GroupBy: "project",
		Level:   "synthesis_tool",
		Value:   evaluation.StringValue("quartus"),
	}
	if _, err := e.Process(p); !errors.Is(err, ErrNoBaseline) {
		t.Errorf("missing baseline: got %v, want %v", err, ErrNoBaseline)
	}
	p.Value = evaluation.StringValue("vivado")
	p.Level = "freq"
	if _, err := e.Process(p); !errors.Is(err, evaluation.ErrUnknownLevel) {
		t.Errorf("baseline level is a column: got %v", err)
	}
}

func TestNormalizeAroundZeroScale(t *testing.T) {
	in := mustIndex(t, evaluation.FromRows([]string{"project", "tool", "freq"},
		[]any{"a", "base", 5},
		[]any{"a", "other", 5},
	), "tool")
	got := run(t, in, NormalizeAround{
		Metrics: []Metric{{"freq", Maximize}},
		GroupBy: "project",
		Level:   "tool",
		Value:   evaluation.StringValue("base"),
	})
	for i := 0; i < got.Len(); i++ {
		if f, _ := got.Cell(i, 1).Float(); !math.IsNaN(f) {
			t.Errorf("row %d = %v, want NaN", i, f)
		}
	}
}

func TestNormalize(t *testing.T) {
	in := evaluation.FromRows([]string{"name", "value"},
		[]any{"a", -50},
		[]any{"b", 50},
		[]any{"c", 100},
		[]any{"d", 0},
		[]any{"e", 10},
	)
	for _, test := range []struct {
		dir  Direction
		want []float64
	}{
		{Minimize, []float64{0.25, 0.75, 1, 0.5, 0.55}},
		{Maximize, []float64{0.75, 0.25, 0, 0.5, 0.45}},
	} {
		got := run(t, in, Normalize{Metrics: []Metric{{"value", test.dir}}})
		evaltest.Check(t, got, in.WithColumn("value", floatValues(test.want)))
	}

	if _, err := evaluation.New(in).Process(Normalize{Metrics: []Metric{{"name", Maximize}}}); err == nil {
		t.Errorf("normalizing a string column succeeded")
	}
}

func TestRelativeDiff(t *testing.T) {
	a := evaluation.NewWithID(evaluation.FromRows([]string{"x", "y", "tool"},
		[]any{1, 5, "yosys"},
		[]any{4, 10, "vpr"},
	), 1)
	b := evaluation.NewWithID(evaluation.FromRows([]string{"x", "y", "tool"},
		[]any{2, 20, "yosys"},
		[]any{2, 2, "vpr"},
	), 2)
	got, err := b.Process(RelativeDiff{A: a})
	if err != nil {
		t.Fatal(err)
	}
	want := evaluation.FromRows([]string{"x", "y"},
		[]any{1.0, 3.0},
		[]any{-0.5, -0.8},
	)
	evaltest.Check(t, got.Table(), want)
	if _, ok := got.EvalID(); ok {
		t.Errorf("RelativeDiff kept an eval id")
	}
}

func TestRelativeDiffMismatch(t *testing.T) {
	a := evaluation.New(evaluation.FromRows([]string{"x", "z"}, []any{1, 1}))
	b := evaluation.New(evaluation.FromRows([]string{"y", "x"}, []any{1, 3}, []any{1, 5}))
	got, err := b.Process(RelativeDiff{A: a})
	if err != nil {
		t.Fatal(err)
	}
	nan := math.NaN()
	want := evaluation.FromRows([]string{"y", "x", "z"},
		[]any{nan, 2.0, nan},
		[]any{nan, nan, nan},
	)
	evaltest.Check(t, got.Table(), want)
}

func TestRelativeDiffNilReference(t *testing.T) {
	b := evaluation.New(evaluation.FromRows([]string{"x"}, []any{1}))
	if _, err := b.Process(RelativeDiff{}); !errors.Is(err, evaluation.ErrNilEvaluation) {
		t.Errorf("got %v, want %v", err, evaluation.ErrNilEvaluation)
	}
}

func TestFilterByIndex(t *testing.T) {
	got := run(t, toolResults(t), FilterByIndex{Level: "synthesis_tool", Value: evaluation.StringValue("vivado")})
	want := mustIndex(t, evaluation.FromRows([]string{"project", "freq"},
		[]any{"blinky", 100},
		[]any{"ibex", 10},
	), "project")
	evaltest.Check(t, got, want)

	single := mustIndex(t, evaluation.FromRows([]string{"key", "x", "y"},
		[]any{"a", 1, 5},
		[]any{"b", 4, 10},
	), "key")
	got = run(t, single, FilterByIndex{Level: "key", Value: evaluation.StringValue("a")})
	want = mustIndex(t, evaluation.FromRows([]string{"key", "x", "y"}, []any{"a", 1, 5}), "key")
	evaltest.Check(t, got, want)

	got = run(t, single, FilterByIndex{Level: "key", Value: evaluation.StringValue("c")})
	if got.Len() != 0 || !got.HasIndex() {
		t.Errorf("no match: got %v", got)
	}
}

func TestLargeIntKeys(t *testing.T) {
	const a, b int64 = 1 << 53, 1<<53 + 1
	in := evaluation.FromRows([]string{"build", "lut"},
		[]any{a, 10},
		[]any{b, 20},
	)
	got := run(t, in, CleanDuplicates{Columns: []string{"build"}})
	if got.Len() != 2 {
		t.Errorf("CleanDuplicates kept %d rows, want 2", got.Len())
	}

	got = run(t, mustIndex(t, in, "build"), FilterByIndex{Level: "build", Value: evaluation.IntValue(b)})
	if got.Len() != 1 {
		t.Fatalf("FilterByIndex matched %d rows, want 1", got.Len())
	}
	if lut, _ := got.Cell(0, 0).Int(); lut != 20 {
		t.Errorf("FilterByIndex kept lut %d, want 20", lut)
	}

	if groups := partition(evaluation.Values(a, b, a)); len(groups) != 2 {
		t.Errorf("partition gave %d groups, want 2", len(groups))
	}
}

func TestNegativeZeroKeys(t *testing.T) {
	negZero := math.Copysign(0, -1)
	in := evaluation.FromRows([]string{"d", "v"},
		[]any{0.0, 1},
		[]any{negZero, 2},
	)
	got := run(t, in, CleanDuplicates{Columns: []string{"d"}})
	if got.Len() != 1 {
		t.Errorf("CleanDuplicates kept %d rows, want 1", got.Len())
	}
	if groups := partition(evaluation.Values(0.0, negZero)); len(groups) != 1 {
		t.Errorf("partition gave %d groups, want 1", len(groups))
	}
}

func TestFilterByIndexErrors(t *testing.T) {
	flat := evaluation.New(evaluation.FromRows([]string{"x"}, []any{1}))
	if _, err := flat.Process(FilterByIndex{Level: "x", Value: evaluation.IntValue(1)}); !errors.Is(err, ErrIndexShape) {
		t.Errorf("positional index: got %v, want %v", err, ErrIndexShape)
	}
	e := evaluation.New(toolResults(t))
	if _, err := e.Process(FilterByIndex{Level: "board", Value: evaluation.StringValue("a")}); !errors.Is(err, evaluation.ErrUnknownLevel) {
		t.Errorf("unknown level: got %v", err)
	}
}

func TestAggregate(t *testing.T) {
	in := mustIndex(t, evaluation.FromRows([]string{"name", "x", "y", "missing", "tool"},
		[]any{"a", 1, 5, 1.0, "yosys"},
		[]any{"b", 4, 10, nil, "vpr"},
	), "name")
	got, err := evaluation.NewWithID(in, 3).Process(Aggregate{Func: Sum})
	if err != nil {
		t.Fatal(err)
	}
	evaltest.Check(t, got.Table(), evaluation.FromRows([]string{"x", "y"}, []any{5, 15}))
	if id, ok := got.EvalID(); !ok || id != 3 {
		t.Errorf("EvalID() = %d, %v, want 3, true", id, ok)
	}
}

func TestGeomeanAggregate(t *testing.T) {
	in := evaluation.FromRows([]string{"x", "y"},
		[]any{1, 8},
		[]any{4, 8},
	)
	evaltest.Check(t, run(t, in, GeomeanAggregate{}), evaluation.FromRows([]string{"x", "y"}, []any{2.0, 8.0}))

	in = evaluation.FromRows([]string{"x"}, []any{1}, []any{1}, []any{3}, []any{4}, []any{5})
	want := math.Pow(1*1*3*4*5, 1.0/5)
	evaltest.Check(t, run(t, in, GeomeanAggregate{}), evaluation.FromRows([]string{"x"}, []any{want}))
}

func TestAggFuncs(t *testing.T) {
	vs := evaluation.Values(1, nil, 4.0, math.NaN())
	if got, _ := Geomean(vs).Float(); math.Abs(got-2) > 1e-12 {
		t.Errorf("Geomean = %v, want 2", got)
	}
	if got, _ := Mean(vs).Float(); got != 2.5 {
		t.Errorf("Mean = %v, want 2.5", got)
	}
	if got := Sum(vs); !got.Equal(evaluation.FloatValue(5)) {
		t.Errorf("Sum = %v, want 5", got)
	}
	if got := Sum(evaluation.Values(1, 2)); !got.Equal(evaluation.IntValue(3)) {
		t.Errorf("Sum of ints = %#v, want int 3", got)
	}
	if got, _ := Geomean(evaluation.Values(nil)).Float(); !math.IsNaN(got) {
		t.Errorf("Geomean of nothing = %v, want NaN", got)
	}
}

func TestCompareToFirst(t *testing.T) {
	in := mustIndex(t, evaluation.FromRows([]string{"run", "freq", "luts", "tool"},
		[]any{"r1", 1, 10, "a"},
		[]any{"r2", 2, 20, "b"},
		[]any{"r3", 3, 5, "c"},
		[]any{"r4", 4, 10, "d"},
		[]any{"r5", 5, 40, "e"},
	), "run")
	got := run(t, in, CompareToFirst{Metrics: []Metric{{"freq", Maximize}, {"luts", Minimize}}})
	want := mustIndex(t, evaluation.FromRows([]string{"run", "freq", "freq.relative", "luts", "luts.relative"},
		[]any{"r1", 1, 1.0, 10, 1.0},
		[]any{"r2", 2, 2.0, 20, 0.5},
		[]any{"r3", 3, 3.0, 5, 2.0},
		[]any{"r4", 4, 4.0, 10, 1.0},
		[]any{"r5", 5, 5.0, 40, 0.25},
	), "run")
	evaltest.Check(t, got, want)

	got = run(t, in, CompareToFirst{Metrics: []Metric{{"freq", Maximize}}, Suffix: "_x"})
	if cols := got.Columns(); len(cols) != 2 || cols[1] != "freq_x" {
		t.Errorf("columns = %v, want [freq freq_x]", cols)
	}
}

func TestDirection(t *testing.T) {
	var d Direction
	if d != Maximize {
		t.Errorf("zero Direction is %v, want maximize", d)
	}
	if err := d.UnmarshalText([]byte("MIN")); err != nil || d != Minimize {
		t.Errorf("UnmarshalText(MIN) = %v, %v", d, err)
	}
	if _, err := ParseDirection("sideways"); err == nil {
		t.Errorf("ParseDirection(sideways) succeeded")
	}
	if Maximize.Sign() != 1 || Minimize.Sign() != -1 {
		t.Errorf("wrong signs")
	}
}

func TestPipelineDoesNotMutate(t *testing.T) {
	in := evaluation.NewWithID(evaluation.FromRows([]string{"project", "toolchain", "freq"},
		[]any{"blinky", "vpr", "10.5"},
		[]any{"blinky", "vivado", "20"},
		[]any{"blinky", "vivado", "21"},
	), 9)
	before := in.Table()
	out, err := in.Process(
		StandardizeTypes{Types: map[string]evaluation.Kind{"freq": evaluation.Float}},
		CleanDuplicates{Columns: []string{"project", "toolchain"}, Sort: []string{"freq"}, Reverse: true},
		AddNormalizedColumn{GroupBy: "project", Input: "freq", Output: "normalized_max_freq"},
		Reindex{Columns: []string{"project", "toolchain"}},
		SortIndex{Levels: []string{"toolchain"}},
	)
	if err != nil {
		t.Fatal(err)
	}
	evaltest.Check(t, in.Table(), before)
	want := mustIndex(t, evaluation.FromRows([]string{"project", "toolchain", "freq", "normalized_max_freq"},
		[]any{"blinky", "vivado", 21.0, 1.0},
		[]any{"blinky", "vpr", 10.5, 0.5},
	), "project", "toolchain")
	evaltest.Check(t, out.Table(), want)
	if id, _ := out.EvalID(); id != 9 {
		t.Errorf("eval id = %d, want 9", id)
	}
}
