// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pipeline reads processing pipelines from YAML.
//
// A pipeline is a YAML sequence of steps. Each step is either the
// bare name of a processor that takes no arguments or a single-key
// map from the processor name to its arguments:
//
//	- standardize_types:
//	    types: {device: str, lut: int, freq: float}
//	- clean_duplicates:
//	    columns: [device, toolchain]
//	    sort: [freq]
//	    reverse: true
//	- reindex: [device, toolchain]
//	- normalize_around:
//	    metrics: {lut: min, freq: max}
//	    group_by: device
//	    level: toolchain
//	    value: vpr
//	- geomean_aggregate
//
// Maps of metrics keep their YAML order.
package pipeline

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"github.com/symbiflow/ftpvl/evalproc"
	"github.com/symbiflow/ftpvl/evaluation"
	"gopkg.in/yaml.v3"
)

// A Pipeline is a sequence of processors.
type Pipeline []evaluation.Processor

// Run applies p to e.
func (p Pipeline) Run(e *evaluation.Evaluation) (*evaluation.Evaluation, error) {
	return e.Process(p...)
}

// Load reads a pipeline from a YAML file.
func Load(path string) (Pipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse decodes a pipeline from YAML.
func Parse(data []byte) (Pipeline, error) {
	var p Pipeline
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return p, nil
}

// UnmarshalYAML decodes a sequence of steps.
func (p *Pipeline) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: pipeline must be a list of steps", n.Line)
	}
	out := make(Pipeline, 0, len(n.Content))
	for _, step := range n.Content {
		var name string
		var args *yaml.Node
		switch step.Kind {
		case yaml.ScalarNode:
			name = step.Value
		case yaml.MappingNode:
			if len(step.Content) != 2 {
				return fmt.Errorf("line %d: step must have exactly one processor", step.Line)
			}
			name, args = step.Content[0].Value, step.Content[1]
		default:
			return fmt.Errorf("line %d: step must be a name or a map", step.Line)
		}
		build, ok := steps[name]
		if !ok {
			return fmt.Errorf("line %d: unknown processor %q (want one of %v)", step.Line, name, Names())
		}
		proc, err := build(args)
		if err != nil {
			return fmt.Errorf("line %d: %s: %w", step.Line, name, err)
		}
		out = append(out, proc)
	}
	*p = out
	return nil
}

// Names returns the processor names a pipeline may use.
func Names() []string {
	names := make([]string, 0, len(steps))
	for name := range steps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// decode decodes args into v, rejecting unknown fields. A missing
// args node leaves v unchanged.
func decode(args *yaml.Node, v any) error {
	if args == nil || args.Tag == "!!null" {
		return nil
	}
	data, err := yaml.Marshal(args)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(v)
}

// stringList accepts either a list of strings or a map with a single
// list-valued field named key.
func stringList(args *yaml.Node, key string) ([]string, error) {
	if args != nil && args.Kind == yaml.SequenceNode {
		var list []string
		err := args.Decode(&list)
		return list, err
	}
	var m map[string][]string
	if err := decode(args, &m); err != nil {
		return nil, err
	}
	for k := range m {
		if k != key {
			return nil, fmt.Errorf("unknown field %q", k)
		}
	}
	return m[key], nil
}

var steps = map[string]func(args *yaml.Node) (evaluation.Processor, error){
	"standardize_types": func(args *yaml.Node) (evaluation.Processor, error) {
		var a struct {
			Types kinds `yaml:"types"`
		}
		if err := decode(args, &a); err != nil {
			return nil, err
		}
		return evalproc.StandardizeTypes{Types: a.Types}, nil
	},
	"clean_duplicates": func(args *yaml.Node) (evaluation.Processor, error) {
		var a struct {
			Columns []string `yaml:"columns"`
			Sort    []string `yaml:"sort"`
			Reverse bool     `yaml:"reverse"`
		}
		if err := decode(args, &a); err != nil {
			return nil, err
		}
		return evalproc.CleanDuplicates{Columns: a.Columns, Sort: a.Sort, Reverse: a.Reverse}, nil
	},
	"add_normalized_column": func(args *yaml.Node) (evaluation.Processor, error) {
		var a struct {
			GroupBy   string    `yaml:"group_by"`
			Input     string    `yaml:"input"`
			Output    string    `yaml:"output"`
			Direction direction `yaml:"direction"`
		}
		if err := decode(args, &a); err != nil {
			return nil, err
		}
		if a.GroupBy == "" || a.Input == "" || a.Output == "" {
			return nil, fmt.Errorf("group_by, input and output are required")
		}
		return evalproc.AddNormalizedColumn{GroupBy: a.GroupBy, Input: a.Input, Output: a.Output, Direction: evalproc.Direction(a.Direction)}, nil
	},
	"expand_column": func(args *yaml.Node) (evaluation.Processor, error) {
		var a struct {
			Input   string             `yaml:"input"`
			Outputs []string           `yaml:"outputs"`
			Mapping expansions `yaml:"mapping"`
		}
		if err := decode(args, &a); err != nil {
			return nil, err
		}
		return evalproc.ExpandColumn{Input: a.Input, Outputs: a.Outputs, Mapping: a.Mapping}, nil
	},
	"reindex": func(args *yaml.Node) (evaluation.Processor, error) {
		cols, err := stringList(args, "columns")
		if err != nil {
			return nil, err
		}
		return evalproc.Reindex{Columns: cols}, nil
	},
	"sort_index": func(args *yaml.Node) (evaluation.Processor, error) {
		levels, err := stringList(args, "levels")
		if err != nil {
			return nil, err
		}
		return evalproc.SortIndex{Levels: levels}, nil
	},
	"normalize_around": func(args *yaml.Node) (evaluation.Processor, error) {
		var a struct {
			Metrics metrics `yaml:"metrics"`
			GroupBy string  `yaml:"group_by"`
			Level   string  `yaml:"level"`
			Value   value   `yaml:"value"`
		}
		if err := decode(args, &a); err != nil {
			return nil, err
		}
		return evalproc.NormalizeAround{Metrics: a.Metrics, GroupBy: a.GroupBy, Level: a.Level, Value: evaluation.Value(a.Value)}, nil
	},
	"normalize": func(args *yaml.Node) (evaluation.Processor, error) {
		var a struct {
			Metrics metrics `yaml:"metrics"`
		}
		if err := decode(args, &a); err != nil {
			return nil, err
		}
		return evalproc.Normalize{Metrics: a.Metrics}, nil
	},
	"filter_by_index": func(args *yaml.Node) (evaluation.Processor, error) {
		var a struct {
			Level string `yaml:"level"`
			Value value  `yaml:"value"`
		}
		if err := decode(args, &a); err != nil {
			return nil, err
		}
		return evalproc.FilterByIndex{Level: a.Level, Value: evaluation.Value(a.Value)}, nil
	},
	"aggregate": func(args *yaml.Node) (evaluation.Processor, error) {
		var a struct {
			Func string `yaml:"func"`
		}
		if err := decode(args, &a); err != nil {
			return nil, err
		}
		f, ok := aggFuncs[a.Func]
		if !ok {
			return nil, fmt.Errorf("unknown aggregate func %q", a.Func)
		}
		return evalproc.Aggregate{Func: f}, nil
	},
	"geomean_aggregate": func(args *yaml.Node) (evaluation.Processor, error) {
		return evalproc.GeomeanAggregate{}, decode(args, &struct{}{})
	},
	"compare_to_first": func(args *yaml.Node) (evaluation.Processor, error) {
		var a struct {
			Metrics metrics `yaml:"metrics"`
			Suffix  string  `yaml:"suffix"`
		}
		if err := decode(args, &a); err != nil {
			return nil, err
		}
		return evalproc.CompareToFirst{Metrics: a.Metrics, Suffix: a.Suffix}, nil
	},
	"minus_one": func(args *yaml.Node) (evaluation.Processor, error) {
		return evalproc.MinusOne{}, decode(args, &struct{}{})
	},
}

var aggFuncs = map[string]evalproc.AggFunc{
	"sum":     evalproc.Sum,
	"mean":    evalproc.Mean,
	"geomean": evalproc.Geomean,
}
