// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"fmt"

	"github.com/symbiflow/ftpvl/evalproc"
	"github.com/symbiflow/ftpvl/evaluation"
	"gopkg.in/yaml.v3"
)

// metrics decodes a map of column names to directions, in order.
type metrics []evalproc.Metric

func (m *metrics) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: metrics must be a map of column to direction", n.Line)
	}
	out := make(metrics, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		var d direction
		if err := n.Content[i+1].Decode(&d); err != nil {
			return err
		}
		out = append(out, evalproc.Metric{Column: n.Content[i].Value, Direction: evalproc.Direction(d)})
	}
	*m = out
	return nil
}

// expansions decodes an expand_column mapping, in order. Keys are
// typed like any other scalar, so 35 and "35" differ.
type expansions []evalproc.Expansion

func (x *expansions) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: mapping must be a map of value to output values", n.Line)
	}
	out := make(expansions, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		var from value
		var to []value
		if err := n.Content[i].Decode(&from); err != nil {
			return err
		}
		if err := n.Content[i+1].Decode(&to); err != nil {
			return err
		}
		out = append(out, evalproc.Expansion{From: evaluation.Value(from), To: values(to)})
	}
	*x = out
	return nil
}

type direction evalproc.Direction

func (d *direction) UnmarshalYAML(n *yaml.Node) error {
	x, err := evalproc.ParseDirection(n.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	*d = direction(x)
	return nil
}

type kinds map[string]evaluation.Kind

func (k *kinds) UnmarshalYAML(n *yaml.Node) error {
	var m map[string]string
	if err := n.Decode(&m); err != nil {
		return err
	}
	out := make(kinds, len(m))
	for col, name := range m {
		kind, err := evaluation.ParseKind(name)
		if err != nil {
			return fmt.Errorf("line %d: column %q: %w", n.Line, col, err)
		}
		out[col] = kind
	}
	*k = out
	return nil
}

// value decodes a YAML scalar into a Value.
type value evaluation.Value

func (v *value) UnmarshalYAML(n *yaml.Node) error {
	var x any
	if err := n.Decode(&x); err != nil {
		return err
	}
	switch x.(type) {
	case nil, int, float64, string, bool:
	default:
		return fmt.Errorf("line %d: want a scalar value", n.Line)
	}
	*v = value(evaluation.Of(x))
	return nil
}

func values(vs []value) []evaluation.Value {
	out := make([]evaluation.Value, len(vs))
	for i, v := range vs {
		out[i] = evaluation.Value(v)
	}
	return out
}
