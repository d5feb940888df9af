// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fetch

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/symbiflow/ftpvl/buildmeta"
	"github.com/symbiflow/ftpvl/evaluation"
	"gopkg.in/yaml.v3"
)

// A Dataset is the raw result of a download: one decoded meta.json
// object per successful build, plus the absolute identifier of the
// evaluation the builds belong to, if known.
type Dataset struct {
	Records   []buildmeta.Object
	EvalID    int
	HasEvalID bool
}

// A Rename maps an input column to an output column.
type Rename struct {
	From, To string
}

// A Mapping projects and renames columns. Output columns appear in
// mapping order. A nil Mapping keeps every column.
type Mapping []Rename

// UnmarshalYAML decodes a YAML mapping node, keeping its key order.
func (m *Mapping) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: mapping must be a YAML map", n.Line)
	}
	out := make(Mapping, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		var r Rename
		if err := n.Content[i].Decode(&r.From); err != nil {
			return err
		}
		if err := n.Content[i+1].Decode(&r.To); err != nil {
			return err
		}
		out = append(out, r)
	}
	*m = out
	return nil
}

// LoadMapping reads a Mapping from a YAML file of "input: output"
// pairs.
func LoadMapping(path string) (Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Mapping
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Options control Preprocess.
type Options struct {
	// Mapping projects the flattened fields of each record. A field
	// named in Mapping but absent from a record is an error.
	Mapping Mapping

	// ClockNames are passed to buildmeta.ActualFreq.
	ClockNames []string

	Logger logrus.FieldLogger
}

// legacyCutoff is the date from which Icebreaker builds record their
// frequency in Hz rather than MHz.
var legacyCutoff = time.Date(2020, 7, 31, 0, 0, 0, 0, time.UTC)

const dateLayout = "2006-01-02T15:04:05"

// isLegacyIcebreaker reports whether a flattened record comes from an
// Icebreaker build older than legacyCutoff.
func isLegacyIcebreaker(row buildmeta.Object, log logrus.FieldLogger) bool {
	date, ok1 := row.Get("date")
	board, ok2 := row.Get("board")
	if !ok1 || !ok2 {
		log.Debug("no date and board in meta.json, assuming not a legacy Icebreaker build")
		return false
	}
	s, _ := date.(string)
	ts, err := time.Parse(dateLayout, s)
	if err != nil {
		log.WithField("date", date).Debug("unparsable meta.json date, assuming not a legacy Icebreaker build")
		return false
	}
	return ts.Before(legacyCutoff) && board == "icebreaker"
}

// truthy reports whether v counts as a recorded frequency.
func truthy(v evaluation.Value) bool {
	switch v.Kind() {
	case evaluation.Int, evaluation.Float:
		f, _ := v.Float()
		return f != 0
	case evaluation.String:
		s, _ := v.Str()
		return s != ""
	case evaluation.Bool:
		b, _ := v.Bool()
		return b
	}
	return false
}

// Preprocess converts the records of ds into a table, one row per
// record.
//
// Each record is flattened. Its fields are then projected through
// opts.Mapping, if any, and a "freq" column holding the achieved
// frequency in MHz is added along with every "versions.*" field.
// Columns that are null in every row are dropped.
func Preprocess(ds *Dataset, opts Options) (*evaluation.Table, error) {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	var b evaluation.Builder
	for i, rec := range ds.Records {
		row := buildmeta.Flatten(rec)
		legacy := isLegacyIcebreaker(row, log)

		var cells []evaluation.Cell
		if opts.Mapping == nil {
			for _, m := range row {
				cells = append(cells, evaluation.Cell{Name: m.Key, Value: evaluation.Of(m.Value)})
			}
		} else {
			for _, r := range opts.Mapping {
				x, ok := row.Get(r.From)
				if !ok {
					return nil, fmt.Errorf("record %d: %w", i, &evaluation.ColumnError{Column: r.From})
				}
				cells = append(cells, evaluation.Cell{Name: r.To, Value: evaluation.Of(x)})
			}
		}

		freq, ok := buildmeta.RawActualFreq(row, opts.ClockNames)
		if ok && truthy(freq) {
			if !legacy {
				freq = buildmeta.RescaleActualFreq(freq)
			}
			cells = append(cells, evaluation.Cell{Name: "freq", Value: freq})
		}
		for _, m := range buildmeta.Versions(row) {
			cells = append(cells, evaluation.Cell{Name: m.Key, Value: evaluation.Of(m.Value)})
		}
		b.Add(cells...)
	}
	return dropNullColumns(b.Done()), nil
}

// dropNullColumns removes the columns of t that hold no values.
func dropNullColumns(t *evaluation.Table) *evaluation.Table {
	var drop []string
	for c, name := range t.Columns() {
		empty := true
		for i := 0; i < t.Len(); i++ {
			if !t.Cell(i, c).IsNA() {
				empty = false
				break
			}
		}
		if empty {
			drop = append(drop, name)
		}
	}
	if drop == nil {
		return t
	}
	return t.DropColumns(drop...)
}
