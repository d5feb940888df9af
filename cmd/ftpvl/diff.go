// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/symbiflow/ftpvl/evalproc"
	"github.com/symbiflow/ftpvl/evaluation"
	"github.com/symbiflow/ftpvl/style"
)

var diffFlags struct {
	renderFlags
	metrics []string
}

var diffCmd = &cobra.Command{
	Use:   "diff BASE NEW",
	Short: "Show the relative change of each value from BASE to NEW",
	Long: `Diff fetches two evaluations, runs the pipeline on each and shows
(NEW-BASE)/BASE for every numeric column. Cells are colored by how much
better or worse NEW is; frequencies are better when larger and every
other column when smaller, unless --metric says otherwise.`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func init() {
	diffFlags.register(diffCmd.Flags(), "color")
	diffCmd.Flags().StringSliceVar(&diffFlags.metrics, "metric", nil, "`column=min|max` direction overrides")
}

// maximized are the columns where larger is better by default.
var maximized = map[string]bool{"freq": true, "normalized_max_freq": true}

// diffMetrics returns the direction of every column of t.
func diffMetrics(t *evaluation.Table, overrides []string) ([]evalproc.Metric, error) {
	dirs := make(map[string]evalproc.Direction)
	for _, o := range overrides {
		col, dir, ok := strings.Cut(o, "=")
		if !ok {
			return nil, fmt.Errorf("--metric %q: want column=min or column=max", o)
		}
		d, err := evalproc.ParseDirection(dir)
		if err != nil {
			return nil, fmt.Errorf("--metric %q: %w", o, err)
		}
		dirs[col] = d
	}
	var ms []evalproc.Metric
	for _, col := range t.Columns() {
		d, ok := dirs[col]
		if !ok {
			d = evalproc.Minimize
			if maximized[col] {
				d = evalproc.Maximize
			}
		}
		ms = append(ms, evalproc.Metric{Column: col, Direction: d})
	}
	return ms, nil
}

func runDiff(cmd *cobra.Command, args []string) error {
	var srcs [2]source
	for i, arg := range args {
		s, err := parseSource(arg)
		if err != nil {
			return err
		}
		srcs[i] = s
	}
	p, err := diffFlags.loadPipeline()
	if err != nil {
		return err
	}
	sess, err := newSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	var evals [2]*evaluation.Evaluation
	for i, src := range srcs {
		e, err := sess.fetch(cmd.Context(), src)
		if err != nil {
			return err
		}
		if evals[i], err = p.Run(e); err != nil {
			return fmt.Errorf("%v: %w", src, err)
		}
	}

	diff, err := evalproc.RelativeDiff{A: evals[0]}.Process(evals[1])
	if err != nil {
		return err
	}
	ms, err := diffMetrics(diff.Table(), diffFlags.metrics)
	if err != nil {
		return err
	}
	st, err := diff.Process(evalproc.Normalize{Metrics: ms}, style.ColorMapStyle{})
	if err != nil {
		return err
	}
	return diffFlags.render(cmd, diff, st)
}
