// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/spf13/cobra"
	"github.com/symbiflow/ftpvl/evaluation"
	"github.com/symbiflow/ftpvl/style"
)

var showFlags struct {
	renderFlags
	style bool
}

var showCmd = &cobra.Command{
	Use:   "show SOURCE",
	Short: "Fetch one evaluation and render it",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showFlags.register(showCmd.Flags(), "text")
	showCmd.Flags().BoolVar(&showFlags.style, "style", false, "color cells holding values in [0, 1]")
}

func runShow(cmd *cobra.Command, args []string) error {
	src, err := parseSource(args[0])
	if err != nil {
		return err
	}
	p, err := showFlags.loadPipeline()
	if err != nil {
		return err
	}
	sess, err := newSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	e, err := sess.fetch(cmd.Context(), src)
	if err != nil {
		return err
	}
	if e, err = p.Run(e); err != nil {
		return err
	}
	var st *evaluation.Evaluation
	if showFlags.style {
		if st, err = (style.ColorMapStyle{}).Process(e); err != nil {
			return err
		}
	}
	return showFlags.render(cmd, e, st)
}
