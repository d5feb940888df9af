// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Ftpvl fetches FPGA toolchain benchmark results, runs them through a
// processing pipeline and renders the result.
//
// Usage:
//
//	ftpvl show [flags] SOURCE
//	ftpvl diff [flags] BASE NEW
//
// A SOURCE is either a Hydra evaluation or a JSON table. Hydra
// evaluations are written hydra:PROJECT/JOBSET for the latest
// evaluation, hydra:PROJECT/JOBSET~N for the Nth before it and
// hydra:PROJECT/JOBSET@ID for the evaluation with identifier ID.
// Anything else is read as a JSON table from a file, an http(s) URL
// or a gs:// URL.
//
// Settings can also be given in a YAML file named by -config or in
// FTPVL_* environment variables, such as FTPVL_LOG_LEVEL=debug.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
