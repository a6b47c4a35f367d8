// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

// scratchrobin-tool runs the ScratchRobin release and packaging checks.
package main

import (
	"fmt"
	"os"

	"github.com/scratchrobin/scratchrobin/cmd/scratchrobin-tool/commands"
)

func main() {
	workingDir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	os.Exit(commands.Run(commands.Env{
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		WorkingDir: workingDir,
		Executable: os.Args[0],
	}, os.Args[1:]))
}
