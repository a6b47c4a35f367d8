// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// Exit codes shared by every command.
const (
	ExitOK = 0

	// ExitFailure means the command could not complete: a contract
	// violation, an unreadable input, or a usage error.
	ExitFailure = 2

	// ExitNotPromotable means a release gate check ran to completion
	// and found blocking rows.
	ExitNotPromotable = 3
)

// ExitError signals a non-zero exit code without printing an extra
// error message. The command is expected to have already written its
// own output.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code. main checks for this interface to
// tell a handled non-zero exit from an unexpected error.
func (e *ExitError) ExitCode() int {
	return e.Code
}
