// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the command framework behind scratchrobin-tool.
//
// A [Command] has a name, optional nested [Command.Subcommands], a
// [pflag.FlagSet] factory, and a Run function. The tree is built in
// the commands package and dispatched with [Command.Execute], which
// parses flags, routes subcommands, and prints help with examples.
//
// Unknown subcommands and flags get a "did you mean" suggestion when
// a known name is within edit distance 3 (suggest.go).
//
// Parameter structs bind to flags through struct tags; see
// [BindFlags]. Embedding [JSONOutput] adds the --json flag.
package cli
