// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

// Package packaging validates release packaging inputs: the canonical
// build hash derived from a commit id, package profile manifests
// checked against the surface registry and the backend enum of the
// manifest schema, and the artifact files a package must ship.
//
// Every failure is a [reject.Error] on the "packaging" surface. Shape
// and configuration problems are SRB1-R-9002, a GA profile exposing
// preview-only surfaces is SRB1-R-9001, and missing packaged files
// are SRB1-R-9003.
//
// [Service] bundles these checks with the specset operations of
// package specset so that the CLI has one entry point with logging.
package packaging
