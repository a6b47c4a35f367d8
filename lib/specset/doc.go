// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

// Package specset loads specification set packages and checks how
// well the product covers them.
//
// A specset is described by a small JSON manifest under
// resources/specset_packages/. The manifest names a package root
// (relative to the manifest) and an authoritative inventory: a
// Markdown file whose lines each carry one package-relative path as
// their first code span. Loading a package hashes every inventoried
// file into a [FileRow].
//
// Coverage links tie spec files ("set:path" references) to product
// surfaces per coverage class (design, development, management).
// [AssertCoverageComplete] requires full coverage for a class,
// [ValidateBindings] checks conformance case ids, and
// [ExportWorkPackage] renders the remaining gaps as a deterministic
// JSON work package.
//
// Failures are [reject.Error] values on the "spec_workspace" surface
// with codes SRB1-R-5401 through SRB1-R-5406.
package specset
