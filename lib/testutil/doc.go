// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil holds helpers shared by package tests: writing
// fixture trees and asserting on reject codes.
package testutil
