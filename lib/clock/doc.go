// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable source of the current time.
//
// Code that stamps records (project documents, gate history rows,
// work-package exports) takes a Clock instead of calling time.Now, so
// tests can pin timestamps:
//
//	c := clock.Fake(time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC))
//	store, err := gatehistory.Open(gatehistory.Config{Path: path, Clock: c})
//	c.Advance(time.Hour)
package clock
