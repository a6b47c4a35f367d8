// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

// Package reject is the structured error vocabulary shared by every
// validator in ScratchRobin.
//
// A reject carries a stable code of the form SRB1-R-NNNN, a category
// derived from the numeric part of that code, a human-readable
// message, the surface and operation that produced it, a retry hint,
// and free-form details (usually the offending path, id, or value).
//
// Callers branch on the code, never on the message text:
//
//	if reject.CodeOf(err) == reject.CodeConfigInvalid {
//	    ...
//	}
//
// The retry hint is stored for callers; nothing in this module
// interprets it.
package reject
