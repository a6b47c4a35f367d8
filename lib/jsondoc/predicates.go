// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

package jsondoc

import (
	"regexp"
	"strings"
)

var rfc3339UTCPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z$`)

// IsRFC3339UTC reports whether value is a second-precision UTC
// timestamp such as 2026-02-14T00:00:00Z. Only the shape is checked;
// strings in this form sort chronologically.
func IsRFC3339UTC(value string) bool {
	return rfc3339UTCPattern.MatchString(value)
}

// IsLowerHex reports whether every byte of value is 0-9 or a-f. The
// empty string is lower hex.
func IsLowerHex(value string) bool {
	for i := 0; i < len(value); i++ {
		c := value[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// IsSHA256Hex reports whether value is a 64-character lowercase hex
// digest.
func IsSHA256Hex(value string) bool {
	return len(value) == 64 && IsLowerHex(value)
}

// HasUnsafePathSyntax reports whether a relative path contains a
// traversal, a drive or scheme separator, or a leading slash.
func HasUnsafePathSyntax(path string) bool {
	return strings.Contains(path, "..") || strings.Contains(path, ":") || strings.HasPrefix(path, "/")
}

// IsRelativePath reports whether path is non-empty and free of unsafe
// syntax.
func IsRelativePath(path string) bool {
	return path != "" && !HasUnsafePathSyntax(path)
}
