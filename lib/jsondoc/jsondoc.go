// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

package jsondoc

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"slices"

	"github.com/tidwall/jsonc"

	"github.com/scratchrobin/scratchrobin/lib/reject"
)

// Scope identifies who is asking, so that shape failures are reported
// under the caller's code, surface, and operation.
type Scope struct {
	Code      string
	Surface   string
	Operation string
}

// Reject builds a reject in this scope.
func (s Scope) Reject(message string, options ...reject.Option) *reject.Error {
	return reject.New(s.Code, message, s.Surface, s.Operation, options...)
}

// Parse decodes a single JSON value. Comments and trailing commas are
// accepted. Numbers decode as json.Number.
func Parse(data []byte) (any, error) {
	decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	decoder.UseNumber()
	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level value")
	}
	return value, nil
}

// ReadFile reads path, reporting a failure as "failed to read file"
// with the path as details.
func (s Scope) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, s.Reject("failed to read file", reject.WithDetails(path))
	}
	return data, nil
}

// ParseFile reads and parses the JSON document at path.
func (s Scope) ParseFile(path string) (any, error) {
	data, err := s.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return s.ParseText(data)
}

// ParseText parses a JSON document already in memory.
func (s Scope) ParseText(data []byte) (any, error) {
	value, err := Parse(data)
	if err != nil {
		return nil, s.Reject("json parse failure", reject.WithDetails(err.Error()))
	}
	return value, nil
}

// RequireObject asserts that value is a JSON object.
func (s Scope) RequireObject(value any, message string) (map[string]any, error) {
	object, ok := value.(map[string]any)
	if !ok {
		return nil, s.Reject(message)
	}
	return object, nil
}

// RequireMember returns object[key] or rejects with "missing field".
func (s Scope) RequireMember(object map[string]any, key string) (any, error) {
	value, ok := object[key]
	if !ok {
		return nil, s.Reject("missing field: " + key)
	}
	return value, nil
}

// RequireString returns object[key] when it is a non-empty string.
func (s Scope) RequireString(object map[string]any, key string) (string, error) {
	value, err := s.RequireMember(object, key)
	if err != nil {
		return "", err
	}
	text, ok := value.(string)
	if !ok || text == "" {
		return "", s.Reject("invalid string field: " + key)
	}
	return text, nil
}

// RequireStringArray returns object[key] when it is an array of
// non-empty strings. An empty array is allowed.
func (s Scope) RequireStringArray(object map[string]any, key string) ([]string, error) {
	value, err := s.RequireMember(object, key)
	if err != nil {
		return nil, err
	}
	items, ok := value.([]any)
	if !ok {
		return nil, s.Reject("invalid array field: " + key)
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		text, ok := item.(string)
		if !ok || text == "" {
			return nil, s.Reject("invalid array item in: " + key)
		}
		out = append(out, text)
	}
	return out, nil
}

// RequireBool returns object[key] when it is a JSON boolean.
func (s Scope) RequireBool(object map[string]any, key string) (bool, error) {
	value, err := s.RequireMember(object, key)
	if err != nil {
		return false, err
	}
	flag, ok := value.(bool)
	if !ok {
		return false, s.Reject("invalid bool field: " + key)
	}
	return flag, nil
}

// EnsureOnlyFields rejects the first key, in sorted order, that is not
// in allowed.
func (s Scope) EnsureOnlyFields(object map[string]any, allowed ...string) error {
	keys := make([]string, 0, len(object))
	for key := range object {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		if !slices.Contains(allowed, key) {
			return s.Reject("unexpected field: " + key)
		}
	}
	return nil
}

// EnsureSortedUnique rejects values that are out of order or repeat.
func (s Scope) EnsureSortedUnique(values []string, field string) error {
	if !slices.IsSorted(values) {
		return s.Reject(field + " must be sorted")
	}
	for i := 1; i < len(values); i++ {
		if values[i] == values[i-1] {
			return s.Reject(field + " must be unique")
		}
	}
	return nil
}
