// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

package jsondoc

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/scratchrobin/scratchrobin/lib/reject"
)

var testScope = Scope{Code: reject.CodeConfigInvalid, Surface: "packaging", Operation: "test"}

func requireMessage(t *testing.T, err error, want string) {
	t.Helper()
	rejectErr, ok := reject.As(err)
	if !ok {
		t.Fatalf("error = %v, want reject", err)
	}
	payload := rejectErr.Payload()
	if payload.Code != testScope.Code || payload.Surface != testScope.Surface || payload.Operation != testScope.Operation {
		t.Errorf("payload scope = %s/%s/%s", payload.Code, payload.Surface, payload.Operation)
	}
	if payload.Message != want {
		t.Errorf("message = %q, want %q", payload.Message, want)
	}
}

func TestParseAcceptsCommentsAndNumbers(t *testing.T) {
	value, err := Parse([]byte(`{
		// surfaces shipped by default
		"surface_ids": ["MainFrame", "SqlEditorFrame",],
		"count": 12345678901234567890,
	}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	object := value.(map[string]any)
	if _, ok := object["count"].(json.Number); !ok {
		t.Errorf("count type = %T, want json.Number", object["count"])
	}
	ids, err := testScope.RequireStringArray(object, "surface_ids")
	if err != nil {
		t.Fatalf("RequireStringArray: %v", err)
	}
	if !slices.Equal(ids, []string{"MainFrame", "SqlEditorFrame"}) {
		t.Errorf("ids = %v", ids)
	}
}

func TestParseRejectsTrailingData(t *testing.T) {
	if _, err := Parse([]byte(`{} {}`)); err == nil {
		t.Error("Parse accepted two top-level values")
	}
	if _, err := Parse([]byte(`{"a":`)); err == nil {
		t.Error("Parse accepted truncated input")
	}
}

func TestParseFile(t *testing.T) {
	directory := t.TempDir()

	_, err := testScope.ParseFile(filepath.Join(directory, "missing.json"))
	requireMessage(t, err, "failed to read file")

	path := filepath.Join(directory, "bad.json")
	if err := os.WriteFile(path, []byte("{nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = testScope.ParseFile(path)
	requireMessage(t, err, "json parse failure")
}

func TestRequireAccessors(t *testing.T) {
	object := map[string]any{
		"name":   "x",
		"empty":  "",
		"number": json.Number("3"),
		"flag":   true,
		"list":   []any{"a", "b"},
		"mixed":  []any{"a", 3.0},
		"blank":  []any{""},
	}

	if _, err := testScope.RequireMember(object, "absent"); err == nil {
		t.Error("RequireMember(absent) succeeded")
	} else {
		requireMessage(t, err, "missing field: absent")
	}

	if got, err := testScope.RequireString(object, "name"); err != nil || got != "x" {
		t.Errorf("RequireString(name) = %q, %v", got, err)
	}
	_, err := testScope.RequireString(object, "empty")
	requireMessage(t, err, "invalid string field: empty")
	_, err = testScope.RequireString(object, "number")
	requireMessage(t, err, "invalid string field: number")

	if got, err := testScope.RequireBool(object, "flag"); err != nil || !got {
		t.Errorf("RequireBool(flag) = %v, %v", got, err)
	}
	_, err = testScope.RequireBool(object, "name")
	requireMessage(t, err, "invalid bool field: name")

	_, err = testScope.RequireStringArray(object, "name")
	requireMessage(t, err, "invalid array field: name")
	_, err = testScope.RequireStringArray(object, "mixed")
	requireMessage(t, err, "invalid array item in: mixed")
	_, err = testScope.RequireStringArray(object, "blank")
	requireMessage(t, err, "invalid array item in: blank")
}

func TestEnsureOnlyFields(t *testing.T) {
	object := map[string]any{"a": 1, "b": 2, "zz": 3, "c": 4}
	err := testScope.EnsureOnlyFields(object, "a", "b")
	requireMessage(t, err, "unexpected field: c")

	if err := testScope.EnsureOnlyFields(object, "a", "b", "c", "zz"); err != nil {
		t.Errorf("EnsureOnlyFields(all allowed) = %v", err)
	}
}

func TestEnsureSortedUnique(t *testing.T) {
	if err := testScope.EnsureSortedUnique([]string{"embedded", "firebird"}, "enabled_backends"); err != nil {
		t.Errorf("sorted unique rejected: %v", err)
	}
	if err := testScope.EnsureSortedUnique(nil, "enabled_backends"); err != nil {
		t.Errorf("empty rejected: %v", err)
	}
	err := testScope.EnsureSortedUnique([]string{"firebird", "embedded"}, "enabled_backends")
	requireMessage(t, err, "enabled_backends must be sorted")
	err = testScope.EnsureSortedUnique([]string{"embedded", "embedded"}, "enabled_backends")
	requireMessage(t, err, "enabled_backends must be unique")
}

func TestPredicates(t *testing.T) {
	if !IsRFC3339UTC("2026-02-14T00:00:00Z") {
		t.Error("valid timestamp rejected")
	}
	for _, bad := range []string{"2026-02-14", "2026-02-14T00:00:00+00:00", "2026-02-14T00:00:00.5Z", ""} {
		if IsRFC3339UTC(bad) {
			t.Errorf("IsRFC3339UTC(%q) = true", bad)
		}
	}

	if !IsSHA256Hex("8ed3f6ad685b959ead7022518e1af76cd816f8e8ec7ccdda1ed4018e8f2223f8") {
		t.Error("valid digest rejected")
	}
	if IsSHA256Hex("8ED3F6AD685B959EAD7022518E1AF76CD816F8E8EC7CCDDA1ED4018E8F2223F8") {
		t.Error("uppercase digest accepted")
	}
	if IsLowerHex("abcg") {
		t.Error("IsLowerHex(abcg) = true")
	}

	for _, path := range []string{"docs/LICENSE.txt", "share/help", "a.b/c"} {
		if !IsRelativePath(path) {
			t.Errorf("IsRelativePath(%q) = false", path)
		}
	}
	for _, path := range []string{"", "../x", "a/../b", "/etc/passwd", "C:/x", "a:b"} {
		if IsRelativePath(path) {
			t.Errorf("IsRelativePath(%q) = true", path)
		}
	}
}
