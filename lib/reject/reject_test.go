// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

package reject

import (
	"errors"
	"fmt"
	"testing"
)

func TestCategoryForCode(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"SRB1-R-3101", CategorySerialization},
		{"SRB1-R-3001", CategorySerialization},
		{"SRB1-R-3202", CategorySerialization},
		{"SRB1-R-3300", CategoryConformance},
		{"SRB1-R-4101", CategoryConnectivity},
		{"SRB1-R-5407", CategoryValidation},
		{"SRB1-R-5507", CategoryValidation},
		{"SRB1-R-6303", CategoryState},
		{"SRB1-R-7306", CategoryCapability},
		{"SRB1-R-8201", CategoryAuthorization},
		{"SRB1-R-9002", CategoryConfig},
		{"SRB1-R-9004", CategoryConformance},
		{"SRB1-R-0001", CategoryConformance},
		{"bogus", CategoryConformance},
	}
	for _, test := range tests {
		if got := CategoryForCode(test.code); got != test.want {
			t.Errorf("CategoryForCode(%q) = %q, want %q", test.code, got, test.want)
		}
	}
}

func TestIsValidCodeFormat(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"SRB1-R-1234", true},
		{"SRB1-R-12", false},
		{"srb1-r-1234", false},
		{"SRB1-R-12345", false},
		{"SRB1-R-12a4", false},
		{"", false},
	}
	for _, test := range tests {
		if got := IsValidCodeFormat(test.code); got != test.want {
			t.Errorf("IsValidCodeFormat(%q) = %v, want %v", test.code, got, test.want)
		}
	}
}

func TestNew(t *testing.T) {
	err := New(CodeProjectBinary, "bad header", "project", "load_project_binary",
		WithDetails("PROJ"), Retryable())

	if err.Error() != "SRB1-R-3101: bad header" {
		t.Errorf("Error() = %q", err.Error())
	}
	payload := err.Payload()
	want := Payload{
		Code:      "SRB1-R-3101",
		Category:  CategorySerialization,
		Message:   "bad header",
		Surface:   "project",
		Operation: "load_project_binary",
		Retryable: true,
		Details:   "PROJ",
	}
	if payload != want {
		t.Errorf("Payload() = %+v, want %+v", payload, want)
	}

	plain := New(CodeConfigInvalid, "x", "packaging", "op").Payload()
	if plain.Retryable || plain.Details != "" {
		t.Errorf("defaults = %+v, want retryable=false and empty details", plain)
	}
}

func TestAsThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("loading: %w", New(CodeArtifactMissing, "missing", "packaging", "op"))

	rejectErr, ok := As(wrapped)
	if !ok {
		t.Fatal("As did not find the reject")
	}
	if rejectErr.Payload().Code != CodeArtifactMissing {
		t.Errorf("code = %q, want %q", rejectErr.Payload().Code, CodeArtifactMissing)
	}
	if got := CodeOf(wrapped); got != CodeArtifactMissing {
		t.Errorf("CodeOf = %q", got)
	}
	if got := CodeOf(errors.New("plain")); got != "" {
		t.Errorf("CodeOf(plain) = %q, want empty", got)
	}
	if got := CodeOf(nil); got != "" {
		t.Errorf("CodeOf(nil) = %q, want empty", got)
	}
}

func TestRegisteredCodesAreWellFormed(t *testing.T) {
	codes := Registered()
	for i, code := range codes {
		if !IsValidCodeFormat(code) {
			t.Errorf("registered code %q is malformed", code)
		}
		if i > 0 && codes[i-1] >= code {
			t.Errorf("registry not strictly sorted at %q", code)
		}
	}
	for _, code := range []string{
		CodeProjectPayload, CodeProjectBinary, CodeAuditWrite, CodeGovernanceGate,
		CodeSpecsetDiscovery, CodeSpecsetPackage, CodeCoverageIncomplete, CodeCaseBinding,
		CodeWorkPackage, CodeGovernanceRegister, CodeAlphaMirrorMissing, CodeAlphaMirrorMismatch,
		CodeSilverstonContinuity, CodeAlphaInventory, CodeAlphaExtractionGate,
		CodeProfileForbidden, CodeConfigInvalid, CodeArtifactMissing,
	} {
		if err := ValidateCodeReferences([]string{code}, nil); err != nil {
			t.Errorf("code constant %s not registered: %v", code, err)
		}
	}
}

func TestValidateCodeReferences(t *testing.T) {
	registry := []string{"SRB1-R-9002", "SRB1-R-3101"}

	if err := ValidateCodeReferences([]string{"SRB1-R-3101"}, registry); err != nil {
		t.Fatalf("registered code rejected: %v", err)
	}

	for _, code := range []string{"SRB1-R-99", "SRB1-R-4001"} {
		err := ValidateCodeReferences([]string{code}, registry)
		rejectErr, ok := As(err)
		if !ok {
			t.Fatalf("ValidateCodeReferences(%q) = %v, want reject", code, err)
		}
		if rejectErr.Payload().Code != CodeGovernanceRegister {
			t.Errorf("code = %q, want %q", rejectErr.Payload().Code, CodeGovernanceRegister)
		}
		if rejectErr.Payload().Details != code {
			t.Errorf("details = %q, want %q", rejectErr.Payload().Details, code)
		}
	}
}
