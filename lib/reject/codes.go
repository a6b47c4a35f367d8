// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

package reject

import (
	"regexp"
	"slices"
	"strconv"
)

// Codes raised by this module.
const (
	CodeProjectPayload = "SRB1-R-3002"
	CodeProjectBinary  = "SRB1-R-3101"
	CodeAuditWrite     = "SRB1-R-3201"
	CodeGovernanceGate = "SRB1-R-3202"

	CodeSpecsetDiscovery   = "SRB1-R-5401"
	CodeSpecsetPackage     = "SRB1-R-5402"
	CodeCoverageIncomplete = "SRB1-R-5403"
	CodeCaseBinding        = "SRB1-R-5404"
	CodeWorkPackage        = "SRB1-R-5406"
	CodeGovernanceRegister = "SRB1-R-5407"

	CodeAlphaMirrorMissing   = "SRB1-R-5501"
	CodeAlphaMirrorMismatch  = "SRB1-R-5502"
	CodeSilverstonContinuity = "SRB1-R-5503"
	CodeAlphaInventory       = "SRB1-R-5504"
	CodeAlphaExtractionGate  = "SRB1-R-5505"

	CodeProfileForbidden = "SRB1-R-9001"
	CodeConfigInvalid    = "SRB1-R-9002"
	CodeArtifactMissing  = "SRB1-R-9003"
)

// Categories.
const (
	CategorySerialization = "serialization"
	CategoryConnectivity  = "connectivity"
	CategoryValidation    = "validation"
	CategoryState         = "state"
	CategoryCapability    = "capability"
	CategoryAuthorization = "authorization"
	CategoryConfig        = "config"
	CategoryConformance   = "conformance"
)

var codePattern = regexp.MustCompile(`^SRB1-R-[0-9]{4}$`)

// categoryRanges are inclusive and evaluated in order; the first
// match wins. Numbers in the gaps fall through to conformance.
var categoryRanges = []struct {
	low, high int
	category  string
}{
	{3001, 3202, CategorySerialization},
	{4001, 4206, CategoryConnectivity},
	{5101, 5507, CategoryValidation},
	{6101, 6303, CategoryState},
	{7001, 7306, CategoryCapability},
	{8201, 8301, CategoryAuthorization},
	{9001, 9003, CategoryConfig},
}

// IsValidCodeFormat reports whether code has the form SRB1-R-NNNN
// with exactly four decimal digits.
func IsValidCodeFormat(code string) bool {
	return codePattern.MatchString(code)
}

// CategoryForCode maps a code to its category. Malformed codes and
// numbers outside every range map to conformance.
func CategoryForCode(code string) string {
	if !IsValidCodeFormat(code) {
		return CategoryConformance
	}
	number, err := strconv.Atoi(code[len(code)-4:])
	if err != nil {
		return CategoryConformance
	}
	for _, r := range categoryRanges {
		if number >= r.low && number <= r.high {
			return r.category
		}
	}
	return CategoryConformance
}

// registered lists every code defined by the contract registry, not
// only the ones this module raises.
var registered = []string{
	"SRB1-R-3002", "SRB1-R-3101", "SRB1-R-3201", "SRB1-R-3202",
	"SRB1-R-4001", "SRB1-R-4002", "SRB1-R-4003", "SRB1-R-4004", "SRB1-R-4005", "SRB1-R-4006",
	"SRB1-R-4101",
	"SRB1-R-4201", "SRB1-R-4202", "SRB1-R-4203", "SRB1-R-4204", "SRB1-R-4205", "SRB1-R-4206",
	"SRB1-R-5101", "SRB1-R-5102", "SRB1-R-5103", "SRB1-R-5104", "SRB1-R-5105", "SRB1-R-5106",
	"SRB1-R-5107", "SRB1-R-5108",
	"SRB1-R-5401", "SRB1-R-5402", "SRB1-R-5403", "SRB1-R-5404", "SRB1-R-5405", "SRB1-R-5406",
	"SRB1-R-5407",
	"SRB1-R-5501", "SRB1-R-5502", "SRB1-R-5503", "SRB1-R-5504", "SRB1-R-5505",
	"SRB1-R-6101", "SRB1-R-6201", "SRB1-R-6301", "SRB1-R-6302", "SRB1-R-6303",
	"SRB1-R-7001", "SRB1-R-7002", "SRB1-R-7003", "SRB1-R-7004", "SRB1-R-7005", "SRB1-R-7006",
	"SRB1-R-7007", "SRB1-R-7008", "SRB1-R-7009", "SRB1-R-7010", "SRB1-R-7011", "SRB1-R-7012",
	"SRB1-R-7101", "SRB1-R-7102", "SRB1-R-7103", "SRB1-R-7104",
	"SRB1-R-7202", "SRB1-R-7203",
	"SRB1-R-7301", "SRB1-R-7303", "SRB1-R-7304", "SRB1-R-7305",
	"SRB1-R-8201", "SRB1-R-8301",
	"SRB1-R-9001", "SRB1-R-9002", "SRB1-R-9003",
}

// Registered returns a sorted copy of the code registry.
func Registered() []string {
	codes := slices.Clone(registered)
	slices.Sort(codes)
	return codes
}

// ValidateCodeReferences checks that every referenced code is well
// formed and present in registry. A nil registry means [Registered].
func ValidateCodeReferences(referenced, registry []string) error {
	if registry == nil {
		registry = registered
	}
	known := make(map[string]struct{}, len(registry))
	for _, code := range registry {
		known[code] = struct{}{}
	}
	for _, code := range referenced {
		if !IsValidCodeFormat(code) {
			return New(CodeGovernanceRegister, "invalid reject code format", "governance",
				"validate_reject_registry", WithDetails(code))
		}
		if _, ok := known[code]; !ok {
			return New(CodeGovernanceRegister, "unregistered reject code", "governance",
				"validate_reject_registry", WithDetails(code))
		}
	}
	return nil
}
