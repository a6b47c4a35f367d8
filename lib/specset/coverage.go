// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

package specset

import (
	"bytes"
	"cmp"
	"encoding/json"
	"regexp"
	"slices"
	"strconv"

	"github.com/scratchrobin/scratchrobin/lib/jsondoc"
	"github.com/scratchrobin/scratchrobin/lib/reject"
)

// Coverage classes and states.
const (
	ClassDesign      = "design"
	ClassDevelopment = "development"
	ClassManagement  = "management"

	StateCovered = "covered"
	StatePartial = "partial"
	StateMissing = "missing"
)

// CoverageLink records how one spec file is covered in one class.
type CoverageLink struct {
	SpecFileRef   string `json:"spec_file_ref"`
	CoverageClass string `json:"coverage_class"`
	CoverageState string `json:"coverage_state"`
}

// AssertCoverageComplete requires every normative file to have a
// covered link in class.
func AssertCoverageComplete(files []FileRow, links []CoverageLink, class string) error {
	covered := make(map[string]struct{})
	for _, link := range links {
		if link.CoverageClass == class && link.CoverageState == StateCovered {
			covered[link.SpecFileRef] = struct{}{}
		}
	}
	missing := make(map[string]struct{})
	for _, file := range files {
		if !file.IsNormative {
			continue
		}
		if _, ok := covered[file.Ref()]; !ok {
			missing[file.Ref()] = struct{}{}
		}
	}
	if len(missing) > 0 {
		return reject.New(reject.CodeCoverageIncomplete,
			"missing "+class+" coverage: "+strconv.Itoa(len(missing))+" files",
			surface, "assert_support_complete")
	}
	return nil
}

var caseIDPattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9-]*$`)

// ValidateBindings checks bound case ids against the conformance case
// registry: each must be well formed, bound once, and registered.
func ValidateBindings(caseIDs []string, registry map[string]struct{}) error {
	s := scope(reject.CodeCaseBinding, "validate_bindings")
	if len(registry) == 0 {
		return s.Reject("conformance case registry empty")
	}
	seen := make(map[string]struct{}, len(caseIDs))
	for _, id := range caseIDs {
		if !caseIDPattern.MatchString(id) {
			return s.Reject("invalid case id format: " + id)
		}
		if _, dup := seen[id]; dup {
			return s.Reject("duplicate case id binding: " + id)
		}
		seen[id] = struct{}{}
		if _, ok := registry[id]; !ok {
			return s.Reject("unknown case id: " + id)
		}
	}
	return nil
}

// AggregateCoverage counts links by "class:state".
func AggregateCoverage(links []CoverageLink) map[string]int {
	counts := make(map[string]int)
	for _, link := range links {
		counts[link.CoverageClass+":"+link.CoverageState]++
	}
	return counts
}

// Gap is a spec file that still lacks coverage in one class.
type Gap struct {
	SpecFileRef     string   `json:"spec_file_ref"`
	CoverageClass   string   `json:"coverage_class"`
	RequiredCaseIDs []string `json:"required_case_ids"`
}

// WorkPackageVersion is the export_version of exported work packages.
const WorkPackageVersion = "1.0.0"

type workPackage struct {
	ExportVersion  string    `json:"export_version"`
	GeneratedAtUTC string    `json:"generated_at_utc"`
	SetID          string    `json:"set_id"`
	Gaps           []gapJSON `json:"gaps"`
}

type gapJSON struct {
	SpecFileRef     string   `json:"spec_file_ref"`
	CoverageClass   string   `json:"coverage_class"`
	CoverageState   string   `json:"coverage_state"`
	RequiredCaseIDs []string `json:"required_case_ids"`
}

// ExportWorkPackage renders gaps as a single-line JSON work package.
// Gaps are ordered by reference then class, and each gap's case ids
// are sorted, so equal inputs give identical output.
func ExportWorkPackage(setID string, gaps []Gap, generatedAt string) (string, error) {
	if setID == "" || !jsondoc.IsRFC3339UTC(generatedAt) {
		return "", reject.New(reject.CodeWorkPackage, "invalid work package header", surface, "export_work_package")
	}

	sorted := slices.Clone(gaps)
	slices.SortStableFunc(sorted, func(a, b Gap) int {
		return cmp.Or(cmp.Compare(a.SpecFileRef, b.SpecFileRef), cmp.Compare(a.CoverageClass, b.CoverageClass))
	})
	document := workPackage{
		ExportVersion:  WorkPackageVersion,
		GeneratedAtUTC: generatedAt,
		SetID:          setID,
		Gaps:           make([]gapJSON, 0, len(sorted)),
	}
	for _, gap := range sorted {
		caseIDs := slices.Clone(gap.RequiredCaseIDs)
		if caseIDs == nil {
			caseIDs = []string{}
		}
		slices.Sort(caseIDs)
		document.Gaps = append(document.Gaps, gapJSON{
			SpecFileRef:     gap.SpecFileRef,
			CoverageClass:   gap.CoverageClass,
			CoverageState:   StateMissing,
			RequiredCaseIDs: caseIDs,
		})
	}

	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(document); err != nil {
		return "", err
	}
	return string(bytes.TrimSuffix(buffer.Bytes(), []byte("\n"))), nil
}
