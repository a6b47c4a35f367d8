// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

package specset

import (
	"bytes"
	"slices"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/scratchrobin/scratchrobin/lib/jsondoc"
	"github.com/scratchrobin/scratchrobin/lib/reject"
)

var inventoryParser = sync.OnceValue(func() goldmark.Markdown {
	return goldmark.New()
})

// firstCodeSpan returns the text of the first inline code span in a
// single Markdown line, or "" if there is none.
func firstCodeSpan(line []byte) string {
	document := inventoryParser().Parser().Parse(text.NewReader(line))
	var span string
	ast.Walk(document, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || node.Kind() != ast.KindCodeSpan {
			return ast.WalkContinue, nil
		}
		var content bytes.Buffer
		for child := node.FirstChild(); child != nil; child = child.NextSibling() {
			if segment, ok := child.(*ast.Text); ok {
				content.Write(segment.Segment.Value(line))
			}
		}
		span = content.String()
		return ast.WalkStop, nil
	})
	return span
}

// ParseAuthoritativeInventory reads the inventory at path and returns
// the sorted package-relative paths it lists. Each line contributes its
// first non-empty code span, if any.
func ParseAuthoritativeInventory(path string) ([]string, error) {
	s := scope(reject.CodeSpecsetPackage, "parse_inventory")
	data, err := s.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseInventory(s, data, path)
}

func parseInventory(s jsondoc.Scope, data []byte, path string) ([]string, error) {
	var rows []string
	for line := range bytes.SplitSeq(data, []byte("\n")) {
		relative := firstCodeSpan(line)
		if relative == "" {
			continue
		}
		if jsondoc.HasUnsafePathSyntax(relative) {
			return nil, s.Reject("invalid inventory relative path", reject.WithDetails(relative))
		}
		rows = append(rows, relative)
	}
	if len(rows) == 0 {
		return nil, s.Reject("inventory parse failure", reject.WithDetails(path))
	}
	slices.Sort(rows)
	if len(slices.Compact(slices.Clone(rows))) != len(rows) {
		return nil, s.Reject("duplicate authoritative inventory entries", reject.WithDetails(path))
	}
	return rows, nil
}
