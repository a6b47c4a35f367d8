// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/scratchrobin/scratchrobin/lib/gatehistory"
	"github.com/scratchrobin/scratchrobin/lib/release"
)

const (
	colorPass    = lipgloss.Color("2")
	colorBlocked = lipgloss.Color("1")
	colorMuted   = lipgloss.Color("8")
)

// registerColumnWidth bounds the register path in history listings.
const registerColumnWidth = 60

// newRenderer detects the color profile of w. NO_COLOR forces plain
// output even on a terminal.
func newRenderer(w io.Writer) *lipgloss.Renderer {
	renderer := lipgloss.NewRenderer(w)
	if termenv.EnvNoColor() {
		renderer.SetColorProfile(termenv.Ascii)
	}
	return renderer
}

// renderVerdict formats a gate verdict for a terminal. Colors are
// emitted only when w is one.
func renderVerdict(w io.Writer, register string, verdict release.Promotability) string {
	renderer := newRenderer(w)

	headline := "PROMOTABLE"
	headlineColor := colorPass
	if !verdict.Promotable {
		headline = "NOT PROMOTABLE"
		headlineColor = colorBlocked
	}

	labelStyle := renderer.NewStyle().Width(18)
	mutedStyle := renderer.NewStyle().Foreground(colorMuted)

	var builder strings.Builder
	builder.WriteString(renderer.NewStyle().Bold(true).Foreground(headlineColor).Render(headline))
	builder.WriteString("\n")
	builder.WriteString("  " + labelStyle.Render("register") + mutedStyle.Render(register) + "\n")
	builder.WriteString("  " + labelStyle.Render("blockers") + fmt.Sprint(verdict.BlockerCount) + "\n")

	for _, gate := range []struct {
		label    string
		decision release.GateDecision
	}{
		{"phase acceptance", verdict.PhaseAcceptance},
		{"rc entry", verdict.RcEntry},
	} {
		color := colorPass
		if !gate.decision.Pass {
			color = colorBlocked
		}
		line := "  " + labelStyle.Render(gate.label) + renderer.NewStyle().Foreground(color).Render(gate.decision.Reason)
		if len(gate.decision.BlockingBlockerIDs) > 0 {
			line += "  " + strings.Join(gate.decision.BlockingBlockerIDs, ", ")
		}
		builder.WriteString(line + "\n")
	}
	return builder.String()
}

func renderHistory(w io.Writer, entries []gatehistory.Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "no gate checks recorded")
		return err
	}
	tw := tabwriter.NewWriter(w, 2, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCHECKED AT\tPROMOTABLE\tBLOCKERS\tBLOCKING\tREGISTER")
	for _, entry := range entries {
		blocking := strings.Join(entry.BlockingIDs, ",")
		if blocking == "" {
			blocking = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%t\t%d\t%s\t%s\n",
			entry.ID, entry.CheckedAt, entry.Promotable, entry.BlockerCount, blocking,
			ansi.Truncate(entry.RegisterPath, registerColumnWidth, "…"))
	}
	return tw.Flush()
}
