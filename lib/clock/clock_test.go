// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"testing"
	"time"
)

func TestFakeClock(t *testing.T) {
	start := time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)
	c := Fake(start)

	if !c.Now().Equal(start) {
		t.Fatalf("Now = %v, want %v", c.Now(), start)
	}
	c.Advance(90 * time.Second)
	if want := start.Add(90 * time.Second); !c.Now().Equal(want) {
		t.Errorf("after Advance, Now = %v, want %v", c.Now(), want)
	}
	c.Set(start)
	if !c.Now().Equal(start) {
		t.Errorf("after Set, Now = %v, want %v", c.Now(), start)
	}
}

func TestFormatUTC(t *testing.T) {
	local := time.FixedZone("test", 5*3600)
	moment := time.Date(2026, 2, 14, 5, 30, 15, 999, local)
	if got := FormatUTC(moment); got != "2026-02-14T00:30:15Z" {
		t.Errorf("FormatUTC = %q, want 2026-02-14T00:30:15Z", got)
	}
}

func TestRealClockMoves(t *testing.T) {
	if Real().Now().IsZero() {
		t.Error("Real().Now() is zero")
	}
}
