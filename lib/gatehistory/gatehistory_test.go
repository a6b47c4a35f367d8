// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

package gatehistory

import (
	"context"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/scratchrobin/scratchrobin/lib/clock"
	"github.com/scratchrobin/scratchrobin/lib/release"
)

func openStore(t *testing.T, fake *clock.FakeClock) *Store {
	t.Helper()
	store, err := Open(Config{Path: filepath.Join(t.TempDir(), "history.db"), Clock: fake})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func verdict(t *testing.T, register string) release.Promotability {
	t.Helper()
	rows, err := release.ParseBlockerRegister(register)
	if err != nil {
		t.Fatalf("ParseBlockerRegister: %v", err)
	}
	result, err := release.EvaluatePromotability(rows)
	if err != nil {
		t.Fatalf("EvaluatePromotability: %v", err)
	}
	return result
}

const blocked = release.BlockerHeader + "\n" +
	"BLK-0001,P0,open,manual,N-1,2026-02-14T00:00:00Z,2026-02-14T00:00:00Z,ops,storage gap\n" +
	"BLK-0002,P1,open,manual,N-2,2026-02-14T00:00:00Z,2026-02-14T00:00:00Z,ops,docs gap\n"

func TestRecordAndList(t *testing.T) {
	ctx := context.Background()
	fake := clock.Fake(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	store := openStore(t, fake)

	first, err := store.Record(ctx, "register.csv", verdict(t, blocked))
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if first.CheckedAt != "2026-03-01T12:00:00Z" || first.Promotable {
		t.Errorf("first = %+v", first)
	}
	if !slices.Equal(first.BlockingIDs, []string{"BLK-0001", "BLK-0002"}) {
		t.Errorf("blocking = %v", first.BlockingIDs)
	}

	fake.Advance(time.Hour)
	if _, err := store.Record(ctx, "register.csv", verdict(t, release.BlockerHeader+"\n")); err != nil {
		t.Fatalf("Record: %v", err)
	}

	entries, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	latest := entries[0]
	if !latest.Promotable || latest.CheckedAt != "2026-03-01T13:00:00Z" || latest.PhaseReason != release.ReasonPass {
		t.Errorf("latest = %+v", latest)
	}
	if len(latest.BlockingIDs) != 0 || latest.ID <= entries[1].ID {
		t.Errorf("latest = %+v, older = %+v", latest, entries[1])
	}
	if entries[1].RcReason != release.ReasonUnresolvedP0P1 || entries[1].BlockerCount != 2 {
		t.Errorf("older = %+v", entries[1])
	}

	limited, err := store.List(ctx, 1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(limited) != 1 || limited[0].ID != latest.ID {
		t.Errorf("limited = %+v", limited)
	}
}

func TestHistoryPersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := Open(Config{Path: path})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := store.Record(ctx, "a.csv", verdict(t, blocked)); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(Config{Path: path})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	entries, err := reopened.List(ctx, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 || entries[0].RegisterPath != "a.csv" {
		t.Errorf("entries = %+v", entries)
	}
}
