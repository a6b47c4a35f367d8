// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

// Package gatehistory keeps a local SQLite log of release gate checks
// so that a release manager can see how promotability changed over
// time.
package gatehistory

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/scratchrobin/scratchrobin/lib/clock"
	"github.com/scratchrobin/scratchrobin/lib/release"
	"github.com/scratchrobin/scratchrobin/lib/sqlitepool"
)

const schema = `
CREATE TABLE IF NOT EXISTS gate_checks (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	checked_at    TEXT    NOT NULL,
	register_path TEXT    NOT NULL,
	blocker_count INTEGER NOT NULL,
	promotable    INTEGER NOT NULL,
	phase_reason  TEXT    NOT NULL,
	rc_reason     TEXT    NOT NULL,
	blocking_ids  TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS gate_checks_checked_at ON gate_checks (checked_at);
`

// Entry is one recorded gate check.
type Entry struct {
	ID           int64    `json:"id"`
	CheckedAt    string   `json:"checked_at"`
	RegisterPath string   `json:"register_path"`
	BlockerCount int      `json:"blocker_count"`
	Promotable   bool     `json:"promotable"`
	PhaseReason  string   `json:"phase_reason"`
	RcReason     string   `json:"rc_reason"`
	BlockingIDs  []string `json:"blocking_ids"`
}

// Config holds the parameters for Open.
type Config struct {
	// Path is the database file. Its parent directory must exist.
	Path string

	// Clock stamps recorded entries. Defaults to the real clock.
	Clock clock.Clock

	// Logger receives store messages. Nil discards them.
	Logger *slog.Logger
}

// Store records and lists gate checks.
type Store struct {
	pool   *sqlitepool.Pool
	clock  clock.Clock
	logger *slog.Logger
}

// Open opens (creating if needed) the history database.
func Open(cfg Config) (*Store, error) {
	if cfg.Clock == nil {
		cfg.Clock = clock.Real()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	pool, err := sqlitepool.Open(sqlitepool.Config{
		Path:   cfg.Path,
		Logger: cfg.Logger,
		OnConnect: func(conn *sqlite.Conn) error {
			return sqlitex.ExecuteScript(conn, schema, nil)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gate history: %w", err)
	}
	return &Store{pool: pool, clock: cfg.Clock, logger: cfg.Logger}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.pool.Close()
}

// Record stores the verdict of a gate check against the register at
// registerPath. Blocking ids are the union of both gates, in register
// order without repeats.
func (s *Store) Record(ctx context.Context, registerPath string, verdict release.Promotability) (Entry, error) {
	entry := Entry{
		CheckedAt:    clock.FormatUTC(s.clock.Now()),
		RegisterPath: registerPath,
		BlockerCount: verdict.BlockerCount,
		Promotable:   verdict.Promotable,
		PhaseReason:  verdict.PhaseAcceptance.Reason,
		RcReason:     verdict.RcEntry.Reason,
		BlockingIDs:  blockingUnion(verdict),
	}
	blocking, err := json.Marshal(entry.BlockingIDs)
	if err != nil {
		return Entry{}, fmt.Errorf("gate history: encoding blocking ids: %w", err)
	}

	conn, err := s.pool.Take(ctx)
	if err != nil {
		return Entry{}, fmt.Errorf("gate history: record: %w", err)
	}
	defer s.pool.Put(conn)

	err = sqlitex.Execute(conn, `
		INSERT INTO gate_checks
			(checked_at, register_path, blocker_count, promotable, phase_reason, rc_reason, blocking_ids)
		VALUES (?, ?, ?, ?, ?, ?, ?)`, &sqlitex.ExecOptions{
		Args: []any{entry.CheckedAt, entry.RegisterPath, entry.BlockerCount, entry.Promotable,
			entry.PhaseReason, entry.RcReason, string(blocking)},
	})
	if err != nil {
		return Entry{}, fmt.Errorf("gate history: inserting check: %w", err)
	}
	entry.ID = conn.LastInsertRowID()
	s.logger.Debug("gate check recorded", "id", entry.ID, "promotable", entry.Promotable)
	return entry, nil
}

// List returns up to limit entries, newest first. A non-positive
// limit returns every entry.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("gate history: list: %w", err)
	}
	defer s.pool.Put(conn)

	if limit <= 0 {
		limit = -1
	}
	var entries []Entry
	err = sqlitex.Execute(conn, `
		SELECT id, checked_at, register_path, blocker_count, promotable, phase_reason, rc_reason, blocking_ids
		FROM gate_checks
		ORDER BY id DESC
		LIMIT ?`, &sqlitex.ExecOptions{
		Args: []any{limit},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			entry := Entry{
				ID:           stmt.ColumnInt64(0),
				CheckedAt:    stmt.ColumnText(1),
				RegisterPath: stmt.ColumnText(2),
				BlockerCount: stmt.ColumnInt(3),
				Promotable:   stmt.ColumnBool(4),
				PhaseReason:  stmt.ColumnText(5),
				RcReason:     stmt.ColumnText(6),
			}
			if err := json.Unmarshal([]byte(stmt.ColumnText(7)), &entry.BlockingIDs); err != nil {
				return fmt.Errorf("decoding blocking ids of check %d: %w", entry.ID, err)
			}
			entries = append(entries, entry)
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gate history: %w", err)
	}
	return entries, nil
}

func blockingUnion(verdict release.Promotability) []string {
	seen := make(map[string]struct{})
	union := []string{}
	for _, ids := range [][]string{verdict.RcEntry.BlockingBlockerIDs, verdict.PhaseAcceptance.BlockingBlockerIDs} {
		for _, id := range ids {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				union = append(union, id)
			}
		}
	}
	return union
}
