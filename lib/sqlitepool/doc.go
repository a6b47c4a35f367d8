// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

// Package sqlitepool opens pooled SQLite connections with the pragmas
// every ScratchRobin store uses: WAL journaling, NORMAL sync, a busy
// timeout, and an in-memory temp store.
//
// Stores open a pool with a schema callback and borrow connections per
// operation:
//
//	pool, err := sqlitepool.Open(sqlitepool.Config{
//	    Path:      path,
//	    OnConnect: createSchema,
//	})
//	...
//	conn, err := pool.Take(ctx)
//	if err != nil {
//	    return err
//	}
//	defer pool.Put(conn)
//
// The pool is backed by zombiezen.com/go/sqlite, a cgo-free SQLite.
package sqlitepool
