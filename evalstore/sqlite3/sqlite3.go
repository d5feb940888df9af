// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sqlite3 provides the sqlite3 driver for
// evalstore.OpenSQL. It must be imported instead of go-sqlite3 to
// ensure connections share one database and wait on locks.
package sqlite3

import (
	"database/sql"

	"github.com/mattn/go-sqlite3"
	"github.com/symbiflow/ftpvl/evalstore"
)

func init() {
	evalstore.RegisterOpenHook("sqlite3", func(db *sql.DB) error {
		db.Driver().(*sqlite3.SQLiteDriver).ConnectHook = func(c *sqlite3.SQLiteConn) error {
			_, err := c.Exec("PRAGMA busy_timeout = 5000;", nil)
			return err
		}
		// An in-memory database exists once per connection.
		db.SetMaxOpenConns(1)
		return nil
	})
}
