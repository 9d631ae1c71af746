// Copyright 2017 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sqlite3 provides the sqlite3 driver for the results
// database. It registers an open hook that sets a busy timeout on
// each connection, so concurrent savers wait for the write lock
// instead of failing.
package sqlite3

import (
	"database/sql"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/classicvalues/lisa/storage/db"
)

func init() {
	db.RegisterOpenHook("sqlite3", func(d *sql.DB) error {
		d.Driver().(*sqlite3.SQLiteDriver).ConnectHook = func(conn *sqlite3.SQLiteConn) error {
			_, err := conn.Exec("PRAGMA busy_timeout = 5000;", nil)
			return err
		}
		return nil
	})
}
