// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package storetest provides test databases for packages that use
// evalstore.
package storetest

import (
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"flag"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/symbiflow/ftpvl/evalstore"
	_ "github.com/symbiflow/ftpvl/evalstore/sqlite3"
)

var mysqlDSN = flag.String("mysql", "", "MySQL server `dsn` prefix to run tests on instead of in-memory SQLite (e.g. root:@tcp(localhost:3306)/)")

// createEmptyMySQLDB makes a new, empty database for the test.
func createEmptyMySQLDB(t *testing.T) (dsn string, cleanup func()) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		t.Fatal(err)
	}
	name := "ftpvl-test-" + base64.RawURLEncoding.EncodeToString(buf)

	db, err := sql.Open("mysql", *mysqlDSN)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(fmt.Sprintf("CREATE DATABASE `%s`", name)); err != nil {
		db.Close()
		t.Fatal(err)
	}
	t.Logf("Using database %q", name)

	return *mysqlDSN + name, func() {
		if _, err := db.Exec(fmt.Sprintf("DROP DATABASE `%s`", name)); err != nil {
			t.Error(err)
		}
		db.Close()
	}
}

// NewDB makes a connection to a testing database, either sqlite3 or
// MySQL depending on the -mysql flag. The database is closed when the
// test finishes.
func NewDB(t *testing.T) *evalstore.DB {
	t.Helper()
	driverName, dataSourceName := "sqlite3", ":memory:"
	if *mysqlDSN != "" {
		var cleanup func()
		driverName = "mysql"
		dataSourceName, cleanup = createEmptyMySQLDB(t)
		t.Cleanup(cleanup)
	}
	d, err := evalstore.OpenSQL(driverName, dataSourceName)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	// Make sure the database really is empty.
	n, err := d.CountMetas()
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("found %d row(s) in Metas, want 0", n)
	}
	return d
}
